package postgres

import (
	"context"
	"log/slog"

	"github.com/sony/gobreaker/v2"

	"github.com/linkmart/admin-api/internal/domain"
	"github.com/linkmart/admin-api/internal/platform/config"
	"github.com/linkmart/admin-api/internal/ports"
)

var _ ports.AuditStore = (*AuditStore)(nil)

// AuditStore appends audit records to the audit_logs table. Writes go through
// a circuit breaker: audit persistence is post-commit and advisory, so a
// failing audit table must shed load quickly instead of stalling every
// mutation on a timed-out insert.
type AuditStore struct {
	store   *Store
	breaker *gobreaker.CircuitBreaker[struct{}]
}

// NewAuditStore creates the audit store with a circuit breaker configured
// from cfg.
func NewAuditStore(store *Store, cfg *config.AuditConfig, logger *slog.Logger) *AuditStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "audit-store",
		MaxRequests: toUint32(cfg.CircuitBreaker.HalfOpenLimit),
		Timeout:     cfg.CircuitBreaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return int(counts.ConsecutiveFailures) >= cfg.CircuitBreaker.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	return &AuditStore{store: store, breaker: cb}
}

// Insert appends one audit record. The JSON snapshot columns are jsonb; pgx
// encodes the maps directly.
func (s *AuditStore) Insert(ctx context.Context, rec domain.AuditRecord) error {
	query := `
		INSERT INTO audit_logs (id, action, entity_type, entity_id, old_values, new_values, actor_id, context, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.breaker.Execute(func() (struct{}, error) {
		_, err := s.store.querier(ctx).Exec(ctx, query,
			rec.ID, rec.Action, rec.EntityType, rec.EntityID,
			rec.OldValues, rec.NewValues, rec.ActorID, rec.Context, rec.CreatedAt,
		)
		return struct{}{}, err
	})
	if err != nil {
		return translateErr("insert audit record", err)
	}
	return nil
}

func toUint32(v int) uint32 {
	if v < 0 {
		return 0
	}
	return uint32(v)
}
