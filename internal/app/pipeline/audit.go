package pipeline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/linkmart/admin-api/internal/domain"
)

// Entry is the caller-facing shape of an audit fact. The pipeline adds the
// record ID, the actor from the context, and the timestamp.
type Entry struct {
	Action     string // dot-namespaced verb, e.g. "category.delete"
	EntityType string
	EntityID   string
	OldValues  map[string]any
	NewValues  map[string]any
	Context    map[string]any
}

// Audit records an audit fact. Inside a unit of work the record is buffered
// and becomes durable only if that unit of work commits; a rollback discards
// it. Outside a unit of work the record is written immediately
// (fire-and-forget for system actions that run without a transaction).
//
// The timestamp is assigned here, at call time, so the stored log preserves
// business-event order even though persistence is deferred to commit. Audit
// never fails the caller: invalid entries and immediate-write failures are
// logged and dropped.
func (p *Pipeline) Audit(ctx context.Context, e Entry) {
	rec := domain.AuditRecord{
		ID:         uuid.New(),
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		OldValues:  e.OldValues,
		NewValues:  e.NewValues,
		Context:    e.Context,
		CreatedAt:  p.clock.Now(),
	}
	if actor, ok := ActorFromContext(ctx); ok {
		rec.ActorID = &actor
	}

	if err := rec.Validate(); err != nil {
		p.logger.ErrorContext(ctx, "dropping invalid audit entry",
			slog.String("operation", "Audit"),
			slog.String("action", e.Action),
			slog.Any("error", err),
		)
		return
	}

	if uow := uowFrom(ctx); uow != nil && uow.state == uowActive {
		uow.audits = append(uow.audits, rec)
		return
	}

	if err := p.audit.Insert(ctx, rec); err != nil {
		p.logger.WarnContext(ctx, "immediate audit write failed",
			slog.String("operation", "Audit"),
			slog.String("action", rec.Action),
			slog.String("entity_type", rec.EntityType),
			slog.String("entity_id", rec.EntityID),
			slog.Any("error", err),
		)
		p.countAudit(ctx, "error")
		return
	}
	p.countAudit(ctx, "ok")
}
