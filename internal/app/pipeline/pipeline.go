// Package pipeline implements the transactional mutation pipeline that every
// entity service writes through: context-scoped units of work, deferred cache
// invalidation, transactionally-scoped audit recording, cache-aside reads,
// and chunked batch execution with per-item failure isolation.
//
// A unit of work is opened by Transaction and travels in the context, so
// nested Transaction calls on the same context share one physical database
// transaction:
//
//	err := p.Transaction(ctx, "link.update", func(ctx context.Context) error {
//	    if err := repo.Save(ctx, link); err != nil {
//	        return err
//	    }
//	    p.QueueInvalidation(ctx, "link:"+link.ID.String())
//	    p.QueueInvalidation(ctx, "product_links:*")
//	    p.Audit(ctx, pipeline.Entry{Action: "link.update", ...})
//	    return nil
//	})
//
// Cache deletions and audit writes queued inside the body are applied only
// after the database commit succeeds; on any error they are discarded along
// with the rollback. Post-commit side-effect failures never undo the commit;
// they surface as Receipt warnings.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/linkmart/admin-api/internal/platform/clock"
	"github.com/linkmart/admin-api/internal/platform/telemetry"
	"github.com/linkmart/admin-api/internal/ports"
)

// Pipeline coordinates the persistence, cache, and audit backends for all
// mutating operations. One Pipeline instance is shared by every entity
// service; all per-request state lives in the context, never on the struct.
type Pipeline struct {
	store   ports.TxStore
	cache   ports.CacheBackend
	audit   ports.AuditStore
	logger  *slog.Logger
	metrics *telemetry.Metrics
	clock   clock.Clock
}

// Option configures optional Pipeline collaborators.
type Option func(*Pipeline)

// WithMetrics attaches pre-registered metric instruments.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// WithClock replaces the system clock, used by tests to control audit
// timestamps.
func WithClock(c clock.Clock) Option {
	return func(p *Pipeline) { p.clock = c }
}

// New creates a Pipeline over the three backends. A nil logger discards logs.
func New(store ports.TxStore, cache ports.CacheBackend, audit ports.AuditStore, logger *slog.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	p := &Pipeline{
		store:  store,
		cache:  cache,
		audit:  audit,
		logger: logger,
		clock:  clock.System{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// actorKey is the context key for the acting admin's identity.
type actorKey struct{}

// WithActor returns a context carrying the acting admin's ID. The HTTP layer
// installs it after authentication; Audit reads it when building records.
// There is deliberately no process-global fallback: a context without an
// actor produces system-initiated audit records.
func WithActor(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, actorKey{}, id)
}

// ActorFromContext extracts the acting admin's ID from the context.
func ActorFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(actorKey{}).(uuid.UUID)
	return id, ok
}
