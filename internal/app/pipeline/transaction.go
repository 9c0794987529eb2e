package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/linkmart/admin-api/internal/domain"
	"github.com/linkmart/admin-api/internal/ports"
)

// ErrStore marks infrastructure failures of the persistence backend (begin or
// commit). Callers use errors.Is(err, ErrStore) to distinguish them from
// business errors returned by transaction bodies.
var ErrStore = errors.New("pipeline: storage failure")

// ErrRollbackOnly is returned by the outermost Transaction when a nested
// transaction body failed but an intermediate caller swallowed the error.
// A unit of work that saw a failure is never committed.
var ErrRollbackOnly = errors.New("pipeline: unit of work flagged rollback-only")

// StoreError wraps a persistence backend failure with the operation and the
// unit-of-work label that triggered it. Unwraps to both ErrStore and the
// underlying cause.
type StoreError struct {
	Op    string // "begin" or "commit"
	Label string
	Err   error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("pipeline: %s %q: %v", e.Op, e.Label, e.Err)
}

func (e *StoreError) Unwrap() []error {
	return []error{ErrStore, e.Err}
}

// uowState tracks the lifecycle of a unit of work.
type uowState int

const (
	uowActive uowState = iota
	uowCommitted
	uowRolledBack
)

// unitOfWork is the per-request transaction state: the open transaction, the
// queued invalidation targets, and the pending audit buffer. It is stored in
// the context by the outermost Transaction call and reused (depth counted) by
// nested calls. Not safe for concurrent use; one unit of work belongs to one
// request goroutine.
type unitOfWork struct {
	label    string
	tx       ports.Tx
	depth    int
	state    uowState
	targets  []string // FIFO; deduplicated at flush time by literal string
	audits   []domain.AuditRecord
	failed   bool  // a body at some depth returned an error or panicked
	cause    error // first failure, kept for the rollback-only report
	warnings []error
}

// fail flags the unit of work so the outermost call refuses to commit, even
// if an intermediate caller swallows the error.
func (u *unitOfWork) fail(err error) {
	u.failed = true
	if u.cause == nil {
		u.cause = err
	}
}

// uowKey is the context key for the active unit of work.
type uowKey struct{}

func uowFrom(ctx context.Context) *unitOfWork {
	u, _ := ctx.Value(uowKey{}).(*unitOfWork)
	return u
}

// Receipt reports the outcome of a committed Transaction call. Warnings hold
// post-commit side-effect failures (cache flush, audit write); these never
// undo the commit. Nested calls return a receipt with
// Committed=false; only the outermost call flushes and commits.
type Receipt struct {
	Label     string
	Committed bool
	Warnings  []error
}

// Transaction runs body inside a unit of work and returns whatever body
// returns. On the outermost call it begins a database transaction, and on
// normal return commits it, then flushes queued cache invalidations and
// persists buffered audit records. On error it rolls back and discards both
// queues, returning body's error unchanged. Post-commit warnings are logged.
//
// Nested calls on a context that already carries a unit of work join it:
// no extra begin/commit happens, and a nested failure flags the whole unit
// of work for rollback.
func (p *Pipeline) Transaction(ctx context.Context, label string, body func(ctx context.Context) error) error {
	receipt, err := p.TransactionReceipt(ctx, label, body)
	if err != nil {
		return err
	}
	for _, w := range receipt.Warnings {
		p.logger.WarnContext(ctx, "post-commit side effect failed",
			slog.String("operation", "Transaction"),
			slog.String("label", label),
			slog.Any("error", w),
		)
	}
	return nil
}

// TransactionReceipt is Transaction for callers that need the post-commit
// warnings instead of having them logged.
func (p *Pipeline) TransactionReceipt(ctx context.Context, label string, body func(ctx context.Context) error) (*Receipt, error) {
	if uow := uowFrom(ctx); uow != nil {
		return p.runNested(ctx, uow, label, body)
	}
	return p.runOutermost(ctx, label, body)
}

// Transact runs a value-returning body inside a unit of work. It exists
// because methods cannot have type parameters; it delegates to Transaction.
func Transact[T any](ctx context.Context, p *Pipeline, label string, body func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := p.Transaction(ctx, label, func(ctx context.Context) error {
		v, err := body(ctx)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// runNested joins an existing unit of work. No begin, commit, or flush
// happens at this level; a failure here flags the shared unit of work so the
// outermost call rolls everything back.
func (p *Pipeline) runNested(ctx context.Context, uow *unitOfWork, label string, body func(ctx context.Context) error) (*Receipt, error) {
	uow.depth++
	defer func() {
		uow.depth--
		if v := recover(); v != nil {
			uow.fail(fmt.Errorf("panic in %q: %v", label, v))
			panic(v)
		}
	}()

	if err := body(ctx); err != nil {
		uow.fail(err)
		return &Receipt{Label: label}, err
	}
	return &Receipt{Label: label}, nil
}

// runOutermost owns the physical transaction: begin, run body, then exactly
// one commit or rollback. The queues are flushed only after the commit call
// has returned success.
func (p *Pipeline) runOutermost(ctx context.Context, label string, body func(ctx context.Context) error) (*Receipt, error) {
	start := p.clock.Now()

	txCtx, tx, err := p.store.Begin(ctx)
	if err != nil {
		return nil, &StoreError{Op: "begin", Label: label, Err: err}
	}

	uow := &unitOfWork{label: label, tx: tx, depth: 1}
	bodyCtx := context.WithValue(txCtx, uowKey{}, uow)

	defer func() {
		if v := recover(); v != nil {
			p.rollback(ctx, uow)
			panic(v)
		}
	}()

	bodyErr := body(bodyCtx)
	uow.depth--

	if bodyErr != nil || uow.failed {
		p.rollback(ctx, uow)
		if bodyErr != nil {
			return nil, bodyErr
		}
		// A nested body failed and some caller in between swallowed the
		// error; committing now would persist a unit of work that saw a
		// failure.
		return nil, fmt.Errorf("transaction %q: %w", label, errors.Join(ErrRollbackOnly, uow.cause))
	}

	if err := uow.tx.Commit(ctx); err != nil {
		_ = uow.tx.Rollback(ctx) // best effort; most drivers already closed the tx
		p.discard(ctx, uow)
		return nil, &StoreError{Op: "commit", Label: label, Err: err}
	}
	uow.state = uowCommitted

	warnings := p.flush(ctx, uow)
	p.countTransaction(ctx, "commit", p.clock.Now().Sub(start))

	return &Receipt{Label: label, Committed: true, Warnings: warnings}, nil
}

// rollback undoes the physical transaction and discards both queues.
func (p *Pipeline) rollback(ctx context.Context, uow *unitOfWork) {
	if err := uow.tx.Rollback(ctx); err != nil {
		p.logger.ErrorContext(ctx, "rollback failed",
			slog.String("operation", "Transaction"),
			slog.String("label", uow.label),
			slog.Any("error", err),
		)
	}
	p.discard(ctx, uow)
	p.countTransaction(ctx, "rollback", 0)
}

// discard drops queued invalidations and buffered audit records without
// applying them, and marks the unit of work finished.
func (p *Pipeline) discard(ctx context.Context, uow *unitOfWork) {
	if n := len(uow.targets) + len(uow.audits); n > 0 {
		p.logger.DebugContext(ctx, "discarding pending side effects",
			slog.String("label", uow.label),
			slog.Int("invalidations", len(uow.targets)),
			slog.Int("audit_records", len(uow.audits)),
		)
	}
	uow.targets = nil
	uow.audits = nil
	uow.state = uowRolledBack
}

// flush applies queued cache invalidations (deduplicated, FIFO) and persists
// buffered audit records. Called only after a confirmed commit. Every failure
// is collected as a warning and the remaining work continues: the business
// mutation is durable and must not be failed retroactively.
func (p *Pipeline) flush(ctx context.Context, uow *unitOfWork) []error {
	var warnings []error

	seen := make(map[string]struct{}, len(uow.targets))
	for _, target := range uow.targets {
		if _, dup := seen[target]; dup {
			continue
		}
		seen[target] = struct{}{}

		if err := p.applyInvalidation(ctx, target); err != nil {
			warnings = append(warnings, fmt.Errorf("invalidate %q: %w", target, err))
		}
	}

	for _, rec := range uow.audits {
		if err := p.audit.Insert(ctx, rec); err != nil {
			warnings = append(warnings, fmt.Errorf("audit %s %s/%s: %w", rec.Action, rec.EntityType, rec.EntityID, err))
			p.countAudit(ctx, "error")
			continue
		}
		p.countAudit(ctx, "ok")
	}

	uow.targets = nil
	uow.audits = nil
	uow.warnings = warnings
	p.countWarnings(ctx, len(warnings))

	return warnings
}

func (p *Pipeline) countTransaction(ctx context.Context, result string, elapsed time.Duration) {
	if p.metrics == nil {
		return
	}
	p.metrics.CountTransaction(ctx, result, elapsed)
}

func (p *Pipeline) countAudit(ctx context.Context, result string) {
	if p.metrics == nil {
		return
	}
	p.metrics.CountAuditWrite(ctx, result)
}

func (p *Pipeline) countWarnings(ctx context.Context, n int) {
	if p.metrics == nil || n == 0 {
		return
	}
	p.metrics.CountPipelineWarnings(ctx, n)
}
