package pipeline

import (
	"context"
	"log/slog"
	"strings"
)

// patternMetachars are the glob metacharacters that mark an invalidation
// target as a pattern rather than an exact key.
const patternMetachars = "*?["

// isPattern reports whether target should be applied with DeleteMatching.
func isPattern(target string) bool {
	return strings.ContainsAny(target, patternMetachars)
}

// QueueInvalidation records a cache key or glob pattern to delete when the
// enclosing unit of work commits. Duplicate targets are flushed once. If the
// unit of work rolls back, the target is discarded and the cache is left
// untouched.
//
// Outside a unit of work the target is applied to the cache immediately,
// best effort, matching Audit's behavior for out-of-transaction callers.
func (p *Pipeline) QueueInvalidation(ctx context.Context, target string) {
	if target == "" {
		return
	}

	if uow := uowFrom(ctx); uow != nil && uow.state == uowActive {
		uow.targets = append(uow.targets, target)
		return
	}

	if err := p.applyInvalidation(ctx, target); err != nil {
		p.logger.WarnContext(ctx, "immediate cache invalidation failed",
			slog.String("operation", "QueueInvalidation"),
			slog.String("target", target),
			slog.Any("error", err),
		)
	}
}

// applyInvalidation deletes one target from the cache backend, choosing
// pattern or exact-key deletion from the target's shape.
func (p *Pipeline) applyInvalidation(ctx context.Context, target string) error {
	if isPattern(target) {
		return p.cache.DeleteMatching(ctx, target)
	}
	return p.cache.Delete(ctx, target)
}
