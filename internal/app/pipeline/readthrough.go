package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/linkmart/admin-api/internal/ports"
)

// ReadThrough serves key from the cache backend, invoking producer and
// storing its JSON-encoded result with the given TTL on a miss. It is a pure
// read-through wrapper with no transaction semantics: producer may itself
// open a Transaction, queue invalidations, or record audit entries.
//
// A cache backend failure degrades to calling producer, so reads keep
// working through a cache outage. Because invalidation is deferred to commit
// time, a read racing a concurrent writer may return a value that the
// writer's flush is about to delete; that eventual-consistency window is
// accepted, and callers needing read-after-write must re-read after a known
// commit point instead.
func ReadThrough[T any](ctx context.Context, p *Pipeline, key string, ttl time.Duration, producer func(ctx context.Context) (T, error)) (T, error) {
	raw, err := p.cache.Get(ctx, key)
	switch {
	case err == nil:
		var v T
		if uerr := json.Unmarshal(raw, &v); uerr == nil {
			p.countCacheRead(ctx, "hit")
			return v, nil
		}
		// Undecodable entry (serialization change, corruption): treat as a
		// miss and overwrite below.
		p.logger.WarnContext(ctx, "dropping undecodable cache entry",
			slog.String("operation", "ReadThrough"),
			slog.String("key", key),
		)
	case !errors.Is(err, ports.ErrCacheMiss):
		p.logger.WarnContext(ctx, "cache read failed",
			slog.String("operation", "ReadThrough"),
			slog.String("key", key),
			slog.Any("error", err),
		)
	}
	p.countCacheRead(ctx, "miss")

	v, err := producer(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if raw, merr := json.Marshal(v); merr != nil {
		p.logger.WarnContext(ctx, "cache encode failed",
			slog.String("operation", "ReadThrough"),
			slog.String("key", key),
			slog.Any("error", merr),
		)
	} else if serr := p.cache.Set(ctx, key, raw, ttl); serr != nil {
		p.logger.WarnContext(ctx, "cache store failed",
			slog.String("operation", "ReadThrough"),
			slog.String("key", key),
			slog.Any("error", serr),
		)
	}

	return v, nil
}

// CacheKey joins segments into a cache key using the ':' convention shared
// with invalidation patterns (e.g. CacheKey("link", id) matches "link:*").
func CacheKey(segments ...string) string {
	return strings.Join(segments, ":")
}

// countCacheRead records a cache hit or miss.
func (p *Pipeline) countCacheRead(ctx context.Context, result string) {
	if p.metrics == nil {
		return
	}
	p.metrics.CountCacheRead(ctx, result)
}
