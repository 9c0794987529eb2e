// Package memcache implements the cache backend in process, for local
// development and single-replica deployments where a shared Redis is not
// worth running. Entries live in a sharded sturdyc store; per-key TTLs are
// enforced on read because the backing store only supports one client-wide
// TTL.
package memcache

import (
	"context"
	"fmt"
	"time"

	"github.com/gobwas/glob"
	"github.com/viccon/sturdyc"

	"github.com/linkmart/admin-api/internal/platform/clock"
	"github.com/linkmart/admin-api/internal/platform/config"
	"github.com/linkmart/admin-api/internal/ports"
)

// Compile-time interface check.
var _ ports.CacheBackend = (*Cache)(nil)

// entry is a stored value with its own expiry deadline.
type entry struct {
	value    []byte
	deadline time.Time
}

// Cache is the in-process cache adapter.
type Cache struct {
	client *sturdyc.Client[entry]
	clock  clock.Clock
}

// Option configures optional Cache collaborators.
type Option func(*Cache)

// WithClock replaces the system clock, used by tests to control expiry.
func WithClock(c clock.Clock) Option {
	return func(m *Cache) { m.clock = c }
}

// New creates an in-process cache. The backing store's own eviction TTL is
// the larger of the configured entity and list TTLs; per-key deadlines below
// that are enforced by Get.
func New(cfg *config.CacheConfig, opts ...Option) *Cache {
	baseTTL := cfg.TTL.Entity
	if cfg.TTL.List > baseTTL {
		baseTTL = cfg.TTL.List
	}

	c := &Cache{
		client: sturdyc.New[entry](
			cfg.Memory.Capacity,
			cfg.Memory.Shards,
			baseTTL,
			cfg.Memory.EvictionPercentage,
		),
		clock: clock.System{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the value stored under key, or ports.ErrCacheMiss when the key
// is absent or past its deadline. Expired entries are removed on read.
func (c *Cache) Get(_ context.Context, key string) ([]byte, error) {
	e, ok := c.client.Get(key)
	if !ok {
		return nil, ports.ErrCacheMiss
	}
	if c.clock.Now().After(e.deadline) {
		c.client.Delete(key)
		return nil, ports.ErrCacheMiss
	}
	return e.value, nil
}

// Set stores value under key with the given TTL.
func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.client.Set(key, entry{value: value, deadline: c.clock.Now().Add(ttl)})
	return nil
}

// Delete removes a single key. Absent keys are not an error.
func (c *Cache) Delete(_ context.Context, key string) error {
	c.client.Delete(key)
	return nil
}

// DeleteMatching removes every key matching the glob pattern.
func (c *Cache) DeleteMatching(_ context.Context, pattern string) error {
	matcher, err := glob.Compile(pattern)
	if err != nil {
		return fmt.Errorf("compiling pattern %q: %w", pattern, err)
	}

	for _, key := range c.client.ScanKeys() {
		if matcher.Match(key) {
			c.client.Delete(key)
		}
	}
	return nil
}

// Name implements ports.HealthChecker.
func (c *Cache) Name() string { return "memcache" }

// HealthCheck always reports healthy; the store is in process.
func (c *Cache) HealthCheck(_ context.Context) error {
	return nil
}
