// Package rediscache implements the cache backend over a shared Redis
// instance. Pattern deletion walks the keyspace with SCAN, so glob targets
// never block Redis the way KEYS would.
package rediscache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/linkmart/admin-api/internal/platform/config"
	"github.com/linkmart/admin-api/internal/ports"
)

// Compile-time interface check.
var _ ports.CacheBackend = (*Cache)(nil)

// scanBatchSize is the COUNT hint for SCAN during pattern deletion.
const scanBatchSize = 200

// Cache is the Redis-backed cache adapter.
type Cache struct {
	client *redis.Client
}

// New creates a Redis cache client from the config.
func New(cfg *config.RedisConfig) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
	return &Cache{client: client}
}

// Get returns the value stored under key, or ports.ErrCacheMiss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ports.ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}
	return raw, nil
}

// Set stores value under key with the given TTL.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// Delete removes a single key. Absent keys are not an error.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}

// DeleteMatching removes every key matching the glob pattern. Redis MATCH
// syntax is the same glob dialect the pipeline queues ('*', '?', '[...]').
func (c *Cache) DeleteMatching(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, scanBatchSize).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("redis del %q: %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan %q: %w", pattern, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (c *Cache) Close() error {
	return c.client.Close()
}

// Name implements ports.HealthChecker.
func (c *Cache) Name() string { return "redis" }

// HealthCheck reports whether Redis answers a ping.
func (c *Cache) HealthCheck(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
