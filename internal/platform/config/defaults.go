package config

const (
	defaultServerPort = 8080

	defaultDatabaseMaxConns = 10
	defaultDatabaseMinConns = 2

	defaultMemoryCacheCapacity = 10_000
	defaultMemoryCacheShards   = 16
	defaultMemoryCacheEviction = 10

	defaultAuditMaxFailures = 5
	defaultAuditHalfOpen    = 1

	defaultBatchChunkSize = 50
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
func defaults() map[string]any {
	return map[string]any{
		"server.host":          "0.0.0.0",
		"server.port":          defaultServerPort,
		"server.read_timeout":  "5s",
		"server.write_timeout": "10s",
		"server.idle_timeout":  "120s",

		"log.level":  "info",
		"log.format": "json",

		"database.url":                "postgres://localhost:5432/linkmart?sslmode=disable",
		"database.max_conns":          defaultDatabaseMaxConns,
		"database.min_conns":          defaultDatabaseMinConns,
		"database.max_conn_lifetime":  "1h",
		"database.max_conn_idle_time": "30m",
		"database.connect_timeout":    "5s",

		"cache.backend":                    "memory",
		"cache.redis.addr":                 "localhost:6379",
		"cache.redis.password":             "",
		"cache.redis.db":                   0,
		"cache.redis.dial_timeout":         "5s",
		"cache.redis.read_timeout":         "3s",
		"cache.redis.write_timeout":        "3s",
		"cache.memory.capacity":            defaultMemoryCacheCapacity,
		"cache.memory.shards":              defaultMemoryCacheShards,
		"cache.memory.eviction_percentage": defaultMemoryCacheEviction,
		"cache.ttl.entity":                 "5m",
		"cache.ttl.list":                   "1m",

		"audit.circuit_breaker.max_failures":    defaultAuditMaxFailures,
		"audit.circuit_breaker.timeout":         "30s",
		"audit.circuit_breaker.half_open_limit": defaultAuditHalfOpen,

		"batch.chunk_size": defaultBatchChunkSize,

		"telemetry.enabled":  false,
		"telemetry.exporter": "stdout",
		"telemetry.endpoint": "",
	}
}
