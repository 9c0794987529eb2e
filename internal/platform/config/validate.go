package config

import (
	"errors"
	"fmt"
)

// Validate checks all configuration values and returns aggregated errors.
func (c *Config) Validate() error {
	return errors.Join(
		c.Server.validate(),
		c.Log.validate(),
		c.Database.validate(),
		c.Cache.validate(),
		c.Audit.validate(),
		c.Batch.validate(),
		c.Telemetry.validate(),
	)
}

func (s *ServerConfig) validate() error {
	var errs []error

	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", s.Port))
	}
	if s.ReadTimeout <= 0 {
		errs = append(errs, errors.New("server.read_timeout must be positive"))
	}
	if s.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server.write_timeout must be positive"))
	}

	return errors.Join(errs...)
}

func (l *LogConfig) validate() error {
	var errs []error

	switch l.Level {
	case "debug", "info", "warn", "error":
		// Valid levels.
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", l.Level))
	}

	switch l.Format {
	case "json", "text":
		// Valid formats.
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: json, text; got %q", l.Format))
	}

	return errors.Join(errs...)
}

func (d *DatabaseConfig) validate() error {
	var errs []error

	if d.URL == "" {
		errs = append(errs, errors.New("database.url must not be empty"))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Errorf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 || d.MinConns > d.MaxConns {
		errs = append(errs, fmt.Errorf("database.min_conns must be between 0 and max_conns, got %d", d.MinConns))
	}
	if d.ConnectTimeout <= 0 {
		errs = append(errs, errors.New("database.connect_timeout must be positive"))
	}

	return errors.Join(errs...)
}

func (c *CacheConfig) validate() error {
	var errs []error

	switch c.Backend {
	case "redis", "memory":
		// Valid backends.
	default:
		errs = append(errs, fmt.Errorf("cache.backend must be one of: redis, memory; got %q", c.Backend))
	}

	if c.Backend == "redis" && c.Redis.Addr == "" {
		errs = append(errs, errors.New("cache.redis.addr must not be empty when backend is redis"))
	}
	if c.Backend == "memory" {
		if c.Memory.Capacity < 1 {
			errs = append(errs, fmt.Errorf("cache.memory.capacity must be >= 1, got %d", c.Memory.Capacity))
		}
		if c.Memory.Shards < 1 {
			errs = append(errs, fmt.Errorf("cache.memory.shards must be >= 1, got %d", c.Memory.Shards))
		}
	}
	if c.TTL.Entity <= 0 {
		errs = append(errs, errors.New("cache.ttl.entity must be positive"))
	}
	if c.TTL.List <= 0 {
		errs = append(errs, errors.New("cache.ttl.list must be positive"))
	}

	return errors.Join(errs...)
}

func (a *AuditConfig) validate() error {
	var errs []error

	if a.CircuitBreaker.MaxFailures < 1 {
		errs = append(errs, fmt.Errorf("audit.circuit_breaker.max_failures must be >= 1, got %d",
			a.CircuitBreaker.MaxFailures))
	}
	if a.CircuitBreaker.Timeout <= 0 {
		errs = append(errs, errors.New("audit.circuit_breaker.timeout must be positive"))
	}

	return errors.Join(errs...)
}

func (b *BatchConfig) validate() error {
	if b.ChunkSize < 1 {
		return fmt.Errorf("batch.chunk_size must be >= 1, got %d", b.ChunkSize)
	}
	return nil
}

func (t *TelemetryConfig) validate() error {
	if !t.Enabled {
		return nil
	}

	var errs []error

	switch t.Exporter {
	case "stdout", "otlp":
		// Valid exporters.
	default:
		errs = append(errs, fmt.Errorf("telemetry.exporter must be one of: stdout, otlp; got %q", t.Exporter))
	}

	if t.Exporter == "otlp" && t.Endpoint == "" {
		errs = append(errs, errors.New("telemetry.endpoint must not be empty when exporter is otlp"))
	}

	return errors.Join(errs...)
}
