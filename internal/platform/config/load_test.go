package config_test

import (
	"testing"
	"time"

	"github.com/linkmart/admin-api/internal/platform/config"
)

func TestLoad_LocalProfile(t *testing.T) {
	t.Chdir("../../..")

	cfg, err := config.Load("local")
	if err != nil {
		t.Fatalf("Load(\"local\") error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want \"debug\"", cfg.Log.Level)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want \"text\"", cfg.Log.Format)
	}
	if cfg.Cache.Backend != "memory" {
		t.Errorf("Cache.Backend = %q, want \"memory\" for local", cfg.Cache.Backend)
	}
	if cfg.Telemetry.Enabled {
		t.Error("Telemetry.Enabled = true, want false for local")
	}
}

func TestLoad_ProdProfile(t *testing.T) {
	t.Chdir("../../..")

	cfg, err := config.Load("prod")
	if err != nil {
		t.Fatalf("Load(\"prod\") error: %v", err)
	}

	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want \"info\"", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want \"json\"", cfg.Log.Format)
	}
	if cfg.Cache.Backend != "redis" {
		t.Errorf("Cache.Backend = %q, want \"redis\" for prod", cfg.Cache.Backend)
	}
	if !cfg.Telemetry.Enabled {
		t.Error("Telemetry.Enabled = false, want true for prod")
	}
	if cfg.Telemetry.Exporter != "otlp" {
		t.Errorf("Telemetry.Exporter = %q, want \"otlp\"", cfg.Telemetry.Exporter)
	}
	if cfg.Telemetry.Endpoint == "" {
		t.Error("Telemetry.Endpoint is empty, want non-empty for prod")
	}
}

func TestLoad_BaseConfigInheritance(t *testing.T) {
	t.Chdir("../../..")

	cfg, err := config.Load("local")
	if err != nil {
		t.Fatalf("Load(\"local\") error: %v", err)
	}

	// These come from base.yaml, not overridden by local.yaml.
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want \"0.0.0.0\" (from base)", cfg.Server.Host)
	}
	if cfg.Database.MaxConns != 10 {
		t.Errorf("Database.MaxConns = %d, want 10 (from base)", cfg.Database.MaxConns)
	}
	if cfg.Audit.CircuitBreaker.MaxFailures != 5 {
		t.Errorf("Audit.CircuitBreaker.MaxFailures = %d, want 5 (from base)",
			cfg.Audit.CircuitBreaker.MaxFailures)
	}
}

func TestLoad_DefaultsApplied(t *testing.T) {
	t.Chdir("../../..")

	cfg, err := config.Load("local")
	if err != nil {
		t.Fatalf("Load(\"local\") error: %v", err)
	}

	// Not present in any YAML file; comes from built-in defaults.
	if cfg.Batch.ChunkSize != 50 {
		t.Errorf("Batch.ChunkSize = %d, want 50 (from defaults)", cfg.Batch.ChunkSize)
	}
	if cfg.Cache.Memory.Shards != 16 {
		t.Errorf("Cache.Memory.Shards = %d, want 16 (from defaults)", cfg.Cache.Memory.Shards)
	}
}

func TestLoad_EnvOverrideSimpleKey(t *testing.T) {
	t.Chdir("../../..")
	t.Setenv("APP_SERVER_PORT", "9090")

	cfg, err := config.Load("local")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090 (env override)", cfg.Server.Port)
	}
}

func TestLoad_EnvOverrideSnakeCaseKey(t *testing.T) {
	t.Chdir("../../..")
	t.Setenv("APP_SERVER_READ_TIMEOUT", "15s")

	cfg, err := config.Load("local")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	want := 15 * time.Second
	if cfg.Server.ReadTimeout != want {
		t.Errorf("Server.ReadTimeout = %v, want %v (env override)", cfg.Server.ReadTimeout, want)
	}
}

func TestLoad_EnvOverrideDeeplyNestedKey(t *testing.T) {
	t.Chdir("../../..")
	t.Setenv("APP_AUDIT_CIRCUIT_BREAKER_MAX_FAILURES", "7")

	cfg, err := config.Load("local")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Audit.CircuitBreaker.MaxFailures != 7 {
		t.Errorf("Audit.CircuitBreaker.MaxFailures = %d, want 7 (env override)",
			cfg.Audit.CircuitBreaker.MaxFailures)
	}
}

func TestLoad_MissingProfile(t *testing.T) {
	t.Chdir("../../..")

	_, err := config.Load("nonexistent")
	if err == nil {
		t.Fatal("Load(\"nonexistent\") returned nil error, want error")
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	cfg.Server.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() returned nil, want error for port=0")
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	cfg.Log.Level = "verbose"

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() returned nil, want error for invalid log level")
	}
}

func TestValidate_InvalidCacheBackend(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	cfg.Cache.Backend = "memcached"

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() returned nil, want error for invalid cache backend")
	}
}

func TestValidate_RedisBackendWithoutAddr(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	cfg.Cache.Backend = "redis"
	cfg.Cache.Redis.Addr = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() returned nil, want error for redis backend without addr")
	}
}

func TestValidate_MinConnsAboveMaxConns(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	cfg.Database.MinConns = 20
	cfg.Database.MaxConns = 10

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() returned nil, want error for min_conns > max_conns")
	}
}

func TestValidate_InvalidChunkSize(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	cfg.Batch.ChunkSize = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() returned nil, want error for chunk_size=0")
	}
}

func TestValidate_OtlpWithoutEndpoint(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	cfg.Telemetry.Enabled = true
	cfg.Telemetry.Exporter = "otlp"
	cfg.Telemetry.Endpoint = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() returned nil, want error for otlp without endpoint")
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned error for valid config: %v", err)
	}
}

// validBaseConfig returns a Config with all fields set to valid values.
func validBaseConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		Log: config.LogConfig{
			Level:  "info",
			Format: "json",
		},
		Database: config.DatabaseConfig{
			URL:             "postgres://localhost:5432/linkmart?sslmode=disable",
			MaxConns:        10,
			MinConns:        2,
			MaxConnLifetime: time.Hour,
			MaxConnIdleTime: 30 * time.Minute,
			ConnectTimeout:  5 * time.Second,
		},
		Cache: config.CacheConfig{
			Backend: "memory",
			Memory: config.MemoryCacheConfig{
				Capacity:           10_000,
				Shards:             16,
				EvictionPercentage: 10,
			},
			TTL: config.CacheTTLConfig{
				Entity: 5 * time.Minute,
				List:   time.Minute,
			},
		},
		Audit: config.AuditConfig{
			CircuitBreaker: config.CircuitBreakerConfig{
				MaxFailures:   5,
				Timeout:       30 * time.Second,
				HalfOpenLimit: 1,
			},
		},
		Batch: config.BatchConfig{
			ChunkSize: 50,
		},
		Telemetry: config.TelemetryConfig{
			Enabled:  false,
			Exporter: "stdout",
		},
	}
}
