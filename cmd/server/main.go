// Package main is the entry point for the service. It wires all dependencies
// using samber/do v2, starts the HTTP server, and handles graceful shutdown
// on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/do/v2"

	adapthttp "github.com/linkmart/admin-api/internal/adapters/http"
	"github.com/linkmart/admin-api/internal/adapters/http/handlers"
	"github.com/linkmart/admin-api/internal/adapters/http/middleware"

	"github.com/linkmart/admin-api/internal/adapters/memcache"
	"github.com/linkmart/admin-api/internal/adapters/postgres"
	"github.com/linkmart/admin-api/internal/adapters/rediscache"
	"github.com/linkmart/admin-api/internal/app"
	"github.com/linkmart/admin-api/internal/app/pipeline"
	"github.com/linkmart/admin-api/internal/platform/config"
	"github.com/linkmart/admin-api/internal/platform/health"
	"github.com/linkmart/admin-api/internal/platform/logging"
	"github.com/linkmart/admin-api/internal/platform/telemetry"
	"github.com/linkmart/admin-api/internal/ports"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	serverShutdownTimeout = 15 * time.Second
	otelShutdownTimeout   = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, dev, qa, prod)")
	}

	// Bootstrap: config, logger, telemetry.
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx := context.Background()
	otel, err := initTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	pool, err := postgres.NewPool(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	// DI container.
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, pool)
	do.ProvideValue(injector, otel.metrics)

	registerDependencies(injector, cfg, logger)

	// Resolve the server (eagerly wires the full graph).
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	// Register health checkers after the graph is wired.
	registry := do.MustInvoke[ports.HealthRegistry](injector)
	registry.Register(do.MustInvoke[*postgres.Store](injector))
	if cfg.Cache.Backend == "redis" {
		if redisCache, ok := do.MustInvoke[ports.CacheBackend](injector).(*rediscache.Cache); ok {
			registry.Register(redisCache)
		}
	}

	// Start server in background.
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	// Wait for shutdown signal or server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	// Graceful shutdown: drain HTTP requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}

	// Wait for Start() goroutine to return.
	<-serverErr

	// Flush telemetry.
	otelCtx, otelCancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer otelCancel()

	if err := otel.Shutdown(otelCtx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}

	logger.Info("shutdown complete")
	return nil
}

// otelProviders bundles OpenTelemetry provider lifecycle. All fields are nil
// when telemetry is disabled.
type otelProviders struct {
	tracer  *sdktrace.TracerProvider
	meter   *sdkmetric.MeterProvider
	metrics *telemetry.Metrics
}

// Shutdown flushes both providers. Nil-safe.
func (o *otelProviders) Shutdown(ctx context.Context) error {
	var errs []error
	if o.tracer != nil {
		if err := o.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if o.meter != nil {
		if err := o.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

func initTelemetry(ctx context.Context, cfg *config.Config) (*otelProviders, error) {
	if !cfg.Telemetry.Enabled {
		return &otelProviders{}, nil
	}

	tp, err := telemetry.InitTracer(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	mp, err := telemetry.InitMeter(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}

	metrics, err := telemetry.NewMetrics(mp)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &otelProviders{
		tracer:  tp,
		meter:   mp,
		metrics: metrics,
	}, nil
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(i do.Injector) (*postgres.Store, error) {
		pool := do.MustInvoke[*pgxpool.Pool](i)
		return postgres.NewStore(pool), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.CacheBackend, error) {
		switch cfg.Cache.Backend {
		case "redis":
			return rediscache.New(&cfg.Cache.Redis), nil
		case "memory":
			return memcache.New(&cfg.Cache), nil
		default:
			return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
		}
	})

	do.Provide(injector, func(i do.Injector) (ports.AuditStore, error) {
		store := do.MustInvoke[*postgres.Store](i)
		return postgres.NewAuditStore(store, &cfg.Audit, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*pipeline.Pipeline, error) {
		store := do.MustInvoke[*postgres.Store](i)
		cache := do.MustInvoke[ports.CacheBackend](i)
		audit := do.MustInvoke[ports.AuditStore](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return pipeline.New(store, cache, audit, logger, pipeline.WithMetrics(metrics)), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.LinkRepository, error) {
		return postgres.NewLinkRepository(do.MustInvoke[*postgres.Store](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.CategoryRepository, error) {
		return postgres.NewCategoryRepository(do.MustInvoke[*postgres.Store](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.ProductRepository, error) {
		return postgres.NewProductRepository(do.MustInvoke[*postgres.Store](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.AdminRepository, error) {
		return postgres.NewAdminRepository(do.MustInvoke[*postgres.Store](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.MarketplaceRepository, error) {
		return postgres.NewMarketplaceRepository(do.MustInvoke[*postgres.Store](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.LinkService, error) {
		pipe := do.MustInvoke[*pipeline.Pipeline](i)
		links := do.MustInvoke[ports.LinkRepository](i)
		return app.NewLinkService(pipe, links, &cfg.Cache, &cfg.Batch, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.CategoryService, error) {
		pipe := do.MustInvoke[*pipeline.Pipeline](i)
		categories := do.MustInvoke[ports.CategoryRepository](i)
		return app.NewCategoryService(pipe, categories, &cfg.Cache, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.ProductService, error) {
		pipe := do.MustInvoke[*pipeline.Pipeline](i)
		products := do.MustInvoke[ports.ProductRepository](i)
		return app.NewProductService(pipe, products, &cfg.Cache, &cfg.Batch, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.AdminService, error) {
		pipe := do.MustInvoke[*pipeline.Pipeline](i)
		admins := do.MustInvoke[ports.AdminRepository](i)
		return app.NewAdminService(pipe, admins, &cfg.Batch, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.MarketplaceService, error) {
		pipe := do.MustInvoke[*pipeline.Pipeline](i)
		marketplaces := do.MustInvoke[ports.MarketplaceRepository](i)
		return app.NewMarketplaceService(pipe, marketplaces, &cfg.Cache, logger), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.LinkHandler, error) {
		return handlers.NewLinkHandler(do.MustInvoke[ports.LinkService](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.CategoryHandler, error) {
		return handlers.NewCategoryHandler(do.MustInvoke[ports.CategoryService](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.ProductHandler, error) {
		return handlers.NewProductHandler(do.MustInvoke[ports.ProductService](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.AdminHandler, error) {
		return handlers.NewAdminHandler(do.MustInvoke[ports.AdminService](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.MarketplaceHandler, error) {
		return handlers.NewMarketplaceHandler(do.MustInvoke[ports.MarketplaceService](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		registry := do.MustInvoke[ports.HealthRegistry](i)
		return handlers.NewHealthHandler(registry), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		linkH := do.MustInvoke[*handlers.LinkHandler](i)
		categoryH := do.MustInvoke[*handlers.CategoryHandler](i)
		productH := do.MustInvoke[*handlers.ProductHandler](i)
		adminH := do.MustInvoke[*handlers.AdminHandler](i)
		marketplaceH := do.MustInvoke[*handlers.MarketplaceHandler](i)
		healthH := do.MustInvoke[*handlers.HealthHandler](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		return adapthttp.NewRouter(linkH, categoryH, productH, adminH, marketplaceH, healthH,
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.CorrelationID(),
			middleware.Actor(),
			middleware.OpenTelemetry(metrics),
			middleware.Logging(logger),
			middleware.Timeout(cfg.Server.WriteTimeout),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}
