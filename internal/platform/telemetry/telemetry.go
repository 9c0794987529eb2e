// Package telemetry provides OpenTelemetry tracer and meter initialization
// with support for stdout (development) and OTLP/HTTP (production) exporters.
//
// Tracer initialization:
//
//	tp, err := telemetry.InitTracer(ctx, "my-service", "stdout", "")
//	defer tp.Shutdown(ctx)
//
// Meter initialization:
//
//	mp, err := telemetry.InitMeter(ctx, "my-service", "stdout", "")
//	defer mp.Shutdown(ctx)
//
// Pre-registered metrics:
//
//	metrics, err := telemetry.NewMetrics(mp)
//	metrics.ServerRequestTotal.Add(ctx, 1, ...)
package telemetry

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"
)

// Exporter selector values accepted by InitTracer and InitMeter.
const (
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// Attribute keys for metric labels.
var (
	AttrHTTPMethod = attribute.Key("http.method")
	AttrHTTPStatus = attribute.Key("http.status_code")
	AttrResult     = attribute.Key("result")
)

// Metrics holds pre-registered OpenTelemetry metric instruments for the HTTP
// server and the mutation pipeline.
type Metrics struct {
	ServerRequestDuration metric.Float64Histogram
	ServerRequestTotal    metric.Int64Counter

	TransactionDuration metric.Float64Histogram
	TransactionTotal    metric.Int64Counter
	CacheReadTotal      metric.Int64Counter
	AuditWriteTotal     metric.Int64Counter
	BatchItemTotal      metric.Int64Counter
	PipelineWarnTotal   metric.Int64Counter
}

// InitTracer creates and registers a global TracerProvider.
//
// The exporter parameter selects the span exporter: "otlp" uses OTLP/HTTP
// with the given endpoint; any other value (including "stdout") uses a
// pretty-printed stdout exporter for development.
//
// The returned TracerProvider must be shut down when the application exits.
func InitTracer(ctx context.Context, serviceName, exporter, endpoint string) (*sdktrace.TracerProvider, error) {
	res, err := newResource(serviceName)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	spanExporter, err := newSpanExporter(ctx, exporter, endpoint)
	if err != nil {
		return nil, fmt.Errorf("creating span exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(spanExporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp, nil
}

// InitMeter creates and registers a global MeterProvider.
//
// The exporter parameter selects the metric exporter: "otlp" uses OTLP/HTTP
// with the given endpoint; any other value (including "stdout") uses a
// stdout exporter for development.
//
// The returned MeterProvider must be shut down when the application exits.
func InitMeter(ctx context.Context, serviceName, exporter, endpoint string) (*sdkmetric.MeterProvider, error) {
	res, err := newResource(serviceName)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	metricExporter, err := newMetricExporter(ctx, exporter, endpoint)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	return mp, nil
}

// NewMetrics creates and registers all metric instruments using the given MeterProvider.
// The meter is scoped to the service's module path.
func NewMetrics(mp *sdkmetric.MeterProvider) (*Metrics, error) {
	meter := mp.Meter("github.com/linkmart/admin-api")

	serverDuration, err := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("Duration of incoming HTTP requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating http.server.request.duration: %w", err)
	}

	serverTotal, err := meter.Int64Counter(
		"http.server.request.total",
		metric.WithDescription("Total number of incoming HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating http.server.request.total: %w", err)
	}

	txnDuration, err := meter.Float64Histogram(
		"pipeline.transaction.duration",
		metric.WithDescription("Duration of outermost units of work"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.transaction.duration: %w", err)
	}

	txnTotal, err := meter.Int64Counter(
		"pipeline.transaction.total",
		metric.WithDescription("Total number of outermost units of work"),
		metric.WithUnit("{transaction}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.transaction.total: %w", err)
	}

	cacheReadTotal, err := meter.Int64Counter(
		"pipeline.cache.read.total",
		metric.WithDescription("Total number of read-through cache lookups"),
		metric.WithUnit("{read}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.cache.read.total: %w", err)
	}

	auditWriteTotal, err := meter.Int64Counter(
		"pipeline.audit.write.total",
		metric.WithDescription("Total number of audit record writes"),
		metric.WithUnit("{write}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.audit.write.total: %w", err)
	}

	batchItemTotal, err := meter.Int64Counter(
		"pipeline.batch.item.total",
		metric.WithDescription("Total number of batch items processed"),
		metric.WithUnit("{item}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.batch.item.total: %w", err)
	}

	warnTotal, err := meter.Int64Counter(
		"pipeline.warning.total",
		metric.WithDescription("Total number of post-commit warnings"),
		metric.WithUnit("{warning}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.warning.total: %w", err)
	}

	return &Metrics{
		ServerRequestDuration: serverDuration,
		ServerRequestTotal:    serverTotal,
		TransactionDuration:   txnDuration,
		TransactionTotal:      txnTotal,
		CacheReadTotal:        cacheReadTotal,
		AuditWriteTotal:       auditWriteTotal,
		BatchItemTotal:        batchItemTotal,
		PipelineWarnTotal:     warnTotal,
	}, nil
}

// CountTransaction records the outcome and duration of an outermost unit of
// work. The result attribute is one of "committed", "rolled_back" or "error".
func (m *Metrics) CountTransaction(ctx context.Context, result string, elapsed time.Duration) {
	attrs := metric.WithAttributes(AttrResult.String(result))
	m.TransactionTotal.Add(ctx, 1, attrs)
	m.TransactionDuration.Record(ctx, elapsed.Seconds(), attrs)
}

// CountCacheRead records a read-through lookup with result "hit" or "miss".
func (m *Metrics) CountCacheRead(ctx context.Context, result string) {
	m.CacheReadTotal.Add(ctx, 1, metric.WithAttributes(AttrResult.String(result)))
}

// CountAuditWrite records an audit store write with result "ok" or "error".
func (m *Metrics) CountAuditWrite(ctx context.Context, result string) {
	m.AuditWriteTotal.Add(ctx, 1, metric.WithAttributes(AttrResult.String(result)))
}

// CountBatchItem records a processed batch item with result "succeeded",
// "failed" or "skipped".
func (m *Metrics) CountBatchItem(ctx context.Context, result string) {
	m.BatchItemTotal.Add(ctx, 1, metric.WithAttributes(AttrResult.String(result)))
}

// CountPipelineWarnings records n post-commit warnings surfaced by a flush.
func (m *Metrics) CountPipelineWarnings(ctx context.Context, n int) {
	if n <= 0 {
		return
	}
	m.PipelineWarnTotal.Add(ctx, int64(n))
}

func newResource(serviceName string) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
}

func newSpanExporter(ctx context.Context, exporter, endpoint string) (sdktrace.SpanExporter, error) {
	if exporter == ExporterOTLP {
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(hostPort(endpoint))}
		if !isHTTPS(endpoint) {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		return otlptracehttp.New(ctx, opts...)
	}
	return stdouttrace.New(stdouttrace.WithPrettyPrint())
}

func newMetricExporter(ctx context.Context, exporter, endpoint string) (sdkmetric.Exporter, error) {
	if exporter == ExporterOTLP {
		opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(hostPort(endpoint))}
		if !isHTTPS(endpoint) {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		}
		return otlpmetrichttp.New(ctx, opts...)
	}
	return stdoutmetric.New()
}

// hostPort extracts the host:port from a URL string
// (e.g., "http://otel-collector:4318" -> "otel-collector:4318").
func hostPort(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return endpoint
	}
	return u.Host
}

// isHTTPS returns true if the endpoint URL uses the https scheme.
func isHTTPS(endpoint string) bool {
	u, err := url.Parse(endpoint)
	if err != nil {
		return false
	}
	return u.Scheme == "https"
}
