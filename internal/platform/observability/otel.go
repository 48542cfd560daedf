// Package observability wires OpenTelemetry tracing and metrics for the process.
package observability

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Config struct {
	ServiceName  string
	Environment  string
	OTLPEndpoint string
	OTLPInsecure bool
	// Stdout exports spans to stdout instead of OTLP.
	Stdout bool
}

// Instruments bundles the tracer and meter providers.
type Instruments struct {
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
	// Reader exposes collected metrics on demand.
	Reader *sdkmetric.ManualReader
}

// Init installs global tracer and meter providers and the W3C propagators.
// The returned shutdown flushes pending spans and must run on exit.
func Init(ctx context.Context, cfg Config, logger *zap.Logger) (*Instruments, func(context.Context) error, error) {
	environment := cfg.Environment
	if environment == "" {
		environment = "local"
	}

	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithProcess(),
		resource.WithTelemetrySDK(),
		resource.WithHost(),
		resource.WithAttributes(
			attribute.String("service.name", cfg.ServiceName),
			attribute.String("deployment.environment", environment),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	spanExporter, err := newSpanExporter(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(spanExporter),
	)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	reader := sdkmetric.NewManualReader()
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	)
	otel.SetMeterProvider(meterProvider)

	shutdown := func(ctx context.Context) error {
		return errors.Join(meterProvider.Shutdown(ctx), tracerProvider.Shutdown(ctx))
	}

	return &Instruments{
		TracerProvider: tracerProvider,
		MeterProvider:  meterProvider,
		Reader:         reader,
	}, shutdown, nil
}

func newSpanExporter(ctx context.Context, cfg Config, logger *zap.Logger) (sdktrace.SpanExporter, error) {
	if cfg.Stdout {
		return stdouttrace.New()
	}

	var opts []otlptracehttp.Option
	if endpoint := strings.TrimSpace(cfg.OTLPEndpoint); endpoint != "" {
		opts = append(opts, otlptracehttp.WithEndpoint(endpoint))
	}
	if cfg.OTLPInsecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err == nil {
		return exporter, nil
	}
	logger.Warn("failed to initialize OTLP trace exporter, falling back to stdout", zap.Error(err))
	return stdouttrace.New()
}
