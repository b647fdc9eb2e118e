package observe

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/jonwraymond/healthagg/observe/exporters"
)

// Config describes the telemetry stack handed to a health aggregator.
// Each concern is enabled by naming its backend and disabled by leaving
// it empty.
type Config struct {
	// ServiceName identifies the host service in exported telemetry.
	// Required.
	ServiceName string

	// Version is reported alongside the service name.
	Version string

	// TraceExporter selects where indicator invocation spans go:
	// otlp, stdout or none. Empty disables tracing.
	TraceExporter string

	// TraceSamplePct is the fraction of spans to sample, in [0, 1].
	TraceSamplePct float64

	// MetricExporter selects where aggregation outcome metrics go:
	// otlp, prometheus, stdout or none. Empty disables metrics.
	MetricExporter string

	// LogLevel filters the structured logger: debug, info, warn or
	// error. Empty disables logging.
	LogLevel string
}

// Validate checks the configuration against the supported backends.
func (c *Config) Validate() error {
	if c.ServiceName == "" {
		return ErrMissingServiceName
	}

	switch c.TraceExporter {
	case "", "otlp", "stdout", "none":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidTracingExporter, c.TraceExporter)
	}
	if c.TraceSamplePct < 0 || c.TraceSamplePct > 1 {
		return fmt.Errorf("%w, got: %v", ErrInvalidSamplePct, c.TraceSamplePct)
	}

	switch c.MetricExporter {
	case "", "otlp", "prometheus", "stdout", "none":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMetricsExporter, c.MetricExporter)
	}

	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}

	return nil
}

// Telemetry bundles the collaborators a health aggregator consumes:
// a structured logger for verdicts, a tracer for indicator invocation
// spans and a meter for outcome instruments. Disabled concerns hold
// no-op implementations, so a Telemetry can always be wired in as is.
type Telemetry struct {
	Logger Logger
	Tracer Tracer
	Meter  metric.Meter

	tp *sdktrace.TracerProvider
	mp *sdkmetric.MeterProvider
}

// Bootstrap builds the telemetry stack described by cfg.
func Bootstrap(ctx context.Context, cfg Config) (*Telemetry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.Version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("building resource: %w", err)
	}

	tel := &Telemetry{
		Logger: NopLogger(),
		Tracer: NewNoopTracer(),
		Meter:  metricnoop.NewMeterProvider().Meter("noop"),
	}

	if cfg.TraceExporter != "" {
		exp, err := exporters.NewTracingExporter(ctx, cfg.TraceExporter)
		if err != nil {
			return nil, fmt.Errorf("tracing exporter: %w", err)
		}
		tel.tp = sdktrace.NewTracerProvider(
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sampler(cfg.TraceSamplePct)),
			sdktrace.WithBatcher(exp),
		)
		otel.SetTracerProvider(tel.tp)
		tel.Tracer = NewTracer(tel.tp.Tracer(cfg.ServiceName))
	}

	if cfg.MetricExporter != "" {
		reader, err := exporters.NewMetricsReader(ctx, cfg.MetricExporter)
		if err != nil {
			return nil, fmt.Errorf("metrics reader: %w", err)
		}
		tel.mp = sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(reader),
		)
		otel.SetMeterProvider(tel.mp)
		tel.Meter = tel.mp.Meter(cfg.ServiceName)
	}

	if cfg.LogLevel != "" {
		tel.Logger = NewLogger(cfg.LogLevel)
	}

	return tel, nil
}

func sampler(pct float64) sdktrace.Sampler {
	switch {
	case pct >= 1:
		return sdktrace.AlwaysSample()
	case pct <= 0:
		return sdktrace.NeverSample()
	default:
		return sdktrace.TraceIDRatioBased(pct)
	}
}

// Shutdown flushes and stops the providers Bootstrap started. Safe on
// a Telemetry with everything disabled.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	if t.tp != nil {
		if err := t.tp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider: %w", err))
		}
	}
	if t.mp != nil {
		if err := t.mp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider: %w", err))
		}
	}
	return errors.Join(errs...)
}
