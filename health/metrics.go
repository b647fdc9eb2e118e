package health

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Outcome classifies a completed aggregation run for metrics purposes.
type Outcome string

const (
	OutcomeHealthy   Outcome = "healthy"
	OutcomeUnhealthy Outcome = "unhealthy"
	OutcomeTimeout   Outcome = "timeout"
)

// Classify returns the metrics outcome for a verdict: OutcomeTimeout
// when any non-suppressed result timed out, otherwise OutcomeHealthy or
// OutcomeUnhealthy per the overall verdict.
func Classify(status AggregateStatus) Outcome {
	if status.TimedOut() {
		return OutcomeTimeout
	}
	if status.Healthy {
		return OutcomeHealthy
	}
	return OutcomeUnhealthy
}

// Metrics records aggregation outcomes.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Errors: implementations must not panic; recording is best-effort.
type Metrics interface {
	// RecordCheck records one completed aggregation run.
	RecordCheck(ctx context.Context, status AggregateStatus, elapsed time.Duration)
}

// otelMetrics records aggregation outcomes through an OpenTelemetry
// meter.
type otelMetrics struct {
	checks   metric.Int64Counter
	duration metric.Float64Histogram
}

// NewOTelMetrics creates a Metrics implementation backed by the given
// meter. One counter increment per completed run, tagged by outcome.
func NewOTelMetrics(meter metric.Meter) (Metrics, error) {
	checks, err := meter.Int64Counter(
		"health.aggregate.checks",
		metric.WithDescription("Completed health aggregation runs"),
		metric.WithUnit("{check}"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"health.aggregate.duration_ms",
		metric.WithDescription("Health aggregation run duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{checks: checks, duration: duration}, nil
}

// RecordCheck records metrics for one completed aggregation run.
func (m *otelMetrics) RecordCheck(ctx context.Context, status AggregateStatus, elapsed time.Duration) {
	opt := metric.WithAttributes(
		attribute.String("status", string(Classify(status))),
	)
	m.checks.Add(ctx, 1, opt)
	m.duration.Record(ctx, float64(elapsed.Milliseconds()), opt)
}
