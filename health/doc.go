// Package health aggregates the results of many independent health
// indicators into a single consolidated verdict.
//
// This package implements a callback-based health aggregation framework.
// Indicators are invoked in parallel on a bounded worker pool, a global
// deadline bounds how long an aggregation run waits, and indicators that
// never respond are reported as timed out rather than blocking the run.
// A suppression matcher can exclude selected indicators from the overall
// pass/fail verdict while still surfacing their results.
//
// # Core Concepts
//
// An Indicator is any component that can report its health by invoking a
// callback. A Result is the outcome of one indicator; an AggregateStatus
// is the combined outcome of one aggregation run.
//
// # Basic Usage
//
//	agg := health.New([]health.Indicator{
//	    health.IndicatorFunc("database", dbPing),
//	    health.NewMemoryIndicator(health.MemoryIndicatorConfig{}),
//	}, health.AggregatorConfig{Timeout: 5 * time.Second})
//	defer agg.Close()
//
//	status, err := agg.Check(ctx).Wait(ctx)
//	if err == nil && !status.Healthy {
//	    log.Print("service unhealthy")
//	}
//
// # Suppression
//
// Use a Matcher to keep noisy or advisory indicators out of the verdict
// without hiding them from operators:
//
//	future := agg.CheckMatching(ctx, health.Exclude("replica-lag"))
//	status, _ := future.Wait(ctx)
//	// status.Healthy ignores "replica-lag"; its result is in
//	// status.Suppressed.
//
// # Transitions
//
// When an EventSink is configured the aggregator publishes a
// StatusChangedEvent exactly once each time the overall boolean health
// flips, regardless of how many concurrent runs observe the new value.
//
// # HTTP Endpoints
//
// The package provides HTTP handlers for common probe patterns:
//
//	// Liveness probe (for Kubernetes)
//	http.Handle("/healthz", health.LivenessHandler())
//
//	// Readiness probe backed by the aggregator
//	http.Handle("/readyz", health.ReadinessHandler(agg))
//
//	// Detailed health status, including suppressed results
//	http.Handle("/health", health.DetailedHandler(agg))
package health
