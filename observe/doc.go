// Package observe provides the telemetry collaborators for health
// aggregation: a structured logger, an invocation tracer, and the
// OpenTelemetry meter behind outcome metrics.
//
// Bootstrap builds all three from one Config and hands them back as a
// Telemetry value whose fields plug straight into an aggregator's
// configuration. Concerns left unconfigured come back as no-ops, so
// partial wiring needs no special casing.
package observe
