package health

import "strings"

// NameKey is the reserved detail key under which the aggregator records
// the indicator's name on every reported result.
const NameKey = "name"

// Result contains the outcome of a single health indicator.
//
// Results are values: the With* builders return copies and never mutate
// the receiver, so a Result handed to the aggregator can be shared
// freely across goroutines.
type Result struct {
	// Healthy reports whether the indicator considers itself healthy.
	Healthy bool

	// Error is the failure description for unhealthy results. Empty when
	// healthy. Timed-out indicators carry ErrCheckTimeout's text here.
	Error string

	// Details contains arbitrary metadata about the check. The
	// indicator's name is stored under NameKey.
	Details map[string]any
}

// Healthy creates a healthy result.
func Healthy() Result {
	return Result{Healthy: true}
}

// Unhealthy creates an unhealthy result carrying the error's text.
// A nil error produces an unhealthy result with no error text.
func Unhealthy(err error) Result {
	r := Result{Healthy: false}
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

// WithDetail returns a copy of the result with the given detail added.
func (r Result) WithDetail(key string, value any) Result {
	details := make(map[string]any, len(r.Details)+1)
	for k, v := range r.Details {
		details[k] = v
	}
	details[key] = value
	r.Details = details
	return r
}

// WithDetails returns a copy of the result with all given details added.
func (r Result) WithDetails(details map[string]any) Result {
	out := r
	for k, v := range details {
		out = out.WithDetail(k, v)
	}
	return out
}

// Name returns the indicator name recorded under NameKey, if any.
func (r Result) Name() string {
	name, _ := r.Details[NameKey].(string)
	return name
}

// TimedOut reports whether the result was synthesized for an indicator
// that never responded before the aggregation deadline.
func (r Result) TimedOut() bool {
	return strings.Contains(r.Error, ErrCheckTimeout.Error())
}

// AggregateStatus is the combined verdict of one aggregation run.
type AggregateStatus struct {
	// Healthy is the logical AND of Healthy over non-suppressed results.
	// A run with zero indicators is healthy by definition.
	Healthy bool

	// Results holds the non-suppressed results in registration order.
	Results []Result

	// Suppressed holds the results excluded from the verdict by the
	// matcher, in registration order. Suppressed results never influence
	// Healthy but are always reported.
	Suppressed []Result
}

// TimedOut reports whether any non-suppressed result timed out. Used by
// metrics classification.
func (s AggregateStatus) TimedOut() bool {
	for _, r := range s.Results {
		if r.TimedOut() {
			return true
		}
	}
	return false
}
