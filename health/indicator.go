package health

import "context"

// Callback delivers an indicator's result to the aggregation run that
// requested it. An indicator must invoke its callback exactly once;
// additional invocations are ignored.
type Callback func(Result)

// Indicator is the interface for a single named health determination.
//
// Contract:
//   - Check must eventually invoke inform exactly once, or may panic
//     synchronously (a panic is converted into an unhealthy result).
//   - Check may block the worker it runs on; the supplied context is
//     cancelled once the aggregation run has completed, at which point
//     any late inform is discarded.
type Indicator interface {
	// Name returns the name of this indicator. Identity for suppression
	// matching and for the name detail on reported results.
	Name() string

	// Check performs the health determination and reports it via inform.
	Check(ctx context.Context, inform Callback)
}

// indicatorFunc adapts a synchronous check function into an Indicator.
type indicatorFunc struct {
	name string
	fn   func(context.Context) Result
}

// IndicatorFunc creates an Indicator from a name and a synchronous check
// function. The callback is invoked with the function's return value.
func IndicatorFunc(name string, fn func(context.Context) Result) Indicator {
	return &indicatorFunc{name: name, fn: fn}
}

// Name returns the name of this indicator.
func (f *indicatorFunc) Name() string {
	return f.name
}

// Check runs the wrapped function and informs with its result.
func (f *indicatorFunc) Check(ctx context.Context, inform Callback) {
	inform(f.fn(ctx))
}

// PingIndicator adapts a ping function (nil error means reachable) into
// an Indicator. Useful for databases, caches, and remote dependencies.
func PingIndicator(name string, ping func(context.Context) error) Indicator {
	return IndicatorFunc(name, func(ctx context.Context) Result {
		if err := ping(ctx); err != nil {
			return Unhealthy(err)
		}
		return Healthy()
	})
}
