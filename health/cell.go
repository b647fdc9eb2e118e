package health

import (
	"sync/atomic"

	"go.opentelemetry.io/otel/trace"
)

// cell is the per-indicator result slot for one aggregation run. The
// suppressed flag is decided once, at cell creation, from the matcher;
// the result arrives later, from whichever worker runs the indicator.
// The span, when tracing is enabled, stays open until the result
// arrives or the run completes without one.
type cell struct {
	indicator  Indicator
	suppressed bool
	result     atomic.Pointer[Result]
	span       atomic.Pointer[trace.Span]
}

func newCell(ind Indicator, suppressed bool) *cell {
	return &cell{indicator: ind, suppressed: suppressed}
}

// store records the indicator's result. The first write wins; a second
// inform from a misbehaving indicator reports false and is discarded,
// so it can never double-decrement the run's countdown.
func (c *cell) store(r Result) bool {
	return c.result.CompareAndSwap(nil, &r)
}

// snapshot returns the stored result, or a synthesized timeout result
// when the indicator has not responded yet.
func (c *cell) snapshot() Result {
	if p := c.result.Load(); p != nil {
		return *p
	}
	return Unhealthy(ErrCheckTimeout)
}
