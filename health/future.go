package health

import (
	"context"
	"sync/atomic"
)

// Future is the asynchronous outcome of one aggregation run. It is
// created by Check and completed exactly once, by whichever of the
// countdown and the deadline fires first.
type Future struct {
	done      chan struct{}
	completed atomic.Bool
	status    AggregateStatus
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// complete attempts to resolve the future with the given status.
// The compare-and-swap admits exactly one winner; a losing attempt
// reports false and its status is discarded.
func (f *Future) complete(status AggregateStatus) bool {
	if !f.completed.CompareAndSwap(false, true) {
		return false
	}
	f.status = status
	close(f.done)
	return true
}

// Done returns a channel that is closed when the run has completed.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Status returns the aggregation verdict. It must only be called after
// Done is closed; the zero AggregateStatus is returned otherwise.
func (f *Future) Status() AggregateStatus {
	select {
	case <-f.done:
		return f.status
	default:
		return AggregateStatus{}
	}
}

// Wait blocks until the run completes or ctx is cancelled. The run
// itself is not cancelled by ctx; an abandoned run still resolves.
func (f *Future) Wait(ctx context.Context) (AggregateStatus, error) {
	select {
	case <-f.done:
		return f.status, nil
	case <-ctx.Done():
		return AggregateStatus{}, ctx.Err()
	}
}
