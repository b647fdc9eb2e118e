package health

import "errors"

var (
	// ErrCheckTimeout indicates an indicator did not respond before the
	// aggregation deadline. Its text is the timeout marker carried by
	// synthesized results.
	ErrCheckTimeout = errors.New("health: timed out waiting for indicator response")

	// ErrAggregatorClosed indicates the aggregator was closed before the
	// indicator could be scheduled.
	ErrAggregatorClosed = errors.New("health: aggregator closed")
)
