package health

// StatusChangedEvent is published when the overall boolean health flips
// relative to the last observed value. It carries the verdict of the run
// that observed the new value first.
type StatusChangedEvent struct {
	Status AggregateStatus
}

// EventSink receives health transition events.
//
// Contract:
//   - Concurrency: Publish may be called from any goroutine and must be
//     safe for concurrent use.
//   - Errors: Publish is best-effort and must not panic.
type EventSink interface {
	Publish(StatusChangedEvent)
}

// EventSinkFunc is an adapter to allow ordinary functions to be used as
// EventSinks.
type EventSinkFunc func(StatusChangedEvent)

// Publish delivers the event to the wrapped function.
func (f EventSinkFunc) Publish(ev StatusChangedEvent) {
	f(ev)
}

// ChannelSink publishes events to a channel without blocking. Events are
// dropped when the channel is full.
func ChannelSink(ch chan<- StatusChangedEvent) EventSink {
	return EventSinkFunc(func(ev StatusChangedEvent) {
		select {
		case ch <- ev:
		default:
		}
	})
}
