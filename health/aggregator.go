package health

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/jonwraymond/healthagg/observe"
	"github.com/jonwraymond/healthagg/pool"
)

// defaultPoolSize bounds how many indicators block concurrently,
// independent of how many are registered.
const defaultPoolSize = 3

// AggregatorConfig configures the aggregator.
type AggregatorConfig struct {
	// Timeout is the maximum time an aggregation run waits for all
	// indicators. Indicators that have not responded when it elapses are
	// reported as timed out. Zero disables the deadline and the run
	// waits indefinitely on the countdown alone.
	Timeout time.Duration

	// PoolSize is the number of workers invoking indicators.
	// Default: 3
	PoolSize int

	// Events, when set, receives a StatusChangedEvent each time the
	// overall health flips.
	Events EventSink

	// Metrics, when set, records one outcome per completed run.
	Metrics Metrics

	// Logger, when set, debug-logs each completed verdict.
	Logger observe.Logger

	// Tracer, when set, wraps each indicator invocation in a span.
	Tracer observe.Tracer
}

// Aggregator runs a fixed set of indicators and reduces their results
// into one AggregateStatus per check call.
type Aggregator struct {
	indicators []Indicator
	timeout    time.Duration
	workers    *pool.Pool
	events     EventSink
	metrics    Metrics
	logger     observe.Logger
	tracer     observe.Tracer

	// previous holds the last observed overall health across all
	// completed runs. Starts healthy so the first run only emits a
	// transition if it is unhealthy.
	previous  atomic.Bool
	closeOnce sync.Once
}

// New creates an aggregator over the given indicators. The indicator
// list is fixed at construction; registration order is preserved in
// reported results.
func New(indicators []Indicator, config ...AggregatorConfig) *Aggregator {
	cfg := AggregatorConfig{}
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = defaultPoolSize
	}

	a := &Aggregator{
		indicators: append([]Indicator(nil), indicators...),
		timeout:    cfg.Timeout,
		workers:    pool.New(pool.Config{Workers: cfg.PoolSize}),
		events:     cfg.Events,
		metrics:    cfg.Metrics,
		logger:     cfg.Logger,
		tracer:     cfg.Tracer,
	}
	a.previous.Store(true)
	return a
}

// Names returns the registered indicator names in registration order.
func (a *Aggregator) Names() []string {
	names := make([]string, len(a.indicators))
	for i, ind := range a.indicators {
		names[i] = ind.Name()
	}
	return names
}

// Check starts an aggregation run that suppresses nothing. It returns
// immediately; wait on the Future for the verdict.
func (a *Aggregator) Check(ctx context.Context) *Future {
	return a.CheckMatching(ctx, MatchAll)
}

// CheckMatching starts an aggregation run with the given suppression
// matcher. Indicators the matcher does not match still run, but their
// results are excluded from the overall verdict. A nil matcher
// suppresses nothing.
func (a *Aggregator) CheckMatching(ctx context.Context, m Matcher) *Future {
	if m == nil {
		m = MatchAll
	}

	runCtx, cancel := context.WithCancel(ctx)
	r := &run{
		agg:     a,
		ctx:     runCtx,
		cancel:  cancel,
		future:  newFuture(),
		started: time.Now(),
		cells:   make([]*cell, len(a.indicators)),
	}
	r.remaining.Store(int32(len(a.indicators)))

	for i, ind := range a.indicators {
		r.cells[i] = newCell(ind, !m.Matches(ind))
	}

	if len(r.cells) == 0 {
		r.finish()
		return r.future
	}

	if a.timeout > 0 {
		r.timer.Store(time.AfterFunc(a.timeout, r.finish))
	}

	for _, c := range r.cells {
		if err := a.workers.Submit(func() { a.invoke(r, c) }); err != nil {
			r.inform(c, Unhealthy(ErrAggregatorClosed))
		}
	}

	return r.future
}

// Close releases the worker pool and stops accepting new scheduling.
// Idempotent; never fails. Runs in flight at close time have undefined
// completion, though checks issued after Close still resolve with every
// indicator reported unhealthy.
func (a *Aggregator) Close() error {
	a.closeOnce.Do(func() {
		a.workers.Close()
	})
	return nil
}

// invoke executes one indicator on a pool worker. A synchronous panic
// from the indicator is converted into an unhealthy result; the
// indicator is not trusted to have informed in that case.
func (a *Aggregator) invoke(r *run, c *cell) {
	ctx := r.ctx
	if a.tracer != nil {
		var span trace.Span
		ctx, span = a.tracer.StartSpan(r.ctx, observe.CheckMeta{Name: c.indicator.Name()})
		c.span.Store(&span)
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.inform(c, Unhealthy(fmt.Errorf("indicator panic: %v", rec)))
		}
		// The span stays open until the indicator informs, so an
		// asynchronous inform is covered end to end. If the run already
		// finished while this invocation was queued, close it out as a
		// timeout now.
		select {
		case <-r.future.Done():
			r.endSpan(c, Unhealthy(ErrCheckTimeout))
		default:
		}
	}()

	c.indicator.Check(ctx, func(res Result) { r.inform(c, res) })
}

// completed runs the once-per-run side effects on the completion winner.
func (a *Aggregator) completed(ctx context.Context, status AggregateStatus, elapsed time.Duration) {
	if a.metrics != nil {
		a.metrics.RecordCheck(ctx, status, elapsed)
	}
	if a.events != nil {
		// Single-winner CAS: concurrent runs completing with the same
		// value after the first one must not re-emit.
		if a.previous.CompareAndSwap(!status.Healthy, status.Healthy) {
			a.events.Publish(StatusChangedEvent{Status: status})
		}
	}
	if a.logger != nil {
		a.logger.Debug(ctx, "health status",
			observe.Field{Key: "healthy", Value: status.Healthy},
			observe.Field{Key: "outcome", Value: string(Classify(status))},
			observe.Field{Key: "results", Value: len(status.Results)},
			observe.Field{Key: "suppressed", Value: len(status.Suppressed)},
			observe.Field{Key: "elapsed_ms", Value: elapsed.Milliseconds()},
		)
	}
}

// run is the state of one aggregation call: the cells, the countdown,
// the deadline timer, and the future the caller holds.
type run struct {
	agg       *Aggregator
	ctx       context.Context
	cancel    context.CancelFunc
	cells     []*cell
	remaining atomic.Int32
	future    *Future
	timer     atomic.Pointer[time.Timer]
	started   time.Time
}

// inform stores one indicator's result and decrements the countdown.
// A repeated inform for the same cell is discarded before the
// decrement, so a misbehaving indicator cannot complete the run early.
func (r *run) inform(c *cell, res Result) {
	if !c.store(res) {
		return
	}
	r.endSpan(c, res)
	if r.remaining.Add(-1) == 0 {
		r.finish()
	}
}

// endSpan closes the cell's invocation span with the result it settled
// on. The swap admits one closer, whichever of the inform path and the
// run's completion gets there first.
func (r *run) endSpan(c *cell, res Result) {
	p := c.span.Swap(nil)
	if p == nil {
		return
	}
	var err error
	if !res.Healthy && res.Error != "" {
		err = errors.New(res.Error)
	}
	r.agg.tracer.EndSpan(*p, err)
}

// finish reduces the current cell snapshot and attempts to complete the
// future. Both the countdown and the deadline land here; the future's
// compare-and-swap picks the single winner, and a second attempt is a
// no-op that changes nothing and re-invokes no sink.
func (r *run) finish() {
	if !r.future.complete(r.reduce()) {
		return
	}
	if t := r.timer.Load(); t != nil {
		t.Stop()
	}
	// Best-effort cancellation of still-running indicators. Results
	// arriving after this point land in cells the reduction no longer
	// reads.
	r.cancel()
	for _, c := range r.cells {
		if c.result.Load() == nil {
			r.endSpan(c, Unhealthy(ErrCheckTimeout))
		}
	}
	r.agg.completed(context.WithoutCancel(r.ctx), r.future.Status(), time.Since(r.started))
}

// reduce folds the cells, in registration order, into a verdict.
// Absent results are synthesized as timeouts; suppressed cells are
// reported separately and contribute true to the AND regardless of
// their value.
func (r *run) reduce() AggregateStatus {
	status := AggregateStatus{Healthy: true}
	for _, c := range r.cells {
		res := c.snapshot().WithDetail(NameKey, c.indicator.Name())
		if c.suppressed {
			status.Suppressed = append(status.Suppressed, res)
			continue
		}
		status.Results = append(status.Results, res)
		status.Healthy = status.Healthy && res.Healthy
	}
	return status
}
