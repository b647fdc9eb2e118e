// Package pool provides a small fixed-size worker pool with an explicit
// close, for fire-and-forget task execution with bounded parallelism.
package pool

import (
	"errors"
	"sync"
)

// ErrClosed indicates the pool is closed and no longer accepts tasks.
var ErrClosed = errors.New("pool: pool closed")

// Config configures the pool.
type Config struct {
	// Workers is the number of worker goroutines.
	// Default: 3
	Workers int
}

// Pool executes submitted tasks on a fixed set of workers. The queue is
// unbounded, so Submit never blocks the caller; the worker count alone
// bounds how many tasks run concurrently. A task may block its worker
// for as long as it runs.
type Pool struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []func()
	closed bool
	wg     sync.WaitGroup
}

// New creates a pool and starts its workers.
func New(config ...Config) *Pool {
	cfg := Config{}
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 3
	}

	p := &Pool{}
	p.cond = sync.NewCond(&p.mu)

	p.wg.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go p.worker()
	}
	return p
}

// Submit enqueues a task for execution. It never blocks; it returns
// ErrClosed once the pool has been closed. A task accepted before Close
// is guaranteed to run.
func (p *Pool) Submit(task func()) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	p.queue = append(p.queue, task)
	p.mu.Unlock()

	p.cond.Signal()
	return nil
}

// Close rejects further submissions and stops the workers once the
// queue drains. Idempotent. Tasks already accepted still run.
func (p *Pool) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	p.cond.Broadcast()
}

// Wait blocks until all workers have exited. Only meaningful after
// Close.
func (p *Pool) Wait() {
	p.wg.Wait()
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.closed {
			p.cond.Wait()
		}
		if len(p.queue) == 0 {
			p.mu.Unlock()
			return
		}
		task := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()

		p.runTask(task)
	}
}

// runTask isolates task panics so one bad task cannot take down a
// worker.
func (p *Pool) runTask(task func()) {
	defer func() {
		_ = recover()
	}()
	task()
}
