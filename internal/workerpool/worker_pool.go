package workerpool

import (
	"context"
	"errors"
	"sync"
)

// ErrStopped is returned by Do when the pool no longer accepts work.
var ErrStopped = errors.New("workerpool: pool is stopped")

// Pool runs submitted jobs on a fixed set of workers. It keeps CPU-bound
// work (bcrypt, broker dispatch) off the request goroutines.
type Pool struct {
	workers int
	jobs    chan func()
	wg      sync.WaitGroup

	mu      sync.Mutex
	stopped bool
}

// New creates a pool with the given number of workers.
func New(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{
		workers: workers,
		jobs:    make(chan func(), workers*2),
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for job := range p.jobs {
		job()
	}
}

// Submit enqueues a job and reports whether it was accepted. Jobs submitted
// after Stop are rejected. The send happens under the mutex so Stop can
// never close the channel mid-send.
func (p *Pool) Submit(job func()) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return false
	}
	p.jobs <- job
	return true
}

// Do runs a job on the pool and blocks until it finishes or the context is
// cancelled. On cancellation the job may still run to completion on its
// worker; the caller just stops waiting. Returns ErrStopped immediately if
// the pool no longer accepts work.
func (p *Pool) Do(ctx context.Context, job func()) error {
	done := make(chan struct{})
	accepted := p.Submit(func() {
		defer close(done)
		job()
	})
	if !accepted {
		return ErrStopped
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Stop rejects further submissions, drains queued jobs and waits for all
// workers to exit. Safe to call more than once.
func (p *Pool) Stop() {
	p.mu.Lock()
	if !p.stopped {
		p.stopped = true
		close(p.jobs)
	}
	p.mu.Unlock()
	p.wg.Wait()
}
