package workerpool

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
Pool Test Cases:

1. TestPool_DoRunsJob
   - Do executes the job and returns nil once it finishes

2. TestPool_DoCancelledContext
   - Do returns the context error when the caller stops waiting

3. TestPool_SubmitAfterStop
   - Submit reports rejection and Do fails fast with ErrStopped

4. TestPool_StopDrainsQueuedJobs
   - Jobs accepted before Stop still run to completion

5. TestPool_ConcurrentSubmitAndStop
   - Racing Submit against Stop never panics; every accepted job runs
*/

func TestPool_DoRunsJob(t *testing.T) {
	p := New(2)
	defer p.Stop()

	var ran atomic.Bool
	err := p.Do(context.Background(), func() { ran.Store(true) })

	require.NoError(t, err)
	assert.True(t, ran.Load())
}

func TestPool_DoCancelledContext(t *testing.T) {
	p := New(1)
	defer p.Stop()

	release := make(chan struct{})
	defer close(release)

	// Occupy the single worker so the next job sits in the queue.
	ok := p.Submit(func() { <-release })
	require.True(t, ok)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Do(ctx, func() {})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPool_SubmitAfterStop(t *testing.T) {
	p := New(2)
	p.Stop()

	ok := p.Submit(func() { t.Error("job must not run after Stop") })
	assert.False(t, ok)

	start := time.Now()
	err := p.Do(context.Background(), func() {})
	assert.ErrorIs(t, err, ErrStopped)
	assert.Less(t, time.Since(start), time.Second, "Do after Stop must fail fast")
}

func TestPool_StopDrainsQueuedJobs(t *testing.T) {
	p := New(1)

	var done atomic.Int32
	for i := 0; i < 5; i++ {
		ok := p.Submit(func() { done.Add(1) })
		require.True(t, ok)
	}

	p.Stop()
	assert.Equal(t, int32(5), done.Load())
}

func TestPool_ConcurrentSubmitAndStop(t *testing.T) {
	p := New(4)

	var accepted, ran atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if p.Submit(func() { ran.Add(1) }) {
				accepted.Add(1)
			}
		}()
	}

	p.Stop()
	wg.Wait()

	// Stop drains the queue, so everything accepted has run by now.
	assert.Equal(t, accepted.Load(), ran.Load())

	// Idempotent.
	p.Stop()
}
