package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Default anonymous-trial budget: 3 requests per hour per source.
const (
	DefaultCapacity = 3
	DefaultWindow   = time.Hour
)

// Limiter enforces a per-source budget over a sliding window: a request is
// admitted only when fewer than capacity admissions fall inside the trailing
// window, so no window of that length ever sees more than capacity
// successes. State is process-local by design: replicated gateways each
// grant their own budget, which is acceptable for the anonymous-trial tier.
type Limiter struct {
	capacity int
	window   time.Duration

	mu      sync.Mutex
	sources map[string][]time.Time

	// now is swappable for tests.
	now func() time.Time
}

// New creates a limiter with the given capacity per window.
func New(capacity int, window time.Duration) *Limiter {
	return &Limiter{
		capacity: capacity,
		window:   window,
		sources:  make(map[string][]time.Time),
		now:      time.Now,
	}
}

// Allow consumes one point of the source's budget. When the budget is
// exhausted it reports the duration until the oldest admission leaves the
// window and one point becomes available again.
func (l *Limiter) Allow(source string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	stamps := l.sources[source]
	expired := 0
	for expired < len(stamps) && !stamps[expired].After(cutoff) {
		expired++
	}
	stamps = stamps[expired:]

	if len(stamps) < l.capacity {
		l.sources[source] = append(stamps, now)
		return true, 0
	}

	l.sources[source] = stamps
	return false, stamps[0].Sub(cutoff)
}

// StartJanitor evicts sources whose budget has fully recovered. Runs until
// ctx is cancelled.
func (l *Limiter) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.sweep()
			}
		}
	}()
}

func (l *Limiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	for source, stamps := range l.sources {
		if len(stamps) == 0 || !stamps[len(stamps)-1].After(cutoff) {
			delete(l.sources, source)
		}
	}
}

// Len reports the number of tracked sources.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.sources)
}
