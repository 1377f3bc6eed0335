package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// ErrOpen is returned when the breaker rejects a call without executing it.
var ErrOpen = errors.New("circuit breaker is open")

// State of the breaker.
type State int

const (
	StateClosed   State = iota // requests pass through
	StateOpen                  // requests fail immediately
	StateHalfOpen              // limited probe requests pass
)

// Breaker guards a flaky dependency (cache, SMTP) so a dead upstream fails
// fast instead of tying up request goroutines.
type Breaker struct {
	maxFailures  int
	resetTimeout time.Duration
	maxProbes    int

	mu          sync.Mutex
	state       State
	failures    int
	lastFailure time.Time
	probesInUse int
}

// New creates a breaker that opens after maxFailures consecutive failures,
// waits resetTimeout before half-opening, and allows maxProbes calls while
// half-open.
func New(maxFailures int, resetTimeout time.Duration, maxProbes int) *Breaker {
	return &Breaker{
		maxFailures:  maxFailures,
		resetTimeout: resetTimeout,
		maxProbes:    maxProbes,
		state:        StateClosed,
	}
}

// Call executes fn under breaker protection.
func (b *Breaker) Call(fn func() error) error {
	if err := b.admit(); err != nil {
		return err
	}

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.onFailure()
		return err
	}
	b.onSuccess()
	return nil
}

func (b *Breaker) admit() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen && time.Since(b.lastFailure) >= b.resetTimeout {
		b.state = StateHalfOpen
		b.probesInUse = 0
	}

	switch b.state {
	case StateOpen:
		return ErrOpen
	case StateHalfOpen:
		if b.probesInUse >= b.maxProbes {
			return ErrOpen
		}
		b.probesInUse++
	}
	return nil
}

func (b *Breaker) onFailure() {
	b.failures++
	b.lastFailure = time.Now()

	if b.state == StateHalfOpen || b.failures >= b.maxFailures {
		b.state = StateOpen
		b.probesInUse = 0
	}
}

func (b *Breaker) onSuccess() {
	b.failures = 0
	if b.state == StateHalfOpen {
		b.state = StateClosed
		b.probesInUse = 0
	}
}

// State returns the current breaker state.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}
