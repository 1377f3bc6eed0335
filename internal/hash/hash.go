package hash

import (
	"context"
	"runtime"

	"golang.org/x/crypto/bcrypt"

	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/workerpool"
)

// Cost is chosen so a single verification takes tens of milliseconds on
// reference hardware.
const Cost = 12

// Hasher performs adaptive salted password hashing. The bcrypt work runs on
// a worker pool sized to the available cores so hashing does not starve
// request goroutines.
type Hasher struct {
	cost int
	pool *workerpool.Pool
}

// New creates a hasher with its own pool sized to runtime.NumCPU().
func New() *Hasher {
	return NewWithPool(Cost, workerpool.New(runtime.NumCPU()))
}

// NewWithPool creates a hasher with an explicit cost and pool.
func NewWithPool(cost int, pool *workerpool.Pool) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = Cost
	}
	return &Hasher{cost: cost, pool: pool}
}

// Hash derives a salted hash of the plaintext. The returned string embeds
// the salt and cost, so Verify is stable across restarts.
func (h *Hasher) Hash(ctx context.Context, plaintext string) (string, error) {
	var out []byte
	var hashErr error
	if err := h.pool.Do(ctx, func() {
		out, hashErr = bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	}); err != nil {
		return "", err
	}
	if hashErr != nil {
		return "", hashErr
	}
	return string(out), nil
}

// Verify reports whether the plaintext matches the stored hash.
func (h *Hasher) Verify(ctx context.Context, plaintext, hashed string) (bool, error) {
	var cmpErr error
	if err := h.pool.Do(ctx, func() {
		cmpErr = bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext))
	}); err != nil {
		return false, err
	}
	if cmpErr != nil {
		if cmpErr == bcrypt.ErrMismatchedHashAndPassword {
			return false, nil
		}
		return false, cmpErr
	}
	return true, nil
}

// Close releases the hasher's worker pool.
func (h *Hasher) Close() {
	h.pool.Stop()
}
