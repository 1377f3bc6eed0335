package hash

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/workerpool"
)

/*
Hasher Test Cases:

1. TestHasher_HashVerify_RoundTrip
   - Hash embeds salt and cost, Verify accepts the original plaintext

2. TestHasher_Verify_Mismatch
   - Wrong password reports (false, nil), not an error

3. TestHasher_Hash_Salted
   - Same plaintext hashes to different strings

4. TestHasher_CancelledContext
   - Cancelled context surfaces as an error without running the job
*/

// Low cost keeps the tests fast; production cost is exercised implicitly by
// the same code path.
func newTestHasher(t *testing.T) *Hasher {
	t.Helper()
	h := NewWithPool(4, workerpool.New(2))
	t.Cleanup(h.Close)
	return h
}

func TestHasher_HashVerify_RoundTrip(t *testing.T) {
	h := newTestHasher(t)
	ctx := context.Background()

	hashed, err := h.Hash(ctx, "Sup3r$ecret")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hashed, "$2a$"))
	assert.NotEqual(t, "Sup3r$ecret", hashed)

	ok, err := h.Verify(ctx, "Sup3r$ecret", hashed)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHasher_Verify_Mismatch(t *testing.T) {
	h := newTestHasher(t)
	ctx := context.Background()

	hashed, err := h.Hash(ctx, "Sup3r$ecret")
	require.NoError(t, err)

	ok, err := h.Verify(ctx, "wrong-password", hashed)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasher_Hash_Salted(t *testing.T) {
	h := newTestHasher(t)
	ctx := context.Background()

	first, err := h.Hash(ctx, "Sup3r$ecret")
	require.NoError(t, err)
	second, err := h.Hash(ctx, "Sup3r$ecret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHasher_CancelledContext(t *testing.T) {
	h := newTestHasher(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.Hash(ctx, "Sup3r$ecret")
	assert.Error(t, err)
}
