package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medscanhq/medscan/pkg/ratelimit"
)

func newLimiter(t *testing.T, limit int, window time.Duration) *ratelimit.SlidingWindow {
	t.Helper()
	store := ratelimit.NewMemoryStore()
	t.Cleanup(store.Close)

	sw, err := ratelimit.NewSlidingWindow(store, limit, window)
	require.NoError(t, err)
	return sw
}

func TestNewSlidingWindow_Validation(t *testing.T) {
	t.Parallel()

	store := ratelimit.NewMemoryStore()
	t.Cleanup(store.Close)

	_, err := ratelimit.NewSlidingWindow(nil, 1, time.Second)
	assert.ErrorIs(t, err, ratelimit.ErrStoreRequired)

	_, err = ratelimit.NewSlidingWindow(store, 0, time.Second)
	assert.ErrorIs(t, err, ratelimit.ErrInvalidLimit)

	_, err = ratelimit.NewSlidingWindow(store, 1, 0)
	assert.ErrorIs(t, err, ratelimit.ErrInvalidWindow)
}

func TestSlidingWindow_Allow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("enforces limit", func(t *testing.T) {
		t.Parallel()
		sw := newLimiter(t, 3, time.Minute)

		for i := range 3 {
			result, err := sw.Allow(ctx, "ip:203.0.113.5")
			require.NoError(t, err)
			assert.True(t, result.Allowed, "request %d should be allowed", i)
		}

		result, err := sw.Allow(ctx, "ip:203.0.113.5")
		require.NoError(t, err)
		assert.False(t, result.Allowed)
		assert.Zero(t, result.Remaining)
		assert.Positive(t, result.RetryAfter())
	})

	t.Run("keys are independent", func(t *testing.T) {
		t.Parallel()
		sw := newLimiter(t, 1, time.Minute)

		first, err := sw.Allow(ctx, "a")
		require.NoError(t, err)
		assert.True(t, first.Allowed)

		second, err := sw.Allow(ctx, "b")
		require.NoError(t, err)
		assert.True(t, second.Allowed)
	})

	t.Run("window slides", func(t *testing.T) {
		t.Parallel()
		sw := newLimiter(t, 1, 50*time.Millisecond)

		first, err := sw.Allow(ctx, "k")
		require.NoError(t, err)
		assert.True(t, first.Allowed)

		blocked, err := sw.Allow(ctx, "k")
		require.NoError(t, err)
		assert.False(t, blocked.Allowed)

		time.Sleep(60 * time.Millisecond)

		again, err := sw.Allow(ctx, "k")
		require.NoError(t, err)
		assert.True(t, again.Allowed)
	})

	t.Run("empty key rejected", func(t *testing.T) {
		t.Parallel()
		sw := newLimiter(t, 1, time.Minute)
		_, err := sw.Allow(ctx, "")
		assert.ErrorIs(t, err, ratelimit.ErrKeyRequired)
	})
}

func TestSlidingWindow_StatusAndReset(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sw := newLimiter(t, 2, time.Minute)

	_, err := sw.Allow(ctx, "k")
	require.NoError(t, err)

	status, err := sw.Status(ctx, "k")
	require.NoError(t, err)
	assert.True(t, status.Allowed)
	assert.Equal(t, 1, status.Remaining)

	// Status must not consume a slot.
	status2, err := sw.Status(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 1, status2.Remaining)

	require.NoError(t, sw.Reset(ctx, "k"))
	status3, err := sw.Status(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 2, status3.Remaining)
}
