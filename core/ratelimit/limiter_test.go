package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwaitSlot_Spacing(t *testing.T) {
	interval := 40 * time.Millisecond
	lim := New(interval)
	ctx := context.Background()

	var grants []time.Time
	for i := 0; i < 4; i++ {
		require.NoError(t, lim.AwaitSlot(ctx))
		grants = append(grants, lim.LastGrant())
	}

	for i := 1; i < len(grants); i++ {
		gap := grants[i].Sub(grants[i-1])
		// Allow a little scheduler slack below the nominal interval.
		assert.GreaterOrEqual(t, gap, interval-5*time.Millisecond, "gap %d too small: %v", i, gap)
	}
}

func TestAwaitSlot_FirstIsImmediate(t *testing.T) {
	lim := New(time.Hour)
	start := time.Now()
	require.NoError(t, lim.AwaitSlot(context.Background()))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestAwaitSlot_Cancelled(t *testing.T) {
	lim := New(time.Hour)
	require.NoError(t, lim.AwaitSlot(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := lim.AwaitSlot(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestAwaitSlot_AlreadyCancelled(t *testing.T) {
	lim := New(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, lim.AwaitSlot(ctx), ErrCancelled)
}

func TestNew_ZeroIntervalDoesNotThrottle(t *testing.T) {
	lim := New(0)
	start := time.Now()
	for i := 0; i < 50; i++ {
		require.NoError(t, lim.AwaitSlot(context.Background()))
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)
	assert.Equal(t, time.Duration(0), lim.Interval())
}
