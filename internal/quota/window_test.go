package quota

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_AllowsUpToMax(t *testing.T) {
	l := NewLimiter(10, time.Minute)
	now := time.Now()

	for i := 0; i < 10; i++ {
		require.NoError(t, l.Allow("caller", now.Add(time.Duration(i)*time.Second)))
	}

	err := l.Allow("caller", now.Add(10*time.Second))
	require.Error(t, err)

	var winErr *WindowError
	require.True(t, errors.As(err, &winErr))
	assert.Equal(t, 10, winErr.Max)
	// Oldest call was at +0s, so the slot frees at +60s.
	assert.Equal(t, 50*time.Second, winErr.ResetIn)
	assert.Contains(t, winErr.Error(), "wait 50 seconds")
}

func TestLimiter_WindowSlides(t *testing.T) {
	l := NewLimiter(2, time.Minute)
	now := time.Now()

	require.NoError(t, l.Allow("caller", now))
	require.NoError(t, l.Allow("caller", now.Add(30*time.Second)))
	require.Error(t, l.Allow("caller", now.Add(40*time.Second)))

	// The first call leaves the window after 60s; one slot frees.
	require.NoError(t, l.Allow("caller", now.Add(61*time.Second)))
	require.Error(t, l.Allow("caller", now.Add(62*time.Second)))
}

func TestLimiter_CallersAreIndependent(t *testing.T) {
	l := NewLimiter(1, time.Minute)
	now := time.Now()

	require.NoError(t, l.Allow("a", now))
	require.NoError(t, l.Allow("b", now))
	require.Error(t, l.Allow("a", now))
}

func TestLimiter_NoRefund(t *testing.T) {
	l := NewLimiter(3, time.Minute)
	now := time.Now()

	// Slots are consumed on Allow regardless of what the caller does
	// with them afterwards.
	for i := 0; i < 3; i++ {
		require.NoError(t, l.Allow("caller", now))
	}
	assert.Equal(t, 0, l.Status("caller", now).Remaining)
}

func TestLimiter_Status(t *testing.T) {
	l := NewLimiter(10, time.Minute)
	now := time.Now()

	st := l.Status("fresh", now)
	assert.Equal(t, 10, st.Remaining)
	assert.Equal(t, time.Duration(0), st.ResetIn)

	require.NoError(t, l.Allow("caller", now))
	require.NoError(t, l.Allow("caller", now.Add(5*time.Second)))

	st = l.Status("caller", now.Add(10*time.Second))
	assert.Equal(t, 8, st.Remaining)
	assert.Equal(t, 50*time.Second, st.ResetIn)

	// After the window passes, capacity is fully restored.
	st = l.Status("caller", now.Add(2*time.Minute))
	assert.Equal(t, 10, st.Remaining)
}

func TestLimiter_CleanupDropsDrainedWindows(t *testing.T) {
	l := NewLimiter(5, time.Minute)
	now := time.Now()

	require.NoError(t, l.Allow("old", now))
	require.NoError(t, l.Allow("live", now.Add(50*time.Second)))

	l.Cleanup(now.Add(70 * time.Second))

	l.mu.Lock()
	_, oldKept := l.callers["old"]
	_, liveKept := l.callers["live"]
	l.mu.Unlock()

	assert.False(t, oldKept)
	assert.True(t, liveKept)
}
