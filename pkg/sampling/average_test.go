package sampling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSharedAverage_SetGet(t *testing.T) {
	a := NewSharedAverage()

	a.Set(512.3)

	v, err := a.Get(50 * time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 512.3, v)
}

func TestSharedAverage_GetZeroBeforeFirstSet(t *testing.T) {
	a := NewSharedAverage()

	v, err := a.Get(50 * time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestSharedAverage_GetTimesOutWhileLockHeld(t *testing.T) {
	a := NewSharedAverage()
	a.Set(42.0)

	a.Lock()
	defer a.Unlock()

	timeout := 50 * time.Millisecond
	start := time.Now()
	_, err := a.Get(timeout)
	elapsed := time.Since(start)

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.GreaterOrEqual(t, elapsed, timeout)
	// Returns within the bound, never much later
	assert.Less(t, elapsed, timeout+100*time.Millisecond)
}

func TestSharedAverage_ReadsAreIdempotent(t *testing.T) {
	a := NewSharedAverage()
	a.Set(123.4)

	first, err := a.Get(50 * time.Millisecond)
	require.NoError(t, err)
	second, err := a.Get(50 * time.Millisecond)
	require.NoError(t, err)

	// No new publication in between: identical values
	assert.Equal(t, first, second)
}

func TestSharedAverage_WriterWaitsOutReader(t *testing.T) {
	a := NewSharedAverage()
	a.Set(1.0)

	a.Lock()

	done := make(chan struct{})
	go func() {
		// Unbounded wait: must eventually succeed once the lock frees up
		a.Set(2.0)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	select {
	case <-done:
		t.Fatal("writer must not bypass the lock")
	default:
	}

	a.Unlock()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("writer did not acquire the lock after release")
	}

	v, err := a.Get(50 * time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)
}
