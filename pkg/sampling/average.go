package sampling

import (
	"errors"
	"time"
)

// ErrUnavailable is returned when the shared average lock cannot be acquired
// within the caller's bounded wait.
var ErrUnavailable = errors.New("average unavailable")

// SharedAverage holds the latest published mean behind a lock. The averager
// is the sole writer and waits for the lock unconditionally; the console is
// the sole reader and gives up after a bounded wait so it stays responsive.
// All access goes through the lock — there is no lock-free fast path.
type SharedAverage struct {
	sem   chan struct{}
	value float64
}

// NewSharedAverage creates a SharedAverage with an unlocked lock and a zero
// value.
func NewSharedAverage() *SharedAverage {
	return &SharedAverage{
		sem: make(chan struct{}, 1),
	}
}

// Lock acquires the lock, waiting for as long as it takes.
func (a *SharedAverage) Lock() {
	a.sem <- struct{}{}
}

// Unlock releases the lock.
func (a *SharedAverage) Unlock() {
	<-a.sem
}

// lockTimeout tries to acquire the lock within d. It reports whether the
// lock was acquired.
func (a *SharedAverage) lockTimeout(d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case a.sem <- struct{}{}:
		return true
	case <-timer.C:
		return false
	}
}

// Set stores a newly computed mean. The write waits for the lock
// unconditionally and never fails.
func (a *SharedAverage) Set(v float64) {
	a.Lock()
	a.value = v
	a.Unlock()
}

// Get copies the current mean under the lock, waiting at most timeout for
// it. On timeout it returns ErrUnavailable; the caller treats that as
// recoverable and must not retry blocking.
func (a *SharedAverage) Get(timeout time.Duration) (float64, error) {
	if !a.lockTimeout(timeout) {
		return 0, ErrUnavailable
	}
	v := a.value
	a.Unlock()
	return v, nil
}
