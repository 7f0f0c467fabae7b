package sampling

import (
	"sync"
)

// Mailbox is a single-slot, overwrite-on-send notification channel between
// the sampler and the averager. A send while a value is still pending
// replaces it (latest wins); values never queue. The overwritten value is
// counted but otherwise unobservable — the matching buffer slot may already
// have been refilled by the time the consumer would have seen it.
type Mailbox struct {
	mu      sync.Mutex
	cond    *sync.Cond
	slot    int
	pending bool
	waiting bool
	closed  bool
	drops   uint64
}

// NewMailbox creates an empty mailbox.
func NewMailbox() *Mailbox {
	m := &Mailbox{}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// Send posts slot to the mailbox without blocking. A still-pending value is
// overwritten. Send reports whether a receiver was blocked waiting, so the
// caller can yield and let it run promptly. After Close, Send is a no-op.
func (m *Mailbox) Send(slot int) (woke bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return false
	}

	if m.pending {
		m.drops++
	}

	m.slot = slot
	m.pending = true

	woke = m.waiting
	m.cond.Signal()

	return woke
}

// Receive blocks until a value is pending, consumes it and returns it.
// It returns ok=false only once the mailbox has been closed and drained.
func (m *Mailbox) Receive() (slot int, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for !m.pending && !m.closed {
		m.waiting = true
		m.cond.Wait()
	}
	m.waiting = false

	if !m.pending {
		return 0, false
	}

	slot = m.slot
	m.pending = false

	return slot, true
}

// Close wakes a blocked receiver and makes further sends no-ops. A value
// pending at close time is still delivered.
func (m *Mailbox) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.cond.Broadcast()
}

// Drops returns the number of sends that were overwritten before a receiver
// observed them.
func (m *Mailbox) Drops() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.drops
}
