// Package sampling implements the producer/consumer core: a double buffer
// filled by the periodic sampler, a single-slot handoff mailbox, the
// averaging worker and the lock-protected published average.
package sampling

// DefaultSlotSize is the number of readings that fill one buffer slot.
const DefaultSlotSize = 10

// Buffer is a fixed-capacity double buffer for raw readings. The sampler
// fills the active slot; once full the buffer flips and the just-filled slot
// becomes readable by the consumer.
//
// Buffer takes no locks: only the sampler mutates it, and the consumer only
// reads a slot after its id has been handed off. The handed-off slot stays
// valid for one fill cycle — if the consumer is still reading it when the
// buffer flips back, its contents are overwritten under the reader. That
// bounded slack is an accepted limit of the design.
type Buffer struct {
	slots  [2][]int
	active int
	pos    int
}

// NewBuffer creates a double buffer whose slots hold n readings each.
// Non-positive n falls back to DefaultSlotSize.
func NewBuffer(n int) *Buffer {
	if n <= 0 {
		n = DefaultSlotSize
	}
	return &Buffer{
		slots: [2][]int{make([]int, n), make([]int, n)},
	}
}

// Write appends value to the active slot. When the write fills the slot,
// the buffer flips to the other slot and Write returns the filled slot's id
// with filled set. Write never blocks and performs no allocation.
func (b *Buffer) Write(value int) (slot int, filled bool) {
	b.slots[b.active][b.pos] = value
	b.pos++

	if b.pos < len(b.slots[b.active]) {
		return 0, false
	}

	slot = b.active
	b.active = 1 - b.active
	b.pos = 0

	return slot, true
}

// Slot returns the readings backing slot i. The returned slice aliases the
// buffer's storage; it is only stable until the next flip into that slot.
func (b *Buffer) Slot(i int) []int {
	return b.slots[i]
}

// SlotSize returns the number of readings per slot.
func (b *Buffer) SlotSize() int {
	return len(b.slots[0])
}
