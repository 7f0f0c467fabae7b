// Package display provides the render sink for the interactive console.
// Renders are full clear-and-redraw: only the latest string matters and
// nothing queues.
package display

import "sync"

// Display renders the last output string. Implementations replace the
// previous content entirely on every call.
type Display interface {
	Render(text string)
}

// Ensure implementations satisfy Display.
var (
	_ Display = (*Memory)(nil)
	_ Display = (*Terminal)(nil)
	_ Display = (*Screen)(nil)
)

// Memory keeps only the last rendered string. It is used in tests and as a
// headless sink.
type Memory struct {
	mu   sync.Mutex
	last string
}

// NewMemory creates an empty in-memory display.
func NewMemory() *Memory {
	return &Memory{}
}

// Render replaces the stored content.
func (m *Memory) Render(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = text
}

// Last returns the most recently rendered string.
func (m *Memory) Last() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}
