// Package adc provides access to the analog input whose readings feed the
// sampling pipeline. The board streams one raw reading per line over serial;
// the host keeps the most recent value so that Read never blocks.
package adc

// Source defines the interface for analog sources (real or mocked).
type Source interface {
	Connect() error
	Close() error
	// Read returns the most recent raw reading. It always succeeds and
	// returns promptly.
	Read() int
	IsConnected() bool
}

// Ensure Serial implements Source.
var _ Source = (*Serial)(nil)

// Ensure Mock implements Source.
var _ Source = (*Mock)(nil)
