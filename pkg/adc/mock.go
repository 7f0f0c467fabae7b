package adc

import (
	"fmt"
	"sync"
	"time"

	"github.com/chewxy/math32"

	"github.com/quietlab/adcmon/pkg/config"
)

// Mock simulates an analog source for testing and development. It produces
// a slow sine wave with a bit of noise, scaled to 12-bit counts.
type Mock struct {
	cfg *config.MockConfig

	mu        sync.RWMutex
	connected bool
	startTime time.Time
}

// NewMock creates a new mocked source instance.
func NewMock(cfg *config.MockConfig) *Mock {
	if cfg == nil {
		cfg = &config.MockConfig{
			Bias:       2048,
			Amplitude:  1024,
			NoiseLevel: 16,
			WavePeriod: 20 * time.Second,
		}
	}

	return &Mock{cfg: cfg}
}

// Connect simulates connecting to the source.
func (m *Mock) Connect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.connected {
		return fmt.Errorf("already connected")
	}

	m.connected = true
	m.startTime = time.Now()

	return nil
}

// Close stops the mocked source.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.connected = false

	return nil
}

// Read returns a simulated reading for the current time.
func (m *Mock) Read() int {
	m.mu.RLock()
	elapsed := time.Since(m.startTime)
	m.mu.RUnlock()

	phase := float32(elapsed.Seconds()/m.cfg.WavePeriod.Seconds()) * 2 * math32.Pi
	value := float32(m.cfg.Bias) + float32(m.cfg.Amplitude)*math32.Sin(phase)

	// Deterministic wander standing in for converter noise
	noise := math32.Sin(phase*37.0) * float32(m.cfg.NoiseLevel)
	value += noise

	if value < 0 {
		value = 0
	} else if value > MaxReading {
		value = MaxReading
	}

	return int(value)
}

// IsConnected returns whether the source is currently connected.
func (m *Mock) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}
