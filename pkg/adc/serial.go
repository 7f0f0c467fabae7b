package adc

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"go.bug.st/serial"
	"go.uber.org/zap"
)

const (
	// DefaultBaudRate is the standard baud rate for the ADC board.
	DefaultBaudRate = 115200
	// MaxReading is the largest raw value the 12-bit converter produces.
	MaxReading = 4095
)

// Serial reads raw ADC values streamed by the board, one unsigned decimal
// per line, and keeps the latest one available for the sampler.
type Serial struct {
	port     string
	baudRate int
	logger   *zap.Logger

	conn      serial.Port
	latest    atomic.Int64
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	connected bool
}

// NewSerial creates a new Serial source for the given port and baud rate.
func NewSerial(port string, baudRate int, logger *zap.Logger) *Serial {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Serial{
		port:     port,
		baudRate: baudRate,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Ports returns the names of available serial ports.
func Ports() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}
	return ports, nil
}

// Connect opens the serial port and starts reading values.
func (s *Serial) Connect() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.connected {
		return fmt.Errorf("already connected")
	}

	mode := &serial.Mode{
		BaudRate: s.baudRate,
	}

	port, err := serial.Open(s.port, mode)
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", s.port, err)
	}

	s.conn = port
	s.connected = true

	go s.readValues()

	return nil
}

// Close closes the connection and stops reading values.
func (s *Serial) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return nil
	}

	s.cancel()

	if s.conn != nil {
		if err := s.conn.Close(); err != nil {
			s.logger.Warn("error closing serial port", zap.Error(err))
		}
		s.conn = nil
	}

	s.connected = false

	return nil
}

// Read returns the most recent value received from the board. Before the
// first line arrives it returns zero.
func (s *Serial) Read() int {
	return int(s.latest.Load())
}

// IsConnected returns whether the source is currently connected.
func (s *Serial) IsConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

// readValues reads lines from the serial port and stores parsed readings.
func (s *Serial) readValues() {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic in readValues", zap.Any("panic", r))
		}
	}()

	scanner := bufio.NewScanner(s.conn)
	for {
		select {
		case <-s.ctx.Done():
			return
		default:
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil && err != io.EOF {
					s.logger.Warn("error reading from serial port", zap.Error(err))
				}
				return
			}

			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			value, err := parseReading(line)
			if err != nil {
				s.logger.Warn("failed to parse reading", zap.String("line", line), zap.Error(err))
				continue
			}

			s.latest.Store(int64(value))
		}
	}
}

// parseReading parses one line from the board into a raw ADC value.
func parseReading(line string) (int, error) {
	value, err := strconv.ParseUint(line, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid reading: %w", err)
	}
	if value > MaxReading {
		return 0, fmt.Errorf("reading out of range: %d (max %d)", value, MaxReading)
	}
	return int(value), nil
}
