// Package echo implements the interactive console worker: it echoes every
// input byte back, and on a full line either repeats the line or, for the
// "avg" command, reports the latest published average.
package echo

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/quietlab/adcmon/pkg/config"
	"github.com/quietlab/adcmon/pkg/display"
	"github.com/quietlab/adcmon/pkg/sampling"
)

const (
	// CommandAverage queries the published mean instead of echoing.
	CommandAverage = "avg"
	// ErrorString is printed when the average lock cannot be acquired
	// within the bounded wait.
	ErrorString = "ERROR! >_<...Couldn't access average"
)

// Console reads the line-oriented input stream, echoes it, and dispatches
// completed lines. It alternates between two states: accumulating bytes
// into the line buffer, and dispatching on newline. It never terminates on
// its own; Run returns only when the context is cancelled or the input
// stream ends.
type Console struct {
	in   Input
	out  io.Writer
	disp display.Display
	avg  *sampling.SharedAverage

	readTimeout  time.Duration
	pollInterval time.Duration
	logger       *zap.Logger

	line []byte
}

// New creates a console reading from in, echoing to out and rendering
// dispatched lines to disp.
func New(in Input, out io.Writer, disp display.Display, avg *sampling.SharedAverage, cfg config.ConsoleConfig, logger *zap.Logger) *Console {
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 50 * time.Millisecond
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 10 * time.Millisecond
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Console{
		in:           in,
		out:          out,
		disp:         disp,
		avg:          avg,
		readTimeout:  cfg.ReadTimeout,
		pollInterval: cfg.PollInterval,
		logger:       logger,
	}
}

// Run drains pending input, then sleeps for the poll interval before
// checking again. That sleep and the bounded lock wait in dispatch are the
// console's only suspension points.
func (c *Console) Run(ctx context.Context) error {
	c.logger.Info("console started",
		zap.Duration("read_timeout", c.readTimeout),
		zap.Duration("poll_interval", c.pollInterval))

	for {
		for {
			b, ok, err := c.in.ReadByte()
			if err != nil {
				if err == io.EOF {
					c.logger.Info("console input closed")
					return nil
				}
				return fmt.Errorf("console input failed: %w", err)
			}
			if !ok {
				break
			}
			c.handleByte(b)
		}

		select {
		case <-ctx.Done():
			c.logger.Info("console stopped")
			return nil
		case <-time.After(c.pollInterval):
		}
	}
}

// handleByte echoes one byte and feeds the line state machine.
func (c *Console) handleByte(b byte) {
	// Every byte read is echoed back immediately, newline included
	c.out.Write([]byte{b})

	if b == '\n' {
		c.dispatch()
		return
	}

	c.line = append(c.line, b)
}

// dispatch processes a completed line. The line buffer is cleared no matter
// the outcome.
func (c *Console) dispatch() {
	text := strings.TrimSpace(string(c.line))
	c.line = c.line[:0]

	if text != CommandAverage {
		fmt.Fprintln(c.out, text)
		c.disp.Render(text)
		return
	}

	value, err := c.avg.Get(c.readTimeout)
	if err != nil {
		// Lock busy past the bounded wait; report and move on. The display
		// keeps its previous content.
		fmt.Fprintln(c.out, ErrorString)
		c.logger.Warn("average read timed out", zap.Duration("timeout", c.readTimeout))
		return
	}

	msg := "Average: " + strconv.FormatFloat(value, 'f', -1, 64)
	fmt.Fprintln(c.out, msg)
	c.disp.Render(msg)
}
