package sampling

import (
	"context"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/quietlab/adcmon/pkg/adc"
)

// DefaultPeriod is the default interval between ADC reads.
const DefaultPeriod = 100 * time.Millisecond

// Sampler is the periodic producer. On every tick it reads one raw value
// from the analog source and appends it to the double buffer; when a slot
// fills it hands the slot id to the averager through the mailbox. The tick
// body never blocks and completes well within one period.
type Sampler struct {
	src    adc.Source
	buf    *Buffer
	box    *Mailbox
	period time.Duration
	logger *zap.Logger
}

// NewSampler creates a sampler reading src into buf every period, handing
// filled slots off through box.
func NewSampler(src adc.Source, buf *Buffer, box *Mailbox, period time.Duration, logger *zap.Logger) *Sampler {
	if period <= 0 {
		period = DefaultPeriod
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Sampler{
		src:    src,
		buf:    buf,
		box:    box,
		period: period,
		logger: logger,
	}
}

// Run samples on a fixed ticker until ctx is cancelled.
func (s *Sampler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	s.logger.Info("sampler started", zap.Duration("period", s.period), zap.Int("slot_size", s.buf.SlotSize()))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sampler stopped")
			return
		case <-ticker.C:
			s.sampleOnce()
		}
	}
}

// sampleOnce performs one tick: read, store, hand off on fill.
func (s *Sampler) sampleOnce() {
	value := s.src.Read()

	slot, filled := s.buf.Write(value)
	if !filled {
		return
	}

	if s.box.Send(slot) {
		// The averager was blocked on the handoff; let it run now rather
		// than at the scheduler's leisure.
		runtime.Gosched()
	}

	s.logger.Debug("slot handed off", zap.Int("slot", slot))
}
