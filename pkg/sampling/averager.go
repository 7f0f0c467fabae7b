package sampling

import (
	"go.uber.org/zap"
)

// Averager is the consumer worker. It blocks on the mailbox, computes the
// arithmetic mean of the handed-off slot and publishes it to the shared
// average. There is no timeout on either wait: the handoff may take as long
// as a fill cycle, and starving the single writer of the lock would be a
// correctness violation.
type Averager struct {
	buf    *Buffer
	box    *Mailbox
	avg    *SharedAverage
	logger *zap.Logger
}

// NewAverager creates an averager consuming box and publishing into avg.
func NewAverager(buf *Buffer, box *Mailbox, avg *SharedAverage, logger *zap.Logger) *Averager {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Averager{
		buf:    buf,
		box:    box,
		avg:    avg,
		logger: logger,
	}
}

// Run consumes handoffs until the mailbox is closed.
func (a *Averager) Run() {
	a.logger.Info("averager started")

	for {
		slot, ok := a.box.Receive()
		if !ok {
			a.logger.Info("averager stopped")
			return
		}

		readings := a.buf.Slot(slot)

		sum := 0
		for _, v := range readings {
			sum += v
		}
		mean := float64(sum) / float64(len(readings))

		a.avg.Set(mean)

		a.logger.Debug("average published", zap.Int("slot", slot), zap.Float64("average", mean))
	}
}
