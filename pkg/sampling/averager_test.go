package sampling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAverager_PublishesMean(t *testing.T) {
	buf := NewBuffer(10)
	box := NewMailbox()
	avg := NewSharedAverage()

	// Exact sum 5123 over 10 readings: published mean must be 512.3
	readings := []int{512, 513, 511, 514, 510, 515, 509, 516, 511, 512}
	for _, v := range readings {
		buf.Write(v)
	}

	a := NewAverager(buf, box, avg, nil)

	done := make(chan struct{})
	go func() {
		a.Run()
		close(done)
	}()

	box.Send(0)

	require.Eventually(t, func() bool {
		v, err := avg.Get(50 * time.Millisecond)
		return err == nil && v == 512.3
	}, time.Second, 5*time.Millisecond, "averager should publish the arithmetic mean")

	box.Close()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("averager did not stop after mailbox close")
	}
}

func TestAverager_MeanIsFloatDivision(t *testing.T) {
	buf := NewBuffer(4)
	box := NewMailbox()
	avg := NewSharedAverage()

	for _, v := range []int{1, 2, 2, 2} {
		buf.Write(v)
	}

	a := NewAverager(buf, box, avg, nil)
	go a.Run()
	defer box.Close()

	box.Send(0)

	require.Eventually(t, func() bool {
		v, err := avg.Get(50 * time.Millisecond)
		return err == nil && v == 1.75
	}, time.Second, 5*time.Millisecond)
}

func TestPipeline_EndToEnd(t *testing.T) {
	src := &sequenceSource{values: []int{100}}
	buf := NewBuffer(5)
	box := NewMailbox()
	avg := NewSharedAverage()

	sampler := NewSampler(src, buf, box, time.Millisecond, nil)
	averager := NewAverager(buf, box, avg, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	averagerDone := make(chan struct{})
	go sampler.Run(ctx)
	go func() {
		averager.Run()
		close(averagerDone)
	}()

	require.Eventually(t, func() bool {
		v, err := avg.Get(50 * time.Millisecond)
		return err == nil && v == 100.0
	}, 2*time.Second, 10*time.Millisecond, "constant input should average to itself")

	cancel()
	box.Close()
	select {
	case <-averagerDone:
	case <-time.After(time.Second):
		t.Fatal("averager did not shut down")
	}
}

func TestPipeline_SlowConsumerSeesLatestSlotOnly(t *testing.T) {
	buf := NewBuffer(2)
	box := NewMailbox()
	avg := NewSharedAverage()

	// Fill and flip twice with no consumer observation
	buf.Write(1)
	_, filled := buf.Write(1)
	require.True(t, filled)
	box.Send(0)

	buf.Write(9)
	_, filled = buf.Write(9)
	require.True(t, filled)
	box.Send(1)

	a := NewAverager(buf, box, avg, nil)
	done := make(chan struct{})
	go func() {
		a.Run()
		close(done)
	}()

	// Only the most recent handoff is consumed
	require.Eventually(t, func() bool {
		v, err := avg.Get(50 * time.Millisecond)
		return err == nil && v == 9.0
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, uint64(1), box.Drops())

	box.Close()
	<-done
}
