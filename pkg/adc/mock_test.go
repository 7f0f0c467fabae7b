package adc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietlab/adcmon/pkg/config"
)

func TestMock_ConnectClose(t *testing.T) {
	m := NewMock(nil)

	assert.False(t, m.IsConnected())

	require.NoError(t, m.Connect())
	assert.True(t, m.IsConnected())

	assert.Error(t, m.Connect(), "double connect should fail")

	require.NoError(t, m.Close())
	assert.False(t, m.IsConnected())
}

func TestMock_ReadStaysInRange(t *testing.T) {
	m := NewMock(&config.MockConfig{
		Bias:       2048,
		Amplitude:  4000, // Deliberately clips against both rails
		NoiseLevel: 100,
		WavePeriod: 10 * time.Millisecond,
	})
	require.NoError(t, m.Connect())
	defer m.Close()

	for i := 0; i < 200; i++ {
		v := m.Read()
		assert.GreaterOrEqual(t, v, 0)
		assert.LessOrEqual(t, v, MaxReading)
		time.Sleep(100 * time.Microsecond)
	}
}

func TestMock_ReadTracksWaveform(t *testing.T) {
	m := NewMock(&config.MockConfig{
		Bias:       2000,
		Amplitude:  500,
		NoiseLevel: 0,
		WavePeriod: 20 * time.Second,
	})
	require.NoError(t, m.Connect())
	defer m.Close()

	// Right after connect the wave sits near its bias
	v := m.Read()
	assert.InDelta(t, 2000, v, 100)
}
