package pcmio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferFramesAndDuration(t *testing.T) {
	buf := Buffer{Samples: make([]float32, 2000), SampleRate: 1000, Channels: 2}
	assert.Equal(t, 1000, buf.Frames())
	assert.InDelta(t, 1.0, buf.Duration(), 1e-9)
}

func TestBufferValidateRejectsBadChannelCount(t *testing.T) {
	buf := Buffer{Samples: make([]float32, 10), SampleRate: 48000, Channels: 3}
	require.Error(t, buf.Validate())
}

func TestBufferValidateRejectsMisalignedSamples(t *testing.T) {
	buf := Buffer{Samples: make([]float32, 5), SampleRate: 48000, Channels: 2}
	require.Error(t, buf.Validate())
}

func TestBufferChannelExtractsInterleavedChannel(t *testing.T) {
	buf := Buffer{Samples: []float32{1, 9, 2, 9, 3, 9}, SampleRate: 48000, Channels: 2}
	assert.Equal(t, []float32{1, 2, 3}, buf.Channel(0))
	assert.Equal(t, []float32{9, 9, 9}, buf.Channel(1))
}

func TestBufferCloneIsIndependent(t *testing.T) {
	buf := Buffer{Samples: []float32{1, 2, 3}, SampleRate: 48000, Channels: 1}
	clone := buf.Clone()
	clone.Samples[0] = 99
	assert.NotEqual(t, buf.Samples[0], clone.Samples[0])
}
