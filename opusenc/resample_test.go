package opusenc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResampleIdentityWhenRatesMatch(t *testing.T) {
	in := []float64{0.1, 0.2, -0.3, 0.4}
	out := resample(in, 48000, 48000)
	assert.Equal(t, in, out)
}

func TestResampleUpsamplePreservesLowFrequencyTone(t *testing.T) {
	const inRate = 16000
	const outRate = 48000
	n := 1600 // 100ms at 16kHz

	in := make([]float64, n)
	for i := range in {
		in[i] = math.Sin(2 * math.Pi * 440 * float64(i) / float64(inRate))
	}

	out := resample(in, inRate, outRate)
	expectedLen := n * outRate / inRate
	assert.InDelta(t, expectedLen, len(out), 2)

	// Peak amplitude should survive resampling roughly intact.
	var maxIn, maxOut float64
	for _, v := range in {
		if math.Abs(v) > maxIn {
			maxIn = math.Abs(v)
		}
	}
	for _, v := range out[len(out)/4 : 3*len(out)/4] {
		if math.Abs(v) > maxOut {
			maxOut = math.Abs(v)
		}
	}
	assert.InDelta(t, maxIn, maxOut, 0.3)
}

func TestResampleDownsampleShrinksLength(t *testing.T) {
	in := make([]float64, 48000)
	for i := range in {
		in[i] = math.Sin(2 * math.Pi * 1000 * float64(i) / 48000)
	}

	out := resample(in, 48000, 44100)
	assert.InDelta(t, 44100, len(out), 2)
}
