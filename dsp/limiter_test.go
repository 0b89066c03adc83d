package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestLimiterLookaheadDucksBeforeImpulse checks that the lookahead lets
// the limiter reduce its gain before the delayed impulse is emitted: the
// impulse comes out attenuated to the threshold, and the output before
// it is silent.
func TestLimiterLookaheadDucksBeforeImpulse(t *testing.T) {
	const sampleRate = 48000
	n := 2000
	samples := make([]float32, n)
	samples[0] = 0.99

	const lookaheadMs = 5.0
	lookahead := int(lookaheadMs * sampleRate / 1000) // 240 samples

	out := limiter(samples, -6, lookaheadMs, 50, sampleRate)

	// The impulse itself reappears, delayed by the lookahead, at index
	// `lookahead`, attenuated to the threshold.
	threshold := dBFSToLinear(-6)
	assert.InDelta(t, threshold, float64(out[lookahead]), 1e-3)

	// Gain reduction is visible in the trace as soon as the impulse
	// enters the lookahead window, i.e. at output index 0: output there
	// is silent (no signal yet) but the limiter has already committed to
	// a reduced gain that stays in effect through index lookahead.
	for i := 0; i < lookahead; i++ {
		assert.InDelta(t, 0, out[i], 1e-9, "no signal has reached the delay line yet at %d", i)
	}
}

func TestLimiterNeverExceedsThresholdOnLoudInput(t *testing.T) {
	samples := sineWave(440, 0.999, 48000, 48000)
	out := limiter(samples, -3, 5, 50, 48000)

	ceiling := dBFSToLinear(-3) + 1e-5
	for _, v := range out {
		assert.LessOrEqual(t, float64(v), ceiling)
		assert.GreaterOrEqual(t, float64(v), -ceiling)
	}
}

func TestLimiterPassesQuietSignalUnity(t *testing.T) {
	samples := sineWave(440, 0.1, 48000, 9600)
	out := limiter(samples, -1, 5, 50, 48000)

	lookahead := int(5 * 48000 / 1000)
	tail := out[len(out)-1000:]
	inTail := samples[len(samples)-1000-lookahead : len(samples)-lookahead]
	for i := range tail {
		assert.InDelta(t, float64(inTail[i]), float64(tail[i]), 0.01)
	}
}
