package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmpGateMutesBelowThreshold(t *testing.T) {
	samples := sineWave(1000, 0.001, 48000, 4800) // far below -20 dBFS default threshold
	gated := ampGate(samples, -20, 10, 100, 5, 48000)

	for _, v := range gated {
		assert.InDelta(t, 0, v, 1e-3)
	}
}

func TestAmpGateOpensAboveThreshold(t *testing.T) {
	samples := sineWave(1000, 0.9, 48000, 9600) // well above threshold
	gated := ampGate(samples, -20, 10, 100, 5, 48000)

	tail := gated[len(gated)-1000:]
	inTail := samples[len(samples)-1000:]
	assert.InDelta(t, rms(inTail), rms(tail), 0.1)
}

func TestAmpGateLookaheadOpensAtOnset(t *testing.T) {
	const sampleRate = 48000
	n := 4800
	onset := 2000
	samples := make([]float32, n)
	for i := onset; i < n; i++ {
		samples[i] = 0.9
	}

	withLookahead := ampGate(samples, -20, 0.1, 100, 5, sampleRate)
	withoutLookahead := ampGate(samples, -20, 0.1, 100, 0, sampleRate)

	// With a 5ms lookahead the envelope decision for the onset sample was
	// made ~240 samples earlier, giving the fast attack time to fully
	// open the gate by the time the onset sample itself is emitted.
	assert.InDelta(t, samples[onset], withLookahead[onset], 0.05)

	// Without lookahead the gate only starts opening once the onset
	// sample itself arrives, so it is still attenuated at that instant.
	assert.Less(t, float64(withoutLookahead[onset]), float64(withLookahead[onset]))
}
