package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHighpassAttenuatesDC(t *testing.T) {
	const sampleRate = 48000
	hp := newHighpassBiquad(75, sampleRate)

	var last float64
	for i := 0; i < 5000; i++ {
		last = hp.process(1.0) // constant (DC) input
	}
	assert.Less(t, math.Abs(last), 0.01, "high-pass filter should attenuate DC to near zero")
}

func TestLowpassPassesDC(t *testing.T) {
	const sampleRate = 48000
	lp := newLowpassBiquad(20000, sampleRate)

	var last float64
	for i := 0; i < 5000; i++ {
		last = lp.process(1.0)
	}
	assert.InDelta(t, 1.0, last, 0.05, "low-pass filter should pass DC near unity gain")
}

func TestFilterPairPreservesToneWithinBand(t *testing.T) {
	samples := sineWave(1000, 0.8, 48000, 48000)
	filtered := applyFilters(samples, 1, 75, 20000, 48000)

	// Measure RMS of the tail, after the filter has settled.
	tail := filtered[len(filtered)-4800:]
	inTail := samples[len(samples)-4800:]

	assert.InDelta(t, rms(inTail), rms(tail), 0.1)
}
