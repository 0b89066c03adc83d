package dsp

import "math"

// ampGateParams bundles the lookahead amplitude gate's derived constants.
type ampGateParams struct {
	thresholdLinear float64
	alphaAttack     float64
	alphaRelease    float64
	lookaheadSamples int
}

func newAmpGateParams(thresholdDB, attackMs, releaseMs, lookaheadMs, sampleRate float64) ampGateParams {
	return ampGateParams{
		thresholdLinear:  dBFSToLinear(thresholdDB),
		alphaAttack:      math.Exp(-1 / (attackMs * sampleRate / 1000)),
		alphaRelease:     math.Exp(-1 / (releaseMs * sampleRate / 1000)),
		lookaheadSamples: int(math.Round(lookaheadMs * sampleRate / 1000)),
	}
}

// envelopeFollower tracks |x[n]| with a one-pole filter using alphaAttack
// while rising and alphaRelease while falling.
func envelopeFollower(samples []float64, p ampGateParams) []float64 {
	env := make([]float64, len(samples))
	var prev float64
	for i, x := range samples {
		v := math.Abs(x)
		var alpha float64
		if v > prev {
			alpha = p.alphaAttack
		} else {
			alpha = p.alphaRelease
		}
		prev = alpha*prev + (1-alpha)*v
		env[i] = prev
	}
	return env
}

// ampGate applies a lookahead amplitude gate to one channel: the
// envelope at n+L decides the gain at n, so the gate opens L samples
// before the signal actually rises above threshold. The final L output
// samples reuse the last valid lookahead envelope value.
func ampGate(samples []float32, thresholdDB, attackMs, releaseMs, lookaheadMs, sampleRate float64) []float32 {
	p := newAmpGateParams(thresholdDB, attackMs, releaseMs, lookaheadMs, sampleRate)

	n := len(samples)
	in := make([]float64, n)
	for i, x := range samples {
		in[i] = float64(x)
	}
	env := envelopeFollower(in, p)

	out := make([]float32, n)
	var gain float64
	for i := 0; i < n; i++ {
		lookIdx := i + p.lookaheadSamples
		if lookIdx >= n {
			lookIdx = n - 1
		}
		target := 0.0
		if lookIdx >= 0 && env[lookIdx] >= p.thresholdLinear {
			target = 1.0
		}
		if target > gain {
			gain = p.alphaAttack*gain + (1-p.alphaAttack)*target
		} else {
			gain = p.alphaRelease*gain + (1-p.alphaRelease)*target
		}
		out[i] = float32(gain * in[i])
	}
	return out
}

// applyAmpGate runs the lookahead amplitude gate independently on each
// channel.
func applyAmpGate(samples []float32, channels int, thresholdDB, attackMs, releaseMs, lookaheadMs, sampleRate float64) []float32 {
	if channels <= 1 {
		return ampGate(samples, thresholdDB, attackMs, releaseMs, lookaheadMs, sampleRate)
	}

	frames := len(samples) / channels
	chans := make([][]float32, channels)
	for c := 0; c < channels; c++ {
		mono := make([]float32, frames)
		for i := 0; i < frames; i++ {
			mono[i] = samples[i*channels+c]
		}
		chans[c] = ampGate(mono, thresholdDB, attackMs, releaseMs, lookaheadMs, sampleRate)
	}

	out := make([]float32, len(samples))
	for c := 0; c < channels; c++ {
		for i := 0; i < frames; i++ {
			out[i*channels+c] = chans[c][i]
		}
	}
	return out
}
