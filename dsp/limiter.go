package dsp

import "math"

// slidingWindowAbsMax returns, for every index i, the maximum of
// |x[j]| for j in [i-window+1, i] (indices before 0 treated as absent).
// Uses a monotonic deque so the whole pass is O(n) regardless of window.
func slidingWindowAbsMax(x []float64, window int) []float64 {
	n := len(x)
	out := make([]float64, n)
	idx := make([]int, 0, window)

	for i := 0; i < n; i++ {
		v := math.Abs(x[i])
		for len(idx) > 0 && math.Abs(x[idx[len(idx)-1]]) <= v {
			idx = idx[:len(idx)-1]
		}
		idx = append(idx, i)
		if idx[0] <= i-window {
			idx = idx[1:]
		}
		out[i] = math.Abs(x[idx[0]])
	}
	return out
}

// limiter implements a lookahead peak limiter: the gain trace moves
// instantly downward (zero attack) and recovers upward
// toward 1 at the release rate, while the signal itself is delayed by
// the lookahead window so the gain decision always precedes the sample
// it is applied to.
func limiter(samples []float32, thresholdDB, lookaheadMs, releaseMs, sampleRate float64) []float32 {
	n := len(samples)
	if n == 0 {
		return nil
	}

	threshold := dBFSToLinear(thresholdDB)
	lookahead := int(math.Round(lookaheadMs * sampleRate / 1000))
	if lookahead < 1 {
		lookahead = 1
	}
	alphaRelease := math.Exp(-1 / (releaseMs * sampleRate / 1000))

	x := make([]float64, n)
	for i, v := range samples {
		x[i] = float64(v)
	}

	// The window spans [i-lookahead, i] so it always includes the delayed
	// sample that gain[i] is applied to.
	peak := slidingWindowAbsMax(x, lookahead+1)

	out := make([]float32, n)
	gain := 1.0
	for i := 0; i < n; i++ {
		target := 1.0
		if peak[i] > threshold {
			target = threshold / peak[i]
		}
		if target < gain {
			gain = target
		} else {
			gain = alphaRelease*gain + (1-alphaRelease)*target
		}

		var delayed float64
		if i-lookahead >= 0 {
			delayed = x[i-lookahead]
		}
		// gain never exceeds threshold/peak[i] and peak[i] >= |delayed|,
		// so the output stays within the threshold; clamp to full scale
		// as a hard backstop.
		out[i] = float32(clamp(gain*delayed, -1, 1))
	}
	return out
}

// applyLimiter runs the lookahead peak limiter independently on each
// channel.
func applyLimiter(samples []float32, channels int, thresholdDB, lookaheadMs, releaseMs, sampleRate float64) []float32 {
	if channels <= 1 {
		return limiter(samples, thresholdDB, lookaheadMs, releaseMs, sampleRate)
	}

	frames := len(samples) / channels
	chans := make([][]float32, channels)
	for c := 0; c < channels; c++ {
		mono := make([]float32, frames)
		for i := 0; i < frames; i++ {
			mono[i] = samples[i*channels+c]
		}
		chans[c] = limiter(mono, thresholdDB, lookaheadMs, releaseMs, sampleRate)
	}

	out := make([]float32, len(samples))
	for c := 0; c < channels; c++ {
		for i := 0; i < frames; i++ {
			out[i*channels+c] = chans[c][i]
		}
	}
	return out
}
