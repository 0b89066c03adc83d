package dsp

import "golang.org/x/exp/constraints"

// clamp restricts v to [lo, hi]. Used as a final hard safety bound on
// signal stages whose output should never leave full scale.
func clamp[T constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
