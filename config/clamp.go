package config

import "golang.org/x/exp/constraints"

// inRange reports whether v falls within [lo, hi], inclusive.
func inRange[T constraints.Float](v, lo, hi T) bool {
	return v >= lo && v <= hi
}
