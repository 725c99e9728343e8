package utils

import (
	"math/rand/v2"
)

// RandomFloat returns a random float64 in [0.0, 1.0)
func RandomFloat() float64 {
	return rand.Float64() //nolint:gosec // Game logic randomness, not security critical
}

// WeightedIndex picks an index proportionally to weights using r in [0,1).
// Non-positive weights are never chosen. Returns -1 when no weight is positive.
func WeightedIndex(weights []float64, r float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}

	target := r * total
	cumulative := 0.0
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cumulative += w
		last = i
		if target < cumulative {
			return i
		}
	}
	// r rounding up to total lands on the last positive weight
	return last
}

// UniformIndex maps r in [0,1) onto [0,n). Returns -1 for n <= 0.
func UniformIndex(n int, r float64) int {
	if n <= 0 {
		return -1
	}
	idx := int(r * float64(n))
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}
