package utils

import (
	"math/rand/v2"
)

// RandomFloat returns a random float64 in [0.0, 1.0)
func RandomFloat() float64 {
	return rand.Float64() //nolint:gosec // Game logic randomness, not security critical
}

// RandomInt returns a random integer between min and max (inclusive)
func RandomInt(min, max int) int {
	if min > max {
		return min
	}
	return rand.IntN(max-min+1) + min //nolint:gosec // Game logic randomness, not security critical
}

// SeededFloat returns a deterministic float source for simulations and tests.
func SeededFloat(seed uint64) func() float64 {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint:gosec
	return r.Float64
}

// SeededInt returns a deterministic inclusive-range int source.
func SeededInt(seed uint64) func(min, max int) int {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint:gosec
	return func(min, max int) int {
		if min > max {
			return min
		}
		return r.IntN(max-min+1) + min
	}
}
