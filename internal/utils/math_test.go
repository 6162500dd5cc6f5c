package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomInt_Bounds(t *testing.T) {
	seen := make(map[int]bool)
	for i := 0; i < 5000; i++ {
		n := RandomInt(20, 50)
		assert.GreaterOrEqual(t, n, 20)
		assert.LessOrEqual(t, n, 50)
		seen[n] = true
	}
	// both ends are reachable
	assert.True(t, seen[20], "min should be drawn")
	assert.True(t, seen[50], "max should be drawn")
}

func TestRandomInt_InvertedRange(t *testing.T) {
	assert.Equal(t, 7, RandomInt(7, 3))
}

func TestRandomFloat_Range(t *testing.T) {
	for i := 0; i < 1000; i++ {
		f := RandomFloat()
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)
	}
}

func TestSeededSources_AreDeterministic(t *testing.T) {
	a, b := SeededFloat(42), SeededFloat(42)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a(), b())
	}

	x, y := SeededInt(7), SeededInt(7)
	for i := 0; i < 10; i++ {
		assert.Equal(t, x(1, 6), y(1, 6))
	}
	assert.Equal(t, 9, SeededInt(1)(9, 2))
}
