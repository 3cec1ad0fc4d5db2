package math

import (
	stdmath "math"

	"golang.org/x/exp/constraints"
)

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any numeric type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// Distance returns the euclidean distance between two points.
func Distance(one, two Vec2) float32 {
	dx := float64(two.X - one.X)
	dy := float64(two.Y - one.Y)
	return float32(stdmath.Sqrt(dx*dx + dy*dy))
}
