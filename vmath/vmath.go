package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is the float64 3D vector used for all room-space positions
type Vec3 = mgl64.Vec3

// Epsilon is the tolerance used by approximate comparisons
const Epsilon = 1e-9

// Clamp restricts v to [lo, hi]
// lo wins when the range is inverted, which keeps the result stable under repeated application
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// Lerp interpolates from a to b by t, t is not clamped
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// V3Lerp interpolates each component from a to b by t
func V3Lerp(a, b Vec3, t float64) Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// V3Normalize returns the unit vector, zero-safe
// mgl64's Normalize divides by length and yields NaN for the zero vector
func V3Normalize(v Vec3) Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return v.Mul(1 / l)
}

// V3ApproxEqual compares component-wise within eps
func V3ApproxEqual(a, b Vec3, eps float64) bool {
	return a.ApproxEqualThreshold(b, eps)
}
