package vmath

import "math"

// WrapAngleDelta folds a raw angular difference onto the short side
// A single ±2π correction is applied, both angles must already lie in (-π, π]
func WrapAngleDelta(d float64) float64 {
	if d > math.Pi {
		d -= 2 * math.Pi
	} else if d < -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

// HeadingXZ returns the yaw that faces along (x, z), measured from +Z toward +X
func HeadingXZ(x, z float64) float64 {
	return math.Atan2(x, z)
}
