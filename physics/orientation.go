package physics

import "github.com/lixenwraith/escape-room/vmath"

// TargetFacing is the yaw that looks along the travel direction of in
func TargetFacing(in Input) float64 {
	return vmath.HeadingXZ(in.X, in.Z)
}

// SmoothFacing turns current toward target by rate along the shortest arc
// rate in (0,1), smaller turns slower; the result is not re-normalised into (-π, π]
func SmoothFacing(current, target, rate float64) float64 {
	return current + vmath.WrapAngleDelta(target-current)*rate
}
