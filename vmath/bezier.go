package vmath

import "github.com/go-gl/mathgl/mgl64"

// QuadBezier evaluates a scalar quadratic Bézier at t
func QuadBezier(start, control, end, t float64) float64 {
	u := 1 - t
	return u*u*start + 2*u*t*control + t*t*end
}

// QuadBezierPoint evaluates the 3D quadratic Bézier at t
func QuadBezierPoint(start, control, end Vec3, t float64) Vec3 {
	return mgl64.QuadraticBezierCurve3D(t, start, control, end)
}

// SampleQuadBezier returns n evenly spaced samples over t ∈ [0,1], endpoints included
// n < 2 yields just the start point
func SampleQuadBezier(start, control, end Vec3, n int) []Vec3 {
	if n < 2 {
		return []Vec3{start}
	}
	points := make([]Vec3, n)
	last := float64(n - 1)
	for i := range points {
		points[i] = QuadBezierPoint(start, control, end, float64(i)/last)
	}
	return points
}
