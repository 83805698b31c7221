package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTargetFacing(t *testing.T) {
	assert.InDelta(t, 0, TargetFacing(Input{Z: 1}), 1e-12)
	assert.InDelta(t, math.Pi/2, TargetFacing(Input{X: 1}), 1e-12)
	assert.InDelta(t, -math.Pi/2, TargetFacing(Input{X: -0.3}), 1e-12)
}

func TestSmoothFacing_ShortArcAcrossPi(t *testing.T) {
	current, target, rate := 3.0, -3.0, 0.15

	got := SmoothFacing(current, target, rate)

	// Raw diff -6 wraps to 2π-6 ≈ 0.283, so the turn is positive and small
	wrapped := 2*math.Pi - 6
	assert.InDelta(t, current+wrapped*rate, got, 1e-12)
	assert.Greater(t, got, current, "must turn through π, not back through 0")
	assert.Less(t, got-current, 0.05)
}

func TestSmoothFacing_ShortArcOtherWay(t *testing.T) {
	got := SmoothFacing(-3.0, 3.0, 0.15)
	assert.Less(t, got, -3.0)
	assert.InDelta(t, -3.0-(2*math.Pi-6)*0.15, got, 1e-12)
}

func TestSmoothFacing_Converges(t *testing.T) {
	a := 0.0
	for i := 0; i < 100; i++ {
		a = SmoothFacing(a, 1.2, 0.15)
	}
	assert.InDelta(t, 1.2, a, 1e-6)
}

func TestSmoothFacing_NoChangeAtTarget(t *testing.T) {
	assert.Equal(t, 0.5, SmoothFacing(0.5, 0.5, 0.15))
}
