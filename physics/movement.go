package physics

import (
	"math"
	"time"

	"github.com/lixenwraith/escape-room/vmath"
)

// Input is one tick's planar movement request, each axis in [-1,1]
type Input struct {
	X, Z float64
}

// IsZero reports a released stick
func (in Input) IsZero() bool {
	return in.X == 0 && in.Z == 0
}

// Clamped forces each axis into [-1,1]
func (in Input) Clamped() Input {
	return Input{
		X: vmath.Clamp(in.X, -1, 1),
		Z: vmath.Clamp(in.Z, -1, 1),
	}
}

// Agent is anything with a position and a yaw that moves once per tick
type Agent struct {
	Position vmath.Vec3
	Facing   float64
}

// Controller applies a MovementProfile inside fixed bounds
// Stateless apart from configuration, agents are passed by value
type Controller struct {
	Profile MovementProfile
	Bounds  Bounds
}

// NewController binds a profile to bounds
func NewController(profile MovementProfile, bounds Bounds) *Controller {
	return &Controller{
		Profile: profile,
		Bounds:  bounds,
	}
}

// Step moves agent by one tick of input
// Zero input returns the agent unchanged, facing included
func (c *Controller) Step(agent Agent, in Input, dt time.Duration) Agent {
	if in.IsZero() {
		return agent
	}
	in = in.Clamped()

	dir := vmath.V3Normalize(vmath.Vec3{in.X, 0, in.Z})
	distance := c.Profile.Speed
	if c.Profile.DeltaTimeCoupled {
		distance *= dt.Seconds()
	}

	next := agent.Position.Add(dir.Mul(distance))
	agent.Position = c.Bounds.Constrain(next, c.Profile.BoundsBuffer)

	if c.Profile.TurnRate > 0 {
		// kept in (-π, π] so the next turn still takes the short arc
		agent.Facing = NormalizeFacing(SmoothFacing(agent.Facing, TargetFacing(in), c.Profile.TurnRate))
	}
	return agent
}

// Constrain snaps an externally placed agent back inside this controller's box
func (c *Controller) Constrain(agent Agent) Agent {
	agent.Position = c.Bounds.Constrain(agent.Position, c.Profile.BoundsBuffer)
	return agent
}

// NormalizeFacing folds a yaw into (-π, π]
func NormalizeFacing(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
