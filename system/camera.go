package system

import (
	"math"

	"github.com/lixenwraith/escape-room/parameter"
	"github.com/lixenwraith/escape-room/physics"
	"github.com/lixenwraith/escape-room/vmath"
)

// FollowSettings shapes the trailing camera
type FollowSettings struct {
	Distance     float64
	Height       float64
	LookAtHeight float64
	// Smoothing is the per-tick fraction of the gap closed, 1 snaps
	Smoothing float64
}

// DefaultFollowSettings mirrors the parameter constants
func DefaultFollowSettings() FollowSettings {
	return FollowSettings{
		Distance:     parameter.CameraFollowDistance,
		Height:       parameter.CameraFollowHeight,
		LookAtHeight: parameter.CameraLookAtHeight,
		Smoothing:    parameter.CameraFollowLerp,
	}
}

// FollowCamera trails an agent from behind and above
// The camera is not bounds-constrained and may leave the room
type FollowCamera struct {
	Settings FollowSettings
	Position vmath.Vec3
	LookAt   vmath.Vec3
	start    vmath.Vec3
}

// NewFollowCamera places the camera at start looking at the room centre
func NewFollowCamera(settings FollowSettings, start vmath.Vec3) *FollowCamera {
	return &FollowCamera{
		Settings: settings,
		Position: start,
		LookAt:   vmath.Vec3{0, settings.LookAtHeight, 0},
		start:    start,
	}
}

// Target returns the resting camera position for agent
func (c *FollowCamera) Target(agent physics.Agent) vmath.Vec3 {
	sin, cos := math.Sincos(agent.Facing)
	offset := vmath.Vec3{
		sin * -c.Settings.Distance,
		c.Settings.Height,
		cos * -c.Settings.Distance,
	}
	return agent.Position.Add(offset)
}

// Update eases the camera toward its target and re-aims at the agent
func (c *FollowCamera) Update(agent physics.Agent) {
	c.Position = vmath.V3Lerp(c.Position, c.Target(agent), c.Settings.Smoothing)
	c.LookAt = agent.Position.Add(vmath.Vec3{0, c.Settings.LookAtHeight, 0})
}

// Snap jumps straight to the target
func (c *FollowCamera) Snap(agent physics.Agent) {
	c.Position = c.Target(agent)
	c.LookAt = agent.Position.Add(vmath.Vec3{0, c.Settings.LookAtHeight, 0})
}

// Reset returns to the start placement
func (c *FollowCamera) Reset() {
	c.Position = c.start
	c.LookAt = vmath.Vec3{0, c.Settings.LookAtHeight, 0}
}
