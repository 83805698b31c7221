package physics

import "github.com/lixenwraith/escape-room/parameter"

// MovementProfile configures one family of agents for the shared Controller
type MovementProfile struct {
	Name string

	// Speed is units per second when DeltaTimeCoupled, otherwise units per tick
	Speed float64

	// BoundsBuffer shrinks the room on x/z for this agent
	BoundsBuffer float64

	// DeltaTimeCoupled scales the step by elapsed time; false couples speed to frame rate
	DeltaTimeCoupled bool

	// TurnRate smooths facing toward travel direction, 0 leaves facing untouched
	TurnRate float64
}

// Movement profiles - pre-defined, copied into controllers

// CameraProfile drives the free first-person camera with real delta time
var CameraProfile = MovementProfile{
	Name:             "camera",
	Speed:            parameter.CameraMoveSpeed,
	BoundsBuffer:     parameter.BoundsBuffer,
	DeltaTimeCoupled: true,
	TurnRate:         0,
}

// CharacterProfile drives the visible character with a fixed per-tick step
// With the default room this keeps the character within ±2.5 on x/z
var CharacterProfile = MovementProfile{
	Name:             "character",
	Speed:            parameter.CharacterStep,
	BoundsBuffer:     parameter.BoundsBuffer,
	DeltaTimeCoupled: false,
	TurnRate:         parameter.CharacterTurnRate,
}
