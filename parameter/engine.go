package parameter

import "time"

// Tick timing
const (
	// FrameUpdateInterval is the harness tick interval (~60 FPS), one logical tick per frame
	FrameUpdateInterval = 16 * time.Millisecond

	// MaxTickDelta caps the delta fed to time-coupled movement after a stall
	MaxTickDelta = 100 * time.Millisecond
)

// Status keys published by the room each tick
const (
	StatusTicks          = "room.ticks"
	StatusStars          = "room.stars"
	StatusPhase          = "room.phase"
	StatusCharacterX     = "character.x"
	StatusCharacterZ     = "character.z"
	StatusCharacterFace  = "character.facing"
	StatusKeypadDisplay  = "keypad.display"
	StatusBeamLit        = "beam.lit"
	StatusFlashlightOn   = "flashlight.on"
	StatusPendingTasks   = "scheduler.pending"
	StatusEquationSolved = "equation.solved"
)
