package parameter

// Camera-driven (free) agent
const (
	// CameraMoveSpeed is in units per second, scaled by real delta time
	CameraMoveSpeed = 5.0
)

// Character agent
const (
	// CharacterStep is the distance covered per tick regardless of frame time
	CharacterStep = 0.1

	// CharacterTurnRate is the fraction of the remaining yaw closed per tick, in (0,1)
	CharacterTurnRate = 0.15

	// CharacterStartX/Z is the spawn point at the room centre
	CharacterStartX = 0.0
	CharacterStartZ = 0.0
)
