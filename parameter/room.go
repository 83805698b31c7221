package parameter

// Room geometry, centred on the origin
// Walls sit at ±RoomHalfWidth / ±RoomHalfDepth; wall-mounted props (laser, switch) are placed just inside
const (
	RoomWidth  = 6.0
	RoomDepth  = 6.0
	RoomHeight = 3.0

	// RoomFloorY is the lowest y any agent can reach
	RoomFloorY = 0.0

	// BoundsBuffer keeps agents this far from the walls on x/z, no buffer is applied on y
	BoundsBuffer = 0.5
)

// MaxStars is the star cap, one per challenge
const MaxStars = 3

// Challenge identifiers
const (
	ChallengeEquation = "equation-challenge"
	ChallengeLaser    = "laser-challenge"
	ChallengeKeypad   = "keypad-challenge"
)
