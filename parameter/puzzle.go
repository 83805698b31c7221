package parameter

import "time"

// Laser beam on the west wall
const (
	// LaserWallX pins every beam point and the control point to the wall plane
	LaserWallX = -2.95

	LaserStartY = 1.6
	LaserStartZ = -1.7
	LaserEndY   = 1.6
	LaserEndZ   = 2.0

	// LaserRestY/Z is the straight-beam control point
	LaserRestY = 1.6
	LaserRestZ = 0.0

	// LaserSamples is the number of points handed to the renderer
	LaserSamples = 50

	// Drag plane: LaserPlaneNX*x + LaserPlaneNY*y + LaserPlaneNZ*z + LaserPlaneConstant = 0
	LaserPlaneNX       = 1.0
	LaserPlaneNY       = 3.0
	LaserPlaneNZ       = 0.0
	LaserPlaneConstant = 3.95

	// Drag clamp on the two free axes
	LaserMinY = 0.5
	LaserMaxY = 2.5
	LaserMinZ = -2.0
	LaserMaxZ = 2.0

	// LaserGravity pulls the control point further down in proportion to its drop below rest
	LaserGravity = 0.3

	// Success when the pointer is past LaserSuccessMinX and below LaserSuccessMaxY
	LaserSuccessMinX = -7.0
	LaserSuccessMaxY = 0.98
)

// Flashlight beam, bent by a fixed gravity for show
const (
	FlashlightSamples    = 50
	FlashlightGravity    = 9.8
	FlashlightBeamLength = 6.0
	FlashlightLensZ      = 0.1
)

// Chalkboard equation glyphs
const (
	// ChalkboardZ is the drag plane on the board face
	ChalkboardZ = -3 + 0.1

	// ChalkboardHeight offsets world y to board-local y
	ChalkboardHeight = 2.0

	ChalkboardMaxX = 1.4
	ChalkboardMaxY = 0.8

	// GlyphRestY/Z is the board-local resting row
	GlyphRestY = -0.2
	GlyphRestZ = 0.1
)

// EquationGlyphs lists glyph ids with their starting x, equation3 and equation4 swapped
var EquationGlyphs = []struct {
	ID string
	X  float64
}{
	{"equation1", 0.0},
	{"equation2", 0.1},
	{"equation4", 0.2},
	{"equation3", 0.3},
	{"equation5", 0.4},
}

// Security keypad
const (
	KeypadCode       = "9.8"
	KeypadCapacity   = 4
	KeypadResetDelay = 2 * time.Second

	// KeypadPlaceholder pads the display up to capacity
	KeypadPlaceholder = '_'
)
