package system

import (
	"io"
	"log"

	"github.com/lixenwraith/escape-room/parameter"
	"github.com/lixenwraith/escape-room/vmath"
)

// Beam is the wall-mounted laser bent by dragging its control point
// The curve is a quadratic Bézier pinned to the wall plane x = wallX
type Beam struct {
	challengeID string
	completer   Completer
	logger      *log.Logger

	wallX   float64
	start   vmath.Vec3
	end     vmath.Vec3
	rest    vmath.Vec3
	control vmath.Vec3
	plane   vmath.Plane
	samples int

	powered  bool
	dragging bool
	pointer  vmath.Vec3
	solved   bool
}

// BeamOption configures a Beam
type BeamOption func(*Beam)

// WithBeamLogger routes solve logs, nil discards
func WithBeamLogger(l *log.Logger) BeamOption {
	return func(b *Beam) {
		if l == nil {
			l = log.New(io.Discard, "", 0)
		}
		b.logger = l
	}
}

// WithBeamSamples overrides the default render sample count
func WithBeamSamples(n int) BeamOption {
	return func(b *Beam) {
		if n >= 2 {
			b.samples = n
		}
	}
}

// WithPower sets the initial light state
func WithPower(on bool) BeamOption {
	return func(b *Beam) { b.powered = on }
}

// NewBeam creates an unpowered straight beam
func NewBeam(challengeID string, completer Completer, opts ...BeamOption) *Beam {
	wallX := parameter.LaserWallX
	b := &Beam{
		challengeID: challengeID,
		completer:   completerOrNop(completer),
		logger:      log.Default(),
		wallX:       wallX,
		start:       vmath.Vec3{wallX, parameter.LaserStartY, parameter.LaserStartZ},
		end:         vmath.Vec3{wallX, parameter.LaserEndY, parameter.LaserEndZ},
		rest:        vmath.Vec3{wallX, parameter.LaserRestY, parameter.LaserRestZ},
		plane: vmath.Plane{
			Normal:   vmath.Vec3{parameter.LaserPlaneNX, parameter.LaserPlaneNY, parameter.LaserPlaneNZ},
			Constant: parameter.LaserPlaneConstant,
		},
		samples: parameter.LaserSamples,
	}
	b.control = b.rest
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SetPowered switches the beam, powering off ends any drag in progress
func (b *Beam) SetPowered(on bool) {
	b.powered = on
	if !on {
		b.dragging = false
	}
}

// Powered reports the light state
func (b *Beam) Powered() bool {
	return b.powered
}

// Plane returns the drag plane pointer rays are intersected with
func (b *Beam) Plane() vmath.Plane {
	return b.plane
}

// BeginDrag starts bending, ignored while unpowered
func (b *Beam) BeginDrag(ray vmath.Ray) bool {
	if !b.powered {
		return false
	}
	b.dragging = true
	b.DragMove(ray)
	return true
}

// DragMove intersects ray with the drag plane, clamps the hit, checks success,
// and moves the control point with the gravity sag applied
// Returns false when not dragging or the ray misses
func (b *Beam) DragMove(ray vmath.Ray) bool {
	if !b.dragging || !b.powered {
		return false
	}
	hit, ok := vmath.IntersectPlane(ray, b.plane)
	if !ok {
		return false
	}

	y := vmath.Clamp(hit.Y(), parameter.LaserMinY, parameter.LaserMaxY)
	z := vmath.Clamp(hit.Z(), parameter.LaserMinZ, parameter.LaserMaxZ)
	b.pointer = vmath.Vec3{hit.X(), y, z}

	if b.pointer.X() > parameter.LaserSuccessMinX && y < parameter.LaserSuccessMaxY {
		b.succeed()
	}

	sag := max(0, (parameter.LaserStartY-y)*parameter.LaserGravity)
	b.control = vmath.Vec3{b.wallX, y - sag, z}
	return true
}

// EndDrag releases the beam, the bend is kept
func (b *Beam) EndDrag() {
	b.dragging = false
}

// Dragging reports an active drag
func (b *Beam) Dragging() bool {
	return b.dragging
}

// Control returns the Bézier control point
func (b *Beam) Control() vmath.Vec3 {
	return b.control
}

// Pointer returns the last clamped drag intersection
func (b *Beam) Pointer() vmath.Vec3 {
	return b.pointer
}

// Solved reports whether the bend has completed the challenge this episode
func (b *Beam) Solved() bool {
	return b.solved
}

// Points samples n curve points, n <= 0 selects the configured default
func (b *Beam) Points(n int) []vmath.Vec3 {
	if n <= 0 {
		n = b.samples
	}
	points := vmath.SampleQuadBezier(b.start, b.control, b.end, n)
	for i := range points {
		points[i][0] = b.wallX
	}
	return points
}

// Reset straightens the beam and re-arms success, power is left alone
func (b *Beam) Reset() {
	b.control = b.rest
	b.pointer = vmath.Vec3{}
	b.dragging = false
	b.solved = false
}

func (b *Beam) succeed() {
	if b.solved {
		return
	}
	b.solved = true
	b.logger.Printf("beam bent past threshold, completing %s", b.challengeID)
	b.completer.CompleteChallenge(b.challengeID)
}
