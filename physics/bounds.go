package physics

import (
	"fmt"

	"github.com/lixenwraith/escape-room/parameter"
	"github.com/lixenwraith/escape-room/vmath"
)

// Bounds is the axis-aligned room box agents are kept inside
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
	MinZ, MaxZ float64
}

// DefaultBounds returns the room described by the parameter package
func DefaultBounds() Bounds {
	return RoomBounds(parameter.RoomWidth, parameter.RoomDepth, parameter.RoomHeight)
}

// RoomBounds builds bounds for a room centred on the origin with its floor at y=0
func RoomBounds(width, depth, height float64) Bounds {
	halfWidth := width / 2
	halfDepth := depth / 2
	return Bounds{
		MinX: -halfWidth,
		MaxX: halfWidth,
		MinY: parameter.RoomFloorY,
		MaxY: parameter.RoomFloorY + height,
		MinZ: -halfDepth,
		MaxZ: halfDepth,
	}
}

// Validate reports a degenerate box
func (b Bounds) Validate() error {
	if !(b.MinX < b.MaxX) {
		return fmt.Errorf("bounds: minX %v must be less than maxX %v", b.MinX, b.MaxX)
	}
	if !(b.MinZ < b.MaxZ) {
		return fmt.Errorf("bounds: minZ %v must be less than maxZ %v", b.MinZ, b.MaxZ)
	}
	if b.MinY > b.MaxY {
		return fmt.Errorf("bounds: minY %v must not exceed maxY %v", b.MinY, b.MaxY)
	}
	return nil
}

// Constrain returns the nearest point to p inside the box shrunk by buffer on x/z
// Pure and idempotent, y is clamped without buffer
func (b Bounds) Constrain(p vmath.Vec3, buffer float64) vmath.Vec3 {
	return vmath.Vec3{
		vmath.Clamp(p.X(), b.MinX+buffer, b.MaxX-buffer),
		vmath.Clamp(p.Y(), b.MinY, b.MaxY),
		vmath.Clamp(p.Z(), b.MinZ+buffer, b.MaxZ-buffer),
	}
}

// Contains reports whether p already lies inside the shrunk box
func (b Bounds) Contains(p vmath.Vec3, buffer float64) bool {
	return p.X() >= b.MinX+buffer && p.X() <= b.MaxX-buffer &&
		p.Z() >= b.MinZ+buffer && p.Z() <= b.MaxZ-buffer &&
		p.Y() >= b.MinY && p.Y() <= b.MaxY
}
