package vmath

// Ray is a half-line from Origin along Dir, Dir need not be unit length
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// Plane is the set of points p with Normal·p + Constant = 0
// Normal is used as given and not normalised, matching pointer-drag planes authored in scene units
type Plane struct {
	Normal   Vec3
	Constant float64
}

// Distance returns the signed plane function at p (scaled by |Normal|)
func (pl Plane) Distance(p Vec3) float64 {
	return pl.Normal.Dot(p) + pl.Constant
}

// IntersectPlane returns where r meets pl
// A ray parallel to the plane only hits when its origin lies on the plane
// Intersections behind the origin are misses
func IntersectPlane(r Ray, pl Plane) (Vec3, bool) {
	denom := pl.Normal.Dot(r.Dir)
	if denom == 0 {
		if pl.Distance(r.Origin) == 0 {
			return r.Origin, true
		}
		return Vec3{}, false
	}

	t := -pl.Distance(r.Origin) / denom
	if t < 0 {
		return Vec3{}, false
	}
	return r.Origin.Add(r.Dir.Mul(t)), true
}

// RayThrough builds a ray that starts offset units from target along the plane normal
// and points back at target, used by keyboard-driven pointers and tests
func RayThrough(target Vec3, pl Plane, offset float64) Ray {
	n := V3Normalize(pl.Normal)
	return Ray{
		Origin: target.Add(n.Mul(offset)),
		Dir:    n.Mul(-1),
	}
}
