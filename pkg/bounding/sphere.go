package bounding

import (
	"math"

	"github.com/mbrt/collidex/pkg/core"
)

// BoundingSphere is a center/radius bounding volume. Absent from the
// teacher (which only ever built AABB trees), built fresh against
// ncollide's bounding_sphere.rs contract: same BoundingVolume operations
// as AABB, so either can back a BVT.
type BoundingSphere[P core.Point[P]] struct {
	Center P
	Radius float64
}

// NewBoundingSphere builds a BoundingSphere. Panics if radius is negative.
func NewBoundingSphere[P core.Point[P]](center P, radius float64) BoundingSphere[P] {
	if radius < 0 {
		panic("bounding: BoundingSphere radius must be non-negative")
	}
	return BoundingSphere[P]{Center: center, Radius: radius}
}

// Intersects reports whether the two spheres overlap.
func (s BoundingSphere[P]) Intersects(other BoundingSphere[P]) bool {
	r := s.Radius + other.Radius
	return s.Center.Sub(other.Center).LengthSquared() <= r*r
}

// Contains reports whether other lies entirely within s.
func (s BoundingSphere[P]) Contains(other BoundingSphere[P]) bool {
	if other.Radius > s.Radius {
		return false
	}
	d := s.Center.Sub(other.Center).Length()
	return d+other.Radius <= s.Radius
}

// Merged returns the smallest sphere enclosing both s and other.
func (s BoundingSphere[P]) Merged(other BoundingSphere[P]) BoundingSphere[P] {
	diff := other.Center.Sub(s.Center)
	dist := diff.Length()

	if dist+other.Radius <= s.Radius {
		return s
	}
	if dist+s.Radius <= other.Radius {
		return other
	}

	newRadius := (dist + s.Radius + other.Radius) / 2
	if dist == 0 {
		return BoundingSphere[P]{Center: s.Center, Radius: newRadius}
	}
	t := (newRadius - s.Radius) / dist
	newCenter := s.Center.Add(diff.Scale(t))
	return BoundingSphere[P]{Center: newCenter, Radius: newRadius}
}

// Loosened returns s with its radius expanded by a non-negative margin.
func (s BoundingSphere[P]) Loosened(eps float64) BoundingSphere[P] {
	if eps < 0 {
		panic("bounding: Loosened requires a non-negative margin")
	}
	return BoundingSphere[P]{Center: s.Center, Radius: s.Radius + eps}
}

// Tightened returns s with its radius shrunk by a non-negative margin.
// Panics if eps is negative or exceeds the radius.
func (s BoundingSphere[P]) Tightened(eps float64) BoundingSphere[P] {
	if eps < 0 {
		panic("bounding: Tightened requires a non-negative margin")
	}
	if eps > s.Radius {
		panic("bounding: Tightened margin exceeds the sphere's radius")
	}
	return BoundingSphere[P]{Center: s.Center, Radius: s.Radius - eps}
}

// RayTOI returns the entry time-of-impact of ray with this sphere and true
// if the ray hits it within [tMin, tMax]. Equivalent to TOIWithRay(ray,
// tMin, tMax, true) — kept as a convenience for the common solid case,
// mirroring AABB.RayTOI.
func (s BoundingSphere[P]) RayTOI(ray core.Ray[P], tMin, tMax float64) (float64, bool) {
	return s.TOIWithRay(ray, tMin, tMax, true)
}

// TOIWithRay implements spec.md §4.1's two-mode ray-TOI contract for a
// sphere, the same quadratic-formula test as the teacher's Sphere.Hit
// half-b formulation, generalized with AABB.TOIWithRay's solid/non-solid
// split: when solid is true, a ray origin already inside the sphere
// reports TOI 0; when false, it instead reports the far root, the ray's
// first boundary crossing.
func (s BoundingSphere[P]) TOIWithRay(ray core.Ray[P], tMin, tMax float64, solid bool) (float64, bool) {
	oc := ray.Origin.Sub(s.Center)
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius
	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return 0, false
	}
	sqrtD := math.Sqrt(discriminant)
	near := (-halfB - sqrtD) / a
	far := (-halfB + sqrtD) / a

	if near >= tMin && near <= tMax {
		return near, true
	}
	// near < tMin: the ray origin starts inside the sphere (relative to
	// tMin), so the only candidate root left is far.
	if far < tMin || far > tMax {
		return 0, false
	}
	if solid {
		return 0, true
	}
	return far, true
}

// DistanceToPoint returns the Euclidean distance from p to the sphere
// assuming solid=true semantics. Equivalent to DistanceToPointSolid(p, true).
func (s BoundingSphere[P]) DistanceToPoint(p P) float64 {
	d, _ := s.DistanceToPointSolid(p, true)
	return d
}

// DistanceToPointSolid implements spec.md §4.1's point-distance contract
// for a sphere, matching AABB.DistanceToPointSolid's two-mode meaning: a
// positive Euclidean distance to the surface when p is outside; when p is
// inside, 0 and isInside=true if solid, or a negative-signed distance to
// the surface and isInside=true if not.
func (s BoundingSphere[P]) DistanceToPointSolid(p P, solid bool) (distance float64, isInside bool) {
	d := p.Sub(s.Center).Length()
	if d > s.Radius {
		return d - s.Radius, false
	}
	if solid {
		return 0, true
	}
	return d - s.Radius, true
}

var (
	_ BoundingVolume[BoundingSphere[core.Vec2]] = BoundingSphere[core.Vec2]{}
	_ BoundingVolume[BoundingSphere[core.Vec3]] = BoundingSphere[core.Vec3]{}
)
