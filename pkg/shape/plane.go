package shape

import (
	"github.com/mbrt/collidex/pkg/bounding"
	"github.com/mbrt/collidex/pkg/core"
)

// Plane is an infinite half-space through the local-frame origin, defined
// by its outward unit normal. Has no teacher analogue (the raytracer's
// pkg/geometry/plane.go stores an arbitrary point+normal in world space),
// so this is grounded directly on ncollide's point_plane.rs contract:
// inside iff the dot product of the normal with the local-space point is
// <= 0 (spec.md §4.6).
type Plane[P core.Point[P]] struct {
	Normal P
}

// NewPlane creates a Plane from a normal, which need not be pre-normalized.
func NewPlane[P core.Point[P]](normal P) Plane[P] {
	n := normal.Normalize()
	if n.IsZero() {
		panic("shape: Plane normal must be non-zero")
	}
	return Plane[P]{Normal: n}
}

// LocalAABB implements Shape[P]. A plane is unbounded; by convention we
// return a very large finite box so it can still participate in a BVT
// that mixes planes with bounded shapes (ncollide does the same for
// infinite shapes embedded in a Compound).
func (p Plane[P]) LocalAABB() bounding.AABB[P] {
	var zero P
	huge := zero.Splat(1e12)
	return bounding.NewAABB(huge.Scale(-1), huge)
}

// ToiWithRay implements Shape[P]. An origin already inside the half-space
// (side <= 0) reports TOI 0 when solid, or the forward exit crossing (if
// any) when non-solid. An origin outside reports the forward entry
// crossing, identically in both modes — the solid flag only changes the
// answer for an origin that starts inside, per the AABB-style two-mode
// contract spec.md §4.1/§4.6 uses throughout.
func (pl Plane[P]) ToiWithRay(ray core.Ray[P], solid bool) (float64, bool) {
	denom := pl.Normal.Dot(ray.Direction)
	side := pl.Normal.Dot(ray.Origin)
	parallel := denom > -planeParallelEps && denom < planeParallelEps

	if side <= 0 {
		if solid {
			return 0, true
		}
		if parallel || denom <= 0 {
			return 0, false
		}
		return -side / denom, true
	}

	if parallel || denom >= 0 {
		return 0, false
	}
	t := -side / denom
	if t < 0 {
		return 0, false
	}
	return t, true
}

const planeParallelEps = 1e-12

// ToiAndNormalWithRay implements Shape[P].
func (pl Plane[P]) ToiAndNormalWithRay(ray core.Ray[P], solid bool) (core.RayIntersection[P], bool) {
	toi, hit := pl.ToiWithRay(ray, solid)
	if !hit {
		return core.RayIntersection[P]{}, false
	}
	normal, _ := core.SetFaceNormal(ray, pl.Normal)
	return core.NewRayIntersection(toi, normal), true
}

// ProjectPoint implements Shape[P].
func (pl Plane[P]) ProjectPoint(p P, solid bool) core.PointProjection[P] {
	d := pl.Normal.Dot(p)
	inside := d <= 0

	if inside && solid {
		return core.NewPointProjection(true, p)
	}
	boundary := p.Sub(pl.Normal.Scale(d))
	return core.NewPointProjection(inside, boundary)
}

// ProjectPointWithFeature implements Shape[P]. A plane is a single
// infinite face, so every projection carries the same core.FeatureFace{0}.
func (pl Plane[P]) ProjectPointWithFeature(p P, solid bool) (core.PointProjection[P], core.FeatureID) {
	return pl.ProjectPoint(p, solid), core.FeatureID{Kind: core.FeatureFace, Index: 0}
}

// DistanceToPoint implements Shape[P].
func (pl Plane[P]) DistanceToPoint(p P, solid bool) float64 {
	d := pl.Normal.Dot(p)
	if d > 0 {
		return d
	}
	if solid {
		return 0
	}
	return d
}

// ContainsPoint implements Shape[P].
func (pl Plane[P]) ContainsPoint(p P) bool {
	return pl.Normal.Dot(p) <= 0
}

var _ Shape[core.Vec2] = Plane[core.Vec2]{}
var _ Shape[core.Vec3] = Plane[core.Vec3]{}
