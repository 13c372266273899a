package shape

import (
	"github.com/mbrt/collidex/pkg/bounding"
	"github.com/mbrt/collidex/pkg/core"
)

// Cuboid is a solid axis-aligned box (in its own local frame) described by
// its half-extents, the 2D/3D generalization of the teacher's
// pkg/geometry/box.go Box (which additionally carried a world-space
// rotation baked in — that responsibility now belongs to the caller's
// isometry, per spec.md's CompositeShape design). A Cuboid's math IS an
// AABB centered at the origin, so it wraps bounding.AABB directly rather
// than re-deriving the slab test.
type Cuboid[P core.Point[P]] struct {
	HalfExtents P
}

// NewCuboid creates a Cuboid. Panics if any half-extent is negative.
func NewCuboid[P core.Point[P]](halfExtents P) Cuboid[P] {
	for i := 0; i < halfExtents.Dims(); i++ {
		if halfExtents.Coord(i) < 0 {
			panic("shape: Cuboid half-extents must be non-negative")
		}
	}
	return Cuboid[P]{HalfExtents: halfExtents}
}

func (c Cuboid[P]) box() bounding.AABB[P] {
	return bounding.NewAABB(c.HalfExtents.Scale(-1), c.HalfExtents)
}

// LocalAABB implements Shape[P].
func (c Cuboid[P]) LocalAABB() bounding.AABB[P] { return c.box() }

// ToiWithRay implements Shape[P].
func (c Cuboid[P]) ToiWithRay(ray core.Ray[P], solid bool) (float64, bool) {
	return c.box().TOIWithRay(ray, 0, posInf, solid)
}

// ToiAndNormalWithRay implements Shape[P].
func (c Cuboid[P]) ToiAndNormalWithRay(ray core.Ray[P], solid bool) (core.RayIntersection[P], bool) {
	toi, hit := c.ToiWithRay(ray, solid)
	if !hit {
		return core.RayIntersection[P]{}, false
	}
	hitPoint := ray.At(toi)
	outward := c.faceNormalAt(hitPoint)
	normal, _ := core.SetFaceNormal(ray, outward)
	return core.NewRayIntersection(toi, normal), true
}

// nearestFaceAxis returns the axis and sign of the face nearest p, assuming
// p lies within (or on the boundary of) the box.
func (c Cuboid[P]) nearestFaceAxis(p P) (axis int, sign float64) {
	bestSlack := posInf
	for i := 0; i < p.Dims(); i++ {
		he := c.HalfExtents.Coord(i)
		if slack := he - abs64(p.Coord(i)); slack < bestSlack {
			bestSlack, axis = slack, i
			if p.Coord(i) < 0 {
				sign = -1
			} else {
				sign = 1
			}
		}
	}
	return axis, sign
}

// faceNormalAt returns the outward unit normal of the face nearest p.
func (c Cuboid[P]) faceNormalAt(p P) P {
	axis, sign := c.nearestFaceAxis(p)
	var zero P
	return zero.WithCoord(axis, sign)
}

// ProjectPoint implements Shape[P].
func (c Cuboid[P]) ProjectPoint(p P, solid bool) core.PointProjection[P] {
	clamped := p.MaxElem(c.HalfExtents.Scale(-1)).MinElem(c.HalfExtents)
	inside := p.Sub(clamped).IsZero()

	if inside && solid {
		return core.NewPointProjection(true, p)
	}
	if inside {
		return core.NewPointProjection(true, c.nearestFacePoint(p))
	}
	return core.NewPointProjection(false, clamped)
}

// nearestFacePoint projects an interior point p onto its nearest face.
func (c Cuboid[P]) nearestFacePoint(p P) P {
	axis, sign := c.nearestFaceAxis(p)
	return p.WithCoord(axis, sign*c.HalfExtents.Coord(axis))
}

// faceFeature turns (axis, sign) into the spec.md §4.6 FeatureID naming
// that face: two per axis, ordered negative-then-positive.
func faceFeature(axis int, sign float64) core.FeatureID {
	idx := axis * 2
	if sign > 0 {
		idx++
	}
	return core.FeatureID{Kind: core.FeatureFace, Index: idx}
}

// ProjectPointWithFeature implements Shape[P]. Names the face the
// projection lands on via nearestFaceAxis; a solid-interior point with no
// boundary projection reports core.FeatureUnknown, since it isn't on any
// face.
func (c Cuboid[P]) ProjectPointWithFeature(p P, solid bool) (core.PointProjection[P], core.FeatureID) {
	proj := c.ProjectPoint(p, solid)
	if proj.IsInside && solid {
		return proj, core.FeatureID{}
	}
	axis, sign := c.nearestFaceAxis(proj.Point)
	return proj, faceFeature(axis, sign)
}

// DistanceToPoint implements Shape[P].
func (c Cuboid[P]) DistanceToPoint(p P, solid bool) float64 {
	d, _ := c.box().DistanceToPointSolid(p, solid)
	return d
}

// ContainsPoint implements Shape[P].
func (c Cuboid[P]) ContainsPoint(p P) bool {
	_, inside := c.box().DistanceToPointSolid(p, true)
	return inside
}

func abs64(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

var _ Shape[core.Vec2] = Cuboid[core.Vec2]{}
var _ Shape[core.Vec3] = Cuboid[core.Vec3]{}
