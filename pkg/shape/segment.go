package shape

import (
	"github.com/mbrt/collidex/pkg/bounding"
	"github.com/mbrt/collidex/pkg/core"
)

// Segment2 is a single 2D line segment, the mesh element type for
// BaseMesh[Vec2,...] (a Polyline). The 2D analogue of Triangle3: no
// teacher or ncollide-Rust-source surface to port directly (ncollide's
// 2D "ray_polyline" support is a thin wrapper over its generic composite
// dispatch), so grounded directly on spec.md §3/§4.4's BaseMesh element
// contract: a boundary-only shape with its own local AABB, ray, and point
// queries.
type Segment2 struct {
	A, B core.Vec2
}

// NewSegment2 creates a Segment2.
func NewSegment2(a, b core.Vec2) Segment2 {
	return Segment2{A: a, B: b}
}

// Normal returns the segment's outward unit normal (perpendicular to the
// edge, using Vec2.Perp per its doc comment as the 2D stand-in for Cross).
func (s Segment2) Normal() core.Vec2 {
	return s.B.Sub(s.A).Perp().Normalize()
}

// LocalAABB implements Shape[Vec2].
func (s Segment2) LocalAABB() bounding.AABB[core.Vec2] {
	return bounding.NewAABBFromPoints([]core.Vec2{s.A, s.B})
}

// closestParam returns t in [0,1] such that A + t*(B-A) is nearest p.
func (s Segment2) closestParam(p core.Vec2) float64 {
	edge := s.B.Sub(s.A)
	lenSq := edge.Dot(edge)
	if lenSq == 0 {
		return 0
	}
	t := p.Sub(s.A).Dot(edge) / lenSq
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func (s Segment2) pointAt(t float64) core.Vec2 {
	return s.A.Add(s.B.Sub(s.A).Scale(t))
}

// ToiWithRay implements Shape[Vec2] via a 2D ray/segment intersection
// (solving the 2x2 linear system for the ray parameter and the segment
// parameter together). solid has no effect: a segment has no interior.
func (s Segment2) ToiWithRay(ray core.Ray[core.Vec2], solid bool) (float64, bool) {
	toi, _, ok := s.rayIntersect(ray)
	return toi, ok
}

func (s Segment2) rayIntersect(ray core.Ray[core.Vec2]) (toi, segT float64, ok bool) {
	edge := s.B.Sub(s.A)
	denom := ray.Direction.X*edge.Y - ray.Direction.Y*edge.X
	if denom > -segmentEpsilon && denom < segmentEpsilon {
		return 0, 0, false
	}
	diff := s.A.Sub(ray.Origin)
	t := (diff.X*edge.Y - diff.Y*edge.X) / denom
	u := (diff.X*ray.Direction.Y - diff.Y*ray.Direction.X) / denom
	if t < 0 || u < 0 || u > 1 {
		return 0, 0, false
	}
	return t, u, true
}

const segmentEpsilon = 1e-12

// ToiAndNormalWithRay implements Shape[Vec2]. A segment has no interior,
// so solid has no effect here either, same as ToiWithRay.
func (s Segment2) ToiAndNormalWithRay(ray core.Ray[core.Vec2], solid bool) (core.RayIntersection[core.Vec2], bool) {
	toi, _, ok := s.rayIntersect(ray)
	if !ok {
		return core.RayIntersection[core.Vec2]{}, false
	}
	normal, _ := core.SetFaceNormal(ray, s.Normal())
	return core.NewRayIntersection(toi, normal), true
}

// ProjectPoint implements Shape[Vec2]. A segment is boundary-only, like
// Triangle3: every projection lands on the segment, never "inside".
func (s Segment2) ProjectPoint(p core.Vec2, solid bool) core.PointProjection[core.Vec2] {
	return core.NewPointProjection(false, s.pointAt(s.closestParam(p)))
}

// ProjectPointWithFeature implements Shape[Vec2]. Reports which of the
// segment's two vertices the projection clamped to, or its single edge
// when the projection falls strictly between them.
func (s Segment2) ProjectPointWithFeature(p core.Vec2, solid bool) (core.PointProjection[core.Vec2], core.FeatureID) {
	t := s.closestParam(p)
	proj := core.NewPointProjection(false, s.pointAt(t))
	switch t {
	case 0:
		return proj, core.FeatureID{Kind: core.FeatureVertex, Index: 0}
	case 1:
		return proj, core.FeatureID{Kind: core.FeatureVertex, Index: 1}
	default:
		return proj, core.FeatureID{Kind: core.FeatureEdge, Index: 0}
	}
}

// DistanceToPoint implements Shape[Vec2].
func (s Segment2) DistanceToPoint(p core.Vec2, solid bool) float64 {
	return p.Sub(s.pointAt(s.closestParam(p))).Length()
}

// ContainsPoint implements Shape[Vec2].
func (s Segment2) ContainsPoint(p core.Vec2) bool {
	return s.DistanceToPoint(p, true) < segmentEpsilon
}

var _ Shape[core.Vec2] = Segment2{}
