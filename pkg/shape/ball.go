package shape

import (
	"math"

	"github.com/mbrt/collidex/pkg/bounding"
	"github.com/mbrt/collidex/pkg/core"
)

// Ball is a solid sphere (3D) or disk (2D) centered at the local-frame
// origin. Grounded on the teacher's pkg/geometry/sphere.go quadratic
// ray-intersection formula, reshaped to query through bounding.
// BoundingSphere since a Ball IS, mathematically, a BoundingSphere at the
// origin — the same half-b quadratic formula serves both.
type Ball[P core.Point[P]] struct {
	Radius float64
}

// NewBall creates a Ball of the given radius. Panics on a negative radius.
func NewBall[P core.Point[P]](radius float64) Ball[P] {
	if radius < 0 {
		panic("shape: Ball radius must be non-negative")
	}
	return Ball[P]{Radius: radius}
}

func (b Ball[P]) sphere() bounding.BoundingSphere[P] {
	var zero P
	return bounding.NewBoundingSphere(zero, b.Radius)
}

// LocalAABB implements Shape[P].
func (b Ball[P]) LocalAABB() bounding.AABB[P] {
	var zero P
	r := zero.Splat(b.Radius)
	return bounding.NewAABB(r.Scale(-1), r)
}

// roots returns the two quadratic roots (near, far) of the ray/sphere
// intersection, and whether real roots exist.
func (b Ball[P]) roots(ray core.Ray[P]) (near, far float64, ok bool) {
	oc := ray.Origin
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - b.Radius*b.Radius
	disc := halfB*halfB - a*c
	if disc < 0 {
		return 0, 0, false
	}
	sq := math.Sqrt(disc)
	return (-halfB - sq) / a, (-halfB + sq) / a, true
}

// ToiWithRay implements Shape[P]. Mirrors the AABB two-mode contract: a
// solid query treats an origin already inside as TOI 0; a non-solid query
// reports the far root, the ray's first boundary crossing.
func (b Ball[P]) ToiWithRay(ray core.Ray[P], solid bool) (float64, bool) {
	near, far, ok := b.roots(ray)
	if !ok {
		return 0, false
	}
	if near >= 0 {
		return near, true
	}
	// Origin is inside the sphere (near < 0 <= far, assuming far >= 0).
	if far < 0 {
		return 0, false
	}
	if solid {
		return 0, true
	}
	return far, true
}

// ToiAndNormalWithRay implements Shape[P].
func (b Ball[P]) ToiAndNormalWithRay(ray core.Ray[P], solid bool) (core.RayIntersection[P], bool) {
	toi, hit := b.ToiWithRay(ray, solid)
	if !hit {
		return core.RayIntersection[P]{}, false
	}
	hitPoint := ray.At(toi)
	outward := hitPoint.Normalize()
	normal, _ := core.SetFaceNormal(ray, outward)
	return core.NewRayIntersection(toi, normal), true
}

// ProjectPoint implements Shape[P].
func (b Ball[P]) ProjectPoint(p P, solid bool) core.PointProjection[P] {
	length := p.Length()
	inside := length <= b.Radius

	if inside && solid {
		return core.NewPointProjection(true, p)
	}
	if length == 0 {
		// Degenerate: center of the ball, every boundary direction is
		// equally valid; report the origin itself (radius 0 case) or an
		// arbitrary boundary point is not well-defined without a
		// reference direction, so fall back to the zero point.
		var zero P
		return core.NewPointProjection(inside, zero)
	}
	boundary := p.Scale(b.Radius / length)
	return core.NewPointProjection(inside, boundary)
}

// ProjectPointWithFeature implements Shape[P]. A sphere's boundary is a
// single curved surface with no discrete faces/edges/vertices to name, so
// the feature is always core.FeatureUnknown.
func (b Ball[P]) ProjectPointWithFeature(p P, solid bool) (core.PointProjection[P], core.FeatureID) {
	return b.ProjectPoint(p, solid), core.FeatureID{}
}

// DistanceToPoint implements Shape[P].
func (b Ball[P]) DistanceToPoint(p P, solid bool) float64 {
	length := p.Length()
	if length > b.Radius {
		return length - b.Radius
	}
	if solid {
		return 0
	}
	return length - b.Radius
}

// ContainsPoint implements Shape[P].
func (b Ball[P]) ContainsPoint(p P) bool {
	return p.Length() <= b.Radius
}

var _ Shape[core.Vec2] = Ball[core.Vec2]{}
var _ Shape[core.Vec3] = Ball[core.Vec3]{}
