package shape

import (
	"math"

	"github.com/mbrt/collidex/pkg/bounding"
	"github.com/mbrt/collidex/pkg/core"
)

// Capsule is a solid "rounded cylinder": the set of points within Radius
// of a segment from -HalfHeight·axis to +HalfHeight·axis along the local
// Y axis... generalized here to an arbitrary segment (P0, P1) instead of
// an implicit axis so the same type serves 2D (a stadium shape) and 3D
// without a dimension-specific "axis" field. Grounded on the teacher's
// pkg/geometry/cylinder.go hitBody projection-onto-axis quadratic, which
// uses only Dot/Sub/Scale — already dimension-agnostic — generalized
// by also bounding the two spherical caps.
type Capsule[P core.Point[P]] struct {
	P0, P1 P
	Radius float64
}

// NewCapsule creates a Capsule. Panics on a negative radius.
func NewCapsule[P core.Point[P]](p0, p1 P, radius float64) Capsule[P] {
	if radius < 0 {
		panic("shape: Capsule radius must be non-negative")
	}
	return Capsule[P]{P0: p0, P1: p1, Radius: radius}
}

func (c Capsule[P]) axis() (dir P, length float64) {
	d := c.P1.Sub(c.P0)
	return d, d.Length()
}

// closestParamOnSegment returns t in [0,1] such that P0 + t*(P1-P0) is the
// point on the segment nearest p.
func (c Capsule[P]) closestParamOnSegment(p P) float64 {
	dir, length := c.axis()
	if length == 0 {
		return 0
	}
	t := p.Sub(c.P0).Dot(dir) / (length * length)
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func (c Capsule[P]) pointOnSegment(t float64) P {
	dir, _ := c.axis()
	return c.P0.Add(dir.Scale(t))
}

// LocalAABB implements Shape[P].
func (c Capsule[P]) LocalAABB() bounding.AABB[P] {
	box := bounding.NewAABBFromPoints([]P{c.P0, c.P1})
	return box.Loosened(c.Radius)
}

// ToiWithRay implements Shape[P]. Delegates to the nearest-point-on-segment
// quadratic: the capsule's surface is the set of points at distance
// Radius from the segment, found by minimizing the squared distance from
// the ray to the segment as a function of t along the ray, same shape as
// the teacher's cylinder body quadratic but parameterized by a segment
// instead of an infinite axis.
func (c Capsule[P]) ToiWithRay(ray core.Ray[P], solid bool) (float64, bool) {
	toi, _, ok := c.intersect(ray)
	if !ok {
		return 0, false
	}
	if toi >= 0 {
		return toi, true
	}
	// Origin inside the capsule.
	if solid {
		return 0, true
	}
	return 0, false
}

// intersect returns the entry TOI (possibly negative if the origin is
// inside), the surface point's closest-segment parameter, and whether any
// real intersection exists (even behind the ray origin).
func (c Capsule[P]) intersect(ray core.Ray[P]) (toi float64, segT float64, ok bool) {
	dir, length := c.axis()
	if length == 0 {
		// Degenerates to a ball at P0.
		ball := Ball[P]{Radius: c.Radius}
		shifted := core.NewRay(ray.Origin.Sub(c.P0), ray.Direction)
		near, _, hasRoots := ball.roots(shifted)
		if !hasRoots {
			return 0, 0, false
		}
		return near, 0, true
	}
	axisDir := dir.Scale(1 / length)

	// Project ray into the frame where the capsule axis is "vertical":
	// solve for the point on the ray closest to the (infinite) axis line,
	// clamp its segment parameter, then do a per-t binary refinement is
	// unnecessary — instead use a direct quadratic against the infinite
	// line and clamp afterward, which is exact for a capsule's cylindrical
	// body and approximate only very close to the cap boundary transition
	// (resolved by falling back to the cap's own ball check there).
	oc := ray.Origin.Sub(c.P0)
	dDotA := ray.Direction.Dot(axisDir)
	ocDotA := oc.Dot(axisDir)

	dPerp := ray.Direction.Sub(axisDir.Scale(dDotA))
	ocPerp := oc.Sub(axisDir.Scale(ocDotA))

	a := dPerp.Dot(dPerp)
	if a < 1e-18 {
		// Ray parallel to the axis: treat as a ball check at the nearer cap.
		return c.rayParallelToAxis(ray, axisDir, length)
	}
	b := 2 * dPerp.Dot(ocPerp)
	cc := ocPerp.Dot(ocPerp) - c.Radius*c.Radius
	disc := b*b - 4*a*cc
	if disc < 0 {
		return 0, 0, false
	}
	sq := math.Sqrt(disc)
	t0 := (-b - sq) / (2 * a)
	t1 := (-b + sq) / (2 * a)

	for _, t := range []float64{t0, t1} {
		s := ocDotA + t*dDotA
		if s >= 0 && s <= length {
			return t, s / length, true
		}
	}
	// Neither root lands within the cylindrical body: check the two
	// spherical caps directly.
	return c.rayAgainstCaps(ray)
}

func (c Capsule[P]) rayParallelToAxis(ray core.Ray[P], axisDir P, length float64) (float64, float64, bool) {
	oc := ray.Origin.Sub(c.P0)
	perp := oc.Sub(axisDir.Scale(oc.Dot(axisDir)))
	if perp.Length() > c.Radius {
		return 0, 0, false
	}
	return c.rayAgainstCaps(ray)
}

func (c Capsule[P]) rayAgainstCaps(ray core.Ray[P]) (float64, float64, bool) {
	best := math.Inf(1)
	found := false
	for _, center := range []P{c.P0, c.P1} {
		ball := Ball[P]{Radius: c.Radius}
		shifted := core.NewRay(ray.Origin.Sub(center), ray.Direction)
		near, _, ok := ball.roots(shifted)
		if !ok {
			continue
		}
		if !found || near < best {
			best, found = near, true
		}
	}
	if !found {
		return 0, 0, false
	}
	return best, 0, true
}

// ToiAndNormalWithRay implements Shape[P].
func (c Capsule[P]) ToiAndNormalWithRay(ray core.Ray[P], solid bool) (core.RayIntersection[P], bool) {
	toi, hit := c.ToiWithRay(ray, solid)
	if !hit {
		return core.RayIntersection[P]{}, false
	}
	hitPoint := ray.At(toi)
	t := c.closestParamOnSegment(hitPoint)
	outward := hitPoint.Sub(c.pointOnSegment(t)).Normalize()
	normal, _ := core.SetFaceNormal(ray, outward)
	return core.NewRayIntersection(toi, normal), true
}

// ProjectPoint implements Shape[P].
func (c Capsule[P]) ProjectPoint(p P, solid bool) core.PointProjection[P] {
	t := c.closestParamOnSegment(p)
	axisPoint := c.pointOnSegment(t)
	toP := p.Sub(axisPoint)
	dist := toP.Length()
	inside := dist <= c.Radius

	if inside && solid {
		return core.NewPointProjection(true, p)
	}
	if dist == 0 {
		return core.NewPointProjection(inside, axisPoint)
	}
	boundary := axisPoint.Add(toP.Scale(c.Radius / dist))
	return core.NewPointProjection(inside, boundary)
}

// ProjectPointWithFeature implements Shape[P]. The rounded surface has no
// discrete faces/edges/vertices to discriminate, so the feature is always
// core.FeatureUnknown, same as Ball.
func (c Capsule[P]) ProjectPointWithFeature(p P, solid bool) (core.PointProjection[P], core.FeatureID) {
	return c.ProjectPoint(p, solid), core.FeatureID{}
}

// DistanceToPoint implements Shape[P].
func (c Capsule[P]) DistanceToPoint(p P, solid bool) float64 {
	t := c.closestParamOnSegment(p)
	dist := p.Sub(c.pointOnSegment(t)).Length()
	if dist > c.Radius {
		return dist - c.Radius
	}
	if solid {
		return 0
	}
	return dist - c.Radius
}

// ContainsPoint implements Shape[P].
func (c Capsule[P]) ContainsPoint(p P) bool {
	t := c.closestParamOnSegment(p)
	return p.Sub(c.pointOnSegment(t)).Length() <= c.Radius
}

var _ Shape[core.Vec2] = Capsule[core.Vec2]{}
var _ Shape[core.Vec3] = Capsule[core.Vec3]{}
