package shape

import (
	"github.com/mbrt/collidex/pkg/bounding"
	"github.com/mbrt/collidex/pkg/core"
)

// Cone2 is the 2D cross-section of a pointed cone: an isoceles triangle
// with its base centered on the origin (from (-BaseRadius,0) to
// (BaseRadius,0)) and its apex at (0,Height). ncollide's own Cone shape
// is dimension-generic (it degenerates to this same wedge in 2D), but
// Cone3 here carries a frustum/capped-end structure ported from the
// teacher's pkg/geometry/cone.go that has no 2D equivalent (a frustum
// cross-section is a trapezoid, not the pointed wedge spec.md §8
// scenario 1 asks for), so the 2D case gets its own small, solid,
// closed-form shape instead of forcing Cone3's machinery down to 0
// dimensions of tapering.
type Cone2 struct {
	BaseRadius float64
	Height     float64
}

// NewCone2 creates a Cone2. Panics if baseRadius or height is not positive.
func NewCone2(baseRadius, height float64) Cone2 {
	if baseRadius <= 0 {
		panic("shape: Cone2 base radius must be positive")
	}
	if height <= 0 {
		panic("shape: Cone2 height must be positive")
	}
	return Cone2{BaseRadius: baseRadius, Height: height}
}

func (c Cone2) vertices() (apex, baseLeft, baseRight core.Vec2) {
	return core.NewVec2(0, c.Height), core.NewVec2(-c.BaseRadius, 0), core.NewVec2(c.BaseRadius, 0)
}

func (c Cone2) edges() [3][2]core.Vec2 {
	apex, left, right := c.vertices()
	return [3][2]core.Vec2{{apex, left}, {apex, right}, {left, right}}
}

// LocalAABB implements Shape[Vec2].
func (c Cone2) LocalAABB() bounding.AABB[core.Vec2] {
	apex, left, right := c.vertices()
	return bounding.NewAABBFromPoints([]core.Vec2{apex, left, right})
}

// ContainsPoint implements Shape[Vec2] via the standard same-side-of-all-
// edges test for a convex polygon, walking the triangle's edges in a
// fixed winding order.
func (c Cone2) ContainsPoint(p core.Vec2) bool {
	apex, left, right := c.vertices()
	d1 := cross2(right.Sub(apex), p.Sub(apex))
	d2 := cross2(left.Sub(right), p.Sub(right))
	d3 := cross2(apex.Sub(left), p.Sub(left))

	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func cross2(a, b core.Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

func segmentClosestParam(a, b, p core.Vec2) float64 {
	edge := b.Sub(a)
	lenSq := edge.Dot(edge)
	if lenSq == 0 {
		return 0
	}
	t := p.Sub(a).Dot(edge) / lenSq
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func (c Cone2) closestBoundaryPoint(p core.Vec2) core.Vec2 {
	best := core.Vec2{}
	bestDist := posInf
	for _, e := range c.edges() {
		t := segmentClosestParam(e[0], e[1], p)
		candidate := e[0].Add(e[1].Sub(e[0]).Scale(t))
		if d := p.Sub(candidate).Length(); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}

// ProjectPoint implements Shape[Vec2].
func (c Cone2) ProjectPoint(p core.Vec2, solid bool) core.PointProjection[core.Vec2] {
	inside := c.ContainsPoint(p)
	if inside && solid {
		return core.NewPointProjection(true, p)
	}
	return core.NewPointProjection(inside, c.closestBoundaryPoint(p))
}

// ProjectPointWithFeature implements Shape[Vec2]. closestBoundaryPoint
// picks the nearest of the cone's edges without reporting which one, so
// the feature is always core.FeatureUnknown.
func (c Cone2) ProjectPointWithFeature(p core.Vec2, solid bool) (core.PointProjection[core.Vec2], core.FeatureID) {
	return c.ProjectPoint(p, solid), core.FeatureID{}
}

// DistanceToPoint implements Shape[Vec2].
func (c Cone2) DistanceToPoint(p core.Vec2, solid bool) float64 {
	d := p.Sub(c.closestBoundaryPoint(p)).Length()
	if !c.ContainsPoint(p) {
		return d
	}
	if solid {
		return 0
	}
	return -d
}

const cone2Epsilon = 1e-12

// ToiWithRay implements Shape[Vec2]: ray/segment intersection against all
// three edges, reporting the nearest forward hit, with the same
// solid/non-solid origin-inside contract as Cuboid/Plane.
func (c Cone2) ToiWithRay(ray core.Ray[core.Vec2], solid bool) (float64, bool) {
	if c.ContainsPoint(ray.Origin) {
		if solid {
			return 0, true
		}
		if toi, ok := c.exitTOI(ray); ok {
			return toi, true
		}
		return 0, false
	}
	return c.entryTOI(ray)
}

func (c Cone2) entryTOI(ray core.Ray[core.Vec2]) (float64, bool) {
	best := posInf
	found := false
	for _, e := range c.edges() {
		if t, ok := rayVsSegment(ray, e[0], e[1]); ok && t >= 0 && t < best {
			best, found = t, true
		}
	}
	return best, found
}

func (c Cone2) exitTOI(ray core.Ray[core.Vec2]) (float64, bool) {
	return c.entryTOI(ray)
}

func rayVsSegment(ray core.Ray[core.Vec2], a, b core.Vec2) (float64, bool) {
	edge := b.Sub(a)
	denom := ray.Direction.X*edge.Y - ray.Direction.Y*edge.X
	if denom > -cone2Epsilon && denom < cone2Epsilon {
		return 0, false
	}
	diff := a.Sub(ray.Origin)
	t := (diff.X*edge.Y - diff.Y*edge.X) / denom
	u := (diff.X*ray.Direction.Y - diff.Y*ray.Direction.X) / denom
	if u < 0 || u > 1 {
		return 0, false
	}
	return t, true
}

// ToiAndNormalWithRay implements Shape[Vec2].
func (c Cone2) ToiAndNormalWithRay(ray core.Ray[core.Vec2], solid bool) (core.RayIntersection[core.Vec2], bool) {
	toi, ok := c.ToiWithRay(ray, solid)
	if !ok {
		return core.RayIntersection[core.Vec2]{}, false
	}
	hit := ray.At(toi)

	var outward core.Vec2
	bestDist := posInf
	for _, e := range c.edges() {
		t := segmentClosestParam(e[0], e[1], hit)
		candidate := e[0].Add(e[1].Sub(e[0]).Scale(t))
		if d := hit.Sub(candidate).Length(); d < bestDist {
			bestDist = d
			outward = e[1].Sub(e[0]).Perp().Normalize()
		}
	}
	normal, _ := core.SetFaceNormal(ray, outward)
	return core.NewRayIntersection(toi, normal), true
}

var _ Shape[core.Vec2] = Cone2{}
