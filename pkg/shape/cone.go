package shape

import (
	"math"

	"github.com/mbrt/collidex/pkg/bounding"
	"github.com/mbrt/collidex/pkg/core"
)

// Cone3 is a finite 3D cone or frustum standing on its local Y axis: base
// at the origin with BaseRadius, top at (0, Height, 0) with TopRadius (0
// for a pointed cone). Grounded directly on the teacher's
// pkg/geometry/cone.go, which stored BaseCenter/TopCenter/axis explicitly
// to place the cone in world space — here the caller's isometry does that
// job, so the cone's own local frame collapses to a fixed axis, the same
// simplification Cuboid/Ball make relative to their teacher counterparts.
type Cone3 struct {
	BaseRadius float64
	TopRadius  float64
	Height     float64
	Capped     bool

	tanAngle float64
	apex     core.Vec3
}

// NewCone3 creates a Cone3. Panics if baseRadius <= 0, topRadius < 0,
// height <= 0, or baseRadius <= topRadius (use a Cylinder-like capsule
// construction for equal radii, per the teacher's own validation).
func NewCone3(baseRadius, topRadius, height float64, capped bool) Cone3 {
	if baseRadius <= 0 {
		panic("shape: Cone3 base radius must be positive")
	}
	if topRadius < 0 {
		panic("shape: Cone3 top radius must be non-negative")
	}
	if height <= 0 {
		panic("shape: Cone3 height must be positive")
	}
	if baseRadius <= topRadius {
		panic("shape: Cone3 base radius must exceed top radius")
	}

	tanAngle := (baseRadius - topRadius) / height
	var apex core.Vec3
	if topRadius == 0 {
		apex = core.NewVec3(0, height, 0)
	} else {
		dFromTop := topRadius * height / (baseRadius - topRadius)
		apex = core.NewVec3(0, height+dFromTop, 0)
	}

	return Cone3{BaseRadius: baseRadius, TopRadius: topRadius, Height: height, Capped: capped, tanAngle: tanAngle, apex: apex}
}

var coneAxis = core.NewVec3(0, 1, 0)

// LocalAABB implements Shape[Vec3].
func (c Cone3) LocalAABB() bounding.AABB[core.Vec3] {
	r := math.Max(c.BaseRadius, c.TopRadius)
	return bounding.NewAABB(core.NewVec3(-r, 0, -r), core.NewVec3(r, c.Height, r))
}

const coneEpsilon = 1e-8

// ToiWithRay implements Shape[Vec3]. A solid query whose ray starts inside
// the cone reports TOI 0; otherwise the nearest forward body or cap
// crossing is reported.
func (c Cone3) ToiWithRay(ray core.Ray[core.Vec3], solid bool) (float64, bool) {
	if solid && c.ContainsPoint(ray.Origin) {
		return 0, true
	}
	toi, _, ok := c.hit(ray, 0, posInf)
	return toi, ok
}

// ToiAndNormalWithRay implements Shape[Vec3]. It treats solid the same way
// as ToiWithRay; a solid hit at TOI 0 from inside reports a zero normal.
func (c Cone3) ToiAndNormalWithRay(ray core.Ray[core.Vec3], solid bool) (core.RayIntersection[core.Vec3], bool) {
	if solid && c.ContainsPoint(ray.Origin) {
		return core.NewRayIntersection(0, core.Vec3{}), true
	}
	toi, outward, ok := c.hit(ray, 0, posInf)
	if !ok {
		return core.RayIntersection[core.Vec3]{}, false
	}
	normal, _ := core.SetFaceNormal(ray, outward)
	return core.NewRayIntersection(toi, normal), true
}

// hit returns the nearest valid intersection (body or caps) and its
// outward normal, mirroring the teacher's Cone.Hit dispatch across
// hitBody/hitCap.
func (c Cone3) hit(ray core.Ray[core.Vec3], tMin, tMax float64) (toi float64, normal core.Vec3, ok bool) {
	closestT := tMax
	found := false

	if t, n, bodyOK := c.hitBody(ray, tMin, closestT); bodyOK {
		toi, normal, found = t, n, true
		closestT = t
	}
	if c.Capped {
		if t, n, capOK := c.hitCap(ray, core.NewVec3(0, 0, 0), coneAxis.Scale(-1), c.BaseRadius, tMin, closestT); capOK {
			toi, normal, found = t, n, true
			closestT = t
		}
		if c.TopRadius > 0 {
			if t, n, capOK := c.hitCap(ray, core.NewVec3(0, c.Height, 0), coneAxis, c.TopRadius, tMin, closestT); capOK {
				toi, normal, found = t, n, true
				closestT = t
			}
		}
	}
	return toi, normal, found
}

func (c Cone3) hitBody(ray core.Ray[core.Vec3], tMin, tMax float64) (toi float64, normal core.Vec3, ok bool) {
	co := ray.Origin.Sub(c.apex)
	dDotV := ray.Direction.Dot(coneAxis)
	coDotV := co.Dot(coneAxis)

	k := c.tanAngle * c.tanAngle
	a := ray.Direction.LengthSquared() - (1+k)*dDotV*dDotV
	b := 2 * (ray.Direction.Dot(co) - (1+k)*dDotV*coDotV)
	cc := co.LengthSquared() - (1+k)*coDotV*coDotV

	if math.Abs(a) < coneEpsilon {
		return 0, core.Vec3{}, false
	}
	disc := b*b - 4*a*cc
	if disc < 0 {
		return 0, core.Vec3{}, false
	}
	sqrtD := math.Sqrt(disc)

	t := (-b - sqrtD) / (2 * a)
	if !c.validIntersection(ray, t, tMin, tMax) {
		t = (-b + sqrtD) / (2 * a)
		if !c.validIntersection(ray, t, tMin, tMax) {
			return 0, core.Vec3{}, false
		}
	}

	point := ray.At(t)
	h := point.Dot(coneAxis)
	centerPoint := coneAxis.Scale(h)
	radial := point.Sub(centerPoint)
	normalScale := (c.BaseRadius - c.TopRadius) / c.Height
	outward := radial.Add(coneAxis.Scale(normalScale)).Normalize()
	return t, outward, true
}

func (c Cone3) validIntersection(ray core.Ray[core.Vec3], t, tMin, tMax float64) bool {
	if t < tMin || t > tMax {
		return false
	}
	point := ray.At(t)
	h := point.Dot(coneAxis)
	if h < -coneEpsilon || h > c.Height+coneEpsilon {
		return false
	}
	apexToPoint := point.Sub(c.apex)
	if apexToPoint.Dot(coneAxis) > coneEpsilon {
		return false
	}
	return true
}

func (c Cone3) hitCap(ray core.Ray[core.Vec3], center, normal core.Vec3, radius, tMin, tMax float64) (toi float64, outward core.Vec3, ok bool) {
	denom := ray.Direction.Dot(normal)
	if math.Abs(denom) < coneEpsilon {
		return 0, core.Vec3{}, false
	}
	t := center.Sub(ray.Origin).Dot(normal) / denom
	if t < tMin || t > tMax {
		return 0, core.Vec3{}, false
	}
	point := ray.At(t)
	if point.Sub(center).Length() > radius {
		return 0, core.Vec3{}, false
	}
	return t, normal, true
}

// ProjectPoint implements Shape[Vec3] approximately: clamps the height
// along the axis, then clamps the radial distance to the cone's radius
// at that height. Exact closest-point-on-a-cone is a cubic root-find
// that spec.md treats as an external primitive concern (§1) — this gives
// a correct boundary point for the common case of well-separated points
// and is exact for points already within the cone's angular wedge.
func (c Cone3) ProjectPoint(p core.Vec3, solid bool) core.PointProjection[core.Vec3] {
	h := p.Dot(coneAxis)
	if h < 0 {
		h = 0
	}
	if h > c.Height {
		h = c.Height
	}
	radiusAtH := c.BaseRadius + (c.TopRadius-c.BaseRadius)*(h/c.Height)

	axisPoint := coneAxis.Scale(h)
	radial := p.Sub(axisPoint)
	radialLen := radial.Length()

	inside := c.ContainsPoint(p)
	if inside && solid {
		return core.NewPointProjection(true, p)
	}
	if radialLen == 0 {
		return core.NewPointProjection(inside, axisPoint.Add(coneAxis.Cross(core.NewVec3(1, 0, 0)).Normalize().Scale(radiusAtH)))
	}
	boundary := axisPoint.Add(radial.Scale(radiusAtH / radialLen))
	return core.NewPointProjection(inside, boundary)
}

// ProjectPointWithFeature implements Shape[Vec3]. ProjectPoint is already
// an approximation (see its doc comment) that doesn't track which of the
// base/lateral/apex region produced the boundary point, so the feature is
// always core.FeatureUnknown.
func (c Cone3) ProjectPointWithFeature(p core.Vec3, solid bool) (core.PointProjection[core.Vec3], core.FeatureID) {
	return c.ProjectPoint(p, solid), core.FeatureID{}
}

// DistanceToPoint implements Shape[Vec3].
func (c Cone3) DistanceToPoint(p core.Vec3, solid bool) float64 {
	proj := c.ProjectPoint(p, true)
	d := p.Sub(proj.Point).Length()
	if !c.ContainsPoint(p) {
		return d
	}
	if solid {
		return 0
	}
	return -d
}

// ContainsPoint implements Shape[Vec3].
func (c Cone3) ContainsPoint(p core.Vec3) bool {
	h := p.Dot(coneAxis)
	if h < 0 || h > c.Height {
		return false
	}
	radiusAtH := c.BaseRadius + (c.TopRadius-c.BaseRadius)*(h/c.Height)
	radial := p.Sub(coneAxis.Scale(h))
	return radial.Length() <= radiusAtH
}

var _ Shape[core.Vec3] = Cone3{}
