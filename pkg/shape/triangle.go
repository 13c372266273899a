package shape

import (
	"github.com/mbrt/collidex/pkg/bounding"
	"github.com/mbrt/collidex/pkg/core"
)

// Triangle3 is a single 3D triangle, the mesh element type for
// BaseMesh[Vec3,...]. Grounded on the teacher's pkg/geometry/triangle.go
// Möller–Trumbore ray intersection and per-vertex UV interpolation,
// adapted to operate in the mesh's local frame (the teacher stored
// world-space vertices directly).
type Triangle3 struct {
	V0, V1, V2 core.Vec3
}

// NewTriangle3 creates a Triangle3.
func NewTriangle3(v0, v1, v2 core.Vec3) Triangle3 {
	return Triangle3{V0: v0, V1: v1, V2: v2}
}

func (t Triangle3) edges() (e1, e2 core.Vec3) {
	return t.V1.Sub(t.V0), t.V2.Sub(t.V0)
}

// Normal returns the triangle's unit face normal, following the
// V0→V1→V2 winding order.
func (t Triangle3) Normal() core.Vec3 {
	e1, e2 := t.edges()
	return e1.Cross(e2).Normalize()
}

// LocalAABB implements Shape[Vec3].
func (t Triangle3) LocalAABB() bounding.AABB[core.Vec3] {
	return bounding.NewAABBFromPoints([]core.Vec3{t.V0, t.V1, t.V2})
}

const triangleEpsilon = 1e-8

// moellerTrumbore returns (t, u, v, ok): the ray parameter and barycentric
// u,v coordinates (with w = 1-u-v implicit) of the hit, following the
// teacher's triangle.go algorithm exactly.
func (tr Triangle3) moellerTrumbore(ray core.Ray[core.Vec3]) (toi, u, v float64, ok bool) {
	e1, e2 := tr.edges()
	h := ray.Direction.Cross(e2)
	a := e1.Dot(h)
	if a > -triangleEpsilon && a < triangleEpsilon {
		return 0, 0, 0, false
	}
	f := 1 / a
	s := ray.Origin.Sub(tr.V0)
	u = f * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}
	q := s.Cross(e1)
	v = f * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}
	toi = f * e2.Dot(q)
	if toi < 0 {
		return 0, 0, 0, false
	}
	return toi, u, v, true
}

// ToiWithRay implements Shape[Vec3]. A triangle has no interior, so the
// solid flag has no effect — this is a boundary-only shape.
func (t Triangle3) ToiWithRay(ray core.Ray[core.Vec3], solid bool) (float64, bool) {
	toi, _, _, ok := t.moellerTrumbore(ray)
	return toi, ok
}

// ToiAndNormalWithRay implements Shape[Vec3]. A triangle has no interior,
// so solid has no effect here either, same as ToiWithRay.
func (t Triangle3) ToiAndNormalWithRay(ray core.Ray[core.Vec3], solid bool) (core.RayIntersection[core.Vec3], bool) {
	toi, _, _, ok := t.moellerTrumbore(ray)
	if !ok {
		return core.RayIntersection[core.Vec3]{}, false
	}
	normal, _ := core.SetFaceNormal(ray, t.Normal())
	return core.NewRayIntersection(toi, normal), true
}

// ToiAndNormalAndUVWithRay implements shape.UVRayCaster[Vec3]. UV here is
// reported as the raw barycentric (u,v); BaseMesh interpolates actual
// per-vertex UV/normal attributes on top of this when they exist.
func (t Triangle3) ToiAndNormalAndUVWithRay(ray core.Ray[core.Vec3], solid bool) (core.RayIntersection[core.Vec3], bool) {
	toi, u, v, ok := t.moellerTrumbore(ray)
	if !ok {
		return core.RayIntersection[core.Vec3]{}, false
	}
	normal, _ := core.SetFaceNormal(ray, t.Normal())
	return core.NewRayIntersectionWithUV(toi, normal, core.NewVec2(u, v)), true
}

// closestPoint returns the closest point on the triangle to p, via the
// standard region-based projection (project to plane, clamp to the three
// edges/vertices as needed).
func (t Triangle3) closestPoint(p core.Vec3) core.Vec3 {
	point, _ := t.closestPointWithFeature(p)
	return point
}

// closestPointWithFeature is closestPoint plus the Voronoi region (vertex,
// edge, or face) the closest point landed in, per spec.md §4.6's feature
// discriminator. Vertices are numbered V0=0, V1=1, V2=2; edges V0V1=0,
// V1V2=1, V2V0=2.
func (t Triangle3) closestPointWithFeature(p core.Vec3) (core.Vec3, core.FeatureID) {
	ab := t.V1.Sub(t.V0)
	ac := t.V2.Sub(t.V0)
	ap := p.Sub(t.V0)

	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return t.V0, core.FeatureID{Kind: core.FeatureVertex, Index: 0}
	}

	bp := p.Sub(t.V1)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return t.V1, core.FeatureID{Kind: core.FeatureVertex, Index: 1}
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return t.V0.Add(ab.Scale(v)), core.FeatureID{Kind: core.FeatureEdge, Index: 0}
	}

	cp := p.Sub(t.V2)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return t.V2, core.FeatureID{Kind: core.FeatureVertex, Index: 2}
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return t.V0.Add(ac.Scale(w)), core.FeatureID{Kind: core.FeatureEdge, Index: 2}
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return t.V1.Add(t.V2.Sub(t.V1).Scale(w)), core.FeatureID{Kind: core.FeatureEdge, Index: 1}
	}

	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return t.V0.Add(ab.Scale(v)).Add(ac.Scale(w)), core.FeatureID{Kind: core.FeatureFace, Index: 0}
}

// ProjectPoint implements Shape[Vec3]. A triangle is a zero-thickness
// boundary, so "inside" (solid=true) never applies — every projection is
// onto the surface, and ContainsPoint is always false off the surface.
func (t Triangle3) ProjectPoint(p core.Vec3, solid bool) core.PointProjection[core.Vec3] {
	closest := t.closestPoint(p)
	return core.NewPointProjection(false, closest)
}

// ProjectPointWithFeature implements Shape[Vec3].
func (t Triangle3) ProjectPointWithFeature(p core.Vec3, solid bool) (core.PointProjection[core.Vec3], core.FeatureID) {
	closest, feature := t.closestPointWithFeature(p)
	return core.NewPointProjection(false, closest), feature
}

// DistanceToPoint implements Shape[Vec3].
func (t Triangle3) DistanceToPoint(p core.Vec3, solid bool) float64 {
	return p.Sub(t.closestPoint(p)).Length()
}

// ContainsPoint implements Shape[Vec3]. A triangle has measure-zero
// thickness, so this reports true only for points within triangleEpsilon
// of its surface and false everywhere else.
func (t Triangle3) ContainsPoint(p core.Vec3) bool {
	return t.DistanceToPoint(p, true) < triangleEpsilon
}

var _ Shape[core.Vec3] = Triangle3{}
var _ UVRayCaster[core.Vec3] = Triangle3{}
