package shape

import (
	"github.com/mbrt/collidex/pkg/bounding"
	"github.com/mbrt/collidex/pkg/core"
	"github.com/mbrt/collidex/pkg/partitioning"
)

// BaseMesh is a mesh of E-shaped elements (Triangle3 in 3D, Segment2 in
// 2D) over a shared vertex array, plus a BVT over element indices. Per
// spec.md §3, normals and UVs are optional per-vertex attributes used
// only by the UV ray-cast variant. Grounded on the teacher's
// pkg/geometry/triangle_mesh.go (panic-on-bad-index construction, one
// BVH over element bounding boxes) generalized from a fixed Vec3/
// Triangle pairing to any (P, E) satisfying Shape[P], since spec.md's
// BaseMesh[P, I, E] is itself generic over the element kind.
type BaseMesh[P core.Point[P], E Shape[P]] struct {
	vertices []P
	indices  [][]int
	elements []E
	normals  []P
	uvs      []core.Vec2
	tree     partitioning.BVT[int, bounding.AABB[P]]
	aabb     bounding.AABB[P]
}

// NewBaseMesh builds a BaseMesh from vertices, per-element vertex index
// tuples, and a constructor turning (vertices, indices-for-this-element)
// into the element shape. Panics if any index is out of bounds, or if
// normals/uvs are given but don't cover every vertex, matching the
// teacher's "Face index out of bounds" constructor-time panic style.
func NewBaseMesh[P core.Point[P], E Shape[P]](
	vertices []P,
	indices [][]int,
	makeElement func(vertices []P, idx []int) E,
	normals []P,
	uvs []core.Vec2,
) BaseMesh[P, E] {
	if len(normals) != 0 && len(normals) != len(vertices) {
		panic("shape: BaseMesh normals must cover every vertex or be omitted")
	}
	if len(uvs) != 0 && len(uvs) != len(vertices) {
		panic("shape: BaseMesh uvs must cover every vertex or be omitted")
	}

	elements := make([]E, len(indices))
	for i, idx := range indices {
		for _, v := range idx {
			if v < 0 || v >= len(vertices) {
				panic("shape: BaseMesh element index out of bounds")
			}
		}
		elements[i] = makeElement(vertices, idx)
	}

	m := BaseMesh[P, E]{vertices: vertices, indices: indices, elements: elements, normals: normals, uvs: uvs}
	if len(elements) == 0 {
		return m
	}

	elemIndices := make([]int, len(elements))
	for i := range elements {
		elemIndices[i] = i
	}
	leafBV := func(i int) bounding.AABB[P] { return elements[i].LocalAABB() }
	centroid := func(i int) []float64 {
		c := leafBV(i).Center()
		coords := make([]float64, c.Dims())
		for d := 0; d < c.Dims(); d++ {
			coords[d] = c.Coord(d)
		}
		return coords
	}
	m.tree = partitioning.NewBVT(elemIndices, leafBV, centroid)
	if !m.tree.IsEmpty() {
		m.aabb = m.tree.RootBV()
	}
	return m
}

// NewTriMesh builds a 3D triangle mesh.
func NewTriMesh(vertices []core.Vec3, indices [][3]int, normals []core.Vec3, uvs []core.Vec2) TriMesh {
	flatIdx := make([][]int, len(indices))
	for i, idx := range indices {
		flatIdx[i] = []int{idx[0], idx[1], idx[2]}
	}
	return NewBaseMesh[core.Vec3, Triangle3](vertices, flatIdx, func(vs []core.Vec3, idx []int) Triangle3 {
		return NewTriangle3(vs[idx[0]], vs[idx[1]], vs[idx[2]])
	}, normals, uvs)
}

// NewPolyline builds a 2D segment mesh. 2D meshes never carry UVs, per
// spec.md §4.4's "fall back to the no-UV path ... when the mesh is 2D".
func NewPolyline(vertices []core.Vec2, indices [][2]int) Polyline {
	flatIdx := make([][]int, len(indices))
	for i, idx := range indices {
		flatIdx[i] = []int{idx[0], idx[1]}
	}
	return NewBaseMesh[core.Vec2, Segment2](vertices, flatIdx, func(vs []core.Vec2, idx []int) Segment2 {
		return NewSegment2(vs[idx[0]], vs[idx[1]])
	}, nil, nil)
}

// TriMesh is a 3D triangle mesh, the mesh element kind spec.md §3 names
// for 3D BaseMesh instantiations.
type TriMesh = BaseMesh[core.Vec3, Triangle3]

// Polyline is a 2D segment mesh, the mesh element kind spec.md §3 names
// for 2D BaseMesh instantiations.
type Polyline = BaseMesh[core.Vec2, Segment2]

// Vertices returns the mesh's shared vertex array.
func (m BaseMesh[P, E]) Vertices() []P { return m.vertices }

// Indices returns the per-element vertex index tuples.
func (m BaseMesh[P, E]) Indices() [][]int { return m.indices }

// Normals returns the optional per-vertex normals, or nil if absent.
func (m BaseMesh[P, E]) Normals() []P { return m.normals }

// UVs returns the optional per-vertex UV coordinates, or nil if absent.
func (m BaseMesh[P, E]) UVs() []core.Vec2 { return m.uvs }

// ElementAt returns the element shape built from indices[i].
func (m BaseMesh[P, E]) ElementAt(i int) E { return m.elements[i] }

// Tree returns the mesh's element-index BVT.
func (m BaseMesh[P, E]) Tree() partitioning.BVT[int, bounding.AABB[P]] { return m.tree }

// LocalAABB implements Shape[P]. Returns the zero-value AABB for an
// empty mesh; callers of an empty mesh should check emptiness via
// Tree().IsEmpty() before relying on it.
func (m BaseMesh[P, E]) LocalAABB() bounding.AABB[P] { return m.aabb }

type meshRayCost[P core.Point[P], E Shape[P]] struct {
	elements []E
	ray      core.Ray[P]
	solid    bool
}

func (rc meshRayCost[P, E]) ComputeBVCost(bv bounding.AABB[P]) (float64, bool) {
	return bv.TOIWithRay(rc.ray, 0, posInf, true)
}

func (rc meshRayCost[P, E]) ComputeLeafCost(idx int) (float64, int, bool) {
	toi, ok := rc.elements[idx].ToiWithRay(rc.ray, rc.solid)
	if !ok {
		return 0, 0, false
	}
	return toi, idx, true
}

// ToiWithRay implements Shape[P]. Per spec.md §4.4, the BV level always
// searches with solid=true; the caller's solid flag is delegated to the
// element primitive.
func (m BaseMesh[P, E]) ToiWithRay(ray core.Ray[P], solid bool) (float64, bool) {
	idx, found := partitioning.BestFirstSearch[int, bounding.AABB[P], int](m.tree, meshRayCost[P, E]{elements: m.elements, ray: ray, solid: solid})
	if !found {
		return 0, false
	}
	return m.elements[idx].ToiWithRay(ray, solid)
}

type meshNormalCost[P core.Point[P], E Shape[P]] struct {
	elements []E
	ray      core.Ray[P]
	solid    bool
}

func (rc meshNormalCost[P, E]) ComputeBVCost(bv bounding.AABB[P]) (float64, bool) {
	return bv.TOIWithRay(rc.ray, 0, posInf, true)
}

func (rc meshNormalCost[P, E]) ComputeLeafCost(idx int) (float64, core.RayIntersection[P], bool) {
	isect, hit := rc.elements[idx].ToiAndNormalWithRay(rc.ray, rc.solid)
	if !hit {
		return 0, core.RayIntersection[P]{}, false
	}
	return isect.TOI, isect, true
}

// ToiAndNormalWithRay implements Shape[P]. Per spec.md §4.4, the BV level
// always searches with solid=true; the caller's solid flag is delegated
// to the element primitive, same as ToiWithRay.
func (m BaseMesh[P, E]) ToiAndNormalWithRay(ray core.Ray[P], solid bool) (core.RayIntersection[P], bool) {
	return partitioning.BestFirstSearch[int, bounding.AABB[P], core.RayIntersection[P]](m.tree, meshNormalCost[P, E]{elements: m.elements, ray: ray, solid: solid})
}

type meshUVResult[P core.Point[P]] struct {
	idx   int
	isect core.RayIntersection[P]
	u, v  float64
}

type meshUVCost[P core.Point[P], E Shape[P]] struct {
	elements []E
	ray      core.Ray[P]
	solid    bool
}

func (rc meshUVCost[P, E]) ComputeBVCost(bv bounding.AABB[P]) (float64, bool) {
	return bv.TOIWithRay(rc.ray, 0, posInf, true)
}

func (rc meshUVCost[P, E]) ComputeLeafCost(idx int) (float64, meshUVResult[P], bool) {
	caster := any(rc.elements[idx]).(UVRayCaster[P])
	isect, hit := caster.ToiAndNormalAndUVWithRay(rc.ray, rc.solid)
	if !hit {
		return 0, meshUVResult[P]{}, false
	}
	return isect.TOI, meshUVResult[P]{idx: idx, isect: isect, u: isect.UV.X, v: isect.UV.Y}, true
}

// ToiAndNormalAndUVWithRay implements shape.UVRayCaster[P] when the
// element type supports it. Falls back to the plain normal path (no UV,
// HasUV left false) when the mesh carries no UV data or its element kind
// doesn't implement UVRayCaster — which is always true for a 2D
// Polyline, per spec.md §4.4.
func (m BaseMesh[P, E]) ToiAndNormalAndUVWithRay(ray core.Ray[P], solid bool) (core.RayIntersection[P], bool) {
	var zero E
	_, elementSupportsUV := any(zero).(UVRayCaster[P])
	if !elementSupportsUV || m.uvs == nil {
		return m.ToiAndNormalWithRay(ray, solid)
	}

	result, found := partitioning.BestFirstSearch[int, bounding.AABB[P], meshUVResult[P]](m.tree, meshUVCost[P, E]{elements: m.elements, ray: ray, solid: solid})
	if !found {
		return core.RayIntersection[P]{}, false
	}

	idx := m.indices[result.idx]
	w := 1 - result.u - result.v
	uv := m.uvs[idx[0]].Scale(w).Add(m.uvs[idx[1]].Scale(result.u)).Add(m.uvs[idx[2]].Scale(result.v))

	normal := result.isect.Normal
	if m.normals != nil {
		interpolated := m.normals[idx[0]].Scale(w).Add(m.normals[idx[1]].Scale(result.u)).Add(m.normals[idx[2]].Scale(result.v))
		if !interpolated.IsZero() {
			oriented, _ := core.SetFaceNormal(ray, interpolated.Normalize())
			normal = oriented
		}
	}
	return core.NewRayIntersectionWithUV(result.isect.TOI, normal, uv), true
}

// ProjectPoint implements Shape[P].
func (m BaseMesh[P, E]) ProjectPoint(p P, solid bool) core.PointProjection[P] {
	point, inside := m.closestPoint(p)
	if inside && solid {
		return core.NewPointProjection(true, p)
	}
	return core.NewPointProjection(inside, point)
}

// DistanceToPoint implements Shape[P].
func (m BaseMesh[P, E]) DistanceToPoint(p P, solid bool) float64 {
	point, inside := m.closestPoint(p)
	d := p.Sub(point).Length()
	if !inside {
		return d
	}
	if solid {
		return 0
	}
	return -d
}

// ContainsPoint implements Shape[P]. A mesh of boundary-only elements
// (Triangle3/Segment2) has no interior, so this is always false.
func (m BaseMesh[P, E]) ContainsPoint(p P) bool {
	_, inside := m.closestPoint(p)
	return inside
}

type meshPointCost[P core.Point[P], E Shape[P]] struct {
	elements []E
	p        P
}

func (pc meshPointCost[P, E]) ComputeBVCost(bv bounding.AABB[P]) (float64, bool) {
	d, _ := bv.DistanceToPointSolid(pc.p, true)
	return d, true
}

func (pc meshPointCost[P, E]) ComputeLeafCost(idx int) (float64, P, bool) {
	proj := pc.elements[idx].ProjectPoint(pc.p, true)
	return pc.p.Sub(proj.Point).Length(), proj.Point, true
}

func (m BaseMesh[P, E]) closestPoint(p P) (point P, inside bool) {
	result, found := partitioning.BestFirstSearch[int, bounding.AABB[P], P](m.tree, meshPointCost[P, E]{elements: m.elements, p: p})
	if !found {
		return p, false
	}
	return result, false
}

type meshPointFeatureResult[P core.Point[P]] struct {
	point   P
	feature core.FeatureID
}

type meshPointFeatureCost[P core.Point[P], E Shape[P]] struct {
	elements []E
	p        P
}

func (pc meshPointFeatureCost[P, E]) ComputeBVCost(bv bounding.AABB[P]) (float64, bool) {
	d, _ := bv.DistanceToPointSolid(pc.p, true)
	return d, true
}

func (pc meshPointFeatureCost[P, E]) ComputeLeafCost(idx int) (float64, meshPointFeatureResult[P], bool) {
	proj, feature := pc.elements[idx].ProjectPointWithFeature(pc.p, true)
	return pc.p.Sub(proj.Point).Length(), meshPointFeatureResult[P]{point: proj.Point, feature: feature}, true
}

// ProjectPointWithFeature implements Shape[P]. Reports the feature local
// to whichever element is closest, per that element's own
// ProjectPointWithFeature (vertex/edge/face for Triangle3, vertex/edge
// for Segment2).
func (m BaseMesh[P, E]) ProjectPointWithFeature(p P, solid bool) (core.PointProjection[P], core.FeatureID) {
	result, found := partitioning.BestFirstSearch[int, bounding.AABB[P], meshPointFeatureResult[P]](m.tree, meshPointFeatureCost[P, E]{elements: m.elements, p: p})
	if !found {
		return core.NewPointProjection(false, p), core.FeatureID{}
	}
	return core.NewPointProjection(false, result.point), result.feature
}

var _ Shape[core.Vec3] = TriMesh{}
var _ Shape[core.Vec2] = Polyline{}
var _ UVRayCaster[core.Vec3] = TriMesh{}
