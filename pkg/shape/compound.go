package shape

import (
	"github.com/mbrt/collidex/pkg/bounding"
	"github.com/mbrt/collidex/pkg/core"
	"github.com/mbrt/collidex/pkg/partitioning"
)

// CompoundPart is one (isometry, shape) member of a Compound, per spec.md
// §3's CompositeShape data model. Isometry places the part relative to
// the Compound's own local frame.
type CompoundPart[P core.Point[P]] struct {
	Isometry core.Isometry[P]
	Shape    Shape[P]
}

// Compound is an ordered aggregate of transformed sub-shapes plus a BVT
// over part indices, keyed by each part's AABB already expressed in the
// Compound's own local frame (the part's LocalAABB transformed once
// through its isometry at construction time — ncollide's CompoundData
// precomputes these the same way). Grounded on spec.md §3's
// CompositeShape plus §4.4's aggregate ray-cast dataflow; the teacher has
// no composite-shape concept to port from, since its BVH only ever holds
// primitive leaves directly.
type Compound[P core.Point[P]] struct {
	parts []CompoundPart[P]
	tree  partitioning.BVT[int, bounding.AABB[P]]
	aabb  bounding.AABB[P]
}

// NewCompound builds a Compound from its parts. Panics if parts is empty
// (an empty composite is a contract violation per spec.md §7).
func NewCompound[P core.Point[P]](parts []CompoundPart[P]) Compound[P] {
	if len(parts) == 0 {
		panic("shape: Compound requires at least one part")
	}
	partAABBs := make([]bounding.AABB[P], len(parts))
	for i, part := range parts {
		partAABBs[i] = TransformAABB(part.Shape.LocalAABB(), part.Isometry)
	}
	indices := make([]int, len(parts))
	for i := range parts {
		indices[i] = i
	}
	leafBV := func(i int) bounding.AABB[P] { return partAABBs[i] }
	centroid := func(i int) []float64 {
		c := partAABBs[i].Center()
		coords := make([]float64, c.Dims())
		for d := 0; d < c.Dims(); d++ {
			coords[d] = c.Coord(d)
		}
		return coords
	}
	tree := partitioning.NewBVT(indices, leafBV, centroid)
	return Compound[P]{parts: parts, tree: tree, aabb: tree.RootBV()}
}

// Parts returns the Compound's (isometry, shape) members, in construction
// order. Used by pkg/query's top-level dispatch when it needs direct
// access to a part rather than going through the BVT (e.g. reporting
// which part a closest-points query matched).
func (c Compound[P]) Parts() []CompoundPart[P] { return c.parts }

// Tree returns the Compound's part-index BVT.
func (c Compound[P]) Tree() partitioning.BVT[int, bounding.AABB[P]] { return c.tree }

// TransformAABB returns the tightest AABB enclosing box's corners after
// being transformed by iso. There is no per-axis shortcut generic over an
// arbitrary Point[P] constraint (Arvo's method needs access to a
// rotation matrix's individual entries), so this enumerates the 2^d
// corners directly — at most 8 for the dimensions this module supports.
// Exported for pkg/query's closest-points dispatch, which needs the same
// operation to place a query shape's AABB into a composite's local frame.
func TransformAABB[P core.Point[P]](box bounding.AABB[P], iso core.Isometry[P]) bounding.AABB[P] {
	var zero P
	dims := zero.Dims()
	corners := make([]P, 0, 1<<dims)
	for mask := 0; mask < 1<<dims; mask++ {
		var corner P
		for d := 0; d < dims; d++ {
			if mask&(1<<d) != 0 {
				corner = corner.WithCoord(d, box.Max.Coord(d))
			} else {
				corner = corner.WithCoord(d, box.Min.Coord(d))
			}
		}
		corners = append(corners, iso.TransformPoint(corner))
	}
	return bounding.NewAABBFromPoints(corners)
}

// LocalAABB implements Shape[P].
func (c Compound[P]) LocalAABB() bounding.AABB[P] { return c.aabb }

func localRay[P core.Point[P]](ray core.Ray[P], iso core.Isometry[P]) core.Ray[P] {
	return core.NewRay(iso.InverseTransformPoint(ray.Origin), iso.InverseRotateVector(ray.Direction))
}

type compoundRayCost[P core.Point[P]] struct {
	c     Compound[P]
	ray   core.Ray[P]
	solid bool
}

// ComputeBVCost implements partitioning.BestFirstVisitor. The BV level
// always queries with solid=true, per spec.md §4.4: BVs are hulls, so any
// ray origin within one must be considered, regardless of the caller's
// own solid flag.
func (rc compoundRayCost[P]) ComputeBVCost(bv bounding.AABB[P]) (float64, bool) {
	return bv.TOIWithRay(rc.ray, 0, posInf, true)
}

func (rc compoundRayCost[P]) ComputeLeafCost(idx int) (float64, int, bool) {
	part := rc.c.parts[idx]
	toi, ok := part.Shape.ToiWithRay(localRay(rc.ray, part.Isometry), rc.solid)
	if !ok {
		return 0, 0, false
	}
	return toi, idx, true
}

var _ partitioning.BestFirstVisitor[int, bounding.AABB[core.Vec3], int] = compoundRayCost[core.Vec3]{}

// ToiWithRay implements Shape[P]. The solid flag is delegated to whichever
// part is hit, per spec.md §9's preserved Compound asymmetry (a
// non-solid query may surface an internal intersection rather than the
// true exterior boundary, exactly as ncollide's ray_compound.rs does).
func (c Compound[P]) ToiWithRay(ray core.Ray[P], solid bool) (float64, bool) {
	toi, _, ok := c.toiWithPart(ray, solid)
	return toi, ok
}

func (c Compound[P]) toiWithPart(ray core.Ray[P], solid bool) (toi float64, partIdx int, ok bool) {
	idx, found := partitioning.BestFirstSearch[int, bounding.AABB[P], int](c.tree, compoundRayCost[P]{c: c, ray: ray, solid: solid})
	if !found {
		return 0, 0, false
	}
	part := c.parts[idx]
	toi, _ = part.Shape.ToiWithRay(localRay(ray, part.Isometry), solid)
	return toi, idx, true
}

// ToiAndNormalWithRay implements Shape[P]. Never reports UVs — Compound
// deliberately has no UVRayCaster implementation, matching
// ray_compound.rs's own asymmetry (documented in SPEC_FULL.md §5). The
// solid flag is delegated to whichever part is hit, same as ToiWithRay.
func (c Compound[P]) ToiAndNormalWithRay(ray core.Ray[P], solid bool) (core.RayIntersection[P], bool) {
	toi, idx, ok := c.toiWithPart(ray, solid)
	if !ok {
		return core.RayIntersection[P]{}, false
	}
	part := c.parts[idx]
	localIsect, hit := part.Shape.ToiAndNormalWithRay(localRay(ray, part.Isometry), solid)
	if !hit {
		return core.RayIntersection[P]{}, false
	}
	worldNormal := part.Isometry.RotateVector(localIsect.Normal)
	return core.NewRayIntersection(toi, worldNormal), true
}

type compoundPointCost[P core.Point[P]] struct {
	c Compound[P]
	p P
}

func (pc compoundPointCost[P]) ComputeBVCost(bv bounding.AABB[P]) (float64, bool) {
	d, _ := bv.DistanceToPointSolid(pc.p, true)
	return d, true
}

type pointResult[P core.Point[P]] struct {
	point    P
	isInside bool
}

func (pc compoundPointCost[P]) ComputeLeafCost(idx int) (float64, pointResult[P], bool) {
	part := pc.c.parts[idx]
	localP := part.Isometry.InverseTransformPoint(pc.p)
	proj := part.Shape.ProjectPoint(localP, true)
	worldPoint := part.Isometry.TransformPoint(proj.Point)
	dist := pc.p.Sub(worldPoint).Length()
	return dist, pointResult[P]{point: worldPoint, isInside: proj.IsInside}, true
}

func (c Compound[P]) closestPoint(p P) (point P, isInside bool) {
	result, found := partitioning.BestFirstSearch[int, bounding.AABB[P], pointResult[P]](c.tree, compoundPointCost[P]{c: c, p: p})
	if !found {
		// A non-empty Compound always has at least one part to evaluate;
		// this is unreachable in practice, kept only to give ProjectPoint
		// a total function without a panic.
		return p, false
	}
	return result.point, result.isInside
}

// ProjectPoint implements Shape[P].
func (c Compound[P]) ProjectPoint(p P, solid bool) core.PointProjection[P] {
	point, inside := c.closestPoint(p)
	if inside && solid {
		return core.NewPointProjection(true, p)
	}
	return core.NewPointProjection(inside, point)
}

// DistanceToPoint implements Shape[P].
func (c Compound[P]) DistanceToPoint(p P, solid bool) float64 {
	point, inside := c.closestPoint(p)
	d := p.Sub(point).Length()
	if !inside {
		return d
	}
	if solid {
		return 0
	}
	return -d
}

// ContainsPoint implements Shape[P].
func (c Compound[P]) ContainsPoint(p P) bool {
	_, inside := c.closestPoint(p)
	return inside
}

type pointFeatureResult[P core.Point[P]] struct {
	point    P
	isInside bool
	feature  core.FeatureID
}

// compoundPointFeatureCost is compoundPointCost with ComputeLeafCost
// additionally carrying the hit part's feature discriminator.
type compoundPointFeatureCost[P core.Point[P]] struct {
	c Compound[P]
	p P
}

func (pc compoundPointFeatureCost[P]) ComputeBVCost(bv bounding.AABB[P]) (float64, bool) {
	d, _ := bv.DistanceToPointSolid(pc.p, true)
	return d, true
}

func (pc compoundPointFeatureCost[P]) ComputeLeafCost(idx int) (float64, pointFeatureResult[P], bool) {
	part := pc.c.parts[idx]
	localP := part.Isometry.InverseTransformPoint(pc.p)
	proj, feature := part.Shape.ProjectPointWithFeature(localP, true)
	worldPoint := part.Isometry.TransformPoint(proj.Point)
	dist := pc.p.Sub(worldPoint).Length()
	return dist, pointFeatureResult[P]{point: worldPoint, isInside: proj.IsInside, feature: feature}, true
}

// ProjectPointWithFeature implements Shape[P]. Reports the feature local
// to whichever part is closest; the part itself is available via Parts()
// plus pkg/query's dispatch when the caller needs the part index too.
func (c Compound[P]) ProjectPointWithFeature(p P, solid bool) (core.PointProjection[P], core.FeatureID) {
	result, found := partitioning.BestFirstSearch[int, bounding.AABB[P], pointFeatureResult[P]](c.tree, compoundPointFeatureCost[P]{c: c, p: p})
	if !found {
		return core.NewPointProjection(false, p), core.FeatureID{}
	}
	if result.isInside && solid {
		return core.NewPointProjection(true, p), core.FeatureID{}
	}
	return core.NewPointProjection(result.isInside, result.point), result.feature
}

var _ Shape[core.Vec2] = Compound[core.Vec2]{}
var _ Shape[core.Vec3] = Compound[core.Vec3]{}
