package query

import (
	"github.com/mbrt/collidex/pkg/bounding"
	"github.com/mbrt/collidex/pkg/core"
	"github.com/mbrt/collidex/pkg/partitioning"
	"github.com/mbrt/collidex/pkg/shape"
)

// PrimitivePairFunc computes the closest points between two placed
// primitive shapes, or proves their separation exceeds margin. Spec.md §6
// lists this as an external collaborator capability
// ("closest_points(m1,g1,m2,g2,margin) -> ClosestPoints") — the exact
// per-shape-pair algorithm (GJK, SAT, or a closed form) is out of this
// module's scope; callers supply it. This package's own job is the
// composite/mesh dispatch around whichever PrimitivePairFunc it is given.
type PrimitivePairFunc[P core.Point[P]] func(m1 core.Isometry[P], g1 shape.Shape[P], m2 core.Isometry[P], g2 shape.Shape[P], margin float64) core.ClosestPoints[P]

// BallBallClosestPoints is the one concrete PrimitivePairFunc this module
// ships, covering the common ball-vs-ball case (spec.md §8 scenario 4
// exercises exactly this: a composite of two balls against a single
// ball). Grounded on ncollide's closest_points_internal/ball_ball.rs:
// along the center-to-center axis, each witness point sits one radius in
// from its own center.
func BallBallClosestPoints[P core.Point[P]](m1 core.Isometry[P], g1 shape.Shape[P], m2 core.Isometry[P], g2 shape.Shape[P], margin float64) core.ClosestPoints[P] {
	b1, ok1 := g1.(shape.Ball[P])
	b2, ok2 := g2.(shape.Ball[P])
	if !ok1 || !ok2 {
		panic("query: BallBallClosestPoints requires both shapes to be shape.Ball[P]")
	}

	var origin P
	c1 := m1.TransformPoint(origin)
	c2 := m2.TransformPoint(origin)
	axis := c2.Sub(c1)
	centerDist := axis.Length()
	sep := centerDist - b1.Radius - b2.Radius

	if sep < 0 {
		return core.NewIntersecting[P]()
	}
	if sep > margin {
		return core.NewDisjoint[P]()
	}
	if centerDist == 0 {
		// Concentric balls of unequal radius: any axis is a valid witness
		// direction; this only arises already-Intersecting in practice
		// (sep < 0 above), kept as a safe fallback for the boundary case
		// where both radii are zero.
		return core.NewWithinMargin(c1, c2)
	}
	dir := axis.Scale(1 / centerDist)
	p1 := c1.Add(dir.Scale(b1.Radius))
	p2 := c2.Sub(dir.Scale(b2.Radius))
	return core.NewWithinMargin(p1, p2)
}

// compositeCost implements partitioning.BestFirstVisitor for the
// composite-shape-against-shape closest-points search. Grounded on
// ncollide's CompositeShapeAgainstClosestPointsCostFn
// (closest_points_internal/composite_shape_against_shape.rs): the BV cost
// is the solid distance from the origin to the Minkowski sum of the leaf
// box with -g2's AABB (both expressed in g1's local frame), and the leaf
// cost delegates to the caller's PrimitivePairFunc, latching stop once an
// Intersecting leaf is found so every later compute_bv_cost call prunes.
type compositeCost[P core.Point[P]] struct {
	leafAt   func(int) (core.Isometry[P], shape.Shape[P])
	m2       core.Isometry[P]
	g2       shape.Shape[P]
	margin   float64
	pairFunc PrimitivePairFunc[P]
	stop     bool
	shift    P // -ls_aabb2.Center()
	half     P // ls_aabb2.HalfExtents()
}

func (c *compositeCost[P]) ComputeBVCost(bv bounding.AABB[P]) (float64, bool) {
	if c.stop {
		return 0, false
	}
	msum := bounding.NewAABB(bv.Min.Add(c.shift).Sub(c.half), bv.Max.Add(c.shift).Add(c.half))
	var origin P
	d, _ := msum.DistanceToPointSolid(origin, true)
	return d, true
}

func (c *compositeCost[P]) ComputeLeafCost(idx int) (float64, core.ClosestPoints[P], bool) {
	childM, childShape := c.leafAt(idx)
	pts := c.pairFunc(childM, childShape, c.m2, c.g2, c.margin)
	switch pts.Status {
	case core.Intersecting:
		c.stop = true
		return 0, pts, true
	case core.WithinMargin:
		return pts.Distance(), pts, true
	default: // core.Disjoint
		return c.margin, pts, true
	}
}

var _ partitioning.BestFirstVisitor[int, bounding.AABB[core.Vec3], core.ClosestPoints[core.Vec3]] = (*compositeCost[core.Vec3])(nil)

// closestPointsOverBVT drives the best-first search shared by
// ClosestPointsCompoundAgainstShape and ClosestPointsMeshAgainstShape.
// leafAt(i) must return the leaf's fully composed world isometry (the
// caller has already folded in any child-specific transform) and its
// shape. Panics on an empty tree, per spec.md §7's "closest-points
// against an empty composite is a contract violation."
func closestPointsOverBVT[P core.Point[P]](
	tree partitioning.BVT[int, bounding.AABB[P]],
	leafAt func(int) (core.Isometry[P], shape.Shape[P]),
	m1 core.Isometry[P],
	m2 core.Isometry[P],
	g2 shape.Shape[P],
	margin float64,
	pairFunc PrimitivePairFunc[P],
) core.ClosestPoints[P] {
	lsM2 := m2.Compose(m1.Inverse())
	lsAABB2 := shape.TransformAABB(g2.LocalAABB(), lsM2)
	cost := &compositeCost[P]{
		leafAt:   leafAt,
		m2:       m2,
		g2:       g2,
		margin:   margin,
		pairFunc: pairFunc,
		shift:    lsAABB2.Center().Scale(-1),
		half:     lsAABB2.HalfExtents(),
	}
	result, found := partitioning.BestFirstSearch[int, bounding.AABB[P], core.ClosestPoints[P]](tree, cost)
	if !found {
		panic("query: closest-points against an empty composite shape")
	}
	return result
}

// ClosestPointsCompoundAgainstShape implements spec.md §4.5's
// composite_shape_against_shape for g1 a Compound, g2 any shape.
func ClosestPointsCompoundAgainstShape[P core.Point[P]](
	m1 core.Isometry[P], g1 shape.Compound[P],
	m2 core.Isometry[P], g2 shape.Shape[P],
	margin float64, pairFunc PrimitivePairFunc[P],
) core.ClosestPoints[P] {
	parts := g1.Parts()
	leafAt := func(i int) (core.Isometry[P], shape.Shape[P]) {
		return parts[i].Isometry.Compose(m1), parts[i].Shape
	}
	return closestPointsOverBVT[P](g1.Tree(), leafAt, m1, m2, g2, margin, pairFunc)
}

// ClosestPointsShapeAgainstCompound implements spec.md §4.5's symmetric
// shape_against_composite_shape for g2 a Compound: it flips the arguments,
// runs the composite search, then flips the witness-point order back.
func ClosestPointsShapeAgainstCompound[P core.Point[P]](
	m1 core.Isometry[P], g1 shape.Shape[P],
	m2 core.Isometry[P], g2 shape.Compound[P],
	margin float64, pairFunc PrimitivePairFunc[P],
) core.ClosestPoints[P] {
	return ClosestPointsCompoundAgainstShape[P](m2, g2, m1, g1, margin, pairFunc).Flip()
}

// ClosestPointsMeshAgainstShape is the BaseMesh analogue of
// ClosestPointsCompoundAgainstShape. A mesh element carries no isometry of
// its own (its vertices are already expressed in the mesh's local frame),
// so each leaf's composed world isometry is simply m1 itself.
func ClosestPointsMeshAgainstShape[P core.Point[P], E shape.Shape[P]](
	m1 core.Isometry[P], g1 shape.BaseMesh[P, E],
	m2 core.Isometry[P], g2 shape.Shape[P],
	margin float64, pairFunc PrimitivePairFunc[P],
) core.ClosestPoints[P] {
	leafAt := func(i int) (core.Isometry[P], shape.Shape[P]) {
		return m1, g1.ElementAt(i)
	}
	return closestPointsOverBVT[P](g1.Tree(), leafAt, m1, m2, g2, margin, pairFunc)
}

// ClosestPointsShapeAgainstMesh is the symmetric flip for g2 a BaseMesh.
func ClosestPointsShapeAgainstMesh[P core.Point[P], E shape.Shape[P]](
	m1 core.Isometry[P], g1 shape.Shape[P],
	m2 core.Isometry[P], g2 shape.BaseMesh[P, E],
	margin float64, pairFunc PrimitivePairFunc[P],
) core.ClosestPoints[P] {
	return ClosestPointsMeshAgainstShape[P, E](m2, g2, m1, g1, margin, pairFunc).Flip()
}
