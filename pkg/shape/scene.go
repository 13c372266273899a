package shape

import (
	"github.com/mbrt/collidex/pkg/bounding"
	"github.com/mbrt/collidex/pkg/core"
	"github.com/mbrt/collidex/pkg/partitioning"
)

// SceneEntry is one (isometry, shape) member of a SphereScene, the same
// data shape as CompoundPart.
type SceneEntry[P core.Point[P]] struct {
	Isometry core.Isometry[P]
	Shape    Shape[P]
}

// SphereScene is an aggregate of independently placed shapes broad-phased
// by a BoundingSphere BVT, per spec.md §8 scenario 1 ("build balanced BVT
// over (index, bounding-sphere)"). Where Compound narrows its BVT by AABB
// and always resolves to a single nearest-hit TOI, SphereScene exists for
// the complementary set-valued query scenario 1 exercises: collecting
// every candidate a ray's bounding volume might touch, via
// partitioning.RayInterferenceCollector, without committing to exact
// per-shape ray casts. Narrowing any further (e.g. to the true nearest
// hit among the candidates) is left to the caller, same as
// partitioning.RayInterferenceCollector's own contract.
type SphereScene[P core.Point[P]] struct {
	entries []SceneEntry[P]
	tree    partitioning.BVT[int, bounding.BoundingSphere[P]]
}

// localBoundingSphere derives an enclosing (not necessarily tightest)
// bounding sphere from a shape's LocalAABB: center at the box's center,
// radius the distance to a corner. Every Shape[P] already implements
// LocalAABB, so this needs no additional capability on the interface.
func localBoundingSphere[P core.Point[P]](s Shape[P], iso core.Isometry[P]) bounding.BoundingSphere[P] {
	box := s.LocalAABB()
	center := iso.TransformPoint(box.Center())
	radius := box.HalfExtents().Length()
	return bounding.NewBoundingSphere(center, radius)
}

// NewSphereScene builds a SphereScene from its entries. Panics if entries
// is empty, matching NewCompound's empty-aggregate contract.
func NewSphereScene[P core.Point[P]](entries []SceneEntry[P]) SphereScene[P] {
	if len(entries) == 0 {
		panic("shape: SphereScene requires at least one entry")
	}
	spheres := make([]bounding.BoundingSphere[P], len(entries))
	for i, e := range entries {
		spheres[i] = localBoundingSphere[P](e.Shape, e.Isometry)
	}
	indices := make([]int, len(entries))
	for i := range entries {
		indices[i] = i
	}
	leafBV := func(i int) bounding.BoundingSphere[P] { return spheres[i] }
	centroid := func(i int) []float64 {
		c := spheres[i].Center
		coords := make([]float64, c.Dims())
		for d := 0; d < c.Dims(); d++ {
			coords[d] = c.Coord(d)
		}
		return coords
	}
	tree := partitioning.NewBVT(indices, leafBV, centroid)
	return SphereScene[P]{entries: entries, tree: tree}
}

// Entries returns the scene's (isometry, shape) members, in construction order.
func (s SphereScene[P]) Entries() []SceneEntry[P] { return s.entries }

// Tree returns the scene's bounding-sphere-keyed BVT.
func (s SphereScene[P]) Tree() partitioning.BVT[int, bounding.BoundingSphere[P]] { return s.tree }
