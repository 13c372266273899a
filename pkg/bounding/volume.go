// Package bounding implements the bounding-volume algebra of spec.md §3/§4.1:
// AABB and BoundingSphere, their shared BoundingVolume capability, ray-TOI,
// and solid/non-solid point distance. Grounded on the teacher's
// pkg/core/aabb.go (slab-method Hit, Union, Center, LongestAxis, Expand),
// generalized from its hardcoded X/Y/Z switch to a Dims()/Coord(i) loop so
// the same code serves both Vec2 and Vec3, and on ncollide's aabb.rs for
// the merge/loosen/tighten contract (uniform scalar margin, panic on an
// invalid tighten).
package bounding

import "github.com/mbrt/collidex/pkg/core"

// BoundingVolume is the six-op capability contract of spec.md §4.1 that
// every bounding volume type (AABB, BoundingSphere) implements for itself.
type BoundingVolume[BV any] interface {
	Intersects(other BV) bool
	Contains(other BV) bool
	Merged(other BV) BV
	Loosened(eps float64) BV
	Tightened(eps float64) BV
}
