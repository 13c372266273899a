// Package shape implements the closed primitive-shape set of spec.md §3/§9
// (Ball, Cuboid, Plane, Capsule, Cone, Triangle, Segment) plus the two
// aggregate shapes (Compound, BaseMesh) that own a BVT over their parts.
// Per spec.md §9's design note, open-set trait-object dispatch is
// replaced by a single closed Go interface plus two generic type
// parameters (P for 2D/3D, the element kind for meshes) rather than a
// tagged union, since Go has no sum types — this is the idiomatic
// substitute.
//
// Grounded on the teacher's pkg/geometry (sphere.go, box.go, triangle.go,
// cone.go, cylinder.go, plane.go, triangle_mesh.go), adapted from
// "absolute world-space shape with baked-in transform" to "local-space
// shape queried through a caller-supplied isometry", since spec.md's
// CompositeShape stores isometry and shape separately.
package shape

import (
	"math"

	"github.com/mbrt/collidex/pkg/bounding"
	"github.com/mbrt/collidex/pkg/core"
)

// posInf stands in for "no upper TOI bound" across the package's ray
// queries, which all operate on a half-open [0, +inf) parameter range.
var posInf = math.Inf(1)

// Shape is the dispatch interface every primitive and aggregate
// implements, corresponding to spec.md §6's "Primitive shape capability"
// and "Composite access"/"Mesh access" capabilities collapsed into one Go
// interface for ray-cast, point, and bounding purposes. Closest-points
// dispatch is handled separately (pkg/query), since spec.md treats the
// exact primitive-pair algorithm as an external collaborator.
type Shape[P core.Point[P]] interface {
	// LocalAABB returns the shape's AABB in its own local frame.
	LocalAABB() bounding.AABB[P]

	// ToiWithRay returns the ray's first time-of-impact with the shape
	// within [0, +inf), honoring the solid flag (spec.md §4.6's
	// inside/outside uniform solid-flag meaning).
	ToiWithRay(ray core.Ray[P], solid bool) (float64, bool)

	// ToiAndNormalWithRay additionally returns the outward-facing normal
	// at the hit, oriented against the ray direction, honoring the solid
	// flag exactly as ToiWithRay does.
	ToiAndNormalWithRay(ray core.Ray[P], solid bool) (core.RayIntersection[P], bool)

	// ProjectPoint implements spec.md §4.6's point-query contract.
	ProjectPoint(p P, solid bool) core.PointProjection[P]

	// DistanceToPoint returns the signed (if !solid) or non-negative (if
	// solid) distance from p to the shape, per spec.md §4.6.
	DistanceToPoint(p P, solid bool) float64

	// ContainsPoint reports whether p lies within the shape's solid
	// interior or on its boundary.
	ContainsPoint(p P) bool

	// ProjectPointWithFeature is ProjectPoint plus spec.md §4.6's feature
	// discriminator, naming which face/edge/vertex the projection landed
	// on. Shapes with no discrete boundary features (Ball, Capsule, Cone)
	// always report core.FeatureUnknown; Cuboid and Triangle3 discriminate
	// their faces/edges/vertices.
	ProjectPointWithFeature(p P, solid bool) (core.PointProjection[P], core.FeatureID)
}

// UVRayCaster is implemented by shapes that can additionally interpolate
// UV coordinates (and, where per-vertex normals exist, shading normals)
// at a ray hit. Triangle3 and BaseMesh implement this (a BaseMesh whose
// element kind does not, such as a Polyline, falls back to the plain
// normal path); Compound deliberately never does, preserving the ray_compound.rs
// asymmetry documented in SPEC_FULL.md §5.
type UVRayCaster[P core.Point[P]] interface {
	ToiAndNormalAndUVWithRay(ray core.Ray[P], solid bool) (core.RayIntersection[P], bool)
}
