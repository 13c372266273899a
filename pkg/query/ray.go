// Package query implements spec.md §4.4–§4.6's top-level dispatch: the
// outer-isometry transform wrapping every shape.Shape[P] query, the ray-cast
// UV variant, point-query convenience wrappers, and the closest-points
// algorithm between a composite shape (or mesh) and any other shape.
// Grounded on spec.md §4.4's three-step dataflow (transform ray into local
// frame, run the query, post-rotate the result) plus ncollide's top-level
// query::ray_internal/toi_and_normal_with_ray free functions, which do
// exactly this placement-transform wrapping around a Shape trait object.
package query

import (
	"github.com/mbrt/collidex/pkg/core"
	"github.com/mbrt/collidex/pkg/shape"
)

// localRay transforms ray into the local frame of a shape placed at m.
func localRay[P core.Point[P]](ray core.Ray[P], m core.Isometry[P]) core.Ray[P] {
	return core.NewRay(m.InverseTransformPoint(ray.Origin), m.InverseRotateVector(ray.Direction))
}

// ToiWithRay returns the ray's first time-of-impact with g, placed at m,
// per spec.md §4.4 step 1.
func ToiWithRay[P core.Point[P]](m core.Isometry[P], g shape.Shape[P], ray core.Ray[P], solid bool) (float64, bool) {
	return g.ToiWithRay(localRay(ray, m), solid)
}

// ToiAndNormalWithRay additionally returns the world-space outward normal,
// post-rotating the shape's local-frame normal by m per spec.md §4.4 step 3,
// honoring the solid flag exactly as ToiWithRay does.
func ToiAndNormalWithRay[P core.Point[P]](m core.Isometry[P], g shape.Shape[P], ray core.Ray[P], solid bool) (core.RayIntersection[P], bool) {
	isect, hit := g.ToiAndNormalWithRay(localRay(ray, m), solid)
	if !hit {
		return core.RayIntersection[P]{}, false
	}
	return core.NewRayIntersection(isect.TOI, m.RotateVector(isect.Normal)), true
}

// ToiAndNormalAndUVWithRay implements spec.md §4.4 step 4: when g supports
// shape.UVRayCaster[P] (a 3D TriMesh), the reported UV/shading-normal
// interpolation happens inside g itself; this wrapper only applies the
// outer placement transform. Falls back to ToiAndNormalWithRay — with
// HasUV left false — when g doesn't implement shape.UVRayCaster[P] at all
// (every primitive except Triangle3, and Compound by its documented ray_compound.rs
// asymmetry).
func ToiAndNormalAndUVWithRay[P core.Point[P]](m core.Isometry[P], g shape.Shape[P], ray core.Ray[P], solid bool) (core.RayIntersection[P], bool) {
	caster, ok := any(g).(shape.UVRayCaster[P])
	if !ok {
		return ToiAndNormalWithRay(m, g, ray, solid)
	}
	isect, hit := caster.ToiAndNormalAndUVWithRay(localRay(ray, m), solid)
	if !hit {
		return core.RayIntersection[P]{}, false
	}
	worldNormal := m.RotateVector(isect.Normal)
	if !isect.HasUV {
		return core.NewRayIntersection(isect.TOI, worldNormal), true
	}
	return core.NewRayIntersectionWithUV(isect.TOI, worldNormal, isect.UV), true
}
