package query

import (
	"github.com/mbrt/collidex/pkg/core"
	"github.com/mbrt/collidex/pkg/shape"
)

// ProjectPoint projects p (in world space) onto g, placed at m, per
// spec.md §4.6. The returned point is transformed back to world space;
// distance is isometry-invariant so DistanceToPoint below skips that step.
func ProjectPoint[P core.Point[P]](m core.Isometry[P], g shape.Shape[P], p P, solid bool) core.PointProjection[P] {
	proj := g.ProjectPoint(m.InverseTransformPoint(p), solid)
	return core.NewPointProjection(proj.IsInside, m.TransformPoint(proj.Point))
}

// ProjectPointWithFeature is ProjectPoint plus the feature (face/edge/
// vertex) the projection landed on, per spec.md §4.6. The feature is
// reported in g's own local numbering; it is not transformed by m since
// it names a discrete part of g, not a coordinate.
func ProjectPointWithFeature[P core.Point[P]](m core.Isometry[P], g shape.Shape[P], p P, solid bool) (core.PointProjection[P], core.FeatureID) {
	proj, feature := g.ProjectPointWithFeature(m.InverseTransformPoint(p), solid)
	return core.NewPointProjection(proj.IsInside, m.TransformPoint(proj.Point)), feature
}

// DistanceToPoint returns the signed (if !solid) or non-negative (if
// solid) distance from p to g, placed at m.
func DistanceToPoint[P core.Point[P]](m core.Isometry[P], g shape.Shape[P], p P, solid bool) float64 {
	return g.DistanceToPoint(m.InverseTransformPoint(p), solid)
}

// ContainsPoint reports whether p lies within g's solid interior or on its
// boundary, g placed at m.
func ContainsPoint[P core.Point[P]](m core.Isometry[P], g shape.Shape[P], p P) bool {
	return g.ContainsPoint(m.InverseTransformPoint(p))
}
