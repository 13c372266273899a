package core

// Ray represents a ray with an origin and direction. The direction is not
// required to be unit length; TOI arithmetic is expressed in multiples of
// the direction vector, matching the teacher's Ray.At convention.
type Ray[P Point[P]] struct {
	Origin    P
	Direction P
}

// NewRay creates a new ray.
func NewRay[P Point[P]](origin, direction P) Ray[P] {
	return Ray[P]{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray.
func (r Ray[P]) At(t float64) P {
	return r.Origin.Add(r.Direction.Scale(t))
}

// RayIntersection is the result of a ray-cast against a shape: a
// non-negative time-of-impact, the outward normal at the hit (oriented
// against the ray's direction), and optional UV coordinates.
type RayIntersection[P Point[P]] struct {
	TOI    float64
	Normal P
	HasUV  bool
	UV     Vec2
}

// NewRayIntersection creates a RayIntersection with no UV data.
func NewRayIntersection[P Point[P]](toi float64, normal P) RayIntersection[P] {
	return RayIntersection[P]{TOI: toi, Normal: normal}
}

// NewRayIntersectionWithUV creates a RayIntersection carrying UV coordinates.
func NewRayIntersectionWithUV[P Point[P]](toi float64, normal P, uv Vec2) RayIntersection[P] {
	return RayIntersection[P]{TOI: toi, Normal: normal, HasUV: true, UV: uv}
}

// SetFaceNormal orients normal against the ray direction, mirroring the
// teacher's HitRecord.SetFaceNormal.
func SetFaceNormal[P Point[P]](ray Ray[P], outwardNormal P) (normal P, frontFace bool) {
	frontFace = ray.Direction.Dot(outwardNormal) < 0
	if frontFace {
		return outwardNormal, true
	}
	return outwardNormal.Scale(-1), false
}

// PointProjection is the result of projecting a point onto a shape's
// boundary: whether the input point was inside, and the projected point
// (equal to the input when inside a solid query).
type PointProjection[P Point[P]] struct {
	IsInside bool
	Point    P
}

// NewPointProjection creates a PointProjection.
func NewPointProjection[P Point[P]](isInside bool, point P) PointProjection[P] {
	return PointProjection[P]{IsInside: isInside, Point: point}
}

// FeatureID discriminates which geometric feature (face/edge/vertex) a
// projection lies on.
type FeatureID struct {
	Kind  FeatureKind
	Index int
}

// FeatureKind enumerates the kinds of feature a FeatureID can name.
type FeatureKind int

const (
	FeatureUnknown FeatureKind = iota
	FeatureVertex
	FeatureEdge
	FeatureFace
)

// ClosestPointsStatus tags the three possible outcomes of a closest-points
// query.
type ClosestPointsStatus int

const (
	// Intersecting means the shapes overlap; no witness points are reported.
	Intersecting ClosestPointsStatus = iota
	// WithinMargin means the shapes are separated but within the caller's margin.
	WithinMargin
	// Disjoint means the separation exceeds the margin; witness points are not reported.
	Disjoint
)

// ClosestPoints is the tagged result of a closest-points query between two
// shapes, per spec.md §3.
type ClosestPoints[P Point[P]] struct {
	Status ClosestPointsStatus
	Point1 P
	Point2 P
}

// NewIntersecting builds an Intersecting result.
func NewIntersecting[P Point[P]]() ClosestPoints[P] {
	return ClosestPoints[P]{Status: Intersecting}
}

// NewWithinMargin builds a WithinMargin result with witness points p1, p2.
func NewWithinMargin[P Point[P]](p1, p2 P) ClosestPoints[P] {
	return ClosestPoints[P]{Status: WithinMargin, Point1: p1, Point2: p2}
}

// NewDisjoint builds a Disjoint result.
func NewDisjoint[P Point[P]]() ClosestPoints[P] {
	return ClosestPoints[P]{Status: Disjoint}
}

// Flip swaps the witness point order, used when a query is computed in
// reverse (g2 against g1) and reported as g1 against g2, mirroring
// ncollide's ClosestPoints::flip used by shape_against_composite_shape.
func (c ClosestPoints[P]) Flip() ClosestPoints[P] {
	if c.Status == WithinMargin {
		return ClosestPoints[P]{Status: WithinMargin, Point1: c.Point2, Point2: c.Point1}
	}
	return c
}

// Distance returns the Euclidean distance between the two witness points.
// Only meaningful when Status == WithinMargin.
func (c ClosestPoints[P]) Distance() float64 {
	return c.Point1.Sub(c.Point2).Length()
}
