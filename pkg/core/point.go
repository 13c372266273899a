// Package core provides the dimension-generic vector/point algebra, rays,
// and rigid isometries that the rest of this module builds on.
package core

// Point is the algebra every dimension-generic type in this module needs
// from its coordinate type: component access, the usual vector ops, and
// the per-component min/max used by AABB merge/loosen.
//
// Vec2 and Vec3 both satisfy Point for themselves (Point[Vec2], Point[Vec3]),
// which is what lets pkg/bounding and pkg/partitioning be written once and
// instantiated at either dimension, mirroring how ncollide2d/ncollide3d
// are both generated from one generic source.
type Point[S any] interface {
	// Dims returns the number of components (2 or 3).
	Dims() int
	// Coord returns the i-th component.
	Coord(i int) float64
	Add(S) S
	Sub(S) S
	Scale(float64) S
	// Splat returns a vector with every component set to v. The receiver's
	// own value is ignored; it exists only to select S.
	Splat(v float64) S
	// WithCoord returns a copy of the receiver with component i replaced by v.
	WithCoord(i int, v float64) S
	// MinElem/MaxElem return the component-wise min/max of the receiver and other.
	MinElem(other S) S
	MaxElem(other S) S
	Dot(other S) float64
	Length() float64
	Normalize() S
	IsZero() bool
}
