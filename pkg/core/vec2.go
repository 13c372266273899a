package core

import (
	"fmt"
	"math"
)

// Vec2 represents a 2D point or vector.
type Vec2 struct {
	X, Y float64
}

// NewVec2 creates a new Vec2.
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) String() string {
	return fmt.Sprintf("{%.3g, %.3g}", v.X, v.Y)
}

// Add returns the sum of two Vec2 values.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns the difference of two Vec2 values.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns the Vec2 scaled by a scalar.
func (v Vec2) Scale(scalar float64) Vec2 {
	return Vec2{v.X * scalar, v.Y * scalar}
}

// Multiply is an alias for Scale kept for readability at UV-interpolation
// call sites ported from the teacher's Vec2.Multiply.
func (v Vec2) Multiply(scalar float64) Vec2 { return v.Scale(scalar) }

// Negate returns the negative of the vector.
func (v Vec2) Negate() Vec2 {
	return Vec2{-v.X, -v.Y}
}

// Length returns the magnitude of the vector.
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LengthSquared returns the squared magnitude of the vector.
func (v Vec2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Dot returns the dot product of two vectors.
func (v Vec2) Dot(other Vec2) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Perp returns the vector rotated 90 degrees counter-clockwise, the 2D
// stand-in for Vec3.Cross (used to get a 2D face normal from an edge).
func (v Vec2) Perp() Vec2 {
	return Vec2{-v.Y, v.X}
}

// Normalize returns a unit vector in the same direction, or the zero
// vector if the receiver has zero length.
func (v Vec2) Normalize() Vec2 {
	length := v.Length()
	if length == 0 {
		return Vec2{}
	}
	return Vec2{v.X / length, v.Y / length}
}

// IsZero returns true if the vector is exactly the zero vector.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Dims implements Point[Vec2].
func (v Vec2) Dims() int { return 2 }

// Coord implements Point[Vec2].
func (v Vec2) Coord(i int) float64 {
	if i == 0 {
		return v.X
	}
	return v.Y
}

// Splat implements Point[Vec2]; the receiver is ignored.
func (Vec2) Splat(val float64) Vec2 { return Vec2{val, val} }

// WithCoord implements Point[Vec2].
func (v Vec2) WithCoord(i int, val float64) Vec2 {
	if i == 0 {
		v.X = val
	} else {
		v.Y = val
	}
	return v
}

// MinElem implements Point[Vec2].
func (v Vec2) MinElem(other Vec2) Vec2 {
	return Vec2{math.Min(v.X, other.X), math.Min(v.Y, other.Y)}
}

// MaxElem implements Point[Vec2].
func (v Vec2) MaxElem(other Vec2) Vec2 {
	return Vec2{math.Max(v.X, other.X), math.Max(v.Y, other.Y)}
}

var _ Point[Vec2] = Vec2{}
