package core

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// Isometry is a rigid transform over point type S: rotation plus
// translation, with no scaling or shear. It is the generic "M" of
// spec.md §3/§6 — Isometry2 backs Vec2, Isometry3 backs Vec3.
type Isometry[S any] interface {
	TransformPoint(S) S
	InverseTransformPoint(S) S
	RotateVector(S) S
	InverseRotateVector(S) S
	Inverse() Isometry[S]
	// Compose returns the isometry equivalent to applying the receiver
	// first, then other (other.TransformPoint(receiver.TransformPoint(p))).
	Compose(other Isometry[S]) Isometry[S]
}

// Isometry3 is a rigid transform of 3D space: a unit quaternion rotation
// followed by a translation.
type Isometry3 struct {
	Translation Vec3
	Rotation    quat.Number
}

// NewIsometry3 builds an Isometry3 from a translation and a rotation
// quaternion, normalizing the quaternion so Inverse can use the
// conjugate shortcut.
func NewIsometry3(translation Vec3, rotation quat.Number) Isometry3 {
	return Isometry3{Translation: translation, Rotation: normalizeQuat(rotation)}
}

// IdentityIsometry3 returns the identity rigid transform.
func IdentityIsometry3() Isometry3 {
	return Isometry3{Rotation: quat.Number{Real: 1}}
}

// NewIsometry3FromAxisAngle builds an Isometry3 that rotates by angle
// radians around axis (need not be normalized) before translating.
func NewIsometry3FromAxisAngle(translation Vec3, axis Vec3, angle float64) Isometry3 {
	return NewIsometry3(translation, quatFromAxisAngle(axis, angle))
}

func normalizeQuat(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n == 0 {
		return quat.Number{Real: 1}
	}
	return quat.Scale(1/n, q)
}

func quatFromAxisAngle(axis Vec3, angle float64) quat.Number {
	axis = axis.Normalize()
	if axis.IsZero() {
		return quat.Number{Real: 1}
	}
	half := angle / 2
	s := math.Sin(half)
	return quat.Number{Real: math.Cos(half), Imag: axis.X * s, Jmag: axis.Y * s, Kmag: axis.Z * s}
}

// RotateVector rotates v by the isometry's rotation, ignoring translation.
func (m Isometry3) RotateVector(v Vec3) Vec3 {
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	r := quat.Mul(quat.Mul(m.Rotation, p), quat.Conj(m.Rotation))
	return Vec3{r.Imag, r.Jmag, r.Kmag}
}

// InverseRotateVector rotates v by the inverse of the isometry's rotation.
func (m Isometry3) InverseRotateVector(v Vec3) Vec3 {
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	inv := quat.Conj(m.Rotation)
	r := quat.Mul(quat.Mul(inv, p), m.Rotation)
	return Vec3{r.Imag, r.Jmag, r.Kmag}
}

// TransformPoint maps a point from the isometry's local frame to world space.
func (m Isometry3) TransformPoint(p Vec3) Vec3 {
	return m.RotateVector(p).Add(m.Translation)
}

// InverseTransformPoint maps a point from world space into the isometry's
// local frame.
func (m Isometry3) InverseTransformPoint(p Vec3) Vec3 {
	return m.InverseRotateVector(p.Sub(m.Translation))
}

// Inverse returns the isometry that undoes m.
func (m Isometry3) Inverse() Isometry[Vec3] {
	inv := quat.Conj(m.Rotation)
	p := quat.Number{Imag: m.Translation.X, Jmag: m.Translation.Y, Kmag: m.Translation.Z}
	r := quat.Mul(quat.Mul(inv, p), m.Rotation)
	return Isometry3{Translation: Vec3{-r.Imag, -r.Jmag, -r.Kmag}, Rotation: inv}
}

// Compose returns the isometry equivalent to applying m first, then other.
func (m Isometry3) Compose(other Isometry[Vec3]) Isometry[Vec3] {
	o := other.(Isometry3)
	return Isometry3{
		Translation: o.RotateVector(m.Translation).Add(o.Translation),
		Rotation:    normalizeQuat(quat.Mul(o.Rotation, m.Rotation)),
	}
}

var _ Isometry[Vec3] = Isometry3{}

// Isometry2 is a rigid transform of 2D space: a rotation by a single angle
// (stored as cos/sin to avoid recomputing trig on every use) followed by
// a translation.
type Isometry2 struct {
	Translation Vec2
	Cos, Sin    float64
}

// NewIsometry2 builds an Isometry2 that rotates by angle radians before translating.
func NewIsometry2(translation Vec2, angle float64) Isometry2 {
	return Isometry2{Translation: translation, Cos: math.Cos(angle), Sin: math.Sin(angle)}
}

// IdentityIsometry2 returns the identity rigid transform.
func IdentityIsometry2() Isometry2 {
	return Isometry2{Cos: 1}
}

// RotateVector rotates v by the isometry's rotation, ignoring translation.
func (m Isometry2) RotateVector(v Vec2) Vec2 {
	return Vec2{v.X*m.Cos - v.Y*m.Sin, v.X*m.Sin + v.Y*m.Cos}
}

// InverseRotateVector rotates v by the inverse of the isometry's rotation.
func (m Isometry2) InverseRotateVector(v Vec2) Vec2 {
	return Vec2{v.X*m.Cos + v.Y*m.Sin, -v.X*m.Sin + v.Y*m.Cos}
}

// TransformPoint maps a point from the isometry's local frame to world space.
func (m Isometry2) TransformPoint(p Vec2) Vec2 {
	return m.RotateVector(p).Add(m.Translation)
}

// InverseTransformPoint maps a point from world space into the isometry's
// local frame.
func (m Isometry2) InverseTransformPoint(p Vec2) Vec2 {
	return m.InverseRotateVector(p.Sub(m.Translation))
}

// Inverse returns the isometry that undoes m.
func (m Isometry2) Inverse() Isometry[Vec2] {
	inv := Isometry2{Cos: m.Cos, Sin: -m.Sin}
	inv.Translation = inv.RotateVector(m.Translation).Negate()
	return inv
}

// Compose returns the isometry equivalent to applying m first, then other.
func (m Isometry2) Compose(other Isometry[Vec2]) Isometry[Vec2] {
	o := other.(Isometry2)
	return Isometry2{
		Translation: o.RotateVector(m.Translation).Add(o.Translation),
		Cos:         m.Cos*o.Cos - m.Sin*o.Sin,
		Sin:         m.Sin*o.Cos + m.Cos*o.Sin,
	}
}

var _ Isometry[Vec2] = Isometry2{}
