package bounding

import (
	"math"

	"github.com/mbrt/collidex/pkg/core"
)

// AABB is an axis-aligned bounding box over point type P, generic over
// dimension via core.Point's Dims/Coord. Mirrors the teacher's AABB{Min,
// Max Vec3} but with the per-axis switch replaced by a loop so Vec2 and
// Vec3 share one implementation, per ncollide's aabb.rs.
type AABB[P core.Point[P]] struct {
	Min P
	Max P
}

// NewAABB builds an AABB from its min and max corners. min must be
// component-wise <= max; callers that can't guarantee this should build
// from points instead.
func NewAABB[P core.Point[P]](min, max P) AABB[P] {
	for i := 0; i < min.Dims(); i++ {
		if min.Coord(i) > max.Coord(i) {
			panic("bounding: AABB min must be <= max on every axis")
		}
	}
	return AABB[P]{Min: min, Max: max}
}

// NewAABBFromPoints builds the tightest AABB enclosing a set of points.
// Panics if points is empty.
func NewAABBFromPoints[P core.Point[P]](points []P) AABB[P] {
	if len(points) == 0 {
		panic("bounding: NewAABBFromPoints requires at least one point")
	}
	min, max := points[0], points[0]
	for _, p := range points[1:] {
		min = min.MinElem(p)
		max = max.MaxElem(p)
	}
	return AABB[P]{Min: min, Max: max}
}

// Center returns the midpoint of the box.
func (b AABB[P]) Center() P {
	return b.Min.Add(b.Max).Scale(0.5)
}

// HalfExtents returns the per-axis half-widths of the box.
func (b AABB[P]) HalfExtents() P {
	return b.Max.Sub(b.Min).Scale(0.5)
}

// LongestAxis returns the index of the axis along which the box is widest.
func (b AABB[P]) LongestAxis() int {
	extent := b.Max.Sub(b.Min)
	best, bestLen := 0, extent.Coord(0)
	for i := 1; i < extent.Dims(); i++ {
		if l := extent.Coord(i); l > bestLen {
			best, bestLen = i, l
		}
	}
	return best
}

// Intersects reports whether the two boxes overlap (touching counts as
// overlapping, matching ncollide's closed-interval convention).
func (b AABB[P]) Intersects(other AABB[P]) bool {
	for i := 0; i < b.Min.Dims(); i++ {
		if b.Min.Coord(i) > other.Max.Coord(i) || other.Min.Coord(i) > b.Max.Coord(i) {
			return false
		}
	}
	return true
}

// Contains reports whether other is entirely within b.
func (b AABB[P]) Contains(other AABB[P]) bool {
	for i := 0; i < b.Min.Dims(); i++ {
		if other.Min.Coord(i) < b.Min.Coord(i) || other.Max.Coord(i) > b.Max.Coord(i) {
			return false
		}
	}
	return true
}

// ContainsPoint reports whether p lies within b (inclusive of the boundary).
func (b AABB[P]) ContainsPoint(p P) bool {
	for i := 0; i < b.Min.Dims(); i++ {
		if p.Coord(i) < b.Min.Coord(i) || p.Coord(i) > b.Max.Coord(i) {
			return false
		}
	}
	return true
}

// Merged returns the smallest AABB enclosing both b and other, mirroring
// the teacher's AABB.Union.
func (b AABB[P]) Merged(other AABB[P]) AABB[P] {
	return AABB[P]{Min: b.Min.MinElem(other.Min), Max: b.Max.MaxElem(other.Max)}
}

// Loosened returns b expanded by a uniform scalar margin on every axis, in
// both directions. Per ncollide's aabb.rs, the margin is a single scalar
// applied identically to every axis, not a per-axis vector. Panics if eps
// is negative.
func (b AABB[P]) Loosened(eps float64) AABB[P] {
	if eps < 0 {
		panic("bounding: Loosened requires a non-negative margin")
	}
	margin := b.Min.Splat(eps)
	return AABB[P]{Min: b.Min.Sub(margin), Max: b.Max.Add(margin)}
}

// Tightened returns b shrunk by a uniform scalar margin on every axis, in
// both directions. Panics if eps is negative, or if shrinking would
// produce an invalid box (min > max on some axis).
func (b AABB[P]) Tightened(eps float64) AABB[P] {
	if eps < 0 {
		panic("bounding: Tightened requires a non-negative margin")
	}
	margin := b.Min.Splat(eps)
	min := b.Min.Add(margin)
	max := b.Max.Sub(margin)
	for i := 0; i < min.Dims(); i++ {
		if min.Coord(i) > max.Coord(i) {
			panic("bounding: Tightened margin exceeds the box's half-extent")
		}
	}
	return AABB[P]{Min: min, Max: max}
}

var parallelEpsilon = 1e-8

// RayTOI returns the entry time-of-impact of ray with this box and true if
// the ray hits the box within [tMin, tMax]. Uses the slab method, the same
// algorithm as the teacher's AABB.Hit, generalized from the X/Y/Z switch to
// a per-axis loop over Dims(). Equivalent to TOIWithRay(ray, tMin, tMax,
// true) — kept as a convenience for the common solid case.
func (b AABB[P]) RayTOI(ray core.Ray[P], tMin, tMax float64) (float64, bool) {
	return b.TOIWithRay(ray, tMin, tMax, true)
}

// TOIWithRay implements spec.md §4.1's two-mode ray-TOI contract: slab
// intersection of [entry, exit] against [tMin, tMax], rejecting if
// exit < max(tMin, entry). When solid is true, a ray origin already inside
// the box reports TOI 0 (the BV-descent case — a hit happened "immediately").
// When solid is false, an inside origin instead reports the exit t, the
// ray's first boundary crossing, matching the "non-solid" distance
// semantics used across the library.
func (b AABB[P]) TOIWithRay(ray core.Ray[P], tMin, tMax float64, solid bool) (float64, bool) {
	entry, exit := tMin, tMax
	// rawEntry/rawExit are the slab bounds before clipping to [tMin, tMax];
	// rawEntry < tMin means the ray starts inside the box.
	rawEntry, rawExit := math.Inf(-1), math.Inf(1)
	for i := 0; i < b.Min.Dims(); i++ {
		origin := ray.Origin.Coord(i)
		dir := ray.Direction.Coord(i)
		if math.Abs(dir) < parallelEpsilon {
			if origin < b.Min.Coord(i) || origin > b.Max.Coord(i) {
				return 0, false
			}
			continue
		}
		invD := 1.0 / dir
		t0 := (b.Min.Coord(i) - origin) * invD
		t1 := (b.Max.Coord(i) - origin) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}
		rawEntry = math.Max(rawEntry, t0)
		rawExit = math.Min(rawExit, t1)
		if t0 > entry {
			entry = t0
		}
		if t1 < exit {
			exit = t1
		}
		if exit < entry {
			return 0, false
		}
	}
	if rawEntry < tMin {
		// Ray origin starts inside the box.
		if solid {
			return 0, true
		}
		if rawExit > tMax {
			return 0, false
		}
		return rawExit, true
	}
	return entry, true
}

// DistanceToPoint returns the Euclidean distance from p to the box
// assuming solid=true semantics: zero when p is inside, otherwise the
// distance to the nearest face. Equivalent to
// DistanceToPointSolid(p, true).
func (b AABB[P]) DistanceToPoint(p P) float64 {
	d, _ := b.DistanceToPointSolid(p, true)
	return d
}

// DistanceToPointSolid implements spec.md §4.1's point-AABB distance
// contract: a positive Euclidean distance to the nearest face when p is
// outside; when p is inside, 0 and isInside=true if solid, or a
// negative-signed distance to the nearest face and isInside=true if not.
func (b AABB[P]) DistanceToPointSolid(p P, solid bool) (distance float64, isInside bool) {
	var sum float64
	inside := true
	for i := 0; i < p.Dims(); i++ {
		c := p.Coord(i)
		lo, hi := b.Min.Coord(i), b.Max.Coord(i)
		var d float64
		if c < lo {
			d = lo - c
			inside = false
		} else if c > hi {
			d = c - hi
			inside = false
		}
		sum += d * d
	}
	dist := math.Sqrt(sum)
	if !inside {
		return dist, false
	}
	if solid {
		return 0, true
	}
	return -b.signedInteriorDistance(p), true
}

// signedInteriorDistance returns the distance from an interior point p to
// the nearest face of the box.
func (b AABB[P]) signedInteriorDistance(p P) float64 {
	best := math.Inf(1)
	for i := 0; i < p.Dims(); i++ {
		c := p.Coord(i)
		lo, hi := b.Min.Coord(i), b.Max.Coord(i)
		if d := c - lo; d < best {
			best = d
		}
		if d := hi - c; d < best {
			best = d
		}
	}
	return best
}

var (
	_ BoundingVolume[AABB[core.Vec2]] = AABB[core.Vec2]{}
	_ BoundingVolume[AABB[core.Vec3]] = AABB[core.Vec3]{}
)
