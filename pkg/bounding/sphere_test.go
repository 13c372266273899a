package bounding

import (
	"testing"

	"github.com/mbrt/collidex/pkg/core"
)

func TestBoundingSphereIntersects(t *testing.T) {
	a := NewBoundingSphere(core.NewVec3(0, 0, 0), 1)
	b := NewBoundingSphere(core.NewVec3(1.5, 0, 0), 1)
	c := NewBoundingSphere(core.NewVec3(10, 0, 0), 1)

	if !a.Intersects(b) {
		t.Error("overlapping spheres should intersect")
	}
	if a.Intersects(c) {
		t.Error("distant spheres should not intersect")
	}
}

func TestBoundingSphereContains(t *testing.T) {
	outer := NewBoundingSphere(core.NewVec3(0, 0, 0), 10)
	inner := NewBoundingSphere(core.NewVec3(1, 0, 0), 2)
	if !outer.Contains(inner) {
		t.Error("outer should contain inner")
	}
	if inner.Contains(outer) {
		t.Error("inner should not contain outer")
	}
}

func TestBoundingSphereMergedContainsBoth(t *testing.T) {
	a := NewBoundingSphere(core.NewVec3(-2, 0, 0), 1)
	b := NewBoundingSphere(core.NewVec3(3, 0, 0), 1)
	merged := a.Merged(b)

	if !merged.Contains(a) || !merged.Contains(b) {
		t.Errorf("merged sphere %v should contain both inputs", merged)
	}
}

func TestBoundingSphereMergedOneInsideOther(t *testing.T) {
	outer := NewBoundingSphere(core.NewVec3(0, 0, 0), 10)
	inner := NewBoundingSphere(core.NewVec3(1, 0, 0), 1)
	if got := outer.Merged(inner); got != outer {
		t.Errorf("merging a contained sphere should return the outer one unchanged, got %v", got)
	}
}

func TestBoundingSphereLoosenedTightened(t *testing.T) {
	s := NewBoundingSphere(core.NewVec3(0, 0, 0), 2)
	loose := s.Loosened(1)
	if loose.Radius != 3 {
		t.Errorf("Loosened radius = %v, want 3", loose.Radius)
	}
	tight := loose.Tightened(1)
	if tight != s {
		t.Errorf("Loosened then Tightened should round-trip: got %v, want %v", tight, s)
	}
}

func TestBoundingSphereTightenedPanicsWhenExceedingRadius(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic when tighten margin exceeds radius")
		}
	}()
	NewBoundingSphere(core.NewVec3(0, 0, 0), 1).Tightened(5)
}

func TestBoundingSphereRayTOI(t *testing.T) {
	s := NewBoundingSphere(core.NewVec3(0, 0, 0), 1)
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	toi, hit := s.RayTOI(ray, 0, 1000)
	if !hit {
		t.Fatal("expected a hit")
	}
	if toi != 4 {
		t.Errorf("toi = %v, want 4", toi)
	}

	miss := core.NewRay(core.NewVec3(5, 5, -5), core.NewVec3(0, 0, 1))
	if _, hit := s.RayTOI(miss, 0, 1000); hit {
		t.Error("expected no hit for a ray that misses the sphere")
	}
}

func TestBoundingSphereTOIWithRaySolidFlag(t *testing.T) {
	s := NewBoundingSphere(core.NewVec3(0, 0, 0), 1)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	toi, hit := s.TOIWithRay(ray, 0, 1000, true)
	if !hit || toi != 0 {
		t.Errorf("solid TOI from inside = (%v, %v), want (0, true)", toi, hit)
	}

	toi, hit = s.TOIWithRay(ray, 0, 1000, false)
	if !hit || toi != 1 {
		t.Errorf("non-solid TOI from inside = (%v, %v), want (1, true) (the exit boundary)", toi, hit)
	}
}

func TestBoundingSphereDistanceToPointSolid(t *testing.T) {
	s := NewBoundingSphere(core.NewVec3(0, 0, 0), 1)

	if d, inside := s.DistanceToPointSolid(core.NewVec3(0, 0, 0), true); d != 0 || !inside {
		t.Errorf("solid interior = (%v, %v), want (0, true)", d, inside)
	}
	if d, inside := s.DistanceToPointSolid(core.NewVec3(0, 0, 0), false); d != -1 || !inside {
		t.Errorf("non-solid interior = (%v, %v), want (-1, true)", d, inside)
	}
	if d, inside := s.DistanceToPointSolid(core.NewVec3(3, 0, 0), true); d != 2 || inside {
		t.Errorf("exterior = (%v, %v), want (2, false)", d, inside)
	}
}

func TestNewBoundingSpherePanicsOnNegativeRadius(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on negative radius")
		}
	}()
	NewBoundingSphere(core.NewVec3(0, 0, 0), -1)
}
