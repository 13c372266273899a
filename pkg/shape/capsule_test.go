package shape

import (
	"math"
	"testing"

	"github.com/mbrt/collidex/pkg/core"
)

func TestCapsuleContainsPoint(t *testing.T) {
	c := NewCapsule(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), 0.5)

	if !c.ContainsPoint(core.NewVec3(0, 0, 0)) {
		t.Error("expected capsule axis midpoint to be contained")
	}
	if !c.ContainsPoint(core.NewVec3(0, 2, 0)) {
		t.Error("expected point near the cap to be contained")
	}
	if c.ContainsPoint(core.NewVec3(1, 0, 0)) {
		t.Error("expected point beyond the radius to be excluded")
	}
}

func TestCapsuleDistanceToPoint(t *testing.T) {
	c := NewCapsule(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), 0.5)
	if d := c.DistanceToPoint(core.NewVec3(2, 0, 0), true); math.Abs(d-1.5) > 1e-9 {
		t.Errorf("distance = %v, want 1.5", d)
	}
}

func TestCapsuleRayPerpendicularToAxisHitsBody(t *testing.T) {
	c := NewCapsule(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), 0.5)
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))

	toi, hit := c.ToiWithRay(ray, true)
	if !hit {
		t.Fatal("expected a hit")
	}
	if math.Abs(toi-4.5) > 1e-9 {
		t.Errorf("toi = %v, want 4.5", toi)
	}
}

func TestCapsuleDegenerateToBall(t *testing.T) {
	c := NewCapsule(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 0), 1)
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	toi, hit := c.ToiWithRay(ray, true)
	if !hit || math.Abs(toi-4) > 1e-9 {
		t.Errorf("degenerate capsule TOI = (%v,%v), want (4,true)", toi, hit)
	}
}
