package shape

import (
	"math"
	"testing"

	"github.com/mbrt/collidex/pkg/core"
)

func TestNewBallPanicsOnNegativeRadius(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on negative radius")
		}
	}()
	NewBall[core.Vec3](-1)
}

func TestBallToiWithRayFromOutside(t *testing.T) {
	b := NewBall[core.Vec3](1)
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))

	toi, hit := b.ToiWithRay(ray, true)
	if !hit {
		t.Fatal("expected a hit")
	}
	if math.Abs(toi-4) > 1e-9 {
		t.Errorf("toi = %v, want 4", toi)
	}
}

func TestBallToiWithRaySolidFlagFromInside(t *testing.T) {
	b := NewBall[core.Vec3](1)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	if toi, hit := b.ToiWithRay(ray, true); !hit || toi != 0 {
		t.Errorf("solid toi from inside = (%v, %v), want (0, true)", toi, hit)
	}
	if toi, hit := b.ToiWithRay(ray, false); !hit || math.Abs(toi-1) > 1e-9 {
		t.Errorf("non-solid toi from inside = (%v, %v), want (1, true)", toi, hit)
	}
}

func TestBallToiWithRayMisses(t *testing.T) {
	b := NewBall[core.Vec3](1)
	ray := core.NewRay(core.NewVec3(5, 5, -5), core.NewVec3(0, 0, 1))

	if _, hit := b.ToiWithRay(ray, true); hit {
		t.Error("expected a miss")
	}
}

func TestBallToiAndNormalWithRay(t *testing.T) {
	b := NewBall[core.Vec3](1)
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))

	isect, hit := b.ToiAndNormalWithRay(ray, true)
	if !hit {
		t.Fatal("expected a hit")
	}
	want := core.NewVec3(0, 0, -1)
	if got := isect.Normal.Sub(want).Length(); got > 1e-9 {
		t.Errorf("normal = %v, want %v", isect.Normal, want)
	}
}

func TestBallProjectPointOutside(t *testing.T) {
	b := NewBall[core.Vec3](1)
	p := core.NewVec3(3, 0, 0)

	proj := b.ProjectPoint(p, true)
	want := core.NewVec3(1, 0, 0)
	if got := proj.Point.Sub(want).Length(); got > 1e-9 {
		t.Errorf("projected point = %v, want %v", proj.Point, want)
	}
	if proj.IsInside {
		t.Error("expected a point outside the ball to not be inside")
	}
}

func TestBallDistanceToPointSolidFlag(t *testing.T) {
	b := NewBall[core.Vec3](2)
	origin := core.NewVec3(0, 0, 0)

	if d := b.DistanceToPoint(origin, true); d != 0 {
		t.Errorf("solid distance at center = %v, want 0", d)
	}
	if d := b.DistanceToPoint(origin, false); d != -2 {
		t.Errorf("non-solid distance at center = %v, want -2", d)
	}
}

func TestBallContainsPoint(t *testing.T) {
	b := NewBall[core.Vec2](1)
	if !b.ContainsPoint(core.NewVec2(0.5, 0)) {
		t.Error("expected an interior point to be contained")
	}
	if b.ContainsPoint(core.NewVec2(2, 0)) {
		t.Error("expected an exterior point to not be contained")
	}
}

var _ Shape[core.Vec2] = Ball[core.Vec2]{}
var _ Shape[core.Vec3] = Ball[core.Vec3]{}
