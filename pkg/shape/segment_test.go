package shape

import (
	"math"
	"testing"

	"github.com/mbrt/collidex/pkg/core"
)

func TestSegment2ToiWithRayHits(t *testing.T) {
	s := NewSegment2(core.NewVec2(-1, 0), core.NewVec2(1, 0))
	ray := core.NewRay(core.NewVec2(0, -5), core.NewVec2(0, 1))

	toi, hit := s.ToiWithRay(ray, true)
	if !hit {
		t.Fatal("expected a hit")
	}
	if math.Abs(toi-5) > 1e-9 {
		t.Errorf("toi = %v, want 5", toi)
	}
}

func TestSegment2ToiWithRayMissesBeyondEndpoint(t *testing.T) {
	s := NewSegment2(core.NewVec2(-1, 0), core.NewVec2(1, 0))
	ray := core.NewRay(core.NewVec2(2, -5), core.NewVec2(0, 1))

	if _, hit := s.ToiWithRay(ray, true); hit {
		t.Error("expected a miss beyond the segment's endpoint")
	}
}

func TestSegment2ToiWithRayMissesParallel(t *testing.T) {
	s := NewSegment2(core.NewVec2(-1, 0), core.NewVec2(1, 0))
	ray := core.NewRay(core.NewVec2(-5, 0), core.NewVec2(1, 0))

	if _, hit := s.ToiWithRay(ray, true); hit {
		t.Error("expected a miss for a ray collinear with the segment")
	}
}

func TestSegment2ToiAndNormalWithRay(t *testing.T) {
	s := NewSegment2(core.NewVec2(-1, 0), core.NewVec2(1, 0))
	ray := core.NewRay(core.NewVec2(0, -5), core.NewVec2(0, 1))

	isect, hit := s.ToiAndNormalWithRay(ray, true)
	if !hit {
		t.Fatal("expected a hit")
	}
	want := core.NewVec2(0, -1)
	if got := isect.Normal.Sub(want).Length(); got > 1e-9 {
		t.Errorf("normal = %v, want %v (facing the incoming ray)", isect.Normal, want)
	}
}

func TestSegment2DistanceToPointClampsToEndpoint(t *testing.T) {
	s := NewSegment2(core.NewVec2(-1, 0), core.NewVec2(1, 0))
	p := core.NewVec2(3, 0)

	d := s.DistanceToPoint(p, true)
	if math.Abs(d-2) > 1e-9 {
		t.Errorf("distance = %v, want 2 (clamped to the endpoint at x=1)", d)
	}
}

func TestSegment2ContainsPoint(t *testing.T) {
	s := NewSegment2(core.NewVec2(-1, 0), core.NewVec2(1, 0))
	if !s.ContainsPoint(core.NewVec2(0, 0)) {
		t.Error("expected a point on the segment to be contained")
	}
	if s.ContainsPoint(core.NewVec2(0, 1)) {
		t.Error("expected a point off the segment to not be contained")
	}
}

var _ Shape[core.Vec2] = Segment2{}
