package shape

import (
	"math"
	"testing"

	"github.com/mbrt/collidex/pkg/core"
)

func unitXYTriangle() Triangle3 {
	return NewTriangle3(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0))
}

func TestTriangle3ToiWithRayHitsInterior(t *testing.T) {
	tri := unitXYTriangle()
	ray := core.NewRay(core.NewVec3(0.2, 0.2, -5), core.NewVec3(0, 0, 1))

	toi, hit := tri.ToiWithRay(ray, true)
	if !hit {
		t.Fatal("expected a hit")
	}
	if math.Abs(toi-5) > 1e-9 {
		t.Errorf("toi = %v, want 5", toi)
	}
}

func TestTriangle3ToiWithRayMissesOutsideEdge(t *testing.T) {
	tri := unitXYTriangle()
	ray := core.NewRay(core.NewVec3(0.9, 0.9, -5), core.NewVec3(0, 0, 1))

	if _, hit := tri.ToiWithRay(ray, true); hit {
		t.Error("expected a miss beyond the hypotenuse")
	}
}

func TestTriangle3ToiAndNormalAndUVWithRay(t *testing.T) {
	tri := unitXYTriangle()
	ray := core.NewRay(core.NewVec3(0.2, 0.3, -5), core.NewVec3(0, 0, 1))

	isect, hit := tri.ToiAndNormalAndUVWithRay(ray, true)
	if !hit {
		t.Fatal("expected a hit")
	}
	if !isect.HasUV {
		t.Fatal("expected UV data")
	}
	wantUV := core.NewVec2(0.2, 0.3)
	if got := isect.UV.Sub(wantUV).Length(); got > 1e-9 {
		t.Errorf("uv = %v, want %v", isect.UV, wantUV)
	}
	wantNormal := core.NewVec3(0, 0, -1)
	if got := isect.Normal.Sub(wantNormal).Length(); got > 1e-9 {
		t.Errorf("normal = %v, want %v (facing the incoming ray)", isect.Normal, wantNormal)
	}
}

func TestTriangle3DistanceToPointAboveCentroid(t *testing.T) {
	tri := unitXYTriangle()
	p := core.NewVec3(0.2, 0.2, 3)

	d := tri.DistanceToPoint(p, true)
	if math.Abs(d-3) > 1e-9 {
		t.Errorf("distance = %v, want 3", d)
	}
}

func TestTriangle3ProjectPointWithFeatureDiscriminatesRegions(t *testing.T) {
	tri := unitXYTriangle()

	// Beyond V0 along both edges' outward directions: clamps to the vertex.
	if _, feature := tri.ProjectPointWithFeature(core.NewVec3(-1, -1, 0), false); feature != (core.FeatureID{Kind: core.FeatureVertex, Index: 0}) {
		t.Errorf("feature = %+v, want V0", feature)
	}
	// Beyond V1 past the V0V1 edge: clamps to the vertex.
	if _, feature := tri.ProjectPointWithFeature(core.NewVec3(2, -1, 0), false); feature != (core.FeatureID{Kind: core.FeatureVertex, Index: 1}) {
		t.Errorf("feature = %+v, want V1", feature)
	}
	// Directly below the midpoint of the V0V1 edge: clamps to that edge.
	if _, feature := tri.ProjectPointWithFeature(core.NewVec3(0.5, -1, 0), false); feature != (core.FeatureID{Kind: core.FeatureEdge, Index: 0}) {
		t.Errorf("feature = %+v, want edge V0V1", feature)
	}
	// Directly above the triangle's interior: projects onto the face.
	if _, feature := tri.ProjectPointWithFeature(core.NewVec3(0.2, 0.2, 3), true); feature != (core.FeatureID{Kind: core.FeatureFace, Index: 0}) {
		t.Errorf("feature = %+v, want the face", feature)
	}
}

func TestTriangle3ContainsPointAlwaysFalseOffSurface(t *testing.T) {
	tri := unitXYTriangle()
	if tri.ContainsPoint(core.NewVec3(0.2, 0.2, 1)) {
		t.Error("expected a point off the triangle's plane to not be contained")
	}
	if !tri.ContainsPoint(core.NewVec3(0.2, 0.2, 0)) {
		t.Error("expected a point exactly on the triangle's surface to be contained")
	}
}

var _ Shape[core.Vec3] = Triangle3{}
