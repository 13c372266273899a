package query

import (
	"math"
	"testing"

	"github.com/mbrt/collidex/pkg/core"
	"github.com/mbrt/collidex/pkg/shape"
)

func TestToiWithRayAppliesOuterIsometry(t *testing.T) {
	ball := shape.NewBall[core.Vec3](1)
	m := core.NewIsometry3(core.NewVec3(3, 0, 0), core.IdentityIsometry3().Rotation)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))

	toi, hit := ToiWithRay[core.Vec3](m, ball, ray, true)
	if !hit {
		t.Fatal("expected a hit on the placed ball")
	}
	if math.Abs(toi-2) > 1e-9 {
		t.Errorf("toi = %v, want 2 (ball surface at x=2)", toi)
	}
}

func TestToiWithRayRoundTripsUnderIsometry(t *testing.T) {
	// spec.md §8 testable property: toi(m, g, R) == toi(Id, g, m^-1*R).
	ball := shape.NewBall[core.Vec3](1)
	m := core.NewIsometry3FromAxisAngle(core.NewVec3(3, 1, -2), core.NewVec3(0, 1, 0), math.Pi/4)
	ray := core.NewRay(core.NewVec3(-5, 1, -2), core.NewVec3(1, 0, 0))

	worldTOI, worldHit := ToiWithRay[core.Vec3](m, ball, ray, true)

	lsRay := core.NewRay(m.InverseTransformPoint(ray.Origin), m.InverseRotateVector(ray.Direction))
	localTOI, localHit := ToiWithRay[core.Vec3](core.IdentityIsometry3(), ball, lsRay, true)

	if worldHit != localHit {
		t.Fatalf("hit = %v, want %v", worldHit, localHit)
	}
	if math.Abs(worldTOI-localTOI) > 1e-9 {
		t.Errorf("toi = %v, want %v", worldTOI, localTOI)
	}
}

func TestToiAndNormalWithRayPostRotatesNormal(t *testing.T) {
	cuboid := shape.NewCuboid(core.NewVec3(1, 1, 1))
	m := core.NewIsometry3FromAxisAngle(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), math.Pi/2)
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))

	isect, hit := ToiAndNormalWithRay[core.Vec3](m, cuboid, ray, true)
	if !hit {
		t.Fatal("expected a hit")
	}
	// In the cuboid's local frame the ray hits the +X face; a 90deg
	// rotation about Y turns that normal into the world -Z direction,
	// facing back along the ray.
	want := core.NewVec3(0, 0, -1)
	if d := isect.Normal.Sub(want).Length(); d > 1e-9 {
		t.Errorf("normal = %v, want %v", isect.Normal, want)
	}
}

func TestToiAndNormalAndUVWithRayInterpolatesUV(t *testing.T) {
	// spec.md §8 scenario 5: triangle UVs (0,0),(1,0),(0,1), ray hitting
	// barycentric (1/3,1/3,1/3) -> interpolated UV (1/3,1/3).
	mesh := shape.NewTriMesh(
		[]core.Vec3{
			core.NewVec3(0, 0, 0),
			core.NewVec3(1, 0, 0),
			core.NewVec3(0, 1, 0),
		},
		[][3]int{{0, 1, 2}},
		nil,
		[]core.Vec2{core.NewVec2(0, 0), core.NewVec2(1, 0), core.NewVec2(0, 1)},
	)
	ray := core.NewRay(core.NewVec3(1.0/3, 1.0/3, 1), core.NewVec3(0, 0, -1))

	isect, hit := ToiAndNormalAndUVWithRay[core.Vec3](core.IdentityIsometry3(), mesh, ray, true)
	if !hit {
		t.Fatal("expected a hit")
	}
	if !isect.HasUV {
		t.Fatal("expected UV data on a mesh that carries UVs")
	}
	wantUV := core.NewVec2(1.0/3, 1.0/3)
	if d := isect.UV.Sub(wantUV).Length(); d > 1e-9 {
		t.Errorf("uv = %v, want %v", isect.UV, wantUV)
	}
}

func TestToiAndNormalAndUVWithRayFallsBackWithoutUVRayCaster(t *testing.T) {
	// Compound never implements UVRayCaster (spec.md §9's preserved
	// asymmetry); the wrapper must fall back to the plain normal path.
	ball := shape.NewBall[core.Vec3](1)
	c := shape.NewCompound([]shape.CompoundPart[core.Vec3]{
		{Isometry: core.IdentityIsometry3(), Shape: ball},
	})
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))

	isect, hit := ToiAndNormalAndUVWithRay[core.Vec3](core.IdentityIsometry3(), c, ray, true)
	if !hit {
		t.Fatal("expected a hit")
	}
	if isect.HasUV {
		t.Error("expected no UV data for a Compound")
	}
}

func TestToiWithRayMiss(t *testing.T) {
	// spec.md §8 scenario 6: ray-cast against a BVT-backed mesh with no
	// element on the ray path returns "no hit".
	mesh := shape.NewTriMesh(
		[]core.Vec3{
			core.NewVec3(0, 0, 0),
			core.NewVec3(1, 0, 0),
			core.NewVec3(0, 1, 0),
		},
		[][3]int{{0, 1, 2}},
		nil, nil,
	)
	ray := core.NewRay(core.NewVec3(10, 10, 10), core.NewVec3(1, 0, 0))

	if _, hit := ToiWithRay[core.Vec3](core.IdentityIsometry3(), mesh, ray, true); hit {
		t.Error("expected a miss")
	}
}
