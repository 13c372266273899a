package shape

import (
	"math"
	"testing"

	"github.com/mbrt/collidex/pkg/core"
)

func unitQuadMesh() TriMesh {
	vertices := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(1, 1, 0),
		core.NewVec3(0, 1, 0),
	}
	indices := [][3]int{{0, 1, 2}, {0, 2, 3}}
	uvs := []core.Vec2{
		core.NewVec2(0, 0),
		core.NewVec2(1, 0),
		core.NewVec2(1, 1),
		core.NewVec2(0, 1),
	}
	return NewTriMesh(vertices, indices, nil, uvs)
}

func TestTriMeshConstructorPanicsOnBadIndex(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on an out-of-bounds vertex index")
		}
	}()
	vertices := []core.Vec3{core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)}
	NewTriMesh(vertices, [][3]int{{0, 1, 5}}, nil, nil)
}

func TestTriMeshConstructorPanicsOnMismatchedUVs(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic when uvs don't cover every vertex")
		}
	}()
	vertices := []core.Vec3{core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)}
	NewTriMesh(vertices, [][3]int{{0, 1, 2}}, nil, []core.Vec2{core.NewVec2(0, 0)})
}

func TestTriMeshToiWithRayHitsNearestTriangle(t *testing.T) {
	m := unitQuadMesh()
	ray := core.NewRay(core.NewVec3(0.25, 0.25, -5), core.NewVec3(0, 0, 1))

	toi, hit := m.ToiWithRay(ray, true)
	if !hit {
		t.Fatal("expected a hit on the quad")
	}
	if math.Abs(toi-5) > 1e-9 {
		t.Errorf("toi = %v, want 5", toi)
	}
}

func TestTriMeshToiWithRayMisses(t *testing.T) {
	m := unitQuadMesh()
	ray := core.NewRay(core.NewVec3(5, 5, -5), core.NewVec3(0, 0, 1))

	if _, hit := m.ToiWithRay(ray, true); hit {
		t.Error("expected a miss well outside the quad's footprint")
	}
}

func TestTriMeshToiAndNormalAndUVWithRayInterpolates(t *testing.T) {
	m := unitQuadMesh()
	ray := core.NewRay(core.NewVec3(0.25, 0.25, -5), core.NewVec3(0, 0, 1))

	isect, hit := m.ToiAndNormalAndUVWithRay(ray, true)
	if !hit {
		t.Fatal("expected a hit")
	}
	if !isect.HasUV {
		t.Fatal("expected HasUV for a mesh carrying UV data")
	}
	wantUV := core.NewVec2(0.25, 0.25)
	if got := isect.UV.Sub(wantUV).Length(); got > 1e-9 {
		t.Errorf("interpolated uv = %v, want %v", isect.UV, wantUV)
	}
}

func TestTriMeshToiAndNormalAndUVWithRayFallsBackWithoutUVData(t *testing.T) {
	vertices := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(1, 1, 0),
		core.NewVec3(0, 1, 0),
	}
	m := NewTriMesh(vertices, [][3]int{{0, 1, 2}, {0, 2, 3}}, nil, nil)
	ray := core.NewRay(core.NewVec3(0.25, 0.25, -5), core.NewVec3(0, 0, 1))

	isect, hit := m.ToiAndNormalAndUVWithRay(ray, true)
	if !hit {
		t.Fatal("expected a hit")
	}
	if isect.HasUV {
		t.Error("expected no UV data when the mesh carries none")
	}
}

func TestTriMeshContainsPointAlwaysFalse(t *testing.T) {
	m := unitQuadMesh()
	if m.ContainsPoint(core.NewVec3(0.5, 0.5, 0)) {
		t.Error("a triangle mesh has measure-zero thickness, ContainsPoint should always be false")
	}
}

func TestTriMeshDistanceToPoint(t *testing.T) {
	m := unitQuadMesh()
	d := m.DistanceToPoint(core.NewVec3(0.5, 0.5, 3), true)
	if math.Abs(d-3) > 1e-9 {
		t.Errorf("distance = %v, want 3", d)
	}
}

func TestPolylineFallsBackWithoutUV(t *testing.T) {
	vertices := []core.Vec2{core.NewVec2(0, 0), core.NewVec2(1, 0), core.NewVec2(1, 1)}
	p := NewPolyline(vertices, [][2]int{{0, 1}, {1, 2}})

	ray := core.NewRay(core.NewVec2(0.5, -5), core.NewVec2(0, 1))
	isect, hit := p.ToiAndNormalAndUVWithRay(ray, true)
	if !hit {
		t.Fatal("expected a hit on the first segment")
	}
	if isect.HasUV {
		t.Error("a Polyline's Segment2 elements never implement UVRayCaster, expected no UV data")
	}
	if math.Abs(isect.TOI-5) > 1e-9 {
		t.Errorf("toi = %v, want 5", isect.TOI)
	}
}

func TestPolylineToiWithRayMisses(t *testing.T) {
	vertices := []core.Vec2{core.NewVec2(0, 0), core.NewVec2(1, 0)}
	p := NewPolyline(vertices, [][2]int{{0, 1}})

	ray := core.NewRay(core.NewVec2(5, -5), core.NewVec2(0, 1))
	if _, hit := p.ToiWithRay(ray, true); hit {
		t.Error("expected a miss well to the side of the segment")
	}
}

func TestBaseMeshEmptyIsEmpty(t *testing.T) {
	m := NewTriMesh(nil, nil, nil, nil)
	if !m.Tree().IsEmpty() {
		t.Error("expected an empty tree for a mesh with no elements")
	}
	if _, hit := m.ToiWithRay(core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1)), true); hit {
		t.Error("expected no hit against an empty mesh")
	}
}

var _ Shape[core.Vec3] = TriMesh{}
var _ Shape[core.Vec2] = Polyline{}
var _ UVRayCaster[core.Vec3] = TriMesh{}
