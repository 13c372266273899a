package query

import (
	"github.com/mbrt/collidex/pkg/bounding"
	"github.com/mbrt/collidex/pkg/core"
	"github.com/mbrt/collidex/pkg/partitioning"
	"github.com/mbrt/collidex/pkg/shape"
)

// RayInterferenceCandidates returns every entry index in scene whose
// bounding sphere ray may intersect within [tMin, tMax], per spec.md §8
// scenario 1's broad-phase ray-interference query over a
// bounding-sphere-backed BVT. Unlike ToiWithRay/ToiAndNormalWithRay, this
// never resolves to a single nearest hit — it's the set-valued query of
// spec.md §4.3, with exact per-shape narrowing left to the caller (e.g.
// running ToiWithRay against scene.Entries()[i] for each candidate).
func RayInterferenceCandidates[P core.Point[P]](scene shape.SphereScene[P], ray core.Ray[P], tMin, tMax float64) []int {
	collector := partitioning.NewRayInterferenceCollector[int, bounding.BoundingSphere[P]](func(bv bounding.BoundingSphere[P]) bool {
		_, hit := bv.TOIWithRay(ray, tMin, tMax, true)
		return hit
	})
	partitioning.Visit[int, bounding.BoundingSphere[P]](scene.Tree(), collector)
	return collector.Results
}
