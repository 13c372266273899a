package partitioning

import "github.com/mbrt/collidex/pkg/bounding"

// bvPredicate decides whether a bounding volume might hold a match,
// shared by all three canonical collectors below.
type bvPredicate[BV any] func(BV) bool

// RayInterferenceCollector collects every leaf whose bounding volume the
// ray may intersect, per spec.md §4.3's ray-interference query. Actual
// shape-level ray casting against the collected leaves is done by the
// caller (pkg/query) — this only narrows by bounding volume.
type RayInterferenceCollector[B any, BV bounding.BoundingVolume[BV]] struct {
	hitsBV  bvPredicate[BV]
	Results []B
}

// NewRayInterferenceCollector builds a collector that narrows by hitsBV
// (typically an AABB/BoundingSphere ray-TOI test against [tMin, tMax]).
func NewRayInterferenceCollector[B any, BV bounding.BoundingVolume[BV]](hitsBV func(BV) bool) *RayInterferenceCollector[B, BV] {
	return &RayInterferenceCollector[B, BV]{hitsBV: hitsBV}
}

func (c *RayInterferenceCollector[B, BV]) VisitInternal(bv BV) VisitStatus {
	if c.hitsBV(bv) {
		return Continue
	}
	return Prune
}

func (c *RayInterferenceCollector[B, BV]) VisitLeaf(leaf B, bv BV) VisitStatus {
	if c.hitsBV(bv) {
		c.Results = append(c.Results, leaf)
	}
	return Continue
}

// BoundingVolumeInterferenceCollector collects every leaf whose bounding
// volume intersects a query bounding volume, per spec.md §4.3's
// bounding-volume-interference query (used e.g. by Compound-vs-Compound
// broad phases).
type BoundingVolumeInterferenceCollector[B any, BV bounding.BoundingVolume[BV]] struct {
	query   BV
	Results []B
}

// NewBoundingVolumeInterferenceCollector builds a collector against query.
func NewBoundingVolumeInterferenceCollector[B any, BV bounding.BoundingVolume[BV]](query BV) *BoundingVolumeInterferenceCollector[B, BV] {
	return &BoundingVolumeInterferenceCollector[B, BV]{query: query}
}

func (c *BoundingVolumeInterferenceCollector[B, BV]) VisitInternal(bv BV) VisitStatus {
	if c.query.Intersects(bv) {
		return Continue
	}
	return Prune
}

func (c *BoundingVolumeInterferenceCollector[B, BV]) VisitLeaf(leaf B, bv BV) VisitStatus {
	if c.query.Intersects(bv) {
		c.Results = append(c.Results, leaf)
	}
	return Continue
}

// PointInterferenceCollector collects every leaf whose bounding volume
// contains a query point, per spec.md §4.3's point-containment query
// (the broad phase for point-in-composite-shape tests in §4.6).
type PointInterferenceCollector[B any, BV bounding.BoundingVolume[BV]] struct {
	containsPoint bvPredicate[BV]
	Results       []B
}

// NewPointInterferenceCollector builds a collector that narrows by
// containsPoint (typically an AABB/BoundingSphere point-containment test).
func NewPointInterferenceCollector[B any, BV bounding.BoundingVolume[BV]](containsPoint func(BV) bool) *PointInterferenceCollector[B, BV] {
	return &PointInterferenceCollector[B, BV]{containsPoint: containsPoint}
}

func (c *PointInterferenceCollector[B, BV]) VisitInternal(bv BV) VisitStatus {
	if c.containsPoint(bv) {
		return Continue
	}
	return Prune
}

func (c *PointInterferenceCollector[B, BV]) VisitLeaf(leaf B, bv BV) VisitStatus {
	if c.containsPoint(bv) {
		c.Results = append(c.Results, leaf)
	}
	return Continue
}
