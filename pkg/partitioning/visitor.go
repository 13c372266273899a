package partitioning

import "github.com/mbrt/collidex/pkg/bounding"

// VisitStatus tells a Visit traversal what to do after visiting a node,
// mirroring ncollide's VisitStatus (Continue/Stop/ExitEarly collapsed to
// the three cases spec.md's set-valued queries actually need): descend
// past an internal node (Continue), skip its subtree (Prune), or abort the
// whole traversal (Stop — spec.md §4.3.1's visit_leaf "ShouldContinue"
// return, and §5's "cancellation composes by returning a stop signal from
// the visitor").
type VisitStatus int

const (
	// Continue descends into the node's children (a no-op for leaves).
	Continue VisitStatus = iota
	// Prune skips the node's subtree entirely. Only meaningful from
	// VisitInternal; a VisitLeaf call has no subtree to skip.
	Prune
	// Stop aborts the entire traversal immediately, visiting no further
	// nodes. Returned from VisitLeaf to signal early termination.
	Stop
)

// Visitor is called once per internal node and once per leaf during a
// pre-order depth-first Visit traversal.
type Visitor[B any, BV bounding.BoundingVolume[BV]] interface {
	// VisitInternal is called for a node's bounding volume before
	// descending into its children. Returning Prune skips both children;
	// returning Stop aborts the whole traversal.
	VisitInternal(bv BV) VisitStatus
	// VisitLeaf is called for each leaf payload reached. Returning Stop
	// aborts the rest of the traversal; any other value continues it.
	VisitLeaf(leaf B, bv BV) VisitStatus
}

// Visit performs a pre-order depth-first traversal of t, the engine behind
// every set-valued query in spec.md §4.3 (ray-interference collection,
// bounding-volume-interference collection, point-containment collection).
// Mirrors the teacher's BVH.hitNode, which also always descends into both
// children after a single bounding-box test — generalized here to any
// visitor decision instead of a single ray/tMin/tMax test.
func Visit[B any, BV bounding.BoundingVolume[BV]](t BVT[B, BV], v Visitor[B, BV]) {
	if t.root == nil {
		return
	}
	visitNode(t.root, v)
}

// visitNode returns Stop when the visitor aborted the traversal partway
// through, so the caller unwinds without visiting any sibling subtree.
func visitNode[B any, BV bounding.BoundingVolume[BV]](n *bvtNode[B, BV], v Visitor[B, BV]) VisitStatus {
	if n.leaf != nil {
		return v.VisitLeaf(*n.leaf, n.bv)
	}
	switch v.VisitInternal(n.bv) {
	case Prune:
		return Continue
	case Stop:
		return Stop
	}
	if n.left != nil {
		if visitNode(n.left, v) == Stop {
			return Stop
		}
	}
	if n.right != nil {
		if visitNode(n.right, v) == Stop {
			return Stop
		}
	}
	return Continue
}
