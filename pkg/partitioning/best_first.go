package partitioning

import (
	"container/heap"

	"github.com/mbrt/collidex/pkg/bounding"
)

// BestFirstVisitor drives a branch-and-bound search over a BVT: a lower
// bound on cost for internal nodes, and an exact cost plus result payload
// for leaves, matching ncollide's BVTCostFn::compute_bv_cost/compute_b_cost.
// Costs are minimized; returning ok=false from either method prunes that
// node (or discards that leaf) entirely.
type BestFirstVisitor[B any, BV bounding.BoundingVolume[BV], D any] interface {
	// ComputeBVCost returns a lower bound on the cost of any leaf within
	// bv. Any leaf actually in the subtree has cost >= this bound.
	ComputeBVCost(bv BV) (cost float64, ok bool)
	// ComputeLeafCost returns the exact cost and candidate result for a
	// single leaf.
	ComputeLeafCost(leaf B) (cost float64, result D, ok bool)
}

type queueItem[B any, BV bounding.BoundingVolume[BV]] struct {
	node  *bvtNode[B, BV]
	bound float64
	seq   int // insertion order, for deterministic tie-breaking
}

type priorityQueue[B any, BV bounding.BoundingVolume[BV]] []queueItem[B, BV]

func (q priorityQueue[B, BV]) Len() int { return len(q) }
func (q priorityQueue[B, BV]) Less(i, j int) bool {
	if q[i].bound != q[j].bound {
		return q[i].bound < q[j].bound
	}
	return q[i].seq < q[j].seq
}
func (q priorityQueue[B, BV]) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *priorityQueue[B, BV]) Push(x any)   { *q = append(*q, x.(queueItem[B, BV])) }
func (q *priorityQueue[B, BV]) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// BestFirstSearch performs a best-first branch-and-bound search over t,
// returning the minimum-cost leaf result and true, or the zero value and
// false if no leaf satisfied the visitor. This is the engine behind every
// cost-minimizing query in spec.md §4.3 (closest-points, TOI-minimizing
// ray casts): it generalizes the teacher's BVH.hitNode descend-both-
// children-then-keep-closest pattern into a priority-queue search driven
// by a caller-supplied cost function, per ncollide's partitioning::BVT
// best-first search.
func BestFirstSearch[B any, BV bounding.BoundingVolume[BV], D any](t BVT[B, BV], v BestFirstVisitor[B, BV, D]) (D, bool) {
	var zero D
	if t.root == nil {
		return zero, false
	}

	pq := &priorityQueue[B, BV]{}
	heap.Init(pq)
	seq := 0

	pushNode := func(n *bvtNode[B, BV]) {
		if bound, ok := v.ComputeBVCost(n.bv); ok {
			heap.Push(pq, queueItem[B, BV]{node: n, bound: bound, seq: seq})
			seq++
		}
	}
	pushNode(t.root)

	bestCost := 0.0
	haveBest := false
	var best D

	for pq.Len() > 0 {
		item := heap.Pop(pq).(queueItem[B, BV])
		if haveBest && item.bound >= bestCost {
			// Every remaining entry has bound >= item.bound (heap-min
			// invariant), so no better result remains.
			break
		}
		n := item.node
		if n.leaf != nil {
			cost, result, ok := v.ComputeLeafCost(*n.leaf)
			if ok && (!haveBest || cost < bestCost) {
				bestCost, best, haveBest = cost, result, true
			}
			continue
		}
		if n.left != nil {
			pushNode(n.left)
		}
		if n.right != nil {
			pushNode(n.right)
		}
	}

	return best, haveBest
}
