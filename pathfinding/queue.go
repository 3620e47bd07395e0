package pathfinding

import "github.com/katalvlaran/tacgrid/grid"

// pathNode is a frontier entry. It lives only inside one search call.
type pathNode struct {
	pos grid.Position
	g   int // cost from start
	f   int // g + heuristic
}

// nodePQ is a min-heap of *pathNode ordered by the explicit total order
// (f, g, x, y). Stale entries are left in place and skipped on pop
// ("lazy decrease-key").
type nodePQ []*pathNode

// Len returns the number of items in the heap.
func (pq nodePQ) Len() int { return len(pq) }

// Less orders by f, then g, then x, then y, all ascending.
func (pq nodePQ) Less(i, j int) bool {
	a, b := pq[i], pq[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.g != b.g {
		return a.g < b.g
	}
	if a.pos.X != b.pos.X {
		return a.pos.X < b.pos.X
	}

	return a.pos.Y < b.pos.Y
}

// Swap swaps two elements in the heap.
func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds x, which must be a *pathNode. Called by heap.Push.
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*pathNode)) }

// Pop removes and returns the last element. Called by heap.Pop.
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}
