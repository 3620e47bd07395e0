package pathfinding

import (
	"container/heap"

	"github.com/katalvlaran/tacgrid/geometry"
	"github.com/katalvlaran/tacgrid/grid"
)

// ReachabilityCalculator answers "where can this creature end its move".
//
// Expansion is Dijkstra-ordered on (cost, x, y) rather than first-come FIFO,
// so a cell first discovered through difficult terrain is still settled at
// its cheapest cost. Cells that are impassable, obstructed or occupied are
// never entered.
type ReachabilityCalculator struct {
	pf *Pathfinder
}

// NewReachabilityCalculator shares pf's cost model and uses pf to verify
// exact-cost queries. A nil pf means NewPathfinder().
func NewReachabilityCalculator(pf *Pathfinder) *ReachabilityCalculator {
	if pf == nil {
		pf = NewPathfinder()
	}

	return &ReachabilityCalculator{pf: pf}
}

// ReachablePositions returns every cell reachable from start at a total cost
// of at most budget, start included. An out-of-bounds start yields an empty
// set. A negative budget panics with ErrNegativeBudget.
// Complexity: O(N log N).
func (rc *ReachabilityCalculator) ReachablePositions(start grid.Position, budget int, g *grid.Grid) geometry.PositionSet {
	costs := rc.ReachableCosts(start, budget, g)
	out := make(geometry.PositionSet, len(costs))
	for p := range costs {
		out.Add(p)
	}

	return out
}

// ReachableCosts returns the cheapest movement cost to every cell reachable
// within budget.
func (rc *ReachabilityCalculator) ReachableCosts(start grid.Position, budget int, g *grid.Grid) map[grid.Position]int {
	mustBudget(budget)
	cost := map[grid.Position]int{}
	if !g.InBounds(start) {
		return cost
	}

	calc := rc.pf.options.Cost
	settled := map[grid.Position]bool{}
	pq := nodePQ{{pos: start}}
	cost[start] = 0

	for pq.Len() > 0 {
		node := heap.Pop(&pq).(*pathNode)
		if settled[node.pos] {
			continue
		}
		settled[node.pos] = true

		for _, next := range g.Neighbors(node.pos) {
			if !g.InBounds(next) || settled[next] || !standable(next, g, calc) {
				continue
			}
			step := calc.Cost(next, g)
			total := node.g + step
			if total > budget {
				continue
			}
			if best, seen := cost[next]; seen && total >= best {
				continue
			}
			cost[next] = total
			// f == g: no heuristic, so the order is (cost, x, y)
			heap.Push(&pq, &pathNode{pos: next, g: total, f: total})
		}
	}

	return cost
}

// PositionsAtExactCost returns reachable cells whose cheapest path costs
// exactly cost, each confirmed by a full A* search.
// Complexity: O(R × N log N).
func (rc *ReachabilityCalculator) PositionsAtExactCost(start grid.Position, cost int, g *grid.Grid) geometry.PositionSet {
	out := geometry.PositionSet{}
	for p, c := range rc.ReachableCosts(start, cost, g) {
		if c != cost {
			continue
		}
		if s, ok := rc.pf.FindPath(start, p, g).(Success); ok && s.TotalCost == cost {
			out.Add(p)
		}
	}

	return out
}

// standable reports whether a mover may enter and stop in pos.
func standable(pos grid.Position, g *grid.Grid, calc CostCalculator) bool {
	cell := g.CellAt(pos)

	return !cell.HasObstacle && !cell.IsOccupied() && !IsImpassable(calc.Cost(pos, g))
}
