// Package pathfinding implements A* search on a grid.Grid.
//
// Notes on implementation choices:
//
//   - The frontier is a binary heap with lazy decrease-key: improved nodes are
//     pushed again and stale entries are skipped when popped.
//   - The heap order (f, g, x, y) is total, so the expansion sequence never
//     depends on map iteration.
//   - The destination is returned the first time it is popped; with an
//     admissible, consistent heuristic that is the cheapest arrival.
package pathfinding

import (
	"container/heap"
	"fmt"
	"slices"

	"github.com/katalvlaran/tacgrid/geometry"
	"github.com/katalvlaran/tacgrid/grid"
)

// noBudget disables budget pruning.
const noBudget = -1

// Pathfinder runs A* searches. It holds only configuration, so one value may
// serve concurrent callers.
type Pathfinder struct {
	options Options
}

// NewPathfinder builds a Pathfinder from DefaultOptions plus opts.
func NewPathfinder(opts ...Option) *Pathfinder {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Pathfinder{options: cfg}
}

// CostCalculator returns the cost model in use.
func (pf *Pathfinder) CostCalculator() CostCalculator {
	return pf.options.Cost
}

// FindPath searches for the cheapest path from start to dest with no budget.
func (pf *Pathfinder) FindPath(start, dest grid.Position, g *grid.Grid) PathResult {
	res, _ := pf.search(start, dest, g, noBudget)

	return res
}

// FindPathWithin searches for the cheapest path whose cost stays within
// maxCost. Candidates that would exceed maxCost are never expanded, so a
// destination reachable only over budget yields NoPathFound.
// A negative maxCost panics with ErrNegativeBudget.
func (pf *Pathfinder) FindPathWithin(start, dest grid.Position, g *grid.Grid, maxCost int) PathResult {
	mustBudget(maxCost)
	res, _ := pf.search(start, dest, g, maxCost)

	return CheckBudget(res, maxCost)
}

// FindPathStats is FindPath (maxCost < 0) or FindPathWithin (maxCost ≥ 0)
// that also reports how much work the search did.
func (pf *Pathfinder) FindPathStats(start, dest grid.Position, g *grid.Grid, maxCost int) (PathResult, Stats) {
	if maxCost < 0 {
		return pf.search(start, dest, g, noBudget)
	}
	res, st := pf.search(start, dest, g, maxCost)

	return CheckBudget(res, maxCost), st
}

// CheckBudget converts a Success costing more than budget into ExceedsBudget.
// Any other result, or a Success within budget, is returned unchanged.
func CheckBudget(result PathResult, budget int) PathResult {
	if s, ok := result.(Success); ok && s.TotalCost > budget {
		return ExceedsBudget{RequiredCost: s.TotalCost, AvailableCost: budget}
	}

	return result
}

func mustBudget(budget int) {
	if budget < 0 {
		panic(fmt.Errorf("%w: %d", ErrNegativeBudget, budget))
	}
}

func (pf *Pathfinder) search(start, dest grid.Position, g *grid.Grid, budget int) (PathResult, Stats) {
	// 1) Endpoints must lie on the grid.
	if !g.InBounds(start) {
		return NoPathFound{Reason: fmt.Sprintf("start %s is out of bounds", start)}, Stats{}
	}
	if !g.InBounds(dest) {
		return NoPathFound{Reason: fmt.Sprintf("destination %s is out of bounds", dest)}, Stats{}
	}

	// 2) The destination may be occupied but never impassable or obstructed.
	if !pf.traversable(dest, dest, g) {
		return NoPathFound{Reason: fmt.Sprintf("destination %s is not traversable", dest)}, Stats{}
	}

	r := &runner{
		pf:       pf,
		g:        g,
		dest:     dest,
		budget:   budget,
		gScore:   map[grid.Position]int{start: 0},
		cameFrom: map[grid.Position]grid.Position{},
		closed:   map[grid.Position]bool{},
		pq:       make(nodePQ, 0, 64),
	}

	return r.run(start), r.stats
}

// traversable applies the movement-blocking rule. Occupancy blocks every cell
// except the destination, so a mover may path up to a creature it targets.
func (pf *Pathfinder) traversable(pos, dest grid.Position, g *grid.Grid) bool {
	cell := g.CellAt(pos)
	if cell.HasObstacle || IsImpassable(pf.options.Cost.Cost(pos, g)) {
		return false
	}

	return pos == dest || !cell.IsOccupied()
}

// runner holds the mutable state of a single A* execution.
type runner struct {
	pf       *Pathfinder
	g        *grid.Grid
	dest     grid.Position
	budget   int                            // noBudget disables pruning
	gScore   map[grid.Position]int          // best known cost from start
	cameFrom map[grid.Position]grid.Position // predecessor on the best known path
	closed   map[grid.Position]bool         // expanded positions
	pq       nodePQ
	stats    Stats
}

func (r *runner) heuristic(p grid.Position) int {
	return geometry.ChebyshevDistance(p, r.dest)
}

func (r *runner) push(p grid.Position, cost int) {
	heap.Push(&r.pq, &pathNode{pos: p, g: cost, f: cost + r.heuristic(p)})
	r.stats.Pushed++
}

func (r *runner) run(start grid.Position) PathResult {
	heap.Init(&r.pq)
	r.push(start, 0)

	for r.pq.Len() > 0 {
		node := heap.Pop(&r.pq).(*pathNode)
		if r.closed[node.pos] {
			continue
		}
		if node.pos == r.dest {
			return Success{Path: r.reconstruct(node.pos), TotalCost: node.g}
		}
		r.closed[node.pos] = true
		r.stats.Expanded++
		r.pf.options.OnExpand(node.pos, node.g, node.f)
		r.relax(node)
	}

	if r.budget != noBudget {
		return NoPathFound{Reason: fmt.Sprintf("no path to %s within budget %d", r.dest, r.budget)}
	}

	return NoPathFound{Reason: fmt.Sprintf("no path to %s", r.dest)}
}

// relax tries every neighbor of node in compass order.
func (r *runner) relax(node *pathNode) {
	for _, next := range r.g.Neighbors(node.pos) {
		if !r.g.InBounds(next) || r.closed[next] || !r.pf.traversable(next, r.dest, r.g) {
			continue
		}
		tentative := node.g + r.pf.options.Cost.Cost(next, r.g)
		if r.budget != noBudget && tentative > r.budget {
			r.stats.Pruned++
			r.pf.options.OnPrune(next, tentative)
			continue
		}
		if best, seen := r.gScore[next]; seen && tentative >= best {
			continue
		}
		r.gScore[next] = tentative
		r.cameFrom[next] = node.pos
		r.push(next, tentative)
	}
}

// reconstruct walks predecessors back from end and returns start..end.
func (r *runner) reconstruct(end grid.Position) []grid.Position {
	path := []grid.Position{end}
	for cur := end; ; {
		prev, ok := r.cameFrom[cur]
		if !ok {
			break
		}
		path = append(path, prev)
		cur = prev
	}
	slices.Reverse(path)

	return path
}
