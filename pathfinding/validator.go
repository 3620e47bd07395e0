package pathfinding

import (
	"github.com/katalvlaran/tacgrid/geometry"
	"github.com/katalvlaran/tacgrid/grid"
)

// IsValidPath reports whether path is non-empty, stays in bounds, and moves
// between 8-adjacent cells at every step. It says nothing about cost.
// Complexity: O(len(path)).
func IsValidPath(path []grid.Position, g *grid.Grid) bool {
	if len(path) == 0 {
		return false
	}
	for i, p := range path {
		if !g.InBounds(p) {
			return false
		}
		if i > 0 && geometry.ChebyshevDistance(path[i-1], p) != 1 {
			return false
		}
	}

	return true
}

// CalculatePathCost sums the entry cost of every cell after the first; the
// mover already stands on the start cell. If any entered cell is vetoed the
// result is Impassable rather than a sum. A nil calc means TerrainCost.
// Complexity: O(len(path)).
func CalculatePathCost(path []grid.Position, g *grid.Grid, calc CostCalculator) int {
	calc = orDefault(calc)
	total := 0
	for i := 1; i < len(path); i++ {
		c := calc.Cost(path[i], g)
		if IsImpassable(c) {
			return Impassable
		}
		total += c
	}

	return total
}

// IsWithinBudget reports whether CalculatePathCost(path) ≤ budget.
// A path through impassable terrain is never within budget.
func IsWithinBudget(path []grid.Position, g *grid.Grid, calc CostCalculator, budget int) bool {
	cost := CalculatePathCost(path, g, calc)

	return !IsImpassable(cost) && cost <= budget
}
