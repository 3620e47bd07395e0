package pathfinding

import (
	"math"

	"github.com/katalvlaran/tacgrid/grid"
)

// Impassable is the cost sentinel for cells that cannot be entered. It is a
// veto, not a weight: never add it to a running total.
const Impassable = math.MaxInt

// IsImpassable reports whether cost is the Impassable sentinel.
func IsImpassable(cost int) bool {
	return cost == Impassable
}

// CostCalculator prices entering a single cell. Implementations must be pure
// functions of (pos, g) and return either a cost ≥ 1 or Impassable; the
// Chebyshev heuristic relies on the minimum step cost being 1.
type CostCalculator interface {
	Cost(pos grid.Position, g *grid.Grid) int
}

// CostFunc adapts a plain function to CostCalculator.
type CostFunc func(pos grid.Position, g *grid.Grid) int

// Cost implements CostCalculator.
func (f CostFunc) Cost(pos grid.Position, g *grid.Grid) int { return f(pos, g) }

// TerrainCost is the standard rule: Normal 1, Difficult 2, Impassable vetoed.
type TerrainCost struct{}

// Cost implements CostCalculator.
func (TerrainCost) Cost(pos grid.Position, g *grid.Grid) int {
	return terrainCost(g.CellAt(pos).Terrain)
}

func terrainCost(t grid.TerrainType) int {
	switch t {
	case grid.Normal:
		return 1
	case grid.Difficult:
		return 2
	default:
		return Impassable
	}
}

// IgnoreDifficultTerrain prices difficult terrain like normal terrain, for
// creatures unhindered by it. Impassable cells stay vetoed.
type IgnoreDifficultTerrain struct{}

// Cost implements CostCalculator.
func (IgnoreDifficultTerrain) Cost(pos grid.Position, g *grid.Grid) int {
	if g.CellAt(pos).Terrain == grid.Difficult {
		return 1
	}

	return TerrainCost{}.Cost(pos, g)
}

func orDefault(c CostCalculator) CostCalculator {
	if c == nil {
		return TerrainCost{}
	}

	return c
}
