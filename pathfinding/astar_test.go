// Package pathfinding_test validates the A* pathfinder: the tactical scenarios,
// budget pruning, traversability rules, determinism and optimality.
package pathfinding_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tacgrid/grid"
	"github.com/katalvlaran/tacgrid/pathfinding"
)

var (
	wall      = grid.CellProperties{Terrain: grid.Impassable}
	mud       = grid.CellProperties{Terrain: grid.Difficult}
	pillar    = grid.CellProperties{HasObstacle: true}
	occupied  = grid.CellProperties{OccupiedBy: "hobgoblin"}
	emptyGrid = grid.MustNew(10, 10)
)

func requireSuccess(t *testing.T, res pathfinding.PathResult) pathfinding.Success {
	t.Helper()
	s, ok := res.(pathfinding.Success)
	require.True(t, ok, "expected Success, got %#v", res)

	return s
}

func requireNoPath(t *testing.T, res pathfinding.PathResult) pathfinding.NoPathFound {
	t.Helper()
	n, ok := res.(pathfinding.NoPathFound)
	require.True(t, ok, "expected NoPathFound, got %#v", res)

	return n
}

// randomGrid scatters walls, mud and pillars with a fixed seed.
func randomGrid(seed int64, w, h int) *grid.Grid {
	rng := rand.New(rand.NewSource(seed))
	updates := map[grid.Position]grid.CellProperties{}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			switch rng.Intn(10) {
			case 0:
				updates[grid.Pos(x, y)] = wall
			case 1, 2:
				updates[grid.Pos(x, y)] = mud
			case 3:
				updates[grid.Pos(x, y)] = pillar
			}
		}
	}

	return grid.MustNew(w, h).WithCells(updates)
}

// ------------------------------------------------------------------------
// 1. Scenarios
// ------------------------------------------------------------------------

func TestFindPath_Diagonal(t *testing.T) {
	s := requireSuccess(t, pathfinding.NewPathfinder().FindPath(grid.Pos(0, 0), grid.Pos(3, 3), emptyGrid))

	assert.Equal(t, []grid.Position{{0, 0}, {1, 1}, {2, 2}, {3, 3}}, s.Path)
	assert.Equal(t, 3, s.TotalCost)
}

func TestFindPath_DetourAroundImpassable(t *testing.T) {
	g := emptyGrid.WithCell(grid.Pos(1, 1), wall)
	s := requireSuccess(t, pathfinding.NewPathfinder().FindPath(grid.Pos(0, 0), grid.Pos(3, 3), g))

	assert.Equal(t, 4, s.TotalCost)
	assert.Len(t, s.Path, 5)
	assert.NotContains(t, s.Path, grid.Pos(1, 1))
	assert.True(t, pathfinding.IsValidPath(s.Path, g))
}

func TestFindPath_BoxedIn(t *testing.T) {
	g := emptyGrid.WithCells(map[grid.Position]grid.CellProperties{
		grid.Pos(1, 0): wall, grid.Pos(1, 1): wall, grid.Pos(0, 1): wall,
	})
	n := requireNoPath(t, pathfinding.NewPathfinder().FindPath(grid.Pos(0, 0), grid.Pos(3, 3), g))
	assert.NotEmpty(t, n.Reason)
}

func TestFindPath_SameCell(t *testing.T) {
	s := requireSuccess(t, pathfinding.NewPathfinder().FindPath(grid.Pos(4, 4), grid.Pos(4, 4), emptyGrid))

	assert.Equal(t, []grid.Position{{4, 4}}, s.Path)
	assert.Zero(t, s.TotalCost)
}

// TestFindPathWithin_PrunedBudget: the only routes cost 5 but the budget is 2.
func TestFindPathWithin_PrunedBudget(t *testing.T) {
	pf := pathfinding.NewPathfinder()

	res := pf.FindPathWithin(grid.Pos(0, 0), grid.Pos(5, 0), emptyGrid, 2)
	n := requireNoPath(t, res)
	assert.Contains(t, n.Reason, "budget 2")

	unbounded := requireSuccess(t, pf.FindPath(grid.Pos(0, 0), grid.Pos(5, 0), emptyGrid))
	assert.Equal(t, 5, unbounded.TotalCost)
	assert.Equal(t,
		pathfinding.ExceedsBudget{RequiredCost: 5, AvailableCost: 2},
		pathfinding.CheckBudget(unbounded, 2))
}

func TestFindPathWithin_ExactBudget(t *testing.T) {
	s := requireSuccess(t, pathfinding.NewPathfinder().FindPathWithin(grid.Pos(0, 0), grid.Pos(5, 0), emptyGrid, 5))
	assert.Equal(t, 5, s.TotalCost)
}

func TestFindPathWithin_NegativePanics(t *testing.T) {
	assert.Panics(t, func() {
		pathfinding.NewPathfinder().FindPathWithin(grid.Pos(0, 0), grid.Pos(1, 0), emptyGrid, -1)
	})
}

func TestCheckBudget_PassThrough(t *testing.T) {
	within := pathfinding.Success{Path: []grid.Position{{0, 0}, {1, 0}}, TotalCost: 1}
	assert.Equal(t, within, pathfinding.CheckBudget(within, 1))

	none := pathfinding.NoPathFound{Reason: "x"}
	assert.Equal(t, none, pathfinding.CheckBudget(none, 0))
}

// ------------------------------------------------------------------------
// 2. Traversability
// ------------------------------------------------------------------------

func TestFindPath_Validation(t *testing.T) {
	pf := pathfinding.NewPathfinder()
	cases := []struct {
		name        string
		g           *grid.Grid
		start, dest grid.Position
		reason      string
	}{
		{"StartOutOfBounds", emptyGrid, grid.Pos(-1, 0), grid.Pos(3, 3), "start"},
		{"DestOutOfBounds", emptyGrid, grid.Pos(0, 0), grid.Pos(10, 3), "destination"},
		{"DestImpassable", emptyGrid.WithCell(grid.Pos(3, 3), wall), grid.Pos(0, 0), grid.Pos(3, 3), "not traversable"},
		{"DestObstacle", emptyGrid.WithCell(grid.Pos(3, 3), pillar), grid.Pos(0, 0), grid.Pos(3, 3), "not traversable"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n := requireNoPath(t, pf.FindPath(tc.start, tc.dest, tc.g))
			assert.Contains(t, n.Reason, tc.reason)
		})
	}
}

// TestFindPath_OccupiedDestination lets a mover path onto the creature it attacks.
func TestFindPath_OccupiedDestination(t *testing.T) {
	g := emptyGrid.WithCell(grid.Pos(3, 0), occupied)
	s := requireSuccess(t, pathfinding.NewPathfinder().FindPath(grid.Pos(0, 0), grid.Pos(3, 0), g))
	assert.Equal(t, 3, s.TotalCost)
}

// TestFindPath_OccupiedIntermediate blocks a one-cell corridor held by a creature.
func TestFindPath_OccupiedIntermediate(t *testing.T) {
	// column x=2 is walled except the corridor at (2,5)
	updates := map[grid.Position]grid.CellProperties{}
	for y := 0; y < 10; y++ {
		if y != 5 {
			updates[grid.Pos(2, y)] = wall
		}
	}
	g := emptyGrid.WithCells(updates)
	pf := pathfinding.NewPathfinder()

	s := requireSuccess(t, pf.FindPath(grid.Pos(0, 5), grid.Pos(4, 5), g))
	assert.Contains(t, s.Path, grid.Pos(2, 5))

	blocked := g.WithCell(grid.Pos(2, 5), occupied)
	requireNoPath(t, pf.FindPath(grid.Pos(0, 5), grid.Pos(4, 5), blocked))

	obstructed := g.WithCell(grid.Pos(2, 5), pillar)
	requireNoPath(t, pf.FindPath(grid.Pos(0, 5), grid.Pos(4, 5), obstructed))
}

// TestFindPath_AvoidsDifficultTerrain prefers a longer route over mud.
func TestFindPath_AvoidsDifficultTerrain(t *testing.T) {
	g := emptyGrid.WithCells(map[grid.Position]grid.CellProperties{
		grid.Pos(1, 0): mud, grid.Pos(2, 0): mud, grid.Pos(3, 0): mud,
	})
	s := requireSuccess(t, pathfinding.NewPathfinder().FindPath(grid.Pos(0, 0), grid.Pos(4, 0), g))
	assert.Equal(t, 4, s.TotalCost)

	immune := pathfinding.NewPathfinder(pathfinding.WithCostCalculator(pathfinding.IgnoreDifficultTerrain{}))
	s = requireSuccess(t, immune.FindPath(grid.Pos(0, 0), grid.Pos(4, 0), g))
	assert.Equal(t, 4, s.TotalCost)
	assert.Equal(t, []grid.Position{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}}, s.Path)
}

// ------------------------------------------------------------------------
// 3. Determinism and optimality
// ------------------------------------------------------------------------

// TestFindPath_TieBreak pins the path chosen among equally cheap candidates.
func TestFindPath_TieBreak(t *testing.T) {
	s := requireSuccess(t, pathfinding.NewPathfinder().FindPath(grid.Pos(0, 0), grid.Pos(2, 0), emptyGrid))
	assert.Equal(t, []grid.Position{{0, 0}, {1, 0}, {2, 0}}, s.Path)
}

func TestFindPath_Deterministic(t *testing.T) {
	g := randomGrid(7, 30, 30)
	start, dest := grid.Pos(0, 0), grid.Pos(29, 29)
	g = g.WithCells(map[grid.Position]grid.CellProperties{start: {}, dest: {}})

	first := pathfinding.NewPathfinder().FindPath(start, dest, g)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, pathfinding.NewPathfinder().FindPath(start, dest, g))
	}
	if s, ok := first.(pathfinding.Success); ok {
		within := pathfinding.NewPathfinder().FindPathWithin(start, dest, g, s.TotalCost)
		assert.Equal(t, first, within)
	}
}

// TestFindPath_ValidAndOptimal checks every Success against the validator and
// against the Dijkstra costs of the reachability calculator.
func TestFindPath_ValidAndOptimal(t *testing.T) {
	pf := pathfinding.NewPathfinder()
	rc := pathfinding.NewReachabilityCalculator(pf)

	for seed := int64(1); seed <= 5; seed++ {
		g := randomGrid(seed, 12, 12)
		start := grid.Pos(0, 0)
		g = g.WithCell(start, grid.CellProperties{})
		costs := rc.ReachableCosts(start, 1000, g)

		for dest := range g.AllPositions() {
			res := pf.FindPath(start, dest, g)
			want, reachable := costs[dest]
			switch r := res.(type) {
			case pathfinding.Success:
				require.True(t, reachable, "seed %d: A* reached %v, Dijkstra did not", seed, dest)
				assert.Equal(t, want, r.TotalCost, "seed %d dest %v", seed, dest)
				assert.True(t, pathfinding.IsValidPath(r.Path, g))
				assert.Equal(t, r.TotalCost, pathfinding.CalculatePathCost(r.Path, g, nil))
				assert.Equal(t, start, r.Path[0])
				assert.Equal(t, dest, r.Path[len(r.Path)-1])
			case pathfinding.NoPathFound:
				assert.False(t, reachable, "seed %d: Dijkstra reached %v at %d, A* did not", seed, dest, want)
			default:
				t.Fatalf("unexpected result %#v", res)
			}
		}
	}
}

// ------------------------------------------------------------------------
// 4. Hooks and stats
// ------------------------------------------------------------------------

func TestFindPathStats_Hooks(t *testing.T) {
	var expanded, pruned int
	pf := pathfinding.NewPathfinder(
		pathfinding.WithOnExpand(func(grid.Position, int, int) { expanded++ }),
		pathfinding.WithOnPrune(func(grid.Position, int) { pruned++ }),
	)

	res, st := pf.FindPathStats(grid.Pos(0, 0), grid.Pos(6, 0), emptyGrid, 3)
	requireNoPath(t, res)
	assert.Equal(t, st.Expanded, expanded)
	assert.Equal(t, st.Pruned, pruned)
	assert.Positive(t, st.Pruned)
	assert.GreaterOrEqual(t, st.Pushed, st.Expanded)

	res, st = pf.FindPathStats(grid.Pos(0, 0), grid.Pos(6, 0), emptyGrid, -1)
	requireSuccess(t, res)
	assert.Zero(t, st.Pruned)
}

func TestCostFunc_Custom(t *testing.T) {
	// every cell in row 0 costs 3
	calc := pathfinding.CostFunc(func(p grid.Position, g *grid.Grid) int {
		if p.Y == 0 {
			return 3
		}
		return pathfinding.TerrainCost{}.Cost(p, g)
	})
	pf := pathfinding.NewPathfinder(pathfinding.WithCostCalculator(calc))
	s := requireSuccess(t, pf.FindPath(grid.Pos(0, 1), grid.Pos(4, 1), emptyGrid))
	assert.Equal(t, 4, s.TotalCost)
	assert.NotNil(t, pf.CostCalculator())
}
