// Package pathfinding implements movement over a grid.Grid: the terrain cost
// model, A* search, static path validation and budget-bounded reachability.
//
// What:
//
//   - CostCalculator: per-cell entry cost (Normal 1, Difficult 2, Impassable
//     vetoed with the Impassable sentinel). Substitutable.
//   - Pathfinder: A* with a Chebyshev heuristic and an explicit total order on
//     the frontier (f, then g, then x, then y), so identical inputs expand the
//     same nodes and return the same path even when several optimal paths tie.
//   - IsValidPath / CalculatePathCost / IsWithinBudget: checks over an
//     already produced path, independent of any search.
//   - ReachabilityCalculator: every cell a creature can end its move on within
//     a movement budget.
//
// Why:
//
//   - Campaigns are replayed from event logs; a path must come out byte-for-byte
//     identical on every replay. Nothing here depends on map iteration order.
//
// Outcomes, not errors:
//
//	FindPath never returns an error. "No path" and "over budget" are normal
//	tactical outcomes and come back as PathResult variants:
//
//	  switch r := result.(type) {
//	  case pathfinding.Success:       // r.Path, r.TotalCost
//	  case pathfinding.NoPathFound:   // r.Reason
//	  case pathfinding.ExceedsBudget: // r.RequiredCost, r.AvailableCost
//	  }
//
// Budgets:
//
//	FindPathWithin prunes every candidate whose running cost would exceed the
//	budget, so a destination that is only reachable over budget reports
//	NoPathFound. ExceedsBudget is produced by CheckBudget, which compares an
//	unbounded Success against a budget supplied afterwards.
//
// Complexity:
//
//   - FindPath:            O(N log N), N = W×H cells.
//   - ReachablePositions:  O(N log N).
//   - PositionsAtExactCost: O(R × N log N), R = reachable cells.
//   - CalculatePathCost:   O(len(path)).
//
// Concurrency:
//
//	All state lives inside a single call; a Pathfinder may be shared across
//	goroutines. Searches cannot be cancelled; impose deadlines from outside.
package pathfinding
