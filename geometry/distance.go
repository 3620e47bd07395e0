package geometry

import "github.com/katalvlaran/tacgrid/grid"

// ChebyshevDistance returns max(|ax-bx|, |ay-by|), the number of grid steps
// between a and b when diagonal moves are allowed.
func ChebyshevDistance(a, b grid.Position) int {
	return max(abs(a.X-b.X), abs(a.Y-b.Y))
}

// DistanceInFeet converts the Chebyshev distance to feet.
func DistanceInFeet(a, b grid.Position) int {
	return ChebyshevDistance(a, b) * FeetPerSquare
}

// FeetToSquares converts feet to whole squares, truncating any remainder
// (12 ft is 2 squares).
func FeetToSquares(feet int) int {
	return feet / FeetPerSquare
}

// PositionsWithinRange returns every in-bounds position whose distance from
// center is at most rangeFeet, in row-major order. center itself may lie
// outside the grid. The result is never nil; a negative range yields an empty
// slice.
// Complexity: O(W×H).
func PositionsWithinRange(center grid.Position, rangeFeet int, g *grid.Grid) []grid.Position {
	out := []grid.Position{}
	if rangeFeet < 0 {
		return out
	}
	squares := FeetToSquares(rangeFeet)
	for p := range g.AllPositions() {
		if ChebyshevDistance(center, p) <= squares {
			out = append(out, p)
		}
	}

	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
