package geometry

import (
	"slices"

	"github.com/katalvlaran/tacgrid/grid"
)

// Line rasterizes the segment from a to b with Bresenham's algorithm and
// returns every cell crossed, a and b inclusive. Consecutive cells are always
// 8-adjacent.
//
// The major axis is whichever delta is larger (x on ties); the minor axis
// advances when the accumulated error reaches the major delta. Rasterization
// always runs from the row-major smaller endpoint, so Line(b, a) is exactly
// Line(a, b) reversed.
// Complexity: O(max(|dx|,|dy|)).
func Line(a, b grid.Position) []grid.Position {
	if b.Less(a) {
		out := bresenham(b, a)
		slices.Reverse(out)
		return out
	}

	return bresenham(a, b)
}

func bresenham(from, to grid.Position) []grid.Position {
	dx, dy := abs(to.X-from.X), abs(to.Y-from.Y)
	sx, sy := sign(to.X-from.X), sign(to.Y-from.Y)

	out := make([]grid.Position, 0, max(dx, dy)+1)
	cur := from
	out = append(out, cur)

	if dx >= dy {
		acc := dx / 2
		for i := 0; i < dx; i++ {
			cur.X += sx
			acc += dy
			if acc >= dx {
				cur.Y += sy
				acc -= dx
			}
			out = append(out, cur)
		}
		return out
	}

	acc := dy / 2
	for i := 0; i < dy; i++ {
		cur.Y += sy
		acc += dx
		if acc >= dy {
			cur.X += sx
			acc -= dy
		}
		out = append(out, cur)
	}

	return out
}

// HasLineOfEffect reports whether nothing obstructs the line from a to b.
// Only obstacles on intermediate cells block; the endpoints and any creature
// occupancy never do.
func HasLineOfEffect(a, b grid.Position, g *grid.Grid) bool {
	line := Line(a, b)
	if len(line) <= 2 {
		return true
	}
	for _, p := range line[1 : len(line)-1] {
		if g.CellAt(p).HasObstacle {
			return false
		}
	}

	return true
}

// PositionsWithinRangeAndLOS returns the in-range positions that origin also
// has line of effect to, in row-major order.
// Complexity: O(W×H×L), L = longest rasterized line.
func PositionsWithinRangeAndLOS(origin grid.Position, rangeFeet int, g *grid.Grid) []grid.Position {
	inRange := PositionsWithinRange(origin, rangeFeet, g)
	out := inRange[:0]
	for _, p := range inRange {
		if HasLineOfEffect(origin, p, g) {
			out = append(out, p)
		}
	}

	return out
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
