// Package grid provides the immutable tactical Grid.
//
// A Grid is a snapshot: every update returns a new Grid and the receiver stays
// valid, so readers holding an older snapshot never observe a partial change.
package grid

import (
	"fmt"
	"iter"
	"maps"
	"slices"
)

// Grid is a width×height battlefield with sparse per-cell properties.
// Positions missing from cells read as the default CellProperties.
// The zero Grid is not usable; construct with New.
type Grid struct {
	width, height int
	cells         map[Position]CellProperties
}

// New constructs an empty grid. Both dimensions must lie in
// [MinDimension, MaxDimension]; otherwise ErrDimensionOutOfRange is returned.
// Complexity: O(1).
func New(width, height int) (*Grid, error) {
	if err := validateDimensions(width, height); err != nil {
		return nil, err
	}

	return &Grid{
		width:  width,
		height: height,
		cells:  map[Position]CellProperties{},
	}, nil
}

// MustNew is New that panics on invalid dimensions.
func MustNew(width, height int) *Grid {
	g, err := New(width, height)
	if err != nil {
		panic(err)
	}

	return g
}

func validateDimensions(width, height int) error {
	if width < MinDimension || width > MaxDimension || height < MinDimension || height > MaxDimension {
		return fmt.Errorf("%w: %dx%d not within [%d,%d]",
			ErrDimensionOutOfRange, width, height, MinDimension, MaxDimension)
	}

	return nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Len returns the number of explicitly stored (non-default) cells.
func (g *Grid) Len() int { return len(g.cells) }

// InBounds reports whether pos lies within [0,width)×[0,height).
// Complexity: O(1).
func (g *Grid) InBounds(pos Position) bool {
	return pos.X >= 0 && pos.X < g.width && pos.Y >= 0 && pos.Y < g.height
}

// CellAt returns the stored properties of pos, or the default properties when
// nothing is stored (including out-of-bounds positions).
// Complexity: O(1).
func (g *Grid) CellAt(pos Position) CellProperties {
	return g.cells[pos]
}

// WithCell returns a new Grid where pos has props. The receiver is unchanged.
// No bounds check is made; callers supply in-bounds positions.
// Storing default properties removes the entry, so equal grids compare equal.
// Complexity: O(S), S = stored cells.
func (g *Grid) WithCell(pos Position, props CellProperties) *Grid {
	next := g.clone()
	next.set(pos, props)

	return next
}

// WithCells applies a batch of updates with a single copy.
// Complexity: O(S + len(updates)).
func (g *Grid) WithCells(updates map[Position]CellProperties) *Grid {
	next := g.clone()
	for pos, props := range updates {
		next.set(pos, props)
	}

	return next
}

func (g *Grid) clone() *Grid {
	return &Grid{
		width:  g.width,
		height: g.height,
		cells:  maps.Clone(g.cells),
	}
}

func (g *Grid) set(pos Position, props CellProperties) {
	if props.IsDefault() {
		delete(g.cells, pos)
		return
	}
	g.cells[pos] = props
}

// AllPositions yields every position in row-major order. The sequence is lazy
// and restartable: each range over it starts again from (0,0).
// Complexity: O(W×H) per full iteration, O(1) memory.
func (g *Grid) AllPositions() iter.Seq[Position] {
	return func(yield func(Position) bool) {
		for y := 0; y < g.height; y++ {
			for x := 0; x < g.width; x++ {
				if !yield(Position{X: x, Y: y}) {
					return
				}
			}
		}
	}
}

// Cells yields the explicitly stored cells in row-major order.
// Complexity: O(S log S).
func (g *Grid) Cells() iter.Seq2[Position, CellProperties] {
	return func(yield func(Position, CellProperties) bool) {
		for _, pos := range g.storedPositions() {
			if !yield(pos, g.cells[pos]) {
				return
			}
		}
	}
}

func (g *Grid) storedPositions() []Position {
	keys := slices.Collect(maps.Keys(g.cells))
	slices.SortFunc(keys, comparePositions)

	return keys
}

func comparePositions(a, b Position) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	default:
		return 0
	}
}

// Neighbors returns the eight adjacent positions in compass order
// N, NE, E, SE, S, SW, W, NW. Results are not bounds-filtered.
// Complexity: O(1).
func (g *Grid) Neighbors(pos Position) [8]Position {
	var out [8]Position
	for i, d := range Directions {
		out[i] = pos.Offset(d)
	}

	return out
}

// Equal reports whether g and other have the same dimensions and cells.
func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}

	return g.width == other.width && g.height == other.height && maps.Equal(g.cells, other.cells)
}

// String summarizes the grid for logs.
func (g *Grid) String() string {
	return fmt.Sprintf("grid %dx%d (%d cells)", g.width, g.height, len(g.cells))
}
