// Package geometry defines shared constants, the PositionSet type and
// sentinel errors for distance, line-of-effect and area templates.
package geometry

import (
	"errors"
	"maps"
	"slices"

	"github.com/katalvlaran/tacgrid/grid"
)

// Sentinel errors for template construction.
var (
	// ErrInvalidTemplateSize indicates a non-positive or non-multiple-of-5 dimension.
	ErrInvalidTemplateSize = errors.New("geometry: template size must be a positive multiple of 5 feet")
	// ErrUnknownShape indicates an unrecognized template shape name.
	ErrUnknownShape = errors.New("geometry: unknown template shape")
)

// FeetPerSquare is the side length of one grid cell.
const FeetPerSquare = 5

// PositionSet is an unordered set of positions.
type PositionSet map[grid.Position]struct{}

// NewPositionSet builds a set from the given positions.
func NewPositionSet(ps ...grid.Position) PositionSet {
	s := make(PositionSet, len(ps))
	for _, p := range ps {
		s.Add(p)
	}

	return s
}

// Add inserts p.
func (s PositionSet) Add(p grid.Position) { s[p] = struct{}{} }

// Contains reports whether p is in the set.
func (s PositionSet) Contains(p grid.Position) bool {
	_, ok := s[p]
	return ok
}

// Len returns the set size.
func (s PositionSet) Len() int { return len(s) }

// Sorted returns the members in row-major order.
func (s PositionSet) Sorted() []grid.Position {
	out := slices.Collect(maps.Keys(s))
	slices.SortFunc(out, func(a, b grid.Position) int {
		if a.Less(b) {
			return -1
		}
		if b.Less(a) {
			return 1
		}
		return 0
	})

	return out
}

// Equal reports whether both sets hold the same members.
func (s PositionSet) Equal(other PositionSet) bool {
	return maps.Equal(s, other)
}
