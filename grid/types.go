// Package grid defines positions, cell properties, directions and sentinel
// errors for the tactical grid.
package grid

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for grid construction and decoding.
var (
	// ErrDimensionOutOfRange indicates a width or height outside [MinDimension, MaxDimension].
	ErrDimensionOutOfRange = errors.New("grid: dimension out of range")
	// ErrCellOutOfBounds indicates a stored cell lies outside the grid.
	ErrCellOutOfBounds = errors.New("grid: stored cell out of bounds")
	// ErrUnknownTerrain indicates an unrecognized terrain name.
	ErrUnknownTerrain = errors.New("grid: unknown terrain type")
	// ErrUnknownDirection indicates an unrecognized compass direction name.
	ErrUnknownDirection = errors.New("grid: unknown direction")
)

// Grid dimension limits, inclusive.
const (
	MinDimension = 10
	MaxDimension = 100
)

// Position is a cell coordinate. It is comparable and safe to use as a map key.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pos is shorthand for Position{X: x, Y: y}.
func Pos(x, y int) Position {
	return Position{X: x, Y: y}
}

// Add returns p shifted by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Offset returns the neighbor of p one step toward d.
func (p Position) Offset(d Direction) Position {
	v := d.Vector()

	return p.Add(v.X, v.Y)
}

// Less orders positions row-major: by Y, then by X.
func (p Position) Less(q Position) bool {
	if p.Y != q.Y {
		return p.Y < q.Y
	}

	return p.X < q.X
}

// String renders p as "(x,y)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// TerrainType classifies how a cell affects movement.
type TerrainType int

const (
	// Normal terrain costs one movement unit to enter.
	Normal TerrainType = iota
	// Difficult terrain costs two movement units to enter.
	Difficult
	// Impassable terrain can never be entered.
	Impassable
)

var terrainNames = [...]string{
	Normal:     "normal",
	Difficult:  "difficult",
	Impassable: "impassable",
}

// String returns the wire name of t.
func (t TerrainType) String() string {
	if t < Normal || t > Impassable {
		return fmt.Sprintf("terrain(%d)", int(t))
	}

	return terrainNames[t]
}

// ParseTerrain maps a wire name back to a TerrainType (case-insensitive).
func ParseTerrain(s string) (TerrainType, error) {
	for i, name := range terrainNames {
		if strings.EqualFold(s, name) {
			return TerrainType(i), nil
		}
	}

	return Normal, fmt.Errorf("%w: %q", ErrUnknownTerrain, s)
}

// MarshalText encodes t by name so the wire format never depends on iota order.
func (t TerrainType) MarshalText() ([]byte, error) {
	if t < Normal || t > Impassable {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTerrain, int(t))
	}

	return []byte(terrainNames[t]), nil
}

// UnmarshalText decodes a terrain name.
func (t *TerrainType) UnmarshalText(text []byte) error {
	v, err := ParseTerrain(string(text))
	if err != nil {
		return err
	}
	*t = v

	return nil
}

// CellProperties describes a single cell. The zero value is the default cell:
// normal terrain, no obstacle, unoccupied.
type CellProperties struct {
	// Terrain drives movement cost.
	Terrain TerrainType `json:"terrain"`
	// HasObstacle blocks line of effect. It does not affect movement cost,
	// but pathfinding refuses to enter obstructed cells.
	HasObstacle bool `json:"hasObstacle"`
	// OccupiedBy is the creature id standing in the cell, empty when unoccupied.
	OccupiedBy string `json:"occupiedBy,omitempty"`
}

// IsOccupied reports whether a creature stands in the cell.
func (c CellProperties) IsOccupied() bool {
	return c.OccupiedBy != ""
}

// IsDefault reports whether c equals the implicit properties of an absent cell.
func (c CellProperties) IsDefault() bool {
	return c == CellProperties{}
}

// Direction is one of the eight compass headings.
type Direction int

// Compass order matches Grid.Neighbors.
const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// Directions lists every heading in compass order.
var Directions = [8]Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

// compass offsets, y grows downward
var directionVectors = [8]Position{
	North:     {0, -1},
	NorthEast: {1, -1},
	East:      {1, 0},
	SouthEast: {1, 1},
	South:     {0, 1},
	SouthWest: {-1, 1},
	West:      {-1, 0},
	NorthWest: {-1, -1},
}

var directionNames = [8]string{
	North:     "north",
	NorthEast: "northeast",
	East:      "east",
	SouthEast: "southeast",
	South:     "south",
	SouthWest: "southwest",
	West:      "west",
	NorthWest: "northwest",
}

// Valid reports whether d is one of the eight headings.
func (d Direction) Valid() bool {
	return d >= North && d <= NorthWest
}

// Vector returns the unit step for d. Diagonals step one cell on both axes.
// An invalid direction yields the zero vector.
func (d Direction) Vector() Position {
	if !d.Valid() {
		return Position{}
	}

	return directionVectors[d]
}

// Perpendicular returns d's vector rotated a quarter turn clockwise.
// For diagonals this is the other diagonal, so cone rows stay on grid lines.
func (d Direction) Perpendicular() Position {
	v := d.Vector()

	return Position{X: -v.Y, Y: v.X}
}

// String returns the lowercase compass name of d.
func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("direction(%d)", int(d))
	}

	return directionNames[d]
}

// ParseDirection accepts a compass name ("northeast") or abbreviation ("NE").
func ParseDirection(s string) (Direction, error) {
	short := map[string]Direction{
		"n": North, "ne": NorthEast, "e": East, "se": SouthEast,
		"s": South, "sw": SouthWest, "w": West, "nw": NorthWest,
	}
	lower := strings.ToLower(strings.TrimSpace(s))
	if d, ok := short[lower]; ok {
		return d, nil
	}
	for i, name := range directionNames {
		if lower == name {
			return Direction(i), nil
		}
	}

	return North, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// MarshalText encodes d by name.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDirection, int(d))
	}

	return []byte(directionNames[d]), nil
}

// UnmarshalText decodes a direction name or abbreviation.
func (d *Direction) UnmarshalText(text []byte) error {
	v, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = v

	return nil
}
