package geometry

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/tacgrid/grid"
)

// Template is an area-of-effect shape. The set of implementations is closed:
// Sphere, Cube and Cone.
type Template interface {
	// AffectedPositions returns the in-bounds cells covered when the template
	// is placed at origin. Calls with equal arguments return equal sets.
	AffectedPositions(origin grid.Position, g *grid.Grid) PositionSet
	// Shape returns the lowercase shape name.
	Shape() string

	sealed()
}

func validateFeet(what string, feet int) error {
	if feet <= 0 || feet%FeetPerSquare != 0 {
		return fmt.Errorf("%w: %s=%d", ErrInvalidTemplateSize, what, feet)
	}

	return nil
}

func mustValid(what string, feet int) {
	if err := validateFeet(what, feet); err != nil {
		panic(err)
	}
}

// Sphere is a burst of the given radius. Under the Chebyshev metric this is a
// square of side 2r+1 around the origin.
type Sphere struct {
	RadiusFeet int `json:"radiusFeet"`
}

// NewSphere validates radiusFeet and returns a Sphere.
func NewSphere(radiusFeet int) (Sphere, error) {
	if err := validateFeet("radiusFeet", radiusFeet); err != nil {
		return Sphere{}, err
	}

	return Sphere{RadiusFeet: radiusFeet}, nil
}

// MustSphere is NewSphere that panics on invalid input.
func MustSphere(radiusFeet int) Sphere {
	mustValid("radiusFeet", radiusFeet)

	return Sphere{RadiusFeet: radiusFeet}
}

// AffectedPositions delegates to PositionsWithinRange.
func (s Sphere) AffectedPositions(origin grid.Position, g *grid.Grid) PositionSet {
	mustValid("radiusFeet", s.RadiusFeet)

	return NewPositionSet(PositionsWithinRange(origin, s.RadiusFeet, g)...)
}

// Shape implements Template.
func (Sphere) Shape() string { return "sphere" }

func (Sphere) sealed() {}

// Cube covers every cell within sideFeet/10 squares of the origin on both
// axes: a square centered on the origin cell.
type Cube struct {
	SideFeet int `json:"sideFeet"`
}

// NewCube validates sideFeet and returns a Cube.
func NewCube(sideFeet int) (Cube, error) {
	if err := validateFeet("sideFeet", sideFeet); err != nil {
		return Cube{}, err
	}

	return Cube{SideFeet: sideFeet}, nil
}

// MustCube is NewCube that panics on invalid input.
func MustCube(sideFeet int) Cube {
	mustValid("sideFeet", sideFeet)

	return Cube{SideFeet: sideFeet}
}

// AffectedPositions implements Template.
// Complexity: O(side²).
func (c Cube) AffectedPositions(origin grid.Position, g *grid.Grid) PositionSet {
	mustValid("sideFeet", c.SideFeet)
	half := c.SideFeet / (2 * FeetPerSquare)
	out := make(PositionSet, (2*half+1)*(2*half+1))
	for dy := -half; dy <= half; dy++ {
		for dx := -half; dx <= half; dx++ {
			p := origin.Add(dx, dy)
			if g.InBounds(p) {
				out.Add(p)
			}
		}
	}

	return out
}

// Shape implements Template.
func (Cube) Shape() string { return "cube" }

func (Cube) sealed() {}

// Cone approximates a 53° cone. At distance d (1..length/5) along Direction
// it is d/2 cells wide on each side, measured along the perpendicular axis.
// The origin cell itself is not part of the cone.
type Cone struct {
	LengthFeet int            `json:"lengthFeet"`
	Direction  grid.Direction `json:"direction"`
}

// NewCone validates lengthFeet and dir and returns a Cone.
func NewCone(lengthFeet int, dir grid.Direction) (Cone, error) {
	if err := validateFeet("lengthFeet", lengthFeet); err != nil {
		return Cone{}, err
	}
	if !dir.Valid() {
		return Cone{}, fmt.Errorf("%w: %d", grid.ErrUnknownDirection, int(dir))
	}

	return Cone{LengthFeet: lengthFeet, Direction: dir}, nil
}

// MustCone is NewCone that panics on invalid input.
func MustCone(lengthFeet int, dir grid.Direction) Cone {
	c, err := NewCone(lengthFeet, dir)
	if err != nil {
		panic(err)
	}

	return c
}

// AffectedPositions implements Template.
// Complexity: O(length²).
func (c Cone) AffectedPositions(origin grid.Position, g *grid.Grid) PositionSet {
	mustValid("lengthFeet", c.LengthFeet)
	dir, perp := c.Direction.Vector(), c.Direction.Perpendicular()
	length := FeetToSquares(c.LengthFeet)

	out := PositionSet{}
	for d := 1; d <= length; d++ {
		half := d / 2
		axis := origin.Add(d*dir.X, d*dir.Y)
		for off := -half; off <= half; off++ {
			p := axis.Add(off*perp.X, off*perp.Y)
			if g.InBounds(p) {
				out.Add(p)
			}
		}
	}

	return out
}

// Shape implements Template.
func (Cone) Shape() string { return "cone" }

func (Cone) sealed() {}

// ParseTemplate builds a validated template from a shape name ("sphere",
// "cube", "cone"), its size in feet and, for cones, a direction.
func ParseTemplate(shape string, sizeFeet int, dir grid.Direction) (Template, error) {
	var (
		t   Template
		err error
	)
	switch strings.ToLower(shape) {
	case "sphere":
		t, err = NewSphere(sizeFeet)
	case "cube":
		t, err = NewCube(sizeFeet)
	case "cone":
		t, err = NewCone(sizeFeet, dir)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownShape, shape)
	}
	if err != nil {
		return nil, err
	}

	return t, nil
}
