package grid

import (
	"encoding/json"
	"fmt"
)

// cellRecord is the wire shape of one stored cell.
type cellRecord struct {
	Position   Position       `json:"position"`
	Properties CellProperties `json:"properties"`
}

// gridRecord is the wire shape of a Grid.
type gridRecord struct {
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Cells  []cellRecord `json:"cells"`
}

// MarshalJSON encodes g with explicit field names and row-major cell order.
// A stored cell outside the grid fails with ErrCellOutOfBounds, the same rule
// UnmarshalJSON enforces.
func (g *Grid) MarshalJSON() ([]byte, error) {
	rec := gridRecord{
		Width:  g.width,
		Height: g.height,
		Cells:  make([]cellRecord, 0, len(g.cells)),
	}
	for pos, props := range g.Cells() {
		if !g.InBounds(pos) {
			return nil, fmt.Errorf("%w: %s in %dx%d", ErrCellOutOfBounds, pos, g.width, g.height)
		}
		rec.Cells = append(rec.Cells, cellRecord{Position: pos, Properties: props})
	}

	return json.Marshal(rec)
}

// UnmarshalJSON decodes and re-validates a grid. Dimensions are checked like
// New, and every stored cell must be in bounds.
func (g *Grid) UnmarshalJSON(data []byte) error {
	var rec gridRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	if err := validateDimensions(rec.Width, rec.Height); err != nil {
		return err
	}
	decoded := &Grid{
		width:  rec.Width,
		height: rec.Height,
		cells:  make(map[Position]CellProperties, len(rec.Cells)),
	}
	for _, c := range rec.Cells {
		if !decoded.InBounds(c.Position) {
			return fmt.Errorf("%w: %s in %dx%d", ErrCellOutOfBounds, c.Position, rec.Width, rec.Height)
		}
		decoded.set(c.Position, c.Properties)
	}
	*g = *decoded

	return nil
}
