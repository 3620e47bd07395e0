package grid_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tacgrid/grid"
)

// TestGridJSON_FieldNames pins the wire shape: explicit names, row-major cells.
func TestGridJSON_FieldNames(t *testing.T) {
	g := grid.MustNew(10, 10).
		WithCell(grid.Pos(2, 1), grid.CellProperties{Terrain: grid.Impassable}).
		WithCell(grid.Pos(0, 1), grid.CellProperties{HasObstacle: true, OccupiedBy: "kobold"})

	data, err := json.Marshal(g)
	require.NoError(t, err)

	want := `{"width":10,"height":10,"cells":[` +
		`{"position":{"x":0,"y":1},"properties":{"terrain":"normal","hasObstacle":true,"occupiedBy":"kobold"}},` +
		`{"position":{"x":2,"y":1},"properties":{"terrain":"impassable","hasObstacle":false}}]}`
	assert.JSONEq(t, want, string(data))
	assert.Equal(t, want, string(data), "encoding must be byte-stable")
}

// TestGridJSON_Decode restores an equal grid.
func TestGridJSON_Decode(t *testing.T) {
	g := grid.MustNew(12, 20).
		WithCell(grid.Pos(11, 19), grid.CellProperties{Terrain: grid.Difficult})

	data, err := json.Marshal(g)
	require.NoError(t, err)

	var back grid.Grid
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, g.Equal(&back))
}

// TestGridJSON_EncodeRejectsOutOfBounds refuses to write what decoding would reject.
func TestGridJSON_EncodeRejectsOutOfBounds(t *testing.T) {
	g := grid.MustNew(10, 10).WithCell(grid.Pos(15, 3), grid.CellProperties{HasObstacle: true})

	_, err := json.Marshal(g)
	assert.ErrorIs(t, err, grid.ErrCellOutOfBounds)

	_, err = json.Marshal(grid.MustNew(10, 10).WithCell(grid.Pos(-1, 0), grid.CellProperties{Terrain: grid.Difficult}))
	assert.ErrorIs(t, err, grid.ErrCellOutOfBounds)
}

// TestGridJSON_DecodeRejects covers invalid wire payloads.
func TestGridJSON_DecodeRejects(t *testing.T) {
	cases := []struct {
		name string
		in   string
		err  error
	}{
		{"TooSmall", `{"width":3,"height":10,"cells":[]}`, grid.ErrDimensionOutOfRange},
		{"CellOutside", `{"width":10,"height":10,"cells":[{"position":{"x":10,"y":0},"properties":{"terrain":"normal"}}]}`, grid.ErrCellOutOfBounds},
		{"BadTerrain", `{"width":10,"height":10,"cells":[{"position":{"x":1,"y":0},"properties":{"terrain":"lava"}}]}`, grid.ErrUnknownTerrain},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var g grid.Grid
			err := json.Unmarshal([]byte(tc.in), &g)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}
