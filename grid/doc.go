// Package grid models the tactical battlefield as an immutable, sparse
// rectangular grid of square cells.
//
// What:
//
//   - Position is an integer (x, y) pair; y grows downward (row-major).
//   - CellProperties carries terrain, obstacle and occupancy for one cell.
//   - Grid stores only non-default cells; absent cells read as the zero value.
//   - Direction enumerates the eight compass headings with unit vectors.
//
// Why:
//
//   - Encounters are persisted and replayed as event logs, so every grid value
//     is a snapshot: WithCell returns a new Grid and never touches the old one.
//   - Sparse storage keeps 100×100 maps with a handful of features cheap.
//
// Complexity:
//
//   - InBounds, CellAt:  O(1).
//   - WithCell:          O(S) copy, S = number of stored cells.
//   - AllPositions:      O(W×H) lazily, nothing materialized.
//
// Errors:
//
//   - ErrDimensionOutOfRange: width or height outside [MinDimension, MaxDimension].
//   - ErrCellOutOfBounds:     decoded wire data stores a cell outside the grid.
//   - ErrUnknownTerrain:      decoded terrain name is not recognized.
//   - ErrUnknownDirection:    ParseDirection input is not a compass name.
//
// Wire format:
//
//	{"width":10,"height":10,"cells":[{"position":{"x":1,"y":1},"properties":{"terrain":"impassable","hasObstacle":false}}]}
//
// Cells are emitted in row-major order so identical grids encode to identical bytes.
package grid
