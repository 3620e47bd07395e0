// Package geometry answers "how far", "can X see Y" and "what does this
// effect hit" on a grid.Grid.
//
// What:
//
//   - Distance: Chebyshev metric (diagonal steps cost the same as orthogonal
//     ones), feet conversion at 5 ft per square, range enumeration.
//   - Line of effect: Bresenham rasterization between two cells; any obstacle
//     on an intermediate cell blocks. Creatures never block.
//   - Area-of-effect templates: Sphere, Cube and Cone, each producing the set
//     of in-bounds cells it covers.
//
// Why:
//
//   - Targeting and AoE resolution must be exactly reproducible when an
//     encounter is replayed from its event log, so every enumeration here is
//     deterministic and integer-only.
//
// Complexity:
//
//   - ChebyshevDistance, DistanceInFeet: O(1).
//   - PositionsWithinRange:              O(W×H).
//   - Line, HasLineOfEffect:             O(max(|dx|,|dy|)).
//   - PositionsWithinRangeAndLOS:        O(W×H×L), L = longest line.
//   - Sphere / Cube / Cone:              O(W×H) / O(side²) / O(length²).
//
// Errors:
//
//   - ErrInvalidTemplateSize: template dimension is not a positive multiple of 5 ft.
//   - ErrUnknownShape:        ParseTemplate shape name is not recognized.
package geometry
