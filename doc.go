// Package tacgrid is a spatial engine for square-grid tactical combat:
// distances, line of effect, area templates and movement.
//
// What is in the box?
//
//	grid/         Position, CellProperties, Direction and the immutable sparse Grid
//	geometry/     Chebyshev distance, Bresenham lines, Sphere/Cube/Cone templates
//	pathfinding/  terrain cost model, deterministic A*, path validation, reachability
//	internal/     config (viper), logging (zerolog), telemetry (OpenTelemetry),
//	              revisioned map store (gorm + SQLite)
//	cmd/tacgrid/  command-line front end over all of the above
//
// Every query is a pure function of a Grid snapshot. Grids never change in
// place, so results can be cached, replayed and shared between goroutines.
//
// Quick example (5 ft squares, y grows downward):
//
//	. . # . .    # obstacle at (2,0)
//	. ~ . . .    ~ difficult terrain at (1,1)
//	. . . . .
//
//	HasLineOfEffect((0,0), (4,0)) == false
//	FindPath((0,0), (3,0)) steps diagonally around the obstacle for cost 3.
package tacgrid
