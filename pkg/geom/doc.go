// Package geom provides the immutable 2D value types shared by the template
// engine: grid coordinates, grid dimensions, instantiated grids, and the two
// fixed enumerations used to express relative placement.
//
// # Coordinates
//
// [Position] and [Shape2D] both use X for the horizontal axis (columns) and
// Y for the vertical axis (rows), with Y growing downward. A [Grid] is
// row-major: grid[y][x].
//
// # Corners
//
// Corners are measured on cell edges, not cell centers. For a template of
// shape w×h the four corners sit at (0,0), (w,0), (0,h) and (w,h) relative
// to its upper-left position, so two templates whose corners coincide are
// adjacent without overlapping:
//
//	ul := geom.Shape2D{X: 3, Y: 3}.Corner(geom.UpperRight) // (3, 0)
//
// # Enumerations
//
// [Corner] and [RelativePosition] serialize to their symbolic names
// ("UPPER_LEFT", "RIGHT_OF", ...) through encoding.TextMarshaler, which
// keeps JSON, TOML and YAML representations identical.
package geom
