// Package shape implements the primitive tileable patterns of the template
// engine.
//
// A [Shape] turns a scale parameter k and a list of plaquette indices into a
// [geom.Grid]. The set of shapes is closed: [AlternatingRectangle],
// [AlternatingSquare], [AlternatingCornerSquare] and [RawRectangle]. Each
// exposes the same operations through the [Shape] interface, and [FromDict]
// switches exhaustively over [Kind] to rebuild a shape from its dict form.
//
// # Scaling
//
// The scale k of a scalable shape is half the size of its scalable axis, so
// a scaled axis always has an even size: an [AlternatingSquare] scaled to
// k=3 is 6x6. ScaleTo mutates the shape in place. Negative scales fail with
// an INVALID_SCALE error and leave the shape untouched.
//
// # Instantiation
//
// Instantiate is a pure function of the current dimensions and the supplied
// indices. Passing a number of indices different from Arity fails with an
// ARITY error.
//
//	sq, _ := shape.NewAlternatingSquare(2)
//	grid, _ := sq.Instantiate(1, 2)
//	// [[1 2]
//	//  [2 1]]
package shape
