package shape

import (
	"github.com/matzehuels/tiler/pkg/errors"
	"github.com/matzehuels/tiler/pkg/geom"
)

// Kind names a shape variant. It is also the "type" value of the shape's
// dict representation.
type Kind string

const (
	KindAlternatingRectangle    Kind = "AlternatingRectangle"
	KindAlternatingSquare       Kind = "AlternatingSquare"
	KindAlternatingCornerSquare Kind = "AlternatingCornerSquare"
	KindRawRectangle            Kind = "RawRectangle"
)

// Kinds lists every shape variant.
var Kinds = []Kind{
	KindAlternatingRectangle,
	KindAlternatingSquare,
	KindAlternatingCornerSquare,
	KindRawRectangle,
}

// Shape is a tileable pattern that can instantiate itself into a grid of
// plaquette indices. The interface is sealed; the implementations in this
// package are the only ones.
type Shape interface {
	// Kind returns the variant name.
	Kind() Kind
	// Shape returns the dimensions of the grid Instantiate currently produces.
	Shape() geom.Shape2D
	// Arity returns the number of plaquette indices Instantiate expects.
	Arity() int
	// Instantiate arranges the given plaquette indices into a grid.
	Instantiate(indices ...int) (geom.Grid, error)
	// ScaleTo rescales the shape in place.
	ScaleTo(k int) error
	// Parameters returns the variant-specific fields of the dict form.
	Parameters() map[string]any

	sealed()
}

// ToDict returns the dict representation of s:
//
//	{"type": <kind>, "parameters": {...}}
func ToDict(s Shape) map[string]any {
	return map[string]any{
		"type":       string(s.Kind()),
		"parameters": s.Parameters(),
	}
}

// alternating fills a grid of shape s with a checkerboard of a and b, a on
// the upper-left cell.
func alternating(s geom.Shape2D, a, b int) geom.Grid {
	g := geom.NewGrid(s)
	for y, row := range g {
		for x := range row {
			if (x+y)%2 == 0 {
				row[x] = a
			} else {
				row[x] = b
			}
		}
	}
	return g
}

// maxDimension matches the largest size ScaleTo can produce.
const maxDimension = 2 * errors.MaxScale

func validateDimension(name string, v int) error {
	if v < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "%s must be non-negative, got %d", name, v)
	}
	if v > maxDimension {
		return errors.New(errors.ErrCodeInvalidInput, "%s must be at most %d, got %d", name, maxDimension, v)
	}
	return nil
}
