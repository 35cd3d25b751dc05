package shape

import (
	"github.com/matzehuels/tiler/pkg/errors"
	"github.com/matzehuels/tiler/pkg/geom"
)

// RawRectangle is a fixed rectangle whose cells each reference one of the
// plaquette indices supplied at instantiation. It does not scale.
type RawRectangle struct {
	entries [][]int
	arity   int
}

// NewRawRectangle returns a rectangle whose cell (y, x) will hold
// indices[entries[y][x]]. Every row must have the same length and every
// entry must be non-negative. The arity is the largest entry plus one.
func NewRawRectangle(entries [][]int) (*RawRectangle, error) {
	r := &RawRectangle{entries: make([][]int, len(entries))}
	for y, row := range entries {
		if len(row) != len(entries[0]) {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"raw rectangle row %d has %d entries, row 0 has %d", y, len(row), len(entries[0]))
		}
		for x, e := range row {
			if e < 0 {
				return nil, errors.New(errors.ErrCodeInvalidInput,
					"raw rectangle entry (%d, %d) must be non-negative, got %d", x, y, e)
			}
			r.arity = max(r.arity, e+1)
		}
		r.entries[y] = append([]int(nil), row...)
	}
	return r, nil
}

func (r *RawRectangle) Kind() Kind { return KindRawRectangle }
func (r *RawRectangle) Arity() int { return r.arity }
func (r *RawRectangle) sealed()    {}

func (r *RawRectangle) Shape() geom.Shape2D {
	if len(r.entries) == 0 {
		return geom.Shape2D{}
	}
	return geom.Shape2D{X: len(r.entries[0]), Y: len(r.entries)}
}

// Instantiate maps every entry to the plaquette index at that position.
func (r *RawRectangle) Instantiate(indices ...int) (geom.Grid, error) {
	if err := errors.ValidateArity(string(r.Kind()), r.Arity(), len(indices)); err != nil {
		return nil, err
	}
	g := geom.NewGrid(r.Shape())
	for y, row := range r.entries {
		for x, e := range row {
			g[y][x] = indices[e]
		}
	}
	return g, nil
}

// ScaleTo validates k and leaves the rectangle unchanged: raw rectangles
// have no scalable axis.
func (r *RawRectangle) ScaleTo(k int) error {
	return errors.ValidateScale(k)
}

func (r *RawRectangle) Parameters() map[string]any {
	rows := make([][]int, len(r.entries))
	for y, row := range r.entries {
		rows[y] = append([]int(nil), row...)
	}
	return map[string]any{"indices": rows}
}
