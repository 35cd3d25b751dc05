package shape

import (
	"github.com/matzehuels/tiler/pkg/errors"
	"github.com/matzehuels/tiler/pkg/geom"
)

// AlternatingRectangle is a width×height checkerboard of two plaquettes.
// Each axis can independently be marked scalable.
type AlternatingRectangle struct {
	width, height           int
	scaleWidth, scaleHeight bool
}

// NewAlternatingRectangle returns a rectangle of the given dimensions.
// scaleWidth and scaleHeight select the axes ScaleTo resizes.
func NewAlternatingRectangle(width, height int, scaleWidth, scaleHeight bool) (*AlternatingRectangle, error) {
	if err := validateDimension("width", width); err != nil {
		return nil, err
	}
	if err := validateDimension("height", height); err != nil {
		return nil, err
	}
	return &AlternatingRectangle{
		width:       width,
		height:      height,
		scaleWidth:  scaleWidth,
		scaleHeight: scaleHeight,
	}, nil
}

func (r *AlternatingRectangle) Kind() Kind          { return KindAlternatingRectangle }
func (r *AlternatingRectangle) Shape() geom.Shape2D { return geom.Shape2D{X: r.width, Y: r.height} }
func (r *AlternatingRectangle) Arity() int          { return 2 }
func (r *AlternatingRectangle) sealed()             {}

// Instantiate returns the checkerboard of indices[0] and indices[1].
func (r *AlternatingRectangle) Instantiate(indices ...int) (geom.Grid, error) {
	if err := errors.ValidateArity(string(r.Kind()), r.Arity(), len(indices)); err != nil {
		return nil, err
	}
	return alternating(r.Shape(), indices[0], indices[1]), nil
}

// ScaleTo sets every scalable axis to 2k. Fixed axes are unchanged.
func (r *AlternatingRectangle) ScaleTo(k int) error {
	if err := errors.ValidateScale(k); err != nil {
		return err
	}
	if r.scaleWidth {
		r.width = 2 * k
	}
	if r.scaleHeight {
		r.height = 2 * k
	}
	return nil
}

func (r *AlternatingRectangle) Parameters() map[string]any {
	return map[string]any{
		"width":        r.width,
		"height":       r.height,
		"scale_width":  r.scaleWidth,
		"scale_height": r.scaleHeight,
	}
}

// AlternatingSquare is a dimension×dimension checkerboard of two plaquettes.
type AlternatingSquare struct {
	dimension int
}

// NewAlternatingSquare returns a square with the given side.
func NewAlternatingSquare(dimension int) (*AlternatingSquare, error) {
	if err := validateDimension("dimension", dimension); err != nil {
		return nil, err
	}
	return &AlternatingSquare{dimension: dimension}, nil
}

func (s *AlternatingSquare) Kind() Kind { return KindAlternatingSquare }
func (s *AlternatingSquare) Shape() geom.Shape2D {
	return geom.Shape2D{X: s.dimension, Y: s.dimension}
}
func (s *AlternatingSquare) Arity() int { return 2 }
func (s *AlternatingSquare) sealed()    {}

// Instantiate returns the checkerboard of indices[0] and indices[1].
func (s *AlternatingSquare) Instantiate(indices ...int) (geom.Grid, error) {
	if err := errors.ValidateArity(string(s.Kind()), s.Arity(), len(indices)); err != nil {
		return nil, err
	}
	return alternating(s.Shape(), indices[0], indices[1]), nil
}

// ScaleTo sets the side to 2k.
func (s *AlternatingSquare) ScaleTo(k int) error {
	if err := errors.ValidateScale(k); err != nil {
		return err
	}
	s.dimension = 2 * k
	return nil
}

func (s *AlternatingSquare) Parameters() map[string]any {
	return map[string]any{"dimension": s.dimension}
}

// AlternatingCornerSquare is an [AlternatingSquare] whose cell at one corner
// holds a third plaquette. It models the rounded corner of a surface-code
// patch.
type AlternatingCornerSquare struct {
	dimension int
	corner    geom.Corner
}

// NewAlternatingCornerSquare returns a square with the given side whose
// corner cell is distinguished.
func NewAlternatingCornerSquare(dimension int, corner geom.Corner) (*AlternatingCornerSquare, error) {
	if err := validateDimension("dimension", dimension); err != nil {
		return nil, err
	}
	if !corner.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid corner %d", int(corner))
	}
	return &AlternatingCornerSquare{dimension: dimension, corner: corner}, nil
}

func (s *AlternatingCornerSquare) Kind() Kind { return KindAlternatingCornerSquare }
func (s *AlternatingCornerSquare) Shape() geom.Shape2D {
	return geom.Shape2D{X: s.dimension, Y: s.dimension}
}
func (s *AlternatingCornerSquare) Arity() int { return 3 }
func (s *AlternatingCornerSquare) sealed()    {}

// Corner returns the distinguished corner.
func (s *AlternatingCornerSquare) Corner() geom.Corner { return s.corner }

// Instantiate returns the checkerboard of indices[0] and indices[1] with
// indices[2] at the distinguished corner cell.
func (s *AlternatingCornerSquare) Instantiate(indices ...int) (geom.Grid, error) {
	if err := errors.ValidateArity(string(s.Kind()), s.Arity(), len(indices)); err != nil {
		return nil, err
	}
	g := alternating(s.Shape(), indices[0], indices[1])
	if s.dimension == 0 {
		return g, nil
	}
	last := s.dimension - 1
	switch s.corner {
	case geom.UpperLeft:
		g[0][0] = indices[2]
	case geom.UpperRight:
		g[0][last] = indices[2]
	case geom.LowerLeft:
		g[last][0] = indices[2]
	case geom.LowerRight:
		g[last][last] = indices[2]
	}
	return g, nil
}

// ScaleTo sets the side to 2k.
func (s *AlternatingCornerSquare) ScaleTo(k int) error {
	if err := errors.ValidateScale(k); err != nil {
		return err
	}
	s.dimension = 2 * k
	return nil
}

func (s *AlternatingCornerSquare) Parameters() map[string]any {
	return map[string]any{
		"dimension": s.dimension,
		"corner":    s.corner,
	}
}
