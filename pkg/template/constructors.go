package template

import (
	"github.com/matzehuels/tiler/pkg/geom"
	"github.com/matzehuels/tiler/pkg/shape"
)

// NewAlternatingRectangle returns a template over [shape.AlternatingRectangle].
func NewAlternatingRectangle(width, height int, scaleWidth, scaleHeight bool) (*Template, error) {
	s, err := shape.NewAlternatingRectangle(width, height, scaleWidth, scaleHeight)
	if err != nil {
		return nil, err
	}
	return New(s), nil
}

// NewAlternatingSquare returns a template over [shape.AlternatingSquare].
func NewAlternatingSquare(dimension int) (*Template, error) {
	s, err := shape.NewAlternatingSquare(dimension)
	if err != nil {
		return nil, err
	}
	return New(s), nil
}

// NewAlternatingCornerSquare returns a template over
// [shape.AlternatingCornerSquare].
func NewAlternatingCornerSquare(dimension int, corner geom.Corner) (*Template, error) {
	s, err := shape.NewAlternatingCornerSquare(dimension, corner)
	if err != nil {
		return nil, err
	}
	return New(s), nil
}

// NewRawRectangle returns a template over [shape.RawRectangle].
func NewRawRectangle(entries [][]int) (*Template, error) {
	s, err := shape.NewRawRectangle(entries)
	if err != nil {
		return nil, err
	}
	return New(s), nil
}
