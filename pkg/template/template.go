package template

import (
	"encoding/json"
	"strings"

	"github.com/matzehuels/tiler/pkg/errors"
	"github.com/matzehuels/tiler/pkg/geom"
	"github.com/matzehuels/tiler/pkg/shape"
)

// typeSuffix is appended to the shape kind to form the template type name.
const typeSuffix = "Template"

// Template owns exactly one shape and exposes the uniform
// scale/instantiate/shape contract used by the orchestrator.
//
// Template is not safe for concurrent use.
type Template struct {
	shape shape.Shape
}

// New wraps s into a template.
func New(s shape.Shape) *Template {
	return &Template{shape: s}
}

// Instantiate returns the grid produced by the underlying shape.
func (t *Template) Instantiate(indices ...int) (geom.Grid, error) {
	return t.shape.Instantiate(indices...)
}

// Shape returns the current grid dimensions of the template. It is not to be
// confused with [Template.ShapeInstance], which returns the owned shape.
func (t *Template) Shape() geom.Shape2D { return t.shape.Shape() }

// ShapeInstance returns the owned shape.
func (t *Template) ShapeInstance() shape.Shape { return t.shape }

// Arity returns the number of plaquette indices Instantiate expects.
func (t *Template) Arity() int { return t.shape.Arity() }

// ScaleTo rescales t in place and returns t. The scale k is half the size of
// the scalable axes. On error t is unchanged.
func (t *Template) ScaleTo(k int) (*Template, error) {
	if err := t.shape.ScaleTo(k); err != nil {
		return t, err
	}
	return t, nil
}

// TypeName returns the template type name used in the dict form, e.g.
// "AlternatingSquareTemplate".
func (t *Template) TypeName() string { return string(t.shape.Kind()) + typeSuffix }

// ToDict returns {"type": TypeName(), "shape": <shape dict>}.
func (t *Template) ToDict() map[string]any {
	return map[string]any{
		"type":  t.TypeName(),
		"shape": shape.ToDict(t.shape),
	}
}

// ToJSON encodes ToDict with [Encode].
func (t *Template) ToJSON(indent string) ([]byte, error) {
	return Encode(t.ToDict(), indent)
}

// FromDict rebuilds a template from its dict form.
func FromDict(d map[string]any) (*Template, error) {
	typeName, ok := d["type"].(string)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "template dict has no string \"type\"")
	}
	shapeDict, ok := d["shape"].(map[string]any)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "template %s has no \"shape\" object", typeName)
	}
	s, err := shape.FromDict(shapeDict)
	if err != nil {
		return nil, err
	}
	if want := string(s.Kind()) + typeSuffix; typeName != want {
		if !strings.HasSuffix(typeName, typeSuffix) {
			return nil, errors.New(errors.ErrCodeUnsupportedType, "unknown template type %q", typeName)
		}
		return nil, errors.New(errors.ErrCodeInvalidInput, "template type %q does not match shape %q", typeName, s.Kind())
	}
	return New(s), nil
}

// ParseJSON decodes a template produced by [Template.ToJSON].
func ParseJSON(data []byte) (*Template, error) {
	var d map[string]any
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode template JSON")
	}
	return FromDict(d)
}

// WithIndices pairs a template with the global plaquette positions it is
// instantiated with inside an orchestrator.
type WithIndices struct {
	Template *Template
	Indices  []int
}

// Validate checks that the number of indices matches the template arity and
// that no index is negative.
func (w WithIndices) Validate() error {
	if w.Template == nil {
		return errors.New(errors.ErrCodeInvalidInput, "template is nil")
	}
	if err := errors.ValidateArity(w.Template.TypeName(), w.Template.Arity(), len(w.Indices)); err != nil {
		return err
	}
	for i, idx := range w.Indices {
		if idx < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "plaquette index %d must be non-negative, got %d", i, idx)
		}
	}
	return nil
}
