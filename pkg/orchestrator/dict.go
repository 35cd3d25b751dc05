package orchestrator

import (
	"encoding/json"

	"github.com/matzehuels/tiler/pkg/errors"
	"github.com/matzehuels/tiler/pkg/geom"
	"github.com/matzehuels/tiler/pkg/shape"
	"github.com/matzehuels/tiler/pkg/template"
)

// ToDict returns the dict form of o:
//
//	{
//	  "type": "TemplateOrchestrator",
//	  "templates": [{"type": ..., "shape": ..., "indices": [...]}, ...],
//	  "relations": [{"anchor": 0, "positioned": 1, "anchor_corner": "UPPER_RIGHT",
//	                 "positioned_corner": "UPPER_LEFT", "relative_position": "RIGHT_OF"}, ...]
//	}
//
// "relative_position" is only present on relations declared with
// [Orchestrator.AddRelation].
func (o *Orchestrator) ToDict() map[string]any {
	templates := make([]any, len(o.templates))
	for i, t := range o.templates {
		d := t.ToDict()
		d["indices"] = o.Indices(i)
		templates[i] = d
	}
	rels := o.graph.edges()
	relations := make([]any, len(rels))
	for i, r := range rels {
		d := map[string]any{
			"anchor":            r.Anchor,
			"positioned":        r.Positioned,
			"anchor_corner":     r.AnchorCorner,
			"positioned_corner": r.PositionedCorner,
		}
		if r.HasPosition {
			d["relative_position"] = r.Position
		}
		relations[i] = d
	}
	return map[string]any{
		"type":      TypeName,
		"templates": templates,
		"relations": relations,
	}
}

// ToJSON encodes ToDict with [template.Encode].
func (o *Orchestrator) ToJSON(indent string) ([]byte, error) {
	return template.Encode(o.ToDict(), indent)
}

// FromDict rebuilds an orchestrator from its dict form. Every child gets its
// own template, so aliasing in the encoded orchestrator is not restored.
func FromDict(d map[string]any) (*Orchestrator, error) {
	typ, _ := d["type"].(string)
	if typ != TypeName {
		return nil, errors.New(errors.ErrCodeUnsupportedType, "unknown orchestrator type %q", typ)
	}
	o := New()

	templates, _ := d["templates"].([]any)
	for i, raw := range templates {
		td, ok := raw.(map[string]any)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "templates[%d] is not an object", i)
		}
		t, err := template.FromDict(td)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "templates[%d]", i)
		}
		indices, err := shape.ToIntSlice(td["indices"])
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "templates[%d].indices", i)
		}
		if _, err := o.AddTemplate(t, indices); err != nil {
			return nil, err
		}
	}

	relations, _ := d["relations"].([]any)
	for i, raw := range relations {
		rd, ok := raw.(map[string]any)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "relations[%d] is not an object", i)
		}
		if err := o.addRelationDict(rd); err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "relations[%d]", i)
		}
	}
	return o, nil
}

func (o *Orchestrator) addRelationDict(d map[string]any) error {
	anchor, err := shape.ToInt(d["anchor"])
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "anchor")
	}
	positioned, err := shape.ToInt(d["positioned"])
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "positioned")
	}
	if name, ok := d["relative_position"].(string); ok {
		rel, err := geom.ParseRelativePosition(name)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "relative_position")
		}
		return o.AddRelation(positioned, rel, anchor)
	}
	ac, err := cornerField(d, "anchor_corner")
	if err != nil {
		return err
	}
	pc, err := cornerField(d, "positioned_corner")
	if err != nil {
		return err
	}
	return o.AddCornerRelation(CornerRef{Template: positioned, Corner: pc}, CornerRef{Template: anchor, Corner: ac})
}

func cornerField(d map[string]any, key string) (geom.Corner, error) {
	name, ok := d[key].(string)
	if !ok {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s must be a corner name", key)
	}
	c, err := geom.ParseCorner(name)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", key)
	}
	return c, nil
}

// ParseJSON decodes an orchestrator produced by [Orchestrator.ToJSON].
func ParseJSON(data []byte) (*Orchestrator, error) {
	var d map[string]any
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode orchestrator JSON")
	}
	return FromDict(d)
}
