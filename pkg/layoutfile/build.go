package layoutfile

import (
	"strings"

	"github.com/matzehuels/tiler/pkg/errors"
	"github.com/matzehuels/tiler/pkg/geom"
	"github.com/matzehuels/tiler/pkg/orchestrator"
	"github.com/matzehuels/tiler/pkg/shape"
	"github.com/matzehuels/tiler/pkg/template"
)

// Build creates the orchestrator described by d. Children are added in
// declaration order, so the first template is the resolution origin. When d
// sets a scale the orchestrator is scaled before it is returned.
func (d *Definition) Build() (*orchestrator.Orchestrator, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	o := orchestrator.New()
	ids := make(map[string]int, len(d.Templates))
	for _, td := range d.Templates {
		var t *template.Template
		if td.AliasOf != "" {
			t = o.Template(ids[td.AliasOf])
		} else {
			kind := shape.Kind(strings.TrimSuffix(td.Kind, "Template"))
			params := td.Params
			if params == nil {
				params = map[string]any{}
			}
			s, err := shape.FromParameters(kind, params)
			if err != nil {
				return nil, errors.Wrap(errors.GetCode(err), err, "template %q", td.Name)
			}
			t = template.New(s)
		}
		id, err := o.AddTemplate(t, td.Indices)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "template %q", td.Name)
		}
		ids[td.Name] = id
	}

	for i, rd := range d.Relations {
		if err := addRelation(o, ids, rd); err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "relations[%d]", i)
		}
	}

	if d.Scale != nil {
		if _, err := o.ScaleTo(*d.Scale); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func addRelation(o *orchestrator.Orchestrator, ids map[string]int, rd RelationDef) error {
	positioned, anchor := ids[rd.Positioned], ids[rd.Anchor]
	if rd.Relation != "" {
		rel, err := geom.ParseRelativePosition(strings.ToUpper(rd.Relation))
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "relation")
		}
		return o.AddRelation(positioned, rel, anchor)
	}
	pc, err := geom.ParseCorner(strings.ToUpper(rd.PositionedCorner))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "positioned_corner")
	}
	ac, err := geom.ParseCorner(strings.ToUpper(rd.AnchorCorner))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "anchor_corner")
	}
	return o.AddCornerRelation(
		orchestrator.CornerRef{Template: positioned, Corner: pc},
		orchestrator.CornerRef{Template: anchor, Corner: ac},
	)
}
