package orchestrator

import (
	"fmt"
	"slices"

	"github.com/matzehuels/tiler/pkg/errors"
	"github.com/matzehuels/tiler/pkg/geom"
	"github.com/matzehuels/tiler/pkg/template"
)

// TypeName is the "type" value of an orchestrator's dict form.
const TypeName = "TemplateOrchestrator"

// CornerRef designates one corner of one child template.
type CornerRef struct {
	Template int
	Corner   geom.Corner
}

// Orchestrator is a composite template: child templates placed relative to
// each other and instantiated into one grid.
type Orchestrator struct {
	templates []*template.Template
	indices   [][]int
	graph     *relationGraph
}

// New returns an empty orchestrator.
func New() *Orchestrator {
	return &Orchestrator{graph: newRelationGraph()}
}

// AddTemplate registers t as a new child instantiated with the plaquettes at
// the given positions of the global index list. It returns the child id,
// which is the insertion order.
//
// The template is stored by reference (see the package aliasing notes).
func (o *Orchestrator) AddTemplate(t *template.Template, indices []int) (int, error) {
	return o.AddTemplateWithIndices(template.WithIndices{Template: t, Indices: indices})
}

// AddTemplateWithIndices is [Orchestrator.AddTemplate] for a pre-built pair.
func (o *Orchestrator) AddTemplateWithIndices(w template.WithIndices) (int, error) {
	if err := w.Validate(); err != nil {
		return -1, errors.Wrap(errors.GetCode(err), err, "add template %d", len(o.templates))
	}
	id := len(o.templates)
	o.templates = append(o.templates, w.Template)
	o.indices = append(o.indices, slices.Clone(w.Indices))
	return id, nil
}

// AddRelation declares that child positioned sits at rel of child anchor:
// AddRelation(b, geom.RightOf, a) places b to the right of a, upper edges
// aligned.
//
// Unknown ids and self relations fail immediately. Consistency with the
// other relations is checked when positions are resolved.
func (o *Orchestrator) AddRelation(positioned int, rel geom.RelativePosition, anchor int) error {
	if !rel.Valid() {
		return errors.New(errors.ErrCodeInvalidInput, "invalid relative position %d", int(rel))
	}
	pc, ac := rel.Corners()
	r := Relation{
		Anchor:           anchor,
		Positioned:       positioned,
		AnchorCorner:     ac,
		PositionedCorner: pc,
		Position:         rel,
		HasPosition:      true,
	}
	if err := o.checkRelation(r); err != nil {
		return err
	}
	o.graph.add(r)
	return nil
}

// AddCornerRelation declares that the corner referenced by positioned
// coincides with the corner referenced by anchor.
func (o *Orchestrator) AddCornerRelation(positioned, anchor CornerRef) error {
	if !positioned.Corner.Valid() || !anchor.Corner.Valid() {
		return errors.New(errors.ErrCodeInvalidInput, "invalid corner in relation %v -> %v", positioned, anchor)
	}
	r := Relation{
		Anchor:           anchor.Template,
		Positioned:       positioned.Template,
		AnchorCorner:     anchor.Corner,
		PositionedCorner: positioned.Corner,
	}
	if err := o.checkRelation(r); err != nil {
		return err
	}
	o.graph.add(r)
	return nil
}

func (o *Orchestrator) checkRelation(r Relation) error {
	for _, id := range []int{r.Anchor, r.Positioned} {
		if !o.has(id) {
			return errors.New(errors.ErrCodeInvalidInput, "unknown template id %d (have %d templates)", id, len(o.templates))
		}
	}
	if r.Anchor == r.Positioned {
		return errors.New(errors.ErrCodeInvalidInput, "template %d cannot be positioned relative to itself", r.Anchor)
	}
	return nil
}

// Len returns the number of children.
func (o *Orchestrator) Len() int { return len(o.templates) }

// Templates returns the children in insertion order. The slice is a copy;
// the templates are shared.
func (o *Orchestrator) Templates() []*template.Template { return slices.Clone(o.templates) }

// Template returns child id, or nil when there is no such child.
func (o *Orchestrator) Template(id int) *template.Template {
	if !o.has(id) {
		return nil
	}
	return o.templates[id]
}

// Indices returns a copy of the global plaquette positions child id is
// instantiated with, or nil when there is no such child.
func (o *Orchestrator) Indices(id int) []int {
	if !o.has(id) {
		return nil
	}
	return slices.Clone(o.indices[id])
}

func (o *Orchestrator) has(id int) bool { return id >= 0 && id < len(o.templates) }

// Relations returns a copy of all relations in insertion order.
func (o *Orchestrator) Relations() []Relation { return o.graph.edges() }

// Degree returns the number of relations touching child id.
func (o *Orchestrator) Degree(id int) int { return o.graph.degree(id) }

// ExpectedPlaquettes returns the length of the index list Instantiate
// expects: one more than the largest position referenced by any child. When
// the children's slices are disjoint and cover 0..n-1 this is the sum of
// their lengths.
func (o *Orchestrator) ExpectedPlaquettes() int {
	n := 0
	for _, slice := range o.indices {
		for _, i := range slice {
			n = max(n, i+1)
		}
	}
	return n
}

// ScaleTo scales every child to k, in insertion order, and returns o. The
// scale is validated before any child is touched.
func (o *Orchestrator) ScaleTo(k int) (*Orchestrator, error) {
	if err := errors.ValidateScale(k); err != nil {
		return o, err
	}
	for id, t := range o.templates {
		if _, err := t.ScaleTo(k); err != nil {
			return o, fmt.Errorf("scale template %d: %w", id, err)
		}
	}
	return o, nil
}

// shapes snapshots the current shape of every child.
func (o *Orchestrator) shapes() []geom.Shape2D {
	out := make([]geom.Shape2D, len(o.templates))
	for i, t := range o.templates {
		out[i] = t.Shape()
	}
	return out
}

// ULPositions resolves the absolute upper-left position of every child,
// indexed by child id. Child 0 is placed at the origin. The result reflects
// the current shape of every child.
func (o *Orchestrator) ULPositions() ([]geom.Position, error) {
	return o.resolve(o.shapes())
}

func (o *Orchestrator) resolve(shapes []geom.Shape2D) ([]geom.Position, error) {
	n := len(o.templates)
	positions := make([]geom.Position, n)
	if n == 0 {
		return positions, nil
	}

	placed := make([]bool, n)
	placed[0] = true
	queue := []int{0}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		err := o.graph.neighbours(cur, func(r Relation) error {
			other, ul := r.offsetFrom(cur, positions[cur], shapes)
			if placed[other] {
				if positions[other] != ul {
					return errors.New(errors.ErrCodeConflictingConstraint,
						"template %d is placed at %v but relation %d:%v -> %d:%v puts it at %v",
						other, positions[other], r.Positioned, r.PositionedCorner, r.Anchor, r.AnchorCorner, ul)
				}
				return nil
			}
			positions[other] = ul
			placed[other] = true
			queue = append(queue, other)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	var missing []int
	for id, ok := range placed {
		if !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, errors.New(errors.ErrCodeDisconnectedTemplate,
			"templates %v are not connected to template 0", missing)
	}
	return positions, nil
}

// BoundingBox returns the upper-left and lower-right corners of the smallest
// box containing every child placed at positions. The lower-right corner is
// exclusive. An orchestrator without children has an empty box at the
// origin.
func (o *Orchestrator) BoundingBox(positions []geom.Position) (ul, lr geom.Position) {
	return boundingBox(positions, o.shapes())
}

func boundingBox(positions []geom.Position, shapes []geom.Shape2D) (ul, lr geom.Position) {
	if len(positions) == 0 {
		return geom.Position{}, geom.Position{}
	}
	ul, lr = positions[0], positions[0].Add(shapes[0].Corner(geom.LowerRight))
	for i, p := range positions[1:] {
		end := p.Add(shapes[i+1].Corner(geom.LowerRight))
		ul = geom.Position{X: min(ul.X, p.X), Y: min(ul.Y, p.Y)}
		lr = geom.Position{X: max(lr.X, end.X), Y: max(lr.Y, end.Y)}
	}
	return ul, lr
}

// Shape returns the size of the bounding box of all children.
func (o *Orchestrator) Shape() (geom.Shape2D, error) {
	shapes := o.shapes()
	positions, err := o.resolve(shapes)
	if err != nil {
		return geom.Shape2D{}, err
	}
	ul, lr := boundingBox(positions, shapes)
	return geom.Shape2D{X: lr.X - ul.X, Y: lr.Y - ul.Y}, nil
}

// Instantiate composes the children into one grid. indices must hold
// exactly ExpectedPlaquettes values; child i receives
// indices[p] for every position p of its slice.
func (o *Orchestrator) Instantiate(indices ...int) (geom.Grid, error) {
	l, err := o.Resolve(indices...)
	if err != nil {
		return nil, err
	}
	return l.Grid, nil
}

// InstantiateDefault instantiates with [DefaultIndices].
func (o *Orchestrator) InstantiateDefault() (geom.Grid, error) {
	return o.Instantiate(DefaultIndices(o.ExpectedPlaquettes())...)
}

// DefaultIndices returns 0..n-1, the identity numbering: position p holds
// plaquette p, so slot 0 stays empty.
func DefaultIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
