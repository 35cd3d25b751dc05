package orchestrator

import (
	"fmt"

	"github.com/matzehuels/tiler/pkg/errors"
	"github.com/matzehuels/tiler/pkg/geom"
)

// Layout is a resolved, instantiated snapshot of an orchestrator. It does not
// reference the orchestrator's templates, so it stays valid when they are
// rescaled later and can be read from several goroutines.
type Layout struct {
	// Grid is the composed grid, sized to the bounding box.
	Grid geom.Grid
	// UL and LR bound every child; LR is exclusive. Child positions are in
	// the same coordinates, so a child's cell (x, y) lands on
	// Grid[y-UL.Y][x-UL.X].
	UL, LR geom.Position
	// Children lists every child in insertion order.
	Children []Child
	// Relations is a copy of the relation graph.
	Relations []Relation
}

// Child is one placed and instantiated template of a [Layout].
type Child struct {
	ID       int
	TypeName string
	Position geom.Position
	Shape    geom.Shape2D
	// Indices are the plaquette values the child was instantiated with.
	Indices []int
	// Grid is the child's own instantiation.
	Grid geom.Grid
}

// Shape returns the size of the layout's bounding box.
func (l *Layout) Shape() geom.Shape2D {
	return geom.Shape2D{X: l.LR.X - l.UL.X, Y: l.LR.Y - l.UL.Y}
}

// Resolve instantiates every child with its slice of indices, resolves
// positions and composes the grid. It either succeeds completely or returns
// an error and no layout.
func (o *Orchestrator) Resolve(indices ...int) (*Layout, error) {
	if err := errors.ValidateArity(TypeName, o.ExpectedPlaquettes(), len(indices)); err != nil {
		return nil, err
	}

	shapes := o.shapes()
	positions, err := o.resolve(shapes)
	if err != nil {
		return nil, err
	}
	ul, lr := boundingBox(positions, shapes)

	l := &Layout{
		Grid:      geom.NewGrid(geom.Shape2D{X: lr.X - ul.X, Y: lr.Y - ul.Y}),
		UL:        ul,
		LR:        lr,
		Children:  make([]Child, len(o.templates)),
		Relations: o.graph.edges(),
	}
	for id, t := range o.templates {
		local := make([]int, len(o.indices[id]))
		for i, p := range o.indices[id] {
			local[i] = indices[p]
		}
		g, err := t.Instantiate(local...)
		if err != nil {
			return nil, fmt.Errorf("instantiate template %d: %w", id, err)
		}
		l.Children[id] = Child{
			ID:       id,
			TypeName: t.TypeName(),
			Position: positions[id],
			Shape:    shapes[id],
			Indices:  local,
			Grid:     g,
		}
		l.Grid.Paste(g, positions[id].Sub(ul))
	}
	return l, nil
}
