package orchestrator

import (
	"slices"

	"github.com/matzehuels/tiler/pkg/geom"
)

// Relation records that the PositionedCorner of child Positioned coincides
// with the AnchorCorner of child Anchor.
type Relation struct {
	Anchor           int
	Positioned       int
	AnchorCorner     geom.Corner
	PositionedCorner geom.Corner

	// Position is the side-by-side placement the relation was declared with.
	// It is only meaningful when HasPosition is true; corner relations leave
	// it unset.
	Position    geom.RelativePosition
	HasPosition bool
}

// offsetFrom returns the child at the other end of r, seen from child id
// placed at ul, together with that child's upper-left position. Shapes are
// read from shapes at call time.
func (r Relation) offsetFrom(id int, ul geom.Position, shapes []geom.Shape2D) (int, geom.Position) {
	anchorCorner := shapes[r.Anchor].Corner(r.AnchorCorner)
	positionedCorner := shapes[r.Positioned].Corner(r.PositionedCorner)
	if id == r.Anchor {
		return r.Positioned, ul.Add(anchorCorner).Sub(positionedCorner)
	}
	return r.Anchor, ul.Add(positionedCorner).Sub(anchorCorner)
}

// relationGraph is the undirected adjacency view of the relations between
// children. Relations keep their direction for offset computation; the
// traversal follows them both ways.
type relationGraph struct {
	relations []Relation
	incident  map[int][]int // child id -> indices into relations
}

func newRelationGraph() *relationGraph {
	return &relationGraph{incident: make(map[int][]int)}
}

func (g *relationGraph) add(r Relation) {
	i := len(g.relations)
	g.relations = append(g.relations, r)
	g.incident[r.Anchor] = append(g.incident[r.Anchor], i)
	g.incident[r.Positioned] = append(g.incident[r.Positioned], i)
}

// edges returns a copy of all relations in insertion order.
func (g *relationGraph) edges() []Relation { return slices.Clone(g.relations) }

// degree returns the number of relations touching child id.
func (g *relationGraph) degree(id int) int { return len(g.incident[id]) }

// neighbours calls fn for every relation touching child id, in insertion
// order, stopping at the first error.
func (g *relationGraph) neighbours(id int, fn func(Relation) error) error {
	for _, i := range g.incident[id] {
		if err := fn(g.relations[i]); err != nil {
			return err
		}
	}
	return nil
}
