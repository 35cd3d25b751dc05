// Package orchestrator composes templates into one layout.
//
// An [Orchestrator] holds an ordered list of child templates, the slice of
// global plaquette positions each child is instantiated with, and a graph of
// relative-position relations between children. Positions are never stored:
// every query resolves them from the relation graph and the current child
// shapes, so rescaling a child is always reflected by the next query.
//
// # Building
//
//	o := orchestrator.New()
//	a, _ := o.AddTemplate(left, []int{0, 1})
//	b, _ := o.AddTemplate(right, []int{2, 3})
//	_ = o.AddRelation(b, geom.RightOf, a) // b is right of a
//
// Corner relations pin an arbitrary corner of one child on a corner of
// another:
//
//	_ = o.AddCornerRelation(
//	    orchestrator.CornerRef{Template: c, Corner: geom.UpperLeft},
//	    orchestrator.CornerRef{Template: a, Corner: geom.LowerRight},
//	)
//
// # Resolution
//
// [Orchestrator.ULPositions] places child 0 at the origin and walks the
// relations breadth-first in both directions. Relations are validated lazily:
// two paths implying different positions for the same child fail with
// CONFLICTING_CONSTRAINT, and children unreachable from child 0 fail with
// DISCONNECTED_TEMPLATE.
//
// # Composition
//
// [Orchestrator.Instantiate] instantiates every child with its slice of the
// supplied indices and pastes the results, in insertion order, into a grid
// spanning the bounding box of all children. Overlapping cells take the
// value of the child added last, including its zero cells.
//
// # Aliasing
//
// Children are held by pointer. Scaling a template through the orchestrator
// scales it for every other holder, and scaling it elsewhere changes the
// orchestrator's layout. Adding the same template twice makes both slots
// scale together.
//
// Orchestrator is not safe for concurrent use.
package orchestrator
