// Package template wraps primitive shapes into templates, the unit the
// orchestrator composes.
//
// # Aliasing
//
// A [Template] is a mutable handle. ScaleTo rescales the owned shape in place
// and returns the same pointer, so every holder of that pointer (including
// every orchestrator the template was added to) observes the new size:
//
//	t, _ := template.NewAlternatingSquare(2)
//	o.AddTemplate(t, []int{0, 1})
//	t.ScaleTo(4)   // o now lays t out as 8x8
//
// Build separate templates when compositions must scale independently.
//
// # Serialization
//
// ToDict returns {"type": <template type>, "shape": <shape dict>} and
// ToJSON passes it through the canonical encoder [Encode], which renders the
// [geom.Corner] and [geom.RelativePosition] enumerations as their symbolic
// names and rejects every other non-primitive value with an
// UNSUPPORTED_TYPE error. [FromDict] and [ParseJSON] reverse the encoding.
package template
