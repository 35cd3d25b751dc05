// Package layoutfile reads declarative orchestrator layouts from TOML, YAML
// or JSON files.
//
// A layout names its templates and refers to them by name in relations:
//
//	name = "memory"
//	scale = 2
//
//	[[templates]]
//	name = "left"
//	kind = "AlternatingSquare"
//	params = { dimension = 4 }
//	indices = [0, 1]
//
//	[[templates]]
//	name = "right"
//	kind = "AlternatingRectangle"
//	params = { width = 4, height = 4, scale_width = true, scale_height = true }
//	indices = [2, 3]
//
//	[[relations]]
//	positioned = "right"
//	relation = "RIGHT_OF"
//	anchor = "left"
//
// A relation either names a relative position or gives both corners
// (positioned_corner and anchor_corner). A template may set alias_of to
// another template's name instead of kind and params; both then share one
// template object, so they always have the same shape.
//
// [Load] picks the decoder from the file extension. [Definition.Build]
// returns the orchestrator, scaled when the layout sets a scale.
package layoutfile
