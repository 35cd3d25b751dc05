// Package display draws templates and orchestrators for humans.
//
// # ASCII
//
// [ASCII] prints an instantiated grid one row per line, each cell
// right-aligned in a three column field and empty cells shown as ".":
//
//	  1  2  .
//	  2  1  .
//
// Orchestrators instantiated without explicit indices use
// [orchestrator.DefaultIndices].
//
// # SVG
//
// [SVG] and [RenderSVG] draw a resolved layout: one thin labelled square per
// non-empty cell and one green outline per child template, drawn last so the
// template boundaries stay visible. The canvas height is fixed (500 pixels
// by default, see [WithCanvasHeight]); the width follows the aspect ratio of
// the bounding box plus a 10% margin. Large layouts produce large files.
//
// # PNG
//
// [RenderPNG] rasterizes the same picture natively with golang.org/x/image,
// so unlike the PDF and PNG conversions of [render] it needs no external
// tool.
//
// [render]: github.com/matzehuels/tiler/pkg/render
package display
