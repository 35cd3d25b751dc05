// Package render converts SVG drawings to other formats.
//
// [ToPDF] and [ToPNG] shell out to rsvg-convert (from librsvg). They are used
// for the PDF output of layouts and constraint graphs, and for high
// resolution PNGs when the native rasterizer in package display is not
// wanted.
//
//	svg := display.RenderSVG(layout)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// [Available] reports whether the tool is installed, so callers can skip the
// conversion instead of failing.
package render
