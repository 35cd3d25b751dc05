package display

import (
	"bytes"
	"fmt"
	"math"

	"github.com/matzehuels/tiler/pkg/orchestrator"
)

const (
	// DefaultCanvasHeight is the SVG height in pixels.
	DefaultCanvasHeight = 500

	outlineStroke = "#00FF00"
	cellStroke    = "black"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	canvasHeight int
	indices      []int
	labels       bool
}

// WithCanvasHeight sets the canvas height in pixels.
func WithCanvasHeight(h int) SVGOption {
	return func(r *svgRenderer) {
		if h > 0 {
			r.canvasHeight = h
		}
	}
}

// WithIndices sets the plaquette indices [SVG] instantiates with.
func WithIndices(indices ...int) SVGOption {
	return func(r *svgRenderer) { r.indices = indices }
}

// WithoutLabels omits the plaquette index printed in every cell.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.labels = false } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{canvasHeight: DefaultCanvasHeight, labels: true}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// SVG resolves o and renders it. Without [WithIndices] it is instantiated
// with [orchestrator.DefaultIndices].
func SVG(o *orchestrator.Orchestrator, opts ...SVGOption) ([]byte, error) {
	r := newSVGRenderer(opts...)
	indices := r.indices
	if indices == nil {
		indices = orchestrator.DefaultIndices(o.ExpectedPlaquettes())
	}
	l, err := o.Resolve(indices...)
	if err != nil {
		return nil, err
	}
	return RenderSVG(l, opts...), nil
}

// frame maps layout coordinates to canvas pixels.
type frame struct {
	originX, originY float64
	pad, scale       float64
	width, height    int
}

func newFrame(l *orchestrator.Layout, canvasHeight int) frame {
	s := l.Shape()
	boxW, boxH := float64(s.X), float64(s.Y)
	pad := max(boxW, boxH) * 0.1
	boxW += pad
	boxH += pad
	f := frame{
		originX: float64(l.UL.X),
		originY: float64(l.UL.Y),
		pad:     pad,
		height:  canvasHeight,
	}
	if boxH > 0 {
		f.scale = float64(canvasHeight) / boxH
	}
	f.width = int(math.Ceil(boxW * f.scale))
	return f
}

// rect returns the canvas rectangle of the w×h cell block at (x, y).
func (f frame) rect(x, y, w, h int) (px, py, pw, ph float64) {
	px = (float64(x) - f.originX + f.pad/2) * f.scale
	py = (float64(y) - f.originY + f.pad/2) * f.scale
	return px, py, float64(w) * f.scale, float64(h) * f.scale
}

// RenderSVG draws an already resolved layout.
func RenderSVG(l *orchestrator.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	f := newFrame(l, r.canvasHeight)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		f.width, f.height, f.width, f.height)

	for _, c := range l.Children {
		for cy, row := range c.Grid {
			for cx, v := range row {
				if v == 0 {
					continue
				}
				x, y, w, h := f.rect(c.Position.X+cx, c.Position.Y+cy, 1, 1)
				writeRect(&buf, x, y, w, h, cellStroke, 2)
				if r.labels {
					fmt.Fprintf(&buf, `  <text x="%.2f" y="%.2f" font-size="10" text-anchor="middle" dominant-baseline="middle">%d</text>`+"\n",
						x+w/2, y+h/2, v)
				}
			}
		}
	}
	for _, c := range l.Children {
		x, y, w, h := f.rect(c.Position.X, c.Position.Y, c.Shape.X, c.Shape.Y)
		fmt.Fprintf(&buf, `  <g class="template" id="template-%d">`+"\n  ", c.ID)
		writeRect(&buf, x, y, w, h, outlineStroke, 3)
		fmt.Fprintf(&buf, "    <title>%d: %s %v</title>\n  </g>\n", c.ID, c.TypeName, c.Shape)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writeRect(buf *bytes.Buffer, x, y, w, h float64, stroke string, strokeWidth int) {
	fmt.Fprintf(buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" stroke="%s" stroke-width="%d" fill="none"/>`+"\n",
		x, y, w, h, stroke, strokeWidth)
}
