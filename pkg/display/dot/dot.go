// Package dot draws the constraint graph of an orchestrator with Graphviz.
//
// Every child template becomes a box labelled with its id, type and current
// shape; every relation becomes an edge from the positioned template to its
// anchor, labelled with the relative position or the pair of corners.
// Template 0, the origin of position resolution, is filled.
//
//	src := dot.ToDOT(o, dot.Options{})
//	svg, err := dot.RenderSVG(ctx, src)
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/tiler/pkg/geom"
	"github.com/matzehuels/tiler/pkg/orchestrator"
	"github.com/matzehuels/tiler/pkg/render"
)

// Options configures graph rendering.
type Options struct {
	// Detailed adds plaquette indices and resolved positions to the labels.
	// Positions are omitted when the orchestrator does not resolve.
	Detailed bool
}

const graphHeader = `digraph G {
  rankdir=LR;
  bgcolor="transparent";
  node [shape=box, style="rounded,filled", fillcolor=white, fontsize=14, margin="0.2,0.1"];
  edge [fontsize=10];

`

// originFill highlights template 0, the origin of position resolution.
const originFill = `"#d9f7d9"`

// ToDOT converts the relations of o to Graphviz DOT.
func ToDOT(o *orchestrator.Orchestrator, opts Options) string {
	var sb strings.Builder
	sb.WriteString(graphHeader)

	var positions []geom.Position
	if opts.Detailed {
		positions, _ = o.ULPositions()
	}

	for id, t := range o.Templates() {
		label := []string{fmt.Sprintf("#%d %s", id, t.TypeName()), t.Shape().String()}
		if opts.Detailed {
			label = append(label, fmt.Sprintf("indices: %v", o.Indices(id)))
			if id < len(positions) {
				label = append(label, "at "+positions[id].String())
			}
		}
		fmt.Fprintf(&sb, "  t%d [label=%q", id, strings.Join(label, "\n"))
		if id == 0 {
			sb.WriteString(", fillcolor=" + originFill)
		}
		sb.WriteString("];\n")
	}

	sb.WriteString("\n")
	for _, r := range o.Relations() {
		edge := fmt.Sprintf("%v -> %v", r.PositionedCorner, r.AnchorCorner)
		if r.HasPosition {
			edge = r.Position.String()
		}
		fmt.Fprintf(&sb, "  t%d -> t%d [label=%q];\n", r.Positioned, r.Anchor, edge)
	}
	sb.WriteString("}\n")
	return sb.String()
}

// RenderSVG lays out src with the embedded Graphviz and returns SVG sized
// in pixels.
func RenderSVG(ctx context.Context, src string) ([]byte, error) {
	engine, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer engine.Close()

	graph, err := graphviz.ParseBytes([]byte(src))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer graph.Close()

	var out bytes.Buffer
	if err := engine.Render(ctx, graph, graphviz.SVG, &out); err != nil {
		return nil, fmt.Errorf("render graph: %w", err)
	}
	return pixelSized(out.Bytes()), nil
}

var (
	svgOpenTag  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxAttr = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// pixelSized swaps Graphviz's point-sized root element for one whose width
// and height equal the viewBox.
func pixelSized(svg []byte) []byte {
	m := viewBoxAttr.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgOpenTag.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}
