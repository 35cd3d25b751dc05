package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/tiler/pkg/display"
	"github.com/matzehuels/tiler/pkg/display/dot"
	"github.com/matzehuels/tiler/pkg/geom"
	"github.com/matzehuels/tiler/pkg/orchestrator"
	"github.com/matzehuels/tiler/pkg/render"
	"github.com/matzehuels/tiler/pkg/template"
)

// Export is the JSON artifact: the orchestrator in dict form together with
// its resolution.
type Export struct {
	Name         string          `json:"name,omitempty"`
	Shape        geom.Shape2D    `json:"shape"`
	Origin       geom.Position   `json:"origin"`
	Positions    []geom.Position `json:"positions"`
	Orchestrator any             `json:"orchestrator"`
	Grid         geom.Grid       `json:"grid"`
}

// Render produces one format. The orchestrator and the layout are only
// read, so several formats may be rendered concurrently from the same pair.
func Render(ctx context.Context, format string, name string, o *orchestrator.Orchestrator, l *orchestrator.Layout, opts Options) ([]byte, error) {
	switch format {
	case FormatASCII:
		var buf bytes.Buffer
		if err := display.WriteGrid(&buf, l.Grid); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatSVG:
		return display.RenderSVG(l, svgOptions(opts)...), nil
	case FormatPNG:
		var pngOpts []display.PNGOption
		if opts.CellSize > 0 {
			pngOpts = append(pngOpts, display.WithCellSize(opts.CellSize))
		}
		return display.RenderPNG(l, pngOpts...)
	case FormatPDF:
		return render.ToPDF(ctx, display.RenderSVG(l, svgOptions(opts)...))
	case FormatJSON:
		return exportJSON(name, o, l)
	case FormatDOT:
		return []byte(dot.ToDOT(o, dot.Options{Detailed: true})), nil
	default:
		return nil, ValidateFormat(format)
	}
}

func svgOptions(opts Options) []display.SVGOption {
	if opts.CanvasHeight > 0 {
		return []display.SVGOption{display.WithCanvasHeight(opts.CanvasHeight)}
	}
	return nil
}

func exportJSON(name string, o *orchestrator.Orchestrator, l *orchestrator.Layout) ([]byte, error) {
	dict, err := template.Canonicalize(o.ToDict())
	if err != nil {
		return nil, fmt.Errorf("encode orchestrator: %w", err)
	}
	positions := make([]geom.Position, len(l.Children))
	for i, c := range l.Children {
		positions[i] = c.Position
	}
	return json.MarshalIndent(Export{
		Name:         name,
		Shape:        l.Shape(),
		Origin:       l.UL,
		Positions:    positions,
		Orchestrator: dict,
		Grid:         l.Grid,
	}, "", "  ")
}
