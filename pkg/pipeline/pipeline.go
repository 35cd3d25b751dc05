// Package pipeline turns layout definitions into rendered artifacts.
//
// The pipeline has three stages shared by the CLI and the HTTP API:
//
//  1. Build: layout definition to orchestrator, scaled when requested
//  2. Resolve: positions and the composed grid, as an immutable
//     [orchestrator.Layout] snapshot
//  3. Render: every requested format, concurrently, from the snapshot
//
// Resolved layouts and artifacts are cached under the hash of the layout
// definition and the options that affect them. Cache failures are logged and
// never fail a run.
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, def, pipeline.Options{
//	    Formats: []string{pipeline.FormatSVG, pipeline.FormatASCII},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts[pipeline.FormatSVG]
package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/tiler/pkg/cache"
	"github.com/matzehuels/tiler/pkg/errors"
	"github.com/matzehuels/tiler/pkg/geom"
	"github.com/matzehuels/tiler/pkg/orchestrator"
)

// MaxCells bounds the composed grid of one resolve. One square template at
// errors.MaxScale fills it exactly.
const MaxCells = 4 * errors.MaxScale * errors.MaxScale

// CheckSize rejects a layout whose bounding box holds more than MaxCells
// cells, before any grid is allocated.
func CheckSize(s geom.Shape2D) error {
	if s.X > 0 && s.Y > MaxCells/s.X {
		return errors.New(errors.ErrCodeInvalidInput, "layout %v exceeds %d cells", s, MaxCells)
	}
	return nil
}

// Format constants for output formats.
const (
	FormatASCII = "ascii"
	FormatSVG   = "svg"
	FormatPNG   = "png"
	FormatPDF   = "pdf"
	FormatJSON  = "json"
	FormatDOT   = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatASCII: true,
	FormatSVG:   true,
	FormatPNG:   true,
	FormatPDF:   true,
	FormatJSON:  true,
	FormatDOT:   true,
}

// Extensions maps each format to its file extension.
var Extensions = map[string]string{
	FormatASCII: ".txt",
	FormatSVG:   ".svg",
	FormatPNG:   ".png",
	FormatPDF:   ".pdf",
	FormatJSON:  ".json",
	FormatDOT:   ".dot",
}

// ContentTypes maps each format to its MIME type.
var ContentTypes = map[string]string{
	FormatASCII: "text/plain; charset=utf-8",
	FormatSVG:   "image/svg+xml",
	FormatPNG:   "image/png",
	FormatPDF:   "application/pdf",
	FormatJSON:  "application/json",
	FormatDOT:   "text/vnd.graphviz",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures one pipeline run. It supports JSON for API requests.
type Options struct {
	// Scale overrides the scale of the layout definition when set.
	Scale *int `json:"scale,omitempty"`
	// Indices are the plaquette indices; empty means DefaultIndices.
	Indices []int `json:"indices,omitempty"`

	Formats      []string `json:"formats,omitempty"`
	CanvasHeight int      `json:"canvas_height,omitempty"`
	CellSize     int      `json:"cell_size,omitempty"`

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid format: %q (must be one of: ascii, svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list. An empty string means
// SVG only.
func ParseFormats(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Scale != nil {
		if err := errors.ValidateScale(*o.Scale); err != nil {
			return err
		}
	}
	for i, idx := range o.Indices {
		if idx < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "plaquette index %d must be non-negative, got %d", i, idx)
		}
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// LayoutKeyOpts returns cache key options for the resolved layout.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{Scale: o.Scale, Indices: o.Indices}
}

// ArtifactKeyOpts returns cache key options for one rendered format. Only
// the options that affect that format are included.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, Scale: o.Scale, Indices: o.Indices}
	switch format {
	case FormatSVG, FormatPDF:
		k.CanvasHeight = o.CanvasHeight
	case FormatPNG:
		k.CellSize = o.CellSize
	}
	return k
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Orchestrator is the built and scaled orchestrator.
	Orchestrator *orchestrator.Orchestrator

	// Layout is the resolved snapshot every format was rendered from.
	Layout *orchestrator.Layout

	// LayoutHash is the content hash of the layout definition.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Templates       int
	Relations       int
	Plaquettes      int
	Shape           geom.Shape2D
	BuildTime       time.Duration
	InstantiateTime time.Duration
	RenderTime      time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the resolved layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

func (s Stats) String() string {
	return fmt.Sprintf("%d templates, %d relations, %d plaquettes, %v", s.Templates, s.Relations, s.Plaquettes, s.Shape)
}
