package layoutfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/tiler/pkg/errors"
	"github.com/matzehuels/tiler/pkg/geom"
)

func TestLoadFormatsAgree(t *testing.T) {
	var want string
	for _, name := range []string{"pair.toml", "pair.yaml", "pair.json"} {
		t.Run(name, func(t *testing.T) {
			d, err := Load(filepath.Join("testdata", name))
			if err != nil {
				t.Fatal(err)
			}
			if d.Name != "pair" {
				t.Errorf("Name = %q, want pair", d.Name)
			}
			o, err := d.Build()
			if err != nil {
				t.Fatal(err)
			}
			shape, err := o.Shape()
			if err != nil {
				t.Fatal(err)
			}
			if shape != (geom.Shape2D{X: 10, Y: 4}) {
				t.Errorf("Shape() = %v, want 10x4", shape)
			}
			if got := o.ExpectedPlaquettes(); got != 7 {
				t.Errorf("ExpectedPlaquettes() = %d, want 7", got)
			}
			data, err := o.ToJSON("")
			if err != nil {
				t.Fatal(err)
			}
			if want == "" {
				want = string(data)
				return
			}
			if diff := cmp.Diff(want, string(data)); diff != "" {
				t.Errorf("orchestrator differs from pair.toml (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"a.toml", FormatTOML},
		{"dir/a.YAML", FormatYAML},
		{"a.yml", FormatYAML},
		{"a.json", FormatJSON},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if err != nil || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, %v, want %q", tt.path, got, err, tt.want)
		}
	}
	if _, err := Load(filepath.Join("testdata", "layout.txt")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Load(layout.txt) = %v, want INVALID_FORMAT", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Load() = %v, want INVALID_INPUT", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
		want   errors.Code
	}{
		{"empty", FormatTOML, "  \n", errors.ErrCodeInvalidFormat},
		{"bad toml", FormatTOML, "templates = [", errors.ErrCodeInvalidFormat},
		{"bad yaml", FormatYAML, "templates: [a", errors.ErrCodeInvalidFormat},
		{"unknown json field", FormatJSON, `{"templates": [], "colour": "red"}`, errors.ErrCodeInvalidFormat},
		{"unknown format", Format("xml"), "<layout/>", errors.ErrCodeInvalidFormat},
		{"negative scale", FormatJSON, `{"scale": -1, "templates": []}`, errors.ErrCodeInvalidScale},
		{"scale above max", FormatJSON, `{"scale": 1025, "templates": []}`, errors.ErrCodeInvalidScale},
		{"overflowing scale", FormatJSON, `{"scale": 4611686018427387904, "templates": []}`, errors.ErrCodeInvalidScale},
		{"overflowing toml scale", FormatTOML, "scale = 9223372036854775807\n", errors.ErrCodeInvalidScale},
		{"no name", FormatJSON, `{"templates": [{"kind": "AlternatingSquare", "indices": [0, 1]}]}`, errors.ErrCodeInvalidInput},
		{"no kind", FormatJSON, `{"templates": [{"name": "a", "indices": [0, 1]}]}`, errors.ErrCodeInvalidInput},
		{"duplicate", FormatJSON, `{"templates": [{"name": "a", "kind": "AlternatingSquare"}, {"name": "a", "kind": "AlternatingSquare"}]}`, errors.ErrCodeInvalidInput},
		{"alias later", FormatJSON, `{"templates": [{"name": "a", "alias_of": "b"}, {"name": "b", "kind": "AlternatingSquare"}]}`, errors.ErrCodeInvalidInput},
		{"alias with kind", FormatJSON, `{"templates": [{"name": "a", "kind": "AlternatingSquare"}, {"name": "b", "alias_of": "a", "kind": "AlternatingSquare"}]}`, errors.ErrCodeInvalidInput},
		{"unknown relation name", FormatJSON, `{"templates": [{"name": "a", "kind": "AlternatingSquare"}], "relations": [{"positioned": "b", "anchor": "a", "relation": "RIGHT_OF"}]}`, errors.ErrCodeInvalidInput},
		{"half corners", FormatJSON, `{"templates": [{"name": "a", "kind": "AlternatingSquare"}, {"name": "b", "kind": "AlternatingSquare"}], "relations": [{"positioned": "b", "anchor": "a", "anchor_corner": "UPPER_LEFT"}]}`, errors.ErrCodeInvalidInput},
		{"relation and corners", FormatJSON, `{"templates": [{"name": "a", "kind": "AlternatingSquare"}, {"name": "b", "kind": "AlternatingSquare"}], "relations": [{"positioned": "b", "anchor": "a", "relation": "RIGHT_OF", "anchor_corner": "UPPER_LEFT", "positioned_corner": "UPPER_LEFT"}]}`, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data), tt.format); !errors.Is(err, tt.want) {
				t.Errorf("Parse() = %v, want %s", err, tt.want)
			}
		})
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want errors.Code
	}{
		{"unknown kind", `{"templates": [{"name": "a", "kind": "Hexagon", "indices": [0]}]}`, errors.ErrCodeUnsupportedType},
		{"missing param", `{"templates": [{"name": "a", "kind": "AlternatingSquare", "indices": [0, 1]}]}`, errors.ErrCodeInvalidInput},
		{"huge dimension", `{"templates": [{"name": "a", "kind": "AlternatingSquare", "params": {"dimension": 1e300}, "indices": [0, 1]}]}`, errors.ErrCodeInvalidInput},
		{"dimension above max", `{"templates": [{"name": "a", "kind": "AlternatingSquare", "params": {"dimension": 2049}, "indices": [0, 1]}]}`, errors.ErrCodeInvalidInput},
		{"arity", `{"templates": [{"name": "a", "kind": "AlternatingSquare", "params": {"dimension": 2}, "indices": [0]}]}`, errors.ErrCodeArity},
		{"bad relation", `{"templates": [{"name": "a", "kind": "AlternatingSquare", "params": {"dimension": 2}, "indices": [0, 1]}, {"name": "b", "kind": "AlternatingSquare", "params": {"dimension": 2}, "indices": [2, 3]}], "relations": [{"positioned": "b", "anchor": "a", "relation": "NEXT_TO"}]}`, errors.ErrCodeInvalidInput},
		{"self relation", `{"templates": [{"name": "a", "kind": "AlternatingSquare", "params": {"dimension": 2}, "indices": [0, 1]}], "relations": [{"positioned": "a", "anchor": "a", "relation": "RIGHT_OF"}]}`, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse([]byte(tt.data), FormatJSON)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := d.Build(); !errors.Is(err, tt.want) {
				t.Errorf("Build() = %v, want %s", err, tt.want)
			}
		})
	}
}

func TestAlias(t *testing.T) {
	data := `
templates:
  - name: a
    kind: AlternatingSquareTemplate
    params: {dimension: 2}
    indices: [0, 1]
  - name: b
    alias_of: a
    indices: [1, 0]
relations:
  - {positioned: b, relation: below_of, anchor: a}
`
	d, err := Parse([]byte(data), FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	o, err := d.Build()
	if err != nil {
		t.Fatal(err)
	}
	if o.Template(0) != o.Template(1) {
		t.Fatal("alias_of must share the template")
	}
	if _, err := o.Template(0).ScaleTo(3); err != nil {
		t.Fatal(err)
	}
	shape, err := o.Shape()
	if err != nil {
		t.Fatal(err)
	}
	if shape != (geom.Shape2D{X: 6, Y: 12}) {
		t.Errorf("Shape() = %v, want 6x12", shape)
	}
}

func TestJSONStable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "copy.toml")
	src, err := os.ReadFile(filepath.Join("testdata", "pair.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, src, 0o644); err != nil {
		t.Fatal(err)
	}
	a, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Load(filepath.Join("testdata", "pair.json"))
	if err != nil {
		t.Fatal(err)
	}
	b.Name = a.Name
	ja, err := a.JSON()
	if err != nil {
		t.Fatal(err)
	}
	jb, err := b.JSON()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(string(ja), string(jb)); diff != "" {
		t.Errorf("TOML and JSON definitions encode differently (-toml +json):\n%s", diff)
	}
}

func TestExampleLayouts(t *testing.T) {
	tests := []struct {
		file       string
		shape      geom.Shape2D
		plaquettes int
	}{
		{"surface.toml", geom.Shape2D{X: 6, Y: 6}, 7},
		{"lattice_surgery.yaml", geom.Shape2D{X: 10, Y: 4}, 9},
		{"corners.json", geom.Shape2D{X: 7, Y: 7}, 7},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			d, err := Load(filepath.Join("..", "..", "examples", "layouts", tt.file))
			if err != nil {
				t.Fatal(err)
			}
			o, err := d.Build()
			if err != nil {
				t.Fatal(err)
			}
			shape, err := o.Shape()
			if err != nil {
				t.Fatal(err)
			}
			if shape != tt.shape {
				t.Errorf("Shape() = %v, want %v", shape, tt.shape)
			}
			if got := o.ExpectedPlaquettes(); got != tt.plaquettes {
				t.Errorf("ExpectedPlaquettes() = %d, want %d", got, tt.plaquettes)
			}
			if _, err := o.InstantiateDefault(); err != nil {
				t.Errorf("InstantiateDefault() error = %v", err)
			}
		})
	}
}

func TestSurfaceDefaultGridKeepsSlotZeroEmpty(t *testing.T) {
	d, err := Load(filepath.Join("..", "..", "examples", "layouts", "surface.toml"))
	if err != nil {
		t.Fatal(err)
	}
	o, err := d.Build()
	if err != nil {
		t.Fatal(err)
	}
	g, err := o.InstantiateDefault()
	if err != nil {
		t.Fatal(err)
	}
	// Boundaries reference position 0 for their empty half.
	want := geom.Grid{
		{0, 3, 0, 3, 0, 0},
		{0, 1, 2, 1, 2, 6},
		{5, 2, 1, 2, 1, 0},
		{0, 1, 2, 1, 2, 6},
		{5, 2, 1, 2, 1, 0},
		{0, 0, 4, 0, 4, 0},
	}
	if diff := cmp.Diff(want, g); diff != "" {
		t.Errorf("default grid mismatch (-want +got):\n%s", diff)
	}
}
