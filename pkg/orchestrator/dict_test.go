package orchestrator

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/tiler/pkg/errors"
	"github.com/matzehuels/tiler/pkg/geom"
	"github.com/matzehuels/tiler/pkg/template"
)

func sample(t *testing.T) *Orchestrator {
	t.Helper()
	must := mustTemplate(t)
	o := New()
	a := mustAdd(t, o, must(template.NewAlternatingCornerSquare(2, geom.LowerLeft)), 0, 1, 2)
	b := mustAdd(t, o, must(template.NewAlternatingRectangle(4, 2, true, false)), 3, 4)
	c := mustAdd(t, o, must(template.NewRawRectangle([][]int{{0, 1}})), 5, 6)
	if err := o.AddRelation(b, geom.RightOf, a); err != nil {
		t.Fatal(err)
	}
	err := o.AddCornerRelation(CornerRef{Template: c, Corner: geom.UpperLeft}, CornerRef{Template: a, Corner: geom.LowerLeft})
	if err != nil {
		t.Fatal(err)
	}
	return o
}

func TestJSONRoundTrip(t *testing.T) {
	o := sample(t)
	data, err := o.ToJSON("  ")
	if err != nil {
		t.Fatal(err)
	}
	back, err := ParseJSON(data)
	if err != nil {
		t.Fatal(err)
	}
	again, err := back.ToJSON("  ")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(string(data), string(again)); diff != "" {
		t.Errorf("JSON changed on round trip (-want +got):\n%s", diff)
	}

	want, err := o.InstantiateDefault()
	if err != nil {
		t.Fatal(err)
	}
	got, err := back.InstantiateDefault()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("decoded orchestrator instantiates differently (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(o.Relations(), back.Relations()); diff != "" {
		t.Errorf("relations mismatch (-want +got):\n%s", diff)
	}
}

func TestToDictRelations(t *testing.T) {
	d := sample(t).ToDict()
	rels := d["relations"].([]any)
	if len(rels) != 2 {
		t.Fatalf("got %d relations, want 2", len(rels))
	}
	first := rels[0].(map[string]any)
	if first["relative_position"] != geom.RightOf {
		t.Errorf("relative_position = %v, want RIGHT_OF", first["relative_position"])
	}
	if _, ok := rels[1].(map[string]any)["relative_position"]; ok {
		t.Error("corner relation must not carry relative_position")
	}
}

func TestParseJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want errors.Code
	}{
		{"malformed", `{"type":`, errors.ErrCodeInvalidFormat},
		{"wrong type", `{"type":"Orchestra","templates":[],"relations":[]}`, errors.ErrCodeUnsupportedType},
		{"unknown template", `{"type":"TemplateOrchestrator","templates":[{"type":"HexTemplate","shape":{"type":"Hex","parameters":{}},"indices":[0]}],"relations":[]}`, errors.ErrCodeUnsupportedType},
		{"bad indices", `{"type":"TemplateOrchestrator","templates":[{"type":"AlternatingSquareTemplate","shape":{"type":"AlternatingSquare","parameters":{"dimension":2}},"indices":"x"}],"relations":[]}`, errors.ErrCodeInvalidInput},
		{"arity", `{"type":"TemplateOrchestrator","templates":[{"type":"AlternatingSquareTemplate","shape":{"type":"AlternatingSquare","parameters":{"dimension":2}},"indices":[0]}],"relations":[]}`, errors.ErrCodeArity},
		{"bad corner", `{"type":"TemplateOrchestrator","templates":[],"relations":[{"anchor":0,"positioned":1,"anchor_corner":"MIDDLE","positioned_corner":"UPPER_LEFT"}]}`, errors.ErrCodeInvalidInput},
		{"unknown id", `{"type":"TemplateOrchestrator","templates":[],"relations":[{"anchor":0,"positioned":1,"relative_position":"RIGHT_OF"}]}`, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseJSON([]byte(tt.data)); !errors.Is(err, tt.want) {
				t.Errorf("ParseJSON() = %v, want %s", err, tt.want)
			}
		})
	}
}
