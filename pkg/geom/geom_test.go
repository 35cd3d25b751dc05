package geom

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestShape2DCorner(t *testing.T) {
	s := Shape2D{X: 4, Y: 2}
	tests := []struct {
		corner Corner
		want   Position
	}{
		{UpperLeft, Position{0, 0}},
		{UpperRight, Position{4, 0}},
		{LowerLeft, Position{0, 2}},
		{LowerRight, Position{4, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.corner.String(), func(t *testing.T) {
			if got := s.Corner(tt.corner); got != tt.want {
				t.Errorf("Corner(%v) = %v, want %v", tt.corner, got, tt.want)
			}
		})
	}
}

func TestNewGrid(t *testing.T) {
	g := NewGrid(Shape2D{X: 3, Y: 2})
	if got := g.Shape(); got != (Shape2D{X: 3, Y: 2}) {
		t.Fatalf("Shape() = %v, want 3x2", got)
	}
	g[0][2] = 7
	if g[1][0] != 0 {
		t.Error("rows must not alias each other")
	}
	// Appending to a row must not spill into the next one.
	_ = append(g[0], 9)
	if g[1][0] != 0 {
		t.Errorf("append to row 0 overwrote row 1: %v", g)
	}
}

func TestGridShapeEmpty(t *testing.T) {
	var g Grid
	if got := g.Shape(); got != (Shape2D{}) {
		t.Errorf("Shape() = %v, want 0x0", got)
	}
}

func TestGridClone(t *testing.T) {
	g := Grid{{1, 2}, {3, 4}}
	c := g.Clone()
	c[0][0] = 9
	if g[0][0] != 1 {
		t.Error("Clone must not share storage")
	}
	if diff := cmp.Diff(Grid{{9, 2}, {3, 4}}, c); diff != "" {
		t.Errorf("Clone mismatch (-want +got):\n%s", diff)
	}
}

func TestGridPaste(t *testing.T) {
	g := Grid{
		{1, 1, 1},
		{1, 1, 1},
		{1, 1, 1},
	}
	g.Paste(Grid{{2, 0}, {2, 2}}, Position{X: 2, Y: 1})
	want := Grid{
		{1, 1, 1},
		{1, 1, 2},
		{1, 1, 2},
	}
	if diff := cmp.Diff(want, g); diff != "" {
		t.Errorf("Paste mismatch (-want +got):\n%s", diff)
	}

	g.Paste(Grid{{0}}, Position{X: 0, Y: 0})
	if g[0][0] != 0 {
		t.Error("Paste must write zero cells too")
	}
}

func TestCornerText(t *testing.T) {
	for _, c := range Corners {
		data, err := c.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", c, err)
		}
		var back Corner
		if err := back.UnmarshalText(data); err != nil {
			t.Fatalf("UnmarshalText(%s): %v", data, err)
		}
		if back != c {
			t.Errorf("round trip %v -> %s -> %v", c, data, back)
		}
	}

	if _, err := Corner(42).MarshalText(); err == nil {
		t.Error("MarshalText of invalid corner should fail")
	}
	if _, err := ParseCorner("MIDDLE"); err == nil {
		t.Error("ParseCorner(MIDDLE) should fail")
	}
}

func TestRelativePositionJSON(t *testing.T) {
	data, err := json.Marshal(map[string]RelativePosition{"rel": RightOf})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"rel":"RIGHT_OF"}` {
		t.Errorf("marshal = %s, want {\"rel\":\"RIGHT_OF\"}", data)
	}

	var back map[string]RelativePosition
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back["rel"] != RightOf {
		t.Errorf("unmarshal = %v, want RIGHT_OF", back["rel"])
	}

	if err := json.Unmarshal([]byte(`{"rel":"NEAR"}`), &back); err == nil {
		t.Error("unmarshal of unknown name should fail")
	}
}

func TestRelativePositionCorners(t *testing.T) {
	anchor := Shape2D{X: 3, Y: 2}
	placed := Shape2D{X: 2, Y: 4}
	tests := []struct {
		rel  RelativePosition
		want Position // upper-left of placed when anchor is at origin
	}{
		{AboveOf, Position{0, -4}},
		{BelowOf, Position{0, 2}},
		{LeftOf, Position{-2, 0}},
		{RightOf, Position{3, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.rel.String(), func(t *testing.T) {
			pc, ac := tt.rel.Corners()
			got := anchor.Corner(ac).Sub(placed.Corner(pc))
			if got != tt.want {
				t.Errorf("%v: ul = %v, want %v", tt.rel, got, tt.want)
			}
		})
	}
}
