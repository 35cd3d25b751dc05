package shape

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/tiler/pkg/errors"
	"github.com/matzehuels/tiler/pkg/geom"
)

func mustSquare(t *testing.T, dim int) *AlternatingSquare {
	t.Helper()
	s, err := NewAlternatingSquare(dim)
	if err != nil {
		t.Fatalf("NewAlternatingSquare(%d): %v", dim, err)
	}
	return s
}

func TestAlternatingSquareInstantiate(t *testing.T) {
	s := mustSquare(t, 3)
	got, err := s.Instantiate(1, 2)
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	want := geom.Grid{
		{1, 2, 1},
		{2, 1, 2},
		{1, 2, 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("grid mismatch (-want +got):\n%s", diff)
	}
}

func TestScalingLaw(t *testing.T) {
	rect, _ := NewAlternatingRectangle(3, 5, true, false)
	corner, _ := NewAlternatingCornerSquare(1, geom.LowerRight)
	raw, _ := NewRawRectangle([][]int{{0, 1, 2}})

	tests := []struct {
		name  string
		shape Shape
		want  func(k int) geom.Shape2D
	}{
		{"square", mustSquare(t, 1), func(k int) geom.Shape2D { return geom.Shape2D{X: 2 * k, Y: 2 * k} }},
		{"rectangle width only", rect, func(k int) geom.Shape2D { return geom.Shape2D{X: 2 * k, Y: 5} }},
		{"corner square", corner, func(k int) geom.Shape2D { return geom.Shape2D{X: 2 * k, Y: 2 * k} }},
		{"raw", raw, func(int) geom.Shape2D { return geom.Shape2D{X: 3, Y: 1} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k := 0; k <= 5; k++ {
				if err := tt.shape.ScaleTo(k); err != nil {
					t.Fatalf("ScaleTo(%d): %v", k, err)
				}
				if got := tt.shape.Shape(); got != tt.want(k) {
					t.Errorf("ScaleTo(%d).Shape() = %v, want %v", k, got, tt.want(k))
				}
				indices := make([]int, tt.shape.Arity())
				for i := range indices {
					indices[i] = i + 1
				}
				g, err := tt.shape.Instantiate(indices...)
				if err != nil {
					t.Fatalf("Instantiate: %v", err)
				}
				if got := g.Shape(); got != tt.want(k) {
					t.Errorf("grid shape = %v, want %v", got, tt.want(k))
				}
			}
		})
	}
}

func TestScaleToOutOfRange(t *testing.T) {
	rect, err := NewAlternatingRectangle(2, 2, true, true)
	if err != nil {
		t.Fatal(err)
	}
	corner, err := NewAlternatingCornerSquare(4, geom.LowerLeft)
	if err != nil {
		t.Fatal(err)
	}
	raw, err := NewRawRectangle([][]int{{0, 1}})
	if err != nil {
		t.Fatal(err)
	}
	shapes := []Shape{mustSquare(t, 4), rect, corner, raw}

	for _, k := range []int{-1, errors.MaxScale + 1, math.MaxInt/2 + 1, math.MaxInt} {
		for _, s := range shapes {
			t.Run(fmt.Sprintf("%s/%d", s.Kind(), k), func(t *testing.T) {
				before := s.Shape()
				if err := s.ScaleTo(k); !errors.Is(err, errors.ErrCodeInvalidScale) {
					t.Fatalf("ScaleTo(%d) = %v, want INVALID_SCALE", k, err)
				}
				if got := s.Shape(); got != before {
					t.Errorf("failed ScaleTo mutated shape to %v, want %v", got, before)
				}
			})
		}
	}
}

func TestScaleToMax(t *testing.T) {
	s := mustSquare(t, 2)
	if err := s.ScaleTo(errors.MaxScale); err != nil {
		t.Fatal(err)
	}
	want := geom.Shape2D{X: 2 * errors.MaxScale, Y: 2 * errors.MaxScale}
	if got := s.Shape(); got != want {
		t.Errorf("Shape() = %v, want %v", got, want)
	}
}

func TestArity(t *testing.T) {
	rect, _ := NewAlternatingRectangle(2, 2, false, false)
	corner, _ := NewAlternatingCornerSquare(2, geom.UpperLeft)
	raw, _ := NewRawRectangle([][]int{{0, 3}, {1, 2}})

	tests := []struct {
		name  string
		shape Shape
		want  int
	}{
		{"rectangle", rect, 2},
		{"square", mustSquare(t, 2), 2},
		{"corner", corner, 3},
		{"raw", raw, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.shape.Arity(); got != tt.want {
				t.Errorf("Arity() = %d, want %d", got, tt.want)
			}
			_, err := tt.shape.Instantiate(make([]int, tt.want+1)...)
			if !errors.Is(err, errors.ErrCodeArity) {
				t.Errorf("Instantiate with %d indices = %v, want ARITY", tt.want+1, err)
			}
		})
	}
}

func TestInstantiatePure(t *testing.T) {
	corner, _ := NewAlternatingCornerSquare(4, geom.UpperRight)
	a, _ := corner.Instantiate(1, 2, 3)
	b, _ := corner.Instantiate(1, 2, 3)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("repeated Instantiate differs (-first +second):\n%s", diff)
	}
	a[0][0] = 99
	c, _ := corner.Instantiate(1, 2, 3)
	if c[0][0] == 99 {
		t.Error("Instantiate must return a fresh grid")
	}
}

func TestAlternatingCornerSquare(t *testing.T) {
	tests := []struct {
		corner geom.Corner
		want   geom.Grid
	}{
		{geom.UpperLeft, geom.Grid{{3, 2}, {2, 1}}},
		{geom.UpperRight, geom.Grid{{1, 3}, {2, 1}}},
		{geom.LowerLeft, geom.Grid{{1, 2}, {3, 1}}},
		{geom.LowerRight, geom.Grid{{1, 2}, {2, 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.corner.String(), func(t *testing.T) {
			s, err := NewAlternatingCornerSquare(2, tt.corner)
			if err != nil {
				t.Fatal(err)
			}
			got, err := s.Instantiate(1, 2, 3)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("grid mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if _, err := NewAlternatingCornerSquare(2, geom.Corner(9)); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("invalid corner error = %v, want INVALID_INPUT", err)
	}
}

func TestRawRectangle(t *testing.T) {
	r, err := NewRawRectangle([][]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
	})
	if err != nil {
		t.Fatal(err)
	}
	got, err := r.Instantiate(10, 11, 12, 13, 14, 15, 16, 17, 18)
	if err != nil {
		t.Fatal(err)
	}
	want := geom.Grid{
		{10, 11, 12},
		{13, 14, 15},
		{16, 17, 18},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("grid mismatch (-want +got):\n%s", diff)
	}

	if _, err := NewRawRectangle([][]int{{0, 1}, {2}}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ragged rows error = %v, want INVALID_INPUT", err)
	}
	if _, err := NewRawRectangle([][]int{{-1}}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("negative entry error = %v, want INVALID_INPUT", err)
	}
}

func TestNegativeDimensions(t *testing.T) {
	if _, err := NewAlternatingSquare(-2); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("NewAlternatingSquare(-2) = %v, want INVALID_INPUT", err)
	}
	if _, err := NewAlternatingRectangle(2, -1, false, false); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("NewAlternatingRectangle(2, -1) = %v, want INVALID_INPUT", err)
	}
	if _, err := NewAlternatingSquare(2*errors.MaxScale + 1); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("NewAlternatingSquare(too large) = %v, want INVALID_INPUT", err)
	}
	if _, err := NewAlternatingRectangle(math.MaxInt, 2, false, false); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("NewAlternatingRectangle(MaxInt, 2) = %v, want INVALID_INPUT", err)
	}
}

func TestDictRoundTrip(t *testing.T) {
	rect, _ := NewAlternatingRectangle(4, 2, false, true)
	corner, _ := NewAlternatingCornerSquare(6, geom.LowerLeft)
	raw, _ := NewRawRectangle([][]int{{0, 1}, {1, 0}})

	for _, s := range []Shape{rect, mustSquare(t, 4), corner, raw} {
		t.Run(string(s.Kind()), func(t *testing.T) {
			d := ToDict(s)

			direct, err := FromDict(d)
			if err != nil {
				t.Fatalf("FromDict: %v", err)
			}
			if diff := cmp.Diff(d, ToDict(direct)); diff != "" {
				t.Errorf("direct round trip (-want +got):\n%s", diff)
			}

			data, err := json.Marshal(d)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			var decoded map[string]any
			if err := json.Unmarshal(data, &decoded); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			viaJSON, err := FromDict(decoded)
			if err != nil {
				t.Fatalf("FromDict(JSON): %v", err)
			}
			if diff := cmp.Diff(d, ToDict(viaJSON)); diff != "" {
				t.Errorf("JSON round trip (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFromDictErrors(t *testing.T) {
	tests := []struct {
		name string
		dict map[string]any
		code errors.Code
	}{
		{"no type", map[string]any{}, errors.ErrCodeInvalidInput},
		{"unknown type", map[string]any{"type": "Hexagon"}, errors.ErrCodeUnsupportedType},
		{"missing dimension", map[string]any{"type": "AlternatingSquare"}, errors.ErrCodeInvalidInput},
		{
			"fractional dimension",
			map[string]any{"type": "AlternatingSquare", "parameters": map[string]any{"dimension": 2.5}},
			errors.ErrCodeInvalidInput,
		},
		{
			"bad corner",
			map[string]any{"type": "AlternatingCornerSquare", "parameters": map[string]any{"dimension": 2, "corner": "MIDDLE"}},
			errors.ErrCodeInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromDict(tt.dict)
			if !errors.Is(err, tt.code) {
				t.Errorf("FromDict() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestToInt(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    int
		wantErr bool
	}{
		{"int", 3, 3, false},
		{"int64", int64(-4), -4, false},
		{"integral float", 7.0, 7, false},
		{"json number", json.Number("12"), 12, false},
		{"largest exact float", float64(1 << 62), 1 << 62, false},
		{"fraction", 1.5, 0, true},
		{"huge float", 1e300, 0, true},
		{"negative huge float", -1e300, 0, true},
		{"two to the 63", math.Pow(2, 63), 0, true},
		{"infinity", math.Inf(1), 0, true},
		{"nan", math.NaN(), 0, true},
		{"uint64 overflow", uint64(math.MaxUint64), 0, true},
		{"string", "3", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToInt(tt.in)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidInput) {
					t.Errorf("ToInt(%v) = %d, %v, want INVALID_INPUT", tt.in, got, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ToInt(%v) = %d, %v, want %d", tt.in, got, err, tt.want)
			}
		})
	}
}
