package geom

import "fmt"

// Position is a grid coordinate.
type Position struct {
	X int `json:"x" yaml:"x" toml:"x"`
	Y int `json:"y" yaml:"y" toml:"y"`
}

// Add returns p translated by q.
func (p Position) Add(q Position) Position { return Position{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p translated by -q.
func (p Position) Sub(q Position) Position { return Position{X: p.X - q.X, Y: p.Y - q.Y} }

func (p Position) String() string { return fmt.Sprintf("(%d, %d)", p.X, p.Y) }

// Shape2D holds the dimensions of an instantiated template: X columns by
// Y rows. Dimensions are never negative.
type Shape2D struct {
	X int `json:"x" yaml:"x" toml:"x"`
	Y int `json:"y" yaml:"y" toml:"y"`
}

// Rows returns the number of grid rows (Y).
func (s Shape2D) Rows() int { return s.Y }

// Cols returns the number of grid columns (X).
func (s Shape2D) Cols() int { return s.X }

// Area returns the number of cells.
func (s Shape2D) Area() int { return s.X * s.Y }

// Corner returns the edge coordinate of corner c relative to the upper-left
// position of a template with shape s.
func (s Shape2D) Corner(c Corner) Position {
	switch c {
	case UpperRight:
		return Position{X: s.X}
	case LowerLeft:
		return Position{Y: s.Y}
	case LowerRight:
		return Position{X: s.X, Y: s.Y}
	default:
		return Position{}
	}
}

func (s Shape2D) String() string { return fmt.Sprintf("%dx%d", s.X, s.Y) }

// Grid is a row-major 2D array of plaquette indices. Zero marks an empty
// cell.
type Grid [][]int

// NewGrid allocates a zero-filled grid of shape s.
func NewGrid(s Shape2D) Grid {
	g := make(Grid, s.Y)
	cells := make([]int, s.X*s.Y)
	for y := range g {
		g[y] = cells[y*s.X : (y+1)*s.X : (y+1)*s.X]
	}
	return g
}

// Shape returns the grid dimensions. A grid with no rows has shape 0x0.
func (g Grid) Shape() Shape2D {
	if len(g) == 0 {
		return Shape2D{}
	}
	return Shape2D{X: len(g[0]), Y: len(g)}
}

// Clone returns a deep copy of g.
func (g Grid) Clone() Grid {
	out := NewGrid(g.Shape())
	for y, row := range g {
		copy(out[y], row)
	}
	return out
}

// Paste copies src into g with its upper-left cell at offset. Every cell of
// src is written, including zeros; cells falling outside g are dropped.
func (g Grid) Paste(src Grid, offset Position) {
	for sy, row := range src {
		y := offset.Y + sy
		if y < 0 || y >= len(g) {
			continue
		}
		for sx, v := range row {
			x := offset.X + sx
			if x < 0 || x >= len(g[y]) {
				continue
			}
			g[y][x] = v
		}
	}
}
