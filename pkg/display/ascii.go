package display

import (
	"bufio"
	"io"
	"strconv"

	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/tiler/pkg/geom"
	"github.com/matzehuels/tiler/pkg/orchestrator"
)

// CellWidth is the width of one ASCII cell.
const CellWidth = 3

// Instantiable is anything that produces a grid from plaquette indices:
// templates, shapes and orchestrators.
type Instantiable interface {
	Instantiate(indices ...int) (geom.Grid, error)
}

// ASCII instantiates t with indices and writes the grid to w. An
// orchestrator called without indices is instantiated with
// [orchestrator.DefaultIndices].
func ASCII(w io.Writer, t Instantiable, indices ...int) error {
	if o, ok := t.(*orchestrator.Orchestrator); ok && len(indices) == 0 {
		indices = orchestrator.DefaultIndices(o.ExpectedPlaquettes())
	}
	g, err := t.Instantiate(indices...)
	if err != nil {
		return err
	}
	return WriteGrid(w, g)
}

// WriteGrid writes g to w in the ASCII format.
func WriteGrid(w io.Writer, g geom.Grid) error {
	bw := bufio.NewWriter(w)
	for _, row := range g {
		for _, v := range row {
			bw.WriteString(Cell(v))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Cell formats one plaquette index right-aligned in [CellWidth] columns.
// Zero prints as ".". Wider values are not truncated.
func Cell(v int) string {
	label := "."
	if v != 0 {
		label = strconv.Itoa(v)
	}
	return runewidth.FillLeft(label, CellWidth)
}
