package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"github.com/matzehuels/tiler/pkg/display"
	"github.com/matzehuels/tiler/pkg/geom"
	"github.com/matzehuels/tiler/pkg/orchestrator"
	"github.com/matzehuels/tiler/pkg/pipeline"
)

// Terminal palette (ANSI 256).
var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// plaquetteColors cycles over non-zero plaquette indices, so plaquette i
// and i+8 share a colour.
var plaquetteColors = []lipgloss.Color{"36", "214", "75", "170", "35", "203", "228", "141"}

var (
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleDim   = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleHeader      = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

const (
	iconError = "✗"
	iconArrow = "→"
)

// statusKind selects the icon and colour of a status line.
type statusKind int

const (
	statusSuccess statusKind = iota
	statusError
	statusWarning
	statusInfo
)

var statusIcons = [...]struct {
	icon  string
	style lipgloss.Style
}{
	statusSuccess: {"✓", lipgloss.NewStyle().Foreground(colorGreen)},
	statusError:   {iconError, styleIconError},
	statusWarning: {"!", lipgloss.NewStyle().Foreground(colorYellow)},
	statusInfo:    {"›", lipgloss.NewStyle().Foreground(colorGray)},
}

// stdout receives status lines. Tests replace it.
var stdout io.Writer = os.Stdout

func printStatus(kind statusKind, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if kind == statusWarning {
		msg = lipgloss.NewStyle().Foreground(colorYellow).Render(msg)
	}
	si := statusIcons[kind]
	fmt.Fprintln(stdout, si.style.Render(si.icon)+" "+msg)
}

func printSuccess(format string, args ...any) { printStatus(statusSuccess, format, args...) }
func printError(format string, args ...any)   { printStatus(statusError, format, args...) }
func printWarning(format string, args ...any) { printStatus(statusWarning, format, args...) }
func printInfo(format string, args ...any)    { printStatus(statusInfo, format, args...) }

// printDetail prints an indented, muted line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints "→ path" for a written output.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// formatStats renders pipeline statistics on a single line.
func formatStats(s pipeline.Stats, cached bool) string {
	parts := []string{
		fmt.Sprintf("%d templates", s.Templates),
		fmt.Sprintf("%d relations", s.Relations),
		fmt.Sprintf("%d plaquettes", s.Plaquettes),
		s.Shape.String(),
	}

	status, statusStyle := "fresh", lipgloss.NewStyle().Foreground(colorGray)
	if cached {
		status, statusStyle = "cached", lipgloss.NewStyle().Foreground(colorGreen)
	}

	var b strings.Builder
	b.WriteString("  ")
	for i, part := range parts {
		if i > 0 {
			b.WriteString(StyleDim.Render(" · "))
		}
		b.WriteString(StyleDim.Render(part))
	}
	b.WriteString(StyleDim.Render(" · "))
	b.WriteString(statusStyle.Render(status))
	return b.String()
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// plaquetteStyle returns the style of a cell holding v. Empty cells are dim.
func plaquetteStyle(v int) lipgloss.Style {
	if v == 0 {
		return StyleDim
	}
	return lipgloss.NewStyle().Bold(true).Foreground(plaquetteColors[(v-1)%len(plaquetteColors)])
}

// formatGrid renders g in the ASCII layout of display.WriteGrid, colouring
// each cell by plaquette index when colour is set.
func formatGrid(g geom.Grid, colour bool) string {
	var b strings.Builder
	for _, row := range g {
		for _, v := range row {
			cell := display.Cell(v)
			if colour {
				cell = plaquetteStyle(v).Render(cell)
			}
			b.WriteString(cell)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// childTable renders one row per child of l.
func childTable(l *orchestrator.Layout) string {
	rows := make([][]string, len(l.Children))
	for i, c := range l.Children {
		rows[i] = []string{
			fmt.Sprint(c.ID),
			c.TypeName,
			c.Position.String(),
			c.Shape.String(),
			strings.Trim(fmt.Sprint(c.Indices), "[]"),
		}
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Template", "Position", "Shape", "Indices").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == -1: // header
				return styleHeader.Padding(0, 1)
			case col == 0:
				return base.Foreground(colorCyan)
			case col == 1:
				return base.Foreground(colorWhite)
			default:
				return base.Foreground(colorGray)
			}
		})
	return t.Render()
}
