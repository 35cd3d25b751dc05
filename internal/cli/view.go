package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tiler/pkg/display"
	"github.com/matzehuels/tiler/pkg/errors"
	"github.com/matzehuels/tiler/pkg/layoutfile"
	"github.com/matzehuels/tiler/pkg/orchestrator"
	"github.com/matzehuels/tiler/pkg/pipeline"
)

var (
	viewErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
	viewHelpStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

// viewCommand creates the interactive viewer command.
func (c *CLI) viewCommand() *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "view [layout]",
		Short: "Explore a layout interactively",
		Long: `Open an interactive terminal viewer for a layout.

Keys:
  + / -        rescale every template
  r            reset to the layout's scale
  t            toggle the template table
  arrows/hjkl  scroll
  q            quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts pipeline.Options
			if err := flags.apply(&opts); err != nil {
				return err
			}
			def, err := c.loadLayout(args[0])
			if err != nil {
				return err
			}
			m := newViewModel(cmd.Context(), def, opts)
			if m.err != nil {
				return m.err
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	flags.register(cmd)
	return cmd
}

// viewModel is the bubbletea model of the interactive viewer. Each rescale
// rebuilds the orchestrator from the definition.
type viewModel struct {
	ctx     context.Context
	runner  *pipeline.Runner
	def     *layoutfile.Definition
	indices []int

	initial int // scale at start; -1 keeps the layout's own
	scale   int
	layout  *orchestrator.Layout
	stats   pipeline.Stats
	err     error

	showTable bool
	offsetX   int
	offsetY   int
	width     int
	height    int
}

func newViewModel(ctx context.Context, def *layoutfile.Definition, opts pipeline.Options) viewModel {
	initial := -1
	switch {
	case opts.Scale != nil:
		initial = *opts.Scale
	case def.Scale != nil:
		initial = *def.Scale
	}
	m := viewModel{
		ctx:       ctx,
		runner:    pipeline.NewRunner(nil, nil, log.New(io.Discard)),
		def:       def,
		indices:   opts.Indices,
		initial:   initial,
		scale:     initial,
		showTable: true,
		width:     80,
		height:    24,
	}
	m.err = m.resolve()
	return m
}

// resolve instantiates the layout at m.scale. On failure the previous
// layout is kept.
func (m *viewModel) resolve() error {
	opts := pipeline.Options{Indices: m.indices, Formats: []string{pipeline.FormatASCII}}
	if m.scale >= 0 {
		k := m.scale
		opts.Scale = &k
	}
	result, err := m.runner.Execute(m.ctx, m.def, opts)
	if err != nil {
		return err
	}
	m.layout = result.Layout
	m.stats = result.Stats
	return nil
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "+", "=":
			m.scale = max(m.scale, 0) + 1
			m.rescale()
		case "-", "_":
			if m.scale > 0 {
				m.scale--
				m.rescale()
			}
		case "r":
			m.scale = m.initial
			m.rescale()
		case "t":
			m.showTable = !m.showTable
		case "up", "k":
			m.offsetY = max(m.offsetY-1, 0)
		case "down", "j":
			m.offsetY++
		case "left", "h":
			m.offsetX = max(m.offsetX-1, 0)
		case "right", "l":
			m.offsetX++
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	m.clampOffsets()
	return m, nil
}

func (m *viewModel) rescale() {
	m.err = m.resolve()
	m.offsetX, m.offsetY = 0, 0
}

// visibleRows and visibleCols bound the grid viewport.
func (m viewModel) visibleRows() int { return max(m.height-6, 1) }
func (m viewModel) visibleCols() int { return max(m.width/display.CellWidth, 1) }

func (m *viewModel) clampOffsets() {
	if m.layout == nil {
		return
	}
	shape := m.layout.Shape()
	m.offsetY = min(m.offsetY, max(shape.Rows()-m.visibleRows(), 0))
	m.offsetX = min(m.offsetX, max(shape.Cols()-m.visibleCols(), 0))
}

func (m viewModel) View() string {
	var b strings.Builder

	scale := "as defined"
	if m.scale >= 0 {
		scale = fmt.Sprintf("k=%d", m.scale)
	}
	b.WriteString(StyleTitle.Render(m.def.Name))
	b.WriteString("  " + StyleDim.Render(scale+" · "+m.stats.Shape.String()))
	b.WriteString("\n\n")

	if m.layout != nil {
		b.WriteString(formatGrid(m.viewport(), true))
	}
	if m.err != nil {
		b.WriteString(viewErrorStyle.Render(iconError+" "+errors.UserMessage(m.err)) + "\n")
	}
	if m.showTable && m.layout != nil {
		b.WriteString("\n" + childTable(m.layout) + "\n")
	}
	b.WriteString("\n" + viewHelpStyle.Render("+/- scale  r reset  t table  ←↑↓→ scroll  q quit"))
	return b.String()
}

// viewport returns the part of the grid that fits the window.
func (m viewModel) viewport() [][]int {
	g := m.layout.Grid
	rowEnd := min(m.offsetY+m.visibleRows(), len(g))
	out := make([][]int, 0, max(rowEnd-m.offsetY, 0))
	for y := m.offsetY; y < rowEnd; y++ {
		colEnd := min(m.offsetX+m.visibleCols(), len(g[y]))
		out = append(out, g[y][min(m.offsetX, colEnd):colEnd])
	}
	return out
}
