package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/unbound-force/elemviz/internal/render"
)

// keyMap defines keybindings for the interactive grid browser.
type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Quit  key.Binding
	Help  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Quit, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Quit, k.Help},
	}
}

var defaultKeyMap = keyMap{
	Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("^/k", "up")),
	Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("v/j", "down")),
	Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("</h", "left")),
	Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp(">/l", "right")),
	Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}

// Styles for the TUI.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	tileStyle = lipgloss.NewStyle().
			Width(4).
			Align(lipgloss.Center)

	emptyTileStyle = lipgloss.NewStyle().
			Width(4)

	selectedTileStyle = tileStyle.
				Bold(true).
				Reverse(true)
)

// gridModel is the Bubble Tea model for browsing a tile grid. The
// cursor walks populated tiles only; gaps and the spacer row are
// skipped.
type gridModel struct {
	grid  *render.TileGrid
	title string
	cmap  *render.Colormap
	// min and max bound the populated tile values for color scaling.
	min, max float64
	cursor   struct{ row, col int }
	help     help.Model
	keys     keyMap
}

func newGridModel(g *render.TileGrid, title string) gridModel {
	m := gridModel{
		grid:  g,
		title: title,
		help:  help.New(),
		keys:  defaultKeyMap,
		min:   math.Inf(1),
		max:   math.Inf(-1),
	}
	m.cmap, _ = render.ColormapByName("summer_r")

	for _, t := range g.Tiles {
		if math.IsInf(t.Value, 0) || math.IsNaN(t.Value) {
			continue
		}
		m.min = math.Min(m.min, t.Value)
		m.max = math.Max(m.max, t.Value)
	}
	if len(g.Tiles) > 0 {
		m.cursor.row = g.Tiles[0].Row
		m.cursor.col = g.Tiles[0].Col
	}
	return m
}

// tileColor maps a tile value onto the palette; special values reuse
// the static heatmap's conventions.
func (m gridModel) tileColor(val float64) string {
	switch {
	case math.IsInf(val, 1):
		return "#87cefa"
	case math.IsNaN(val):
		return "#ffffff"
	case m.max > m.min:
		return m.cmap.At((val - m.min) / (m.max - m.min))
	default:
		return m.cmap.At(0)
	}
}

// move walks the cursor one populated tile in the given direction,
// scanning past gaps. The cursor stays put at the grid edge.
func (m *gridModel) move(dr, dc int) {
	row, col := m.cursor.row+dr, m.cursor.col+dc
	for row >= 0 && row < m.grid.Rows && col >= 0 && col < m.grid.Cols {
		if _, ok := m.grid.At(row, col); ok {
			m.cursor.row, m.cursor.col = row, col
			return
		}
		row, col = row+dr, col+dc
	}
}

func (m gridModel) Init() tea.Cmd {
	return nil
}

func (m gridModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Up):
			m.move(-1, 0)
		case key.Matches(msg, m.keys.Down):
			m.move(1, 0)
		case key.Matches(msg, m.keys.Left):
			m.move(0, -1)
		case key.Matches(msg, m.keys.Right):
			m.move(0, 1)
		}
	}
	return m, nil
}

func (m gridModel) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(m.title))
	sb.WriteString("\n")
	sb.WriteString(renderGridContent(m))
	sb.WriteString("\n")
	sb.WriteString(renderTileDetail(m))
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

// renderGridContent draws the tile matrix with the cursor highlighted.
func renderGridContent(m gridModel) string {
	var sb strings.Builder
	for row := 0; row < m.grid.Rows; row++ {
		for col := 0; col < m.grid.Cols; col++ {
			t, ok := m.grid.At(row, col)
			if !ok {
				sb.WriteString(emptyTileStyle.Render(""))
				continue
			}
			style := tileStyle.Background(lipgloss.Color(m.tileColor(t.Value)))
			if row == m.cursor.row && col == m.cursor.col {
				style = selectedTileStyle
			}
			sb.WriteString(style.Render(t.Symbol))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderTileDetail draws the hover pane for the tile under the cursor.
func renderTileDetail(m gridModel) string {
	t, ok := m.grid.At(m.cursor.row, m.cursor.col)
	if !ok {
		return statusStyle.Render("No element selected.")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s\n", strings.ReplaceAll(t.Annotation, "\n", "  ")))
	sb.WriteString(t.Hover)
	return detailStyle.Render(sb.String())
}

// runInteractiveGrid launches the Bubble Tea browser over a tile grid.
func runInteractiveGrid(g *render.TileGrid, title string) error {
	model := newGridModel(g, title)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
