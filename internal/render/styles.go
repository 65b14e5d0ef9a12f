package render

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles defines the visual theme for terminal output. Lipgloss
// automatically degrades to no-color when output is not a TTY.
type Styles struct {
	// Header is used for titles above the table or ranking.
	Header lipgloss.Style

	// SubHeader is used for secondary information lines.
	SubHeader lipgloss.Style

	// Tile is the base style for periodic-table tiles; the heat color
	// is layered on top per tile.
	Tile lipgloss.Style

	// EmptyTile fills structurally absent grid positions.
	EmptyTile lipgloss.Style

	// TableHeader styles the header row of ranking tables.
	TableHeader lipgloss.Style

	// TableCell styles regular table cells.
	TableCell lipgloss.Style

	// Border is used for table borders.
	Border lipgloss.Style

	// Legend styles the color-scale legend line.
	Legend lipgloss.Style

	// Muted is used for de-emphasized text.
	Muted lipgloss.Style
}

// DefaultStyles returns the default color scheme for terminal output.
func DefaultStyles() Styles {
	return Styles{
		Header:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		SubHeader:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Tile:        lipgloss.NewStyle().Width(4).Align(lipgloss.Center),
		EmptyTile:   lipgloss.NewStyle().Width(4),
		TableHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		TableCell:   lipgloss.NewStyle().PaddingRight(1),
		Border:      lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
		Legend:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Muted:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}
