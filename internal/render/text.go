package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/unbound-force/elemviz/internal/aggregate"
	"github.com/unbound-force/elemviz/internal/ptable"
)

// WriteText renders the vector as a colored periodic table in the
// terminal. Tile backgrounds follow the same color policy as the SVG
// heatmap; output degrades gracefully for pipes and CI.
func WriteText(w io.Writer, v aggregate.Vector, opts HeatmapOptions) error {
	if opts.Log && (opts.HeatLabels == LabelsFraction || opts.HeatLabels == LabelsPercent) {
		return &ConfigConflictError{HeatLabels: opts.HeatLabels}
	}
	applyHeatmapDefaults(&opts)
	s := DefaultStyles()

	cm, err := ColormapByName(opts.Cmap)
	if err != nil {
		return err
	}
	zeroColor, err := parseColor(opts.ZeroColor)
	if err != nil {
		return fmt.Errorf("render: zero_color: %w", err)
	}
	inftyColor, err := parseColor(opts.InftyColor)
	if err != nil {
		return fmt.Errorf("render: infty_color: %w", err)
	}
	naColor, err := parseColor(opts.NaColor)
	if err != nil {
		return fmt.Errorf("render: na_color: %w", err)
	}

	if opts.HeatLabels == LabelsFraction || opts.HeatLabels == LabelsPercent {
		v = v.Normalize()
	}
	norm := &Norm{Log: opts.Log}
	norm.autoscale(v.Values())
	if opts.CbarMax != nil {
		norm.clampMax(*opts.CbarMax)
	}

	tbl := ptable.Load()
	grid := make(map[[2]int]ptable.Element, tbl.Len())
	for _, e := range tbl.Elements() {
		grid[[2]int{e.Row, e.Column}] = e
	}

	fmt.Fprintln(w, s.Header.Render(opts.CbarTitle))

	for row := 1; row <= tbl.MaxRow(); row++ {
		var line strings.Builder
		blank := true
		for col := 1; col <= tbl.MaxColumn(); col++ {
			e, ok := grid[[2]int{row, col}]
			if !ok {
				line.WriteString(s.EmptyTile.Render(""))
				continue
			}
			blank = false

			val := v.Get(e.Symbol)
			var bg string
			switch {
			case math.IsInf(val, 1):
				bg = inftyColor.Hex()
			case math.IsNaN(val):
				bg = naColor.Hex()
			case val > 0:
				bg = cm.At(norm.Value(val))
			default:
				bg = zeroColor.Hex()
			}
			fg := opts.Text.pick(norm.Value(val))

			tile := s.Tile.
				Background(lipgloss.Color(bg)).
				Foreground(lipgloss.Color(fg))
			line.WriteString(tile.Render(e.Symbol))
		}
		if blank {
			// The spacer row between the main block and the
			// lanthanide/actinide rows.
			fmt.Fprintln(w)
			continue
		}
		fmt.Fprintln(w, line.String())
	}

	if opts.HeatLabels != LabelsNone {
		legend := fmt.Sprintf("min %s | max %s",
			formatTick(norm.Min, opts.HeatLabels),
			formatTick(norm.Max, opts.HeatLabels))
		fmt.Fprintln(w, s.Legend.Render(legend))
	}
	return nil
}

// WriteHistText renders the element prevalence ranking as a styled
// table: one row per nonzero element, sorted descending by count.
func WriteHistText(w io.Writer, v aggregate.Vector, opts HistOptions) error {
	applyHistDefaults(&opts)
	s := DefaultStyles()

	entries := v.NonZero()
	if opts.TopN > 0 && opts.TopN < len(entries) {
		entries = entries[:opts.TopN]
		fmt.Fprintln(w, s.Header.Render(fmt.Sprintf("Top %d Elements", opts.TopN)))
	} else {
		fmt.Fprintln(w, s.Header.Render("Element Prevalence"))
	}

	// Shares are relative to the displayed rows, summed after the
	// top-N cut.
	var total float64
	for _, e := range entries {
		total += e.Value
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, s.Muted.Render("No elements with nonzero count."))
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		share := fmt.Sprintf("%.1f%%", 100*e.Value/total)
		rows = append(rows, []string{
			e.Symbol,
			formatHeat(e.Value, LabelsValue, ""),
			share,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.TableHeader
			}
			return s.TableCell
		}).
		Headers("ELEMENT", "COUNT", "SHARE").
		Rows(rows...)

	fmt.Fprintln(w, t)
	return nil
}
