package render

import (
	"fmt"
	"html"
	"io"
	"math"
	"strings"

	"github.com/unbound-force/elemviz/internal/aggregate"
	"github.com/unbound-force/elemviz/internal/ptable"
)

// HeatLabels selects how tile values are displayed.
type HeatLabels string

const (
	// LabelsValue displays heat values as-is.
	LabelsValue HeatLabels = "value"
	// LabelsFraction normalizes values to fractions of the total.
	LabelsFraction HeatLabels = "fraction"
	// LabelsPercent normalizes values to percentages of the total.
	LabelsPercent HeatLabels = "percent"
	// LabelsNone hides heat labels and the color-scale legend.
	LabelsNone HeatLabels = "none"
)

// ConfigConflictError reports a log color scale combined with
// fraction/percent label normalization; normalization changes the
// scale's semantics in a way a log axis cannot represent.
type ConfigConflictError struct {
	HeatLabels HeatLabels
}

func (e *ConfigConflictError) Error() string {
	return fmt.Sprintf("render: log color scale cannot be combined with heat labels %q", e.HeatLabels)
}

// TextColorMode discriminates the tile text color policy.
type TextColorMode int

const (
	// TextAuto picks black below and white above the scale midpoint.
	TextAuto TextColorMode = iota
	// TextFixed uses one color for every tile.
	TextFixed
	// TextPair uses Lower below and Upper above the scale midpoint.
	TextPair
)

// TextColor is the tile text color policy.
type TextColor struct {
	Mode  TextColorMode
	Fixed string
	Upper string
	Lower string
}

// AutoText returns the auto-contrast policy.
func AutoText() TextColor { return TextColor{Mode: TextAuto} }

// FixedText returns a single-color policy.
func FixedText(color string) TextColor {
	return TextColor{Mode: TextFixed, Fixed: color}
}

// PairText returns a two-tone policy split at the scale midpoint.
func PairText(upper, lower string) TextColor {
	return TextColor{Mode: TextPair, Upper: upper, Lower: lower}
}

// pick resolves the text color for a normalized tile value. The
// midpoint comparison is false for NaN, matching the lower color.
func (tc TextColor) pick(normVal float64) string {
	switch tc.Mode {
	case TextFixed:
		return tc.Fixed
	case TextPair:
		if normVal > 0.5 {
			return tc.Upper
		}
		return tc.Lower
	default:
		if normVal > 0.5 {
			return "#ffffff"
		}
		return "#000000"
	}
}

// legendEntry is one swatch+text pair appended below the table by the
// ratio compositor.
type legendEntry struct {
	color string
	text  string
}

// HeatmapOptions configures the periodic-table heatmap.
type HeatmapOptions struct {
	// Log switches the color normalization from linear to logarithmic.
	Log bool
	// CbarTitle is the color-scale legend title.
	CbarTitle string
	// CbarMax caps the color scale's upper bound. The cap is applied
	// only when it exceeds the largest plotted value.
	CbarMax *float64
	// Cmap names the color palette.
	Cmap string
	// ZeroColor fills tiles whose value is exactly zero.
	ZeroColor string
	// InftyColor fills tiles whose value is +Inf.
	InftyColor string
	// NaColor fills tiles whose value is NaN.
	NaColor string
	// HeatLabels selects the label normalization mode.
	HeatLabels HeatLabels
	// Precision is a fmt verb for heat labels, e.g. "%.2f". Empty
	// falls back to "%.1f%%" of 100x the value for percent labels,
	// "%.3g" otherwise.
	Precision string
	// Text is the tile text color policy.
	Text TextColor

	legend []legendEntry
}

// DefaultHeatmapOptions mirrors the historical defaults: summer_r
// palette, light-gray zero tiles, sky-blue infinity tiles, white NaN
// tiles, value labels, auto-contrast text.
func DefaultHeatmapOptions() HeatmapOptions {
	return HeatmapOptions{
		CbarTitle:  "Element Count",
		Cmap:       "summer_r",
		ZeroColor:  "#DDDDDD",
		InftyColor: "lightskyblue",
		NaColor:    "white",
		HeatLabels: LabelsValue,
		Text:       AutoText(),
	}
}

// SVG tile geometry.
const (
	cellSize = 64.0
	tileFrac = 0.9
	svgPad   = 10.0
)

// Heatmap renders the vector as a periodic-table heatmap SVG.
func Heatmap(w io.Writer, v aggregate.Vector, opts HeatmapOptions) error {
	if opts.Log && (opts.HeatLabels == LabelsFraction || opts.HeatLabels == LabelsPercent) {
		return &ConfigConflictError{HeatLabels: opts.HeatLabels}
	}
	applyHeatmapDefaults(&opts)

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
	width := float64(tbl.MaxColumn())*cellSize + 2*svgPad
	height := (float64(tbl.MaxRow())+0.5)*cellSize + 2*svgPad

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f">`, width, height)
	sb.WriteString("\n")

	for _, e := range tbl.Elements() {
		val := v.Get(e.Symbol)
		x := svgPad + float64(e.Column-1)*cellSize
		y := svgPad + float64(e.Row-1)*cellSize
		if e.Row > 7 {
			// Lanthanide/actinide rows sit half a cell lower to
			// separate them from the main block.
			y += 0.5 * cellSize
		}

		var fill, label string
		switch {
		case math.IsInf(val, 1):
			fill = inftyColor.Hex()
			label = "∞"
		case math.IsNaN(val):
			fill = naColor.Hex()
			label = "0/0"
		case val > 0:
			fill = cm.At(norm.Value(val))
			label = formatHeat(val, opts.HeatLabels, opts.Precision)
		default:
			fill = zeroColor.Hex()
			label = formatHeat(val, opts.HeatLabels, opts.Precision)
		}

		tile := cellSize * tileFrac
		fmt.Fprintf(&sb,
			`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="gray"/>`,
			x, y, tile, tile, fill)
		sb.WriteString("\n")

		textColor := opts.Text.pick(norm.Value(val))
		symY := y + 0.42*tile
		if opts.HeatLabels == LabelsNone {
			// No label below, so center the symbol in the tile.
			symY = y + 0.56*tile
		}
		fmt.Fprintf(&sb,
			`<text x="%.1f" y="%.1f" text-anchor="middle" font-size="16" font-weight="600" fill="%s">%s</text>`,
			x+0.5*tile, symY, textColor, e.Symbol)
		sb.WriteString("\n")

		if opts.HeatLabels != LabelsNone {
			fmt.Fprintf(&sb,
				`<text x="%.1f" y="%.1f" text-anchor="middle" font-size="12" fill="%s">%s</text>`,
				x+0.5*tile, y+0.85*tile, textColor, html.EscapeString(label))
			sb.WriteString("\n")
		}
	}

	if opts.HeatLabels != LabelsNone {
		writeColorBar(&sb, cm, norm, opts, width)
	}
	for i, entry := range opts.legend {
		writeLegendEntry(&sb, entry, i, height)
	}

	sb.WriteString("</svg>\n")
	_, err = io.WriteString(w, sb.String())
	return err
}

func applyHeatmapDefaults(opts *HeatmapOptions) {
	def := DefaultHeatmapOptions()
	if opts.CbarTitle == "" {
		opts.CbarTitle = def.CbarTitle
	}
	if opts.Cmap == "" {
		opts.Cmap = def.Cmap
	}
	if opts.ZeroColor == "" {
		opts.ZeroColor = def.ZeroColor
	}
	if opts.InftyColor == "" {
		opts.InftyColor = def.InftyColor
	}
	if opts.NaColor == "" {
		opts.NaColor = def.NaColor
	}
	if opts.HeatLabels == "" {
		opts.HeatLabels = def.HeatLabels
	}
}

// formatHeat formats a tile label. Scientific notation is compacted
// (1e+05 becomes 1e5) so labels fit inside tiles.
func formatHeat(val float64, labels HeatLabels, precision string) string {
	var label string
	switch {
	case precision != "":
		label = fmt.Sprintf(precision, val)
	case labels == LabelsPercent:
		label = fmt.Sprintf("%.1f%%", 100*val)
	default:
		label = fmt.Sprintf("%.3g", val)
	}
	label = strings.Replace(label, "e+0", "e", 1)
	return strings.Replace(label, "e+", "e", 1)
}

// writeColorBar draws a horizontal gradient legend in the empty region
// above the transition metals.
func writeColorBar(sb *strings.Builder, cm *Colormap, norm *Norm, opts HeatmapOptions, width float64) {
	barX := 0.18 * width
	barW := 0.42 * width
	barY := svgPad + 0.45*cellSize
	barH := 0.35 * cellSize

	sb.WriteString(`<defs><linearGradient id="cbar" x1="0" y1="0" x2="1" y2="0">`)
	for _, s := range cm.Stops() {
		fmt.Fprintf(sb, `<stop offset="%.4f" stop-color="%s"/>`, s.Pos, s.Color)
	}
	sb.WriteString(`</linearGradient></defs>`)
	sb.WriteString("\n")

	fmt.Fprintf(sb,
		`<text x="%.1f" y="%.1f" text-anchor="middle" font-size="16" font-weight="600">%s</text>`,
		barX+barW/2, barY-8, html.EscapeString(opts.CbarTitle))
	sb.WriteString("\n")
	fmt.Fprintf(sb,
		`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="url(#cbar)" stroke="black" stroke-width="1"/>`,
		barX, barY, barW, barH)
	sb.WriteString("\n")

	ticks := []struct {
		frac float64
		val  float64
	}{
		{0, norm.Min},
		{0.5, norm.midValue()},
		{1, norm.Max},
	}
	for _, tick := range ticks {
		fmt.Fprintf(sb,
			`<text x="%.1f" y="%.1f" text-anchor="middle" font-size="12">%s</text>`,
			barX+tick.frac*barW, barY+barH+14, formatTick(tick.val, opts.HeatLabels))
		sb.WriteString("\n")
	}
}

// midValue returns the data value at the middle of the color scale.
func (n *Norm) midValue() float64 {
	if n.Log {
		return math.Exp((math.Log(n.Min) + math.Log(n.Max)) / 2)
	}
	return (n.Min + n.Max) / 2
}

func formatTick(val float64, labels HeatLabels) string {
	if labels == LabelsPercent {
		return fmt.Sprintf("%.0f%%", 100*val)
	}
	if val < 1e4 {
		return fmt.Sprintf("%.0f", val)
	}
	return fmt.Sprintf("%.2g", val)
}

// writeLegendEntry draws one swatch+description pair below the main
// block, stacked top to bottom in entry order.
func writeLegendEntry(sb *strings.Builder, entry legendEntry, i int, height float64) {
	col, err := parseColor(entry.color)
	fill := entry.color
	if err == nil {
		fill = col.Hex()
	}
	x := svgPad + 0.4*cellSize
	y := height - 2.8*cellSize + float64(i)*0.45*cellSize
	fmt.Fprintf(sb,
		`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="gray"/>`,
		x, y, 0.3*cellSize, 0.3*cellSize, fill)
	sb.WriteString("\n")
	fmt.Fprintf(sb,
		`<text x="%.1f" y="%.1f" font-size="12">%s</text>`,
		x+0.4*cellSize, y+0.22*cellSize, html.EscapeString(entry.text))
	sb.WriteString("\n")
}
