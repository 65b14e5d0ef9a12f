package render

import (
	"fmt"
	"html"
	"io"
	"math"
	"strings"

	"github.com/unbound-force/elemviz/internal/aggregate"
)

// BarValues selects how prevalence bars are annotated.
type BarValues string

const (
	// BarPercent labels each bar with its share of the total count.
	BarPercent BarValues = "percent"
	// BarCount labels each bar with its raw count.
	BarCount BarValues = "count"
	// BarNone draws no bar labels.
	BarNone BarValues = "none"
)

// HistOptions configures the element prevalence bar chart.
type HistOptions struct {
	// TopN keeps only the n most prevalent elements; 0 keeps all.
	TopN int
	// Log switches the y axis to a log scale.
	Log bool
	// BarValues selects the bar label mode.
	BarValues BarValues
	// VOffset lifts labels above their bars, in count units on a
	// linear axis. On a log axis the lift is ln(VOffset) so labels
	// stay visually proportionate.
	VOffset float64
	// BarColor fills the bars.
	BarColor string
}

// DefaultHistOptions returns the historical defaults.
func DefaultHistOptions() HistOptions {
	return HistOptions{
		BarValues: BarPercent,
		VOffset:   10,
		BarColor:  "#4a90d9",
	}
}

// Chart geometry for the prevalence histogram.
const (
	histWidth        = 800.0
	histHeight       = 480.0
	histMarginLeft   = 70.0
	histMarginRight  = 30.0
	histMarginTop    = 60.0
	histMarginBottom = 50.0
)

// Hist aggregates the input, drops zero-count elements, sorts the rest
// descending and renders a bar chart with optional percentage or raw
// count labels above each bar.
func Hist(w io.Writer, in aggregate.Input, opts HistOptions) error {
	v, err := aggregate.Count(in)
	if err != nil {
		return err
	}
	return HistVector(w, v, opts)
}

// HistVector renders an already aggregated vector; see Hist.
func HistVector(w io.Writer, v aggregate.Vector, opts HistOptions) error {
	applyHistDefaults(&opts)

	entries := v.NonZero()
	truncated := opts.TopN > 0 && opts.TopN < len(entries)
	if truncated {
		entries = entries[:opts.TopN]
	}
	// Percent labels are shares of the displayed bars, so the total is
	// summed after truncation.
	var total float64
	for _, e := range entries {
		total += e.Value
	}

	plotW := histWidth - histMarginLeft - histMarginRight
	plotH := histHeight - histMarginTop - histMarginBottom
	baseY := histHeight - histMarginBottom

	scale := newBarScale(entries, opts.Log, plotH)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f">`, histWidth, histHeight)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, `<rect width="%.0f" height="%.0f" fill="white"/>`, histWidth, histHeight)
	sb.WriteString("\n")

	if truncated {
		fmt.Fprintf(&sb,
			`<text x="%.1f" y="%.1f" text-anchor="middle" font-size="18" font-weight="600">Top %d Elements</text>`,
			histWidth/2, histMarginTop/2, opts.TopN)
		sb.WriteString("\n")
	}

	yLabel := "Element Count"
	if opts.Log {
		yLabel = "log(Element Count)"
	}
	fmt.Fprintf(&sb,
		`<text x="%.1f" y="%.1f" text-anchor="middle" font-size="14" transform="rotate(-90 18 %.1f)">%s</text>`,
		18.0, histMarginTop+plotH/2, histMarginTop+plotH/2, html.EscapeString(yLabel))
	sb.WriteString("\n")

	// Axes.
	fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="black"/>`,
		histMarginLeft, histMarginTop, histMarginLeft, baseY)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="black"/>`,
		histMarginLeft, baseY, histWidth-histMarginRight, baseY)
	sb.WriteString("\n")

	if len(entries) > 0 {
		slot := plotW / float64(len(entries))
		barW := 0.7 * slot
		for i, e := range entries {
			x := histMarginLeft + float64(i)*slot + (slot-barW)/2
			h := scale(e.Value)
			fmt.Fprintf(&sb,
				`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="black"/>`,
				x, baseY-h, barW, h, opts.BarColor)
			sb.WriteString("\n")
			fmt.Fprintf(&sb,
				`<text x="%.1f" y="%.1f" text-anchor="middle" font-size="13">%s</text>`,
				x+barW/2, baseY+16, e.Symbol)
			sb.WriteString("\n")

			if opts.BarValues == BarNone {
				continue
			}
			var label string
			if opts.BarValues == BarPercent {
				label = fmt.Sprintf("%.1f%%", 100*e.Value/total)
			} else {
				label = fmt.Sprintf("%d", int(e.Value))
			}
			lifted := e.Value + opts.VOffset
			if opts.Log {
				lifted = e.Value + math.Log(opts.VOffset)
			}
			labelY := baseY - scale(lifted) - 4
			fmt.Fprintf(&sb,
				`<text x="%.1f" y="%.1f" text-anchor="middle" font-size="12">%s</text>`,
				x+barW/2, labelY, label)
			sb.WriteString("\n")
		}
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func applyHistDefaults(opts *HistOptions) {
	def := DefaultHistOptions()
	if opts.BarValues == "" {
		opts.BarValues = def.BarValues
	}
	if opts.VOffset == 0 {
		opts.VOffset = def.VOffset
	}
	if opts.BarColor == "" {
		opts.BarColor = def.BarColor
	}
}

// newBarScale maps a count to bar height in pixels, leaving headroom
// for labels above the tallest bar.
func newBarScale(entries []aggregate.Entry, log bool, plotH float64) func(float64) float64 {
	var max float64
	min := math.Inf(1)
	for _, e := range entries {
		if e.Value > max {
			max = e.Value
		}
		if e.Value < min {
			min = e.Value
		}
	}
	if len(entries) == 0 || max <= 0 {
		return func(float64) float64 { return 0 }
	}
	usable := 0.88 * plotH

	if log {
		// Anchor the log scale one decade below the smallest bar so
		// every bar has visible height.
		floor := math.Log(min / 10)
		span := math.Log(max) - floor
		return func(v float64) float64 {
			if v <= 0 {
				return 0
			}
			return usable * (math.Log(v) - floor) / span
		}
	}
	return func(v float64) float64 {
		if v <= 0 {
			return 0
		}
		return usable * v / max
	}
}
