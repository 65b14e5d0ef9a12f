package stats

import (
	"fmt"
	"html"
	"io"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Anchor positions the metrics annotation box inside the plot.
type Anchor string

const (
	AnchorLowerRight Anchor = "lower right"
	AnchorLowerLeft  Anchor = "lower left"
	AnchorUpperRight Anchor = "upper right"
	AnchorUpperLeft  Anchor = "upper left"
)

// ParityOptions configures the parity plot.
type ParityOptions struct {
	// XLabel and YLabel title the axes.
	XLabel string
	YLabel string
	// Loc anchors the metrics box. Defaults to lower right.
	Loc Anchor
	// Summary formats the metrics annotation.
	Summary SummaryOptions
	// PointColor fills the scatter points.
	PointColor string
}

// Chart geometry for parity plots.
const (
	parityWidth  = 520.0
	parityHeight = 520.0
	parityMargin = 60.0
)

// Parity renders a scatter parity plot of ys against xs with an
// identity line and a boxed MAE/R² annotation.
func Parity(w io.Writer, xs, ys []float64, opts ParityOptions) error {
	m, err := Compute(xs, ys)
	if err != nil {
		return err
	}
	if opts.Loc == "" {
		opts.Loc = AnchorLowerRight
	}
	if opts.PointColor == "" {
		opts.PointColor = "#4a90d9"
	}

	// Shared axis limits with a little padding keep the identity
	// line at 45 degrees.
	lo := math.Min(floats.Min(dropNaN(xs)), floats.Min(dropNaN(ys)))
	hi := math.Max(floats.Max(dropNaN(xs)), floats.Max(dropNaN(ys)))
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	pad := 0.05 * (hi - lo)
	lo, hi = lo-pad, hi+pad

	plot := parityWidth - 2*parityMargin
	toX := func(v float64) float64 { return parityMargin + plot*(v-lo)/(hi-lo) }
	toY := func(v float64) float64 { return parityHeight - parityMargin - plot*(v-lo)/(hi-lo) }

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f">`, parityWidth, parityHeight)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, `<rect width="%.0f" height="%.0f" fill="white"/>`, parityWidth, parityHeight)
	sb.WriteString("\n")

	// Frame and identity line.
	fmt.Fprintf(&sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="black"/>`,
		parityMargin, parityMargin, plot, plot)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="gray" stroke-dasharray="4 3"/>`,
		toX(lo), toY(lo), toX(hi), toY(hi))
	sb.WriteString("\n")

	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="3" fill="%s" fill-opacity="0.6"/>`,
			toX(xs[i]), toY(ys[i]), opts.PointColor)
		sb.WriteString("\n")
	}

	if opts.XLabel != "" {
		fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" text-anchor="middle" font-size="14">%s</text>`,
			parityWidth/2, parityHeight-16, html.EscapeString(opts.XLabel))
		sb.WriteString("\n")
	}
	if opts.YLabel != "" {
		fmt.Fprintf(&sb, `<text x="18" y="%.1f" text-anchor="middle" font-size="14" transform="rotate(-90 18 %.1f)">%s</text>`,
			parityHeight/2, parityHeight/2, html.EscapeString(opts.YLabel))
		sb.WriteString("\n")
	}

	annotateBox(&sb, m.Summary(opts.Summary), opts.Loc)

	sb.WriteString("</svg>\n")
	_, err = io.WriteString(w, sb.String())
	return err
}

// annotateBox draws the metrics annotation in a light box at the
// requested corner of the plot area.
func annotateBox(sb *strings.Builder, text string, loc Anchor) {
	lines := strings.Split(text, "\n")
	boxW := 0.0
	for _, l := range lines {
		if w := 8.0 * float64(len([]rune(l))); w > boxW {
			boxW = w
		}
	}
	boxW += 16
	boxH := float64(len(lines))*18 + 10

	var x, y float64
	switch loc {
	case AnchorUpperLeft:
		x, y = parityMargin+10, parityMargin+10
	case AnchorUpperRight:
		x, y = parityWidth-parityMargin-10-boxW, parityMargin+10
	case AnchorLowerLeft:
		x, y = parityMargin+10, parityHeight-parityMargin-10-boxH
	default:
		x, y = parityWidth-parityMargin-10-boxW, parityHeight-parityMargin-10-boxH
	}

	fmt.Fprintf(sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="white" fill-opacity="0.8" stroke="gray"/>`,
		x, y, boxW, boxH)
	sb.WriteString("\n")
	for i, l := range lines {
		fmt.Fprintf(sb, `<text x="%.1f" y="%.1f" font-size="14">%s</text>`,
			x+8, y+float64(i+1)*18, html.EscapeString(l))
		sb.WriteString("\n")
	}
}

func dropNaN(vals []float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
