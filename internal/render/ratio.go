package render

import (
	"io"

	"github.com/unbound-force/elemviz/internal/aggregate"
)

// LegendEntry pairs a tile color with the legend text describing it.
type LegendEntry struct {
	Color string
	Text  string
}

// RatioOptions configures the ratio heatmap. The three special-state
// entries are wired to the zero/∞/NaN tile colors of the underlying
// heatmap: an element missing from the numerator divides to 0, one
// missing from the denominator divides to +Inf, one missing from both
// divides to NaN.
type RatioOptions struct {
	Heatmap HeatmapOptions
	// Normalize rescales the ratio vector so its finite values sum
	// to 1, making separate ratio plots comparable.
	Normalize bool

	NotInNumerator   LegendEntry
	NotInDenominator LegendEntry
	NotInEither      LegendEntry
}

// DefaultRatioOptions mirrors the historical defaults.
func DefaultRatioOptions() RatioOptions {
	opts := DefaultHeatmapOptions()
	opts.CbarTitle = "Element Ratio"
	opts.Precision = "%.1f"
	return RatioOptions{
		Heatmap:          opts,
		NotInNumerator:   LegendEntry{Color: "#DDDDDD", Text: "gray: not in 1st list"},
		NotInDenominator: LegendEntry{Color: "lightskyblue", Text: "blue: not in 2nd list"},
		NotInEither:      LegendEntry{Color: "white", Text: "white: not in either"},
	}
}

// HeatmapRatio aggregates both inputs, divides them elementwise and
// renders the quotient as a heatmap with a three-entry legend for the
// special states.
func HeatmapRatio(w io.Writer, num, denom aggregate.Input, opts RatioOptions) error {
	v, err := aggregate.Ratio(num, denom)
	if err != nil {
		return err
	}
	if opts.Normalize {
		v = v.Normalize()
	}

	applyRatioDefaults(&opts)
	h := opts.Heatmap
	h.ZeroColor = opts.NotInNumerator.Color
	h.InftyColor = opts.NotInDenominator.Color
	h.NaColor = opts.NotInEither.Color
	h.legend = []legendEntry{
		{color: opts.NotInNumerator.Color, text: opts.NotInNumerator.Text},
		{color: opts.NotInDenominator.Color, text: opts.NotInDenominator.Text},
		{color: opts.NotInEither.Color, text: opts.NotInEither.Text},
	}
	return Heatmap(w, v, h)
}

func applyRatioDefaults(opts *RatioOptions) {
	def := DefaultRatioOptions()
	if opts.Heatmap.CbarTitle == "" {
		opts.Heatmap.CbarTitle = def.Heatmap.CbarTitle
	}
	if opts.Heatmap.Precision == "" {
		opts.Heatmap.Precision = def.Heatmap.Precision
	}
	if opts.NotInNumerator == (LegendEntry{}) {
		opts.NotInNumerator = def.NotInNumerator
	}
	if opts.NotInDenominator == (LegendEntry{}) {
		opts.NotInDenominator = def.NotInDenominator
	}
	if opts.NotInEither == (LegendEntry{}) {
		opts.NotInEither = def.NotInEither
	}
}
