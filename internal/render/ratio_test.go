package render

import (
	"strings"
	"testing"

	"github.com/unbound-force/elemviz/internal/aggregate"
)

func TestHeatmapRatio_Legend(t *testing.T) {
	num := aggregate.ByFormulas([]string{"Fe2O3", "Bi2Te3"})
	denom := aggregate.ByFormulas([]string{"Fe2O3"})

	var sb strings.Builder
	if err := HeatmapRatio(&sb, num, denom, DefaultRatioOptions()); err != nil {
		t.Fatal(err)
	}
	svg := sb.String()

	for _, text := range []string{
		"gray: not in 1st list",
		"blue: not in 2nd list",
		"white: not in either",
	} {
		if !strings.Contains(svg, text) {
			t.Errorf("SVG missing legend entry %q", text)
		}
	}
	// Bi and Te are absent from the denominator, so their tiles show ∞.
	if !strings.Contains(svg, ">∞<") {
		t.Error("SVG missing infinity tiles for denominator-absent elements")
	}
	// Most elements are in neither list and show 0/0.
	if !strings.Contains(svg, ">0/0<") {
		t.Error("SVG missing 0/0 tiles for elements absent from both")
	}
	if !strings.Contains(svg, "Element Ratio") {
		t.Error("SVG missing the default ratio legend title")
	}
}

func TestHeatmapRatio_CustomColorsWireThrough(t *testing.T) {
	num := aggregate.BySymbol(map[string]float64{"Fe": 1})
	denom := aggregate.BySymbol(map[string]float64{"Fe": 1, "O": 1})

	opts := DefaultRatioOptions()
	opts.NotInNumerator = LegendEntry{Color: "#123123", Text: "custom zero"}

	var sb strings.Builder
	if err := HeatmapRatio(&sb, num, denom, opts); err != nil {
		t.Fatal(err)
	}
	svg := sb.String()
	// O is in the denominator only, so its ratio is 0 and its tile
	// takes the not-in-numerator color.
	if !strings.Contains(svg, `fill="#123123"`) {
		t.Error("not-in-numerator color not applied to zero tiles")
	}
	if !strings.Contains(svg, "custom zero") {
		t.Error("custom legend text missing")
	}
}

func TestHeatmapRatio_Normalize(t *testing.T) {
	in := aggregate.BySymbol(map[string]float64{"Fe": 2, "O": 2})

	opts := DefaultRatioOptions()
	opts.Normalize = true
	opts.Heatmap.Precision = "%.2f"

	var sb strings.Builder
	if err := HeatmapRatio(&sb, in, in, opts); err != nil {
		t.Fatal(err)
	}
	// Fe/Fe = O/O = 1, normalized over a finite total of 2 gives 0.50.
	if !strings.Contains(sb.String(), ">0.50<") {
		t.Error("normalized ratio label 0.50 not found")
	}
}
