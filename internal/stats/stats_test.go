package stats

import (
	"math"
	"strings"
	"testing"
)

func TestCompute_PerfectAgreement(t *testing.T) {
	xs := []float64{1, 2, 3, 4}
	m, err := Compute(xs, xs)
	if err != nil {
		t.Fatal(err)
	}
	if m.MAE != 0 {
		t.Errorf("MAE = %v, want 0", m.MAE)
	}
	if m.R2 != 1 {
		t.Errorf("R2 = %v, want 1", m.R2)
	}
	if m.N != 4 {
		t.Errorf("N = %d, want 4", m.N)
	}
}

func TestCompute_KnownValues(t *testing.T) {
	xs := []float64{1, 2, 3}
	ys := []float64{2, 2, 4}
	m, err := Compute(xs, ys)
	if err != nil {
		t.Fatal(err)
	}
	// |1-2| + |2-2| + |3-4| over 3 pairs.
	if want := 2.0 / 3.0; math.Abs(m.MAE-want) > 1e-12 {
		t.Errorf("MAE = %v, want %v", m.MAE, want)
	}
	// ss_res = 1 + 0 + 1 = 2, ss_tot about mean(xs)=2 is 2.
	if want := 0.0; math.Abs(m.R2-want) > 1e-12 {
		t.Errorf("R2 = %v, want %v", m.R2, want)
	}
}

func TestCompute_DropsNaNPairs(t *testing.T) {
	xs := []float64{1, math.NaN(), 3, 4}
	ys := []float64{1, 2, math.NaN(), 4}
	m, err := Compute(xs, ys)
	if err != nil {
		t.Fatal(err)
	}
	if m.N != 2 {
		t.Errorf("N = %d, want 2", m.N)
	}
	if m.MAE != 0 {
		t.Errorf("MAE = %v, want 0", m.MAE)
	}
}

func TestCompute_LengthMismatch(t *testing.T) {
	_, err := Compute([]float64{1, 2}, []float64{1})
	if err == nil {
		t.Fatal("expected error for mismatched lengths")
	}
}

func TestCompute_AllNaN(t *testing.T) {
	nan := math.NaN()
	_, err := Compute([]float64{nan, nan}, []float64{1, 2})
	if err == nil {
		t.Fatal("expected error when no valid pairs remain")
	}
}

func TestSummary_Format(t *testing.T) {
	m := Metrics{MAE: 0.12345, R2: 0.9876}
	got := m.Summary(SummaryOptions{})
	if want := "MAE = 0.123\nR² = 0.988"; got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}

	got = m.Summary(SummaryOptions{Prefix: "DFT vs ML\n", Suffix: "\nn=100", Prec: 2})
	if !strings.HasPrefix(got, "DFT vs ML\n") || !strings.HasSuffix(got, "\nn=100") {
		t.Errorf("Summary() = %q, prefix/suffix not applied", got)
	}
	if !strings.Contains(got, "MAE = 0.12") {
		t.Errorf("Summary() = %q, want 2-decimal MAE", got)
	}
}

func TestParity_ProducesSVG(t *testing.T) {
	var sb strings.Builder
	xs := []float64{1, 2, 3, 4, 5}
	ys := []float64{1.1, 1.9, 3.2, 3.8, 5.1}
	if err := Parity(&sb, xs, ys, ParityOptions{XLabel: "DFT", YLabel: "ML"}); err != nil {
		t.Fatal(err)
	}
	svg := sb.String()
	if !strings.HasPrefix(svg, "<svg") {
		t.Fatalf("output does not start with <svg: %q", svg[:40])
	}
	if !strings.Contains(svg, "MAE = ") {
		t.Error("annotation box missing MAE")
	}
	if got := strings.Count(svg, "<circle"); got != 5 {
		t.Errorf("found %d points, want 5", got)
	}
}

func TestParity_AnchorCorners(t *testing.T) {
	xs := []float64{1, 2, 3}
	ys := []float64{1, 2, 3}
	for _, loc := range []Anchor{AnchorLowerRight, AnchorLowerLeft, AnchorUpperRight, AnchorUpperLeft} {
		var sb strings.Builder
		if err := Parity(&sb, xs, ys, ParityOptions{Loc: loc}); err != nil {
			t.Fatalf("%s: %v", loc, err)
		}
	}
}
