package aggregate

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestCount_AlwaysDense(t *testing.T) {
	inputs := []Input{
		BySymbol(map[string]float64{"Fe": 2, "O": 3}),
		BySymbol(map[string]float64{}),
		ByNumber(map[int]float64{1: 5}),
		ByFormulas([]string{"Fe2O3", "Bi2Te3"}),
		ByFormulas(nil),
	}
	for _, in := range inputs {
		v, err := Count(in)
		if err != nil {
			t.Fatalf("Count(%v): %v", in.Kind(), err)
		}
		if v.Len() != 118 {
			t.Fatalf("Count produced %d entries, want 118", v.Len())
		}
	}
}

func TestCount_Idempotent(t *testing.T) {
	v, err := Count(ByFormulas([]string{"Fe2O3", "LiCoO2"}))
	if err != nil {
		t.Fatal(err)
	}
	dense := make(map[string]float64, v.Len())
	for _, sym := range v.Symbols() {
		dense[sym] = v.Get(sym)
	}

	again, err := Count(BySymbol(dense))
	if err != nil {
		t.Fatal(err)
	}
	for _, sym := range v.Symbols() {
		if again.Get(sym) != v.Get(sym) {
			t.Fatalf("%s: re-aggregated value %v != %v", sym, again.Get(sym), v.Get(sym))
		}
	}
}

func TestCount_AtomicNumbers(t *testing.T) {
	v, err := Count(ByNumber(map[int]float64{26: 1.5, 8: 2.5}))
	if err != nil {
		t.Fatal(err)
	}
	if got := v.Get("Fe"); got != 1.5 {
		t.Errorf("Fe = %v, want 1.5", got)
	}
	if got := v.Get("O"); got != 2.5 {
		t.Errorf("O = %v, want 2.5", got)
	}
}

func TestCount_Formulas(t *testing.T) {
	v, err := Count(ByFormulas([]string{"Fe2O3", "Bi2Te3"}))
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]float64{"Fe": 0.4, "O": 0.6, "Bi": 0.4, "Te": 0.6}
	for _, sym := range v.Symbols() {
		got := v.Get(sym)
		if expect, ok := want[sym]; ok {
			if math.Abs(got-expect) > 1e-9 {
				t.Errorf("%s = %v, want %v", sym, got, expect)
			}
		} else if got != 0 {
			t.Errorf("%s = %v, want 0", sym, got)
		}
	}
}

func TestCount_UnknownSymbol(t *testing.T) {
	_, err := Count(BySymbol(map[string]float64{"Fe": 1, "Qq": 2}))
	if err == nil {
		t.Fatal("expected error for unknown symbol")
	}
	var invalid *InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("error = %T, want *InvalidInputError", err)
	}
	if !strings.Contains(err.Error(), "Qq") {
		t.Errorf("error %q does not name the offending symbol", err.Error())
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want Kind
	}{
		{"symbol map", map[string]float64{"Fe": 1}, KindSymbols},
		{"digit-string keys", map[string]float64{"26": 1, "8": 2}, KindNumbers},
		{"int keys", map[int]float64{26: 1}, KindNumbers},
		{"formulas", []string{"Fe2O3"}, KindFormulas},
	}
	for _, tt := range tests {
		in, err := Detect(tt.raw)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if in.Kind() != tt.want {
			t.Errorf("%s: kind = %v, want %v", tt.name, in.Kind(), tt.want)
		}
	}
}

func TestDetect_DigitKeysTranslate(t *testing.T) {
	in, err := Detect(map[string]float64{"26": 3})
	if err != nil {
		t.Fatal(err)
	}
	v, err := Count(in)
	if err != nil {
		t.Fatal(err)
	}
	if got := v.Get("Fe"); got != 3 {
		t.Errorf("Fe = %v, want 3", got)
	}
}

func TestDetect_InvalidShape(t *testing.T) {
	_, err := Detect(42)
	if err == nil {
		t.Fatal("expected error for non-map, non-slice input")
	}
	var invalid *InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("error = %T, want *InvalidInputError", err)
	}
	if !strings.Contains(err.Error(), "42") {
		t.Errorf("error %q does not name the offending input", err.Error())
	}
}

func TestRatio_SelfDivision(t *testing.T) {
	in := BySymbol(map[string]float64{"Fe": 2, "O": 3})
	v, err := Ratio(in, in)
	if err != nil {
		t.Fatal(err)
	}
	for _, sym := range v.Symbols() {
		got := v.Get(sym)
		switch sym {
		case "Fe", "O":
			if got != 1.0 {
				t.Errorf("%s = %v, want 1.0", sym, got)
			}
		default:
			if !math.IsNaN(got) {
				t.Errorf("%s = %v, want NaN (absent from both)", sym, got)
			}
		}
	}
}

func TestRatio_DenominatorMissing(t *testing.T) {
	num := BySymbol(map[string]float64{"Fe": 2, "O": 3})
	denom := BySymbol(map[string]float64{"Fe": 1})
	v, err := Ratio(num, denom)
	if err != nil {
		t.Fatal(err)
	}
	if got := v.Get("Fe"); got != 2 {
		t.Errorf("Fe = %v, want 2", got)
	}
	if got := v.Get("O"); !math.IsInf(got, 1) {
		t.Errorf("O = %v, want +Inf", got)
	}
	if got := v.Get("H"); !math.IsNaN(got) {
		t.Errorf("H = %v, want NaN", got)
	}
}

func TestVector_Normalize(t *testing.T) {
	v, err := Count(BySymbol(map[string]float64{"Fe": 2, "O": 3, "H": 5}))
	if err != nil {
		t.Fatal(err)
	}
	n := v.Normalize()
	if got := n.Get("Fe"); math.Abs(got-0.2) > 1e-9 {
		t.Errorf("Fe = %v, want 0.2", got)
	}
	if got := n.Total(); math.Abs(got-1) > 1e-9 {
		t.Errorf("Total() = %v, want 1", got)
	}
	// The source vector is untouched.
	if got := v.Get("Fe"); got != 2 {
		t.Errorf("source Fe = %v, want 2", got)
	}
}

func TestVector_TotalIgnoresSpecials(t *testing.T) {
	v := NewVector()
	v.Set("Fe", 2)
	v.Set("O", math.Inf(1))
	v.Set("H", math.NaN())
	if got := v.Total(); got != 2 {
		t.Errorf("Total() = %v, want 2", got)
	}
	if got := v.Max(); got != 2 {
		t.Errorf("Max() = %v, want 2", got)
	}
}

func TestVector_NonZero(t *testing.T) {
	v := NewVector()
	v.Set("Fe", 1)
	v.Set("O", 3)
	v.Set("H", 2)
	got := v.NonZero()
	if len(got) != 3 {
		t.Fatalf("NonZero() has %d entries, want 3", len(got))
	}
	wantOrder := []string{"O", "H", "Fe"}
	for i, e := range got {
		if e.Symbol != wantOrder[i] {
			t.Errorf("NonZero()[%d] = %s, want %s", i, e.Symbol, wantOrder[i])
		}
	}
}
