package ptable

import "testing"

func TestLoad_Has118Elements(t *testing.T) {
	tbl := Load()
	if got := tbl.Len(); got != 118 {
		t.Fatalf("Len() = %d, want 118", got)
	}
	if got := len(tbl.Symbols()); got != 118 {
		t.Fatalf("len(Symbols()) = %d, want 118", got)
	}
}

func TestLoad_Idempotent(t *testing.T) {
	if Load() != Load() {
		t.Fatal("Load() returned different tables across calls")
	}
}

func TestBySymbol(t *testing.T) {
	tbl := Load()

	tests := []struct {
		symbol string
		number int
		row    int
		column int
	}{
		{"H", 1, 1, 1},
		{"He", 2, 1, 18},
		{"Fe", 26, 4, 8},
		{"La", 57, 9, 3},  // lanthanides live on their own row
		{"Lu", 71, 9, 17},
		{"Hf", 72, 6, 4},
		{"Ac", 89, 10, 3},
		{"Og", 118, 7, 18},
	}
	for _, tt := range tests {
		e, ok := tbl.BySymbol(tt.symbol)
		if !ok {
			t.Fatalf("BySymbol(%q) not found", tt.symbol)
		}
		if e.AtomicNumber != tt.number {
			t.Errorf("%s: AtomicNumber = %d, want %d", tt.symbol, e.AtomicNumber, tt.number)
		}
		if e.Row != tt.row || e.Column != tt.column {
			t.Errorf("%s: position = (%d,%d), want (%d,%d)",
				tt.symbol, e.Row, e.Column, tt.row, tt.column)
		}
	}

	if _, ok := tbl.BySymbol("Xx"); ok {
		t.Error("BySymbol(\"Xx\") found a nonexistent element")
	}
}

func TestByNumber_CoversAllElements(t *testing.T) {
	tbl := Load()
	for n := 1; n <= 118; n++ {
		e, ok := tbl.ByNumber(n)
		if !ok {
			t.Fatalf("ByNumber(%d) not found", n)
		}
		if e.AtomicNumber != n {
			t.Errorf("ByNumber(%d).AtomicNumber = %d", n, e.AtomicNumber)
		}
	}
}

func TestGridDimensions(t *testing.T) {
	tbl := Load()
	if got := tbl.MaxRow(); got != 10 {
		t.Errorf("MaxRow() = %d, want 10", got)
	}
	if got := tbl.MaxColumn(); got != 18 {
		t.Errorf("MaxColumn() = %d, want 18", got)
	}
}

func TestGridPositions_Unique(t *testing.T) {
	tbl := Load()
	seen := make(map[[2]int]string)
	for _, e := range tbl.Elements() {
		pos := [2]int{e.Row, e.Column}
		if prev, dup := seen[pos]; dup {
			t.Errorf("%s and %s share grid position (%d,%d)", prev, e.Symbol, e.Row, e.Column)
		}
		seen[pos] = e.Symbol
	}
}

func TestProperty(t *testing.T) {
	tbl := Load()
	fe, _ := tbl.BySymbol("Fe")

	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"name", "Iron", true},
		{"atomic_number", "26", true},
		{"atomic_mass", "55.845", true},
		{"electronegativity", "1.83", true},
		{"discoverer", "", false},
	}
	for _, tt := range tests {
		got, ok := fe.Property(tt.name)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("Property(%q) = (%q, %v), want (%q, %v)",
				tt.name, got, ok, tt.want, tt.wantOK)
		}
	}

	// Noble gases carry no electronegativity.
	ne, _ := tbl.BySymbol("Ne")
	if _, ok := ne.Property("electronegativity"); ok {
		t.Error("Ne should have no electronegativity")
	}
}
