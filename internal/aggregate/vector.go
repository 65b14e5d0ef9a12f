package aggregate

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/unbound-force/elemviz/internal/ptable"
)

// Vector is a dense per-element value mapping. Its domain is always
// the full set of known element symbols in atomic-number order.
type Vector struct {
	table  *ptable.Table
	values []float64
}

// Entry pairs an element symbol with its value.
type Entry struct {
	Symbol string
	Value  float64
}

// NewVector returns a zero-filled vector over all known elements.
func NewVector() Vector {
	tbl := ptable.Load()
	return Vector{table: tbl, values: make([]float64, tbl.Len())}
}

// Len returns the number of entries (one per known element).
func (v Vector) Len() int { return len(v.values) }

// Symbols returns the vector's domain in atomic-number order.
func (v Vector) Symbols() []string { return v.table.Symbols() }

// Get returns the value for a symbol, or 0 for unknown symbols.
func (v Vector) Get(symbol string) float64 {
	e, ok := v.table.BySymbol(symbol)
	if !ok {
		return 0
	}
	return v.values[e.AtomicNumber-1]
}

// Set stores a value for a symbol. Unknown symbols are ignored;
// callers validate at the aggregation boundary.
func (v Vector) Set(symbol string, value float64) {
	e, ok := v.table.BySymbol(symbol)
	if !ok {
		return
	}
	v.values[e.AtomicNumber-1] = value
}

// Values returns the underlying values in atomic-number order. The
// slice is shared; callers must not modify it.
func (v Vector) Values() []float64 { return v.values }

// Total sums all finite values, ignoring ±Inf and NaN so that a
// ratio vector's special entries do not poison normalization.
func (v Vector) Total() float64 {
	finite := make([]float64, 0, len(v.values))
	for _, x := range v.values {
		if !math.IsInf(x, 0) && !math.IsNaN(x) {
			finite = append(finite, x)
		}
	}
	return floats.Sum(finite)
}

// Normalize returns a copy of the vector scaled so its finite values
// sum to 1. A zero total returns the vector unchanged.
func (v Vector) Normalize() Vector {
	total := v.Total()
	out := NewVector()
	copy(out.values, v.values)
	if total == 0 {
		return out
	}
	floats.Scale(1/total, out.values)
	return out
}

// Max returns the largest finite value, or 0 if there is none.
func (v Vector) Max() float64 {
	max := math.Inf(-1)
	found := false
	for _, x := range v.values {
		if math.IsInf(x, 0) || math.IsNaN(x) {
			continue
		}
		if x > max {
			max = x
			found = true
		}
	}
	if !found {
		return 0
	}
	return max
}

// NonZero returns all entries with value > 0, sorted descending by
// value with ties broken by atomic number.
func (v Vector) NonZero() []Entry {
	var entries []Entry
	for _, e := range v.table.Elements() {
		val := v.values[e.AtomicNumber-1]
		if val > 0 && !math.IsInf(val, 0) && !math.IsNaN(val) {
			entries = append(entries, Entry{Symbol: e.Symbol, Value: val})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value > entries[j].Value
	})
	return entries
}
