// Package aggregate converts heterogeneous element data (symbol maps,
// atomic-number maps, or lists of composition expressions) into dense
// per-element value vectors covering the full periodic table.
package aggregate

import (
	"fmt"
	"strconv"

	"github.com/unbound-force/elemviz/internal/formula"
	"github.com/unbound-force/elemviz/internal/ptable"
)

// InvalidInputError reports input that is neither a uniform numeric
// mapping nor a uniform list of composition expressions.
type InvalidInputError struct {
	Input  any
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("aggregate: invalid input %v: %s", e.Input, e.Reason)
}

// Kind discriminates the accepted input shapes.
type Kind int

const (
	// KindSymbols is a map from element symbols to numeric values.
	KindSymbols Kind = iota
	// KindNumbers is a map from atomic numbers to numeric values.
	KindNumbers
	// KindFormulas is a list of composition expressions whose
	// fractional compositions are summed.
	KindFormulas
)

// Input is the tagged union of accepted element-data shapes. The shape
// is resolved once at the boundary (via the constructors or Detect)
// rather than probed during aggregation.
type Input struct {
	kind     Kind
	symbols  map[string]float64
	numbers  map[int]float64
	formulas []string
}

// BySymbol wraps a map from element symbols to values.
func BySymbol(m map[string]float64) Input {
	return Input{kind: KindSymbols, symbols: m}
}

// ByNumber wraps a map from atomic numbers to values.
func ByNumber(m map[int]float64) Input {
	return Input{kind: KindNumbers, numbers: m}
}

// ByFormulas wraps a list of composition expressions.
func ByFormulas(formulas []string) Input {
	return Input{kind: KindFormulas, formulas: formulas}
}

// Kind returns the input's resolved shape.
func (in Input) Kind() Kind { return in.kind }

// Detect coerces a loosely typed value into an Input. Accepted shapes:
// map[string]float64 (symbol- or numeric-string-keyed), map[int]float64
// and []string (composition expressions). A string-keyed map whose keys
// are all digit strings is reinterpreted as atomic numbers. Anything
// else fails with InvalidInputError naming the input.
func Detect(raw any) (Input, error) {
	switch v := raw.(type) {
	case Input:
		return v, nil
	case map[string]float64:
		if len(v) > 0 && allDigitKeys(v) {
			numbers := make(map[int]float64, len(v))
			for k, val := range v {
				n, _ := strconv.Atoi(k)
				numbers[n] = val
			}
			return ByNumber(numbers), nil
		}
		return BySymbol(v), nil
	case map[int]float64:
		return ByNumber(v), nil
	case []string:
		return ByFormulas(v), nil
	default:
		return Input{}, &InvalidInputError{
			Input:  raw,
			Reason: "expected a map from element symbols or atomic numbers to values, or a list of compositions",
		}
	}
}

func allDigitKeys(m map[string]float64) bool {
	for k := range m {
		if k == "" {
			return false
		}
		for _, c := range k {
			if c < '0' || c > '9' {
				return false
			}
		}
	}
	return true
}

// Count aggregates the input into a dense vector with one entry per
// known element, zero-filled for elements the input does not mention.
func Count(in Input) (Vector, error) {
	tbl := ptable.Load()
	v := NewVector()

	switch in.kind {
	case KindSymbols:
		for sym, val := range in.symbols {
			if _, ok := tbl.BySymbol(sym); !ok {
				return Vector{}, &InvalidInputError{
					Input:  in.symbols,
					Reason: fmt.Sprintf("unknown element symbol %q", sym),
				}
			}
			v.Set(sym, val)
		}
	case KindNumbers:
		for n, val := range in.numbers {
			e, ok := tbl.ByNumber(n)
			if !ok {
				return Vector{}, &InvalidInputError{
					Input:  in.numbers,
					Reason: fmt.Sprintf("unknown atomic number %d", n),
				}
			}
			v.Set(e.Symbol, val)
		}
	case KindFormulas:
		for _, expr := range in.formulas {
			frac, err := formula.Fractional(expr)
			if err != nil {
				return Vector{}, fmt.Errorf("aggregate: %w", err)
			}
			for sym, weight := range frac {
				v.Set(sym, v.Get(sym)+weight)
			}
		}
	default:
		return Vector{}, &InvalidInputError{Input: in.kind, Reason: "unknown input kind"}
	}

	return v, nil
}

// Ratio aggregates both inputs and divides them elementwise. Division
// by zero yields +Inf (element missing from the denominator) and 0/0
// yields NaN (element missing from both).
func Ratio(num, denom Input) (Vector, error) {
	vn, err := Count(num)
	if err != nil {
		return Vector{}, fmt.Errorf("numerator: %w", err)
	}
	vd, err := Count(denom)
	if err != nil {
		return Vector{}, fmt.Errorf("denominator: %w", err)
	}

	out := NewVector()
	for _, sym := range out.Symbols() {
		out.Set(sym, vn.Get(sym)/vd.Get(sym))
	}
	return out, nil
}
