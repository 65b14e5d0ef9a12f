// Package ptable holds the static periodic-table metadata consumed by
// the aggregation and rendering packages. The table is parsed once from
// an embedded YAML resource and is immutable afterwards.
package ptable

import (
	_ "embed"
	"fmt"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed elements.yaml
var elementsYAML []byte

// Element describes one chemical element and its display-grid position.
// Row and Column locate the element's tile on an 18-column periodic
// table layout (lanthanides row 9, actinides row 10); Period and Group
// are the chemical values, with Group 0 for the f-block elements that
// have none assigned.
type Element struct {
	Symbol            string  `yaml:"symbol"`
	Name              string  `yaml:"name"`
	AtomicNumber      int     `yaml:"number"`
	Period            int     `yaml:"period"`
	Group             int     `yaml:"group"`
	Row               int     `yaml:"row"`
	Column            int     `yaml:"column"`
	AtomicMass        float64 `yaml:"mass"`
	Electronegativity float64 `yaml:"electronegativity"` // 0 when unassigned
}

// Property returns the named elemental property formatted for display.
// Recognized names match the YAML field names plus "name" and "symbol".
// The second return is false for unknown property names or properties
// the element does not have (e.g. electronegativity of a noble gas).
func (e Element) Property(name string) (string, bool) {
	switch name {
	case "symbol":
		return e.Symbol, true
	case "name":
		return e.Name, true
	case "atomic_number", "number":
		return strconv.Itoa(e.AtomicNumber), true
	case "period":
		return strconv.Itoa(e.Period), true
	case "group":
		if e.Group == 0 {
			return "", false
		}
		return strconv.Itoa(e.Group), true
	case "row":
		return strconv.Itoa(e.Row), true
	case "column":
		return strconv.Itoa(e.Column), true
	case "atomic_mass", "mass":
		return strconv.FormatFloat(e.AtomicMass, 'g', -1, 64), true
	case "electronegativity":
		if e.Electronegativity == 0 {
			return "", false
		}
		return strconv.FormatFloat(e.Electronegativity, 'g', -1, 64), true
	default:
		return "", false
	}
}

// KnownProperty reports whether name is a property that Property can
// resolve for at least some elements.
func KnownProperty(name string) bool {
	switch name {
	case "symbol", "name", "atomic_number", "number", "period", "group",
		"row", "column", "atomic_mass", "mass", "electronegativity":
		return true
	}
	return false
}

// Table is the loaded element metadata table. It is safe for
// concurrent use; all accessors are read-only.
type Table struct {
	elements  []Element
	bySymbol  map[string]int
	byNumber  map[int]int
	maxRow    int
	maxColumn int
}

var (
	loadOnce sync.Once
	loaded   *Table
)

// Load returns the process-wide element metadata table, parsing the
// embedded resource on first call. A malformed embedded table is a
// build defect and panics.
func Load() *Table {
	loadOnce.Do(func() {
		t, err := parse(elementsYAML)
		if err != nil {
			panic(fmt.Sprintf("ptable: embedded element table is invalid: %v", err))
		}
		loaded = t
	})
	return loaded
}

func parse(data []byte) (*Table, error) {
	var elements []Element
	if err := yaml.Unmarshal(data, &elements); err != nil {
		return nil, err
	}
	if len(elements) == 0 {
		return nil, fmt.Errorf("no elements found")
	}

	t := &Table{
		elements: elements,
		bySymbol: make(map[string]int, len(elements)),
		byNumber: make(map[int]int, len(elements)),
	}
	for i, e := range elements {
		if e.Symbol == "" || e.AtomicNumber == 0 || e.Row == 0 || e.Column == 0 {
			return nil, fmt.Errorf("element %d is missing required fields: %+v", i, e)
		}
		if _, dup := t.bySymbol[e.Symbol]; dup {
			return nil, fmt.Errorf("duplicate symbol %q", e.Symbol)
		}
		t.bySymbol[e.Symbol] = i
		t.byNumber[e.AtomicNumber] = i
		if e.Row > t.maxRow {
			t.maxRow = e.Row
		}
		if e.Column > t.maxColumn {
			t.maxColumn = e.Column
		}
	}
	return t, nil
}

// Len returns the number of known elements.
func (t *Table) Len() int { return len(t.elements) }

// Elements returns all elements in atomic-number order. The returned
// slice is shared; callers must not modify it.
func (t *Table) Elements() []Element { return t.elements }

// BySymbol looks up an element by its symbol.
func (t *Table) BySymbol(symbol string) (Element, bool) {
	i, ok := t.bySymbol[symbol]
	if !ok {
		return Element{}, false
	}
	return t.elements[i], true
}

// ByNumber looks up an element by atomic number.
func (t *Table) ByNumber(n int) (Element, bool) {
	i, ok := t.byNumber[n]
	if !ok {
		return Element{}, false
	}
	return t.elements[i], true
}

// Symbols returns all element symbols in atomic-number order.
func (t *Table) Symbols() []string {
	symbols := make([]string, len(t.elements))
	for i, e := range t.elements {
		symbols[i] = e.Symbol
	}
	return symbols
}

// MaxRow returns the largest display-grid row.
func (t *Table) MaxRow() int { return t.maxRow }

// MaxColumn returns the largest display-grid column.
func (t *Table) MaxColumn() int { return t.maxColumn }
