// Package formula parses chemical composition expressions such as
// "Fe2O3", "Ca(OH)2" or "Li0.5FePO4" into per-element amounts.
package formula

import (
	"fmt"
	"strconv"
	"unicode"

	"github.com/unbound-force/elemviz/internal/ptable"
)

// ParseError reports a malformed composition expression. Pos is the
// byte offset of the offending character.
type ParseError struct {
	Expr string
	Pos  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("formula: cannot parse %q at offset %d: %s", e.Expr, e.Pos, e.Msg)
}

// Parse returns the element amounts of a composition expression, e.g.
// "Fe2O3" yields {Fe: 2, O: 3}. Parenthesized groups multiply their
// contents ("Ca(OH)2" yields {Ca: 1, O: 2, H: 2}) and amounts may be
// fractional. Element symbols are validated against the metadata table.
func Parse(expr string) (map[string]float64, error) {
	p := &parser{expr: expr, table: ptable.Load()}
	p.skipSpace()
	if p.pos == len(p.expr) {
		return nil, p.errorf(0, "empty expression")
	}
	counts, err := p.sequence()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.expr) {
		return nil, p.errorf(p.pos, "unexpected character %q", p.expr[p.pos])
	}
	return counts, nil
}

// Fractional returns the composition with amounts normalized to sum
// to 1, e.g. "Fe2O3" yields {Fe: 0.4, O: 0.6}.
func Fractional(expr string) (map[string]float64, error) {
	counts, err := Parse(expr)
	if err != nil {
		return nil, err
	}
	var total float64
	for _, v := range counts {
		total += v
	}
	for sym, v := range counts {
		counts[sym] = v / total
	}
	return counts, nil
}

type parser struct {
	expr  string
	pos   int
	table *ptable.Table
}

func (p *parser) errorf(pos int, format string, args ...any) error {
	return &ParseError{Expr: p.expr, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.expr) && p.expr[p.pos] == ' ' {
		p.pos++
	}
}

// sequence parses consecutive units (element-count or parenthesized
// group-count) until end of input or a closing parenthesis.
func (p *parser) sequence() (map[string]float64, error) {
	counts := make(map[string]float64)
	for {
		p.skipSpace()
		if p.pos == len(p.expr) || p.expr[p.pos] == ')' {
			if len(counts) == 0 {
				return nil, p.errorf(p.pos, "expected an element or group")
			}
			return counts, nil
		}

		if p.expr[p.pos] == '(' {
			open := p.pos
			p.pos++
			inner, err := p.sequence()
			if err != nil {
				return nil, err
			}
			if p.pos == len(p.expr) || p.expr[p.pos] != ')' {
				return nil, p.errorf(open, "unclosed parenthesis")
			}
			p.pos++
			mult, err := p.number()
			if err != nil {
				return nil, err
			}
			for sym, v := range inner {
				counts[sym] += v * mult
			}
			continue
		}

		sym, err := p.symbol()
		if err != nil {
			return nil, err
		}
		n, err := p.number()
		if err != nil {
			return nil, err
		}
		counts[sym] += n
	}
}

// symbol consumes one element symbol: an uppercase letter followed by
// any lowercase letters, validated against the metadata table.
func (p *parser) symbol() (string, error) {
	start := p.pos
	if !unicode.IsUpper(rune(p.expr[p.pos])) {
		return "", p.errorf(p.pos, "expected an element symbol, got %q", p.expr[p.pos])
	}
	p.pos++
	for p.pos < len(p.expr) && unicode.IsLower(rune(p.expr[p.pos])) {
		p.pos++
	}
	sym := p.expr[start:p.pos]
	if _, ok := p.table.BySymbol(sym); !ok {
		return "", p.errorf(start, "unknown element %q", sym)
	}
	return sym, nil
}

// number consumes an optional amount, defaulting to 1.
func (p *parser) number() (float64, error) {
	start := p.pos
	for p.pos < len(p.expr) && (unicode.IsDigit(rune(p.expr[p.pos])) || p.expr[p.pos] == '.') {
		p.pos++
	}
	if p.pos == start {
		return 1, nil
	}
	n, err := strconv.ParseFloat(p.expr[start:p.pos], 64)
	if err != nil {
		return 0, p.errorf(start, "invalid amount %q", p.expr[start:p.pos])
	}
	return n, nil
}
