package render

import (
	"fmt"
	"math"

	"github.com/unbound-force/elemviz/internal/aggregate"
	"github.com/unbound-force/elemviz/internal/ptable"
)

// Grid dimensions of the dense tile matrix.
const (
	GridRows = 10
	GridCols = 18

	// AbsentTile marks grid positions with no element. It sits below
	// every possible heat value so consumers can render it as fully
	// transparent.
	AbsentTile = -1.0

	// presenceEpsilon separates "present with value 0" from absent
	// tiles: every present tile's value is shifted up by this amount
	// and the colorscale gets a hard boundary stop at it.
	presenceEpsilon = 1e-6
)

// Tile is one populated cell of a TileGrid.
type Tile struct {
	Symbol     string  `json:"symbol"`
	Row        int     `json:"row"`
	Col        int     `json:"col"`
	Value      float64 `json:"value"`
	Annotation string  `json:"annotation"`
	Hover      string  `json:"hover"`
}

// TileGrid is the dense cell matrix of the interactive heatmap
// variant, plus per-tile annotation and hover text and the colorscale.
type TileGrid struct {
	Rows       int         `json:"rows"`
	Cols       int         `json:"cols"`
	Values     [][]float64 `json:"values"`
	Tiles      []Tile      `json:"tiles"`
	Colorscale []ColorStop `json:"colorscale"`
	ShowScale  bool        `json:"show_scale"`
}

// At returns the populated tile at a grid position, if any.
func (g *TileGrid) At(row, col int) (Tile, bool) {
	for _, t := range g.Tiles {
		if t.Row == row && t.Col == col {
			return t, true
		}
	}
	return Tile{}, false
}

// GridOptions configures the interactive grid variant.
type GridOptions struct {
	// HeatLabels selects annotation normalization; tile color values
	// always stay raw so separate grids share color semantics.
	HeatLabels HeatLabels
	// Precision is a fmt verb for annotation values; see HeatmapOptions.
	Precision string
	// Colorscale overrides the default teal-to-darkgreen scale. Stops
	// must be ascending within [0, 1] with parseable colors.
	Colorscale []ColorStop
	// HoverProps names element metadata properties to append to each
	// tile's hover text as "name = value" lines.
	HoverProps []string
	// HoverData maps element symbols to one extra caller-supplied
	// hover line per element.
	HoverData map[string]string
	// ShowScale controls whether consumers draw the color scale.
	ShowScale bool
}

// Grid lays the vector out as a dense row-by-column tile matrix with
// annotation and hover texts, the data model behind the interactive
// heatmap variant.
func Grid(v aggregate.Vector, opts GridOptions) (*TileGrid, error) {
	if opts.HeatLabels == "" {
		opts.HeatLabels = LabelsValue
	}
	for _, prop := range opts.HoverProps {
		if !ptable.KnownProperty(prop) {
			return nil, &aggregate.InvalidInputError{
				Input:  prop,
				Reason: "unknown element property for hover text",
			}
		}
	}
	scale, err := buildColorscale(opts.Colorscale)
	if err != nil {
		return nil, err
	}

	labelVals := v
	if opts.HeatLabels == LabelsFraction || opts.HeatLabels == LabelsPercent {
		labelVals = v.Normalize()
	}

	g := &TileGrid{
		Rows:       GridRows,
		Cols:       GridCols,
		Values:     make([][]float64, GridRows),
		Colorscale: scale,
		ShowScale:  opts.ShowScale,
	}
	for r := range g.Values {
		g.Values[r] = make([]float64, GridCols)
		for c := range g.Values[r] {
			g.Values[r][c] = AbsentTile
		}
	}

	for _, e := range ptable.Load().Elements() {
		row, col := e.Row-1, e.Column-1

		annotation := e.Symbol
		if opts.HeatLabels != LabelsNone {
			annotation += "\n" + formatGridLabel(labelVals.Get(e.Symbol), opts.HeatLabels, opts.Precision)
		}

		hover := e.Name
		if extra, ok := opts.HoverData[e.Symbol]; ok {
			hover += "\n" + extra
		}
		for _, prop := range opts.HoverProps {
			if val, ok := e.Property(prop); ok {
				hover += fmt.Sprintf("\n%s = %s", prop, val)
			}
		}

		val := v.Get(e.Symbol)
		g.Values[row][col] = val + presenceEpsilon
		g.Tiles = append(g.Tiles, Tile{
			Symbol:     e.Symbol,
			Row:        row,
			Col:        col,
			Value:      val,
			Annotation: annotation,
			Hover:      hover,
		})
	}
	return g, nil
}

func formatGridLabel(val float64, labels HeatLabels, precision string) string {
	switch {
	case math.IsInf(val, 1):
		return "∞"
	case math.IsNaN(val):
		return "0/0"
	}
	return formatHeat(val, labels, precision)
}

// buildColorscale validates the caller's stops and inserts the
// transparent absent-tile stop plus the near-zero boundary stop that
// visually separates absent from present-but-zero tiles.
func buildColorscale(stops []ColorStop) ([]ColorStop, error) {
	if stops == nil {
		return []ColorStop{
			{Pos: 0, Color: "rgba(0,0,0,0)"},
			{Pos: presenceEpsilon, Color: "#008080"},
			{Pos: 1, Color: "#006400"},
		}, nil
	}
	if len(stops) < 2 {
		return nil, &aggregate.InvalidInputError{
			Input:  stops,
			Reason: "colorscale needs at least 2 stops",
		}
	}
	prev := -1.0
	for _, s := range stops {
		if s.Pos < 0 || s.Pos > 1 || s.Pos <= prev {
			return nil, &aggregate.InvalidInputError{
				Input:  stops,
				Reason: fmt.Sprintf("colorscale stop %v is out of order or outside [0, 1]", s.Pos),
			}
		}
		prev = s.Pos
		if _, err := parseColor(s.Color); err != nil {
			return nil, &aggregate.InvalidInputError{
				Input:  stops,
				Reason: fmt.Sprintf("colorscale stop %v has invalid color %q", s.Pos, s.Color),
			}
		}
	}

	out := make([]ColorStop, 0, len(stops)+1)
	out = append(out, ColorStop{Pos: 0, Color: "rgba(0,0,0,0)"})
	out = append(out, stops...)
	out[1].Pos = presenceEpsilon
	return out, nil
}
