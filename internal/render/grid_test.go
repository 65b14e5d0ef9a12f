package render

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/unbound-force/elemviz/internal/aggregate"
)

func TestGrid_Dimensions(t *testing.T) {
	g, err := Grid(countVector(t, "Fe2O3"), GridOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if g.Rows != GridRows || g.Cols != GridCols {
		t.Fatalf("grid is %dx%d, want %dx%d", g.Rows, g.Cols, GridRows, GridCols)
	}
	if len(g.Values) != GridRows || len(g.Values[0]) != GridCols {
		t.Fatal("values matrix does not match declared dimensions")
	}
	if len(g.Tiles) != 118 {
		t.Fatalf("grid has %d tiles, want 118", len(g.Tiles))
	}
}

func TestGrid_AbsentPositionsAreSentinel(t *testing.T) {
	g, err := Grid(countVector(t, "Fe2O3"), GridOptions{})
	if err != nil {
		t.Fatal(err)
	}
	// Row 1 has H at column 1 and He at column 18; everything in
	// between is structurally absent.
	for c := 1; c < 17; c++ {
		if g.Values[0][c] != AbsentTile {
			t.Errorf("Values[0][%d] = %v, want sentinel %v", c, g.Values[0][c], AbsentTile)
		}
	}
	// Spacer row 8 between the main block and the f-block.
	for c := 0; c < GridCols; c++ {
		if g.Values[7][c] != AbsentTile {
			t.Errorf("Values[7][%d] = %v, want sentinel", c, g.Values[7][c])
		}
	}
}

func TestGrid_PresentTilesShifted(t *testing.T) {
	v := countVector(t, "Fe2O3")
	g, err := Grid(v, GridOptions{})
	if err != nil {
		t.Fatal(err)
	}
	fe, ok := g.At(3, 7) // Fe is row 4, column 8 in table coordinates
	if !ok {
		t.Fatal("Fe tile not found at (3,7)")
	}
	if math.Abs(g.Values[3][7]-(fe.Value+1e-6)) > 1e-12 {
		t.Errorf("Fe cell value %v not shifted by the presence epsilon", g.Values[3][7])
	}
	// A present element with value 0 still sits above the sentinel.
	h, ok := g.At(0, 0)
	if !ok {
		t.Fatal("H tile not found")
	}
	if h.Value != 0 {
		t.Errorf("H value = %v, want 0", h.Value)
	}
	if g.Values[0][0] <= AbsentTile {
		t.Error("present zero-valued tile must exceed the absent sentinel")
	}
}

func TestGrid_AnnotationsAndHover(t *testing.T) {
	v := countVector(t, "Fe2O3")
	g, err := Grid(v, GridOptions{
		Precision:  "%.1f",
		HoverProps: []string{"atomic_number", "electronegativity"},
		HoverData:  map[string]string{"Fe": "seen in 1 composition"},
	})
	if err != nil {
		t.Fatal(err)
	}
	fe, _ := g.At(3, 7)
	if !strings.HasPrefix(fe.Annotation, "Fe\n") {
		t.Errorf("Fe annotation = %q, want symbol then label", fe.Annotation)
	}
	if !strings.Contains(fe.Annotation, "0.4") {
		t.Errorf("Fe annotation = %q, want the heat label 0.4", fe.Annotation)
	}
	if !strings.HasPrefix(fe.Hover, "Iron") {
		t.Errorf("Fe hover = %q, want display name first", fe.Hover)
	}
	if !strings.Contains(fe.Hover, "seen in 1 composition") {
		t.Errorf("Fe hover = %q, want the caller-supplied line", fe.Hover)
	}
	if !strings.Contains(fe.Hover, "atomic_number = 26") {
		t.Errorf("Fe hover = %q, want the atomic_number property line", fe.Hover)
	}

	// Properties the element lacks contribute no line.
	ne, _ := g.At(1, 17)
	if strings.Contains(ne.Hover, "electronegativity") {
		t.Errorf("Ne hover = %q, should omit unassigned electronegativity", ne.Hover)
	}
}

func TestGrid_LabelsNoneOmitsValues(t *testing.T) {
	g, err := Grid(countVector(t, "Fe2O3"), GridOptions{HeatLabels: LabelsNone})
	if err != nil {
		t.Fatal(err)
	}
	fe, _ := g.At(3, 7)
	if fe.Annotation != "Fe" {
		t.Errorf("annotation = %q, want bare symbol", fe.Annotation)
	}
}

func TestGrid_DefaultColorscale(t *testing.T) {
	g, err := Grid(countVector(t, "Fe2O3"), GridOptions{})
	if err != nil {
		t.Fatal(err)
	}
	cs := g.Colorscale
	if len(cs) != 3 {
		t.Fatalf("default colorscale has %d stops, want 3", len(cs))
	}
	if cs[0].Pos != 0 || !strings.Contains(cs[0].Color, "rgba") {
		t.Errorf("stop 0 = %+v, want transparent at 0", cs[0])
	}
	if cs[1].Pos != 1e-6 {
		t.Errorf("boundary stop at %v, want 1e-6", cs[1].Pos)
	}
}

func TestGrid_CustomColorscaleGetsBoundaryStop(t *testing.T) {
	g, err := Grid(countVector(t, "Fe2O3"), GridOptions{
		Colorscale: []ColorStop{{0, "#ffffff"}, {1, "#000000"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	cs := g.Colorscale
	if len(cs) != 3 {
		t.Fatalf("colorscale has %d stops, want 3", len(cs))
	}
	if cs[0].Pos != 0 || cs[1].Pos != 1e-6 {
		t.Errorf("stops = %+v, want transparent then boundary at 1e-6", cs[:2])
	}
}

func TestGrid_MalformedColorscale(t *testing.T) {
	tests := []struct {
		name  string
		stops []ColorStop
	}{
		{"single stop", []ColorStop{{0, "#fff"}}},
		{"descending", []ColorStop{{0.5, "#fff"}, {0.2, "#000"}}},
		{"out of range", []ColorStop{{0, "#fff"}, {1.5, "#000"}}},
		{"bad color", []ColorStop{{0, "#fff"}, {1, "not-a-color"}}},
	}
	for _, tt := range tests {
		_, err := Grid(countVector(t, "Fe2O3"), GridOptions{Colorscale: tt.stops})
		if err == nil {
			t.Fatalf("%s: expected error", tt.name)
		}
		var invalid *aggregate.InvalidInputError
		if !errors.As(err, &invalid) {
			t.Fatalf("%s: error = %T, want *aggregate.InvalidInputError", tt.name, err)
		}
	}
}

func TestGrid_UnknownHoverProp(t *testing.T) {
	_, err := Grid(countVector(t, "Fe2O3"), GridOptions{HoverProps: []string{"discoverer"}})
	if err == nil {
		t.Fatal("expected error for unknown hover property")
	}
	if !strings.Contains(err.Error(), "discoverer") {
		t.Errorf("error %q does not name the property", err.Error())
	}
}
