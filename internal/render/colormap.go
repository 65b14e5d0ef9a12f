package render

import (
	"fmt"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ColorStop anchors a color at a fractional position in [0, 1].
type ColorStop struct {
	Pos   float64 `json:"pos"`
	Color string  `json:"color"`
}

// Colormap maps normalized values in [0, 1] to colors by blending
// between its stops in Lab space.
type Colormap struct {
	Name  string
	stops []struct {
		pos float64
		col colorful.Color
	}
}

// Named colormaps. Stop colors follow the matplotlib palettes of the
// same names closely enough for visual continuity.
var colormaps = map[string][]ColorStop{
	"summer_r": {
		{0, "#ffff66"}, {1, "#008066"},
	},
	"summer": {
		{0, "#008066"}, {1, "#ffff66"},
	},
	"viridis": {
		{0, "#440154"}, {0.25, "#3b528b"}, {0.5, "#21918c"},
		{0.75, "#5ec962"}, {1, "#fde725"},
	},
	"YlGn": {
		{0, "#ffffe5"}, {0.5, "#78c679"}, {1, "#004529"},
	},
	"Blues": {
		{0, "#f7fbff"}, {0.5, "#6baed6"}, {1, "#08306b"},
	},
}

// ColormapByName returns a named colormap. Unknown names fail with an
// error listing the available palettes.
func ColormapByName(name string) (*Colormap, error) {
	stops, ok := colormaps[name]
	if !ok {
		names := make([]string, 0, len(colormaps))
		for n := range colormaps {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("render: unknown colormap %q, available: %s",
			name, strings.Join(names, ", "))
	}
	return NewColormap(name, stops)
}

// NewColormap builds a colormap from explicit stops. Stops must be
// ascending with the first at 0 and the last at 1.
func NewColormap(name string, stops []ColorStop) (*Colormap, error) {
	if len(stops) < 2 {
		return nil, fmt.Errorf("render: colormap %q needs at least 2 stops", name)
	}
	cm := &Colormap{Name: name}
	prev := -1.0
	for _, s := range stops {
		if s.Pos < 0 || s.Pos > 1 || s.Pos <= prev {
			return nil, fmt.Errorf("render: colormap %q has non-ascending stop %v", name, s.Pos)
		}
		prev = s.Pos
		col, err := parseColor(s.Color)
		if err != nil {
			return nil, fmt.Errorf("render: colormap %q: %w", name, err)
		}
		cm.stops = append(cm.stops, struct {
			pos float64
			col colorful.Color
		}{s.Pos, col})
	}
	return cm, nil
}

// At returns the hex color for a normalized value, clamped to [0, 1].
func (cm *Colormap) At(t float64) string {
	if t <= cm.stops[0].pos {
		return cm.stops[0].col.Hex()
	}
	last := cm.stops[len(cm.stops)-1]
	if t >= last.pos {
		return last.col.Hex()
	}
	for i := 1; i < len(cm.stops); i++ {
		if t <= cm.stops[i].pos {
			lo, hi := cm.stops[i-1], cm.stops[i]
			frac := (t - lo.pos) / (hi.pos - lo.pos)
			return lo.col.BlendLab(hi.col, frac).Clamped().Hex()
		}
	}
	return last.col.Hex()
}

// Stops returns the colormap's stops with hex colors.
func (cm *Colormap) Stops() []ColorStop {
	out := make([]ColorStop, len(cm.stops))
	for i, s := range cm.stops {
		out[i] = ColorStop{Pos: s.pos, Color: s.col.Hex()}
	}
	return out
}

// cssColors maps the color names used by the rendering defaults to
// hex values, since go-colorful parses only hex strings.
var cssColors = map[string]string{
	"white":        "#ffffff",
	"black":        "#000000",
	"gray":         "#808080",
	"grey":         "#808080",
	"lightskyblue": "#87cefa",
	"teal":         "#008080",
	"darkgreen":    "#006400",
	"red":          "#ff0000",
	"blue":         "#0000ff",
	"green":        "#008000",
}

// parseColor accepts "#rgb"/"#rrggbb" hex strings and the small set of
// CSS color names the defaults rely on.
func parseColor(s string) (colorful.Color, error) {
	if hex, ok := cssColors[strings.ToLower(s)]; ok {
		s = hex
	}
	if len(s) == 4 && s[0] == '#' {
		// Expand #abc to #aabbcc.
		s = fmt.Sprintf("#%c%c%c%c%c%c", s[1], s[1], s[2], s[2], s[3], s[3])
	}
	col, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid color %q", s)
	}
	return col, nil
}
