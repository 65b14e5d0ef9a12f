// Package render lays element value vectors out on the periodic-table
// grid and writes them as SVG, styled terminal text, or JSON.
package render

import (
	"encoding/json"
	"io"
)

// JSONGrid is the top-level JSON output structure for tile grids.
type JSONGrid struct {
	Version string    `json:"version"`
	Grid    *TileGrid `json:"grid"`
}

// WriteJSON writes a tile grid as formatted JSON to the writer.
func WriteJSON(w io.Writer, g *TileGrid) error {
	out := JSONGrid{
		Version: "0.1.0",
		Grid:    g,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
