package render

// Schema is the JSON Schema (Draft 2020-12) for the tile grid JSON
// output. It documents the structure returned by WriteJSON.
const Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/unbound-force/elemviz/tile-grid.schema.json",
  "title": "Elemviz Tile Grid",
  "description": "Output schema for elemviz heatmap --format=json",
  "type": "object",
  "required": ["version", "grid"],
  "properties": {
    "version": {
      "type": "string",
      "description": "Schema version (semver)"
    },
    "grid": { "$ref": "#/$defs/TileGrid" }
  },
  "$defs": {
    "TileGrid": {
      "type": "object",
      "required": ["rows", "cols", "values", "tiles", "colorscale", "show_scale"],
      "properties": {
        "rows": {
          "type": "integer",
          "description": "Grid row count"
        },
        "cols": {
          "type": "integer",
          "description": "Grid column count"
        },
        "values": {
          "type": "array",
          "description": "Dense row-major cell values; -1 marks absent positions",
          "items": {
            "type": "array",
            "items": { "type": "number" }
          }
        },
        "tiles": {
          "type": "array",
          "items": { "$ref": "#/$defs/Tile" }
        },
        "colorscale": {
          "type": "array",
          "items": { "$ref": "#/$defs/ColorStop" }
        },
        "show_scale": {
          "type": "boolean",
          "description": "Whether consumers should draw the color scale"
        }
      }
    },
    "Tile": {
      "type": "object",
      "required": ["symbol", "row", "col", "value", "annotation", "hover"],
      "properties": {
        "symbol": {
          "type": "string",
          "description": "Element symbol"
        },
        "row": {
          "type": "integer",
          "description": "Zero-based grid row"
        },
        "col": {
          "type": "integer",
          "description": "Zero-based grid column"
        },
        "value": {
          "type": "number",
          "description": "Raw heat value before the presence shift"
        },
        "annotation": {
          "type": "string",
          "description": "Text drawn inside the tile"
        },
        "hover": {
          "type": "string",
          "description": "Tooltip text for the tile"
        }
      }
    },
    "ColorStop": {
      "type": "object",
      "required": ["pos", "color"],
      "properties": {
        "pos": {
          "type": "number",
          "description": "Fractional position in [0, 1]"
        },
        "color": {
          "type": "string",
          "description": "Stop color"
        }
      }
    }
  }
}`
