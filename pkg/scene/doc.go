// Package scene reads and writes layout scenes and layout results.
//
// # Scene Format
//
// A scene describes one layout request: the available width, the spacing
// and the items to lay out. Scenes can be written in JSON, YAML or TOML:
//
//	{
//	  "width": 200,
//	  "horizontal_spacing": 4,
//	  "vertical_spacing": 16,
//	  "font": "regular",
//	  "font_size": 14,
//	  "padding": 4,
//	  "items": [
//	    {"id": "a", "label": "Hello"},
//	    {"id": "b", "width": 40, "height": 20}
//	  ]
//	}
//
// Every field except items is optional. An omitted width means the layout
// is unconstrained and everything lands on one line. Omitted spacings
// default to 4, an omitted padding to 4.
//
// An item is either a text label (measured with the scene's font) or a
// fixed box with an explicit width and height, never both.
//
// # Results
//
// A [Result] is the outcome of a layout: the content size, the lines and the
// frame of every item. Results are what the renderers, the cache and the
// store exchange. Use [ReadResult] and [WriteResult] for JSON I/O.
package scene
