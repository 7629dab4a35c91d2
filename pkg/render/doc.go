// Package render groups the output formats for computed layouts.
//
// Every renderer takes a [scene.Result] and needs nothing else; layouts
// are never measured again during rendering.
//
//   - [svg]: vector output with pluggable styles and optional embedded font
//   - [raster]: PNG output drawn with the same fonts used for measuring
//   - [term]: text output for terminals, one row per line
//   - [plandot]: the line plan as a Graphviz graph (DOT source or SVG)
//
// [scene.Result]: github.com/matzehuels/wraplayout/pkg/scene#Result
// [svg]: github.com/matzehuels/wraplayout/pkg/render/svg
// [raster]: github.com/matzehuels/wraplayout/pkg/render/raster
// [term]: github.com/matzehuels/wraplayout/pkg/render/term
// [plandot]: github.com/matzehuels/wraplayout/pkg/render/plandot
package render
