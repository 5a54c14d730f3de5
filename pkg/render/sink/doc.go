// Package sink writes a [render.Figure] in a concrete output format.
//
// # Overview
//
// Three sinks share the pixel frame computed by [render.NewFrame]:
//
//   - PNG: rasterized in-process with gogpu/gg, no external tools
//   - SVG: a standalone vector document written by hand
//   - JSON: ribbon outlines in data coordinates for external tools
//
// All sinks draw the same layers in the same order: a white canvas, one faint
// baseline per track, the ribbons (clipped to the plot area), then the axes
// frame, x ticks, track labels and axis titles on top.
//
//	png, err := sink.RenderPNG(fig)
//	svg, err := sink.RenderSVG(fig)
//	raw, err := sink.RenderJSON(fig)
//
// Ribbons are filled at the style's alpha without an outline, so overlapping
// ribbons darken where they cross.
package sink
