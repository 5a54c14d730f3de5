// Package render describes a synteny plot independently of its output format.
//
// # Overview
//
// A [Figure] bundles the per-track lengths and labels, the ribbons built by
// package geometry, the centering offsets, and a [Style]. A [Frame] turns the
// figure into pixel geometry: canvas size from the style's inches and DPI,
// margins for tick labels and axis titles, and the mapping from base pairs
// and track indices to pixels (track 0 at the top).
//
// The sink subpackage writes a figure as PNG, SVG or JSON.
//
//	fig := &render.Figure{
//	    Lengths: lengths,
//	    Names:   names,
//	    Ribbons: ribbons,
//	    Offsets: geometry.Center(lengths, true),
//	    Style:   render.DefaultStyle(),
//	}
//	png, err := sink.RenderPNG(fig)
//
// # Colors
//
// [ParseColor] accepts hex colors, CSS color names, single-letter shorthands
// and the tab10 cycle entries "C0".."C9".
package render
