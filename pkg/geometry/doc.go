// Package geometry turns matches into the filled ribbons of a synteny plot.
//
// # Coordinates
//
// All geometry is in data coordinates: x in base pairs (plus the track's
// centering offset from [Center]) and y equal to the track index. Converting
// to pixels is the renderer's job.
//
// # Ribbons
//
// A ribbon connects a match's interval on consecutive tracks. [FromPairs]
// builds its outline from one (left, right) [Pair] per track: the left
// endpoints in track order followed by the right endpoints in reverse.
//
// A match whose strand changes between tracks is cut at every change. Each
// homogeneous run becomes a [Normal] ribbon and each change becomes a short
// two-track [Inverted] ribbon, so a single-inversion match
//
//	strands: + + -
//
// yields a Normal ribbon over tracks 0-1 and an Inverted ribbon over tracks
// 1-2. Tracks where the match is absent are skipped without breaking the
// ribbon.
//
// # Generators
//
// [MatchRibbons] draws every match on its own. [BlockRibbons] draws each
// collinear block (see package collinear) as one ribbon set spanning its
// first to last match, so the ribbon count no longer grows with the number of
// matches in a run.
package geometry
