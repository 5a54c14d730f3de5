package geometry

// Offsets holds one horizontal shift per track, added to every x-coordinate
// on that track.
type Offsets []float64

// Center returns per-track offsets. When enabled, each track is shifted by
// half its shortfall against the longest track so all tracks share a center;
// otherwise every offset is zero.
func Center(lengths []int, enabled bool) Offsets {
	off := make(Offsets, len(lengths))
	if !enabled {
		return off
	}
	longest := 0
	for _, l := range lengths {
		longest = max(longest, l)
	}
	for i, l := range lengths {
		off[i] = float64(longest-l) / 2
	}
	return off
}
