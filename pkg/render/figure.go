package render

import (
	"fmt"
	"image/color"

	"github.com/matzehuels/mumplot/pkg/geometry"
)

// Axis labels.
const (
	XLabel = "genomic position"
	YLabel = "sequences"
)

// Baseline style: a faint reference line per track.
const (
	baselineAlpha = 0.2
	baselinePt    = 0.75
)

// Figure is everything a sink needs to draw one synteny plot.
type Figure struct {
	Lengths []int             // sequence length per track
	Names   []string          // optional track labels
	Ribbons []geometry.Ribbon // ribbons in data coordinates
	Offsets geometry.Offsets  // centering offset per track; nil means none
	Style   Style
}

// Validate checks that per-track slices agree and the style is usable.
func (f *Figure) Validate() error {
	if len(f.Names) > 0 && len(f.Names) != len(f.Lengths) {
		return fmt.Errorf("%d track names for %d tracks", len(f.Names), len(f.Lengths))
	}
	if f.Offsets != nil && len(f.Offsets) != len(f.Lengths) {
		return fmt.Errorf("%d offsets for %d tracks", len(f.Offsets), len(f.Lengths))
	}
	return f.Style.Validate()
}

// Tracks returns the number of tracks.
func (f *Figure) Tracks() int { return len(f.Lengths) }

// MaxLength returns the longest track length, which sets the x range.
func (f *Figure) MaxLength() int {
	m := 0
	for _, l := range f.Lengths {
		m = max(m, l)
	}
	return m
}

// Offset returns the centering offset of track t.
func (f *Figure) Offset(t int) float64 {
	if f.Offsets == nil {
		return 0
	}
	return f.Offsets[t]
}

// Baseline is the reference line drawn under a track.
type Baseline struct {
	Track  int
	X0, X1 float64 // data coordinates
	Color  color.NRGBA
}

// Baselines returns one baseline per track spanning [offset, offset+length],
// colored from Cycle.
func (f *Figure) Baselines() []Baseline {
	out := make([]Baseline, len(f.Lengths))
	for t, l := range f.Lengths {
		c, _ := ParseColor(Cycle[t%len(Cycle)])
		off := f.Offset(t)
		out[t] = Baseline{Track: t, X0: off, X1: off + float64(l), Color: WithAlpha(c, baselineAlpha)}
	}
	return out
}

// TrackLabel returns the y tick label of track t, or "" when unnamed.
func (f *Figure) TrackLabel(t int) string {
	if t < len(f.Names) {
		return f.Names[t]
	}
	return ""
}
