package sink

import (
	"encoding/json"

	"github.com/matzehuels/mumplot/pkg/render"
)

type jsonOutput struct {
	Tracks  []jsonTrack  `json:"tracks"`
	Ribbons []jsonRibbon `json:"ribbons"`
	Style   render.Style `json:"style"`
}

type jsonTrack struct {
	Index  int     `json:"index"`
	Name   string  `json:"name,omitempty"`
	Length int     `json:"length"`
	Offset float64 `json:"offset"`
}

type jsonRibbon struct {
	Tag     string       `json:"tag"`
	Outline [][2]float64 `json:"outline"`
}

// RenderJSON exports the figure geometry in data coordinates: x in base pairs
// including the centering offset, y as the track index.
func RenderJSON(f *render.Figure) ([]byte, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	out := jsonOutput{
		Tracks:  make([]jsonTrack, f.Tracks()),
		Ribbons: make([]jsonRibbon, len(f.Ribbons)),
		Style:   f.Style,
	}
	for t, l := range f.Lengths {
		out.Tracks[t] = jsonTrack{Index: t, Name: f.TrackLabel(t), Length: l, Offset: f.Offset(t)}
	}
	for i, r := range f.Ribbons {
		pts := make([][2]float64, len(r.Outline))
		for j, p := range r.Outline {
			pts[j] = [2]float64{p.X, p.Y}
		}
		out.Ribbons[i] = jsonRibbon{Tag: r.Tag.String(), Outline: pts}
	}
	return json.MarshalIndent(out, "", "  ")
}
