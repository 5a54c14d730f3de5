package pipeline

import (
	"fmt"

	"github.com/matzehuels/mumplot/pkg/errors"
	"github.com/matzehuels/mumplot/pkg/render"
	"github.com/matzehuels/mumplot/pkg/render/sink"
)

var sinks = map[string]func(*render.Figure) ([]byte, error){
	FormatPNG:  sink.RenderPNG,
	FormatSVG:  sink.RenderSVG,
	FormatJSON: sink.RenderJSON,
}

// Render draws g once per requested format and returns the bytes by format.
func Render(g *Geometry, opts Options) (map[string][]byte, error) {
	fig := g.Figure(opts)
	out := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		draw, ok := sinks[format]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
		}
		data, err := draw(fig)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		out[format] = data
	}
	return out, nil
}
