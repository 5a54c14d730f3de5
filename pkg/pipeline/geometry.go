package pipeline

import (
	"github.com/matzehuels/mumplot/pkg/collinear"
	"github.com/matzehuels/mumplot/pkg/geometry"
	"github.com/matzehuels/mumplot/pkg/mums"
	"github.com/matzehuels/mumplot/pkg/render"
)

// Geometry is the render-ready output of the geometry stage. It is what the
// geometry cache stores.
type Geometry struct {
	Lengths []int             `json:"lengths"`
	Names   []string          `json:"names,omitempty"`
	Offsets geometry.Offsets  `json:"offsets"`
	Ribbons []geometry.Ribbon `json:"ribbons"`
	Matches int               `json:"matches"`
	Blocks  int               `json:"blocks"` // zero when blocks are disabled
}

// BuildGeometry turns loaded matches into ribbons.
//
// Without collinear blocks only matches present on every track are drawn,
// one ribbon set per match. With blocks, runs of collinear matches are
// merged first and each block is drawn as one ribbon set. Unset options,
// including the logger, take their defaults.
func BuildGeometry(in *Input, opts Options) (*Geometry, error) {
	opts.SetDefaults()
	off := geometry.Center(in.Lengths, opts.Center)
	g := &Geometry{
		Lengths: in.Lengths,
		Names:   in.Names,
		Offsets: off,
		Matches: len(in.Matches),
	}

	var err error
	if opts.NoCollinearBlocks {
		full := collinear.Full(in.Matches)
		opts.Logger.Debug("drawing full matches", "matches", len(full), "dropped", len(in.Matches)-len(full))
		g.Ribbons, err = geometry.MatchRibbons(full, off)
	} else {
		copts := opts.CollinearOptions(mums.MaxLength(in.Lengths))
		blocks := collinear.Find(in.Matches, copts)
		g.Blocks = len(blocks)
		opts.Logger.Debug("found collinear blocks", "blocks", len(blocks), "max_gap", copts.Gap())
		g.Ribbons, err = geometry.BlockRibbons(in.Matches, blocks, off)
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Figure assembles the render model for g with the options' style.
func (g *Geometry) Figure(opts Options) *render.Figure {
	return &render.Figure{
		Lengths: g.Lengths,
		Names:   g.Names,
		Ribbons: g.Ribbons,
		Offsets: g.Offsets,
		Style:   opts.Style(),
	}
}
