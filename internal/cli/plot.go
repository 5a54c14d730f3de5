package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mumplot/pkg/pipeline"
	"github.com/matzehuels/mumplot/pkg/render"
)

// plotFlags holds the command-line flags of the plot command. Style and
// geometry values only reach the pipeline when set explicitly, so config
// file values survive otherwise.
type plotFlags struct {
	opts    pipeline.Options
	alpha   float64
	dims    []float64
	noCache bool
}

// plotCommand creates the plot command, the main entry point of mumplot.
func (c *CLI) plotCommand() *cobra.Command {
	f := plotFlags{
		opts: pipeline.Options{
			Subsample:      pipeline.DefaultSubsample,
			MaxGap:         pipeline.DefaultMaxGap,
			Color:          render.DefaultColor,
			InversionColor: render.DefaultInversionColor,
			DPI:            render.DefaultDPI,
			Formats:        []string{pipeline.FormatPNG},
		},
		alpha: render.DefaultAlpha,
		dims:  []float64{render.DefaultWidth, render.DefaultHeight},
	}

	cmd := &cobra.Command{
		Use:     "plot",
		Aliases: []string{"render"},
		Short:   "Draw a synteny plot from a MUM file",
		Long: `Draw a synteny plot from a MUM file.

Inputs are either a prefix (-i data/run gives data/run.mums and
data/run.lengths) or an explicit match file (-m), whose lengths file
defaults to the same stem. An optional filelist labels the tracks.

Collinear runs of matches are merged into blocks before drawing, which keeps
large plots readable. With --no-coll-block only matches present on every
track are drawn, one ribbon per match.

Results are cached locally; re-plotting the same inputs with a different
style only repeats the rendering.`,
		Example: `  mumplot plot -i genomes
  mumplot plot -m genomes.mums -f genomes.filelist -c --format png,svg
  mumplot plot -i genomes -L 50 -g 1000 --dims 8,3 -d 300 -o synteny`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.plotOptions(cmd, &f)
			if err != nil {
				return err
			}
			return c.runPlot(cmd.Context(), newPrinter(cmd), opts, f.noCache)
		},
	}

	fl := cmd.Flags()
	addInputFlags(cmd, &f.opts)

	// Geometry flags
	fl.BoolVarP(&f.opts.Center, "center", "c", false, "center tracks horizontally")
	fl.BoolVarP(&f.opts.NoCollinearBlocks, "no-coll-block", "b", false, "draw each full match instead of collinear blocks")
	fl.IntVarP(&f.opts.MaxGap, "max-gap-len", "g", f.opts.MaxGap, "largest gap in bp merged into a collinear block (-1: one pixel)")

	// Render flags
	fl.StringVar(&f.opts.Color, "mum-color", f.opts.Color, "color of strand-preserving ribbons")
	fl.StringVar(&f.opts.InversionColor, "inversion-color", f.opts.InversionColor, "color of inverted ribbons")
	fl.Float64VarP(&f.alpha, "alpha", "a", f.alpha, "ribbon opacity in [0, 1]")
	fl.Float64SliceVar(&f.dims, "dims", f.dims, "figure width and height in inches")
	fl.IntVarP(&f.opts.DPI, "dpi", "d", f.opts.DPI, "output resolution")
	fl.StringSliceVar(&f.opts.Formats, "format", f.opts.Formats, "output format(s): png, svg, json (comma-separated)")
	fl.StringVarP(&f.opts.Output, "output", "o", "", "output name; the format extension is appended (default: input prefix)")

	// Cache flags
	fl.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fl.BoolVar(&f.opts.Refresh, "refresh", false, "ignore cached results and recompute")

	return cmd
}

// addInputFlags registers the flags that locate the input files.
func addInputFlags(cmd *cobra.Command, opts *pipeline.Options) {
	fl := cmd.Flags()
	fl.StringVarP(&opts.InputPrefix, "input-prefix", "i", "", "prefix of the .mums and .lengths files")
	fl.StringVarP(&opts.MumFile, "mums", "m", "", "match file")
	fl.StringVarP(&opts.LengthsFile, "lengths", "l", "", "sequence lengths file (default: match file stem + .lengths)")
	fl.StringVarP(&opts.FileList, "filelist", "f", "", "file listing one sequence path per track, used for labels")
	fl.IntVarP(&opts.MinLength, "len-filter", "L", 0, "drop matches shorter than this")
	fl.IntVarP(&opts.Subsample, "subsample", "s", pipeline.DefaultSubsample, "keep every n-th match")
	cmd.MarkFlagsMutuallyExclusive("input-prefix", "mums")
	cmd.MarkFlagsOneRequired("input-prefix", "mums")
	_ = cmd.MarkFlagFilename("mums", "mums")
	_ = cmd.MarkFlagFilename("lengths", "lengths")
}

// plotOptions merges config file values with the flags set on the command
// line. Flags win.
func (c *CLI) plotOptions(cmd *cobra.Command, f *plotFlags) (pipeline.Options, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return pipeline.Options{}, err
	}
	if !cfg.CacheEnabled() {
		f.noCache = true
	}

	// Inputs and outputs never come from the config file.
	opts := pipeline.Options{
		InputPrefix: f.opts.InputPrefix,
		MumFile:     f.opts.MumFile,
		LengthsFile: f.opts.LengthsFile,
		FileList:    f.opts.FileList,
		Output:      f.opts.Output,
		Refresh:     f.opts.Refresh,
		MaxGap:      pipeline.DefaultMaxGap,
		Logger:      c.Logger,
	}
	cfg.Apply(&opts)

	changed := cmd.Flags().Changed
	overrides := []struct {
		flag  string
		apply func()
	}{
		{"len-filter", func() { opts.MinLength = f.opts.MinLength }},
		{"subsample", func() { opts.Subsample = f.opts.Subsample }},
		{"center", func() { opts.Center = f.opts.Center }},
		{"no-coll-block", func() { opts.NoCollinearBlocks = f.opts.NoCollinearBlocks }},
		{"max-gap-len", func() { opts.MaxGap = f.opts.MaxGap }},
		{"mum-color", func() { opts.Color = f.opts.Color }},
		{"inversion-color", func() { opts.InversionColor = f.opts.InversionColor }},
		{"alpha", func() { a := f.alpha; opts.Alpha = &a }},
		{"dpi", func() { opts.DPI = f.opts.DPI }},
		{"format", func() { opts.Formats = f.opts.Formats }},
	}
	for _, o := range overrides {
		if changed(o.flag) {
			o.apply()
		}
	}
	if changed("dims") {
		if len(f.dims) != 2 {
			return pipeline.Options{}, fmt.Errorf("--dims needs a width and a height, got %v", f.dims)
		}
		opts.Width, opts.Height = f.dims[0], f.dims[1]
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

// runPlot executes the pipeline and writes the artifacts.
func (c *CLI) runPlot(ctx context.Context, out printer, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	sw := startStopwatch(c.Logger)
	spin := newSpinner(ctx, fmt.Sprintf("Plotting %s...", filepath.Base(opts.MumFile)))
	spin.start()
	result, err := runner.Execute(ctx, opts)
	spin.stop()
	if err != nil {
		if !spin.interrupted() {
			out.failure("Plot failed")
		}
		return err
	}

	paths, err := runner.Write(result, opts)
	if err != nil {
		return err
	}

	out.success("Plotted %s", filepath.Base(opts.MumFile))
	out.plotSummary(result.Stats, result.CacheInfo.GeometryHit && result.CacheInfo.RenderHit)
	for _, p := range paths {
		out.file(p)
	}
	sw.done("wrote plot", "files", len(paths))
	return nil
}
