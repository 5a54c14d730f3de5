// Package pipeline provides the plotting pipeline for mumplot.
//
// This package implements the complete load → geometry → render pipeline
// used by the CLI. By centralizing this logic, every command shares the same
// defaults, validation, and caching.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read sequence lengths, optional track names, and the match file
//  2. Geometry: Detect collinear blocks and build ribbon polygons
//  3. Render: Generate output in the requested formats (PNG, SVG, JSON)
//
// Geometry and rendered artifacts are cached by content hash, so re-plotting
// the same inputs with a different color only repeats the render stage.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    InputPrefix: "data/genomes",
//	    Formats:     []string{"png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	paths, err := runner.Write(result, opts)
package pipeline

import (
	"io"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mumplot/pkg/cache"
	"github.com/matzehuels/mumplot/pkg/collinear"
	"github.com/matzehuels/mumplot/pkg/errors"
	"github.com/matzehuels/mumplot/pkg/render"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultSubsample keeps every match.
	DefaultSubsample = 1

	// DefaultMaxGap derives the collinear gap tolerance from the output
	// resolution (one pixel's worth of base pairs).
	DefaultMaxGap = collinear.Auto
)

// File extensions of the inputs.
const (
	ExtMums     = ".mums"
	ExtLengths  = ".lengths"
	ExtFilelist = ".filelist"
)

// Format constants for output formats.
const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats lists the supported output formats.
var ValidFormats = []string{FormatPNG, FormatSVG, FormatJSON}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the plotting pipeline.
type Options struct {
	// Input options. Exactly one of InputPrefix and MumFile is required.
	InputPrefix string `json:"input_prefix,omitempty"` // prefix.mums and prefix.lengths
	MumFile     string `json:"mum_file,omitempty"`
	LengthsFile string `json:"lengths_file,omitempty"` // default: match file stem + .lengths
	FileList    string `json:"filelist,omitempty"`     // optional, labels tracks
	MinLength   int    `json:"min_length,omitempty"`
	Subsample   int    `json:"subsample,omitempty"`

	// Geometry options
	Center            bool `json:"center,omitempty"`
	NoCollinearBlocks bool `json:"no_collinear_blocks,omitempty"`
	MaxGap            int  `json:"max_gap,omitempty"` // negative: derive from resolution

	// Render options
	Color          string   `json:"color,omitempty"`
	InversionColor string   `json:"inversion_color,omitempty"`
	Alpha          *float64 `json:"alpha,omitempty"`
	Width          float64  `json:"width,omitempty"`  // inches
	Height         float64  `json:"height,omitempty"` // inches
	DPI            int      `json:"dpi,omitempty"`
	Formats        []string `json:"formats,omitempty"`
	Output         string   `json:"output,omitempty"` // default: input prefix

	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies the run in log lines.
	ID string

	// Geometry is the computed plot geometry.
	Geometry *Geometry

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains counts and timings.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Matches    int
	Tracks     int
	Blocks     int
	Ribbons    int
	Inverted   int
	LoadTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	GeometryHit bool // Whether the ribbons came from cache
	RenderHit   bool // Whether all artifacts came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults resolves input paths, applies defaults, and checks
// every option. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ResolveInputs(); err != nil {
		return err
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ResolveInputs fills MumFile and LengthsFile from InputPrefix or MumFile.
func (o *Options) ResolveInputs() error {
	switch {
	case o.InputPrefix != "" && o.MumFile != "":
		return errors.New(errors.ErrCodeInvalidInput, "input prefix and match file are mutually exclusive")
	case o.InputPrefix != "":
		o.MumFile = o.InputPrefix + ExtMums
		if o.LengthsFile == "" {
			o.LengthsFile = o.InputPrefix + ExtLengths
		}
	case o.MumFile != "":
		if o.LengthsFile == "" {
			o.LengthsFile = o.prefix() + ExtLengths
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "an input prefix or a match file is required")
	}
	return nil
}

// prefix returns the input prefix, derived from the match file if needed.
func (o *Options) prefix() string {
	if o.InputPrefix != "" {
		return o.InputPrefix
	}
	return strings.TrimSuffix(o.MumFile, filepath.Ext(o.MumFile))
}

// SetDefaults fills unset options with their defaults.
func (o *Options) SetDefaults() {
	if o.Subsample == 0 {
		o.Subsample = DefaultSubsample
	}
	if o.Color == "" {
		o.Color = render.DefaultColor
	}
	if o.InversionColor == "" {
		o.InversionColor = render.DefaultInversionColor
	}
	if o.Alpha == nil {
		a := render.DefaultAlpha
		o.Alpha = &a
	}
	if o.Width == 0 {
		o.Width = render.DefaultWidth
	}
	if o.Height == 0 {
		o.Height = render.DefaultHeight
	}
	if o.DPI == 0 {
		o.DPI = render.DefaultDPI
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
	for i, f := range o.Formats {
		o.Formats[i] = strings.ToLower(strings.TrimSpace(f))
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks option values. Call after SetDefaults.
func (o *Options) Validate() error {
	if o.MinLength < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "length filter %d must not be negative", o.MinLength)
	}
	if o.Subsample < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "subsample %d must be at least 1", o.Subsample)
	}
	if err := o.Style().Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "style")
	}
	for _, f := range o.Formats {
		if err := errors.ValidateFormat(f, ValidFormats); err != nil {
			return err
		}
	}
	if dup := duplicate(o.Formats); dup != "" {
		return errors.New(errors.ErrCodeInvalidFormat, "format %q requested twice", dup)
	}
	return nil
}

func duplicate(ss []string) string {
	seen := make(map[string]bool, len(ss))
	for _, s := range ss {
		if seen[s] {
			return s
		}
		seen[s] = true
	}
	return ""
}

// Style returns the render style described by the options.
func (o *Options) Style() render.Style {
	s := render.Style{
		Color:          o.Color,
		InversionColor: o.InversionColor,
		Width:          o.Width,
		Height:         o.Height,
		DPI:            o.DPI,
	}
	if o.Alpha != nil {
		s.Alpha = *o.Alpha
	}
	return s
}

// CollinearOptions returns block detection options for sequences up to maxLength.
func (o *Options) CollinearOptions(maxLength int) collinear.Options {
	return collinear.Options{
		MaxGap:    o.MaxGap,
		MaxLength: maxLength,
		DPI:       o.DPI,
		Width:     o.Width,
	}
}

// GeometryKeyOpts returns cache key options for the geometry stage.
func (o *Options) GeometryKeyOpts() cache.GeometryKeyOpts {
	k := cache.GeometryKeyOpts{
		MinLength: o.MinLength,
		Subsample: o.Subsample,
		Center:    o.Center,
		Blocks:    !o.NoCollinearBlocks,
	}
	// Resolution only matters when it sets the gap tolerance.
	if k.Blocks {
		k.MaxGap = o.MaxGap
		if o.MaxGap < 0 {
			k.DPI, k.Width = o.DPI, o.Width
		}
	}
	return k
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	s := o.Style()
	return cache.ArtifactKeyOpts{
		Format:         format,
		Color:          s.Color,
		InversionColor: s.InversionColor,
		Alpha:          s.Alpha,
		DPI:            s.DPI,
		Width:          s.Width,
		Height:         s.Height,
	}
}

// OutputPath returns where the artifact of format is written.
//
// The name is Output, or the input prefix when unset. A trailing format
// extension is replaced by format's, otherwise format's is appended. A bare
// file name is placed in the match file's directory.
func (o *Options) OutputPath(format string) string {
	name := o.Output
	if name == "" {
		name = o.prefix()
	}
	if ext := strings.TrimPrefix(filepath.Ext(name), "."); slices.Contains(ValidFormats, strings.ToLower(ext)) {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	name += "." + format
	if filepath.Base(name) == name {
		name = filepath.Join(filepath.Dir(o.MumFile), name)
	}
	return name
}
