// Package config loads mumplot's optional TOML configuration file.
//
// The file holds the defaults a user wants on every run. Command-line flags
// always win: the CLI applies the file first and then the flags that were set
// explicitly.
//
//	[input]
//	min_length = 20
//
//	[plot]
//	color = "#1f77b4"
//	inversion_color = "orange"
//	alpha = 0.4
//	dims = [8.0, 3.0]
//	dpi = 300
//	center = true
//	formats = ["png", "svg"]
//
//	[blocks]
//	enabled = true
//	max_gap = 500
//
//	[cache]
//	enabled = true
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/mumplot/pkg/errors"
	"github.com/matzehuels/mumplot/pkg/pipeline"
)

// FileName is the config file name inside the user config directory.
const FileName = "config.toml"

// Config mirrors the file layout. Unset keys stay nil and leave the
// corresponding option alone.
type Config struct {
	Input  Input  `toml:"input"`
	Plot   Plot   `toml:"plot"`
	Blocks Blocks `toml:"blocks"`
	Cache  Cache  `toml:"cache"`
}

// Input configures match filtering.
type Input struct {
	MinLength *int `toml:"min_length"`
	Subsample *int `toml:"subsample"`
}

// Plot configures styling and output.
type Plot struct {
	Color          *string   `toml:"color"`
	InversionColor *string   `toml:"inversion_color"`
	Alpha          *float64  `toml:"alpha"`
	Dims           []float64 `toml:"dims"` // width, height in inches
	DPI            *int      `toml:"dpi"`
	Center         *bool     `toml:"center"`
	Formats        []string  `toml:"formats"`
}

// Blocks configures collinear block merging.
type Blocks struct {
	Enabled *bool `toml:"enabled"`
	MaxGap  *int  `toml:"max_gap"`
}

// Cache configures the artifact cache.
type Cache struct {
	Enabled *bool `toml:"enabled"`
}

// DefaultPath returns $XDG_CONFIG_HOME/mumplot/config.toml (or the platform
// equivalent).
func DefaultPath(app string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, app, FileName), nil
}

// Load parses the file at path. Unknown keys are rejected so typos surface.
func Load(path string) (*Config, error) {
	var c Config
	md, err := toml.DecodeFile(path, &c)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "config file %s does not exist", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	return &c, nil
}

// LoadOptional loads path when it exists and returns an empty Config
// otherwise.
func LoadOptional(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}
	return Load(path)
}

// Validate checks values that cannot be caught by option validation later.
func (c *Config) Validate() error {
	if d := c.Plot.Dims; d != nil && len(d) != 2 {
		return fmt.Errorf("plot.dims needs 2 values (width, height), got %d", len(d))
	}
	return nil
}

// Apply copies every set key onto opts.
func (c *Config) Apply(opts *pipeline.Options) {
	setIf(&opts.MinLength, c.Input.MinLength)
	setIf(&opts.Subsample, c.Input.Subsample)

	setIf(&opts.Color, c.Plot.Color)
	setIf(&opts.InversionColor, c.Plot.InversionColor)
	if c.Plot.Alpha != nil {
		a := *c.Plot.Alpha
		opts.Alpha = &a
	}
	if len(c.Plot.Dims) == 2 {
		opts.Width, opts.Height = c.Plot.Dims[0], c.Plot.Dims[1]
	}
	setIf(&opts.DPI, c.Plot.DPI)
	setIf(&opts.Center, c.Plot.Center)
	if len(c.Plot.Formats) > 0 {
		opts.Formats = append([]string(nil), c.Plot.Formats...)
	}

	if c.Blocks.Enabled != nil {
		opts.NoCollinearBlocks = !*c.Blocks.Enabled
	}
	setIf(&opts.MaxGap, c.Blocks.MaxGap)
}

// CacheEnabled reports whether caching is on (the default).
func (c *Config) CacheEnabled() bool {
	return c.Cache.Enabled == nil || *c.Cache.Enabled
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
