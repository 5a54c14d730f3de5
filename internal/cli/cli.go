package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mumplot/pkg/buildinfo"
	"github.com/matzehuels/mumplot/pkg/cache"
	"github.com/matzehuels/mumplot/pkg/config"
	"github.com/matzehuels/mumplot/pkg/pipeline"
)

// appName names the binary and its config and cache directories.
const appName = "mumplot"

// Log levels for main, which does not import charmbracelet/log.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI is the state shared by every subcommand.
type CLI struct {
	Logger *log.Logger

	configFile string // --config; empty selects the default location
}

// New returns a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand builds the command tree.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "mumplot draws synteny plots of maximal unique matches",
		Long: `mumplot draws a synteny plot of maximal unique matches (MUMs) shared by
two or more sequences. Each sequence is a horizontal track; matches are drawn
as ribbons between neighbouring tracks, colored by whether the strand is
preserved or inverted.`,
		Version:       buildinfo.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default: $XDG_CONFIG_HOME/mumplot/config.toml)")

	root.AddCommand(
		c.plotCommand(),
		c.statsCommand(),
		c.cacheCommand(),
		c.completionCommand(),
	)
	return root
}

// newRunner returns a pipeline runner over the on-disk cache, or over
// [cache.Nop] when caching is off or no cache directory can be resolved.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store := cache.Nop
	if !noCache {
		if dir, err := cacheDir(); err != nil {
			c.Logger.Warn("caching disabled", "err", err)
		} else {
			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return nil, err
			}
			store = fc
		}
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

// loadConfig reads the --config file, which must exist, or else the default
// file if there is one.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.configFile != "" {
		return config.Load(c.configFile)
	}
	path, err := configPath()
	if err != nil {
		c.Logger.Debug("no config directory", "err", err)
		return &config.Config{}, nil
	}
	cfg, err := config.LoadOptional(path)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("config", "path", path)
	return cfg, nil
}

// cacheDir is $XDG_CACHE_HOME/mumplot, falling back to ~/.cache/mumplot.
func cacheDir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, appName), nil
}

func configPath() (string, error) {
	return config.DefaultPath(appName)
}
