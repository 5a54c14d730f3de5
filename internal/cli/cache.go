package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mumplot/pkg/cache"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached ribbons and plots",
		Long:  "Plots and their ribbon geometry are cached under $XDG_CACHE_HOME/mumplot, keyed by input contents and options.",
	}
	cmd.AddCommand(c.cacheClearCommand(), c.cachePathCommand())
	return cmd
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	var expiredOnly bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove cached geometry and plots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			n, err := clearCache(dir, expiredOnly)
			if err != nil {
				return err
			}

			out := newPrinter(cmd)
			switch {
			case n == 0 && expiredOnly:
				out.info("No expired entries")
			case n == 0:
				out.info("Cache is empty")
			default:
				out.success("Removed %d cached entries", n)
				out.detail("Directory: %s", dir)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&expiredOnly, "expired", false, "only remove entries past their lifetime")
	return cmd
}

// clearCache empties the cache at dir, or only its expired entries. A missing
// directory counts as empty.
func clearCache(dir string, expiredOnly bool) (int, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return 0, nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return 0, err
	}
	defer fc.Close()
	if expiredOnly {
		return fc.Prune(time.Now())
	}
	return fc.Clear()
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
