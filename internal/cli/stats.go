package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mumplot/pkg/collinear"
	"github.com/matzehuels/mumplot/pkg/mums"
	"github.com/matzehuels/mumplot/pkg/pipeline"
)

// statsCommand creates the stats command, which summarizes the inputs of a
// plot without drawing it.
func (c *CLI) statsCommand() *cobra.Command {
	var opts pipeline.Options
	var maxGap int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize matches per track",
		Long: `Summarize matches per track.

Prints one row per track with its length, the number of matches present on
it, how many of those are on each strand, and the bases they cover. The
collinear block count uses the same gap tolerance as 'plot'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.MaxGap = maxGap
			opts.Logger = c.Logger
			return c.runStats(cmd, opts)
		},
	}

	addInputFlags(cmd, &opts)
	cmd.Flags().IntVarP(&maxGap, "max-gap-len", "g", pipeline.DefaultMaxGap, "largest gap in bp merged into a collinear block (-1: one pixel)")

	return cmd
}

func (c *CLI) runStats(cmd *cobra.Command, opts pipeline.Options) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	// Filters and resolution come from the config file unless given as
	// flags; resolution feeds the automatic gap.
	base := pipeline.Options{}
	cfg.Apply(&base)
	opts.DPI, opts.Width = base.DPI, base.Width
	if !cmd.Flags().Changed("len-filter") {
		opts.MinLength = base.MinLength
	}
	if !cmd.Flags().Changed("subsample") && base.Subsample != 0 {
		opts.Subsample = base.Subsample
	}
	if !cmd.Flags().Changed("max-gap-len") && cfg.Blocks.MaxGap != nil {
		opts.MaxGap = *cfg.Blocks.MaxGap
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	in, err := pipeline.Load(cmd.Context(), opts)
	if err != nil {
		return err
	}

	copts := opts.CollinearOptions(mums.MaxLength(in.Lengths))
	blocks := collinear.Find(in.Matches, copts)
	full := collinear.Full(in.Matches)

	out := newPrinter(cmd)
	out.title(opts.MumFile)
	out.println(statsTable(in.Summarize()))
	out.field("matches", strconv.Itoa(len(in.Matches)))
	out.field("full", strconv.Itoa(len(full)))
	out.field("blocks", fmt.Sprintf("%d (max gap %d bp)", len(blocks), copts.Gap()))
	out.println("")
	out.hint("Plot it", "mumplot plot -m "+opts.MumFile)
	return nil
}

// statsTable renders per-track statistics as a table.
func statsTable(stats []pipeline.TrackStats) string {
	rows := make([][]string, len(stats))
	for i, s := range stats {
		rows[i] = []string{
			strconv.Itoa(i),
			s.Name,
			strconv.Itoa(s.Length),
			strconv.Itoa(s.Present),
			strconv.Itoa(s.Forward),
			strconv.Itoa(s.Reverse),
			strconv.Itoa(s.Covered),
			fmt.Sprintf("%.1f%%", 100*s.Coverage),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Track", "Length", "Matches", "Fwd", "Rev", "Covered", "Coverage").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			if col == 1 {
				return cell.Foreground(colorCyan)
			}
			return cell.Align(lipgloss.Right)
		})
	return t.Render()
}
