package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mumplot/pkg/pipeline"
)

// Palette (ANSI 256).
var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorBlue  = lipgloss.Color("75")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleOK      = lipgloss.NewStyle().Foreground(colorGreen)
	styleFail    = lipgloss.NewStyle().Foreground(colorRed)
	styleNote    = lipgloss.NewStyle().Foreground(colorGray)
	styleSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
	separator   = " · "
)

// printer writes styled status lines to a command's output.
type printer struct {
	w io.Writer
}

func newPrinter(cmd *cobra.Command) printer {
	return printer{w: cmd.OutOrStdout()}
}

func (p printer) println(s string) {
	fmt.Fprintln(p.w, s)
}

func (p printer) success(format string, args ...any) {
	p.println(styleOK.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func (p printer) failure(format string, args ...any) {
	p.println(styleFail.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func (p printer) info(format string, args ...any) {
	p.println(styleNote.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// detail prints an indented, muted line.
func (p printer) detail(format string, args ...any) {
	p.println("  " + styleDim.Render(fmt.Sprintf(format, args...)))
}

// file prints one written output path.
func (p printer) file(path string) {
	p.println("  " + styleDim.Render(iconArrow) + " " + styleValue.Render(path))
}

func (p printer) field(key, value string) {
	p.println(styleKey.Render(key) + " " + styleValue.Render(value))
}

func (p printer) title(s string) {
	p.println(styleTitle.Render(s))
}

// hint suggests a follow-up command.
func (p printer) hint(description, command string) {
	p.println(styleDim.Render(description+":") + " " + styleCommand.Render(command))
}

// plotSummary prints the counts of a plot run on one line, ending with
// whether everything came from the cache.
func (p printer) plotSummary(st pipeline.Stats, cached bool) {
	parts := []string{
		fmt.Sprintf("%d tracks", st.Tracks),
		fmt.Sprintf("%d matches", st.Matches),
	}
	if st.Blocks > 0 {
		parts = append(parts, fmt.Sprintf("%d blocks", st.Blocks))
	}
	ribbons := fmt.Sprintf("%d ribbons", st.Ribbons)
	if st.Inverted > 0 {
		ribbons += fmt.Sprintf(" (%d inverted)", st.Inverted)
	}
	parts = append(parts, ribbons, (st.LoadTime + st.RenderTime).Round(time.Millisecond).String())

	status := styleNote.Render("fresh")
	if cached {
		status = styleOK.Render("cached")
	}
	for i := range parts {
		parts[i] = styleDim.Render(parts[i])
	}
	p.println("  " + strings.Join(append(parts, status), styleDim.Render(separator)))
}
