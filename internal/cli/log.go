// Package cli implements the mumplot command-line interface.
//
// The CLI is built using cobra and logs through charmbracelet/log. Every
// command shares one logger carried on the CLI struct and passed to the
// pipeline through its options.
//
// # Commands
//
// The main commands are:
//   - plot: Draw a synteny plot as PNG, SVG, or JSON
//   - stats: Print per-track match statistics
//   - cache: Manage the geometry and artifact cache
//   - completion: Generate shell completion scripts
//
// # Configuration
//
// Defaults for plot styling and filtering can live in a TOML file
// ($XDG_CONFIG_HOME/mumplot/config.toml, or --config). Flags given on the
// command line always override it.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// shows pipeline and cache events.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger that stamps each line with the wall-clock time
// to hundredths of a second.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// stopwatch times one command and logs the result when it finishes.
type stopwatch struct {
	logger  *log.Logger
	started time.Time
}

func startStopwatch(l *log.Logger) stopwatch {
	return stopwatch{logger: l, started: time.Now()}
}

func (s stopwatch) elapsed() time.Duration {
	return time.Since(s.started).Round(time.Millisecond)
}

// done logs msg at info level with the elapsed time appended to keyvals.
func (s stopwatch) done(msg string, keyvals ...any) {
	s.logger.Info(msg, append(keyvals, "elapsed", s.elapsed())...)
}
