package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// spinner animates a status line while a pipeline stage runs. It stops when
// stopped explicitly or when its parent context ends, and draws nothing
// unless its output is a terminal.
type spinner struct {
	out     io.Writer
	live    bool
	message string

	parent   context.Context
	ctx      context.Context
	cancel   context.CancelFunc
	once     sync.Once
	finished chan struct{}
	mu       sync.Mutex
}

func newSpinner(ctx context.Context, message string) *spinner {
	inner, cancel := context.WithCancel(ctx)
	return &spinner{
		out:      os.Stderr,
		live:     isTerminal(os.Stderr),
		message:  message,
		parent:   ctx,
		ctx:      inner,
		cancel:   cancel,
		finished: make(chan struct{}),
	}
}

// start begins the animation. Call stop exactly once start has been called.
func (s *spinner) start() {
	if !s.live {
		close(s.finished)
		return
	}
	go s.run()
}

func (s *spinner) run() {
	defer close(s.finished)
	tick := time.NewTicker(spinnerInterval)
	defer tick.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.ctx.Done():
			s.clear()
			return
		case <-tick.C:
			s.mu.Lock()
			fmt.Fprintf(s.out, "\r%s %s", styleSpinner.Render(spinnerFrames[i%len(spinnerFrames)]), styleDim.Render(s.message))
			s.mu.Unlock()
		}
	}
}

// stop ends the animation and clears the line. Repeated calls are no-ops.
func (s *spinner) stop() {
	s.once.Do(func() {
		s.cancel()
		<-s.finished
	})
}

// interrupted reports whether the parent context ended, as opposed to an
// explicit stop.
func (s *spinner) interrupted() bool {
	return s.parent.Err() != nil
}

func (s *spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
