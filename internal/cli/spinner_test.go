package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

// liveSpinner returns a spinner that draws into buf regardless of terminal.
func liveSpinner(ctx context.Context, buf *bytes.Buffer, msg string) *spinner {
	s := newSpinner(ctx, msg)
	s.out = buf
	s.live = true
	return s
}

func TestSpinnerDraws(t *testing.T) {
	var buf bytes.Buffer
	s := liveSpinner(context.Background(), &buf, "Plotting pair.mums...")
	s.start()
	time.Sleep(3 * spinnerInterval)
	s.stop()

	out := buf.String()
	if !strings.Contains(out, "Plotting pair.mums...") {
		t.Errorf("spinner output missing message: %q", out)
	}
	if !strings.HasSuffix(out, "\r") {
		t.Error("spinner should clear its line on stop")
	}
	if s.interrupted() {
		t.Error("explicit stop is not an interruption")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	s := liveSpinner(context.Background(), &buf, "x")
	s.start()
	s.stop()
	s.stop()
}

func TestSpinnerParentCancel(t *testing.T) {
	tests := []struct {
		name string
		ctx  func() (context.Context, context.CancelFunc)
	}{
		{"cancel", func() (context.Context, context.CancelFunc) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			return ctx, cancel
		}},
		{"timeout", func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), 10*time.Millisecond)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.ctx()
			defer cancel()

			var buf bytes.Buffer
			s := liveSpinner(ctx, &buf, "waiting")
			s.start()
			select {
			case <-s.finished:
			case <-time.After(time.Second):
				t.Fatal("spinner did not stop with its parent context")
			}
			if !s.interrupted() {
				t.Error("interrupted() should report the parent's cancellation")
			}
			s.stop()
		})
	}
}

func TestSpinnerSilentOffTerminal(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), "quiet")
	s.out = &buf
	s.live = false
	s.start()
	s.stop()
	if buf.Len() != 0 {
		t.Errorf("non-terminal spinner wrote %q", buf.String())
	}
}
