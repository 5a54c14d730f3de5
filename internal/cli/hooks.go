package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mumplot/pkg/observability"
)

// logHooks turns pipeline events into debug log lines.
type logHooks struct {
	logger *log.Logger
}

var _ observability.Hooks = logHooks{}

// RegisterHooks routes pipeline events to the CLI logger. Call it after the
// log level is final; the prefixed logger copies the level.
func (c *CLI) RegisterHooks() {
	observability.Set(logHooks{logger: c.Logger.WithPrefix("hook")})
}

func (h logHooks) StageStarted(_ context.Context, stage observability.Stage, attrs ...any) {
	h.logger.Debug(string(stage)+" start", attrs...)
}

func (h logHooks) StageFinished(_ context.Context, stage observability.Stage, elapsed time.Duration, err error, attrs ...any) {
	attrs = append(attrs, "duration", elapsed)
	if err != nil {
		h.logger.Debug(string(stage)+" failed", append(attrs, "err", err)...)
		return
	}
	h.logger.Debug(string(stage)+" done", attrs...)
}

func (h logHooks) CacheLookup(_ context.Context, keyType string, hit bool) {
	if hit {
		h.logger.Debug("cache hit", "type", keyType)
	} else {
		h.logger.Debug("cache miss", "type", keyType)
	}
}

func (h logHooks) CacheStored(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
