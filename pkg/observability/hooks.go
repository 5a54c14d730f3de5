// Package observability lets the CLI watch the plotting pipeline without the
// pipeline importing a logging or metrics backend.
//
// The pipeline reports two kinds of events: a stage (load, geometry, render)
// starting and finishing, and cache lookups and writes. Main registers one
// [Hooks] implementation at startup; until then events go to [Nop].
//
//	observability.Set(myHooks)
//
//	finish := observability.Start(ctx, observability.StageLoad, "file", path)
//	in, err := load(path)
//	finish(err, "matches", len(in.Matches))
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// Stage names one step of the pipeline.
type Stage string

const (
	StageLoad     Stage = "load"
	StageGeometry Stage = "geometry"
	StageRender   Stage = "render"
)

// Hooks receives pipeline events. Attributes are alternating key/value pairs
// in the style of charmbracelet/log.
type Hooks interface {
	StageStarted(ctx context.Context, stage Stage, attrs ...any)
	StageFinished(ctx context.Context, stage Stage, elapsed time.Duration, err error, attrs ...any)

	// CacheLookup reports a read of the geometry or artifact cache.
	CacheLookup(ctx context.Context, keyType string, hit bool)
	CacheStored(ctx context.Context, keyType string, size int)
}

// Nop ignores every event.
type Nop struct{}

func (Nop) StageStarted(context.Context, Stage, ...any)                        {}
func (Nop) StageFinished(context.Context, Stage, time.Duration, error, ...any) {}
func (Nop) CacheLookup(context.Context, string, bool)                          {}
func (Nop) CacheStored(context.Context, string, int)                           {}

type registered struct{ h Hooks }

var current atomic.Pointer[registered]

// Set registers h for all later events. A nil h restores [Nop].
func Set(h Hooks) {
	if h == nil {
		h = Nop{}
	}
	current.Store(&registered{h})
}

// Get returns the registered hooks.
func Get() Hooks {
	if r := current.Load(); r != nil {
		return r.h
	}
	return Nop{}
}

// Reset restores [Nop].
func Reset() { Set(nil) }

// Start reports stage as started and returns the function that reports it
// finished, timed from this call.
func Start(ctx context.Context, stage Stage, attrs ...any) func(err error, attrs ...any) {
	h := Get()
	h.StageStarted(ctx, stage, attrs...)
	began := time.Now()
	return func(err error, more ...any) {
		h.StageFinished(ctx, stage, time.Since(began), err, more...)
	}
}
