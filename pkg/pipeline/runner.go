package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/mumplot/pkg/cache"
	"github.com/matzehuels/mumplot/pkg/errors"
	"github.com/matzehuels/mumplot/pkg/geometry"
	"github.com/matzehuels/mumplot/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// A nil cache disables caching.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.Nop
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → geometry → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	id := uuid.NewString()
	logger := r.Logger.With("run", id[:8])
	if opts.Logger == nil {
		opts.Logger = logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{ID: id}

	// Stage 1+2: Load and build geometry
	start := time.Now()
	geom, hit, err := r.GeometryWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Geometry = geom
	result.Stats.LoadTime = time.Since(start)
	result.Stats.Matches = geom.Matches
	result.Stats.Tracks = len(geom.Lengths)
	result.Stats.Blocks = geom.Blocks
	result.Stats.Ribbons = len(geom.Ribbons)
	_, result.Stats.Inverted = geometry.Count(geom.Ribbons)
	result.CacheInfo.GeometryHit = hit

	logger.Info("built geometry",
		"matches", geom.Matches,
		"blocks", geom.Blocks,
		"ribbons", len(geom.Ribbons),
		"cached", hit,
		"duration", result.Stats.LoadTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, geom, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GeometryWithCacheInfo loads inputs and builds ribbons, using the cache
// keyed by the input file contents. It reports whether the cache was hit.
func (r *Runner) GeometryWithCacheInfo(ctx context.Context, opts Options) (*Geometry, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	inputHash, err := cache.HashFiles(opts.MumFile, opts.LengthsFile, opts.FileList)
	if err != nil {
		return nil, false, fmt.Errorf("load: %w", asNotFound(err))
	}
	cacheKey := r.Keyer.GeometryKey(inputHash, opts.GeometryKeyOpts())

	if !opts.Refresh {
		if g, ok := r.cachedGeometry(ctx, cacheKey); ok {
			return g, true, nil
		}
	}

	finish := observability.Start(ctx, observability.StageLoad, "file", opts.MumFile)
	loadStart := time.Now()
	in, err := Load(ctx, opts)
	finish(err, "matches", matchCount(in))
	if err != nil {
		return nil, false, fmt.Errorf("load: %w", err)
	}
	opts.Logger.Debug("loaded inputs",
		"tracks", len(in.Lengths),
		"matches", len(in.Matches),
		"duration", time.Since(loadStart))

	finish = observability.Start(ctx, observability.StageGeometry,
		"matches", len(in.Matches), "blocks", !opts.NoCollinearBlocks)
	g, err := BuildGeometry(in, opts)
	ribbons := 0
	if g != nil {
		ribbons = len(g.Ribbons)
	}
	finish(err, "ribbons", ribbons)
	if err != nil {
		return nil, false, fmt.Errorf("geometry: %w", errors.Wrap(errors.ErrCodeInvalidMatch, err, "build ribbons"))
	}

	if data, err := json.Marshal(g); err == nil {
		r.store(ctx, cache.KeyTypeGeometry, cacheKey, data, cache.TTLGeometry)
	}
	return g, false, nil
}

func (r *Runner) cachedGeometry(ctx context.Context, key string) (*Geometry, bool) {
	var g Geometry
	data, hit, err := r.Cache.Get(ctx, key)
	ok := err == nil && hit && json.Unmarshal(data, &g) == nil
	observability.Get().CacheLookup(ctx, cache.KeyTypeGeometry, ok)
	if !ok {
		return nil, false
	}
	return &g, true
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *Geometry, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	geomData, err := json.Marshal(g)
	if err != nil {
		return nil, false, fmt.Errorf("serialize geometry for cache key: %w", err)
	}
	geomHash := cache.Hash(geomData)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(geomHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			hit = hit && err == nil
			observability.Get().CacheLookup(ctx, cache.KeyTypeArtifact, hit)
			if !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil // All artifacts from cache
		}
	}

	finish := observability.Start(ctx, observability.StageRender, "formats", opts.Formats)
	rendered, err := Render(g, opts)
	finish(err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(geomHash, opts.ArtifactKeyOpts(format))
		r.store(ctx, cache.KeyTypeArtifact, cacheKey, data, cache.TTLArtifact)
	}

	return rendered, false, nil
}

func (r *Runner) store(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Get().CacheStored(ctx, keyType, len(data))
}

// Write saves each artifact of result to its output path and returns the
// paths written, in format order.
func (r *Runner) Write(result *Result, opts Options) ([]string, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	var paths []string
	for _, format := range opts.Formats {
		data, ok := result.Artifacts[format]
		if !ok {
			continue
		}
		path := opts.OutputPath(format)
		if err := errors.ValidateOutputPath(path); err != nil {
			return paths, errors.Wrap(errors.ErrCodeWriteFailed, err, "write %s", path)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, errors.Wrap(errors.ErrCodeWriteFailed, err, "write %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func matchCount(in *Input) int {
	if in == nil {
		return 0
	}
	return len(in.Matches)
}

// asNotFound maps a missing input file onto FILE_NOT_FOUND.
func asNotFound(err error) error {
	if os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "input file")
	}
	return err
}
