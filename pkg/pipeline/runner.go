package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/tiler/pkg/cache"
	"github.com/matzehuels/tiler/pkg/layoutfile"
	"github.com/matzehuels/tiler/pkg/observability"
	"github.com/matzehuels/tiler/pkg/orchestrator"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so caching behaves the same everywhere.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete build → resolve → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, def *layoutfile.Definition, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	defJSON, err := def.JSON()
	if err != nil {
		return nil, err
	}
	result := &Result{LayoutHash: cache.Hash(defJSON)}

	// Stage 1: Build
	buildStart := time.Now()
	o, err := r.Build(ctx, def, opts)
	if err != nil {
		return nil, err
	}
	result.Orchestrator = o
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.Templates = o.Len()
	result.Stats.Relations = len(o.Relations())
	result.Stats.Plaquettes = o.ExpectedPlaquettes()

	r.Logger.Debug("built orchestrator",
		"layout", def.Name,
		"templates", result.Stats.Templates,
		"relations", result.Stats.Relations,
		"duration", result.Stats.BuildTime)

	// Stage 2: Resolve
	resolveStart := time.Now()
	l, hit, err := r.ResolveWithCacheInfo(ctx, def.Name, result.LayoutHash, o, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = l
	result.Stats.InstantiateTime = time.Since(resolveStart)
	result.Stats.Shape = l.Shape()
	result.CacheInfo.LayoutHit = hit

	r.Logger.Info("resolved layout",
		"layout", def.Name,
		"shape", result.Stats.Shape,
		"cached", hit,
		"duration", result.Stats.InstantiateTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, def.Name, result.LayoutHash, o, l, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Build creates the orchestrator for def, applying opts.Scale when set.
func (r *Runner) Build(ctx context.Context, def *layoutfile.Definition, opts Options) (*orchestrator.Orchestrator, error) {
	hooks := observability.Pipeline()
	hooks.StageStarted(ctx, observability.StageBuild, def.Name)
	start := time.Now()

	o, err := def.Build()
	if err == nil && opts.Scale != nil {
		_, err = o.ScaleTo(*opts.Scale)
	}
	templates := 0
	if o != nil {
		templates = o.Len()
	}
	hooks.StageFinished(ctx, observability.StageEvent{
		Stage:    observability.StageBuild,
		Layout:   def.Name,
		Count:    templates,
		Duration: time.Since(start),
		Err:      err,
	})
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	return o, nil
}

// ResolveWithCacheInfo resolves o, reading and writing the layout cache, and
// reports whether the snapshot came from cache.
func (r *Runner) ResolveWithCacheInfo(ctx context.Context, name, layoutHash string, o *orchestrator.Orchestrator, opts Options) (*orchestrator.Layout, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	key := r.Keyer.LayoutKey(layoutHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if l, ok := r.cachedLayout(ctx, key); ok {
			return l, true, nil
		}
	}

	if shape, err := o.Shape(); err == nil {
		if err := CheckSize(shape); err != nil {
			return nil, false, err
		}
	}

	indices := opts.Indices
	if len(indices) == 0 {
		indices = orchestrator.DefaultIndices(o.ExpectedPlaquettes())
	}

	hooks := observability.Pipeline()
	hooks.StageStarted(ctx, observability.StageResolve, name)
	start := time.Now()
	l, err := o.Resolve(indices...)
	cells := 0
	if l != nil {
		cells = l.Shape().Area()
	}
	hooks.StageFinished(ctx, observability.StageEvent{
		Stage:    observability.StageResolve,
		Layout:   name,
		Count:    cells,
		Duration: time.Since(start),
		Err:      err,
	})
	if err != nil {
		return nil, false, fmt.Errorf("instantiate: %w", err)
	}

	if data, err := encodeSnapshot(l); err != nil {
		r.Logger.Warn("encode layout for cache", "error", err)
	} else {
		r.store(ctx, "layout", key, data, cache.LayoutTTL)
	}
	return l, false, nil
}

func (r *Runner) cachedLayout(ctx context.Context, key string) (*orchestrator.Layout, bool) {
	data, ok := r.lookup(ctx, "layout", key)
	if !ok {
		return nil, false
	}
	l, err := decodeSnapshot(data)
	if err != nil {
		r.Logger.Debug("discarding cached layout", "error", err)
		_ = r.Cache.Delete(ctx, key)
		return nil, false
	}
	return l, true
}

// RenderWithCacheInfo returns every format in opts.Formats and reports
// whether all of them came from cache. Missing formats are rendered
// concurrently.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, name, layoutHash string, o *orchestrator.Orchestrator, l *orchestrator.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	formats := slices.Compact(slices.Sorted(slices.Values(opts.Formats)))

	artifacts := make(map[string][]byte, len(formats))
	var missing []string
	for _, format := range formats {
		if !opts.Refresh {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			if data, ok := r.lookup(ctx, "artifact", key); ok {
				artifacts[format] = data
				continue
			}
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	hooks := observability.Pipeline()
	hooks.StageStarted(ctx, observability.StageRender, name)
	start := time.Now()

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(runtime.GOMAXPROCS(0), len(missing)))
	for _, format := range missing {
		g.Go(func() error {
			data, err := Render(gctx, format, name, o, l, opts)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()
	hooks.StageFinished(ctx, observability.StageEvent{
		Stage:    observability.StageRender,
		Layout:   name,
		Formats:  missing,
		Count:    len(missing),
		Duration: time.Since(start),
		Err:      err,
	})
	if err != nil {
		return nil, false, err
	}

	for _, format := range missing {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		r.store(ctx, "artifact", key, artifacts[format], cache.ArtifactTTL)
	}
	return artifacts, false, nil
}

// lookup reads key from the cache. Errors count as misses.
func (r *Runner) lookup(ctx context.Context, keyType, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "type", keyType, "error", err)
	}
	if err != nil || !hit {
		observability.Cache().CacheAccessed(ctx, observability.CacheEvent{Op: observability.CacheMiss, Kind: keyType})
		return nil, false
	}
	observability.Cache().CacheAccessed(ctx, observability.CacheEvent{Op: observability.CacheHit, Kind: keyType, Size: len(data)})
	return data, true
}

// store writes key to the cache. Errors are logged and dropped.
func (r *Runner) store(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "error", err)
		return
	}
	observability.Cache().CacheAccessed(ctx, observability.CacheEvent{Op: observability.CacheSet, Kind: keyType, Size: len(data)})
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
