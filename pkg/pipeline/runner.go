package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/echart/pkg/cache"
	chartio "github.com/matzehuels/echart/pkg/io"
	"github.com/matzehuels/echart/pkg/observability"
	"github.com/matzehuels/echart/pkg/render/layout"
)

// Cache key types reported to observability hooks.
const (
	keyTypeLayout   = "layout"
	keyTypeArtifact = "artifact"
)

// Runner executes the pipeline with caching. It holds no per-run state, so
// one Runner may serve concurrent requests with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer uses
// the DefaultKeyer.
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

// Load reads a chart file from disk.
func (r *Runner) Load(ctx context.Context, path string) (*chartio.File, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()

	f, err := chartio.ImportFile(path)
	series := 0
	if f != nil {
		series = len(f.Series)
	}
	hooks.OnLoadComplete(ctx, path, series, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("loaded chart file", "path", path, "series", series)
	return f, nil
}

// ExecuteFile loads the chart file at path and runs the pipeline on it.
func (r *Runner) ExecuteFile(ctx context.Context, path string, opts Options) (*Result, error) {
	start := time.Now()
	f, err := r.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	loadTime := time.Since(start)

	result, err := r.Execute(ctx, f, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = loadTime
	return result, nil
}

// Execute runs layout and render for a loaded chart file.
func (r *Runner) Execute(ctx context.Context, f *chartio.File, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{File: opts.Merge(f)}
	result.Stats.SeriesCount = len(f.Series)

	layoutStart := time.Now()
	l, hash, hit, err := r.layout(ctx, result.File, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.ChartHash = hash
	result.CacheInfo.LayoutHit = hit
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.LayerCount = len(l.Layers)

	r.Logger.Info("computed layout",
		"kind", l.Kind,
		"layers", len(l.Layers),
		"cached", hit,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, layoutHash, hit, err := r.render(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.LayoutHash = layoutHash
	result.CacheInfo.RenderHit = hit
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo computes the layout of f with the options merged in,
// reporting whether it came from the cache.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, f *chartio.File, opts Options) (layout.Layout, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return layout.Layout{}, false, err
	}
	l, _, hit, err := r.layout(ctx, opts.Merge(f), opts)
	return l, hit, err
}

// Layout is LayoutWithCacheInfo without the cache info.
func (r *Runner) Layout(ctx context.Context, f *chartio.File, opts Options) (layout.Layout, error) {
	l, _, err := r.LayoutWithCacheInfo(ctx, f, opts)
	return l, err
}

func (r *Runner) layout(ctx context.Context, f *chartio.File, opts Options) (layout.Layout, string, bool, error) {
	hash, err := HashFile(f)
	if err != nil {
		return layout.Layout{}, "", false, err
	}
	key := r.Keyer.LayoutKey(hash, LayoutKeyOpts(f))

	if !opts.Refresh {
		if data, ok := r.get(ctx, keyTypeLayout, key); ok {
			if l, err := UnmarshalLayout(data); err == nil {
				return l, hash, true, nil
			}
			opts.Logger.Warn("discarding unreadable cached layout", "key", key)
		}
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, f.Kind, len(f.Series))
	start := time.Now()
	l, err := GenerateLayout(f)
	hooks.OnLayoutComplete(ctx, string(l.Kind), len(l.Layers), time.Since(start), err)
	if err != nil {
		return layout.Layout{}, "", false, err
	}

	if data, err := MarshalLayout(l); err == nil {
		r.set(ctx, keyTypeLayout, key, data, cache.TTLLayout)
	}
	return l, hash, false, nil
}

// RenderWithCacheInfo renders l in every requested format, reporting whether
// all artifacts came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	artifacts, _, hit, err := r.render(ctx, l, opts)
	return artifacts, hit, err
}

// Render is RenderWithCacheInfo without the cache info.
func (r *Runner) Render(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

func (r *Runner) render(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, string, bool, error) {
	data, err := MarshalLayout(l)
	if err != nil {
		return nil, "", false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(data)

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if !opts.Refresh {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			if data, ok := r.get(ctx, keyTypeArtifact, key); ok {
				artifacts[format] = data
				continue
			}
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, layoutHash, true, nil
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, missing)
	start := time.Now()
	for _, format := range missing {
		data, err := RenderFormat(l, format, opts)
		if err != nil {
			hooks.OnRenderComplete(ctx, missing, time.Since(start), err)
			return nil, "", false, err
		}
		artifacts[format] = data
		r.set(ctx, keyTypeArtifact, r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format)), data, cache.TTLArtifact)
	}
	hooks.OnRenderComplete(ctx, missing, time.Since(start), nil)

	return artifacts, layoutHash, false, nil
}

// get reads key from the cache. Backend errors count as misses.
func (r *Runner) get(ctx context.Context, keyType, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "type", keyType, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

// set writes key to the cache. Failures are logged, never returned.
func (r *Runner) set(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
