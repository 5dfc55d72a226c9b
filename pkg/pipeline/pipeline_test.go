package pipeline

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/echart/pkg/cache"
	"github.com/matzehuels/echart/pkg/errors"
	chartio "github.com/matzehuels/echart/pkg/io"
	"github.com/matzehuels/echart/pkg/observability"
)

func quietRunner(c cache.Cache) *Runner {
	return NewRunner(c, nil, log.NewWithOptions(io.Discard, log.Options{}))
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want INVALID_FORMAT", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("zero options should be valid: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultScale)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discarding logger")
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"kind", Options{Kind: "pie"}, errors.ErrCodeInvalidKind},
		{"format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"scale", Options{Scale: -1}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	f := chartio.Example()
	f.Stacked = true

	opts := Options{Kind: "column", SharedScale: true}
	merged := opts.Merge(f)

	if merged.Kind != "column" || !merged.Area || !merged.Stacked || !merged.SharedScale {
		t.Errorf("merged = kind %s area %v stacked %v shared %v", merged.Kind, merged.Area, merged.Stacked, merged.SharedScale)
	}
	if f.Kind != "line" || f.SharedScale {
		t.Error("Merge must not modify the input file")
	}
}

func TestHashFile(t *testing.T) {
	a, err := HashFile(chartio.Example())
	if err != nil {
		t.Fatal(err)
	}
	b, _ := HashFile(chartio.Example())
	if a != b {
		t.Error("HashFile should be deterministic")
	}

	f := chartio.Example()
	f.Series[0].Values[0]++
	if c, _ := HashFile(f); c == a {
		t.Error("different data should hash differently")
	}
}

func TestExecuteCaching(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := quietRunner(c)
	defer r.Close()

	opts := Options{Formats: []string{FormatSVG, FormatJSON}}

	first, err := r.Execute(ctx, chartio.Example(), opts)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}
	if !bytes.HasPrefix(first.Artifacts[FormatSVG], []byte("<svg")) {
		t.Error("svg artifact missing")
	}
	if first.Stats.SeriesCount != 2 || first.Stats.LayerCount == 0 {
		t.Errorf("stats = %+v", first.Stats)
	}

	second, err := r.Execute(ctx, chartio.Example(), opts)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit the cache: %+v", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs from the rendered one")
	}
	if first.LayoutHash != second.LayoutHash || first.ChartHash != second.ChartHash {
		t.Error("hashes should be stable across cache hits")
	}
	if len(second.Layout.Layers) != len(first.Layout.Layers) {
		t.Error("cached layout lost layers")
	}

	third, err := r.Execute(ctx, chartio.Example(), Options{Formats: []string{FormatSVG}, Stacked: true})
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.LayoutHit {
		t.Error("different layout options must not share a cache entry")
	}

	refreshed, err := r.Execute(ctx, chartio.Example(), Options{Formats: []string{FormatSVG, FormatJSON}, Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.CacheInfo.LayoutHit || refreshed.CacheInfo.RenderHit {
		t.Error("Refresh should bypass cache reads")
	}
}

func TestExecutePartialArtifactHit(t *testing.T) {
	ctx := context.Background()
	c, _ := cache.NewFileCache(t.TempDir())
	r := quietRunner(c)

	if _, err := r.Execute(ctx, chartio.Example(), Options{Formats: []string{FormatSVG}}); err != nil {
		t.Fatal(err)
	}
	res, err := r.Execute(ctx, chartio.Example(), Options{Formats: []string{FormatSVG, FormatPNG}})
	if err != nil {
		t.Fatal(err)
	}
	if !res.CacheInfo.LayoutHit {
		t.Error("layout should be cached")
	}
	if res.CacheInfo.RenderHit {
		t.Error("RenderHit requires every format to be cached")
	}
	if len(res.Artifacts[FormatPNG]) == 0 || len(res.Artifacts[FormatSVG]) == 0 {
		t.Error("both artifacts should be present")
	}
}

func TestExecuteErrors(t *testing.T) {
	ctx := context.Background()
	r := quietRunner(nil)

	f := chartio.Example()
	f.Abscissa.Values = nil
	if _, err := r.Execute(ctx, f, Options{}); !errors.Is(err, errors.ErrCodeMissingAbscissa) {
		t.Errorf("err = %v, want MISSING_ABSCISSA", err)
	}

	f = chartio.Example()
	f.Series = nil
	if _, err := r.Execute(ctx, f, Options{}); !errors.Is(err, errors.ErrCodeInsufficientSeries) {
		t.Errorf("err = %v, want INSUFFICIENT_SERIES", err)
	}

	if _, err := r.Execute(ctx, chartio.Example(), Options{Formats: []string{"gif"}}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
}

func TestExecuteFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "sales.toml")
	if err := chartio.ExportFile(chartio.Example(), path); err != nil {
		t.Fatal(err)
	}

	r := quietRunner(nil)
	res, err := r.ExecuteFile(ctx, path, Options{Formats: []string{FormatPNG}, Scale: 2})
	if err != nil {
		t.Fatalf("ExecuteFile error: %v", err)
	}
	if len(res.Artifacts[FormatPNG]) == 0 {
		t.Error("png artifact missing")
	}

	_, err = r.ExecuteFile(ctx, filepath.Join(dir, "missing.toml"), Options{})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

type countingCacheHooks struct {
	mu                sync.Mutex
	hits, misses, set map[string]int
}

func newCountingCacheHooks() *countingCacheHooks {
	return &countingCacheHooks{hits: map[string]int{}, misses: map[string]int{}, set: map[string]int{}}
}

func (h *countingCacheHooks) OnCacheHit(_ context.Context, k string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits[k]++
}

func (h *countingCacheHooks) OnCacheMiss(_ context.Context, k string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.misses[k]++
}

func (h *countingCacheHooks) OnCacheSet(_ context.Context, k string, _ int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.set[k]++
}

type recordingPipelineHooks struct {
	observability.NoopPipelineHooks
	layouts int
	renders []string
}

func (h *recordingPipelineHooks) OnLayoutComplete(_ context.Context, _ string, _ int, _ time.Duration, err error) {
	if err == nil {
		h.layouts++
	}
}

func (h *recordingPipelineHooks) OnRenderStart(_ context.Context, formats []string) {
	h.renders = append(h.renders, formats...)
}

func TestRunnerHooks(t *testing.T) {
	defer observability.Reset()
	ch := newCountingCacheHooks()
	ph := &recordingPipelineHooks{}
	observability.SetCacheHooks(ch)
	observability.SetPipelineHooks(ph)

	ctx := context.Background()
	c, _ := cache.NewFileCache(t.TempDir())
	r := quietRunner(c)
	opts := Options{Formats: []string{FormatJSON}}

	for i := 0; i < 2; i++ {
		if _, err := r.Execute(ctx, chartio.Example(), opts); err != nil {
			t.Fatal(err)
		}
	}

	if ch.misses[keyTypeLayout] != 1 || ch.hits[keyTypeLayout] != 1 || ch.set[keyTypeLayout] != 1 {
		t.Errorf("layout hooks: hits %d misses %d sets %d", ch.hits[keyTypeLayout], ch.misses[keyTypeLayout], ch.set[keyTypeLayout])
	}
	if ch.misses[keyTypeArtifact] != 1 || ch.hits[keyTypeArtifact] != 1 {
		t.Errorf("artifact hooks: hits %d misses %d", ch.hits[keyTypeArtifact], ch.misses[keyTypeArtifact])
	}
	if ph.layouts != 1 {
		t.Errorf("layouts computed = %d, want 1", ph.layouts)
	}
	if len(ph.renders) != 1 || ph.renders[0] != FormatJSON {
		t.Errorf("renders = %v, want [json]", ph.renders)
	}
}
