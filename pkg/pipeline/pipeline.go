// Package pipeline runs the load → layout → render chain shared by the CLI
// and the HTTP server.
//
// # Architecture
//
// The pipeline has three stages:
//
//  1. Load: read a chart file (TOML or JSON)
//  2. Layout: build the chart and compute its ordered layers
//  3. Render: draw the layers into the requested formats
//
// Layouts are cached by the content hash of the (option-merged) chart file;
// artifacts by the hash of the layout document and the output format. Both
// stages can be run on their own.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.ExecuteFile(ctx, "sales.toml", pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	    Area:    true,
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/echart/pkg/cache"
	"github.com/matzehuels/echart/pkg/errors"
	chartio "github.com/matzehuels/echart/pkg/io"
	"github.com/matzehuels/echart/pkg/render/layout"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// DefaultScale is the PNG scale factor when none is requested.
const DefaultScale = 1.0

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ContentTypes maps formats to their MIME type.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
}

// Options configures a pipeline run. Layout settings are merged with the
// chart file: a set Kind replaces the file's kind, and the boolean switches
// can only turn features on.
type Options struct {
	// Layout options
	Kind        string `json:"kind,omitempty"`
	Area        bool   `json:"area,omitempty"`
	Stacked     bool   `json:"stacked,omitempty"`
	SharedScale bool   `json:"shared_scale,omitempty"`

	// Render options
	Formats   []string `json:"formats,omitempty"`
	Scale     float64  `json:"scale,omitempty"`
	EmbedFont bool     `json:"embed_font,omitempty"`

	// Refresh bypasses cache reads. Fresh results are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result holds the outputs of a pipeline run.
type Result struct {
	// File is the chart file after merging the run options.
	File *chartio.File

	// ChartHash is the content hash of File.
	ChartHash string

	Layout     layout.Layout
	LayoutHash string

	// Artifacts holds rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats holds timing and size information of a run.
type Stats struct {
	SeriesCount int
	LayerCount  int
	LoadTime    time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo records which stages were served from the cache.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool // every requested artifact came from the cache
}

// ValidateFormat checks that a format is supported. Formats are
// case-sensitive.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks every format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Kind != "" {
		if _, err := layout.ParseKind(o.Kind); err != nil {
			return err
		}
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	o.validated = true
	return nil
}

// SetRenderDefaults fills in render defaults.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Merge returns a copy of f with the layout options applied.
func (o *Options) Merge(f *chartio.File) *chartio.File {
	merged := *f
	if o.Kind != "" {
		merged.Kind = o.Kind
	}
	merged.Area = merged.Area || o.Area
	merged.Stacked = merged.Stacked || o.Stacked
	merged.SharedScale = merged.SharedScale || o.SharedScale
	return &merged
}

// LayoutKeyOpts returns the cache key options for the layout of f.
func LayoutKeyOpts(f *chartio.File) cache.LayoutKeyOpts {
	kind, _ := layout.ParseKind(f.Kind)
	return cache.LayoutKeyOpts{
		Kind:        string(kind),
		Area:        f.Area,
		Stacked:     f.Stacked,
		SharedScale: f.SharedScale,
	}
}

// ArtifactKeyOpts returns the cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatPNG:
		k.Scale = o.Scale
	case FormatSVG:
		k.EmbedFont = o.EmbedFont
	}
	return k
}
