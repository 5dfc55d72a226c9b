package layout

import (
	"strings"

	"github.com/matzehuels/echart/pkg/chart"
	"github.com/matzehuels/echart/pkg/dataset"
	"github.com/matzehuels/echart/pkg/errors"
	"github.com/matzehuels/echart/pkg/fonts"
)

// Kind selects the chart variant.
type Kind string

const (
	KindColumn Kind = "column"
	KindLine   Kind = "line"
)

// Kinds lists the supported chart kinds.
var Kinds = []Kind{KindColumn, KindLine}

// ParseKind validates a kind name. The empty string selects KindLine.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case "", KindLine:
		return KindLine, nil
	case KindColumn, "bar":
		return KindColumn, nil
	}
	return "", errors.New(errors.ErrCodeInvalidKind, "unknown chart kind %q (want column or line)", s)
}

// Layout is the output of Build: the canvas size, the final plot area and
// the ordered layers to draw.
type Layout struct {
	Kind    Kind
	Width   float64
	Height  float64
	Plot    Box
	Stacked bool
	Area    bool
	Layers  []Layer
}

// Filter returns the layers with the given role, in order.
func (l Layout) Filter(role Role) []Layer {
	var out []Layer
	for _, ly := range l.Layers {
		if ly.Role == role {
			out = append(out, ly)
		}
	}
	return out
}

// Index returns the position of the first layer holding p, or -1.
func (l Layout) Index(p Primitive) int {
	for i, ly := range l.Layers {
		if ly.Primitive == p {
			return i
		}
	}
	return -1
}

// Collect returns every primitive of type T in layer order.
func Collect[T Primitive](l Layout) []T {
	var out []T
	for _, ly := range l.Layers {
		if p, ok := ly.Primitive.(T); ok {
			out = append(out, p)
		}
	}
	return out
}

// Constants shared by the chart kinds.
const (
	// AreaAlpha is the alpha applied to area fills in line charts.
	AreaAlpha = 220
	// TitleBandRatio scales the canvas diagonal into the band reserved for
	// the title and axis labels in column charts.
	TitleBandRatio = 0.08
	// BarGroupRatio is the share of a category slot covered by its bars.
	BarGroupRatio = 0.8
)

// SubGridDash is the stroke pattern of sub-grid lines.
var SubGridDash = Dash{On: 10, Off: 8}

// Option configures Build.
type Option func(*config)

type config struct {
	area      bool
	stacked   bool
	shared    bool
	measurer  fonts.Measurer
	font      *fonts.Font
	titleBand float64
	grid      GridOptions
}

// WithArea fills the region below each line series.
func WithArea() Option { return func(c *config) { c.area = true } }

// WithStacked draws cumulative sums of the series (see dataset.Stack).
func WithStacked() Option { return func(c *config) { c.stacked = true } }

// WithSharedScale maps every series against the dataset-wide min/max instead
// of its own.
func WithSharedScale() Option { return func(c *config) { c.shared = true } }

// WithMeasurer sets the text measurer. Defaults to fonts.Shared().
func WithMeasurer(m fonts.Measurer) Option { return func(c *config) { c.measurer = m } }

// WithFont overrides the chart's label font.
func WithFont(f fonts.Font) Option { return func(c *config) { c.font = &f } }

// WithTitleBand fixes the height reserved for the title in column charts.
func WithTitleBand(h float64) Option { return func(c *config) { c.titleBand = h } }

// WithGridOptions sets the frame options of column charts.
func WithGridOptions(g GridOptions) Option { return func(c *config) { c.grid = g } }

// DefaultGridOptions is the column chart frame: labels on both axes, inset
// category labels, outlined plot.
var DefaultGridOptions = GridOptions{XLabels: true, YLabels: true, Inset: true, Outline: true}

// plotter maps a dataset into geometry on a prepared frame.
type plotter interface {
	plot(f *Frame, d *dataset.Dataset) error
}

var plotters = map[Kind]plotter{
	KindColumn: columnPlotter{},
	KindLine:   linePlotter{},
}

// Build computes the layout of c as the given kind. It is a pure function of
// its arguments: c and its dataset are only read.
func Build(c *chart.Chart, kind Kind, opts ...Option) (Layout, error) {
	cfg := config{grid: DefaultGridOptions}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.measurer == nil {
		cfg.measurer = fonts.Shared()
	}

	if c == nil {
		return Layout{}, errors.New(errors.ErrCodeInvalidInput, "chart is nil")
	}
	d := c.Dataset()
	if d == nil {
		return Layout{}, errors.New(errors.ErrCodeMissingDataset, "chart has no dataset")
	}
	if kind == "" {
		kind = KindLine
	}
	p, ok := plotters[kind]
	if !ok {
		return Layout{}, errors.New(errors.ErrCodeInvalidKind, "unknown chart kind %q", kind)
	}
	f := newFrame(c, cfg)
	if err := p.plot(f, d); err != nil {
		return Layout{}, err
	}

	return Layout{
		Kind:    kind,
		Width:   f.width,
		Height:  f.height,
		Plot:    f.Area,
		Stacked: cfg.stacked && kind == KindLine,
		Area:    cfg.area && kind == KindLine,
		Layers:  f.layers,
	}, nil
}
