package layout

import (
	"math"
	"slices"
	"strconv"

	"github.com/matzehuels/echart/pkg/chart"
	"github.com/matzehuels/echart/pkg/colors"
	"github.com/matzehuels/echart/pkg/fonts"
)

// GridOptions configures the axis frame of a column chart.
type GridOptions struct {
	XLabels bool `json:"x_labels" toml:"x_labels"` // category labels below the plot
	YLabels bool `json:"y_labels" toml:"y_labels"` // value ticks left of the plot
	Inset   bool `json:"inset" toml:"inset"`       // N labels over N+1 intervals instead of N-1
	Outline bool `json:"outline" toml:"outline"`   // full border instead of a bottom line
}

// AxisColor is the colour of axis lines, borders, titles and labels.
const AxisColor = colors.Black

// labelPad separates value ticks from the plot edge.
const labelPad = 4.0

// Frame is the layout state shared by every chart kind: the canvas, the
// content area still available for plotting, and the layers emitted so far.
// Kind-specific plotters reserve space on it and then add their own geometry.
type Frame struct {
	// Area is the content area. It starts as the full canvas and shrinks as
	// title and label bands are reserved.
	Area Box

	chart  *chart.Chart
	cfg    config
	font   fonts.Font
	width  float64
	height float64
	layers []Layer
}

func newFrame(c *chart.Chart, cfg config) *Frame {
	w, h := c.Size()
	font := c.Font()
	if cfg.font != nil {
		font = cfg.font.OrDefault()
	}
	return &Frame{
		Area:   Box{W: float64(w), H: float64(h)},
		chart:  c,
		cfg:    cfg,
		font:   font,
		width:  float64(w),
		height: float64(h),
	}
}

// Layers returns a copy of the layers emitted so far.
func (f *Frame) Layers() []Layer {
	return slices.Clone(f.layers)
}

func (f *Frame) add(op Op, role Role, p Primitive) {
	f.layers = append(f.layers, Layer{Op: op, Role: role, Primitive: p})
}

// text returns a measured text primitive with its top-left corner at x, y.
func (f *Frame) text(s string, x, y float64) *Text {
	w, h := f.cfg.measurer.Measure(s, f.font)
	return &Text{
		Text:     s,
		Font:     f.font,
		Color:    AxisColor,
		X:        x,
		Y:        y,
		W:        w,
		H:        h,
		Baseline: f.baseline(h),
	}
}

func (f *Frame) baseline(h float64) float64 {
	if a, ok := f.cfg.measurer.(interface{ Ascent(fonts.Font) float64 }); ok {
		return a.Ascent(f.font)
	}
	return h * 0.8
}

// Background fills the canvas. It must be the first layer.
func (f *Frame) Background() {
	f.add(OpReplace, RoleBackground, &Rect{
		Box:    Box{W: f.width, H: f.height},
		Color:  f.chart.Background(),
		Filled: true,
	})
}

// Title centres title horizontally at the top of the content area and
// shrinks the area by band. A non-positive band reserves the measured text
// height instead. Returns the reserved height.
func (f *Frame) Title(title string, band float64) float64 {
	t := f.text(title, 0, f.Area.Y)
	t.X = (f.width - t.W) / 2
	if band <= 0 {
		band = t.H
	} else {
		t.Y += (band - t.H) / 2
	}
	f.add(OpBlend, RoleTitle, t)
	f.Area.Y += band
	f.Area.H -= band
	return band
}

// LabelBand is the band height reserved for axis labels in column charts:
// TitleBandRatio of the canvas diagonal.
func (f *Frame) LabelBand() float64 {
	return math.Hypot(f.height, f.width) * TitleBandRatio
}

// ReserveLabels shrinks the content area for the label bands selected by o.
// When exactly one axis is labelled and o.Inset is false, half an interval is
// also reserved at both ends of that axis so end labels stay on the canvas;
// nx and ny are the label counts of the two axes. Reserving W/n in total
// leaves n-1 intervals of W/n each, so the margin is half the final label
// spacing. A single label sits at the origin and reserves nothing.
func (f *Frame) ReserveLabels(o GridOptions, nx, ny int, band float64) {
	if o.XLabels {
		f.Area.H -= band
	}
	if o.YLabels {
		f.Area.X += band
		f.Area.W -= band
	}
	if o.XLabels == o.YLabels || o.Inset {
		return
	}
	if o.XLabels && nx > 1 {
		iv := f.Area.W / float64(nx)
		f.Area.X += iv / 2
		f.Area.W -= iv
	}
	if o.YLabels && ny > 1 {
		iv := f.Area.H / float64(ny)
		f.Area.Y += iv / 2
		f.Area.H -= iv
	}
}

// XLabels places one label per entry below the content area, centred on the
// label positions: with inset, N labels sit at boundaries 1..N of N+1 equal
// intervals; without, at 0..N-1 of N-1 intervals.
func (f *Frame) XLabels(labels []string, inset bool, band float64) {
	for i, x := range labelPositions(f.Area.X, f.Area.W, len(labels), inset) {
		t := f.text(labels[i], 0, 0)
		t.X = x - t.W/2
		t.Y = f.Area.Bottom() + (band-t.H)/2
		f.add(OpBlend, RoleLabel, t)
	}
}

// YTicks labels the horizontal grid lines of g with values spread over
// [lo, hi], right-aligned against the content area.
func (f *Frame) YTicks(lo, hi float64, g gridSpec) {
	_, gy := f.chart.Grid()
	values := spread(lo, hi-lo, gy)
	for i, y := range spread(g.bottom, -g.ySpan, gy) {
		t := f.text(FormatValue(values[i]), 0, 0)
		t.X = f.Area.X - t.W - labelPad
		t.Y = y - t.H/2
		f.add(OpBlend, RoleTick, t)
	}
}

// Border outlines the content area, or draws its bottom edge only.
func (f *Frame) Border(outline bool) {
	if outline {
		f.add(OpBlend, RoleBorder, &Rect{Box: f.Area, Color: AxisColor, StrokeWidth: 1})
		return
	}
	y := f.Area.Bottom()
	f.add(OpBlend, RoleBorder, &Line{
		From:  Point{X: f.Area.X, Y: y},
		To:    Point{X: f.Area.Right(), Y: y},
		Color: AxisColor,
		Width: 1,
	})
}

// gridSpec places primary and sub-grid lines. Vertical lines sit at
// x0 + i*xSpan/(N-1) and run from bottom up by ySpan; horizontal lines sit at
// bottom - i*ySpan/(N-1) and run from x0 right by xSpan.
type gridSpec struct {
	x0, xSpan     float64
	bottom, ySpan float64

	axisFirstX bool // draw vertical line 0 in AxisColor
	axisLastY  bool // draw the last horizontal line in AxisColor
}

// Grid emits the primary grid lines configured on the chart.
func (f *Frame) Grid(g gridSpec) {
	gx, gy := f.chart.Grid()
	gridColor := f.chart.GridColor()

	for i, x := range spread(g.x0, g.xSpan, gx) {
		c := gridColor
		if g.axisFirstX && i == 0 {
			c = AxisColor
		}
		f.add(OpBlend, RoleGrid, &Line{
			From:  Point{X: x, Y: g.bottom},
			To:    Point{X: x, Y: g.bottom - g.ySpan},
			Color: c,
			Width: 1,
		})
	}

	for i, y := range spread(g.bottom, -g.ySpan, gy) {
		c := gridColor
		if g.axisLastY && i == gy-1 {
			c = AxisColor
		}
		f.add(OpBlend, RoleGrid, &Line{
			From:  Point{X: g.x0, Y: y},
			To:    Point{X: g.x0 + g.xSpan, Y: y},
			Color: c,
			Width: 1,
		})
	}
}

// SubGrid emits dashed lines subdividing every primary interval into
// (sub-1) parts, sub being the chart's sub-grid count on that axis.
func (f *Frame) SubGrid(g gridSpec) {
	gx, gy := f.chart.Grid()
	sx, sy := f.chart.SubGrid()
	c := f.chart.SubGridColor()

	for _, x := range subdivide(g.x0, g.xSpan, gx, sx) {
		f.dashed(c, Point{X: x, Y: g.bottom}, Point{X: x, Y: g.bottom - g.ySpan})
	}
	for _, y := range subdivide(g.bottom, -g.ySpan, gy, sy) {
		f.dashed(c, Point{X: g.x0, Y: y}, Point{X: g.x0 + g.xSpan, Y: y})
	}
}

func (f *Frame) dashed(c colors.ARGB, from, to Point) {
	dash := SubGridDash
	f.add(OpBlend, RoleSubGrid, &Path{
		Points:      []Point{from, to},
		Color:       c,
		StrokeWidth: 1,
		Dash:        &dash,
	})
}

// spread returns n positions from origin covering span: origin+i*span/(n-1).
// A single position sits at the origin; n <= 0 yields none.
func spread(origin, span float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{origin}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = origin + float64(i)*span/float64(n-1)
	}
	return out
}

// subdivide returns the sub-grid positions between n primary positions
// spread over span, each interval split into sub-1 parts. Primary positions
// are excluded.
func subdivide(origin, span float64, n, sub int) []float64 {
	if n < 2 || sub < 3 {
		return nil
	}
	parts := sub - 1
	denom := float64((n - 1) * parts)
	var out []float64
	for i := 0; i < n-1; i++ {
		for j := 1; j < parts; j++ {
			out = append(out, origin+span*float64(j+i*parts)/denom)
		}
	}
	return out
}

// labelPositions returns the centres of n labels across [x, x+w].
func labelPositions(x, w float64, n int, inset bool) []float64 {
	if !inset {
		return spread(x, w, n)
	}
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	step := w / float64(n+1)
	for i := range out {
		out[i] = x + float64(i+1)*step
	}
	return out
}

// normalize maps v from [lo, hi] to [0, 1]. A degenerate range maps to 0.
func normalize(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	return (v - lo) / (hi - lo)
}

// FormatValue renders a sample as label text: integers without a fraction,
// other values in the shortest form with up to six significant digits.
func FormatValue(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}
