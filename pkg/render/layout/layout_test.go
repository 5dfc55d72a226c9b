package layout_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/echart/pkg/chart"
	"github.com/matzehuels/echart/pkg/colors"
	"github.com/matzehuels/echart/pkg/dataset"
	"github.com/matzehuels/echart/pkg/errors"
	"github.com/matzehuels/echart/pkg/fonts"
	"github.com/matzehuels/echart/pkg/render/layout"
)

const eps = 1e-9

// salesChart is the 800x600 chart over 2004-2007 with two value series.
func salesChart(t *testing.T, title string) *chart.Chart {
	t.Helper()
	d := dataset.New()
	d.SetTitle(title)
	require.NoError(t, d.SetAbscissa(dataset.FromValues("Year", 2004, 2005, 2006, 2007)))
	require.NoError(t, d.Append(dataset.FromValues("Sales", 1000, 1170, 660, 1030)))
	require.NoError(t, d.Append(dataset.FromValues("Expenses", 400, 460, 1120, 540)))

	c := chart.New()
	c.SetSize(800, 600)
	require.NoError(t, c.SetDataset(d))
	return c
}

func build(t *testing.T, c *chart.Chart, kind layout.Kind, opts ...layout.Option) layout.Layout {
	t.Helper()
	opts = append([]layout.Option{layout.WithMeasurer(fonts.Monospace{})}, opts...)
	l, err := layout.Build(c, kind, opts...)
	require.NoError(t, err)
	return l
}

func paths(l layout.Layout, role layout.Role) []*layout.Path {
	var out []*layout.Path
	for _, ly := range l.Filter(role) {
		out = append(out, ly.Primitive.(*layout.Path))
	}
	return out
}

func lines(l layout.Layout, role layout.Role) []*layout.Line {
	var out []*layout.Line
	for _, ly := range l.Filter(role) {
		if ln, ok := ly.Primitive.(*layout.Line); ok {
			out = append(out, ln)
		}
	}
	return out
}

func texts(l layout.Layout, role layout.Role) []*layout.Text {
	var out []*layout.Text
	for _, ly := range l.Filter(role) {
		out = append(out, ly.Primitive.(*layout.Text))
	}
	return out
}

func TestLineScenario(t *testing.T) {
	l := build(t, salesChart(t, ""), layout.KindLine)

	require.NotEmpty(t, l.Layers)
	assert.Equal(t, layout.RoleBackground, l.Layers[0].Role, "background must be layer 0")
	assert.Equal(t, layout.OpReplace, l.Layers[0].Op)
	assert.Len(t, l.Filter(layout.RoleBackground), 1)
	assert.Empty(t, l.Filter(layout.RoleTitle))

	labels := texts(l, layout.RoleLabel)
	require.Len(t, labels, 4)
	for i, want := range []string{"2004", "2005", "2006", "2007"} {
		assert.Equal(t, want, labels[i].Text)
	}

	series := paths(l, layout.RoleSeries)
	require.Len(t, series, 2)
	for _, p := range series {
		assert.False(t, p.Filled)
		assert.Nil(t, p.Dash)
		assert.Equal(t, 1.0, p.StrokeWidth)
		assert.Len(t, p.Points, 4)
	}
	assert.Equal(t, colors.ARGB(0xff1f77b4), series[0].Color)
	assert.Empty(t, l.Filter(layout.RoleArea))

	for _, p := range layout.Collect[*layout.Path](l) {
		assert.False(t, p.Filled, "no filled primitives without area mode")
	}
}

func TestLineAreaScenario(t *testing.T) {
	l := build(t, salesChart(t, ""), layout.KindLine, layout.WithArea())

	areas := paths(l, layout.RoleArea)
	series := paths(l, layout.RoleSeries)
	require.Len(t, areas, 2)
	require.Len(t, series, 2)

	for k := range areas {
		assert.True(t, areas[k].Filled)
		assert.True(t, areas[k].Closed)
		assert.Equal(t, uint8(layout.AreaAlpha), areas[k].Color.A())
		assert.Less(t, l.Index(areas[k]), l.Index(series[k]), "area %d must be layered before its line", k)
		assert.Len(t, areas[k].Points, 6)
		assert.InDelta(t, l.Plot.Bottom(), areas[k].Points[0].Y, eps)
		assert.InDelta(t, l.Plot.Bottom(), areas[k].Points[5].Y, eps)
	}
}

func TestLineAreaSpansPlotWithDescendingAbscissa(t *testing.T) {
	d := dataset.New()
	require.NoError(t, d.SetAbscissa(dataset.FromValues("Year", 2007, 2004, 2006, 2005)))
	require.NoError(t, d.Append(dataset.FromValues("Sales", 1030, 1000, 660, 1170)))
	require.NoError(t, d.Append(dataset.FromValues("Expenses", 540, 400, 1120, 460)))
	c := chart.New()
	c.SetSize(800, 600)
	require.NoError(t, c.SetDataset(d))

	l := build(t, c, layout.KindLine, layout.WithArea())
	for _, a := range paths(l, layout.RoleArea) {
		require.Len(t, a.Points, 6)
		assert.InDelta(t, l.Plot.X, a.Points[0].X, eps, "outline starts at the bottom-left corner")
		assert.InDelta(t, l.Plot.Right(), a.Points[5].X, eps, "outline ends at the bottom-right corner")
		assert.InDelta(t, l.Plot.Bottom(), a.Points[0].Y, eps)
		assert.InDelta(t, l.Plot.Bottom(), a.Points[5].Y, eps)
	}
}

func TestLineAbscissaMapping(t *testing.T) {
	l := build(t, salesChart(t, ""), layout.KindLine)

	// Monospace: "2004" is 4 * 16 * 0.6 wide, 16 tall.
	labelW := 4 * 16 * 0.6
	xArea := labelW / 2
	wArea := 800 - labelW

	assert.InDelta(t, xArea, l.Plot.X, eps)
	assert.InDelta(t, wArea, l.Plot.W, eps)
	assert.InDelta(t, 600.0-16, l.Plot.Bottom(), eps)

	labels := texts(l, layout.RoleLabel)
	assert.InDelta(t, xArea, labels[0].CenterX(), eps, "minimum maps to x_area")
	assert.InDelta(t, xArea+wArea, labels[3].CenterX(), eps, "maximum maps to x_area + w_area")
	for _, lb := range labels {
		assert.InDelta(t, 600.0-16, lb.Y, eps)
	}

	series := paths(l, layout.RoleSeries)
	assert.InDelta(t, xArea, series[0].Points[0].X, eps)
	assert.InDelta(t, xArea+wArea, series[0].Points[3].X, eps)
}

func TestLinePerSeriesNormalization(t *testing.T) {
	l := build(t, salesChart(t, ""), layout.KindLine)
	s := paths(l, layout.RoleSeries)[0] // 1000 1170 660 1030

	assert.InDelta(t, l.Plot.Y, s.Points[1].Y, eps, "series max touches the top")
	assert.InDelta(t, l.Plot.Bottom(), s.Points[2].Y, eps, "series min touches the bottom")
}

func TestLineStacked(t *testing.T) {
	c := salesChart(t, "")
	l := build(t, c, layout.KindLine, layout.WithStacked())
	assert.True(t, l.Stacked)

	// Stacked second series: 1400 1630 1780 1570.
	s := paths(l, layout.RoleSeries)[1]
	assert.InDelta(t, l.Plot.Bottom(), s.Points[0].Y, eps)
	assert.InDelta(t, l.Plot.Y, s.Points[2].Y, eps)

	assert.Equal(t, []float64{400, 460, 1120, 540}, c.Dataset().Item(1).Values(), "input dataset untouched")
}

func TestLineSharedScale(t *testing.T) {
	l := build(t, salesChart(t, ""), layout.KindLine, layout.WithSharedScale())
	series := paths(l, layout.RoleSeries)

	// Dataset range is [400, 1170].
	assert.InDelta(t, l.Plot.Y, series[0].Points[1].Y, eps)
	assert.InDelta(t, l.Plot.Bottom(), series[1].Points[0].Y, eps)
	assert.Greater(t, series[1].Points[2].Y, l.Plot.Y, "1120 stays below the shared max")
}

func TestLineGrid(t *testing.T) {
	l := build(t, salesChart(t, "Sales"), layout.KindLine)
	grid := lines(l, layout.RoleGrid)
	require.Len(t, grid, 10)

	assert.InDelta(t, 16.0, l.Plot.Y, eps, "title reserves its measured height")

	for i, ln := range grid[:5] {
		assert.InDelta(t, l.Plot.X+float64(i)*l.Plot.W/4, ln.From.X, eps)
		assert.InDelta(t, l.Plot.Bottom(), ln.From.Y, eps)
		assert.InDelta(t, l.Plot.Y, ln.To.Y, eps)
		if i == 0 {
			assert.Equal(t, layout.AxisColor, ln.Color)
		} else {
			assert.Equal(t, chart.DefaultGridColor, ln.Color)
		}
	}
	for i, ln := range grid[5:] {
		assert.InDelta(t, l.Plot.Bottom()-float64(i)*l.Plot.H/4, ln.From.Y, eps)
		if i == 4 {
			assert.Equal(t, layout.AxisColor, ln.Color)
		} else {
			assert.Equal(t, chart.DefaultGridColor, ln.Color)
		}
	}
}

func TestSubGrid(t *testing.T) {
	c := salesChart(t, "")
	c.SetGrid(3, 0)
	c.SetSubGrid(3, 0)
	l := build(t, c, layout.KindLine)

	sub := paths(l, layout.RoleSubGrid)
	require.Len(t, sub, 2, "two intervals split in two parts each")
	for i, p := range sub {
		require.NotNil(t, p.Dash)
		assert.Equal(t, layout.SubGridDash, *p.Dash)
		assert.Equal(t, chart.DefaultSubGridColor, p.Color)
		want := l.Plot.X + l.Plot.W*float64(2*i+1)/4
		assert.InDelta(t, want, p.Points[0].X, eps)
	}

	c.SetSubGrid(5, 0)
	sub = paths(build(t, c, layout.KindLine), layout.RoleSubGrid)
	assert.Len(t, sub, 6)
}

func TestGridCountOne(t *testing.T) {
	for _, kind := range layout.Kinds {
		t.Run(string(kind), func(t *testing.T) {
			c := salesChart(t, "")
			c.SetGrid(1, 0)
			c.SetSubGrid(4, 4)
			l := build(t, c, kind)

			grid := lines(l, layout.RoleGrid)
			require.Len(t, grid, 1)
			assert.InDelta(t, l.Plot.X, grid[0].From.X, eps)
			assert.Empty(t, l.Filter(layout.RoleSubGrid))
		})
	}
}

func TestGridCountZero(t *testing.T) {
	c := salesChart(t, "")
	c.SetGrid(0, 0)
	c.SetSubGrid(3, 3)
	for _, kind := range layout.Kinds {
		l := build(t, c, kind)
		assert.Empty(t, l.Filter(layout.RoleGrid))
		assert.Empty(t, l.Filter(layout.RoleSubGrid))
	}
}

func TestColumnGridCoordinates(t *testing.T) {
	for n := 2; n <= 8; n++ {
		c := salesChart(t, "")
		c.SetGrid(n, 0)
		l := build(t, c, layout.KindColumn, layout.WithGridOptions(layout.GridOptions{}))

		grid := lines(l, layout.RoleGrid)
		require.Len(t, grid, n)
		for i, ln := range grid {
			assert.Equal(t, float64(i)*799/float64(n-1), ln.From.X, "n=%d i=%d", n, i)
			if i > 0 {
				assert.Greater(t, ln.From.X, grid[i-1].From.X)
			}
		}
	}
}

func TestColumnBars(t *testing.T) {
	c := salesChart(t, "")
	l := build(t, c, layout.KindColumn)

	bars := l.Filter(layout.RoleBar)
	require.Len(t, bars, 8)

	slot := l.Plot.W / 5
	for i, ly := range bars {
		r := ly.Primitive.(*layout.Rect)
		assert.True(t, r.Filled)
		assert.InDelta(t, 0.8*slot/2, r.W, eps)
		assert.InDelta(t, l.Plot.Bottom(), r.Bottom(), eps)

		want, _ := colors.Default(i % 2)
		assert.Equal(t, want.Area, r.Color)
	}

	// Category 1: Sales 1170 is the dataset maximum.
	sales := bars[2].Primitive.(*layout.Rect)
	expenses := bars[3].Primitive.(*layout.Rect)
	assert.InDelta(t, l.Plot.H, sales.H, eps)
	assert.InDelta(t, l.Plot.H*460/1170, expenses.H, eps)
	assert.Less(t, sales.X, expenses.X, "bars run left to right in series order")
	assert.InDelta(t, l.Plot.X+2*slot, (sales.X+expenses.Right())/2, eps, "group centred on slot boundary")
}

func TestColumnBarsMixedSign(t *testing.T) {
	d := dataset.New()
	require.NoError(t, d.SetAbscissa(dataset.FromValues("x", 1, 2, 3)))
	require.NoError(t, d.Append(dataset.FromValues("v", -10, 0, 10)))
	c := chart.New()
	c.SetSize(800, 600)
	require.NoError(t, c.SetDataset(d))

	l := build(t, c, layout.KindColumn)
	bars := l.Filter(layout.RoleBar)
	require.Len(t, bars, 3)

	neg := bars[0].Primitive.(*layout.Rect)
	zero := bars[1].Primitive.(*layout.Rect)
	pos := bars[2].Primitive.(*layout.Rect)
	baseline := l.Plot.Y + l.Plot.H/2

	assert.InDelta(t, l.Plot.H/2, neg.H, eps)
	assert.InDelta(t, baseline, neg.Y, eps, "negative bars hang from the baseline")
	assert.InDelta(t, l.Plot.Bottom(), neg.Bottom(), eps)

	assert.InDelta(t, 0, zero.H, eps)
	assert.InDelta(t, baseline, zero.Y, eps)

	assert.InDelta(t, l.Plot.H/2, pos.H, eps)
	assert.InDelta(t, baseline, pos.Bottom(), eps)
	assert.InDelta(t, l.Plot.Y, pos.Y, eps)
}

func TestColumnFrame(t *testing.T) {
	l := build(t, salesChart(t, "Sales"), layout.KindColumn)
	band := 1000 * layout.TitleBandRatio // hypot(600, 800) * 0.08

	assert.Len(t, l.Filter(layout.RoleTitle), 1)
	assert.InDelta(t, band, l.Plot.X, eps)
	assert.InDelta(t, band, l.Plot.Y, eps)
	assert.InDelta(t, 600-2*band, l.Plot.H, eps)
	assert.Len(t, l.Filter(layout.RoleTick), 5)

	border := l.Filter(layout.RoleBorder)
	require.Len(t, border, 1)
	r := border[0].Primitive.(*layout.Rect)
	assert.False(t, r.Filled)
	assert.Equal(t, l.Plot, r.Box)
	assert.Less(t, l.Index(r), l.Index(l.Filter(layout.RoleBar)[0].Primitive))

	labels := texts(l, layout.RoleLabel)
	require.Len(t, labels, 4)
	for k, lb := range labels {
		assert.InDelta(t, l.Plot.X+float64(k+1)*l.Plot.W/5, lb.CenterX(), eps, "inset labels sit on boundaries 1..N")
	}
}

func TestColumnTitleBand(t *testing.T) {
	l := build(t, salesChart(t, "Sales"), layout.KindColumn,
		layout.WithTitleBand(40),
		layout.WithGridOptions(layout.GridOptions{}))
	assert.InDelta(t, 40.0, l.Plot.Y, eps)
	assert.InDelta(t, 560.0, l.Plot.H, eps)
}

func TestColumnNonInsetLabels(t *testing.T) {
	l := build(t, salesChart(t, ""), layout.KindColumn,
		layout.WithGridOptions(layout.GridOptions{XLabels: true}))

	// Only the x axis is labelled: half of 800/4 is reserved at both ends.
	assert.InDelta(t, 100.0, l.Plot.X, eps)
	assert.InDelta(t, 600.0, l.Plot.W, eps)

	labels := texts(l, layout.RoleLabel)
	require.Len(t, labels, 4)
	assert.InDelta(t, 100.0, labels[0].CenterX(), eps)
	assert.InDelta(t, 700.0, labels[3].CenterX(), eps)

	border := lines(l, layout.RoleBorder)
	require.Len(t, border, 1, "non-outline frames draw a bottom line")
	assert.InDelta(t, l.Plot.Bottom(), border[0].From.Y, eps)
}

func TestColumnNonInsetSingleLabel(t *testing.T) {
	d := dataset.New()
	require.NoError(t, d.SetAbscissa(dataset.FromValues("x", 2004)))
	require.NoError(t, d.Append(dataset.FromValues("v", 5)))
	c := chart.New()
	c.SetSize(800, 600)
	require.NoError(t, c.SetDataset(d))

	l := build(t, c, layout.KindColumn,
		layout.WithGridOptions(layout.GridOptions{XLabels: true}))

	assert.InDelta(t, 0.0, l.Plot.X, eps)
	assert.InDelta(t, 800.0, l.Plot.W, eps, "one label reserves no end margins")
	require.Len(t, l.Filter(layout.RoleBar), 1)
}

func TestBuildErrors(t *testing.T) {
	_, err := layout.Build(nil, layout.KindLine)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	_, err = layout.Build(chart.New(), layout.KindLine)
	assert.True(t, errors.Is(err, errors.ErrCodeMissingDataset))

	_, err = layout.Build(salesChart(t, ""), layout.Kind("pie"))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidKind))

	d := dataset.New()
	require.NoError(t, d.SetAbscissa(dataset.FromValues("x", 1, 2)))
	c := chart.New()
	require.NoError(t, c.SetDataset(d))

	_, err = layout.Build(c, layout.KindLine)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInsufficientSeries))
	assert.Contains(t, err.Error(), "needs at least 2 items")

	_, err = layout.Build(c, layout.KindColumn)
	assert.True(t, errors.Is(err, errors.ErrCodeInsufficientSeries))
}

func TestBuildDeterministic(t *testing.T) {
	c := salesChart(t, "Sales")
	a := build(t, c, layout.KindLine, layout.WithArea())
	b := build(t, c, layout.KindLine, layout.WithArea())
	assert.Equal(t, a, b)
}

func TestJSONRoundTrip(t *testing.T) {
	c := salesChart(t, "Sales")
	c.SetSubGrid(3, 3)
	l := build(t, c, layout.KindLine, layout.WithArea())

	var buf bytes.Buffer
	require.NoError(t, layout.WriteJSON(&buf, l))
	got, err := layout.ReadJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, l, got)
}

func TestParseRejectsBadLayers(t *testing.T) {
	_, err := layout.Parse(layout.Document{Kind: "line", Layers: []layout.DocumentLayer{{Op: layout.OpBlend, Type: "rect"}}})
	assert.Error(t, err)

	_, err = layout.Parse(layout.Document{Kind: "line", Layers: []layout.DocumentLayer{{Op: "xor", Type: "rect", Rect: &layout.Rect{}}}})
	assert.Error(t, err)

	_, err = layout.Parse(layout.Document{Kind: "pie"})
	assert.Error(t, err)
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want layout.Kind
		ok   bool
	}{
		{"", layout.KindLine, true},
		{"line", layout.KindLine, true},
		{"Column", layout.KindColumn, true},
		{"bar", layout.KindColumn, true},
		{"pie", "", false},
	}
	for _, tt := range tests {
		got, err := layout.ParseKind(tt.in)
		if !tt.ok {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{2004, "2004"},
		{-3, "-3"},
		{0, "0"},
		{0.5, "0.5"},
		{1.0 / 3, "0.333333"},
		{292.5, "292.5"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, layout.FormatValue(tt.in))
	}
}
