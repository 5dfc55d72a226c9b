package io

import (
	"github.com/matzehuels/echart/pkg/chart"
	"github.com/matzehuels/echart/pkg/colors"
	"github.com/matzehuels/echart/pkg/dataset"
	"github.com/matzehuels/echart/pkg/errors"
	"github.com/matzehuels/echart/pkg/fonts"
	"github.com/matzehuels/echart/pkg/render/layout"
)

// File is a chart definition.
type File struct {
	Title       string              `toml:"title,omitempty" json:"title,omitempty"`
	Kind        string              `toml:"kind,omitempty" json:"kind,omitempty"`
	Area        bool                `toml:"area,omitempty" json:"area,omitempty"`
	Stacked     bool                `toml:"stacked,omitempty" json:"stacked,omitempty"`
	SharedScale bool                `toml:"shared_scale,omitempty" json:"shared_scale,omitempty"`
	Canvas      Canvas              `toml:"canvas" json:"canvas"`
	Grid        Grid                `toml:"grid" json:"grid"`
	SubGrid     Grid                `toml:"subgrid" json:"subgrid"`
	Font        *fonts.Font         `toml:"font,omitempty" json:"font,omitempty"`
	Frame       *layout.GridOptions `toml:"frame,omitempty" json:"frame,omitempty"`
	Abscissa    Series              `toml:"abscissa" json:"abscissa"`
	Series      []Series            `toml:"series" json:"series"`
}

// Canvas is the [canvas] table. Zero sizes keep the chart default.
type Canvas struct {
	Width      int          `toml:"width,omitempty" json:"width,omitempty"`
	Height     int          `toml:"height,omitempty" json:"height,omitempty"`
	Background *colors.ARGB `toml:"background,omitempty" json:"background,omitempty"`
}

// Grid is the [grid] or [subgrid] table.
type Grid struct {
	X     *int         `toml:"x,omitempty" json:"x,omitempty"`
	Y     *int         `toml:"y,omitempty" json:"y,omitempty"`
	Color *colors.ARGB `toml:"color,omitempty" json:"color,omitempty"`
}

// Series is one data series. Line and Area override the palette colours.
type Series struct {
	Title  string       `toml:"title,omitempty" json:"title,omitempty"`
	Values []float64    `toml:"values" json:"values"`
	Line   *colors.ARGB `toml:"line,omitempty" json:"line,omitempty"`
	Area   *colors.ARGB `toml:"area,omitempty" json:"area,omitempty"`
}

// Build creates the chart described by f, with its dataset attached.
func (f *File) Build() (*chart.Chart, error) {
	if f == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "chart file is nil")
	}
	if err := errors.ValidateTitle(f.Title); err != nil {
		return nil, err
	}

	c := chart.New()

	if f.Canvas.Width != 0 || f.Canvas.Height != 0 {
		w, h := c.Size()
		if f.Canvas.Width != 0 {
			w = f.Canvas.Width
		}
		if f.Canvas.Height != 0 {
			h = f.Canvas.Height
		}
		if w <= 0 || h <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidSize, "canvas: %dx%d, width and height must be positive", w, h)
		}
		c.SetSize(w, h)
	}
	if bg := f.Canvas.Background; bg != nil {
		c.SetBackground(bg.Components())
	}

	x, y := c.Grid()
	x, y, err := f.Grid.counts("grid", x, y)
	if err != nil {
		return nil, err
	}
	c.SetGrid(x, y)
	if col := f.Grid.Color; col != nil {
		c.SetGridColor(col.Components())
	}

	x, y = c.SubGrid()
	x, y, err = f.SubGrid.counts("subgrid", x, y)
	if err != nil {
		return nil, err
	}
	c.SetSubGrid(x, y)
	if col := f.SubGrid.Color; col != nil {
		c.SetSubGridColor(col.Components())
	}

	if f.Font != nil {
		c.SetFont(*f.Font)
	}

	d, err := f.dataset()
	if err != nil {
		return nil, err
	}
	if err := c.SetDataset(d); err != nil {
		return nil, err
	}
	return c, nil
}

func (g Grid) counts(table string, x, y int) (int, int, error) {
	if g.X != nil {
		x = *g.X
	}
	if g.Y != nil {
		y = *g.Y
	}
	if x < 0 || y < 0 {
		return 0, 0, errors.New(errors.ErrCodeInvalidCount, "%s: %dx%d, counts must be non-negative", table, x, y)
	}
	return x, y, nil
}

func (f *File) dataset() (*dataset.Dataset, error) {
	d := dataset.New()
	d.SetTitle(f.Title)

	if len(f.Abscissa.Values) == 0 {
		return nil, errors.New(errors.ErrCodeMissingAbscissa, "abscissa: no values")
	}
	if err := d.SetAbscissa(dataset.FromValues(f.Abscissa.Title, f.Abscissa.Values...)); err != nil {
		return nil, err
	}

	for k, s := range f.Series {
		if err := errors.ValidateTitle(s.Title); err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "series %d", k)
		}
		it := dataset.FromValues(s.Title, s.Values...)
		if p, ok := s.colors(k); ok {
			it.SetColors(p)
		}
		if err := d.Append(it); err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "series %d (%s)", k, s.Title)
		}
	}
	return d, nil
}

// colors resolves the overrides of series k. ok is false when the palette
// entry should be used unchanged.
func (s Series) colors(k int) (colors.Pair, bool) {
	switch {
	case s.Line != nil:
		p := colors.PairFrom(*s.Line)
		if s.Area != nil {
			p.Area = *s.Area
		}
		return p, true
	case s.Area != nil:
		p, _ := colors.Default(k)
		p.Area = *s.Area
		return p, true
	}
	return colors.Pair{}, false
}

// LayoutOptions returns the chart kind and layout options requested by the
// file.
func (f *File) LayoutOptions() (layout.Kind, []layout.Option, error) {
	kind, err := layout.ParseKind(f.Kind)
	if err != nil {
		return "", nil, err
	}
	var opts []layout.Option
	if f.Area {
		opts = append(opts, layout.WithArea())
	}
	if f.Stacked {
		opts = append(opts, layout.WithStacked())
	}
	if f.SharedScale {
		opts = append(opts, layout.WithSharedScale())
	}
	if f.Frame != nil {
		opts = append(opts, layout.WithGridOptions(*f.Frame))
	}
	return kind, opts, nil
}

// FromChart describes an existing chart as a file. Colours are written
// explicitly so the file reproduces the chart exactly.
func FromChart(c *chart.Chart, kind layout.Kind) *File {
	w, h := c.Size()
	bg := c.Background()
	gx, gy := c.Grid()
	gc := c.GridColor()
	sx, sy := c.SubGrid()
	sc := c.SubGridColor()
	font := c.Font()

	f := &File{
		Kind:    string(kind),
		Canvas:  Canvas{Width: w, Height: h, Background: &bg},
		Grid:    Grid{X: &gx, Y: &gy, Color: &gc},
		SubGrid: Grid{X: &sx, Y: &sy, Color: &sc},
		Font:    &font,
	}

	d := c.Dataset()
	if d == nil {
		return f
	}
	f.Title = d.Title()
	if abs := d.Abscissa(); abs != nil {
		f.Abscissa = Series{Title: abs.Title(), Values: abs.Values()}
	}
	for _, it := range d.Items() {
		p := it.Colors()
		f.Series = append(f.Series, Series{
			Title:  it.Title(),
			Values: it.Values(),
			Line:   &p.Line,
			Area:   &p.Area,
		})
	}
	return f
}
