package layout

import (
	"github.com/matzehuels/echart/pkg/dataset"
	"github.com/matzehuels/echart/pkg/errors"
)

// linePlotter draws one polyline per value series against the abscissa,
// optionally stacked and with filled areas.
type linePlotter struct{}

func (linePlotter) plot(f *Frame, d *dataset.Dataset) error {
	if d.Abscissa() == nil || d.Count() < 1 {
		return errors.New(errors.ErrCodeInsufficientSeries, "line chart needs at least 2 items")
	}
	if f.cfg.stacked {
		stacked, err := dataset.Stack(d)
		if err != nil {
			return err
		}
		d = stacked
	}

	f.Background()
	var titleH float64
	if title := d.Title(); title != "" {
		titleH = f.Title(title, 0)
	}

	abs := d.Abscissa()
	labels := make([]*Text, abs.Len())
	var yArea float64
	for j := range labels {
		labels[j] = f.text(FormatValue(abs.Value(j)), 0, 0)
		yArea = max(yArea, labels[j].H)
	}

	var xArea, wArea float64
	if n := len(labels); n > 0 {
		first, last := labels[0], labels[n-1]
		xArea = first.W / 2
		wArea = f.width - (first.W+last.W)/2
	} else {
		wArea = f.width
	}
	bottom := f.height - yArea
	hArea := bottom - titleH
	f.Area = Box{X: xArea, Y: titleH, W: wArea, H: hArea}

	m := lineMapper{xArea: xArea, wArea: wArea, bottom: bottom, hArea: hArea}
	m.aMin, m.aMax = abs.Interval()

	for j, t := range labels {
		t.X = m.x(abs.Value(j)) - t.W/2
		t.Y = f.height - t.H
		f.add(OpBlend, RoleLabel, t)
	}

	g := gridSpec{
		x0:         xArea,
		xSpan:      wArea,
		bottom:     bottom,
		ySpan:      hArea,
		axisFirstX: true,
		axisLastY:  true,
	}
	f.Grid(g)
	f.SubGrid(g)

	lo, hi, _ := d.Range()
	items := d.Items()
	paths := make([][]Point, len(items))
	for s, it := range items {
		yMin, yMax := it.Interval()
		if f.cfg.shared {
			yMin, yMax = lo, hi
		}
		pts := make([]Point, it.Len())
		for j := range pts {
			pts[j] = Point{X: m.x(abs.Value(j)), Y: m.y(it.Value(j), yMin, yMax)}
		}
		paths[s] = pts
	}

	if f.cfg.area {
		for s, it := range items {
			pts := paths[s]
			if len(pts) == 0 {
				continue
			}
			outline := make([]Point, 0, len(pts)+2)
			outline = append(outline, Point{X: xArea, Y: bottom})
			outline = append(outline, pts...)
			outline = append(outline, Point{X: xArea + wArea, Y: bottom})
			f.add(OpBlend, RoleArea, &Path{
				Points: outline,
				Closed: true,
				Filled: true,
				Color:  it.Colors().Area.WithAlpha(AreaAlpha),
			})
		}
	}

	for s, it := range items {
		f.add(OpBlend, RoleSeries, &Path{
			Points:      paths[s],
			Color:       it.Colors().Line,
			StrokeWidth: 1,
		})
	}
	return nil
}

// lineMapper converts data values into plot coordinates.
type lineMapper struct {
	xArea, wArea  float64
	bottom, hArea float64
	aMin, aMax    float64
}

// x maps an abscissa value linearly onto [xArea, xArea+wArea].
func (m lineMapper) x(v float64) float64 {
	return m.xArea + m.wArea*normalize(v, m.aMin, m.aMax)
}

// y maps a sample, normalised against [lo, hi], onto [bottom-hArea, bottom].
func (m lineMapper) y(v, lo, hi float64) float64 {
	return m.bottom - m.hArea*normalize(v, lo, hi)
}
