package layout

import (
	"math"

	"github.com/matzehuels/echart/pkg/dataset"
	"github.com/matzehuels/echart/pkg/errors"
)

// columnPlotter draws grouped bars: one category per abscissa sample, one
// bar per value series inside each category.
type columnPlotter struct{}

func (columnPlotter) plot(f *Frame, d *dataset.Dataset) error {
	abs := d.Abscissa()
	if abs == nil {
		return errors.New(errors.ErrCodeMissingAbscissa, "column chart: dataset has no abscissa")
	}
	if d.Count() < 1 {
		return errors.New(errors.ErrCodeInsufficientSeries, "column chart needs at least one value series")
	}

	o := f.cfg.grid
	band := f.LabelBand()

	f.Background()
	if title := d.Title(); title != "" {
		titleBand := f.cfg.titleBand
		if titleBand <= 0 {
			titleBand = band
		}
		f.Title(title, titleBand)
	}

	_, gy := f.chart.Grid()
	f.ReserveLabels(o, abs.Len(), gy, band)

	if o.XLabels {
		labels := make([]string, abs.Len())
		for j := range labels {
			labels[j] = FormatValue(abs.Value(j))
		}
		f.XLabels(labels, o.Inset, band)
	}

	lo, hi := barRange(d)
	g := gridSpec{
		x0:     f.Area.X,
		xSpan:  f.Area.W - 1,
		bottom: f.Area.Bottom() - 1,
		ySpan:  f.Area.H - 1,
	}
	if o.YLabels {
		f.YTicks(lo, hi, g)
	}
	f.Grid(g)
	f.SubGrid(g)
	f.Border(o.Outline)

	plotBars(f, d, lo, hi)
	return nil
}

// barRange is the value range bars are scaled against. It always includes
// zero, the baseline bars grow from.
func barRange(d *dataset.Dataset) (lo, hi float64) {
	lo, hi, ok := d.Range()
	if !ok {
		return 0, 0
	}
	return min(0, lo), max(0, hi)
}

// plotBars partitions the content width into categories+1 slots. Category k
// is centred on slot boundary k+1; its V bars share BarGroupRatio of a slot,
// left to right in series order. Bar height is proportional to |value|;
// positive bars rise from the zero baseline, negative bars hang below it.
func plotBars(f *Frame, d *dataset.Dataset, lo, hi float64) {
	n := d.Len()
	v := d.Count()
	slot := f.Area.W / float64(n+1)
	group := BarGroupRatio * slot
	barW := group / float64(v)

	var scale float64
	if hi > lo {
		scale = f.Area.H / (hi - lo)
	}
	baseline := f.Area.Bottom() + lo*scale

	for k := range n {
		left := f.Area.X + float64(k+1)*slot - group/2
		for s, it := range d.Items() {
			val := it.Value(k)
			h := math.Abs(val) * scale
			y := baseline - h
			if val < 0 {
				y = baseline
			}
			f.add(OpBlend, RoleBar, &Rect{
				Box:    Box{X: left + float64(s)*barW, Y: y, W: barW, H: h},
				Color:  it.Colors().Area,
				Filled: true,
			})
		}
	}
}
