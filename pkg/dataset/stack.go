package dataset

import (
	"github.com/matzehuels/echart/pkg/errors"
)

// Stack derives a dataset whose value items are cumulative sums of d's:
// item 0 is copied, item i >= 1 holds stacked[i-1][j] + d.Item(i)[j]. Titles
// and colours are copied and min/max recomputed from the new samples. The
// abscissa is deep-copied. d is not modified.
func Stack(d *Dataset) (*Dataset, error) {
	if d == nil {
		return nil, errors.New(errors.ErrCodeMissingDataset, "stack: dataset is nil")
	}
	if d.abscissa == nil {
		return nil, errors.New(errors.ErrCodeMissingAbscissa, "stack: dataset has no abscissa")
	}

	out := New()
	out.title = d.title
	out.abscissa = d.abscissa.Clone()
	out.abscissa.owner = out

	n := d.abscissa.Len()
	var prev *Item
	for _, src := range d.items {
		it := NewItem()
		it.title = src.title
		it.colors = src.colors
		it.explicit = true
		for j := range n {
			it.Add(src.Value(j) + prev.Value(j))
		}
		it.owner = out
		out.items = append(out.items, it)
		prev = it
	}
	return out, nil
}
