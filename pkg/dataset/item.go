package dataset

import (
	"slices"
	"strconv"

	"github.com/matzehuels/echart/pkg/colors"
	"github.com/matzehuels/echart/pkg/errors"
)

// Item is one titled, coloured series of samples. The zero value is not
// usable; create items with [NewItem] or [FromValues].
//
// Min and max are tracked incrementally as samples are added, so reading
// [Item.Interval] never rescans the values.
type Item struct {
	title    string
	values   []float64
	min, max float64
	colors   colors.Pair
	explicit bool     // colours set by the caller, not by the palette
	owner    *Dataset // dataset the item was appended to, if any
}

// NewItem returns an empty item.
func NewItem() *Item {
	return &Item{}
}

// FromValues returns an item with the given title and samples.
func FromValues(title string, values ...float64) *Item {
	it := NewItem()
	it.SetTitle(title)
	for _, v := range values {
		it.Add(v)
	}
	return it
}

// Add appends a sample and updates the running min/max. The first sample
// seeds both bounds. Items that belong to a dataset are frozen: Add reports
// ITEM_OWNED to the diagnostics sink and leaves the item unchanged.
func (it *Item) Add(v float64) {
	if it == nil {
		return
	}
	if it.owner != nil {
		reject(errors.New(errors.ErrCodeItemOwned, "item %q belongs to a dataset, sample %s dropped", it.title, strconv.FormatFloat(v, 'g', -1, 64)))
		return
	}
	if len(it.values) == 0 {
		it.min, it.max = v, v
	} else {
		it.min = min(it.min, v)
		it.max = max(it.max, v)
	}
	it.values = append(it.values, v)
}

// SetTitle sets the series title. Empty titles are ignored.
func (it *Item) SetTitle(title string) {
	if it == nil || title == "" {
		return
	}
	it.title = title
}

// Title returns the series title.
func (it *Item) Title() string {
	if it == nil {
		return ""
	}
	return it.title
}

// SetColors overrides the line/area colours. Items coloured this way keep
// their colours when appended to a dataset.
func (it *Item) SetColors(p colors.Pair) {
	if it == nil {
		return
	}
	it.colors = p
	it.explicit = true
}

// Colors returns the line/area colour pair.
func (it *Item) Colors() colors.Pair {
	if it == nil {
		return colors.Pair{}
	}
	return it.colors
}

// Values returns a copy of the samples in insertion order.
func (it *Item) Values() []float64 {
	if it == nil {
		return nil
	}
	return slices.Clone(it.values)
}

// Value returns sample j, or 0 when j is out of range.
func (it *Item) Value(j int) float64 {
	if it == nil || j < 0 || j >= len(it.values) {
		return 0
	}
	return it.values[j]
}

// Len returns the number of samples.
func (it *Item) Len() int {
	if it == nil {
		return 0
	}
	return len(it.values)
}

// Interval returns the smallest and largest sample. Both are zero for an
// empty item.
func (it *Item) Interval() (lo, hi float64) {
	if it == nil {
		return 0, 0
	}
	return it.min, it.max
}

// Clone returns an unowned deep copy of the item. Colours are carried over
// and count as explicit.
func (it *Item) Clone() *Item {
	if it == nil {
		return nil
	}
	return &Item{
		title:    it.title,
		values:   slices.Clone(it.values),
		min:      it.min,
		max:      it.max,
		colors:   it.colors,
		explicit: it.explicit || it.owner != nil,
	}
}
