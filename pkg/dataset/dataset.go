// Package dataset holds the tabular data a chart is drawn from.
//
// A [Dataset] is a title, one abscissa [Item] (the shared x-axis reference)
// and up to [MaxItems] value items of the same length. The abscissa is stored
// apart from the value items, which are indexed from 0.
//
// Structural violations (a length mismatch, the item cap, a second abscissa,
// an item already owned by another dataset) reject the single mutation, leave
// the dataset unchanged, return a coded error from [github.com/matzehuels/echart/pkg/errors]
// and report the rejection to [observability.Diagnostics].
//
// Datasets carry no locks. Treat a dataset as immutable once it is attached
// to a chart that may be laid out concurrently; [Stack] allocates a new
// dataset and is safe alongside other readers.
package dataset

import (
	"slices"

	"github.com/matzehuels/echart/pkg/colors"
	"github.com/matzehuels/echart/pkg/errors"
	"github.com/matzehuels/echart/pkg/observability"
)

// MaxItems is the number of value items a dataset accepts. It matches the
// size of the default palette.
const MaxItems = colors.PaletteSize

// Dataset is an abscissa plus an ordered list of value items.
type Dataset struct {
	title    string
	abscissa *Item
	items    []*Item
	holder   any // chart the dataset is attached to, if any
}

// New returns an empty dataset.
func New() *Dataset {
	return &Dataset{}
}

// SetTitle sets the dataset title, drawn as the chart title.
func (d *Dataset) SetTitle(title string) {
	if d == nil {
		return
	}
	d.title = title
}

// Title returns the dataset title.
func (d *Dataset) Title() string {
	if d == nil {
		return ""
	}
	return d.title
}

// SetAbscissa designates the x-axis reference series. The first assignment
// wins; later calls return ABSCISSA_ALREADY_SET.
func (d *Dataset) SetAbscissa(it *Item) error {
	switch {
	case d == nil:
		return errors.New(errors.ErrCodeMissingDataset, "dataset is nil")
	case it == nil:
		return reject(errors.New(errors.ErrCodeInvalidInput, "abscissa item is nil"))
	case d.abscissa != nil:
		return reject(errors.New(errors.ErrCodeAbscissaSet, "abscissa already set"))
	case it.owner != nil:
		return reject(errors.New(errors.ErrCodeItemOwned, "item %q already belongs to a dataset", it.title))
	}
	it.owner = d
	d.abscissa = it
	return nil
}

// Abscissa returns the x-axis reference series, or nil.
func (d *Dataset) Abscissa() *Item {
	if d == nil {
		return nil
	}
	return d.abscissa
}

// Append adds a value item. The item must have as many samples as the
// abscissa, the dataset must hold fewer than MaxItems items, and the item
// must not belong to another dataset. Unless the item's colours were set
// explicitly it receives palette entry k, k being its index.
func (d *Dataset) Append(it *Item) error {
	switch {
	case d == nil:
		return errors.New(errors.ErrCodeMissingDataset, "dataset is nil")
	case it == nil:
		return reject(errors.New(errors.ErrCodeInvalidInput, "item is nil"))
	case d.abscissa == nil:
		return reject(errors.New(errors.ErrCodeMissingAbscissa, "set the abscissa before appending items"))
	case it.owner != nil:
		return reject(errors.New(errors.ErrCodeItemOwned, "item %q already belongs to a dataset", it.title))
	case it.Len() != d.abscissa.Len():
		return reject(errors.New(errors.ErrCodeLengthMismatch,
			"item %q has %d samples, abscissa has %d", it.title, it.Len(), d.abscissa.Len()))
	case len(d.items) >= MaxItems:
		return reject(errors.New(errors.ErrCodeTooManyItems, "dataset already holds %d items", MaxItems))
	}

	if !it.explicit {
		p, _ := colors.Default(len(d.items))
		it.colors = p
	}
	it.owner = d
	d.items = append(d.items, it)
	return nil
}

// Count returns the number of value items (the abscissa is not counted).
func (d *Dataset) Count() int {
	if d == nil {
		return 0
	}
	return len(d.items)
}

// Item returns value item i, or nil when i is out of range.
func (d *Dataset) Item(i int) *Item {
	if d == nil || i < 0 || i >= len(d.items) {
		return nil
	}
	return d.items[i]
}

// Items returns the value items in insertion order. The slice is a copy; the
// items are shared.
func (d *Dataset) Items() []*Item {
	if d == nil {
		return nil
	}
	return slices.Clone(d.items)
}

// Series returns series i under the convention where 0 is the abscissa and
// 1..Count() are the value items. Returns nil out of range.
func (d *Dataset) Series(i int) *Item {
	if i == 0 {
		return d.Abscissa()
	}
	return d.Item(i - 1)
}

// Range returns the smallest and largest sample over all value items. ok is
// false when the dataset has no samples.
func (d *Dataset) Range() (lo, hi float64, ok bool) {
	if d == nil {
		return 0, 0, false
	}
	for _, it := range d.items {
		if it.Len() == 0 {
			continue
		}
		mn, mx := it.Interval()
		if !ok {
			lo, hi, ok = mn, mx, true
			continue
		}
		lo = min(lo, mn)
		hi = max(hi, mx)
	}
	return lo, hi, ok
}

// Attach records holder as the dataset's single owner. It reports false,
// changing nothing, when another holder already owns d. Re-attaching to the
// current holder succeeds.
func (d *Dataset) Attach(holder any) bool {
	if d == nil || holder == nil {
		return false
	}
	if d.holder != nil && d.holder != holder {
		return false
	}
	d.holder = holder
	return true
}

// Release clears the owner if it is holder.
func (d *Dataset) Release(holder any) {
	if d != nil && d.holder == holder {
		d.holder = nil
	}
}

// Attached reports whether the dataset has an owner.
func (d *Dataset) Attached() bool {
	return d != nil && d.holder != nil
}

// Len returns the number of samples per series, i.e. the abscissa length.
func (d *Dataset) Len() int {
	return d.Abscissa().Len()
}

func reject(err *errors.Error) error {
	observability.Diagnostics().OnReject("dataset", string(err.Code), err.Message)
	return err
}
