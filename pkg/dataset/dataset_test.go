package dataset_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/echart/pkg/colors"
	"github.com/matzehuels/echart/pkg/dataset"
	"github.com/matzehuels/echart/pkg/errors"
	"github.com/matzehuels/echart/pkg/observability"
)

func salesDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	d := dataset.New()
	d.SetTitle("Sales")
	require.NoError(t, d.SetAbscissa(dataset.FromValues("Year", 2004, 2005, 2006, 2007)))
	require.NoError(t, d.Append(dataset.FromValues("Sales", 1000, 1170, 660, 1030)))
	require.NoError(t, d.Append(dataset.FromValues("Expenses", 400, 460, 1120, 540)))
	return d
}

func TestItemMinMaxIndependentOfOrder(t *testing.T) {
	values := []float64{3.5, -2, 17, 0, 17, -8.25, 4}
	r := rand.New(rand.NewSource(1))

	for range 10 {
		r.Shuffle(len(values), func(i, j int) { values[i], values[j] = values[j], values[i] })
		it := dataset.FromValues("", values...)
		lo, hi := it.Interval()
		assert.Equal(t, -8.25, lo)
		assert.Equal(t, 17.0, hi)
	}
}

func TestItemFirstSampleSeedsBounds(t *testing.T) {
	it := dataset.NewItem()
	lo, hi := it.Interval()
	assert.Zero(t, lo)
	assert.Zero(t, hi)

	it.Add(42)
	lo, hi = it.Interval()
	assert.Equal(t, 42.0, lo, "a positive first sample must not keep min at 0")
	assert.Equal(t, 42.0, hi)
}

func TestItemValuesIsCopy(t *testing.T) {
	it := dataset.FromValues("x", 1, 2, 3)
	vs := it.Values()
	vs[0] = 99
	assert.Equal(t, 1.0, it.Value(0))
	assert.Equal(t, 3, it.Len())
}

func TestItemNilReceiver(t *testing.T) {
	var it *dataset.Item
	it.Add(1)
	it.SetTitle("x")
	it.SetColors(colors.Pair{Line: colors.Black})
	assert.Equal(t, 0, it.Len())
	assert.Empty(t, it.Title())
	assert.Nil(t, it.Values())
	assert.Nil(t, it.Clone())
}

func TestItemEmptyTitleIgnored(t *testing.T) {
	it := dataset.FromValues("kept")
	it.SetTitle("")
	assert.Equal(t, "kept", it.Title())
}

func TestAppendAssignsPalette(t *testing.T) {
	d := salesDataset(t)
	for k := range d.Count() {
		want, ok := colors.Default(k)
		require.True(t, ok)
		assert.Equal(t, want, d.Item(k).Colors(), "item %d", k)
	}
}

func TestAppendKeepsExplicitColors(t *testing.T) {
	d := dataset.New()
	require.NoError(t, d.SetAbscissa(dataset.FromValues("", 1, 2)))

	custom := colors.Pair{Line: 0xff123456, Area: 0xff654321}
	it := dataset.FromValues("custom", 5, 6)
	it.SetColors(custom)
	require.NoError(t, d.Append(it))
	assert.Equal(t, custom, d.Item(0).Colors())
}

func TestAppendLengthMismatchLeavesCountUnchanged(t *testing.T) {
	d := salesDataset(t)
	before := d.Count()

	for _, n := range []int{0, 1, 3, 5, 10} {
		err := d.Append(dataset.FromValues("bad", make([]float64, n)...))
		require.Error(t, err, "n=%d", n)
		assert.True(t, errors.Is(err, errors.ErrCodeLengthMismatch))
		assert.Equal(t, before, d.Count())
	}
}

func TestAppendSaturatesAtMaxItems(t *testing.T) {
	d := dataset.New()
	require.NoError(t, d.SetAbscissa(dataset.FromValues("", 1, 2, 3)))

	for k := range dataset.MaxItems {
		require.NoError(t, d.Append(dataset.FromValues("", float64(k), 0, 1)))
	}
	require.Equal(t, 20, d.Count())

	err := d.Append(dataset.FromValues("21st", 1, 2, 3))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeTooManyItems))
	assert.Equal(t, 20, d.Count())
}

func TestAppendRequiresAbscissa(t *testing.T) {
	d := dataset.New()
	err := d.Append(dataset.FromValues("", 1))
	assert.True(t, errors.Is(err, errors.ErrCodeMissingAbscissa))
	assert.Zero(t, d.Count())
}

func TestAppendRejectsOwnedItem(t *testing.T) {
	a := salesDataset(t)
	b := dataset.New()
	require.NoError(t, b.SetAbscissa(dataset.FromValues("", 1, 2, 3, 4)))

	err := b.Append(a.Item(0))
	assert.True(t, errors.Is(err, errors.ErrCodeItemOwned))
	assert.Zero(t, b.Count())

	require.NoError(t, b.Append(a.Item(0).Clone()))
}

func TestAddToOwnedItemIsRejected(t *testing.T) {
	observability.Reset()
	defer observability.Reset()
	rec := &diagnostics{}
	observability.SetDiagnosticHooks(rec)

	d := salesDataset(t)
	d.Item(1).Add(4)
	d.Abscissa().Add(2008)

	assert.Equal(t, 4, d.Item(1).Len())
	assert.Equal(t, 4, d.Abscissa().Len())
	lo, hi := d.Item(1).Interval()
	assert.Equal(t, 400.0, lo)
	assert.Equal(t, 1120.0, hi)
	assert.Equal(t, []string{"ITEM_OWNED", "ITEM_OWNED"}, rec.codes)

	clone := d.Item(1).Clone()
	clone.Add(4)
	assert.Equal(t, 5, clone.Len(), "clones are unowned")
}

func TestSetAbscissaFirstWins(t *testing.T) {
	d := dataset.New()
	first := dataset.FromValues("first", 1, 2)
	require.NoError(t, d.SetAbscissa(first))

	err := d.SetAbscissa(dataset.FromValues("second", 1, 2, 3))
	assert.True(t, errors.Is(err, errors.ErrCodeAbscissaSet))
	assert.Same(t, first, d.Abscissa())
}

func TestRejectionsReachDiagnostics(t *testing.T) {
	observability.Reset()
	defer observability.Reset()

	rec := &diagnostics{}
	observability.SetDiagnosticHooks(rec)

	d := salesDataset(t)
	_ = d.Append(dataset.FromValues("short", 1))
	_ = d.SetAbscissa(dataset.FromValues("again", 1))

	assert.Equal(t, []string{"LENGTH_MISMATCH", "ABSCISSA_ALREADY_SET"}, rec.codes)
}

func TestItemAndSeriesIndexing(t *testing.T) {
	d := salesDataset(t)

	assert.Equal(t, "Year", d.Series(0).Title())
	assert.Equal(t, "Sales", d.Series(1).Title())
	assert.Same(t, d.Item(0), d.Series(1))
	assert.Nil(t, d.Item(2))
	assert.Nil(t, d.Item(-1))
	assert.Nil(t, d.Series(3))
	assert.Len(t, d.Items(), 2)
	assert.Equal(t, 4, d.Len())
}

func TestRange(t *testing.T) {
	d := salesDataset(t)
	lo, hi, ok := d.Range()
	require.True(t, ok)
	assert.Equal(t, 400.0, lo)
	assert.Equal(t, 1170.0, hi)

	_, _, ok = dataset.New().Range()
	assert.False(t, ok)
}

type diagnostics struct{ codes []string }

func (d *diagnostics) OnReject(_, code, _ string) { d.codes = append(d.codes, code) }
