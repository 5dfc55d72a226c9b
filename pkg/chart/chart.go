// Package chart holds the configuration of a single chart: canvas size,
// background, primary grid and sub-grid, label font, and the dataset being
// drawn.
//
// Setters validate their input. Invalid values are ignored, leaving the chart
// unchanged, and reported to [observability.Diagnostics]; they never panic.
// Getters on a nil *Chart return defensive defaults (opaque white background,
// default grid colour, zero sizes and counts).
//
// A Chart owns its dataset exclusively. Use [Chart.DetachDataset] to hand the
// dataset back to the caller before attaching it elsewhere.
package chart

import (
	"github.com/matzehuels/echart/pkg/colors"
	"github.com/matzehuels/echart/pkg/dataset"
	"github.com/matzehuels/echart/pkg/errors"
	"github.com/matzehuels/echart/pkg/fonts"
	"github.com/matzehuels/echart/pkg/observability"
)

// Defaults applied by New.
const (
	DefaultWidth  = 800
	DefaultHeight = 600

	DefaultBackground   colors.ARGB = 0xff808080
	DefaultGridColor    colors.ARGB = 0xffcccccc
	DefaultSubGridColor colors.ARGB = 0xffe0e0e0

	DefaultGridX = 5
	DefaultGridY = 5
)

// Chart is the configuration consumed by the layout engine.
type Chart struct {
	width, height int
	background    colors.ARGB

	gridX, gridY int
	gridColor    colors.ARGB

	subGridX, subGridY int
	subGridColor       colors.ARGB

	font fonts.Font
	data *dataset.Dataset
}

// New returns a chart with the default configuration and no dataset.
func New() *Chart {
	return &Chart{
		width:        DefaultWidth,
		height:       DefaultHeight,
		background:   DefaultBackground,
		gridX:        DefaultGridX,
		gridY:        DefaultGridY,
		gridColor:    DefaultGridColor,
		subGridColor: DefaultSubGridColor,
		font:         fonts.Default,
	}
}

// SetSize sets the canvas size in pixels. Both dimensions must be positive.
func (c *Chart) SetSize(w, h int) {
	if c == nil {
		return
	}
	if w <= 0 || h <= 0 {
		reject(errors.ErrCodeInvalidSize, "size %dx%d: width and height must be positive", w, h)
		return
	}
	c.width, c.height = w, h
}

// Size returns the canvas size.
func (c *Chart) Size() (w, h int) {
	if c == nil {
		return 0, 0
	}
	return c.width, c.height
}

// SetBackground sets the background colour from 0-255 channels.
func (c *Chart) SetBackground(a, r, g, b uint8) {
	if c == nil {
		return
	}
	c.background = colors.New(a, r, g, b)
}

// Background returns the background colour.
func (c *Chart) Background() colors.ARGB {
	if c == nil {
		return colors.White
	}
	return c.background
}

// SetGrid sets the number of primary grid lines on each axis. Negative counts
// are rejected.
func (c *Chart) SetGrid(x, y int) {
	if c == nil {
		return
	}
	if x < 0 || y < 0 {
		reject(errors.ErrCodeInvalidCount, "grid %dx%d: counts must be non-negative", x, y)
		return
	}
	c.gridX, c.gridY = x, y
}

// Grid returns the primary grid line counts.
func (c *Chart) Grid() (x, y int) {
	if c == nil {
		return 0, 0
	}
	return c.gridX, c.gridY
}

// SetGridColor sets the primary grid colour.
func (c *Chart) SetGridColor(a, r, g, b uint8) {
	if c == nil {
		return
	}
	c.gridColor = colors.New(a, r, g, b)
}

// GridColor returns the primary grid colour.
func (c *Chart) GridColor() colors.ARGB {
	if c == nil {
		return DefaultGridColor
	}
	return c.gridColor
}

// SetSubGrid sets the number of sub-grid lines per primary interval on each
// axis. A count n subdivides every interval into n-1 parts; counts below 2
// disable the sub-grid on that axis. Negative counts are rejected.
func (c *Chart) SetSubGrid(x, y int) {
	if c == nil {
		return
	}
	if x < 0 || y < 0 {
		reject(errors.ErrCodeInvalidCount, "sub-grid %dx%d: counts must be non-negative", x, y)
		return
	}
	c.subGridX, c.subGridY = x, y
}

// SubGrid returns the sub-grid line counts.
func (c *Chart) SubGrid() (x, y int) {
	if c == nil {
		return 0, 0
	}
	return c.subGridX, c.subGridY
}

// SetSubGridColor sets the sub-grid colour.
func (c *Chart) SetSubGridColor(a, r, g, b uint8) {
	if c == nil {
		return
	}
	c.subGridColor = colors.New(a, r, g, b)
}

// SubGridColor returns the sub-grid colour.
func (c *Chart) SubGridColor() colors.ARGB {
	if c == nil {
		return DefaultSubGridColor
	}
	return c.subGridColor
}

// SetFont sets the font used for the title and labels. Empty fields fall
// back to fonts.Default.
func (c *Chart) SetFont(f fonts.Font) {
	if c == nil {
		return
	}
	c.font = f.OrDefault()
}

// Font returns the label font.
func (c *Chart) Font() fonts.Font {
	if c == nil {
		return fonts.Default
	}
	return c.font
}

// SetDataset attaches d. A chart holds one dataset and a dataset belongs to
// one chart: attaching a second dataset without ReplaceDataset or
// DetachDataset, or a dataset held by another chart, returns
// DATASET_ATTACHED and keeps the current state.
func (c *Chart) SetDataset(d *dataset.Dataset) error {
	if c == nil {
		return errors.New(errors.ErrCodeInvalidInput, "chart is nil")
	}
	if d == nil {
		return rejectErr(errors.ErrCodeMissingDataset, "dataset is nil")
	}
	if c.data != nil && c.data != d {
		return rejectErr(errors.ErrCodeDatasetAttached, "chart already has a dataset")
	}
	if !d.Attach(c) {
		return rejectErr(errors.ErrCodeDatasetAttached, "dataset %q is attached to another chart", d.Title())
	}
	c.data = d
	return nil
}

// ReplaceDataset attaches d and returns the previously attached dataset,
// which the caller now owns. A dataset held by another chart is rejected
// with DATASET_ATTACHED: nothing changes and nil is returned.
func (c *Chart) ReplaceDataset(d *dataset.Dataset) *dataset.Dataset {
	if c == nil {
		return nil
	}
	if d != nil && !d.Attach(c) {
		reject(errors.ErrCodeDatasetAttached, "dataset %q is attached to another chart", d.Title())
		return nil
	}
	prev := c.data
	if prev != d {
		prev.Release(c)
	}
	c.data = d
	return prev
}

// DetachDataset removes and returns the attached dataset.
func (c *Chart) DetachDataset() *dataset.Dataset {
	return c.ReplaceDataset(nil)
}

// Dataset returns the attached dataset, or nil.
func (c *Chart) Dataset() *dataset.Dataset {
	if c == nil {
		return nil
	}
	return c.data
}

func reject(code errors.Code, format string, args ...any) {
	_ = rejectErr(code, format, args...)
}

func rejectErr(code errors.Code, format string, args ...any) error {
	err := errors.New(code, format, args...)
	observability.Diagnostics().OnReject("chart", string(code), err.Message)
	return err
}
