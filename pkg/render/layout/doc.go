// Package layout computes chart geometry.
//
// # Overview
//
// Given a configured [chart.Chart] and its dataset, [Build] produces a
// [Layout]: the canvas size, the final plot area and an ordered list of
// [Layer]s. Each layer pairs a drawing primitive ([Rect], [Line], [Path],
// [Text]) with a compositing operator ([OpReplace] or [OpBlend]). Layer order
// is compositing order; the background is always layer 0.
//
// The package never touches pixels. Sinks in [render/sink] turn a Layout
// into SVG, PNG, PDF or JSON.
//
// # Chart Kinds
//
//   - [KindColumn]: grouped bars, one category per abscissa sample. Bars are
//     scaled against the dataset-wide range, always including zero.
//   - [KindLine]: one polyline per value series, each normalised to its own
//     min/max unless [WithSharedScale] is given. [WithArea] fills the region
//     below each series; [WithStacked] plots cumulative sums.
//
// Both kinds share a [Frame], which owns the canvas, the shrinking content
// area and the grid/sub-grid/label/border helpers. A kind only adds the data
// geometry.
//
// # Building a Layout
//
//	c := chart.New()
//	c.SetDataset(d)
//	l, err := layout.Build(c, layout.KindLine,
//	    layout.WithArea(),
//	    layout.WithStacked(),
//	)
//
// # Options
//
//   - [WithArea]: Filled areas below line series (alpha [AreaAlpha])
//   - [WithStacked]: Cumulative series via [dataset.Stack]
//   - [WithSharedScale]: One value scale for all line series
//   - [WithMeasurer]: Text metrics source (default [fonts.Shared])
//   - [WithFont]: Override the chart font
//   - [WithTitleBand]: Fixed title band height for column charts
//   - [WithGridOptions]: Column chart frame (labels, inset, outline)
//
// # Grid Geometry
//
// N primary lines along an extent S sit at origin + i*S/(N-1). A single line
// sits at the origin and N = 0 draws nothing. Sub-grid lines split every
// primary interval into (sub-1) parts and are dashed [SubGridDash].
//
// # Integration
//
//	io.ImportFile → (*io.File).Build → layout.Build → sink.RenderSVG
//
// [render/sink]: github.com/matzehuels/echart/pkg/render/sink
package layout
