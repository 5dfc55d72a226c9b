// Package pkg provides the libraries behind echart, a small engine that lays
// out and renders line and column charts.
//
// # Overview
//
// A chart is a canvas with a grid, a sub-grid, a font and an attached
// dataset: one abscissa plus any number of value series. The layout engine
// turns a chart into an ordered list of drawing layers (rectangles, lines,
// paths and text), and sinks turn layers into SVG, PNG, PDF or JSON.
//
//	Chart file (TOML/JSON)
//	         ↓
//	    [io] package (decode + validate)
//	         ↓
//	    [chart], [dataset] packages (chart model)
//	         ↓
//	    [render/layout] package (frame + plotter → layers)
//	         ↓
//	    [render/sink] package (SVG/PNG/PDF/JSON)
//
// [pipeline] ties these together with caching and is shared by the CLI and
// the HTTP server.
//
// # Quick Start
//
//	d := dataset.New()
//	d.SetAbscissa(dataset.FromValues("Year", 2004, 2005, 2006, 2007))
//	d.Append(dataset.FromValues("Sales", 1000, 1170, 660, 1030))
//
//	c := chart.New()
//	c.SetGrid(5, 5)
//	c.SetDataset(d)
//
//	l, _ := layout.Build(c, layout.KindLine, layout.WithArea())
//	svg := sink.RenderSVG(l)
//
// # Main Packages
//
// [chart] - The chart model: size, background, grid and sub-grid, font and
// the attached dataset. Setters ignore invalid values.
//
// [dataset] - Abscissa and value series with their colours. Items belong to
// at most one dataset.
//
// [colors] - ARGB colours, hex parsing and the default series palette.
//
// [fonts] - Font descriptions and text measurement.
//
// [render/layout] - The frame (title, axes, grid, labels) and one plotter per
// chart kind.
//
// [render/sink] - Output formats.
//
// [io] - Chart definition files.
//
// [cache] - File, Redis and null caches for layouts and artifacts.
//
// [observability] - Hooks for cache, pipeline, HTTP and diagnostic events.
//
// [errors] - Coded errors shared by every package.
//
// [chart]: https://pkg.go.dev/github.com/matzehuels/echart/pkg/chart
// [dataset]: https://pkg.go.dev/github.com/matzehuels/echart/pkg/dataset
// [colors]: https://pkg.go.dev/github.com/matzehuels/echart/pkg/colors
// [fonts]: https://pkg.go.dev/github.com/matzehuels/echart/pkg/fonts
// [render/layout]: https://pkg.go.dev/github.com/matzehuels/echart/pkg/render/layout
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/echart/pkg/render/sink
// [io]: https://pkg.go.dev/github.com/matzehuels/echart/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/echart/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/echart/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/echart/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/echart/pkg/errors
package pkg
