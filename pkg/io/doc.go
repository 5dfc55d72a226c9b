// Package io reads and writes chart definition files.
//
// # Overview
//
// A chart file describes a complete chart: canvas, grid, font, the abscissa
// and the value series. Files are TOML or JSON with the same structure:
//
//	title = "Sales"
//	kind = "line"          # column | line
//	area = true
//	stacked = false
//
//	[canvas]
//	width = 800
//	height = 600
//	background = "#ffffffff"
//
//	[grid]
//	x = 5
//	y = 5
//	color = "#ffcccccc"
//
//	[subgrid]
//	x = 3
//	y = 3
//
//	[abscissa]
//	title = "Year"
//	values = [2004, 2005, 2006, 2007]
//
//	[[series]]
//	title = "Sales"
//	values = [1000, 1170, 660, 1030]
//	line = "#ff1f77b4"     # optional, area derived when omitted
//
// Colours accept "#rgb", "#rrggbb" and "#aarrggbb". Omitted settings keep the
// chart defaults.
//
// # Loading
//
//	f, err := io.ImportFile("sales.toml")
//	c, err := f.Build()
//	kind, opts, err := f.LayoutOptions()
//	l, err := layout.Build(c, kind, opts...)
//
// Unlike the chart setters, which ignore invalid values, a file that asks for
// an invalid size, a negative grid count or a malformed dataset fails to
// build with a coded error naming the offending setting.
package io
