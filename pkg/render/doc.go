// Package render turns chart layouts into output files.
//
// # Overview
//
// Rendering is split in two stages:
//
//   - [layout]: computes the ordered drawing primitives of a chart
//   - [sink]: draws a layout as SVG, PNG, PDF or JSON
//
// This package itself only holds the format conversion shared by sinks.
//
// # Format Conversion
//
// [ToPDF] converts any SVG to PDF using the external rsvg-convert tool (from
// librsvg):
//
//	svg := sink.RenderSVG(l)
//	pdf, err := render.ToPDF(svg)
//
// PNG output does not need rsvg-convert; [sink.RenderPNG] rasterises the
// layout directly.
//
// [layout]: github.com/matzehuels/echart/pkg/render/layout
// [sink]: github.com/matzehuels/echart/pkg/render/sink
// [sink.RenderPNG]: github.com/matzehuels/echart/pkg/render/sink#RenderPNG
package render
