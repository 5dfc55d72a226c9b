// Package sink draws chart layouts into output formats.
//
// # Overview
//
// A sink consumes the ordered layers of a [layout.Layout] and produces bytes:
//
//   - [RenderSVG]: SVG 1.1 document, one element per layer
//   - [RenderPNG]: raster image drawn with gg
//   - [RenderPDF]: SVG converted with rsvg-convert
//   - [RenderJSON]: the layout document itself
//
// Sinks never reorder layers. Replace layers overwrite the pixels they cover
// (alpha included) where the format allows it; SVG has no such operation, so
// replace layers are drawn first and with full coverage.
//
// # Options
//
// Each sink takes functional options:
//
//	svg := sink.RenderSVG(l, sink.WithEmbeddedFont(), sink.WithRoleClasses())
//	png, err := sink.RenderPNG(l, sink.WithScale(2))
//	pdf, err := sink.RenderPDF(l, sink.WithPDFSVGOptions(sink.WithoutBackground()))
//
// [layout.Layout]: github.com/matzehuels/echart/pkg/render/layout#Layout
package sink
