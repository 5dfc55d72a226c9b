package sink

import (
	"github.com/matzehuels/echart/pkg/render"
	"github.com/matzehuels/echart/pkg/render/layout"
)

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	svgOpts []SVGOption
}

// WithPDFSVGOptions passes options through to the underlying SVG renderer.
func WithPDFSVGOptions(opts ...SVGOption) PDFOption {
	return func(r *pdfRenderer) { r.svgOpts = append(r.svgOpts, opts...) }
}

// RenderPDF renders the layout as PDF via SVG conversion. The Go font is
// embedded in the intermediate SVG.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(l layout.Layout, opts ...PDFOption) ([]byte, error) {
	r := pdfRenderer{svgOpts: []SVGOption{WithEmbeddedFont()}}
	for _, opt := range opts {
		opt(&r)
	}
	svg := RenderSVG(l, r.svgOpts...)
	return render.ToPDF(svg)
}
