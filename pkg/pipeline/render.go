package pipeline

import (
	"fmt"

	"github.com/matzehuels/echart/pkg/render/layout"
	"github.com/matzehuels/echart/pkg/render/sink"
)

// Render draws the layout in every requested format.
func Render(l layout.Layout, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderFormat(l, format, opts)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat draws the layout in one format.
func RenderFormat(l layout.Layout, format string, opts Options) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatSVG:
		data = sink.RenderSVG(l, svgOptions(opts)...)
	case FormatPNG:
		data, err = sink.RenderPNG(l, sink.WithScale(opts.Scale))
	case FormatPDF:
		data, err = sink.RenderPDF(l)
	case FormatJSON:
		data, err = sink.RenderJSON(l)
	default:
		return nil, ValidateFormat(format)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return data, nil
}

func svgOptions(opts Options) []sink.SVGOption {
	var out []sink.SVGOption
	if opts.EmbedFont {
		out = append(out, sink.WithEmbeddedFont())
	}
	return out
}
