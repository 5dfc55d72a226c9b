package sink

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/echart/pkg/fonts"
	"github.com/matzehuels/echart/pkg/render/layout"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64
}

// WithScale sets the PNG scale factor (default 1.0; 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// RenderPNG rasterises the layout with gg. Replace layers overwrite the
// pixels they cover, alpha included; blend layers composite source-over.
// Text is drawn with the embedded Go fonts.
func RenderPNG(l layout.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1}
	for _, opt := range opts {
		opt(&r)
	}

	w := int(math.Ceil(l.Width * r.scale))
	h := int(math.Ceil(l.Height * r.scale))
	dc := gg.NewContext(w, h)
	dc.Scale(r.scale, r.scale)

	// A private measurer: font faces are not safe for concurrent use.
	faces := fonts.NewFaceMeasurer()

	for _, ly := range l.Layers {
		if ly.Op == layout.OpReplace {
			if rect, ok := ly.Primitive.(*layout.Rect); ok && rect.Filled {
				r.replace(dc, rect)
				continue
			}
		}
		r.draw(dc, faces, ly.Primitive)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r pngRenderer) replace(dc *gg.Context, rect *layout.Rect) {
	dst, ok := dc.Image().(draw.Image)
	if !ok {
		return
	}
	bounds := image.Rect(
		int(math.Floor(rect.X*r.scale)), int(math.Floor(rect.Y*r.scale)),
		int(math.Ceil(rect.Right()*r.scale)), int(math.Ceil(rect.Bottom()*r.scale)),
	)
	draw.Draw(dst, bounds, image.NewUniform(rect.Color.NRGBA()), image.Point{}, draw.Src)
}

func (r pngRenderer) draw(dc *gg.Context, faces *fonts.FaceMeasurer, p layout.Primitive) {
	switch p := p.(type) {
	case *layout.Rect:
		dc.DrawRectangle(p.X, p.Y, p.W, p.H)
		r.finish(dc, p.Color.NRGBA(), p.Filled, p.StrokeWidth)
	case *layout.Line:
		dc.DrawLine(p.From.X, p.From.Y, p.To.X, p.To.Y)
		r.finish(dc, p.Color.NRGBA(), false, p.Width)
	case *layout.Path:
		if len(p.Points) == 0 {
			return
		}
		dc.MoveTo(p.Points[0].X, p.Points[0].Y)
		for _, pt := range p.Points[1:] {
			dc.LineTo(pt.X, pt.Y)
		}
		if p.Closed || p.Filled {
			dc.ClosePath()
		}
		if p.Dash != nil {
			dc.SetDash(p.Dash.On*r.scale, p.Dash.Off*r.scale)
		}
		r.finish(dc, p.Color.NRGBA(), p.Filled, p.StrokeWidth)
		dc.SetDash()
	case *layout.Text:
		f := p.Font.OrDefault()
		f.Size *= r.scale
		dc.SetFontFace(faces.Face(f))
		dc.SetColor(p.Color.NRGBA())
		dc.DrawString(p.Text, p.X, p.Y+p.Baseline)
	}
}

func (r pngRenderer) finish(dc *gg.Context, c color.Color, filled bool, width float64) {
	dc.SetColor(c)
	if filled {
		dc.Fill()
		return
	}
	if width <= 0 {
		width = 1
	}
	dc.SetLineWidth(width * r.scale)
	dc.Stroke()
}
