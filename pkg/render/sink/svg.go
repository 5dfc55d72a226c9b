package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/echart/pkg/colors"
	"github.com/matzehuels/echart/pkg/fonts"
	"github.com/matzehuels/echart/pkg/render/layout"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	embedFont    bool
	skipReplace  bool
	includeRoles bool
	fontFamilies map[string]bool
}

// WithEmbeddedFont inlines the TrueType data of every font used by text
// layers as an @font-face rule, so the SVG renders with the outlines the
// layout was measured with.
func WithEmbeddedFont() SVGOption { return func(r *svgRenderer) { r.embedFont = true } }

// WithoutBackground omits replace layers, leaving the canvas transparent.
func WithoutBackground() SVGOption { return func(r *svgRenderer) { r.skipReplace = true } }

// WithRoleClasses adds class="<role>" to every element.
func WithRoleClasses() SVGOption { return func(r *svgRenderer) { r.includeRoles = true } }

// RenderSVG draws the layout as an SVG document. Layers are emitted in order;
// SVG has no replace operator, so replace layers are drawn like any other and
// rely on being first.
func RenderSVG(l layout.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{fontFamilies: map[string]bool{}}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		num(l.Width), num(l.Height), num(l.Width), num(l.Height))

	if r.embedFont {
		r.renderFontFaces(&buf, l)
	}

	for _, ly := range l.Layers {
		if r.skipReplace && ly.Op == layout.OpReplace {
			continue
		}
		r.renderLayer(&buf, ly)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderFontFaces(buf *bytes.Buffer, l layout.Layout) {
	for _, t := range layout.Collect[*layout.Text](l) {
		r.fontFamilies[t.Font.OrDefault().Family] = true
	}
	if len(r.fontFamilies) == 0 {
		return
	}
	buf.WriteString("  <defs><style>\n")
	for _, family := range slices.Sorted(maps.Keys(r.fontFamilies)) {
		fmt.Fprintf(buf, "    @font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s) format('truetype'); }\n",
			family, fonts.TTFBase64(family))
	}
	buf.WriteString("  </style></defs>\n")
}

func (r *svgRenderer) renderLayer(buf *bytes.Buffer, ly layout.Layer) {
	class := ""
	if r.includeRoles && ly.Role != "" {
		class = fmt.Sprintf(` class="%s"`, ly.Role)
	}

	switch p := ly.Primitive.(type) {
	case *layout.Rect:
		fmt.Fprintf(buf, `  <rect%s x="%s" y="%s" width="%s" height="%s" %s/>`+"\n",
			class, num(p.X), num(p.Y), num(p.W), num(p.H), paint(p.Color, p.Filled, p.StrokeWidth))
	case *layout.Line:
		fmt.Fprintf(buf, `  <line%s x1="%s" y1="%s" x2="%s" y2="%s" %s/>`+"\n",
			class, num(p.From.X), num(p.From.Y), num(p.To.X), num(p.To.Y), paint(p.Color, false, p.Width))
	case *layout.Path:
		attrs := paint(p.Color, p.Filled, p.StrokeWidth)
		if p.Dash != nil {
			attrs += fmt.Sprintf(` stroke-dasharray="%s %s"`, num(p.Dash.On), num(p.Dash.Off))
		}
		fmt.Fprintf(buf, `  <path%s d="%s" %s/>`+"\n", class, pathData(p), attrs)
	case *layout.Text:
		f := p.Font.OrDefault()
		fmt.Fprintf(buf, `  <text%s x="%s" y="%s" font-family="%s" font-size="%s" fill="%s"%s>`,
			class, num(p.X), num(p.Y+p.Baseline), escapeAttr(fonts.CSSFamily(f.Family)), num(f.Size),
			rgb(p.Color), opacity("fill-opacity", p.Color))
		_ = xml.EscapeText(buf, []byte(p.Text))
		buf.WriteString("</text>\n")
	}
}

func pathData(p *layout.Path) string {
	var sb strings.Builder
	for i, pt := range p.Points {
		if i == 0 {
			sb.WriteString("M")
		} else {
			sb.WriteString(" L")
		}
		sb.WriteString(num(pt.X))
		sb.WriteByte(' ')
		sb.WriteString(num(pt.Y))
	}
	if p.Closed || p.Filled {
		sb.WriteString(" Z")
	}
	return sb.String()
}

// paint returns the fill/stroke attributes of a shape.
func paint(c colors.ARGB, filled bool, width float64) string {
	if filled {
		return fmt.Sprintf(`fill="%s"%s`, rgb(c), opacity("fill-opacity", c))
	}
	if width <= 0 {
		width = 1
	}
	return fmt.Sprintf(`fill="none" stroke="%s" stroke-width="%s"%s`, rgb(c), num(width), opacity("stroke-opacity", c))
}

func rgb(c colors.ARGB) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R(), c.G(), c.B())
}

func opacity(attr string, c colors.ARGB) string {
	if c.A() == 0xff {
		return ""
	}
	return fmt.Sprintf(` %s="%.3f"`, attr, c.Opacity())
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func escapeAttr(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
