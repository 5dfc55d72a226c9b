package layout

import (
	"encoding/json"
	"fmt"
	"io"
)

// Document is the serialization format of a Layout. Each layer carries
// exactly one of Rect, Line, Path or Text, named by Type.
type Document struct {
	Kind    Kind            `json:"kind"`
	Width   float64         `json:"width"`
	Height  float64         `json:"height"`
	Plot    Box             `json:"plot"`
	Stacked bool            `json:"stacked,omitempty"`
	Area    bool            `json:"area,omitempty"`
	Layers  []DocumentLayer `json:"layers"`
}

// DocumentLayer is the serialized form of a Layer.
type DocumentLayer struct {
	Op   Op     `json:"op"`
	Role Role   `json:"role,omitempty"`
	Type string `json:"type"`
	Rect *Rect  `json:"rect,omitempty"`
	Line *Line  `json:"line,omitempty"`
	Path *Path  `json:"path,omitempty"`
	Text *Text  `json:"text,omitempty"`
}

// Export converts a layout to the serialization format.
//
// Use this when you need to serialize the layout for:
//   - JSON file output (via sink.RenderJSON)
//   - API responses
//   - Caching
func (l Layout) Export() Document {
	doc := Document{
		Kind:    l.Kind,
		Width:   l.Width,
		Height:  l.Height,
		Plot:    l.Plot,
		Stacked: l.Stacked,
		Area:    l.Area,
		Layers:  make([]DocumentLayer, 0, len(l.Layers)),
	}
	for _, ly := range l.Layers {
		dl := DocumentLayer{Op: ly.Op, Role: ly.Role, Type: ly.Primitive.Type()}
		switch p := ly.Primitive.(type) {
		case *Rect:
			dl.Rect = p
		case *Line:
			dl.Line = p
		case *Path:
			dl.Path = p
		case *Text:
			dl.Text = p
		}
		doc.Layers = append(doc.Layers, dl)
	}
	return doc
}

// Parse converts a serialized layout back into a Layout.
//
// Use this when you need to render from a previously serialized layout:
//   - Loading from a JSON file
//   - Receiving from the API or the cache
func Parse(doc Document) (Layout, error) {
	kind, err := ParseKind(string(doc.Kind))
	if err != nil {
		return Layout{}, err
	}
	l := Layout{
		Kind:    kind,
		Width:   doc.Width,
		Height:  doc.Height,
		Plot:    doc.Plot,
		Stacked: doc.Stacked,
		Area:    doc.Area,
		Layers:  make([]Layer, 0, len(doc.Layers)),
	}
	for i, dl := range doc.Layers {
		var p Primitive
		switch {
		case dl.Type == "rect" && dl.Rect != nil:
			p = dl.Rect
		case dl.Type == "line" && dl.Line != nil:
			p = dl.Line
		case dl.Type == "path" && dl.Path != nil:
			p = dl.Path
		case dl.Type == "text" && dl.Text != nil:
			p = dl.Text
		default:
			return Layout{}, fmt.Errorf("layer %d: missing or unknown primitive %q", i, dl.Type)
		}
		if dl.Op != OpReplace && dl.Op != OpBlend {
			return Layout{}, fmt.Errorf("layer %d: unknown op %q", i, dl.Op)
		}
		l.Layers = append(l.Layers, Layer{Op: dl.Op, Role: dl.Role, Primitive: p})
	}
	return l, nil
}

// ReadJSON decodes a layout written by WriteJSON.
func ReadJSON(r io.Reader) (Layout, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Layout{}, fmt.Errorf("decode layout: %w", err)
	}
	return Parse(doc)
}

// WriteJSON encodes the layout as indented JSON.
func WriteJSON(w io.Writer, l Layout) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(l.Export())
}
