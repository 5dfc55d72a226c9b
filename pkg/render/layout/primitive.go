package layout

import (
	"github.com/matzehuels/echart/pkg/colors"
	"github.com/matzehuels/echart/pkg/fonts"
)

// Op is the compositing operator of a layer.
type Op string

const (
	// OpReplace overwrites the destination pixels, alpha included.
	OpReplace Op = "replace"
	// OpBlend composites source-over.
	OpBlend Op = "blend"
)

// Role tags what a layer depicts. Sinks ignore it; it exists for tests,
// inspection and the JSON form.
type Role string

const (
	RoleBackground Role = "background"
	RoleTitle      Role = "title"
	RoleLabel      Role = "label"
	RoleTick       Role = "tick"
	RoleGrid       Role = "grid"
	RoleSubGrid    Role = "subgrid"
	RoleBorder     Role = "border"
	RoleBar        Role = "bar"
	RoleArea       Role = "area"
	RoleSeries     Role = "series"
)

// Layer is one primitive plus its compositing operator. Layers are drawn in
// slice order.
type Layer struct {
	Op        Op
	Role      Role
	Primitive Primitive
}

// Primitive is a drawable shape: *Rect, *Line, *Path or *Text.
type Primitive interface {
	// Type returns the wire name of the primitive ("rect", "line", "path", "text").
	Type() string
	isPrimitive()
}

// Point is a position in pixels, origin top-left, Y growing downwards.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Box is an axis-aligned rectangle.
type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Right returns the X coordinate of the right edge.
func (b Box) Right() float64 { return b.X + b.W }

// Bottom returns the Y coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.Y + b.H }

// Rect is a filled or stroked rectangle.
type Rect struct {
	Box
	Color       colors.ARGB `json:"color"`
	Filled      bool        `json:"filled"`
	StrokeWidth float64     `json:"stroke_width,omitempty"`
}

// Line is a straight stroked segment.
type Line struct {
	From  Point       `json:"from"`
	To    Point       `json:"to"`
	Color colors.ARGB `json:"color"`
	Width float64     `json:"width"`
}

// Dash is a stroke pattern: On pixels drawn, Off pixels skipped.
type Dash struct {
	On  float64 `json:"on"`
	Off float64 `json:"off"`
}

// Path is a polyline: the first point is a move-to, the rest line-to. A
// filled path is implicitly closed.
type Path struct {
	Points      []Point     `json:"points"`
	Closed      bool        `json:"closed,omitempty"`
	Filled      bool        `json:"filled"`
	Color       colors.ARGB `json:"color"`
	StrokeWidth float64     `json:"stroke_width,omitempty"`
	Dash        *Dash       `json:"dash,omitempty"`
}

// Text is a single measured line of text. X, Y is the top-left corner of
// its W x H box; Baseline is the offset from Y to the baseline.
type Text struct {
	Text     string      `json:"text"`
	Font     fonts.Font  `json:"font"`
	Color    colors.ARGB `json:"color"`
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	W        float64     `json:"w"`
	H        float64     `json:"h"`
	Baseline float64     `json:"baseline"`
}

// CenterX returns the horizontal centre of the text box.
func (t *Text) CenterX() float64 { return t.X + t.W/2 }

func (*Rect) Type() string { return "rect" }
func (*Line) Type() string { return "line" }
func (*Path) Type() string { return "path" }
func (*Text) Type() string { return "text" }

func (*Rect) isPrimitive() {}
func (*Line) isPrimitive() {}
func (*Path) isPrimitive() {}
func (*Text) isPrimitive() {}
