// Package colors provides the packed ARGB colour type used throughout echart
// and the fixed default palette assigned to dataset series.
//
// Colours are stored as a single uint32 in AARRGGBB order, the layout the
// rendering backends consume. Helpers convert to and from the hex notation
// used in chart files and to the standard library's [color.NRGBA].
package colors

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ARGB is a colour packed as 0xAARRGGBB.
type ARGB uint32

// Common colours.
const (
	Black       ARGB = 0xff000000
	White       ARGB = 0xffffffff
	Transparent ARGB = 0x00000000
)

// New packs the four 0-255 channels into an ARGB value.
func New(a, r, g, b uint8) ARGB {
	return ARGB(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// A returns the alpha channel.
func (c ARGB) A() uint8 { return uint8(c >> 24) }

// R returns the red channel.
func (c ARGB) R() uint8 { return uint8(c >> 16) }

// G returns the green channel.
func (c ARGB) G() uint8 { return uint8(c >> 8) }

// B returns the blue channel.
func (c ARGB) B() uint8 { return uint8(c) }

// Components unpacks the colour into (a, r, g, b).
func (c ARGB) Components() (a, r, g, b uint8) {
	return c.A(), c.R(), c.G(), c.B()
}

// WithAlpha returns c with its alpha channel replaced.
func (c ARGB) WithAlpha(a uint8) ARGB {
	return New(a, c.R(), c.G(), c.B())
}

// Hex formats the colour as "#aarrggbb".
func (c ARGB) Hex() string {
	return fmt.Sprintf("#%08x", uint32(c))
}

// String implements fmt.Stringer.
func (c ARGB) String() string { return c.Hex() }

// NRGBA converts to the standard library's non-premultiplied colour.
func (c ARGB) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}
}

// Opacity returns alpha as a value in [0, 1].
func (c ARGB) Opacity() float64 { return float64(c.A()) / 255 }

// Parse reads a colour in "#rgb", "#rrggbb" (both opaque) or "#aarrggbb"
// notation. The leading '#' is optional.
func Parse(s string) (ARGB, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty colour")
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}

	alpha := uint8(0xff)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[1:3], 16, 8)
		if err != nil {
			return 0, fmt.Errorf("invalid alpha in %q: %w", s, err)
		}
		alpha = uint8(a)
		s = "#" + s[3:]
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return 0, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return New(alpha, r, g, b), nil
}

// MustParse is like Parse but panics on error. Use only with literals.
func MustParse(s string) ARGB {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Lighten blends c towards white by t (0 keeps c, 1 is white) in Lab space.
// Alpha is preserved.
func Lighten(c ARGB, t float64) ARGB {
	t = max(0, min(1, t))
	switch t {
	case 0:
		return c
	case 1:
		return White.WithAlpha(c.A())
	}
	base := colorful.Color{R: float64(c.R()) / 255, G: float64(c.G()) / 255, B: float64(c.B()) / 255}
	r, g, b := base.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, t).Clamped().RGB255()
	return New(c.A(), r, g, b)
}

// MarshalText encodes the colour as "#aarrggbb".
func (c ARGB) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText accepts any notation understood by Parse.
func (c *ARGB) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
