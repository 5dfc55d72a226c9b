// Package fonts provides the font descriptions, font data and text metrics
// used to place and draw chart labels.
//
// The Go font family (golang.org/x/image/font/gofont) is compiled into the
// binary, so the layout engine measures text with the same outlines the SVG
// and PNG sinks draw with.
package fonts

import (
	"encoding/base64"
	"strings"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Font is a family name plus a size in pixels.
type Font struct {
	Family string  `json:"family" toml:"family"`
	Size   float64 `json:"size" toml:"size"`
}

// Default is the font used when a chart does not set one.
var Default = Font{Family: FamilyRegular, Size: 16}

// Embedded families.
const (
	FamilyRegular = "Go"
	FamilyBold    = "Go Bold"
	FamilyMono    = "Go Mono"
)

// FallbackFontFamily is the CSS font-family list emitted in SVG output.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Arial, sans-serif`

// OrDefault fills an empty family or non-positive size from Default.
func (f Font) OrDefault() Font {
	if f.Family == "" {
		f.Family = Default.Family
	}
	if f.Size <= 0 {
		f.Size = Default.Size
	}
	return f
}

// TTF returns the TrueType data for a family. Unknown families resolve to
// the regular face.
func TTF(family string) []byte {
	switch normalize(family) {
	case "go bold":
		return gobold.TTF
	case "go mono", "monospace":
		return gomono.TTF
	default:
		return goregular.TTF
	}
}

// CSSFamily returns the CSS font-family value for a family.
func CSSFamily(family string) string {
	if family == "" {
		return FallbackFontFamily
	}
	return "'" + family + "', " + FallbackFontFamily
}

// Cache for base64-encoded fonts (computed once per family on first access).
var (
	base64Mu    sync.Mutex
	base64Cache = map[string]string{}
)

// TTFBase64 returns the font data for a family as a base64 string, suitable
// for an SVG @font-face data URL. The result is cached.
func TTFBase64(family string) string {
	key := normalize(family)
	base64Mu.Lock()
	defer base64Mu.Unlock()
	if s, ok := base64Cache[key]; ok {
		return s
	}
	s := base64.StdEncoding.EncodeToString(TTF(family))
	base64Cache[key] = s
	return s
}

func normalize(family string) string {
	return strings.ToLower(strings.TrimSpace(family))
}
