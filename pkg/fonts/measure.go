package fonts

import (
	"math"
	"sync"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Measurer reports the bounding box of a single line of text.
type Measurer interface {
	Measure(text string, f Font) (w, h float64)
}

// FaceMeasurer measures text with the embedded Go fonts. Faces are created
// lazily per family and size and cached. Measure is safe for concurrent use.
type FaceMeasurer struct {
	mu    sync.Mutex
	fonts map[string]*sfnt.Font
	faces map[faceKey]font.Face
}

type faceKey struct {
	family string
	size   float64
}

// NewFaceMeasurer returns an empty FaceMeasurer.
func NewFaceMeasurer() *FaceMeasurer {
	return &FaceMeasurer{
		fonts: make(map[string]*sfnt.Font),
		faces: make(map[faceKey]font.Face),
	}
}

var (
	sharedOnce sync.Once
	shared     *FaceMeasurer
)

// Shared returns a process-wide FaceMeasurer.
func Shared() *FaceMeasurer {
	sharedOnce.Do(func() { shared = NewFaceMeasurer() })
	return shared
}

// Measure returns the advance width and line height (ascent + descent) of
// text. The empty string has zero width but a full line height.
func (m *FaceMeasurer) Measure(text string, f Font) (w, h float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	face := m.face(f)
	metrics := face.Metrics()
	h = toFloat(metrics.Ascent + metrics.Descent)
	if text == "" {
		return 0, h
	}
	return toFloat(font.MeasureString(face, text)), h
}

// Face returns the cached face for f. If the font data cannot be parsed the
// fixed 7x13 basic face is returned. Faces are not safe for concurrent use;
// a goroutine drawing with a face should own its FaceMeasurer.
func (m *FaceMeasurer) Face(f Font) font.Face {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.face(f)
}

func (m *FaceMeasurer) face(f Font) font.Face {
	f = f.OrDefault()
	key := faceKey{family: normalize(f.Family), size: f.Size}

	if face, ok := m.faces[key]; ok {
		return face
	}

	sf, ok := m.fonts[key.family]
	if !ok {
		parsed, err := opentype.Parse(TTF(f.Family))
		if err != nil {
			return basicfont.Face7x13
		}
		sf = parsed
		m.fonts[key.family] = sf
	}

	face, err := opentype.NewFace(sf, &opentype.FaceOptions{
		Size:    f.Size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	m.faces[key] = face
	return face
}

// Ascent returns the distance from the top of a line box to the baseline.
func (m *FaceMeasurer) Ascent(f Font) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return toFloat(m.face(f).Metrics().Ascent)
}

// Monospace is a deterministic Measurer: every rune advances 0.6 of the font
// size and lines are exactly one font size tall. Used where output must not
// depend on font data.
type Monospace struct{}

// Measure implements Measurer.
func (Monospace) Measure(text string, f Font) (w, h float64) {
	f = f.OrDefault()
	return float64(utf8.RuneCountInString(text)) * f.Size * 0.6, f.Size
}

func toFloat(v fixed.Int26_6) float64 {
	return math.Ceil(float64(v) / 64)
}
