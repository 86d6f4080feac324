// Package fonts provides the embedded typefaces used for figure text.
//
// The Go fonts ship inside golang.org/x/image, so every figure renders with
// the same glyphs regardless of what is installed on the host. Each
// typeface is parsed once.
package fonts

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Weight selects one of the embedded typefaces.
type Weight int

const (
	Regular Weight = iota
	Bold
	Italic
	Mono
)

// String returns the weight's name.
func (w Weight) String() string {
	switch w {
	case Regular:
		return "regular"
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case Mono:
		return "mono"
	default:
		return fmt.Sprintf("weight(%d)", int(w))
	}
}

func (w Weight) ttf() []byte {
	switch w {
	case Bold:
		return gobold.TTF
	case Italic:
		return goitalic.TTF
	case Mono:
		return gomono.TTF
	default:
		return goregular.TTF
	}
}

var (
	mu     sync.Mutex
	parsed = map[Weight]*truetype.Font{}
)

// NewFace returns a face for the given weight at size points (72 DPI, so
// one point is one pixel before canvas scaling).
//
// The parsed font is shared, the face is not: a font.Face caches glyph
// masks and must not be used by two goroutines at once.
func NewFace(w Weight, size float64) (font.Face, error) {
	mu.Lock()
	f, err := parseLocked(w)
	mu.Unlock()
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{Size: size, Hinting: font.HintingFull}), nil
}

func parseLocked(w Weight) (*truetype.Font, error) {
	if f, ok := parsed[w]; ok {
		return f, nil
	}
	f, err := truetype.Parse(w.ttf())
	if err != nil {
		return nil, fmt.Errorf("parse %s font: %w", w, err)
	}
	parsed[w] = f
	return f, nil
}
