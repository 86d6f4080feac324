// Package palette holds the named colors and colormaps shared by figures.
//
// Colors are stored as hex strings so figure code reads like the palette
// tables it replaces; parsing and blending go through go-colorful.
package palette

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Paper palette. Border colors are saturated; fills are derived with
// [Lighten] so every box family stays consistent.
const (
	Ink      = "#222222"
	Muted    = "#6b6b6b"
	Grid     = "#e3e3e3"
	Paper    = "#ffffff"
	Blue     = "#3b6fb6"
	Orange   = "#e07b39"
	Green    = "#4a9a5b"
	Red      = "#c44e52"
	Purple   = "#8172b2"
	Teal     = "#2a9d8f"
	Gold     = "#d4a72c"
	Slate    = "#5c6b7a"
	LightBox = "#f4f6f9"
)

// Series is the default cycle for multi-series charts.
var Series = []string{Blue, Orange, Green, Red, Purple, Teal}

// Parse converts a hex string ("#rrggbb" or "#rgb") to a color.
func Parse(hex string) (colorful.Color, error) {
	c, err := colorful.Hex(expand(hex))
	if err != nil {
		return colorful.Color{}, fmt.Errorf("parse color %q: %w", hex, err)
	}
	return c, nil
}

// MustParse is like [Parse] but panics on malformed input. It is meant for
// the package-level constants above.
func MustParse(hex string) colorful.Color {
	c, err := Parse(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// Lighten blends hex toward white by amount (0 keeps the color, 1 yields
// white). The blend happens in Lab space so hues do not drift.
func Lighten(hex string, amount float64) string {
	c, err := Parse(hex)
	if err != nil {
		return hex
	}
	if amount <= 0 {
		return c.Hex()
	}
	if amount >= 1 {
		return Paper
	}
	return c.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, clamp01(amount)).Clamped().Hex()
}

// Darken blends hex toward black by amount.
func Darken(hex string, amount float64) string {
	c, err := Parse(hex)
	if err != nil {
		return hex
	}
	if amount <= 0 {
		return c.Hex()
	}
	if amount >= 1 {
		return "#000000"
	}
	return c.BlendLab(colorful.Color{}, clamp01(amount)).Clamped().Hex()
}

// At returns the i-th color of the series cycle. Negative indices count
// back from the end.
func At(i int) string {
	n := len(Series)
	return Series[((i%n)+n)%n]
}

// expand turns "#abc" into "#aabbcc"; other inputs pass through.
func expand(hex string) string {
	if len(hex) == 4 && hex[0] == '#' {
		return string([]byte{'#', hex[1], hex[1], hex[2], hex[2], hex[3], hex[3]})
	}
	return hex
}

// clamp01 limits t to [0, 1]. NaN maps to 0.
func clamp01(t float64) float64 {
	switch {
	case math.IsNaN(t), t < 0:
		return 0
	case t > 1:
		return 1
	}
	return t
}
