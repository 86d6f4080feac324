package palette

import (
	"errors"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Colormap maps a scalar in [0, 1] to a color by blending evenly spaced
// stops in Lab space.
type Colormap struct {
	Name  string
	stops []colorful.Color
}

var errTooFewStops = errors.New("colormap needs at least two stops")

// NewColormap builds a colormap from hex stops. At least two stops are
// required.
func NewColormap(name string, hexStops ...string) (*Colormap, error) {
	if len(hexStops) < 2 {
		return nil, errTooFewStops
	}
	stops := make([]colorful.Color, len(hexStops))
	for i, h := range hexStops {
		c, err := Parse(h)
		if err != nil {
			return nil, err
		}
		stops[i] = c
	}
	return &Colormap{Name: name, stops: stops}, nil
}

func mustColormap(name string, hexStops ...string) *Colormap {
	m, err := NewColormap(name, hexStops...)
	if err != nil {
		panic(err)
	}
	return m
}

// Built-in colormaps.
var (
	Viridis   = mustColormap("viridis", "#440154", "#414487", "#2a788e", "#22a884", "#7ad151", "#fde725")
	Blues     = mustColormap("blues", "#f7fbff", "#c6dbef", "#6baed6", "#2171b5", "#08306b")
	Diverging = mustColormap("diverging", "#3b4cc0", "#b3cbfc", "#f2f2f2", "#f5b59a", "#b40426")
)

// At returns the color for t. Values outside [0, 1] are clamped.
func (m *Colormap) At(t float64) colorful.Color {
	t = clamp01(t)
	n := len(m.stops) - 1
	pos := t * float64(n)
	i := int(pos)
	if i >= n {
		return m.stops[n]
	}
	frac := pos - float64(i)
	if frac == 0 {
		return m.stops[i]
	}
	return m.stops[i].BlendLab(m.stops[i+1], frac).Clamped()
}

// RGBA is like [Colormap.At] but returns an opaque color.RGBA ready for
// pixel writes.
func (m *Colormap) RGBA(t float64) color.RGBA {
	r, g, b := m.At(t).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Hex is like [Colormap.At] but returns a hex string.
func (m *Colormap) Hex(t float64) string {
	return m.At(t).Hex()
}

// Lookup returns a built-in colormap by name.
func Lookup(name string) (*Colormap, bool) {
	switch name {
	case Viridis.Name:
		return Viridis, true
	case Blues.Name:
		return Blues, true
	case Diverging.Name:
		return Diverging, true
	}
	return nil, false
}
