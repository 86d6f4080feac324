package canvas

import (
	"bufio"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/figforge/pkg/errors"
	"github.com/matzehuels/figforge/pkg/fonts"
	"github.com/matzehuels/figforge/pkg/palette"
)

// MaxPixels bounds the rasterized size of a canvas (width × height × scale²).
const MaxPixels = 64 << 20

// Canvas is a drawing surface in logical coordinates.
type Canvas struct {
	dc         *gg.Context
	width      int
	height     int
	scale      float64
	background string
	faces      map[faceKey]font.Face
	err        error
}

type faceKey struct {
	weight fonts.Weight
	size   float64
}

// Option configures a Canvas.
type Option func(*Canvas)

// WithScale sets the rasterization scale (default 1).
func WithScale(s float64) Option {
	return func(c *Canvas) { c.scale = s }
}

// WithBackground sets the background color (default white). An empty
// string leaves the canvas transparent.
func WithBackground(hex string) Option {
	return func(c *Canvas) { c.background = hex }
}

// New creates a canvas of width×height logical pixels.
func New(width, height int, opts ...Option) (*Canvas, error) {
	c := &Canvas{
		width:      width,
		height:     height,
		scale:      1,
		background: palette.Paper,
		faces:      make(map[faceKey]font.Face),
	}
	for _, opt := range opts {
		opt(c)
	}

	if width <= 0 || height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "canvas size must be positive, got %dx%d", width, height)
	}
	if !(c.scale > 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "canvas scale must be positive, got %v", c.scale)
	}
	pw, ph := c.px(float64(width)), c.px(float64(height))
	if pw*ph > MaxPixels {
		return nil, errors.New(errors.ErrCodeInvalidInput, "canvas %dx%d at scale %v exceeds %d pixels", width, height, c.scale, MaxPixels)
	}

	c.dc = gg.NewContext(pw, ph)
	if c.background != "" {
		c.setColor(c.background, 1)
		c.dc.Clear()
	}
	return c, nil
}

// Size returns the logical size.
func (c *Canvas) Size() (w, h int) { return c.width, c.height }

// PixelSize returns the rasterized size.
func (c *Canvas) PixelSize() (w, h int) { return c.dc.Width(), c.dc.Height() }

// Scale returns the rasterization scale.
func (c *Canvas) Scale() float64 { return c.scale }

// Bounds returns the full logical area as a Rect.
func (c *Canvas) Bounds() Rect { return Rect{W: float64(c.width), H: float64(c.height)} }

// Err returns the first error recorded while drawing (for example a color
// that failed to parse). Drawing calls do not return errors individually so
// figure code stays a flat list of primitives; check Err before saving.
func (c *Canvas) Err() error { return c.err }

// Image returns the rasterized image.
func (c *Canvas) Image() image.Image { return c.dc.Image() }

// WritePNG encodes the canvas as PNG to w.
func (c *Canvas) WritePNG(w io.Writer) error {
	if c.err != nil {
		return c.err
	}
	return c.dc.EncodePNG(w)
}

// SavePNG writes the canvas to path, creating parent directories.
func (c *Canvas) SavePNG(path string) error {
	if c.err != nil {
		return c.err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create directory for %s", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	w := bufio.NewWriter(f)
	if err := c.dc.EncodePNG(w); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// px converts a logical length to whole device pixels.
func (c *Canvas) px(v float64) int { return int(v*c.scale + 0.5) }

// s converts a logical length to device units.
func (c *Canvas) s(v float64) float64 { return v * c.scale }

func (c *Canvas) fail(err error) {
	if c.err == nil && err != nil {
		c.err = err
	}
}

func (c *Canvas) setColor(hex string, opacity float64) {
	col, err := palette.Parse(hex)
	if err != nil {
		c.fail(errors.Wrap(errors.ErrCodeInvalidInput, err, "color"))
		col = palette.MustParse(palette.Ink)
	}
	c.dc.SetRGBA(col.R, col.G, col.B, opacity)
}

func (c *Canvas) applyStroke(st Stroke) {
	c.setColor(st.Color, 1)
	c.dc.SetLineWidth(c.s(st.Width))
	if len(st.Dash) > 0 {
		dash := make([]float64, len(st.Dash))
		for i, d := range st.Dash {
			dash[i] = c.s(d)
		}
		c.dc.SetDash(dash...)
	} else {
		c.dc.SetDash()
	}
}

func (c *Canvas) face(st TextStyle) font.Face {
	key := faceKey{weight: st.Weight, size: st.Size}
	if f, ok := c.faces[key]; ok {
		return f
	}
	f, err := fonts.NewFace(st.Weight, c.s(st.Size))
	if err != nil {
		c.fail(err)
		return nil
	}
	c.faces[key] = f
	return f
}
