package canvas

import (
	"strings"

	"github.com/fogleman/gg"
)

// Text draws s with its anchor point at p. ax and ay select the anchor
// within the text's bounding box: (0, 0) is top-left, (0.5, 0.5) the
// center, (1, 1) bottom-right.
func (c *Canvas) Text(s string, p Point, ax, ay float64, st TextStyle) {
	st = st.withDefaults()
	face := c.face(st)
	if face == nil {
		return
	}
	c.dc.SetFontFace(face)
	c.setColor(st.Color, 1)
	c.dc.DrawStringAnchored(s, c.s(p.X), c.s(p.Y), ax, 1-ay)
}

// TextRotated draws s centered on p, rotated by degrees (counterclockwise
// positive, as on a y-axis title).
func (c *Canvas) TextRotated(s string, p Point, degrees float64, st TextStyle) {
	st = st.withDefaults()
	face := c.face(st)
	if face == nil {
		return
	}
	x, y := c.s(p.X), c.s(p.Y)
	c.dc.Push()
	c.dc.RotateAbout(gg.Radians(-degrees), x, y)
	c.dc.SetFontFace(face)
	c.setColor(st.Color, 1)
	c.dc.DrawStringAnchored(s, x, y, 0.5, 0.5)
	c.dc.Pop()
}

// MeasureText returns the logical width and height of a single line.
func (c *Canvas) MeasureText(s string, st TextStyle) (w, h float64) {
	st = st.withDefaults()
	face := c.face(st)
	if face == nil {
		return 0, 0
	}
	c.dc.SetFontFace(face)
	w, h = c.dc.MeasureString(s)
	return w / c.scale, h / c.scale
}

// Wrap splits s into lines no wider than width logical pixels. Explicit
// newlines are kept.
func (c *Canvas) Wrap(s string, width float64, st TextStyle) []string {
	st = st.withDefaults()
	face := c.face(st)
	if face == nil {
		return nil
	}
	c.dc.SetFontFace(face)
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		if para == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, c.dc.WordWrap(para, c.s(width))...)
	}
	return lines
}

// TextBlock draws word-wrapped text centered on p, at most width wide.
// Lines are aligned according to st.Align.
func (c *Canvas) TextBlock(s string, p Point, width float64, st TextStyle) {
	st = st.withDefaults()
	lines := c.Wrap(s, width, st)
	if len(lines) == 0 {
		return
	}
	_, lh := c.MeasureText("Hg", st)
	step := lh * st.LineSpacing
	total := step*float64(len(lines)-1) + lh
	y := p.Y - total/2

	for _, line := range lines {
		switch st.Align {
		case AlignLeft:
			c.Text(line, Point{p.X - width/2, y}, 0, 0, st)
		case AlignRight:
			c.Text(line, Point{p.X + width/2, y}, 1, 0, st)
		default:
			c.Text(line, Point{p.X, y}, 0.5, 0, st)
		}
		y += step
	}
}
