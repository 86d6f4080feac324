package canvas

import (
	"image"
	"math"
)

// FillRect fills a rectangle.
func (c *Canvas) FillRect(r Rect, fill string, opacity float64) {
	c.dc.DrawRectangle(c.s(r.X), c.s(r.Y), c.s(r.W), c.s(r.H))
	c.setColor(fill, opacity)
	c.dc.Fill()
}

// StrokeRect outlines a rectangle.
func (c *Canvas) StrokeRect(r Rect, st Stroke) {
	st = st.withDefaults()
	c.dc.DrawRectangle(c.s(r.X), c.s(r.Y), c.s(r.W), c.s(r.H))
	c.applyStroke(st)
	c.dc.Stroke()
}

// Box draws a (rounded) rectangle with a centered, word-wrapped label and
// returns its bounds so callers can connect arrows to it.
func (c *Canvas) Box(r Rect, label string, st BoxStyle) Rect {
	st = st.withDefaults()
	radius := c.s(math.Min(st.Radius, math.Min(r.W, r.H)/2))

	if st.Shadow {
		c.roundedRect(r.X+3, r.Y+3, r.W, r.H, radius)
		c.setColor("#000000", 0.12)
		c.dc.Fill()
	}
	if st.Fill != "" {
		c.roundedRect(r.X, r.Y, r.W, r.H, radius)
		c.setColor(st.Fill, 1)
		c.dc.Fill()
	}
	if st.Border != "" {
		c.roundedRect(r.X, r.Y, r.W, r.H, radius)
		c.applyStroke(Stroke{Color: st.Border, Width: st.BorderWidth, Dash: st.Dash})
		c.dc.Stroke()
	}
	if label != "" {
		inner := r.Inset(st.Padding)
		c.TextBlock(label, inner.Center(), inner.W, st.Text)
	}
	return r
}

func (c *Canvas) roundedRect(x, y, w, h, radius float64) {
	if radius <= 0 {
		c.dc.DrawRectangle(c.s(x), c.s(y), c.s(w), c.s(h))
		return
	}
	c.dc.DrawRoundedRectangle(c.s(x), c.s(y), c.s(w), c.s(h), radius)
}

// Line draws a straight segment.
func (c *Canvas) Line(a, b Point, st Stroke) {
	st = st.withDefaults()
	c.applyStroke(st)
	c.dc.DrawLine(c.s(a.X), c.s(a.Y), c.s(b.X), c.s(b.Y))
	c.dc.Stroke()
}

// Polyline strokes a connected path through pts.
func (c *Canvas) Polyline(pts []Point, st Stroke) {
	if len(pts) < 2 {
		return
	}
	st = st.withDefaults()
	c.path(pts)
	c.applyStroke(st)
	c.dc.SetLineJoinRound()
	c.dc.Stroke()
}

// Polygon fills the closed path through pts.
func (c *Canvas) Polygon(pts []Point, fill string, opacity float64) {
	if len(pts) < 3 {
		return
	}
	c.path(pts)
	c.dc.ClosePath()
	c.setColor(fill, opacity)
	c.dc.Fill()
}

func (c *Canvas) path(pts []Point) {
	c.dc.NewSubPath()
	c.dc.MoveTo(c.s(pts[0].X), c.s(pts[0].Y))
	for _, p := range pts[1:] {
		c.dc.LineTo(c.s(p.X), c.s(p.Y))
	}
}

// Circle draws a circle. Either fill or stroke color may be empty.
func (c *Canvas) Circle(center Point, radius float64, fill string, st Stroke) {
	if fill != "" {
		c.dc.DrawCircle(c.s(center.X), c.s(center.Y), c.s(radius))
		c.setColor(fill, 1)
		c.dc.Fill()
	}
	if st.Color != "" {
		st = st.withDefaults()
		c.dc.DrawCircle(c.s(center.X), c.s(center.Y), c.s(radius))
		c.applyStroke(st)
		c.dc.Stroke()
	}
}

// Arrow draws a shaft from a to b with a filled triangular head at b (and
// at a when BothEnds is set).
func (c *Canvas) Arrow(a, b Point, st ArrowStyle) {
	st = st.withDefaults()
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	ux, uy := dx/length, dy/length
	if st.Gap > 0 {
		a = a.Add(ux*st.Gap, uy*st.Gap)
		b = b.Add(-ux*st.Gap, -uy*st.Gap)
		length -= 2 * st.Gap
		if length <= 0 {
			return
		}
	}
	head := math.Min(st.HeadLength, length*0.6)

	start, end := a, b.Add(-ux*head, -uy*head)
	if st.BothEnds {
		start = a.Add(ux*head, uy*head)
	}
	c.Line(start, end, Stroke{Color: st.Color, Width: st.Width, Dash: st.Dash})
	c.arrowHead(b, ux, uy, head, st)
	if st.BothEnds {
		c.arrowHead(a, -ux, -uy, head, st)
	}
}

func (c *Canvas) arrowHead(tip Point, ux, uy, length float64, st ArrowStyle) {
	base := tip.Add(-ux*length, -uy*length)
	half := st.HeadWidth / 2
	// Perpendicular to the shaft.
	px, py := -uy*half, ux*half
	c.Polygon([]Point{tip, base.Add(px, py), base.Add(-px, -py)}, st.Color, 1)
}

// Connect draws an arrow between the borders of two boxes.
func (c *Canvas) Connect(from, to Rect, st ArrowStyle) {
	c.Arrow(from.Port(to.Center()), to.Port(from.Center()), st)
}

// Elbow draws an arrow from a to b routed horizontally then vertically
// (or vertically first when verticalFirst is set).
func (c *Canvas) Elbow(a, b Point, verticalFirst bool, st ArrowStyle) {
	corner := Point{X: b.X, Y: a.Y}
	if verticalFirst {
		corner = Point{X: a.X, Y: b.Y}
	}
	sst := st.withDefaults()
	c.Line(a, corner, Stroke{Color: sst.Color, Width: sst.Width, Dash: sst.Dash})
	c.Arrow(corner, b, st)
}

// DrawImage composites img with its top-left corner at p. The image is
// placed pixel for pixel, so callers pass images already rendered at the
// canvas scale.
func (c *Canvas) DrawImage(img image.Image, p Point) {
	c.dc.DrawImage(img, c.px(p.X), c.px(p.Y))
}

// SetPixel paints one device pixel. It exists for raster plots such as
// heatmaps that address device pixels directly.
func (c *Canvas) SetPixel(x, y int, hex string) {
	c.setColor(hex, 1)
	c.dc.SetPixel(x, y)
}
