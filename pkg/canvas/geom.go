package canvas

import "math"

// Point is a logical coordinate.
type Point struct{ X, Y float64 }

// P is shorthand for Point{x, y}.
func P(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point { return Point{X: p.X + dx, Y: p.Y + dy} }

// Rect is an axis-aligned rectangle in logical coordinates.
type Rect struct{ X, Y, W, H float64 }

// R is shorthand for Rect{x, y, w, h}.
func R(x, y, w, h float64) Rect { return Rect{X: x, Y: y, W: w, H: h} }

func (r Rect) Center() Point { return Point{r.X + r.W/2, r.Y + r.H/2} }
func (r Rect) Top() Point    { return Point{r.X + r.W/2, r.Y} }
func (r Rect) Bottom() Point { return Point{r.X + r.W/2, r.Y + r.H} }
func (r Rect) Left() Point   { return Point{r.X, r.Y + r.H/2} }
func (r Rect) Right() Point  { return Point{r.X + r.W, r.Y + r.H/2} }
func (r Rect) MaxX() float64 { return r.X + r.W }
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Inset shrinks the rectangle by d on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: math.Max(0, r.W-2*d), H: math.Max(0, r.H-2*d)}
}

// Below returns a rectangle of the same size placed gap below r.
func (r Rect) Below(gap float64) Rect { return Rect{X: r.X, Y: r.MaxY() + gap, W: r.W, H: r.H} }

// RightOf returns a rectangle of the same size placed gap to the right of r.
func (r Rect) RightOf(gap float64) Rect { return Rect{X: r.MaxX() + gap, Y: r.Y, W: r.W, H: r.H} }

// Contains reports whether p lies inside r (edges included).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.MaxX() && p.Y >= r.Y && p.Y <= r.MaxY()
}

// Port returns the point where a ray from r's center towards target leaves
// r. Arrows between boxes start and end on ports so they touch the borders
// whatever the relative placement.
func (r Rect) Port(target Point) Point {
	c := r.Center()
	dx, dy := target.X-c.X, target.Y-c.Y
	if dx == 0 && dy == 0 {
		return c
	}
	tx, ty := math.Inf(1), math.Inf(1)
	if dx != 0 {
		tx = (r.W / 2) / math.Abs(dx)
	}
	if dy != 0 {
		ty = (r.H / 2) / math.Abs(dy)
	}
	t := math.Min(tx, ty)
	return Point{c.X + dx*t, c.Y + dy*t}
}

// Row lays out n rectangles of size w×h left to right starting at (x, y)
// with gap between them.
func Row(x, y, w, h, gap float64, n int) []Rect {
	out := make([]Rect, n)
	for i := range out {
		out[i] = Rect{X: x + float64(i)*(w+gap), Y: y, W: w, H: h}
	}
	return out
}

// Column is like [Row] but stacks top to bottom.
func Column(x, y, w, h, gap float64, n int) []Rect {
	out := make([]Rect, n)
	for i := range out {
		out[i] = Rect{X: x, Y: y + float64(i)*(h+gap), W: w, H: h}
	}
	return out
}
