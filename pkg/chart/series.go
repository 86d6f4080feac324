package chart

import (
	"github.com/matzehuels/figforge/pkg/canvas"
	"github.com/matzehuels/figforge/pkg/palette"
)

// Scatter draws one marker per point. Points outside the axes are skipped.
func Scatter(c *canvas.Canvas, a *Axes, xs, ys []float64, radius float64, color string) {
	for i := range min(len(xs), len(ys)) {
		if !a.Inside(xs[i], ys[i]) {
			continue
		}
		c.Circle(a.Point(xs[i], ys[i]), radius, color, canvas.Stroke{Color: palette.Paper, Width: 1})
	}
}

// LinePlot strokes the series through (xs[i], ys[i]).
func LinePlot(c *canvas.Canvas, a *Axes, xs, ys []float64, st canvas.Stroke) {
	pts := make([]canvas.Point, 0, len(xs))
	for i := range min(len(xs), len(ys)) {
		pts = append(pts, a.Point(xs[i], ys[i]))
	}
	c.Polyline(pts, st)
}

// FillBetween shades the area between lower and upper along xs.
func FillBetween(c *canvas.Canvas, a *Axes, xs, lower, upper []float64, color string, opacity float64) {
	n := min(len(xs), len(lower), len(upper))
	if n < 2 {
		return
	}
	pts := make([]canvas.Point, 0, 2*n)
	for i := 0; i < n; i++ {
		pts = append(pts, a.Point(xs[i], upper[i]))
	}
	for i := n - 1; i >= 0; i-- {
		pts = append(pts, a.Point(xs[i], lower[i]))
	}
	c.Polygon(pts, color, opacity)
}

// BarGroup is one category of a grouped bar chart.
type BarGroup struct {
	Label  string
	Values []float64 // one per series
}

// Bars draws grouped bars. Group i is centered on x = i, so the axes'
// X scale should span [-0.5, len(groups)-0.5]. width is the fraction of
// the unit slot the group occupies.
func Bars(c *canvas.Canvas, a *Axes, groups []BarGroup, colors []string, width float64, showValues bool) {
	if width <= 0 || width > 1 {
		width = 0.8
	}
	for gi, g := range groups {
		n := len(g.Values)
		if n == 0 {
			continue
		}
		bw := width / float64(n)
		left := float64(gi) - width/2
		for si, v := range g.Values {
			x0 := left + float64(si)*bw
			base := a.Y.Min
			if !a.Y.Log && a.Y.Contains(0) {
				base = 0
			}
			p0 := a.Point(x0, base)
			p1 := a.Point(x0+bw, v)
			r := canvas.R(p0.X+0.5, p1.Y, p1.X-p0.X-1, p0.Y-p1.Y)
			color := palette.At(si)
			if si < len(colors) {
				color = colors[si]
			}
			c.FillRect(r, color, 1)
			if showValues {
				c.Text(FormatTick(v), canvas.P(r.X+r.W/2, r.Y-3), 0.5, 1, canvas.TextStyle{Size: 10, Color: palette.Muted})
			}
		}
	}
}

// CategoryTicks returns tick positions 0..n-1 with the group labels, ready
// for Axes.XTicks/XTickLabels.
func CategoryTicks(groups []BarGroup) ([]float64, []string) {
	ticks := make([]float64, len(groups))
	labels := make([]string, len(groups))
	for i, g := range groups {
		ticks[i] = float64(i)
		labels[i] = g.Label
	}
	return ticks, labels
}
