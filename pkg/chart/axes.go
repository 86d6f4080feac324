package chart

import (
	"github.com/matzehuels/figforge/pkg/canvas"
	"github.com/matzehuels/figforge/pkg/fonts"
	"github.com/matzehuels/figforge/pkg/palette"
)

// Axes maps data coordinates into a frame on the canvas. Y grows upwards.
type Axes struct {
	Frame  canvas.Rect
	X, Y   Scale
	XLabel string
	YLabel string
	Title  string

	// XTicks and YTicks override automatic tick selection.
	XTicks, YTicks []float64
	// XFormat and YFormat print tick labels (default FormatTick).
	XFormat, YFormat func(float64) string
	// XTickLabels replaces numeric labels at XTicks (categorical axes).
	XTickLabels []string

	Grid bool
}

// NewAxes validates both scales and returns axes over frame.
func NewAxes(frame canvas.Rect, x, y Scale) (*Axes, error) {
	if err := x.Validate(); err != nil {
		return nil, err
	}
	if err := y.Validate(); err != nil {
		return nil, err
	}
	return &Axes{Frame: frame, X: x, Y: y, Grid: true}, nil
}

// Point maps a data point to canvas coordinates.
func (a *Axes) Point(x, y float64) canvas.Point {
	return canvas.Point{
		X: a.Frame.X + a.X.Norm(x)*a.Frame.W,
		Y: a.Frame.MaxY() - a.Y.Norm(y)*a.Frame.H,
	}
}

// Inside reports whether (x, y) falls within both scales.
func (a *Axes) Inside(x, y float64) bool {
	return a.X.Contains(x) && a.Y.Contains(y)
}

var (
	tickStyle  = canvas.TextStyle{Size: 11, Color: palette.Muted}
	labelStyle = canvas.TextStyle{Size: 13}
	titleStyle = canvas.TextStyle{Size: 15, Weight: fonts.Bold}
	axisStroke = canvas.Stroke{Color: palette.Ink, Width: 1.2}
	gridStroke = canvas.Stroke{Color: palette.Grid, Width: 1}
)

// Draw renders grid lines, the frame, ticks, tick labels, axis titles and
// the plot title. Call it before plotting series so the grid stays behind
// the data.
func (a *Axes) Draw(c *canvas.Canvas) {
	f := a.Frame
	xticks := a.XTicks
	if xticks == nil {
		xticks = a.X.Ticks(6)
	}
	yticks := a.YTicks
	if yticks == nil {
		yticks = a.Y.Ticks(6)
	}
	xfmt, yfmt := a.XFormat, a.YFormat
	if xfmt == nil {
		xfmt = FormatTick
	}
	if yfmt == nil {
		yfmt = FormatTick
	}

	if a.Grid {
		for _, v := range yticks {
			p := a.Point(a.X.Min, v)
			c.Line(canvas.P(f.X, p.Y), canvas.P(f.MaxX(), p.Y), gridStroke)
		}
	}

	// Left and bottom spines only.
	c.Line(canvas.P(f.X, f.Y), canvas.P(f.X, f.MaxY()), axisStroke)
	c.Line(canvas.P(f.X, f.MaxY()), canvas.P(f.MaxX(), f.MaxY()), axisStroke)

	for i, v := range xticks {
		if !a.X.Contains(v) {
			continue
		}
		x := a.Point(v, a.Y.Min).X
		c.Line(canvas.P(x, f.MaxY()), canvas.P(x, f.MaxY()+5), axisStroke)
		label := xfmt(v)
		if i < len(a.XTickLabels) {
			label = a.XTickLabels[i]
		}
		c.Text(label, canvas.P(x, f.MaxY()+8), 0.5, 0, tickStyle)
	}
	for _, v := range yticks {
		if !a.Y.Contains(v) {
			continue
		}
		y := a.Point(a.X.Min, v).Y
		c.Line(canvas.P(f.X-5, y), canvas.P(f.X, y), axisStroke)
		c.Text(yfmt(v), canvas.P(f.X-8, y), 1, 0.5, tickStyle)
	}

	if a.XLabel != "" {
		c.Text(a.XLabel, canvas.P(f.X+f.W/2, f.MaxY()+30), 0.5, 0, labelStyle)
	}
	if a.YLabel != "" {
		c.TextRotated(a.YLabel, canvas.P(f.X-48, f.Y+f.H/2), 90, labelStyle)
	}
	if a.Title != "" {
		c.Text(a.Title, canvas.P(f.X+f.W/2, f.Y-12), 0.5, 1, titleStyle)
	}
}
