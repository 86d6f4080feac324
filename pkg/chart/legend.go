package chart

import (
	"github.com/matzehuels/figforge/pkg/canvas"
	"github.com/matzehuels/figforge/pkg/palette"
)

// LegendKind selects the swatch drawn next to a legend label.
type LegendKind int

const (
	LegendBox LegendKind = iota
	LegendLine
	LegendMarker
	LegendDashed
)

// LegendEntry is one row of a legend.
type LegendEntry struct {
	Label string
	Color string
	Kind  LegendKind
}

// Legend draws entries stacked from the top-left corner at origin inside a
// light rounded frame and returns the frame it occupied.
func Legend(c *canvas.Canvas, origin canvas.Point, entries []LegendEntry) canvas.Rect {
	st := canvas.TextStyle{Size: 11}
	const (
		pad    = 8
		swatch = 18
		row    = 18
	)
	var width float64
	for _, e := range entries {
		w, _ := c.MeasureText(e.Label, st)
		width = max(width, w)
	}
	frame := canvas.R(origin.X, origin.Y, pad*3+swatch+width, pad*2+row*float64(len(entries)))
	c.Box(frame, "", canvas.BoxStyle{Fill: palette.Paper, Border: palette.Grid, BorderWidth: 1, Radius: 4})

	for i, e := range entries {
		cy := frame.Y + pad + row*(float64(i)+0.5)
		sx := frame.X + pad
		switch e.Kind {
		case LegendLine:
			c.Line(canvas.P(sx, cy), canvas.P(sx+swatch, cy), canvas.Stroke{Color: e.Color, Width: 2.2})
		case LegendDashed:
			c.Line(canvas.P(sx, cy), canvas.P(sx+swatch, cy), canvas.Stroke{Color: e.Color, Width: 2, Dash: []float64{4, 3}})
		case LegendMarker:
			c.Circle(canvas.P(sx+swatch/2, cy), 4, e.Color, canvas.Stroke{})
		default:
			c.FillRect(canvas.R(sx+3, cy-6, swatch-6, 12), e.Color, 1)
		}
		c.Text(e.Label, canvas.P(sx+swatch+pad, cy), 0, 0.5, st)
	}
	return frame
}
