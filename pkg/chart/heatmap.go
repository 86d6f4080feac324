package chart

import (
	"math"
	"strconv"

	"github.com/matzehuels/figforge/pkg/canvas"
	"github.com/matzehuels/figforge/pkg/errors"
	"github.com/matzehuels/figforge/pkg/palette"
)

// HeatmapOptions configures [Heatmap].
type HeatmapOptions struct {
	Colormap   *palette.Colormap // default Viridis
	Min, Max   float64           // color range; both zero means data range
	RowLabels  []string          // drawn left of each row
	ColLabels  []string          // drawn above each column, rotated
	ShowValues bool              // print each cell's value
	Gap        float64           // spacing between cells
}

// Heatmap fills frame with one cell per matrix entry, colored through the
// colormap. The matrix must be rectangular and non-empty. NaN entries are
// masked cells and drawn in the grid color.
func Heatmap(c *canvas.Canvas, frame canvas.Rect, m [][]float64, opts HeatmapOptions) error {
	rows := len(m)
	if rows == 0 || len(m[0]) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "heatmap matrix is empty")
	}
	cols := len(m[0])
	for i, row := range m {
		if len(row) != cols {
			return errors.New(errors.ErrCodeInvalidInput, "heatmap row %d has %d columns, want %d", i, len(row), cols)
		}
	}
	cmap := opts.Colormap
	if cmap == nil {
		cmap = palette.Viridis
	}
	lo, hi := opts.Min, opts.Max
	if lo == 0 && hi == 0 {
		lo, hi = Extent(m)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	cw, ch := frame.W/float64(cols), frame.H/float64(rows)
	valueStyle := canvas.TextStyle{Size: math.Min(11, ch*0.4)}
	for i, row := range m {
		for j, v := range row {
			cell := canvas.R(frame.X+float64(j)*cw, frame.Y+float64(i)*ch, cw, ch).Inset(opts.Gap / 2)
			if math.IsNaN(v) {
				c.FillRect(cell, palette.Grid, 1)
				continue
			}
			t := (v - lo) / span
			c.FillRect(cell, cmap.Hex(t), 1)
			if opts.ShowValues {
				st := valueStyle
				st.Color = palette.Paper
				if l, _, _ := cmap.At(t).Lab(); l > 0.6 {
					st.Color = palette.Ink
				}
				c.Text(strconv.FormatFloat(v, 'f', 2, 64), cell.Center(), 0.5, 0.5, st)
			}
		}
	}

	labelStyle := canvas.TextStyle{Size: 11, Color: palette.Ink}
	for i, label := range opts.RowLabels {
		if i >= rows {
			break
		}
		c.Text(label, canvas.P(frame.X-6, frame.Y+(float64(i)+0.5)*ch), 1, 0.5, labelStyle)
	}
	for j, label := range opts.ColLabels {
		if j >= cols {
			break
		}
		w, _ := c.MeasureText(label, labelStyle)
		c.TextRotated(label, canvas.P(frame.X+(float64(j)+0.5)*cw, frame.Y-6-w/2), 90, labelStyle)
	}
	return nil
}

// Extent returns the minimum and maximum of a matrix, ignoring NaN.
func Extent(m [][]float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range m {
		for _, v := range row {
			if math.IsNaN(v) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 0
	}
	return lo, hi
}

// Colorbar draws a vertical gradient from min (bottom) to max (top) with
// tick labels on the right.
func Colorbar(c *canvas.Canvas, frame canvas.Rect, cmap *palette.Colormap, min, max float64, label string) {
	if cmap == nil {
		cmap = palette.Viridis
	}
	const steps = 64
	h := frame.H / steps
	for i := 0; i < steps; i++ {
		t := (float64(i) + 0.5) / steps
		y := frame.MaxY() - float64(i+1)*h
		// Overlap slices by a hair so no seams show at fractional scales.
		c.FillRect(canvas.R(frame.X, y, frame.W, h+0.5), cmap.Hex(t), 1)
	}
	c.StrokeRect(frame, canvas.Stroke{Color: palette.Muted, Width: 0.8})

	if !(min < max) {
		return
	}
	for _, v := range NiceTicks(min, max, 5) {
		y := frame.MaxY() - (v-min)/(max-min)*frame.H
		c.Line(canvas.P(frame.MaxX(), y), canvas.P(frame.MaxX()+4, y), canvas.Stroke{Color: palette.Muted, Width: 0.8})
		c.Text(FormatTick(v), canvas.P(frame.MaxX()+7, y), 0, 0.5, canvas.TextStyle{Size: 10, Color: palette.Muted})
	}
	if label != "" {
		c.TextRotated(label, canvas.P(frame.MaxX()+42, frame.Y+frame.H/2), 90, canvas.TextStyle{Size: 11})
	}
}
