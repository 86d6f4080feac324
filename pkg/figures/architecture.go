package figures

import (
	"context"

	"github.com/matzehuels/figforge/pkg/canvas"
	"github.com/matzehuels/figforge/pkg/figure"
	"github.com/matzehuels/figforge/pkg/fonts"
	"github.com/matzehuels/figforge/pkg/palette"
)

// Architecture is the encoder/decoder block diagram.
func Architecture() figure.Figure {
	return &figure.Func{
		ID:      "architecture",
		Caption: "Encoder/decoder transformer block diagram with residual paths",
		Width:   900,
		Height:  760,
		Tags:    []string{TagDiagram},
		Body:    drawArchitecture,
	}
}

var (
	archAttention = blockStyle(palette.Orange)
	archFeedFwd   = blockStyle(palette.Blue)
	archNorm      = blockStyle(palette.Gold)
	archEmbed     = blockStyle(palette.Red)
	archHead      = blockStyle(palette.Green)
	archStack     = canvas.BoxStyle{
		Fill:        palette.LightBox,
		Border:      palette.Slate,
		BorderWidth: 1.2,
		Radius:      14,
		Dash:        []float64{6, 4},
	}
	archFlow     = canvas.ArrowStyle{Color: palette.Ink, Gap: 1}
	archResidual = canvas.Stroke{Color: palette.Muted, Width: 1.3}
)

func blockStyle(accent string) canvas.BoxStyle {
	return canvas.BoxStyle{
		Fill:        palette.Lighten(accent, 0.78),
		Border:      accent,
		BorderWidth: 1.4,
		Radius:      6,
		Shadow:      true,
		Text:        canvas.TextStyle{Size: 13, Weight: fonts.Bold},
	}
}

func drawArchitecture(_ context.Context, c *canvas.Canvas) error {
	header(c, "Transformer encoder/decoder", "Each stack repeats N = 6 times; arrows show data flow, grey lines residual connections")

	const (
		encX   = 120.0
		decX   = 520.0
		colW   = 260.0
		subW   = 200.0
		attnH  = 42.0
		normH  = 28.0
		inputY = 712.0
	)
	subX := func(x float64) float64 { return x + (colW-subW)/2 }

	// Encoder column, bottom to top.
	encIn := c.Box(canvas.R(subX(encX), 640, subW, 36), "Input embedding", archEmbed)
	encPos := canvas.P(encX+colW/2, 602)
	encStack := c.Box(canvas.R(encX, 345, colW, 230), "", archStack)
	encAttn := c.Box(canvas.R(subX(encX), 510, subW, attnH), "Multi-head attention", archAttention)
	encNorm1 := c.Box(canvas.R(subX(encX), 465, subW, normH), "Add & norm", archNorm)
	encFF := c.Box(canvas.R(subX(encX), 405, subW, attnH), "Feed forward", archFeedFwd)
	encNorm2 := c.Box(canvas.R(subX(encX), 362, subW, normH), "Add & norm", archNorm)

	// Decoder column.
	decIn := c.Box(canvas.R(subX(decX), 640, subW, 36), "Output embedding", archEmbed)
	decPos := canvas.P(decX+colW/2, 602)
	decStack := c.Box(canvas.R(decX, 210, colW, 365), "", archStack)
	decAttn := c.Box(canvas.R(subX(decX), 510, subW, attnH), "Masked multi-head attention", archAttention)
	decNorm1 := c.Box(canvas.R(subX(decX), 465, subW, normH), "Add & norm", archNorm)
	decCross := c.Box(canvas.R(subX(decX), 405, subW, attnH), "Cross attention", archAttention)
	decNorm2 := c.Box(canvas.R(subX(decX), 362, subW, normH), "Add & norm", archNorm)
	decFF := c.Box(canvas.R(subX(decX), 290, subW, attnH), "Feed forward", archFeedFwd)
	decNorm3 := c.Box(canvas.R(subX(decX), 227, subW, normH), "Add & norm", archNorm)
	linear := c.Box(canvas.R(subX(decX), 150, subW, 32), "Linear", archHead)
	softmax := c.Box(canvas.R(subX(decX), 98, subW, 32), "Softmax", archHead)

	label := canvas.TextStyle{Size: 12, Color: palette.Muted}
	c.Text("Inputs", canvas.P(encIn.Center().X, inputY), 0.5, 0, label)
	c.Text("Outputs (shifted right)", canvas.P(decIn.Center().X, inputY), 0.5, 0, label)
	c.Text("Output probabilities", canvas.P(softmax.Center().X, softmax.Y-10), 0.5, 1, label)
	c.Arrow(canvas.P(encIn.Center().X, inputY-4), encIn.Bottom(), archFlow)
	c.Arrow(canvas.P(decIn.Center().X, inputY-4), decIn.Bottom(), archFlow)

	stackLabel := canvas.TextStyle{Size: 15, Weight: fonts.Bold, Color: palette.Slate}
	c.Text("N×", canvas.P(encStack.X-14, encStack.Center().Y), 1, 0.5, stackLabel)
	c.Text("N×", canvas.P(decStack.MaxX()+14, decStack.Center().Y), 0, 0.5, stackLabel)
	c.Text("Encoder", canvas.P(encStack.Center().X, encStack.Y-8), 0.5, 1, canvas.TextStyle{Size: 13, Weight: fonts.Bold})
	c.Text("Decoder", canvas.P(decStack.X, decStack.Y-8), 0, 1, canvas.TextStyle{Size: 13, Weight: fonts.Bold})

	for _, col := range []struct {
		in  canvas.Rect
		pos canvas.Point
		sub []canvas.Rect
	}{
		{encIn, encPos, []canvas.Rect{encAttn, encNorm1, encFF, encNorm2}},
		{decIn, decPos, []canvas.Rect{decAttn, decNorm1, decCross, decNorm2, decFF, decNorm3}},
	} {
		positional(c, col.pos)
		c.Arrow(col.in.Top(), col.pos.Add(0, 12), archFlow)
		c.Arrow(col.pos.Add(0, -12), col.sub[0].Bottom(), archFlow)
		for i := 1; i < len(col.sub); i++ {
			c.Arrow(col.sub[i-1].Top(), col.sub[i].Bottom(), archFlow)
		}
		// Each sublayer pair (block, add & norm) carries a residual path.
		for i := 0; i+1 < len(col.sub); i += 2 {
			residual(c, col.sub[i], col.sub[i+1])
		}
	}

	c.Arrow(decNorm3.Top(), linear.Bottom(), archFlow)
	c.Arrow(linear.Top(), softmax.Bottom(), archFlow)

	// Encoder memory feeds the decoder's cross attention.
	bend := encNorm2.Top().Add(0, -45)
	mid := canvas.P(decStack.X-30, bend.Y)
	c.Polyline([]canvas.Point{encNorm2.Top(), bend, mid, canvas.P(mid.X, decCross.Center().Y)}, canvas.Stroke{Color: palette.Ink, Width: 1.6})
	c.Arrow(canvas.P(mid.X, decCross.Center().Y), decCross.Left(), archFlow)
	c.Text("memory", bend.Add(60, -6), 0.5, 1, label)

	footer(c, "Figure: stacked encoder and decoder layers with residual connections and layer normalization.")
	return nil
}

// positional draws the ⊕ where positional encodings join the embeddings.
func positional(c *canvas.Canvas, p canvas.Point) {
	c.Circle(p, 12, palette.Paper, canvas.Stroke{Color: palette.Ink, Width: 1.4})
	c.Line(p.Add(-7, 0), p.Add(7, 0), canvas.Stroke{Color: palette.Ink, Width: 1.4})
	c.Line(p.Add(0, -7), p.Add(0, 7), canvas.Stroke{Color: palette.Ink, Width: 1.4})
	note := canvas.TextStyle{Size: 10, Color: palette.Muted}
	c.Text("positional", p.Add(-22, -1), 1, 1, note)
	c.Text("encoding", p.Add(-22, 1), 1, 0, note)
}

// residual routes a skip connection from just below block around its
// right side into norm.
func residual(c *canvas.Canvas, block, norm canvas.Rect) {
	start := block.Bottom().Add(0, 8)
	side := block.MaxX() + 16
	c.Circle(start, 2.5, palette.Muted, canvas.Stroke{})
	c.Polyline([]canvas.Point{
		start,
		canvas.P(side, start.Y),
		canvas.P(side, norm.Center().Y),
	}, archResidual)
	c.Arrow(canvas.P(side, norm.Center().Y), norm.Right(), canvas.ArrowStyle{
		Color:      palette.Muted,
		Width:      1.3,
		HeadLength: 7,
		HeadWidth:  6,
	})
}
