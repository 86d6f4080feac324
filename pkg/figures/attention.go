package figures

import (
	"context"

	"github.com/matzehuels/figforge/pkg/canvas"
	"github.com/matzehuels/figforge/pkg/chart"
	"github.com/matzehuels/figforge/pkg/figure"
	"github.com/matzehuels/figforge/pkg/fonts"
	"github.com/matzehuels/figforge/pkg/numeric"
	"github.com/matzehuels/figforge/pkg/palette"
)

// attentionSeed fixes the synthetic scores so the figure is reproducible.
const attentionSeed = 7

var attentionTokens = []string{"<s>", "The", "model", "attends", "to", "recent", "tokens", "."}

// AttentionHeatmap is a synthetic softmax attention pattern over a short
// sentence.
func AttentionHeatmap() figure.Figure {
	return &figure.Func{
		ID:      "attention-heatmap",
		Caption: "Synthetic softmax attention weights over an eight-token sentence",
		Width:   720,
		Height:  640,
		Tags:    []string{TagChart},
		Body:    drawAttentionHeatmap,
	}
}

func drawAttentionHeatmap(_ context.Context, c *canvas.Canvas) error {
	header(c, "Attention weights (head 3, layer 5)", "")

	weights := numeric.SyntheticAttention(len(attentionTokens), attentionSeed)
	_, hi := chart.Extent(weights)

	frame := canvas.R(150, 150, 400, 400)
	if err := chart.Heatmap(c, frame, weights, chart.HeatmapOptions{
		Colormap:   palette.Blues,
		Min:        0,
		Max:        hi,
		RowLabels:  attentionTokens,
		ColLabels:  attentionTokens,
		ShowValues: true,
		Gap:        2,
	}); err != nil {
		return err
	}
	chart.Colorbar(c, canvas.R(frame.MaxX()+28, frame.Y, 18, frame.H), palette.Blues, 0, hi, "attention weight")

	axis := canvas.TextStyle{Size: 13, Weight: fonts.Bold}
	c.Text("Key", canvas.P(frame.Center().X, 78), 0.5, 0.5, axis)
	c.TextRotated("Query", canvas.P(frame.X-90, frame.Center().Y), 90, axis)

	footer(c, "Each row is a softmax over keys; the first token acts as an attention sink.")
	return nil
}
