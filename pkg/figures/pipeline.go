package figures

import (
	"context"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/figforge/pkg/canvas"
	"github.com/matzehuels/figforge/pkg/figure"
	"github.com/matzehuels/figforge/pkg/fonts"
	"github.com/matzehuels/figforge/pkg/palette"
	"github.com/matzehuels/figforge/pkg/render/dot"
)

// TrainingPipeline is a flowchart of the training stages. Graphviz lays
// out the graph; the result is composited below a title band.
func TrainingPipeline() figure.Figure {
	return &figure.Func{
		ID:      "training-pipeline",
		Caption: "Training pipeline flowchart from raw corpus to evaluation",
		Width:   900,
		Height:  560,
		Tags:    []string{TagDiagram},
		Body:    drawTrainingPipeline,
	}
}

// trainingGraph describes the pipeline at the given raster resolution.
func trainingGraph(dpi float64) *dot.Graph {
	data := func(id, label string) dot.Node {
		return dot.Node{ID: id, Label: label, Shape: "cylinder", Fill: palette.Lighten(palette.Slate, 0.8), Border: palette.Slate}
	}
	stage := func(id, label, accent string) dot.Node {
		return dot.Node{ID: id, Label: label, Fill: palette.Lighten(accent, 0.78), Border: accent}
	}

	g := dot.NewGraph("training")
	g.RankDir = "LR"
	g.DPI = dpi
	g.Node(data("corpus", "Web corpus\n1.4T tokens"))
	g.Node(stage("filter", "Dedup +\nquality filter", palette.Teal))
	g.Node(stage("tok", "Tokenizer\n(BPE, 50k)", palette.Teal))
	g.Node(stage("pretrain", "Pretraining", palette.Blue))
	g.Node(stage("sft", "Supervised\nfine-tuning", palette.Purple))
	g.Node(data("prefs", "Preference\npairs"))
	g.Node(stage("rm", "Reward model", palette.Gold))
	g.Node(stage("rl", "RL from\nfeedback", palette.Orange))
	g.Node(dot.Node{ID: "eval", Label: "Evaluation", Fill: palette.Lighten(palette.Green, 0.78), Border: palette.Green, Bold: true})

	g.Chain(dot.Edge{}, "corpus", "filter", "tok", "pretrain", "sft", "rl", "eval")
	g.Edge(dot.Edge{From: "prefs", To: "rm"})
	g.Edge(dot.Edge{From: "rm", To: "rl", Label: "reward"})
	g.Edge(dot.Edge{From: "eval", To: "sft", Label: "regressions", Color: palette.Red, Dashed: true, NoConstraint: true})
	g.Groups = [][]string{{"sft", "prefs"}}
	return g
}

func drawTrainingPipeline(ctx context.Context, c *canvas.Canvas) error {
	w, h := c.Size()
	const band = 64.0
	c.FillRect(canvas.R(0, 0, float64(w), band), palette.Slate, 1)
	c.Text("Training pipeline", canvas.P(24, band/2), 0, 0.5, canvas.TextStyle{Size: 20, Weight: fonts.Bold, Color: palette.Paper})
	c.Text("data → pretraining → alignment → evaluation", canvas.P(float64(w)-24, band/2), 1, 0.5,
		canvas.TextStyle{Size: 12, Color: palette.Lighten(palette.Slate, 0.7)})

	img, err := dot.RenderPNG(ctx, trainingGraph(96*c.Scale()).String())
	if err != nil {
		return err
	}

	// Fit the layout into the content area in device pixels, then center it.
	area := canvas.R(24, band+24, float64(w)-48, float64(h)-band-72)
	maxW, maxH := int(area.W*c.Scale()), int(area.H*c.Scale())
	if b := img.Bounds(); b.Dx() > maxW || b.Dy() > maxH {
		img = imaging.Fit(img, maxW, maxH, imaging.Lanczos)
	}
	b := img.Bounds()
	iw, ih := float64(b.Dx())/c.Scale(), float64(b.Dy())/c.Scale()
	c.DrawImage(img, canvas.P(area.X+(area.W-iw)/2, area.Y+(area.H-ih)/2))

	footer(c, "Dashed edge: evaluation regressions feed back into the fine-tuning mix.")
	return nil
}
