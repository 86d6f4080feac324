package figures

import (
	"context"
	"fmt"
	"math"

	"github.com/matzehuels/figforge/pkg/canvas"
	"github.com/matzehuels/figforge/pkg/chart"
	"github.com/matzehuels/figforge/pkg/figure"
	"github.com/matzehuels/figforge/pkg/numeric"
	"github.com/matzehuels/figforge/pkg/palette"
)

// Two toy class-conditional score distributions.
const (
	gaussMu1, gaussSigma1 = 0.0, 1.0
	gaussMu2, gaussSigma2 = 1.8, 1.25
)

// GaussianOverlap illustrates the overlapping coefficient of two normals.
func GaussianOverlap() figure.Figure {
	return &figure.Func{
		ID:      "gaussian-overlap",
		Caption: "Two Gaussian score distributions with their shaded overlap",
		Width:   760,
		Height:  480,
		Tags:    []string{TagChart},
		Body:    drawGaussianOverlap,
	}
}

func drawGaussianOverlap(_ context.Context, c *canvas.Canvas) error {
	a, err := chart.NewAxes(canvas.R(90, 70, 620, 320), chart.Linear(-4, 6), chart.Linear(0, 0.45))
	if err != nil {
		return err
	}
	a.Title = "Class-conditional score distributions"
	a.XLabel = "Score"
	a.YLabel = "Density"
	a.Draw(c)

	xs := numeric.Linspace(-4, 6, 400)
	p := make([]float64, len(xs))
	q := make([]float64, len(xs))
	lower := make([]float64, len(xs))
	both := make([]float64, len(xs))
	for i, x := range xs {
		p[i] = numeric.GaussianPDF(x, gaussMu1, gaussSigma1)
		q[i] = numeric.GaussianPDF(x, gaussMu2, gaussSigma2)
		both[i] = math.Min(p[i], q[i])
	}

	chart.FillBetween(c, a, xs, lower, p, palette.Blue, 0.12)
	chart.FillBetween(c, a, xs, lower, q, palette.Orange, 0.12)
	chart.FillBetween(c, a, xs, lower, both, palette.Purple, 0.45)
	chart.LinePlot(c, a, xs, p, canvas.Stroke{Color: palette.Blue, Width: 2.2})
	chart.LinePlot(c, a, xs, q, canvas.Stroke{Color: palette.Orange, Width: 2.2})

	meanLine := func(mu, sigma float64, color string) {
		top := a.Point(mu, numeric.GaussianPDF(mu, mu, sigma))
		c.Line(a.Point(mu, 0), top, canvas.Stroke{Color: color, Width: 1, Dash: []float64{4, 3}})
		c.Text(fmt.Sprintf("μ = %.1f", mu), top.Add(0, -6), 0.5, 1, canvas.TextStyle{Size: 11, Color: color})
	}
	meanLine(gaussMu1, gaussSigma1, palette.Blue)
	meanLine(gaussMu2, gaussSigma2, palette.Orange)

	for _, x := range numeric.Crossings(gaussMu1, gaussSigma1, gaussMu2, gaussSigma2) {
		if !a.X.Contains(x) {
			continue
		}
		c.Circle(a.Point(x, numeric.GaussianPDF(x, gaussMu1, gaussSigma1)), 3.5, palette.Ink, canvas.Stroke{})
	}

	ovl := numeric.Overlap(gaussMu1, gaussSigma1, gaussMu2, gaussSigma2, 2000)
	callout(c, canvas.P(a.Frame.MaxX()-190, a.Frame.Y+10), fmt.Sprintf("overlap = %.3f", ovl))

	chart.Legend(c, canvas.P(a.Frame.MaxX()-190, a.Frame.Y+56), []chart.LegendEntry{
		{Label: fmt.Sprintf("N(%.1f, %.2f²)", gaussMu1, gaussSigma1), Color: palette.Blue, Kind: chart.LegendLine},
		{Label: fmt.Sprintf("N(%.1f, %.2f²)", gaussMu2, gaussSigma2), Color: palette.Orange, Kind: chart.LegendLine},
		{Label: "min(p, q)", Color: palette.Lighten(palette.Purple, 0.4)},
	})

	footer(c, "Shaded area is the overlapping coefficient: the integral of min(p, q).")
	return nil
}
