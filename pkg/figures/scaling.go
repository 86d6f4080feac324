package figures

import (
	"context"
	"fmt"
	"math"

	"github.com/matzehuels/figforge/pkg/canvas"
	"github.com/matzehuels/figforge/pkg/chart"
	"github.com/matzehuels/figforge/pkg/errors"
	"github.com/matzehuels/figforge/pkg/figure"
	"github.com/matzehuels/figforge/pkg/numeric"
	"github.com/matzehuels/figforge/pkg/palette"
)

// Benchmark scores by parameter count.
var (
	scalingParams = []float64{1.2e8, 3.5e8, 7.7e8, 1.5e9, 2.7e9, 6.9e9, 1.3e10, 3.0e10, 7.0e10}
	scalingScores = []float64{41.2, 45.8, 47.9, 52.7, 55.0, 58.1, 62.4, 65.2, 69.8}
)

// ScalingTrend plots score against model size with a log-linear fit.
func ScalingTrend() figure.Figure {
	return &figure.Func{
		ID:      "scaling-trend",
		Caption: "Benchmark score versus model size with a least-squares trend on log10(parameters)",
		Width:   760,
		Height:  520,
		Tags:    []string{TagChart},
		Body:    drawScalingTrend,
	}
}

func drawScalingTrend(_ context.Context, c *canvas.Canvas) error {
	logX, err := numeric.Log10All(scalingParams)
	if err != nil {
		return err
	}
	fit, err := numeric.LinearFit(logX, scalingScores)
	if err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "fit scaling trend")
	}

	a, err := chart.NewAxes(canvas.R(100, 70, 600, 360), chart.Log10(1e8, 1e11), chart.Linear(35, 75))
	if err != nil {
		return err
	}
	a.Title = "Score scales log-linearly with parameters"
	a.XLabel = "Parameters"
	a.YLabel = "Benchmark score (%)"
	a.XTicks = chart.LogTicks(1e8, 1e11)
	a.XFormat = chart.FormatSI
	a.Draw(c)

	lx := numeric.Linspace(8, 11, 60)
	xs := make([]float64, len(lx))
	ys := make([]float64, len(lx))
	for i, v := range lx {
		xs[i] = math.Pow(10, v)
		ys[i] = fit.At(v)
	}
	chart.LinePlot(c, a, xs, ys, canvas.Stroke{Color: palette.Red, Width: 2, Dash: []float64{7, 4}})
	chart.Scatter(c, a, scalingParams, scalingScores, 6, palette.Blue)

	// Label the largest model.
	last := len(scalingParams) - 1
	p := a.Point(scalingParams[last], scalingScores[last])
	c.Text(chart.FormatSI(scalingParams[last]), p.Add(-10, -10), 1, 1, canvas.TextStyle{Size: 11, Color: palette.Blue})

	callout(c, canvas.P(a.Frame.X+16, a.Frame.Y+12), fit.String())
	c.Text(fmt.Sprintf("+%.1f points per 10× parameters", fit.Slope), canvas.P(a.Frame.X+16, a.Frame.Y+52), 0, 0,
		canvas.TextStyle{Size: 11, Color: palette.Muted})

	chart.Legend(c, canvas.P(a.Frame.MaxX()-150, a.Frame.MaxY()-70), []chart.LegendEntry{
		{Label: "Models", Color: palette.Blue, Kind: chart.LegendMarker},
		{Label: "Log-linear fit", Color: palette.Red, Kind: chart.LegendDashed},
	})
	return nil
}
