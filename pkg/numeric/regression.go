package numeric

import (
	"errors"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

// ErrDegenerate is returned when a fit is undefined: fewer than two points
// or all x values equal.
var ErrDegenerate = errors.New("degenerate input for linear fit")

// Fit is a least-squares line y = Slope*x + Intercept.
type Fit struct {
	Slope     float64
	Intercept float64
	R2        float64 // coefficient of determination
	N         int
}

// At evaluates the fitted line at x.
func (f Fit) At(x float64) float64 {
	return f.Slope*x + f.Intercept
}

// String renders the fit the way chart annotations print it.
func (f Fit) String() string {
	sign := "+"
	b := f.Intercept
	if b < 0 {
		sign, b = "-", -b
	}
	return fmt.Sprintf("y = %.3fx %s %.3f  (R² = %.3f)", f.Slope, sign, b, f.R2)
}

// LinearFit fits ys against xs by ordinary least squares.
func LinearFit(xs, ys []float64) (Fit, error) {
	if len(xs) != len(ys) {
		return Fit{}, fmt.Errorf("linear fit: %d x values, %d y values", len(xs), len(ys))
	}
	if len(xs) < 2 {
		return Fit{}, ErrDegenerate
	}
	minX, _ := stats.Min(xs)
	maxX, _ := stats.Max(xs)
	if minX == maxX {
		return Fit{}, ErrDegenerate
	}

	series := make(stats.Series, len(xs))
	for i := range xs {
		series[i] = stats.Coordinate{X: xs[i], Y: ys[i]}
	}
	line, err := stats.LinearRegression(series)
	if err != nil {
		return Fit{}, fmt.Errorf("linear fit: %w", err)
	}

	// The regression returns fitted points; recover the coefficients from
	// the two extreme x values.
	lo, hi := line[0], line[0]
	for _, p := range line {
		if p.X < lo.X {
			lo = p
		}
		if p.X > hi.X {
			hi = p
		}
	}
	slope := (hi.Y - lo.Y) / (hi.X - lo.X)
	fit := Fit{
		Slope:     slope,
		Intercept: lo.Y - slope*lo.X,
		N:         len(xs),
	}

	sdY, _ := stats.StandardDeviation(ys)
	if sdY == 0 {
		// Constant ys: the horizontal line is exact.
		fit.R2 = 1
		return fit, nil
	}
	r, err := stats.Correlation(xs, ys)
	if err != nil || math.IsNaN(r) {
		return Fit{}, fmt.Errorf("linear fit: correlation: %w", errors.Join(ErrDegenerate, err))
	}
	fit.R2 = r * r
	return fit, nil
}

// Log10All returns log10 of every value. Non-positive values are an error
// since they cannot be placed on a log axis.
func Log10All(xs []float64) ([]float64, error) {
	out := make([]float64, len(xs))
	for i, x := range xs {
		if x <= 0 {
			return nil, fmt.Errorf("log10 of non-positive value %v at index %d", x, i)
		}
		out[i] = math.Log10(x)
	}
	return out, nil
}
