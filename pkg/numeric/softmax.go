package numeric

import (
	"errors"
	"math"
	"math/rand/v2"
)

// ErrTemperature is returned for a non-positive softmax temperature.
var ErrTemperature = errors.New("softmax temperature must be positive")

// Softmax returns exp(x/T) normalized to sum to one. The maximum is
// subtracted first so large logits do not overflow.
func Softmax(xs []float64, temperature float64) ([]float64, error) {
	if temperature <= 0 || math.IsNaN(temperature) {
		return nil, ErrTemperature
	}
	out := make([]float64, len(xs))
	if len(xs) == 0 {
		return out, nil
	}

	hi := math.Inf(-1)
	for _, x := range xs {
		hi = math.Max(hi, x)
	}
	var sum float64
	for i, x := range xs {
		out[i] = math.Exp((x - hi) / temperature)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out, nil
}

// SoftmaxRows applies [Softmax] to every row of m.
func SoftmaxRows(m [][]float64, temperature float64) ([][]float64, error) {
	out := make([][]float64, len(m))
	for i, row := range m {
		r, err := Softmax(row, temperature)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

// SyntheticAttention builds an n×n attention matrix that looks like a
// trained head: strong diagonal, a sink on the first token, a weaker
// previous-token band and seeded noise. Rows sum to one.
func SyntheticAttention(n int, seed uint64) [][]float64 {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	scores := make([][]float64, n)
	for i := range scores {
		scores[i] = make([]float64, n)
		for j := range scores[i] {
			s := rng.NormFloat64() * 0.6
			switch {
			case i == j:
				s += 3.0
			case j == i-1:
				s += 1.6
			case j == 0:
				s += 1.2
			}
			scores[i][j] = s
		}
	}
	// Temperature 1 is always valid.
	out, _ := SoftmaxRows(scores, 1)
	return out
}
