package numeric

import "math"

// GaussianPDF is the normal density with mean mu and standard deviation
// sigma. sigma must be positive.
func GaussianPDF(x, mu, sigma float64) float64 {
	z := (x - mu) / sigma
	return math.Exp(-0.5*z*z) / (sigma * math.Sqrt(2*math.Pi))
}

// Linspace returns n evenly spaced values from a to b inclusive.
func Linspace(a, b float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{a}
	}
	out := make([]float64, n)
	step := (b - a) / float64(n-1)
	for i := range out {
		out[i] = a + step*float64(i)
	}
	out[n-1] = b
	return out
}

// Overlap returns the overlapping coefficient of N(mu1, s1) and N(mu2, s2):
// the integral of min(p, q). It is 1 for identical distributions and tends
// to 0 as they separate. The integral is evaluated with the trapezoid rule
// on n points spanning six standard deviations beyond both means.
func Overlap(mu1, s1, mu2, s2 float64, n int) float64 {
	if s1 <= 0 || s2 <= 0 {
		return math.NaN()
	}
	if n < 2 {
		n = 2
	}
	lo := math.Min(mu1-6*s1, mu2-6*s2)
	hi := math.Max(mu1+6*s1, mu2+6*s2)
	xs := Linspace(lo, hi, n)

	var area float64
	prev := math.Min(GaussianPDF(xs[0], mu1, s1), GaussianPDF(xs[0], mu2, s2))
	for i := 1; i < len(xs); i++ {
		cur := math.Min(GaussianPDF(xs[i], mu1, s1), GaussianPDF(xs[i], mu2, s2))
		area += (prev + cur) * (xs[i] - xs[i-1]) / 2
		prev = cur
	}
	return math.Max(0, math.Min(1, area))
}

// EqualVarianceOverlap is the closed form of [Overlap] when both
// distributions share sigma: 2Φ(-|Δμ|/2σ).
func EqualVarianceOverlap(mu1, mu2, sigma float64) float64 {
	d := math.Abs(mu1-mu2) / (2 * sigma)
	return math.Erfc(d / math.Sqrt2)
}

// Crossings returns the x positions where the two densities are equal,
// in ascending order. Equal-variance pairs cross once at the midpoint;
// otherwise there are two crossings (or none when the parameters match).
func Crossings(mu1, s1, mu2, s2 float64) []float64 {
	if s1 == s2 {
		if mu1 == mu2 {
			return nil
		}
		return []float64{(mu1 + mu2) / 2}
	}
	// Equate log densities: a x² + b x + c = 0.
	a := 1/(2*s2*s2) - 1/(2*s1*s1)
	b := mu1/(s1*s1) - mu2/(s2*s2)
	c := mu2*mu2/(2*s2*s2) - mu1*mu1/(2*s1*s1) - math.Log(s1/s2)
	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}
	r := math.Sqrt(disc)
	x1, x2 := (-b-r)/(2*a), (-b+r)/(2*a)
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	return []float64{x1, x2}
}
