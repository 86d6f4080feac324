package chart

import (
	"math"
	"strconv"
)

// maxTicks bounds NiceTicks for ranges narrower than float precision.
const maxTicks = 1000

// NiceTicks returns roughly n evenly spaced tick values covering
// [min, max] with steps of 1, 2 or 5 times a power of ten. Only values
// inside the range are returned.
func NiceTicks(min, max float64, n int) []float64 {
	if n < 2 {
		n = 2
	}
	if !(min < max) {
		return []float64{min}
	}
	span := niceNum(max-min, false)
	step := niceNum(span/float64(n-1), true)
	first := math.Ceil(min / step)
	last := math.Floor(max/step + 1e-9)
	count := last - first + 1
	if math.IsNaN(count) || math.IsInf(count, 0) || count > maxTicks {
		return []float64{min, max}
	}

	eps := step * 1e-9
	var ticks []float64
	for i := range int(count) {
		v := (first + float64(i)) * step
		if v < min-eps || v > max+eps || (len(ticks) > 0 && v <= ticks[len(ticks)-1]) {
			continue
		}
		ticks = append(ticks, v)
	}
	if len(ticks) == 0 {
		return []float64{min, max}
	}
	return ticks
}

// niceNum finds a "nice" number approximately equal to x: 1, 2, 5 or 10
// times a power of ten. round selects rounding rather than ceiling.
func niceNum(x float64, round bool) float64 {
	exp := math.Floor(math.Log10(x))
	f := x / math.Pow(10, exp)
	var nf float64
	if round {
		switch {
		case f < 1.5:
			nf = 1
		case f < 3:
			nf = 2
		case f < 7:
			nf = 5
		default:
			nf = 10
		}
	} else {
		switch {
		case f <= 1:
			nf = 1
		case f <= 2:
			nf = 2
		case f <= 5:
			nf = 5
		default:
			nf = 10
		}
	}
	return nf * math.Pow(10, exp)
}

// LogTicks returns the powers of ten inside [min, max].
func LogTicks(min, max float64) []float64 {
	if min <= 0 || !(min < max) {
		return nil
	}
	var ticks []float64
	for e := math.Ceil(math.Log10(min) - 1e-9); e <= math.Floor(math.Log10(max)+1e-9); e++ {
		ticks = append(ticks, math.Pow(10, e))
	}
	return ticks
}

// FormatTick prints a tick value compactly: integers without decimals,
// fractions with up to three significant digits.
func FormatTick(v float64) string {
	if v == 0 {
		return "0"
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e6 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'g', 3, 64)
}

// FormatSI prints large counts with K/M/B/T suffixes (1.5e9 → "1.5B").
func FormatSI(v float64) string {
	units := []struct {
		div    float64
		suffix string
	}{
		{1e12, "T"},
		{1e9, "B"},
		{1e6, "M"},
		{1e3, "K"},
	}
	for _, u := range units {
		if math.Abs(v) >= u.div {
			return strconv.FormatFloat(math.Round(v/u.div*100)/100, 'f', -1, 64) + u.suffix
		}
	}
	return FormatTick(v)
}

// FormatPercent prints a fraction as a percentage ("0.42" → "42%").
func FormatPercent(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/10, 'f', -1, 64) + "%"
}
