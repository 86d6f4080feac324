package chart

import (
	"math"

	"github.com/matzehuels/figforge/pkg/errors"
)

// Scale is one axis' data range.
type Scale struct {
	Min, Max float64
	Log      bool // base-10 logarithmic
}

// Linear returns a linear scale.
func Linear(min, max float64) Scale { return Scale{Min: min, Max: max} }

// Log10 returns a logarithmic scale.
func Log10(min, max float64) Scale { return Scale{Min: min, Max: max, Log: true} }

// Validate checks Min < Max (and Min > 0 for log scales).
func (s Scale) Validate() error {
	if math.IsNaN(s.Min) || math.IsNaN(s.Max) || !(s.Min < s.Max) {
		return errors.New(errors.ErrCodeInvalidInput, "scale range must satisfy min < max, got [%v, %v]", s.Min, s.Max)
	}
	if s.Log && s.Min <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "log scale needs a positive minimum, got %v", s.Min)
	}
	return nil
}

// Norm maps v into [0, 1] across the scale (values outside the range map
// outside [0, 1]).
func (s Scale) Norm(v float64) float64 {
	if s.Log {
		lo, hi := math.Log10(s.Min), math.Log10(s.Max)
		if v <= 0 {
			return math.Inf(-1)
		}
		return (math.Log10(v) - lo) / (hi - lo)
	}
	return (v - s.Min) / (s.Max - s.Min)
}

// Contains reports whether v lies inside the range.
func (s Scale) Contains(v float64) bool { return v >= s.Min && v <= s.Max }

// Ticks picks about n tick positions for the scale.
func (s Scale) Ticks(n int) []float64 {
	if s.Log {
		return LogTicks(s.Min, s.Max)
	}
	return NiceTicks(s.Min, s.Max, n)
}
