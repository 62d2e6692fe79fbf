// Package stats provides the descriptive, capability and trend computations
// shared by the analytical tools. All functions operate on plain float64
// slices and never mutate their input.
package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ErrInsufficientData is returned when a computation needs more points than
// the caller supplied.
var ErrInsufficientData = errors.New("insufficient data points")

// ErrInvalidSpecLimits is returned when a lower spec limit meets or exceeds
// the upper one.
var ErrInvalidSpecLimits = errors.New("lower spec limit must be below upper spec limit")

// Summary holds the descriptive statistics of a measurement series.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	Range  float64
	Median float64
}

// Describe computes descriptive statistics over a series. A single point
// yields a zero standard deviation rather than NaN.
func Describe(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, fmt.Errorf("%w: need at least 1, got 0", ErrInsufficientData)
	}

	s := Summary{
		Count: len(values),
		Mean:  stat.Mean(values, nil),
	}
	if len(values) > 1 {
		s.StdDev = stat.StdDev(values, nil)
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Range = s.Max - s.Min
	s.Median = median(sorted)
	return s, nil
}

// median expects a sorted slice.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// CoefficientOfVariation returns the relative dispersion in percent, or 0
// when the mean is zero.
func CoefficientOfVariation(s Summary) float64 {
	if s.Mean == 0 {
		return 0
	}
	return math.Abs(s.StdDev/s.Mean) * 100
}
