package stats

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Direction labels the slope of a fitted trend.
type Direction string

const (
	Rising  Direction = "rising"
	Falling Direction = "falling"
	Stable  Direction = "stable"
)

// Trend holds a least-squares fit over an equally spaced series, with the
// series index (0..n-1) as the independent variable.
type Trend struct {
	Slope     float64
	Intercept float64
	R2        float64
	Direction Direction

	// Flat is set when the series shows no variation at all. The fit is a
	// horizontal line and R2 reports 1.0 since the line matches every point.
	Flat bool
}

// FitTrend fits an ordinary least-squares line through the series with the
// series index as the independent variable. stableBelow is the absolute
// slope under which the trend counts as stable.
func FitTrend(values []float64, stableBelow float64) (Trend, error) {
	xs := make([]float64, len(values))
	for i := range xs {
		xs[i] = float64(i)
	}
	return FitTrendOver(xs, values, stableBelow)
}

// FitTrendOver fits an ordinary least-squares line of the series against the
// supplied x coordinates, e.g. elapsed hours derived from sample timestamps.
// The x coordinates must be strictly increasing.
func FitTrendOver(xs, values []float64, stableBelow float64) (Trend, error) {
	if len(values) < 2 {
		return Trend{}, fmt.Errorf("%w: need at least 2, got %d", ErrInsufficientData, len(values))
	}
	if len(xs) != len(values) {
		return Trend{}, fmt.Errorf("x/value length mismatch: %d vs %d", len(xs), len(values))
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return Trend{}, fmt.Errorf("x coordinates must be strictly increasing at index %d", i)
		}
	}

	if flat(values) {
		return Trend{
			Intercept: values[0],
			R2:        1.0,
			Direction: Stable,
			Flat:      true,
		}, nil
	}

	intercept, slope := stat.LinearRegression(xs, values, nil, false)

	t := Trend{
		Slope:     slope,
		Intercept: intercept,
		R2:        stat.RSquared(xs, values, nil, intercept, slope),
		Direction: Stable,
	}
	switch {
	case slope > stableBelow:
		t.Direction = Rising
	case slope < -stableBelow:
		t.Direction = Falling
	}
	return t, nil
}

// Forecast extrapolates the fitted line n points past the series of length
// observed.
func (t Trend) Forecast(observed, n int) []float64 {
	return t.ForecastFrom(float64(observed-1), 1, n)
}

// ForecastFrom extrapolates the fitted line n steps past x0 in increments of
// step.
func (t Trend) ForecastFrom(x0, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = t.Intercept + t.Slope*(x0+step*float64(i+1))
	}
	return out
}

// At evaluates the fitted line at series index x.
func (t Trend) At(x int) float64 {
	return t.Intercept + t.Slope*float64(x)
}

func flat(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}

// runLength is the number of consecutively rising or falling points that
// counts as a non-random run on a control chart.
const runLength = 7

// Violation flags a control chart rule break at a series index.
type Violation struct {
	Index int
	Rule  string
}

// ControlViolations scans a series against ±3σ control limits and the
// seven-point run rule. Runs are reported once, at the index where the
// seventh consecutive move in the same direction completes.
func ControlViolations(values []float64, lcl, ucl float64) []Violation {
	var out []Violation
	for i, v := range values {
		if v > ucl {
			out = append(out, Violation{Index: i, Rule: "above UCL"})
		} else if v < lcl {
			out = append(out, Violation{Index: i, Rule: "below LCL"})
		}
	}

	up, down := 0, 0
	for i := 1; i < len(values); i++ {
		switch {
		case values[i] > values[i-1]:
			up++
			down = 0
		case values[i] < values[i-1]:
			down++
			up = 0
		default:
			up, down = 0, 0
		}
		if up == runLength-1 {
			out = append(out, Violation{Index: i, Rule: fmt.Sprintf("%d-point rising run", runLength)})
			up = 0
		}
		if down == runLength-1 {
			out = append(out, Violation{Index: i, Rule: fmt.Sprintf("%d-point falling run", runLength)})
			down = 0
		}
	}
	return out
}
