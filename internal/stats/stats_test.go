package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	s, err := Describe([]float64{45.2, 45.8, 44.9, 46.1, 45.5, 45.3, 45.7, 46.0})
	require.NoError(t, err)

	assert.Equal(t, 8, s.Count)
	assert.InDelta(t, 45.5625, s.Mean, 1e-9)
	assert.InDelta(t, 0.4138, s.StdDev, 1e-3)
	assert.InDelta(t, 44.9, s.Min, 1e-9)
	assert.InDelta(t, 46.1, s.Max, 1e-9)
	assert.InDelta(t, 1.2, s.Range, 1e-9)
	assert.InDelta(t, 45.6, s.Median, 1e-9)
}

func TestDescribeSinglePoint(t *testing.T) {
	s, err := Describe([]float64{42})
	require.NoError(t, err)
	assert.Zero(t, s.StdDev)
	assert.InDelta(t, 42.0, s.Median, 1e-9)
}

func TestDescribeEmpty(t *testing.T) {
	_, err := Describe(nil)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestCoefficientOfVariation(t *testing.T) {
	s, err := Describe([]float64{45.2, 45.8, 44.9, 46.1, 45.5, 45.3, 45.7, 46.0})
	require.NoError(t, err)
	assert.InDelta(t, 0.9082, CoefficientOfVariation(s), 1e-3)

	assert.Zero(t, CoefficientOfVariation(Summary{Mean: 0, StdDev: 2}))
}

func TestDescribeDoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	_, err := Describe(values)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestAssessCapability(t *testing.T) {
	values := []float64{45.2, 45.8, 44.9, 46.1, 45.5, 45.3, 45.7, 46.0}
	c, err := AssessCapability(values, 40, 50)
	require.NoError(t, err)

	assert.False(t, c.Uniform)
	assert.True(t, c.Centered)
	// Moving ranges average 0.6, so sigma-within is 0.6/1.128.
	assert.InDelta(t, 0.5319, c.SigmaWithin, 1e-3)
	assert.InDelta(t, 3.133, c.Cp, 1e-2)
	assert.InDelta(t, 2.781, c.Cpk, 1e-2)
	assert.InDelta(t, 4.027, c.Pp, 1e-2)
	assert.InDelta(t, 3.574, c.Ppk, 1e-2)
	assert.InDelta(t, c.Summary.Mean+3*c.Summary.StdDev, c.UCL, 1e-9)
	assert.InDelta(t, c.Summary.Mean-3*c.Summary.StdDev, c.LCL, 1e-9)
	assert.Equal(t, "excellent", CapabilityGrade(c))
}

func TestAssessCapabilityOffCenter(t *testing.T) {
	// Mean hugs the upper limit, so Cpk drops well below Cp.
	values := []float64{49, 49.5, 49.2, 49.8, 49.4}
	c, err := AssessCapability(values, 40, 50)
	require.NoError(t, err)
	assert.Less(t, c.Cpk, c.Cp)
	assert.Less(t, c.Ppk, c.Pp)
}

func TestAssessCapabilityUniformSeries(t *testing.T) {
	c, err := AssessCapability([]float64{45, 45, 45}, 40, 50)
	require.NoError(t, err)
	assert.True(t, c.Uniform)
	assert.Zero(t, c.Cp)
	assert.Equal(t, "perfectly uniform (no observed variation)", CapabilityGrade(c))
}

func TestAssessCapabilityInvalidLimits(t *testing.T) {
	_, err := AssessCapability([]float64{1, 2, 3}, 50, 40)
	assert.ErrorIs(t, err, ErrInvalidSpecLimits)

	_, err = AssessCapability([]float64{1, 2, 3}, 40, 40)
	assert.ErrorIs(t, err, ErrInvalidSpecLimits)
}

func TestOutOfSpec(t *testing.T) {
	assert.Equal(t, 2, OutOfSpec([]float64{39, 45, 51, 45}, 40, 50))
	assert.Zero(t, OutOfSpec([]float64{40, 50}, 40, 50))
}

func TestFitTrendRising(t *testing.T) {
	values := []float64{120.1, 120.3, 120.5, 121.2, 121.8, 122.3}
	tr, err := FitTrend(values, 0.05)
	require.NoError(t, err)

	assert.Equal(t, Rising, tr.Direction)
	assert.InDelta(t, 0.4629, tr.Slope, 1e-3)
	assert.Greater(t, tr.R2, 0.9)

	forecast := tr.Forecast(len(values), 3)
	require.Len(t, forecast, 3)
	for _, v := range forecast {
		assert.Greater(t, v, values[len(values)-1]-0.1)
	}
	assert.Greater(t, forecast[1], forecast[0])
}

func TestFitTrendFalling(t *testing.T) {
	tr, err := FitTrend([]float64{10, 9, 8, 7, 6}, 0.05)
	require.NoError(t, err)
	assert.Equal(t, Falling, tr.Direction)
	assert.InDelta(t, -1.0, tr.Slope, 1e-9)
	assert.InDelta(t, 1.0, tr.R2, 1e-9)
}

func TestFitTrendStableWithinThreshold(t *testing.T) {
	tr, err := FitTrend([]float64{100, 100.01, 100.0, 100.02, 100.01}, 0.05)
	require.NoError(t, err)
	assert.Equal(t, Stable, tr.Direction)
}

func TestFitTrendFlatSeries(t *testing.T) {
	tr, err := FitTrend([]float64{7, 7, 7, 7}, 0.05)
	require.NoError(t, err)
	assert.True(t, tr.Flat)
	assert.Zero(t, tr.Slope)
	assert.InDelta(t, 1.0, tr.R2, 1e-9)
	assert.Equal(t, Stable, tr.Direction)
	assert.Equal(t, []float64{7, 7}, tr.Forecast(4, 2))
}

func TestFitTrendInsufficientData(t *testing.T) {
	_, err := FitTrend([]float64{1}, 0.05)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestFitTrendOverElapsedTime(t *testing.T) {
	// Unevenly spaced samples on a perfect line, one unit of value per hour.
	xs := []float64{0, 1, 2, 4}
	values := []float64{10, 11, 12, 14}

	tr, err := FitTrendOver(xs, values, 0.05)
	require.NoError(t, err)
	assert.Equal(t, Rising, tr.Direction)
	assert.InDelta(t, 1.0, tr.Slope, 1e-9)
	assert.InDelta(t, 10.0, tr.Intercept, 1e-9)
	assert.InDelta(t, 1.0, tr.R2, 1e-9)

	forecast := tr.ForecastFrom(4, 2, 2)
	require.Len(t, forecast, 2)
	assert.InDelta(t, 16.0, forecast[0], 1e-9)
	assert.InDelta(t, 18.0, forecast[1], 1e-9)
}

func TestFitTrendOverRejectsBadAxis(t *testing.T) {
	_, err := FitTrendOver([]float64{0, 1}, []float64{1, 2, 3}, 0.05)
	assert.Error(t, err)

	_, err = FitTrendOver([]float64{0, 2, 1}, []float64{1, 2, 3}, 0.05)
	assert.Error(t, err)
}

func TestControlViolationsLimits(t *testing.T) {
	violations := ControlViolations([]float64{45, 52, 45, 38}, 40, 50)
	require.Len(t, violations, 2)
	assert.Equal(t, Violation{Index: 1, Rule: "above UCL"}, violations[0])
	assert.Equal(t, Violation{Index: 3, Rule: "below LCL"}, violations[1])
}

func TestControlViolationsRisingRun(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7}
	violations := ControlViolations(values, -100, 100)
	require.Len(t, violations, 1)
	assert.Equal(t, 6, violations[0].Index)
	assert.Contains(t, violations[0].Rule, "rising run")
}

func TestControlViolationsRunBrokenByTie(t *testing.T) {
	values := []float64{1, 2, 3, 3, 4, 5, 6, 7}
	violations := ControlViolations(values, -100, 100)
	assert.Empty(t, violations)
}
