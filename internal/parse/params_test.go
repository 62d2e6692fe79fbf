package parse

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParametersValueOnly(t *testing.T) {
	set, err := Parameters("temperature:67,pressure:28")
	require.NoError(t, err)
	require.Equal(t, 2, set.Len())

	p, ok := set.Get("temperature")
	require.True(t, ok)
	assert.True(t, p.HasValue)
	assert.False(t, p.HasRange)
	assert.InDelta(t, 67.0, p.Value, 1e-9)

	assert.Equal(t, []string{"temperature", "pressure"}, set.Names())
}

func TestParametersColonAndDashRangesAreEquivalent(t *testing.T) {
	colon, err := Parameters("temperature:100:130")
	require.NoError(t, err)
	dash, err := Parameters("temperature:100-130")
	require.NoError(t, err)

	pc, _ := colon.Get("temperature")
	pd, _ := dash.Get("temperature")
	assert.Equal(t, pc, pd)
	assert.True(t, pc.HasRange)
	assert.InDelta(t, 100.0, pc.Min, 1e-9)
	assert.InDelta(t, 130.0, pc.Max, 1e-9)
	assert.False(t, pc.HasValue)
}

func TestParametersValueWithRangeAndUnit(t *testing.T) {
	set, err := Parameters("temperature:60:55:65:C,pressure:30:25:35:mTorr")
	require.NoError(t, err)

	p, ok := set.Get("temperature")
	require.True(t, ok)
	assert.True(t, p.HasValue)
	assert.True(t, p.HasRange)
	assert.InDelta(t, 60.0, p.Value, 1e-9)
	assert.InDelta(t, 55.0, p.Min, 1e-9)
	assert.InDelta(t, 65.0, p.Max, 1e-9)
	assert.Equal(t, "C", p.Unit)

	q, _ := set.Get("pressure")
	assert.Equal(t, "mTorr", q.Unit)
}

func TestParametersNegativeValuesAreNotRanges(t *testing.T) {
	set, err := Parameters("offset:-10")
	require.NoError(t, err)
	p, _ := set.Get("offset")
	assert.True(t, p.HasValue)
	assert.False(t, p.HasRange)
	assert.InDelta(t, -10.0, p.Value, 1e-9)
}

func TestParametersNegativeDashRange(t *testing.T) {
	set, err := Parameters("bias:-10--5")
	require.NoError(t, err)
	p, _ := set.Get("bias")
	assert.True(t, p.HasRange)
	assert.InDelta(t, -10.0, p.Min, 1e-9)
	assert.InDelta(t, -5.0, p.Max, 1e-9)
}

func TestParametersSkipMalformedEntries(t *testing.T) {
	set, err := Parameters("temperature:120,broken,pressure:abc,time:300")
	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())
	assert.Len(t, set.Skipped, 2)

	_, ok := set.Get("time")
	assert.True(t, ok)
}

func TestParametersInvertedRangeSkipped(t *testing.T) {
	set, err := Parameters("temperature:130:100,pressure:25:35")
	require.NoError(t, err)
	assert.Equal(t, 1, set.Len())
	assert.Len(t, set.Skipped, 1)
}

func TestParametersEmptyInput(t *testing.T) {
	_, err := Parameters("")
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = Parameters("   ")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestParametersAllEntriesInvalid(t *testing.T) {
	_, err := Parameters("nonsense,also:bad:values:here:extra:tokens")
	assert.ErrorIs(t, err, ErrAllEntriesInvalid)
}

func TestParametersDuplicateNameKeepsLast(t *testing.T) {
	set, err := Parameters("temperature:100,temperature:120")
	require.NoError(t, err)
	assert.Equal(t, 1, set.Len())
	p, _ := set.Get("temperature")
	assert.InDelta(t, 120.0, p.Value, 1e-9)
}

func TestTolerancesPercentFlag(t *testing.T) {
	set, err := Tolerances("temperature:5%,pressure:10")
	require.NoError(t, err)

	rel, ok := set.Get("temperature")
	require.True(t, ok)
	assert.True(t, rel.Relative)
	assert.InDelta(t, 5.0, rel.Value, 1e-9)

	abs, ok := set.Get("pressure")
	require.True(t, ok)
	assert.False(t, abs.Relative)
	assert.InDelta(t, 10.0, abs.Value, 1e-9)
}

func TestTolerancesPercentOutOfRangeSkipped(t *testing.T) {
	set, err := Tolerances("a:120%,b:5%")
	require.NoError(t, err)
	assert.Equal(t, 1, set.Len())
	assert.Len(t, set.Skipped, 1)
}

func TestSeries(t *testing.T) {
	values, skippedEntries, err := Series("45.2,45.8,44.9,46.1")
	require.NoError(t, err)
	assert.Empty(t, skippedEntries)
	assert.Equal(t, []float64{45.2, 45.8, 44.9, 46.1}, values)
}

func TestSeriesSkipsBadPoints(t *testing.T) {
	values, skippedEntries, err := Series("1.0,oops,2.0")
	require.NoError(t, err)
	assert.Len(t, skippedEntries, 1)
	assert.Equal(t, []float64{1.0, 2.0}, values)
}

func TestSeriesEmpty(t *testing.T) {
	_, _, err := Series(" ")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestList(t *testing.T) {
	assert.Equal(t, []string{"temperature", "pressure"}, List("temperature, pressure", ","))
	assert.Equal(t, []string{"a", "b"}, List("a;;b;", ";"))
	assert.Empty(t, List("", ","))
}

func TestStringMapPreservesOrder(t *testing.T) {
	keys, values, err := StringMap("in:200,out:195,target:200,yield:98.2")
	require.NoError(t, err)
	assert.Equal(t, []string{"in", "out", "target", "yield"}, keys)
	assert.Equal(t, "98.2", values["yield"])
}

// Round trip: a parameter set rendered back to its string form parses to an
// equivalent structure.
func TestParameterRoundTrip(t *testing.T) {
	original, err := Parameters("temperature:60:55:65:C,pressure:30,ratio:0.5-1.5")
	require.NoError(t, err)

	rendered := ""
	for i, p := range original.Parameters() {
		if i > 0 {
			rendered += ","
		}
		rendered += renderParameter(p)
	}

	reparsed, err := Parameters(rendered)
	require.NoError(t, err)
	require.Equal(t, original.Len(), reparsed.Len())
	for _, name := range original.Names() {
		a, _ := original.Get(name)
		b, ok := reparsed.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, a.HasValue, b.HasValue, name)
		assert.Equal(t, a.HasRange, b.HasRange, name)
		assert.InDelta(t, a.Value, b.Value, 1e-9, name)
		assert.InDelta(t, a.Min, b.Min, 1e-9, name)
		assert.InDelta(t, a.Max, b.Max, 1e-9, name)
	}
}

func renderParameter(p Parameter) string {
	s := p.Name
	switch {
	case p.HasValue && p.HasRange:
		s += ":" + formatFloat(p.Value) + ":" + formatFloat(p.Min) + ":" + formatFloat(p.Max)
	case p.HasRange:
		s += ":" + formatFloat(p.Min) + ":" + formatFloat(p.Max)
	default:
		s += ":" + formatFloat(p.Value)
	}
	if p.Unit != "" {
		s += ":" + p.Unit
	}
	return s
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
