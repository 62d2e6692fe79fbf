package tools

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsAnalysis(t *testing.T) {
	tool := NewMetricsAnalysisTool()
	input := json.RawMessage(`{
		"period": "WW12",
		"metrics_data": "yield:96,uptime:88,throughput:210",
		"targets_data": "yield:98,uptime:90"
	}`)

	out, err := tool.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Contains(t, out, "behind")
	assert.Contains(t, out, "no target")
	assert.Contains(t, out, "Mean attainment")
	assert.Contains(t, out, "yield at 98.0% of target")
}

func TestSPCAnalysis(t *testing.T) {
	tool := NewSPCAnalysisTool()
	input := json.RawMessage(`{
		"parameter_name": "cd_linewidth",
		"data_points": "45.2,45.8,44.9,46.1,45.5,45.3,45.7,46.0",
		"usl": 50,
		"lsl": 40,
		"target": 45.5
	}`)

	out, err := tool.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Contains(t, out, "**Samples**: 8")
	assert.Contains(t, out, "**Mean**: 45.5625")
	assert.Contains(t, out, "**CV**: 0.91%")
	assert.Contains(t, out, "Cp")
	assert.Contains(t, out, "Ppk")
	assert.Contains(t, out, "excellent")
	assert.Contains(t, out, "No control rule violations")
}

func TestSPCAnalysisUniformSeries(t *testing.T) {
	tool := NewSPCAnalysisTool()
	input := json.RawMessage(`{"data_points": "45,45,45,45", "usl": 50, "lsl": 40}`)

	out, err := tool.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Contains(t, out, "no variation")
	assert.NotContains(t, out, "Cpk")
}

func TestSPCAnalysisControlLimitOverride(t *testing.T) {
	tool := NewSPCAnalysisTool()
	input := json.RawMessage(`{
		"data_points": "45.0,45.2,45.1,46.5,45.0",
		"usl": 50, "lsl": 40,
		"ucl": 46.0, "lcl": 44.0
	}`)

	out, err := tool.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Contains(t, out, "above UCL")
}

func TestSPCAnalysisInvalidLimits(t *testing.T) {
	tool := NewSPCAnalysisTool()
	input := json.RawMessage(`{"data_points": "1,2,3", "usl": 40, "lsl": 50}`)
	_, err := tool.Execute(context.Background(), input)
	require.Error(t, err)
}

func TestTrendAnalysis(t *testing.T) {
	tool := NewTrendAnalysisTool(DefaultOptions())
	input := json.RawMessage(`{
		"parameter_name": "etch_rate",
		"data_points": "120.1,120.3,120.5,121.2,121.8,122.3",
		"timestamps": "08:00,09:00,10:00,11:00,12:00,13:00",
		"usl": 125,
		"forecast_count": 8
	}`)

	out, err := tool.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Contains(t, out, "**Direction**: rising")
	assert.Contains(t, out, "**Window**: 08:00 to 13:00")
	assert.Contains(t, out, "Forecast")
	// Slope ~0.46/sample from 122-ish crosses 125 within 8 steps.
	assert.Contains(t, out, "Projected to exceed USL")
}

func TestTrendAnalysisElapsedTimeAxis(t *testing.T) {
	tool := NewTrendAnalysisTool(DefaultOptions())
	// Unix timestamps one, one and two hours apart; the fit runs against
	// elapsed hours, so the uneven gap does not distort the slope.
	input := json.RawMessage(`{
		"parameter_name": "thickness",
		"data_points": "10,11,12,14",
		"timestamps": "1700000000,1700003600,1700007200,1700014400",
		"forecast_count": 3
	}`)

	out, err := tool.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Contains(t, out, "**Slope**: +1.0000 per hour")
	// Forecast steps advance by the mean sample spacing (4/3 h).
	assert.Contains(t, out, "| +3 | 18.0000 |")
}

func TestTrendAnalysisTimestampCountMismatch(t *testing.T) {
	tool := NewTrendAnalysisTool(DefaultOptions())
	input := json.RawMessage(`{
		"data_points": "10,11,12,14",
		"timestamps": "1700000000,1700003600"
	}`)

	out, err := tool.Execute(context.Background(), input)
	require.NoError(t, err)
	// Falls back to the sample index when timestamps do not line up.
	assert.Contains(t, out, "per sample")
}

func TestTrendAnalysisForecastCapped(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxForecastPoints = 3
	tool := NewTrendAnalysisTool(opts)
	input := json.RawMessage(`{"data_points": "1,2,3,4", "forecast_count": 50}`)

	out, err := tool.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Contains(t, out, "+3")
	assert.NotContains(t, out, "+4")
}

func TestTrendAnalysisFlatSeries(t *testing.T) {
	tool := NewTrendAnalysisTool(DefaultOptions())
	input := json.RawMessage(`{"data_points": "7,7,7,7"}`)

	out, err := tool.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Contains(t, out, "**Direction**: stable")
	assert.Contains(t, out, "no variation across the series")
}

func TestEquipmentComparison(t *testing.T) {
	tool := NewEquipmentCompareTool()
	input := json.RawMessage(`{
		"metrics_data": "CMP-01:yield:98.5,defects:12;CMP-02:yield:97.0,defects:8",
		"weights_csv": "yield:2,defects:1",
		"benchmark_csv": "yield:98,defects:10",
		"lower_is_better": "defects"
	}`)

	out, err := tool.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Contains(t, out, "## Equipment Comparison")
	assert.Contains(t, out, "Score Breakdown")
	assert.Contains(t, out, "leads the fleet")

	// CMP-01: yield 100.5, defects 83.3 -> (2*100.5+83.3)/3 = 94.8
	// CMP-02: yield 99.0, defects 125.0 -> (2*99.0+125.0)/3 = 107.7
	first := strings.Index(out, "CMP-02")
	second := strings.Index(out, "CMP-01")
	assert.Less(t, first, second, "CMP-02 should rank first")
}

func TestEquipmentComparisonZeroWeights(t *testing.T) {
	tool := NewEquipmentCompareTool()
	input := json.RawMessage(`{
		"metrics_data": "CMP-01:yield:98.5",
		"weights_csv": "yield:0"
	}`)

	_, err := tool.Execute(context.Background(), input)
	require.Error(t, err)
}
