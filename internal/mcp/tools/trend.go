package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/parse"
	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/report"
	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/stats"
)

// TrendAnalysisTool implements the analyze_trend MCP tool
type TrendAnalysisTool struct {
	opts Options
}

// NewTrendAnalysisTool creates a new trend analysis tool
func NewTrendAnalysisTool(opts Options) *TrendAnalysisTool {
	return &TrendAnalysisTool{opts: opts}
}

// TrendAnalysisInput represents the input for analyze_trend
type TrendAnalysisInput struct {
	ParameterName string      `json:"parameter_name,omitempty"`
	DataPoints    string      `json:"data_points"`
	Timestamps    string      `json:"timestamps,omitempty"`
	USL           interface{} `json:"usl,omitempty"`
	LSL           interface{} `json:"lsl,omitempty"`
	ForecastCount interface{} `json:"forecast_count,omitempty"`
}

// Execute runs the analyze_trend tool
func (t *TrendAnalysisTool) Execute(ctx context.Context, input json.RawMessage) (string, error) {
	var params TrendAnalysisInput
	if err := json.Unmarshal(input, &params); err != nil {
		return "", fmt.Errorf("invalid input: %w", err)
	}

	values, skippedEntries, err := parse.Series(params.DataPoints)
	if err != nil {
		return "", fmt.Errorf("data_points: %w", err)
	}
	timestamps := parse.List(params.Timestamps, ",")

	// With usable timestamps the fit runs against elapsed hours instead of
	// the sample index, so unevenly spaced samples weigh in correctly.
	var elapsed []float64
	var timestampSkips []string
	if params.Timestamps != "" {
		secs, skips, err := parse.Timestamps(params.Timestamps)
		timestampSkips = skips
		if err == nil && len(secs) == len(values) && increasing(secs) {
			elapsed = make([]float64, len(secs))
			for i, s := range secs {
				elapsed[i] = float64(s-secs[0]) / 3600
			}
		}
	}

	var trend stats.Trend
	slopeUnit := "per sample"
	if elapsed != nil {
		trend, err = stats.FitTrendOver(elapsed, values, t.opts.StableSlopeBelow)
		slopeUnit = "per hour"
	} else {
		trend, err = stats.FitTrend(values, t.opts.StableSlopeBelow)
	}
	if err != nil {
		return "", err
	}

	forecastN := toIntDefault(params.ForecastCount, 5)
	if forecastN > t.opts.MaxForecastPoints {
		forecastN = t.opts.MaxForecastPoints
	}
	if forecastN < 0 {
		forecastN = 0
	}
	var forecast []float64
	if elapsed != nil {
		last := elapsed[len(elapsed)-1]
		step := last / float64(len(elapsed)-1)
		forecast = trend.ForecastFrom(last, step, forecastN)
	} else {
		forecast = trend.Forecast(len(values), forecastN)
	}

	b := report.NewBuilder()
	b.Title("Trend Analysis: " + report.OrDash(params.ParameterName))
	b.KeyValue("Samples", fmt.Sprintf("%d", len(values)))
	if len(timestamps) > 0 {
		first := timestamps[0]
		last := timestamps[len(timestamps)-1]
		b.KeyValue("Window", fmt.Sprintf("%s to %s", first, last))
	}
	b.KeyValue("Direction", string(trend.Direction))
	if trend.Flat {
		b.KeyValue("Fit", "no variation across the series")
	} else {
		b.KeyValue("Slope", report.SignedNum(trend.Slope, 4)+" "+slopeUnit)
		b.KeyValue("R²", report.Num(trend.R2, 3))
	}
	b.KeyValue("Last value", report.Num(values[len(values)-1], 4))

	if forecastN > 0 {
		b.Section("Forecast")
		rows := make([][]string, 0, len(forecast))
		for i, v := range forecast {
			rows = append(rows, []string{fmt.Sprintf("+%d", i+1), report.Num(v, 4)})
		}
		b.Table([]string{"Step", "Projected"}, rows)
	}

	if params.USL != nil || params.LSL != nil {
		b.Section("Limit Projection")
		usl := toFloatDefault(params.USL, 0)
		lsl := toFloatDefault(params.LSL, 0)
		crossed := false
		for i, v := range forecast {
			if params.USL != nil && v > usl {
				b.Line("Projected to exceed USL %s at forecast step +%d.", report.Num(usl, 4), i+1)
				crossed = true
				break
			}
			if params.LSL != nil && v < lsl {
				b.Line("Projected to fall below LSL %s at forecast step +%d.", report.Num(lsl, 4), i+1)
				crossed = true
				break
			}
		}
		if !crossed {
			b.Line("No spec limit crossing within the forecast horizon.")
		}
	}

	appendSkipped(b, skippedEntries, timestampSkips)
	return b.String(), nil
}

func increasing(secs []int64) bool {
	for i := 1; i < len(secs); i++ {
		if secs[i] <= secs[i-1] {
			return false
		}
	}
	return true
}
