package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/parse"
	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/report"
	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/scoring"
)

// MetricsAnalysisTool implements the analyze_metrics MCP tool
type MetricsAnalysisTool struct{}

// NewMetricsAnalysisTool creates a new KPI analysis tool
func NewMetricsAnalysisTool() *MetricsAnalysisTool {
	return &MetricsAnalysisTool{}
}

// MetricsAnalysisInput represents the input for analyze_metrics
type MetricsAnalysisInput struct {
	Period      string `json:"period,omitempty"`
	EquipmentID string `json:"equipment_id,omitempty"`
	MetricsData string `json:"metrics_data"`
	TargetsData string `json:"targets_data,omitempty"`
}

// Execute runs the analyze_metrics tool
func (t *MetricsAnalysisTool) Execute(ctx context.Context, input json.RawMessage) (string, error) {
	var params MetricsAnalysisInput
	if err := json.Unmarshal(input, &params); err != nil {
		return "", fmt.Errorf("invalid input: %w", err)
	}

	metrics, err := parse.Parameters(params.MetricsData)
	if err != nil {
		return "", fmt.Errorf("metrics_data: %w", err)
	}
	targets := parse.NewParameterSet()
	if strings.TrimSpace(params.TargetsData) != "" {
		targets, err = parse.Parameters(params.TargetsData)
		if err != nil {
			return "", fmt.Errorf("targets_data: %w", err)
		}
	}

	b := report.NewBuilder()
	b.Title("KPI Analysis")
	b.KeyValue("Period", report.OrDash(params.Period))
	b.KeyValue("Equipment", report.OrDash(params.EquipmentID))

	var rows [][]string
	var attainments []float64
	var behind []string
	for _, m := range metrics.Parameters() {
		target, ok := targets.Get(m.Name)
		if !ok {
			rows = append(rows, []string{m.Name, report.Num(m.Value, 2), "-", "-", "no target"})
			continue
		}
		attainment := scoring.Normalize(m.Value, target.Value, false)
		attainments = append(attainments, attainment)
		status := "on target"
		if attainment < 100 {
			status = "behind"
			behind = append(behind, fmt.Sprintf("%s at %s%% of target", m.Name, report.Num(attainment, 1)))
		}
		rows = append(rows, []string{m.Name, report.Num(m.Value, 2), report.Num(target.Value, 2),
			report.Num(attainment, 1) + "%", status})
	}
	b.Table([]string{"KPI", "Actual", "Target", "Attainment", "Status"}, rows)

	if len(attainments) > 0 {
		overall, err := scoring.Composite(attainments, nil)
		if err == nil {
			b.Section("Overall")
			b.KeyValue("Mean attainment", report.Num(overall, 1)+"%")
		}
	}

	b.Section("Attention Needed")
	b.Bullets(behind, "All targeted KPIs are at or above plan.")

	appendSkipped(b, metrics.Skipped, targets.Skipped)
	return b.String(), nil
}
