package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/parse"
	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/report"
	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/scoring"
)

// EquipmentCompareTool implements the analyze_equipment_comparison MCP tool
type EquipmentCompareTool struct{}

// NewEquipmentCompareTool creates a new equipment fleet comparison tool
func NewEquipmentCompareTool() *EquipmentCompareTool {
	return &EquipmentCompareTool{}
}

// EquipmentCompareInput represents the input for analyze_equipment_comparison
type EquipmentCompareInput struct {
	MetricsData   string `json:"metrics_data"`
	Weights       string `json:"weights_csv,omitempty"`
	Benchmarks    string `json:"benchmark_csv,omitempty"`
	LowerIsBetter string `json:"lower_is_better,omitempty"`
}

// Execute runs the analyze_equipment_comparison tool
func (t *EquipmentCompareTool) Execute(ctx context.Context, input json.RawMessage) (string, error) {
	var params EquipmentCompareInput
	if err := json.Unmarshal(input, &params); err != nil {
		return "", fmt.Errorf("invalid input: %w", err)
	}

	groups, skippedEntries, err := parse.Groups(params.MetricsData)
	if err != nil {
		return "", fmt.Errorf("metrics_data: %w", err)
	}
	weights := parse.NewParameterSet()
	if params.Weights != "" {
		weights, err = parse.Parameters(params.Weights)
		if err != nil {
			return "", fmt.Errorf("weights_csv: %w", err)
		}
	}
	benchmarks := parse.NewParameterSet()
	if params.Benchmarks != "" {
		benchmarks, err = parse.Parameters(params.Benchmarks)
		if err != nil {
			return "", fmt.Errorf("benchmark_csv: %w", err)
		}
	}
	inverted := parse.List(params.LowerIsBetter, ";")
	if len(inverted) == 0 {
		inverted = parse.List(params.LowerIsBetter, ",")
	}

	ranked := make([]scoring.Ranked, 0, len(groups))
	perMetric := make(map[string]map[string]float64, len(groups))
	for _, g := range groups {
		var scores, metricWeights []float64
		perMetric[g.Name] = make(map[string]float64, len(g.Order))
		for _, metric := range g.Order {
			benchmark := 0.0
			if bm, ok := benchmarks.Get(metric); ok {
				benchmark = bm.Value
			}
			score := scoring.Normalize(g.Values[metric], benchmark, containsFold(inverted, metric))
			perMetric[g.Name][metric] = score

			weight := 1.0
			if w, ok := weights.Get(metric); ok {
				weight = w.Value
			}
			scores = append(scores, score)
			metricWeights = append(metricWeights, weight)
		}
		composite, err := scoring.Composite(scores, metricWeights)
		if err != nil {
			return "", fmt.Errorf("equipment %s: %w", g.Name, err)
		}
		ranked = append(ranked, scoring.Ranked{Label: g.Name, Score: composite})
	}
	ranked = scoring.Rank(ranked)

	b := report.NewBuilder()
	b.Title("Equipment Comparison")

	rows := make([][]string, 0, len(ranked))
	for i, r := range ranked {
		rows = append(rows, []string{fmt.Sprintf("%d", i+1), r.Label, report.Num(r.Score, 1)})
	}
	b.Table([]string{"Rank", "Equipment", "Composite Score"}, rows)

	// Per-metric breakdown in the metric order of the first group.
	if len(groups) > 0 {
		b.Section("Score Breakdown")
		headers := append([]string{"Equipment"}, groups[0].Order...)
		breakdown := make([][]string, 0, len(ranked))
		for _, r := range ranked {
			row := []string{r.Label}
			for _, metric := range groups[0].Order {
				if v, ok := perMetric[r.Label][metric]; ok {
					row = append(row, report.Num(v, 1))
				} else {
					row = append(row, "-")
				}
			}
			breakdown = append(breakdown, row)
		}
		b.Table(headers, breakdown)
	}

	b.Section("Summary")
	best := ranked[0]
	b.Line("%s leads the fleet at %s.", best.Label, report.Num(best.Score, 1))
	if len(ranked) > 1 {
		worst := ranked[len(ranked)-1]
		b.Line("%s trails at %s; review its weakest metrics in the breakdown above.", worst.Label, report.Num(worst.Score, 1))
	}

	appendSkipped(b, skippedEntries, weights.Skipped, benchmarks.Skipped)
	return b.String(), nil
}
