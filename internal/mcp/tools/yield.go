package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/parse"
	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/report"
	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/scoring"
)

// YieldImpactTool implements the calculate_yield_impact MCP tool
type YieldImpactTool struct{}

// NewYieldImpactTool creates a new yield impact tool
func NewYieldImpactTool() *YieldImpactTool {
	return &YieldImpactTool{}
}

// YieldImpactInput represents the input for calculate_yield_impact
type YieldImpactInput struct {
	BaselineYield   interface{} `json:"baseline_yield"`
	Changes         string      `json:"changes_csv"`
	Interactions    string      `json:"interactions_csv,omitempty"`
	ConfidenceLevel string      `json:"confidence_level,omitempty"`
	ModelType       string      `json:"model_type,omitempty"`
}

// Execute runs the calculate_yield_impact tool
func (t *YieldImpactTool) Execute(ctx context.Context, input json.RawMessage) (string, error) {
	var params YieldImpactInput
	if err := json.Unmarshal(input, &params); err != nil {
		return "", fmt.Errorf("invalid input: %w", err)
	}

	baseline, err := toFloat(params.BaselineYield, "baseline_yield")
	if err != nil {
		return "", err
	}
	if baseline < 0 || baseline > 100 {
		return "", fmt.Errorf("baseline_yield %v outside [0, 100]", baseline)
	}
	changes, changeSkips, err := parse.Changes(params.Changes)
	if err != nil {
		return "", fmt.Errorf("changes_csv: %w", err)
	}
	var interactions []parse.Interaction
	var interactionSkips []string
	if params.Interactions != "" {
		interactions, interactionSkips, err = parse.Interactions(params.Interactions)
		if err != nil {
			return "", fmt.Errorf("interactions_csv: %w", err)
		}
	}

	projected, contribs := scoring.YieldImpact(baseline, changes, interactions)

	model := params.ModelType
	if model == "" {
		model = "linear"
	}

	b := report.NewBuilder()
	b.Title("Yield Impact Projection")
	b.KeyValue("Model", model)
	b.KeyValue("Confidence level", report.OrDash(params.ConfidenceLevel))
	b.KeyValue("Baseline yield", report.Num(baseline, 2)+"%")
	b.KeyValue("Projected yield", report.Num(projected, 2)+"%")
	b.KeyValue("Net change", report.SignedNum(projected-baseline, 2)+" pts")

	b.Section("Contributions")
	rows := make([][]string, 0, len(contribs))
	for _, c := range contribs {
		rows = append(rows, []string{c.Label, report.SignedNum(c.Delta, 2)})
	}
	b.Table([]string{"Source", "Yield Delta"}, rows)

	if projected == 0 || projected == 100 {
		b.Section("Note")
		b.Line("Projection hit the physical yield bound; the linear model is extrapolating beyond its useful range.")
	}

	appendSkipped(b, changeSkips, interactionSkips)
	return b.String(), nil
}
