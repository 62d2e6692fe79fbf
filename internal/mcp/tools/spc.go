package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/parse"
	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/report"
	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/stats"
)

// SPCAnalysisTool implements the analyze_spc_data MCP tool
type SPCAnalysisTool struct{}

// NewSPCAnalysisTool creates a new statistical process control tool
func NewSPCAnalysisTool() *SPCAnalysisTool {
	return &SPCAnalysisTool{}
}

// SPCAnalysisInput represents the input for analyze_spc_data. Spec and
// control limits may arrive as JSON numbers or quoted strings.
type SPCAnalysisInput struct {
	ParameterName string      `json:"parameter_name,omitempty"`
	EquipmentID   string      `json:"equipment_id,omitempty"`
	DataPoints    string      `json:"data_points"`
	USL           interface{} `json:"usl"`
	LSL           interface{} `json:"lsl"`
	Target        interface{} `json:"target,omitempty"`
	UCL           interface{} `json:"ucl,omitempty"`
	LCL           interface{} `json:"lcl,omitempty"`
}

// Execute runs the analyze_spc_data tool
func (t *SPCAnalysisTool) Execute(ctx context.Context, input json.RawMessage) (string, error) {
	var params SPCAnalysisInput
	if err := json.Unmarshal(input, &params); err != nil {
		return "", fmt.Errorf("invalid input: %w", err)
	}

	values, skippedEntries, err := parse.Series(params.DataPoints)
	if err != nil {
		return "", fmt.Errorf("data_points: %w", err)
	}
	usl, err := toFloat(params.USL, "usl")
	if err != nil {
		return "", err
	}
	lsl, err := toFloat(params.LSL, "lsl")
	if err != nil {
		return "", err
	}

	cap, err := stats.AssessCapability(values, lsl, usl)
	if err != nil {
		return "", err
	}

	// Caller-supplied control limits override the computed ±3σ limits.
	ucl := toFloatDefault(params.UCL, cap.UCL)
	lcl := toFloatDefault(params.LCL, cap.LCL)
	violations := stats.ControlViolations(values, lcl, ucl)

	b := report.NewBuilder()
	b.Title("SPC Analysis: " + report.OrDash(params.ParameterName))
	b.KeyValue("Equipment", report.OrDash(params.EquipmentID))
	b.KeyValue("Samples", fmt.Sprintf("%d", cap.Summary.Count))
	b.KeyValue("Mean", report.Num(cap.Summary.Mean, 4))
	b.KeyValue("Std Dev", report.Num(cap.Summary.StdDev, 4))
	b.KeyValue("CV", report.Num(stats.CoefficientOfVariation(cap.Summary), 2)+"%")
	b.KeyValue("Range", fmt.Sprintf("%s to %s", report.Num(cap.Summary.Min, 4), report.Num(cap.Summary.Max, 4)))
	if params.Target != nil {
		target := toFloatDefault(params.Target, 0)
		b.KeyValue("Offset from target", report.SignedNum(cap.Summary.Mean-target, 4))
	}

	b.Section("Capability")
	if cap.Uniform {
		b.Line("The series shows no variation; capability indices are undefined for a perfectly uniform process.")
	} else {
		b.Table([]string{"Index", "Value"}, [][]string{
			{"Cp", report.Num(cap.Cp, 2)},
			{"Cpk", report.Num(cap.Cpk, 2)},
			{"Pp", report.Num(cap.Pp, 2)},
			{"Ppk", report.Num(cap.Ppk, 2)},
		})
		b.KeyValue("Assessment", stats.CapabilityGrade(cap))
	}
	if n := stats.OutOfSpec(values, lsl, usl); n > 0 {
		b.KeyValue("Out-of-spec points", fmt.Sprintf("%d of %d", n, len(values)))
	}

	b.Section("Control Limits")
	b.KeyValue("UCL", report.Num(ucl, 4))
	b.KeyValue("LCL", report.Num(lcl, 4))

	b.Section("Rule Violations")
	if len(violations) == 0 {
		b.Line("No control rule violations detected.")
	} else {
		rows := make([][]string, 0, len(violations))
		for _, v := range violations {
			rows = append(rows, []string{fmt.Sprintf("%d", v.Index+1), report.Num(values[v.Index], 4), v.Rule})
		}
		b.Table([]string{"Sample", "Value", "Rule"}, rows)
	}

	appendSkipped(b, skippedEntries)
	return b.String(), nil
}
