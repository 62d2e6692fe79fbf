package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/parse"
	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/report"
	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/scoring"
)

// DefectRiskTool implements the predict_defect_risk MCP tool
type DefectRiskTool struct{}

// NewDefectRiskTool creates a new FMEA-style defect risk tool
func NewDefectRiskTool() *DefectRiskTool {
	return &DefectRiskTool{}
}

// DefectRiskInput represents the input for predict_defect_risk
type DefectRiskInput struct {
	ProcessName    string `json:"process_name,omitempty"`
	WindowParams   string `json:"window_params"`
	CurrentParams  string `json:"current_params"`
	SeverityParams string `json:"severity_params,omitempty"`
	CriticalParams string `json:"critical_params,omitempty"`
}

// Severity defaults when the caller supplies none.
const (
	defaultSeverity  = 5
	criticalSeverity = 8
)

// Execute runs the predict_defect_risk tool
func (t *DefectRiskTool) Execute(ctx context.Context, input json.RawMessage) (string, error) {
	var params DefectRiskInput
	if err := json.Unmarshal(input, &params); err != nil {
		return "", fmt.Errorf("invalid input: %w", err)
	}

	windows, err := parse.Parameters(params.WindowParams)
	if err != nil {
		return "", fmt.Errorf("window_params: %w", err)
	}
	current, err := parse.Parameters(params.CurrentParams)
	if err != nil {
		return "", fmt.Errorf("current_params: %w", err)
	}
	severities := parse.NewParameterSet()
	if params.SeverityParams != "" {
		severities, err = parse.Parameters(params.SeverityParams)
		if err != nil {
			return "", fmt.Errorf("severity_params: %w", err)
		}
	}
	critical := parse.List(params.CriticalParams, ";")
	if len(critical) == 0 {
		critical = parse.List(params.CriticalParams, ",")
	}

	var entries []scoring.FMEAEntry
	var unreported []string
	for _, w := range windows.Parameters() {
		if !w.HasRange {
			continue
		}
		cur, ok := current.Get(w.Name)
		if !ok {
			unreported = append(unreported, w.Name)
			continue
		}

		severity := defaultSeverity
		if containsFold(critical, w.Name) {
			severity = criticalSeverity
		}
		if s, ok := severities.Get(w.Name); ok {
			severity = int(s.Value)
		}
		entries = append(entries, scoring.ScoreFMEA(w.Name, cur.Value, w.Min, w.Max, severity))
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("no window parameter has a current reading to assess")
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].RPN > entries[j].RPN })

	b := report.NewBuilder()
	b.Title("Defect Risk Assessment: " + report.OrDash(params.ProcessName))

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		inWindow := "yes"
		if !e.InWindow {
			inWindow = "NO"
		}
		rows = append(rows, []string{e.Name, fmt.Sprintf("%d", e.Severity), fmt.Sprintf("%d", e.Occurrence),
			fmt.Sprintf("%d", e.Detection), fmt.Sprintf("%d", e.RPN), string(e.Tier), inWindow})
	}
	b.Table([]string{"Parameter", "S", "O", "D", "RPN", "Tier", "In Window"}, rows)

	b.Section("Overall Risk")
	top := entries[0]
	b.KeyValue("Highest RPN", fmt.Sprintf("%d (%s)", top.RPN, top.Name))
	b.KeyValue("Risk tier", string(top.Tier))
	switch top.Tier {
	case scoring.RiskHigh:
		b.Line("Immediate action required on %s before the next lot start.", top.Name)
	case scoring.RiskMedium:
		b.Line("Schedule corrective work on %s within the current shift.", top.Name)
	default:
		b.Line("Risk profile acceptable; continue routine monitoring.")
	}

	if len(unreported) > 0 {
		b.Section("Unassessed Parameters")
		b.Bullets(unreported, "")
	}

	appendSkipped(b, windows.Skipped, current.Skipped, severities.Skipped)
	return b.String(), nil
}
