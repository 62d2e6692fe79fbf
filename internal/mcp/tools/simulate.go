package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/parse"
	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/report"
	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/scoring"
)

// ParameterSimulateTool implements the simulate_parameter_change MCP tool
type ParameterSimulateTool struct{}

// NewParameterSimulateTool creates a new parameter change simulation tool
func NewParameterSimulateTool() *ParameterSimulateTool {
	return &ParameterSimulateTool{}
}

// ParameterSimulateInput represents the input for simulate_parameter_change.
// state_csv carries named sections ("recipe:...;performance:...").
type ParameterSimulateInput struct {
	State        string `json:"state_csv"`
	Changes      string `json:"changes_csv"`
	Rules        string `json:"rules_csv"`
	Windows      string `json:"window_csv,omitempty"`
	Interactions string `json:"interactions_csv,omitempty"`
}

// Execute runs the simulate_parameter_change tool
func (t *ParameterSimulateTool) Execute(ctx context.Context, input json.RawMessage) (string, error) {
	var params ParameterSimulateInput
	if err := json.Unmarshal(input, &params); err != nil {
		return "", fmt.Errorf("invalid input: %w", err)
	}

	groups, groupSkips, err := parse.Groups(params.State)
	if err != nil {
		return "", fmt.Errorf("state_csv: %w", err)
	}
	changes, changeSkips, err := parse.Changes(params.Changes)
	if err != nil {
		return "", fmt.Errorf("changes_csv: %w", err)
	}
	rules, ruleSkips, err := parse.Rules(params.Rules)
	if err != nil {
		return "", fmt.Errorf("rules_csv: %w", err)
	}
	windows := parse.NewParameterSet()
	if params.Windows != "" {
		windows, err = parse.Parameters(params.Windows)
		if err != nil {
			return "", fmt.Errorf("window_csv: %w", err)
		}
	}
	var interactions []parse.Interaction
	var interactionSkips []string
	if params.Interactions != "" {
		interactions, interactionSkips, err = parse.Interactions(params.Interactions)
		if err != nil {
			return "", fmt.Errorf("interactions_csv: %w", err)
		}
	}

	effects, flags := scoring.Simulate(changes, rules, windows)

	// Interaction terms land on their named metric once both parameters move.
	changed := make(map[string]bool, len(changes))
	for _, c := range changes {
		changed[c.Param] = true
	}
	for _, it := range interactions {
		if !changed[it.ParamA] || !changed[it.ParamB] || it.Target == "" {
			continue
		}
		effects = append(effects, scoring.Effect{
			Target: it.Target,
			Delta:  it.Effect,
			Cause:  it.ParamA + " x " + it.ParamB,
		})
	}
	order, totals := scoring.NetByTarget(effects)

	// Current metric values come from the "performance" section when present.
	var perf *parse.Group
	for i := range groups {
		if groups[i].Name == "performance" {
			perf = &groups[i]
			break
		}
	}

	b := report.NewBuilder()
	b.Title("Parameter Change Simulation")

	b.Section("Proposed Changes")
	changeRows := make([][]string, 0, len(changes))
	for _, c := range changes {
		changeRows = append(changeRows, []string{c.Param, report.Num(c.Start, 2), report.Num(c.End, 2),
			report.SignedNum(c.End-c.Start, 2)})
	}
	b.Table([]string{"Parameter", "From", "To", "Delta"}, changeRows)

	b.Section("Projected Metric Impact")
	if len(order) == 0 {
		b.Line("No impact rule matches the proposed changes.")
	} else {
		rows := make([][]string, 0, len(order))
		for _, target := range order {
			current := "-"
			projected := "-"
			if perf != nil {
				if v, ok := perf.Values[target]; ok {
					current = report.Num(v, 2)
					projected = report.Num(v+totals[target], 2)
				}
			}
			rows = append(rows, []string{target, current, report.SignedNum(totals[target], 2), projected})
		}
		b.Table([]string{"Metric", "Current", "Net Change", "Projected"}, rows)
	}

	b.Section("Contributions")
	contribRows := make([][]string, 0, len(effects))
	for _, e := range effects {
		contribRows = append(contribRows, []string{e.Cause, e.Target, report.SignedNum(e.Delta, 2)})
	}
	b.Table([]string{"Cause", "Metric", "Effect"}, contribRows)

	b.Section("Window Check")
	if len(flags) == 0 {
		b.Line("All proposed end values stay inside their process windows.")
	} else {
		for _, f := range flags {
			b.Line("- **%s**: %s", f.Param, f.Reason)
		}
	}

	appendSkipped(b, groupSkips, changeSkips, ruleSkips, windows.Skipped, interactionSkips)
	return b.String(), nil
}
