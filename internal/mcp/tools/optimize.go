package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/parse"
	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/report"
	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/scoring"
)

// RecipeOptimizeTool implements the optimize_recipe_direction MCP tool
type RecipeOptimizeTool struct{}

// NewRecipeOptimizeTool creates a new recipe optimization tool
func NewRecipeOptimizeTool() *RecipeOptimizeTool {
	return &RecipeOptimizeTool{}
}

// RecipeOptimizeInput represents the input for optimize_recipe_direction.
// Sensitivities use the impact rule syntax "param->metric:effect[:per_unit]".
type RecipeOptimizeInput struct {
	Recipe        string `json:"recipe_csv"`
	Performance   string `json:"perf_csv"`
	Targets       string `json:"target_csv"`
	Sensitivities string `json:"sensitivity_csv"`
	Constraints   string `json:"constraints_csv,omitempty"`
}

// Execute runs the optimize_recipe_direction tool
func (t *RecipeOptimizeTool) Execute(ctx context.Context, input json.RawMessage) (string, error) {
	var params RecipeOptimizeInput
	if err := json.Unmarshal(input, &params); err != nil {
		return "", fmt.Errorf("invalid input: %w", err)
	}

	recipe, err := parse.Parameters(params.Recipe)
	if err != nil {
		return "", fmt.Errorf("recipe_csv: %w", err)
	}
	perf, err := parse.Parameters(params.Performance)
	if err != nil {
		return "", fmt.Errorf("perf_csv: %w", err)
	}
	targets, err := parse.Parameters(params.Targets)
	if err != nil {
		return "", fmt.Errorf("target_csv: %w", err)
	}
	rules, ruleSkips, err := parse.Rules(params.Sensitivities)
	if err != nil {
		return "", fmt.Errorf("sensitivity_csv: %w", err)
	}
	constraints := parse.NewParameterSet()
	if params.Constraints != "" {
		constraints, err = parse.Parameters(params.Constraints)
		if err != nil {
			return "", fmt.Errorf("constraints_csv: %w", err)
		}
	}

	b := report.NewBuilder()
	b.Title("Recipe Optimization Directions")

	b.Section("Performance Gaps")
	type gap struct {
		metric  string
		current float64
		target  float64
	}
	var gaps []gap
	gapRows := make([][]string, 0, targets.Len())
	for _, tgt := range targets.Parameters() {
		cur, ok := perf.Get(tgt.Name)
		if !ok {
			gapRows = append(gapRows, []string{tgt.Name, "-", report.Num(tgt.Value, 2), "no reading"})
			continue
		}
		g := gap{metric: tgt.Name, current: cur.Value, target: tgt.Value}
		gaps = append(gaps, g)
		gapRows = append(gapRows, []string{tgt.Name, report.Num(cur.Value, 2), report.Num(tgt.Value, 2),
			report.SignedNum(tgt.Value-cur.Value, 2)})
	}
	b.Table([]string{"Metric", "Current", "Target", "Gap"}, gapRows)

	b.Section("Recommended Moves")
	var moves []string
	for _, g := range gaps {
		needed := g.target - g.current
		if needed == 0 {
			continue
		}
		for _, r := range rules {
			if r.Target != g.metric || r.Source == "" || r.Effect == 0 {
				continue
			}
			perUnit := r.PerUnit
			if perUnit == 0 {
				perUnit = 1
			}
			// Parameter delta that closes the gap at the stated sensitivity.
			delta := needed / r.Effect * perUnit

			cur, ok := recipe.Get(r.Source)
			if !ok {
				moves = append(moves, fmt.Sprintf("%s: adjust by %s to close the %s gap (no current setting on record)",
					r.Source, report.SignedNum(delta, 2), g.metric))
				continue
			}
			proposed := cur.Value + delta
			note := ""
			if c, hasWindow := constraints.Get(r.Source); hasWindow && c.HasRange {
				clamped := scoring.Clamp(proposed, c.Min, c.Max)
				if clamped != proposed {
					note = fmt.Sprintf(" (clamped to window [%s, %s])", report.Num(c.Min, 2), report.Num(c.Max, 2))
					proposed = clamped
				}
			}
			moves = append(moves, fmt.Sprintf("%s: %s -> %s for the %s gap%s",
				r.Source, report.Num(cur.Value, 2), report.Num(proposed, 2), g.metric, note))
		}
	}
	b.Bullets(moves, "All targeted metrics are already on target.")

	appendSkipped(b, recipe.Skipped, perf.Skipped, targets.Skipped, ruleSkips, constraints.Skipped)
	return b.String(), nil
}
