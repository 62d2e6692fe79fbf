package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/parse"
	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/report"
	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/scoring"
)

// BaselineCompareTool implements the compare_to_baseline MCP tool
type BaselineCompareTool struct{}

// NewBaselineCompareTool creates a new baseline comparison tool
func NewBaselineCompareTool() *BaselineCompareTool {
	return &BaselineCompareTool{}
}

// BaselineCompareInput represents the input for compare_to_baseline
type BaselineCompareInput struct {
	RecipeName     string `json:"recipe_name,omitempty"`
	BaselineParams string `json:"baseline_params"`
	CurrentParams  string `json:"current_params"`
}

// Execute runs the compare_to_baseline tool
func (t *BaselineCompareTool) Execute(ctx context.Context, input json.RawMessage) (string, error) {
	var params BaselineCompareInput
	if err := json.Unmarshal(input, &params); err != nil {
		return "", fmt.Errorf("invalid input: %w", err)
	}

	baseline, err := parse.Parameters(params.BaselineParams)
	if err != nil {
		return "", fmt.Errorf("baseline_params: %w", err)
	}
	current, err := parse.Parameters(params.CurrentParams)
	if err != nil {
		return "", fmt.Errorf("current_params: %w", err)
	}

	b := report.NewBuilder()
	b.Title("Baseline Comparison: " + report.OrDash(params.RecipeName))

	var rows [][]string
	var deviations []string
	for _, base := range baseline.Parameters() {
		cur, ok := current.Get(base.Name)
		if !ok {
			rows = append(rows, []string{base.Name, formatValue(base), "not reported", "-", "-"})
			deviations = append(deviations, fmt.Sprintf("%s: no current reading", base.Name))
			continue
		}

		delta := cur.Value - base.Value
		deltaPct := "-"
		if base.HasValue && base.Value != 0 {
			deltaPct = report.SignedNum(100*delta/base.Value, 1) + "%"
		}
		status := "ok"
		if base.HasRange && (cur.Value < base.Min || cur.Value > base.Max) {
			status = "OUT OF RANGE"
			deviations = append(deviations, fmt.Sprintf("%s: %s outside [%s, %s]",
				base.Name, report.Num(cur.Value, 2), report.Num(base.Min, 2), report.Num(base.Max, 2)))
		}
		rows = append(rows, []string{base.Name, formatValue(base), report.Num(cur.Value, 2), deltaPct, status})
	}
	for _, cur := range current.Parameters() {
		if _, ok := baseline.Get(cur.Name); !ok {
			rows = append(rows, []string{cur.Name, "-", report.Num(cur.Value, 2), "-", "not in baseline"})
		}
	}
	b.Table([]string{"Parameter", "Baseline", "Current", "Delta", "Status"}, rows)

	b.Section("Deviations")
	b.Bullets(deviations, "All reported parameters are within their baseline ranges.")

	appendSkipped(b, baseline.Skipped, current.Skipped)
	return b.String(), nil
}

func formatValue(p parse.Parameter) string {
	s := "-"
	if p.HasValue {
		s = report.Num(p.Value, 2)
	} else if p.HasRange {
		s = fmt.Sprintf("[%s, %s]", report.Num(p.Min, 2), report.Num(p.Max, 2))
	}
	if p.Unit != "" {
		s += " " + p.Unit
	}
	return s
}

// RecipeCompareTool implements the compare_two_recipes MCP tool
type RecipeCompareTool struct{}

// NewRecipeCompareTool creates a new recipe-to-recipe comparison tool
func NewRecipeCompareTool() *RecipeCompareTool {
	return &RecipeCompareTool{}
}

// RecipeCompareInput represents the input for compare_two_recipes
type RecipeCompareInput struct {
	RecipeAName     string `json:"recipe_a_name,omitempty"`
	RecipeBName     string `json:"recipe_b_name,omitempty"`
	RecipeAParams   string `json:"recipe_a_params"`
	RecipeBParams   string `json:"recipe_b_params"`
	ToleranceParams string `json:"tolerance_params,omitempty"`
}

// Execute runs the compare_two_recipes tool
func (t *RecipeCompareTool) Execute(ctx context.Context, input json.RawMessage) (string, error) {
	var params RecipeCompareInput
	if err := json.Unmarshal(input, &params); err != nil {
		return "", fmt.Errorf("invalid input: %w", err)
	}

	recipeA, err := parse.Parameters(params.RecipeAParams)
	if err != nil {
		return "", fmt.Errorf("recipe_a_params: %w", err)
	}
	recipeB, err := parse.Parameters(params.RecipeBParams)
	if err != nil {
		return "", fmt.Errorf("recipe_b_params: %w", err)
	}
	tolerances := parse.NewToleranceSet()
	if strings.TrimSpace(params.ToleranceParams) != "" {
		tolerances, err = parse.Tolerances(params.ToleranceParams)
		if err != nil {
			return "", fmt.Errorf("tolerance_params: %w", err)
		}
	}

	nameA := report.OrDash(params.RecipeAName)
	nameB := report.OrDash(params.RecipeBName)

	b := report.NewBuilder()
	b.Title(fmt.Sprintf("Recipe Comparison: %s vs %s", nameA, nameB))

	var rows [][]string
	var exceeded []string
	matched := 0
	for _, pa := range recipeA.Parameters() {
		pb, ok := recipeB.Get(pa.Name)
		if !ok {
			rows = append(rows, []string{pa.Name, report.Num(pa.Value, 2), "-", "-", "only in " + nameA})
			continue
		}
		delta := pb.Value - pa.Value
		verdict := "match"
		if tol, hasTol := tolerances.Get(pa.Name); hasTol {
			limit := tol.Value
			if tol.Relative {
				limit = math.Abs(pa.Value) * tol.Value / 100
			}
			if math.Abs(delta) > limit {
				verdict = "EXCEEDS TOLERANCE"
				exceeded = append(exceeded, fmt.Sprintf("%s: delta %s beyond ±%s",
					pa.Name, report.SignedNum(delta, 2), report.Num(limit, 2)))
			} else {
				verdict = "within tolerance"
			}
		} else if delta != 0 {
			verdict = "differs"
		}
		if verdict == "match" || verdict == "within tolerance" {
			matched++
		}
		rows = append(rows, []string{pa.Name, report.Num(pa.Value, 2), report.Num(pb.Value, 2), report.SignedNum(delta, 2), verdict})
	}
	for _, pb := range recipeB.Parameters() {
		if _, ok := recipeA.Get(pb.Name); !ok {
			rows = append(rows, []string{pb.Name, "-", report.Num(pb.Value, 2), "-", "only in " + nameB})
		}
	}
	b.Table([]string{"Parameter", nameA, nameB, "Delta", "Verdict"}, rows)

	b.Section("Summary")
	b.KeyValue("Shared parameters in agreement", fmt.Sprintf("%d", matched))
	b.Blank()
	b.Bullets(exceeded, "No tolerance violations.")

	appendSkipped(b, recipeA.Skipped, recipeB.Skipped, tolerances.Skipped)
	return b.String(), nil
}

// WindowValidateTool implements the validate_process_window MCP tool
type WindowValidateTool struct{}

// NewWindowValidateTool creates a new process window validation tool
func NewWindowValidateTool() *WindowValidateTool {
	return &WindowValidateTool{}
}

// WindowValidateInput represents the input for validate_process_window
type WindowValidateInput struct {
	ProcessName    string `json:"process_name,omitempty"`
	WindowParams   string `json:"window_params"`
	TestParams     string `json:"test_params"`
	CriticalParams string `json:"critical_params,omitempty"`
}

// Execute runs the validate_process_window tool
func (t *WindowValidateTool) Execute(ctx context.Context, input json.RawMessage) (string, error) {
	var params WindowValidateInput
	if err := json.Unmarshal(input, &params); err != nil {
		return "", fmt.Errorf("invalid input: %w", err)
	}

	windows, err := parse.Parameters(params.WindowParams)
	if err != nil {
		return "", fmt.Errorf("window_params: %w", err)
	}
	tests, err := parse.Parameters(params.TestParams)
	if err != nil {
		return "", fmt.Errorf("test_params: %w", err)
	}
	critical := parse.List(params.CriticalParams, ";")
	if len(critical) == 0 {
		critical = parse.List(params.CriticalParams, ",")
	}

	b := report.NewBuilder()
	b.Title("Process Window Validation: " + report.OrDash(params.ProcessName))

	var rows [][]string
	failures := 0
	warnings := 0
	for _, w := range windows.Parameters() {
		if !w.HasRange {
			continue
		}
		tier := "standard"
		if containsFold(critical, w.Name) {
			tier = "critical"
		}

		test, ok := tests.Get(w.Name)
		if !ok {
			rows = append(rows, []string{w.Name, windowSpan(w), "-", "-", tier, "no reading"})
			if tier == "critical" {
				failures++
			} else {
				warnings++
			}
			continue
		}

		margin := scoring.MarginScore(test.Value, w.Min, w.Max)
		status := "pass"
		if test.Value < w.Min || test.Value > w.Max {
			if tier == "critical" {
				status = "FAIL"
				failures++
			} else {
				status = "warn"
				warnings++
			}
		}
		rows = append(rows, []string{w.Name, windowSpan(w), report.Num(test.Value, 2),
			report.Num(margin, 0), tier, status})
	}
	b.Table([]string{"Parameter", "Window", "Value", "Margin Score", "Tier", "Status"}, rows)

	b.Section("Verdict")
	switch {
	case failures > 0:
		b.Line("**FAIL** - %d critical parameter(s) out of window or unreported.", failures)
	case warnings > 0:
		b.Line("**PASS WITH WARNINGS** - %d non-critical finding(s).", warnings)
	default:
		b.Line("**PASS** - all validated parameters inside their windows.")
	}

	appendSkipped(b, windows.Skipped, tests.Skipped)
	return b.String(), nil
}

func windowSpan(p parse.Parameter) string {
	return fmt.Sprintf("[%s, %s]", report.Num(p.Min, 2), report.Num(p.Max, 2))
}
