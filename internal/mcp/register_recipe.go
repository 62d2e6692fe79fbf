package mcp

import (
	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/mcp/tools"
)

func (s *Server) registerRecipeTools() {
	s.registerTool(
		"compare_to_baseline",
		"Compare current recipe parameters against a golden baseline with range checks",
		tools.NewBaselineCompareTool(),
		objectSchema(map[string]interface{}{
			"recipe_name":     stringProp("Recipe under comparison"),
			"baseline_params": stringProp("Baseline parameters: name:value[:min:max][:unit], comma-separated"),
			"current_params":  stringProp("Current parameters: name:value[:unit], comma-separated"),
		}, "baseline_params", "current_params"),
	)

	s.registerTool(
		"compare_two_recipes",
		"Compare two recipes parameter by parameter with optional per-parameter tolerances",
		tools.NewRecipeCompareTool(),
		objectSchema(map[string]interface{}{
			"recipe_a_name":    stringProp("Name of the first recipe"),
			"recipe_b_name":    stringProp("Name of the second recipe"),
			"recipe_a_params":  stringProp("First recipe parameters: name:value, comma-separated"),
			"recipe_b_params":  stringProp("Second recipe parameters: name:value, comma-separated"),
			"tolerance_params": stringProp("Allowed deltas: name:value or name:pct% for relative, comma-separated"),
		}, "recipe_a_params", "recipe_b_params"),
	)

	s.registerTool(
		"validate_process_window",
		"Validate test readings against process windows; critical parameters fail the run, others warn",
		tools.NewWindowValidateTool(),
		objectSchema(map[string]interface{}{
			"process_name":    stringProp("Process being validated"),
			"window_params":   stringProp("Windows: name:min:max or name:min-max, comma-separated"),
			"test_params":     stringProp("Readings: name:value, comma-separated"),
			"critical_params": stringProp("Names of parameters that must pass, semicolon- or comma-separated"),
		}, "window_params", "test_params"),
	)

	s.registerTool(
		"optimize_recipe_direction",
		"Recommend recipe moves that close performance gaps using stated sensitivities and window constraints",
		tools.NewRecipeOptimizeTool(),
		objectSchema(map[string]interface{}{
			"recipe_csv":      stringProp("Current recipe settings: name:value, comma-separated"),
			"perf_csv":        stringProp("Current performance metrics: name:value, comma-separated"),
			"target_csv":      stringProp("Target metric values: name:value, comma-separated"),
			"sensitivity_csv": stringProp("Sensitivities: param->metric:effect[:per_unit], semicolon-separated"),
			"constraints_csv": stringProp("Parameter windows limiting the moves: name:min:max, comma-separated"),
		}, "recipe_csv", "perf_csv", "target_csv", "sensitivity_csv"),
	)

	s.registerTool(
		"simulate_parameter_change",
		"Project the metric impact of proposed parameter changes through impact rules and interactions",
		tools.NewParameterSimulateTool(),
		objectSchema(map[string]interface{}{
			"state_csv": stringProp(
				"Current state sections: recipe:name:value,...;performance:metric:value,..."),
			"changes_csv": stringProp(
				"Proposed moves: param:start:end:sensitivity or param:start:X,end:Y,sensitivity:Z, semicolon-separated"),
			"rules_csv": stringProp(
				"Impact rules: source->target:effect[:per_unit] or label:target:effect, semicolon-separated"),
			"window_csv":       stringProp("Process windows: name:min:max, comma-separated"),
			"interactions_csv": stringProp("Interaction terms: paramA×paramB->target:effect, semicolon-separated"),
		}, "state_csv", "changes_csv", "rules_csv"),
	)

	s.registerTool(
		"calculate_yield_impact",
		"Project yield from a baseline through per-parameter sensitivities and pairwise interactions",
		tools.NewYieldImpactTool(),
		objectSchema(map[string]interface{}{
			"baseline_yield": numberProp("Baseline yield in percent (required, 0-100)"),
			"changes_csv": stringProp(
				"Changes: param:start:end:sensitivity or the start:/end:/sensitivity: sub-key form, semicolon-separated"),
			"interactions_csv": stringProp("Interactions: paramA×paramB:effect, semicolon-separated"),
			"confidence_level": stringProp("Stated confidence level, echoed into the report"),
			"model_type":       stringProp("Projection model label (default linear)"),
		}, "baseline_yield", "changes_csv"),
	)
}
