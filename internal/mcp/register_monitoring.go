package mcp

import (
	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/mcp/tools"
)

func (s *Server) registerMonitoringTools(opts tools.Options) {
	s.registerTool(
		"analyze_metrics",
		"Score KPI actuals against their targets and flag metrics behind plan",
		tools.NewMetricsAnalysisTool(),
		objectSchema(map[string]interface{}{
			"period":       stringProp("Reporting period label"),
			"equipment_id": stringProp("Equipment the KPIs belong to"),
			"metrics_data": stringProp("Actuals: kpi:value, comma-separated"),
			"targets_data": stringProp("Targets: kpi:value, comma-separated"),
		}, "metrics_data"),
	)

	s.registerTool(
		"analyze_spc_data",
		"Run SPC analysis on a measurement series: capability indices, control limits and rule violations",
		tools.NewSPCAnalysisTool(),
		objectSchema(map[string]interface{}{
			"parameter_name": stringProp("Measured parameter name"),
			"equipment_id":   stringProp("Source equipment"),
			"data_points":    stringProp("Comma-separated measurement values"),
			"usl":            numberProp("Upper spec limit (required)"),
			"lsl":            numberProp("Lower spec limit (required)"),
			"target":         numberProp("Target value for centering assessment"),
			"ucl":            numberProp("Upper control limit override; defaults to mean + 3 sigma"),
			"lcl":            numberProp("Lower control limit override; defaults to mean - 3 sigma"),
		}, "data_points", "usl", "lsl"),
	)

	s.registerTool(
		"analyze_trend",
		"Fit a linear trend to a measurement series, classify its direction and forecast forward",
		tools.NewTrendAnalysisTool(opts),
		objectSchema(map[string]interface{}{
			"parameter_name": stringProp("Measured parameter name"),
			"data_points":    stringProp("Comma-separated measurement values"),
			"timestamps":     stringProp("Comma-separated timestamps aligned with data_points"),
			"usl":            numberProp("Upper spec limit for crossing projection"),
			"lsl":            numberProp("Lower spec limit for crossing projection"),
			"forecast_count": numberProp("Number of forecast points (default 5, capped by server config)"),
		}, "data_points"),
	)

	s.registerTool(
		"analyze_equipment_comparison",
		"Rank equipment by weighted benchmark-normalized metric scores",
		tools.NewEquipmentCompareTool(),
		objectSchema(map[string]interface{}{
			"metrics_data": stringProp(
				"Per-equipment metrics: EQ:metric:value,metric:value;EQ2:..., semicolon-separated sections"),
			"weights_csv":   stringProp("Metric weights: metric:weight, comma-separated (default 1.0)"),
			"benchmark_csv": stringProp("Benchmarks: metric:value, comma-separated"),
			"lower_is_better": stringProp(
				"Metric names where lower values win, semicolon- or comma-separated"),
		}, "metrics_data"),
	)
}
