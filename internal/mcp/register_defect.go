package mcp

import (
	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/mcp/tools"
)

func (s *Server) registerDefectTools() {
	s.registerTool(
		"analyze_defect",
		"Analyze a wafer defect: correlate known causes and recent process changes into an investigation plan",
		tools.NewAnalyzeDefectTool(),
		objectSchema(map[string]interface{}{
			"defect_code":        stringProp("Defect classification code (required)"),
			"defect_description": stringProp("Free-text defect description"),
			"process_step":       stringProp("Process step where the defect was detected"),
			"equipment_id":       stringProp("Equipment that processed the affected wafer"),
			"wafer_id":           stringProp("Affected wafer identifier"),
			"known_causes":       stringProp("Semicolon-separated list of known causes for this defect code"),
			"recent_changes":     stringProp("Semicolon-separated list of recent process changes"),
		}, "defect_code"),
	)

	s.registerTool(
		"get_defect_history",
		"Summarize historical defect events: per-equipment frequency, wafer impact and resolution rate",
		tools.NewDefectHistoryTool(),
		objectSchema(map[string]interface{}{
			"defect_type": stringProp("Defect type the history belongs to"),
			"records_csv": stringProp("Semicolon-separated records: date,equipment,wafers,action,result"),
			"analysis_type": stringProp(
				"Report depth: \"summary\" for aggregates only, anything else includes the event log"),
		}, "records_csv"),
	)

	s.registerTool(
		"suggest_corrective_action",
		"Produce a severity-tiered corrective action plan for an equipment or process problem",
		tools.NewCorrectiveActionTool(),
		objectSchema(map[string]interface{}{
			"problem_description": stringProp("What went wrong (required)"),
			"affected_equipment":  stringProp("Equipment affected by the problem"),
			"severity":            stringProp("Severity: critical/high/normal or a 1-5 rating"),
			"current_status":      stringProp("Current production status"),
			"time_constraint":     stringProp("Deadline or time pressure, if any"),
			"available_resources": stringProp("Semicolon-separated list of available resources"),
		}, "problem_description"),
	)
}
