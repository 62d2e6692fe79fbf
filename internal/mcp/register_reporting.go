package mcp

import (
	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/mcp/tools"
)

func (s *Server) registerReportingTools() {
	s.registerTool(
		"predict_defect_risk",
		"Score defect risk per parameter FMEA-style from window margins, with severity and criticality inputs",
		tools.NewDefectRiskTool(),
		objectSchema(map[string]interface{}{
			"process_name":    stringProp("Process being assessed"),
			"window_params":   stringProp("Windows: name:min:max or name:min-max, comma-separated"),
			"current_params":  stringProp("Current readings: name:value, comma-separated"),
			"severity_params": stringProp("Severity overrides: name:1..10, comma-separated"),
			"critical_params": stringProp("Critical parameter names, semicolon- or comma-separated"),
		}, "window_params", "current_params"),
	)

	s.registerTool(
		"generate_shift_report",
		"Assemble a shift handover report from production, equipment, quality and event inputs",
		tools.NewShiftReportTool(),
		objectSchema(map[string]interface{}{
			"shift_info":      stringProp("Shift label, e.g. \"2025-03-14 night\""),
			"production_data": stringProp("Production counters: key:value, comma-separated (in/out enable throughput)"),
			"equipment_status": stringProp(
				"Equipment states: id:status[:note], semicolon-separated"),
			"quality_data":    stringProp("Quality figures: name:value[:unit], comma-separated"),
			"events":          stringProp("Shift events: \"time description\", semicolon-separated"),
			"pending_actions": stringProp("Handover items, semicolon-separated"),
		}),
	)
}
