package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/parse"
	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/report"
)

// AnalyzeDefectTool implements the analyze_defect MCP tool
type AnalyzeDefectTool struct{}

// NewAnalyzeDefectTool creates a new defect analysis tool
func NewAnalyzeDefectTool() *AnalyzeDefectTool {
	return &AnalyzeDefectTool{}
}

// AnalyzeDefectInput represents the input for analyze_defect
type AnalyzeDefectInput struct {
	DefectCode        string `json:"defect_code"`
	DefectDescription string `json:"defect_description,omitempty"`
	ProcessStep       string `json:"process_step,omitempty"`
	EquipmentID       string `json:"equipment_id,omitempty"`
	WaferID           string `json:"wafer_id,omitempty"`
	KnownCauses       string `json:"known_causes,omitempty"`
	RecentChanges     string `json:"recent_changes,omitempty"`
}

// Execute runs the analyze_defect tool
func (t *AnalyzeDefectTool) Execute(ctx context.Context, input json.RawMessage) (string, error) {
	var params AnalyzeDefectInput
	if err := json.Unmarshal(input, &params); err != nil {
		return "", fmt.Errorf("invalid input: %w", err)
	}
	if strings.TrimSpace(params.DefectCode) == "" {
		return "", fmt.Errorf("defect_code is required")
	}

	causes := parse.List(params.KnownCauses, ";")
	changes := parse.List(params.RecentChanges, ";")

	b := report.NewBuilder()
	b.Title("Defect Analysis: " + params.DefectCode)
	b.KeyValue("Description", report.OrDash(params.DefectDescription))
	b.KeyValue("Process Step", report.OrDash(params.ProcessStep))
	b.KeyValue("Equipment", report.OrDash(params.EquipmentID))
	b.KeyValue("Wafer", report.OrDash(params.WaferID))

	b.Section("Known Causes")
	b.Bullets(causes, "No known causes recorded for this defect code.")

	b.Section("Recent Process Changes")
	b.Bullets(changes, "No recent changes reported.")

	b.Section("Investigation Plan")
	if len(changes) > 0 {
		b.Line("Recent changes predate this defect and are the highest-probability causes. Review them in order:")
		for i, c := range changes {
			b.Line("%d. Verify whether %q correlates with first occurrence on the affected lot.", i+1, c)
		}
	} else {
		b.Line("No recent changes to correlate against. Run the standard isolation sequence:")
		b.Line("1. Pull the equipment log for %s around the detection time.", report.OrDash(params.EquipmentID))
		b.Line("2. Compare the affected wafer against a known-good reference from the same lot.")
		b.Line("3. Check consumable age and chamber condition at step %s.", report.OrDash(params.ProcessStep))
	}
	if len(causes) > 0 {
		b.Blank()
		b.Line("Cross-check each known cause above against the current tool state before dispositioning the lot.")
	}
	return b.String(), nil
}

// DefectHistoryTool implements the get_defect_history MCP tool
type DefectHistoryTool struct{}

// NewDefectHistoryTool creates a new defect history tool
func NewDefectHistoryTool() *DefectHistoryTool {
	return &DefectHistoryTool{}
}

// DefectHistoryInput represents the input for get_defect_history
type DefectHistoryInput struct {
	DefectType   string `json:"defect_type"`
	Records      string `json:"records_csv"`
	AnalysisType string `json:"analysis_type,omitempty"`
}

// historyRecord field positions in a records_csv entry.
const (
	histDate = iota
	histEquipment
	histWafers
	histAction
	histResult
	histFieldCount
)

// Execute runs the get_defect_history tool
func (t *DefectHistoryTool) Execute(ctx context.Context, input json.RawMessage) (string, error) {
	var params DefectHistoryInput
	if err := json.Unmarshal(input, &params); err != nil {
		return "", fmt.Errorf("invalid input: %w", err)
	}

	records, skippedEntries, err := parse.Records(params.Records, histFieldCount)
	if err != nil {
		return "", err
	}

	totalWafers := 0.0
	byEquipment := make(map[string]int)
	resolved := 0
	for _, rec := range records {
		totalWafers += toFloatDefault(rec[histWafers], 0)
		byEquipment[rec[histEquipment]]++
		if strings.EqualFold(rec[histResult], "resolved") {
			resolved++
		}
	}

	b := report.NewBuilder()
	b.Title("Defect History: " + report.OrDash(params.DefectType))
	b.KeyValue("Occurrences", fmt.Sprintf("%d", len(records)))
	b.KeyValue("Wafers Affected", report.Num(totalWafers, 0))
	b.KeyValue("Resolved", fmt.Sprintf("%d of %d", resolved, len(records)))

	b.Section("Occurrences by Equipment")
	names := make([]string, 0, len(byEquipment))
	for name := range byEquipment {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if byEquipment[names[i]] != byEquipment[names[j]] {
			return byEquipment[names[i]] > byEquipment[names[j]]
		}
		return names[i] < names[j]
	})
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, fmt.Sprintf("%d", byEquipment[name])})
	}
	b.Table([]string{"Equipment", "Events"}, rows)

	if !strings.EqualFold(params.AnalysisType, "summary") {
		b.Section("Event Log")
		logRows := make([][]string, 0, len(records))
		for _, rec := range records {
			logRows = append(logRows, []string{rec[histDate], rec[histEquipment], rec[histWafers], rec[histAction], rec[histResult]})
		}
		b.Table([]string{"Date", "Equipment", "Wafers", "Action", "Result"}, logRows)
	}

	if len(names) > 0 && byEquipment[names[0]] > len(records)/2 {
		b.Section("Pattern")
		b.Line("%s accounts for the majority of events; prioritize a tool-specific investigation over a process-wide one.", names[0])
	}

	appendSkipped(b, skippedEntries)
	return b.String(), nil
}

// CorrectiveActionTool implements the suggest_corrective_action MCP tool
type CorrectiveActionTool struct{}

// NewCorrectiveActionTool creates a new corrective action tool
func NewCorrectiveActionTool() *CorrectiveActionTool {
	return &CorrectiveActionTool{}
}

// CorrectiveActionInput represents the input for suggest_corrective_action
type CorrectiveActionInput struct {
	ProblemDescription string      `json:"problem_description"`
	AffectedEquipment  string      `json:"affected_equipment,omitempty"`
	Severity           interface{} `json:"severity,omitempty"`
	CurrentStatus      string      `json:"current_status,omitempty"`
	TimeConstraint     string      `json:"time_constraint,omitempty"`
	AvailableResources string      `json:"available_resources,omitempty"`
}

// Execute runs the suggest_corrective_action tool
func (t *CorrectiveActionTool) Execute(ctx context.Context, input json.RawMessage) (string, error) {
	var params CorrectiveActionInput
	if err := json.Unmarshal(input, &params); err != nil {
		return "", fmt.Errorf("invalid input: %w", err)
	}
	if strings.TrimSpace(params.ProblemDescription) == "" {
		return "", fmt.Errorf("problem_description is required")
	}

	severity := severityLabel(params.Severity)
	resources := parse.List(params.AvailableResources, ";")

	b := report.NewBuilder()
	b.Title("Corrective Action Plan")
	b.KeyValue("Problem", params.ProblemDescription)
	b.KeyValue("Equipment", report.OrDash(params.AffectedEquipment))
	b.KeyValue("Severity", severity)
	b.KeyValue("Status", report.OrDash(params.CurrentStatus))
	b.KeyValue("Time Constraint", report.OrDash(params.TimeConstraint))

	b.Section("Immediate Actions")
	switch severity {
	case "critical":
		b.Line("1. Stop the affected equipment and hold all lots processed since the last known-good qualification.")
		b.Line("2. Notify the shift lead and quality engineering before any further processing.")
		b.Line("3. Quarantine material in flight on %s.", report.OrDash(params.AffectedEquipment))
	case "high":
		b.Line("1. Hold new lot starts on the affected equipment; let the current lot finish.")
		b.Line("2. Pull the last 24h of process data for review.")
	default:
		b.Line("1. Continue production with tightened monitoring on the affected step.")
		b.Line("2. Schedule a review of the parameter trends at the next shift change.")
	}

	b.Section("Containment and Follow-up")
	b.Line("- Confirm the failure signature against recent maintenance records.")
	b.Line("- Run a short qualification lot before releasing the equipment back to full production.")
	b.Line("- Document the root cause and the verification evidence in the closure record.")

	b.Section("Available Resources")
	b.Bullets(resources, "No resources listed; assign an owner before execution.")

	return b.String(), nil
}

// severityLabel normalizes numeric and verbal severity inputs into the three
// response tiers.
func severityLabel(v interface{}) string {
	switch strings.ToLower(toString(v)) {
	case "critical", "5", "urgent":
		return "critical"
	case "high", "4":
		return "high"
	case "", "unknown":
		return "normal"
	default:
		if n := toIntDefault(v, 0); n >= 5 {
			return "critical"
		} else if n == 4 {
			return "high"
		}
		return "normal"
	}
}
