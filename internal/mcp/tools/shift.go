package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/parse"
	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/report"
)

// ShiftReportTool implements the generate_shift_report MCP tool
type ShiftReportTool struct{}

// NewShiftReportTool creates a new shift report tool
func NewShiftReportTool() *ShiftReportTool {
	return &ShiftReportTool{}
}

// ShiftReportInput represents the input for generate_shift_report
type ShiftReportInput struct {
	ShiftInfo       string `json:"shift_info,omitempty"`
	ProductionData  string `json:"production_data,omitempty"`
	EquipmentStatus string `json:"equipment_status,omitempty"`
	QualityData     string `json:"quality_data,omitempty"`
	Events          string `json:"events,omitempty"`
	PendingActions  string `json:"pending_actions,omitempty"`
}

// Execute runs the generate_shift_report tool
func (t *ShiftReportTool) Execute(ctx context.Context, input json.RawMessage) (string, error) {
	var params ShiftReportInput
	if err := json.Unmarshal(input, &params); err != nil {
		return "", fmt.Errorf("invalid input: %w", err)
	}

	b := report.NewBuilder()
	b.Title("Shift Report: " + report.OrDash(params.ShiftInfo))

	b.Section("Production")
	if strings.TrimSpace(params.ProductionData) == "" {
		b.Line("No production data reported.")
	} else {
		keys, values, err := parse.StringMap(params.ProductionData)
		if err != nil {
			return "", fmt.Errorf("production_data: %w", err)
		}
		for _, k := range keys {
			b.KeyValue(k, values[k])
		}
		if in, out, ok := throughput(values); ok && in > 0 {
			b.KeyValue("Throughput", report.Num(100*out/in, 1)+"%")
		}
	}

	b.Section("Equipment Status")
	if strings.TrimSpace(params.EquipmentStatus) == "" {
		b.Line("No equipment status reported.")
	} else {
		triples, statusSkips, err := parse.StatusTriples(params.EquipmentStatus)
		if err != nil {
			return "", fmt.Errorf("equipment_status: %w", err)
		}
		rows := make([][]string, 0, len(triples))
		down := 0
		for _, tr := range triples {
			if strings.EqualFold(tr[1], "down") {
				down++
			}
			rows = append(rows, []string{tr[0], tr[1], report.OrDash(tr[2])})
		}
		b.Table([]string{"Equipment", "Status", "Note"}, rows)
		if down > 0 {
			b.Line("%d tool(s) down this shift.", down)
		}
		appendSkipped(b, statusSkips)
	}

	b.Section("Quality")
	if strings.TrimSpace(params.QualityData) == "" {
		b.Line("No quality data reported.")
	} else {
		quality, err := parse.Parameters(params.QualityData)
		if err != nil {
			return "", fmt.Errorf("quality_data: %w", err)
		}
		for _, q := range quality.Parameters() {
			b.KeyValue(q.Name, formatValue(q))
		}
		appendSkipped(b, quality.Skipped)
	}

	b.Section("Events")
	if strings.TrimSpace(params.Events) == "" {
		b.Line("No events recorded.")
	} else {
		events, err := parse.Events(params.Events)
		if err != nil {
			return "", fmt.Errorf("events: %w", err)
		}
		for _, e := range events {
			if e[0] == "" {
				b.Line("- %s", e[1])
			} else {
				b.Line("- **%s** %s", e[0], e[1])
			}
		}
	}

	b.Section("Pending Actions for Next Shift")
	b.Bullets(parse.List(params.PendingActions, ";"), "Nothing handed over.")

	return b.String(), nil
}

// throughput extracts in/out wafer counts from the production key-values.
func throughput(values map[string]string) (in, out float64, ok bool) {
	rawIn, hasIn := values["in"]
	rawOut, hasOut := values["out"]
	if !hasIn || !hasOut {
		return 0, 0, false
	}
	in = toFloatDefault(rawIn, -1)
	out = toFloatDefault(rawOut, -1)
	if in < 0 || out < 0 {
		return 0, 0, false
	}
	return in, out, true
}
