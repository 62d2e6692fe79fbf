package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/mcp/tools"
	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/metrics"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(ServerOptions{
		Version: "test",
		Tools:   tools.DefaultOptions(),
		Metrics: metrics.NewMetrics(prometheus.NewRegistry()),
	})
}

func TestServerRegistersAllTools(t *testing.T) {
	s := newTestServer(t)

	expected := []string{
		"analyze_defect",
		"get_defect_history",
		"suggest_corrective_action",
		"compare_to_baseline",
		"compare_two_recipes",
		"validate_process_window",
		"analyze_metrics",
		"analyze_spc_data",
		"predict_defect_risk",
		"analyze_trend",
		"optimize_recipe_direction",
		"simulate_parameter_change",
		"calculate_yield_impact",
		"analyze_equipment_comparison",
		"generate_shift_report",
	}
	names := s.ToolNames()
	assert.Len(t, names, len(expected))
	for _, name := range expected {
		assert.Contains(t, names, name)
	}
}

func TestCallToolUnknown(t *testing.T) {
	s := newTestServer(t)
	_, err := s.CallTool(context.Background(), "no_such_tool", json.RawMessage(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tool")
}

func TestCallToolRendersMarkdown(t *testing.T) {
	s := newTestServer(t)

	args := json.RawMessage(`{
		"parameter_name": "cd_linewidth",
		"data_points": "45.2,45.8,44.9,46.1,45.5,45.3,45.7,46.0",
		"usl": 50,
		"lsl": 40
	}`)
	out, err := s.CallTool(context.Background(), "analyze_spc_data", args)
	require.NoError(t, err)
	assert.Contains(t, out, "## SPC Analysis: cd_linewidth")
	assert.Contains(t, out, "Cpk")
}

func TestCallToolStringScalars(t *testing.T) {
	s := newTestServer(t)

	// Clients that quote numbers must get the same result.
	quoted := json.RawMessage(`{"data_points": "1.0,2.0,3.0", "usl": "10", "lsl": "0"}`)
	plain := json.RawMessage(`{"data_points": "1.0,2.0,3.0", "usl": 10, "lsl": 0}`)

	a, err := s.CallTool(context.Background(), "analyze_spc_data", quoted)
	require.NoError(t, err)
	b, err := s.CallTool(context.Background(), "analyze_spc_data", plain)
	require.NoError(t, err)
	assert.Equal(t, b, a)
}

func TestCallToolStructuralError(t *testing.T) {
	s := newTestServer(t)

	args := json.RawMessage(`{"data_points": "", "usl": 10, "lsl": 0}`)
	_, err := s.CallTool(context.Background(), "analyze_spc_data", args)
	require.Error(t, err)
}
