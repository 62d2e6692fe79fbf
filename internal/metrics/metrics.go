// Package metrics exposes Prometheus instrumentation for the tool server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus metrics for tool call observability.
type Metrics struct {
	CallsTotal   *prometheus.CounterVec   // Tool invocations by tool name and outcome
	CallDuration *prometheus.HistogramVec // Tool handler latency by tool name
}

// NewMetrics creates Prometheus metrics for a server instance.
// The registerer parameter allows flexible registration (e.g., global registry, test registry).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	callsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "semiprocess_tool_calls_total",
		Help: "Total number of tool invocations",
	}, []string{"tool", "status"})

	callDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "semiprocess_tool_call_duration_seconds",
		Help:    "Tool handler latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"tool"})

	reg.MustRegister(callsTotal)
	reg.MustRegister(callDuration)

	return &Metrics{
		CallsTotal:   callsTotal,
		CallDuration: callDuration,
	}
}

// ObserveCall records one completed tool invocation.
func (m *Metrics) ObserveCall(tool, status string, seconds float64) {
	if m == nil {
		return
	}
	m.CallsTotal.WithLabelValues(tool, status).Inc()
	m.CallDuration.WithLabelValues(tool).Observe(seconds)
}
