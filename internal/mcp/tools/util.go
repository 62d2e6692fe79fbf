// Package tools implements the analytical MCP tools. Every tool is stateless:
// it decodes its JSON arguments, parses the delimiter-encoded blocks, runs the
// analytical core and renders a Markdown report.
package tools

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/report"
)

// Options carries the tunables shared by the analytical tools.
type Options struct {
	// StableSlopeBelow is the absolute trend slope under which a series
	// counts as stable.
	StableSlopeBelow float64

	// MaxForecastPoints caps trend extrapolation.
	MaxForecastPoints int
}

// DefaultOptions mirrors the server's default configuration.
func DefaultOptions() Options {
	return Options{
		StableSlopeBelow:  0.05,
		MaxForecastPoints: 10,
	}
}

// toFloat coerces a scalar argument that may arrive as a JSON number or a
// string. Clients are inconsistent about quoting numbers.
func toFloat(v interface{}, field string) (float64, error) {
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, fmt.Errorf("field %q: %w", field, err)
	}
	return f, nil
}

// toFloatDefault is toFloat with a fallback for absent values.
func toFloatDefault(v interface{}, def float64) float64 {
	if v == nil {
		return def
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return def
	}
	return f
}

// toIntDefault coerces an optional integer scalar.
func toIntDefault(v interface{}, def int) int {
	if v == nil {
		return def
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return def
	}
	return n
}

// toString coerces an optional scalar to its string form.
func toString(v interface{}) string {
	return cast.ToString(v)
}

// appendSkipped adds a diagnostics section when the parser dropped entries.
func appendSkipped(b *report.Builder, skippedEntries ...[]string) {
	var all []string
	for _, s := range skippedEntries {
		all = append(all, s...)
	}
	if len(all) == 0 {
		return
	}
	b.Section("Skipped Entries")
	b.Bullets(all, "")
}

// containsFold reports whether list holds s, ignoring case.
func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
