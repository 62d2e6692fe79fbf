// Package parse converts the loosely formatted parameter blocks accepted by
// the analysis tools into typed structures. Inputs are comma or semicolon
// delimited entries whose fields are separated by colons; ranges accept a
// colon or a dash between min and max, tolerances may carry a trailing "%",
// and impact rules come in an arrow form ("source->target:effect") as well as
// a legacy labeled form.
//
// Individual malformed entries are dropped and reported via the Skipped
// diagnostics rather than failing the whole block. Only structural problems
// (empty input, no valid entry at all) produce errors.
package parse

import (
	"fmt"
	"strconv"
	"strings"
)

// Parameters parses a comma-separated parameter block. Each entry is one of
//
//	name:value
//	name:value:unit
//	name:min:max          (two numeric fields form a range)
//	name:min-max
//	name:value:min:max
//	name:value:min:max:unit
func Parameters(raw string) (*ParameterSet, error) {
	entries, err := splitEntries(raw, ",")
	if err != nil {
		return nil, err
	}

	set := NewParameterSet()
	for _, entry := range entries {
		p, reason := parseParameterEntry(entry)
		if reason != "" {
			set.Skipped = append(set.Skipped, skipped(entry, reason))
			continue
		}
		set.Add(p)
	}
	if set.Len() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrAllEntriesInvalid, strings.Join(set.Skipped, "; "))
	}
	return set, nil
}

func parseParameterEntry(entry string) (Parameter, string) {
	name, rest, ok := strings.Cut(entry, ":")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return Parameter{}, "missing name or value"
	}

	fields := splitFields(rest, ":")
	p := Parameter{Name: name}

	// A single field holding an unambiguous dash range, e.g. "100-130".
	if len(fields) == 1 {
		if lo, hi, isRange := dashRange(fields[0]); isRange {
			p.Min, p.Max, p.HasRange = lo, hi, true
			return p, ""
		}
	}

	// Trailing non-numeric field is a unit label.
	if len(fields) > 1 {
		if _, err := parseFloat(fields[len(fields)-1]); err != nil {
			p.Unit = fields[len(fields)-1]
			fields = fields[:len(fields)-1]
		}
	}

	nums := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := parseFloat(f)
		if err != nil {
			return Parameter{}, fmt.Sprintf("non-numeric field %q", f)
		}
		nums = append(nums, v)
	}

	switch len(nums) {
	case 1:
		p.Value, p.HasValue = nums[0], true
	case 2:
		if nums[0] > nums[1] {
			return Parameter{}, fmt.Sprintf("range min %v exceeds max %v", nums[0], nums[1])
		}
		p.Min, p.Max, p.HasRange = nums[0], nums[1], true
	case 3:
		if nums[1] > nums[2] {
			return Parameter{}, fmt.Sprintf("range min %v exceeds max %v", nums[1], nums[2])
		}
		p.Value, p.HasValue = nums[0], true
		p.Min, p.Max, p.HasRange = nums[1], nums[2], true
	default:
		return Parameter{}, fmt.Sprintf("unexpected field count %d", len(nums))
	}
	return p, ""
}

// Tolerances parses a comma-separated tolerance block. A trailing "%" marks
// the deviation as relative to the baseline value; percentages must fall in
// (0,100].
func Tolerances(raw string) (*ToleranceSet, error) {
	entries, err := splitEntries(raw, ",")
	if err != nil {
		return nil, err
	}

	set := NewToleranceSet()
	for _, entry := range entries {
		name, rest, ok := strings.Cut(entry, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			set.Skipped = append(set.Skipped, skipped(entry, "missing name or value"))
			continue
		}
		value := strings.TrimSpace(rest)
		relative := strings.HasSuffix(value, "%")
		value = strings.TrimSuffix(value, "%")
		v, err := parseFloat(value)
		if err != nil {
			set.Skipped = append(set.Skipped, skipped(entry, fmt.Sprintf("non-numeric tolerance %q", value)))
			continue
		}
		if relative && (v <= 0 || v > 100) {
			set.Skipped = append(set.Skipped, skipped(entry, fmt.Sprintf("percentage %v outside (0,100]", v)))
			continue
		}
		set.Add(name, Tolerance{Value: v, Relative: relative})
	}
	if set.Len() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrAllEntriesInvalid, strings.Join(set.Skipped, "; "))
	}
	return set, nil
}

// Series parses a comma-separated list of numeric data points. Non-numeric
// entries are dropped and reported in the returned diagnostics.
func Series(raw string) ([]float64, []string, error) {
	entries, err := splitEntries(raw, ",")
	if err != nil {
		return nil, nil, err
	}

	values := make([]float64, 0, len(entries))
	var skippedEntries []string
	for _, entry := range entries {
		v, err := parseFloat(entry)
		if err != nil {
			skippedEntries = append(skippedEntries, skipped(entry, "not a number"))
			continue
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, skippedEntries, fmt.Errorf("%w: %s", ErrAllEntriesInvalid, strings.Join(skippedEntries, "; "))
	}
	return values, skippedEntries, nil
}

// List splits a delimited list of labels, dropping empty items. It never
// fails; an empty input yields an empty list.
func List(raw, sep string) []string {
	var out []string
	for _, item := range strings.Split(raw, sep) {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// StringMap parses "key:value" entries where values stay uninterpreted
// strings, preserving insertion order. Used for report blocks that mix text
// with numbers (production summaries, quality summaries).
func StringMap(raw string) (keys []string, values map[string]string, err error) {
	entries, err := splitEntries(raw, ",")
	if err != nil {
		return nil, nil, err
	}

	values = make(map[string]string)
	for _, entry := range entries {
		name, rest, ok := strings.Cut(entry, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			continue
		}
		if _, seen := values[name]; !seen {
			keys = append(keys, name)
		}
		values[name] = strings.TrimSpace(rest)
	}
	if len(keys) == 0 {
		return nil, nil, ErrAllEntriesInvalid
	}
	return keys, values, nil
}

// splitEntries splits a raw block on sep after rejecting structurally empty
// input. Empty items between separators are dropped.
func splitEntries(raw, sep string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyInput
	}
	var entries []string
	for _, e := range strings.Split(raw, sep) {
		e = strings.TrimSpace(e)
		if e != "" {
			entries = append(entries, e)
		}
	}
	if len(entries) == 0 {
		return nil, ErrEmptyInput
	}
	return entries, nil
}

func splitFields(s, sep string) []string {
	parts := strings.Split(s, sep)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// dashRange splits "min-max" on a dash that is not a leading sign. Both
// sides must parse as numbers; this keeps labels like "CMP-01" intact.
func dashRange(token string) (lo, hi float64, ok bool) {
	for i := 1; i < len(token); i++ {
		if token[i] != '-' {
			continue
		}
		left, errL := parseFloat(token[:i])
		right, errR := parseFloat(token[i+1:])
		if errL == nil && errR == nil && left <= right {
			return left, right, true
		}
	}
	return 0, 0, false
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
