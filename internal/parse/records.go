package parse

import (
	"fmt"
	"strings"
)

// Records parses a semicolon-separated list of comma-positional records,
// e.g. defect history rows "date,equipment,wafers,action,result;...".
// Records shorter than minFields are dropped and reported.
func Records(raw string, minFields int) ([][]string, []string, error) {
	entries, err := splitEntries(raw, ";")
	if err != nil {
		return nil, nil, err
	}

	records := make([][]string, 0, len(entries))
	var skippedEntries []string
	for _, entry := range entries {
		fields := splitFields(entry, ",")
		if len(fields) < minFields {
			skippedEntries = append(skippedEntries, skipped(entry, fmt.Sprintf("expected at least %d fields", minFields)))
			continue
		}
		records = append(records, fields)
	}
	if len(records) == 0 {
		return nil, skippedEntries, fmt.Errorf("%w: %s", ErrAllEntriesInvalid, strings.Join(skippedEntries, "; "))
	}
	return records, skippedEntries, nil
}

// Groups parses semicolon-separated named metric sections. The first comma
// field of each section carries the group name and its first metric
// ("CMP-01:yield:98.5" or "recipe:temperature:120"); subsequent fields are
// plain "metric:value" pairs:
//
//	CMP-01:yield:98.5,cpk:1.45,uptime:92;CMP-02:yield:97.2,...
//	recipe:temperature:120,time:300;performance:etch_rate:50,...
func Groups(raw string) ([]Group, []string, error) {
	entries, err := splitEntries(raw, ";")
	if err != nil {
		return nil, nil, err
	}

	groups := make([]Group, 0, len(entries))
	var skippedEntries []string
	for _, entry := range entries {
		g, reason := parseGroupEntry(entry)
		if reason != "" {
			skippedEntries = append(skippedEntries, skipped(entry, reason))
			continue
		}
		groups = append(groups, g)
	}
	if len(groups) == 0 {
		return nil, skippedEntries, fmt.Errorf("%w: %s", ErrAllEntriesInvalid, strings.Join(skippedEntries, "; "))
	}
	return groups, skippedEntries, nil
}

func parseGroupEntry(entry string) (Group, string) {
	fields := splitFields(entry, ",")

	head := splitFields(fields[0], ":")
	if len(head) != 3 {
		return Group{}, "expected name:metric:value as first field"
	}
	g := Group{Name: head[0], Values: make(map[string]float64)}

	add := func(metric, value string) string {
		v, err := parseFloat(value)
		if err != nil {
			return fmt.Sprintf("non-numeric value %q for %s", value, metric)
		}
		if _, seen := g.Values[metric]; !seen {
			g.Order = append(g.Order, metric)
		}
		g.Values[metric] = v
		return ""
	}

	if reason := add(head[1], head[2]); reason != "" {
		return Group{}, reason
	}
	for _, f := range fields[1:] {
		metric, value, ok := strings.Cut(f, ":")
		if !ok {
			return Group{}, fmt.Sprintf("field %q is not metric:value", f)
		}
		if reason := add(strings.TrimSpace(metric), value); reason != "" {
			return Group{}, reason
		}
	}
	return g, ""
}

// StatusTriples parses semicolon-separated "id:status:note" entries used for
// equipment status lists. The note is optional.
func StatusTriples(raw string) ([][3]string, []string, error) {
	entries, err := splitEntries(raw, ";")
	if err != nil {
		return nil, nil, err
	}

	triples := make([][3]string, 0, len(entries))
	var skippedEntries []string
	for _, entry := range entries {
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) < 2 {
			skippedEntries = append(skippedEntries, skipped(entry, "expected id:status[:note]"))
			continue
		}
		var t [3]string
		for i, p := range parts {
			t[i] = strings.TrimSpace(p)
		}
		triples = append(triples, t)
	}
	if len(triples) == 0 {
		return nil, skippedEntries, fmt.Errorf("%w: %s", ErrAllEntriesInvalid, strings.Join(skippedEntries, "; "))
	}
	return triples, skippedEntries, nil
}

// Events parses semicolon-separated "time description" entries, splitting
// each on the first space. Entries without a space become descriptions with
// an empty time.
func Events(raw string) ([][2]string, error) {
	entries, err := splitEntries(raw, ";")
	if err != nil {
		return nil, err
	}

	events := make([][2]string, 0, len(entries))
	for _, entry := range entries {
		when, what, ok := strings.Cut(entry, " ")
		if !ok {
			events = append(events, [2]string{"", entry})
			continue
		}
		events = append(events, [2]string{strings.TrimSpace(when), strings.TrimSpace(what)})
	}
	return events, nil
}
