package parse

import (
	"fmt"
	"strings"
)

// Rules parses a semicolon-separated impact rule block. Two syntaxes are
// accepted and normalize to the same ImpactRule:
//
//	source->target:effect[:per_unit]   (preferred arrow form)
//	label:target:effect                (legacy form; the label carries no
//	                                    semantics, the rule fires on any change)
func Rules(raw string) ([]ImpactRule, []string, error) {
	entries, err := splitEntries(raw, ";")
	if err != nil {
		return nil, nil, err
	}

	rules := make([]ImpactRule, 0, len(entries))
	var skippedEntries []string
	for _, entry := range entries {
		rule, reason := parseRuleEntry(entry)
		if reason != "" {
			skippedEntries = append(skippedEntries, skipped(entry, reason))
			continue
		}
		rules = append(rules, rule)
	}
	if len(rules) == 0 {
		return nil, skippedEntries, fmt.Errorf("%w: %s", ErrAllEntriesInvalid, strings.Join(skippedEntries, "; "))
	}
	return rules, skippedEntries, nil
}

func parseRuleEntry(entry string) (ImpactRule, string) {
	if source, rest, ok := strings.Cut(entry, "->"); ok {
		source = strings.TrimSpace(source)
		fields := splitFields(rest, ":")
		if source == "" || len(fields) < 2 {
			return ImpactRule{}, "expected source->target:effect"
		}
		effect, err := parseFloat(fields[1])
		if err != nil {
			return ImpactRule{}, fmt.Sprintf("non-numeric effect %q", fields[1])
		}
		rule := ImpactRule{Source: source, Target: fields[0], Effect: effect}
		if len(fields) >= 3 {
			perUnit, err := parseFloat(fields[2])
			if err != nil || perUnit == 0 {
				return ImpactRule{}, fmt.Sprintf("invalid per-unit reference %q", fields[2])
			}
			rule.PerUnit = perUnit
		}
		return rule, ""
	}

	// Legacy label:target:effect. The label is discarded.
	fields := splitFields(entry, ":")
	if len(fields) != 3 {
		return ImpactRule{}, "expected label:target:effect"
	}
	effect, err := parseFloat(fields[2])
	if err != nil {
		return ImpactRule{}, fmt.Sprintf("non-numeric effect %q", fields[2])
	}
	return ImpactRule{Target: fields[1], Effect: effect}, ""
}

// Changes parses a semicolon-separated list of proposed parameter moves.
// Both the flat and the expanded sub-key form normalize to the same Change:
//
//	param:start_value:end_value:sensitivity
//	param:start:X,end:Y,sensitivity:Z
func Changes(raw string) ([]Change, []string, error) {
	entries, err := splitEntries(raw, ";")
	if err != nil {
		return nil, nil, err
	}

	changes := make([]Change, 0, len(entries))
	var skippedEntries []string
	for _, entry := range entries {
		c, reason := parseChangeEntry(entry)
		if reason != "" {
			skippedEntries = append(skippedEntries, skipped(entry, reason))
			continue
		}
		changes = append(changes, c)
	}
	if len(changes) == 0 {
		return nil, skippedEntries, fmt.Errorf("%w: %s", ErrAllEntriesInvalid, strings.Join(skippedEntries, "; "))
	}
	return changes, skippedEntries, nil
}

func parseChangeEntry(entry string) (Change, string) {
	if strings.Contains(entry, ",") {
		return parseExpandedChange(entry)
	}

	fields := splitFields(entry, ":")
	if len(fields) != 4 {
		return Change{}, "expected param:start:end:sensitivity"
	}
	c := Change{Param: fields[0]}
	vals := make([]float64, 3)
	for i, f := range fields[1:] {
		v, err := parseFloat(f)
		if err != nil {
			return Change{}, fmt.Sprintf("non-numeric field %q", f)
		}
		vals[i] = v
	}
	c.Start, c.End, c.Sensitivity = vals[0], vals[1], vals[2]
	return c, ""
}

func parseExpandedChange(entry string) (Change, string) {
	fields := splitFields(entry, ",")

	// First field is "param:start:X"; the rest are "key:value" pairs.
	head := splitFields(fields[0], ":")
	if len(head) != 3 {
		return Change{}, "expected param:start:X as first field"
	}
	c := Change{Param: head[0]}
	seen := map[string]bool{}

	assign := func(key, value string) string {
		v, err := parseFloat(value)
		if err != nil {
			return fmt.Sprintf("non-numeric %s %q", key, value)
		}
		switch key {
		case "start":
			c.Start = v
		case "end":
			c.End = v
		case "sensitivity":
			c.Sensitivity = v
		default:
			return fmt.Sprintf("unknown sub-key %q", key)
		}
		seen[key] = true
		return ""
	}

	if reason := assign(head[1], head[2]); reason != "" {
		return Change{}, reason
	}
	for _, f := range fields[1:] {
		key, value, ok := strings.Cut(f, ":")
		if !ok {
			return Change{}, fmt.Sprintf("field %q is not key:value", f)
		}
		if reason := assign(strings.TrimSpace(key), value); reason != "" {
			return Change{}, reason
		}
	}
	for _, required := range []string{"start", "end", "sensitivity"} {
		if !seen[required] {
			return Change{}, fmt.Sprintf("missing sub-key %q", required)
		}
	}
	return c, ""
}

// interactionSeparators accepted between the two parameter names.
var interactionSeparators = []string{"×", "*"}

// Interactions parses a semicolon-separated interaction block. Entries pair
// two parameter names with an effect applied once when both change together:
//
//	paramA×paramB:effect
//	paramA*paramB:effect
//	paramA×paramB->target:effect   (effect lands on a named metric)
func Interactions(raw string) ([]Interaction, []string, error) {
	entries, err := splitEntries(raw, ";")
	if err != nil {
		return nil, nil, err
	}

	interactions := make([]Interaction, 0, len(entries))
	var skippedEntries []string
	for _, entry := range entries {
		it, reason := parseInteractionEntry(entry)
		if reason != "" {
			skippedEntries = append(skippedEntries, skipped(entry, reason))
			continue
		}
		interactions = append(interactions, it)
	}
	if len(interactions) == 0 {
		return nil, skippedEntries, fmt.Errorf("%w: %s", ErrAllEntriesInvalid, strings.Join(skippedEntries, "; "))
	}
	return interactions, skippedEntries, nil
}

func parseInteractionEntry(entry string) (Interaction, string) {
	pair := entry
	rest := ""
	if head, tail, ok := strings.Cut(entry, "->"); ok {
		pair = head
		rest = tail
	}

	var a, b string
	for _, sep := range interactionSeparators {
		if left, right, ok := strings.Cut(pair, sep); ok {
			a, b = strings.TrimSpace(left), right
			break
		}
	}
	if a == "" {
		return Interaction{}, "expected paramA×paramB pair"
	}

	it := Interaction{ParamA: a}
	if rest != "" {
		// Arrow form: pair contains only names, rest is target:effect.
		it.ParamB = strings.TrimSpace(b)
		fields := splitFields(rest, ":")
		if len(fields) != 2 {
			return Interaction{}, "expected ->target:effect"
		}
		effect, err := parseFloat(fields[1])
		if err != nil {
			return Interaction{}, fmt.Sprintf("non-numeric effect %q", fields[1])
		}
		it.Target, it.Effect = fields[0], effect
		return it, ""
	}

	name, value, ok := strings.Cut(b, ":")
	if !ok {
		return Interaction{}, "missing effect value"
	}
	effect, err := parseFloat(value)
	if err != nil {
		return Interaction{}, fmt.Sprintf("non-numeric effect %q", value)
	}
	it.ParamB, it.Effect = strings.TrimSpace(name), effect
	return it, ""
}
