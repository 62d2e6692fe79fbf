package scoring

import (
	"fmt"

	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/parse"
)

// Effect is one projected metric shift produced by a simulation.
type Effect struct {
	Target string
	Delta  float64
	Cause  string
}

// WindowFlag marks a proposed end value that leaves a parameter's window.
// Flags are advisory; the projection still runs.
type WindowFlag struct {
	Param  string
	Value  float64
	Lo     float64
	Hi     float64
	Reason string
}

// Simulate projects the metric impact of the proposed changes through the
// impact rules. A rule with an empty source applies its effect once per
// evaluation when any change is proposed; a sourced rule fires per matching
// change, scaled by the size of the move when it carries a per-unit
// reference. Window flags are produced for end values outside the
// corresponding parameter window.
func Simulate(changes []parse.Change, rules []parse.ImpactRule, windows *parse.ParameterSet) ([]Effect, []WindowFlag) {
	var effects []Effect
	for _, r := range rules {
		if r.Source == "" {
			if len(changes) > 0 {
				effects = append(effects, Effect{Target: r.Target, Delta: r.Effect, Cause: "any change"})
			}
			continue
		}
		for _, c := range changes {
			if c.Param != r.Source {
				continue
			}
			e := Effect{Target: r.Target, Delta: r.Effect, Cause: c.Param}
			if r.PerUnit != 0 {
				e.Delta = r.Effect * (c.End - c.Start) / r.PerUnit
			}
			effects = append(effects, e)
		}
	}

	var flags []WindowFlag
	if windows != nil {
		for _, c := range changes {
			p, ok := windows.Get(c.Param)
			if !ok || !p.HasRange {
				continue
			}
			if c.End < p.Min || c.End > p.Max {
				flags = append(flags, WindowFlag{
					Param:  c.Param,
					Value:  c.End,
					Lo:     p.Min,
					Hi:     p.Max,
					Reason: fmt.Sprintf("end value %v outside window [%v, %v]", c.End, p.Min, p.Max),
				})
			}
		}
	}
	return effects, flags
}

// NetByTarget folds a list of effects into per-target totals, preserving the
// order targets first appear.
func NetByTarget(effects []Effect) ([]string, map[string]float64) {
	totals := make(map[string]float64)
	var order []string
	for _, e := range effects {
		if _, seen := totals[e.Target]; !seen {
			order = append(order, e.Target)
		}
		totals[e.Target] += e.Delta
	}
	return order, totals
}
