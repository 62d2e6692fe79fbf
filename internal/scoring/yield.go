package scoring

import "github.com/jkwjkw1020-bot/semiprocess-mcp/internal/parse"

// YieldContribution itemizes one term of a yield projection.
type YieldContribution struct {
	Label string
	Delta float64
}

// YieldImpact projects a yield figure from a baseline through per-parameter
// sensitivities and pairwise interaction terms. Each change contributes
// sensitivity x (end - start); an interaction fires once when both of its
// parameters appear in the change set. The projection is clipped to [0, 100].
func YieldImpact(baseline float64, changes []parse.Change, interactions []parse.Interaction) (float64, []YieldContribution) {
	changed := make(map[string]bool, len(changes))
	var contribs []YieldContribution

	projected := baseline
	for _, c := range changes {
		changed[c.Param] = true
		delta := c.Sensitivity * (c.End - c.Start)
		projected += delta
		contribs = append(contribs, YieldContribution{Label: c.Param, Delta: delta})
	}
	for _, it := range interactions {
		if !changed[it.ParamA] || !changed[it.ParamB] {
			continue
		}
		projected += it.Effect
		contribs = append(contribs, YieldContribution{
			Label: it.ParamA + " x " + it.ParamB,
			Delta: it.Effect,
		})
	}
	return Clamp(projected, 0, 100), contribs
}
