// Package scoring implements the comparative scoring models behind the
// recipe, equipment and risk tools: benchmark-normalized weighted composites,
// window margin scores, FMEA risk priority numbers and what-if projections.
package scoring

import (
	"errors"
	"math"
	"sort"
)

// ErrInvalidWeights is returned when the supplied weights sum to zero.
var ErrInvalidWeights = errors.New("weights must not sum to zero")

// normalizeMax caps the inverted lower-is-better ratio. Values at or near
// zero all score this bounded maximum instead of diverging as value -> 0.
const normalizeMax = 200

// Normalize scales a metric value against its benchmark on a 0-100-centered
// scale where 100 means exactly on benchmark. With lowerIsBetter the ratio is
// inverted so that beating the benchmark still scores above 100, capped at
// normalizeMax. A zero benchmark leaves the raw value untouched.
func Normalize(value, benchmark float64, lowerIsBetter bool) float64 {
	if benchmark == 0 {
		return value
	}
	if lowerIsBetter {
		if value <= 0 {
			return normalizeMax
		}
		return math.Min(100*benchmark/value, normalizeMax)
	}
	return 100 * value / benchmark
}

// Composite computes the weighted mean of the scores. Entries without a
// weight default to 1.0. The two slices are aligned by index; weights may be
// shorter than scores.
func Composite(scores, weights []float64) (float64, error) {
	var sum, wsum float64
	for i, s := range scores {
		w := 1.0
		if i < len(weights) {
			w = weights[i]
		}
		sum += s * w
		wsum += w
	}
	if wsum == 0 {
		return 0, ErrInvalidWeights
	}
	return sum / wsum, nil
}

// Ranked pairs a label with its composite score.
type Ranked struct {
	Label string
	Score float64
}

// Rank sorts entries by score descending. Ties keep their input order.
func Rank(entries []Ranked) []Ranked {
	out := append([]Ranked(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// MarginScore rates how centered a value sits inside a [lo, hi] window:
// 100 at the center, 0 at either edge or beyond. A degenerate window scores
// 100 only for an exact match.
func MarginScore(value, lo, hi float64) float64 {
	half := (hi - lo) / 2
	center := (lo + hi) / 2
	if half <= 0 {
		if value == center {
			return 100
		}
		return 0
	}
	score := 100 * (1 - math.Abs(value-center)/half)
	if score < 0 {
		return 0
	}
	return score
}

// MarginFraction returns the remaining margin as a fraction of the window
// half-width: 1 at the center, 0 at an edge, negative outside.
func MarginFraction(value, lo, hi float64) float64 {
	half := (hi - lo) / 2
	if half <= 0 {
		if value == lo {
			return 1
		}
		return -1
	}
	center := (lo + hi) / 2
	return 1 - math.Abs(value-center)/half
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
