package scoring

// RiskTier labels an RPN band.
type RiskTier string

const (
	RiskLow    RiskTier = "low"
	RiskMedium RiskTier = "medium"
	RiskHigh   RiskTier = "high"
)

// RPN thresholds between the risk tiers.
const (
	rpnMediumAt = 80
	rpnHighAt   = 200
)

// FMEAEntry is the scored risk assessment of one parameter against its
// process window.
type FMEAEntry struct {
	Name       string
	Severity   int
	Occurrence int
	Detection  int
	RPN        int
	Tier       RiskTier
	InWindow   bool
}

// ScoreFMEA derives occurrence and detection ratings from how much window
// margin a parameter has left, multiplies in the caller-supplied severity and
// buckets the resulting risk priority number.
func ScoreFMEA(name string, value, lo, hi float64, severity int) FMEAEntry {
	if severity < 1 {
		severity = 1
	}
	if severity > 10 {
		severity = 10
	}

	m := MarginFraction(value, lo, hi)
	e := FMEAEntry{
		Name:       name,
		Severity:   severity,
		Occurrence: occurrenceRating(m),
		Detection:  detectionRating(m),
		InWindow:   m >= 0,
	}
	e.RPN = e.Severity * e.Occurrence * e.Detection
	e.Tier = TierForRPN(e.RPN)
	return e
}

// occurrenceRating maps remaining window margin to the likelihood a drift
// leaves the window. Out-of-window values already failed.
func occurrenceRating(m float64) int {
	switch {
	case m < 0:
		return 10
	case m > 0.6:
		return 2
	case m > 0.4:
		return 4
	case m > 0.25:
		return 6
	case m > 0.1:
		return 8
	default:
		return 10
	}
}

// detectionRating maps margin to how hard an excursion is to catch before it
// matters: tight margins leave little room between alarm and failure.
func detectionRating(m float64) int {
	switch {
	case m < 0:
		return 8
	case m > 0.5:
		return 3
	case m > 0.2:
		return 5
	default:
		return 7
	}
}

// TierForRPN buckets a risk priority number.
func TierForRPN(rpn int) RiskTier {
	switch {
	case rpn >= rpnHighAt:
		return RiskHigh
	case rpn >= rpnMediumAt:
		return RiskMedium
	default:
		return RiskLow
	}
}
