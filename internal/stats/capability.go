package stats

import (
	"fmt"
	"math"
)

// d2 unbiasing constant for moving ranges of size 2.
const d2 = 1.128

// Capability holds process capability indices against a spec window.
// Cp and Cpk use the short-term sigma estimated from the average moving
// range; Pp and Ppk use the overall sample standard deviation. When the
// series has zero variation the indices are not computable; Uniform is set
// instead and the index fields stay zero.
type Capability struct {
	Summary Summary
	LSL     float64
	USL     float64

	SigmaWithin float64
	Cp          float64
	Cpk         float64
	Pp          float64
	Ppk         float64
	UCL         float64
	LCL         float64
	Uniform     bool

	// Centered reports whether the mean sits within the spec window.
	Centered bool
}

// AssessCapability computes capability and performance indices for a series
// against spec limits, plus the ±3σ control limits around the observed mean.
func AssessCapability(values []float64, lsl, usl float64) (Capability, error) {
	if lsl >= usl {
		return Capability{}, fmt.Errorf("%w: LSL %v, USL %v", ErrInvalidSpecLimits, lsl, usl)
	}
	if len(values) < 2 {
		return Capability{}, fmt.Errorf("%w: need at least 2, got %d", ErrInsufficientData, len(values))
	}

	s, err := Describe(values)
	if err != nil {
		return Capability{}, err
	}

	c := Capability{
		Summary:  s,
		LSL:      lsl,
		USL:      usl,
		Centered: s.Mean >= lsl && s.Mean <= usl,
	}
	if s.StdDev == 0 {
		c.Uniform = true
		c.UCL = s.Mean
		c.LCL = s.Mean
		return c, nil
	}

	c.SigmaWithin = sigmaWithin(values)
	if c.SigmaWithin > 0 {
		c.Cp = (usl - lsl) / (6 * c.SigmaWithin)
		c.Cpk = min((usl-s.Mean)/(3*c.SigmaWithin), (s.Mean-lsl)/(3*c.SigmaWithin))
	}
	c.Pp = (usl - lsl) / (6 * s.StdDev)
	c.Ppk = min((usl-s.Mean)/(3*s.StdDev), (s.Mean-lsl)/(3*s.StdDev))
	c.UCL = s.Mean + 3*s.StdDev
	c.LCL = s.Mean - 3*s.StdDev
	return c, nil
}

// sigmaWithin estimates short-term sigma from the average moving range.
func sigmaWithin(values []float64) float64 {
	var sum float64
	for i := 1; i < len(values); i++ {
		sum += math.Abs(values[i] - values[i-1])
	}
	return sum / float64(len(values)-1) / d2
}

// CapabilityGrade buckets a Cpk into the conventional shop-floor wording.
func CapabilityGrade(c Capability) string {
	if c.Uniform {
		return "perfectly uniform (no observed variation)"
	}
	switch {
	case c.Cpk >= 1.67:
		return "excellent"
	case c.Cpk >= 1.33:
		return "adequate"
	case c.Cpk >= 1.0:
		return "marginal"
	default:
		return "inadequate"
	}
}

// OutOfSpec counts points outside the spec window.
func OutOfSpec(values []float64, lsl, usl float64) int {
	n := 0
	for _, v := range values {
		if v < lsl || v > usl {
			n++
		}
	}
	return n
}
