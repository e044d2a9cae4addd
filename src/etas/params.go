package etas

import (
	"fmt"
	"math"
)

// Parameters holds one region's fitted ETAS parameter set on linear scale.
// Metadata files store the amplitude-like fields (k0, c, d, mu, tau) as log10
// values; FromMap exponentiates them on load so the rest of the code never
// deals with log-encoded numbers.
type Parameters struct {
	K0    float64 // productivity amplitude
	A     float64 // productivity magnitude exponent
	C     float64 // temporal offset (days)
	Omega float64 // temporal decay exponent
	Tau   float64 // temporal cutoff (days)
	D     float64 // spatial offset
	Gamma float64 // spatial magnitude exponent
	Rho   float64 // spatial decay exponent
	Mu    float64 // background rate
	Beta  float64 // Gutenberg-Richter exponent, needed only for rescaling

	Mc     float64 // completeness magnitude
	DeltaM float64 // magnitude bin width
}

// requiredNames are the fields every parameter mapping must provide.
var requiredNames = []string{
	"a", "gamma", "omega", "rho",
	"log10_c", "log10_d", "log10_k0", "log10_mu", "log10_tau",
}

// FromMap builds a Parameters value from a named mapping as found in the
// metadata file. Missing required names fail immediately rather than surfacing
// later as zero-valued kernels.
func FromMap(vals map[string]float64) (Parameters, error) {
	for _, name := range requiredNames {
		if _, ok := vals[name]; !ok {
			return Parameters{}, fmt.Errorf("parameters: missing required field %q", name)
		}
	}
	p := Parameters{
		A:     vals["a"],
		Gamma: vals["gamma"],
		Omega: vals["omega"],
		Rho:   vals["rho"],
		C:     math.Pow(10, vals["log10_c"]),
		D:     math.Pow(10, vals["log10_d"]),
		K0:    math.Pow(10, vals["log10_k0"]),
		Mu:    math.Pow(10, vals["log10_mu"]),
		Tau:   math.Pow(10, vals["log10_tau"]),
	}
	// Optional fields; comparison sets must carry them (see FromComparisonMap).
	p.Beta = vals["beta"]
	p.Mc = vals["mc"]
	p.DeltaM = vals["delta_m"]
	return p, nil
}

// FromComparisonMap is FromMap plus the extra fields a comparison region needs
// before it can be rescaled to another region's completeness convention.
func FromComparisonMap(vals map[string]float64) (Parameters, error) {
	for _, name := range []string{"beta", "mc", "delta_m"} {
		if _, ok := vals[name]; !ok {
			return Parameters{}, fmt.Errorf("comparison parameters: missing required field %q", name)
		}
	}
	return FromMap(vals)
}

// Rescale shifts this parameter set to the primary region's completeness
// magnitude convention so kernel curves across regions are comparable. The
// formula assumes gamma, rho and beta mean the same thing in both regions.
// Callers must apply it exactly once per comparison set; applying it twice
// compounds the magnitude shift.
func (p Parameters) Rescale(primary Parameters) Parameters {
	delta := (p.Mc - p.DeltaM/2) - (primary.Mc - primary.DeltaM/2)
	out := p
	out.D = p.D * math.Exp(delta*p.Gamma)
	out.K0 = p.K0 * math.Exp(delta*p.Gamma*p.Rho)
	out.Mu = p.Mu * math.Exp(-delta*p.Beta)
	return out
}

// Array returns the fixed-order log10-encoded layout the inversion code uses:
// [log10_mu, log10_k0, a, log10_c, omega, log10_tau, log10_d, gamma, rho].
// ExpectedAftershocks consumes this layout with the leading background-rate
// entry stripped.
func (p Parameters) Array() []float64 {
	return []float64{
		math.Log10(p.Mu),
		math.Log10(p.K0),
		p.A,
		math.Log10(p.C),
		p.Omega,
		math.Log10(p.Tau),
		math.Log10(p.D),
		p.Gamma,
		p.Rho,
	}
}
