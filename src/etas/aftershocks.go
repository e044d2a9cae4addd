package etas

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mathext"
)

// ExpectedAftershocks returns the closed-form expected number of direct
// aftershocks above mc for each triggering magnitude in mags. theta is the
// inversion parameter layout without the background rate, i.e.
// Parameters.Array()[1:]: [log10_k0, a, log10_c, omega, log10_tau, log10_d,
// gamma, rho].
//
// timeToStart and timeToEnd condition the count on the triggering event's
// distance (in days) to the start and end of the target window. A nil slice
// means no conditioning on that side; the unconditioned call (nil, nil)
// integrates the time kernel over all positive lags.
func ExpectedAftershocks(mags, theta []float64, mc float64, timeToStart, timeToEnd []float64) ([]float64, error) {
	if len(theta) != 8 {
		return nil, fmt.Errorf("expected aftershocks: want 8 theta entries, got %d", len(theta))
	}
	if timeToStart != nil && len(timeToStart) != len(mags) {
		return nil, fmt.Errorf("expected aftershocks: timeToStart length %d != magnitudes length %d", len(timeToStart), len(mags))
	}
	if timeToEnd != nil && len(timeToEnd) != len(mags) {
		return nil, fmt.Errorf("expected aftershocks: timeToEnd length %d != magnitudes length %d", len(timeToEnd), len(mags))
	}

	k0 := math.Pow(10, theta[0])
	a := theta[1]
	c := math.Pow(10, theta[2])
	omega := theta[3]
	tau := math.Pow(10, theta[4])
	d := math.Pow(10, theta[5])
	gamma := theta[6]
	rho := theta[7]

	out := make([]float64, len(mags))
	for i, m := range mags {
		number := k0 * math.Exp(a*(m-mc))
		// Integral of the spatial kernel over the plane: pi * D^-rho / rho.
		area := math.Pi * math.Pow(d*math.Exp(gamma*(m-mc)), -rho) / rho

		frac := upperGamma(-omega, c/tau)
		if timeToStart != nil {
			frac = upperGamma(-omega, (timeToStart[i]+c)/tau)
		}
		if timeToEnd != nil {
			frac -= upperGamma(-omega, (timeToEnd[i]+c)/tau)
		}
		timeFactor := math.Exp(c/tau) * math.Pow(tau, -omega) * frac

		out[i] = number * area * timeFactor
	}
	return out, nil
}

// upperGamma is the upper incomplete gamma function extended to non-positive
// first arguments via the recursion G(s,x) = (G(s+1,x) - x^s*e^-x) / s.
func upperGamma(s, x float64) float64 {
	switch {
	case s > 0:
		return mathext.GammaIncRegComp(s, x) * math.Gamma(s)
	case s == 0:
		return expIntE1(x)
	default:
		return (upperGamma(s+1, x) - math.Pow(x, s)*math.Exp(-x)) / s
	}
}

// expIntE1 is the exponential integral E1(x) for x > 0, which equals the upper
// incomplete gamma at s == 0. Power series below 1, modified Lentz continued
// fraction above.
func expIntE1(x float64) float64 {
	const eulerGamma = 0.57721566490153286
	if x <= 0 {
		return math.Inf(1)
	}
	if x < 1 {
		sum := -eulerGamma - math.Log(x)
		term := 1.0
		for k := 1; k <= 64; k++ {
			term *= -x / float64(k)
			add := -term / float64(k)
			sum += add
			if math.Abs(add) < 1e-16*math.Abs(sum) {
				break
			}
		}
		return sum
	}
	b := x + 1
	c := 1e30
	d := 1 / b
	h := d
	for i := 1; i <= 200; i++ {
		an := -float64(i) * float64(i)
		b += 2
		d = 1 / (an*d + b)
		c = b + an/c
		del := c * d
		h *= del
		if math.Abs(del-1) < 1e-15 {
			break
		}
	}
	return h * math.Exp(-x)
}
