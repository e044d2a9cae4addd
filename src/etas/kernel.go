package etas

import "math"

// SpatialKernel evaluates the isotropic spatial decay kernel
// 1 / (dist + d*exp(gamma*(m-mc)))^(1+rho) at a single squared-distance-scale
// input. dist must satisfy dist + d*exp(gamma*(m-mc)) > 0.
func SpatialKernel(dist, d, gamma, rho, m, mc float64) float64 {
	return 1 / math.Pow(dist+d*math.Exp(gamma*(m-mc)), 1+rho)
}

// SpatialKernelOver evaluates SpatialKernel at every distance in dists.
func SpatialKernelOver(dists []float64, d, gamma, rho, m, mc float64) []float64 {
	out := make([]float64, len(dists))
	for i, r := range dists {
		out[i] = SpatialKernel(r, d, gamma, rho, m, mc)
	}
	return out
}

// TemporalKernel evaluates the time decay kernel exp(-t/tau) / (t+c)^(1+omega).
func TemporalKernel(t, tau, c, omega float64) float64 {
	return math.Exp(-t/tau) / math.Pow(t+c, 1+omega)
}

// TemporalKernelOver evaluates TemporalKernel at every lag in ts.
func TemporalKernelOver(ts []float64, tau, c, omega float64) []float64 {
	out := make([]float64, len(ts))
	for i, t := range ts {
		out[i] = TemporalKernel(t, tau, c, omega)
	}
	return out
}
