package viz

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// logBinEdges is the number of edges in a log-spaced binning (49 bins).
const logBinEdges = 50

// logBins returns logarithmically spaced bin edges from lo to hi inclusive,
// together with bin midpoints and widths. lo and hi must be positive.
func logBins(lo, hi float64) (edges, mids, widths []float64) {
	edges = floats.LogSpan(make([]float64, logBinEdges), lo, hi)
	mids = make([]float64, len(edges)-1)
	widths = make([]float64, len(edges)-1)
	for i := range mids {
		mids[i] = (edges[i] + edges[i+1]) / 2
		widths[i] = edges[i+1] - edges[i]
	}
	return edges, mids, widths
}

// arange returns edges [start, start+step, ...) stopping before stop, matching
// half-open arange semantics including its float fuzz: the count is the
// ceiling of (stop-start)/step.
func arange(start, stop, step float64) []float64 {
	n := int(math.Ceil((stop - start) / step))
	if n < 0 {
		n = 0
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// midpoints returns the centers of consecutive edge pairs.
func midpoints(edges []float64) []float64 {
	out := make([]float64, len(edges)-1)
	for i := range out {
		out[i] = (edges[i] + edges[i+1]) / 2
	}
	return out
}

// weightedCounts sums the weights of samples falling into the bins described
// by edges. Samples outside the edge span are dropped; a sample equal to the
// top edge lands in the last bin. A nil weights slice counts each sample as 1.
func weightedCounts(samples, weights []float64, edges []float64) []float64 {
	lo, hi := edges[0], edges[len(edges)-1]
	xs := make([]float64, 0, len(samples))
	ws := make([]float64, 0, len(samples))
	topWeight := 0.0
	for i, s := range samples {
		w := 1.0
		if weights != nil {
			w = weights[i]
		}
		switch {
		case s == hi:
			topWeight += w
		case s >= lo && s < hi:
			xs = append(xs, s)
			ws = append(ws, w)
		}
	}
	sort.Sort(&pairedByValue{xs, ws})
	counts := stat.Histogram(nil, edges, xs, ws)
	counts[len(counts)-1] += topWeight
	return counts
}

// pairedByValue sorts a sample slice and keeps its weight slice aligned, as
// stat.Histogram requires sorted input.
type pairedByValue struct {
	x, w []float64
}

func (p *pairedByValue) Len() int           { return len(p.x) }
func (p *pairedByValue) Less(i, j int) bool { return p.x[i] < p.x[j] }
func (p *pairedByValue) Swap(i, j int) {
	p.x[i], p.x[j] = p.x[j], p.x[i]
	p.w[i], p.w[j] = p.w[j], p.w[i]
}

// unitPDF converts weighted bin counts into a unit-mass density: each count is
// divided by its bin width and then by the total over all bins. A zero total
// turns every bin into NaN; plot routines omit NaN points instead of failing.
func unitPDF(counts, widths []float64) []float64 {
	out := make([]float64, len(counts))
	for i := range counts {
		out[i] = counts[i] / widths[i]
	}
	return unitSum(out)
}

// unitSum rescales xs so its finite entries sum to 1. With a zero (or
// non-finite) total the output is all NaN.
func unitSum(xs []float64) []float64 {
	total := nanSum(xs)
	out := make([]float64, len(xs))
	for i, v := range xs {
		out[i] = v / total
	}
	return out
}

// nanSum sums xs ignoring NaN entries.
func nanSum(xs []float64) float64 {
	total := 0.0
	for _, v := range xs {
		if !math.IsNaN(v) {
			total += v
		}
	}
	return total
}
