package viz

import (
	"fmt"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/ktrevlop/etas/src/catalog"
	"github.com/ktrevlop/etas/src/etas"
)

// Fixed lag binning for the time kernel diagnostics: 49 log-spaced bins
// covering 1e-4 to 1e4 days.
const (
	timeBinLo = 1e-4
	timeBinHi = 1e4
)

// TemporalDecayPlot draws the fitted time kernel as a unit-mass PDF against
// the weighted empirical lag distribution derived from the Pij table, plus
// one curve per comparison parameter set, and writes the result to path.
// Dashed vertical lines mark tau and c.
func TemporalDecayPlot(pairs []catalog.Pair, tau, c, omega float64, label string, comparison map[string]etas.Parameters, path string) error {
	edges, mids, widths := logBins(timeBinLo, timeBinHi)

	analytic := unitSum(etas.TemporalKernelOver(mids, tau, c, omega))

	samples := make([]float64, len(pairs))
	weights := make([]float64, len(pairs))
	for i, p := range pairs {
		samples[i] = p.TimeDistance
		weights[i] = p.Weight()
	}
	empirical := unitPDF(weightedCounts(samples, weights, edges), widths)

	yLo, yHi := extendRange(math.Inf(1), math.Inf(-1), analytic, true)
	yLo, yHi = extendRange(yLo, yHi, empirical, true)

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    label,
			XValues: mids,
			YValues: analytic,
			Style:   lineStyle(chart.GetDefaultColor(0)),
		},
	}
	if px, py := filterPoints(mids, empirical, true, true); len(px) > 0 {
		if len(px) == 1 {
			// Pad to two x values for go-chart.
			px = append(px, px[0]*1.1)
			py = append(py, py[0])
		}
		series = append(series, chart.ContinuousSeries{
			Name:    "observed",
			XValues: px,
			YValues: py,
			Style:   pointStyle(chart.ColorBlue),
		})
	}
	for i, lbl := range sortedLabels(comparison) {
		cp := comparison[lbl]
		curve := unitSum(etas.TemporalKernelOver(mids, cp.Tau, cp.C, cp.Omega))
		yLo, yHi = extendRange(yLo, yHi, curve, true)
		series = append(series, chart.ContinuousSeries{
			Name:    lbl,
			XValues: mids,
			YValues: curve,
			Style:   lineStyle(chart.GetDefaultColor(i + 1)),
		})
	}

	// Dashed reference lines at the two temporal parameters, annotated with
	// their log10 values near the bottom of the plot.
	series = append(series,
		chart.ContinuousSeries{
			XValues: []float64{tau, tau},
			YValues: []float64{yLo, yHi},
			Style:   dashStyle(),
		},
		chart.ContinuousSeries{
			XValues: []float64{c, c},
			YValues: []float64{yLo, yHi},
			Style:   dashStyle(),
		},
		chart.AnnotationSeries{
			Annotations: []chart.Value2{
				{XValue: tau, YValue: yLo, Label: fmt.Sprintf("log10(tau)=%.2f", math.Log10(tau))},
				{XValue: c, YValue: yLo, Label: fmt.Sprintf("log10(c)=%.2f", math.Log10(c))},
			},
		},
	)

	xLo, xHi := timeAxisSpan(mids, tau, c)
	ch := chart.Chart{
		Width:      chartWidth,
		Height:     chartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 28}},
		XAxis: chart.XAxis{
			Name:  "Δt (days)",
			Range: &chart.LogarithmicRange{Min: xLo, Max: xHi},
		},
		YAxis: chart.YAxis{
			Name:  "PDF (time kernel)",
			Range: &chart.LogarithmicRange{Min: yLo, Max: yHi},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return writeChart(ch, path)
}

// timeAxisSpan widens the lag axis beyond the fixed binning span when a fit
// puts tau or c outside it, so the dashed reference lines and their
// annotations stay inside the plot area.
func timeAxisSpan(mids []float64, tau, c float64) (lo, hi float64) {
	lo = math.Min(mids[0], math.Min(tau, c))
	hi = math.Max(mids[len(mids)-1], math.Max(tau, c))
	return lo, hi
}
