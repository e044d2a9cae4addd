package viz

import (
	"fmt"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/ktrevlop/etas/src/catalog"
	"github.com/ktrevlop/etas/src/etas"
)

// ProductivityPlot draws the fitted productivity law (expected aftershocks per
// triggering magnitude) against the per-event average of observed weighted
// offspring counts, binned by magnitude over the catalog's magnitude span,
// and writes the result to path. The y axis is logarithmic.
func ProductivityPlot(pairs []catalog.Pair, events []catalog.Event, params etas.Parameters, label string, comparison map[string]etas.Parameters, path string) error {
	mags := catalog.Magnitudes(events)
	minMag, maxMag := mags[0], mags[0]
	for _, m := range mags[1:] {
		minMag = math.Min(minMag, m)
		maxMag = math.Max(maxMag, m)
	}
	edges := arange(minMag-params.DeltaM/2, maxMag+params.DeltaM/2, params.DeltaM)
	if len(edges) < 2 {
		return fmt.Errorf("productivity plot: magnitude span %.2f..%.2f too narrow for bin width %.2f", minMag, maxMag, params.DeltaM)
	}
	mids := midpoints(edges)
	avg := AverageProductivity(pairs, mags, edges)
	if len(mids) == 1 {
		// go-chart cannot draw a series spanning a single x value; extend the
		// curve by one empty bin.
		mids = append(mids, mids[0]+params.DeltaM)
		avg = append(avg, math.NaN())
	}

	expected, err := etas.ExpectedAftershocks(mids, params.Array()[1:], params.Mc, nil, nil)
	if err != nil {
		return fmt.Errorf("productivity plot: %w", err)
	}

	yLo, yHi := extendRange(math.Inf(1), math.Inf(-1), expected, true)
	yLo, yHi = extendRange(yLo, yHi, avg, true)

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    label,
			XValues: mids,
			YValues: expected,
			Style:   lineStyle(chart.GetDefaultColor(0)),
		},
	}
	if px, py := filterPoints(mids, avg, false, true); len(px) > 0 {
		if len(px) == 1 {
			// Pad to two x values for go-chart.
			px = append(px, px[0]+params.DeltaM)
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
		curve, err := etas.ExpectedAftershocks(mids, cp.Array()[1:], params.Mc, nil, nil)
		if err != nil {
			return fmt.Errorf("productivity plot: comparison %q: %w", lbl, err)
		}
		yLo, yHi = extendRange(yLo, yHi, curve, true)
		series = append(series, chart.ContinuousSeries{
			Name:    lbl,
			XValues: mids,
			YValues: curve,
			Style:   lineStyle(chart.GetDefaultColor(i + 1)),
		})
	}

	ch := chart.Chart{
		Width:      chartWidth,
		Height:     chartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 28}},
		XAxis: chart.XAxis{
			Name: "magnitude",
		},
		YAxis: chart.YAxis{
			Name:  "number of aftershocks",
			Range: &chart.LogarithmicRange{Min: yLo, Max: yHi},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return writeChart(ch, path)
}

// AverageProductivity bins the weighted offspring counts of the Pij table by
// source magnitude and divides each bin by the raw number of catalog events in
// it, yielding the average observed offspring count per triggering event.
// Bins without catalog events divide by zero and come out NaN; the plot omits
// them.
func AverageProductivity(pairs []catalog.Pair, catalogMags []float64, edges []float64) []float64 {
	samples := make([]float64, len(pairs))
	weights := make([]float64, len(pairs))
	for i, p := range pairs {
		samples[i] = p.SourceMagnitude
		weights[i] = p.Weight()
	}
	counts := weightedCounts(samples, weights, edges)
	howMany := weightedCounts(catalogMags, nil, edges)
	out := make([]float64, len(counts))
	for i := range counts {
		out[i] = counts[i] / howMany[i]
	}
	return out
}
