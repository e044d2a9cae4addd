package viz

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/ktrevlop/etas/src/catalog"
	"github.com/ktrevlop/etas/src/etas"
)

// Lower edge of the spatial distance binning.
const distBinLo = 0.1

// SpatialDecayPlot draws the fitted space kernel against the weighted
// empirical distance distribution, one chart per requested triggering
// magnitude. Event pairs are matched to a magnitude by rounding both sides to
// one decimal. Each output file carries the magnitude in its name
// ("..._mag_4.00.svg"); a magnitude with no matching pairs is skipped with a
// warning rather than producing a degenerate chart.
func SpatialDecayPlot(pairs []catalog.Pair, magnitudes []float64, d, gamma, rho, mc float64, label string, comparison map[string]etas.Parameters, path string) error {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	for _, m := range magnitudes {
		subset := pairsAtMagnitude(pairs, m)
		if len(subset) == 0 {
			Warnf("space kernel: no event pairs with source magnitude %.1f; skipping", m)
			continue
		}
		out := fmt.Sprintf("%s_mag_%.2f.svg", base, m)
		if err := spatialDecayChart(subset, m, d, gamma, rho, mc, label, comparison, out); err != nil {
			return err
		}
	}
	return nil
}

// pairsAtMagnitude selects the pairs whose source magnitude rounds to the same
// one-decimal value as m.
func pairsAtMagnitude(pairs []catalog.Pair, m float64) []catalog.Pair {
	target := math.Round(m * 10)
	var out []catalog.Pair
	for _, p := range pairs {
		if math.Round(p.SourceMagnitude*10) == target {
			out = append(out, p)
		}
	}
	return out
}

func spatialDecayChart(subset []catalog.Pair, m, d, gamma, rho, mc float64, label string, comparison map[string]etas.Parameters, path string) error {
	maxSq := subset[0].DistanceSquared
	for _, p := range subset[1:] {
		maxSq = math.Max(maxSq, p.DistanceSquared)
	}
	maxDist := math.Sqrt(maxSq)
	// The top edge raises 10 to the natural log of the max distance: the
	// spacing is base-10 while the exponent is base-e. Changing either base
	// would shift every bin edge, so both are kept as-is.
	hi := math.Pow(10, math.Log(maxDist))
	if hi <= distBinLo {
		Warnf("space kernel: max distance %.4f at magnitude %.1f leaves no binnable range; skipping", maxDist, m)
		return nil
	}
	edges, mids, widths := logBins(distBinLo, hi)

	analytic := unitSum(etas.SpatialKernelOver(mids, d, gamma, rho, m, mc))

	samples := make([]float64, len(subset))
	weights := make([]float64, len(subset))
	for i, p := range subset {
		// Histogram input stays in squared-distance space; only the x axis
		// below is converted back to linear distance.
		samples[i] = p.DistanceSquared
		weights[i] = p.Weight()
	}
	empirical := unitPDF(weightedCounts(samples, weights, edges), widths)

	xs := make([]float64, len(mids))
	for i, v := range mids {
		xs[i] = math.Sqrt(v)
	}

	yLo, yHi := extendRange(math.Inf(1), math.Inf(-1), analytic, true)
	yLo, yHi = extendRange(yLo, yHi, empirical, true)

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    label,
			XValues: xs,
			YValues: analytic,
			Style:   lineStyle(chart.GetDefaultColor(0)),
		},
	}
	if px, py := filterPoints(xs, empirical, true, true); len(px) > 0 {
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
		curve := unitSum(etas.SpatialKernelOver(mids, cp.D, cp.Gamma, cp.Rho, m, mc))
		yLo, yHi = extendRange(yLo, yHi, curve, true)
		series = append(series, chart.ContinuousSeries{
			Name:    lbl,
			XValues: xs,
			YValues: curve,
			Style:   lineStyle(chart.GetDefaultColor(i + 1)),
		})
	}

	ch := chart.Chart{
		Title:      fmt.Sprintf("m = %.1f", m),
		Width:      chartWidth,
		Height:     chartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 28}},
		XAxis: chart.XAxis{
			Name:  "distance (km)",
			Range: &chart.LogarithmicRange{Min: xs[0], Max: xs[len(xs)-1]},
		},
		YAxis: chart.YAxis{
			Name:  "PDF (space kernel)",
			Range: &chart.LogarithmicRange{Min: yLo, Max: yHi},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return writeChart(ch, path)
}
