package viz

import (
	"fmt"
	"math"
	"os"
	"sort"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ktrevlop/etas/src/etas"
)

const (
	chartWidth  = 720
	chartHeight = 480
)

// lineStyle returns a style for an analytic curve.
func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 2,
		StrokeColor: col,
	}
}

// pointStyle returns a style that renders points only (no connecting line).
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 0,
		DotWidth:    4,
		DotColor:    col,
	}
}

// dashStyle returns a thin dashed style for reference lines.
func dashStyle() chart.Style {
	return chart.Style{
		StrokeWidth:     1,
		StrokeColor:     chart.ColorBlack,
		StrokeDashArray: []float64{4, 4},
	}
}

// plottable reports whether a value can be drawn on a logarithmic axis.
func plottable(v float64, logScale bool) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return !logScale || v > 0
}

// filterPoints drops point pairs whose coordinates cannot be drawn on the
// requested axis scales: NaN and infinite values everywhere, non-positive
// values on log axes.
func filterPoints(xs, ys []float64, logX, logY bool) (px, py []float64) {
	for i := range xs {
		if plottable(xs[i], logX) && plottable(ys[i], logY) {
			px = append(px, xs[i])
			py = append(py, ys[i])
		}
	}
	return px, py
}

// extendRange widens lo/hi to cover all plottable values in ys.
func extendRange(lo, hi float64, ys []float64, logScale bool) (float64, float64) {
	for _, v := range ys {
		if !plottable(v, logScale) {
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// sortedLabels returns the comparison labels in deterministic order.
func sortedLabels(comparison map[string]etas.Parameters) []string {
	labels := make([]string, 0, len(comparison))
	for l := range comparison {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// writeChart renders ch as an SVG document at path, closing the file on all
// paths so no drawing state leaks into the next plot call.
func writeChart(ch chart.Chart, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := ch.Render(chart.SVG, f); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
