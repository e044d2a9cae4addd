package viz

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ktrevlop/etas/src/catalog"
	"github.com/ktrevlop/etas/src/etas"
)

func testParams() etas.Parameters {
	return etas.Parameters{
		K0:     math.Pow(10, -2.3),
		A:      1.8,
		C:      0.01,
		Omega:  0.2,
		Tau:    math.Pow(10, 3.5),
		D:      0.1,
		Gamma:  1.2,
		Rho:    0.6,
		Mu:     1e-6,
		Beta:   2.4,
		Mc:     3.0,
		DeltaM: 0.2,
	}
}

func requireNonEmptyFile(t *testing.T, path string) {
	t.Helper()
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected output file %s: %v", path, err)
	}
	if fi.Size() == 0 {
		t.Fatalf("output file %s is empty", path)
	}
}

func TestTemporalDecayPlotWritesFile(t *testing.T) {
	pairs := []catalog.Pair{
		{TimeDistance: 1, DistanceSquared: 4, SourceMagnitude: 3.5, Pij: 1, ZetaPlus1: 1},
		{TimeDistance: 10, DistanceSquared: 25, SourceMagnitude: 4.0, Pij: 1, ZetaPlus1: 1},
	}
	path := filepath.Join(t.TempDir(), "time_kernel.svg")
	if err := TemporalDecayPlot(pairs, 5, 0.1, 0.2, "fit", nil, path); err != nil {
		t.Fatalf("TemporalDecayPlot: %v", err)
	}
	requireNonEmptyFile(t, path)
}

func TestTemporalDecayPlotWithComparison(t *testing.T) {
	pairs := []catalog.Pair{
		{TimeDistance: 0.5, Pij: 0.8, ZetaPlus1: 1.1},
		{TimeDistance: 3, Pij: 0.4, ZetaPlus1: 1.0},
		{TimeDistance: 40, Pij: 0.9, ZetaPlus1: 1.2},
	}
	cmp := map[string]etas.Parameters{
		"alt":   {Tau: 200, C: 0.02, Omega: 0.3},
		"other": {Tau: 800, C: 0.005, Omega: 0.15},
	}
	path := filepath.Join(t.TempDir(), "time_kernel.svg")
	if err := TemporalDecayPlot(pairs, 500, 0.01, 0.2, "fit", cmp, path); err != nil {
		t.Fatalf("TemporalDecayPlot: %v", err)
	}
	requireNonEmptyFile(t, path)
}

func TestTimeAxisSpanCoversReferenceLines(t *testing.T) {
	mids := []float64{1e-4, 1, 1e4}
	lo, hi := timeAxisSpan(mids, 5, 0.1)
	if lo != 1e-4 || hi != 1e4 {
		t.Fatalf("in-range tau/c must not change the span: %g .. %g", lo, hi)
	}
	lo, hi = timeAxisSpan(mids, 1e5, 1e-6)
	if lo != 1e-6 {
		t.Fatalf("c below the binning span must extend the axis: lo=%g", lo)
	}
	if hi != 1e5 {
		t.Fatalf("tau above the binning span must extend the axis: hi=%g", hi)
	}
}

func TestTemporalDecayPlotReferenceLinesOutsideBinning(t *testing.T) {
	// A fit with c below and tau above the fixed lag bins still renders, with
	// the axis widened to keep both dashed markers on the chart.
	pairs := []catalog.Pair{
		{TimeDistance: 1, Pij: 0.7, ZetaPlus1: 1.0},
		{TimeDistance: 30, Pij: 0.5, ZetaPlus1: 1.1},
	}
	path := filepath.Join(t.TempDir(), "time_kernel.svg")
	if err := TemporalDecayPlot(pairs, 1e5, 1e-6, 0.2, "fit", nil, path); err != nil {
		t.Fatalf("TemporalDecayPlot: %v", err)
	}
	requireNonEmptyFile(t, path)
}

func TestTemporalDecayPlotSinglePair(t *testing.T) {
	// One lag fills one histogram bin; the scatter must still render.
	pairs := []catalog.Pair{
		{TimeDistance: 2, Pij: 0.6, ZetaPlus1: 1.0},
	}
	path := filepath.Join(t.TempDir(), "time_kernel.svg")
	if err := TemporalDecayPlot(pairs, 5, 0.1, 0.2, "fit", nil, path); err != nil {
		t.Fatalf("TemporalDecayPlot: %v", err)
	}
	requireNonEmptyFile(t, path)
}
