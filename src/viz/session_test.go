package viz

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ktrevlop/etas/src/config"
)

const (
	testCatalogCSV = `id,magnitude,time
0,3.0,100.5
1,3.0,101.2
2,3.2,102.0
3,3.4,110.7
4,3.6,111.1
5,4.0,120.9
`
	testPairsCSV = `time_distance,spatial_distance_squared,source_magnitude,Pij,zeta_plus_1
1.0,4.0,3.0,0.8,1.1
10.0,25.0,3.4,0.5,1.2
0.5,100.0,4.0,0.9,1.0
2.0,9.0,4.0,0.3,1.3
`
)

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", name, err)
	}
	return path
}

func primaryParamMap() map[string]float64 {
	return map[string]float64{
		"a": 1.8, "gamma": 1.2, "omega": 0.2, "rho": 0.6,
		"log10_c": -2, "log10_d": -1, "log10_k0": -2.3,
		"log10_mu": -6, "log10_tau": 3.5,
	}
}

func sessionConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	alt := primaryParamMap()
	alt["beta"] = 2.4
	alt["mc"] = 3.2
	alt["delta_m"] = 0.2
	mc := 3.0
	return &config.Config{
		FnCatalog:            writeFixture(t, dir, "catalog.csv", testCatalogCSV),
		FnPij:                writeFixture(t, dir, "pij.csv", testPairsCSV),
		Mc:                   &mc,
		DeltaM:               0.2,
		Parameters:           primaryParamMap(),
		Label:                "invariance",
		ComparisonParameters: map[string]map[string]float64{"alt": alt},
		MagnitudeList:        []float64{4.0, 5.5},
		StorePath:            filepath.Join(dir, "plots"),
	}
}

func TestNewSessionLoadsAndRescales(t *testing.T) {
	cfg := sessionConfig(t)
	s, err := NewSession(cfg)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if len(s.events) != 6 {
		t.Fatalf("expected 6 catalog events, got %d", len(s.events))
	}
	if len(s.pairs) != 4 {
		t.Fatalf("expected 4 event pairs, got %d", len(s.pairs))
	}
	if s.params.Mc != 3.0 || s.params.DeltaM != 0.2 {
		t.Fatalf("primary completeness not taken from config: mc=%g delta_m=%g", s.params.Mc, s.params.DeltaM)
	}

	// The comparison set's reference magnitude sits 0.2 above the primary's,
	// so d, k0 and mu must come back shifted accordingly.
	cp, ok := s.Comparison("alt")
	if !ok {
		t.Fatalf("comparison set missing")
	}
	delta := 0.2
	wantD := math.Pow(10, -1) * math.Exp(delta*1.2)
	wantK0 := math.Pow(10, -2.3) * math.Exp(delta*1.2*0.6)
	wantMu := math.Pow(10, -6) * math.Exp(-delta*2.4)
	if math.Abs(cp.D-wantD) > 1e-12 {
		t.Fatalf("rescaled d: got %g want %g", cp.D, wantD)
	}
	if math.Abs(cp.K0-wantK0) > 1e-12 {
		t.Fatalf("rescaled k0: got %g want %g", cp.K0, wantK0)
	}
	if math.Abs(cp.Mu-wantMu) > 1e-18 {
		t.Fatalf("rescaled mu: got %g want %g", cp.Mu, wantMu)
	}
}

func TestNewSessionCreatesStorePath(t *testing.T) {
	cfg := sessionConfig(t)
	if _, err := NewSession(cfg); err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	fi, err := os.Stat(cfg.StorePath)
	if err != nil || !fi.IsDir() {
		t.Fatalf("store path not created: %v", err)
	}
}

func TestNewSessionRequiresMc(t *testing.T) {
	cfg := sessionConfig(t)
	cfg.Mc = nil
	if _, err := NewSession(cfg); err == nil {
		t.Fatalf("expected error for config without a completeness magnitude")
	}
}

func TestNewSessionRejectsBadComparison(t *testing.T) {
	cfg := sessionConfig(t)
	cfg.ComparisonParameters = map[string]map[string]float64{
		"broken": primaryParamMap(), // lacks beta, mc, delta_m
	}
	if _, err := NewSession(cfg); err == nil {
		t.Fatalf("expected error for comparison set without completeness fields")
	}
}

func TestSessionAllPlots(t *testing.T) {
	cfg := sessionConfig(t)
	s, err := NewSession(cfg)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if err := s.AllPlots(); err != nil {
		t.Fatalf("AllPlots: %v", err)
	}
	requireNonEmptyFile(t, filepath.Join(cfg.StorePath, DefaultTimeKernelFile))
	requireNonEmptyFile(t, filepath.Join(cfg.StorePath, DefaultProductivityFile))
	requireNonEmptyFile(t, filepath.Join(cfg.StorePath, "space_kernel_fit_mag_4.00.svg"))
	// No pairs at magnitude 5.5, so no file for it.
	if _, err := os.Stat(filepath.Join(cfg.StorePath, "space_kernel_fit_mag_5.50.svg")); !os.IsNotExist(err) {
		t.Fatalf("magnitude without pairs produced a file")
	}
}

func TestSessionPlotCustomNames(t *testing.T) {
	cfg := sessionConfig(t)
	s, err := NewSession(cfg)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if err := s.TimeKernelPlot("lags.svg"); err != nil {
		t.Fatalf("TimeKernelPlot: %v", err)
	}
	requireNonEmptyFile(t, filepath.Join(cfg.StorePath, "lags.svg"))
	if err := s.SpaceKernelPlot("dist.svg"); err != nil {
		t.Fatalf("SpaceKernelPlot: %v", err)
	}
	requireNonEmptyFile(t, filepath.Join(cfg.StorePath, "dist_mag_4.00.svg"))
}
