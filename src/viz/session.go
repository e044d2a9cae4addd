// Package viz renders goodness-of-fit diagnostics for a fitted ETAS model:
// the time kernel, the productivity law and the space kernel, each overlaying
// the analytic curve on a weighted empirical histogram from the Pij table.
package viz

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ktrevlop/etas/src/catalog"
	"github.com/ktrevlop/etas/src/config"
	"github.com/ktrevlop/etas/src/etas"
)

// Default output names, one per plot kind. The space kernel name is a
// template: the requested magnitude is appended per file.
const (
	DefaultTimeKernelFile   = "time_kernel_fit.svg"
	DefaultProductivityFile = "productivity_law_fit.svg"
	DefaultSpaceKernelFile  = "space_kernel_fit.svg"
)

// Session holds everything one fit visualisation needs: the catalog, the Pij
// event-pair table, the primary parameter set and the comparison sets already
// rescaled to the primary completeness convention. All fields are read-only
// after construction; plot methods only produce files.
type Session struct {
	events     []catalog.Event
	pairs      []catalog.Pair
	params     etas.Parameters
	comparison map[string]etas.Parameters
	magnitudes []float64
	label      string
	storePath  string
}

// NewSession loads both input tables and prepares all parameter sets.
// Comparison sets are rescaled here, exactly once; the session keeps only the
// rescaled copies, so the shift cannot be applied twice.
func NewSession(cfg *config.Config) (*Session, error) {
	events, err := catalog.LoadCatalog(cfg.FnCatalog)
	if err != nil {
		return nil, err
	}
	pairs, err := catalog.LoadPairs(cfg.FnPij)
	if err != nil {
		return nil, err
	}
	params, err := etas.FromMap(cfg.Parameters)
	if err != nil {
		return nil, err
	}
	if cfg.Mc == nil {
		return nil, fmt.Errorf("mc is required")
	}
	params.Mc = *cfg.Mc
	params.DeltaM = cfg.DeltaM

	comparison := make(map[string]etas.Parameters, len(cfg.ComparisonParameters))
	for label, vals := range cfg.ComparisonParameters {
		cp, err := etas.FromComparisonMap(vals)
		if err != nil {
			return nil, fmt.Errorf("comparison set %q: %w", label, err)
		}
		comparison[label] = cp.Rescale(params)
	}

	if err := os.MkdirAll(cfg.StorePath, 0o755); err != nil {
		return nil, fmt.Errorf("store path: %w", err)
	}

	Debugf("session loaded: %d catalog events, %d event pairs, %d comparison sets",
		len(events), len(pairs), len(comparison))

	return &Session{
		events:     events,
		pairs:      pairs,
		params:     params,
		comparison: comparison,
		magnitudes: cfg.MagnitudeList,
		label:      cfg.Label,
		storePath:  cfg.StorePath,
	}, nil
}

// Comparison returns the rescaled comparison parameter set for a label.
func (s *Session) Comparison(label string) (etas.Parameters, bool) {
	p, ok := s.comparison[label]
	return p, ok
}

// TimeKernelPlot writes the temporal decay diagnostic. An empty name selects
// the default file name.
func (s *Session) TimeKernelPlot(name string) error {
	if name == "" {
		name = DefaultTimeKernelFile
	}
	path := filepath.Join(s.storePath, name)
	if err := TemporalDecayPlot(s.pairs, s.params.Tau, s.params.C, s.params.Omega, s.label, s.comparison, path); err != nil {
		return err
	}
	Infof("wrote time kernel plot %s", path)
	return nil
}

// ProductivityLawPlot writes the productivity diagnostic.
func (s *Session) ProductivityLawPlot(name string) error {
	if name == "" {
		name = DefaultProductivityFile
	}
	path := filepath.Join(s.storePath, name)
	if err := ProductivityPlot(s.pairs, s.events, s.params, s.label, s.comparison, path); err != nil {
		return err
	}
	Infof("wrote productivity plot %s", path)
	return nil
}

// SpaceKernelPlot writes one spatial decay diagnostic per magnitude in the
// session's magnitude list.
func (s *Session) SpaceKernelPlot(name string) error {
	if name == "" {
		name = DefaultSpaceKernelFile
	}
	path := filepath.Join(s.storePath, name)
	if err := SpatialDecayPlot(s.pairs, s.magnitudes, s.params.D, s.params.Gamma, s.params.Rho, s.params.Mc, s.label, s.comparison, path); err != nil {
		return err
	}
	Infof("wrote space kernel plots under %s for %d magnitudes", s.storePath, len(s.magnitudes))
	return nil
}

// AllPlots runs all three diagnostics with their default file names.
func (s *Session) AllPlots() error {
	if err := s.TimeKernelPlot(""); err != nil {
		return err
	}
	if err := s.ProductivityLawPlot(""); err != nil {
		return err
	}
	return s.SpaceKernelPlot("")
}
