// Package catalog loads the two tabular inputs of a fit visualisation: the
// earthquake catalog used for the inversion and the Pij event-pair table the
// inversion produced. Both are CSV files with a header row; loading fails
// fast on a missing file, a missing column or an empty table so that plot
// routines never have to reason about absent data.
package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// Event is one catalog row. Only the magnitude participates in the fit
// diagnostics; the remaining catalog columns are ignored on load.
type Event struct {
	Magnitude float64
}

// Pair is one row of the Pij triggering-probability table: a candidate
// source/target event pair with its branching probability.
type Pair struct {
	TimeDistance    float64 // days between source and target
	DistanceSquared float64 // squared epicentral distance
	SourceMagnitude float64 // magnitude of the candidate trigger
	Pij             float64 // probability the source triggered the target
	ZetaPlus1       float64 // detection-incompleteness correction factor
}

// Weight returns the triggering weight Pij * zeta_plus_1. Every weighted
// histogram must use this product; weighting by Pij alone biases the
// empirical curves low wherever the catalog is incomplete.
func (p Pair) Weight() float64 {
	return p.Pij * p.ZetaPlus1
}

// Column names as written by the inversion.
const (
	colMagnitude       = "magnitude"
	colTimeDistance    = "time_distance"
	colDistanceSquared = "spatial_distance_squared"
	colSourceMagnitude = "source_magnitude"
	colPij             = "Pij"
	colZetaPlus1       = "zeta_plus_1"
)

// LoadCatalog reads the catalog CSV at path.
func LoadCatalog(path string) ([]Event, error) {
	rows, idx, err := readTable(path, []string{colMagnitude})
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	events := make([]Event, len(rows))
	for i, row := range rows {
		m, err := parseField(row, idx, colMagnitude, i)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %w", path, err)
		}
		events[i] = Event{Magnitude: m}
	}
	return events, nil
}

// LoadPairs reads the Pij event-pair CSV at path.
func LoadPairs(path string) ([]Pair, error) {
	cols := []string{colTimeDistance, colDistanceSquared, colSourceMagnitude, colPij, colZetaPlus1}
	rows, idx, err := readTable(path, cols)
	if err != nil {
		return nil, fmt.Errorf("pij table %s: %w", path, err)
	}
	pairs := make([]Pair, len(rows))
	for i, row := range rows {
		var p Pair
		fields := []struct {
			name string
			dst  *float64
		}{
			{colTimeDistance, &p.TimeDistance},
			{colDistanceSquared, &p.DistanceSquared},
			{colSourceMagnitude, &p.SourceMagnitude},
			{colPij, &p.Pij},
			{colZetaPlus1, &p.ZetaPlus1},
		}
		for _, f := range fields {
			v, err := parseField(row, idx, f.name, i)
			if err != nil {
				return nil, fmt.Errorf("pij table %s: %w", path, err)
			}
			*f.dst = v
		}
		pairs[i] = p
	}
	return pairs, nil
}

// Magnitudes extracts the magnitude column of a catalog.
func Magnitudes(events []Event) []float64 {
	out := make([]float64, len(events))
	for i, e := range events {
		out[i] = e.Magnitude
	}
	return out
}

// readTable reads a CSV file, verifies the required columns exist and returns
// the data rows plus a name-to-index mapping.
func readTable(path string, required []string) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("empty file")
	}
	idx := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		idx[name] = i
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, nil, fmt.Errorf("missing required column %q", name)
		}
	}
	if len(records) == 1 {
		return nil, nil, fmt.Errorf("no data rows")
	}
	return records[1:], idx, nil
}

func parseField(row []string, idx map[string]int, name string, rowNum int) (float64, error) {
	i := idx[name]
	if i >= len(row) {
		return 0, fmt.Errorf("row %d: missing value for %q", rowNum+2, name)
	}
	v, err := strconv.ParseFloat(row[i], 64)
	if err != nil {
		return 0, fmt.Errorf("row %d: bad %s value %q", rowNum+2, name, row[i])
	}
	return v, nil
}
