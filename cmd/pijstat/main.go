// pijstat prints quick summary statistics for a Pij event-pair table and
// optionally the catalog it belongs to, without rendering any plots. Handy for
// sanity-checking inversion outputs before a visualisation run.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/ktrevlop/etas/src/catalog"
)

func main() {
	var pijFile string
	var catalogFile string
	flag.StringVar(&pijFile, "pij", "", "Path to the Pij event-pair CSV (required)")
	flag.StringVar(&catalogFile, "catalog", "", "Optional path to the catalog CSV")
	flag.Parse()

	if pijFile == "" {
		fmt.Fprintln(os.Stderr, "error: -pij is required")
		flag.Usage()
		os.Exit(2)
	}

	pairs, err := catalog.LoadPairs(pijFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	var totalWeight float64
	minMag, maxMag := math.Inf(1), math.Inf(-1)
	minLag, maxLag := math.Inf(1), math.Inf(-1)
	for _, p := range pairs {
		totalWeight += p.Weight()
		minMag = math.Min(minMag, p.SourceMagnitude)
		maxMag = math.Max(maxMag, p.SourceMagnitude)
		minLag = math.Min(minLag, p.TimeDistance)
		maxLag = math.Max(maxLag, p.TimeDistance)
	}
	fmt.Printf("Event pairs: %d\n", len(pairs))
	fmt.Printf("Total triggering weight: %.4f\n", totalWeight)
	fmt.Printf("Source magnitude span: %.2f .. %.2f\n", minMag, maxMag)
	fmt.Printf("Time lag span (days): %.4g .. %.4g\n", minLag, maxLag)

	if catalogFile == "" {
		return
	}
	events, err := catalog.LoadCatalog(catalogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	mags := catalog.Magnitudes(events)
	lo, hi := mags[0], mags[0]
	for _, m := range mags[1:] {
		lo = math.Min(lo, m)
		hi = math.Max(hi, m)
	}
	fmt.Printf("Catalog events: %d\n", len(events))
	fmt.Printf("Catalog magnitude span: %.2f .. %.2f\n", lo, hi)
	fmt.Printf("Triggered fraction: %.4f\n", totalWeight/float64(len(events)))
}
