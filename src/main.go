// ETAS fit visualisation entrypoint.
//
// Reads a metadata file describing one fitted model (input tables, fitted
// parameter sets, output directory) and renders the goodness-of-fit
// diagnostics: the time kernel, the productivity law and the space kernel,
// each overlaying the analytic curve on the weighted empirical distribution
// from the Pij event-pair table.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ktrevlop/etas/src/config"
	"github.com/ktrevlop/etas/src/viz"
)

func main() {
	configPath := flag.String("config", "", "Path to the fit metadata file (YAML, JSON or TOML)")
	only := flag.String("only", "all", "Which diagnostic to render (time|productivity|space|all)")
	logLevel := flag.String("log-level", "info", "Log level (debug|info|warn|error)")
	flag.Parse()

	viz.SetLogLevel(*logLevel)

	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "error: -config is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid config %s: %v\n", *configPath, err)
		os.Exit(1)
	}

	sess, err := viz.NewSession(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	switch *only {
	case "time":
		err = sess.TimeKernelPlot("")
	case "productivity":
		err = sess.ProductivityLawPlot("")
	case "space":
		err = sess.SpaceKernelPlot("")
	case "all":
		err = sess.AllPlots()
	default:
		fmt.Fprintf(os.Stderr, "error: unknown -only value %q (want time, productivity, space or all)\n", *only)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
