// Package config loads and validates the metadata file describing one fit
// visualisation run: where the input tables live, the fitted parameter sets
// and where to store the plots.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	yaml "go.yaml.in/yaml/v3"
)

// Config is the validated visualisation metadata. Mc is a pointer because a
// zero completeness magnitude is a legal value; only an absent key is an
// error, and the two must stay distinguishable after decoding.
type Config struct {
	FnCatalog            string                        `mapstructure:"fn_catalog"`
	FnPij                string                        `mapstructure:"fn_pij"`
	Mc                   *float64                      `mapstructure:"mc"`
	DeltaM               float64                       `mapstructure:"delta_m"`
	Parameters           map[string]float64            `mapstructure:"parameters"`
	Label                string                        `mapstructure:"label"`
	ComparisonParameters map[string]map[string]float64 `mapstructure:"comparison_parameters"`
	MagnitudeList        []float64                     `mapstructure:"magnitude_list"`
	StorePath            string                        `mapstructure:"store_path"`
}

// Load reads the metadata file at path and environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("store_path", ".")

	v.SetEnvPrefix("ETAS_VIZ")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.ComparisonParameters = restoreComparisonLabels(path, cfg.ComparisonParameters)
	return &cfg, nil
}

// restoreComparisonLabels undoes viper's key lowercasing for the comparison
// set labels, which are user-facing legend text ("Italy" must not legend as
// "italy"). The labels live under one known key, so that subtree is decoded
// again straight from the file with the format's own parser. Any mismatch
// falls back to the viper-decoded map unchanged.
func restoreComparisonLabels(path string, lowered map[string]map[string]float64) map[string]map[string]float64 {
	if len(lowered) == 0 {
		return lowered
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return lowered
	}
	var shadow struct {
		ComparisonParameters map[string]map[string]float64 `yaml:"comparison_parameters" json:"comparison_parameters" toml:"comparison_parameters"`
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &shadow)
	case ".json":
		err = json.Unmarshal(raw, &shadow)
	case ".toml":
		err = toml.Unmarshal(raw, &shadow)
	default:
		return lowered
	}
	if err != nil || len(shadow.ComparisonParameters) != len(lowered) {
		return lowered
	}
	out := make(map[string]map[string]float64, len(shadow.ComparisonParameters))
	for label, vals := range shadow.ComparisonParameters {
		// Parameter names stay case-insensitive; only the label keeps its case.
		set := make(map[string]float64, len(vals))
		for name, val := range vals {
			set[strings.ToLower(name)] = val
		}
		out[label] = set
	}
	return out
}

// Validate checks the required fields up front so a missing input surfaces
// here and not as a confusing failure deep inside a plot routine.
func (c *Config) Validate() error {
	if c.FnCatalog == "" {
		return fmt.Errorf("fn_catalog is required")
	}
	if c.FnPij == "" {
		return fmt.Errorf("fn_pij is required")
	}
	if c.Mc == nil {
		return fmt.Errorf("mc is required")
	}
	if c.DeltaM <= 0 {
		return fmt.Errorf("delta_m must be positive")
	}
	if len(c.MagnitudeList) == 0 {
		return fmt.Errorf("magnitude_list must name at least one magnitude")
	}
	if len(c.Parameters) == 0 {
		return fmt.Errorf("parameters mapping is required")
	}
	if c.StorePath == "" {
		return fmt.Errorf("store_path is required")
	}
	for label, vals := range c.ComparisonParameters {
		if len(vals) == 0 {
			return fmt.Errorf("comparison_parameters[%s] is empty", label)
		}
	}
	return nil
}
