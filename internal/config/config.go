// Package config provides the immutable configuration snapshot for a
// simulation run. All behavioral constants, distribution parameters, and the
// random seed live here — the engine and its components read nothing from
// ambient scope, so a Config fully determines a run.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WagePolicy selects how initial wages are drawn.
type WagePolicy string

const (
	WageFixed  WagePolicy = "fixed"  // Every worker earns WageMean
	WageNormal WagePolicy = "normal" // N(WageMean, WageStd), floored
	WageField  WagePolicy = "field"  // Simplex-noise field over the grid
)

// RatePolicy selects how the per-step automation rate is drawn.
type RatePolicy string

const (
	RateFixed  RatePolicy = "fixed"  // Always AlphaMean
	RateNormal RatePolicy = "normal" // N(AlphaMean, AlphaStd), floored at 0
)

// SelectionPolicy selects which employed workers get automated.
type SelectionPolicy string

const (
	SelectInOrder  SelectionPolicy = "inorder"  // First employed in population order
	SelectShuffled SelectionPolicy = "shuffled" // Uniform random subset
)

// Config holds every parameter of a simulation run.
type Config struct {
	// Population.
	Workers  int `yaml:"workers" json:"workers"`
	GridRows int `yaml:"grid_rows" json:"grid_rows"` // Heatmap layout; also the field wage grid
	GridCols int `yaml:"grid_cols" json:"grid_cols"`

	// Wage distribution.
	WagePolicy WagePolicy `yaml:"wage_policy" json:"wage_policy"`
	WageMean   float64    `yaml:"wage_mean" json:"wage_mean"`
	WageStd    float64    `yaml:"wage_std" json:"wage_std"`
	WageSpread float64    `yaml:"wage_spread" json:"wage_spread"` // Field policy half-width
	WageFloor  float64    `yaml:"wage_floor" json:"wage_floor"`

	// Automation rate distribution.
	RatePolicy RatePolicy `yaml:"rate_policy" json:"rate_policy"`
	AlphaMean  float64    `yaml:"alpha_mean" json:"alpha_mean"`
	AlphaStd   float64    `yaml:"alpha_std" json:"alpha_std"`

	// Behavioral constants.
	Beta         float64 `yaml:"beta" json:"beta"`                     // Marginal propensity to consume
	Gamma        float64 `yaml:"gamma" json:"gamma"`                   // Demand elasticity of firm revenue
	Tau          float64 `yaml:"tau" json:"tau"`                       // Tax rate
	Epsilon      float64 `yaml:"epsilon" json:"epsilon"`               // AI firm market dependency
	ProfitPerJob float64 `yaml:"profit_per_job" json:"profit_per_job"` // Profit per automated job

	DemandFirms int `yaml:"demand_firms" json:"demand_firms"`
	Steps       int `yaml:"steps" json:"steps"`

	Selection SelectionPolicy `yaml:"selection" json:"selection"`

	// RecordWorkers includes per-worker employment/wage vectors in every
	// snapshot (needed by the grid heatmap consumer; off by default since it
	// multiplies history size by the population).
	RecordWorkers bool `yaml:"record_workers" json:"record_workers"`

	Seed uint64 `yaml:"seed" json:"seed"`
}

// Default returns the canonical parameterization: 1000 workers on a 25×40
// grid, heterogeneous wages 100±10, stochastic automation rate 0.05±0.01,
// five demand firms, fifty steps.
func Default() Config {
	return Config{
		Workers:      1000,
		GridRows:     25,
		GridCols:     40,
		WagePolicy:   WageNormal,
		WageMean:     100,
		WageStd:      10,
		WageSpread:   25,
		WageFloor:    10,
		RatePolicy:   RateNormal,
		AlphaMean:    0.05,
		AlphaStd:     0.01,
		Beta:         0.8,
		Gamma:        0.7,
		Tau:          0.3,
		Epsilon:      0.5,
		ProfitPerJob: 50,
		DemandFirms:  5,
		Steps:        50,
		Selection:    SelectShuffled,
		Seed:         42,
	}
}

// Load reads a YAML config file over the defaults. Fields absent from the
// file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate fails fast on parameterizations that would corrupt a run.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	if c.DemandFirms < 0 {
		return fmt.Errorf("demand_firms must be non-negative, got %d", c.DemandFirms)
	}
	if c.Steps < 0 {
		return fmt.Errorf("steps must be non-negative, got %d", c.Steps)
	}
	if c.WageMean <= 0 {
		return fmt.Errorf("wage_mean must be positive, got %g", c.WageMean)
	}
	if c.WageStd < 0 {
		return fmt.Errorf("wage_std must be non-negative, got %g", c.WageStd)
	}
	if c.WageFloor <= 0 {
		return fmt.Errorf("wage_floor must be positive, got %g", c.WageFloor)
	}
	if c.AlphaMean < 0 {
		return fmt.Errorf("alpha_mean must be non-negative, got %g", c.AlphaMean)
	}
	if c.AlphaStd < 0 {
		return fmt.Errorf("alpha_std must be non-negative, got %g", c.AlphaStd)
	}
	if c.Beta < 0 {
		return fmt.Errorf("beta must be non-negative, got %g", c.Beta)
	}

	switch c.WagePolicy {
	case WageFixed, WageNormal:
	case WageField:
		if c.GridRows <= 0 || c.GridCols <= 0 {
			return fmt.Errorf("field wage policy requires positive grid dimensions, got %d×%d", c.GridRows, c.GridCols)
		}
		if c.GridRows*c.GridCols != c.Workers {
			return fmt.Errorf("field wage policy requires workers (%d) = grid_rows × grid_cols (%d×%d)",
				c.Workers, c.GridRows, c.GridCols)
		}
	default:
		return fmt.Errorf("unknown wage_policy %q", c.WagePolicy)
	}

	switch c.RatePolicy {
	case RateFixed, RateNormal:
	default:
		return fmt.Errorf("unknown rate_policy %q", c.RatePolicy)
	}

	switch c.Selection {
	case SelectInOrder, SelectShuffled:
	default:
		return fmt.Errorf("unknown selection policy %q", c.Selection)
	}

	return nil
}
