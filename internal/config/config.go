// Package config loads the optional HCL configuration file for the decision
// engine. Missing files fall back to defaults so the binary works out of the
// box.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/foldem/internal/estimator"
	"github.com/lox/foldem/internal/policy"
)

// Config represents the complete engine configuration
type Config struct {
	Simulation SimulationSettings `hcl:"simulation,block"`
	Policy     PolicySettings     `hcl:"policy,block"`
	Log        LogSettings        `hcl:"log,block"`
}

// SimulationSettings tunes the Monte Carlo estimator
type SimulationSettings struct {
	TimeBudgetMS  int   `hcl:"time_budget_ms,optional"`
	MaxIterations int   `hcl:"max_iterations,optional"`
	Seed          int64 `hcl:"seed,optional"`
}

// PolicySettings tunes the continue/abandon policy
type PolicySettings struct {
	Threshold float64 `hcl:"threshold,optional"`
}

// LogSettings contains logging configuration
type LogSettings struct {
	Level string `hcl:"level,optional"`
}

// Default returns the default engine configuration
func Default() *Config {
	return &Config{
		Simulation: SimulationSettings{
			TimeBudgetMS: int(estimator.DefaultTimeBudget / time.Millisecond),
		},
		Policy: PolicySettings{
			Threshold: policy.DefaultThreshold,
		},
		Log: LogSettings{
			Level: "info",
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	defaults := Default()
	if cfg.Simulation.TimeBudgetMS == 0 {
		cfg.Simulation.TimeBudgetMS = defaults.Simulation.TimeBudgetMS
	}
	if cfg.Policy.Threshold == 0 {
		cfg.Policy.Threshold = defaults.Policy.Threshold
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Simulation.TimeBudgetMS < 0 {
		return fmt.Errorf("time budget cannot be negative")
	}

	if c.Simulation.MaxIterations < 0 {
		return fmt.Errorf("max iterations cannot be negative")
	}

	if c.Policy.Threshold < 0 || c.Policy.Threshold > 1 {
		return fmt.Errorf("threshold must be in [0,1], got %g", c.Policy.Threshold)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	return nil
}

// EstimatorConfig converts the file settings into an estimator configuration
func (c *Config) EstimatorConfig() estimator.Config {
	return estimator.Config{
		TimeBudget:    time.Duration(c.Simulation.TimeBudgetMS) * time.Millisecond,
		MaxIterations: c.Simulation.MaxIterations,
		Threshold:     c.Policy.Threshold,
	}
}
