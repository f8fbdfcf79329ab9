package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/runningwild/mbench/pkg/bench"
)

// Config represents the top-level configuration for a benchmark run.
// It doubles as the wire format for agent requests, hence the JSON
// tags alongside the YAML ones.
type Config struct {
	Trials int    `yaml:"trials" json:"trials"`
	Warmup int    `yaml:"warmup" json:"warmup"` // -1 disables warm-up entirely
	Seed   int64  `yaml:"seed" json:"seed"`
	Unit   string `yaml:"unit" json:"unit"`     // "ns", "us", "ms", "s" or "auto"
	Format string `yaml:"format" json:"format"` // "table", "json" or "bench"
	Report string `yaml:"report,omitempty" json:"report,omitempty"`

	Commands []Command `yaml:"commands" json:"commands"`
}

// Command names one unit of work to benchmark.
type Command struct {
	Label string   `yaml:"label" json:"label"`
	Argv  []string `yaml:"argv" json:"argv"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	return &cfg, nil
}

// SetDefaults fills unset fields. Callers that build a Config by hand
// (flags, agent requests) run this before validation.
func (c *Config) SetDefaults() {
	if c.Trials == 0 {
		c.Trials = bench.DefaultTrials
	}
	if c.Warmup == 0 {
		c.Warmup = bench.DefaultWarmup
	}
	// A negative Warmup stays negative: it is the persistent spelling
	// of "disabled", so defaulting survives YAML and agent round trips
	// where 0 means unset. Options maps it to 0 for the harness.
	if c.Unit == "" {
		c.Unit = "auto"
	}
	if c.Format == "" {
		c.Format = "table"
	}
}

// Options converts the run-shaping fields for the harness.
func (c *Config) Options() bench.Options {
	warmup := c.Warmup
	if warmup < 0 {
		warmup = 0
	}
	return bench.Options{
		Trials: c.Trials,
		Warmup: warmup,
		Seed:   c.Seed,
	}
}
