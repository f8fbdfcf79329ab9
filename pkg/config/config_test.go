package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bench.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
commands:
  - label: noop
    argv: ["true"]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Trials != 100 {
		t.Errorf("Trials = %d, want 100", cfg.Trials)
	}
	if cfg.Warmup != 2 {
		t.Errorf("Warmup = %d, want 2", cfg.Warmup)
	}
	if cfg.Unit != "auto" {
		t.Errorf("Unit = %q, want auto", cfg.Unit)
	}
	if cfg.Format != "table" {
		t.Errorf("Format = %q, want table", cfg.Format)
	}
	if len(cfg.Commands) != 1 || cfg.Commands[0].Label != "noop" {
		t.Errorf("Commands = %+v", cfg.Commands)
	}
}

func TestLoadExplicitValues(t *testing.T) {
	path := writeConfig(t, `
trials: 25
warmup: -1
unit: us
format: json
seed: 7
commands:
  - label: a
    argv: ["sleep", "0"]
  - label: b
    argv: ["sleep", "0.01"]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Trials != 25 {
		t.Errorf("Trials = %d, want 25", cfg.Trials)
	}
	if cfg.Warmup != -1 {
		t.Errorf("Warmup = %d, want -1 preserved (the spelling of disabled)", cfg.Warmup)
	}
	if cfg.Seed != 7 || cfg.Unit != "us" || cfg.Format != "json" {
		t.Errorf("unexpected values: %+v", cfg)
	}
	opts := cfg.Options()
	if opts.Trials != 25 || opts.Warmup != 0 || opts.Seed != 7 {
		t.Errorf("Options() = %+v", opts)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing file accepted")
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := writeConfig(t, "trials: [not an int\n")
	if _, err := Load(path); err == nil {
		t.Error("bad yaml accepted")
	}
}
