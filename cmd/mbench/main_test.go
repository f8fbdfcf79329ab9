package main

import (
	"flag"
	"testing"

	"github.com/runningwild/mbench/pkg/bench"
)

func parseFlags(t *testing.T, args ...string) *Flags {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := SetupFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return f
}

func TestOptionsWarmupDisable(t *testing.T) {
	// -warmup -1 is documented as "disables"; it must reach the
	// harness as 0, not die in validation.
	f := parseFlags(t, "-warmup", "-1")
	opts, err := f.Options()
	if err != nil {
		t.Fatalf("Options failed: %v", err)
	}
	if opts.Warmup != 0 {
		t.Errorf("Warmup = %d, want 0", opts.Warmup)
	}
	if opts.Trials != bench.DefaultTrials {
		t.Errorf("Trials = %d, want %d", opts.Trials, bench.DefaultTrials)
	}
}

func TestOptionsRejectNonPositiveTrials(t *testing.T) {
	// The flag layer, unlike YAML, sees an explicit 0. It must reject
	// it rather than silently defaulting to 100.
	for _, v := range []string{"0", "-3"} {
		f := parseFlags(t, "-trials", v)
		if _, err := f.Options(); err == nil {
			t.Errorf("-trials %s accepted", v)
		}
	}
}

func TestLoadConfigRejectsZeroTrials(t *testing.T) {
	f := parseFlags(t, "-trials", "0")
	if _, err := f.LoadConfig([]string{"true"}); err == nil {
		t.Error("-trials 0 accepted by LoadConfig")
	}
}

func TestLoadConfigKeepsWarmupDisabled(t *testing.T) {
	// The config keeps -1 so "disabled" survives the trip through an
	// agent request, where 0 means unset.
	f := parseFlags(t, "-warmup", "-1")
	cfg, err := f.LoadConfig([]string{"true"})
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Warmup != -1 {
		t.Errorf("cfg.Warmup = %d, want -1", cfg.Warmup)
	}
	if got := cfg.Options().Warmup; got != 0 {
		t.Errorf("Options().Warmup = %d, want 0", got)
	}
}
