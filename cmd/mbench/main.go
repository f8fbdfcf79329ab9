package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/runningwild/mbench/pkg/agent"
	"github.com/runningwild/mbench/pkg/bench"
	"github.com/runningwild/mbench/pkg/cluster"
	"github.com/runningwild/mbench/pkg/config"
	"github.com/runningwild/mbench/pkg/report"
)

func main() {
	// Dispatch subcommands
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "run":
			runRunCmd(os.Args[2:])
			return
		case "scaling":
			runScalingCmd(os.Args[2:])
			return
		case "agent":
			runAgentCmd(os.Args[2:])
			return
		case "remote":
			runRemoteCmd(os.Args[2:])
			return
		}
	}

	// Default behavior (flags -> run)
	runRunCmd(os.Args[1:])
}

// Flags holds pointers to all supported CLI flags.
type Flags struct {
	// Config file (optional)
	ConfigFile  *string
	WriteConfig *string

	// Flag-based overrides
	Trials *int
	Warmup *int
	Seed   *int64
	Label  *string

	// Reporting
	Unit       *string
	Format     *string
	ReportFile *string
	NoColor    *bool
}

func SetupFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	f.ConfigFile = fs.String("config", "", "Path to configuration file")
	f.WriteConfig = fs.String("write-config", "", "Save the effective configuration to this YAML file")

	f.Trials = fs.Int("trials", bench.DefaultTrials, "Timed executions per unit")
	f.Warmup = fs.Int("warmup", bench.DefaultWarmup, "Untimed executions per unit before scheduling (-1 disables)")
	f.Seed = fs.Int64("seed", 0, "Schedule shuffle seed (0 = time-seeded)")
	f.Label = fs.String("label", "", "Label for the command given after '--' (default: its basename)")

	f.Unit = fs.String("unit", "auto", "Time unit for the table: ns, us, ms, s or auto")
	f.Format = fs.String("format", "table", "Output format: table, json or bench")
	f.ReportFile = fs.String("report", "", "Write the full JSON report to this file")
	f.NoColor = fs.Bool("no-color", false, "Disable colored table output")
	return f
}

// Options validates and normalizes the run-shaping flags. Unlike the
// YAML layer, flags can tell an explicit 0 from an unset value, so a
// non-positive trial count is rejected here instead of defaulted.
func (f *Flags) Options() (bench.Options, error) {
	if *f.Trials <= 0 {
		return bench.Options{}, fmt.Errorf("trials must be a positive integer, got %d", *f.Trials)
	}
	warmup := *f.Warmup
	if warmup < 0 {
		warmup = 0
	}
	return bench.Options{Trials: *f.Trials, Warmup: warmup, Seed: *f.Seed}, nil
}

// LoadConfig determines the config source (file or flags) and returns
// a Config object. Positional args after the flags are treated as a
// single command to benchmark.
func (f *Flags) LoadConfig(args []string) (*config.Config, error) {
	if *f.ConfigFile != "" {
		cfg, err := config.Load(*f.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		return cfg, nil
	}

	opts, err := f.Options()
	if err != nil {
		return nil, err
	}

	if len(args) == 0 {
		return nil, fmt.Errorf("nothing to benchmark: pass -config or a command after the flags")
	}

	label := *f.Label
	if label == "" {
		label = filepath.Base(args[0])
	}

	cfg := &config.Config{
		Trials: opts.Trials,
		// Keep the raw value: -1 is the config's spelling of
		// "disabled" and must survive agent requests, where 0 means
		// unset.
		Warmup: *f.Warmup,
		Seed:   opts.Seed,
		Unit:   *f.Unit,
		Format: *f.Format,
		Report: *f.ReportFile,
		Commands: []config.Command{
			{Label: label, Argv: args},
		},
	}
	cfg.SetDefaults()
	return cfg, nil
}

func (f *Flags) MaybeWriteConfig(cfg *config.Config) {
	if *f.WriteConfig == "" {
		return
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Printf("Warning: Failed to marshal config for writing: %v\n", err)
		return
	}
	if err := os.WriteFile(*f.WriteConfig, data, 0644); err != nil {
		fmt.Printf("Warning: Failed to write config file: %v\n", err)
		return
	}
	fmt.Printf("Configuration written to %s\n", *f.WriteConfig)
}

// runRunCmd handles "mbench [run] [flags] [-- command args...]"
func runRunCmd(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	f := SetupFlags(fs)
	fs.Parse(args)

	cfg, err := f.LoadConfig(fs.Args())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	f.MaybeWriteConfig(cfg)

	rep, err := agent.Run(cfg)
	if err != nil {
		fmt.Printf("Benchmark failed: %v\n", err)
		os.Exit(1)
	}

	emit(rep, cfg, *f.NoColor)
}

// runScalingCmd handles "mbench scaling [flags] -- command with {N}"
func runScalingCmd(args []string) {
	fs := flag.NewFlagSet("scaling", flag.ExitOnError)
	f := SetupFlags(fs)
	sizesFlag := fs.String("sizes", "", "Comma-separated input sizes, e.g. 1000,10000,100000")
	fs.Parse(args)

	argv := fs.Args()
	if len(argv) == 0 {
		fmt.Println("Error: scaling needs a command; use {N} where the input size goes")
		os.Exit(1)
	}
	sizes, err := parseSizes(*sizesFlag)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	label := *f.Label
	if label == "" {
		label = filepath.Base(argv[0])
	}

	opts, err := f.Options()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	steps, analysis, err := runScalingLogic(label, argv, sizes, opts)
	if err != nil {
		fmt.Printf("Scaling run failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n>>> Scaling Complete <<<\n")
	fmt.Printf("Knee at size %d (median %v)\n", analysis.Knee.Size, time.Duration(analysis.Knee.Y*float64(time.Second)))
	if analysis.Fit.InlierCount >= 2 {
		fmt.Printf("Dominant regime: %.3g s/element + %.3g s fixed (covers %.0f%% of sizes)\n",
			analysis.Fit.Slope, analysis.Fit.Intercept, analysis.Fit.Coverage*100)
	} else {
		fmt.Println("No dominant linear regime identified.")
	}

	if *f.ReportFile != "" {
		writeScalingReport(*f.ReportFile, steps)
	}
}

// runAgentCmd handles "mbench agent [flags]"
func runAgentCmd(args []string) {
	fs := flag.NewFlagSet("agent", flag.ExitOnError)
	port := fs.Int("port", 9000, "Port to listen on")
	fs.Parse(args)

	srv := agent.NewServer()
	if err := srv.ListenAndServe(*port); err != nil {
		fmt.Printf("Agent failed: %v\n", err)
		os.Exit(1)
	}
}

// runRemoteCmd handles "mbench remote [flags]"
func runRemoteCmd(args []string) {
	fs := flag.NewFlagSet("remote", flag.ExitOnError)
	f := SetupFlags(fs)
	nodesFlag := fs.String("nodes", "", "Comma-separated list of agent nodes (e.g. host1:9000)")
	fs.Parse(args)

	if *nodesFlag == "" {
		fmt.Println("Error: -nodes is required")
		os.Exit(1)
	}

	cfg, err := f.LoadConfig(fs.Args())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	f.MaybeWriteConfig(cfg)

	nodes := strings.Split(*nodesFlag, ",")
	fmt.Printf("Fanning out to %d agent nodes...\n", len(nodes))

	rep, err := cluster.New(nodes).Run(cfg)
	if err != nil {
		fmt.Printf("Remote run failed: %v\n", err)
		os.Exit(1)
	}

	emit(rep, cfg, *f.NoColor)
}

func emit(rep *report.Report, cfg *config.Config, noColor bool) {
	unit, err := report.ParseUnit(cfg.Unit)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	switch cfg.Format {
	case "table":
		rep.WriteTable(os.Stdout, unit, !noColor)
		fmt.Printf("elapsed %v (user %v, system %v)\n",
			time.Duration(rep.WallTime), time.Duration(rep.UserTime), time.Duration(rep.SysTime))
	case "json":
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			fmt.Printf("Failed to marshal report: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
		fmt.Println()
	case "bench":
		if err := rep.WriteGoBench(os.Stdout); err != nil {
			fmt.Printf("Failed to write benchmark output: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Printf("Unknown format %q. Use 'table', 'json' or 'bench'.\n", cfg.Format)
		os.Exit(1)
	}

	if cfg.Report != "" {
		if err := rep.WriteFile(cfg.Report); err != nil {
			fmt.Printf("Failed to write report: %v\n", err)
			return
		}
		fmt.Printf("Report written to %s\n", cfg.Report)
	}
}

func parseSizes(s string) ([]int, error) {
	if s == "" {
		return nil, fmt.Errorf("-sizes is required")
	}
	var sizes []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("bad size %q", part)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

func writeScalingReport(path string, steps interface{}) {
	data, err := json.MarshalIndent(steps, "", "  ")
	if err != nil {
		fmt.Printf("Failed to marshal report: %v\n", err)
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		fmt.Printf("Failed to write report: %v\n", err)
		return
	}
	fmt.Printf("Report written to %s\n", path)
}
