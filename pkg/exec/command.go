package exec

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/runningwild/mbench/pkg/bench"
)

// Command wraps an external program as a benchmark unit. Each trial
// runs the argv once to completion with stdout discarded. Beyond the
// wall-clock trial durations the harness records, the command keeps
// its own tally of the children's user and kernel CPU time.
type Command struct {
	Label string
	Argv  []string

	userTime   time.Duration
	kernelTime time.Duration
	realTime   time.Duration
	runs       int
}

func NewCommand(label string, argv []string) (*Command, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("command %q has empty argv", label)
	}
	if label == "" {
		label = filepath.Base(argv[0])
	}
	return &Command{Label: label, Argv: argv}, nil
}

// Unit adapts the command for the harness.
func (c *Command) Unit() bench.Unit {
	return bench.Unit{Label: c.Label, Fn: c.run}
}

func (c *Command) run() error {
	cmd := exec.Command(c.Argv[0], c.Argv[1:]...)
	var stderr bytes.Buffer
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	c.realTime += time.Since(start)
	if ps := cmd.ProcessState; ps != nil {
		c.userTime += ps.UserTime()
		c.kernelTime += ps.SystemTime()
	}
	c.runs++

	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%v: %s", err, firstLine(msg))
		}
		return err
	}
	return nil
}

// Totals accumulated across all runs, including warmup executions.

func (c *Command) UserTime() time.Duration   { return c.userTime }
func (c *Command) KernelTime() time.Duration { return c.kernelTime }
func (c *Command) RealTime() time.Duration   { return c.realTime }
func (c *Command) Runs() int                 { return c.runs }

func (c *Command) Reset() {
	c.userTime = 0
	c.kernelTime = 0
	c.realTime = 0
	c.runs = 0
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
