package bench

import (
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/runningwild/mbench/pkg/stats"
)

// Unit is a named zero-argument callable whose execution time is measured.
// A non-nil error return marks the trial as failed.
type Unit struct {
	Label string
	Fn    func() error
}

// Options controls a harness run.
type Options struct {
	Trials int   // timed executions per unit; must be > 0
	Warmup int   // untimed executions per unit before scheduling
	Seed   int64 // shuffle seed for the schedule; 0 means time-seeded
}

// Trial is one timed execution of a unit.
type Trial struct {
	Start    time.Time
	End      time.Time
	Duration time.Duration
	Err      error
}

func (t Trial) Failed() bool { return t.Err != nil }

// Run holds all trials for one unit, in execution order.
type Run struct {
	Label     string
	Requested int
	Trials    []Trial

	// Hist accumulates successful trial durations in nanoseconds.
	// It lets consumers read tail quantiles without re-sorting.
	Hist *hdrhistogram.Histogram
}

// Neval returns the number of successful trials.
func (r *Run) Neval() int {
	n := 0
	for _, t := range r.Trials {
		if !t.Failed() {
			n++
		}
	}
	return n
}

// Failures returns the number of failed trials.
func (r *Run) Failures() int {
	return len(r.Trials) - r.Neval()
}

// Durations returns the successful trial durations in execution order.
func (r *Run) Durations() []time.Duration {
	out := make([]time.Duration, 0, len(r.Trials))
	for _, t := range r.Trials {
		if !t.Failed() {
			out = append(out, t.Duration)
		}
	}
	return out
}

// Summary derives the five-number summary for this run. It is a pure
// function of the recorded durations; an all-failed run yields an
// undefined summary rather than fabricated statistics.
func (r *Run) Summary() stats.Summary {
	s := stats.Summarize(r.Durations())
	s.Failures = r.Failures()
	return s
}

// Usage reports resource consumption for a whole harness run.
type Usage struct {
	Wall   time.Duration
	User   time.Duration
	System time.Duration
}
