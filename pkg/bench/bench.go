package bench

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// DefaultTrials is the trial count used by the config layer when none
// is requested.
const DefaultTrials = 100

// DefaultWarmup is the number of untimed executions per unit before the
// schedule starts. Warm-up absorbs one-time costs (lazy init, cold
// caches) that would otherwise skew the first few trials.
const DefaultWarmup = 2

// histMax is the largest duration the per-run histogram tracks, in
// nanoseconds. Slower trials are clamped to this bucket; the exact
// value still lands in the trial record.
const histMax = int64(10 * time.Minute)

type runState int

const (
	stateIdle runState = iota
	stateRunning
	stateCompleted
)

// Harness executes a set of units a fixed number of times each and
// records per-trial durations. Trials of different units are
// interleaved in random order across the whole run so that slow drift
// in external conditions (thermal throttling, cache warm-up) spreads
// evenly over all units instead of biasing whichever ran last.
//
// A Harness runs exactly once: Idle -> Running -> Completed.
type Harness struct {
	opts  Options
	state runState
	usage Usage
}

func New(opts Options) *Harness {
	return &Harness{opts: opts}
}

// Run executes the full schedule and returns one Run per unit, in the
// order the units were given. Configuration errors abort before any
// unit is invoked. A failing trial does not abort the run: the failure
// is recorded against that trial and the schedule continues.
func (h *Harness) Run(units []Unit) ([]*Run, error) {
	if err := h.validate(units); err != nil {
		return nil, err
	}
	h.state = stateRunning

	n := h.opts.Trials
	runs := make([]*Run, len(units))
	for i, u := range units {
		runs[i] = &Run{
			Label:     u.Label,
			Requested: n,
			Trials:    make([]Trial, 0, n),
			Hist:      hdrhistogram.New(1, histMax, 3),
		}
	}

	for i := range units {
		for w := 0; w < h.opts.Warmup; w++ {
			invoke(units[i].Fn) // result discarded
		}
	}

	schedule := h.schedule(len(units))

	wallStart := time.Now()
	cpuUser0, cpuSys0, _ := CPUTime()

	for _, ui := range schedule {
		t := runTrial(units[ui].Fn)
		r := runs[ui]
		r.Trials = append(r.Trials, t)
		if t.Err == nil {
			v := int64(t.Duration)
			if v > histMax {
				v = histMax
			}
			r.Hist.RecordValue(v)
		}
	}

	cpuUser1, cpuSys1, _ := CPUTime()
	h.usage = Usage{
		Wall:   time.Since(wallStart),
		User:   cpuUser1 - cpuUser0,
		System: cpuSys1 - cpuSys0,
	}
	h.state = stateCompleted
	return runs, nil
}

// Usage reports wall and CPU time consumed by the completed run.
func (h *Harness) Usage() Usage {
	return h.usage
}

func (h *Harness) validate(units []Unit) error {
	if h.state != stateIdle {
		return configErrorf("harness has already run")
	}
	if h.opts.Trials <= 0 {
		return configErrorf("trials must be a positive integer, got %d", h.opts.Trials)
	}
	if h.opts.Warmup < 0 {
		return configErrorf("warmup must be non-negative, got %d", h.opts.Warmup)
	}
	if len(units) == 0 {
		return configErrorf("no units to benchmark")
	}
	seen := make(map[string]bool, len(units))
	for _, u := range units {
		if u.Label == "" {
			return configErrorf("unit has empty label")
		}
		if u.Fn == nil {
			return configErrorf("unit %q has nil Fn", u.Label)
		}
		if seen[u.Label] {
			return configErrorf("duplicate unit label %q", u.Label)
		}
		seen[u.Label] = true
	}
	return nil
}

// schedule returns a random permutation of (unit x Trials) indices.
// Every unit index appears exactly Trials times.
func (h *Harness) schedule(k int) []int {
	seed := h.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(seed))

	idx := make([]int, 0, k*h.opts.Trials)
	for ui := 0; ui < k; ui++ {
		for t := 0; t < h.opts.Trials; t++ {
			idx = append(idx, ui)
		}
	}
	rnd.Shuffle(len(idx), func(i, j int) {
		idx[i], idx[j] = idx[j], idx[i]
	})
	return idx
}

// runTrial times a single invocation. The end timestamp is taken after
// the unit returns or panics, so failed trials still carry the
// duration up to the failure point. Nothing here allocates or logs
// between the two timestamps beyond the unit itself.
func runTrial(fn func() error) Trial {
	start := time.Now()
	err := invoke(fn)
	end := time.Now()
	return Trial{Start: start, End: end, Duration: end.Sub(start), Err: err}
}

// invoke runs fn, converting a panic into an error so one bad unit
// cannot take down the whole run.
func invoke(fn func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("unit panicked: %v", p)
		}
	}()
	return fn()
}
