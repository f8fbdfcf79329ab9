package scaling

import (
	"fmt"

	"github.com/runningwild/mbench/pkg/analyze"
	"github.com/runningwild/mbench/pkg/bench"
	"github.com/runningwild/mbench/pkg/stats"
)

// Workload produces a unit of work for a given input size.
type Workload struct {
	Label string
	Make  func(size int) func() error
}

// Measurer runs one unit for a fixed trial count and summarizes it.
// Tests substitute a synthetic measurement here.
type Measurer interface {
	Measure(u bench.Unit, opts bench.Options) (stats.Summary, error)
}

type harnessMeasurer struct{}

func (harnessMeasurer) Measure(u bench.Unit, opts bench.Options) (stats.Summary, error) {
	h := bench.New(opts)
	runs, err := h.Run([]bench.Unit{u})
	if err != nil {
		return stats.Summary{}, err
	}
	return runs[0].Summary(), nil
}

// Step is the measured summary at one input size.
type Step struct {
	Size    int
	Summary stats.Summary
}

// Analysis is what a scaling run concludes: where the curve bends and
// the dominant linear regime (slope = per-element cost in seconds).
type Analysis struct {
	Knee analyze.Point
	Fit  analyze.LinearResult
}

// Scaler measures a workload across input sizes, one full harness run
// per size, and fits the resulting time-vs-size curve.
type Scaler struct {
	m    Measurer
	opts bench.Options

	// Tolerance is the relative error allowed when grouping points
	// into the dominant linear regime.
	Tolerance float64
}

func New(opts bench.Options) *Scaler {
	return &Scaler{m: harnessMeasurer{}, opts: opts, Tolerance: 0.1}
}

func (s *Scaler) Run(w Workload, sizes []int) ([]Step, Analysis, error) {
	if w.Make == nil {
		return nil, Analysis{}, fmt.Errorf("workload %q has no Make function", w.Label)
	}
	if len(sizes) == 0 {
		return nil, Analysis{}, fmt.Errorf("no sizes to measure")
	}

	var steps []Step
	var points []analyze.Point

	for i, size := range sizes {
		u := bench.Unit{
			Label: fmt.Sprintf("%s/%d", w.Label, size),
			Fn:    w.Make(size),
		}
		sum, err := s.m.Measure(u, s.opts)
		if err != nil {
			return nil, Analysis{}, err
		}
		if !sum.Defined {
			return nil, Analysis{}, fmt.Errorf("every trial failed at size %d", size)
		}

		// Progress output happens between harness runs, never inside one.
		fmt.Printf("[%d/%d] size=%d -> median: %v\n", i+1, len(sizes), size, sum.Median)

		steps = append(steps, Step{Size: size, Summary: sum})
		points = append(points, analyze.Point{
			X:    float64(size),
			Y:    sum.Median.Seconds(),
			Size: size,
		})
	}

	return steps, Analysis{
		Knee: analyze.FindKnee(points),
		Fit:  analyze.FindDominantSlope(points, s.Tolerance),
	}, nil
}
