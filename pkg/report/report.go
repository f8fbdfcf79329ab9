package report

import (
	"encoding/json"
	"os"
	"sort"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/google/uuid"

	"github.com/runningwild/mbench/pkg/bench"
	"github.com/runningwild/mbench/pkg/stats"
)

// TrialRecord is one raw measurement, kept so external tooling can
// plot full distributions rather than just the summary.
type TrialRecord struct {
	DurationNs int64  `json:"duration_ns"`
	Failed     bool   `json:"failed,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Result is the reportable outcome for one unit.
type Result struct {
	Label     string                 `json:"label"`
	Summary   stats.Summary          `json:"summary"`
	Trials    []TrialRecord          `json:"trials"`
	Histogram *hdrhistogram.Snapshot `json:"histogram,omitempty"`
}

// Report is the full outcome of a benchmark run.
type Report struct {
	RunID     string    `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`
	Trials    int       `json:"trials"`
	WallTime  int64     `json:"wall_time_ns"`
	UserTime  int64     `json:"user_time_ns"`
	SysTime   int64     `json:"sys_time_ns"`
	Results   []Result  `json:"results"`
}

// New assembles a Report from harness output. Results keep the order
// the units were given; table rendering re-sorts by median.
func New(runs []*bench.Run, usage bench.Usage) *Report {
	rep := &Report{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		WallTime:  int64(usage.Wall),
		UserTime:  int64(usage.User),
		SysTime:   int64(usage.System),
	}
	for _, r := range runs {
		if rep.Trials == 0 {
			rep.Trials = r.Requested
		}
		res := Result{
			Label:   r.Label,
			Summary: r.Summary(),
			Trials:  make([]TrialRecord, 0, len(r.Trials)),
		}
		for _, t := range r.Trials {
			tr := TrialRecord{DurationNs: int64(t.Duration)}
			if t.Failed() {
				tr.Failed = true
				tr.Error = t.Err.Error()
			}
			res.Trials = append(res.Trials, tr)
		}
		if r.Hist != nil && r.Hist.TotalCount() > 0 {
			res.Histogram = r.Hist.Export()
		}
		rep.Results = append(rep.Results, res)
	}
	return rep
}

// Merge combines reports from several sources into one, prefixing each
// label with its source name.
func Merge(sources map[string]*Report) *Report {
	merged := &Report{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		rep := sources[name]
		if merged.Trials == 0 {
			merged.Trials = rep.Trials
		}
		// Sources ran in parallel, so wall time is the slowest of
		// them; CPU time was genuinely spent everywhere and sums.
		if rep.WallTime > merged.WallTime {
			merged.WallTime = rep.WallTime
		}
		merged.UserTime += rep.UserTime
		merged.SysTime += rep.SysTime
		for _, res := range rep.Results {
			res.Label = name + "/" + res.Label
			merged.Results = append(merged.Results, res)
		}
	}
	return merged
}

// WriteFile writes the report as indented JSON.
func (rep *Report) WriteFile(path string) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
