package stats

import (
	"time"

	"github.com/aclements/go-moremath/stats"
)

// Summary is the five-number distributional summary of a duration
// sequence, plus the count of observations behind it.
type Summary struct {
	Min    time.Duration `json:"min"`
	LQ     time.Duration `json:"lq"`
	Mean   time.Duration `json:"mean"`
	Median time.Duration `json:"median"`
	UQ     time.Duration `json:"uq"`
	Max    time.Duration `json:"max"`

	Neval    int `json:"neval"`
	Failures int `json:"failures"`

	// Defined is false when there were no observations. The other
	// statistics are zero and must not be interpreted.
	Defined bool `json:"defined"`
}

// Summarize computes the summary of a duration sequence. It does not
// modify its input and always returns the same result for the same
// sequence.
func Summarize(durs []time.Duration) Summary {
	if len(durs) == 0 {
		return Summary{}
	}

	xs := make([]float64, len(durs))
	for i, d := range durs {
		xs[i] = float64(d)
	}
	samp := stats.Sample{Xs: xs}
	// Speed up order statistics.
	samp.Sort()

	return Summary{
		Min:     time.Duration(samp.Quantile(0)),
		LQ:      time.Duration(samp.Quantile(0.25)),
		Mean:    time.Duration(samp.Mean()),
		Median:  time.Duration(samp.Quantile(0.5)),
		UQ:      time.Duration(samp.Quantile(0.75)),
		Max:     time.Duration(samp.Quantile(1)),
		Neval:   len(durs),
		Defined: true,
	}
}
