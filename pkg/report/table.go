package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
)

// TimeUnit selects how durations are scaled in the table.
type TimeUnit string

const (
	UnitAuto TimeUnit = "auto"
	UnitNs   TimeUnit = "ns"
	UnitUs   TimeUnit = "us"
	UnitMs   TimeUnit = "ms"
	UnitS    TimeUnit = "s"
)

// Color helpers shared by the table renderer.
var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
)

// ParseUnit validates a unit string from config or flags.
func ParseUnit(s string) (TimeUnit, error) {
	switch TimeUnit(s) {
	case "", UnitAuto:
		return UnitAuto, nil
	case UnitNs, UnitUs, UnitMs, UnitS:
		return TimeUnit(s), nil
	}
	return "", fmt.Errorf("unknown time unit %q (want ns, us, ms or s)", s)
}

func (u TimeUnit) divisor() float64 {
	switch u {
	case UnitNs:
		return 1
	case UnitUs:
		return float64(time.Microsecond)
	case UnitMs:
		return float64(time.Millisecond)
	default:
		return float64(time.Second)
	}
}

// pickUnit chooses a display unit from the smallest defined minimum, so
// the fastest row stays readable.
func pickUnit(results []Result) TimeUnit {
	min := time.Duration(-1)
	for _, r := range results {
		if r.Summary.Defined && (min < 0 || r.Summary.Min < min) {
			min = r.Summary.Min
		}
	}
	switch {
	case min < 0 || min < time.Microsecond:
		return UnitNs
	case min < time.Millisecond:
		return UnitUs
	case min < time.Second:
		return UnitMs
	}
	return UnitS
}

// WriteTable renders the comparison table sorted by ascending median.
// Rows with no successful trials sort last and print dashes instead of
// fabricated statistics.
func (rep *Report) WriteTable(w io.Writer, unit TimeUnit, colorize bool) {
	results := make([]Result, len(rep.Results))
	copy(results, rep.Results)
	sort.SliceStable(results, func(i, j int) bool {
		si, sj := results[i].Summary, results[j].Summary
		if si.Defined != sj.Defined {
			return si.Defined
		}
		return si.Median < sj.Median
	})

	if unit == UnitAuto {
		unit = pickUnit(results)
	}
	div := unit.divisor()

	anyFailed := false
	for _, r := range results {
		if r.Summary.Failures > 0 {
			anyFailed = true
		}
	}

	header := []string{"label", "min", "lq", "mean", "median", "uq", "max", "neval"}
	if anyFailed {
		header = append(header, "fail")
	}
	rows := [][]string{header}
	for _, r := range results {
		s := r.Summary
		row := []string{r.Label}
		if s.Defined {
			for _, d := range []time.Duration{s.Min, s.LQ, s.Mean, s.Median, s.UQ, s.Max} {
				row = append(row, formatScaled(d, div))
			}
		} else {
			for i := 0; i < 6; i++ {
				row = append(row, "-")
			}
		}
		row = append(row, fmt.Sprintf("%d", s.Neval))
		if anyFailed {
			row = append(row, fmt.Sprintf("%d", s.Failures))
		}
		rows = append(rows, row)
	}

	widths := make([]int, len(header))
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	fmt.Fprintf(w, "Unit: %s\n", unit)
	for ri, row := range rows {
		var sb strings.Builder
		for i, cell := range row {
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%-*s", widths[i], cell))
			} else {
				sb.WriteString(fmt.Sprintf("  %*s", widths[i], cell))
			}
		}
		line := sb.String()
		if colorize && ri > 0 {
			res := results[ri-1]
			if res.Summary.Failures > 0 {
				line = red(line)
			} else if ri == 1 && res.Summary.Defined {
				line = green(line)
			}
		}
		fmt.Fprintln(w, line)
	}
}

func formatScaled(d time.Duration, div float64) string {
	v := float64(d) / div
	switch {
	case div == 1:
		return fmt.Sprintf("%.0f", v)
	case v >= 100:
		return fmt.Sprintf("%.1f", v)
	}
	return fmt.Sprintf("%.3f", v)
}
