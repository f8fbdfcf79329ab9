package report

import (
	"io"
	"strings"
	"unicode"

	"golang.org/x/perf/benchfmt"
)

// WriteGoBench emits the report in Go benchmark format, one line per
// unit with a defined summary, so the output feeds straight into
// benchstat and related tooling. The median is reported rather than
// the mean to match the table's ordering statistic.
func (rep *Report) WriteGoBench(w io.Writer) error {
	bw := benchfmt.NewWriter(w)
	for _, res := range rep.Results {
		if !res.Summary.Defined {
			continue
		}
		r := &benchfmt.Result{
			Name:  benchfmt.Name("Benchmark" + benchName(res.Label)),
			Iters: res.Summary.Neval,
			Values: []benchfmt.Value{
				{Value: res.Summary.Median.Seconds(), Unit: "sec/op"},
			},
		}
		if err := bw.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// benchName maps an arbitrary label onto a valid benchmark name:
// letters, digits and a few separators pass through, everything else
// (whitespace, control characters) becomes an underscore.
func benchName(label string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		switch r {
		case '-', '_', '/', '.', ':', '=':
			return r
		}
		return '_'
	}, label)
}
