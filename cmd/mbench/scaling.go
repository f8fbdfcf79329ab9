package main

import (
	"strconv"
	"strings"

	"github.com/runningwild/mbench/pkg/bench"
	"github.com/runningwild/mbench/pkg/exec"
	"github.com/runningwild/mbench/pkg/scaling"
)

// sizeToken is replaced by the input size in every argv element.
const sizeToken = "{N}"

// runScalingLogic builds a size-parameterized workload from an argv
// template and hands it to the scaler.
func runScalingLogic(label string, argv []string, sizes []int, opts bench.Options) ([]scaling.Step, scaling.Analysis, error) {
	w := scaling.Workload{
		Label: label,
		Make: func(size int) func() error {
			subst := make([]string, len(argv))
			n := strconv.Itoa(size)
			for i, a := range argv {
				subst[i] = strings.ReplaceAll(a, sizeToken, n)
			}
			cmd, err := exec.NewCommand(label, subst)
			if err != nil {
				return func() error { return err }
			}
			return cmd.Unit().Fn
		},
	}
	return scaling.New(opts).Run(w, sizes)
}
