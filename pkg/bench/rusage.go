package bench

import (
	"time"

	"golang.org/x/sys/unix"
)

// CPUTime reports the cumulative user and system CPU time consumed by
// the calling process. Sampled before and after a run it gives the
// user/system/elapsed split for the whole benchmark.
func CPUTime() (user, system time.Duration, err error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0, 0, err
	}
	return time.Duration(ru.Utime.Nano()), time.Duration(ru.Stime.Nano()), nil
}
