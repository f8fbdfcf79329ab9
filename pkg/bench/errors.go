package bench

import "fmt"

// ConfigError reports a configuration problem detected before any
// timing begins: a bad trial count, an empty or duplicated unit set, or
// reuse of a finished harness.
type ConfigError string

func (e ConfigError) Error() string { return string(e) }

func configErrorf(format string, args ...interface{}) ConfigError {
	return ConfigError(fmt.Sprintf(format, args...))
}
