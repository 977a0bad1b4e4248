package log

import (
	"fmt"
	"io"
	"time"
)

// Logger writes verbose diagnostic messages when Enabled is true.
// Output goes to the configured writer (typically stderr). A nil Logger
// discards everything, so callers can pass one through unconditionally.
type Logger struct {
	Enabled bool
	W       io.Writer
}

// Printf writes a formatted message to W when Enabled is true.
// It is a no-op on a nil or disabled logger.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil || !l.Enabled {
		return
	}
	_, _ = fmt.Fprintf(l.W, format+"\n", args...)
}

// Step logs the start of a named pipeline stage and returns a function
// that logs its elapsed time. Use it as:
//
//	defer l.Step("predict")()
func (l *Logger) Step(name string) func() {
	if l == nil || !l.Enabled {
		return func() {}
	}
	start := time.Now()
	l.Printf("%s...", name)
	return func() {
		l.Printf("%s done in %s", name, time.Since(start).Round(time.Millisecond))
	}
}
