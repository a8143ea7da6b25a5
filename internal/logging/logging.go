// Package logging configures the process-wide zerolog logger, replacing
// the teacher's fmt.Printf progress spinner (setupSignalHandler's status
// line in cmd/tube-designer/algorithm.go) with structured, leveled log
// output suitable for both an interactive terminal and a redirected file.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds a zerolog.Logger writing to w. When pretty is true (an
// interactive terminal), output goes through zerolog.ConsoleWriter for
// human-readable coloring; otherwise it emits newline-delimited JSON
// suitable for piping to a file or log collector.
func New(w io.Writer, level zerolog.Level, pretty bool) zerolog.Logger {
	var out io.Writer = w
	if pretty {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// IsTerminal reports whether f looks like an interactive terminal, used to
// decide between pretty console output and plain JSON.
func IsTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
