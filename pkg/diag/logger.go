package diag

import (
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// NewLogger builds the structured logrus logger used for
// allocator-need tracing and degraded-inference warnings
// (SPEC_FULL.md Sec 0). Output format follows the same
// terminal-detection rule the CLI's diagnostic printer uses: a text
// formatter with color when stderr is a terminal, plain text otherwise,
// since a piped `pyzc emit` invocation (used by the test suite to
// snapshot Zig output) must never interleave ANSI escapes into stdout.
func NewLogger(verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		DisableColors: !ShouldColorize(os.Stderr),
		FullTimestamp: false,
	})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}

// ShouldColorize reports whether f is a terminal that can render ANSI
// color codes, gating every use of Color/Theme in the CLI's diagnostic
// printer.
func ShouldColorize(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
