package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

var (
	verboseMode bool
	diag        *log.Logger
)

func init() {
	// Diagnostics go to stderr so stdout carries only the report.
	diag = newLogger(os.Stderr)
}

func newLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           log.InfoLevel,
	})
}

// SetVerbose enables or disables debug logging.
func SetVerbose(verbose bool) {
	verboseMode = verbose
	if verbose {
		diag.SetLevel(log.DebugLevel)
	} else {
		diag.SetLevel(log.InfoLevel)
	}
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	return verboseMode
}

// SetOutput redirects the diagnostic stream. Tests use it to capture warnings.
func SetOutput(w io.Writer) {
	diag.SetOutput(w)
}

// Debugf logs a formatted debug message if verbose mode is enabled.
func Debugf(format string, v ...interface{}) {
	diag.Debugf(format, v...)
}

// Infof logs a formatted informational message.
func Infof(format string, v ...interface{}) {
	diag.Infof(format, v...)
}

// Warnf logs a formatted warning. Used for recoverable failures.
func Warnf(format string, v ...interface{}) {
	diag.Warnf(format, v...)
}

// Errorf logs a formatted error message.
func Errorf(format string, v ...interface{}) {
	diag.Errorf(format, v...)
}
