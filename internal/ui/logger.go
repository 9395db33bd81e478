package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Logger provides color-coded, one-line diagnostics on stderr.
// No stack traces, no state dumps: one line per event naming the
// stage and the resource involved.
type Logger struct {
	Verbose bool
	Quiet   bool

	info    *color.Color
	success *color.Color
	warning *color.Color
	errc    *color.Color
	debug   *color.Color
}

// NewLogger creates a new logger
func NewLogger(verbose, quiet, noColor bool) *Logger {
	if noColor {
		color.NoColor = true
	}
	return &Logger{
		Verbose: verbose,
		Quiet:   quiet,
		info:    color.New(color.FgBlue),
		success: color.New(color.FgGreen),
		warning: color.New(color.FgYellow),
		errc:    color.New(color.FgRed),
		debug:   color.New(color.FgCyan),
	}
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	if l.Quiet {
		return
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", l.info.Sprint("[INFO]"), fmt.Sprintf(format, args...))
}

// Success logs a success message
func (l *Logger) Success(format string, args ...interface{}) {
	if l.Quiet {
		return
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", l.success.Sprint("[SUCCESS]"), fmt.Sprintf(format, args...))
}

// Warning logs a warning message
func (l *Logger) Warning(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s %s\n", l.warning.Sprint("[WARNING]"), fmt.Sprintf(format, args...))
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s %s\n", l.errc.Sprint("[ERROR]"), fmt.Sprintf(format, args...))
}

// Debug logs a debug message (only if verbose is enabled)
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.Verbose {
		return
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", l.debug.Sprint("[DEBUG]"), fmt.Sprintf(format, args...))
}
