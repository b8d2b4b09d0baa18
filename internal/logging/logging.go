// Package logging owns the process-wide structured logger.
package logging

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Logger is the shared logger. It starts at warn level so library
// noise stays out of command output until Init selects a verbosity.
var Logger = log.NewWithOptions(os.Stderr, log.Options{
	Level: log.WarnLevel,
})

// Init configures the logger for the selected verbosity. Logs go to
// stderr so piped command output stays clean.
func Init(verbose bool) {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	Logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Level:           level,
	})
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

// Info logs an info message.
func Info(msg string, keyvals ...interface{}) {
	Logger.Info(msg, keyvals...)
}

// Warn logs a warning message.
func Warn(msg string, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}

// Error logs an error message.
func Error(msg string, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
}

// WithPrefix returns a scoped logger sharing the process configuration.
func WithPrefix(prefix string) *log.Logger {
	return Logger.WithPrefix(prefix)
}
