// Package log is the logrus logger shared by the service and the CLI.
package log

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// Logger wraps logrus with printf style helpers and color support.
type Logger struct {
	*logrus.Logger
	green  *color.Color
	red    *color.Color
	yellow *color.Color
	bold   *color.Color
}

// New creates a logger writing to stderr. Debug logging is enabled with
// DEBUG=true.
func New() *Logger {
	logger := &Logger{
		Logger: logrus.New(),
		green:  color.New(color.FgGreen),
		red:    color.New(color.FgRed),
		yellow: color.New(color.FgYellow),
		bold:   color.New(color.Bold),
	}

	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006/01/02 15:04:05",
		FullTimestamp:   true,
		DisableSorting:  true,
	})

	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logrus.DebugLevel)
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	return logger
}

// Discard returns a logger that drops everything, for tests.
func Discard() *Logger {
	logger := New()
	logger.SetOutput(io.Discard)
	return logger
}

// SetLevelName sets the level from its name ("debug", "info", ...).
func (l *Logger) SetLevelName(name string) error {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return err
	}
	l.SetLevel(level)
	return nil
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.Logger.Debug(fmt.Sprintf(format, args...))
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.Logger.Info(fmt.Sprintf(format, args...))
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.Logger.Warn(fmt.Sprintf(format, args...))
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.Logger.Error(fmt.Sprintf(format, args...))
}

// IsDebugEnabled returns whether debug logging is enabled
func (l *Logger) IsDebugEnabled() bool {
	return l.GetLevel() == logrus.DebugLevel
}

// Success formats a message for terminal output in green.
func (l *Logger) Success(format string, args ...interface{}) string {
	return l.green.Sprintf(format, args...)
}

// Failure formats a message for terminal output in red.
func (l *Logger) Failure(format string, args ...interface{}) string {
	return l.red.Sprintf(format, args...)
}

// Notice formats a message for terminal output in yellow.
func (l *Logger) Notice(format string, args ...interface{}) string {
	return l.yellow.Sprintf(format, args...)
}

// Heading formats a message for terminal output in bold.
func (l *Logger) Heading(format string, args ...interface{}) string {
	return l.bold.Sprintf(format, args...)
}
