// Package log provides the logging interface used throughout the
// emulator core. The default implementation is backed by logrus.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the subset of logrus.FieldLogger the emulator relies on.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

var _ Logger = (*logrus.Logger)(nil)

// New returns a Logger writing to stderr at info level.
func New() Logger {
	return NewWithLevel(os.Stderr, logrus.InfoLevel)
}

// NewWithLevel returns a Logger writing to w at the given level.
func NewWithLevel(w io.Writer, level logrus.Level) Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	return l
}

// ParseLevel converts a level name ("debug", "info", ...) into a
// logrus.Level.
func ParseLevel(name string) (logrus.Level, error) {
	return logrus.ParseLevel(name)
}
