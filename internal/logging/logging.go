// Package logging builds the logrus loggers used across the cable.
package logging

import (
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// DebugEnv enables debug logging when it parses as true.
const DebugEnv = "VCABLE_DEBUG"

var debug bool

func init() {
	var err error
	debug, err = strconv.ParseBool(os.Getenv(DebugEnv))
	if err != nil {
		debug = false
	}
}

// GetLogger returns a new logger instance writing to stderr.
func GetLogger() *logrus.Logger {
	l := logrus.New()
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

// SetLevel parses name (e.g. "info", "debug") and applies it to l.
func SetLevel(l *logrus.Logger, name string) error {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return err
	}
	l.SetLevel(level)
	return nil
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
