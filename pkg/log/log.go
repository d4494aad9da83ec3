// Package log provides the level-filtered logging sink used across the
// emulator. The output of the sink is immaterial to emulation correctness,
// so components receive the Logger interface and never a concrete type.
package log

import (
	"github.com/sirupsen/logrus"
)

// Logger is the interface implemented by every logging sink the
// emulator components accept.
type Logger interface {
	Tracef(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatal(args ...interface{})
}

// New returns a Logger writing to stderr at the given level. Unknown
// level strings fall back to info.
func New(level string) Logger {
	l := logrus.New()
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	return l
}
