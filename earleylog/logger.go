// Package earleylog provides logging implementations for earley.Logger, the ambient diagnostic
// seam earley.Parse observes chart construction and pruning through. Grounded in
// open-policy-agent/opa's log package: a thin leveled wrapper around logrus.
package earleylog

import "github.com/sirupsen/logrus"

// Logger satisfies earley.Logger structurally (earley does not import this package, to keep the
// logging backend out of the core's dependency graph; any type with a matching Debugf method
// works as a earley.ParseOption's WithLogger argument).
type Logger interface {
	Debugf(format string, args ...interface{})
}

type logrusLogger struct {
	entry *logrus.Entry
}

// NewLogrusLogger builds a Logger that writes to l at debug level, one Debugf call per line,
// following the teacher corpus's convention (open-policy-agent/opa's log.NewLogger) of wrapping
// logrus rather than hand-rolling level filtering and formatting.
func NewLogrusLogger(l *logrus.Logger) Logger {
	if l == nil {
		l = logrus.New()
	}
	return &logrusLogger{entry: logrus.NewEntry(l)}
}

func (l *logrusLogger) Debugf(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}

// WithField returns a Logger that annotates every subsequent line with key=value, useful for
// tagging diagnostics from one Parse call (e.g. a request ID) when a single process runs many.
// A Logger not built by NewLogrusLogger is returned unchanged, without the annotation.
func WithField(l Logger, key string, value interface{}) Logger {
	ll, ok := l.(*logrusLogger)
	if !ok {
		return l
	}
	return &logrusLogger{entry: ll.entry.WithField(key, value)}
}
