package earley

import (
	"fmt"
	"io"
)

// TraceWriter returns a Logger that writes every Debugf call to w, one line per call. This plays
// the role of the teacher's Trace(io.Writer) Option — tracing a parse to an io.Writer — adapted to
// this package's Logger seam instead of a dedicated trace node wrapping every grammar node.
func TraceWriter(w io.Writer) Logger {
	return &writerLogger{w: w}
}

type writerLogger struct{ w io.Writer }

func (t *writerLogger) Debugf(format string, args ...interface{}) {
	fmt.Fprintf(t.w, format+"\n", args...)
}
