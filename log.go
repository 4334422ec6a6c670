package earley

// Logger is the ambient diagnostic seam recognize() reports each completed item through, and the
// pruner the end of each pruning layer; predictions and scans are not logged. It is deliberately small — a single leveled method — so that
// earley/earleylog's logrus-backed implementation, or any other logger a caller already has, can
// satisfy it without an import back into this package.
type Logger interface {
	Debugf(format string, args ...interface{})
}

// NopLogger discards everything. It is the default when no WithLogger option is given.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...interface{}) {}
