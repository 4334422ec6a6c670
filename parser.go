package earley

// ParseOption configures a single call to Parse, mirroring the teacher's functional-options
// pattern for configuring a Parser (options.go's Option func(*Parser) error).
type ParseOption func(*parseConfig)

type parseConfig struct {
	logger     Logger
	allowEmpty bool
}

// WithLogger observes chart construction and pruning for diagnostics. The default is a no-op
// logger; nothing about parsing behaves differently depending on whether one is supplied.
func WithLogger(l Logger) ParseOption {
	return func(c *parseConfig) { c.logger = l }
}

// WithAllowEmpty lets Parse succeed, returning a ParseForest with no trees, when start has zero
// rules or every rule of start fails to match zero tokens — instead of a NoParseError. This
// surfaces the reference implementation's fail_if_empty=False keyword, dropped by the distilled
// specification but present in original_source.
func WithAllowEmpty(allow bool) ParseOption {
	return func(c *parseConfig) { c.allowEmpty = allow }
}

// Parse runs the chart construction of §4.1 over tokens against grammar, starting from the head
// start, then prunes the resulting forest per the ambiguity preferences declared on each rule and
// symbol (§4.3) and checks it for infinite derivations (§4.4).
//
// tokens are opaque to this package; Terminal.Match decides what matches what. Parse returns a
// *NoParseError, *InfiniteParseError, or a *ParseForest — never both a non-nil forest and error.
func Parse(grammar Grammar, start string, tokens []interface{}, opts ...ParseOption) (forest *ParseForest, err error) {
	cfg := &parseConfig{logger: NopLogger{}}
	for _, opt := range opts {
		opt(cfg)
	}

	defer func() {
		if r := recover(); r != nil {
			err = wrapInternal(r)
			forest = nil
		}
	}()

	if len(grammar.RulesFor(start)) == 0 {
		if cfg.allowEmpty {
			return emptyForest(grammar, start), nil
		}
		return nil, newNoParseError(0, nil, nil, nil)
	}

	c, result := recognize(grammar, start, tokens, cfg.logger)
	if result.accept == nil {
		if len(tokens) == 0 && cfg.allowEmpty {
			return emptyForest(grammar, start), nil
		}
		return nil, newNoParseError(result.failAt, result.failTok, result.failEncounteredTerminals, result.failNonAnonExpected)
	}

	cfg.logger.Debugf("accepted: %d nodes interned across %d columns", countInterned(c), len(c.columns))

	pruned, infinite := prune(result.accept, cfg.logger)
	if infinite != nil {
		return nil, newInfiniteParseError(infinite.start, infinite.end)
	}

	return &ParseForest{root: singleChild(pruned), chart: c, grammar: grammar, start: start}, nil
}

// singleChild extracts the one real child of the synthetic gamma item's unique source edge: the
// gamma rule has exactly one RHS symbol (the real start non-terminal), so every one of its source
// edges is an extendChild edge whose child is the node callers actually care about.
func singleChild(accept *item) *item {
	for e := range accept.sources {
		return e.child
	}
	return accept
}

func countInterned(c *chart) int {
	n := 0
	for _, col := range c.columns {
		n += len(col.byKey)
	}
	return n
}

func emptyForest(grammar Grammar, start string) *ParseForest {
	return &ParseForest{root: nil, grammar: grammar, start: start}
}
