package earley

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Error is implemented by every error this package returns from Parse or from a ParseForest
// method. It carries positional information the way the teacher's own Error interface does,
// generalised from a single lexer.Position to a token-index span since this package has no lexer
// of its own.
type Error interface {
	error
	// Message is the unadorned description, without position information.
	Message() string
	// Span returns the [start, end) token-index range the error concerns.
	Span() (start, end int)
}

// ParseError is embedded by every concrete error type below. On its own it is returned only by
// Errorf (and so by NewTerminal/NewNonTerminal for invalid flag combinations).
type ParseError struct {
	message    string
	start, end int
}

func (p *ParseError) Message() string        { return p.message }
func (p *ParseError) Span() (int, int)        { return p.start, p.end }
func (p *ParseError) Error() string           { return p.message }

// Errorf builds a plain *ParseError, used internally for errors that don't warrant one of the
// three concrete subtypes below (e.g. grammar construction errors raised by NewTerminal).
func Errorf(format string, args ...interface{}) error {
	return &ParseError{message: fmt.Sprintf(format, args...)}
}

// NoParseError is returned by Parse when no completed start-symbol item spans the whole input.
type NoParseError struct {
	ParseError
	// Encountered is the token that caused the failure, or nil at end of input.
	Encountered interface{}
	// ExpectedTerminals is every Terminal that was tried, and failed to match, at the failing
	// position.
	ExpectedTerminals []*Terminal
	// Expected is a human-facing summary of ExpectedTerminals, augmented with the heads of
	// non-terminals predicted at the failing position, with anonymous heads and symbols subsumed
	// by a broader head removed.
	Expected []Symbol
}

func newNoParseError(index int, encountered interface{}, terminals []*Terminal, expected []Symbol) *NoParseError {
	encounteredStr := "end of input"
	if encountered != nil {
		encounteredStr = fmt.Sprintf("%v", encountered)
	}
	parts := make([]string, len(expected))
	for i, s := range expected {
		parts[i] = s.String()
	}
	msg := fmt.Sprintf("unexpected %s at token %d, expected %s", encounteredStr, index, strings.Join(parts, ", "))
	return &NoParseError{
		ParseError:         ParseError{message: msg, start: index, end: index},
		Encountered:        encountered,
		ExpectedTerminals:  terminals,
		Expected:           expected,
	}
}

// AmbiguousParseError is raised by ParseForest.Single when pruning still leaves some OrNode with
// more than one surviving alternative.
type AmbiguousParseError struct {
	ParseError
	// Alternatives holds up to two fully built values of the whole forest's root, and the error's
	// span is the root's span. The position of the leftmost ambiguity is not located.
	Alternatives []interface{}
}

func newAmbiguousParseError(start, end int, alternatives []interface{}) *AmbiguousParseError {
	return &AmbiguousParseError{
		ParseError:   ParseError{message: fmt.Sprintf("ambiguous parse between token %d and %d", start, end), start: start, end: end},
		Alternatives: alternatives,
	}
}

// InfiniteParseError is raised when a zero-width cycle survives pruning, meaning the grammar
// admits infinitely many distinct parse trees for the input.
type InfiniteParseError struct {
	ParseError
}

func newInfiniteParseError(start, end int) *InfiniteParseError {
	return &InfiniteParseError{
		ParseError: ParseError{message: fmt.Sprintf("infinite parse between token %d and %d", start, end), start: start, end: end},
	}
}

// wrapInternal converts a panic recovered inside Parse (recognition or pruning) into an error,
// preserving a stack trace in its Cause() chain without changing the type a caller sees for the three
// documented failure modes above. This generalises the teacher's recoverToError/decorate
// panic-to-error conversion with github.com/pkg/errors.
func wrapInternal(recovered interface{}) error {
	switch e := recovered.(type) {
	case Error:
		return e
	case error:
		return errors.WithStack(e)
	default:
		return errors.Errorf("%v", e)
	}
}
