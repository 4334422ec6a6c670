package earley

import (
	"fmt"
	"reflect"
)

// quantKind describes how many times a symbol may match at a given RHS position.
type quantKind int

const (
	quantOne quantKind = iota
	quantOptional
	quantStar
	quantPlus
)

func (q quantKind) minOccurs() int {
	if q == quantOne || q == quantPlus {
		return 1
	}
	return 0
}

func (q quantKind) multiple() bool {
	return q == quantStar || q == quantPlus
}

// flags carries the modifier bits shared by Terminal and NonTerminal.
//
// greedy/lazy only make sense on a quantified (optional/star/plus) symbol, and are mutually
// exclusive with each other; prefer_early/prefer_late are mutually exclusive with each other.
// NewTerminal and NewNonTerminal enforce these invariants at construction time.
type flags struct {
	quant       quantKind
	greedy      bool
	lazy        bool
	preferEarly bool
	preferLate  bool
}

func (f flags) specifier() string {
	s := ""
	switch {
	case f.quant == quantStar:
		s = "*"
	case f.quant == quantPlus:
		s = "+"
	case f.quant == quantOptional:
		s = "?"
	}
	if f.lazy {
		s += "?"
	} else if f.greedy {
		s += "!"
	}
	return s
}

// Symbol is an element of a Rule's right-hand side: either a Terminal or a NonTerminal.
//
// Symbol values are immutable once constructed by NewTerminal/NewNonTerminal.
type Symbol interface {
	fmt.Stringer

	isTerminal() bool
	symbolFlags() flags
}

// Terminal matches a single token of the input. Match delegates the decision of whether a token
// is matched to a client-supplied capability, so the parser never needs to know what a token
// actually is.
type Terminal struct {
	flags
	// Match reports whether token is accepted by this Terminal.
	Match func(token interface{}) bool
	// Name is used only for error messages (expected_terminals/expected) and tracing; it has no
	// effect on matching.
	Name string
}

// SymbolOption configures a Terminal or NonTerminal. Options are applied in NewTerminal and
// NewNonTerminal, and the invariants of §3 of the specification are checked once all options have
// been applied.
type SymbolOption func(*flags)

// Optional marks a symbol as matching zero or one times.
func Optional() SymbolOption { return func(f *flags) { f.quant = quantOptional } }

// Star marks a symbol as matching zero or more times.
func Star() SymbolOption { return func(f *flags) { f.quant = quantStar } }

// Plus marks a symbol as matching one or more times.
func Plus() SymbolOption { return func(f *flags) { f.quant = quantPlus } }

// Greedy prefers alternatives with the largest match count, among a star/plus symbol's surviving
// alternatives. Mutually exclusive with Lazy. It is accepted on an optional symbol but has no
// effect there.
func Greedy() SymbolOption { return func(f *flags) { f.greedy = true } }

// Lazy prefers alternatives with the smallest match count, among a star/plus symbol's surviving
// alternatives. Mutually exclusive with Greedy. It is accepted on an optional symbol but has no
// effect there.
func Lazy() SymbolOption { return func(f *flags) { f.lazy = true } }

// PreferEarly prefers, at this non-terminal call site, whichever Rule of the referenced head was
// added to the RuleSet first. Mutually exclusive with PreferLate. Only meaningful on NonTerminal.
func PreferEarly() SymbolOption { return func(f *flags) { f.preferEarly = true } }

// PreferLate prefers, at this non-terminal call site, whichever Rule of the referenced head was
// added to the RuleSet last. Mutually exclusive with PreferEarly. Only meaningful on NonTerminal.
func PreferLate() SymbolOption { return func(f *flags) { f.preferLate = true } }

// IsOptional, IsStar and IsPlus report a symbol's quantifier, for callers outside this package
// that need to introspect a grammar (e.g. ebnfgrammar.EBNF). Embedding flags in Terminal and
// NonTerminal promotes these onto both concrete types.
func (f flags) IsOptional() bool { return f.quant == quantOptional }
func (f flags) IsStar() bool     { return f.quant == quantStar }
func (f flags) IsPlus() bool     { return f.quant == quantPlus }

func buildFlags(opts []SymbolOption) (flags, error) {
	var f flags
	for _, opt := range opts {
		opt(&f)
	}
	if f.greedy && f.lazy {
		return f, Errorf("greedy and lazy are mutually exclusive")
	}
	if f.preferEarly && f.preferLate {
		return f, Errorf("prefer_early and prefer_late are mutually exclusive")
	}
	if (f.greedy || f.lazy) && f.quant == quantOne {
		return f, Errorf("greedy/lazy require one of optional/star/plus")
	}
	return f, nil
}

// NewTerminal constructs a Terminal from a match capability.
//
// payload may be a func(interface{}) bool predicate (used as-is), or any other value, in which case
// tokens are matched against it with reflect.DeepEqual. name is used for diagnostics only.
func NewTerminal(name string, payload interface{}, opts ...SymbolOption) (*Terminal, error) {
	f, err := buildFlags(opts)
	if err != nil {
		return nil, err
	}
	match, ok := payload.(func(interface{}) bool)
	if !ok {
		match = equalityMatcher(payload)
	}
	return &Terminal{flags: f, Match: match, Name: name}, nil
}

// MustTerminal is like NewTerminal but panics on error, for use in package-level variable
// initialisers the way grammars are typically wired together.
func MustTerminal(name string, payload interface{}, opts ...SymbolOption) *Terminal {
	t, err := NewTerminal(name, payload, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Terminal) isTerminal() bool      { return true }
func (t *Terminal) symbolFlags() flags    { return t.flags }
func (t *Terminal) matches(tok interface{}) bool {
	return t.Match != nil && t.Match(tok)
}

func (t *Terminal) String() string {
	if t.Name != "" {
		return fmt.Sprintf("%q%s", t.Name, t.specifier())
	}
	return fmt.Sprintf("<terminal>%s", t.specifier())
}

// NonTerminal refers to every Rule in the Grammar whose head equals Head.
type NonTerminal struct {
	flags
	Head string
}

// NewNonTerminal constructs a NonTerminal referring to head.
func NewNonTerminal(head string, opts ...SymbolOption) (*NonTerminal, error) {
	f, err := buildFlags(opts)
	if err != nil {
		return nil, err
	}
	return &NonTerminal{flags: f, Head: head}, nil
}

// MustNonTerminal is like NewNonTerminal but panics on error.
func MustNonTerminal(head string, opts ...SymbolOption) *NonTerminal {
	nt, err := NewNonTerminal(head, opts...)
	if err != nil {
		panic(err)
	}
	return nt
}

func (n *NonTerminal) isTerminal() bool   { return false }
func (n *NonTerminal) symbolFlags() flags { return n.flags }

func (n *NonTerminal) String() string {
	return fmt.Sprintf("<%s>%s", n.Head, n.specifier())
}

func equalityMatcher(payload interface{}) func(interface{}) bool {
	return func(tok interface{}) bool { return reflect.DeepEqual(tok, payload) }
}
