package earley

import (
	"fmt"
	"strings"
)

// Rule is a single production of a context-free grammar: head -> RHS, with an optional penalty
// used to prune ambiguity (see the Preference pruner, §4.3).
//
// Rules are compared by identity (pointer equality), never by value, since two textually identical
// rules may be intended to behave differently under prefer-early/prefer-late.
type Rule struct {
	// Head is the left-hand-side non-terminal name this rule produces.
	Head string
	// RHS is the ordered sequence of symbols this rule matches.
	RHS []Symbol
	// Penalty is summed, along a derivation, with the Penalty of every other Rule used by that
	// derivation; the Preference pruner discards derivations whose penalty sum is not minimal.
	Penalty int

	// priority records insertion order within its head, 1-based; used only to break
	// prefer_early/prefer_late ties deterministically. Set by RuleSet.Add.
	priority int

	// synthetic marks the gamma rule recognize() seeds column 0 with; never shown to callers.
	synthetic bool
}

// NewRule constructs a Rule. penalty defaults to 0 if omitted.
func NewRule(head string, rhs []Symbol, penalty ...int) *Rule {
	p := 0
	if len(penalty) > 0 {
		p = penalty[0]
	}
	return &Rule{Head: head, RHS: rhs, Penalty: p}
}

func (r *Rule) String() string {
	parts := make([]string, len(r.RHS))
	for i, s := range r.RHS {
		parts[i] = s.String()
	}
	suffix := ""
	if r.Penalty != 0 {
		suffix = fmt.Sprintf(" (penalty=%d)", r.Penalty)
	}
	return fmt.Sprintf("<%s> ::= %s%s", r.Head, strings.Join(parts, " "), suffix)
}

// Grammar is the lookup contract the recognizer needs from a grammar. *RuleSet is the default
// implementation; clients may supply their own (e.g. to generate rules lazily, or to compute
// anonymity from a naming convention) per spec.md §2.2 ("RuleSet.rules_for is overridable").
type Grammar interface {
	// RulesFor returns every Rule whose head is name, in the order they should be tried.
	// prefer_early/prefer_late do not use this order; they compare the priority RuleSet.Add
	// records on each Rule, which for *RuleSet matches the order RulesFor returns.
	RulesFor(name string) []*Rule
	// IsAnonymous reports whether name should be omitted from NoParseError's "expected" summary.
	IsAnonymous(name string) bool
}

// RuleSet is the default Grammar implementation: an insertion-ordered multimap from head name to
// its Rules, plus a set of heads marked anonymous.
type RuleSet struct {
	rules     map[string][]*Rule
	order     []string
	anonymous map[string]bool
}

// NewRuleSet returns an empty RuleSet.
func NewRuleSet() *RuleSet {
	return &RuleSet{rules: map[string][]*Rule{}, anonymous: map[string]bool{}}
}

// Add appends rule to the set, assigning it the next priority for its head.
func (rs *RuleSet) Add(rule *Rule) *Rule {
	if _, ok := rs.rules[rule.Head]; !ok {
		rs.order = append(rs.order, rule.Head)
	}
	rule.priority = len(rs.rules[rule.Head]) + 1
	rs.rules[rule.Head] = append(rs.rules[rule.Head], rule)
	return rule
}

// MarkAnonymous hides head from NoParseError's "expected" summary, causing the error reporter to
// walk through to the rules that reference it instead. Useful for grammar-internal plumbing heads
// that would otherwise confuse a human reading a parse error.
func (rs *RuleSet) MarkAnonymous(head string) {
	rs.anonymous[head] = true
}

// RulesFor implements Grammar.
func (rs *RuleSet) RulesFor(head string) []*Rule {
	return rs.rules[head]
}

// IsAnonymous implements Grammar.
func (rs *RuleSet) IsAnonymous(head string) bool {
	return rs.anonymous[head]
}

// Heads returns every head known to the set, in the order its first rule was added.
func (rs *RuleSet) Heads() []string {
	return rs.order
}

func (rs *RuleSet) String() string {
	var b strings.Builder
	for _, head := range rs.order {
		for _, rule := range rs.rules[head] {
			fmt.Fprintln(&b, rule.String())
		}
	}
	return b.String()
}
