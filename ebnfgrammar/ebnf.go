// Package ebnfgrammar converts an *earley.RuleSet into a golang.org/x/exp/ebnf.Grammar, for
// documentation and diagnostics. It runs the teacher's own EBNF support (lexer/ebnf.go, which
// builds a lexer from an x/exp/ebnf grammar) in the opposite direction — grammar to EBNF AST,
// purely for introspection. The result participates in no parse; earley.Parse never calls it.
package ebnfgrammar

import (
	"fmt"

	"golang.org/x/exp/ebnf"

	axaxaxas "github.com/BorisTheBrave/axaxaxas"
)

// EBNF converts rules into an ebnf.Grammar with one ebnf.Production per head. It returns an error
// if any head named by a NonTerminal has zero rules, since ebnf.Verify rejects an undefined
// production.
func EBNF(rules *axaxaxas.RuleSet) (ebnf.Grammar, error) {
	g := ebnf.Grammar{}
	for _, head := range rules.Heads() {
		expr, err := alternativeOf(rules.RulesFor(head))
		if err != nil {
			return nil, fmt.Errorf("production %q: %w", head, err)
		}
		g[head] = &ebnf.Production{
			Name: &ebnf.Name{String: head},
			Expr: expr,
		}
	}
	for _, head := range rules.Heads() {
		if err := requireDefined(g, g[head].Expr); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func alternativeOf(ruleList []*axaxaxas.Rule) (ebnf.Expression, error) {
	if len(ruleList) == 0 {
		return nil, fmt.Errorf("no rules")
	}
	if len(ruleList) == 1 {
		return sequenceOf(ruleList[0])
	}
	alt := make(ebnf.Alternative, 0, len(ruleList))
	for _, r := range ruleList {
		seq, err := sequenceOf(r)
		if err != nil {
			return nil, err
		}
		alt = append(alt, seq)
	}
	return alt, nil
}

func sequenceOf(rule *axaxaxas.Rule) (ebnf.Expression, error) {
	if len(rule.RHS) == 0 {
		return nil, nil
	}
	if len(rule.RHS) == 1 {
		return exprOf(rule.RHS[0])
	}
	seq := make(ebnf.Sequence, 0, len(rule.RHS))
	for _, sym := range rule.RHS {
		e, err := exprOf(sym)
		if err != nil {
			return nil, err
		}
		seq = append(seq, e)
	}
	return seq, nil
}

// exprOf converts a single Symbol into an ebnf.Expression, wrapping it in *ebnf.Option or
// *ebnf.Repetition per its quantifier. Plus is rendered as the sequence (body body*), since EBNF
// as defined by x/exp/ebnf has no native "one or more" operator.
func exprOf(sym axaxaxas.Symbol) (ebnf.Expression, error) {
	base, isStar, isOptional, isPlus := baseExprAndQuant(sym)
	switch {
	case isOptional:
		return &ebnf.Option{Body: base}, nil
	case isStar:
		return &ebnf.Repetition{Body: base}, nil
	case isPlus:
		return ebnf.Sequence{base, &ebnf.Repetition{Body: base}}, nil
	default:
		return base, nil
	}
}

func baseExprAndQuant(sym axaxaxas.Symbol) (base ebnf.Expression, isStar, isOptional, isPlus bool) {
	switch s := sym.(type) {
	case *axaxaxas.Terminal:
		base = &ebnf.Token{String: terminalLiteral(s)}
		isStar, isOptional, isPlus = s.IsStar(), s.IsOptional(), s.IsPlus()
	case *axaxaxas.NonTerminal:
		base = &ebnf.Name{String: s.Head}
		isStar, isOptional, isPlus = s.IsStar(), s.IsOptional(), s.IsPlus()
	default:
		base = &ebnf.Token{String: sym.String()}
	}
	return
}

func terminalLiteral(t *axaxaxas.Terminal) string {
	if t.Name != "" {
		return t.Name
	}
	return t.String()
}

func requireDefined(g ebnf.Grammar, expr ebnf.Expression) error {
	switch n := expr.(type) {
	case *ebnf.Name:
		if g[n.String] == nil {
			return fmt.Errorf("production %q has no rules", n.String)
		}
	case ebnf.Alternative:
		for _, e := range n {
			if err := requireDefined(g, e); err != nil {
				return err
			}
		}
	case ebnf.Sequence:
		for _, e := range n {
			if err := requireDefined(g, e); err != nil {
				return err
			}
		}
	case *ebnf.Group:
		return requireDefined(g, n.Body)
	case *ebnf.Option:
		return requireDefined(g, n.Body)
	case *ebnf.Repetition:
		return requireDefined(g, n.Body)
	}
	return nil
}
