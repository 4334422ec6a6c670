// Package earley implements a general context-free grammar parser based on Earley's algorithm,
// extended with optional/star/plus quantifiers on right-hand-side symbols and a set of per-symbol
// and per-rule preferences (greedy/lazy, prefer-early/prefer-late, rule penalties) for taming
// ambiguity in grammars that would otherwise yield many parse trees for the same input.
//
// A grammar is a *RuleSet of Rules, each a head and a right-hand side of Symbols built with
// NewTerminal/NewNonTerminal:
//
//	rules := earley.NewRuleSet()
//	num := earley.MustTerminal("num", func(tok interface{}) bool { _, ok := tok.(int); return ok })
//	rules.Add(earley.NewRule("sum", []earley.Symbol{
//	    earley.MustNonTerminal("sum"), earley.MustTerminal("plus", "+"), num,
//	}))
//	rules.Add(earley.NewRule("sum", []earley.Symbol{num}))
//
// Parse runs the recognizer and preference pruner and returns a *ParseForest:
//
//	forest, err := earley.Parse(rules, "sum", []interface{}{1, "+", 2})
//	tree, err := forest.Single()
//
// Ambiguous grammars (those the preference pruner cannot fully resolve) can be asked for every
// surviving parse via ParseForest.All or ParseForest.Iter, or just a count via
// ParseForest.Count — Count runs in time proportional to the shared forest's size, not to the
// (potentially exponential) number of distinct trees; All and Iter build every tree.
package earley
