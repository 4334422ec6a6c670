package earley

// VisitRules walks every Rule reachable from start (including start's own rules), following
// NonTerminal references, calling fn once per rule the first time it is reached. This is the
// teacher's generic node-visitor pattern (visit.go's seen-map walk over grammar nodes) adapted from
// participle's struct-derived node graph to this package's Grammar/Rule model; useful for grammar
// analysis such as finding unreachable heads or rules with no path back to start.
func VisitRules(grammar Grammar, start string, fn func(rule *Rule)) {
	seenHead := map[string]bool{}
	var visitHead func(head string)
	visitHead = func(head string) {
		if seenHead[head] {
			return
		}
		seenHead[head] = true
		for _, rule := range grammar.RulesFor(head) {
			fn(rule)
			for _, sym := range rule.RHS {
				if nt, ok := sym.(*NonTerminal); ok {
					visitHead(nt.Head)
				}
			}
		}
	}
	visitHead(start)
}
