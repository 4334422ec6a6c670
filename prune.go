package earley

// This file implements the three-layer preference pruner of §4.3 and the infinite-parse check of
// §4.4, both translated from the reference implementation's _trim_penalty/_trim_greedy and the SCC
// walk guarding against zero-width derivation cycles (original_source/axaxaxas/__init__.py).
//
// Pruning mutates item.sources in place: it is only ever run once, from Parse, on the freshly
// recognized forest, never on a forest a caller is concurrently traversing.

// prune narrows every node's sources to its preferred alternatives and returns the (possibly
// still-ambiguous) root, or a witness node if pruning uncovers a zero-width derivation cycle.
func prune(root *item, log Logger) (pruned *item, infiniteWitness *item) {
	if root == nil {
		return nil, nil
	}

	penaltyMemo := map[*item]int{}
	prunePenalty(root, penaltyMemo, map[*item]bool{})
	log.Debugf("penalty pruning complete")

	repeatMemo := map[*item]int{}
	pruneQuantifierPreference(root, repeatMemo, map[*item]bool{})
	log.Debugf("greedy/lazy pruning complete")

	prunePreferEarlyLate(root, map[*item]bool{})
	log.Debugf("prefer-early/prefer-late pruning complete")

	if w := detectZeroWidthCycle(root); w != nil {
		return nil, w
	}
	return root, nil
}

// --- layer 1: penalty --------------------------------------------------------------------------

// minimalPenalty computes the smallest sum of Rule.Penalty over any derivation reaching it,
// counting each rule's penalty exactly once per use by attributing it at the rule's leaf (dot 0)
// item, where every derivation chain for that rule instance necessarily terminates.
func minimalPenalty(it *item, memo map[*item]int, visiting map[*item]bool) int {
	if v, ok := memo[it]; ok {
		return v
	}
	if visiting[it] {
		// A cycle; §4.4's pass (run after pruning) is responsible for reporting this as an
		// InfiniteParseError. Treat it as zero-cost here so penalty comparison doesn't diverge.
		return 0
	}
	if it.leaf {
		memo[it] = it.rule.Penalty
		return it.rule.Penalty
	}
	visiting[it] = true
	best := -1
	for e := range it.sources {
		p := minimalPenalty(e.prev, memo, visiting)
		if e.child != nil {
			p += minimalPenalty(e.child, memo, visiting)
		}
		if best == -1 || p < best {
			best = p
		}
	}
	delete(visiting, it)
	memo[it] = best
	return best
}

func prunePenalty(it *item, memo map[*item]int, done map[*item]bool) {
	if it == nil || it.leaf || done[it] {
		return
	}
	done[it] = true
	min := minimalPenalty(it, memo, map[*item]bool{})
	kept := map[edge]struct{}{}
	for e := range it.sources {
		p := minimalPenalty(e.prev, memo, map[*item]bool{})
		if e.child != nil {
			p += minimalPenalty(e.child, memo, map[*item]bool{})
		}
		if p == min {
			kept[e] = struct{}{}
		}
	}
	it.sources = kept
	for e := range it.sources {
		prunePenalty(e.prev, memo, done)
		if e.child != nil {
			prunePenalty(e.child, memo, done)
		}
	}
}

// --- layer 2: greedy/lazy -----------------------------------------------------------------------

// repeatDepth counts, along the best-known derivation of it, how many times a multiple (star/plus)
// symbol at the position it was reached through has matched. This is the translation of the
// reference implementation's recomputation of repetition count at prune time, since this
// package (like the reference) never stores a literal counter on an item — only "matched at least
// once" (see item.go's doc comment).
func repeatDepth(it *item, memo map[*item]int) int {
	if v, ok := memo[it]; ok {
		return v
	}
	memo[it] = 0 // cycle guard; refined below once real sources are walked.
	best := 0
	for e := range it.sources {
		d := repeatDepth(e.prev, memo)
		if e.prev.dot == it.dot && e.prev.rule == it.rule {
			d++ // e re-matched the same quantified position again rather than advancing past it.
		}
		if d > best {
			best = d
		}
	}
	memo[it] = best
	return best
}

// quantifierPreference finds the first star/plus symbol among syms carrying a greedy/lazy flag
// (a greedy/lazy optional symbol is not considered, so it has no effect on pruning) — the
// quantified position, earlier in the rule, whose repeat count an ambiguity this far along the
// rule might be disagreeing about. Ambiguity over a star/plus symbol's match count only ever
// surfaces once the rule has moved on past it (the span it consumed is fixed by then), so the
// divergence point can be anywhere in syms, not just the immediately preceding symbol.
func quantifierPreference(syms []Symbol) (flags, bool) {
	for _, sym := range syms {
		f := sym.symbolFlags()
		if f.quant.multiple() && (f.greedy || f.lazy) {
			return f, true
		}
	}
	return flags{}, false
}

func pruneQuantifierPreference(it *item, memo map[*item]int, done map[*item]bool) {
	if it == nil || it.leaf || done[it] {
		return
	}
	done[it] = true
	if len(it.sources) > 1 && it.dot > 0 {
		f, hasPref := quantifierPreference(it.rule.RHS[:it.dot])
		if hasPref {
			best := -1
			for e := range it.sources {
				d := repeatDepth(e.prev, memo)
				if f.greedy && d > best {
					best = d
				}
				if f.lazy && (best == -1 || d < best) {
					best = d
				}
			}
			kept := map[edge]struct{}{}
			for e := range it.sources {
				if repeatDepth(e.prev, memo) == best {
					kept[e] = struct{}{}
				}
			}
			it.sources = kept
		}
	}
	for e := range it.sources {
		pruneQuantifierPreference(e.prev, memo, done)
		if e.child != nil {
			pruneQuantifierPreference(e.child, memo, done)
		}
	}
}

// --- layer 3: prefer-early / prefer-late ---------------------------------------------------------

// prunePreferEarlyLate resolves ambiguity between rules of the same head called from a
// prefer_early/prefer_late non-terminal, by Rule.priority (insertion order into the RuleSet).
func prunePreferEarlyLate(it *item, done map[*item]bool) {
	if it == nil || it.leaf || done[it] {
		return
	}
	done[it] = true
	if it.dot == 0 && it.quant == 0 {
		for e := range it.sources {
			prunePreferEarlyLate(e.prev, done)
			if e.child != nil {
				prunePreferEarlyLate(e.child, done)
			}
		}
		return
	}
	// The child edges into it consumed the repeated star/plus symbol at the dot (quant 1), or
	// otherwise the symbol just before the dot.
	sym := it.rule.RHS[it.dot-1+it.quant]
	nt, ok := sym.(*NonTerminal)
	if !ok || (!nt.preferEarly && !nt.preferLate) {
		for e := range it.sources {
			prunePreferEarlyLate(e.prev, done)
			if e.child != nil {
				prunePreferEarlyLate(e.child, done)
			}
		}
		return
	}
	// Each edge with a child records one completed rule of nt's head; keep only the edges whose
	// child rule has the extreme Rule.priority (lowest for prefer_early, highest for prefer_late).
	best := -1
	for e := range it.sources {
		if e.child == nil {
			continue
		}
		p := e.child.rule.priority
		if best == -1 {
			best = p
		} else if nt.preferEarly && p < best {
			best = p
		} else if nt.preferLate && p > best {
			best = p
		}
	}
	if best != -1 {
		kept := map[edge]struct{}{}
		for e := range it.sources {
			if e.child == nil || e.child.rule.priority == best {
				kept[e] = struct{}{}
			}
		}
		it.sources = kept
	}
	for e := range it.sources {
		prunePreferEarlyLate(e.prev, done)
		if e.child != nil {
			prunePreferEarlyLate(e.child, done)
		}
	}
}

// --- infinite-parse detection --------------------------------------------------------------------

// detectZeroWidthCycle runs a Tarjan-style SCC search restricted to edges that add no net width —
// a neighbour (either half of a source edge, per the reference implementation's _trim_loops walking
// both elements of every source pair) spanning exactly the same [start, end) token range as the
// node being checked, per §4.4. This is relative to each node's own span, not to absolute zero: a
// child that simply re-derives its parent's whole span (e.g. s -> s closing the loop over s ->
// "word"'s own [0, 1) span) is exactly as much a zero-width cycle as a genuinely empty derivation.
// Any such cycle — whether a multi-node SCC or a single node with an edge back to itself — means
// the grammar admits infinitely many distinct parse trees for this input.
func detectZeroWidthCycle(root *item) *item {
	type state struct {
		index, low int
		onStack    bool
	}
	index := 0
	states := map[*item]*state{}
	var stack []*item
	var witness *item

	var visit func(it *item)
	visit = func(it *item) {
		if witness != nil || it == nil {
			return
		}
		if _, ok := states[it]; ok {
			return
		}
		s := &state{index: index, low: index, onStack: true}
		states[it] = s
		index++
		stack = append(stack, it)

		visitNeighbor := func(next *item) {
			if witness != nil || next == nil {
				return
			}
			if next.start != it.start || next.end != it.end {
				return // not a zero-width edge relative to it
			}
			if next == it {
				witness = it // a direct self-loop is trivially an infinite cycle
				return
			}
			ns, seen := states[next]
			if !seen {
				visit(next)
				if witness != nil {
					return
				}
				ns = states[next]
				if ns.low < s.low {
					s.low = ns.low
				}
			} else if ns.onStack && ns.index < s.low {
				s.low = ns.index
			}
		}

		for e := range it.sources {
			visitNeighbor(e.prev)
			visitNeighbor(e.child)
		}

		if witness != nil {
			return
		}

		if s.low == s.index {
			var scc []*item
			for {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				states[top].onStack = false
				scc = append(scc, top)
				if top == it {
					break
				}
			}
			if len(scc) > 1 {
				witness = scc[0]
			}
		}
	}

	visit(root)
	return witness
}
