package earley

// This file is the recognizer/forest core: an Earley chart whose items double as shared-packed
// forest AND-nodes. This dual role is grounded directly in the reference implementation this
// package's spec was distilled from (original_source/axaxaxas/__init__.py's PartialRule): a set of
// items sharing (rule, dot, quantCount, start, end) is interned into one canonical *item per
// column, and the OR-alternation of the forest falls straight out of that interning — two
// completions producing a structurally identical item become the same pointer, and the ways they
// were derived accumulate as a set of edges on it.
//
// A plain or optional symbol's dot position has exactly one quant state (0). A star/plus symbol's
// dot position additionally distinguishes "matched at least once" (quant 1) from "not yet" (quant
// 0); this is coarser than literally counting repetitions, which is deliberate — repetition count
// never affects what can be predicted/scanned/completed next, only whether skipping is still legal,
// so collapsing the counter to a single bit maximises sharing without losing information the
// recognizer needs.

// edge records one way an item was derived, i.e. one AND-forest-edge into it.
type edge struct {
	prev *item
	// Exactly one of the following applies:
	child    *item // non-terminal completed into prev's next symbol
	tokenIdx int   // >=0: a terminal token (at this input index) matched prev's next symbol
	skip     bool  // prev's next symbol (optional/star) was skipped without consuming input
}

// item is both an Earley chart item and a shared-packed-forest AND-node: "rule matched up to dot,
// starting at `start`, currently reaching `end`". leaf items (freshly predicted, or the sentinel
// start item) have no sources; every other item has at least one.
type item struct {
	rule       *Rule
	dot        int
	quant      int
	start, end int
	leaf       bool
	sources    map[edge]struct{}
}

func (i *item) isComplete() bool    { return i.dot == len(i.rule.RHS) }
func (i *item) nextSymbol() Symbol  { return i.rule.RHS[i.dot] }

// extendToken advances i past a terminal matched at token index tokenIdx, landing in column end.
func (i *item) extendToken(tokenIdx, end int) *item {
	return i.extend(edge{prev: i, tokenIdx: tokenIdx}, end)
}

// extendChild advances i past a non-terminal completed by child, landing in column end.
func (i *item) extendChild(child *item, end int) *item {
	return i.extend(edge{prev: i, child: child}, end)
}

func (i *item) extend(e edge, end int) *item {
	sym := i.nextSymbol()
	f := sym.symbolFlags()
	if f.quant.multiple() {
		nextQuant := i.quant + 1
		if nextQuant > f.quant.minOccurs() {
			nextQuant = f.quant.minOccurs()
		}
		if nextQuant == 0 {
			nextQuant = 1
		}
		return &item{rule: i.rule, dot: i.dot, quant: nextQuant, start: i.start, end: end,
			sources: map[edge]struct{}{e: {}}}
	}
	return &item{rule: i.rule, dot: i.dot + 1, quant: 0, start: i.start, end: end,
		sources: map[edge]struct{}{e: {}}}
}

// skip advances i past its (optional/star/plus) next symbol without consuming input, or returns
// nil if the minimum occurrence count hasn't been met yet (plus with no match so far).
func (i *item) skip() *item {
	sym := i.nextSymbol()
	f := sym.symbolFlags()
	if f.quant.multiple() && i.quant < f.quant.minOccurs() {
		return nil
	}
	return &item{rule: i.rule, dot: i.dot + 1, quant: 0, start: i.start, end: i.end,
		sources: map[edge]struct{}{{prev: i, skip: true}: {}}}
}

// itemKey identifies items within the canonical set for a single end column; end is implicit in
// which bucket the key lives.
type itemKey struct {
	rule             *Rule
	dot, quant, start int
}

func (i *item) key() itemKey { return itemKey{i.rule, i.dot, i.quant, i.start} }

// column interns items ending at a single chart position, merging sources for items that are
// structurally identical, so that sharing (§3, "Nodes are content-addressable... sharing is
// preserved") is automatic rather than a separate bookkeeping pass.
type column struct {
	byKey map[itemKey]*item
}

func newColumn() *column { return &column{byKey: map[itemKey]*item{}} }

// intern returns the canonical item equal to it, merging it.sources into any pre-existing
// canonical item, and reports whether it was newly created (i.e. needs to be queued for
// recognizer processing).
func (c *column) intern(it *item) (canon *item, isNew bool) {
	k := it.key()
	if existing, ok := c.byKey[k]; ok {
		if existing.leaf || it.leaf {
			return existing, false
		}
		for e := range it.sources {
			existing.sources[e] = struct{}{}
		}
		return existing, false
	}
	c.byKey[k] = it
	return it, true
}

func newLeaf(rule *Rule, start int) *item {
	return &item{rule: rule, dot: 0, quant: 0, start: start, end: start, leaf: true}
}

// startHeadName is the head of the synthetic rule seeded at column 0, never exposed to callers.
const startHeadName = "\x00start"

// newStartRule builds the synthetic gamma rule of spec.md §4.1 ("Column 0 is seeded by predicting
// every rule whose head is the start symbol"): a rule with one non-terminal symbol referring to
// the real start head, so the rest of the recognizer needs no special case for "the" start symbol.
func newStartRule(head string) *Rule {
	nt, err := NewNonTerminal(head)
	if err != nil {
		panic(err) // head carries no flags; buildFlags cannot fail here.
	}
	r := &Rule{Head: startHeadName, RHS: []Symbol{nt}}
	r.synthetic = true
	return r
}

// worklist is a LIFO queue with set semantics matching the reference implementation's use of a
// Python set as its processing queue: re-adding an item already queued is a no-op. Every caller
// here only pushes an item when column.intern reports it as newly created — mirroring
// PartialRuleSet.add returning None for an already-seen item, which the reference implementation's
// worklist then drops on pop. An item merging a new source edge into an already-interned item is
// not requeued: its (rule, dot, quant, start, end) identity was already processed, and merging more
// sources into it doesn't change what further predict/scan/complete steps it licenses.
type worklist struct {
	items  []*item
	queued map[*item]bool
}

func newWorklist() *worklist { return &worklist{queued: map[*item]bool{}} }

func (w *worklist) push(it *item) {
	if !w.queued[it] {
		w.queued[it] = true
		w.items = append(w.items, it)
	}
}

func (w *worklist) pop() (*item, bool) {
	if len(w.items) == 0 {
		return nil, false
	}
	it := w.items[len(w.items)-1]
	w.items = w.items[:len(w.items)-1]
	delete(w.queued, it)
	return it, true
}

// chart is the recognizer's working state across the whole parse, and is retained for the
// lifetime of the returned ParseForest since NoParseError's localisation needs it (spec.md §5,
// "the chart is retained for the lifetime of the returned forest").
type chart struct {
	grammar Grammar
	tokens  []interface{}
	columns []*column // columns[end] interns items ending at position end

	// pendingByHead[col][head] lists items, still waiting on a non-terminal matching head, that
	// were predicted while the recognizer's current position was col. Indexed by the origin
	// column of the eventual completion, per spec.md §4.1's Complete rule.
	pendingByHead []map[string][]*item
}

func newChart(grammar Grammar, tokens []interface{}) *chart {
	n := len(tokens)
	c := &chart{grammar: grammar, tokens: tokens}
	c.columns = make([]*column, n+2)
	for i := range c.columns {
		c.columns[i] = newColumn()
	}
	c.pendingByHead = make([]map[string][]*item, n+1)
	for i := range c.pendingByHead {
		c.pendingByHead[i] = map[string][]*item{}
	}
	return c
}

func (c *chart) intern(col int, it *item) (*item, bool) {
	return c.columns[col].intern(it)
}

// recognizeResult is what recognize() hands to forest construction and to NoParseError reporting.
type recognizeResult struct {
	accept  *item // the completed synthetic start item spanning [0, N), or nil
	failAt  int
	failTok interface{}
	failEncounteredTerminals []*Terminal
	failNonAnonExpected      []Symbol
}

// recognize runs the chart construction of spec.md §4.1 (predict/scan/complete to a per-column
// fixpoint) and returns either the accepting item or the information needed to build a
// NoParseError.
func recognize(grammar Grammar, startHead string, tokens []interface{}, log Logger) (*chart, *recognizeResult) {
	if log == nil {
		log = NopLogger{}
	}
	c := newChart(grammar, tokens)
	startRule := newStartRule(startHead)

	cur := newWorklist()
	seedStart, isNew := c.intern(0, newLeaf(startRule, 0))
	if isNew {
		cur.push(seedStart)
	}

	var accept *item
	var terminalItems []*item

	for col := 0; col <= len(tokens); col++ {
		var token interface{}
		hasToken := col < len(tokens)
		if hasToken {
			token = tokens[col]
		}
		completedByHead := map[string][]*item{}
		terminalItems = terminalItems[:0]
		next := newWorklist()

		for {
			it, ok := cur.pop()
			if !ok {
				break
			}
			if it.isComplete() {
				if it.rule.synthetic && it.start == 0 && col == len(tokens) {
					accept = it
				}
				for _, waiting := range c.pendingByHead[it.start][it.rule.Head] {
					ext, isNew := c.intern(col, waiting.extendChild(it, col))
					if isNew {
						cur.push(ext)
					}
				}
				if it.start == col {
					completedByHead[it.rule.Head] = append(completedByHead[it.rule.Head], it)
				}
				log.Debugf("column %d: completed %s", col, it.rule.Head)
				continue
			}

			sym := it.nextSymbol()
			f := sym.symbolFlags()

			switch s := sym.(type) {
			case *NonTerminal:
				c.pendingByHead[col][s.Head] = append(c.pendingByHead[col][s.Head], it)
				for _, rule := range grammar.RulesFor(s.Head) {
					pred, isNew := c.intern(col, newLeaf(rule, col))
					if isNew {
						cur.push(pred)
					}
				}
				for _, completed := range completedByHead[s.Head] {
					ext, isNew := c.intern(col, it.extendChild(completed, completed.end))
					if isNew {
						cur.push(ext)
					}
				}
			case *Terminal:
				terminalItems = append(terminalItems, it)
				if hasToken && s.matches(token) {
					ext, isNew := c.intern(col+1, it.extendToken(col, col+1))
					if isNew {
						next.push(ext)
					}
				}
			}

			if f.quant == quantOptional || f.quant.multiple() {
				if skipped := it.skip(); skipped != nil {
					ext, isNew := c.intern(col, skipped)
					if isNew {
						cur.push(ext)
					}
				}
			}
		}

		if col == len(tokens) {
			if accept != nil {
				return c, &recognizeResult{accept: accept}
			}
			return c, noParseResult(c, grammar, col, token, hasToken, terminalItems)
		}

		cur = next
		if len(cur.items) == 0 {
			return c, noParseResult(c, grammar, col, token, hasToken, terminalItems)
		}
	}
	panic("unreachable: loop above always returns by col == len(tokens)")
}

// noParseResult implements spec.md §4.6's NoParseError localisation: walk back from the terminals
// that were tried at the failing column through the chain of "waiting" items to the heads that
// predicted them, skipping anonymous heads and the synthetic start head.
func noParseResult(c *chart, grammar Grammar, col int, token interface{}, hasToken bool, terminalItems []*item) *recognizeResult {
	open := append([]*item{}, terminalItems...)
	visited := map[*item]bool{}
	children := map[*item][]*item{}
	var exits []*item
	for len(open) > 0 {
		it := open[len(open)-1]
		open = open[:len(open)-1]
		if visited[it] {
			continue
		}
		visited[it] = true
		switch {
		case it.rule.synthetic:
			exits = append(exits, it)
		case it.dot == 0 && it.quant == 0:
			parents := c.pendingByHead[col][it.rule.Head]
			for _, parent := range parents {
				children[parent] = append(children[parent], it)
				open = append(open, parent)
			}
		default:
			exits = append(exits, it)
		}
	}
	seenExpected := map[string]bool{}
	var expected []Symbol
	for len(exits) > 0 {
		it := exits[len(exits)-1]
		exits = exits[:len(exits)-1]
		sym := it.nextSymbol()
		if nt, ok := sym.(*NonTerminal); ok {
			if it.rule.synthetic || grammar.IsAnonymous(nt.Head) {
				exits = append(exits, children[it]...)
				continue
			}
		}
		if !seenExpected[sym.String()] {
			seenExpected[sym.String()] = true
			expected = append(expected, sym)
		}
	}
	var encountered interface{}
	if hasToken {
		encountered = token
	}
	terminals := make([]*Terminal, 0, len(terminalItems))
	for _, it := range terminalItems {
		terminals = append(terminals, it.nextSymbol().(*Terminal))
	}
	return &recognizeResult{
		failAt:                   col,
		failTok:                  encountered,
		failEncounteredTerminals: terminals,
		failNonAnonExpected:      expected,
	}
}
