package earley

// Builder is the visitor protocol §4.5 dispatches forest traversal through: one rule instance is
// built by StartRule, a sequence of Extend calls (one per RHS symbol, or BeginMultiple/EndMultiple
// bracketing a possibly empty run of repeats, or a single SkipOptional for an optional symbol that
// matched zero times), and
// EndRule. Two alternatives that survive pruning for the same span are combined with Merge.
//
// This mirrors the reference implementation's Builder class (start_rule/end_rule/terminal/
// skip_optional/begin_multiple/end_multiple/extend/merge/merge_vertical/merge_horizontal); Merge
// here plays the role of merge_vertical (combining two whole rule results) and merge_horizontal
// (combining two items extended into the same accumulator) at once, since Go callers that want to
// tell the two apart can do so from the types of the values they're given.
type Builder interface {
	// StartRule begins accumulating a value for one use of rule. The returned accumulator is
	// threaded through successive Extend/BeginMultiple/EndMultiple/SkipOptional calls.
	StartRule(rule *Rule) interface{}
	// EndRule finishes accumulating rule, given the accumulator StartRule returned (as extended by
	// zero or more of the calls below).
	EndRule(rule *Rule, acc interface{}) interface{}
	// Terminal builds the value for a single matched token.
	Terminal(term *Terminal, token interface{}) interface{}
	// SkipOptional builds the value standing in for the optional symbol sym having matched zero
	// times.
	SkipOptional(sym Symbol) interface{}
	// BeginMultiple begins accumulating the (possibly empty) run of repeats of a star/plus symbol.
	BeginMultiple(sym Symbol) interface{}
	// EndMultiple finishes accumulating sym's repeats, given BeginMultiple/Extend's accumulator.
	EndMultiple(sym Symbol, acc interface{}) interface{}
	// Extend folds value (from Terminal, a nested rule result, SkipOptional, or EndMultiple) into
	// acc, returning the new accumulator.
	Extend(acc interface{}, value interface{}) interface{}
	// Merge combines two surviving alternatives for the same span. The stock dispatcher in this
	// file never calls it: ParseForest.Single refuses ambiguity outright (returning
	// AmbiguousParseError), and All/Count/Iter enumerate every alternative rather than folding them
	// together. Merge exists on the interface for callers implementing their own Builder that wants
	// ambiguous positions actively combined (e.g. a builder collecting a set of possible values)
	// instead of forked or rejected.
	Merge(a, b interface{}) interface{}
}

// step is one position along a single rule's RHS as actually matched by one alternative. For a
// stepChild step, childVal is the already-resolved built value for the specific child alternative
// this step sequence picked — resolved once, at fork time in stepAlternatives, so replaying a step
// sequence in build() never needs to choose among a child's alternatives again.
type step struct {
	dotBefore, dotAfter int
	kind                stepKind
	childVal            interface{}
	tokenIdx            int
}

type stepKind int

const (
	stepChild stepKind = iota
	stepToken
	stepSkip
)

// dispatcher runs the Builder protocol over a pruned (but possibly still ambiguous) forest rooted
// at a completed item, memoising both "every way to walk this rule instance" and "every built value
// for this completed item" by node identity, so a node shared by many parents is only visited once
// — the §4.5 requirement that shared nodes' callbacks fire exactly once per the node, not once per
// parent.
type dispatcher struct {
	tokens    []interface{}
	builder   Builder
	stepCache map[*item][][]step
	valCache  map[*item][]interface{}
}

func newDispatcher(tokens []interface{}, b Builder) *dispatcher {
	return &dispatcher{tokens: tokens, builder: b, stepCache: map[*item][][]step{}, valCache: map[*item][]interface{}{}}
}

// alternatives returns every surviving built value for the completed item comp.
func (d *dispatcher) alternatives(comp *item) []interface{} {
	if v, ok := d.valCache[comp]; ok {
		return v
	}
	d.valCache[comp] = nil // break cycles defensively; none should reach here post §4.4's check.
	var out []interface{}
	for _, seq := range d.stepAlternatives(comp) {
		out = append(out, d.build(comp.rule, seq))
	}
	d.valCache[comp] = out
	return out
}

// stepAlternatives returns, for it (any item, not necessarily complete), every forward sequence of
// steps a derivation could have taken to reach it from its rule's leaf.
func (d *dispatcher) stepAlternatives(it *item) [][]step {
	if it.leaf {
		return [][]step{nil}
	}
	if v, ok := d.stepCache[it]; ok {
		return v
	}
	var out [][]step
	for e := range it.sources {
		prevAlts := d.stepAlternatives(e.prev)
		var childVals []interface{}
		switch {
		case e.child != nil:
			childVals = d.alternatives(e.child)
		default:
			childVals = []interface{}{nil}
		}
		for _, prevSeq := range prevAlts {
			for _, cv := range childVals {
				st := step{dotBefore: e.prev.dot, dotAfter: it.dot}
				switch {
				case e.child != nil:
					st.kind, st.childVal = stepChild, cv
				case e.skip:
					st.kind = stepSkip
				default:
					st.kind, st.tokenIdx = stepToken, e.tokenIdx
				}
				seq := make([]step, len(prevSeq)+1)
				copy(seq, prevSeq)
				seq[len(prevSeq)] = st
				out = append(out, seq)
			}
		}
	}
	d.stepCache[it] = out
	return out
}

// build replays one step sequence through the Builder protocol for rule.
func (d *dispatcher) build(rule *Rule, steps []step) interface{} {
	b := d.builder
	acc := b.StartRule(rule)
	i := 0
	for i < len(steps) {
		dot := steps[i].dotBefore
		sym := rule.RHS[dot]
		f := sym.symbolFlags()
		switch {
		case f.quant.multiple():
			macc := b.BeginMultiple(sym)
			for i < len(steps) && steps[i].dotBefore == dot {
				st := steps[i]
				i++
				if st.kind == stepSkip {
					break
				}
				macc = b.Extend(macc, d.buildLeafStep(sym, st))
			}
			acc = b.Extend(acc, b.EndMultiple(sym, macc))
		case f.quant == quantOptional:
			st := steps[i]
			i++
			if st.kind == stepSkip {
				acc = b.Extend(acc, b.SkipOptional(sym))
			} else {
				acc = b.Extend(acc, d.buildLeafStep(sym, st))
			}
		default:
			st := steps[i]
			i++
			acc = b.Extend(acc, d.buildLeafStep(sym, st))
		}
	}
	return b.EndRule(rule, acc)
}

func (d *dispatcher) buildLeafStep(sym Symbol, st step) interface{} {
	if st.kind == stepChild {
		return st.childVal
	}
	return d.builder.Terminal(sym.(*Terminal), d.tokens[st.tokenIdx])
}

// countNode returns the number of distinct derivations reaching it, without materialising any of
// them — the counting half of §4.5 that lets Count stay cheap even when All()
// would be exponential.
func countNode(it *item, memo map[*item]int) int {
	if it.leaf {
		return 1
	}
	if v, ok := memo[it]; ok {
		return v
	}
	memo[it] = 0
	total := 0
	for e := range it.sources {
		n := countNode(e.prev, memo)
		if e.child != nil {
			n *= countNode(e.child, memo)
		}
		total += n
	}
	memo[it] = total
	return total
}

// internalNodeCount returns the number of distinct *item nodes reachable from it.
func internalNodeCount(it *item, seen map[*item]bool) int {
	if it == nil || seen[it] {
		return 0
	}
	seen[it] = true
	n := 1
	for e := range it.sources {
		n += internalNodeCount(e.prev, seen)
		if e.child != nil {
			n += internalNodeCount(e.child, seen)
		}
	}
	return n
}
