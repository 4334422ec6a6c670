package earley

import "context"

// ParseForest is the pruned shared-packed forest Parse returns: every surviving derivation of
// start over the parsed tokens, sharing structure per §3. The chart it was built from is retained
// (per §5) so the forest remains self-contained; nothing it exposes mutates the chart further.
type ParseForest struct {
	root    *item // nil only for the WithAllowEmpty trivial-success case
	chart   *chart
	grammar Grammar
	start   string
}

// Apply runs builder's protocol (§4.5) over the forest and returns its single value, or an
// *AmbiguousParseError if pruning still left more than one alternative anywhere in the forest.
func (f *ParseForest) Apply(builder Builder) (interface{}, error) {
	if f.root == nil {
		return nil, nil
	}
	if f.Count() > 1 {
		d := newDispatcher(f.chart.tokens, builder)
		alts := d.alternatives(f.root)
		return nil, newAmbiguousParseError(f.root.start, f.root.end, firstN(alts, 2))
	}
	d := newDispatcher(f.chart.tokens, builder)
	vals := d.alternatives(f.root)
	if len(vals) == 0 {
		return nil, nil
	}
	return vals[0], nil
}

// Single returns the forest's one surviving parse tree, using the default Tree/Unparse builder.
// It is an error — AmbiguousParseError — for the forest to contain more than one.
func (f *ParseForest) Single() (*Tree, error) {
	v, err := f.Apply(treeBuilder{})
	if err != nil || v == nil {
		return nil, err
	}
	return v.(*Tree), nil
}

// Count reports the number of distinct derivations the forest contains, computed by a DP over the
// interned node graph rather than by materialising them — the whole reason §3's sharing matters: a
// grammar whose naive tree count is exponential can still have Count() run in time proportional to
// the (polynomial) number of interned nodes.
func (f *ParseForest) Count() int {
	if f.root == nil {
		return 0
	}
	return countNode(f.root, map[*item]int{})
}

// All materialises every surviving parse tree. Prefer Count to check how many there are before
// calling this on a forest that might be highly ambiguous.
func (f *ParseForest) All() ([]*Tree, error) {
	if f.root == nil {
		return nil, nil
	}
	d := newDispatcher(f.chart.tokens, treeBuilder{})
	vals := d.alternatives(f.root)
	out := make([]*Tree, len(vals))
	for i, v := range vals {
		out[i] = v.(*Tree)
	}
	return out, nil
}

// Iter streams every surviving parse tree over a channel, for callers that want to stop early
// without paying for every remaining alternative. This plays the role of the reference
// implementation's stackless thunk trampoline (Thunk/thunk_* in original_source), replaced here
// with the native Go mechanism for the same need: a goroutine that blocks on send into an unbuffered
// channel, so nothing is produced faster than the caller consumes it, and ctx cancellation (checked
// before every send) lets an abandoned iteration's goroutine exit instead of leaking.
//
// The trees are still computed eagerly, internally, before the first send — only their delivery is
// lazy. A fully incremental generator (computing each tree only as the previous one is consumed)
// would need to restructure dispatcher.alternatives as a true coroutine; given Count() already lets
// a caller check the size cheaply up front, that additional complexity was not worth it here.
func (f *ParseForest) Iter(ctx context.Context) <-chan *Tree {
	out := make(chan *Tree)
	go func() {
		defer close(out)
		if f.root == nil {
			return
		}
		d := newDispatcher(f.chart.tokens, treeBuilder{})
		for _, v := range d.alternatives(f.root) {
			select {
			case out <- v.(*Tree):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// InternalNodeCount returns the number of distinct interned nodes reachable from the forest's
// root, i.e. the size of the shared-packed representation itself — useful for asserting that
// sharing actually happened, per §9's supplemented internal_node_count.
func (f *ParseForest) InternalNodeCount() int {
	if f.root == nil {
		return 0
	}
	return internalNodeCount(f.root, map[*item]bool{})
}

func firstN(vals []interface{}, n int) []interface{} {
	if len(vals) < n {
		n = len(vals)
	}
	return vals[:n]
}
