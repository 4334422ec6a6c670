package earley

// Tree is the default value a Builder produces when the caller doesn't supply one of their own:
// one node per rule instance, with Children in RHS order. A skipped optional contributes a nil
// Children entry; a star/plus symbol contributes a single []interface{} entry holding its repeats.
type Tree struct {
	Rule     *Rule
	Children []interface{}
}

// treeBuilder is the Builder behind Parse's default traversal (ParseForest.Single/All/Iter).
type treeBuilder struct{}

func (treeBuilder) StartRule(rule *Rule) interface{} {
	return &Tree{Rule: rule}
}

func (treeBuilder) EndRule(rule *Rule, acc interface{}) interface{} {
	return acc
}

func (treeBuilder) Terminal(term *Terminal, token interface{}) interface{} {
	return token
}

func (treeBuilder) SkipOptional(sym Symbol) interface{} {
	return nil
}

func (treeBuilder) BeginMultiple(sym Symbol) interface{} {
	return []interface{}{}
}

func (treeBuilder) EndMultiple(sym Symbol, acc interface{}) interface{} {
	return acc
}

func (treeBuilder) Extend(acc interface{}, value interface{}) interface{} {
	switch a := acc.(type) {
	case *Tree:
		a.Children = append(a.Children, value)
		return a
	case []interface{}:
		return append(a, value)
	default:
		panic(Errorf("internal error: Extend called with unexpected accumulator %T", acc))
	}
}

func (treeBuilder) Merge(a, b interface{}) interface{} {
	panic(Errorf("internal error: treeBuilder.Merge should never be called; ParseForest.Single checks for ambiguity up front"))
}

// Unparse flattens tree back into the sequence of tokens it was built from, in left-to-right
// order, recursing into nested *Tree and []interface{} children; skipped optionals contribute
// nothing. It is the
// inverse of the default Builder, useful for round-tripping or for callers that only need the
// leaves (e.g. to re-render the matched input).
func Unparse(tree *Tree) []interface{} {
	var out []interface{}
	var walk func(v interface{})
	walk = func(v interface{}) {
		switch x := v.(type) {
		case *Tree:
			for _, c := range x.Children {
				walk(c)
			}
		case []interface{}:
			for _, c := range x {
				walk(c)
			}
		case nil:
			// a skipped optional contributes nothing to the flattened output.
		default:
			out = append(out, x)
		}
	}
	walk(tree)
	return out
}
