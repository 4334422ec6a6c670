package earley_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	earley "github.com/BorisTheBrave/axaxaxas"
)

func TestUnparseRoundTripsThroughStarAndOptional(t *testing.T) {
	rules := earley.NewRuleSet()
	x := earley.MustTerminal("x", tok("x"), earley.Star())
	y := earley.MustTerminal("y", tok("y"), earley.Optional())
	rules.Add(earley.NewRule("start", []earley.Symbol{x, y}))

	tokens := []interface{}{"x", "x", "y"}
	forest, err := earley.Parse(rules, "start", tokens)
	require.NoError(t, err)
	tree, err := forest.Single()
	require.NoError(t, err)

	assert.Equal(t, tokens, earley.Unparse(tree))
}

func TestTreeStringRendersNestedStructure(t *testing.T) {
	rules, start := digitsPlusGrammar()
	forest, err := earley.Parse(rules, start, []interface{}{"1", "2"})
	require.NoError(t, err)
	tree, err := forest.Single()
	require.NoError(t, err)

	s := earley.TreeString(tree)
	assert.Contains(t, s, "<num>")
}

func TestTraceWriterEmitsOneLinePerDebugfCall(t *testing.T) {
	var buf bytes.Buffer
	logger := earley.TraceWriter(&buf)

	rules, start := digitsPlusGrammar()
	_, err := earley.Parse(rules, start, []interface{}{"7"}, earley.WithLogger(logger))
	require.NoError(t, err)

	assert.NotEmpty(t, buf.String())
}

func TestReprDoesNotPanicOnTree(t *testing.T) {
	rules, start := digitsPlusGrammar()
	forest, err := earley.Parse(rules, start, []interface{}{"9"})
	require.NoError(t, err)
	tree, err := forest.Single()
	require.NoError(t, err)

	assert.NotEmpty(t, earley.Repr(tree))
}

func TestVisitRulesWalksEveryReachableHead(t *testing.T) {
	rules, start := arithmeticGrammar()
	seen := map[string]int{}
	earley.VisitRules(rules, start, func(rule *earley.Rule) {
		seen[rule.Head]++
	})

	assert.Contains(t, seen, "sum")
	assert.Contains(t, seen, "num")
}
