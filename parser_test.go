package earley_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	earley "github.com/BorisTheBrave/axaxaxas"
)

func tok(s string) func(interface{}) bool {
	return func(v interface{}) bool { return v == s }
}

func digitsPlusGrammar() (*earley.RuleSet, string) {
	rules := earley.NewRuleSet()
	digit := func(v interface{}) bool {
		s, ok := v.(string)
		return ok && len(s) == 1 && s[0] >= '0' && s[0] <= '9'
	}
	digitsPlus := earley.MustTerminal("digit", digit, earley.Plus())
	rules.Add(earley.NewRule("num", []earley.Symbol{digitsPlus}))
	return rules, "num"
}

func arithmeticGrammar() (*earley.RuleSet, string) {
	rules := earley.NewRuleSet()
	digit := func(v interface{}) bool {
		s, ok := v.(string)
		return ok && len(s) == 1 && s[0] >= '0' && s[0] <= '9'
	}
	digits := earley.MustTerminal("digit", digit, earley.Plus())
	plus := earley.MustTerminal("plus", tok("+"))

	rules.Add(earley.NewRule("num", []earley.Symbol{digits}))
	rules.Add(earley.NewRule("sum", []earley.Symbol{earley.MustNonTerminal("sum"), plus, earley.MustNonTerminal("num")}))
	rules.Add(earley.NewRule("sum", []earley.Symbol{earley.MustNonTerminal("num")}))
	return rules, "sum"
}

func TestParseAcceptsMatchingInput(t *testing.T) {
	rules, start := digitsPlusGrammar()
	forest, err := earley.Parse(rules, start, []interface{}{"1", "2", "3"})
	require.NoError(t, err)
	require.NotNil(t, forest)

	tree, err := forest.Single()
	require.NoError(t, err)
	require.NotNil(t, tree)

	assert.Equal(t, []interface{}{"1", "2", "3"}, earley.Unparse(tree))
}

func TestParseAcceptsNestedSum(t *testing.T) {
	rules, start := arithmeticGrammar()
	tokens := []interface{}{"1", "+", "2", "+", "3"}
	forest, err := earley.Parse(rules, start, tokens)
	require.NoError(t, err)

	tree, err := forest.Single()
	require.NoError(t, err)
	assert.Equal(t, tokens, earley.Unparse(tree))
}

func TestParseRejectsUnmatchedInput(t *testing.T) {
	rules, start := digitsPlusGrammar()
	_, err := earley.Parse(rules, start, []interface{}{"1", "x", "3"})
	require.Error(t, err)

	var npe *earley.NoParseError
	require.ErrorAs(t, err, &npe)
	assert.Equal(t, "x", npe.Encountered)
}

func TestParseWithAllowEmptySucceedsOnUndefinedStart(t *testing.T) {
	rules := earley.NewRuleSet()
	forest, err := earley.Parse(rules, "missing", nil, earley.WithAllowEmpty(true))
	require.NoError(t, err)
	require.NotNil(t, forest)
	assert.Equal(t, 0, forest.Count())
}

func TestParseWithoutAllowEmptyFailsOnUndefinedStart(t *testing.T) {
	rules := earley.NewRuleSet()
	_, err := earley.Parse(rules, "missing", nil)
	require.Error(t, err)
	var npe *earley.NoParseError
	assert.ErrorAs(t, err, &npe)
}

func TestParseOptionalSymbolMatchesZeroOrOneTimes(t *testing.T) {
	rules := earley.NewRuleSet()
	x := earley.MustTerminal("x", tok("x"), earley.Optional())
	rules.Add(earley.NewRule("start", []earley.Symbol{x}))

	forestEmpty, err := earley.Parse(rules, "start", []interface{}{})
	require.NoError(t, err)
	treeEmpty, err := forestEmpty.Single()
	require.NoError(t, err)
	assert.Empty(t, earley.Unparse(treeEmpty))

	forestOne, err := earley.Parse(rules, "start", []interface{}{"x"})
	require.NoError(t, err)
	treeOne, err := forestOne.Single()
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"x"}, earley.Unparse(treeOne))
}

func TestParseStarSymbolMatchesZeroOrMoreTimes(t *testing.T) {
	rules := earley.NewRuleSet()
	x := earley.MustTerminal("x", tok("x"), earley.Star())
	rules.Add(earley.NewRule("start", []earley.Symbol{x}))

	forest, err := earley.Parse(rules, "start", []interface{}{"x", "x", "x", "x"})
	require.NoError(t, err)
	tree, err := forest.Single()
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"x", "x", "x", "x"}, earley.Unparse(tree))
}

func ambiguousABGrammar() *earley.RuleSet {
	rules := earley.NewRuleSet()
	x := earley.MustTerminal("x", tok("x"))
	rules.Add(earley.NewRule("start", []earley.Symbol{earley.MustNonTerminal("a"), earley.MustNonTerminal("b")}))
	rules.Add(earley.NewRule("a", []earley.Symbol{x}))
	rules.Add(earley.NewRule("a", []earley.Symbol{}))
	rules.Add(earley.NewRule("b", []earley.Symbol{x}))
	rules.Add(earley.NewRule("b", []earley.Symbol{}))
	return rules
}

func TestParseCountReportsAmbiguity(t *testing.T) {
	forest, err := earley.Parse(ambiguousABGrammar(), "start", []interface{}{"x"})
	require.NoError(t, err)
	assert.Equal(t, 2, forest.Count())
}

func TestParseForestAllEnumeratesEveryTree(t *testing.T) {
	forest, err := earley.Parse(ambiguousABGrammar(), "start", []interface{}{"x"})
	require.NoError(t, err)

	trees, err := forest.All()
	require.NoError(t, err)
	assert.Len(t, trees, forest.Count())
}

func TestParseForestIterStopsOnCancellation(t *testing.T) {
	forest, err := earley.Parse(ambiguousABGrammar(), "start", []interface{}{"x"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	count := 0
	for range forest.Iter(ctx) {
		count++
		cancel()
	}
	assert.GreaterOrEqual(t, count, 1)
}

func TestParseGreedyStarPrefersLongestMatch(t *testing.T) {
	rules := earley.NewRuleSet()
	x := earley.MustTerminal("x", tok("x"), earley.Star(), earley.Greedy())
	y := earley.MustTerminal("x", tok("x"), earley.Optional())
	rules.Add(earley.NewRule("start", []earley.Symbol{x, y}))

	forest, err := earley.Parse(rules, "start", []interface{}{"x", "x", "x"})
	require.NoError(t, err)
	tree, err := forest.Single()
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"x", "x", "x"}, earley.Unparse(tree))
}

func TestParseLazyStarPrefersShortestMatch(t *testing.T) {
	rules := earley.NewRuleSet()
	x := earley.MustTerminal("x", tok("x"), earley.Star(), earley.Lazy())
	y := earley.MustTerminal("x", tok("x"), earley.Optional())
	rules.Add(earley.NewRule("start", []earley.Symbol{x, y}))

	forest, err := earley.Parse(rules, "start", []interface{}{"x", "x", "x"})
	require.NoError(t, err)
	assert.Equal(t, 1, forest.Count())
}

func TestParsePenaltyPrefersCheaperDerivation(t *testing.T) {
	rules := earley.NewRuleSet()
	x := earley.MustTerminal("x", tok("x"))
	rules.Add(earley.NewRule("start", []earley.Symbol{earley.MustNonTerminal("a")}))
	rules.Add(earley.NewRule("a", []earley.Symbol{x}, 10))
	rules.Add(earley.NewRule("a", []earley.Symbol{x}, 0))

	forest, err := earley.Parse(rules, "start", []interface{}{"x"})
	require.NoError(t, err)
	tree, err := forest.Single()
	require.NoError(t, err)
	require.NotNil(t, tree)
}

type recordingLogger struct {
	record *[]string
}

func (r recordingLogger) Debugf(format string, args ...interface{}) {
	*r.record = append(*r.record, format)
}

func TestParseWithLoggerReceivesDebugMessages(t *testing.T) {
	rules, start := digitsPlusGrammar()
	var messages []string
	logger := recordingLogger{record: &messages}

	_, err := earley.Parse(rules, start, []interface{}{"1"}, earley.WithLogger(logger))
	require.NoError(t, err)
	assert.NotEmpty(t, messages)
}
