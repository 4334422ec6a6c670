package ebnfgrammar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/ebnf"

	earley "github.com/BorisTheBrave/axaxaxas"
	"github.com/BorisTheBrave/axaxaxas/ebnfgrammar"
)

func TestEBNFProducesOneProductionPerHead(t *testing.T) {
	rules := earley.NewRuleSet()
	digit := earley.MustTerminal("digit", "1", earley.Plus())
	rules.Add(earley.NewRule("num", []earley.Symbol{digit}))
	rules.Add(earley.NewRule("sum", []earley.Symbol{earley.MustNonTerminal("num")}))

	g, err := ebnfgrammar.EBNF(rules)
	require.NoError(t, err)

	assert.Contains(t, g, "num")
	assert.Contains(t, g, "sum")
}

func TestEBNFRendersPlusAsSequenceOfBodyAndRepetition(t *testing.T) {
	rules := earley.NewRuleSet()
	digit := earley.MustTerminal("digit", "1", earley.Plus())
	rules.Add(earley.NewRule("num", []earley.Symbol{digit}))

	g, err := ebnfgrammar.EBNF(rules)
	require.NoError(t, err)

	seq, ok := g["num"].Expr.(ebnf.Sequence)
	require.True(t, ok)
	require.Len(t, seq, 2)
	_, ok = seq[1].(*ebnf.Repetition)
	assert.True(t, ok)
}

func TestEBNFErrorsOnUndefinedHead(t *testing.T) {
	rules := earley.NewRuleSet()
	rules.Add(earley.NewRule("start", []earley.Symbol{earley.MustNonTerminal("missing")}))

	_, err := ebnfgrammar.EBNF(rules)
	assert.Error(t, err)
}
