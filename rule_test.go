package earley_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	earley "github.com/BorisTheBrave/axaxaxas"
)

func TestRuleSetAddAssignsInsertionOrderPriority(t *testing.T) {
	rules := earley.NewRuleSet()
	num := earley.MustTerminal("num", "1")
	first := rules.Add(earley.NewRule("digit", []earley.Symbol{num}))
	second := rules.Add(earley.NewRule("digit", []earley.Symbol{num}, 5))

	assert.Equal(t, []*earley.Rule{first, second}, rules.RulesFor("digit"))
	assert.Equal(t, 0, first.Penalty)
	assert.Equal(t, 5, second.Penalty)
}

func TestRuleSetHeadsPreservesFirstInsertionOrder(t *testing.T) {
	rules := earley.NewRuleSet()
	num := earley.MustTerminal("num", "1")
	rules.Add(earley.NewRule("b", []earley.Symbol{num}))
	rules.Add(earley.NewRule("a", []earley.Symbol{num}))
	rules.Add(earley.NewRule("b", []earley.Symbol{num}))

	assert.Equal(t, []string{"b", "a"}, rules.Heads())
}

func TestRuleSetMarkAnonymous(t *testing.T) {
	rules := earley.NewRuleSet()
	rules.MarkAnonymous("_helper")

	assert.True(t, rules.IsAnonymous("_helper"))
	assert.False(t, rules.IsAnonymous("visible"))
}

func TestRuleStringIncludesPenalty(t *testing.T) {
	num := earley.MustTerminal("num", "1")
	rule := earley.NewRule("digit", []earley.Symbol{num}, 3)

	assert.Contains(t, rule.String(), "penalty=3")
	assert.Contains(t, rule.String(), "<digit>")
}
