package earley_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	earley "github.com/BorisTheBrave/axaxaxas"
)

func TestNewTerminalRejectsGreedyWithoutQuantifier(t *testing.T) {
	_, err := earley.NewTerminal("x", "x", earley.Greedy())
	require.Error(t, err)
}

func TestNewTerminalRejectsGreedyAndLazy(t *testing.T) {
	_, err := earley.NewTerminal("x", "x", earley.Star(), earley.Greedy(), earley.Lazy())
	require.Error(t, err)
}

func TestNewNonTerminalRejectsPreferEarlyAndLate(t *testing.T) {
	_, err := earley.NewNonTerminal("x", earley.PreferEarly(), earley.PreferLate())
	require.Error(t, err)
}

func TestTerminalMatchesByEquality(t *testing.T) {
	term := earley.MustTerminal("plus", "+")
	assert.True(t, term.Match("+"))
	assert.False(t, term.Match("-"))
}

func TestTerminalMatchesByPredicate(t *testing.T) {
	isDigit := func(tok interface{}) bool {
		s, ok := tok.(string)
		return ok && len(s) == 1 && s[0] >= '0' && s[0] <= '9'
	}
	term := earley.MustTerminal("digit", isDigit)
	assert.True(t, term.Match("7"))
	assert.False(t, term.Match("x"))
}

func TestSymbolStringIncludesSpecifier(t *testing.T) {
	star := earley.MustTerminal("x", "x", earley.Star())
	assert.Contains(t, star.String(), "*")

	plusLazy := earley.MustNonTerminal("y", earley.Plus(), earley.Lazy())
	assert.Contains(t, plusLazy.String(), "+")
}
