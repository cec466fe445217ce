package pda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nihei9/ctfparse/automaton"
	"github.com/nihei9/ctfparse/pmcfg"
	"github.com/nihei9/ctfparse/weight"
)

// abGrammar is scenario 1's trivial CFG: S -> a S b | epsilon, weighted
// 0.4 for the recursive rule and 0.6 for the base case.
func abGrammar() pmcfg.CFG[string, weight.LogProb] {
	return pmcfg.CFG[string, weight.LogProb]{
		Initial: "S",
		Rules: []pmcfg.CFGRule[string, weight.LogProb]{
			{
				Head: "S",
				Composition: []pmcfg.Letter[string]{
					pmcfg.Val[string]("a"),
					pmcfg.Lab[string]("S"),
					pmcfg.Val[string]("b"),
				},
				Weight: weight.MustLogProb(0.4),
			},
			{
				Head:        "S",
				Composition: nil,
				Weight:      weight.MustLogProb(0.6),
			},
		},
	}
}

func wordCodes(a *Automaton[Symbol[string], string, weight.LogProb], tokens ...string) []automaton.Code {
	out := make([]automaton.Code, len(tokens))
	for i, tok := range tokens {
		c, _ := a.Terminals().Find(tok)
		out[i] = c
	}
	return out
}

func TestFromCFGRecognisesTrivialLanguage(t *testing.T) {
	a := FromCFG(abGrammar(), weight.OneLogProb())

	r := a.RecogniseBeam(weight.OneLogProb(), wordCodes(a, "a", "b"), 0)
	item, ok := r.Next()
	require.True(t, ok, "a b must be accepted")
	assert.True(t, item.Config.Storage.IsBottom())

	r2 := a.Recognise(weight.OneLogProb(), wordCodes(a, "a", "a", "b", "b"))
	_, ok = r2.Next()
	assert.True(t, ok, "a a b b must be accepted")

	r3 := a.Recognise(weight.OneLogProb(), wordCodes(a, "a", "b", "b"))
	_, ok = r3.Next()
	assert.False(t, ok, "a b b must be rejected")
}

func TestFromCFGRunWeightsMultiplyClauseWeights(t *testing.T) {
	a := FromCFG(abGrammar(), weight.OneLogProb())

	r := a.Recognise(weight.OneLogProb(), wordCodes(a, "a", "b"))
	item, ok := r.Next()
	require.True(t, ok)

	want := weight.MustLogProb(0.4).Mul(weight.MustLogProb(0.6))
	assert.True(t, item.Config.Weight.Equal(want))
}
