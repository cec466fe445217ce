package ctf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nihei9/ctfparse/approx"
	"github.com/nihei9/ctfparse/automaton"
	"github.com/nihei9/ctfparse/pda"
	"github.com/nihei9/ctfparse/pmcfg"
	"github.com/nihei9/ctfparse/pushdown"
	"github.com/nihei9/ctfparse/weight"
)

type pdaStack = pushdown.Stack[automaton.Code]

func abCFG() pmcfg.CFG[string, weight.LogProb] {
	return pmcfg.CFG[string, weight.LogProb]{
		Initial: "S",
		Rules: []pmcfg.CFGRule[string, weight.LogProb]{
			{
				Head:        "S",
				Composition: []pmcfg.Letter[string]{pmcfg.Val[string]("a"), pmcfg.Lab[string]("S"), pmcfg.Val[string]("b")},
				Weight:      weight.MustLogProb(0.4),
			},
			{
				Head:        "S",
				Composition: nil,
				Weight:      weight.MustLogProb(0.6),
			},
		},
	}
}

func codesOf(terminals *automaton.Interner[string], tokens ...string) []automaton.Code {
	out := make([]automaton.Code, len(tokens))
	for i, tok := range tokens {
		c, _ := terminals.Find(tok)
		out[i] = c
	}
	return out
}

// TestLevelRefinesTopKRunBackToExact builds the exact a^n b^n automaton,
// relabels it under identity, then bounds the relabelled copy with
// TopK(4). A run accepted on the bounded automaton for "a a b b" must
// refine, via the identity dictionary, back to a run the exact
// automaton itself accepts.
func TestLevelRefinesTopKRunBackToExact(t *testing.T) {
	one := weight.OneLogProb()
	fine := pda.FromCFG(abCFG(), one)
	relabeled, dictRelabel := approx.IdentityRelabel(fine, one)
	topk, dictTopK := approx.TopK(relabeled, 4)

	word := codesOf(topk.Terminals(), "a", "a", "b", "b")
	item, ok := topk.Recognise(one, word).Next()
	require.True(t, ok, "a a b b must be accepted on the top-k automaton")

	toRelabeled := Level[pdaStack, pda.Instruction, pda.Instruction, weight.LogProb]{Fine: relabeled, Dict: dictTopK, One: one}
	relabeledRuns := toRelabeled.Refine(item.Run)
	require.NotEmpty(t, relabeledRuns, "the top-k run must replay against the relabelled automaton")

	toExact := Level[pdaStack, pda.Instruction, pda.Instruction, weight.LogProb]{Fine: fine, Dict: dictRelabel, One: one}
	var exactRuns []automaton.Run[pda.Instruction, weight.LogProb]
	for _, r := range relabeledRuns {
		exactRuns = append(exactRuns, toExact.Refine(r)...)
	}
	require.NotEmpty(t, exactRuns, "the relabelled run must replay against the exact automaton")
	assert.Equal(t, 7, len(exactRuns[0]), "the refined run holds one transition per step it replays: two S -> a S b expansions, one S -> epsilon and four shifts")
}

// TestLevelRefineRejectsDictionaryEntriesThatDoNotReplay forces a
// Dictionary entry that cannot actually apply to the fine automaton
// (a stale instruction from an unrelated transition) and checks that
// Refine drops it instead of producing a bogus run.
func TestLevelRefineRejectsDictionaryEntriesThatDoNotReplay(t *testing.T) {
	one := weight.OneLogProb()
	fine := pda.FromCFG(abCFG(), one)
	_, dict := approx.IdentityRelabel(fine, one)

	bogusCoarse := pda.Instruction{CurrentVal: nil, NewVal: nil}
	dict.Add(bogusCoarse, pda.Instruction{CurrentVal: []automaton.Code{automaton.Code(9999)}, NewVal: nil})

	level := Level[pdaStack, pda.Instruction, pda.Instruction, weight.LogProb]{Fine: fine, Dict: dict, One: one}
	coarseRun := automaton.Run[pda.Instruction, weight.LogProb]{{Word: nil, Weight: one, Instruction: bogusCoarse}}

	refined := level.Refine(coarseRun)
	assert.Empty(t, refined, "a dictionary entry that cannot apply must not produce a refined run")
}
