package approx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nihei9/ctfparse/automaton"
	"github.com/nihei9/ctfparse/equiv"
	"github.com/nihei9/ctfparse/pda"
	"github.com/nihei9/ctfparse/pmcfg"
	"github.com/nihei9/ctfparse/pushdown"
	"github.com/nihei9/ctfparse/tsa"
	"github.com/nihei9/ctfparse/weight"
)

// acyclicCFG is S -> a A b, A -> c: every nonterminal referenced from
// exactly one place, so tsa.FromPMCFG's construction is exact for it.
func acyclicCFG() pmcfg.CFG[string, weight.LogProb] {
	return pmcfg.CFG[string, weight.LogProb]{
		Initial: "S",
		Rules: []pmcfg.CFGRule[string, weight.LogProb]{
			{
				Head: "S",
				Composition: []pmcfg.Letter[string]{
					pmcfg.Val[string]("a"),
					pmcfg.Lab[string]("A"),
					pmcfg.Val[string]("b"),
				},
				Weight: weight.MustLogProb(0.7),
			},
			{
				Head:        "A",
				Composition: []pmcfg.Letter[string]{pmcfg.Val[string]("c")},
				Weight:      weight.MustLogProb(1.0),
			},
		},
	}
}

// abCFG is scenario 1's trivial CFG: S -> a S b | epsilon.
func abCFG() pmcfg.CFG[string, weight.LogProb] {
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

func codesOf(terminals *automaton.Interner[string], tokens ...string) []automaton.Code {
	out := make([]automaton.Code, len(tokens))
	for i, tok := range tokens {
		c, _ := terminals.Find(tok)
		out[i] = c
	}
	return out
}

func TestTTSIsSoundOverApproximation(t *testing.T) {
	one := weight.OneLogProb()
	fine, err := tsa.FromPMCFG(pmcfg.FromCFG(acyclicCFG()), one)
	require.NoError(t, err)
	coarse, _ := TTS(fine, one)

	word := codesOf(fine.Terminals(), "a", "c", "b")
	_, fineAccepts := fine.Recognise(one, word).Next()
	require.True(t, fineAccepts, "the fine automaton must accept a c b")

	coarseWord := codesOf(coarse.Terminals(), "a", "c", "b")
	_, coarseAccepts := coarse.Recognise(one, coarseWord).Next()
	assert.True(t, coarseAccepts, "TTS must preserve acceptance of every fine-accepted string")
}

func TestIdentityRelabelAcceptsExactlyWhatFineAccepts(t *testing.T) {
	one := weight.OneLogProb()
	fine := pda.FromCFG(abCFG(), one)
	coarse, dict := IdentityRelabel(fine, one)

	assert.True(t, dict.IsFunctional(), "identity relabelling never merges two distinct fine instructions")

	for _, word := range [][]string{{"a", "b"}, {"a", "a", "b", "b"}, {"a", "b", "b"}} {
		fineWord := codesOf(fine.Terminals(), word...)
		coarseWord := codesOf(coarse.Terminals(), word...)
		_, fineAccepts := fine.Recognise(one, fineWord).Next()
		_, coarseAccepts := coarse.Recognise(one, coarseWord).Next()
		assert.Equal(t, fineAccepts, coarseAccepts, "identity relabelling must change nothing for %v", word)
	}
}

func TestTopKOverAcceptsPastTheBound(t *testing.T) {
	one := weight.OneLogProb()
	fine := pda.FromCFG(abCFG(), one)
	coarse, dict := TopK(fine, 2)

	assert.True(t, dict.IsFunctional(), "TopK only ever caps a transition's own Limit, never merges two")

	// "a" alone is not in {a^n b^n}: the fine automaton must still owe a
	// closing "b" once the lone "a" is shifted, and correctly rejects it.
	word := codesOf(fine.Terminals(), "a")
	_, fineAccepts := fine.Recognise(one, word).Next()
	assert.False(t, fineAccepts, "a alone is unbalanced and must be rejected by the exact automaton")

	// Bounding the stack at depth 2 discards the bottom marker (and the
	// pending "b" obligation) after the first expansion, so once the
	// lone "a" is shifted the truncated stack coincidentally has depth
	// 1 again and IsBottom is satisfied early: TopK over-accepts.
	coarseWord := codesOf(coarse.Terminals(), "a")
	_, coarseAccepts := coarse.Recognise(one, coarseWord).Next()
	assert.True(t, coarseAccepts, "TopK(2) must over-accept the unbalanced string a once its bottom marker is truncated away")
}

func TestNFAProjectRejectsNonTrivialPushDownInstructions(t *testing.T) {
	one := weight.OneLogProb()
	fine := pda.FromCFG(abCFG(), one)

	_, _, err := NFAProject(fine)
	require.Error(t, err, "FromCFG's Replace transitions push a whole right-hand side, which an NFA cannot represent")
}

func TestNFAProjectAcceptsOnlyAtTheBottomMarker(t *testing.T) {
	one := weight.OneLogProb()

	symbols := automaton.NewInterner[string]()
	terminals := automaton.NewInterner[string]()
	x := symbols.Intern("x")
	y := symbols.Intern("y")
	tCode := terminals.Intern("t")
	uCode := terminals.Intern("u")

	// x is the bottom marker (fine's initial stack floor): x -t-> y
	// leaves the bottom for an intermediate state, and y -u-> x returns
	// to it.
	transitions := map[automaton.Code][]automaton.Transition[pda.Instruction, weight.LogProb]{
		x: {{
			Word:        []automaton.Code{tCode},
			Weight:      one,
			Instruction: pda.Instruction{CurrentVal: []automaton.Code{x}, NewVal: []automaton.Code{y}},
		}},
		y: {{
			Word:        []automaton.Code{uCode},
			Weight:      one,
			Instruction: pda.Instruction{CurrentVal: []automaton.Code{y}, NewVal: []automaton.Code{x}},
		}},
	}

	trivial := pda.NewAutomaton[string, string, weight.LogProb](symbols, terminals, pushdown.New(x), transitions)

	proj, _, err := NFAProject(trivial)
	require.NoError(t, err)

	_, acceptsBack := proj.Recognise(one, []automaton.Code{tCode, uCode}).Next()
	assert.True(t, acceptsBack, "t then u returns to the bottom marker x and must accept")

	_, acceptsMidway := proj.Recognise(one, []automaton.Code{tCode}).Next()
	assert.False(t, acceptsMidway, "t alone leaves the automaton at y, not the bottom marker, and must not accept")
}

func TestEquivIdentityChangesNothing(t *testing.T) {
	rel := equiv.Identity[string]()
	assert.Equal(t, "a", rel.Project("a"))
	assert.True(t, rel.Equivalent("a", "a"))
	assert.False(t, rel.Equivalent("a", "b"))
}
