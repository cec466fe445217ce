// Package ctf drives coarse-to-fine recognition: run the best-first
// search on the coarsest automaton first, then refine each accepted run
// down through progressively finer automata, discarding any candidate
// whose back-translation does not actually replay to acceptance.
package ctf

import (
	"github.com/nihei9/ctfparse/approx"
	"github.com/nihei9/ctfparse/automaton"
	"github.com/nihei9/ctfparse/weight"
)

// Level is one coarse-to-fine refinement step: given a run accepted by
// the automaton one level coarser, find every way to replay it against
// the finer automaton Fine, expanding every one-to-many dictionary
// entry and dropping any refinement whose replay does not land in an
// accepting configuration. Sf is the fine automaton's storage type, If
// its instruction type, Ic the coarser instruction type above it.
type Level[Sf any, If automaton.Keyed, Ic automaton.Keyed, W weight.Weight[W]] struct {
	Fine automaton.Automaton[Sf, If, W]
	Dict *approx.Dictionary[If]
	One  W
}

// Refine returns every fine run consistent with coarseRun. A
// functional dictionary refines to at most one fine run; a one-to-many
// dictionary can yield several.
func (l Level[Sf, If, Ic, W]) Refine(coarseRun automaton.Run[Ic, W]) []automaton.Run[If, W] {
	results := []automaton.Run[If, W]{}
	l.expand(coarseRun, 0, l.Fine.Initial(), automaton.Run[If, W]{}, &results)
	return results
}

func (l Level[Sf, If, Ic, W]) expand(coarseRun automaton.Run[Ic, W], i int, storage Sf, acc automaton.Run[If, W], results *[]automaton.Run[If, W]) {
	if i == len(coarseRun) {
		cfg := automaton.Configuration[Sf, W]{Storage: storage, Weight: l.One}
		if l.Fine.IsAccepting(cfg) {
			*results = append(*results, acc)
		}
		return
	}

	step := coarseRun[i]
	for _, fineInstr := range l.Dict.Translate(step.Instruction) {
		next, ok := l.Fine.Apply(storage, fineInstr)
		if !ok {
			continue
		}
		l.expand(coarseRun, i+1, next, acc.Clone(automaton.Transition[If, W]{
			Word:        step.Word,
			Weight:      step.Weight,
			Instruction: fineInstr,
		}), results)
	}
}

// RefineErased adapts Refine to the type-erased Stage shape a Pipeline
// chains, asserting coarseRun to automaton.Run[Ic, W] and boxing each
// result run back into interface{}.
func (l Level[Sf, If, Ic, W]) RefineErased(coarseRun interface{}) []interface{} {
	run := coarseRun.(automaton.Run[Ic, W])
	refined := l.Refine(run)
	out := make([]interface{}, len(refined))
	for i, r := range refined {
		out[i] = r
	}
	return out
}
