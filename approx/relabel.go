package approx

import (
	"github.com/nihei9/ctfparse/automaton"
	"github.com/nihei9/ctfparse/equiv"
	"github.com/nihei9/ctfparse/pda"
	"github.com/nihei9/ctfparse/pushdown"
	"github.com/nihei9/ctfparse/weight"
)

// Relabel approximates a push-down automaton by quotienting its symbol
// alphabet under rel: every stack symbol is projected to its
// equivalence class representative before any transition is built, so
// two fine transitions that only differ by equivalent symbols collapse
// into one coarse transition.
// Terminals are left untouched; only the storage alphabet is
// quotiented. Relabel is sound by construction: any fine run survives
// because its symbols still map to the same (or a collapsed) coarse
// transition, so it can only ever gain acceptances, never lose them.
func Relabel[A comparable, T comparable, W weight.Weight[W]](fine *pda.Automaton[A, T, W], rel equiv.Relation[A], one W) (*pda.Automaton[A, T, W], *Dictionary[pda.Instruction]) {
	coarseSymbols := automaton.NewInterner[A]()
	fineIn := fine.Interned()

	project := func(c automaton.Code) automaton.Code {
		return coarseSymbols.Intern(rel.Project(fineIn.Lookup(c)))
	}
	projectAll := func(cs []automaton.Code) []automaton.Code {
		out := make([]automaton.Code, len(cs))
		for i, c := range cs {
			out[i] = project(c)
		}
		return out
	}

	transitions := map[automaton.Code][]automaton.Transition[pda.Instruction, W]{}
	dict := NewDictionary[pda.Instruction]()

	for _, ts := range fine.AllTransitions() {
		for _, t := range ts {
			coarse := pda.Instruction{
				CurrentVal: projectAll(t.Instruction.CurrentVal),
				NewVal:     projectAll(t.Instruction.NewVal),
				Limit:      t.Instruction.Limit,
			}
			key := coarse.CurrentVal[0]
			transitions[key] = append(transitions[key], automaton.Transition[pda.Instruction, W]{
				Word:        t.Word,
				Weight:      t.Weight,
				Instruction: coarse,
			})
			dict.Add(coarse, t.Instruction)
		}
	}

	initial := pushdown.Map(fine.Initial(), func(c automaton.Code) automaton.Code { return project(c) })

	return pda.NewAutomaton[A, T, W](coarseSymbols, fine.Terminals(), initial, transitions), dict
}

// IdentityRelabel runs Relabel under the trivial relation, collapsing
// nothing. It exists so a caller whose symbol alphabet A isn't
// nameable at the call site (e.g. the unexported label type
// tsa.FromPMCFG builds) can still exercise Relabel: A is inferred from
// fine rather than written out explicitly.
func IdentityRelabel[A comparable, T comparable, W weight.Weight[W]](fine *pda.Automaton[A, T, W], one W) (*pda.Automaton[A, T, W], *Dictionary[pda.Instruction]) {
	return Relabel(fine, equiv.Identity[A](), one)
}
