package approx

import (
	"fmt"

	"github.com/nihei9/ctfparse/automaton"
	"github.com/nihei9/ctfparse/ctferr"
	"github.com/nihei9/ctfparse/nfa"
	"github.com/nihei9/ctfparse/pda"
	"github.com/nihei9/ctfparse/weight"
)

// NFAProject approximates a push-down automaton by a storage-less NFA.
// It only succeeds when every transition is "trivial": it matches
// exactly one symbol on top of the stack and replaces it with exactly
// one symbol, never pushing or popping. Those transitions carry no
// information about what is underneath the matched symbol, so the
// stack can be discarded entirely and the automaton tracked by its top
// symbol alone.
//
// A push-down automaton built the ordinary way (pda.FromCFG's
// "replace the head with its whole right-hand side" transitions, or
// any terminal-shift that pops down to nothing) is not trivial in this
// sense, so this is where the coarse-to-fine ladder runs out: that is
// treated as a structural failure rather than a silent success,
// returned here as *ctferr.StructuralError so the caller assembling a
// ctf.Pipeline can leave this stage out.
func NFAProject[A comparable, T comparable, W weight.Weight[W]](fine *pda.Automaton[A, T, W]) (*nfa.NFA[A, T, W], *Dictionary[pda.Instruction], error) {
	for _, ts := range fine.AllTransitions() {
		for _, t := range ts {
			if len(t.Instruction.CurrentVal) != 1 || len(t.Instruction.NewVal) != 1 {
				return nil, nil, &ctferr.StructuralError{
					Stage: "approx.NFAProject",
					Cause: fmt.Errorf("non-trivial push-down instruction %+v cannot be represented without a stack", t.Instruction),
				}
			}
		}
	}

	transitions := map[automaton.Code][]automaton.Transition[nfa.Transition, W]{}
	dict := NewDictionary[pda.Instruction]()

	for key, ts := range fine.AllTransitions() {
		for _, t := range ts {
			coarse := nfa.Transition{
				CurrentVal: t.Instruction.CurrentVal[0],
				NewVal:     t.Instruction.NewVal[0],
			}
			transitions[key] = append(transitions[key], automaton.Transition[nfa.Transition, W]{
				Word:        t.Word,
				Weight:      t.Weight,
				Instruction: coarse,
			})
			dict.Add(coarse, t.Instruction)
		}
	}

	// A trivial instruction only ever rewrites the top of the stack
	// (len(CurrentVal)==len(NewVal)==1), so every position beneath it —
	// in particular the stack floor — is never touched by any reachable
	// transition. The symbol occupying that floor position in fine's
	// initial configuration therefore names the same symbol at every
	// reachable depth-1 configuration, which is exactly where
	// pda.Automaton.IsAccepting's "stack holds only the bottom marker"
	// test is satisfied. Only that one projected state is accepting; a
	// state reached mid-derivation, with some other symbol on top, is
	// not.
	init := fine.Initial()
	bottomCode := init.TopFirst()[init.Depth()-1]
	accepting := map[automaton.Code]bool{bottomCode: true}

	initial := fine.Initial().CurrentSymbol()
	return nfa.NewNFA[A, T, W](fine.Interned(), fine.Terminals(), initial, accepting, transitions), dict, nil
}
