package approx

import (
	"github.com/nihei9/ctfparse/automaton"
	"github.com/nihei9/ctfparse/pda"
	"github.com/nihei9/ctfparse/weight"
)

// TopK approximates a push-down automaton by bounding its stack depth
// to at most k: every transition's Replace becomes a ReplaceK capped at
// k, discarding whatever sits below the k-th symbol instead of tracking
// it. Discarding stack content can only make more runs legal, since a
// transition that used to require an exact match against
// truncated-away symbols can no longer be blocked by them; TopK is
// therefore sound in the same superset sense as the other strategies.
//
// Every fine transition survives unchanged but for its Limit, so the
// back-translation dictionary here is functional: each coarse
// instruction maps to exactly the one fine instruction it replaced.
func TopK[A comparable, T comparable, W weight.Weight[W]](fine *pda.Automaton[A, T, W], k int) (*pda.Automaton[A, T, W], *Dictionary[pda.Instruction]) {
	transitions := map[automaton.Code][]automaton.Transition[pda.Instruction, W]{}
	dict := NewDictionary[pda.Instruction]()

	for key, ts := range fine.AllTransitions() {
		for _, t := range ts {
			coarse := pda.Instruction{
				CurrentVal: t.Instruction.CurrentVal,
				NewVal:     t.Instruction.NewVal,
				Limit:      k,
			}
			transitions[key] = append(transitions[key], automaton.Transition[pda.Instruction, W]{
				Word:        t.Word,
				Weight:      t.Weight,
				Instruction: coarse,
			})
			dict.Add(coarse, t.Instruction)
		}
	}

	return pda.NewAutomaton[A, T, W](fine.Interned(), fine.Terminals(), fine.Initial(), transitions), dict
}
