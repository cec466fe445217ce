package approx

import (
	"github.com/nihei9/ctfparse/automaton"
	"github.com/nihei9/ctfparse/pda"
	"github.com/nihei9/ctfparse/pushdown"
	"github.com/nihei9/ctfparse/tsa"
	"github.com/nihei9/ctfparse/weight"
)

// TTS approximates a tree-stack automaton by a push-down one. Up and
// Push both become a single Replace that pushes the target value on top
// of the caller value; Down becomes a Replace that pops the current
// value together with whatever caller value could legally sit beneath
// it and pushes the resume value.
//
// The caller value Down expects is recovered from a static reverse
// index (every value a Push or Up could have produced, keyed by the
// value produced) rather than from the discarded tree structure, so a
// Down transition's pop may match a caller the real run never pushed
// this value from. TTS is therefore sound — L(fine) subseteq L(coarse)
// — but not exact; it is the approximation strategy, not a recognizer,
// so over-acceptance here is by design rather than a defect.
func TTS[A comparable, T comparable, W weight.Weight[W]](fine *tsa.Automaton[A, T, W], one W) (*pda.Automaton[A, T, W], *Dictionary[tsa.Instruction]) {
	reverse := map[automaton.Code][]automaton.Code{}
	for _, ts := range fine.AllTransitions() {
		for _, t := range ts {
			if t.Instruction.IsPush() || t.Instruction.IsUp() {
				pushed := t.Instruction.Val()
				reverse[pushed] = append(reverse[pushed], t.Instruction.CurrentVal())
			}
		}
	}

	transitions := map[automaton.Code][]automaton.Transition[pda.Instruction, W]{}
	dict := NewDictionary[tsa.Instruction]()

	add := func(coarse pda.Instruction, word []automaton.Code, w W, fineInstr tsa.Instruction) {
		key := coarse.CurrentVal[0]
		transitions[key] = append(transitions[key], automaton.Transition[pda.Instruction, W]{
			Word:        word,
			Weight:      w,
			Instruction: coarse,
		})
		dict.Add(coarse, fineInstr)
	}

	for _, ts := range fine.AllTransitions() {
		for _, t := range ts {
			instr := t.Instruction
			switch {
			case instr.IsPush(), instr.IsUp():
				coarse := pda.Instruction{
					CurrentVal: []automaton.Code{instr.CurrentVal()},
					NewVal:     []automaton.Code{instr.Val(), instr.CurrentVal()},
				}
				add(coarse, t.Word, t.Weight, instr)
			case instr.IsDown():
				for _, caller := range reverse[instr.CurrentVal()] {
					coarse := pda.Instruction{
						CurrentVal: []automaton.Code{instr.CurrentVal(), caller},
						NewVal:     []automaton.Code{instr.Val()},
					}
					add(coarse, t.Word, t.Weight, instr)
				}
			}
		}
	}

	root := fine.Initial().CurrentSymbol()
	initial := pushdown.New(root)

	return pda.NewAutomaton[A, T, W](fine.Interned(), fine.Terminals(), initial, transitions), dict
}
