package pda

import "github.com/nihei9/ctfparse/automaton"

// Instruction is a push-down instruction: pop the top len(CurrentVal)
// symbols (which must equal CurrentVal exactly) and push NewVal in
// their place, top-first. Limit 0 means a plain Replace; Limit > 0
// makes it a ReplaceK, truncating the result to at most Limit symbols
// (the TopK approximation strategy uses this).
type Instruction struct {
	CurrentVal []automaton.Code
	NewVal     []automaton.Code
	Limit      int
}

// Key returns the symbol a transition carrying this instruction is
// indexed by: the top of the matched segment.
func (i Instruction) Key() automaton.Code {
	return i.CurrentVal[0]
}
