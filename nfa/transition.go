package nfa

import "github.com/nihei9/ctfparse/automaton"

// Transition is the state-only instruction a storage-less NFA applies:
// move from CurrentVal to NewVal with no stack or tree underneath the
// move, and no way to fail except a key mismatch.
type Transition struct {
	CurrentVal automaton.Code
	NewVal     automaton.Code
}

func (t Transition) Key() automaton.Code { return t.CurrentVal }
