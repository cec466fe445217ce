package automaton

import "github.com/nihei9/ctfparse/weight"

// Automaton is the capability set any concrete automaton must satisfy
// (tsa.Automaton, pda.Automaton, and the storage-less nfa.NFA wrapped to
// this shape) to drive polymorphic recognition over its own storage
// type: an initial storage, a way to read the key symbol a
// configuration's storage currently exposes, a way to apply a single
// instruction to storage, acceptance, and a pre-indexed transition
// lookup keyed by that same key symbol.
type Automaton[S any, I Keyed, W weight.Weight[W]] interface {
	Initial() S
	ExtractKey(s S) Code
	IsAccepting(cfg Configuration[S, W]) bool
	Apply(s S, instr I) (S, bool)
	TransitionsByKey(key Code) []Transition[I, W]
}
