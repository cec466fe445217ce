// Package nfa implements the storage-less automaton that sits at the
// coarsest rung of the coarse-to-fine ladder: recognition carries only a
// current state, with neither a push-down stack nor a tree-stack
// underneath it. approx.NFAProject produces one from a push-down
// automaton whose Replace instructions are all "trivial" (replace
// exactly one top symbol with exactly one symbol, never pushing or
// popping); NewNFA also assembles one directly from its parts.
package nfa

import (
	"github.com/nihei9/ctfparse/automaton"
	"github.com/nihei9/ctfparse/weight"
)

// NFA is an automaton over symbol alphabet A and terminal alphabet T,
// weighted in W, whose storage is nothing more than the current state
// Code.
type NFA[A comparable, T comparable, W weight.Weight[W]] struct {
	symbols     *automaton.Interner[A]
	terminals   *automaton.Interner[T]
	initial     automaton.Code
	accepting   map[automaton.Code]bool
	transitions map[automaton.Code][]automaton.Transition[Transition, W]
}

// NewNFA assembles an NFA from already-interned pieces; it is the
// constructor approx.NFAProject uses to hand back the projected
// automaton.
func NewNFA[A comparable, T comparable, W weight.Weight[W]](
	symbols *automaton.Interner[A],
	terminals *automaton.Interner[T],
	initial automaton.Code,
	accepting map[automaton.Code]bool,
	transitions map[automaton.Code][]automaton.Transition[Transition, W],
) *NFA[A, T, W] {
	return &NFA[A, T, W]{
		symbols:     symbols,
		terminals:   terminals,
		initial:     initial,
		accepting:   accepting,
		transitions: transitions,
	}
}

func (a *NFA[A, T, W]) Interned() *automaton.Interner[A] { return a.symbols }

func (a *NFA[A, T, W]) Terminals() *automaton.Interner[T] { return a.terminals }

func (a *NFA[A, T, W]) Initial() automaton.Code { return a.initial }

func (a *NFA[A, T, W]) ExtractKey(s automaton.Code) automaton.Code { return s }

// IsAccepting holds when the remaining word is empty and the current
// state is one of the states projected from an accepting push-down
// configuration. An NFA has no bottom marker to check, so acceptance is
// tracked explicitly as a state set instead.
func (a *NFA[A, T, W]) IsAccepting(cfg automaton.Configuration[automaton.Code, W]) bool {
	return len(cfg.Word) == 0 && a.accepting[cfg.Storage]
}

func (a *NFA[A, T, W]) Apply(s automaton.Code, instr Transition) (automaton.Code, bool) {
	if s != instr.CurrentVal {
		return s, false
	}
	return instr.NewVal, true
}

func (a *NFA[A, T, W]) TransitionsByKey(key automaton.Code) []automaton.Transition[Transition, W] {
	return a.transitions[key]
}

// AllTransitions exposes the full transition table.
func (a *NFA[A, T, W]) AllTransitions() map[automaton.Code][]automaton.Transition[Transition, W] {
	return a.transitions
}

func (a *NFA[A, T, W]) Recognise(one W, word []automaton.Code) *automaton.Recogniser[automaton.Code, Transition, W] {
	return automaton.Recognise[automaton.Code, Transition, W](a, one, word)
}

func (a *NFA[A, T, W]) RecogniseBeam(one W, word []automaton.Code, beam int) *automaton.Recogniser[automaton.Code, Transition, W] {
	return automaton.RecogniseBeam[automaton.Code, Transition, W](a, one, word, beam)
}
