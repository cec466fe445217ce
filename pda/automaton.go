package pda

import (
	"github.com/nihei9/ctfparse/automaton"
	"github.com/nihei9/ctfparse/pushdown"
	"github.com/nihei9/ctfparse/weight"
)

// Automaton is a push-down automaton over symbol alphabet A and terminal
// alphabet T, weighted in W. Storage is a pushdown.Stack[automaton.Code];
// A and T are interned once at construction time so the hot
// transition-lookup path only ever compares small integers.
type Automaton[A comparable, T comparable, W weight.Weight[W]] struct {
	symbols     *automaton.Interner[A]
	terminals   *automaton.Interner[T]
	initial     pushdown.Stack[automaton.Code]
	transitions map[automaton.Code][]automaton.Transition[Instruction, W]
}

// NewAutomaton assembles an Automaton from already-interned pieces. It
// is the constructor approx strategies use when they build a coarser
// push-down automaton from a finer one; FromCFG is the constructor
// ordinary callers use.
func NewAutomaton[A comparable, T comparable, W weight.Weight[W]](
	symbols *automaton.Interner[A],
	terminals *automaton.Interner[T],
	initial pushdown.Stack[automaton.Code],
	transitions map[automaton.Code][]automaton.Transition[Instruction, W],
) *Automaton[A, T, W] {
	return &Automaton[A, T, W]{symbols: symbols, terminals: terminals, initial: initial, transitions: transitions}
}

// Interned exposes the symbol interner so callers (e.g. approx
// strategies translating between automata) can map their own A values
// to the same Code space this automaton uses.
func (a *Automaton[A, T, W]) Interned() *automaton.Interner[A] { return a.symbols }

// Terminals exposes the terminal interner symmetrically.
func (a *Automaton[A, T, W]) Terminals() *automaton.Interner[T] { return a.terminals }

func (a *Automaton[A, T, W]) Initial() pushdown.Stack[automaton.Code] { return a.initial }

// ExtractKey returns the top symbol, or an unused sentinel Code if the
// stack is empty. An exact automaton never empties its stack before
// IsBottom holds, but a TopK-truncated one can, once truncation has
// discarded the bottom marker itself; returning a sentinel here turns
// that dead configuration into a no-op TransitionsByKey lookup instead
// of a panic on s.CurrentSymbol().
func (a *Automaton[A, T, W]) ExtractKey(s pushdown.Stack[automaton.Code]) automaton.Code {
	if s.Depth() == 0 {
		return automaton.Code(-1)
	}
	return s.CurrentSymbol()
}

// IsAccepting holds when the remaining word is empty and only the
// bottom marker is left on the stack.
func (a *Automaton[A, T, W]) IsAccepting(cfg automaton.Configuration[pushdown.Stack[automaton.Code], W]) bool {
	return len(cfg.Word) == 0 && cfg.Storage.IsBottom()
}

func (a *Automaton[A, T, W]) Apply(s pushdown.Stack[automaton.Code], instr Instruction) (pushdown.Stack[automaton.Code], bool) {
	if instr.Limit > 0 {
		return pushdown.ReplaceK(s, instr.CurrentVal, instr.NewVal, instr.Limit)
	}
	return pushdown.Replace(s, instr.CurrentVal, instr.NewVal)
}

func (a *Automaton[A, T, W]) TransitionsByKey(key automaton.Code) []automaton.Transition[Instruction, W] {
	return a.transitions[key]
}

// AllTransitions exposes the full transition table. approx strategies
// use this to build a coarser automaton without needing every key in
// advance.
func (a *Automaton[A, T, W]) AllTransitions() map[automaton.Code][]automaton.Transition[Instruction, W] {
	return a.transitions
}

// Recognise starts a best-first recognition run over word, which must
// already be expressed in this automaton's terminal Codes (use
// Terminals().Intern or Terminals().Find on each input token).
func (a *Automaton[A, T, W]) Recognise(one W, word []automaton.Code) *automaton.Recogniser[pushdown.Stack[automaton.Code], Instruction, W] {
	return automaton.Recognise[pushdown.Stack[automaton.Code], Instruction, W](a, one, word)
}

// RecogniseBeam is Recognise truncated to a fixed agenda width.
func (a *Automaton[A, T, W]) RecogniseBeam(one W, word []automaton.Code, beam int) *automaton.Recogniser[pushdown.Stack[automaton.Code], Instruction, W] {
	return automaton.RecogniseBeam[pushdown.Stack[automaton.Code], Instruction, W](a, one, word, beam)
}
