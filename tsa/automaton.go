package tsa

import (
	"github.com/nihei9/ctfparse/automaton"
	"github.com/nihei9/ctfparse/treestack"
	"github.com/nihei9/ctfparse/weight"
)

// Automaton is a tree-stack automaton over symbol alphabet A and
// terminal alphabet T, weighted in W. Storage is a
// treestack.Tree[automaton.Code]; A and T are interned once at
// construction time.
type Automaton[A comparable, T comparable, W weight.Weight[W]] struct {
	symbols     *automaton.Interner[A]
	terminals   *automaton.Interner[T]
	initial     treestack.Tree[automaton.Code]
	transitions map[automaton.Code][]automaton.Transition[Instruction, W]
}

func (a *Automaton[A, T, W]) Interned() *automaton.Interner[A] { return a.symbols }

func (a *Automaton[A, T, W]) Terminals() *automaton.Interner[T] { return a.terminals }

func (a *Automaton[A, T, W]) Initial() treestack.Tree[automaton.Code] { return a.initial }

func (a *Automaton[A, T, W]) ExtractKey(s treestack.Tree[automaton.Code]) automaton.Code {
	return s.CurrentSymbol()
}

// IsAccepting holds when the remaining word is empty and the pointer is
// back at the tree's root.
func (a *Automaton[A, T, W]) IsAccepting(cfg automaton.Configuration[treestack.Tree[automaton.Code], W]) bool {
	return len(cfg.Word) == 0 && cfg.Storage.IsAtBottom()
}

func (a *Automaton[A, T, W]) Apply(s treestack.Tree[automaton.Code], instr Instruction) (treestack.Tree[automaton.Code], bool) {
	switch instr.kind {
	case kindUp:
		child, ok := s.Up(instr.idx)
		if !ok || child.CurrentSymbol() != instr.val {
			return s, false
		}
		return child, true
	case kindPush:
		return s.Push(instr.idx, instr.val)
	case kindDown:
		parent, ok := s.Down()
		if !ok {
			return s, false
		}
		return parent.Set(instr.val), true
	default:
		return s, false
	}
}

func (a *Automaton[A, T, W]) TransitionsByKey(key automaton.Code) []automaton.Transition[Instruction, W] {
	return a.transitions[key]
}

// AllTransitions exposes the full transition table, keyed by the
// current_val symbol every entry is indexed by. approx strategies use
// this to build a coarser automaton without needing to know every key
// in advance.
func (a *Automaton[A, T, W]) AllTransitions() map[automaton.Code][]automaton.Transition[Instruction, W] {
	return a.transitions
}

func (a *Automaton[A, T, W]) Recognise(one W, word []automaton.Code) *automaton.Recogniser[treestack.Tree[automaton.Code], Instruction, W] {
	return automaton.Recognise[treestack.Tree[automaton.Code], Instruction, W](a, one, word)
}

func (a *Automaton[A, T, W]) RecogniseBeam(one W, word []automaton.Code, beam int) *automaton.Recogniser[treestack.Tree[automaton.Code], Instruction, W] {
	return automaton.RecogniseBeam[treestack.Tree[automaton.Code], Instruction, W](a, one, word, beam)
}
