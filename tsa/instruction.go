package tsa

import "github.com/nihei9/ctfparse/automaton"

// Instruction is a tree-stack instruction: exactly one of Up, Push, or
// Down. Each variant is keyed on the node value the pointer currently
// sits on, matching the tree-stack's CurrentSymbol.
type Instruction struct {
	kind       instrKind
	currentVal automaton.Code
	idx        int
	val        automaton.Code
}

type instrKind int

const (
	kindUp instrKind = iota
	kindPush
	kindDown
)

// Up moves the pointer into an already-occupied child at idx, which
// must hold val; it fails (non-fatally) otherwise. Used for composition
// re-entrancy: revisiting a nonterminal instance to extract a second
// output component.
func Up(currentVal automaton.Code, idx int, val automaton.Code) Instruction {
	return Instruction{kind: kindUp, currentVal: currentVal, idx: idx, val: val}
}

// Push creates a brand-new child at idx holding val and moves the
// pointer into it, failing non-fatally if idx is already occupied,
// whatever value it holds.
func Push(currentVal automaton.Code, idx int, val automaton.Code) Instruction {
	return Instruction{kind: kindPush, currentVal: currentVal, idx: idx, val: val}
}

// Down moves the pointer to the parent, overwriting whatever value the
// parent held with val. It fails non-fatally at the root.
func Down(currentVal automaton.Code, val automaton.Code) Instruction {
	return Instruction{kind: kindDown, currentVal: currentVal, val: val}
}

func (i Instruction) Key() automaton.Code { return i.currentVal }

// IsUp, IsPush, and IsDown let other packages (approx) case over an
// instruction's shape without reaching into its unexported fields
// directly.
func (i Instruction) IsUp() bool   { return i.kind == kindUp }
func (i Instruction) IsPush() bool { return i.kind == kindPush }
func (i Instruction) IsDown() bool { return i.kind == kindDown }

// CurrentVal, Idx, and Val expose the instruction's fields read-only.
func (i Instruction) CurrentVal() automaton.Code { return i.currentVal }
func (i Instruction) Idx() int                   { return i.idx }
func (i Instruction) Val() automaton.Code         { return i.val }
