// Package pushdown implements the persistent LIFO stack used as storage
// for a push-down automaton (package pda). A Stack value is an immutable
// view over a backing slice (top-first order), so copying a Stack shares
// that slice. Replace builds a fresh slice for its result, copying the
// symbols below the replaced segment; ReplaceK's truncation re-slices the
// result without copying again.
package pushdown

// Stack is an ordered sequence of A, top-first: symbols[0] is the top.
type Stack[A any] struct {
	symbols []A
}

// New creates a Stack containing exactly the bottom symbol a.
func New[A any](a A) Stack[A] {
	return Stack[A]{symbols: []A{a}}
}

// FromTopFirst creates a Stack from a top-first slice of symbols. The
// slice is not retained; Stack takes ownership of its own copy.
func FromTopFirst[A any](symbols []A) Stack[A] {
	cp := make([]A, len(symbols))
	copy(cp, symbols)
	return Stack[A]{symbols: cp}
}

// CurrentSymbol returns the top symbol.
func (s Stack[A]) CurrentSymbol() A {
	return s.symbols[0]
}

// Depth returns the number of symbols on the stack.
func (s Stack[A]) Depth() int {
	return len(s.symbols)
}

// IsBottom reports whether the stack holds exactly one symbol (the
// initial/bottom marker and nothing else).
func (s Stack[A]) IsBottom() bool {
	return len(s.symbols) == 1
}

// TopFirst returns the stack's symbols top-first. The returned slice must
// not be mutated by the caller.
func (s Stack[A]) TopFirst() []A {
	return s.symbols
}

// Replace succeeds iff the top len(current) symbols match current
// top-first, replacing them with new (top-first). On failure it returns
// the unmodified receiver and ok=false.
func Replace[A comparable](s Stack[A], current, new []A) (Stack[A], bool) {
	if len(current) > len(s.symbols) {
		return s, false
	}
	for i, c := range current {
		if s.symbols[i] != c {
			return s, false
		}
	}

	next := make([]A, 0, len(new)+len(s.symbols)-len(current))
	next = append(next, new...)
	next = append(next, s.symbols[len(current):]...)
	return Stack[A]{symbols: next}, true
}

// ReplaceK is Replace followed by truncation to at most limit symbols
// counted from the top; if the replaced stack has depth <= limit, the
// truncation is a no-op.
func ReplaceK[A comparable](s Stack[A], current, new []A, limit int) (Stack[A], bool) {
	replaced, ok := Replace(s, current, new)
	if !ok {
		return s, false
	}
	if len(replaced.symbols) <= limit {
		return replaced, true
	}
	return Stack[A]{symbols: replaced.symbols[:limit]}, true
}

// Equal reports value equality.
func Equal[A comparable](a, b Stack[A]) bool {
	if len(a.symbols) != len(b.symbols) {
		return false
	}
	for i := range a.symbols {
		if a.symbols[i] != b.symbols[i] {
			return false
		}
	}
	return true
}

// Map returns a stack with every symbol transformed by f.
func Map[A, B any](s Stack[A], f func(A) B) Stack[B] {
	out := make([]B, len(s.symbols))
	for i, a := range s.symbols {
		out[i] = f(a)
	}
	return Stack[B]{symbols: out}
}
