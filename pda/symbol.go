package pda

// symKind distinguishes the three roles a stack symbol can play.
type symKind int

const (
	kindBottom symKind = iota
	kindNonTerminal
	kindTerminal
)

// Symbol is the push-down stack alphabet: the always-present bottom
// marker, a grammar nonterminal, or a terminal value waiting to be
// shifted against the input word.
type Symbol[T comparable] struct {
	kind     symKind
	nonTerm  string
	terminal T
}

// Bottom is the stack-floor symbol. Replace instructions never match it,
// so it is never produced by FromCFG and never appears as a current_val.
func Bottom[T comparable]() Symbol[T] {
	return Symbol[T]{kind: kindBottom}
}

// NonTerminal wraps a grammar nonterminal name as a stack symbol.
func NonTerminal[T comparable](name string) Symbol[T] {
	return Symbol[T]{kind: kindNonTerminal, nonTerm: name}
}

// Terminal wraps a terminal value as a stack symbol.
func Terminal[T comparable](t T) Symbol[T] {
	return Symbol[T]{kind: kindTerminal, terminal: t}
}
