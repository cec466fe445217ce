// Package pmcfg holds the external grammar input value this module
// consumes but never produces: an already-parsed Grammar. Parsing
// grammar *text* into these values is the responsibility of an external
// collaborator; this package only shapes the data.
package pmcfg

// Component is one token of a PMCFG clause's composition: either a
// literal terminal, or a reference to component ArgComponent of body
// argument ArgIndex.
type Component[T any] struct {
	IsTerminal   bool
	Terminal     T
	ArgIndex     int
	ArgComponent int
}

// Term constructs a terminal component.
func Term[T any](t T) Component[T] {
	return Component[T]{IsTerminal: true, Terminal: t}
}

// Ref constructs a reference to component argComponent of body argument
// argIndex.
func Ref[T any](argIndex, argComponent int) Component[T] {
	return Component[T]{ArgIndex: argIndex, ArgComponent: argComponent}
}

// Clause is one PMCFG rule: a head nonterminal built from Body arguments
// (rank = len(Body)) via Composition, one token sequence per output
// component (fanout = len(Composition)).
type Clause[T any, W any] struct {
	Head        string
	Body        []string
	Composition [][]Component[T]
	Weight      W
}

// Grammar is the value tsa.FromPMCFG consumes: a set of weighted clauses
// plus the nonterminal(s) a derivation must start from.
type Grammar[T any, W any] struct {
	Initial []string
	Clauses []Clause[T, W]
}

// Letter is one symbol of a CFG rule's right-hand side: either a literal
// terminal value or a reference to another nonterminal, mirroring the
// original `rustomata::cfg::LetterT`.
type Letter[T any] struct {
	IsValue bool
	Value   T
	Label   string
}

// Val constructs a terminal letter.
func Val[T any](t T) Letter[T] {
	return Letter[T]{IsValue: true, Value: t}
}

// Lab constructs a nonterminal-reference letter.
func Lab[T any](label string) Letter[T] {
	return Letter[T]{Label: label}
}

// CFGRule is one context-free production, the fanout-1 special case of
// Clause (its rank is the number of Label letters it holds).
type CFGRule[T any, W any] struct {
	Head        string
	Composition []Letter[T]
	Weight      W
}

// CFG is a context-free grammar: a set of weighted productions plus a
// single start nonterminal.
type CFG[T any, W any] struct {
	Initial string
	Rules   []CFGRule[T, W]
}

// FromCFG lifts a CFG into the general PMCFG shape: every rule becomes
// a rank-|body| clause with a single output component, and every Label
// letter becomes a fresh body argument referenced by that component.
func FromCFG[T any, W any](g CFG[T, W]) Grammar[T, W] {
	clauses := make([]Clause[T, W], len(g.Rules))
	for i, rule := range g.Rules {
		var body []string
		component := make([]Component[T], len(rule.Composition))
		for j, letter := range rule.Composition {
			if letter.IsValue {
				component[j] = Term[T](letter.Value)
				continue
			}
			argIndex := len(body)
			body = append(body, letter.Label)
			component[j] = Ref[T](argIndex, 0)
		}
		clauses[i] = Clause[T, W]{
			Head:        rule.Head,
			Body:        body,
			Composition: [][]Component[T]{component},
			Weight:      rule.Weight,
		}
	}
	return Grammar[T, W]{Initial: []string{g.Initial}, Clauses: clauses}
}
