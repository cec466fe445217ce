package pda

import (
	"github.com/nihei9/ctfparse/automaton"
	"github.com/nihei9/ctfparse/pmcfg"
	"github.com/nihei9/ctfparse/pushdown"
	"github.com/nihei9/ctfparse/weight"
)

// FromCFG builds a push-down automaton directly from a context-free
// grammar, bypassing the tree-stack construction entirely: a CFG rule
// needs no tree structure, only the classical "replace the nonterminal
// on top of the stack with its right-hand side" translation. One
// clause gives one Replace transition; every distinct terminal value
// appearing anywhere in the grammar gets one generic shift transition
// that pops it off the stack on a matching word symbol.
func FromCFG[T comparable, W weight.Weight[W]](g pmcfg.CFG[T, W], one W) *Automaton[Symbol[T], T, W] {
	symbols := automaton.NewInterner[Symbol[T]]()
	terminals := automaton.NewInterner[T]()

	transitions := make(map[automaton.Code][]automaton.Transition[Instruction, W])
	addTransition := func(current, newVal []automaton.Code, word []automaton.Code, w W) {
		key := current[0]
		transitions[key] = append(transitions[key], automaton.Transition[Instruction, W]{
			Word:   word,
			Weight: w,
			Instruction: Instruction{
				CurrentVal: current,
				NewVal:     newVal,
			},
		})
	}

	seenTerminals := map[automaton.Code]bool{}

	for _, rule := range g.Rules {
		head := symbols.Intern(NonTerminal[T](rule.Head))

		newVal := make([]automaton.Code, len(rule.Composition))
		for i, letter := range rule.Composition {
			var sym Symbol[T]
			if letter.IsValue {
				sym = Terminal[T](letter.Value)
			} else {
				sym = NonTerminal[T](letter.Label)
			}
			code := symbols.Intern(sym)
			newVal[i] = code

			if letter.IsValue {
				termCode := terminals.Intern(letter.Value)
				if !seenTerminals[code] {
					seenTerminals[code] = true
					addTransition([]automaton.Code{code}, nil, []automaton.Code{termCode}, one)
				}
			}
		}

		addTransition([]automaton.Code{head}, newVal, nil, rule.Weight)
	}

	bottomCode := symbols.Intern(Bottom[T]())
	initCode := symbols.Intern(NonTerminal[T](g.Initial))
	initial := pushdown.FromTopFirst([]automaton.Code{initCode, bottomCode})

	return &Automaton[Symbol[T], T, W]{
		symbols:     symbols,
		terminals:   terminals,
		initial:     initial,
		transitions: transitions,
	}
}
