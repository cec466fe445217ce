package tsa

import (
	"fmt"

	"github.com/nihei9/ctfparse/automaton"
	"github.com/nihei9/ctfparse/ctferr"
	"github.com/nihei9/ctfparse/pmcfg"
	"github.com/nihei9/ctfparse/treestack"
	"github.com/nihei9/ctfparse/weight"
)

// role distinguishes the two moments a node label can represent: ready
// to expand the next composition token (resume), or a short-lived
// bookkeeping child created to consume a terminal in place (pending).
type role int

const (
	roleResume role = iota
	rolePending
)

// label is the tree-stack node alphabet FromPMCFG builds internally: a
// position within one instantiated clause's flattened composition.
type label struct {
	role   role
	clause int
	pos    int
}

// flatToken is one entry of a clause's flattened composition (all
// output components concatenated in order).
type flatToken[T any] struct {
	isTerminal   bool
	terminal     T
	argIndex     int
	argComponent int
}

type internalClause[T any, W any] struct {
	head    string
	body    []string
	flat    []flatToken[T]
	offsets []int // offsets[j] = flat position where component j starts; offsets[len(offsets)-1] = total length
	weight  W
}

// FromPMCFG builds a tree-stack automaton from a general PMCFG grammar,
// converting each rule into one or more tree-stack transitions
// mirroring its rank, composition, and head. Composition references to
// the same body argument must occur in non-decreasing ArgComponent
// order (the usual linearity restriction on PMCFG composition), since
// the first reference instantiates the argument's clause and later
// references re-enter it with Up.
//
// Every (clause, component) pair's resume chain is shared state keyed
// only by clause index and flattened position, not by which call site
// reached it. That makes the construction exact only for grammars whose
// reference graph is a strict DAG: every nonterminal, including the
// start symbol, is referenced from exactly one static (clause, position)
// pair in the whole grammar. Self-recursive or otherwise multiply
// referenced nonterminals (S -> a S b, or any S -> A A sharing) are out
// of scope: two call sites choosing the same candidate clause would
// register conflicting Down continuations under the same exit label,
// since Down picks its target purely by the value it reads and cannot
// see which call site pushed the child it is leaving. Recursive
// grammars are exactly what pda.FromCFG exists for instead; it needs no
// tree structure and has no such restriction.
//
// FromPMCFG checks this precondition rather than silently building an
// unsound automaton: a grammar whose reference graph is not a strict DAG
// is reported as a *ctferr.StructuralError instead.
func FromPMCFG[T comparable, W weight.Weight[W]](g pmcfg.Grammar[T, W], one W) (*Automaton[label, T, W], error) {
	clauses := buildInternalClauses(g, one)

	if err := checkStrictDAG(clauses); err != nil {
		return nil, &ctferr.StructuralError{Stage: "tsa.FromPMCFG", Cause: err}
	}

	candidatesByHead := map[string][]int{}
	for i, c := range clauses {
		if i == 0 {
			continue // the synthetic start clause is never referenced
		}
		candidatesByHead[c.head] = append(candidatesByHead[c.head], i)
	}

	symbols := automaton.NewInterner[label]()
	terminals := automaton.NewInterner[T]()
	transitions := make(map[automaton.Code][]automaton.Transition[Instruction, W])

	add := func(key automaton.Code, t automaton.Transition[Instruction, W]) {
		transitions[key] = append(transitions[key], t)
	}

	for ci, c := range clauses {
		genClauseTransitions(ci, c, candidatesByHead, clauses, symbols, terminals, one, add)
	}

	initLabel := symbols.Intern(label{role: roleResume, clause: 0, pos: 0})
	initial := treestack.New(initLabel)

	return &Automaton[label, T, W]{
		symbols:     symbols,
		terminals:   terminals,
		initial:     initial,
		transitions: transitions,
	}, nil
}

// checkStrictDAG reports the first nonterminal it finds referenced (by
// its component-0 reference, the Push-triggering entry point) from more
// than one (clause, position) site across the whole grammar. Such a
// nonterminal would have its candidate clauses' exit transitions
// registered once per call site under the very same state, each with a
// different resume continuation, which is exactly the ambiguity
// FromPMCFG's construction cannot represent.
func checkStrictDAG[T any, W any](clauses []internalClause[T, W]) error {
	type site struct{ clause, pos int }
	firstSite := map[string]site{}
	for ci, c := range clauses {
		for p, tok := range c.flat {
			if tok.isTerminal || tok.argComponent != 0 {
				continue
			}
			nt := c.body[tok.argIndex]
			here := site{clause: ci, pos: p}
			if prev, ok := firstSite[nt]; ok && prev != here {
				return fmt.Errorf(
					"nonterminal %q is referenced from more than one place (clause %d position %d and clause %d position %d): FromPMCFG requires a strict-DAG reference graph",
					nt, prev.clause, prev.pos, here.clause, here.pos,
				)
			}
			firstSite[nt] = here
		}
	}
	return nil
}

func buildInternalClauses[T comparable, W weight.Weight[W]](g pmcfg.Grammar[T, W], one W) []internalClause[T, W] {
	start := internalClause[T, W]{
		head: "",
		body: g.Initial,
		flat: make([]flatToken[T], len(g.Initial)),
	}
	for i := range g.Initial {
		start.flat[i] = flatToken[T]{argIndex: i, argComponent: 0}
	}
	start.offsets = []int{0, len(g.Initial)}
	start.weight = one

	out := make([]internalClause[T, W], 0, len(g.Clauses)+1)
	out = append(out, start)

	for _, clause := range g.Clauses {
		ic := internalClause[T, W]{head: clause.Head, body: clause.Body, weight: clause.Weight}
		ic.offsets = make([]int, 0, len(clause.Composition)+1)
		ic.offsets = append(ic.offsets, 0)
		for _, component := range clause.Composition {
			for _, tok := range component {
				if tok.IsTerminal {
					ic.flat = append(ic.flat, flatToken[T]{isTerminal: true, terminal: tok.Terminal})
				} else {
					ic.flat = append(ic.flat, flatToken[T]{argIndex: tok.ArgIndex, argComponent: tok.ArgComponent})
				}
			}
			ic.offsets = append(ic.offsets, len(ic.flat))
		}
		out = append(out, ic)
	}
	return out
}

func genClauseTransitions[T comparable, W weight.Weight[W]](
	ci int,
	c internalClause[T, W],
	candidatesByHead map[string][]int,
	clauses []internalClause[T, W],
	symbols *automaton.Interner[label],
	terminals *automaton.Interner[T],
	one W,
	add func(automaton.Code, automaton.Transition[Instruction, W]),
) {
	firstRefPos := map[int]int{} // argIndex -> flat pos of its first reference

	for p, tok := range c.flat {
		here := symbols.Intern(label{role: roleResume, clause: ci, pos: p})

		if tok.isTerminal {
			termCode := terminals.Intern(tok.terminal)
			pending := symbols.Intern(label{role: rolePending, clause: ci, pos: p + 1})
			resumeNext := symbols.Intern(label{role: roleResume, clause: ci, pos: p + 1})

			add(here, automaton.Transition[Instruction, W]{
				Word:        []automaton.Code{termCode},
				Weight:      one,
				Instruction: Push(here, p, pending),
			})
			add(pending, automaton.Transition[Instruction, W]{
				Weight:      one,
				Instruction: Down(pending, resumeNext),
			})
			continue
		}

		nt := c.body[tok.argIndex]
		p0, seen := firstRefPos[tok.argIndex]
		if !seen {
			firstRefPos[tok.argIndex] = p
			p0 = p
		}
		resumeNext := symbols.Intern(label{role: roleResume, clause: ci, pos: p + 1})

		for _, candIdx := range candidatesByHead[nt] {
			cand := clauses[candIdx]
			if tok.argComponent+1 >= len(cand.offsets) {
				continue
			}
			entryPos := cand.offsets[tok.argComponent]
			exitPos := cand.offsets[tok.argComponent+1]
			entry := symbols.Intern(label{role: roleResume, clause: candIdx, pos: entryPos})
			exit := symbols.Intern(label{role: roleResume, clause: candIdx, pos: exitPos})

			if tok.argComponent == 0 {
				add(here, automaton.Transition[Instruction, W]{
					Weight:      cand.weight,
					Instruction: Push(here, p0, entry),
				})
			} else {
				add(here, automaton.Transition[Instruction, W]{
					Weight:      one,
					Instruction: Up(here, p0, entry),
				})
			}

			add(exit, automaton.Transition[Instruction, W]{
				Weight:      one,
				Instruction: Down(exit, resumeNext),
			})
		}
	}
}
