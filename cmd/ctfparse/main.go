// Command ctfparse is a fixed end-to-end demonstration of the
// coarse-to-fine weighted parsing engine: it builds a couple of small
// grammars directly in Go source, runs them through the exact
// recognisers, then through the approximation ladder (TTS, relabel,
// top-k, NFA projection) and a ctf.Pipeline, printing what each stage
// accepts. There is no grammar-file format and no flags; the grammars
// live in this file.
package main

import (
	"fmt"
	"os"

	"github.com/nihei9/ctfparse/approx"
	"github.com/nihei9/ctfparse/automaton"
	"github.com/nihei9/ctfparse/ctf"
	"github.com/nihei9/ctfparse/ctf/bench"
	"github.com/nihei9/ctfparse/pda"
	"github.com/nihei9/ctfparse/pmcfg"
	"github.com/nihei9/ctfparse/pushdown"
	"github.com/nihei9/ctfparse/tsa"
	"github.com/nihei9/ctfparse/weight"
)

// pdaStack names pda.Automaton's storage type so it can be spelled out
// as ctf.Level's Sf type argument at the call site below.
type pdaStack = pushdown.Stack[automaton.Code]

func main() {
	demoCFG()
	fmt.Println()
	demoApproximationLadder()
	fmt.Println()
	demoPMCFG()
	fmt.Println()
	demoPipeline()
	fmt.Println()
	demoBench()
}

// demoCFG recognises {a^n b^n} directly on a push-down automaton built
// from a CFG.
func demoCFG() {
	one := weight.OneLogProb()
	g := abCFG()
	a := pda.FromCFG(g, one)

	fmt.Println("== CFG: a^n b^n ==")
	for _, word := range [][]string{{"a", "b"}, {"a", "a", "b", "b"}, {"a", "b", "b"}} {
		fmt.Printf("  %-12v accepted=%v\n", word, acceptsAny(a, a.Terminals(), one, word))
	}
}

// demoApproximationLadder shows each approximation strategy applied to
// the a^n b^n push-down automaton in turn: relabelling under the
// identity changes nothing, top-k deliberately over-accepts once the
// word outgrows the bound, and NFA projection fails outright because
// FromCFG's transitions push a whole right-hand side at once.
func demoApproximationLadder() {
	one := weight.OneLogProb()
	fine := pda.FromCFG(abCFG(), one)

	relabeled, _ := approx.IdentityRelabel(fine, one)
	fmt.Println("== Relabel (identity) ==")
	for _, word := range [][]string{{"a", "b"}, {"a", "a", "b", "b"}} {
		fmt.Printf("  %-12v accepted=%v\n", word, acceptsAny(relabeled, relabeled.Terminals(), one, word))
	}

	topk, _ := approx.TopK(fine, 2)
	fmt.Println("== TopK(2) ==")
	for _, word := range [][]string{{"a", "b"}, {"a", "a", "b", "b"}, {"a", "a", "a", "b", "b", "b"}} {
		fmt.Printf("  %-12v accepted=%v\n", word, acceptsAny(topk, topk.Terminals(), one, word))
	}

	fmt.Println("== NFAProject ==")
	if _, _, err := approx.NFAProject(fine); err != nil {
		fmt.Printf("  unavailable: %v\n", err)
	}
}

// demoPMCFG recognises a two-component copy clause directly on a
// tree-stack automaton, then shows the same word still recognised
// after TTS approximates it down to a push-down automaton.
func demoPMCFG() {
	one := weight.OneLogProb()
	g := copyPMCFG()
	fine, err := tsa.FromPMCFG(g, one)
	if err != nil {
		fmt.Printf("== PMCFG: discontiguous copy clause == (build failed: %v)\n", err)
		return
	}

	fmt.Println("== PMCFG: discontiguous copy clause ==")
	fmt.Printf("  %-12v accepted=%v\n", []string{"a", "b"}, acceptsAny(fine, fine.Terminals(), one, []string{"a", "b"}))

	coarse, _ := approx.TTS(fine, one)
	fmt.Println("== TTS ==")
	fmt.Printf("  %-12v accepted=%v\n", []string{"a", "b"}, acceptsAny(coarse, coarse.Terminals(), one, []string{"a", "b"}))
}

// demoPipeline recognises on the cheapest (top-k) automaton first, then
// uses ctf.Pipeline to replay each accepted run down through relabel
// and back to the exact a^n b^n automaton, printing only the runs that
// survive every stage.
func demoPipeline() {
	one := weight.OneLogProb()
	fine := pda.FromCFG(abCFG(), one)
	relabeled, dictRelabel := approx.IdentityRelabel(fine, one)
	topk, dictTopK := approx.TopK(relabeled, 4)

	word, ok := wordCodes(topk.Terminals(), []string{"a", "a", "b", "b"})
	if !ok {
		fmt.Println("== Pipeline == (terminal not in alphabet)")
		return
	}

	var coarsestRuns []interface{}
	for _, item := range topk.Recognise(one, word).Take(10) {
		coarsestRuns = append(coarsestRuns, item.Run)
	}

	stages := []ctf.Stage{
		ctf.Level[pdaStack, pda.Instruction, pda.Instruction, weight.LogProb]{Fine: relabeled, Dict: dictTopK, One: one},
		ctf.Level[pdaStack, pda.Instruction, pda.Instruction, weight.LogProb]{Fine: fine, Dict: dictRelabel, One: one},
	}
	pipeline := ctf.NewPipeline(coarsestRuns, stages)

	fmt.Println("== Pipeline: top-k -> relabel -> exact ==")
	n := 0
	for {
		run, ok := pipeline.Next()
		if !ok {
			break
		}
		fineRun := run.(automaton.Run[pda.Instruction, weight.LogProb])
		fmt.Printf("  run of length %d survived every stage\n", len(fineRun))
		n++
	}
	if n == 0 {
		fmt.Println("  no run survived refinement")
	}
}

// demoBench times the same top-k -> relabel -> exact pipeline over a
// few different words and prints how many runs each drains to, and how
// many of those are structurally distinct once deduped.
func demoBench() {
	one := weight.OneLogProb()
	fine := pda.FromCFG(abCFG(), one)

	buildPipeline := func(tokens []string) (*ctf.Pipeline, bool) {
		relabeled, dictRelabel := approx.IdentityRelabel(fine, one)
		topk, dictTopK := approx.TopK(relabeled, 4)

		word, ok := wordCodes(topk.Terminals(), tokens)
		if !ok {
			return nil, false
		}
		var coarsestRuns []interface{}
		for _, item := range topk.Recognise(one, word).Take(10) {
			coarsestRuns = append(coarsestRuns, item.Run)
		}
		stages := []ctf.Stage{
			ctf.Level[pdaStack, pda.Instruction, pda.Instruction, weight.LogProb]{Fine: relabeled, Dict: dictTopK, One: one},
			ctf.Level[pdaStack, pda.Instruction, pda.Instruction, weight.LogProb]{Fine: fine, Dict: dictRelabel, One: one},
		}
		return ctf.NewPipeline(coarsestRuns, stages), true
	}

	fmt.Println("== Bench ==")
	var rows []bench.Row
	for _, tokens := range [][]string{{"a", "b"}, {"a", "a", "b", "b"}, {"a", "a", "a", "b", "b", "b"}} {
		p, ok := buildPipeline(tokens)
		if !ok {
			continue
		}
		rows = append(rows, bench.Drain(fmt.Sprint(tokens), p))
	}
	bench.WriteTable(os.Stdout, rows)
}

func abCFG() pmcfg.CFG[string, weight.LogProb] {
	return pmcfg.CFG[string, weight.LogProb]{
		Initial: "S",
		Rules: []pmcfg.CFGRule[string, weight.LogProb]{
			{
				Head:        "S",
				Composition: []pmcfg.Letter[string]{pmcfg.Val("a"), pmcfg.Lab[string]("S"), pmcfg.Val("b")},
				Weight:      weight.MustLogProb(0.4),
			},
			{
				Head:        "S",
				Composition: nil,
				Weight:      weight.MustLogProb(0.6),
			},
		},
	}
}

// copyPMCFG has A produce the discontiguous pair ("a", "b") across two
// output components, and S concatenate them into a single "ab":
// a minimal example of composition an ordinary CFG cannot express
// directly, acyclic so it stays within tsa.FromPMCFG's scope.
func copyPMCFG() pmcfg.Grammar[string, weight.LogProb] {
	return pmcfg.Grammar[string, weight.LogProb]{
		Initial: []string{"S"},
		Clauses: []pmcfg.Clause[string, weight.LogProb]{
			{
				Head: "A",
				Body: nil,
				Composition: [][]pmcfg.Component[string]{
					{pmcfg.Term("a")},
					{pmcfg.Term("b")},
				},
				Weight: weight.OneLogProb(),
			},
			{
				Head: "S",
				Body: []string{"A"},
				Composition: [][]pmcfg.Component[string]{
					{pmcfg.Ref[string](0, 0), pmcfg.Ref[string](0, 1)},
				},
				Weight: weight.OneLogProb(),
			},
		},
	}
}

func wordCodes[T comparable](terminals *automaton.Interner[T], tokens []T) ([]automaton.Code, bool) {
	codes := make([]automaton.Code, len(tokens))
	for i, tok := range tokens {
		c, ok := terminals.Find(tok)
		if !ok {
			return nil, false
		}
		codes[i] = c
	}
	return codes, true
}

// acceptsAny runs recognition until the first accepted run or until the
// agenda is exhausted, and reports whether a run was accepted.
func acceptsAny[S any, I automaton.Keyed, T comparable, W weight.Weight[W]](a automaton.Automaton[S, I, W], terminals *automaton.Interner[T], one W, tokens []T) bool {
	word, ok := wordCodes(terminals, tokens)
	if !ok {
		return false
	}
	r := automaton.Recognise[S, I, W](a, one, word)
	_, accepted := r.Next()
	return accepted
}
