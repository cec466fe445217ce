package approx

import (
	"github.com/nihei9/ctfparse/automaton"
)

// Dictionary back-translates a coarse instruction into one or more fine
// instructions that could have produced it. A functional (one-to-one)
// dictionary never branches; a one-to-many dictionary forces ctf.Level
// to try each alternative in turn when replaying a candidate run
// against the finer automaton.
//
// Coarse instructions are hashed into map keys with structhash rather
// than compared directly, since some coarse instruction shapes
// (pda.Instruction) embed slices and are not comparable in the language
// sense.
type Dictionary[F any] struct {
	entries map[string][]F
}

// NewDictionary returns an empty dictionary.
func NewDictionary[F any]() *Dictionary[F] {
	return &Dictionary[F]{entries: map[string][]F{}}
}

func hashKey(v interface{}) string {
	return automaton.StructKey(v)
}

// Add records that coarse can be produced by fine.
func (d *Dictionary[F]) Add(coarse interface{}, fine F) {
	k := hashKey(coarse)
	d.entries[k] = append(d.entries[k], fine)
}

// Translate returns every fine instruction known to produce coarse, in
// the order they were added.
func (d *Dictionary[F]) Translate(coarse interface{}) []F {
	return d.entries[hashKey(coarse)]
}

// IsFunctional reports whether every coarse instruction this dictionary
// knows about maps back to exactly one fine instruction.
func (d *Dictionary[F]) IsFunctional() bool {
	for _, fs := range d.entries {
		if len(fs) > 1 {
			return false
		}
	}
	return true
}

// Len returns the number of distinct coarse instructions recorded.
func (d *Dictionary[F]) Len() int { return len(d.entries) }
