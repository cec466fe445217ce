package automaton

import (
	"fmt"

	"github.com/cnf/structhash"
)

// StructKey returns a content hash of v, for use as a map key when v
// embeds slices or maps and so is not comparable in the language sense
// (a pda.Instruction, an automaton.Run, an equiv.Relation). Two values
// with the same structural content hash the same regardless of
// identity, which is what approx.Dictionary's back-translation keys and
// ctf/bench's result deduping both actually need.
func StructKey(v interface{}) string {
	h, err := structhash.Hash(v, 1)
	if err != nil {
		return fmt.Sprintf("%#v", v)
	}
	return h
}
