// Package equiv holds the equivalence-relation value the Relabel
// approximation strategy quotients an automaton's symbol alphabet by.
package equiv

// Relation is a finite equivalence relation over A given by an explicit
// representative function: two values are equivalent iff they map to
// the same representative. It is a pure value; Project never mutates
// it and is safe to share across automata.
type Relation[A comparable] struct {
	representative map[A]A
}

// NewRelation builds a Relation from a representative map. Any A not
// present in the map is its own representative (the identity class).
func NewRelation[A comparable](representative map[A]A) Relation[A] {
	cp := make(map[A]A, len(representative))
	for k, v := range representative {
		cp[k] = v
	}
	return Relation[A]{representative: cp}
}

// Identity returns the trivial relation where every value is its own
// class, i.e. Relabel under it changes nothing.
func Identity[A comparable]() Relation[A] {
	return Relation[A]{}
}

// Project returns a's equivalence class representative.
func (r Relation[A]) Project(a A) A {
	if rep, ok := r.representative[a]; ok {
		return rep
	}
	return a
}

// Equivalent reports whether a and b belong to the same class.
func (r Relation[A]) Equivalent(a, b A) bool {
	return r.Project(a) == r.Project(b)
}
