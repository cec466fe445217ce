// Package treestack implements the persistent upside-down tree used as
// storage for a tree-stack automaton (package tsa). A Tree value is
// immutable; every mutating operation returns a new Tree that shares
// structure with its predecessor, and every operation that can fail
// (pushing onto an occupied slot, walking up into a vacant one, walking
// down from the root) returns the unmodified receiver alongside ok=false
// rather than an error, since such failures are expected and simply mean
// the calling transition is inapplicable.
package treestack

// slot is a child position: either vacant, or occupied by a subtree.
type slot[A any] struct {
	has  bool
	tree *node[A]
}

// node is the shared, immutable representation a Tree points into.
type node[A any] struct {
	value    A
	children []slot[A]
	parent   *parentLink[A]
}

// parentLink records the child index a node was reached through and the
// parent node itself, so Down can reconstruct the parent's full child
// vector (with this node written back into place) in O(children).
type parentLink[A any] struct {
	index  int
	parent *node[A]
}

// Tree is a handle onto a node[A]; it is a small value type safe to copy
// and compare.
type Tree[A any] struct {
	n *node[A]
}

// New creates a Tree with root value a.
func New[A any](a A) Tree[A] {
	return Tree[A]{n: &node[A]{value: a}}
}

// CurrentSymbol returns the value at the stack pointer.
func (t Tree[A]) CurrentSymbol() A {
	return t.n.value
}

// IsAtBottom reports whether the stack pointer is at the root.
func (t Tree[A]) IsAtBottom() bool {
	return t.n.parent == nil
}

// Set replaces the value at the current node.
func (t Tree[A]) Set(a A) Tree[A] {
	next := *t.n
	next.value = a
	return Tree[A]{n: &next}
}

// Push writes a value to child position n, if that position is vacant.
// The parent's child vector is not touched here; Down is what writes
// this child back into (and pads, if needed) its parent's vector once
// the pointer returns to it. On failure (the slot is occupied) it
// returns the unmodified receiver and ok=false.
func (t Tree[A]) Push(n int, a A) (Tree[A], bool) {
	children := t.n.children
	if n < len(children) && children[n].has {
		return t, false
	}

	child := &node[A]{
		value:  a,
		parent: &parentLink[A]{index: n, parent: t.n},
	}
	return Tree[A]{n: child}, true
}

// Up descends away from the root into child position n, if occupied.
// On failure it returns the unmodified receiver and ok=false.
func (t Tree[A]) Up(n int) (Tree[A], bool) {
	if n >= len(t.n.children) || !t.n.children[n].has {
		return t, false
	}
	child := t.n.children[n].tree
	return Tree[A]{n: child}, true
}

// Down ascends toward the root, if the stack pointer is not already at
// the root. On failure it returns the unmodified receiver and ok=false.
func (t Tree[A]) Down() (Tree[A], bool) {
	link := t.n.parent
	if link == nil {
		return t, false
	}

	grown := make([]slot[A], len(link.parent.children))
	copy(grown, link.parent.children)
	for len(grown) <= link.index {
		grown = append(grown, slot[A]{})
	}
	grown[link.index] = slot[A]{has: true, tree: t.n}

	parent := &node[A]{
		value:    link.parent.value,
		children: grown,
		parent:   link.parent.parent,
	}
	return Tree[A]{n: parent}, true
}

// Map returns a structurally identical tree with every value transformed
// by f.
func Map[A, B any](t Tree[A], f func(A) B) Tree[B] {
	return Tree[B]{n: mapNode(t.n, f)}
}

func mapNode[A, B any](n *node[A], f func(A) B) *node[B] {
	children := make([]slot[B], len(n.children))
	for i, c := range n.children {
		if c.has {
			children[i] = slot[B]{has: true, tree: mapNode(c.tree, f)}
		}
	}
	var parent *parentLink[B]
	if n.parent != nil {
		parent = &parentLink[B]{index: n.parent.index, parent: mapNode(n.parent.parent, f)}
	}
	return &node[B]{value: f(n.value), children: children, parent: parent}
}

// Equal reports whether t and other are value-equal: equal at the
// current node, equal along the walk to the root, and equal in every
// child. Identical underlying nodes short-circuit to true.
func Equal[A comparable](t, other Tree[A]) bool {
	return equalNode(t.n, other.n)
}

func equalNode[A comparable](a, b *node[A]) bool {
	if a == b {
		return true
	}
	if a.value != b.value {
		return false
	}
	if (a.parent == nil) != (b.parent == nil) {
		return false
	}
	if a.parent != nil {
		if a.parent.index != b.parent.index {
			return false
		}
		if !equalNode(a.parent.parent, b.parent.parent) {
			return false
		}
	}
	if len(a.children) != len(b.children) {
		// Trailing vacant slots don't affect observable behaviour, but
		// keeping them comparable-by-length matches the original's
		// Vec<Option<..>> equality, which is sensitive to padding.
		return false
	}
	for i := range a.children {
		ca, cb := a.children[i], b.children[i]
		if ca.has != cb.has {
			return false
		}
		if ca.has && !equalNode(ca.tree, cb.tree) {
			return false
		}
	}
	return true
}
