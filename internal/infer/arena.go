// Package infer implements inference cells as an arena of type variables
// joined by disjoint-set union, rather than the reference-counted shared
// cells the original implementation uses. This is the REDESIGN FLAG
// SPEC_FULL.md §3.4 calls for: it avoids reference-counting and drop-order
// subtleties, and makes an inference run trivially snapshottable — the
// whole arena is just a slice.
package infer

import (
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/types"
)

// Var is an index into an Arena. Two AST nodes that should share an
// inference variable literally hold the same Var value — the alias-
// correctness invariant (spec.md §8.1 #5) becomes `==` on an int.
type Var int

type cell struct {
	parent Var  // union-find parent; parent == self means this is a root
	rank   int
	value  types.Type // nil means "no value yet" (the Option<Type> of the original)
}

// Arena owns every inference cell created during a single check run. It
// is not safe for concurrent use — the core is single-threaded by design
// (SPEC_FULL.md §5), so no mutex guards it.
type Arena struct {
	cells []cell
}

func NewArena() *Arena {
	return &Arena{}
}

// Fresh allocates a new, empty inference variable.
func (a *Arena) Fresh() Var {
	id := Var(len(a.cells))
	a.cells = append(a.cells, cell{parent: id})
	return id
}

// FreshWith allocates a new inference variable already holding t.
func (a *Arena) FreshWith(t types.Type) Var {
	v := a.Fresh()
	a.cells[v].value = t
	return v
}

// find returns the root of v's set, path-compressing along the way.
func (a *Arena) find(v Var) Var {
	root := v
	for a.cells[root].parent != root {
		root = a.cells[root].parent
	}
	for a.cells[v].parent != root {
		next := a.cells[v].parent
		a.cells[v].parent = root
		v = next
	}
	return root
}

// Get returns the type currently resolved for v (following union-find to
// the root), or (nil, false) if the cell is still empty.
func (a *Arena) Get(v Var) (types.Type, bool) {
	root := a.find(v)
	t := a.cells[root].value
	return t, t != nil
}

// set assigns a concrete type to v's set. It is the monotonic
// None→Some(t) or Some(Unknown)→Some(t) transition spec.md §3.6 and §8.1
// #1 require — set does not check the transition itself; callers go
// through Unify, which enforces it.
func (a *Arena) set(v Var, t types.Type) {
	root := a.find(v)
	a.cells[root].value = t
}

// union merges the sets of x and y, by rank.
func (a *Arena) union(x, y Var) Var {
	rx, ry := a.find(x), a.find(y)
	if rx == ry {
		return rx
	}
	if a.cells[rx].rank < a.cells[ry].rank {
		rx, ry = ry, rx
	}
	a.cells[ry].parent = rx
	if a.cells[rx].rank == a.cells[ry].rank {
		a.cells[rx].rank++
	}
	return rx
}
