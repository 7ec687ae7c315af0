package infer

import (
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/diag"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/span"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/types"
)

// Unify reconciles the types (possibly still unresolved) held by two
// cells, exactly per SPEC_FULL.md §4.4.1:
//
//  1. both empty: alias them (union the sets; neither gets a value yet).
//  2. one empty, other Some(t): the empty one's set takes value t.
//  3. both Some: structural comparison; Unknown unifies with anything
//     (replacing it); otherwise a mismatch is a TypeMismatch at sp.
//
// sp is the span blamed in any TypeMismatch produced.
func (a *Arena) Unify(x, y Var, sp span.Span) error {
	rx, ry := a.find(x), a.find(y)
	xv, xok := a.cells[rx].value, a.cells[rx].value != nil
	yv, yok := a.cells[ry].value, a.cells[ry].value != nil

	switch {
	case !xok && !yok:
		a.union(rx, ry)
		return nil
	case xok && !yok:
		root := a.union(rx, ry)
		a.set(root, xv)
		return nil
	case !xok && yok:
		root := a.union(rx, ry)
		a.set(root, yv)
		return nil
	default:
		merged, err := reconcile(xv, yv, sp)
		if err != nil {
			return err
		}
		root := a.union(rx, ry)
		a.set(root, merged)
		return nil
	}
}

// UnifyWith unifies v's cell against a known concrete type, reusing the
// same case (2)/(3) logic as Unify (SPEC_FULL.md §4.4.1, final paragraph).
func (a *Arena) UnifyWith(v Var, expected types.Type, sp span.Span) error {
	root := a.find(v)
	if current, ok := a.Get(root); ok {
		merged, err := reconcile(current, expected, sp)
		if err != nil {
			return err
		}
		a.set(root, merged)
		return nil
	}
	a.set(root, expected)
	return nil
}

// reconcile implements unification case (3): structural comparison with
// Unknown as a wildcard that gets replaced by the more concrete side.
func reconcile(a, b types.Type, sp span.Span) (types.Type, error) {
	if _, ok := a.(types.Unknown); ok {
		return b, nil
	}
	if _, ok := b.(types.Unknown); ok {
		return a, nil
	}
	if types.Equal(a, b) {
		return a, nil
	}
	return nil, diag.TypeMismatch(sp, a.String(), b.String())
}

// Concrete freezes v into a types.Type, or reports that it never got one
// — the validator's core operation (SPEC_FULL.md §4.5).
func (a *Arena) Concrete(v Var, sp span.Span) (types.Type, error) {
	t, ok := a.Get(v)
	if !ok || types.IsUnknown(t) {
		return nil, diag.TypeValidationError(sp)
	}
	return t, nil
}
