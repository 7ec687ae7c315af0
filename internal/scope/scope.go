// Package scope implements the lexical-scope frame stack (SPEC_FULL.md
// §3.5). Per the REDESIGN FLAG in spec.md §9, a Scope is built once per
// block/function and shared by pointer from every node under it — it is
// never cloned into each node's annotation the way the original
// implementation does.
package scope

import (
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/infer"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/types"
)

// Scope is one frame of the lexical stack; Parent is nil at the top
// level.
type Scope struct {
	Parent    *Scope
	variables map[string]infer.Var
	constants map[string]types.Type
	types     map[string]types.Type
	mutable   map[string]bool // names declared `let mut`
}

// New creates a fresh top-level scope with no parent.
func New() *Scope {
	return &Scope{
		variables: make(map[string]infer.Var),
		constants: make(map[string]types.Type),
		types:     make(map[string]types.Type),
		mutable:   make(map[string]bool),
	}
}

// Child pushes a new frame on top of s.
func (s *Scope) Child() *Scope {
	child := New()
	child.Parent = s
	return child
}

// AddVariable binds name to cell in this (innermost) frame, per the
// `let` shadowing rule: re-binding the same name in the same frame is
// allowed and simply replaces the entry.
func (s *Scope) AddVariable(name string, cell infer.Var, mutable bool) {
	s.variables[name] = cell
	s.mutable[name] = mutable
}

// LookupVariable walks frames leaf-to-root for a variable binding.
func (s *Scope) LookupVariable(name string) (infer.Var, bool) {
	for f := s; f != nil; f = f.Parent {
		if v, ok := f.variables[name]; ok {
			return v, true
		}
	}
	return 0, false
}

// IsMutable reports whether name was bound with `let mut` (looked up the
// same way as LookupVariable).
func (s *Scope) IsMutable(name string) bool {
	for f := s; f != nil; f = f.Parent {
		if _, ok := f.variables[name]; ok {
			return f.mutable[name]
		}
	}
	return false
}

// DefinedInFrame reports whether name is bound as a variable directly in
// this frame (not an ancestor) — used to compute lambda captures: a name
// free in the lambda body is a capture exactly when its binding frame
// lies outside the lambda's own frame (SPEC_FULL.md §4.4 Lambda rule).
func (s *Scope) DefinedInFrame(name string) bool {
	_, ok := s.variables[name]
	return ok
}

// AddConstant registers a constant. Fails (ok=false) if the name is
// already visible as a constant at any enclosing level (types are a
// separate namespace and are not consulted) —
// RedefinedConstant, per spec.md §3.5.
func (s *Scope) AddConstant(name string, t types.Type) bool {
	if s.constantVisible(name) {
		return false
	}
	s.constants[name] = t
	return true
}

func (s *Scope) constantVisible(name string) bool {
	for f := s; f != nil; f = f.Parent {
		if _, ok := f.constants[name]; ok {
			return true
		}
	}
	return false
}

// LookupConstant walks frames leaf-to-root for a constant binding.
func (s *Scope) LookupConstant(name string) (types.Type, bool) {
	for f := s; f != nil; f = f.Parent {
		if t, ok := f.constants[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// AddType registers a named type (struct declaration or alias). Fails if
// the name is already visible as a type at any enclosing level.
func (s *Scope) AddType(name string, t types.Type) bool {
	for f := s; f != nil; f = f.Parent {
		if _, ok := f.types[name]; ok {
			return false
		}
	}
	s.types[name] = t
	return true
}

// LookupType walks frames leaf-to-root for a named type.
func (s *Scope) LookupType(name string) (types.Type, bool) {
	for f := s; f != nil; f = f.Parent {
		if t, ok := f.types[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// TopLevelNames returns every constant, function, declare, and struct
// name registered directly in s (used to check the scope-discipline
// invariant, spec.md §8.1 #4: after check() returns, the top-level frame
// holds exactly these, no more, no fewer).
func (s *Scope) TopLevelNames() (constants []string, typeNames []string) {
	for name := range s.constants {
		constants = append(constants, name)
	}
	for name := range s.types {
		typeNames = append(typeNames, name)
	}
	return
}
