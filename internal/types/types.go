// Package types implements the closed set of semantic types
// (SPEC_FULL.md §3.2) and structural equality over them.
package types

import (
	"fmt"
	"strings"
)

// Type is the interface every concrete semantic type implements.
type Type interface {
	String() string
	isType()
}

type Integer struct{}

func (Integer) isType()        {}
func (Integer) String() string { return "i64" }

type FloatingPoint struct{}

func (FloatingPoint) isType()        {}
func (FloatingPoint) String() string { return "f64" }

type Boolean struct{}

func (Boolean) isType()        {}
func (Boolean) String() string { return "bool" }

// Character holds the single low byte of the source rune it was lexed
// from. SPEC_FULL.md §3.2 resolves the spec's Open Question this way,
// matching original_source/.../parser/ast/expression/character.rs, which
// truncates to a u8 rather than keeping a full Unicode scalar.
type Character struct{}

func (Character) isType()        {}
func (Character) String() string { return "char" }

type String struct{}

func (String) isType()        {}
func (String) String() string { return "string" }

type Void struct{}

func (Void) isType()        {}
func (Void) String() string { return "void" }

// Unknown is the sentinel for "not yet resolved". It must never survive
// into a validated AST (SPEC_FULL.md §3.2) — it is an internal marker
// only, never a surface type a user can write.
type Unknown struct{}

func (Unknown) isType()        {}
func (Unknown) String() string { return "?" }

type Reference struct {
	Of Type
}

func (Reference) isType()        {}
func (r Reference) String() string { return "&" + r.Of.String() }

type Tuple struct {
	Of []Type
}

func (Tuple) isType() {}
func (t Tuple) String() string {
	parts := make([]string, len(t.Of))
	for i, e := range t.Of {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

type Array struct {
	Of Type
}

func (Array) isType()        {}
func (a Array) String() string { return "[" + a.Of.String() + "]" }

// Field is one (name, type) entry of a Struct. Order is significant — it
// maps to layout (SPEC_FULL.md §3.2 / §6.2), which is why Struct keeps
// fields in a slice rather than a map.
type Field struct {
	Name string
	Type Type
}

type Struct struct {
	Name   string
	Fields []Field
}

func (Struct) isType() {}
func (s Struct) String() string { return s.Name }

// FieldIndex returns the declaration-order index of name, or -1.
func (s Struct) FieldIndex(name string) int {
	for i, f := range s.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// FieldType returns the type of name and whether it exists.
func (s Struct) FieldType(name string) (Type, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

type Function struct {
	Params []Type
	Return Type
}

func (Function) isType() {}
func (f Function) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("fn(%s): %s", strings.Join(parts, ", "), f.Return.String())
}

type Lambda struct {
	Params   []Type
	Return   Type
	Captures []string
}

func (Lambda) isType() {}
func (l Lambda) String() string {
	parts := make([]string, len(l.Params))
	for i, p := range l.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("\\(%s) => %s", strings.Join(parts, ", "), l.Return.String())
}

// Equal is structural equality over the closed type set. It never treats
// Unknown as a wildcard — callers that want that leniency go through
// infer.Unify instead, so Equal stays a safe building block for
// validation and tests alike.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch at := a.(type) {
	case Integer:
		_, ok := b.(Integer)
		return ok
	case FloatingPoint:
		_, ok := b.(FloatingPoint)
		return ok
	case Boolean:
		_, ok := b.(Boolean)
		return ok
	case Character:
		_, ok := b.(Character)
		return ok
	case String:
		_, ok := b.(String)
		return ok
	case Void:
		_, ok := b.(Void)
		return ok
	case Unknown:
		_, ok := b.(Unknown)
		return ok
	case Reference:
		bt, ok := b.(Reference)
		return ok && Equal(at.Of, bt.Of)
	case Tuple:
		bt, ok := b.(Tuple)
		if !ok || len(at.Of) != len(bt.Of) {
			return false
		}
		for i := range at.Of {
			if !Equal(at.Of[i], bt.Of[i]) {
				return false
			}
		}
		return true
	case Array:
		bt, ok := b.(Array)
		return ok && Equal(at.Of, bt.Of)
	case Struct:
		bt, ok := b.(Struct)
		if !ok || at.Name != bt.Name || len(at.Fields) != len(bt.Fields) {
			return false
		}
		for i := range at.Fields {
			if at.Fields[i].Name != bt.Fields[i].Name || !Equal(at.Fields[i].Type, bt.Fields[i].Type) {
				return false
			}
		}
		return true
	case Function:
		bt, ok := b.(Function)
		if !ok || len(at.Params) != len(bt.Params) || !Equal(at.Return, bt.Return) {
			return false
		}
		for i := range at.Params {
			if !Equal(at.Params[i], bt.Params[i]) {
				return false
			}
		}
		return true
	case Lambda:
		bt, ok := b.(Lambda)
		if !ok || len(at.Params) != len(bt.Params) || !Equal(at.Return, bt.Return) {
			return false
		}
		for i := range at.Params {
			if !Equal(at.Params[i], bt.Params[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// IsUnknown reports whether t is (or structurally contains) Unknown.
// Used by the validator to reject a frozen type that still has holes.
func IsUnknown(t Type) bool {
	switch tt := t.(type) {
	case Unknown:
		return true
	case Reference:
		return IsUnknown(tt.Of)
	case Array:
		return IsUnknown(tt.Of)
	case Tuple:
		for _, e := range tt.Of {
			if IsUnknown(e) {
				return true
			}
		}
		return false
	case Struct:
		for _, f := range tt.Fields {
			if IsUnknown(f.Type) {
				return true
			}
		}
		return false
	case Function:
		if IsUnknown(tt.Return) {
			return true
		}
		for _, p := range tt.Params {
			if IsUnknown(p) {
				return true
			}
		}
		return false
	case Lambda:
		if IsUnknown(tt.Return) {
			return true
		}
		for _, p := range tt.Params {
			if IsUnknown(p) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// ResolveNamed resolves a type name (as written in source: "i64", "Int",
// a struct name, ...) against the types already registered in scope. It
// is the closed-set half of "type-name → type resolution" (SPEC_FULL.md
// §2); the scope-aware lookup of user-defined names lives in package
// scope.
func ResolveNamed(name string, lookup func(string) (Type, bool)) (Type, bool) {
	switch name {
	case "i64", "Int":
		return Integer{}, true
	case "f64", "Float":
		return FloatingPoint{}, true
	case "bool", "Bool":
		return Boolean{}, true
	case "char", "Char":
		return Character{}, true
	case "string", "String":
		return String{}, true
	case "void", "Void":
		return Void{}, true
	}
	return lookup(name)
}
