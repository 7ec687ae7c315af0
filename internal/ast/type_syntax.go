package ast

import "github.com/H1ghBre4k3r/y-lang-sub001/internal/span"

// TypeSyntax is a type annotation as written in source — `i64`, `[Point]`,
// `&Point`, `(i64, bool)`, `fn(i64): bool`. It carries no T parameter:
// annotations are resolved into a types.Type during checking (via
// types.ResolveNamed) and don't need to survive as part of the annotated
// tree afterwards.
type TypeSyntax interface {
	Position() span.Span
	typeSyntaxNode()
}

type NamedTypeSyntax struct {
	Pos  span.Span
	Name string
}

func (t *NamedTypeSyntax) Position() span.Span { return t.Pos }
func (t *NamedTypeSyntax) typeSyntaxNode()     {}

type ArrayTypeSyntax struct {
	Pos span.Span
	Of  TypeSyntax
}

func (t *ArrayTypeSyntax) Position() span.Span { return t.Pos }
func (t *ArrayTypeSyntax) typeSyntaxNode()     {}

type ReferenceTypeSyntax struct {
	Pos span.Span
	Of  TypeSyntax
}

func (t *ReferenceTypeSyntax) Position() span.Span { return t.Pos }
func (t *ReferenceTypeSyntax) typeSyntaxNode()     {}

type TupleTypeSyntax struct {
	Pos span.Span
	Of  []TypeSyntax
}

func (t *TupleTypeSyntax) Position() span.Span { return t.Pos }
func (t *TupleTypeSyntax) typeSyntaxNode()     {}

type FunctionTypeSyntax struct {
	Pos    span.Span
	Params []TypeSyntax
	Return TypeSyntax
}

func (t *FunctionTypeSyntax) Position() span.Span { return t.Pos }
func (t *FunctionTypeSyntax) typeSyntaxNode()     {}
