// Package ast defines the parser's output tree. Every node is generic
// over an annotation payload T (SPEC_FULL.md §3.3): T = unit.Unit fresh
// off the parser, T = CheckInfo while the deep checker runs, T = Concrete
// once validated. The three stages of the pipeline each build a new tree
// with a different T rather than mutating one tree in place, mirroring
// spec.md §3.6: "the deep checker reads from [the untyped AST] ... and
// constructs an annotated AST."
package ast

import (
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/span"
)

// Node is the base shape every AST node has: a source position. It
// intentionally carries no Accept/Visitor machinery — unlike the
// teacher's hand-written three-instantiation AST, Go generics let one
// node definition serve all three payloads, and cross-stage walks (parser
// → checker → validator) are each a transform to a *different* T, which
// doesn't fit a same-T visitor anyway. Same-T walks (the debug printer)
// use a plain type switch instead; see package printer.
type Node[T any] interface {
	Position() span.Span
}

// Expression is a Node that produces a value.
type Expression[T any] interface {
	Node[T]
	expressionNode()
}

// Statement is a Node that appears directly in a block.
type Statement[T any] interface {
	Node[T]
	statementNode()
}

// Program is the root of every parsed file.
type Program[T any] struct {
	Statements []Statement[T]
}

// Identifier is both a plain variable reference and, per SPEC_FULL.md
// §3.3, a "function reference" expression: top-level functions are
// registered by the shallow checker as ordinary Function-typed constants
// (spec.md §4.3), so referring to one by name is exactly an identifier
// lookup — no separate node kind is needed.
type Identifier[T any] struct {
	Pos  span.Span
	Info T
	Name string
}

func (i *Identifier[T]) Position() span.Span { return i.Pos }
func (i *Identifier[T]) expressionNode()     {}

type IntegerLiteral[T any] struct {
	Pos   span.Span
	Info  T
	Value int64
}

func (l *IntegerLiteral[T]) Position() span.Span { return l.Pos }
func (l *IntegerLiteral[T]) expressionNode()     {}

type FloatLiteral[T any] struct {
	Pos   span.Span
	Info  T
	Value float64
}

func (l *FloatLiteral[T]) Position() span.Span { return l.Pos }
func (l *FloatLiteral[T]) expressionNode()     {}

type BooleanLiteral[T any] struct {
	Pos   span.Span
	Info  T
	Value bool
}

func (l *BooleanLiteral[T]) Position() span.Span { return l.Pos }
func (l *BooleanLiteral[T]) expressionNode()     {}

// CharacterLiteral holds the single low byte of the source rune
// (SPEC_FULL.md §3.2's resolution of the Character Open Question).
type CharacterLiteral[T any] struct {
	Pos   span.Span
	Info  T
	Value byte
}

func (l *CharacterLiteral[T]) Position() span.Span { return l.Pos }
func (l *CharacterLiteral[T]) expressionNode()     {}

type StringLiteral[T any] struct {
	Pos   span.Span
	Info  T
	Value string
}

func (l *StringLiteral[T]) Position() span.Span { return l.Pos }
func (l *StringLiteral[T]) expressionNode()     {}
