package ast

import "github.com/H1ghBre4k3r/y-lang-sub001/internal/span"

// Block is a brace-delimited sequence of statements. If the last
// statement is a YieldingExpression, the block's own value is that
// expression's value; otherwise the block's value is Void
// (SPEC_FULL.md §4.2 block grammar, §4.4 block typing rule).
type Block[T any] struct {
	Pos        span.Span
	Info       T
	Statements []Statement[T]
}

func (b *Block[T]) Position() span.Span { return b.Pos }
func (b *Block[T]) expressionNode()     {}

// If is `if cond { ... } [else { ... }]`. Else is nil when there is no
// else branch, in which case the overall expression's type is Void.
type If[T any] struct {
	Pos       span.Span
	Info      T
	Condition Expression[T]
	Then      *Block[T]
	Else      *Block[T]
}

func (i *If[T]) Position() span.Span { return i.Pos }
func (i *If[T]) expressionNode()     {}

// Param is one lambda or function parameter. TypeAnnotation is nil for a
// lambda parameter with an inferred type.
type Param[T any] struct {
	Pos            span.Span
	Info           T
	Name           string
	TypeAnnotation TypeSyntax
}

func (p *Param[T]) Position() span.Span { return p.Pos }

// Lambda is `\(params) => expr`. Captures are computed by the deep
// checker via scope.DefinedInFrame and recorded in Info, not here.
type Lambda[T any] struct {
	Pos        span.Span
	Info       T
	Params     []*Param[T]
	ReturnType TypeSyntax // optional, nil if omitted
	Body       Expression[T]
}

func (l *Lambda[T]) Position() span.Span { return l.Pos }
func (l *Lambda[T]) expressionNode()     {}

// Paren is a parenthesised expression, kept as its own node (rather than
// discarded during parsing) so the printer can round-trip source layout
// and spans stay exact over the inner expression's own parens.
type Paren[T any] struct {
	Pos   span.Span
	Info  T
	Inner Expression[T]
}

func (p *Paren[T]) Position() span.Span { return p.Pos }
func (p *Paren[T]) expressionNode()     {}

type BinaryOp string

const (
	OpAdd BinaryOp = "+"
	OpSub BinaryOp = "-"
	OpMul BinaryOp = "*"
	OpDiv BinaryOp = "/"
	OpEq  BinaryOp = "=="
	OpLt  BinaryOp = "<"
	OpGt  BinaryOp = ">"
	OpLe  BinaryOp = "<="
	OpGe  BinaryOp = ">="
)

type Binary[T any] struct {
	Pos   span.Span
	Info  T
	Op    BinaryOp
	Left  Expression[T]
	Right Expression[T]
}

func (b *Binary[T]) Position() span.Span { return b.Pos }
func (b *Binary[T]) expressionNode()     {}

type PrefixOp string

const (
	OpNeg PrefixOp = "-"
	OpNot PrefixOp = "!"
)

type Prefix[T any] struct {
	Pos     span.Span
	Info    T
	Op      PrefixOp
	Operand Expression[T]
}

func (p *Prefix[T]) Position() span.Span { return p.Pos }
func (p *Prefix[T]) expressionNode()     {}

// Call is postfix function application: `callee(args...)`.
type Call[T any] struct {
	Pos    span.Span
	Info   T
	Callee Expression[T]
	Args   []Expression[T]
}

func (c *Call[T]) Position() span.Span { return c.Pos }
func (c *Call[T]) expressionNode()     {}

// Index is postfix array indexing: `receiver[index]`.
type Index[T any] struct {
	Pos      span.Span
	Info     T
	Receiver Expression[T]
	Index    Expression[T]
}

func (i *Index[T]) Position() span.Span { return i.Pos }
func (i *Index[T]) expressionNode()     {}

// Property is postfix field access: `receiver.field`.
type Property[T any] struct {
	Pos      span.Span
	Info     T
	Receiver Expression[T]
	Field    string
}

func (p *Property[T]) Position() span.Span { return p.Pos }
func (p *Property[T]) expressionNode()     {}

type ArrayLiteral[T any] struct {
	Pos      span.Span
	Info     T
	Elements []Expression[T]
}

func (a *ArrayLiteral[T]) Position() span.Span { return a.Pos }
func (a *ArrayLiteral[T]) expressionNode()     {}

// FieldInit is one `name: value` entry of a struct construction
// expression, kept in source order (a Struct's Equal/FieldIndex care
// about declaration order, not construction order).
type FieldInit[T any] struct {
	Pos   span.Span
	Name  string
	Value Expression[T]
}

// StructInit is `Name { field: value, ... }`.
type StructInit[T any] struct {
	Pos    span.Span
	Info   T
	Name   string
	Fields []FieldInit[T]
}

func (s *StructInit[T]) Position() span.Span { return s.Pos }
func (s *StructInit[T]) expressionNode()     {}
