package ast

import "github.com/H1ghBre4k3r/y-lang-sub001/internal/span"

// Initialisation is `let [mut] name [: Type] = value`.
type Initialisation[T any] struct {
	Pos            span.Span
	Info           T
	Name           string
	Mutable        bool
	TypeAnnotation TypeSyntax // optional, nil if omitted
	Value          Expression[T]
}

func (s *Initialisation[T]) Position() span.Span { return s.Pos }
func (s *Initialisation[T]) statementNode()      {}

// ConstDecl is `const name: Type = value`. Unlike Initialisation, the
// annotation is mandatory (SPEC_FULL.md §4.2).
type ConstDecl[T any] struct {
	Pos            span.Span
	Info           T
	Name           string
	TypeAnnotation TypeSyntax
	Value          Expression[T]
}

func (s *ConstDecl[T]) Position() span.Span { return s.Pos }
func (s *ConstDecl[T]) statementNode()      {}

// Assignment is `target = value`, where target is an identifier, index,
// or property expression (an lvalue).
type Assignment[T any] struct {
	Pos    span.Span
	Info   T
	Target Expression[T]
	Value  Expression[T]
}

func (s *Assignment[T]) Position() span.Span { return s.Pos }
func (s *Assignment[T]) statementNode()      {}

// ExpressionStatement is an expression evaluated for its side effects;
// its value is discarded. Distinguished from YieldingExpression, which
// instead supplies the enclosing block's value.
type ExpressionStatement[T any] struct {
	Pos  span.Span
	Info T
	Expr Expression[T]
}

func (s *ExpressionStatement[T]) Position() span.Span { return s.Pos }
func (s *ExpressionStatement[T]) statementNode()      {}

// YieldingExpression is the final statement of a block when it has no
// trailing separator — its value becomes the block's value. The parser
// enforces that only the last statement of a block may be one of these
// (SPEC_FULL.md §8.1 invariant, "yielding expression only at block end").
type YieldingExpression[T any] struct {
	Pos  span.Span
	Info T
	Expr Expression[T]
}

func (s *YieldingExpression[T]) Position() span.Span { return s.Pos }
func (s *YieldingExpression[T]) statementNode()      {}

// Return is `return value`.
type Return[T any] struct {
	Pos   span.Span
	Info  T
	Value Expression[T]
}

func (s *Return[T]) Position() span.Span { return s.Pos }
func (s *Return[T]) statementNode()      {}

// While is `while cond { ... }`.
type While[T any] struct {
	Pos       span.Span
	Info      T
	Condition Expression[T]
	Body      *Block[T]
}

func (s *While[T]) Position() span.Span { return s.Pos }
func (s *While[T]) statementNode()      {}

// FunctionDef is a top-level or instance-block function definition:
// `fn name(params) [: ReturnType] { body }`.
type FunctionDef[T any] struct {
	Pos        span.Span
	Info       T
	Name       string
	Params     []*Param[T]
	ReturnType TypeSyntax // optional, nil means Void
	Body       *Block[T]
}

func (s *FunctionDef[T]) Position() span.Span { return s.Pos }
func (s *FunctionDef[T]) statementNode()      {}

// Declaration is `declare name: Type` — an external symbol the shallow
// checker registers as a constant without a body (SPEC_FULL.md §4.3).
type Declaration[T any] struct {
	Pos            span.Span
	Info           T
	Name           string
	TypeAnnotation TypeSyntax
}

func (s *Declaration[T]) Position() span.Span { return s.Pos }
func (s *Declaration[T]) statementNode()      {}

// StructFieldDecl is one `name: Type` entry of a struct declaration.
type StructFieldDecl[T any] struct {
	Pos            span.Span
	Info           T
	Name           string
	TypeAnnotation TypeSyntax
}

// StructDecl is `struct Name { field: Type, ... }`.
type StructDecl[T any] struct {
	Pos    span.Span
	Info   T
	Name   string
	Fields []*StructFieldDecl[T]
}

func (s *StructDecl[T]) Position() span.Span { return s.Pos }
func (s *StructDecl[T]) statementNode()      {}

// Comment is a `// ...` source comment in statement position, carried
// through every pipeline stage as its own node so downstream tooling
// sees it. It has no semantics: the checker and validator pass it
// through untouched.
type Comment[T any] struct {
	Pos  span.Span
	Info T
	Text string
}

func (s *Comment[T]) Position() span.Span { return s.Pos }
func (s *Comment[T]) statementNode()      {}

// InstanceBlock is `instance Name { fn ... declare ... }` — methods and
// external declarations attached to a struct type. The checker lowers
// each method to a function named TypeName_methodName taking an implicit
// leading `&Name` receiver parameter (SPEC_FULL.md §4.4, instance
// semantics).
type InstanceBlock[T any] struct {
	Pos      span.Span
	Info     T
	TypeName string
	Methods  []*FunctionDef[T]
	Declares []*Declaration[T]
}

func (s *InstanceBlock[T]) Position() span.Span { return s.Pos }
func (s *InstanceBlock[T]) statementNode()      {}
