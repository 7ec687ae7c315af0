// Package diag implements the closed error taxonomy (SPEC_FULL.md §4.6)
// and the accumulate-vs-fail-fast sinks the parser and checkers use.
package diag

import (
	"fmt"

	"github.com/H1ghBre4k3r/y-lang-sub001/internal/span"
)

// Code is the closed set of semantic/syntactic error kinds.
type Code string

const (
	CodeUndefinedVariable    Code = "UndefinedVariable"
	CodeUndefinedType        Code = "UndefinedType"
	CodeRedefinedConstant    Code = "RedefinedConstant"
	CodeRedefinedType        Code = "RedefinedType"
	CodeInvalidConstantType  Code = "InvalidConstantType"
	CodeTypeMismatch         Code = "TypeMismatch"
	CodeArityMismatch        Code = "ArityMismatch"
	CodeNotCallable          Code = "NotCallable"
	CodeNotIndexable         Code = "NotIndexable"
	CodeUnknownField         Code = "UnknownField"
	CodeImmutableAssignment  Code = "ImmutableAssignment"
	CodeYieldNotAtEnd        Code = "YieldingExpressionNotAtEnd"
	CodeParseError           Code = "ParseError"
	CodeTypeValidationError  Code = "TypeValidationError"
)

// Error is the single concrete error type carrying a Code, the Span it
// occurred at, and a human-readable message — the teacher's
// diagnostics.DiagnosticError shape, generalized to this closed taxonomy
// instead of an open string-code set.
type Error struct {
	Code    Code
	Span    span.Span
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code Code, sp span.Span, message string) *Error {
	return &Error{Code: code, Span: sp, Message: message}
}

func UndefinedVariable(sp span.Span, name string) *Error {
	return New(CodeUndefinedVariable, sp, fmt.Sprintf("undefined variable %q", name))
}

func UndefinedType(sp span.Span, name string) *Error {
	return New(CodeUndefinedType, sp, fmt.Sprintf("undefined type %q", name))
}

func RedefinedConstant(sp span.Span, name string) *Error {
	return New(CodeRedefinedConstant, sp, fmt.Sprintf("%q is already defined", name))
}

func RedefinedType(sp span.Span, name string) *Error {
	return New(CodeRedefinedType, sp, fmt.Sprintf("type %q is already defined", name))
}

func InvalidConstantType(sp span.Span, name string) *Error {
	return New(CodeInvalidConstantType, sp, fmt.Sprintf("constant %q has an unresolvable type annotation", name))
}

func TypeMismatch(sp span.Span, expected, actual string) *Error {
	return New(CodeTypeMismatch, sp, fmt.Sprintf("expected %s, found %s", expected, actual))
}

func ArityMismatch(sp span.Span, expected, actual int) *Error {
	return New(CodeArityMismatch, sp, fmt.Sprintf("expected %d argument(s), found %d", expected, actual))
}

func NotCallable(sp span.Span, ty string) *Error {
	return New(CodeNotCallable, sp, fmt.Sprintf("value of type %s is not callable", ty))
}

func NotIndexable(sp span.Span, ty string) *Error {
	return New(CodeNotIndexable, sp, fmt.Sprintf("value of type %s is not indexable", ty))
}

func UnknownField(sp span.Span, structName, field string) *Error {
	return New(CodeUnknownField, sp, fmt.Sprintf("struct %q has no field %q", structName, field))
}

func ImmutableAssignment(sp span.Span, name string) *Error {
	return New(CodeImmutableAssignment, sp, fmt.Sprintf("cannot assign to immutable binding %q", name))
}

func YieldingExpressionNotAtEnd(sp span.Span) *Error {
	return New(CodeYieldNotAtEnd, sp, "a yielding expression may only appear as the last statement of a block")
}

func ParseError(sp span.Span, message string) *Error {
	return New(CodeParseError, sp, message)
}

func TypeValidationError(sp span.Span) *Error {
	return New(CodeTypeValidationError, sp, "type must be known at compile time")
}

// Sink accumulates diagnostics without aborting — the parser's error
// behaviour (SPEC_FULL.md §7).
type Sink struct {
	errors []*Error
}

func NewSink() *Sink { return &Sink{} }

func (s *Sink) Add(e *Error) {
	if e == nil {
		return
	}
	s.errors = append(s.errors, e)
}

func (s *Sink) All() []*Error { return s.errors }

func (s *Sink) Empty() bool { return len(s.errors) == 0 }

// First returns the earliest-recorded diagnostic, or nil if none were
// recorded. The parser's overall result is this single error once all
// input has been consumed (SPEC_FULL.md §4.2/§7).
func (s *Sink) First() *Error {
	if len(s.errors) == 0 {
		return nil
	}
	return s.errors[0]
}
