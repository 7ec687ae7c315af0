package diag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H1ghBre4k3r/y-lang-sub001/internal/diag"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/span"
)

var here = span.Span{Start: span.Position{Line: 1, Column: 5}, End: span.Position{Line: 1, Column: 8}}

func TestErrorString(t *testing.T) {
	testCases := []struct {
		name string
		err  *diag.Error
		want string
	}{
		{"type_mismatch", diag.TypeMismatch(here, "i64", "f64"), "TypeMismatch: expected i64, found f64"},
		{"undefined_variable", diag.UndefinedVariable(here, "y"), `UndefinedVariable: undefined variable "y"`},
		{"arity", diag.ArityMismatch(here, 2, 3), "ArityMismatch: expected 2 argument(s), found 3"},
		{"not_callable", diag.NotCallable(here, "i64"), "NotCallable: value of type i64 is not callable"},
		{"unknown_field", diag.UnknownField(here, "Point", "z"), `UnknownField: struct "Point" has no field "z"`},
		{"validation", diag.TypeValidationError(here), "TypeValidationError: type must be known at compile time"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.Error())
			assert.Equal(t, here, tc.err.Span, "constructors always attach the span")
		})
	}
}

func TestConstructorsCoverTheClosedTaxonomy(t *testing.T) {
	for err, code := range map[*diag.Error]diag.Code{
		diag.UndefinedVariable(here, "a"):          diag.CodeUndefinedVariable,
		diag.UndefinedType(here, "T"):              diag.CodeUndefinedType,
		diag.RedefinedConstant(here, "a"):          diag.CodeRedefinedConstant,
		diag.RedefinedType(here, "T"):              diag.CodeRedefinedType,
		diag.InvalidConstantType(here, "a"):        diag.CodeInvalidConstantType,
		diag.TypeMismatch(here, "i64", "f64"):      diag.CodeTypeMismatch,
		diag.ArityMismatch(here, 1, 2):             diag.CodeArityMismatch,
		diag.NotCallable(here, "i64"):              diag.CodeNotCallable,
		diag.NotIndexable(here, "i64"):             diag.CodeNotIndexable,
		diag.UnknownField(here, "S", "f"):          diag.CodeUnknownField,
		diag.ImmutableAssignment(here, "x"):        diag.CodeImmutableAssignment,
		diag.YieldingExpressionNotAtEnd(here):      diag.CodeYieldNotAtEnd,
		diag.ParseError(here, "unexpected token"):  diag.CodeParseError,
		diag.TypeValidationError(here):             diag.CodeTypeValidationError,
	} {
		assert.Equal(t, code, err.Code)
	}
}

func TestSink(t *testing.T) {
	s := diag.NewSink()
	assert.True(t, s.Empty())
	assert.Nil(t, s.First())

	s.Add(diag.ParseError(here, "first"))
	s.Add(diag.ParseError(here, "second"))
	s.Add(nil)

	assert.False(t, s.Empty())
	require.Len(t, s.All(), 2, "nil adds are ignored")
	assert.Equal(t, "first", s.First().Message, "First returns the earliest-recorded diagnostic")
}

func TestRender(t *testing.T) {
	src := "let x: i64 = 1.5;"
	sp := span.Span{Start: span.Position{Line: 1, Column: 14}, End: span.Position{Line: 1, Column: 17}}
	err := diag.TypeMismatch(sp, "i64", "f64")

	out := diag.Render(err, src, false)
	assert.Contains(t, out, "TypeMismatch: expected i64, found f64")
	assert.Contains(t, out, "1 | let x: i64 = 1.5;")
	assert.Contains(t, out, "^--")
}
