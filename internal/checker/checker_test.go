package checker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H1ghBre4k3r/y-lang-sub001/internal/ast"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/checker"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/diag"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/infer"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/lexer"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/parser"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/scope"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/shallow"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/span"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/types"
)

func run(t *testing.T, src string) (*ast.Checked, *infer.Arena, *scope.Scope, error) {
	t.Helper()
	p := parser.New(lexer.Lex(src), span.SourceID{})
	prog := p.ParseProgram()
	require.True(t, p.Errors().Empty(), "test source must parse cleanly: %v", p.Errors().All())

	errs := diag.NewSink()
	top := shallow.Check(prog, errs)
	require.True(t, errs.Empty(), "test source must shallow-check cleanly: %v", errs.All())

	checked, arena, err := checker.Check(prog, top)
	return checked, arena, top, err
}

func runOK(t *testing.T, src string) (*ast.Checked, *infer.Arena, *scope.Scope) {
	t.Helper()
	checked, arena, top, err := run(t, src)
	require.NoError(t, err)
	return checked, arena, top
}

func expectError(t *testing.T, src string, code diag.Code) *diag.Error {
	t.Helper()
	_, _, _, err := run(t, src)
	require.Error(t, err)
	de, ok := err.(*diag.Error)
	require.True(t, ok, "checker errors are *diag.Error, got %T", err)
	assert.Equal(t, code, de.Code)
	return de
}

// infoOf mirrors the checker's own annotation extraction for the node
// kinds the tests below inspect.
func infoOf(t *testing.T, e ast.Expression[ast.CheckInfo]) ast.CheckInfo {
	t.Helper()
	switch n := e.(type) {
	case *ast.Identifier[ast.CheckInfo]:
		return n.Info
	case *ast.IntegerLiteral[ast.CheckInfo]:
		return n.Info
	case *ast.Binary[ast.CheckInfo]:
		return n.Info
	case *ast.Property[ast.CheckInfo]:
		return n.Info
	case *ast.Call[ast.CheckInfo]:
		return n.Info
	case *ast.Index[ast.CheckInfo]:
		return n.Info
	case *ast.Lambda[ast.CheckInfo]:
		return n.Info
	case *ast.If[ast.CheckInfo]:
		return n.Info
	case *ast.StructInit[ast.CheckInfo]:
		return n.Info
	default:
		t.Fatalf("infoOf: unhandled node %T", e)
		return ast.CheckInfo{}
	}
}

func typeOf(t *testing.T, arena *infer.Arena, e ast.Expression[ast.CheckInfo]) types.Type {
	t.Helper()
	got, ok := arena.Get(infoOf(t, e).Var)
	require.True(t, ok, "node %T has no resolved type", e)
	return got
}

func fnNamed(t *testing.T, checked *ast.Checked, name string) *ast.FunctionDef[ast.CheckInfo] {
	t.Helper()
	for _, s := range checked.Statements {
		if fn, ok := s.(*ast.FunctionDef[ast.CheckInfo]); ok && fn.Name == name {
			return fn
		}
	}
	t.Fatalf("no function %q", name)
	return nil
}

func yieldOf(t *testing.T, b *ast.Block[ast.CheckInfo]) ast.Expression[ast.CheckInfo] {
	t.Helper()
	require.NotEmpty(t, b.Statements)
	y, ok := b.Statements[len(b.Statements)-1].(*ast.YieldingExpression[ast.CheckInfo])
	require.True(t, ok, "block does not end in a yielding expression")
	return y.Expr
}

func TestIntegerLiteralFunction(t *testing.T) {
	checked, arena, _ := runOK(t, "fn main(): i64 { 42 }")

	main := fnNamed(t, checked, "main")
	ret := yieldOf(t, main.Body)
	assert.True(t, types.Equal(types.Integer{}, typeOf(t, arena, ret)))

	fnType, ok := arena.Get(main.Info.Var)
	require.True(t, ok)
	assert.True(t, types.Equal(types.Function{Return: types.Integer{}}, fnType))
}

func TestStructConstructionAndFieldAccess(t *testing.T) {
	checked, arena, top := runOK(t, `
struct Point { x: i64, y: i64 }
fn main(): i64 { let p = Point { x: 1, y: 2 }; p.x }
`)
	resolved, _ := top.LookupType("Point")
	st := resolved.(types.Struct)
	assert.Equal(t, 0, st.FieldIndex("x"))
	assert.Equal(t, 1, st.FieldIndex("y"))

	main := fnNamed(t, checked, "main")
	access := yieldOf(t, main.Body).(*ast.Property[ast.CheckInfo])
	assert.True(t, types.Equal(types.Integer{}, typeOf(t, arena, access)))
	assert.True(t, types.Equal(st, typeOf(t, arena, access.Receiver)))
}

func TestAnnotatedInitialisationMismatch(t *testing.T) {
	expectError(t, "fn main(): i64 { let x: i64 = 1.5; x }", diag.CodeTypeMismatch)
}

func TestUndefinedVariable(t *testing.T) {
	de := expectError(t, "fn main(): i64 { y }", diag.CodeUndefinedVariable)
	assert.Equal(t, 18, de.Span.Start.Column, "the error points at the reference to y")
}

func TestMutualRecursion(t *testing.T) {
	_, _, top := runOK(t, `
fn even(n: i64): bool { if (n == 0) { true } else { odd(n - 1) } }
fn odd(n: i64): bool { if (n == 0) { false } else { even(n - 1) } }
`)
	want := types.Function{Params: []types.Type{types.Integer{}}, Return: types.Boolean{}}
	for _, name := range []string{"even", "odd"} {
		got, ok := top.LookupConstant(name)
		require.True(t, ok)
		assert.True(t, types.Equal(want, got), "%s resolves despite definition order", name)
	}
}

// Two references to one binding share a single inference variable, so
// resolving one resolves the other.
func TestReferencesToOneBindingShareTheirCell(t *testing.T) {
	checked, arena, _ := runOK(t, "fn main(): i64 { let x = 1; x + x }")

	main := fnNamed(t, checked, "main")
	init := main.Body.Statements[0].(*ast.Initialisation[ast.CheckInfo])
	sum := yieldOf(t, main.Body).(*ast.Binary[ast.CheckInfo])

	left := infoOf(t, sum.Left).Var
	right := infoOf(t, sum.Right).Var
	assert.Equal(t, left, right)
	assert.Equal(t, init.Info.Var, left, "the references share the binding's own cell")

	got, _ := arena.Get(left)
	assert.True(t, types.Equal(types.Integer{}, got))
}

func TestLambdaCaptures(t *testing.T) {
	checked, arena, _ := runOK(t, `fn main(): i64 { let a = 1; let f = \(x: i64) => x + a; 0 }`)

	main := fnNamed(t, checked, "main")
	init := main.Body.Statements[1].(*ast.Initialisation[ast.CheckInfo])
	lambda := init.Value.(*ast.Lambda[ast.CheckInfo])

	lt, ok := typeOf(t, arena, lambda).(types.Lambda)
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, lt.Captures, "a is free in the body and bound outside the lambda's frame")
	require.Len(t, lt.Params, 1)
	assert.True(t, types.Equal(types.Integer{}, lt.Params[0]))
	assert.True(t, types.Equal(types.Integer{}, lt.Return))
}

func TestLambdaParametersAreNotCaptures(t *testing.T) {
	checked, arena, _ := runOK(t, `fn main(): i64 { let f = \(x: i64, y: i64) => x + y; 0 }`)

	main := fnNamed(t, checked, "main")
	init := main.Body.Statements[0].(*ast.Initialisation[ast.CheckInfo])
	lt := typeOf(t, arena, init.Value.(*ast.Lambda[ast.CheckInfo])).(types.Lambda)
	assert.Empty(t, lt.Captures)
}

func TestCallingALambda(t *testing.T) {
	checked, arena, _ := runOK(t, `fn main(): i64 { let f = \(x: i64) => x + 1; f(2) }`)

	main := fnNamed(t, checked, "main")
	call := yieldOf(t, main.Body).(*ast.Call[ast.CheckInfo])
	assert.True(t, types.Equal(types.Integer{}, typeOf(t, arena, call)))
}

func TestAssignment(t *testing.T) {
	runOK(t, "fn main(): i64 { let mut x = 1; x = 2; x }")

	expectError(t, "fn main(): i64 { let x = 1; x = 2; x }", diag.CodeImmutableAssignment)
	expectError(t, "fn main(): i64 { let mut x = 1; x = 1.5; x }", diag.CodeTypeMismatch)
}

func TestAssignmentThroughFieldAndIndexLValues(t *testing.T) {
	runOK(t, `
struct Point { x: i64, y: i64 }
fn main(): void { let mut p = Point { x: 1, y: 2 }; p.x = 3; }
`)
	runOK(t, "fn main(): void { let mut a = [1, 2]; a[0] = 3; }")
	runOK(t, "fn main(): void { let mut a = [1]; (a)[0] = 2; }")

	expectError(t, `
struct Point { x: i64, y: i64 }
fn main(): void { let p = Point { x: 1, y: 2 }; p.x = 3; }
`, diag.CodeImmutableAssignment)
	expectError(t, "fn main(): void { let a = [1, 2]; a[0] = 3; }", diag.CodeImmutableAssignment)
	expectError(t, "fn main(): void { let a = [[1]]; a[0][0] = 2; }", diag.CodeImmutableAssignment)
}

func TestAssignmentThroughReferenceBase(t *testing.T) {
	// self is an immutable binding, but its &Point type derefs to a
	// location the method may write.
	runOK(t, `
struct Point { x: i64, y: i64 }
instance Point { fn setX(v: i64): void { self.x = v; } }
`)
}

func TestCommentsPassThroughChecking(t *testing.T) {
	checked, arena, _ := runOK(t, "fn main(): i64 {\n\t// the answer\n\t42 // trailing\n}")

	main := fnNamed(t, checked, "main")
	require.Len(t, main.Body.Statements, 3)

	comment, ok := main.Body.Statements[0].(*ast.Comment[ast.CheckInfo])
	require.True(t, ok)
	assert.Equal(t, " the answer", comment.Text)

	// The trailing comment does not displace the yield: the body still
	// supplies the declared i64.
	y := main.Body.Statements[1].(*ast.YieldingExpression[ast.CheckInfo])
	got, _ := arena.Get(infoOf(t, y.Expr).Var)
	assert.True(t, types.Equal(types.Integer{}, got))
}

func TestCallErrors(t *testing.T) {
	expectError(t, "fn main(): i64 { 1(2) }", diag.CodeNotCallable)
	expectError(t, `
fn f(x: i64): i64 { x }
fn main(): i64 { f(1, 2) }
`, diag.CodeArityMismatch)
	expectError(t, `
fn f(x: i64): i64 { x }
fn main(): i64 { f(true) }
`, diag.CodeTypeMismatch)
}

func TestIndexing(t *testing.T) {
	checked, arena, _ := runOK(t, "fn main(): i64 { let xs = [1, 2, 3]; xs[0] }")
	main := fnNamed(t, checked, "main")
	idx := yieldOf(t, main.Body).(*ast.Index[ast.CheckInfo])
	assert.True(t, types.Equal(types.Integer{}, typeOf(t, arena, idx)))

	expectError(t, "fn main(): i64 { 1[0] }", diag.CodeNotIndexable)
	expectError(t, "fn main(): i64 { let xs = [1]; xs[true] }", diag.CodeTypeMismatch)
	expectError(t, "fn main(): void { let xs = [1, 1.5]; }", diag.CodeTypeMismatch)
}

func TestPropertyErrors(t *testing.T) {
	expectError(t, `
struct Point { x: i64 }
fn main(): i64 { let p = Point { x: 1 }; p.z }
`, diag.CodeUnknownField)
	expectError(t, "fn main(): i64 { let n = 1; n.x }", diag.CodeNotIndexable)
}

func TestStructInitErrors(t *testing.T) {
	expectError(t, `
struct Point { x: i64, y: i64 }
fn main(): void { let p = Point { x: 1 }; }
`, diag.CodeArityMismatch)
	expectError(t, `
struct Point { x: i64, y: i64 }
fn main(): void { let p = Point { x: 1, z: 2 }; }
`, diag.CodeUnknownField)
	expectError(t, `
struct Point { x: i64, y: i64 }
fn main(): void { let p = Point { x: true, y: 2 }; }
`, diag.CodeTypeMismatch)
}

func TestIfExpression(t *testing.T) {
	checked, arena, _ := runOK(t, "fn main(): i64 { if (true) { 1 } else { 2 } }")
	main := fnNamed(t, checked, "main")
	cond := yieldOf(t, main.Body).(*ast.If[ast.CheckInfo])
	assert.True(t, types.Equal(types.Integer{}, typeOf(t, arena, cond)), "with both branches, the if's value is their shared type")

	expectError(t, "fn main(): i64 { if (1) { 1 } else { 2 } }", diag.CodeTypeMismatch)
	expectError(t, "fn main(): i64 { if (true) { 1 } else { 1.5 } }", diag.CodeTypeMismatch)
}

func TestIfWithoutElseIsVoid(t *testing.T) {
	checked, arena, _ := runOK(t, "fn main() { if (true) { 1; } }")
	main := fnNamed(t, checked, "main")
	cond := yieldOf(t, main.Body).(*ast.If[ast.CheckInfo])
	assert.True(t, types.Equal(types.Void{}, typeOf(t, arena, cond)))
}

func TestWhile(t *testing.T) {
	runOK(t, "fn main() { let mut i = 0; while i < 3 { i = i + 1; } }")

	expectError(t, "fn main() { while 1 { } }", diag.CodeTypeMismatch)
}

func TestReturn(t *testing.T) {
	runOK(t, "fn main(): i64 { return 42; }")
	runOK(t, "fn f(n: i64): i64 { if (n < 0) { return 0; }; n }")

	expectError(t, "fn main(): i64 { return true; }", diag.CodeTypeMismatch)
}

func TestMixedArithmeticIsAnError(t *testing.T) {
	expectError(t, "fn main(): i64 { 1 + 1.5 }", diag.CodeTypeMismatch)
}

func TestComparisonYieldsBoolean(t *testing.T) {
	checked, arena, _ := runOK(t, "fn main(): bool { 1 < 2 }")
	main := fnNamed(t, checked, "main")
	cmp := yieldOf(t, main.Body).(*ast.Binary[ast.CheckInfo])
	assert.True(t, types.Equal(types.Boolean{}, typeOf(t, arena, cmp)))
}

func TestPrefixNegationRequiresBoolean(t *testing.T) {
	runOK(t, "fn main(): bool { !true }")
	expectError(t, "fn main(): bool { !1 }", diag.CodeTypeMismatch)
}

func TestConstValueCheckedAgainstAnnotation(t *testing.T) {
	runOK(t, "const LIMIT: i64 = 100;")
	expectError(t, "const LIMIT: i64 = true;", diag.CodeTypeMismatch)
}

func TestInstanceMethodSelfReceiver(t *testing.T) {
	checked, arena, top := runOK(t, `
struct Point { x: i64, y: i64 }
instance Point { fn getX(): i64 { self.x } }
`)
	var inst *ast.InstanceBlock[ast.CheckInfo]
	for _, s := range checked.Statements {
		if n, ok := s.(*ast.InstanceBlock[ast.CheckInfo]); ok {
			inst = n
		}
	}
	require.NotNil(t, inst)
	require.Len(t, inst.Methods, 1)

	point, _ := top.LookupType("Point")
	got, ok := arena.Get(inst.Methods[0].Info.Var)
	require.True(t, ok)
	want := types.Function{Params: []types.Type{types.Reference{Of: point}}, Return: types.Integer{}}
	assert.True(t, types.Equal(want, got), "the method carries its lowered TypeName_methodName signature")
}

func TestCallBeforeDefinition(t *testing.T) {
	checked, arena, _ := runOK(t, `
fn main(): i64 { helper(1) }
fn helper(n: i64): i64 { n }
`)
	main := fnNamed(t, checked, "main")
	call := yieldOf(t, main.Body).(*ast.Call[ast.CheckInfo])
	assert.True(t, types.Equal(types.Integer{}, typeOf(t, arena, call)))
}
