// Package codegen declares the interface boundary to the code generator
// (SPEC_FULL.md §6.2). Per spec.md §1, the generator itself is "described
// only at the interface boundary" — this package has no implementation,
// on purpose: the core this repository implements ends at a validated
// AST, and lowering that to an LLVM module (or any other backend) is an
// explicit Non-goal.
package codegen

import "github.com/H1ghBre4k3r/y-lang-sub001/internal/ast"

// Generator consumes a validated program — every node's info.Type fully
// concrete, struct fields in declaration order, function/lambda types
// carrying explicit capture lists, instance methods already lowered to
// ordinary TypeName_methodName functions (SPEC_FULL.md §6.2) — and
// produces whatever artifact the backend emits.
type Generator interface {
	Generate(stmts []ast.Statement[ast.Concrete]) error
}
