// Package shallow implements the first of the two semantic-analysis
// passes (SPEC_FULL.md §4.3): a non-recursive walk over the top-level
// statements of a program that registers every name reachable from
// anywhere else in the file, so the deep checker (package checker) can
// resolve forward references and mutual recursion without a
// fixed-point algorithm.
//
// It runs in two passes over the same statement list:
//
//  1. struct declarations only, resolving field type annotations
//     against the type names registered so far (no forward references
//     between structs — a struct may only reference a struct declared
//     before it, or a builtin).
//  2. everything else at top level: constants, functions (registered as
//     Function-typed constants), and `declare`d external symbols
//     (registered as constants of their declared type). This pass does
//     not recurse into function or lambda bodies; that's the deep
//     checker's job.
package shallow

import (
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/ast"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/diag"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/scope"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/types"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/unit"
)

// Check runs both passes over prog and returns the populated top-level
// scope. Errors are accumulated in errs rather than aborting, matching
// the parser's accumulate-don't-abort discipline (SPEC_FULL.md §4.1).
func Check(prog *ast.Untyped, errs *diag.Sink) *scope.Scope {
	s := scope.New()

	for _, stmt := range prog.Statements {
		if decl, ok := stmt.(*ast.StructDecl[unit.Unit]); ok {
			registerStruct(s, decl, errs)
		}
	}

	for _, stmt := range prog.Statements {
		switch n := stmt.(type) {
		case *ast.StructDecl[unit.Unit]:
			// already handled in pass 1
		case *ast.ConstDecl[unit.Unit]:
			registerConstant(s, n, errs)
		case *ast.FunctionDef[unit.Unit]:
			registerFunction(s, n, errs)
		case *ast.Declaration[unit.Unit]:
			registerDeclaration(s, n, errs)
		case *ast.InstanceBlock[unit.Unit]:
			registerInstance(s, n, errs)
		}
	}

	return s
}

// ResolveType resolves a TypeSyntax against s, recording UndefinedType
// for any name s doesn't know. Exported so the deep checker (package
// checker) can resolve the same annotations again for function/lambda
// parameters without duplicating this switch.
func ResolveType(s *scope.Scope, ts ast.TypeSyntax, errs *diag.Sink) types.Type {
	return resolveType(s, ts, errs)
}

func resolveType(s *scope.Scope, ts ast.TypeSyntax, errs *diag.Sink) types.Type {
	if ts == nil {
		return types.Void{}
	}
	switch t := ts.(type) {
	case *ast.NamedTypeSyntax:
		resolved, ok := types.ResolveNamed(t.Name, s.LookupType)
		if !ok {
			errs.Add(diag.UndefinedType(t.Pos, t.Name))
			return types.Unknown{}
		}
		return resolved
	case *ast.ReferenceTypeSyntax:
		return types.Reference{Of: resolveType(s, t.Of, errs)}
	case *ast.ArrayTypeSyntax:
		return types.Array{Of: resolveType(s, t.Of, errs)}
	case *ast.TupleTypeSyntax:
		elems := make([]types.Type, len(t.Of))
		for i, e := range t.Of {
			elems[i] = resolveType(s, e, errs)
		}
		return types.Tuple{Of: elems}
	case *ast.FunctionTypeSyntax:
		params := make([]types.Type, len(t.Params))
		for i, pt := range t.Params {
			params[i] = resolveType(s, pt, errs)
		}
		return types.Function{Params: params, Return: resolveType(s, t.Return, errs)}
	default:
		return types.Unknown{}
	}
}

func registerStruct(s *scope.Scope, decl *ast.StructDecl[unit.Unit], errs *diag.Sink) {
	fields := make([]types.Field, len(decl.Fields))
	for i, f := range decl.Fields {
		fields[i] = types.Field{Name: f.Name, Type: resolveType(s, f.TypeAnnotation, errs)}
	}
	st := types.Struct{Name: decl.Name, Fields: fields}
	if !s.AddType(decl.Name, st) {
		errs.Add(diag.RedefinedType(decl.Pos, decl.Name))
	}
}

// registerConstant resolves the constant's mandatory annotation. An
// annotation naming an unknown type is an InvalidConstantType on the
// constant itself (rather than a bare UndefinedType on the annotation) —
// the constant is the thing other code refers to, so the constant is
// what gets blamed.
func registerConstant(s *scope.Scope, decl *ast.ConstDecl[unit.Unit], errs *diag.Sink) {
	local := diag.NewSink()
	t := resolveType(s, decl.TypeAnnotation, local)
	if !local.Empty() {
		errs.Add(diag.InvalidConstantType(decl.Pos, decl.Name))
		return
	}
	if !s.AddConstant(decl.Name, t) {
		errs.Add(diag.RedefinedConstant(decl.Pos, decl.Name))
	}
}

func registerFunction(s *scope.Scope, fn *ast.FunctionDef[unit.Unit], errs *diag.Sink) {
	params := make([]types.Type, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = resolveType(s, p.TypeAnnotation, errs)
	}
	ft := types.Function{Params: params, Return: resolveType(s, fn.ReturnType, errs)}
	if !s.AddConstant(fn.Name, ft) {
		errs.Add(diag.RedefinedConstant(fn.Pos, fn.Name))
	}
}

func registerDeclaration(s *scope.Scope, d *ast.Declaration[unit.Unit], errs *diag.Sink) {
	t := resolveType(s, d.TypeAnnotation, errs)
	if !s.AddConstant(d.Name, t) {
		errs.Add(diag.RedefinedConstant(d.Pos, d.Name))
	}
}

// registerInstance registers each method of an instance block as a
// top-level function named `TypeName_methodName`, taking an implicit
// leading `&TypeName` receiver parameter ahead of its declared
// parameters (SPEC_FULL.md §4.4, instance semantics), plus each
// `declare`d external symbol unchanged.
func registerInstance(s *scope.Scope, inst *ast.InstanceBlock[unit.Unit], errs *diag.Sink) {
	receiver, ok := s.LookupType(inst.TypeName)
	if !ok {
		errs.Add(diag.UndefinedType(inst.Pos, inst.TypeName))
		receiver = types.Unknown{}
	}
	recvType := types.Reference{Of: receiver}

	for _, m := range inst.Methods {
		params := make([]types.Type, len(m.Params)+1)
		params[0] = recvType
		for i, p := range m.Params {
			params[i+1] = resolveType(s, p.TypeAnnotation, errs)
		}
		ft := types.Function{Params: params, Return: resolveType(s, m.ReturnType, errs)}
		name := inst.TypeName + "_" + m.Name
		if !s.AddConstant(name, ft) {
			errs.Add(diag.RedefinedConstant(m.Pos, name))
		}
	}

	for _, d := range inst.Declares {
		registerDeclaration(s, d, errs)
	}
}
