// Package checker implements the deep checker (SPEC_FULL.md §4.4): a
// recursive, fail-fast traversal that consumes the shallow-checked
// top-level scope plus the untyped AST and produces an annotated
// (Checked) AST whose every node carries an infer.Var. Unlike package
// shallow, this pass recurses fully into every function body, lambda,
// and block — it's where unification actually happens.
//
// It stops at the first error, mirroring the original implementation's
// behaviour once name resolution is done: a type mismatch deep inside
// an expression makes the rest of that expression's types meaningless,
// so there is nothing to gain by continuing (contrast with the parser's
// accumulate-and-recover discipline, which exists because a syntax
// error in one statement says nothing about the next one).
package checker

import (
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/ast"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/diag"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/infer"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/scope"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/shallow"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/types"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/unit"
)

// ctx threads the inference arena and the handful of pieces of ambient
// state the recursive checker functions need, without every one of them
// taking half a dozen parameters.
type ctx struct {
	arena *infer.Arena

	// fnReturn is the declared return type of the innermost function
	// body currently being checked, or nil outside any function — a
	// `return` there is simply not cross-checked (bare top-level return is
	// accepted, not rejected; see DESIGN.md).
	fnReturn types.Type

	// captures, when non-nil, accumulates the names of free variables
	// resolved from outside lambdaFrame while checking the body of the
	// innermost lambda — the mechanism behind Lambda.Captures.
	captures    *[]string
	lambdaFrame *scope.Scope
}

func info(v infer.Var, sc *scope.Scope) ast.CheckInfo {
	return ast.CheckInfo{Var: v, Scope: sc}
}

// Check runs the deep checker over prog using topScope (as built by
// shallow.Check) and returns the annotated tree plus the arena that
// resolves every node's Var. It stops and returns the first error
// encountered.
func Check(prog *ast.Untyped, topScope *scope.Scope) (*ast.Checked, *infer.Arena, error) {
	arena := infer.NewArena()
	c := &ctx{arena: arena}
	out := &ast.Checked{}

	for _, stmt := range prog.Statements {
		checked, err := c.checkTopLevel(topScope, stmt)
		if err != nil {
			return nil, nil, err
		}
		if checked != nil {
			out.Statements = append(out.Statements, checked)
		}
	}
	return out, arena, nil
}

func (c *ctx) checkTopLevel(s *scope.Scope, stmt ast.Statement[unit.Unit]) (ast.Statement[ast.CheckInfo], error) {
	switch n := stmt.(type) {
	case *ast.StructDecl[unit.Unit]:
		return c.checkStructDecl(s, n)
	case *ast.Declaration[unit.Unit]:
		return c.checkDeclaration(s, n)
	case *ast.ConstDecl[unit.Unit]:
		return c.checkConstDecl(s, n)
	case *ast.FunctionDef[unit.Unit]:
		return c.checkFunctionDef(s, n, "")
	case *ast.InstanceBlock[unit.Unit]:
		return c.checkInstanceBlock(s, n)
	default:
		return c.checkStmt(s, stmt)
	}
}

func (c *ctx) checkStructDecl(s *scope.Scope, n *ast.StructDecl[unit.Unit]) (ast.Statement[ast.CheckInfo], error) {
	st, _ := s.LookupType(n.Name)
	v := c.arena.FreshWith(st)
	fields := make([]*ast.StructFieldDecl[ast.CheckInfo], len(n.Fields))
	for i, f := range n.Fields {
		ft := shallow.ResolveType(s, f.TypeAnnotation, diag.NewSink())
		fields[i] = &ast.StructFieldDecl[ast.CheckInfo]{
			Pos: f.Pos, Name: f.Name, TypeAnnotation: f.TypeAnnotation,
			Info: info(c.arena.FreshWith(ft), s),
		}
	}
	return &ast.StructDecl[ast.CheckInfo]{Pos: n.Pos, Info: info(v, s), Name: n.Name, Fields: fields}, nil
}

func (c *ctx) checkDeclaration(s *scope.Scope, n *ast.Declaration[unit.Unit]) (ast.Statement[ast.CheckInfo], error) {
	t, _ := s.LookupConstant(n.Name)
	v := c.arena.FreshWith(t)
	return &ast.Declaration[ast.CheckInfo]{Pos: n.Pos, Info: info(v, s), Name: n.Name, TypeAnnotation: n.TypeAnnotation}, nil
}

func (c *ctx) checkConstDecl(s *scope.Scope, n *ast.ConstDecl[unit.Unit]) (ast.Statement[ast.CheckInfo], error) {
	declared, _ := s.LookupConstant(n.Name)
	value, err := c.checkExpr(s, n.Value)
	if err != nil {
		return nil, err
	}
	if err := c.arena.UnifyWith(valueVar(value), declared, n.Pos); err != nil {
		return nil, err
	}
	v := c.arena.FreshWith(declared)
	return &ast.ConstDecl[ast.CheckInfo]{
		Pos: n.Pos, Info: info(v, s), Name: n.Name,
		TypeAnnotation: n.TypeAnnotation, Value: value,
	}, nil
}

func (c *ctx) checkInstanceBlock(s *scope.Scope, n *ast.InstanceBlock[unit.Unit]) (ast.Statement[ast.CheckInfo], error) {
	v := c.arena.FreshWith(types.Void{})
	methods := make([]*ast.FunctionDef[ast.CheckInfo], len(n.Methods))
	for i, m := range n.Methods {
		checked, err := c.checkFunctionDef(s, m, n.TypeName)
		if err != nil {
			return nil, err
		}
		methods[i] = checked.(*ast.FunctionDef[ast.CheckInfo])
	}
	declares := make([]*ast.Declaration[ast.CheckInfo], len(n.Declares))
	for i, d := range n.Declares {
		checked, err := c.checkDeclaration(s, d)
		if err != nil {
			return nil, err
		}
		declares[i] = checked.(*ast.Declaration[ast.CheckInfo])
	}
	return &ast.InstanceBlock[ast.CheckInfo]{
		Pos: n.Pos, Info: info(v, s), TypeName: n.TypeName,
		Methods: methods, Declares: declares,
	}, nil
}

// checkFunctionDef checks a top-level function or, when receiverOf is
// non-empty, an instance method — in which case an implicit `self`
// parameter of type `&receiverOf` is bound ahead of the declared
// parameters (SPEC_FULL.md §4.4, instance semantics; the choice of the
// receiver name "self" is recorded in DESIGN.md).
func (c *ctx) checkFunctionDef(s *scope.Scope, n *ast.FunctionDef[unit.Unit], receiverOf string) (ast.Statement[ast.CheckInfo], error) {
	fnName := n.Name
	lookupName := fnName
	if receiverOf != "" {
		lookupName = receiverOf + "_" + fnName
	}
	declared, _ := s.LookupConstant(lookupName)
	fnType, _ := declared.(types.Function)

	body := s.Child()
	paramOffset := 0
	if receiverOf != "" {
		recvType, _ := s.LookupType(receiverOf)
		body.AddVariable("self", c.arena.FreshWith(types.Reference{Of: recvType}), false)
		paramOffset = 1
	}

	params := make([]*ast.Param[ast.CheckInfo], len(n.Params))
	for i, p := range n.Params {
		pt := shallow.ResolveType(s, p.TypeAnnotation, diag.NewSink())
		if fnType.Params != nil && i+paramOffset < len(fnType.Params) {
			pt = fnType.Params[i+paramOffset]
		}
		pv := c.arena.FreshWith(pt)
		body.AddVariable(p.Name, pv, false)
		params[i] = &ast.Param[ast.CheckInfo]{Pos: p.Pos, Name: p.Name, TypeAnnotation: p.TypeAnnotation, Info: info(pv, body)}
	}

	retType := fnType.Return
	if retType == nil {
		retType = shallow.ResolveType(s, n.ReturnType, diag.NewSink())
	}

	inner := &ctx{arena: c.arena, fnReturn: retType}
	checkedBody, err := inner.checkBlock(body, n.Body)
	if err != nil {
		return nil, err
	}
	// A body ending in a yielding expression supplies the return value,
	// so its type must match the declared return type. A body without one
	// produces its value through `return` statements, each already
	// unified against fnReturn by checkReturn — its block value is Void
	// and only a Void-returning function may rely on falling off the end.
	if blockYields(n.Body) || types.Equal(retType, types.Void{}) {
		if err := c.arena.UnifyWith(checkedBody.Info.Var, retType, n.Pos); err != nil {
			return nil, err
		}
	}

	fv := c.arena.FreshWith(fnType)
	return &ast.FunctionDef[ast.CheckInfo]{
		Pos: n.Pos, Info: info(fv, s), Name: n.Name,
		Params: params, ReturnType: n.ReturnType, Body: checkedBody,
	}, nil
}

// blockYields reports whether b's final non-comment statement is a
// yielding expression, i.e. whether the block produces a value of its
// own.
func blockYields(b *ast.Block[unit.Unit]) bool {
	for i := len(b.Statements) - 1; i >= 0; i-- {
		switch b.Statements[i].(type) {
		case *ast.Comment[unit.Unit]:
			continue
		case *ast.YieldingExpression[unit.Unit]:
			return true
		default:
			return false
		}
	}
	return false
}

// valueVar extracts the Var annotation from any checked expression
// without a type switch over every node kind.
func valueVar(e ast.Expression[ast.CheckInfo]) infer.Var {
	return infoOf(e).Var
}

func infoOf(e ast.Expression[ast.CheckInfo]) ast.CheckInfo {
	switch n := e.(type) {
	case *ast.Identifier[ast.CheckInfo]:
		return n.Info
	case *ast.IntegerLiteral[ast.CheckInfo]:
		return n.Info
	case *ast.FloatLiteral[ast.CheckInfo]:
		return n.Info
	case *ast.BooleanLiteral[ast.CheckInfo]:
		return n.Info
	case *ast.CharacterLiteral[ast.CheckInfo]:
		return n.Info
	case *ast.StringLiteral[ast.CheckInfo]:
		return n.Info
	case *ast.Block[ast.CheckInfo]:
		return n.Info
	case *ast.If[ast.CheckInfo]:
		return n.Info
	case *ast.Lambda[ast.CheckInfo]:
		return n.Info
	case *ast.Paren[ast.CheckInfo]:
		return n.Info
	case *ast.Binary[ast.CheckInfo]:
		return n.Info
	case *ast.Prefix[ast.CheckInfo]:
		return n.Info
	case *ast.Call[ast.CheckInfo]:
		return n.Info
	case *ast.Index[ast.CheckInfo]:
		return n.Info
	case *ast.Property[ast.CheckInfo]:
		return n.Info
	case *ast.ArrayLiteral[ast.CheckInfo]:
		return n.Info
	case *ast.StructInit[ast.CheckInfo]:
		return n.Info
	default:
		return ast.CheckInfo{}
	}
}
