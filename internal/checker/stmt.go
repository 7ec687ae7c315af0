package checker

import (
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/ast"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/diag"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/scope"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/shallow"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/types"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/unit"
)

// checkBlock pushes its own child frame of s (so a block nested in a
// function body gets a scope layer distinct from the parameter frame)
// and checks every statement in order. The block's own value is its
// last statement's value when that statement is a YieldingExpression,
// and Void otherwise (SPEC_FULL.md §4.4 block typing rule).
func (c *ctx) checkBlock(s *scope.Scope, blk *ast.Block[unit.Unit]) (*ast.Block[ast.CheckInfo], error) {
	inner := s.Child()
	stmts := make([]ast.Statement[ast.CheckInfo], len(blk.Statements))
	for i, stmt := range blk.Statements {
		checked, err := c.checkStmt(inner, stmt)
		if err != nil {
			return nil, err
		}
		stmts[i] = checked
	}

	// The block's value comes from its final yielding expression;
	// trailing comments sit after it without displacing it.
	var resultVar = c.arena.FreshWith(types.Void{})
	for i := len(stmts) - 1; i >= 0; i-- {
		if _, ok := stmts[i].(*ast.Comment[ast.CheckInfo]); ok {
			continue
		}
		if y, ok := stmts[i].(*ast.YieldingExpression[ast.CheckInfo]); ok {
			resultVar = valueVar(y.Expr)
		}
		break
	}

	return &ast.Block[ast.CheckInfo]{Pos: blk.Pos, Statements: stmts, Info: info(resultVar, inner)}, nil
}

func (c *ctx) checkStmt(s *scope.Scope, stmt ast.Statement[unit.Unit]) (ast.Statement[ast.CheckInfo], error) {
	switch n := stmt.(type) {
	case *ast.Initialisation[unit.Unit]:
		return c.checkInitialisation(s, n)
	case *ast.Assignment[unit.Unit]:
		return c.checkAssignment(s, n)
	case *ast.ExpressionStatement[unit.Unit]:
		return c.checkExpressionStatement(s, n)
	case *ast.YieldingExpression[unit.Unit]:
		return c.checkYieldingExpression(s, n)
	case *ast.While[unit.Unit]:
		return c.checkWhile(s, n)
	case *ast.Return[unit.Unit]:
		return c.checkReturn(s, n)
	case *ast.Comment[unit.Unit]:
		return &ast.Comment[ast.CheckInfo]{Pos: n.Pos, Text: n.Text, Info: info(c.arena.FreshWith(types.Void{}), s)}, nil
	default:
		return nil, diag.ParseError(stmt.Position(), "unsupported statement")
	}
}

func (c *ctx) checkInitialisation(s *scope.Scope, n *ast.Initialisation[unit.Unit]) (ast.Statement[ast.CheckInfo], error) {
	value, err := c.checkExpr(s, n.Value)
	if err != nil {
		return nil, err
	}
	if n.TypeAnnotation != nil {
		declared := shallow.ResolveType(s, n.TypeAnnotation, diag.NewSink())
		if err := c.arena.UnifyWith(valueVar(value), declared, n.Pos); err != nil {
			return nil, err
		}
	}
	s.AddVariable(n.Name, valueVar(value), n.Mutable)
	return &ast.Initialisation[ast.CheckInfo]{
		Pos: n.Pos, Info: infoOf(value), Name: n.Name, Mutable: n.Mutable,
		TypeAnnotation: n.TypeAnnotation, Value: value,
	}, nil
}

// checkAssignment rejects assignment through an immutable binding: the
// target — identifier, index, or property lvalue — is walked back to
// the binding it roots in, which must be `let mut` or reached through a
// reference (SPEC_FULL.md §4.4 assignment rule).
func (c *ctx) checkAssignment(s *scope.Scope, n *ast.Assignment[unit.Unit]) (ast.Statement[ast.CheckInfo], error) {
	if err := c.checkLValue(s, n.Target, false); err != nil {
		return nil, err
	}
	target, err := c.checkExpr(s, n.Target)
	if err != nil {
		return nil, err
	}
	value, err := c.checkExpr(s, n.Value)
	if err != nil {
		return nil, err
	}
	if err := c.arena.Unify(valueVar(target), valueVar(value), n.Pos); err != nil {
		return nil, err
	}
	return &ast.Assignment[ast.CheckInfo]{Pos: n.Pos, Info: infoOf(target), Target: target, Value: value}, nil
}

// checkLValue walks an assignment target down to the binding it roots
// in — through index and property receivers, and through parens — and
// rejects the write when that binding is immutable. viaAccess is true
// once the walk has passed at least one index/property step: in that
// position a Reference-typed base is writable regardless of the
// binding's own mutability, since the reference derefs to a location
// its holder may mutate (`self.x = v` inside an instance method is the
// canonical case). A target that roots in anything other than a named
// binding (a call result, a literal) has no binding to gate on and is
// left to the type rules.
func (c *ctx) checkLValue(s *scope.Scope, target ast.Expression[unit.Unit], viaAccess bool) *diag.Error {
	switch n := target.(type) {
	case *ast.Identifier[unit.Unit]:
		if s.IsMutable(n.Name) {
			return nil
		}
		if viaAccess {
			if v, ok := s.LookupVariable(n.Name); ok {
				if t, ok := c.arena.Get(v); ok {
					if _, isRef := t.(types.Reference); isRef {
						return nil
					}
				}
			}
		}
		return diag.ImmutableAssignment(n.Pos, n.Name)
	case *ast.Paren[unit.Unit]:
		return c.checkLValue(s, n.Inner, viaAccess)
	case *ast.Index[unit.Unit]:
		return c.checkLValue(s, n.Receiver, true)
	case *ast.Property[unit.Unit]:
		return c.checkLValue(s, n.Receiver, true)
	default:
		return nil
	}
}

func (c *ctx) checkExpressionStatement(s *scope.Scope, n *ast.ExpressionStatement[unit.Unit]) (ast.Statement[ast.CheckInfo], error) {
	expr, err := c.checkExpr(s, n.Expr)
	if err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement[ast.CheckInfo]{Pos: n.Pos, Info: infoOf(expr), Expr: expr}, nil
}

func (c *ctx) checkYieldingExpression(s *scope.Scope, n *ast.YieldingExpression[unit.Unit]) (ast.Statement[ast.CheckInfo], error) {
	expr, err := c.checkExpr(s, n.Expr)
	if err != nil {
		return nil, err
	}
	return &ast.YieldingExpression[ast.CheckInfo]{Pos: n.Pos, Info: infoOf(expr), Expr: expr}, nil
}

func (c *ctx) checkWhile(s *scope.Scope, n *ast.While[unit.Unit]) (ast.Statement[ast.CheckInfo], error) {
	cond, err := c.checkExpr(s, n.Condition)
	if err != nil {
		return nil, err
	}
	if err := c.arena.UnifyWith(valueVar(cond), types.Boolean{}, n.Condition.Position()); err != nil {
		return nil, err
	}
	body, err := c.checkBlock(s, n.Body)
	if err != nil {
		return nil, err
	}
	return &ast.While[ast.CheckInfo]{Pos: n.Pos, Info: info(c.arena.FreshWith(types.Void{}), s), Condition: cond, Body: body}, nil
}

// checkReturn unifies the returned value (or Void, for a bare `return`)
// against the innermost function's declared return type. Outside any
// function fnReturn is nil and no unification is performed — a bare
// top-level return is accepted, not rejected (see DESIGN.md).
func (c *ctx) checkReturn(s *scope.Scope, n *ast.Return[unit.Unit]) (ast.Statement[ast.CheckInfo], error) {
	var value ast.Expression[ast.CheckInfo]
	var v = c.arena.FreshWith(types.Void{})
	if n.Value != nil {
		checked, err := c.checkExpr(s, n.Value)
		if err != nil {
			return nil, err
		}
		value = checked
		v = valueVar(value)
	}
	if c.fnReturn != nil {
		if err := c.arena.UnifyWith(v, c.fnReturn, n.Pos); err != nil {
			return nil, err
		}
	}
	return &ast.Return[ast.CheckInfo]{Pos: n.Pos, Info: info(v, s), Value: value}, nil
}
