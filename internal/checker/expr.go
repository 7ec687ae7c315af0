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

func (c *ctx) checkExpr(s *scope.Scope, e ast.Expression[unit.Unit]) (ast.Expression[ast.CheckInfo], error) {
	switch n := e.(type) {
	case *ast.Identifier[unit.Unit]:
		return c.checkIdentifier(s, n)
	case *ast.IntegerLiteral[unit.Unit]:
		return &ast.IntegerLiteral[ast.CheckInfo]{Pos: n.Pos, Value: n.Value, Info: info(c.arena.FreshWith(types.Integer{}), s)}, nil
	case *ast.FloatLiteral[unit.Unit]:
		return &ast.FloatLiteral[ast.CheckInfo]{Pos: n.Pos, Value: n.Value, Info: info(c.arena.FreshWith(types.FloatingPoint{}), s)}, nil
	case *ast.BooleanLiteral[unit.Unit]:
		return &ast.BooleanLiteral[ast.CheckInfo]{Pos: n.Pos, Value: n.Value, Info: info(c.arena.FreshWith(types.Boolean{}), s)}, nil
	case *ast.CharacterLiteral[unit.Unit]:
		return &ast.CharacterLiteral[ast.CheckInfo]{Pos: n.Pos, Value: n.Value, Info: info(c.arena.FreshWith(types.Character{}), s)}, nil
	case *ast.StringLiteral[unit.Unit]:
		return &ast.StringLiteral[ast.CheckInfo]{Pos: n.Pos, Value: n.Value, Info: info(c.arena.FreshWith(types.String{}), s)}, nil
	case *ast.Paren[unit.Unit]:
		return c.checkParen(s, n)
	case *ast.Binary[unit.Unit]:
		return c.checkBinary(s, n)
	case *ast.Prefix[unit.Unit]:
		return c.checkPrefix(s, n)
	case *ast.Call[unit.Unit]:
		return c.checkCall(s, n)
	case *ast.Index[unit.Unit]:
		return c.checkIndex(s, n)
	case *ast.Property[unit.Unit]:
		return c.checkProperty(s, n)
	case *ast.ArrayLiteral[unit.Unit]:
		return c.checkArrayLiteral(s, n)
	case *ast.StructInit[unit.Unit]:
		return c.checkStructInit(s, n)
	case *ast.If[unit.Unit]:
		return c.checkIf(s, n)
	case *ast.Lambda[unit.Unit]:
		return c.checkLambda(s, n)
	case *ast.Block[unit.Unit]:
		return c.checkBlock(s, n)
	default:
		return nil, diag.ParseError(e.Position(), "unsupported expression")
	}
}

// checkIdentifier resolves name as a local variable first (sharing its
// existing Var, the alias-correctness invariant), then as a constant
// (wrapping its already-known type in a fresh Var), recording the
// capture if it was found outside the innermost lambda's own frame
// (SPEC_FULL.md §4.4 Lambda rule).
func (c *ctx) checkIdentifier(s *scope.Scope, n *ast.Identifier[unit.Unit]) (ast.Expression[ast.CheckInfo], error) {
	if v, ok := s.LookupVariable(n.Name); ok {
		if c.captures != nil && !c.lambdaFrame.DefinedInFrame(n.Name) {
			addCapture(c.captures, n.Name)
		}
		return &ast.Identifier[ast.CheckInfo]{Pos: n.Pos, Name: n.Name, Info: info(v, s)}, nil
	}
	if t, ok := s.LookupConstant(n.Name); ok {
		return &ast.Identifier[ast.CheckInfo]{Pos: n.Pos, Name: n.Name, Info: info(c.arena.FreshWith(t), s)}, nil
	}
	return nil, diag.UndefinedVariable(n.Pos, n.Name)
}

func addCapture(captures *[]string, name string) {
	for _, existing := range *captures {
		if existing == name {
			return
		}
	}
	*captures = append(*captures, name)
}

func (c *ctx) checkParen(s *scope.Scope, n *ast.Paren[unit.Unit]) (ast.Expression[ast.CheckInfo], error) {
	inner, err := c.checkExpr(s, n.Inner)
	if err != nil {
		return nil, err
	}
	return &ast.Paren[ast.CheckInfo]{Pos: n.Pos, Inner: inner, Info: infoOf(inner)}, nil
}

func (c *ctx) checkBinary(s *scope.Scope, n *ast.Binary[unit.Unit]) (ast.Expression[ast.CheckInfo], error) {
	left, err := c.checkExpr(s, n.Left)
	if err != nil {
		return nil, err
	}
	right, err := c.checkExpr(s, n.Right)
	if err != nil {
		return nil, err
	}
	if err := c.arena.Unify(valueVar(left), valueVar(right), n.Pos); err != nil {
		return nil, err
	}

	var resultVar infer.Var
	switch n.Op {
	case ast.OpEq, ast.OpLt, ast.OpGt, ast.OpLe, ast.OpGe:
		resultVar = c.arena.FreshWith(types.Boolean{})
	default: // arithmetic: result type is the (now-unified) operand type
		resultVar = valueVar(left)
	}
	return &ast.Binary[ast.CheckInfo]{Pos: n.Pos, Op: n.Op, Left: left, Right: right, Info: info(resultVar, s)}, nil
}

// checkPrefix checks `!` (requires and yields Boolean) and `-` (yields
// the operand's own type unchanged). Neither closed-set kind membership
// for `-` (Integer vs FloatingPoint) is enforced here beyond what
// unification already guarantees elsewhere — a dedicated numeric-kind
// constraint system is the typeclass machinery SPEC_FULL.md's Non-goals
// exclude.
func (c *ctx) checkPrefix(s *scope.Scope, n *ast.Prefix[unit.Unit]) (ast.Expression[ast.CheckInfo], error) {
	operand, err := c.checkExpr(s, n.Operand)
	if err != nil {
		return nil, err
	}
	var resultVar infer.Var
	if n.Op == ast.OpNot {
		if err := c.arena.UnifyWith(valueVar(operand), types.Boolean{}, n.Pos); err != nil {
			return nil, err
		}
		resultVar = valueVar(operand)
	} else {
		resultVar = valueVar(operand)
	}
	return &ast.Prefix[ast.CheckInfo]{Pos: n.Pos, Op: n.Op, Operand: operand, Info: info(resultVar, s)}, nil
}

func (c *ctx) checkCall(s *scope.Scope, n *ast.Call[unit.Unit]) (ast.Expression[ast.CheckInfo], error) {
	callee, err := c.checkExpr(s, n.Callee)
	if err != nil {
		return nil, err
	}
	calleeType, ok := c.arena.Get(valueVar(callee))
	if !ok {
		return nil, diag.TypeValidationError(n.Pos)
	}
	var params []types.Type
	var ret types.Type
	switch ft := calleeType.(type) {
	case types.Function:
		params, ret = ft.Params, ft.Return
	case types.Lambda:
		params, ret = ft.Params, ft.Return
	default:
		return nil, diag.NotCallable(n.Pos, calleeType.String())
	}
	if len(params) != len(n.Args) {
		return nil, diag.ArityMismatch(n.Pos, len(params), len(n.Args))
	}
	args := make([]ast.Expression[ast.CheckInfo], len(n.Args))
	for i, a := range n.Args {
		checked, err := c.checkExpr(s, a)
		if err != nil {
			return nil, err
		}
		if err := c.arena.UnifyWith(valueVar(checked), params[i], a.Position()); err != nil {
			return nil, err
		}
		args[i] = checked
	}
	return &ast.Call[ast.CheckInfo]{Pos: n.Pos, Callee: callee, Args: args, Info: info(c.arena.FreshWith(ret), s)}, nil
}

func (c *ctx) checkIndex(s *scope.Scope, n *ast.Index[unit.Unit]) (ast.Expression[ast.CheckInfo], error) {
	receiver, err := c.checkExpr(s, n.Receiver)
	if err != nil {
		return nil, err
	}
	receiverType, ok := c.arena.Get(valueVar(receiver))
	if !ok {
		return nil, diag.TypeValidationError(n.Pos)
	}
	arr, ok := receiverType.(types.Array)
	if !ok {
		return nil, diag.NotIndexable(n.Pos, receiverType.String())
	}
	index, err := c.checkExpr(s, n.Index)
	if err != nil {
		return nil, err
	}
	if err := c.arena.UnifyWith(valueVar(index), types.Integer{}, n.Index.Position()); err != nil {
		return nil, err
	}
	return &ast.Index[ast.CheckInfo]{Pos: n.Pos, Receiver: receiver, Index: index, Info: info(c.arena.FreshWith(arr.Of), s)}, nil
}

func (c *ctx) checkProperty(s *scope.Scope, n *ast.Property[unit.Unit]) (ast.Expression[ast.CheckInfo], error) {
	receiver, err := c.checkExpr(s, n.Receiver)
	if err != nil {
		return nil, err
	}
	receiverType, ok := c.arena.Get(valueVar(receiver))
	if !ok {
		return nil, diag.TypeValidationError(n.Pos)
	}
	// Field access through a reference auto-derefs one level, the way a
	// `self` receiver or any `&Struct` value is used by instance methods.
	if ref, ok := receiverType.(types.Reference); ok {
		receiverType = ref.Of
	}
	st, ok := receiverType.(types.Struct)
	if !ok {
		return nil, diag.NotIndexable(n.Pos, receiverType.String())
	}
	ft, ok := st.FieldType(n.Field)
	if !ok {
		return nil, diag.UnknownField(n.Pos, st.Name, n.Field)
	}
	return &ast.Property[ast.CheckInfo]{Pos: n.Pos, Receiver: receiver, Field: n.Field, Info: info(c.arena.FreshWith(ft), s)}, nil
}

func (c *ctx) checkArrayLiteral(s *scope.Scope, n *ast.ArrayLiteral[unit.Unit]) (ast.Expression[ast.CheckInfo], error) {
	elems := make([]ast.Expression[ast.CheckInfo], len(n.Elements))
	var elemVar infer.Var
	haveElemVar := false
	for i, el := range n.Elements {
		checked, err := c.checkExpr(s, el)
		if err != nil {
			return nil, err
		}
		if !haveElemVar {
			elemVar = valueVar(checked)
			haveElemVar = true
		} else if err := c.arena.Unify(elemVar, valueVar(checked), el.Position()); err != nil {
			return nil, err
		}
		elems[i] = checked
	}
	var elemType types.Type = types.Unknown{}
	if haveElemVar {
		if t, ok := c.arena.Get(elemVar); ok {
			elemType = t
		}
	}
	return &ast.ArrayLiteral[ast.CheckInfo]{Pos: n.Pos, Elements: elems, Info: info(c.arena.FreshWith(types.Array{Of: elemType}), s)}, nil
}

func (c *ctx) checkStructInit(s *scope.Scope, n *ast.StructInit[unit.Unit]) (ast.Expression[ast.CheckInfo], error) {
	resolved, ok := s.LookupType(n.Name)
	if !ok {
		return nil, diag.UndefinedType(n.Pos, n.Name)
	}
	st, ok := resolved.(types.Struct)
	if !ok {
		return nil, diag.UndefinedType(n.Pos, n.Name)
	}
	if len(n.Fields) != len(st.Fields) {
		return nil, diag.ArityMismatch(n.Pos, len(st.Fields), len(n.Fields))
	}
	fields := make([]ast.FieldInit[ast.CheckInfo], len(n.Fields))
	for i, f := range n.Fields {
		ft, ok := st.FieldType(f.Name)
		if !ok {
			return nil, diag.UnknownField(f.Pos, st.Name, f.Name)
		}
		value, err := c.checkExpr(s, f.Value)
		if err != nil {
			return nil, err
		}
		if err := c.arena.UnifyWith(valueVar(value), ft, f.Pos); err != nil {
			return nil, err
		}
		fields[i] = ast.FieldInit[ast.CheckInfo]{Pos: f.Pos, Name: f.Name, Value: value}
	}
	return &ast.StructInit[ast.CheckInfo]{Pos: n.Pos, Name: n.Name, Fields: fields, Info: info(c.arena.FreshWith(st), s)}, nil
}

// checkIf unifies the two branches' values when there is an else branch
// (the if-expression's value is that shared type); with no else branch
// the expression's value is always Void, since there is no value to
// produce on the path that skips the body (SPEC_FULL.md §4.4).
func (c *ctx) checkIf(s *scope.Scope, n *ast.If[unit.Unit]) (ast.Expression[ast.CheckInfo], error) {
	cond, err := c.checkExpr(s, n.Condition)
	if err != nil {
		return nil, err
	}
	if err := c.arena.UnifyWith(valueVar(cond), types.Boolean{}, n.Condition.Position()); err != nil {
		return nil, err
	}
	then, err := c.checkBlock(s, n.Then)
	if err != nil {
		return nil, err
	}

	var elseBlock *ast.Block[ast.CheckInfo]
	var resultVar infer.Var
	if n.Else != nil {
		elseBlock, err = c.checkBlock(s, n.Else)
		if err != nil {
			return nil, err
		}
		if err := c.arena.Unify(then.Info.Var, elseBlock.Info.Var, n.Pos); err != nil {
			return nil, err
		}
		resultVar = then.Info.Var
	} else {
		resultVar = c.arena.FreshWith(types.Void{})
	}

	return &ast.If[ast.CheckInfo]{Pos: n.Pos, Condition: cond, Then: then, Else: elseBlock, Info: info(resultVar, s)}, nil
}

// checkLambda checks the lambda body with a fresh capture accumulator
// and a child scope whose frame is exactly the parameters — any
// identifier resolved to a variable binding outside that frame is a
// capture (SPEC_FULL.md §4.4).
func (c *ctx) checkLambda(s *scope.Scope, n *ast.Lambda[unit.Unit]) (ast.Expression[ast.CheckInfo], error) {
	inner := s.Child()
	params := make([]*ast.Param[ast.CheckInfo], len(n.Params))
	paramTypes := make([]types.Type, len(n.Params))
	for i, p := range n.Params {
		var pt types.Type = types.Unknown{}
		if p.TypeAnnotation != nil {
			pt = shallow.ResolveType(s, p.TypeAnnotation, diag.NewSink())
		}
		paramTypes[i] = pt
		pv := c.arena.FreshWith(pt)
		inner.AddVariable(p.Name, pv, false)
		params[i] = &ast.Param[ast.CheckInfo]{Pos: p.Pos, Name: p.Name, TypeAnnotation: p.TypeAnnotation, Info: info(pv, inner)}
	}

	captures := []string{}
	lambdaCtx := &ctx{arena: c.arena, fnReturn: c.fnReturn, captures: &captures, lambdaFrame: inner}
	body, err := lambdaCtx.checkExpr(inner, n.Body)
	if err != nil {
		return nil, err
	}
	if n.ReturnType != nil {
		retType := shallow.ResolveType(s, n.ReturnType, diag.NewSink())
		if err := c.arena.UnifyWith(valueVar(body), retType, n.Pos); err != nil {
			return nil, err
		}
	}
	bodyType, ok := c.arena.Get(valueVar(body))
	if !ok {
		bodyType = types.Unknown{}
	}
	lt := types.Lambda{Params: paramTypes, Return: bodyType, Captures: captures}
	return &ast.Lambda[ast.CheckInfo]{Pos: n.Pos, Params: params, ReturnType: n.ReturnType, Body: body, Info: info(c.arena.FreshWith(lt), s)}, nil
}
