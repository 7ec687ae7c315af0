// Package validator implements the third and final semantic-analysis
// pass (SPEC_FULL.md §4.5): it walks a Checked AST and freezes every
// node's inference cell into a concrete types.Type, producing a
// Validated AST. A cell that never got a value, or still holds
// types.Unknown, is reported as a TypeValidationError — Unknown must
// never survive past this point (SPEC_FULL.md §3.2).
//
// Like the deep checker, this pass is fail-fast: a node whose type
// never resolved makes everything downstream of it meaningless.
package validator

import (
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/ast"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/diag"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/infer"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/span"
)

// Validate freezes every node of prog using arena (as produced by
// package checker) and returns the Validated AST.
func Validate(prog *ast.Checked, arena *infer.Arena) (*ast.Validated, error) {
	v := &validator{arena: arena}
	out := &ast.Validated{}
	for _, stmt := range prog.Statements {
		checked, err := v.stmt(stmt)
		if err != nil {
			return nil, err
		}
		out.Statements = append(out.Statements, checked)
	}
	return out, nil
}

type validator struct {
	arena *infer.Arena
}

// freezeAt freezes info's inference cell into a concrete type, blaming
// sp (the owning node's own position) in any TypeValidationError.
func (v *validator) freezeAt(info ast.CheckInfo, sp span.Span) (ast.Concrete, error) {
	t, err := v.arena.Concrete(info.Var, sp)
	if err != nil {
		return ast.Concrete{}, err
	}
	return ast.Concrete{Type: t}, nil
}

func (v *validator) stmt(s ast.Statement[ast.CheckInfo]) (ast.Statement[ast.Concrete], error) {
	switch n := s.(type) {
	case *ast.StructDecl[ast.CheckInfo]:
		return v.structDecl(n)
	case *ast.Declaration[ast.CheckInfo]:
		return v.declaration(n)
	case *ast.ConstDecl[ast.CheckInfo]:
		return v.constDecl(n)
	case *ast.InstanceBlock[ast.CheckInfo]:
		return v.instanceBlock(n)
	case *ast.FunctionDef[ast.CheckInfo]:
		return v.functionDef(n)
	case *ast.Initialisation[ast.CheckInfo]:
		return v.initialisation(n)
	case *ast.Assignment[ast.CheckInfo]:
		return v.assignment(n)
	case *ast.ExpressionStatement[ast.CheckInfo]:
		return v.expressionStatement(n)
	case *ast.YieldingExpression[ast.CheckInfo]:
		return v.yieldingExpression(n)
	case *ast.Return[ast.CheckInfo]:
		return v.returnStmt(n)
	case *ast.While[ast.CheckInfo]:
		return v.whileStmt(n)
	case *ast.Comment[ast.CheckInfo]:
		info, err := v.freezeAt(n.Info, n.Pos)
		if err != nil {
			return nil, err
		}
		return &ast.Comment[ast.Concrete]{Pos: n.Pos, Info: info, Text: n.Text}, nil
	default:
		return nil, diag.TypeValidationError(n.Position())
	}
}

func (v *validator) structDecl(n *ast.StructDecl[ast.CheckInfo]) (ast.Statement[ast.Concrete], error) {
	info, err := v.freezeAt(n.Info, n.Pos)
	if err != nil {
		return nil, err
	}
	fields := make([]*ast.StructFieldDecl[ast.Concrete], len(n.Fields))
	for i, f := range n.Fields {
		fi, err := v.freezeAt(f.Info, f.Pos)
		if err != nil {
			return nil, err
		}
		fields[i] = &ast.StructFieldDecl[ast.Concrete]{Pos: f.Pos, Info: fi, Name: f.Name, TypeAnnotation: f.TypeAnnotation}
	}
	return &ast.StructDecl[ast.Concrete]{Pos: n.Pos, Info: info, Name: n.Name, Fields: fields}, nil
}

func (v *validator) declaration(n *ast.Declaration[ast.CheckInfo]) (ast.Statement[ast.Concrete], error) {
	info, err := v.freezeAt(n.Info, n.Pos)
	if err != nil {
		return nil, err
	}
	return &ast.Declaration[ast.Concrete]{Pos: n.Pos, Info: info, Name: n.Name, TypeAnnotation: n.TypeAnnotation}, nil
}

func (v *validator) constDecl(n *ast.ConstDecl[ast.CheckInfo]) (ast.Statement[ast.Concrete], error) {
	value, err := v.expr(n.Value)
	if err != nil {
		return nil, err
	}
	info, err := v.freezeAt(n.Info, n.Pos)
	if err != nil {
		return nil, err
	}
	return &ast.ConstDecl[ast.Concrete]{Pos: n.Pos, Info: info, Name: n.Name, TypeAnnotation: n.TypeAnnotation, Value: value}, nil
}

func (v *validator) instanceBlock(n *ast.InstanceBlock[ast.CheckInfo]) (ast.Statement[ast.Concrete], error) {
	info, err := v.freezeAt(n.Info, n.Pos)
	if err != nil {
		return nil, err
	}
	methods := make([]*ast.FunctionDef[ast.Concrete], len(n.Methods))
	for i, m := range n.Methods {
		checked, err := v.functionDef(m)
		if err != nil {
			return nil, err
		}
		methods[i] = checked.(*ast.FunctionDef[ast.Concrete])
	}
	declares := make([]*ast.Declaration[ast.Concrete], len(n.Declares))
	for i, d := range n.Declares {
		checked, err := v.declaration(d)
		if err != nil {
			return nil, err
		}
		declares[i] = checked.(*ast.Declaration[ast.Concrete])
	}
	return &ast.InstanceBlock[ast.Concrete]{Pos: n.Pos, Info: info, TypeName: n.TypeName, Methods: methods, Declares: declares}, nil
}

func (v *validator) functionDef(n *ast.FunctionDef[ast.CheckInfo]) (ast.Statement[ast.Concrete], error) {
	params := make([]*ast.Param[ast.Concrete], len(n.Params))
	for i, p := range n.Params {
		pi, err := v.freezeAt(p.Info, p.Pos)
		if err != nil {
			return nil, err
		}
		params[i] = &ast.Param[ast.Concrete]{Pos: p.Pos, Info: pi, Name: p.Name, TypeAnnotation: p.TypeAnnotation}
	}
	body, err := v.block(n.Body)
	if err != nil {
		return nil, err
	}
	info, err := v.freezeAt(n.Info, n.Pos)
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDef[ast.Concrete]{Pos: n.Pos, Info: info, Name: n.Name, Params: params, ReturnType: n.ReturnType, Body: body}, nil
}

func (v *validator) initialisation(n *ast.Initialisation[ast.CheckInfo]) (ast.Statement[ast.Concrete], error) {
	value, err := v.expr(n.Value)
	if err != nil {
		return nil, err
	}
	info, err := v.freezeAt(n.Info, n.Pos)
	if err != nil {
		return nil, err
	}
	return &ast.Initialisation[ast.Concrete]{Pos: n.Pos, Info: info, Name: n.Name, Mutable: n.Mutable, TypeAnnotation: n.TypeAnnotation, Value: value}, nil
}

func (v *validator) assignment(n *ast.Assignment[ast.CheckInfo]) (ast.Statement[ast.Concrete], error) {
	target, err := v.expr(n.Target)
	if err != nil {
		return nil, err
	}
	value, err := v.expr(n.Value)
	if err != nil {
		return nil, err
	}
	info, err := v.freezeAt(n.Info, n.Pos)
	if err != nil {
		return nil, err
	}
	return &ast.Assignment[ast.Concrete]{Pos: n.Pos, Info: info, Target: target, Value: value}, nil
}

func (v *validator) expressionStatement(n *ast.ExpressionStatement[ast.CheckInfo]) (ast.Statement[ast.Concrete], error) {
	expr, err := v.expr(n.Expr)
	if err != nil {
		return nil, err
	}
	info, err := v.freezeAt(n.Info, n.Pos)
	if err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement[ast.Concrete]{Pos: n.Pos, Info: info, Expr: expr}, nil
}

func (v *validator) yieldingExpression(n *ast.YieldingExpression[ast.CheckInfo]) (ast.Statement[ast.Concrete], error) {
	expr, err := v.expr(n.Expr)
	if err != nil {
		return nil, err
	}
	info, err := v.freezeAt(n.Info, n.Pos)
	if err != nil {
		return nil, err
	}
	return &ast.YieldingExpression[ast.Concrete]{Pos: n.Pos, Info: info, Expr: expr}, nil
}

func (v *validator) returnStmt(n *ast.Return[ast.CheckInfo]) (ast.Statement[ast.Concrete], error) {
	var value ast.Expression[ast.Concrete]
	if n.Value != nil {
		checked, err := v.expr(n.Value)
		if err != nil {
			return nil, err
		}
		value = checked
	}
	info, err := v.freezeAt(n.Info, n.Pos)
	if err != nil {
		return nil, err
	}
	return &ast.Return[ast.Concrete]{Pos: n.Pos, Info: info, Value: value}, nil
}

func (v *validator) whileStmt(n *ast.While[ast.CheckInfo]) (ast.Statement[ast.Concrete], error) {
	cond, err := v.expr(n.Condition)
	if err != nil {
		return nil, err
	}
	body, err := v.block(n.Body)
	if err != nil {
		return nil, err
	}
	info, err := v.freezeAt(n.Info, n.Pos)
	if err != nil {
		return nil, err
	}
	return &ast.While[ast.Concrete]{Pos: n.Pos, Info: info, Condition: cond, Body: body}, nil
}

func (v *validator) block(b *ast.Block[ast.CheckInfo]) (*ast.Block[ast.Concrete], error) {
	stmts := make([]ast.Statement[ast.Concrete], len(b.Statements))
	for i, s := range b.Statements {
		checked, err := v.stmt(s)
		if err != nil {
			return nil, err
		}
		stmts[i] = checked
	}
	info, err := v.freezeAt(b.Info, b.Pos)
	if err != nil {
		return nil, err
	}
	return &ast.Block[ast.Concrete]{Pos: b.Pos, Info: info, Statements: stmts}, nil
}

func (v *validator) expr(e ast.Expression[ast.CheckInfo]) (ast.Expression[ast.Concrete], error) {
	switch n := e.(type) {
	case *ast.Identifier[ast.CheckInfo]:
		info, err := v.freezeAt(n.Info, n.Pos)
		if err != nil {
			return nil, err
		}
		return &ast.Identifier[ast.Concrete]{Pos: n.Pos, Info: info, Name: n.Name}, nil
	case *ast.IntegerLiteral[ast.CheckInfo]:
		info, err := v.freezeAt(n.Info, n.Pos)
		if err != nil {
			return nil, err
		}
		return &ast.IntegerLiteral[ast.Concrete]{Pos: n.Pos, Info: info, Value: n.Value}, nil
	case *ast.FloatLiteral[ast.CheckInfo]:
		info, err := v.freezeAt(n.Info, n.Pos)
		if err != nil {
			return nil, err
		}
		return &ast.FloatLiteral[ast.Concrete]{Pos: n.Pos, Info: info, Value: n.Value}, nil
	case *ast.BooleanLiteral[ast.CheckInfo]:
		info, err := v.freezeAt(n.Info, n.Pos)
		if err != nil {
			return nil, err
		}
		return &ast.BooleanLiteral[ast.Concrete]{Pos: n.Pos, Info: info, Value: n.Value}, nil
	case *ast.CharacterLiteral[ast.CheckInfo]:
		info, err := v.freezeAt(n.Info, n.Pos)
		if err != nil {
			return nil, err
		}
		return &ast.CharacterLiteral[ast.Concrete]{Pos: n.Pos, Info: info, Value: n.Value}, nil
	case *ast.StringLiteral[ast.CheckInfo]:
		info, err := v.freezeAt(n.Info, n.Pos)
		if err != nil {
			return nil, err
		}
		return &ast.StringLiteral[ast.Concrete]{Pos: n.Pos, Info: info, Value: n.Value}, nil
	case *ast.Paren[ast.CheckInfo]:
		inner, err := v.expr(n.Inner)
		if err != nil {
			return nil, err
		}
		info, err := v.freezeAt(n.Info, n.Pos)
		if err != nil {
			return nil, err
		}
		return &ast.Paren[ast.Concrete]{Pos: n.Pos, Info: info, Inner: inner}, nil
	case *ast.Binary[ast.CheckInfo]:
		left, err := v.expr(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := v.expr(n.Right)
		if err != nil {
			return nil, err
		}
		info, err := v.freezeAt(n.Info, n.Pos)
		if err != nil {
			return nil, err
		}
		return &ast.Binary[ast.Concrete]{Pos: n.Pos, Info: info, Op: n.Op, Left: left, Right: right}, nil
	case *ast.Prefix[ast.CheckInfo]:
		operand, err := v.expr(n.Operand)
		if err != nil {
			return nil, err
		}
		info, err := v.freezeAt(n.Info, n.Pos)
		if err != nil {
			return nil, err
		}
		return &ast.Prefix[ast.Concrete]{Pos: n.Pos, Info: info, Op: n.Op, Operand: operand}, nil
	case *ast.Call[ast.CheckInfo]:
		callee, err := v.expr(n.Callee)
		if err != nil {
			return nil, err
		}
		args := make([]ast.Expression[ast.Concrete], len(n.Args))
		for i, a := range n.Args {
			checked, err := v.expr(a)
			if err != nil {
				return nil, err
			}
			args[i] = checked
		}
		info, err := v.freezeAt(n.Info, n.Pos)
		if err != nil {
			return nil, err
		}
		return &ast.Call[ast.Concrete]{Pos: n.Pos, Info: info, Callee: callee, Args: args}, nil
	case *ast.Index[ast.CheckInfo]:
		receiver, err := v.expr(n.Receiver)
		if err != nil {
			return nil, err
		}
		index, err := v.expr(n.Index)
		if err != nil {
			return nil, err
		}
		info, err := v.freezeAt(n.Info, n.Pos)
		if err != nil {
			return nil, err
		}
		return &ast.Index[ast.Concrete]{Pos: n.Pos, Info: info, Receiver: receiver, Index: index}, nil
	case *ast.Property[ast.CheckInfo]:
		receiver, err := v.expr(n.Receiver)
		if err != nil {
			return nil, err
		}
		info, err := v.freezeAt(n.Info, n.Pos)
		if err != nil {
			return nil, err
		}
		return &ast.Property[ast.Concrete]{Pos: n.Pos, Info: info, Receiver: receiver, Field: n.Field}, nil
	case *ast.ArrayLiteral[ast.CheckInfo]:
		elems := make([]ast.Expression[ast.Concrete], len(n.Elements))
		for i, el := range n.Elements {
			checked, err := v.expr(el)
			if err != nil {
				return nil, err
			}
			elems[i] = checked
		}
		info, err := v.freezeAt(n.Info, n.Pos)
		if err != nil {
			return nil, err
		}
		return &ast.ArrayLiteral[ast.Concrete]{Pos: n.Pos, Info: info, Elements: elems}, nil
	case *ast.StructInit[ast.CheckInfo]:
		fields := make([]ast.FieldInit[ast.Concrete], len(n.Fields))
		for i, f := range n.Fields {
			value, err := v.expr(f.Value)
			if err != nil {
				return nil, err
			}
			fields[i] = ast.FieldInit[ast.Concrete]{Pos: f.Pos, Name: f.Name, Value: value}
		}
		info, err := v.freezeAt(n.Info, n.Pos)
		if err != nil {
			return nil, err
		}
		return &ast.StructInit[ast.Concrete]{Pos: n.Pos, Info: info, Name: n.Name, Fields: fields}, nil
	case *ast.If[ast.CheckInfo]:
		cond, err := v.expr(n.Condition)
		if err != nil {
			return nil, err
		}
		then, err := v.block(n.Then)
		if err != nil {
			return nil, err
		}
		var elseBlock *ast.Block[ast.Concrete]
		if n.Else != nil {
			elseBlock, err = v.block(n.Else)
			if err != nil {
				return nil, err
			}
		}
		info, err := v.freezeAt(n.Info, n.Pos)
		if err != nil {
			return nil, err
		}
		return &ast.If[ast.Concrete]{Pos: n.Pos, Info: info, Condition: cond, Then: then, Else: elseBlock}, nil
	case *ast.Lambda[ast.CheckInfo]:
		params := make([]*ast.Param[ast.Concrete], len(n.Params))
		for i, p := range n.Params {
			pi, err := v.freezeAt(p.Info, p.Pos)
			if err != nil {
				return nil, err
			}
			params[i] = &ast.Param[ast.Concrete]{Pos: p.Pos, Info: pi, Name: p.Name, TypeAnnotation: p.TypeAnnotation}
		}
		body, err := v.expr(n.Body)
		if err != nil {
			return nil, err
		}
		info, err := v.freezeAt(n.Info, n.Pos)
		if err != nil {
			return nil, err
		}
		return &ast.Lambda[ast.Concrete]{Pos: n.Pos, Info: info, Params: params, ReturnType: n.ReturnType, Body: body}, nil
	case *ast.Block[ast.CheckInfo]:
		return v.block(n)
	default:
		return nil, diag.TypeValidationError(e.Position())
	}
}
