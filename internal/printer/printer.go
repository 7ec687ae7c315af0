// Package printer renders each pipeline stage's output as human-readable
// text for cmd/why's -l/-p/-c/-v flags. It is a plain recursive,
// type-switch-based walk over the generic AST (ast.Node[T] carries no
// Accept/Visitor machinery — see internal/ast/ast_core.go) rather than a
// Visitor implementation, the same choice the rest of the tree makes for
// same-T walks.
package printer

import (
	"fmt"
	"strings"

	"github.com/H1ghBre4k3r/y-lang-sub001/internal/ast"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/infer"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/token"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/unit"
)

// Tokens renders one lexed token per line, for -l/--print-lexed.
func Tokens(toks []token.Token) string {
	var b strings.Builder
	for _, t := range toks {
		fmt.Fprintf(&b, "%d:%d %-10s %q\n", t.Line, t.Column, t.Type, t.Lexeme)
	}
	return b.String()
}

// Untyped renders the freshly parsed AST, for -p/--print-parsed. Every
// node prints with no type annotation — there isn't one yet.
func Untyped(prog *ast.Untyped) string {
	return dumpStatements(prog.Statements, 0, func(unit.Unit) string { return "" })
}

// Checked renders the deep checker's output, for -c/--print-checked.
// Each node's annotation is resolved through arena, which may still be
// empty for a node whose unification hasn't run yet (printed as "?").
func Checked(prog *ast.Checked, arena *infer.Arena) string {
	infoStr := func(ci ast.CheckInfo) string {
		t, ok := arena.Get(ci.Var)
		if !ok {
			return "?"
		}
		return t.String()
	}
	return dumpStatements(prog.Statements, 0, infoStr)
}

// Validated renders the fully-typed AST, for -v/--print-validated. Every
// annotation here is concrete — validation guarantees it.
func Validated(prog *ast.Validated) string {
	return dumpStatements(prog.Statements, 0, func(c ast.Concrete) string { return c.Type.String() })
}

func pad(indent int) string { return strings.Repeat("  ", indent) }

func annotate(label, ty string) string {
	if ty == "" {
		return label
	}
	return fmt.Sprintf("%s : %s", label, ty)
}

func dumpStatements[T any](stmts []ast.Statement[T], indent int, infoStr func(T) string) string {
	var b strings.Builder
	for _, s := range stmts {
		b.WriteString(dumpStmt(s, indent, infoStr))
	}
	return b.String()
}

func dumpStmt[T any](s ast.Statement[T], indent int, infoStr func(T) string) string {
	p := pad(indent)
	switch n := s.(type) {
	case *ast.Initialisation[T]:
		kw := "let"
		if n.Mutable {
			kw = "let mut"
		}
		return fmt.Sprintf("%s%s %s = %s\n", p, kw, annotate(n.Name, infoStr(n.Info)), dumpExprInline(n.Value, infoStr))
	case *ast.ConstDecl[T]:
		return fmt.Sprintf("%sconst %s = %s\n", p, annotate(n.Name, infoStr(n.Info)), dumpExprInline(n.Value, infoStr))
	case *ast.Assignment[T]:
		return fmt.Sprintf("%s%s = %s\n", p, dumpExprInline(n.Target, infoStr), dumpExprInline(n.Value, infoStr))
	case *ast.ExpressionStatement[T]:
		return fmt.Sprintf("%s%s;\n", p, dumpExprInline(n.Expr, infoStr))
	case *ast.YieldingExpression[T]:
		return fmt.Sprintf("%syield %s\n", p, dumpExprInline(n.Expr, infoStr))
	case *ast.Return[T]:
		if n.Value == nil {
			return fmt.Sprintf("%sreturn\n", p)
		}
		return fmt.Sprintf("%sreturn %s\n", p, dumpExprInline(n.Value, infoStr))
	case *ast.While[T]:
		var b strings.Builder
		fmt.Fprintf(&b, "%swhile %s {\n", p, dumpExprInline(n.Condition, infoStr))
		b.WriteString(dumpStatements(n.Body.Statements, indent+1, infoStr))
		fmt.Fprintf(&b, "%s}\n", p)
		return b.String()
	case *ast.FunctionDef[T]:
		var b strings.Builder
		fmt.Fprintf(&b, "%sfn %s(%s) : %s {\n", p, n.Name, dumpParams(n.Params, infoStr), infoStr(n.Info))
		b.WriteString(dumpStatements(n.Body.Statements, indent+1, infoStr))
		fmt.Fprintf(&b, "%s}\n", p)
		return b.String()
	case *ast.Declaration[T]:
		return fmt.Sprintf("%sdeclare %s\n", p, annotate(n.Name, infoStr(n.Info)))
	case *ast.Comment[T]:
		return fmt.Sprintf("%s//%s\n", p, n.Text)
	case *ast.StructDecl[T]:
		var b strings.Builder
		fmt.Fprintf(&b, "%sstruct %s {\n", p, n.Name)
		for _, f := range n.Fields {
			fmt.Fprintf(&b, "%s  %s\n", p, annotate(f.Name, infoStr(f.Info)))
		}
		fmt.Fprintf(&b, "%s}\n", p)
		return b.String()
	case *ast.InstanceBlock[T]:
		var b strings.Builder
		fmt.Fprintf(&b, "%sinstance %s {\n", p, n.TypeName)
		for _, m := range n.Methods {
			b.WriteString(dumpStmt(m, indent+1, infoStr))
		}
		for _, d := range n.Declares {
			b.WriteString(dumpStmt(d, indent+1, infoStr))
		}
		fmt.Fprintf(&b, "%s}\n", p)
		return b.String()
	default:
		return fmt.Sprintf("%s<unknown statement>\n", p)
	}
}

func dumpParams[T any](params []*ast.Param[T], infoStr func(T) string) string {
	parts := make([]string, len(params))
	for i, pr := range params {
		parts[i] = annotate(pr.Name, infoStr(pr.Info))
	}
	return strings.Join(parts, ", ")
}

// dumpExprInline renders an expression starting on the current line.
// Block and if/else bodies are rendered through dumpStatements at indent
// 0, so their statements keep their own trailing newlines and are not
// indented relative to the surrounding statement; a lambda stays on one
// line.
func dumpExprInline[T any](e ast.Expression[T], infoStr func(T) string) string {
	switch n := e.(type) {
	case *ast.Identifier[T]:
		return n.Name
	case *ast.IntegerLiteral[T]:
		return fmt.Sprintf("%d", n.Value)
	case *ast.FloatLiteral[T]:
		return fmt.Sprintf("%g", n.Value)
	case *ast.BooleanLiteral[T]:
		return fmt.Sprintf("%t", n.Value)
	case *ast.CharacterLiteral[T]:
		return fmt.Sprintf("'%c'", n.Value)
	case *ast.StringLiteral[T]:
		return fmt.Sprintf("%q", n.Value)
	case *ast.Paren[T]:
		return "(" + dumpExprInline(n.Inner, infoStr) + ")"
	case *ast.Binary[T]:
		return fmt.Sprintf("%s %s %s", dumpExprInline(n.Left, infoStr), n.Op, dumpExprInline(n.Right, infoStr))
	case *ast.Prefix[T]:
		return fmt.Sprintf("%s%s", n.Op, dumpExprInline(n.Operand, infoStr))
	case *ast.Call[T]:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = dumpExprInline(a, infoStr)
		}
		return fmt.Sprintf("%s(%s)", dumpExprInline(n.Callee, infoStr), strings.Join(args, ", "))
	case *ast.Index[T]:
		return fmt.Sprintf("%s[%s]", dumpExprInline(n.Receiver, infoStr), dumpExprInline(n.Index, infoStr))
	case *ast.Property[T]:
		return fmt.Sprintf("%s.%s", dumpExprInline(n.Receiver, infoStr), n.Field)
	case *ast.ArrayLiteral[T]:
		elems := make([]string, len(n.Elements))
		for i, el := range n.Elements {
			elems[i] = dumpExprInline(el, infoStr)
		}
		return "[" + strings.Join(elems, ", ") + "]"
	case *ast.StructInit[T]:
		fields := make([]string, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = fmt.Sprintf("%s: %s", f.Name, dumpExprInline(f.Value, infoStr))
		}
		return fmt.Sprintf("%s { %s }", n.Name, strings.Join(fields, ", "))
	case *ast.If[T]:
		s := fmt.Sprintf("if %s { %s}", dumpExprInline(n.Condition, infoStr), dumpStatements(n.Then.Statements, 0, infoStr))
		if n.Else != nil {
			s += fmt.Sprintf(" else { %s}", dumpStatements(n.Else.Statements, 0, infoStr))
		}
		return s
	case *ast.Lambda[T]:
		return fmt.Sprintf("\\(%s) => %s", dumpParams(n.Params, infoStr), dumpExprInline(n.Body, infoStr))
	case *ast.Block[T]:
		return "{ " + dumpStatements(n.Statements, 0, infoStr) + "}"
	default:
		return "<unknown expr>"
	}
}
