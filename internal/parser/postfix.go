// Postfix expression parsing: call, index, and property access, grounded
// on original_source/crates/why_lib/src/parser/ast/expression/postfix.rs,
// which folds all three into one left-associative chain the same way
// this file's three infix parse functions do when chained by the Pratt
// loop in expr.go.
package parser

import (
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/ast"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/diag"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/token"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/unit"
)

func (p *Parser) parseCallExpression(callee ast.Expression[unit.Unit]) ast.Expression[unit.Unit] {
	sp := callee.Position()
	p.c.Next() // consume '('
	var args []ast.Expression[unit.Unit]
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		arg := p.parseExpression(LOWEST)
		if arg == nil {
			return nil
		}
		args = append(args, arg)
		if p.curIs(token.COMMA) {
			p.c.Next()
		} else {
			break
		}
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	return &ast.Call[unit.Unit]{Pos: sp, Callee: callee, Args: args}
}

func (p *Parser) parseIndexExpression(receiver ast.Expression[unit.Unit]) ast.Expression[unit.Unit] {
	sp := receiver.Position()
	p.c.Next() // consume '['
	idx := p.parseExpression(LOWEST)
	if idx == nil {
		return nil
	}
	if !p.expect(token.RBRACKET) {
		return nil
	}
	return &ast.Index[unit.Unit]{Pos: sp, Receiver: receiver, Index: idx}
}

func (p *Parser) parsePropertyExpression(receiver ast.Expression[unit.Unit]) ast.Expression[unit.Unit] {
	sp := receiver.Position()
	p.c.Next() // consume '.'
	if !p.curIs(token.IDENT) {
		p.recordf(diag.ParseError, "expected field name after '.', got %s", p.cur().Type)
		return nil
	}
	field := p.cur().Lexeme
	p.c.Next()
	return &ast.Property[unit.Unit]{Pos: sp, Receiver: receiver, Field: field}
}
