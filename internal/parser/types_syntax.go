package parser

import (
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/ast"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/diag"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/token"
)

// parseTypeSyntax parses a type annotation as written in source:
// `i64`, `&Point`, `[i64]`, `(i64, bool)`, `fn(i64, bool): bool`.
func (p *Parser) parseTypeSyntax() ast.TypeSyntax {
	sp := p.c.SpanOfCurrent()

	switch p.cur().Type {
	case token.AMP:
		p.c.Next()
		of := p.parseTypeSyntax()
		if of == nil {
			return nil
		}
		return &ast.ReferenceTypeSyntax{Pos: sp, Of: of}

	case token.LBRACKET:
		p.c.Next()
		of := p.parseTypeSyntax()
		if of == nil {
			return nil
		}
		if !p.expect(token.RBRACKET) {
			return nil
		}
		return &ast.ArrayTypeSyntax{Pos: sp, Of: of}

	case token.LPAREN:
		p.c.Next()
		var elems []ast.TypeSyntax
		for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
			el := p.parseTypeSyntax()
			if el == nil {
				return nil
			}
			elems = append(elems, el)
			if p.curIs(token.COMMA) {
				p.c.Next()
			} else {
				break
			}
		}
		if !p.expect(token.RPAREN) {
			return nil
		}
		return &ast.TupleTypeSyntax{Pos: sp, Of: elems}

	case token.FN:
		p.c.Next()
		if !p.expect(token.LPAREN) {
			return nil
		}
		var params []ast.TypeSyntax
		for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
			param := p.parseTypeSyntax()
			if param == nil {
				return nil
			}
			params = append(params, param)
			if p.curIs(token.COMMA) {
				p.c.Next()
			} else {
				break
			}
		}
		if !p.expect(token.RPAREN) {
			return nil
		}
		var ret ast.TypeSyntax
		if p.curIs(token.COLON) {
			p.c.Next()
			ret = p.parseTypeSyntax()
			if ret == nil {
				return nil
			}
		}
		return &ast.FunctionTypeSyntax{Pos: sp, Params: params, Return: ret}

	case token.IDENT:
		name := p.cur().Lexeme
		p.c.Next()
		return &ast.NamedTypeSyntax{Pos: sp, Name: name}

	default:
		p.recordf(diag.ParseError, "expected type, got %s", p.cur().Type)
		return nil
	}
}
