package parser

import (
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/ast"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/diag"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/lexer"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/span"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/token"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/unit"
)

// parseExpression is the Pratt loop: one prefix parse to get a left-hand
// side, then infix parses for as long as the next operator binds tighter
// than precedence.
func (p *Parser) parseExpression(precedence int) ast.Expression[unit.Unit] {
	prefix, ok := p.prefixFns[p.cur().Type]
	if !ok {
		p.recordf(diag.ParseError, "unexpected token %s", p.cur().Type)
		p.c.Next()
		return nil
	}
	left := prefix()
	if left == nil {
		return nil
	}

	for !p.curIs(token.EOF) && precedence < p.curPrecedence() {
		infix, ok := p.infixFns[p.cur().Type]
		if !ok {
			break
		}
		left = infix(left)
		if left == nil {
			return nil
		}
	}
	return left
}

func (p *Parser) parseIdentifierOrStructInit() ast.Expression[unit.Unit] {
	sp := p.c.SpanOfCurrent()
	name := p.cur().Lexeme
	p.c.Next()

	if !p.noStructLiteral && p.curIs(token.LBRACE) {
		return p.parseStructInit(sp, name)
	}
	return &ast.Identifier[unit.Unit]{Pos: sp, Name: name}
}

// parseStructInit parses the `{ field: value, ... }` tail of `Name { ... }`
// once the leading identifier and its span have already been consumed.
func (p *Parser) parseStructInit(sp span.Span, name string) ast.Expression[unit.Unit] {
	p.c.Next() // consume '{'
	var fields []ast.FieldInit[unit.Unit]
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		fieldSp := p.c.SpanOfCurrent()
		if !p.curIs(token.IDENT) {
			p.recordf(diag.ParseError, "expected field name, got %s", p.cur().Type)
			return nil
		}
		fieldName := p.cur().Lexeme
		p.c.Next()
		if !p.expect(token.COLON) {
			return nil
		}
		value := p.parseExpression(LOWEST)
		if value == nil {
			return nil
		}
		fields = append(fields, ast.FieldInit[unit.Unit]{Pos: fieldSp, Name: fieldName, Value: value})
		if p.curIs(token.COMMA) {
			p.c.Next()
		} else {
			break
		}
	}
	if !p.expect(token.RBRACE) {
		return nil
	}
	return &ast.StructInit[unit.Unit]{Pos: sp, Name: name, Fields: fields}
}

func (p *Parser) parseIntegerLiteral() ast.Expression[unit.Unit] {
	sp := p.c.SpanOfCurrent()
	v, err := lexer.ParseIntLiteral(p.cur().Lexeme)
	if err != nil {
		p.recordf(diag.ParseError, "invalid integer literal %q", p.cur().Lexeme)
		p.c.Next()
		return nil
	}
	p.c.Next()
	return &ast.IntegerLiteral[unit.Unit]{Pos: sp, Value: v}
}

func (p *Parser) parseFloatLiteral() ast.Expression[unit.Unit] {
	sp := p.c.SpanOfCurrent()
	v, err := lexer.ParseFloatLiteral(p.cur().Lexeme)
	if err != nil {
		p.recordf(diag.ParseError, "invalid float literal %q", p.cur().Lexeme)
		p.c.Next()
		return nil
	}
	p.c.Next()
	return &ast.FloatLiteral[unit.Unit]{Pos: sp, Value: v}
}

func (p *Parser) parseCharacterLiteral() ast.Expression[unit.Unit] {
	sp := p.c.SpanOfCurrent()
	lex := p.cur().Lexeme
	p.c.Next()
	var v byte
	if len(lex) > 0 {
		v = lex[0]
	}
	return &ast.CharacterLiteral[unit.Unit]{Pos: sp, Value: v}
}

func (p *Parser) parseStringLiteral() ast.Expression[unit.Unit] {
	sp := p.c.SpanOfCurrent()
	v := p.cur().Lexeme
	p.c.Next()
	return &ast.StringLiteral[unit.Unit]{Pos: sp, Value: v}
}

func (p *Parser) parseBooleanLiteral() ast.Expression[unit.Unit] {
	sp := p.c.SpanOfCurrent()
	v := p.curIs(token.TRUE)
	p.c.Next()
	return &ast.BooleanLiteral[unit.Unit]{Pos: sp, Value: v}
}

// parseParenExpression parses a grouping expression `(expr)`. The
// language has no tuple-literal syntax (tuples only appear as type
// annotations, SPEC_FULL.md §3.3), so a parenthesised expression is
// always exactly one inner expression.
func (p *Parser) parseParenExpression() ast.Expression[unit.Unit] {
	sp := p.c.SpanOfCurrent()
	p.c.Next() // consume '('
	inner := p.parseExpression(LOWEST)
	if inner == nil {
		return nil
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	return &ast.Paren[unit.Unit]{Pos: sp, Inner: inner}
}

func (p *Parser) parseArrayLiteral() ast.Expression[unit.Unit] {
	sp := p.c.SpanOfCurrent()
	p.c.Next() // consume '['
	var elems []ast.Expression[unit.Unit]
	for !p.curIs(token.RBRACKET) && !p.curIs(token.EOF) {
		el := p.parseExpression(LOWEST)
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
	if !p.expect(token.RBRACKET) {
		return nil
	}
	return &ast.ArrayLiteral[unit.Unit]{Pos: sp, Elements: elems}
}

func (p *Parser) parseLambda() ast.Expression[unit.Unit] {
	sp := p.c.SpanOfCurrent()
	p.c.Next() // consume '\'
	if !p.expect(token.LPAREN) {
		return nil
	}
	var params []*ast.Param[unit.Unit]
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		paramSp := p.c.SpanOfCurrent()
		if !p.curIs(token.IDENT) {
			p.recordf(diag.ParseError, "expected parameter name, got %s", p.cur().Type)
			return nil
		}
		name := p.cur().Lexeme
		p.c.Next()
		var ann ast.TypeSyntax
		if p.curIs(token.COLON) {
			p.c.Next()
			ann = p.parseTypeSyntax()
		}
		params = append(params, &ast.Param[unit.Unit]{Pos: paramSp, Name: name, TypeAnnotation: ann})
		if p.curIs(token.COMMA) {
			p.c.Next()
		} else {
			break
		}
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	if !p.expect(token.FATARROW) {
		return nil
	}
	body := p.parseExpression(LOWEST)
	if body == nil {
		return nil
	}
	return &ast.Lambda[unit.Unit]{Pos: sp, Params: params, Body: body}
}

func (p *Parser) parsePrefixExpression() ast.Expression[unit.Unit] {
	sp := p.c.SpanOfCurrent()
	var op ast.PrefixOp
	switch p.cur().Type {
	case token.MINUS:
		op = ast.OpNeg
	case token.BANG:
		op = ast.OpNot
	}
	p.c.Next()
	operand := p.parseExpression(PREFIX)
	if operand == nil {
		return nil
	}
	return &ast.Prefix[unit.Unit]{Pos: sp, Op: op, Operand: operand}
}

func (p *Parser) parseBinaryExpression(left ast.Expression[unit.Unit]) ast.Expression[unit.Unit] {
	sp := p.c.SpanOfCurrent()
	var op ast.BinaryOp
	switch p.cur().Type {
	case token.PLUS:
		op = ast.OpAdd
	case token.MINUS:
		op = ast.OpSub
	case token.ASTERISK:
		op = ast.OpMul
	case token.SLASH:
		op = ast.OpDiv
	case token.EQ:
		op = ast.OpEq
	case token.LT:
		op = ast.OpLt
	case token.GT:
		op = ast.OpGt
	case token.LE:
		op = ast.OpLe
	case token.GE:
		op = ast.OpGe
	}
	prec := precedences[p.cur().Type]
	p.c.Next()
	right := p.parseExpression(prec)
	if right == nil {
		return nil
	}
	return &ast.Binary[unit.Unit]{Pos: sp, Op: op, Left: left, Right: right}
}

func (p *Parser) parseIfExpression() ast.Expression[unit.Unit] {
	sp := p.c.SpanOfCurrent()
	p.c.Next() // consume 'if'

	p.noStructLiteral = true
	cond := p.parseExpression(LOWEST)
	p.noStructLiteral = false
	if cond == nil {
		return nil
	}

	then := p.parseBlock()
	if then == nil {
		return nil
	}

	var elseBlock *ast.Block[unit.Unit]
	if p.curIs(token.ELSE) {
		p.c.Next()
		elseBlock = p.parseBlock()
		if elseBlock == nil {
			return nil
		}
	}

	return &ast.If[unit.Unit]{Pos: sp, Condition: cond, Then: then, Else: elseBlock}
}
