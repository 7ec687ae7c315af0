package parser

import (
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/ast"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/diag"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/token"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/unit"
)

// parseStatement dispatches on the current token's keyword, falling back
// to the expression/assignment/yield path for anything else.
func (p *Parser) parseStatement() ast.Statement[unit.Unit] {
	// Each branch whose parseX declares a concrete *ast.X return type
	// goes through a local variable rather than `return p.parseX()`
	// directly (the let, const, comment and default branches call parsers that
	// already return ast.Statement), because converting a nil *ast.X straight into the
	// ast.Statement interface would produce a non-nil interface holding a
	// nil pointer — the classic Go typed-nil trap. Checking the concrete
	// pointer first keeps statementNode() from ever being called on nil.
	switch p.cur().Type {
	case token.LET:
		return p.parseInitialisation()
	case token.CONST:
		return p.parseConstDecl()
	case token.FN:
		if n := p.parseFunctionDef(); n != nil {
			return n
		}
		return nil
	case token.DECLARE:
		if n := p.parseDeclaration(); n != nil {
			return n
		}
		return nil
	case token.STRUCT:
		if n := p.parseStructDecl(); n != nil {
			return n
		}
		return nil
	case token.INSTANCE:
		if n := p.parseInstanceBlock(); n != nil {
			return n
		}
		return nil
	case token.WHILE:
		if n := p.parseWhile(); n != nil {
			return n
		}
		return nil
	case token.RETURN:
		if n := p.parseReturn(); n != nil {
			return n
		}
		return nil
	case token.COMMENT:
		return p.parseComment()
	default:
		return p.parseExpressionOrAssignmentStatement()
	}
}

// parseBlock parses `{ stmt* }`. The parser enforces the yield-at-end
// invariant here: a YieldingExpression may only be the final statement
// (SPEC_FULL.md §8.1) — one with any non-comment statement after it is
// reported as a YieldingExpressionNotAtEnd error but kept in the list
// so the checker still sees every statement. Trailing comments don't
// count against the invariant: they carry no value for the yield to be
// displaced by.
func (p *Parser) parseBlock() *ast.Block[unit.Unit] {
	sp := p.c.SpanOfCurrent()
	if !p.expect(token.LBRACE) {
		return nil
	}
	var stmts []ast.Statement[unit.Unit]
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		before := p.c.GetIndex()
		if stmt := p.parseStatement(); stmt != nil {
			stmts = append(stmts, stmt)
		}
		if p.c.GetIndex() == before {
			p.c.SkipToStatementBoundary()
		}
	}
	if !p.expect(token.RBRACE) {
		return nil
	}

	for i, stmt := range stmts {
		y, ok := stmt.(*ast.YieldingExpression[unit.Unit])
		if !ok {
			continue
		}
		for _, later := range stmts[i+1:] {
			if _, isComment := later.(*ast.Comment[unit.Unit]); !isComment {
				p.c.RecordError(diag.YieldingExpressionNotAtEnd(y.Position()))
				break
			}
		}
	}

	return &ast.Block[unit.Unit]{Pos: sp, Statements: stmts}
}

func (p *Parser) parseComment() ast.Statement[unit.Unit] {
	sp := p.c.SpanOfCurrent()
	text := p.cur().Lexeme
	p.c.Next()
	return &ast.Comment[unit.Unit]{Pos: sp, Text: text}
}

func (p *Parser) parseInitialisation() ast.Statement[unit.Unit] {
	sp := p.c.SpanOfCurrent()
	p.c.Next() // consume 'let'
	mutable := false
	if p.curIs(token.MUT) {
		mutable = true
		p.c.Next()
	}
	if !p.curIs(token.IDENT) {
		p.recordf(diag.ParseError, "expected identifier after 'let', got %s", p.cur().Type)
		return nil
	}
	name := p.cur().Lexeme
	p.c.Next()
	var ann ast.TypeSyntax
	if p.curIs(token.COLON) {
		p.c.Next()
		ann = p.parseTypeSyntax()
	}
	if !p.expect(token.ASSIGN) {
		return nil
	}
	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}
	p.expect(token.SEMICOLON)
	return &ast.Initialisation[unit.Unit]{Pos: sp, Name: name, Mutable: mutable, TypeAnnotation: ann, Value: value}
}

func (p *Parser) parseConstDecl() ast.Statement[unit.Unit] {
	sp := p.c.SpanOfCurrent()
	p.c.Next() // consume 'const'
	if !p.curIs(token.IDENT) {
		p.recordf(diag.ParseError, "expected identifier after 'const', got %s", p.cur().Type)
		return nil
	}
	name := p.cur().Lexeme
	p.c.Next()
	if !p.expect(token.COLON) {
		return nil
	}
	ann := p.parseTypeSyntax()
	if ann == nil {
		return nil
	}
	if !p.expect(token.ASSIGN) {
		return nil
	}
	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}
	p.expect(token.SEMICOLON)
	return &ast.ConstDecl[unit.Unit]{Pos: sp, Name: name, TypeAnnotation: ann, Value: value}
}

func (p *Parser) parseDeclaration() *ast.Declaration[unit.Unit] {
	sp := p.c.SpanOfCurrent()
	p.c.Next() // consume 'declare'
	if !p.curIs(token.IDENT) {
		p.recordf(diag.ParseError, "expected identifier after 'declare', got %s", p.cur().Type)
		return nil
	}
	name := p.cur().Lexeme
	p.c.Next()
	if !p.expect(token.COLON) {
		return nil
	}
	ann := p.parseTypeSyntax()
	if ann == nil {
		return nil
	}
	p.expect(token.SEMICOLON)
	return &ast.Declaration[unit.Unit]{Pos: sp, Name: name, TypeAnnotation: ann}
}

func (p *Parser) parseParams() []*ast.Param[unit.Unit] {
	var params []*ast.Param[unit.Unit]
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		paramSp := p.c.SpanOfCurrent()
		if !p.curIs(token.IDENT) {
			p.recordf(diag.ParseError, "expected parameter name, got %s", p.cur().Type)
			return nil
		}
		name := p.cur().Lexeme
		p.c.Next()
		if !p.expect(token.COLON) {
			return nil
		}
		ann := p.parseTypeSyntax()
		if ann == nil {
			return nil
		}
		params = append(params, &ast.Param[unit.Unit]{Pos: paramSp, Name: name, TypeAnnotation: ann})
		if p.curIs(token.COMMA) {
			p.c.Next()
		} else {
			break
		}
	}
	return params
}

func (p *Parser) parseFunctionDef() *ast.FunctionDef[unit.Unit] {
	sp := p.c.SpanOfCurrent()
	p.c.Next() // consume 'fn'
	if !p.curIs(token.IDENT) {
		p.recordf(diag.ParseError, "expected function name, got %s", p.cur().Type)
		return nil
	}
	name := p.cur().Lexeme
	p.c.Next()
	if !p.expect(token.LPAREN) {
		return nil
	}
	params := p.parseParams()
	if !p.expect(token.RPAREN) {
		return nil
	}
	var ret ast.TypeSyntax
	if p.curIs(token.COLON) {
		p.c.Next()
		ret = p.parseTypeSyntax()
	}
	body := p.parseBlock()
	if body == nil {
		return nil
	}
	return &ast.FunctionDef[unit.Unit]{Pos: sp, Name: name, Params: params, ReturnType: ret, Body: body}
}

func (p *Parser) parseStructDecl() *ast.StructDecl[unit.Unit] {
	sp := p.c.SpanOfCurrent()
	p.c.Next() // consume 'struct'
	if !p.curIs(token.IDENT) {
		p.recordf(diag.ParseError, "expected struct name, got %s", p.cur().Type)
		return nil
	}
	name := p.cur().Lexeme
	p.c.Next()
	if !p.expect(token.LBRACE) {
		return nil
	}
	var fields []*ast.StructFieldDecl[unit.Unit]
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if p.curIs(token.COMMENT) {
			p.c.Next()
			continue
		}
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
		ann := p.parseTypeSyntax()
		if ann == nil {
			return nil
		}
		fields = append(fields, &ast.StructFieldDecl[unit.Unit]{Pos: fieldSp, Name: fieldName, TypeAnnotation: ann})
		if p.curIs(token.COMMA) {
			p.c.Next()
		} else {
			break
		}
	}
	if !p.expect(token.RBRACE) {
		return nil
	}
	return &ast.StructDecl[unit.Unit]{Pos: sp, Name: name, Fields: fields}
}

// parseInstanceBlock parses `instance Name { fn ... declare ... }`
// (SPEC_FULL.md §4.2, grounded on
// original_source/.../statement/method_declaration.rs's instance-block
// grammar). Any statement other than `fn`/`declare` inside the block is
// a ParseError.
func (p *Parser) parseInstanceBlock() *ast.InstanceBlock[unit.Unit] {
	sp := p.c.SpanOfCurrent()
	p.c.Next() // consume 'instance'
	if !p.curIs(token.IDENT) {
		p.recordf(diag.ParseError, "expected type name after 'instance', got %s", p.cur().Type)
		return nil
	}
	typeName := p.cur().Lexeme
	p.c.Next()
	if !p.expect(token.LBRACE) {
		return nil
	}
	block := &ast.InstanceBlock[unit.Unit]{Pos: sp, TypeName: typeName}
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		before := p.c.GetIndex()
		switch p.cur().Type {
		case token.FN:
			if m := p.parseFunctionDef(); m != nil {
				block.Methods = append(block.Methods, m)
			}
		case token.DECLARE:
			if d := p.parseDeclaration(); d != nil {
				block.Declares = append(block.Declares, d)
			}
		case token.COMMENT:
			// Comments between members attach to nothing; consume them.
			p.c.Next()
		default:
			p.recordf(diag.ParseError, "only 'fn' and 'declare' are allowed inside an instance block, got %s", p.cur().Type)
		}
		if p.c.GetIndex() == before {
			p.c.SkipToStatementBoundary()
		}
	}
	if !p.expect(token.RBRACE) {
		return nil
	}
	return block
}

func (p *Parser) parseWhile() *ast.While[unit.Unit] {
	sp := p.c.SpanOfCurrent()
	p.c.Next() // consume 'while'
	p.noStructLiteral = true
	cond := p.parseExpression(LOWEST)
	p.noStructLiteral = false
	if cond == nil {
		return nil
	}
	body := p.parseBlock()
	if body == nil {
		return nil
	}
	return &ast.While[unit.Unit]{Pos: sp, Condition: cond, Body: body}
}

func (p *Parser) parseReturn() *ast.Return[unit.Unit] {
	sp := p.c.SpanOfCurrent()
	p.c.Next() // consume 'return'
	var value ast.Expression[unit.Unit]
	if !p.curIs(token.SEMICOLON) && !p.curIs(token.RBRACE) {
		value = p.parseExpression(LOWEST)
	}
	p.expect(token.SEMICOLON)
	return &ast.Return[unit.Unit]{Pos: sp, Value: value}
}

// parseExpressionOrAssignmentStatement parses everything that doesn't
// start with a statement keyword: an assignment `target = value;`, a
// plain expression statement `expr;`, or — when there is no trailing
// semicolon and this is the last statement of the enclosing block — a
// yielding expression.
func (p *Parser) parseExpressionOrAssignmentStatement() ast.Statement[unit.Unit] {
	sp := p.c.SpanOfCurrent()
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}

	if p.curIs(token.ASSIGN) {
		p.c.Next()
		value := p.parseExpression(LOWEST)
		if value == nil {
			return nil
		}
		p.expect(token.SEMICOLON)
		return &ast.Assignment[unit.Unit]{Pos: sp, Target: expr, Value: value}
	}

	if p.curIs(token.SEMICOLON) {
		p.c.Next()
		return &ast.ExpressionStatement[unit.Unit]{Pos: sp, Expr: expr}
	}

	// No semicolon: this expression supplies the enclosing block's value.
	return &ast.YieldingExpression[unit.Unit]{Pos: sp, Expr: expr}
}
