// Package parser implements the recursive-descent, precedence-climbing
// parser for .why source (SPEC_FULL.md §4.2), built the way the
// teacher's Pratt parser is: a single curToken/peekToken-style cursor
// driving per-token-type prefix and infix parse function tables, rather
// than the two competing parser paths the original implementation grew
// over time (SPEC_FULL.md §4.2 rejects that anti-pattern explicitly).
package parser

import (
	"fmt"

	"github.com/H1ghBre4k3r/y-lang-sub001/internal/ast"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/cursor"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/diag"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/span"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/token"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/unit"
)

// Precedence levels, lowest to highest, per SPEC_FULL.md §4.2's table.
const (
	LOWEST int = iota
	COMPARISON
	SUM
	PRODUCT
	PREFIX
	POSTFIX
)

var precedences = map[token.Type]int{
	token.EQ:       COMPARISON,
	token.LT:       COMPARISON,
	token.GT:       COMPARISON,
	token.LE:       COMPARISON,
	token.GE:       COMPARISON,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.ASTERISK: PRODUCT,
	token.SLASH:    PRODUCT,
	token.LPAREN:   POSTFIX,
	token.LBRACKET: POSTFIX,
	token.DOT:      POSTFIX,
}

type (
	prefixParseFn func() ast.Expression[unit.Unit]
	infixParseFn  func(ast.Expression[unit.Unit]) ast.Expression[unit.Unit]
)

// Parser drives a cursor.Cursor to build an ast.Untyped tree. It never
// aborts on a malformed construct: on error it records a diag.Error via
// the cursor and recovers at the next statement boundary, so a single
// parse collects every syntax error in the file instead of stopping at
// the first one.
type Parser struct {
	c *cursor.Cursor

	prefixFns map[token.Type]prefixParseFn
	infixFns  map[token.Type]infixParseFn

	// noStructLiteral suppresses `Ident { ... }` being parsed as a struct
	// construction while parsing an if/while condition, the same
	// ambiguity Go resolves the same way for composite literals in
	// statement headers.
	noStructLiteral bool
}

// New strips NEWLINE tokens before wrapping them in a cursor: .why's
// grammar is semicolon-terminated throughout (unlike funxy's
// layout-sensitive continuation rules), so line breaks carry no meaning
// here.
func New(tokens []token.Token, source span.SourceID) *Parser {
	filtered := make([]token.Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Type != token.NEWLINE {
			filtered = append(filtered, t)
		}
	}
	p := &Parser{c: cursor.New(filtered, source)}

	p.prefixFns = map[token.Type]prefixParseFn{
		token.IDENT:     p.parseIdentifierOrStructInit,
		token.INT:       p.parseIntegerLiteral,
		token.FLOAT:     p.parseFloatLiteral,
		token.CHAR:      p.parseCharacterLiteral,
		token.STRING:    p.parseStringLiteral,
		token.TRUE:      p.parseBooleanLiteral,
		token.FALSE:     p.parseBooleanLiteral,
		token.LPAREN:    p.parseParenExpression,
		token.LBRACKET:  p.parseArrayLiteral,
		token.BACKSLASH: p.parseLambda,
		token.MINUS:     p.parsePrefixExpression,
		token.BANG:      p.parsePrefixExpression,
		token.IF:        p.parseIfExpression,
	}

	p.infixFns = map[token.Type]infixParseFn{
		token.PLUS:     p.parseBinaryExpression,
		token.MINUS:    p.parseBinaryExpression,
		token.ASTERISK: p.parseBinaryExpression,
		token.SLASH:    p.parseBinaryExpression,
		token.EQ:       p.parseBinaryExpression,
		token.LT:       p.parseBinaryExpression,
		token.GT:       p.parseBinaryExpression,
		token.LE:       p.parseBinaryExpression,
		token.GE:       p.parseBinaryExpression,
		token.LPAREN:   p.parseCallExpression,
		token.LBRACKET: p.parseIndexExpression,
		token.DOT:      p.parsePropertyExpression,
	}

	return p
}

func (p *Parser) Errors() *diag.Sink { return p.c.Errors }

func (p *Parser) cur() token.Token { return p.c.Peek() }

func (p *Parser) curIs(t token.Type) bool { return p.cur().Type == t }

// curPrecedence is the binding power of the token at the cursor. Every
// prefix parse function leaves the cursor on the token after its
// subexpression, so when the Pratt loop in parseExpression asks, the
// cursor is sitting on the candidate infix operator itself.
func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.cur().Type]; ok {
		return pr
	}
	return LOWEST
}

// expect consumes the current token if it has type t, recording a
// ParseError and returning false otherwise.
func (p *Parser) expect(t token.Type) bool {
	if p.curIs(t) {
		p.c.Next()
		return true
	}
	p.recordf(diag.ParseError, "expected %s, got %s", t, p.cur().Type)
	return false
}

func (p *Parser) recordf(ctor func(span.Span, string) *diag.Error, format string, args ...any) {
	p.c.RecordError(ctor(p.c.SpanOfCurrent(), fmt.Sprintf(format, args...)))
}

// ParseProgram parses every statement in the token stream, accumulating
// errors and recovering at the next statement boundary rather than
// stopping at the first malformed one.
func (p *Parser) ParseProgram() *ast.Untyped {
	prog := &ast.Untyped{}
	for !p.curIs(token.EOF) {
		start := p.c.GetIndex()
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		if p.c.GetIndex() == start {
			// No progress was made (a statement parser bailed out without
			// consuming anything) — force advancement so ParseProgram
			// always terminates.
			p.c.SkipToStatementBoundary()
		}
	}
	return prog
}
