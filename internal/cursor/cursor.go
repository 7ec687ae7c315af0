// Package cursor implements the forward cursor over a token stream that
// the parser drives: peek/advance with backtracking, and an
// accumulate-don't-abort error sink (SPEC_FULL.md §4.1).
package cursor

import (
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/diag"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/span"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/token"
)

// Cursor is a forward-only (but backtrackable) reader over a fixed token
// slice, plus the diagnostic sink the parser accumulates into.
type Cursor struct {
	tokens []token.Token
	index  int
	source span.SourceID
	Errors *diag.Sink
}

func New(tokens []token.Token, source span.SourceID) *Cursor {
	return &Cursor{tokens: tokens, source: source, Errors: diag.NewSink()}
}

// Peek returns the token at the cursor without advancing.
func (c *Cursor) Peek() token.Token {
	if c.index >= len(c.tokens) {
		return c.eof()
	}
	return c.tokens[c.index]
}

// PeekAt returns the token `offset` positions ahead of the cursor.
func (c *Cursor) PeekAt(offset int) token.Token {
	i := c.index + offset
	if i < 0 || i >= len(c.tokens) {
		return c.eof()
	}
	return c.tokens[i]
}

// PeekPrev returns the most recently consumed token.
func (c *Cursor) PeekPrev() token.Token {
	if c.index == 0 {
		return c.eof()
	}
	return c.tokens[c.index-1]
}

// Next returns the current token and advances the cursor past it.
func (c *Cursor) Next() token.Token {
	tok := c.Peek()
	if c.index < len(c.tokens) {
		c.index++
	}
	return tok
}

func (c *Cursor) eof() token.Token {
	if len(c.tokens) == 0 {
		return token.Token{Type: token.EOF}
	}
	return token.Token{Type: token.EOF, Line: c.tokens[len(c.tokens)-1].Line}
}

// GetIndex returns the cursor's current position, for save/restore around
// a speculative parse.
func (c *Cursor) GetIndex() int { return c.index }

// SetIndex restores the cursor to a previously saved position — the
// backtracking half of the parser's save/try/restore discipline.
func (c *Cursor) SetIndex(i int) { c.index = i }

// RecordError accumulates a diagnostic without aborting the parse.
func (c *Cursor) RecordError(e *diag.Error) { c.Errors.Add(e) }

// SpanOfCurrent returns the Span of the token at the cursor.
func (c *Cursor) SpanOfCurrent() span.Span {
	return c.SpanOf(c.Peek())
}

// SpanOf converts a token's (line, column) into a single-token Span in
// this cursor's source.
func (c *Cursor) SpanOf(t token.Token) span.Span {
	start := span.Position{Line: t.Line, Column: t.Column}
	end := span.Position{Line: t.Line, Column: t.Column + len(t.Lexeme)}
	if len(t.Lexeme) == 0 {
		end.Column = start.Column + 1
	}
	return span.Span{Start: start, End: end, Source: c.source}
}

// SkipToStatementBoundary advances past tokens until it consumes a `;` or
// `}`, or reaches EOF — the parser's recovery policy (SPEC_FULL.md §9).
func (c *Cursor) SkipToStatementBoundary() {
	for {
		tok := c.Peek()
		if tok.Type == token.EOF {
			return
		}
		c.Next()
		if tok.Type == token.SEMICOLON || tok.Type == token.RBRACE {
			return
		}
	}
}
