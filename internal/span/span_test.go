package span_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H1ghBre4k3r/y-lang-sub001/internal/span"
)

func TestSourceSetRegister(t *testing.T) {
	set := span.NewSourceSet()
	a := set.Register("a.why", "let x = 1;")
	b := set.Register("b.why", "let y = 2;")

	require.NotEqual(t, a, b, "every registered source gets its own id")
	assert.Equal(t, "a.why", set.Path(a))
	assert.Equal(t, "let x = 1;", set.Text(a))
	assert.Equal(t, "b.why", set.Path(b))
}

func TestMerge(t *testing.T) {
	set := span.NewSourceSet()
	id := set.Register("a.why", "")

	a := span.Span{Start: span.Position{Line: 1, Column: 3}, End: span.Position{Line: 1, Column: 5}, Source: id}
	b := span.Span{Start: span.Position{Line: 2, Column: 1}, End: span.Position{Line: 2, Column: 9}, Source: id}

	merged := span.Merge(a, b)
	assert.Equal(t, a.Start, merged.Start)
	assert.Equal(t, b.End, merged.End)
	assert.Equal(t, id, merged.Source)
}

func TestMergeAcrossSourcesPanics(t *testing.T) {
	set := span.NewSourceSet()
	a := span.Span{Source: set.Register("a.why", "")}
	b := span.Span{Source: set.Register("b.why", "")}

	require.Panics(t, func() { span.Merge(a, b) })
}

func TestRenderSingleLine(t *testing.T) {
	src := "let x = 1;\nlet y = 2.5;\nlet z = 3;"
	sp := span.Span{
		Start: span.Position{Line: 2, Column: 9},
		End:   span.Position{Line: 2, Column: 12},
	}

	out := span.Render("TypeMismatch: expected i64, found f64", sp, src, false)

	assert.Contains(t, out, "TypeMismatch: expected i64, found f64")
	assert.Contains(t, out, "1 | let x = 1;", "previous line is kept for context")
	assert.Contains(t, out, "2 | let y = 2.5;")
	assert.Contains(t, out, "^--", "caret underlines the span")
	assert.NotContains(t, out, "\x1b[31m", "no ANSI codes without colorize")
}

func TestRenderFirstLineHasNoContextLine(t *testing.T) {
	src := "oops\nfine"
	sp := span.Span{Start: span.Position{Line: 1, Column: 1}, End: span.Position{Line: 1, Column: 5}}

	out := span.Render("bad", sp, src, false)
	assert.NotContains(t, out, "fine", "only the offending line and its predecessor appear")
	assert.Contains(t, out, "1 | oops")
}

func TestRenderMultiLineUnderlinesEveryLine(t *testing.T) {
	src := "if (x\n+ y) {\n}"
	sp := span.Span{Start: span.Position{Line: 1, Column: 4}, End: span.Position{Line: 2, Column: 5}}

	out := span.Render("bad condition", sp, src, false)
	carets := strings.Count(out, "^")
	assert.Equal(t, 2, carets, "one caret row per spanned line")
}

func TestRenderColorized(t *testing.T) {
	src := "let x = 1;"
	sp := span.Span{Start: span.Position{Line: 1, Column: 5}, End: span.Position{Line: 1, Column: 6}}

	out := span.Render("bad", sp, src, true)
	assert.Contains(t, out, "\x1b[31m")
	assert.Contains(t, out, "\x1b[0m")
}

func TestPositionString(t *testing.T) {
	assert.Equal(t, "3:14", span.Position{Line: 3, Column: 14}.String())
}
