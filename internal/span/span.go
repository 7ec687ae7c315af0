// Package span locates bytes of source text: a (row, col) pair on entry,
// a byte range, and a handle identifying which compiled source the range
// belongs to.
package span

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// SourceID identifies a single compiled source unit. Two spans from two
// different invocations of the compiler never compare equal by accident,
// even if their row/col happen to coincide.
type SourceID uuid.UUID

func (id SourceID) String() string { return uuid.UUID(id).String() }

// SourceSet mints and remembers SourceIDs for the files fed into a single
// compiler run, together with their text (needed later to render a caret
// diagram).
type SourceSet struct {
	files map[SourceID]sourceFile
}

type sourceFile struct {
	path string
	text string
}

func NewSourceSet() *SourceSet {
	return &SourceSet{files: make(map[SourceID]sourceFile)}
}

// Register mints a fresh SourceID for path/text and remembers both for
// later rendering.
func (s *SourceSet) Register(path, text string) SourceID {
	id := SourceID(uuid.New())
	s.files[id] = sourceFile{path: path, text: text}
	return id
}

func (s *SourceSet) Path(id SourceID) string { return s.files[id].path }
func (s *SourceSet) Text(id SourceID) string { return s.files[id].text }

// Position is a one-based (row, col) source location.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }

// Span is a byte range between two positions within a single source.
type Span struct {
	Start  Position
	End    Position
	Source SourceID
}

// Merge produces the span running from a's start to b's end. Both spans
// must belong to the same source — mixing sources here is a compiler bug,
// not a user-facing error, so it panics rather than returning one.
func Merge(a, b Span) Span {
	if a.Source != b.Source {
		panic("span: Merge across distinct sources")
	}
	return Span{Start: a.Start, End: b.End, Source: a.Source}
}

// Render produces a multi-line caret diagram pointing at the span within
// src, with the previous line kept for context. colorize controls whether
// ANSI color codes wrap the offending region and caret — callers decide
// this based on whether stderr is a terminal, keeping this package itself
// environment-agnostic.
func Render(message string, sp Span, src string, colorize bool) string {
	lines := strings.Split(src, "\n")

	const red = "\x1b[31m"
	const reset = "\x1b[0m"
	paint := func(s string) string {
		if !colorize {
			return s
		}
		return red + s + reset
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", message)

	startLine := sp.Start.Line
	if startLine > 1 && startLine-2 < len(lines) {
		fmt.Fprintf(&b, "  %d | %s\n", startLine-1, lines[startLine-2])
	}

	endLine := sp.End.Line
	for ln := startLine; ln <= endLine; ln++ {
		if ln-1 >= len(lines) || ln-1 < 0 {
			continue
		}
		fmt.Fprintf(&b, "  %d | %s\n", ln, paint(lines[ln-1]))

		caretCol := 1
		caretLen := 1
		lineLen := len(lines[ln-1])
		switch {
		case ln == startLine && ln == endLine:
			caretCol = sp.Start.Column
			caretLen = max(1, sp.End.Column-sp.Start.Column)
		case ln == startLine:
			caretCol = sp.Start.Column
			caretLen = max(1, lineLen-sp.Start.Column+1)
		case ln == endLine:
			caretCol = 1
			caretLen = max(1, sp.End.Column-1)
		default:
			caretCol = 1
			caretLen = max(1, lineLen)
		}
		indent := strings.Repeat(" ", caretCol-1)
		underline := "^" + strings.Repeat("-", caretLen-1)
		fmt.Fprintf(&b, "      %s%s\n", indent, paint(underline))
	}

	return b.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
