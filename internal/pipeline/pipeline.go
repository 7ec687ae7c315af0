// Package pipeline threads a single compiled source through the five
// pipeline stages SPEC_FULL.md §2 lists (lex, parse, shallow-check,
// deep-check, validate), the way the teacher threads a *PipelineContext
// through a list of Processors (internal/pipeline/pipeline.go in the
// teacher repo). Unlike the teacher's Processor, which always continues
// so the LSP can collect diagnostics from every stage at once, a Stage
// here can abort the run: parsing accumulates and only reports its first
// error once the whole file is consumed, but the deep checker and the
// validator are fail-fast (SPEC_FULL.md §7), so the pipeline stops the
// moment either of them reports anything.
package pipeline

import (
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/ast"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/checker"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/diag"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/infer"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/lexer"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/parser"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/scope"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/shallow"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/span"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/token"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/validator"
)

// Context accumulates the output of every stage that has run so far.
// Each stage reads the fields the stages before it populated and fills
// in its own; cmd/why's -l/-p/-c/-v flags each dump one of these fields
// via package printer rather than re-running any stage.
type Context struct {
	Sources *span.SourceSet
	Source  span.SourceID
	Text    string

	Tokens    []token.Token
	Untyped   *ast.Untyped
	TopScope  *scope.Scope
	Checked   *ast.Checked
	Arena     *infer.Arena
	Validated *ast.Validated
}

// Stage is one step of the pipeline. It returns the updated Context, or
// an error that aborts the run (SPEC_FULL.md §2: "each arrow can fail
// with a single typed error plus a source span").
type Stage interface {
	Name() string
	Process(ctx *Context) (*Context, error)
}

// Run registers path/text as a new compiled source and drives it
// through every stage in order, stopping at the first error.
func Run(sources *span.SourceSet, path, text string) (*Context, error) {
	id := sources.Register(path, text)
	ctx := &Context{Sources: sources, Source: id, Text: text}

	stages := []Stage{
		lexStage{}, parseStage{}, shallowStage{}, deepStage{}, validateStage{},
	}
	var err error
	for _, st := range stages {
		ctx, err = st.Process(ctx)
		if err != nil {
			return ctx, err
		}
	}
	return ctx, nil
}

type lexStage struct{}

func (lexStage) Name() string { return "lex" }

func (lexStage) Process(ctx *Context) (*Context, error) {
	ctx.Tokens = lexer.Lex(ctx.Text)
	return ctx, nil
}

type parseStage struct{}

func (parseStage) Name() string { return "parse" }

func (parseStage) Process(ctx *Context) (*Context, error) {
	p := parser.New(ctx.Tokens, ctx.Source)
	prog := p.ParseProgram()
	ctx.Untyped = prog
	if err := p.Errors().First(); err != nil {
		return ctx, err
	}
	return ctx, nil
}

type shallowStage struct{}

func (shallowStage) Name() string { return "shallow-check" }

func (shallowStage) Process(ctx *Context) (*Context, error) {
	errs := diag.NewSink()
	ctx.TopScope = shallow.Check(ctx.Untyped, errs)
	if err := errs.First(); err != nil {
		return ctx, err
	}
	return ctx, nil
}

type deepStage struct{}

func (deepStage) Name() string { return "deep-check" }

func (deepStage) Process(ctx *Context) (*Context, error) {
	checked, arena, err := checker.Check(ctx.Untyped, ctx.TopScope)
	if err != nil {
		return ctx, err
	}
	ctx.Checked = checked
	ctx.Arena = arena
	return ctx, nil
}

type validateStage struct{}

func (validateStage) Name() string { return "validate" }

func (validateStage) Process(ctx *Context) (*Context, error) {
	validated, err := validator.Validate(ctx.Checked, ctx.Arena)
	if err != nil {
		return ctx, err
	}
	ctx.Validated = validated
	return ctx, nil
}
