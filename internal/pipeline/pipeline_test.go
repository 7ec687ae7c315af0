package pipeline_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/H1ghBre4k3r/y-lang-sub001/internal/diag"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/pipeline"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/span"
)

// TestPipelineScenarios drives whole .why programs through every stage.
// Each testdata archive holds the source under input.why and the
// expected outcome under expect: "ok" for a clean run, or
// "error: <Code>" naming the diagnostic the run must stop with.
func TestPipelineScenarios(t *testing.T) {
	archives, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, archives, "no testdata archives found")

	for _, path := range archives {
		name := strings.TrimSuffix(filepath.Base(path), ".txtar")
		t.Run(name, func(t *testing.T) {
			archive, err := txtar.ParseFile(path)
			require.NoError(t, err)

			var input, expect string
			for _, f := range archive.Files {
				switch f.Name {
				case "input.why":
					input = string(f.Data)
				case "expect":
					expect = strings.TrimSpace(string(f.Data))
				}
			}
			require.NotEmpty(t, input, "%s has no input.why", path)
			require.NotEmpty(t, expect, "%s has no expect", path)

			sources := span.NewSourceSet()
			ctx, runErr := pipeline.Run(sources, name+".why", input)

			if expect == "ok" {
				require.NoError(t, runErr)
				require.NotNil(t, ctx.Validated, "a clean run produces a validated AST")
				return
			}

			code := diag.Code(strings.TrimPrefix(expect, "error: "))
			require.Error(t, runErr)
			de, ok := runErr.(*diag.Error)
			require.True(t, ok, "pipeline errors are *diag.Error, got %T: %v", runErr, runErr)
			assert.Equal(t, code, de.Code)
			assert.NotZero(t, de.Span.Start.Line, "the error carries a span inside the source")
		})
	}
}

func TestRunPopulatesEveryStage(t *testing.T) {
	sources := span.NewSourceSet()
	ctx, err := pipeline.Run(sources, "main.why", "fn main(): i64 { 42 }")
	require.NoError(t, err)

	assert.NotEmpty(t, ctx.Tokens)
	assert.NotNil(t, ctx.Untyped)
	assert.NotNil(t, ctx.TopScope)
	assert.NotNil(t, ctx.Checked)
	assert.NotNil(t, ctx.Arena)
	assert.NotNil(t, ctx.Validated)
	assert.Equal(t, "main.why", sources.Path(ctx.Source))
}

func TestRunStopsAtTheFailingStage(t *testing.T) {
	sources := span.NewSourceSet()
	ctx, err := pipeline.Run(sources, "bad.why", "fn main(): i64 { y }")
	require.Error(t, err)

	assert.NotNil(t, ctx.Untyped, "parsing succeeded before the checker failed")
	assert.Nil(t, ctx.Checked, "the failing stage leaves no output")
	assert.Nil(t, ctx.Validated)
}

func TestScopeDisciplineAfterFullRun(t *testing.T) {
	sources := span.NewSourceSet()
	ctx, err := pipeline.Run(sources, "main.why", `
struct Point { x: i64 }
const LIMIT: i64 = 10;
declare print: fn(string): void;
fn main(): i64 { 0 }
`)
	require.NoError(t, err)

	constants, typeNames := ctx.TopScope.TopLevelNames()
	assert.ElementsMatch(t, []string{"LIMIT", "print", "main"}, constants)
	assert.ElementsMatch(t, []string{"Point"}, typeNames)
}
