package scope_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H1ghBre4k3r/y-lang-sub001/internal/infer"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/scope"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/types"
)

func TestVariableLookupWalksFrames(t *testing.T) {
	arena := infer.NewArena()
	top := scope.New()
	v := arena.FreshWith(types.Integer{})
	top.AddVariable("x", v, false)

	child := top.Child()
	got, ok := child.LookupVariable("x")
	require.True(t, ok)
	assert.Equal(t, v, got, "the child resolves to the parent's cell, not a copy")

	_, ok = child.LookupVariable("y")
	assert.False(t, ok)
}

func TestShadowingInSameFrame(t *testing.T) {
	arena := infer.NewArena()
	s := scope.New()
	first := arena.FreshWith(types.Integer{})
	second := arena.FreshWith(types.Boolean{})

	s.AddVariable("x", first, false)
	s.AddVariable("x", second, true)

	got, ok := s.LookupVariable("x")
	require.True(t, ok)
	assert.Equal(t, second, got, "re-binding replaces the entry")
	assert.True(t, s.IsMutable("x"), "the latest binding's mutability wins")
}

func TestShadowingAcrossFrames(t *testing.T) {
	arena := infer.NewArena()
	top := scope.New()
	outer := arena.FreshWith(types.Integer{})
	top.AddVariable("x", outer, false)

	child := top.Child()
	inner := arena.FreshWith(types.Boolean{})
	child.AddVariable("x", inner, true)

	got, _ := child.LookupVariable("x")
	assert.Equal(t, inner, got)
	assert.True(t, child.IsMutable("x"))

	got, _ = top.LookupVariable("x")
	assert.Equal(t, outer, got, "the outer frame is untouched")
	assert.False(t, top.IsMutable("x"))
}

func TestDefinedInFrame(t *testing.T) {
	arena := infer.NewArena()
	top := scope.New()
	top.AddVariable("captured", arena.Fresh(), false)

	lambda := top.Child()
	lambda.AddVariable("param", arena.Fresh(), false)

	assert.True(t, lambda.DefinedInFrame("param"))
	assert.False(t, lambda.DefinedInFrame("captured"), "a name bound in an enclosing frame is a capture")
}

func TestAddConstant(t *testing.T) {
	top := scope.New()
	require.True(t, top.AddConstant("max", types.Integer{}))
	assert.False(t, top.AddConstant("max", types.Integer{}), "redefinition in the same frame fails")

	child := top.Child()
	assert.False(t, child.AddConstant("max", types.Boolean{}), "redefinition at any visible level fails")
	require.True(t, child.AddConstant("min", types.Integer{}))

	got, ok := child.LookupConstant("max")
	require.True(t, ok)
	assert.True(t, types.Equal(types.Integer{}, got))

	_, ok = top.LookupConstant("min")
	assert.False(t, ok, "an inner constant is invisible to the outer frame")
}

func TestAddType(t *testing.T) {
	point := types.Struct{Name: "Point", Fields: []types.Field{{Name: "x", Type: types.Integer{}}}}

	top := scope.New()
	require.True(t, top.AddType("Point", point))
	assert.False(t, top.AddType("Point", point))

	child := top.Child()
	assert.False(t, child.AddType("Point", point), "type names are unique across enclosing frames")

	got, ok := child.LookupType("Point")
	require.True(t, ok)
	assert.True(t, types.Equal(point, got))

	_, ok = child.LookupType("Vec")
	assert.False(t, ok)
}

func TestTopLevelNames(t *testing.T) {
	top := scope.New()
	top.AddConstant("main", types.Function{Return: types.Integer{}})
	top.AddConstant("LIMIT", types.Integer{})
	top.AddType("Point", types.Struct{Name: "Point"})

	constants, typeNames := top.TopLevelNames()
	assert.ElementsMatch(t, []string{"main", "LIMIT"}, constants)
	assert.ElementsMatch(t, []string{"Point"}, typeNames)
}
