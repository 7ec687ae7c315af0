package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H1ghBre4k3r/y-lang-sub001/internal/types"
)

var point = types.Struct{Name: "Point", Fields: []types.Field{
	{Name: "x", Type: types.Integer{}},
	{Name: "y", Type: types.Integer{}},
}}

func TestEqual(t *testing.T) {
	testCases := []struct {
		name string
		a, b types.Type
		want bool
	}{
		{"integer", types.Integer{}, types.Integer{}, true},
		{"integer_vs_float", types.Integer{}, types.FloatingPoint{}, false},
		{"unknown_is_not_a_wildcard", types.Unknown{}, types.Integer{}, false},
		{"unknown_vs_unknown", types.Unknown{}, types.Unknown{}, true},
		{"reference", types.Reference{Of: types.Integer{}}, types.Reference{Of: types.Integer{}}, true},
		{"reference_mismatched_inner", types.Reference{Of: types.Integer{}}, types.Reference{Of: types.Boolean{}}, false},
		{"array", types.Array{Of: types.Character{}}, types.Array{Of: types.Character{}}, true},
		{"tuple", types.Tuple{Of: []types.Type{types.Integer{}, types.Boolean{}}}, types.Tuple{Of: []types.Type{types.Integer{}, types.Boolean{}}}, true},
		{"tuple_length", types.Tuple{Of: []types.Type{types.Integer{}}}, types.Tuple{Of: []types.Type{types.Integer{}, types.Integer{}}}, false},
		{"struct", point, types.Struct{Name: "Point", Fields: point.Fields}, true},
		{"struct_name_matters", point, types.Struct{Name: "Vec", Fields: point.Fields}, false},
		{
			"struct_field_order_matters",
			point,
			types.Struct{Name: "Point", Fields: []types.Field{
				{Name: "y", Type: types.Integer{}},
				{Name: "x", Type: types.Integer{}},
			}},
			false,
		},
		{
			"function",
			types.Function{Params: []types.Type{types.Integer{}}, Return: types.Boolean{}},
			types.Function{Params: []types.Type{types.Integer{}}, Return: types.Boolean{}},
			true,
		},
		{
			"function_arity",
			types.Function{Params: []types.Type{types.Integer{}}, Return: types.Void{}},
			types.Function{Params: nil, Return: types.Void{}},
			false,
		},
		{
			"function_vs_lambda",
			types.Function{Params: []types.Type{types.Integer{}}, Return: types.Boolean{}},
			types.Lambda{Params: []types.Type{types.Integer{}}, Return: types.Boolean{}},
			false,
		},
		{"nil_vs_nil", nil, nil, true},
		{"nil_vs_type", nil, types.Integer{}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, types.Equal(tc.a, tc.b))
			assert.Equal(t, tc.want, types.Equal(tc.b, tc.a), "Equal is symmetric")
		})
	}
}

func TestIsUnknown(t *testing.T) {
	testCases := []struct {
		name string
		t    types.Type
		want bool
	}{
		{"concrete", types.Integer{}, false},
		{"bare_unknown", types.Unknown{}, true},
		{"inside_reference", types.Reference{Of: types.Unknown{}}, true},
		{"inside_array", types.Array{Of: types.Unknown{}}, true},
		{"inside_tuple", types.Tuple{Of: []types.Type{types.Integer{}, types.Unknown{}}}, true},
		{"inside_struct_field", types.Struct{Name: "S", Fields: []types.Field{{Name: "a", Type: types.Unknown{}}}}, true},
		{"inside_function_param", types.Function{Params: []types.Type{types.Unknown{}}, Return: types.Void{}}, true},
		{"inside_function_return", types.Function{Return: types.Unknown{}}, true},
		{"inside_lambda", types.Lambda{Params: []types.Type{types.Integer{}}, Return: types.Unknown{}}, true},
		{"clean_function", types.Function{Params: []types.Type{types.Integer{}}, Return: types.Void{}}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, types.IsUnknown(tc.t))
		})
	}
}

func TestResolveNamed(t *testing.T) {
	none := func(string) (types.Type, bool) { return nil, false }

	for name, want := range map[string]types.Type{
		"i64": types.Integer{}, "Int": types.Integer{},
		"f64": types.FloatingPoint{}, "Float": types.FloatingPoint{},
		"bool": types.Boolean{}, "Bool": types.Boolean{},
		"char": types.Character{}, "Char": types.Character{},
		"string": types.String{}, "String": types.String{},
		"void": types.Void{}, "Void": types.Void{},
	} {
		got, ok := types.ResolveNamed(name, none)
		require.True(t, ok, "builtin %q resolves", name)
		assert.True(t, types.Equal(want, got), "builtin %q", name)
	}

	_, ok := types.ResolveNamed("Point", none)
	assert.False(t, ok, "unregistered names fall through to the lookup")

	got, ok := types.ResolveNamed("Point", func(name string) (types.Type, bool) {
		if name == "Point" {
			return point, true
		}
		return nil, false
	})
	require.True(t, ok)
	assert.True(t, types.Equal(point, got))
}

func TestStructFieldAccess(t *testing.T) {
	assert.Equal(t, 0, point.FieldIndex("x"))
	assert.Equal(t, 1, point.FieldIndex("y"))
	assert.Equal(t, -1, point.FieldIndex("z"))

	ft, ok := point.FieldType("y")
	require.True(t, ok)
	assert.True(t, types.Equal(types.Integer{}, ft))

	_, ok = point.FieldType("z")
	assert.False(t, ok)
}

func TestString(t *testing.T) {
	assert.Equal(t, "i64", types.Integer{}.String())
	assert.Equal(t, "?", types.Unknown{}.String())
	assert.Equal(t, "&Point", types.Reference{Of: point}.String())
	assert.Equal(t, "[i64]", types.Array{Of: types.Integer{}}.String())
	assert.Equal(t, "(i64, bool)", types.Tuple{Of: []types.Type{types.Integer{}, types.Boolean{}}}.String())
	assert.Equal(t, "fn(i64, bool): void", types.Function{Params: []types.Type{types.Integer{}, types.Boolean{}}, Return: types.Void{}}.String())
	assert.Equal(t, `\(i64) => i64`, types.Lambda{Params: []types.Type{types.Integer{}}, Return: types.Integer{}}.String())
}
