package fieldmap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func apply(t *testing.T, name string, v any) any {
	t.Helper()
	fn, ok := Transform(name)
	require.True(t, ok, "transform %s is registered", name)
	return fn(v)
}

func TestNamedTransforms(t *testing.T) {
	assert.Equal(t, "RED SHOE", apply(t, "uppercase", "red shoe"))
	assert.Equal(t, "red shoe", apply(t, "lowercase", "Red Shoe"))
	assert.Equal(t, "Red Shoe", apply(t, "capitalize", "red shoe"))
	assert.Equal(t, "shoe", apply(t, "trim", "  shoe \n"))
	assert.Equal(t, "Bold text", apply(t, "strip_html", "<p><b>Bold</b> text</p>"))
	assert.Equal(t, 1299.0, apply(t, "multiply_100", 12.99))
	assert.Equal(t, 12.99, apply(t, "divide_100", 1299))
	assert.Equal(t, 3.14, apply(t, "round_2", 3.14159))
	assert.Equal(t, 42.5, apply(t, "to_number", "42.5"))
	assert.Equal(t, "42", apply(t, "to_string", 42))
	assert.Equal(t, "a, b", apply(t, "join_comma", []any{"a", "b"}))
	assert.Equal(t, "already, joined", apply(t, "join_comma", "already, joined"))
	assert.Equal(t, "a", apply(t, "first", []string{"a", "b"}))
	assert.Nil(t, apply(t, "first", []string{}))
}

func TestNamedTransforms_NilPassesThrough(t *testing.T) {
	for _, name := range []string{"uppercase", "strip_html", "multiply_100", "to_string", "join_comma"} {
		assert.Nil(t, apply(t, name, nil), name)
	}
}

func TestTruncateTransforms(t *testing.T) {
	long := strings.Repeat("é", 200)
	assert.Len(t, []rune(apply(t, "truncate_60", long).(string)), 60)
	assert.Len(t, []rune(apply(t, "truncate_150", long).(string)), 150)
	assert.Equal(t, long, apply(t, "truncate_500", long))
}

func TestTransform_CaseInsensitiveLookup(t *testing.T) {
	_, ok := Transform("UPPERCASE")
	assert.True(t, ok)
	_, ok = Transform("explode")
	assert.False(t, ok)
	assert.Contains(t, TransformNames(), "strip_html")
}

func TestCompileExpr(t *testing.T) {
	fn, err := CompileExpr("value * 2")
	require.NoError(t, err)
	assert.EqualValues(t, 20, fn(10))

	fn, err = CompileExpr(`value + " EUR"`)
	require.NoError(t, err)
	assert.Equal(t, "10 EUR", fn("10"))
}

func TestCompileExpr_RuntimeErrorKeepsValue(t *testing.T) {
	fn, err := CompileExpr("value * 2")
	require.NoError(t, err)
	assert.Equal(t, "abc", fn("abc"))
}

func TestCompileExpr_InvalidSyntax(t *testing.T) {
	_, err := CompileExpr("value *")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid expression")
}
