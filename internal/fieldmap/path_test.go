package fieldmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want Path
	}{
		{"simple key", "title", Path{{Key: "title"}}},
		{"nested key", "price.value", Path{{Key: "price"}, {Key: "value"}}},
		{"array index", "variants[0].price", Path{{Key: "variants"}, {Index: 0, IsIndex: true}, {Key: "price"}}},
		{"deep indexes", "skus[1].stock_infos[0].available_stock", Path{
			{Key: "skus"}, {Index: 1, IsIndex: true},
			{Key: "stock_infos"}, {Index: 0, IsIndex: true},
			{Key: "available_stock"},
		}},
		{"empty pieces dropped", "a..b[]", Path{{Key: "a"}, {Key: "b"}}},
		{"empty", "", Path{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePath(tt.expr))
		})
	}
}

func TestPath_String(t *testing.T) {
	assert.Equal(t, "variants[0].price", ParsePath("variants[0].price").String())
	assert.Equal(t, "EanList[0]", ParsePath("EanList[0]").String())
}

func TestPath_SetCreatesContainers(t *testing.T) {
	out := map[string]any{}
	ParsePath("variants[0].price").Set(out, 10)
	ParsePath("variants[0].sku").Set(out, "ABC")
	ParsePath("images[2].src").Set(out, "c.png")

	variants, ok := out["variants"].([]any)
	require.True(t, ok)
	require.Len(t, variants, 1)
	assert.Equal(t, map[string]any{"price": 10, "sku": "ABC"}, variants[0])

	images, ok := out["images"].([]any)
	require.True(t, ok)
	require.Len(t, images, 3)
	assert.Nil(t, images[0])
	assert.Equal(t, map[string]any{"src": "c.png"}, images[2])
}

func TestPath_SetLaterWriteWins(t *testing.T) {
	out := map[string]any{}
	p := ParsePath("status")
	p.Set(out, "draft")
	p.Set(out, "active")
	assert.Equal(t, "active", out["status"])
}

func TestPath_SetReplacesScalarWithContainer(t *testing.T) {
	out := map[string]any{"price": 10}
	ParsePath("price.value").Set(out, 12)
	assert.Equal(t, map[string]any{"value": 12}, out["price"])
}

func TestPath_Get(t *testing.T) {
	out := map[string]any{}
	ParsePath("a.b[1].c").Set(out, "x")

	v, ok := ParsePath("a.b[1].c").Get(out)
	require.True(t, ok)
	assert.Equal(t, "x", v)

	_, ok = ParsePath("a.b[3].c").Get(out)
	assert.False(t, ok)
	_, ok = ParsePath("a.missing").Get(out)
	assert.False(t, ok)
}

func TestPath_Validate(t *testing.T) {
	assert.NoError(t, ParsePath("variants[1000].price").Validate())

	err := ParsePath("variants[1001].price").Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestPath_SetIgnoresIndexBeyondBound(t *testing.T) {
	out := map[string]any{}
	ParsePath("items[20000000]").Set(out, "x")
	assert.Empty(t, out)
}
