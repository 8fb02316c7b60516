package fieldmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"platform-adapter-service/internal/domain"
)

const sampleOverrides = `
platforms:
  shopify:
    mappings:
      - source: material
        target: metafields[0].value
        transform: capitalize
      - source: price
        target: variants[0].price_cents
        expr: value * 100
  etsy:
    mappings:
      - source: who_made
        target: who_made
        default: i_did
        required: true
`

func TestParseOverrides(t *testing.T) {
	overrides, err := ParseOverrides([]byte(sampleOverrides))
	require.NoError(t, err)
	require.Len(t, overrides["shopify"], 2)
	require.Len(t, overrides["etsy"], 1)

	etsy := overrides["etsy"][0]
	assert.Equal(t, "i_did", etsy.DefaultValue)
	assert.True(t, etsy.Required)

	m := Default().WithOverrides(overrides)
	out := m.MapProductFields(domain.Product{"material": "organic cotton", "price": 12}, "shopify")

	v, ok := ParsePath("metafields[0].value").Get(out)
	require.True(t, ok)
	assert.Equal(t, "Organic Cotton", v)

	v, ok = ParsePath("variants[0].price_cents").Get(out)
	require.True(t, ok)
	assert.EqualValues(t, 1200, v)

	out = m.MapProductFields(domain.Product{}, "etsy")
	assert.Equal(t, "i_did", out["who_made"])
}

func TestParseOverrides_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		msg  string
	}{
		{
			name: "missing target",
			doc:  "platforms:\n  shopify:\n    mappings:\n      - source: name\n",
			msg:  "invalid overrides",
		},
		{
			name: "transform and expr together",
			doc:  "platforms:\n  shopify:\n    mappings:\n      - source: name\n        target: title\n        transform: trim\n        expr: value\n",
			msg:  "invalid overrides",
		},
		{
			name: "unknown transform",
			doc:  "platforms:\n  shopify:\n    mappings:\n      - source: name\n        target: title\n        transform: explode\n",
			msg:  `unknown transform "explode"`,
		},
		{
			name: "bad expression",
			doc:  "platforms:\n  shopify:\n    mappings:\n      - source: name\n        target: title\n        expr: 'value +'\n",
			msg:  "invalid expression",
		},
		{
			name: "index beyond bound",
			doc:  "platforms:\n  shopify:\n    mappings:\n      - source: name\n        target: items[20000000]\n",
			msg:  "exceeds 1000",
		},
		{
			name: "unknown field",
			doc:  "platforms:\n  shopify:\n    mappings:\n      - source: name\n        target: title\n        fallback: x\n",
			msg:  "decode overrides",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOverrides([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mappings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleOverrides), 0o600))

	overrides, err := LoadOverrides(path)
	require.NoError(t, err)
	assert.Len(t, overrides, 2)

	_, err = LoadOverrides(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestOverrideEntry_ToMapping(t *testing.T) {
	fm, err := OverrideEntry{Source: "name", Target: "items[1000].title"}.ToMapping()
	require.NoError(t, err)
	assert.Equal(t, "items[1000].title", fm.Target.String())

	_, err = OverrideEntry{Source: "name", Target: "items[1001]"}.ToMapping()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "array index 1001 exceeds 1000")
}

func TestParseOverrides_TransformAndExprRejected(t *testing.T) {
	doc := "platforms:\n  shopify:\n    mappings:\n      - source: name\n        target: title\n        transform: uppercase\n        expr: 'value + \"!\"'\n"
	_, err := ParseOverrides([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shopify mapping 0")
	assert.Contains(t, err.Error(), "Transform")
}
