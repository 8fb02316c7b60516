package attribute

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"platform-adapter-service/internal/domain"
)

func names(attrs []domain.PlatformAttribute) []string {
	out := make([]string, len(attrs))
	for i, a := range attrs {
		out[i] = a.Name
	}
	return out
}

func TestRequiredAttributes_GlobalThenCategory(t *testing.T) {
	c := Default()

	assert.Equal(t, []string{"condition", "product_id"}, names(c.RequiredAttributes("amazon", "")))
	assert.Equal(t,
		[]string{"condition", "product_id", "isbn", "author"},
		names(c.RequiredAttributes("AMAZON", "Books")))
	assert.Equal(t, []string{"condition", "product_id"}, names(c.RequiredAttributes("amazon", "Unknown")))
	assert.Nil(t, c.RequiredAttributes("myspace", "Books"))
}

func TestRequiredAttributes_NoDeduplication(t *testing.T) {
	c, err := New(map[string]Registration{
		"shop": {
			Global: []domain.PlatformAttribute{{Name: "color", Required: true}},
			ByCategory: map[string][]domain.PlatformAttribute{
				"Shirts": {{Name: "color", Required: true}},
			},
		},
	})
	require.NoError(t, err)

	attrs := c.RequiredAttributes("shop", "Shirts")
	assert.Equal(t, []string{"color", "color"}, names(attrs))

	res := c.Validate(domain.Product{}, "shop", "Shirts")
	assert.False(t, res.Valid)
	assert.Len(t, res.MissingAttributes, 2)
}

func TestValidate_MissingAndInvalidFormat(t *testing.T) {
	c := Default()

	res := c.Validate(domain.Product{"condition": "", "product_id": nil}, "amazon", "")
	require.False(t, res.Valid)
	require.Len(t, res.MissingAttributes, 2)
	assert.Equal(t, ReasonMissing, res.MissingAttributes[0].Reason)
	assert.Equal(t, "condition", res.MissingAttributes[0].Attribute.Name)
	assert.Equal(t, ReasonMissing, res.MissingAttributes[1].Reason)

	res = c.Validate(domain.Product{"condition": "new", "product_id": "12AB"}, "amazon", "")
	require.False(t, res.Valid)
	require.Len(t, res.MissingAttributes, 1)
	assert.Equal(t, ReasonInvalidFormat, res.MissingAttributes[0].Reason)
	assert.Equal(t, "product_id", res.MissingAttributes[0].Attribute.Name)

	res = c.Validate(domain.Product{"condition": "new", "product_id": "4006381333931"}, "amazon", "")
	assert.True(t, res.Valid)
	assert.Empty(t, res.MissingAttributes)
}

func TestValidate_OptionalAttributesIgnored(t *testing.T) {
	res := Default().Validate(
		domain.Product{"condition": "new", "product_id": "12345678"},
		"amazon", "Electronics")
	assert.True(t, res.Valid, "model_number is optional")
}

func TestValidate_UnknownPlatformIsValid(t *testing.T) {
	res := Default().Validate(domain.Product{}, "myspace", "")
	assert.True(t, res.Valid)
}

func TestFillDefaults_SynonymTable(t *testing.T) {
	c := Default()

	in := domain.Product{"barcode": "4006381333931", "stock": 3}
	out := c.FillDefaults(in, "google_shopping", "")

	assert.Equal(t, "in_stock", out["availability"])
	assert.Equal(t, "new", out["condition"])
	assert.Equal(t, "4006381333931", out["gtin"])
	_, touched := in["availability"]
	assert.False(t, touched, "input must not be mutated")

	out = c.FillDefaults(domain.Product{"stock_quantity": 0}, "facebook", "")
	assert.Equal(t, "out_of_stock", out["availability"])

	out = c.FillDefaults(domain.Product{}, "ebay", "")
	assert.Equal(t, true, out["return_accepted"])
	assert.Equal(t, "30", out["return_period"])
	assert.Equal(t, 2, out["processing_time"])
	assert.Equal(t, "new", out["condition"])

	out = c.FillDefaults(domain.Product{"ean": "12345678", "gtin": "999"}, "cdiscount", "")
	assert.Equal(t, "12345678", out["ean"])
	assert.Equal(t, 2, out["shipping_delay"])
}

func TestFillDefaults_KeepsExistingAndSkipsUnknown(t *testing.T) {
	c := Default()

	out := c.FillDefaults(domain.Product{"condition": "used"}, "etsy", "Jewelry")
	assert.Equal(t, "used", out["condition"])
	_, ok := out["who_made"]
	assert.False(t, ok, "no synonym for who_made")
	_, ok = out["materials"]
	assert.False(t, ok, "no synonym for materials")
	assert.Equal(t, 2, out["processing_time"])

	out = c.FillDefaults(domain.Product{}, "amazon", "")
	_, ok = out["product_id"]
	assert.False(t, ok, "no identifier source available")
}

func TestNew_InvalidPattern(t *testing.T) {
	_, err := New(map[string]Registration{
		"shop": {Global: []domain.PlatformAttribute{{Name: "code", Pattern: "([a-z"}}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shop.code")
}
