package domain

import (
	"slices"

	"github.com/shopspring/decimal"
)

// PlatformType classifies a publishing destination.
type PlatformType string

const (
	PlatformTypeStore       PlatformType = "store"
	PlatformTypeMarketplace PlatformType = "marketplace"
	PlatformTypeSocial      PlatformType = "social"
	PlatformTypeSupplier    PlatformType = "supplier"
)

// TextRules bounds a free-text field such as a title or a description.
type TextRules struct {
	MinLength  int      `json:"min_length" validate:"gte=0"`
	MaxLength  int      `json:"max_length" validate:"gte=0,gtefield=MinLength"`
	Required   bool     `json:"required"`
	Forbidden  []string `json:"forbidden,omitempty"`
	AllowsHTML bool     `json:"allows_html"`
}

// ImageRules bounds the product gallery. MaxSizeKB is expressed in kilobytes.
type ImageRules struct {
	MinCount    int      `json:"min_count" validate:"gte=0"`
	MaxCount    int      `json:"max_count" validate:"gte=0,gtefield=MinCount"`
	MinWidth    int      `json:"min_width" validate:"gte=0"`
	MinHeight   int      `json:"min_height" validate:"gte=0"`
	MaxSizeKB   int      `json:"max_size_kb" validate:"gte=0"`
	Formats     []string `json:"formats" validate:"required,min=1"`
	AspectRatio string   `json:"aspect_ratio,omitempty"`
}

// PricingRules describes accepted currencies and optional price bounds.
// The first currency is the one substituted when a product's currency is not accepted.
type PricingRules struct {
	Currency         []string            `json:"currency" validate:"required,min=1,dive,len=3"`
	MinPrice         decimal.NullDecimal `json:"min_price"`
	MaxPrice         decimal.NullDecimal `json:"max_price"`
	RequiresShipping bool                `json:"requires_shipping"`
	TaxInclusive     bool                `json:"tax_inclusive"`
}

// CategoryRules describes how the platform handles categories.
type CategoryRules struct {
	UsePlatformCategories bool `json:"use_platform_categories"`
	MappingRequired       bool `json:"mapping_required"`
}

// Limits holds numeric caps. Zero means the limit is not set.
type Limits struct {
	Variants  int `json:"variants,omitempty" validate:"gte=0"`
	Tags      int `json:"tags,omitempty" validate:"gte=0"`
	SKULength int `json:"sku_length,omitempty" validate:"gte=0"`
}

// PlatformConfig holds the publishing constraints of one platform. Configs are defined
// once at process start and never modified afterwards.
type PlatformConfig struct {
	ID             string         `json:"id" validate:"required,lowercase"`
	Name           string         `json:"name" validate:"required"`
	Type           PlatformType   `json:"type" validate:"required,oneof=store marketplace social supplier"`
	Title          TextRules      `json:"title"`
	Description    TextRules      `json:"description"`
	Images         ImageRules     `json:"images"`
	Pricing        PricingRules   `json:"pricing"`
	RequiredFields []string       `json:"required_fields"`
	OptionalFields []string       `json:"optional_fields"`
	Categories     CategoryRules  `json:"categories"`
	Limits         Limits         `json:"limits"`
	CustomFields   map[string]any `json:"custom_fields,omitempty"`
}

// Requires reports whether field is one of the platform's required semantic fields.
func (c *PlatformConfig) Requires(field string) bool {
	return slices.Contains(c.RequiredFields, field)
}

// AcceptsCurrency reports whether the platform accepts the given ISO currency code.
func (c *PlatformConfig) AcceptsCurrency(code string) bool {
	return slices.Contains(c.Pricing.Currency, code)
}

// AttributeType is the input type of a platform attribute.
type AttributeType string

const (
	AttributeText    AttributeType = "text"
	AttributeNumber  AttributeType = "number"
	AttributeSelect  AttributeType = "select"
	AttributeBoolean AttributeType = "boolean"
)

// PlatformAttribute describes a platform- or category-specific field beyond the
// standard field set.
type PlatformAttribute struct {
	Name        string        `json:"name"`
	Label       string        `json:"label"`
	Type        AttributeType `json:"type"`
	Required    bool          `json:"required"`
	Options     []string      `json:"options,omitempty"`
	Pattern     string        `json:"pattern,omitempty"`
	Description string        `json:"description,omitempty"`
}
