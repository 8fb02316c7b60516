package platform

import (
	"github.com/shopspring/decimal"

	"platform-adapter-service/internal/domain"
)

var (
	standardFormats = []string{"jpg", "jpeg", "png", "webp"}
	strictFormats   = []string{"jpg", "jpeg", "png"}
	euroFirst       = []string{"EUR", "USD", "GBP"}
)

func price(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

// builtinConfigs returns the platform table. Adding a platform is a data change here
// (plus optional entries in the category, attribute and field-mapping tables).
func builtinConfigs() []domain.PlatformConfig {
	return []domain.PlatformConfig{
		{
			ID:          "shopify",
			Name:        "Shopify",
			Type:        domain.PlatformTypeStore,
			Title:       domain.TextRules{MinLength: 1, MaxLength: 255, Required: true},
			Description: domain.TextRules{MinLength: 0, MaxLength: 65535, AllowsHTML: true},
			Images: domain.ImageRules{
				MinCount: 0, MaxCount: 250, MinWidth: 800, MinHeight: 800, MaxSizeKB: 20480,
				Formats: []string{"jpg", "jpeg", "png", "webp", "gif"},
			},
			Pricing: domain.PricingRules{
				Currency:         []string{"EUR", "USD", "GBP", "CAD", "AUD", "JPY"},
				MinPrice:         price("0"),
				RequiresShipping: true,
			},
			RequiredFields: []string{"title", "price"},
			OptionalFields: []string{"description", "images", "sku", "barcode", "brand", "category", "tags", "weight"},
			Categories:     domain.CategoryRules{UsePlatformCategories: false, MappingRequired: false},
			Limits:         domain.Limits{Variants: 100, Tags: 250, SKULength: 255},
			CustomFields:   map[string]any{"status": "draft", "published_scope": "web"},
		},
		{
			ID:          "woocommerce",
			Name:        "WooCommerce",
			Type:        domain.PlatformTypeStore,
			Title:       domain.TextRules{MinLength: 1, MaxLength: 200, Required: true},
			Description: domain.TextRules{MinLength: 0, MaxLength: 100000, AllowsHTML: true},
			Images:      domain.ImageRules{MinCount: 0, MaxCount: 50, MinWidth: 600, MinHeight: 600, MaxSizeKB: 10240, Formats: standardFormats},
			Pricing: domain.PricingRules{
				Currency: []string{"EUR", "USD", "GBP", "CAD", "CHF"},
				MinPrice: price("0"),
			},
			RequiredFields: []string{"title", "price"},
			OptionalFields: []string{"description", "images", "sku", "category", "tags", "weight"},
			Limits:         domain.Limits{Variants: 100, Tags: 100, SKULength: 100},
			CustomFields:   map[string]any{"type": "simple"},
		},
		{
			ID:          "prestashop",
			Name:        "PrestaShop",
			Type:        domain.PlatformTypeStore,
			Title:       domain.TextRules{MinLength: 1, MaxLength: 128, Required: true, Forbidden: []string{"<", ">", ";", "=", "#", "{", "}"}},
			Description: domain.TextRules{MinLength: 0, MaxLength: 21844, AllowsHTML: true},
			Images:      domain.ImageRules{MinCount: 0, MaxCount: 30, MinWidth: 500, MinHeight: 500, MaxSizeKB: 8192, Formats: []string{"jpg", "jpeg", "png", "gif"}},
			Pricing: domain.PricingRules{
				Currency:     []string{"EUR", "CHF", "GBP", "USD"},
				MinPrice:     price("0"),
				TaxInclusive: true,
			},
			RequiredFields: []string{"title", "price", "category"},
			OptionalFields: []string{"description", "images", "sku", "brand", "ean", "weight"},
			Categories:     domain.CategoryRules{UsePlatformCategories: true},
			Limits:         domain.Limits{Variants: 200, Tags: 50, SKULength: 64},
		},
		{
			ID:          "amazon",
			Name:        "Amazon",
			Type:        domain.PlatformTypeMarketplace,
			Title:       domain.TextRules{MinLength: 10, MaxLength: 200, Required: true, Forbidden: []string{"best seller", "free shipping", "sale", "#1", "cheap"}},
			Description: domain.TextRules{MinLength: 100, MaxLength: 2000, Required: true},
			Images: domain.ImageRules{
				MinCount: 1, MaxCount: 9, MinWidth: 1000, MinHeight: 1000, MaxSizeKB: 10240,
				Formats: strictFormats, AspectRatio: "1:1",
			},
			Pricing: domain.PricingRules{
				Currency:         euroFirst,
				MinPrice:         price("0.01"),
				MaxPrice:         price("100000"),
				RequiresShipping: true,
				TaxInclusive:     true,
			},
			RequiredFields: []string{"title", "description", "price", "brand", "sku", "images", "category"},
			OptionalFields: []string{"ean", "tags", "weight", "condition"},
			Categories:     domain.CategoryRules{UsePlatformCategories: true, MappingRequired: true},
			Limits:         domain.Limits{Variants: 2000, Tags: 5, SKULength: 40},
			CustomFields:   map[string]any{"fulfillment_channel": "DEFAULT"},
		},
		{
			ID:          "ebay",
			Name:        "eBay",
			Type:        domain.PlatformTypeMarketplace,
			Title:       domain.TextRules{MinLength: 1, MaxLength: 80, Required: true, Forbidden: []string{"l@@k", "wow", "free shipping"}},
			Description: domain.TextRules{MinLength: 1, MaxLength: 500000, Required: true, AllowsHTML: true},
			Images:      domain.ImageRules{MinCount: 1, MaxCount: 24, MinWidth: 500, MinHeight: 500, MaxSizeKB: 12288, Formats: standardFormats},
			Pricing: domain.PricingRules{
				Currency:         euroFirst,
				MinPrice:         price("0.99"),
				RequiresShipping: true,
			},
			RequiredFields: []string{"title", "description", "price", "images", "category"},
			OptionalFields: []string{"brand", "sku", "ean", "condition"},
			Categories:     domain.CategoryRules{UsePlatformCategories: true, MappingRequired: true},
			Limits:         domain.Limits{Variants: 250, SKULength: 50},
		},
		{
			ID:          "etsy",
			Name:        "Etsy",
			Type:        domain.PlatformTypeMarketplace,
			Title:       domain.TextRules{MinLength: 1, MaxLength: 140, Required: true},
			Description: domain.TextRules{MinLength: 20, MaxLength: 5000, Required: true},
			Images:      domain.ImageRules{MinCount: 1, MaxCount: 10, MinWidth: 2000, MinHeight: 2000, MaxSizeKB: 1024, Formats: []string{"jpg", "jpeg", "png", "gif"}},
			Pricing: domain.PricingRules{
				Currency:         []string{"EUR", "USD", "GBP", "CAD", "AUD"},
				MinPrice:         price("0.2"),
				MaxPrice:         price("50000"),
				RequiresShipping: true,
			},
			RequiredFields: []string{"title", "description", "price", "images", "category"},
			OptionalFields: []string{"tags", "sku", "materials"},
			Categories:     domain.CategoryRules{UsePlatformCategories: true, MappingRequired: true},
			Limits:         domain.Limits{Variants: 70, Tags: 13, SKULength: 32},
		},
		{
			ID:          "cdiscount",
			Name:        "Cdiscount",
			Type:        domain.PlatformTypeMarketplace,
			Title:       domain.TextRules{MinLength: 5, MaxLength: 132, Required: true},
			Description: domain.TextRules{MinLength: 20, MaxLength: 5000, Required: true},
			Images:      domain.ImageRules{MinCount: 1, MaxCount: 4, MinWidth: 500, MinHeight: 500, MaxSizeKB: 2048, Formats: strictFormats},
			Pricing: domain.PricingRules{
				Currency:         []string{"EUR"},
				MinPrice:         price("1"),
				RequiresShipping: true,
				TaxInclusive:     true,
			},
			RequiredFields: []string{"title", "description", "price", "brand", "ean", "images", "category"},
			OptionalFields: []string{"sku", "weight"},
			Categories:     domain.CategoryRules{UsePlatformCategories: true, MappingRequired: true},
			Limits:         domain.Limits{Variants: 100, SKULength: 50},
		},
		{
			ID:          "google_shopping",
			Name:        "Google Shopping",
			Type:        domain.PlatformTypeMarketplace,
			Title:       domain.TextRules{MinLength: 1, MaxLength: 150, Required: true, Forbidden: []string{"free shipping", "buy now"}},
			Description: domain.TextRules{MinLength: 1, MaxLength: 5000, Required: true},
			Images:      domain.ImageRules{MinCount: 1, MaxCount: 11, MinWidth: 100, MinHeight: 100, MaxSizeKB: 16384, Formats: []string{"jpg", "jpeg", "png", "gif", "webp", "bmp"}},
			Pricing: domain.PricingRules{
				Currency: []string{"EUR", "USD", "GBP", "CHF"},
				MinPrice: price("0.01"),
			},
			RequiredFields: []string{"title", "description", "price", "images", "brand"},
			OptionalFields: []string{"gtin", "category", "condition"},
			Categories:     domain.CategoryRules{UsePlatformCategories: true, MappingRequired: true},
			Limits:         domain.Limits{Tags: 5, SKULength: 50},
		},
		{
			ID:          "facebook",
			Name:        "Facebook Shops",
			Type:        domain.PlatformTypeSocial,
			Title:       domain.TextRules{MinLength: 1, MaxLength: 200, Required: true},
			Description: domain.TextRules{MinLength: 1, MaxLength: 9999, Required: true},
			Images:      domain.ImageRules{MinCount: 1, MaxCount: 20, MinWidth: 500, MinHeight: 500, MaxSizeKB: 8192, Formats: strictFormats, AspectRatio: "1:1"},
			Pricing: domain.PricingRules{
				Currency: euroFirst,
				MinPrice: price("0.01"),
			},
			RequiredFields: []string{"title", "description", "price", "images", "brand"},
			OptionalFields: []string{"category", "condition", "sku"},
			Categories:     domain.CategoryRules{UsePlatformCategories: true},
			Limits:         domain.Limits{Variants: 100, SKULength: 100},
		},
		{
			ID:          "instagram",
			Name:        "Instagram Shopping",
			Type:        domain.PlatformTypeSocial,
			Title:       domain.TextRules{MinLength: 1, MaxLength: 150, Required: true},
			Description: domain.TextRules{MinLength: 1, MaxLength: 2200, Required: true},
			Images:      domain.ImageRules{MinCount: 1, MaxCount: 10, MinWidth: 1080, MinHeight: 1080, MaxSizeKB: 8192, Formats: strictFormats, AspectRatio: "1:1"},
			Pricing: domain.PricingRules{
				Currency: euroFirst,
				MinPrice: price("0.01"),
			},
			RequiredFields: []string{"title", "description", "price", "images"},
			OptionalFields: []string{"brand", "category", "tags"},
			Limits:         domain.Limits{Tags: 30, SKULength: 100},
		},
		{
			ID:          "tiktok",
			Name:        "TikTok Shop",
			Type:        domain.PlatformTypeSocial,
			Title:       domain.TextRules{MinLength: 25, MaxLength: 255, Required: true},
			Description: domain.TextRules{MinLength: 1, MaxLength: 10000, Required: true, AllowsHTML: true},
			Images:      domain.ImageRules{MinCount: 1, MaxCount: 9, MinWidth: 600, MinHeight: 600, MaxSizeKB: 5120, Formats: []string{"jpg", "jpeg", "png", "webp"}, AspectRatio: "1:1"},
			Pricing: domain.PricingRules{
				Currency: []string{"GBP", "USD", "EUR"},
				MinPrice: price("0.01"),
			},
			RequiredFields: []string{"title", "description", "price", "images", "category"},
			OptionalFields: []string{"brand", "sku", "weight"},
			Categories:     domain.CategoryRules{UsePlatformCategories: true, MappingRequired: true},
			Limits:         domain.Limits{Variants: 100, SKULength: 50},
		},
		{
			ID:          "aliexpress",
			Name:        "AliExpress",
			Type:        domain.PlatformTypeSupplier,
			Title:       domain.TextRules{MinLength: 1, MaxLength: 128, Required: true},
			Description: domain.TextRules{MinLength: 0, MaxLength: 60000, AllowsHTML: true},
			Images:      domain.ImageRules{MinCount: 1, MaxCount: 6, MinWidth: 350, MinHeight: 350, MaxSizeKB: 3072, Formats: strictFormats},
			Pricing: domain.PricingRules{
				Currency: []string{"USD", "EUR"},
				MinPrice: price("0.01"),
			},
			RequiredFields: []string{"title", "price", "images"},
			OptionalFields: []string{"description", "sku", "category", "weight"},
			Categories:     domain.CategoryRules{UsePlatformCategories: true},
			Limits:         domain.Limits{Variants: 200, SKULength: 50},
		},
		{
			ID:          "bigbuy",
			Name:        "BigBuy",
			Type:        domain.PlatformTypeSupplier,
			Title:       domain.TextRules{MinLength: 1, MaxLength: 200, Required: true},
			Description: domain.TextRules{MinLength: 0, MaxLength: 10000, AllowsHTML: true},
			Images:      domain.ImageRules{MinCount: 1, MaxCount: 8, MinWidth: 400, MinHeight: 400, MaxSizeKB: 4096, Formats: strictFormats},
			Pricing: domain.PricingRules{
				Currency:     []string{"EUR"},
				MinPrice:     price("0.01"),
				TaxInclusive: false,
			},
			RequiredFields: []string{"title", "price", "sku", "ean"},
			OptionalFields: []string{"description", "brand", "category", "weight"},
			Limits:         domain.Limits{SKULength: 40},
		},
	}
}
