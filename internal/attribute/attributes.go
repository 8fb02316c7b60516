package attribute

import "platform-adapter-service/internal/domain"

const (
	gtinPattern = `^\d{8,14}$`
	isbnPattern = `^(97[89])?\d{9}[\dX]$`
)

var (
	conditionAttr = domain.PlatformAttribute{
		Name: "condition", Label: "Condition", Type: domain.AttributeSelect, Required: true,
		Options: []string{"new", "used", "refurbished"},
	}
	eanAttr = domain.PlatformAttribute{
		Name: "ean", Label: "EAN", Type: domain.AttributeText, Required: true,
		Pattern: gtinPattern, Description: "8 to 14 digit European Article Number",
	}
	availabilityAttr = domain.PlatformAttribute{
		Name: "availability", Label: "Availability", Type: domain.AttributeSelect, Required: true,
		Options: []string{"in_stock", "out_of_stock", "preorder"},
	}
)

func builtinAttributes() map[string]Registration {
	return map[string]Registration{
		"amazon": {
			Global: []domain.PlatformAttribute{
				conditionAttr,
				{
					Name: "product_id", Label: "Product ID (EAN/UPC)", Type: domain.AttributeText, Required: true,
					Pattern: gtinPattern, Description: "External product identifier",
				},
			},
			ByCategory: map[string][]domain.PlatformAttribute{
				"Books": {
					{Name: "isbn", Label: "ISBN", Type: domain.AttributeText, Required: true, Pattern: isbnPattern},
					{Name: "author", Label: "Author", Type: domain.AttributeText, Required: true},
				},
				"Clothing, Shoes & Jewelry": {
					{Name: "size", Label: "Size", Type: domain.AttributeText, Required: true},
					{Name: "color", Label: "Color", Type: domain.AttributeText, Required: true},
				},
				"Electronics": {
					{Name: "model_number", Label: "Model number", Type: domain.AttributeText, Required: false},
				},
			},
		},
		"ebay": {
			Global: []domain.PlatformAttribute{
				conditionAttr,
				{Name: "return_accepted", Label: "Returns accepted", Type: domain.AttributeBoolean, Required: true},
				{
					Name: "return_period", Label: "Return period (days)", Type: domain.AttributeSelect, Required: true,
					Options: []string{"14", "30", "60"},
				},
				{Name: "processing_time", Label: "Handling time (days)", Type: domain.AttributeNumber, Required: true},
			},
			ByCategory: map[string][]domain.PlatformAttribute{
				"Consumer Electronics": {
					{Name: "mpn", Label: "MPN", Type: domain.AttributeText, Required: false},
					{Name: "brand", Label: "Brand", Type: domain.AttributeText, Required: true},
				},
				"Clothing, Shoes & Accessories": {
					{Name: "size", Label: "Size", Type: domain.AttributeText, Required: true},
				},
			},
		},
		"etsy": {
			Global: []domain.PlatformAttribute{
				{
					Name: "who_made", Label: "Who made it", Type: domain.AttributeSelect, Required: true,
					Options: []string{"i_did", "someone_else", "collective"},
				},
				{
					Name: "when_made", Label: "When was it made", Type: domain.AttributeSelect, Required: true,
					Options: []string{"made_to_order", "2020_2025", "2010_2019", "before_2005"},
				},
				{Name: "processing_time", Label: "Processing time (days)", Type: domain.AttributeNumber, Required: true},
			},
			ByCategory: map[string][]domain.PlatformAttribute{
				"Jewelry": {
					{Name: "materials", Label: "Materials", Type: domain.AttributeText, Required: true},
				},
			},
		},
		"cdiscount": {
			Global: []domain.PlatformAttribute{
				eanAttr,
				conditionAttr,
				{Name: "shipping_delay", Label: "Shipping delay (days)", Type: domain.AttributeNumber, Required: true},
			},
		},
		"google_shopping": {
			Global: []domain.PlatformAttribute{
				availabilityAttr,
				conditionAttr,
				{Name: "gtin", Label: "GTIN", Type: domain.AttributeText, Required: true, Pattern: gtinPattern},
			},
			ByCategory: map[string][]domain.PlatformAttribute{
				"Apparel & Accessories": {
					{Name: "gender", Label: "Gender", Type: domain.AttributeSelect, Required: true, Options: []string{"male", "female", "unisex"}},
					{Name: "age_group", Label: "Age group", Type: domain.AttributeSelect, Required: true, Options: []string{"newborn", "infant", "toddler", "kids", "adult"}},
				},
			},
		},
		"facebook": {
			Global: []domain.PlatformAttribute{availabilityAttr, conditionAttr},
		},
		"instagram": {
			Global: []domain.PlatformAttribute{availabilityAttr},
		},
		"tiktok": {
			Global: []domain.PlatformAttribute{
				{Name: "shipping_delay", Label: "Shipping delay (days)", Type: domain.AttributeNumber, Required: true},
				{Name: "package_weight", Label: "Package weight (kg)", Type: domain.AttributeNumber, Required: false},
			},
		},
		"bigbuy": {
			Global: []domain.PlatformAttribute{eanAttr},
		},
	}
}
