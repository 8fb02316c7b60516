package fieldmap

import "sync"

var (
	defaultOnce   sync.Once
	defaultMapper *Mapper
)

// Default returns the mapper built from the built-in tables.
func Default() *Mapper {
	defaultOnce.Do(func() {
		defaultMapper = NewMapper(builtinTables())
	})
	return defaultMapper
}

func mustTransform(name string) TransformFunc {
	fn, ok := Transform(name)
	if !ok {
		panic("fieldmap: unknown transform " + name)
	}
	return fn
}

func builtinTables() map[string]PlatformMappings {
	return map[string]PlatformMappings{
		"shopify": {
			Standard: []FieldMapping{
				Map("name", "title").AsRequired(),
				Map("description", "body_html"),
				Map("brand", "vendor"),
				Map("category", "product_type"),
				Map("tags", "tags").WithTransform(mustTransform("join_comma")),
				Map("price", "variants[0].price").AsRequired(),
				Map("compare_at_price", "variants[0].compare_at_price"),
				Map("sku", "variants[0].sku"),
				Map("barcode", "variants[0].barcode"),
				Map("stock", "variants[0].inventory_quantity").WithDefault(0),
				Map("weight", "variants[0].weight"),
				Map("image_url", "images[0].src"),
			},
			Custom: []FieldMapping{
				Map("status", "status").WithDefault("draft"),
				Map("inventory_policy", "variants[0].inventory_policy").WithDefault("deny"),
			},
		},
		"woocommerce": {
			Standard: []FieldMapping{
				Map("name", "name").AsRequired(),
				Map("description", "description"),
				Map("short_description", "short_description"),
				Map("price", "regular_price").AsRequired().WithTransform(mustTransform("to_string")),
				Map("sku", "sku"),
				Map("stock", "stock_quantity"),
				Map("category", "categories[0].name"),
				Map("image_url", "images[0].src"),
				Map("weight", "weight"),
			},
			Custom: []FieldMapping{
				Map("type", "type").WithDefault("simple"),
				Map("manage_stock", "manage_stock").WithDefault(true),
			},
		},
		"prestashop": {
			Standard: []FieldMapping{
				Map("name", "name").AsRequired(),
				Map("description", "description"),
				Map("price", "price").AsRequired(),
				Map("sku", "reference"),
				Map("ean", "ean13"),
				Map("stock", "quantity"),
				Map("category", "id_category_default"),
				Map("brand", "manufacturer_name"),
			},
		},
		"amazon": {
			Standard: []FieldMapping{
				Map("name", "item_name").AsRequired(),
				Map("description", "product_description").AsRequired(),
				Map("brand", "brand_name").AsRequired(),
				Map("price", "standard_price").AsRequired(),
				Map("compare_at_price", "list_price"),
				Map("stock", "quantity"),
				Map("sku", "seller_sku").AsRequired(),
				Map("ean", "external_product_id"),
				Map("image_url", "main_image_url"),
				Map("category", "browse_node"),
			},
			Custom: []FieldMapping{
				Map("ean", "external_product_id_type").WithTransform(func(any) any { return "EAN" }),
				Map("condition", "condition_type").WithDefault("new_new"),
			},
		},
		"ebay": {
			Standard: []FieldMapping{
				Map("name", "Title").AsRequired(),
				Map("description", "Description").AsRequired(),
				Map("price", "StartPrice").AsRequired(),
				Map("stock", "Quantity"),
				Map("sku", "SKU"),
				Map("category", "PrimaryCategory.CategoryName"),
				Map("image_url", "PictureDetails.PictureURL[0]"),
				Map("brand", "ItemSpecifics.Brand"),
				Map("ean", "ProductListingDetails.EAN"),
			},
			Custom: []FieldMapping{
				Map("listing_duration", "ListingDuration").WithDefault("GTC"),
				Map("condition", "ConditionID").WithDefault(1000),
			},
		},
		"etsy": {
			Standard: []FieldMapping{
				Map("name", "title").AsRequired(),
				Map("description", "description").AsRequired(),
				Map("price", "price").AsRequired(),
				Map("stock", "quantity"),
				Map("sku", "sku"),
				Map("tags", "tags"),
				Map("category", "taxonomy_id"),
				Map("image_url", "image"),
			},
			Custom: []FieldMapping{
				Map("who_made", "who_made"),
				Map("when_made", "when_made"),
				Map("is_supply", "is_supply").WithDefault(false),
			},
		},
		"cdiscount": {
			Standard: []FieldMapping{
				Map("name", "ShortLabel").AsRequired().WithTransform(mustTransform("truncate_60")),
				Map("name", "LongLabel").AsRequired(),
				Map("description", "Description").AsRequired(),
				Map("brand", "BrandName").AsRequired(),
				Map("ean", "EanList[0]").AsRequired(),
				Map("price", "Price").AsRequired(),
				Map("stock", "Stock"),
				Map("sku", "SellerProductId"),
				Map("category", "CategoryCode"),
				Map("image_url", "Pictures[0].Uri"),
			},
		},
		"google_shopping": {
			Standard: []FieldMapping{
				Map("sku", "offerId"),
				Map("name", "title").AsRequired(),
				Map("description", "description").AsRequired(),
				Map("price", "price.value").AsRequired(),
				Map("currency", "price.currency"),
				Map("brand", "brand"),
				Map("gtin", "gtin"),
				Map("image_url", "imageLink"),
				Map("images", "additionalImageLinks"),
				Map("category", "googleProductCategory"),
				Map("availability", "availability"),
				Map("condition", "condition"),
			},
			Custom: []FieldMapping{
				Map("channel", "channel").WithDefault("online"),
				Map("content_language", "contentLanguage").WithDefault("fr"),
			},
		},
		"facebook": {
			Standard: []FieldMapping{
				Map("sku", "retailer_id"),
				Map("name", "name").AsRequired(),
				Map("description", "description").AsRequired(),
				Map("price", "price").AsRequired(),
				Map("currency", "currency"),
				Map("brand", "brand"),
				Map("image_url", "image_url"),
				Map("availability", "availability"),
				Map("condition", "condition"),
				Map("category", "category"),
			},
		},
		"instagram": {
			Standard: []FieldMapping{
				Map("sku", "retailer_id"),
				Map("name", "name").AsRequired(),
				Map("description", "description"),
				Map("price", "price").AsRequired(),
				Map("currency", "currency"),
				Map("image_url", "image_url"),
				Map("availability", "availability"),
			},
		},
		"tiktok": {
			Standard: []FieldMapping{
				Map("name", "product_name").AsRequired(),
				Map("description", "description").AsRequired(),
				Map("category", "category_id"),
				Map("brand", "brand_id"),
				Map("price", "skus[0].original_price").AsRequired().WithTransform(mustTransform("to_string")),
				Map("stock", "skus[0].stock_infos[0].available_stock"),
				Map("sku", "skus[0].seller_sku"),
				Map("image_url", "main_images[0].uri"),
				Map("weight", "package_weight.value"),
			},
		},
		"aliexpress": {
			Standard: []FieldMapping{
				Map("name", "subject").AsRequired(),
				Map("description", "detail"),
				Map("price", "sku_info_list[0].price").AsRequired(),
				Map("stock", "sku_info_list[0].inventory"),
				Map("sku", "sku_info_list[0].sku_code"),
				Map("image_url", "image_url_list[0]"),
				Map("category", "category_id"),
			},
		},
		"bigbuy": {
			Standard: []FieldMapping{
				Map("sku", "sku").AsRequired(),
				Map("name", "name").AsRequired(),
				Map("description", "description"),
				Map("price", "wholesalePrice").AsRequired(),
				Map("ean", "ean13"),
				Map("stock", "stock"),
				Map("brand", "manufacturer"),
				Map("category", "category"),
				Map("images", "images"),
			},
		},
	}
}
