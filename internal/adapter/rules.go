package adapter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"platform-adapter-service/internal/domain"
	"platform-adapter-service/internal/fieldmap"
)

const maxBrandLength = 100

const lowStockThreshold = 10

// Stock statuses written to stock_status.
const (
	StockIn  = "in_stock"
	StockLow = "low_stock"
	StockOut = "out_of_stock"
)

// defaultCurrency applies when the product carries no currency.
const defaultCurrency = "EUR"

// ruleRun carries one rule pass. Rules read semantic keys from the adapted document
// first and from the source product second, then write normalized values back under
// the semantic key. A key already holding a platform-shaped container (object or object
// list) is read around and never overwritten. Platform-named copies produced by the field
// mapping (item_name, price.currency, ...) keep the mapped value as is.
type ruleRun struct {
	cfg    *domain.PlatformConfig
	source domain.Product
	res    *domain.AdaptedProduct
}

func (a *Adapter) applyRules(res *domain.AdaptedProduct, source domain.Product) {
	r := &ruleRun{cfg: a.config, source: source, res: res}
	r.title()
	r.description()
	r.images()
	r.price()
	if r.has("tags") {
		r.tags()
	}
	if r.has("sku") {
		r.sku()
	}
	r.brand()
	r.category()
	r.stock()
}

func (r *ruleRun) warn(field, format string, args ...any) {
	r.res.Warnings = append(r.res.Warnings, warning(field, fmt.Sprintf(format, args...)))
}

func (r *ruleRun) fail(field, format string, args ...any) {
	r.res.Errors = append(r.res.Errors, failure(field, fmt.Sprintf(format, args...)))
}

func isContainer(v any) bool {
	switch t := v.(type) {
	case map[string]any:
		return true
	case []any:
		_, ok := stringList(t)
		return !ok
	default:
		return false
	}
}

// lookup returns the first non-nil value among keys, searching the adapted document and
// then the source product.
func (r *ruleRun) lookup(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := r.res.Adapted[k]; ok && v != nil && !isContainer(v) {
			return v, true
		}
	}
	for _, k := range keys {
		if v, ok := r.source.Lookup(k); ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func (r *ruleRun) has(key string) bool {
	_, ok := r.lookup(key)
	return ok
}

func (r *ruleRun) text(keys ...string) (string, bool) {
	v, ok := r.lookup(keys...)
	if !ok {
		return "", false
	}
	return domain.AsString(v), true
}

func (r *ruleRun) put(key string, v any) {
	if isContainer(r.res.Adapted[key]) {
		return
	}
	r.res.Adapted[key] = v
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func (r *ruleRun) title() {
	rules := r.cfg.Title
	title, ok := r.text("title", "name")
	if rules.Required && runeLen(title) < rules.MinLength {
		r.fail("title", "Title must be at least %d characters", rules.MinLength)
	}
	if rules.MaxLength > 0 && runeLen(title) > rules.MaxLength {
		title = fieldmap.Truncate(title, rules.MaxLength)
		r.warn("title", "Title truncated to %d characters", rules.MaxLength)
	}
	folded := cases.Fold().String(title)
	for _, word := range rules.Forbidden {
		if word != "" && strings.Contains(folded, cases.Fold().String(word)) {
			r.warn("title", "Title contains forbidden word %q", word)
		}
	}
	if ok {
		r.put("title", title)
	}
}

func (r *ruleRun) description() {
	rules := r.cfg.Description
	desc, ok := r.text("description")
	if !rules.AllowsHTML && strings.Contains(desc, "<") {
		desc = fieldmap.StripHTML(desc)
		r.warn("description", "HTML tags removed from description")
	}
	if rules.Required && runeLen(desc) < rules.MinLength {
		r.fail("description", "Description must be at least %d characters", rules.MinLength)
	}
	if rules.MaxLength > 0 && runeLen(desc) > rules.MaxLength {
		desc = fieldmap.Truncate(desc, rules.MaxLength)
		r.warn("description", "Description truncated to %d characters", rules.MaxLength)
	}
	if ok {
		r.put("description", desc)
	}
}

// stringList accepts []string or a list made only of strings.
func stringList(v any) ([]string, bool) {
	switch t := v.(type) {
	case []string:
		return t, true
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

func (r *ruleRun) images() {
	rules := r.cfg.Images
	var urls []string
	if main, ok := r.text("image_url"); ok && main != "" {
		urls = append(urls, main)
	}
	if extra, ok := r.lookup("images", "image_urls"); ok {
		urls = append(urls, domain.AsStrings(extra)...)
	}

	if len(urls) < rules.MinCount {
		r.fail("images", "At least %d image(s) required, got %d", rules.MinCount, len(urls))
	}
	if rules.MaxCount > 0 && len(urls) > rules.MaxCount {
		urls = urls[:rules.MaxCount]
		r.warn("images", "Image list truncated to %d images", rules.MaxCount)
	}

	if shaped, ok := r.res.Adapted["images"].([]any); ok && isContainer(shaped) {
		if rules.MaxCount > 0 && len(shaped) > rules.MaxCount {
			r.res.Adapted["images"] = append([]any(nil), shaped[:rules.MaxCount]...)
		}
		return
	}
	if len(urls) > 0 {
		r.put("images", urls)
	}
}

func (r *ruleRun) price() {
	rules := r.cfg.Pricing
	raw, defined := r.lookup("price")
	price := domain.AsDecimal(raw)

	if rules.MinPrice.Valid && price.LessThan(rules.MinPrice.Decimal) {
		r.fail("price", "Price must be at least %s", rules.MinPrice.Decimal.String())
	}
	if rules.MaxPrice.Valid && price.GreaterThan(rules.MaxPrice.Decimal) {
		r.fail("price", "Price must be at most %s", rules.MaxPrice.Decimal.String())
	}

	currency, _ := r.text("currency")
	if currency == "" {
		currency = defaultCurrency
	}
	if len(rules.Currency) > 0 && !r.cfg.AcceptsCurrency(currency) {
		r.warn("currency", "Currency %s is not supported by %s, using %s", currency, r.cfg.Name, rules.Currency[0])
		currency = rules.Currency[0]
	}

	if defined {
		r.put("price", raw)
	}
	r.put("currency", currency)
}

func (r *ruleRun) tags() {
	raw, _ := r.lookup("tags")
	joined, isString := raw.(string)
	var tags []string
	if isString {
		for _, t := range strings.Split(joined, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	} else {
		tags = domain.AsStrings(raw)
	}

	limit := r.cfg.Limits.Tags
	if limit <= 0 || len(tags) <= limit {
		return
	}
	tags = tags[:limit]
	r.warn("tags", "Tags truncated to %d", limit)
	if isString {
		r.put("tags", strings.Join(tags, ", "))
		return
	}
	r.put("tags", tags)
}

func (r *ruleRun) sku() {
	sku, _ := r.text("sku")
	limit := r.cfg.Limits.SKULength
	if limit <= 0 || runeLen(sku) <= limit {
		return
	}
	r.put("sku", fieldmap.Truncate(sku, limit))
	r.warn("sku", "SKU truncated to %d characters", limit)
}

func (r *ruleRun) brand() {
	brand, ok := r.text("brand")
	if brand == "" && r.cfg.Requires("brand") {
		r.fail("brand", "Brand is required")
	}
	if runeLen(brand) > maxBrandLength {
		brand = fieldmap.Truncate(brand, maxBrandLength)
		r.warn("brand", "Brand truncated to %d characters", maxBrandLength)
	}
	if ok {
		r.put("brand", brand)
	}
}

func (r *ruleRun) category() {
	cat, ok := r.text("category")
	if cat == "" && r.cfg.Requires("category") {
		r.fail("category", "Category is required")
	}
	if cat != "" && r.cfg.Categories.MappingRequired {
		r.warn("category", "Verify that category %q matches a %s category", cat, r.cfg.Name)
	}
	if ok {
		r.put("category", cat)
	}
}

func (r *ruleRun) stock() {
	raw, _ := r.lookup("inventory_quantity", "stock", "stock_quantity")
	stock := domain.AsInt(raw)
	if stock < 0 {
		stock = 0
		r.warn("stock", "Negative stock set to 0")
	}

	status := StockIn
	switch {
	case stock == 0:
		status = StockOut
		r.warn("stock", "Product is out of stock")
	case stock < lowStockThreshold:
		status = StockLow
		r.warn("stock", "Low stock: %d units left", stock)
	}

	r.put("inventory_quantity", stock)
	r.put("stock_status", status)
}
