// Package attribute registers the attributes each platform requires beyond the standard
// field set, validates products against them and backfills missing values.
package attribute

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"platform-adapter-service/internal/domain"
)

// Registration groups the attributes of one platform: Global applies to every product,
// ByCategory only to products in the named category.
type Registration struct {
	Global     []domain.PlatformAttribute
	ByCategory map[string][]domain.PlatformAttribute
}

// IssueReason explains why a required attribute failed validation.
type IssueReason string

const (
	ReasonMissing       IssueReason = "missing"
	ReasonInvalidFormat IssueReason = "invalid_format"
)

// Issue is one failed attribute check.
type Issue struct {
	Attribute domain.PlatformAttribute `json:"attribute"`
	Reason    IssueReason              `json:"reason"`
}

// Result is the outcome of Validate.
type Result struct {
	Valid             bool    `json:"valid"`
	MissingAttributes []Issue `json:"missing_attributes"`
}

// Catalog is an immutable attribute registry keyed by lowercase platform identifier.
type Catalog struct {
	platforms map[string]Registration
	patterns  map[string]*regexp.Regexp
}

// New builds a catalog, compiling every attribute pattern up front.
func New(registrations map[string]Registration) (*Catalog, error) {
	c := &Catalog{
		platforms: make(map[string]Registration, len(registrations)),
		patterns:  make(map[string]*regexp.Regexp),
	}
	for id, reg := range registrations {
		all := append([]domain.PlatformAttribute(nil), reg.Global...)
		for _, attrs := range reg.ByCategory {
			all = append(all, attrs...)
		}
		for _, attr := range all {
			if attr.Pattern == "" {
				continue
			}
			if _, ok := c.patterns[attr.Pattern]; ok {
				continue
			}
			re, err := regexp.Compile(attr.Pattern)
			if err != nil {
				return nil, fmt.Errorf("attribute: %s.%s: invalid pattern: %w", id, attr.Name, err)
			}
			c.patterns[attr.Pattern] = re
		}
		c.platforms[strings.ToLower(id)] = reg
	}
	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in attribute catalog.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := New(builtinAttributes())
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// RequiredAttributes returns the platform's global attributes followed by those
// registered for category. Names repeated across both lists are kept as-is.
func (c *Catalog) RequiredAttributes(platform, category string) []domain.PlatformAttribute {
	reg, ok := c.platforms[strings.ToLower(platform)]
	if !ok {
		return nil
	}
	out := append([]domain.PlatformAttribute(nil), reg.Global...)
	if category != "" {
		out = append(out, reg.ByCategory[category]...)
	}
	return out
}

// Validate checks every required attribute against the product. An attribute is
// reported once when its value is empty, and once when a present value fails the
// attribute pattern. Duplicate reports for the same name are not collapsed.
func (c *Catalog) Validate(product domain.Product, platform, category string) Result {
	issues := make([]Issue, 0)
	for _, attr := range c.RequiredAttributes(platform, category) {
		if !attr.Required {
			continue
		}
		value, _ := product.Lookup(attr.Name)
		if domain.IsEmptyValue(value) {
			issues = append(issues, Issue{Attribute: attr, Reason: ReasonMissing})
			continue
		}
		if re := c.patterns[attr.Pattern]; re != nil && !re.MatchString(domain.AsString(value)) {
			issues = append(issues, Issue{Attribute: attr, Reason: ReasonInvalidFormat})
		}
	}
	return Result{Valid: len(issues) == 0, MissingAttributes: issues}
}

// FillDefaults returns a copy of product where every required attribute without a
// value is backfilled from a known synonym field or a computed default. Attributes
// with no known default are left unset.
func (c *Catalog) FillDefaults(product domain.Product, platform, category string) domain.Product {
	out := product.Clone()
	for _, attr := range c.RequiredAttributes(platform, category) {
		if !attr.Required {
			continue
		}
		if v, _ := out.Lookup(attr.Name); !domain.IsEmptyValue(v) {
			continue
		}
		if v, ok := defaultFor(attr.Name, out); ok {
			out[attr.Name] = v
		}
	}
	return out
}

func defaultFor(name string, p domain.Product) (any, bool) {
	switch name {
	case "ean", "gtin", "product_id":
		return firstDefined(p, "ean", "barcode", "gtin")
	case "condition":
		return "new", true
	case "availability":
		if stockOf(p) > 0 {
			return "in_stock", true
		}
		return "out_of_stock", true
	case "return_accepted":
		return true, true
	case "return_period":
		return "30", true
	case "shipping_delay", "processing_time":
		return 2, true
	default:
		return nil, false
	}
}

// firstDefined mirrors a chain of nullish fallbacks: the first key holding a non-nil
// value wins.
func firstDefined(p domain.Product, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := p.Lookup(k); ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func stockOf(p domain.Product) int {
	if v, ok := firstDefined(p, "stock", "stock_quantity"); ok {
		return domain.AsInt(v)
	}
	return 0
}
