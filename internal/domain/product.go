package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Product is the normalized, internal representation of a product.
// It is not a fixed schema: keys are field names (name, title, description, price,
// currency, sku, stock, stock_quantity, category, brand, tags, image_url, images, ...)
// and platform-specific extras (ean, condition, ...) are carried alongside.
//
// An absent key means the field is undefined. A key present with a nil value means
// the field was explicitly set to null. The two are treated differently by the
// field mapper (defaults only replace undefined values).
type Product map[string]any

// Lookup returns the raw value stored under key and whether the key is defined.
func (p Product) Lookup(key string) (any, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p[key]
	return v, ok
}

// Clone returns a shallow copy of the product. The adaptation pipeline never
// mutates its input; every step works on a clone.
func (p Product) Clone() Product {
	out := make(Product, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Text returns the value under key rendered as a string, or "" when the key is
// undefined or null.
func (p Product) Text(key string) string {
	v, ok := p.Lookup(key)
	if !ok {
		return ""
	}
	return AsString(v)
}

// IsEmptyValue reports whether v counts as "no value": nil or an empty string.
func IsEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok && s == "" {
		return true
	}
	return false
}

// AsString renders a loosely typed value as a string. nil renders as "".
func AsString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case decimal.Decimal:
		return t.String()
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// AsDecimal converts a loosely typed numeric value to a decimal. Values that cannot be
// parsed (missing fields, non-numeric strings) yield zero.
func AsDecimal(v any) decimal.Decimal {
	switch t := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return t
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(t)
	case float32:
		if math.IsNaN(float64(t)) || math.IsInf(float64(t), 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat32(t)
	case int:
		return decimal.NewFromInt(int64(t))
	case int32:
		return decimal.NewFromInt32(t)
	case int64:
		return decimal.NewFromInt(t)
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		d, err := decimal.NewFromString(fmt.Sprint(t))
		if err != nil {
			return decimal.Zero
		}
		return d
	}
}

// AsInt converts a loosely typed numeric value to an int, truncating fractions.
// Unparseable values yield zero.
func AsInt(v any) int {
	return int(AsDecimal(v).IntPart())
}

// AsStrings converts a value holding a sequence of strings ([]string, []any, or a single
// non-empty string) into a []string. Other shapes yield nil.
func AsStrings(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if item == nil {
				continue
			}
			out = append(out, AsString(item))
		}
		return out
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	default:
		return nil
	}
}
