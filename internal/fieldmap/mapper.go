// Package fieldmap maps a normalized product's flat fields onto the nested field layout
// expected by a publishing platform, using declarative per-platform mapping tables.
package fieldmap

import (
	"strings"

	"platform-adapter-service/internal/domain"
)

// TransformFunc converts a mapped value. It is only called for defined values.
type TransformFunc func(value any) any

// FieldMapping is a declarative rule translating one product field into a platform
// field path.
type FieldMapping struct {
	SourceField  string
	TargetField  string
	Target       Path
	Transform    TransformFunc
	Required     bool
	DefaultValue any
}

// Map declares a mapping, parsing the target path once.
func Map(source, target string) FieldMapping {
	return FieldMapping{SourceField: source, TargetField: target, Target: ParsePath(target)}
}

// WithTransform returns a copy of m using fn as its transform.
func (m FieldMapping) WithTransform(fn TransformFunc) FieldMapping {
	m.Transform = fn
	return m
}

// WithDefault returns a copy of m falling back to v when the source is undefined.
func (m FieldMapping) WithDefault(v any) FieldMapping {
	m.DefaultValue = v
	return m
}

// AsRequired returns a copy of m flagged as required.
func (m FieldMapping) AsRequired() FieldMapping {
	m.Required = true
	return m
}

func (m FieldMapping) path() Path {
	if m.Target != nil {
		return m.Target
	}
	return ParsePath(m.TargetField)
}

// PlatformMappings holds the ordered mapping tables of one platform.
type PlatformMappings struct {
	Standard []FieldMapping
	Custom   []FieldMapping
}

// Mapper applies per-platform mapping tables. It is immutable once built.
type Mapper struct {
	tables map[string]PlatformMappings
}

// NewMapper builds a mapper from the given tables, keyed by platform identifier.
func NewMapper(tables map[string]PlatformMappings) *Mapper {
	m := &Mapper{tables: make(map[string]PlatformMappings, len(tables))}
	for id, t := range tables {
		m.tables[strings.ToLower(id)] = PlatformMappings{
			Standard: append([]FieldMapping(nil), t.Standard...),
			Custom:   append([]FieldMapping(nil), t.Custom...),
		}
	}
	return m
}

// WithOverrides returns a new mapper whose platforms carry the extra mappings appended
// after their built-in custom mappings. Unknown platforms are added.
func (m *Mapper) WithOverrides(extra map[string][]FieldMapping) *Mapper {
	tables := make(map[string]PlatformMappings, len(m.tables)+len(extra))
	for id, t := range m.tables {
		tables[id] = t
	}
	for id, mappings := range extra {
		key := strings.ToLower(id)
		t := tables[key]
		t.Custom = append(append([]FieldMapping(nil), t.Custom...), mappings...)
		tables[key] = t
	}
	return NewMapper(tables)
}

// Mappings returns the platform's standard mappings followed by its custom ones. An
// unknown platform has no mappings.
func (m *Mapper) Mappings(platform string) []FieldMapping {
	t, ok := m.tables[strings.ToLower(platform)]
	if !ok {
		return nil
	}
	out := make([]FieldMapping, 0, len(t.Standard)+len(t.Custom))
	out = append(out, t.Standard...)
	return append(out, t.Custom...)
}

// MapProductFields builds the platform document for product. Mappings are applied in
// order (standard, custom, then the caller's), so a later mapping to the same target
// overwrites an earlier one. Undefined source values fall back to the mapping default;
// values still undefined are not written, while explicit nils are.
func (m *Mapper) MapProductFields(product domain.Product, platform string, custom ...FieldMapping) map[string]any {
	out := make(map[string]any)
	mappings := append(m.Mappings(platform), custom...)
	for _, fm := range mappings {
		value, defined := product.Lookup(fm.SourceField)
		if !defined && fm.DefaultValue != nil {
			value, defined = fm.DefaultValue, true
		}
		if !defined {
			continue
		}
		if fm.Transform != nil {
			value = fm.Transform(value)
		}
		fm.path().Set(out, value)
	}
	return out
}

// ValidateRequiredFields reports the source fields of required mappings that have no
// value (undefined, nil or the empty string) on the product.
func (m *Mapper) ValidateRequiredFields(product domain.Product, platform string) (bool, []string) {
	missing := make([]string, 0)
	for _, fm := range m.Mappings(platform) {
		if !fm.Required {
			continue
		}
		if v, _ := product.Lookup(fm.SourceField); domain.IsEmptyValue(v) {
			missing = append(missing, fm.SourceField)
		}
	}
	return len(missing) == 0, missing
}
