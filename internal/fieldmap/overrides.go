package fieldmap

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// OverrideEntry is one declarative mapping, as written in an overrides file or sent as a
// custom mapping with an adapt request.
type OverrideEntry struct {
	Source    string `yaml:"source" json:"source" validate:"required"`
	Target    string `yaml:"target" json:"target" validate:"required"`
	Transform string `yaml:"transform,omitempty" json:"transform,omitempty" validate:"excluded_with=Expr"`
	Expr      string `yaml:"expr,omitempty" json:"expr,omitempty"`
	Required  bool   `yaml:"required,omitempty" json:"required,omitempty"`
	Default   any    `yaml:"default,omitempty" json:"default,omitempty"`
}

type overridePlatform struct {
	Mappings []OverrideEntry `yaml:"mappings"`
}

// OverridesFile is the document layout of an overrides file:
//
//	platforms:
//	  shopify:
//	    mappings:
//	      - source: material
//	        target: metafields[0].value
//	        transform: capitalize
type OverridesFile struct {
	Platforms map[string]overridePlatform `yaml:"platforms" validate:"dive,keys,required,endkeys"`
}

var validate = validator.New()

// LoadOverrides reads an overrides file from disk.
func LoadOverrides(path string) (map[string][]FieldMapping, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fieldmap: read overrides %s: %w", path, err)
	}
	return ParseOverrides(raw)
}

// ParseOverrides decodes an overrides document into per-platform mappings, in file order.
func ParseOverrides(raw []byte) (map[string][]FieldMapping, error) {
	var doc OverridesFile
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("fieldmap: decode overrides: %w", err)
	}
	if err := validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("fieldmap: invalid overrides: %w", err)
	}

	out := make(map[string][]FieldMapping, len(doc.Platforms))
	for platform, p := range doc.Platforms {
		mappings := make([]FieldMapping, 0, len(p.Mappings))
		for i, e := range p.Mappings {
			if err := validate.Struct(e); err != nil {
				return nil, fmt.Errorf("fieldmap: invalid overrides: %s mapping %d: %w", platform, i, err)
			}
			fm, err := e.ToMapping()
			if err != nil {
				return nil, fmt.Errorf("fieldmap: %s mapping %d: %w", platform, i, err)
			}
			mappings = append(mappings, fm)
		}
		out[platform] = mappings
	}
	return out, nil
}

// ToMapping resolves the entry's transform and parses its target path. Targets indexing
// past MaxIndex are rejected.
func (e OverrideEntry) ToMapping() (FieldMapping, error) {
	fm := Map(e.Source, e.Target)
	if len(fm.Target) == 0 {
		return FieldMapping{}, fmt.Errorf("empty target path %q", e.Target)
	}
	if err := fm.Target.Validate(); err != nil {
		return FieldMapping{}, fmt.Errorf("target %q: %w", e.Target, err)
	}
	fm.Required = e.Required
	fm.DefaultValue = e.Default

	switch {
	case e.Transform != "":
		fn, ok := Transform(e.Transform)
		if !ok {
			return FieldMapping{}, fmt.Errorf("unknown transform %q", e.Transform)
		}
		fm.Transform = fn
	case e.Expr != "":
		fn, err := CompileExpr(e.Expr)
		if err != nil {
			return FieldMapping{}, err
		}
		fm.Transform = fn
	}
	return fm, nil
}
