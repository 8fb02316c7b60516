// Package adapter turns a normalized product into the field layout and constraints of one
// publishing platform, collecting blocking errors and advisory warnings along the way.
package adapter

import (
	"context"
	"fmt"
	"math"

	"platform-adapter-service/internal/attribute"
	"platform-adapter-service/internal/category"
	"platform-adapter-service/internal/domain"
	"platform-adapter-service/internal/fieldmap"
	"platform-adapter-service/internal/platform"
)

// Recorder observes finished adaptations.
type Recorder interface {
	ObserveAdaptation(platform string, result *domain.AdaptedProduct)
}

// Deps are the collaborators of an Adapter. Nil members fall back to the built-in registries.
type Deps struct {
	Fields     *fieldmap.Mapper
	Attributes *attribute.Catalog
	Categories *category.Mapper
	Recorder   Recorder
}

// Adapter adapts products for a single platform. It holds no per-call state and is safe
// for concurrent use.
type Adapter struct {
	config     *domain.PlatformConfig
	fields     *fieldmap.Mapper
	attributes *attribute.Catalog
	categories *category.Mapper
	recorder   Recorder
}

// New creates an Adapter for config, which must not be nil.
func New(config *domain.PlatformConfig, deps Deps) *Adapter {
	a := &Adapter{
		config:     config,
		fields:     deps.Fields,
		attributes: deps.Attributes,
		categories: deps.Categories,
		recorder:   deps.Recorder,
	}
	if a.fields == nil {
		a.fields = fieldmap.Default()
	}
	if a.attributes == nil {
		a.attributes = attribute.Default()
	}
	if a.categories == nil {
		a.categories = category.NewMapper(platform.Default())
	}
	return a
}

// Platform returns the identifier of the adapter's platform.
func (a *Adapter) Platform() string {
	return a.config.ID
}

// Adapt maps product onto the platform layout and runs the field rules on the result.
func (a *Adapter) Adapt(product domain.Product) *domain.AdaptedProduct {
	res := newResult(product, a.fields.MapProductFields(product, a.config.ID))
	a.applyRules(res, product)
	return a.finish(res)
}

// AdaptAsync is the full adaptation path: the product category is resolved (consulting the
// mapping store when one is configured), required attributes are backfilled, fields are
// mapped with the extra custom mappings, and required fields and attributes are checked
// before the field rules run.
func (a *Adapter) AdaptAsync(ctx context.Context, product domain.Product, custom ...fieldmap.FieldMapping) *domain.AdaptedProduct {
	enriched := product.Clone()
	var warnings []domain.ValidationError

	categoryName := enriched.Text("category")
	if categoryName != "" {
		resolved := a.categories.MapCategory(ctx, categoryName, a.config.ID)
		enriched["category"] = resolved.Category
		categoryName = resolved.Category
		if !resolved.Cached {
			warnings = append(warnings, warning("category", fmt.Sprintf(
				"Category %q mapped to %q (%.0f%% confidence)",
				product.Text("category"), resolved.Category, math.Round(resolved.Confidence*100))))
		}
	}

	enriched = a.attributes.FillDefaults(enriched, a.config.ID, categoryName)

	res := newResult(product, a.fields.MapProductFields(enriched, a.config.ID, custom...))
	res.Warnings = append(res.Warnings, warnings...)

	if ok, missing := a.fields.ValidateRequiredFields(enriched, a.config.ID); !ok {
		for _, field := range missing {
			res.Errors = append(res.Errors, failure(field, fmt.Sprintf("Required field %s is missing", field)))
		}
	}

	for _, issue := range a.attributes.Validate(enriched, a.config.ID, categoryName).MissingAttributes {
		name := issue.Attribute.Name
		msg := fmt.Sprintf("Required attribute %s is missing", attributeLabel(issue.Attribute))
		if issue.Reason == attribute.ReasonInvalidFormat {
			msg = fmt.Sprintf("Attribute %s has an invalid format", attributeLabel(issue.Attribute))
		}
		res.Errors = append(res.Errors, failure(name, msg))
	}

	a.applyRules(res, enriched)
	return a.finish(res)
}

// Validate adapts product and returns only the verdict.
func (a *Adapter) Validate(product domain.Product) domain.ValidationResult {
	res := a.Adapt(product)
	return domain.ValidationResult{IsValid: res.IsValid, Errors: res.Errors, Warnings: res.Warnings}
}

func (a *Adapter) finish(res *domain.AdaptedProduct) *domain.AdaptedProduct {
	res.IsValid = len(res.Errors) == 0
	if a.recorder != nil {
		a.recorder.ObserveAdaptation(a.config.ID, res)
	}
	return res
}

func newResult(original domain.Product, adapted map[string]any) *domain.AdaptedProduct {
	return &domain.AdaptedProduct{
		Original: original,
		Adapted:  adapted,
		Warnings: make([]domain.ValidationError, 0),
		Errors:   make([]domain.ValidationError, 0),
	}
}

func attributeLabel(attr domain.PlatformAttribute) string {
	if attr.Label != "" {
		return attr.Label
	}
	return attr.Name
}

func warning(field, msg string) domain.ValidationError {
	return domain.ValidationError{Field: field, Message: msg, Severity: domain.SeverityWarning}
}

func failure(field, msg string) domain.ValidationError {
	return domain.ValidationError{Field: field, Message: msg, Severity: domain.SeverityError}
}
