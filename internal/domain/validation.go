package domain

// Severity separates blocking problems from advisory ones.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ValidationError is a single field-level finding produced during adaptation.
// Errors block publishing; warnings record auto-corrections or items to review.
type ValidationError struct {
	Field    string   `json:"field"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// AdaptedProduct is the outcome of one adaptation. It is never persisted by the pipeline.
type AdaptedProduct struct {
	Original Product           `json:"original"`
	Adapted  map[string]any    `json:"adapted"`
	Warnings []ValidationError `json:"warnings"`
	Errors   []ValidationError `json:"errors"`
	IsValid  bool              `json:"is_valid"`
}

// ValidationResult is the reduced view returned by validate operations.
type ValidationResult struct {
	IsValid  bool              `json:"is_valid"`
	Errors   []ValidationError `json:"errors"`
	Warnings []ValidationError `json:"warnings"`
}
