// Package rules is the rule library: the single source of truth for error
// metadata. Check logic lives in the validation package; everything a human
// or the auto-fix catalog needs to know about a finding (message, severity,
// guidance, fixability) lives here, keyed by error code.
package rules

import "preflight/internal/records"

// Severity of a finding. Warnings never affect a record's validity.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
)

// Category groups codes by the phase that raises them.
type Category string

const (
	CategoryMandatory     Category = "MANDATORY"
	CategoryFormat        Category = "FORMAT"
	CategoryReferenceData Category = "REFERENCE_DATA"
	CategoryBusinessRule  Category = "BUSINESS_RULE"
)

// Definition is the static metadata for one error code. Immutable after
// load; the library hands out copies.
type Definition struct {
	Code               string             `json:"code"`
	FileType           records.EntityType `json:"file_type"`
	Category           Category           `json:"category"`
	FieldName          string             `json:"field_name"`
	Description        string             `json:"description"`
	ResolutionGuidance string             `json:"resolution_guidance"`
	ExampleValue       string             `json:"example_value"`
	DefaultSeverity    Severity           `json:"default_severity"`
	AutoFixable        bool               `json:"auto_fixable"`
	FixFunction        string             `json:"fix_function,omitempty"`
}

// Synthesize builds the minimal definition the framework falls back to when
// a raised code is missing from the library. Validation must degrade, not
// fail, when metadata lags behind check logic.
func Synthesize(code, fieldName string) Definition {
	return Definition{
		Code:               code,
		FieldName:          fieldName,
		Description:        "Validation error: " + code,
		ResolutionGuidance: "Please check the field value",
		DefaultSeverity:    SeverityError,
	}
}
