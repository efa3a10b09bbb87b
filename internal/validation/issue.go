// Package validation is the shared framework the six entity evaluators are
// built on: a fixed set of reusable check primitives, issue collection with
// severity routing, and the per-call evaluation result.
//
// A check failure is an expected business outcome, never an error value.
// Errors from Validate mean the evaluation itself could not complete
// (an existence lookup against the record store failed).
package validation

import "preflight/internal/rules"

// Issue is one finding produced during a single evaluation pass. It carries
// everything the error log needs to persist it, copied from the rule
// definition at issue time so later library refreshes do not rewrite
// history.
type Issue struct {
	Code               string         `json:"error_code"`
	FieldName          string         `json:"field_name"`
	Message            string         `json:"error_message"`
	Severity           rules.Severity `json:"severity"`
	SubmittedValue     string         `json:"submitted_value"`
	ExpectedFormat     string         `json:"expected_format,omitempty"`
	RecordIdentifier   string         `json:"record_identifier"`
	ResolutionGuidance string         `json:"resolution_guidance"`
	AutoFixable        bool           `json:"is_auto_fixable"`
	FixFunction        string         `json:"auto_fix_function,omitempty"`
}

// Result is the outcome of one evaluator run. Warnings never affect
// validity: Valid is true exactly when Errors is empty.
type Result struct {
	Valid    bool    `json:"valid"`
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// ErrorCount returns the number of validity-affecting findings.
func (r Result) ErrorCount() int { return len(r.Errors) }

// WarningCount returns the number of advisory findings.
func (r Result) WarningCount() int { return len(r.Warnings) }

// Issues returns errors followed by warnings, in raise order within each
// list.
func (r Result) Issues() []Issue {
	out := make([]Issue, 0, len(r.Errors)+len(r.Warnings))
	out = append(out, r.Errors...)
	out = append(out, r.Warnings...)
	return out
}
