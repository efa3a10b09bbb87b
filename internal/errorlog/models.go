// Package errorlog persists validation findings and tracks their resolution
// lifecycle. Rows are created by the validation runner and mutated only by
// the remediation service or manual resolution; they are never deleted.
package errorlog

import (
	"time"

	"preflight/internal/records"
	"preflight/internal/rules"
)

// Source distinguishes findings raised by this engine from errors returned
// by the regulator after submission.
type Source string

const (
	SourcePreValidation Source = "PRE_VALIDATION"
	SourceRegulator     Source = "TCSI"
)

// ResolutionStatus is the lifecycle of a persisted error.
type ResolutionStatus string

const (
	StatusPending    ResolutionStatus = "PENDING"
	StatusInProgress ResolutionStatus = "IN_PROGRESS"
	StatusResolved   ResolutionStatus = "RESOLVED"
	StatusIgnored    ResolutionStatus = "IGNORED"
	StatusCannotFix  ResolutionStatus = "CANNOT_FIX"
)

// ParseResolutionStatus validates a status from an external source.
func ParseResolutionStatus(raw string) (ResolutionStatus, bool) {
	switch ResolutionStatus(raw) {
	case StatusPending, StatusInProgress, StatusResolved, StatusIgnored, StatusCannotFix:
		return ResolutionStatus(raw), true
	}
	return "", false
}

// Error is the durable counterpart of a validation issue. RunID groups the
// findings of one validation pass; ItemType and ItemID point back at the
// source record so remediation can resolve it.
type Error struct {
	ID    int64  `json:"id"`
	RunID string `json:"run_id"`

	Source   Source             `json:"error_source"`
	FileType records.EntityType `json:"file_type"`

	Code             string         `json:"error_code"`
	Severity         rules.Severity `json:"severity"`
	FieldName        string         `json:"field_name,omitempty"`
	RecordIdentifier string         `json:"record_identifier,omitempty"`

	ItemType records.EntityType `json:"item_type,omitempty"`
	ItemID   int64              `json:"item_id,omitempty"`

	Message            string `json:"error_message"`
	SubmittedValue     string `json:"submitted_value,omitempty"`
	ExpectedFormat     string `json:"expected_format,omitempty"`
	ResolutionGuidance string `json:"resolution_guidance,omitempty"`

	ResolutionStatus ResolutionStatus `json:"resolution_status"`
	ResolutionNotes  string           `json:"resolution_notes,omitempty"`
	ResolutionAction string           `json:"resolution_action,omitempty"`
	ResolvedBy       string           `json:"resolved_by,omitempty"`
	ResolvedAt       *time.Time       `json:"resolved_at,omitempty"`

	AutoFixable      bool   `json:"is_auto_fixable"`
	FixFunction      string `json:"auto_fix_function,omitempty"`
	AutoFixAttempted bool   `json:"auto_fix_attempted"`
	AutoFixSucceeded bool   `json:"auto_fix_success"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
