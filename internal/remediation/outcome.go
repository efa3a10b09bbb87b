// Package remediation closes the loop on persisted errors: it maps fix
// identifiers carried on rule definitions to deterministic single-field
// routines and applies them inside a transactional scope, recording the
// outcome back onto the error row.
package remediation

import "fmt"

// Outcome is the structured result of one fix attempt. Failures here are
// expected business outcomes (not-fixable, record missing, routine
// precondition not met), not errors.
type Outcome struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	ActionTaken   string `json:"action_taken,omitempty"`
	OriginalValue string `json:"original_value,omitempty"`
	NewValue      string `json:"new_value,omitempty"`
}

// BulkOutcome tallies an ordered bulk run. Each id is attempted
// independently; there is no batch-wide atomicity.
type BulkOutcome struct {
	Total   int               `json:"total"`
	Fixed   int               `json:"fixed"`
	Failed  int               `json:"failed"`
	Details map[int64]Outcome `json:"details"`
}

func failure(format string, args ...any) Outcome {
	return Outcome{Success: false, Message: fmt.Sprintf(format, args...)}
}

func fixed(action, original, newValue string) Outcome {
	return Outcome{
		Success:       true,
		Message:       action,
		ActionTaken:   action,
		OriginalValue: original,
		NewValue:      newValue,
	}
}
