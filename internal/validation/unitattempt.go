package validation

import (
	"context"
	"fmt"

	"preflight/internal/records"
)

// The twelve recognised unit outcome codes.
var validResults = []string{
	"P", "F", "W", "N", "WD", "WF", "HD", "D", "C", "PC", "SA", "US",
}

// UnitAttemptEvaluator runs the enrolment-result checklist. Both linkage
// checks (student by CHESSN, unit by code) hit the record store.
type UnitAttemptEvaluator struct {
	library Library
	lookups Lookups
}

func NewUnitAttemptEvaluator(library Library, lookups Lookups) *UnitAttemptEvaluator {
	return &UnitAttemptEvaluator{library: library, lookups: lookups}
}

func (e *UnitAttemptEvaluator) Validate(ctx context.Context, attempt *records.UnitAttempt, reportingPeriod string) (Result, error) {
	p := newPass(ctx, e.library, unitAttemptIdentifier(attempt))

	p.mandatory("student_identifier", attempt.StudentIdentifier, "TCSI_UNITATTEMPT_MANDATORY_001")
	p.mandatory("unit_code", attempt.UnitCode, "TCSI_UNITATTEMPT_MANDATORY_002")
	p.mandatory("study_period", attempt.StudyPeriod, "TCSI_UNITATTEMPT_MANDATORY_003")
	p.mandatory("result", attempt.Result, "TCSI_UNITATTEMPT_MANDATORY_004")

	p.inList("result", attempt.Result, validResults, "TCSI_UNITATTEMPT_REFERENCE_301")

	if !isEmpty(attempt.StudentIdentifier) {
		exists, err := e.lookups.ExistsByNaturalKey(ctx, records.EntityStudent, attempt.StudentIdentifier, 0)
		if err != nil {
			return Result{}, fmt.Errorf("student linkage lookup: %w", err)
		}
		if !exists {
			p.fail("TCSI_UNITATTEMPT_BUSINESS_201", "student_identifier", attempt.StudentIdentifier)
		}
	}

	if !isEmpty(attempt.UnitCode) {
		exists, err := e.lookups.ExistsByNaturalKey(ctx, records.EntityUnit, attempt.UnitCode, 0)
		if err != nil {
			return Result{}, fmt.Errorf("unit linkage lookup: %w", err)
		}
		if !exists {
			p.fail("TCSI_UNITATTEMPT_BUSINESS_202", "unit_code", attempt.UnitCode)
		}
	}

	return p.result(), nil
}

// unitAttemptIdentifier composes "<student> - <unit>" for presentation.
func unitAttemptIdentifier(a *records.UnitAttempt) string {
	student := a.StudentIdentifier
	if isEmpty(student) {
		student = "Unknown"
	}
	unit := a.UnitCode
	if isEmpty(unit) {
		unit = "Unknown"
	}
	return fmt.Sprintf("%s - %s", student, unit)
}
