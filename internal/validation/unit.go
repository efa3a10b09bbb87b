package validation

import (
	"context"
	"fmt"

	"preflight/internal/records"
)

const (
	minCreditPoints = 3
	maxCreditPoints = 50
)

// UnitEvaluator runs the subject-record checklist.
type UnitEvaluator struct {
	library Library
	lookups Lookups
}

func NewUnitEvaluator(library Library, lookups Lookups) *UnitEvaluator {
	return &UnitEvaluator{library: library, lookups: lookups}
}

func (e *UnitEvaluator) Validate(ctx context.Context, unit *records.Unit, reportingPeriod string) (Result, error) {
	p := newPass(ctx, e.library, unitIdentifier(unit))

	p.mandatory("unit_code", unit.UnitCode, "TCSI_UNIT_MANDATORY_001")
	p.mandatory("unit_name", unit.UnitName, "TCSI_UNIT_MANDATORY_002")
	p.mandatory("credit_points", unit.CreditPoints, "TCSI_UNIT_MANDATORY_003")
	p.mandatory("unit_level", unit.UnitLevel, "TCSI_UNIT_MANDATORY_004")
	p.mandatory("field_of_education", unit.FieldOfEducation, "TCSI_UNIT_MANDATORY_005")

	p.pattern("unit_code", unit.UnitCode, codePattern, "TCSI_UNIT_FORMAT_101")
	p.numeric("credit_points", unit.CreditPoints, minCreditPoints, maxCreditPoints, "TCSI_UNIT_FORMAT_102")

	if !isEmpty(unit.UnitCode) {
		duplicate, err := e.lookups.ExistsByNaturalKey(ctx, records.EntityUnit, unit.UnitCode, unit.ID)
		if err != nil {
			return Result{}, fmt.Errorf("unit code uniqueness lookup: %w", err)
		}
		if duplicate {
			p.fail("TCSI_UNIT_BUSINESS_201", "unit_code", unit.UnitCode)
		}
	}

	return p.result(), nil
}

func unitIdentifier(u *records.Unit) string {
	if !isEmpty(u.UnitCode) {
		return u.UnitCode
	}
	if !isEmpty(u.UnitName) {
		return u.UnitName
	}
	return "Unknown Unit"
}
