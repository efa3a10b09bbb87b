package validation

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"preflight/internal/records"
)

var (
	validEmploymentTypes = []string{"FULL_TIME", "PART_TIME", "CASUAL", "SESSIONAL"}
	validStaffCategories = []string{"ACADEMIC", "PROFESSIONAL", "CASUAL"}
)

// StaffEvaluator runs the employment-record checklist.
type StaffEvaluator struct {
	library Library
	lookups Lookups
}

func NewStaffEvaluator(library Library, lookups Lookups) *StaffEvaluator {
	return &StaffEvaluator{library: library, lookups: lookups}
}

func (e *StaffEvaluator) Validate(ctx context.Context, staff *records.Staff, reportingPeriod string) (Result, error) {
	p := newPass(ctx, e.library, staffIdentifier(staff))

	e.mandatoryFields(p, staff)
	e.formats(p, staff)
	e.referenceData(p, staff)
	if err := e.businessRules(p, staff); err != nil {
		return Result{}, err
	}

	return p.result(), nil
}

func (e *StaffEvaluator) mandatoryFields(p *pass, st *records.Staff) {
	p.mandatory("staff_identifier", st.StaffIdentifier, "TCSI_STAFF_MANDATORY_001")
	p.mandatory("employment_start_date", st.EmploymentStartDate, "TCSI_STAFF_MANDATORY_002")
	p.mandatory("position_classification", st.PositionClassification, "TCSI_STAFF_MANDATORY_003")
	p.mandatory("fte", st.FTE, "TCSI_STAFF_MANDATORY_004")
	p.mandatory("employment_type", st.EmploymentType, "TCSI_STAFF_MANDATORY_005")
	p.mandatory("staff_category", st.StaffCategory, "TCSI_STAFF_MANDATORY_006")
}

func (e *StaffEvaluator) formats(p *pass, st *records.Staff) {
	p.dateFormat("employment_start_date", st.EmploymentStartDate, "TCSI_STAFF_FORMAT_101")
	p.dateFormat("employment_end_date", st.EmploymentEndDate, "TCSI_STAFF_FORMAT_101")
	p.numeric("fte", st.FTE, 0.01, 1.0, "TCSI_STAFF_FORMAT_103")
}

func (e *StaffEvaluator) referenceData(p *pass, st *records.Staff) {
	p.inList("employment_type", st.EmploymentType, validEmploymentTypes, "TCSI_STAFF_REFERENCE_303")
	p.inList("staff_category", st.StaffCategory, validStaffCategories, "TCSI_STAFF_REFERENCE_303")
}

func (e *StaffEvaluator) businessRules(p *pass, st *records.Staff) error {
	if start, ok := parseDate(st.EmploymentStartDate); ok {
		if end, ok := parseDate(st.EmploymentEndDate); ok && end.Before(start) {
			p.fail("TCSI_STAFF_BUSINESS_201", "employment_end_date", st.EmploymentEndDate)
		}
	}

	if fte, err := strconv.ParseFloat(strings.TrimSpace(st.FTE), 64); err == nil {
		if st.EmploymentType == "FULL_TIME" && fte != 1.0 {
			p.fail("TCSI_STAFF_BUSINESS_206", "fte", st.FTE)
		}
	}

	if !isEmpty(st.StaffIdentifier) {
		duplicate, err := e.lookups.ExistsByNaturalKey(p.ctx, records.EntityStaff, st.StaffIdentifier, st.ID)
		if err != nil {
			return fmt.Errorf("staff identifier uniqueness lookup: %w", err)
		}
		if duplicate {
			p.fail("TCSI_STAFF_BUSINESS_201", "staff_identifier", st.StaffIdentifier)
		}
	}
	return nil
}

// staffIdentifier prefers the reporting identifier, then the composed name.
func staffIdentifier(st *records.Staff) string {
	if !isEmpty(st.StaffIdentifier) {
		return st.StaffIdentifier
	}
	name := strings.TrimSpace(st.FirstName + " " + st.LastName)
	if name != "" {
		return name
	}
	return "Unknown Staff"
}
