package validation

import (
	"context"
	"fmt"

	"preflight/internal/records"
)

var validQualificationLevels = []string{
	"020", "030", "040", "050", "060", "070", "080", "090", "100",
}

var validAttendanceModes = []string{"I", "E", "M", "O"}

// CourseEvaluator runs the course-of-study checklist, including the
// catalogue-wide uniqueness rule on the course code.
type CourseEvaluator struct {
	library Library
	lookups Lookups
}

func NewCourseEvaluator(library Library, lookups Lookups) *CourseEvaluator {
	return &CourseEvaluator{library: library, lookups: lookups}
}

func (e *CourseEvaluator) Validate(ctx context.Context, course *records.Course, reportingPeriod string) (Result, error) {
	p := newPass(ctx, e.library, courseIdentifier(course))

	e.mandatoryFields(p, course)
	e.formats(p, course)
	e.referenceData(p, course)
	if err := e.businessRules(p, course); err != nil {
		return Result{}, err
	}

	return p.result(), nil
}

func (e *CourseEvaluator) mandatoryFields(p *pass, c *records.Course) {
	p.mandatory("course_code", c.CourseCode, "TCSI_COURSE_MANDATORY_001")
	p.mandatory("course_name", c.CourseName, "TCSI_COURSE_MANDATORY_002")
	p.mandatory("qualification_level", c.QualificationLevel, "TCSI_COURSE_MANDATORY_003")
	p.mandatory("field_of_education", c.FieldOfEducation, "TCSI_COURSE_MANDATORY_004")
	p.mandatory("course_duration", c.CourseDuration, "TCSI_COURSE_MANDATORY_005")
	p.mandatory("total_eftsl", c.TotalEFTSL, "TCSI_COURSE_MANDATORY_006")
}

func (e *CourseEvaluator) formats(p *pass, c *records.Course) {
	p.pattern("course_code", c.CourseCode, codePattern, "TCSI_COURSE_FORMAT_101")

	if !isEmpty(c.FieldOfEducation) {
		p.length("field_of_education", c.FieldOfEducation, 6, "TCSI_COURSE_FORMAT_102")
		p.pattern("field_of_education", c.FieldOfEducation, ascedPattern, "TCSI_COURSE_FORMAT_102")
	}

	p.numeric("course_duration", c.CourseDuration, 0.25, 10.0, "TCSI_COURSE_FORMAT_103")
}

func (e *CourseEvaluator) referenceData(p *pass, c *records.Course) {
	p.inList("qualification_level", c.QualificationLevel, validQualificationLevels, "TCSI_COURSE_REFERENCE_301")
	p.inList("attendance_mode", c.AttendanceMode, validAttendanceModes, "TCSI_COURSE_REFERENCE_303")
}

func (e *CourseEvaluator) businessRules(p *pass, c *records.Course) error {
	if !isEmpty(c.CourseCode) {
		// Exclude the record's own row so re-validating a saved course does
		// not report it as its own duplicate.
		duplicate, err := e.lookups.ExistsByNaturalKey(p.ctx, records.EntityCourse, c.CourseCode, c.ID)
		if err != nil {
			return fmt.Errorf("course code uniqueness lookup: %w", err)
		}
		if duplicate {
			p.fail("TCSI_COURSE_BUSINESS_201", "course_code", c.CourseCode)
		}
	}

	if start, ok := parseDate(c.CourseStartDate); ok {
		if end, ok := parseDate(c.CourseEndDate); ok && end.Before(start) {
			p.fail("TCSI_COURSE_BUSINESS_202", "course_end_date", c.CourseEndDate)
		}
	}
	return nil
}

func courseIdentifier(c *records.Course) string {
	if !isEmpty(c.CourseCode) {
		return c.CourseCode
	}
	if !isEmpty(c.CourseName) {
		return c.CourseName
	}
	return "Unknown Course"
}
