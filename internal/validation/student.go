package validation

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"preflight/internal/records"
	"preflight/pkg/requestcontext"
)

var (
	validGenders           = []string{"M", "F", "X"}
	validIndigenousStatus  = []string{"1", "2", "3", "4"}
	validCitizenshipStatus = []string{"A", "P", "I", "T"}
	validStudyModes        = []string{"F", "P", "E"}
	validAttendanceTypes   = []string{"I", "E", "M", "O"}
)

// Citizenship statuses for which a residential postcode must be reported.
// International students (I) are exempt.
var postcodeRequiredStatuses = map[string]bool{"A": true, "P": true, "T": true}

const minStudentAge = 15

// StudentEvaluator runs the enrolment-record checklist, the widest of the
// six. Reference checks include a live linkage to the course catalogue.
type StudentEvaluator struct {
	library Library
	lookups Lookups
}

func NewStudentEvaluator(library Library, lookups Lookups) *StudentEvaluator {
	return &StudentEvaluator{library: library, lookups: lookups}
}

// Validate runs all four phases against the student. Later phases run even
// when earlier phases found errors, so one pass reports the complete issue
// set.
func (e *StudentEvaluator) Validate(ctx context.Context, student *records.Student, reportingPeriod string) (Result, error) {
	p := newPass(ctx, e.library, studentIdentifier(student))

	e.mandatoryFields(p, student)
	e.formats(p, student)
	if err := e.referenceData(p, student); err != nil {
		return Result{}, err
	}
	e.businessRules(p, student)

	return p.result(), nil
}

func (e *StudentEvaluator) mandatoryFields(p *pass, s *records.Student) {
	p.mandatory("chessn", s.CHESSN, "TCSI_STUDENT_MANDATORY_001")
	p.mandatory("last_name", s.LastName, "TCSI_STUDENT_MANDATORY_002")
	p.mandatory("first_name", s.FirstName, "TCSI_STUDENT_MANDATORY_003")
	p.mandatory("date_of_birth", s.DateOfBirth, "TCSI_STUDENT_MANDATORY_004")
	p.mandatory("gender", s.Gender, "TCSI_STUDENT_MANDATORY_005")
	p.mandatory("country_of_birth", s.CountryOfBirth, "TCSI_STUDENT_MANDATORY_006")
	p.mandatory("indigenous_status", s.IndigenousStatus, "TCSI_STUDENT_MANDATORY_007")
	p.mandatory("citizenship_status", s.CitizenshipStatus, "TCSI_STUDENT_MANDATORY_008")

	if postcodeRequiredStatuses[s.CitizenshipStatus] {
		p.mandatory("residential_postcode", s.ResidentialPostcode, "TCSI_STUDENT_MANDATORY_009")
	}

	p.mandatory("highest_education_level", s.HighestEducationLevel, "TCSI_STUDENT_MANDATORY_010")
	p.mandatory("course_code", s.CourseCode, "TCSI_STUDENT_MANDATORY_011")
	p.mandatory("commencement_date", s.CommencementDate, "TCSI_STUDENT_MANDATORY_012")
	p.mandatory("study_mode", s.StudyMode, "TCSI_STUDENT_MANDATORY_013")
	p.mandatory("attendance_type", s.AttendanceType, "TCSI_STUDENT_MANDATORY_014")
	p.mandatory("basis_for_admission", s.BasisForAdmission, "TCSI_STUDENT_MANDATORY_015")
}

func (e *StudentEvaluator) formats(p *pass, s *records.Student) {
	if !isEmpty(s.CHESSN) {
		p.length("chessn", s.CHESSN, 10, "TCSI_STUDENT_FORMAT_101")
		p.pattern("chessn", s.CHESSN, chessnPattern, "TCSI_STUDENT_FORMAT_101")
	}

	p.dateFormat("date_of_birth", s.DateOfBirth, "TCSI_STUDENT_FORMAT_102")
	p.dateFormat("commencement_date", s.CommencementDate, "TCSI_STUDENT_FORMAT_103")

	p.email("email", s.Email, "TCSI_STUDENT_FORMAT_104")
	p.pattern("phone", s.Phone, phonePattern, "TCSI_STUDENT_FORMAT_105")

	if !isEmpty(s.ResidentialPostcode) {
		p.length("residential_postcode", s.ResidentialPostcode, 4, "TCSI_STUDENT_FORMAT_106")
		p.pattern("residential_postcode", s.ResidentialPostcode, postcodePattern, "TCSI_STUDENT_FORMAT_106")
	}

	p.numeric("eftsl", s.EFTSL, 0.01, 1.0, "TCSI_STUDENT_FORMAT_107")
}

func (e *StudentEvaluator) referenceData(p *pass, s *records.Student) error {
	p.inList("gender", s.Gender, validGenders, "TCSI_STUDENT_REFERENCE_301")
	p.inList("indigenous_status", s.IndigenousStatus, validIndigenousStatus, "TCSI_STUDENT_REFERENCE_303")
	p.inList("citizenship_status", s.CitizenshipStatus, validCitizenshipStatus, "TCSI_STUDENT_REFERENCE_304")

	if !isEmpty(s.CourseCode) {
		exists, err := e.lookups.ExistsByNaturalKey(p.ctx, records.EntityCourse, s.CourseCode, 0)
		if err != nil {
			return fmt.Errorf("course linkage lookup: %w", err)
		}
		if !exists {
			p.fail("TCSI_STUDENT_REFERENCE_306", "course_code", s.CourseCode)
		}
	}

	p.inList("study_mode", s.StudyMode, validStudyModes, "TCSI_STUDENT_REFERENCE_307")
	p.inList("attendance_type", s.AttendanceType, validAttendanceTypes, "TCSI_STUDENT_REFERENCE_308")
	return nil
}

func (e *StudentEvaluator) businessRules(p *pass, s *records.Student) {
	now := requestcontext.Now(p.ctx)

	if dob, ok := parseDate(s.DateOfBirth); ok {
		if yearsBetween(dob, now) < minStudentAge {
			p.fail("TCSI_STUDENT_BUSINESS_201", "date_of_birth", s.DateOfBirth)
		}
		if dob.After(now) {
			p.fail("TCSI_STUDENT_BUSINESS_202", "date_of_birth", s.DateOfBirth)
		}
		if comm, ok := parseDate(s.CommencementDate); ok && comm.Before(dob) {
			p.fail("TCSI_STUDENT_BUSINESS_203", "commencement_date", s.CommencementDate)
		}
	}

	if eftsl, err := strconv.ParseFloat(strings.TrimSpace(s.EFTSL), 64); !isEmpty(s.EFTSL) && err == nil {
		if s.StudyMode == "F" && eftsl < 0.75 {
			p.fail("TCSI_STUDENT_BUSINESS_205", "study_mode", s.StudyMode)
		}
		if eftsl > 1.0 {
			p.fail("TCSI_STUDENT_BUSINESS_206", "eftsl", s.EFTSL)
		}
	}

	if s.CitizenshipStatus == "I" && s.CommonwealthSupported {
		p.fail("TCSI_STUDENT_BUSINESS_207", "citizenship_status", s.CitizenshipStatus)
	}
}

// studentIdentifier labels findings with the CHESSN, falling back to the
// composed name, stable across repeated runs of the same record content.
func studentIdentifier(s *records.Student) string {
	if !isEmpty(s.CHESSN) {
		return s.CHESSN
	}
	name := strings.TrimSpace(s.FirstName + " " + s.LastName)
	if name != "" {
		return name
	}
	return "Unknown Student"
}
