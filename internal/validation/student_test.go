package validation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"preflight/internal/records"
	"preflight/pkg/requestcontext"
)

type StudentEvaluatorSuite struct {
	suite.Suite
	store     *records.InMemory
	evaluator *StudentEvaluator
	ctx       context.Context
}

func TestStudentEvaluatorSuite(t *testing.T) {
	suite.Run(t, new(StudentEvaluatorSuite))
}

func (s *StudentEvaluatorSuite) SetupTest() {
	s.store = records.NewInMemory()
	s.store.AddCourse(&records.Course{CourseCode: "BACH001", CourseName: "Bachelor of Computing"})
	s.evaluator = NewStudentEvaluator(builtinLibrary(), s.store)
	// Fixed clock so age checks are deterministic.
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC))
}

// validStudent passes every check as a baseline; tests break one field at a
// time.
func (s *StudentEvaluatorSuite) validStudent() *records.Student {
	return &records.Student{
		CHESSN:                "1234567890",
		FirstName:             "Jamie",
		LastName:              "Nguyen",
		DateOfBirth:           "2000-01-15",
		Gender:                "F",
		CountryOfBirth:        "1101",
		IndigenousStatus:      "2",
		CitizenshipStatus:     "A",
		ResidentialPostcode:   "2000",
		HighestEducationLevel: "008",
		CourseCode:            "BACH001",
		CommencementDate:      "2024-02-26",
		StudyMode:             "F",
		AttendanceType:        "I",
		BasisForAdmission:     "31",
		Email:                 "jamie@example.edu.au",
		Phone:                 "0412345678",
		EFTSL:                 "1.0",
	}
}

func (s *StudentEvaluatorSuite) validate(student *records.Student) Result {
	result, err := s.evaluator.Validate(s.ctx, student, "2026-S1")
	s.Require().NoError(err)
	return result
}

func codesOf(issues []Issue) []string {
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = issue.Code
	}
	return out
}

func (s *StudentEvaluatorSuite) TestValidStudentHasNoFindings() {
	result := s.validate(s.validStudent())
	s.True(result.Valid)
	s.Empty(result.Errors)
	s.Empty(result.Warnings)
}

func (s *StudentEvaluatorSuite) TestValidationIsDeterministic() {
	student := s.validStudent()
	student.CHESSN = "12345"
	student.Gender = "Q"

	first := s.validate(student)
	second := s.validate(student)
	s.Equal(first, second)
}

func (s *StudentEvaluatorSuite) TestMissingMandatoryFieldYieldsOneMandatoryIssue() {
	student := s.validStudent()
	student.LastName = ""

	result := s.validate(student)
	s.False(result.Valid)
	s.Equal([]string{"TCSI_STUDENT_MANDATORY_002"}, codesOf(result.Errors))
}

func (s *StudentEvaluatorSuite) TestPostcodeRequiredByCitizenshipStatus() {
	s.Run("domestic student without postcode fails", func() {
		student := s.validStudent()
		student.ResidentialPostcode = ""

		result := s.validate(student)
		s.Contains(codesOf(result.Errors), "TCSI_STUDENT_MANDATORY_009")
	})

	s.Run("international student without postcode passes", func() {
		student := s.validStudent()
		student.CitizenshipStatus = "I"
		student.ResidentialPostcode = ""

		result := s.validate(student)
		s.NotContains(codesOf(result.Errors), "TCSI_STUDENT_MANDATORY_009")
	})
}

func (s *StudentEvaluatorSuite) TestChessnFormat() {
	student := s.validStudent()
	student.CHESSN = "12345"

	result := s.validate(student)
	s.Contains(codesOf(result.Errors), "TCSI_STUDENT_FORMAT_101")

	// The format finding carries the fix reference from the rule definition.
	for _, issue := range result.Errors {
		if issue.Code == "TCSI_STUDENT_FORMAT_101" {
			s.True(issue.AutoFixable)
			s.Equal("padChessn", issue.FixFunction)
		}
	}
}

func (s *StudentEvaluatorSuite) TestCourseLinkage() {
	student := s.validStudent()
	student.CourseCode = "GHOST999"

	result := s.validate(student)
	s.Contains(codesOf(result.Errors), "TCSI_STUDENT_REFERENCE_306")
}

func (s *StudentEvaluatorSuite) TestAgeRules() {
	s.Run("under 15 fails", func() {
		student := s.validStudent()
		student.DateOfBirth = "2013-06-01"

		result := s.validate(student)
		s.Contains(codesOf(result.Errors), "TCSI_STUDENT_BUSINESS_201")
	})

	s.Run("future date of birth fails both age rules", func() {
		student := s.validStudent()
		student.DateOfBirth = "2030-01-01"

		result := s.validate(student)
		codes := codesOf(result.Errors)
		s.Contains(codes, "TCSI_STUDENT_BUSINESS_201")
		s.Contains(codes, "TCSI_STUDENT_BUSINESS_202")
	})

	s.Run("commencement before birth fails", func() {
		student := s.validStudent()
		student.CommencementDate = "1999-01-01"

		result := s.validate(student)
		s.Contains(codesOf(result.Errors), "TCSI_STUDENT_BUSINESS_203")
	})
}

func (s *StudentEvaluatorSuite) TestStudyLoadWarnings() {
	s.Run("full-time below 0.75 warns", func() {
		student := s.validStudent()
		student.EFTSL = "0.5"

		result := s.validate(student)
		s.True(result.Valid, "study-load findings are warnings")
		s.Contains(codesOf(result.Warnings), "TCSI_STUDENT_BUSINESS_205")
	})

	s.Run("load above 1.0 warns and fails the range check", func() {
		student := s.validStudent()
		student.EFTSL = "1.5"

		result := s.validate(student)
		s.Contains(codesOf(result.Errors), "TCSI_STUDENT_FORMAT_107")
		s.Contains(codesOf(result.Warnings), "TCSI_STUDENT_BUSINESS_206")
	})
}

func (s *StudentEvaluatorSuite) TestInternationalCommonwealthSupported() {
	student := s.validStudent()
	student.CitizenshipStatus = "I"
	student.ResidentialPostcode = ""
	student.CommonwealthSupported = true

	result := s.validate(student)
	s.Contains(codesOf(result.Errors), "TCSI_STUDENT_BUSINESS_207")
}

func (s *StudentEvaluatorSuite) TestRecordIdentifierFallbacks() {
	s.Run("chessn preferred", func() {
		result := s.validate(s.validStudent())
		_ = result
		s.Equal("1234567890", studentIdentifier(s.validStudent()))
	})

	s.Run("composed name when chessn missing", func() {
		student := s.validStudent()
		student.CHESSN = ""
		s.Equal("Jamie Nguyen", studentIdentifier(student))
	})

	s.Run("placeholder when both missing", func() {
		s.Equal("Unknown Student", studentIdentifier(&records.Student{}))
	})
}

func (s *StudentEvaluatorSuite) TestAllPhasesRunWithoutShortCircuit() {
	result := s.validate(&records.Student{CitizenshipStatus: "Z", CourseCode: "GHOST999"})

	codes := codesOf(result.Errors)
	// Mandatory, reference and linkage findings all reported in one pass.
	s.Contains(codes, "TCSI_STUDENT_MANDATORY_001")
	s.Contains(codes, "TCSI_STUDENT_REFERENCE_304")
	s.Contains(codes, "TCSI_STUDENT_REFERENCE_306")
}
