package remediation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"preflight/internal/errorlog"
	"preflight/internal/records"
	"preflight/internal/rules"
	"preflight/pkg/platform/audit"
	"preflight/pkg/requestcontext"
)

type staticLibrary map[string]rules.Definition

func (l staticLibrary) Lookup(_ context.Context, code string) (rules.Definition, bool) {
	def, ok := l[code]
	return def, ok
}

// failingErrorStore wraps the in-memory store and breaks Update, to drive
// the fault path.
type failingErrorStore struct {
	errorlog.Store
	failUpdates int
	updates     int
}

func (s *failingErrorStore) Update(ctx context.Context, e *errorlog.Error) error {
	s.updates++
	if s.updates <= s.failUpdates {
		return errors.New("connection reset")
	}
	return s.Store.Update(ctx, e)
}

type ServiceSuite struct {
	suite.Suite

	ctx      context.Context
	now      time.Time
	store    *records.InMemory
	errorLog *errorlog.InMemory
	sink     *audit.InMemory
	service  *Service
}

func (s *ServiceSuite) SetupTest() {
	s.now = time.Date(2026, time.January, 15, 9, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(requestcontext.WithOperatorID(context.Background(), "operator-7"), s.now)
	s.store = records.NewInMemory()
	s.errorLog = errorlog.NewInMemory()
	s.sink = audit.NewInMemory()

	library := staticLibrary{
		"TCSI_STUDENT_FORMAT_101": {
			Code:        "TCSI_STUDENT_FORMAT_101",
			FileType:    records.EntityStudent,
			FieldName:   "chessn",
			AutoFixable: true,
			FixFunction: "padChessn",
		},
		"TCSI_STUDENT_BUSINESS_201": {
			Code:     "TCSI_STUDENT_BUSINESS_201",
			FileType: records.EntityStudent,
		},
		"TCSI_STAFF_BUSINESS_206": {
			Code:        "TCSI_STAFF_BUSINESS_206",
			FileType:    records.EntityStaff,
			FieldName:   "full_time_equivalence",
			AutoFixable: true,
			FixFunction: "fixFullTimeFTE",
		},
		"TCSI_COURSE_FORMAT_999": {
			Code:        "TCSI_COURSE_FORMAT_999",
			AutoFixable: true,
			FixFunction: "transmogrify",
		},
	}

	s.service = NewService(s.errorLog, s.store, library, NewCatalog(),
		WithAuditPublisher(audit.NewPublisher(s.sink)),
	)
}

func (s *ServiceSuite) seedChessnError(student *records.Student) *errorlog.Error {
	row := &errorlog.Error{
		Code:     "TCSI_STUDENT_FORMAT_101",
		ItemType: records.EntityStudent,
		ItemID:   student.ID,
	}
	s.Require().NoError(s.errorLog.Create(s.ctx, row))
	return row
}

func (s *ServiceSuite) TestFixUnknownError() {
	outcome := s.service.AttemptFix(s.ctx, 404)

	s.False(outcome.Success)
	s.Equal("Error not found", outcome.Message)
	s.Empty(s.sink.Events())
}

func (s *ServiceSuite) TestFixNonFixableRule() {
	student := s.store.AddStudent(&records.Student{CHESSN: "0000012345"})
	row := &errorlog.Error{
		Code:     "TCSI_STUDENT_BUSINESS_201",
		ItemType: records.EntityStudent,
		ItemID:   student.ID,
	}
	s.Require().NoError(s.errorLog.Create(s.ctx, row))

	outcome := s.service.AttemptFix(s.ctx, row.ID)

	s.False(outcome.Success)
	s.Equal("This error cannot be automatically fixed", outcome.Message)
}

func (s *ServiceSuite) TestFixUnknownRoutine() {
	row := &errorlog.Error{Code: "TCSI_COURSE_FORMAT_999", ItemType: records.EntityCourse, ItemID: 1}
	s.Require().NoError(s.errorLog.Create(s.ctx, row))

	outcome := s.service.AttemptFix(s.ctx, row.ID)

	s.False(outcome.Success)
	s.Equal("Fix function 'transmogrify' not implemented", outcome.Message)
}

func (s *ServiceSuite) TestFixMissingRecord() {
	row := &errorlog.Error{Code: "TCSI_STUDENT_FORMAT_101", ItemType: records.EntityStudent, ItemID: 99}
	s.Require().NoError(s.errorLog.Create(s.ctx, row))

	outcome := s.service.AttemptFix(s.ctx, row.ID)

	s.False(outcome.Success)
	s.Equal("Record not found", outcome.Message)

	stored, err := s.errorLog.FindByID(s.ctx, row.ID)
	s.Require().NoError(err)
	s.False(stored.AutoFixAttempted, "business failures leave the row untouched")
}

func (s *ServiceSuite) TestSuccessfulFix() {
	student := s.store.AddStudent(&records.Student{CHESSN: "12345"})
	row := s.seedChessnError(student)

	outcome := s.service.AttemptFix(s.ctx, row.ID)

	s.Require().True(outcome.Success)
	s.Equal("12345", outcome.OriginalValue)
	s.Equal("0000012345", outcome.NewValue)

	fixedStudent, err := s.store.FindStudent(s.ctx, student.ID)
	s.Require().NoError(err)
	s.Equal("0000012345", fixedStudent.CHESSN)

	stored, err := s.errorLog.FindByID(s.ctx, row.ID)
	s.Require().NoError(err)
	s.Equal(errorlog.StatusResolved, stored.ResolutionStatus)
	s.Equal(outcome.ActionTaken, stored.ResolutionAction)
	s.True(stored.AutoFixAttempted)
	s.True(stored.AutoFixSucceeded)
	s.Equal("operator-7", stored.ResolvedBy)
	s.Require().NotNil(stored.ResolvedAt)
	s.Equal(s.now, *stored.ResolvedAt)

	events := s.sink.Events()
	s.Require().Len(events, 1)
	s.Equal(audit.ActionFixSucceeded, events[0].Action)
	s.Equal("operator-7", events[0].Actor)
	s.Equal(row.ID, events[0].ErrorID)
}

func (s *ServiceSuite) TestRoutineRejectionLeavesRowUntouched() {
	staff := s.store.AddStaff(&records.Staff{EmploymentType: "PART_TIME", FTE: "0.8"})
	row := &errorlog.Error{
		Code:     "TCSI_STAFF_BUSINESS_206",
		ItemType: records.EntityStaff,
		ItemID:   staff.ID,
	}
	s.Require().NoError(s.errorLog.Create(s.ctx, row))

	outcome := s.service.AttemptFix(s.ctx, row.ID)

	s.False(outcome.Success)
	s.Equal("Employment type is not FULL_TIME", outcome.Message)

	unchanged, err := s.store.FindStaff(s.ctx, staff.ID)
	s.Require().NoError(err)
	s.Equal("0.8", unchanged.FTE)

	stored, err := s.errorLog.FindByID(s.ctx, row.ID)
	s.Require().NoError(err)
	s.Equal(errorlog.StatusPending, stored.ResolutionStatus)
	s.False(stored.AutoFixAttempted)

	events := s.sink.Events()
	s.Require().Len(events, 1)
	s.Equal(audit.ActionFixFailed, events[0].Action)
}

func (s *ServiceSuite) TestFaultStampsFailedAttempt() {
	student := s.store.AddStudent(&records.Student{CHESSN: "12345"})
	row := s.seedChessnError(student)

	broken := &failingErrorStore{Store: s.errorLog, failUpdates: 1}
	faulty := NewService(broken, s.store, staticLibrary{
		"TCSI_STUDENT_FORMAT_101": {
			Code:        "TCSI_STUDENT_FORMAT_101",
			AutoFixable: true,
			FixFunction: "padChessn",
		},
	}, NewCatalog())

	outcome := faulty.AttemptFix(s.ctx, row.ID)

	s.Require().False(outcome.Success)
	s.Contains(outcome.Message, "Auto-fix failed:")

	stored, err := s.errorLog.FindByID(s.ctx, row.ID)
	s.Require().NoError(err)
	s.True(stored.AutoFixAttempted)
	s.False(stored.AutoFixSucceeded)
	s.Contains(stored.ResolutionNotes, "Auto-fix failed:")
	s.NotEqual(errorlog.StatusResolved, stored.ResolutionStatus, "rolled-back stamps must not leak")
}

func (s *ServiceSuite) TestBulkFixTallies() {
	first := s.store.AddStudent(&records.Student{CHESSN: "12345"})
	second := s.store.AddStudent(&records.Student{CHESSN: "12345678901"})
	ok := s.seedChessnError(first)
	rejected := s.seedChessnError(second)

	result := s.service.BulkFix(s.ctx, []int64{ok.ID, rejected.ID, 404})

	s.Equal(3, result.Total)
	s.Equal(1, result.Fixed)
	s.Equal(2, result.Failed)
	s.Require().Len(result.Details, 3)
	s.True(result.Details[ok.ID].Success)
	s.False(result.Details[rejected.ID].Success)
	s.Equal("Error not found", result.Details[404].Message)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}
