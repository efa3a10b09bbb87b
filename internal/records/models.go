// Package records holds the six administrative record shapes the engine
// validates and remediates, plus their store contract.
//
// Validated fields are deliberately raw strings: records arrive from
// upstream admin systems dirty, and the whole point of the engine is to
// find and fix what is wrong with them before submission. Typing a date
// field as time.Time would make the bad values this system exists to
// report unrepresentable.
package records

import "fmt"

// EntityType tags which record shape a row, issue, or error refers to.
type EntityType string

const (
	EntityProvider    EntityType = "PROVIDER"
	EntityCourse      EntityType = "COURSE"
	EntityUnit        EntityType = "UNIT"
	EntityStaff       EntityType = "STAFF"
	EntityStudent     EntityType = "STUDENT"
	EntityUnitAttempt EntityType = "UNIT_ATTEMPT"
)

// ParseEntityType validates an entity tag from an external source (URL
// segment, persisted error row).
func ParseEntityType(raw string) (EntityType, error) {
	switch EntityType(raw) {
	case EntityProvider, EntityCourse, EntityUnit, EntityStaff, EntityStudent, EntityUnitAttempt:
		return EntityType(raw), nil
	}
	return "", fmt.Errorf("unknown entity type %q", raw)
}

// Provider is the reporting institution record.
type Provider struct {
	ID           int64
	ProviderCode string
	ProviderName string
	CampusName   string
	ABN          string
}

// Course is a course-of-study record.
type Course struct {
	ID                 int64
	CourseCode         string
	CourseName         string
	QualificationLevel string
	FieldOfEducation   string
	CourseDuration     string
	TotalEFTSL         string
	AttendanceMode     string
	CourseStartDate    string
	CourseEndDate      string
}

// Unit is a subject record.
type Unit struct {
	ID               int64
	UnitCode         string
	UnitName         string
	CreditPoints     string
	UnitLevel        string
	FieldOfEducation string
}

// Staff is an employment record.
type Staff struct {
	ID                     int64
	StaffIdentifier        string
	FirstName              string
	LastName               string
	EmploymentStartDate    string
	EmploymentEndDate      string
	PositionClassification string
	FTE                    string
	EmploymentType         string
	StaffCategory          string
	Phone                  string
}

// Student is an enrolment record, the widest of the six shapes.
type Student struct {
	ID                    int64
	CHESSN                string
	FirstName             string
	LastName              string
	DateOfBirth           string
	Gender                string
	CountryOfBirth        string
	IndigenousStatus      string
	CitizenshipStatus     string
	ResidentialPostcode   string
	HighestEducationLevel string
	CourseCode            string
	CommencementDate      string
	StudyMode             string
	AttendanceType        string
	BasisForAdmission     string
	Email                 string
	Phone                 string
	EFTSL                 string
	CommonwealthSupported bool
}

// UnitAttempt links a student to a unit outcome within a study period.
type UnitAttempt struct {
	ID                int64
	StudentIdentifier string
	UnitCode          string
	StudyPeriod       string
	Result            string
}
