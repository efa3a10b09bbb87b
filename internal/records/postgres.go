package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"preflight/pkg/platform/sentinel"
	"preflight/pkg/platform/tx"
)

// Postgres persists records in PostgreSQL. All operations join an in-flight
// transaction when ctx carries one, so remediation mutations roll back with
// their fix scope.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed record store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) FindProvider(ctx context.Context, id int64) (*Provider, error) {
	q := tx.QuerierFrom(ctx, s.db)
	var p Provider
	err := q.QueryRowContext(ctx, `
		SELECT id, provider_code, provider_name, campus_name, COALESCE(abn, '')
		FROM providers WHERE id = $1`, id).
		Scan(&p.ID, &p.ProviderCode, &p.ProviderName, &p.CampusName, &p.ABN)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find provider: %w", err)
	}
	return &p, nil
}

func (s *Postgres) FindCourse(ctx context.Context, id int64) (*Course, error) {
	q := tx.QuerierFrom(ctx, s.db)
	var c Course
	err := q.QueryRowContext(ctx, `
		SELECT id, course_code, course_name, qualification_level, field_of_education,
		       course_duration, total_eftsl, COALESCE(attendance_mode, ''),
		       COALESCE(course_start_date, ''), COALESCE(course_end_date, '')
		FROM courses WHERE id = $1`, id).
		Scan(&c.ID, &c.CourseCode, &c.CourseName, &c.QualificationLevel, &c.FieldOfEducation,
			&c.CourseDuration, &c.TotalEFTSL, &c.AttendanceMode, &c.CourseStartDate, &c.CourseEndDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find course: %w", err)
	}
	return &c, nil
}

func (s *Postgres) FindUnit(ctx context.Context, id int64) (*Unit, error) {
	q := tx.QuerierFrom(ctx, s.db)
	var u Unit
	err := q.QueryRowContext(ctx, `
		SELECT id, unit_code, unit_name, credit_points, unit_level, field_of_education
		FROM units WHERE id = $1`, id).
		Scan(&u.ID, &u.UnitCode, &u.UnitName, &u.CreditPoints, &u.UnitLevel, &u.FieldOfEducation)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find unit: %w", err)
	}
	return &u, nil
}

func (s *Postgres) FindStaff(ctx context.Context, id int64) (*Staff, error) {
	q := tx.QuerierFrom(ctx, s.db)
	var st Staff
	err := q.QueryRowContext(ctx, `
		SELECT id, staff_identifier, COALESCE(first_name, ''), COALESCE(last_name, ''),
		       employment_start_date, COALESCE(employment_end_date, ''),
		       position_classification, fte, employment_type, staff_category,
		       COALESCE(phone, '')
		FROM staff WHERE id = $1`, id).
		Scan(&st.ID, &st.StaffIdentifier, &st.FirstName, &st.LastName,
			&st.EmploymentStartDate, &st.EmploymentEndDate,
			&st.PositionClassification, &st.FTE, &st.EmploymentType, &st.StaffCategory,
			&st.Phone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find staff: %w", err)
	}
	return &st, nil
}

func (s *Postgres) FindStudent(ctx context.Context, id int64) (*Student, error) {
	q := tx.QuerierFrom(ctx, s.db)
	var st Student
	err := q.QueryRowContext(ctx, `
		SELECT id, chessn, COALESCE(first_name, ''), COALESCE(last_name, ''),
		       COALESCE(date_of_birth, ''), COALESCE(gender, ''),
		       COALESCE(country_of_birth, ''), COALESCE(indigenous_status, ''),
		       COALESCE(citizenship_status, ''), COALESCE(residential_postcode, ''),
		       COALESCE(highest_education_level, ''), COALESCE(course_code, ''),
		       COALESCE(commencement_date, ''), COALESCE(study_mode, ''),
		       COALESCE(attendance_type, ''), COALESCE(basis_for_admission, ''),
		       COALESCE(email, ''), COALESCE(phone, ''), COALESCE(eftsl, ''),
		       commonwealth_supported
		FROM students WHERE id = $1`, id).
		Scan(&st.ID, &st.CHESSN, &st.FirstName, &st.LastName,
			&st.DateOfBirth, &st.Gender,
			&st.CountryOfBirth, &st.IndigenousStatus,
			&st.CitizenshipStatus, &st.ResidentialPostcode,
			&st.HighestEducationLevel, &st.CourseCode,
			&st.CommencementDate, &st.StudyMode,
			&st.AttendanceType, &st.BasisForAdmission,
			&st.Email, &st.Phone, &st.EFTSL,
			&st.CommonwealthSupported)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find student: %w", err)
	}
	return &st, nil
}

func (s *Postgres) FindUnitAttempt(ctx context.Context, id int64) (*UnitAttempt, error) {
	q := tx.QuerierFrom(ctx, s.db)
	var ua UnitAttempt
	err := q.QueryRowContext(ctx, `
		SELECT id, student_identifier, unit_code, study_period, result
		FROM unit_attempts WHERE id = $1`, id).
		Scan(&ua.ID, &ua.StudentIdentifier, &ua.UnitCode, &ua.StudyPeriod, &ua.Result)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find unit attempt: %w", err)
	}
	return &ua, nil
}

func (s *Postgres) SaveCourse(ctx context.Context, course *Course) error {
	q := tx.QuerierFrom(ctx, s.db)
	res, err := q.ExecContext(ctx, `
		UPDATE courses SET
			course_code = $2, course_name = $3, qualification_level = $4,
			field_of_education = $5, course_duration = $6, total_eftsl = $7,
			attendance_mode = $8, course_start_date = $9, course_end_date = $10,
			updated_at = NOW()
		WHERE id = $1`,
		course.ID, course.CourseCode, course.CourseName, course.QualificationLevel,
		course.FieldOfEducation, course.CourseDuration, course.TotalEFTSL,
		course.AttendanceMode, course.CourseStartDate, course.CourseEndDate)
	if err != nil {
		return fmt.Errorf("save course: %w", err)
	}
	return requireRow(res)
}

func (s *Postgres) SaveUnit(ctx context.Context, unit *Unit) error {
	q := tx.QuerierFrom(ctx, s.db)
	res, err := q.ExecContext(ctx, `
		UPDATE units SET
			unit_code = $2, unit_name = $3, credit_points = $4,
			unit_level = $5, field_of_education = $6, updated_at = NOW()
		WHERE id = $1`,
		unit.ID, unit.UnitCode, unit.UnitName, unit.CreditPoints,
		unit.UnitLevel, unit.FieldOfEducation)
	if err != nil {
		return fmt.Errorf("save unit: %w", err)
	}
	return requireRow(res)
}

func (s *Postgres) SaveStaff(ctx context.Context, staff *Staff) error {
	q := tx.QuerierFrom(ctx, s.db)
	res, err := q.ExecContext(ctx, `
		UPDATE staff SET
			staff_identifier = $2, first_name = $3, last_name = $4,
			employment_start_date = $5, employment_end_date = $6,
			position_classification = $7, fte = $8, employment_type = $9,
			staff_category = $10, phone = $11, updated_at = NOW()
		WHERE id = $1`,
		staff.ID, staff.StaffIdentifier, staff.FirstName, staff.LastName,
		staff.EmploymentStartDate, staff.EmploymentEndDate,
		staff.PositionClassification, staff.FTE, staff.EmploymentType,
		staff.StaffCategory, staff.Phone)
	if err != nil {
		return fmt.Errorf("save staff: %w", err)
	}
	return requireRow(res)
}

func (s *Postgres) SaveStudent(ctx context.Context, student *Student) error {
	q := tx.QuerierFrom(ctx, s.db)
	res, err := q.ExecContext(ctx, `
		UPDATE students SET
			chessn = $2, first_name = $3, last_name = $4, date_of_birth = $5,
			gender = $6, country_of_birth = $7, indigenous_status = $8,
			citizenship_status = $9, residential_postcode = $10,
			highest_education_level = $11, course_code = $12,
			commencement_date = $13, study_mode = $14, attendance_type = $15,
			basis_for_admission = $16, email = $17, phone = $18, eftsl = $19,
			commonwealth_supported = $20, updated_at = NOW()
		WHERE id = $1`,
		student.ID, student.CHESSN, student.FirstName, student.LastName, student.DateOfBirth,
		student.Gender, student.CountryOfBirth, student.IndigenousStatus,
		student.CitizenshipStatus, student.ResidentialPostcode,
		student.HighestEducationLevel, student.CourseCode,
		student.CommencementDate, student.StudyMode, student.AttendanceType,
		student.BasisForAdmission, student.Email, student.Phone, student.EFTSL,
		student.CommonwealthSupported)
	if err != nil {
		return fmt.Errorf("save student: %w", err)
	}
	return requireRow(res)
}

func (s *Postgres) ExistsByNaturalKey(ctx context.Context, entity EntityType, key string, excludeID int64) (bool, error) {
	table, column, ok := naturalKeyColumn(entity)
	if !ok {
		return false, nil
	}

	q := tx.QuerierFrom(ctx, s.db)
	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND id <> $2)`, table, column)
	if err := q.QueryRowContext(ctx, query, key, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("natural key lookup: %w", err)
	}
	return exists, nil
}

// naturalKeyColumn maps an entity to its natural-key column. Table and column
// names are fixed at compile time; nothing user-supplied reaches the query text.
func naturalKeyColumn(entity EntityType) (table, column string, ok bool) {
	switch entity {
	case EntityProvider:
		return "providers", "provider_code", true
	case EntityCourse:
		return "courses", "course_code", true
	case EntityUnit:
		return "units", "unit_code", true
	case EntityStaff:
		return "staff", "staff_identifier", true
	case EntityStudent:
		return "students", "chessn", true
	default:
		return "", "", false
	}
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
