package remediation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"preflight/internal/errorlog"
	"preflight/internal/records"
)

// Routine applies one deterministic fix to an already-resolved record. It
// validates its own precondition, mutates the record in memory, and reports
// the before/after values; the service persists the mutation on success
// inside the surrounding transaction.
type Routine func(record any, e *errorlog.Error) Outcome

var (
	nonDigits    = regexp.MustCompile(`[^0-9]`)
	nonCodeChars = regexp.MustCompile(`[^A-Za-z0-9-]`)
)

// dateLayouts are the known input shapes, tried in order. A layout only
// wins if reformatting the parsed date reproduces the original string, so
// an ambiguous value cannot silently pick the wrong variant.
var dateLayouts = []string{
	"02/01/2006",
	"02-01-2006",
	"02/01/06",
	"2006-01-02",
	"2 Jan 2006",
	"02.01.2006",
}

const canonicalDate = "2006-01-02"

// padDigits strips everything but digits and left-pads with zeros.
func padDigits(value string, width int) string {
	cleaned := nonDigits.ReplaceAllString(value, "")
	if len(cleaned) >= width {
		return cleaned
	}
	return strings.Repeat("0", width-len(cleaned)) + cleaned
}

func isExactDigits(value string, width int) bool {
	if len(value) != width {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// normalizeDate converts a known date shape to canonical YYYY-MM-DD, or
// reports failure if no layout round-trips.
func normalizeDate(value string) (string, bool) {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		if t.Format(layout) != value {
			continue
		}
		return t.Format(canonicalDate), true
	}
	return "", false
}

// normalizePhone reduces a phone number to the 10-digit local form with a
// leading zero: strips formatting, collapses a country-code prefix, and
// restores a dropped leading zero.
func normalizePhone(value string) (string, bool) {
	cleaned := nonDigits.ReplaceAllString(value, "")

	if len(cleaned) == 11 && strings.HasPrefix(cleaned, "61") {
		cleaned = "0" + cleaned[2:]
	}
	if len(cleaned) == 9 && !strings.HasPrefix(cleaned, "0") {
		cleaned = "0" + cleaned
	}

	if len(cleaned) != 10 || !strings.HasPrefix(cleaned, "0") {
		return "", false
	}
	return cleaned, true
}

// sanitizeCode strips everything outside [A-Za-z0-9-] and upper-cases the
// remainder.
func sanitizeCode(value string) string {
	return strings.ToUpper(nonCodeChars.ReplaceAllString(value, ""))
}

func padChessn(record any, _ *errorlog.Error) Outcome {
	student, ok := record.(*records.Student)
	if !ok {
		return failure("fix applies to student records only")
	}

	original := student.CHESSN
	padded := padDigits(original, 10)
	if !isExactDigits(padded, 10) {
		return failure("Cannot pad CHESSN '%s' to valid format", original)
	}

	student.CHESSN = padded
	return fixed(fmt.Sprintf("Padded CHESSN from '%s' to '%s'", original, padded), original, padded)
}

func fixDateFormat(record any, e *errorlog.Error) Outcome {
	get, set, ok := dateField(record, e.FieldName)
	if !ok {
		return failure("no date field '%s' on this record type", e.FieldName)
	}

	original := get()
	if strings.TrimSpace(original) == "" {
		return failure("Date field is empty")
	}

	canonical, ok := normalizeDate(original)
	if !ok {
		return failure("Cannot parse date '%s'", original)
	}

	set(canonical)
	return fixed(fmt.Sprintf("Converted date from '%s' to '%s'", original, canonical), original, canonical)
}

// dateField maps an error's field name to the matching accessor on the
// record. Only the fields whose format rules carry this routine appear
// here.
func dateField(record any, field string) (get func() string, set func(string), ok bool) {
	switch rec := record.(type) {
	case *records.Student:
		switch field {
		case "date_of_birth":
			return func() string { return rec.DateOfBirth }, func(v string) { rec.DateOfBirth = v }, true
		case "commencement_date":
			return func() string { return rec.CommencementDate }, func(v string) { rec.CommencementDate = v }, true
		}
	case *records.Staff:
		switch field {
		case "employment_start_date":
			return func() string { return rec.EmploymentStartDate }, func(v string) { rec.EmploymentStartDate = v }, true
		case "employment_end_date":
			return func() string { return rec.EmploymentEndDate }, func(v string) { rec.EmploymentEndDate = v }, true
		}
	}
	return nil, nil, false
}

func fixPhoneFormat(record any, _ *errorlog.Error) Outcome {
	student, ok := record.(*records.Student)
	if !ok {
		return failure("fix applies to student records only")
	}

	original := student.Phone
	normalized, ok := normalizePhone(original)
	if !ok {
		return failure("Cannot convert '%s' to valid phone format", original)
	}

	student.Phone = normalized
	return fixed(fmt.Sprintf("Formatted phone from '%s' to '%s'", original, normalized), original, normalized)
}

func padPostcode(record any, _ *errorlog.Error) Outcome {
	student, ok := record.(*records.Student)
	if !ok {
		return failure("fix applies to student records only")
	}

	original := student.ResidentialPostcode
	padded := padDigits(original, 4)
	if !isExactDigits(padded, 4) {
		return failure("Cannot pad postcode '%s' to valid format", original)
	}

	student.ResidentialPostcode = padded
	return fixed(fmt.Sprintf("Padded postcode from '%s' to '%s'", original, padded), original, padded)
}

// fixFullTimeFTE forces the load to 1.0, but only for FULL_TIME employment.
// Any other employment type fails so the fix cannot mask the real problem
// (a wrong employment type).
func fixFullTimeFTE(record any, _ *errorlog.Error) Outcome {
	staff, ok := record.(*records.Staff)
	if !ok {
		return failure("fix applies to staff records only")
	}

	if staff.EmploymentType != "FULL_TIME" {
		return failure("Employment type is not FULL_TIME")
	}

	original := staff.FTE
	staff.FTE = "1.0"
	return fixed(fmt.Sprintf("Set FTE from '%s' to '1.0' for full-time employment", original), original, "1.0")
}

func sanitizeCourseCode(record any, _ *errorlog.Error) Outcome {
	course, ok := record.(*records.Course)
	if !ok {
		return failure("fix applies to course records only")
	}

	original := course.CourseCode
	sanitized := sanitizeCode(original)
	if sanitized == "" {
		return failure("Cannot sanitize empty course code")
	}

	course.CourseCode = sanitized
	return fixed(fmt.Sprintf("Sanitized course code from '%s' to '%s'", original, sanitized), original, sanitized)
}

func sanitizeUnitCode(record any, _ *errorlog.Error) Outcome {
	unit, ok := record.(*records.Unit)
	if !ok {
		return failure("fix applies to unit records only")
	}

	original := unit.UnitCode
	sanitized := sanitizeCode(original)
	if sanitized == "" {
		return failure("Cannot sanitize empty unit code")
	}

	unit.UnitCode = sanitized
	return fixed(fmt.Sprintf("Sanitized unit code from '%s' to '%s'", original, sanitized), original, sanitized)
}

func padAscedCode(record any, _ *errorlog.Error) Outcome {
	course, ok := record.(*records.Course)
	if !ok {
		return failure("fix applies to course records only")
	}

	original := course.FieldOfEducation
	padded := padDigits(original, 6)
	if !isExactDigits(padded, 6) {
		return failure("Cannot pad ASCED code '%s' to valid format", original)
	}

	course.FieldOfEducation = padded
	return fixed(fmt.Sprintf("Padded ASCED code from '%s' to '%s'", original, padded), original, padded)
}
