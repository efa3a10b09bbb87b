package validation

import (
	"context"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"preflight/internal/records"
	"preflight/internal/rules"
)

// Library is the rule metadata source the framework resolves codes against.
type Library interface {
	Lookup(ctx context.Context, code string) (rules.Definition, bool)
}

// Lookups provides the read-only cross-record existence checks evaluators
// need (course code uniqueness, student→course linkage). Backed by the
// record store in production.
type Lookups interface {
	ExistsByNaturalKey(ctx context.Context, entity records.EntityType, key string, excludeID int64) (bool, error)
}

const dateLayout = "2006-01-02"

var (
	datePattern         = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	chessnPattern       = regexp.MustCompile(`^\d{10}$`)
	postcodePattern     = regexp.MustCompile(`^\d{4}$`)
	ascedPattern        = regexp.MustCompile(`^\d{6}$`)
	abnPattern          = regexp.MustCompile(`^\d{11}$`)
	codePattern         = regexp.MustCompile(`^[A-Za-z0-9-]+$`)
	providerCodePattern = regexp.MustCompile(`^PRV\d{5}$`)
	phonePattern        = regexp.MustCompile(`^0\d{9}$`)
)

// pass owns the working state of one Validate call: the issue lists under
// construction and the record identifier stamped onto every finding. Each
// call builds its own pass, so a shared evaluator instance is safe to use
// concurrently.
type pass struct {
	ctx      context.Context
	library  Library
	recordID string
	errors   []Issue
	warnings []Issue
}

func newPass(ctx context.Context, library Library, recordID string) *pass {
	return &pass{ctx: ctx, library: library, recordID: recordID}
}

// fail records a finding for code. The rule definition supplies message,
// severity and fixability; a code missing from the library degrades to a
// synthesized ERROR rather than aborting the run. fail never returns an
// error.
func (p *pass) fail(code, field, submitted string) {
	def, ok := p.library.Lookup(p.ctx, code)
	if !ok {
		def = rules.Synthesize(code, field)
	}

	issue := Issue{
		Code:               code,
		FieldName:          field,
		Message:            def.Description,
		Severity:           def.DefaultSeverity,
		SubmittedValue:     submitted,
		ExpectedFormat:     def.ExampleValue,
		RecordIdentifier:   p.recordID,
		ResolutionGuidance: def.ResolutionGuidance,
		AutoFixable:        def.AutoFixable,
		FixFunction:        def.FixFunction,
	}
	if issue.Severity == "" {
		issue.Severity = rules.SeverityError
	}

	if issue.Severity == rules.SeverityWarning {
		p.warnings = append(p.warnings, issue)
	} else {
		p.errors = append(p.errors, issue)
	}
}

func (p *pass) result() Result {
	return Result{
		Valid:    len(p.errors) == 0,
		Errors:   p.errors,
		Warnings: p.warnings,
	}
}

// isEmpty is the shared emptiness rule: nothing there after trimming. Every
// primitive except mandatory skips empty values so optional fields are only
// checked when present.
func isEmpty(value string) bool {
	return strings.TrimSpace(value) == ""
}

func (p *pass) mandatory(field, value, code string) bool {
	if isEmpty(value) {
		p.fail(code, field, value)
		return false
	}
	return true
}

// dateFormat enforces a strict YYYY-MM-DD literal and calendar validity, so
// "2021-2-3" and "2021-02-30" both fail.
func (p *pass) dateFormat(field, value, code string) bool {
	if isEmpty(value) {
		return true
	}
	if !datePattern.MatchString(value) {
		p.fail(code, field, value)
		return false
	}
	if _, err := time.Parse(dateLayout, value); err != nil {
		p.fail(code, field, value)
		return false
	}
	return true
}

// inList requires exact, case-sensitive membership.
func (p *pass) inList(field, value string, allowed []string, code string) bool {
	if isEmpty(value) {
		return true
	}
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	p.fail(code, field, value)
	return false
}

// numeric enforces an inclusive [min, max] bound.
func (p *pass) numeric(field, value string, min, max float64, code string) bool {
	if isEmpty(value) {
		return true
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		p.fail(code, field, value)
		return false
	}
	if n < min || n > max {
		p.fail(code, field, value)
		return false
	}
	return true
}

func (p *pass) email(field, value, code string) bool {
	if isEmpty(value) {
		return true
	}
	if _, err := mail.ParseAddress(value); err != nil {
		p.fail(code, field, value)
		return false
	}
	return true
}

// length counts characters, not bytes.
func (p *pass) length(field, value string, exact int, code string) bool {
	if isEmpty(value) {
		return true
	}
	if utf8.RuneCountInString(value) != exact {
		p.fail(code, field, value)
		return false
	}
	return true
}

func (p *pass) pattern(field, value string, re *regexp.Regexp, code string) bool {
	if isEmpty(value) {
		return true
	}
	if !re.MatchString(value) {
		p.fail(code, field, value)
		return false
	}
	return true
}

// parseDate is the lenient parse used by cross-field business rules. A
// value the format phase already flagged simply skips the business check
// rather than double-reporting.
func parseDate(value string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// yearsBetween returns whole years elapsed from birth to now.
func yearsBetween(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	anniversary := birth.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}
