package validation

import (
	"context"
	"testing"

	"preflight/internal/rules"
)

// staticLibrary resolves codes against a fixed map without TTL or store
// machinery.
type staticLibrary map[string]rules.Definition

func (l staticLibrary) Lookup(_ context.Context, code string) (rules.Definition, bool) {
	def, ok := l[code]
	return def, ok
}

// builtinLibrary serves the full built-in rule set for evaluator tests.
func builtinLibrary() staticLibrary {
	lib := staticLibrary{}
	for _, def := range rules.BuiltinDefinitions() {
		lib[def.Code] = def
	}
	return lib
}

func newTestPass() *pass {
	return newPass(context.Background(), builtinLibrary(), "rec-1")
}

func TestMandatory(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  bool
	}{
		{"present value passes", "1234567890", true},
		{"empty fails", "", false},
		{"whitespace only fails", "   ", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := newTestPass()
			got := p.mandatory("chessn", tc.value, "TCSI_STUDENT_MANDATORY_001")
			if got != tc.want {
				t.Fatalf("mandatory(%q) = %v, want %v", tc.value, got, tc.want)
			}
			if !tc.want && len(p.errors) != 1 {
				t.Fatalf("expected exactly one finding, got %d", len(p.errors))
			}
		})
	}
}

func TestDateFormat(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"2021-02-28", true},
		{"2021-02-30", false}, // calendar-invalid
		{"2021-2-28", false},  // not the strict literal
		{"28/02/2021", false},
		{"", true}, // optional fields skip when empty
	}
	for _, tc := range cases {
		p := newTestPass()
		if got := p.dateFormat("date_of_birth", tc.value, "TCSI_STUDENT_FORMAT_102"); got != tc.want {
			t.Fatalf("dateFormat(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestNumericInclusiveBounds(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"1.5", false},
		{"0.5", true},
		{"0.01", true}, // inclusive lower bound
		{"1.0", true},  // inclusive upper bound
		{"abc", false},
		{"", true},
	}
	for _, tc := range cases {
		p := newTestPass()
		if got := p.numeric("eftsl", tc.value, 0.01, 1.0, "TCSI_STUDENT_FORMAT_107"); got != tc.want {
			t.Fatalf("numeric(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestInListIsCaseSensitive(t *testing.T) {
	p := newTestPass()
	if p.inList("gender", "m", validGenders, "TCSI_STUDENT_REFERENCE_301") {
		t.Fatal("lowercase code must not match")
	}
	p = newTestPass()
	if !p.inList("gender", "M", validGenders, "TCSI_STUDENT_REFERENCE_301") {
		t.Fatal("exact member must match")
	}
}

func TestLengthCountsCharactersNotBytes(t *testing.T) {
	p := newTestPass()
	if !p.length("last_name", "Müll", 4, "TCSI_STUDENT_FORMAT_101") {
		t.Fatal("4-character value with a multibyte rune should pass an exact-4 check")
	}
}

func TestEmail(t *testing.T) {
	p := newTestPass()
	if p.email("email", "not-an-email", "TCSI_STUDENT_FORMAT_104") {
		t.Fatal("malformed address should fail")
	}
	p = newTestPass()
	if !p.email("email", "student@example.edu.au", "TCSI_STUDENT_FORMAT_104") {
		t.Fatal("well-formed address should pass")
	}
}

func TestSeverityRouting(t *testing.T) {
	p := newTestPass()
	p.fail("TCSI_STUDENT_BUSINESS_205", "study_mode", "F")
	if len(p.errors) != 0 || len(p.warnings) != 1 {
		t.Fatalf("WARNING-severity finding routed wrong: errors=%d warnings=%d", len(p.errors), len(p.warnings))
	}

	p = newTestPass()
	p.fail("TCSI_STUDENT_MANDATORY_001", "chessn", "")
	if len(p.errors) != 1 || len(p.warnings) != 0 {
		t.Fatalf("ERROR-severity finding routed wrong: errors=%d warnings=%d", len(p.errors), len(p.warnings))
	}
}

func TestUnknownCodeSynthesizesError(t *testing.T) {
	p := newPass(context.Background(), staticLibrary{}, "rec-1")
	p.fail("TCSI_STUDENT_MANDATORY_001", "chessn", "")

	if len(p.errors) != 1 {
		t.Fatalf("expected synthesized finding, got %d errors", len(p.errors))
	}
	issue := p.errors[0]
	if issue.Severity != rules.SeverityError {
		t.Fatalf("synthesized severity = %s, want ERROR", issue.Severity)
	}
	if issue.AutoFixable {
		t.Fatal("synthesized findings must not be auto-fixable")
	}
	if issue.Message == "" {
		t.Fatal("synthesized findings carry a placeholder message")
	}
}

func TestResultValidity(t *testing.T) {
	p := newTestPass()
	p.fail("TCSI_STUDENT_BUSINESS_205", "study_mode", "F") // warning only
	res := p.result()
	if !res.Valid {
		t.Fatal("warnings must not affect validity")
	}
	if res.WarningCount() != 1 {
		t.Fatalf("warning count = %d, want 1", res.WarningCount())
	}

	p.fail("TCSI_STUDENT_MANDATORY_001", "chessn", "")
	res = p.result()
	if res.Valid {
		t.Fatal("an error must invalidate the result")
	}
}
