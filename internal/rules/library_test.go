package rules

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"preflight/internal/records"
	"preflight/pkg/requestcontext"
)

// countingStore wraps a fixed rule set and records how many times it is hit.
type countingStore struct {
	defs  []Definition
	calls atomic.Int64
	fail  atomic.Bool
}

func (c *countingStore) ListAll(ctx context.Context) ([]Definition, error) {
	c.calls.Add(1)
	if c.fail.Load() {
		return nil, errors.New("store unavailable")
	}
	out := make([]Definition, len(c.defs))
	copy(out, c.defs)
	return out, nil
}

type LibrarySuite struct {
	suite.Suite
	store *countingStore
	ctx   context.Context
}

func TestLibrarySuite(t *testing.T) {
	suite.Run(t, new(LibrarySuite))
}

func (s *LibrarySuite) SetupTest() {
	s.store = &countingStore{defs: []Definition{
		{
			Code:            "TCSI_STUDENT_MANDATORY_001",
			FileType:        records.EntityStudent,
			Category:        CategoryMandatory,
			FieldName:       "chessn",
			Description:     "CHESSN is required",
			DefaultSeverity: SeverityError,
		},
		{
			Code:            "TCSI_STUDENT_BUSINESS_205",
			FileType:        records.EntityStudent,
			Category:        CategoryBusinessRule,
			FieldName:       "study_mode",
			DefaultSeverity: SeverityWarning,
		},
	}}
	s.ctx = context.Background()
}

func (s *LibrarySuite) TestLookup() {
	lib := NewLibrary(s.store)

	s.Run("loads on first lookup and serves from snapshot after", func() {
		def, ok := lib.Lookup(s.ctx, "TCSI_STUDENT_MANDATORY_001")
		s.Require().True(ok)
		s.Equal("chessn", def.FieldName)
		s.Equal(SeverityError, def.DefaultSeverity)

		_, ok = lib.Lookup(s.ctx, "TCSI_STUDENT_BUSINESS_205")
		s.True(ok)
		s.EqualValues(1, s.store.calls.Load())
	})

	s.Run("unknown code is a miss, not an error", func() {
		_, ok := lib.Lookup(s.ctx, "TCSI_STUDENT_MANDATORY_999")
		s.False(ok)
	})
}

func (s *LibrarySuite) TestConcurrentLookupsLoadOnce() {
	lib := NewLibrary(s.store)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok := lib.Lookup(s.ctx, "TCSI_STUDENT_MANDATORY_001")
			s.True(ok)
		}()
	}
	wg.Wait()

	s.EqualValues(1, s.store.calls.Load())
}

func (s *LibrarySuite) TestServesStaleSnapshotWhenStoreFails() {
	lib := NewLibrary(s.store, WithTTL(time.Minute))

	loadTime := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(s.ctx, loadTime)
	_, ok := lib.Lookup(ctx, "TCSI_STUDENT_MANDATORY_001")
	s.Require().True(ok)

	// Expire the snapshot, then take the store down.
	s.store.fail.Store(true)
	later := requestcontext.WithTime(s.ctx, loadTime.Add(2*time.Minute))

	def, ok := lib.Lookup(later, "TCSI_STUDENT_MANDATORY_001")
	s.Require().True(ok, "stale snapshot should keep serving")
	s.Equal("chessn", def.FieldName)
}

func (s *LibrarySuite) TestRefreshBypassesTTL() {
	lib := NewLibrary(s.store)

	s.Require().NoError(lib.Refresh(s.ctx))
	s.Equal(2, lib.Size())

	s.store.defs = append(s.store.defs, Definition{
		Code:     "TCSI_COURSE_MANDATORY_001",
		FileType: records.EntityCourse,
		Category: CategoryMandatory,
	})
	s.Require().NoError(lib.Refresh(s.ctx))
	s.Equal(3, lib.Size())
}

func (s *LibrarySuite) TestStaticStoreCoversBuiltins() {
	lib := NewLibrary(NewStaticStore(BuiltinDefinitions()))

	def, ok := lib.Lookup(s.ctx, "TCSI_STAFF_BUSINESS_206")
	s.Require().True(ok)
	s.True(def.AutoFixable)
	s.Equal("fixFullTimeFTE", def.FixFunction)

	def, ok = lib.Lookup(s.ctx, "TCSI_COURSE_FORMAT_102")
	s.Require().True(ok)
	s.Equal("padAscedCode", def.FixFunction)
}

func TestSynthesize(t *testing.T) {
	def := Synthesize("TCSI_UNIT_FORMAT_999", "credit_points")
	if def.DefaultSeverity != SeverityError {
		t.Fatalf("synthesized definitions must default to ERROR, got %s", def.DefaultSeverity)
	}
	if def.AutoFixable {
		t.Fatal("synthesized definitions must never be auto-fixable")
	}
	if def.Code != "TCSI_UNIT_FORMAT_999" || def.FieldName != "credit_points" {
		t.Fatalf("unexpected synthesized definition: %+v", def)
	}
}
