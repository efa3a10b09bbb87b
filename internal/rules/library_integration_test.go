//go:build integration

package rules_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/suite"

	"preflight/internal/rules"
	"preflight/pkg/testutil/containers"
)

type countingStore struct {
	defs  []rules.Definition
	calls atomic.Int64
}

func (s *countingStore) ListAll(_ context.Context) ([]rules.Definition, error) {
	s.calls.Add(1)
	return s.defs, nil
}

type RedisCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
}

func TestRedisCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

// TestSecondInstanceServesFromCache verifies the write-through: once one
// library instance loads from its store, a fresh instance sharing the same
// Redis never touches its own store.
func (s *RedisCacheSuite) TestSecondInstanceServesFromCache() {
	ctx := context.Background()
	defs := rules.BuiltinDefinitions()

	first := &countingStore{defs: defs}
	lib1 := rules.NewLibrary(first, rules.WithRedis(s.redis.Client))
	_, ok := lib1.Lookup(ctx, "TCSI_STUDENT_FORMAT_101")
	s.Require().True(ok)
	s.Equal(int64(1), first.calls.Load())

	second := &countingStore{defs: nil}
	lib2 := rules.NewLibrary(second, rules.WithRedis(s.redis.Client))
	def, ok := lib2.Lookup(ctx, "TCSI_STUDENT_FORMAT_101")
	s.Require().True(ok)
	s.Equal("padChessn", def.FixFunction)
	s.Equal(int64(0), second.calls.Load(), "cache hit must skip the store")
	s.Equal(lib1.Size(), lib2.Size())
}

// TestRefreshOverwritesCache verifies a forced refresh republishes current
// store contents rather than consulting the cache.
func (s *RedisCacheSuite) TestRefreshOverwritesCache() {
	ctx := context.Background()

	store := &countingStore{defs: rules.BuiltinDefinitions()}
	lib := rules.NewLibrary(store, rules.WithRedis(s.redis.Client))
	_, ok := lib.Lookup(ctx, "TCSI_STUDENT_FORMAT_101")
	s.Require().True(ok)

	store.defs = []rules.Definition{{
		Code:            "TCSI_STUDENT_FORMAT_101",
		Description:     "rewritten",
		DefaultSeverity: rules.SeverityError,
	}}
	s.Require().NoError(lib.Refresh(ctx))

	follower := rules.NewLibrary(&countingStore{}, rules.WithRedis(s.redis.Client))
	def, ok := follower.Lookup(ctx, "TCSI_STUDENT_FORMAT_101")
	s.Require().True(ok)
	s.Equal("rewritten", def.Description)
	s.Equal(1, follower.Size())
}
