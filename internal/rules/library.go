package rules

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"preflight/pkg/requestcontext"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

var (
	libraryLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "preflight_rule_library_lookups_total",
		Help: "Rule library lookups by outcome",
	}, []string{"outcome"}) // hit, miss, synthesized

	libraryRefreshDurationMs = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "preflight_rule_library_refresh_duration_ms",
		Help:    "Latency of rule library reloads in milliseconds",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
)

const (
	// Redis key holding the serialized rule set, shared across instances.
	cacheKey = "preflight:rules"

	// DefaultTTL bounds how stale an in-process rule snapshot may get before
	// the next lookup triggers a reload.
	DefaultTTL = time.Hour
)

// Library serves rule definitions by code. It holds an in-process snapshot
// refreshed from the backing store at most once per TTL, with an optional
// Redis read-through so a fleet of instances reloads the store once, not N
// times. Concurrent refreshes are collapsed into a single load.
//
// A lookup never fails: if the backing store is unreachable the previous
// snapshot keeps serving, and an unknown code is reported as a miss so the
// caller can synthesize a placeholder definition.
type Library struct {
	store  Store
	redis  *redis.Client
	ttl    time.Duration
	logger *slog.Logger

	group singleflight.Group

	mu       sync.RWMutex
	byCode   map[string]Definition
	loadedAt time.Time
}

// LibraryOption configures a Library.
type LibraryOption func(*Library)

// WithLogger sets the logger for refresh diagnostics.
func WithLogger(logger *slog.Logger) LibraryOption {
	return func(l *Library) {
		l.logger = logger
	}
}

// WithRedis enables the shared Redis cache layer. A nil client disables it.
func WithRedis(client *redis.Client) LibraryOption {
	return func(l *Library) {
		l.redis = client
	}
}

// WithTTL overrides the snapshot TTL.
func WithTTL(ttl time.Duration) LibraryOption {
	return func(l *Library) {
		if ttl > 0 {
			l.ttl = ttl
		}
	}
}

// NewLibrary constructs a Library over the given store.
func NewLibrary(store Store, opts ...LibraryOption) *Library {
	l := &Library{
		store:  store,
		ttl:    DefaultTTL,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Lookup returns the definition for a rule code. The second return is false
// when the code is not in the library; callers fall back to Synthesize.
func (l *Library) Lookup(ctx context.Context, code string) (Definition, bool) {
	l.mu.RLock()
	fresh := l.byCode != nil && requestcontext.Now(ctx).Sub(l.loadedAt) < l.ttl
	def, ok := l.byCode[code]
	l.mu.RUnlock()

	if fresh {
		l.observe(ok)
		return def, ok
	}

	if err := l.refresh(ctx); err != nil {
		// Serve the stale snapshot rather than fail the validation run.
		l.logger.WarnContext(ctx, "rule library refresh failed, serving stale snapshot",
			"error", err,
		)
	}

	l.mu.RLock()
	def, ok = l.byCode[code]
	l.mu.RUnlock()
	l.observe(ok)
	return def, ok
}

// Refresh forces a reload from the backing store, bypassing the TTL. The
// Redis layer is overwritten, not consulted, so a forced refresh always
// reflects current store contents.
func (l *Library) Refresh(ctx context.Context) error {
	_, err, _ := l.group.Do("refresh", func() (any, error) {
		defs, err := l.store.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		l.install(ctx, defs)
		l.writeThrough(ctx, defs)
		return nil, nil
	})
	return err
}

// Size reports the number of loaded definitions. Zero before the first load.
func (l *Library) Size() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.byCode)
}

func (l *Library) refresh(ctx context.Context) error {
	_, err, _ := l.group.Do("refresh", func() (any, error) {
		start := time.Now()
		defer func() {
			libraryRefreshDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
		}()

		// Another caller may have completed a refresh while we waited.
		l.mu.RLock()
		fresh := l.byCode != nil && requestcontext.Now(ctx).Sub(l.loadedAt) < l.ttl
		l.mu.RUnlock()
		if fresh {
			return nil, nil
		}

		if defs, ok := l.readThrough(ctx); ok {
			l.install(ctx, defs)
			return nil, nil
		}

		defs, err := l.store.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		l.install(ctx, defs)
		l.writeThrough(ctx, defs)
		return nil, nil
	})
	return err
}

func (l *Library) install(ctx context.Context, defs []Definition) {
	byCode := make(map[string]Definition, len(defs))
	for _, d := range defs {
		byCode[d.Code] = d
	}

	l.mu.Lock()
	l.byCode = byCode
	l.loadedAt = requestcontext.Now(ctx)
	l.mu.Unlock()

	l.logger.InfoContext(ctx, "rule library loaded", "definitions", len(byCode))
}

// readThrough attempts to serve the rule set from the shared Redis cache.
// Any failure is treated as a cache miss.
func (l *Library) readThrough(ctx context.Context) ([]Definition, bool) {
	if l.redis == nil {
		return nil, false
	}

	raw, err := l.redis.Get(ctx, cacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		l.logger.WarnContext(ctx, "rule cache read failed", "error", err)
		return nil, false
	}

	var defs []Definition
	if err := json.Unmarshal(raw, &defs); err != nil {
		l.logger.WarnContext(ctx, "rule cache payload corrupt, ignoring", "error", err)
		return nil, false
	}
	return defs, true
}

// writeThrough publishes the rule set to Redis with the library TTL.
// Best effort: a write failure only costs other instances a store read.
func (l *Library) writeThrough(ctx context.Context, defs []Definition) {
	if l.redis == nil {
		return
	}

	raw, err := json.Marshal(defs)
	if err != nil {
		l.logger.WarnContext(ctx, "rule cache encode failed", "error", err)
		return
	}
	if err := l.redis.Set(ctx, cacheKey, raw, l.ttl).Err(); err != nil {
		l.logger.WarnContext(ctx, "rule cache write failed", "error", err)
	}
}

func (l *Library) observe(hit bool) {
	if hit {
		libraryLookups.WithLabelValues("hit").Inc()
	} else {
		libraryLookups.WithLabelValues("miss").Inc()
	}
}
