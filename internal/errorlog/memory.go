package errorlog

import (
	"context"
	"sort"
	"sync"

	"preflight/internal/records"
	"preflight/pkg/platform/sentinel"
	"preflight/pkg/requestcontext"
)

// InMemory is the in-memory error log used in development and tests.
type InMemory struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]*Error
}

func NewInMemory() *InMemory {
	return &InMemory{nextID: 1, rows: make(map[int64]*Error)}
}

func (s *InMemory) Create(ctx context.Context, e *Error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := requestcontext.Now(ctx)
	e.ID = s.nextID
	s.nextID++
	e.CreatedAt = now
	e.UpdatedAt = now
	if e.ResolutionStatus == "" {
		e.ResolutionStatus = StatusPending
	}
	if e.Source == "" {
		e.Source = SourcePreValidation
	}

	cp := *e
	s.rows[e.ID] = &cp
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id int64) (*Error, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.rows[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (s *InMemory) ListByRun(_ context.Context, runID string) ([]*Error, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Error
	for _, row := range s.rows {
		if row.RunID == runID {
			cp := *row
			out = append(out, &cp)
		}
	}
	sortByID(out)
	return out, nil
}

func (s *InMemory) ListByStatus(_ context.Context, status ResolutionStatus) ([]*Error, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Error
	for _, row := range s.rows {
		if row.ResolutionStatus == status {
			cp := *row
			out = append(out, &cp)
		}
	}
	sortByID(out)
	return out, nil
}

func (s *InMemory) ListByRecord(_ context.Context, itemType records.EntityType, itemID int64) ([]*Error, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Error
	for _, row := range s.rows {
		if row.ItemType == itemType && row.ItemID == itemID {
			cp := *row
			out = append(out, &cp)
		}
	}
	sortByID(out)
	return out, nil
}

func (s *InMemory) Update(ctx context.Context, e *Error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[e.ID]; !ok {
		return sentinel.ErrNotFound
	}
	e.UpdatedAt = requestcontext.Now(ctx)
	cp := *e
	s.rows[e.ID] = &cp
	return nil
}

func sortByID(rows []*Error) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
}
