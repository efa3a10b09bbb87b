package records

import (
	"context"
	"sync"

	"preflight/pkg/platform/sentinel"
)

// InMemory keeps all six record shapes behind one mutex. It intentionally
// favors clarity over performance; it backs unit tests and DATABASE_URL-less
// development runs.
type InMemory struct {
	mu           sync.RWMutex
	nextID       int64
	providers    map[int64]*Provider
	courses      map[int64]*Course
	units        map[int64]*Unit
	staff        map[int64]*Staff
	students     map[int64]*Student
	unitAttempts map[int64]*UnitAttempt
}

func NewInMemory() *InMemory {
	return &InMemory{
		nextID:       1,
		providers:    make(map[int64]*Provider),
		courses:      make(map[int64]*Course),
		units:        make(map[int64]*Unit),
		staff:        make(map[int64]*Staff),
		students:     make(map[int64]*Student),
		unitAttempts: make(map[int64]*UnitAttempt),
	}
}

// Seed helpers assign IDs when absent so tests can build fixtures tersely.

func (s *InMemory) AddProvider(p *Provider) *Provider {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.nextID
		s.nextID++
	}
	s.providers[p.ID] = p
	return p
}

func (s *InMemory) AddCourse(c *Course) *Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		c.ID = s.nextID
		s.nextID++
	}
	s.courses[c.ID] = c
	return c
}

func (s *InMemory) AddUnit(u *Unit) *Unit {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		u.ID = s.nextID
		s.nextID++
	}
	s.units[u.ID] = u
	return u
}

func (s *InMemory) AddStaff(st *Staff) *Staff {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st.ID == 0 {
		st.ID = s.nextID
		s.nextID++
	}
	s.staff[st.ID] = st
	return st
}

func (s *InMemory) AddStudent(st *Student) *Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st.ID == 0 {
		st.ID = s.nextID
		s.nextID++
	}
	s.students[st.ID] = st
	return st
}

func (s *InMemory) AddUnitAttempt(ua *UnitAttempt) *UnitAttempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ua.ID == 0 {
		ua.ID = s.nextID
		s.nextID++
	}
	s.unitAttempts[ua.ID] = ua
	return ua
}

func (s *InMemory) FindProvider(_ context.Context, id int64) (*Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.providers[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) FindCourse(_ context.Context, id int64) (*Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.courses[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) FindUnit(_ context.Context, id int64) (*Unit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.units[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) FindStaff(_ context.Context, id int64) (*Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.staff[id]; ok {
		copied := *st
		return &copied, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) FindStudent(_ context.Context, id int64) (*Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.students[id]; ok {
		copied := *st
		return &copied, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) FindUnitAttempt(_ context.Context, id int64) (*UnitAttempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if ua, ok := s.unitAttempts[id]; ok {
		copied := *ua
		return &copied, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) SaveCourse(_ context.Context, course *Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.courses[course.ID]; !ok {
		return sentinel.ErrNotFound
	}
	copied := *course
	s.courses[course.ID] = &copied
	return nil
}

func (s *InMemory) SaveUnit(_ context.Context, unit *Unit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.units[unit.ID]; !ok {
		return sentinel.ErrNotFound
	}
	copied := *unit
	s.units[unit.ID] = &copied
	return nil
}

func (s *InMemory) SaveStaff(_ context.Context, staff *Staff) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.staff[staff.ID]; !ok {
		return sentinel.ErrNotFound
	}
	copied := *staff
	s.staff[staff.ID] = &copied
	return nil
}

func (s *InMemory) SaveStudent(_ context.Context, student *Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.students[student.ID]; !ok {
		return sentinel.ErrNotFound
	}
	copied := *student
	s.students[student.ID] = &copied
	return nil
}

func (s *InMemory) ExistsByNaturalKey(_ context.Context, entity EntityType, key string, excludeID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch entity {
	case EntityProvider:
		for _, p := range s.providers {
			if p.ProviderCode == key && p.ID != excludeID {
				return true, nil
			}
		}
	case EntityCourse:
		for _, c := range s.courses {
			if c.CourseCode == key && c.ID != excludeID {
				return true, nil
			}
		}
	case EntityUnit:
		for _, u := range s.units {
			if u.UnitCode == key && u.ID != excludeID {
				return true, nil
			}
		}
	case EntityStaff:
		for _, st := range s.staff {
			if st.StaffIdentifier == key && st.ID != excludeID {
				return true, nil
			}
		}
	case EntityStudent:
		for _, st := range s.students {
			if st.CHESSN == key && st.ID != excludeID {
				return true, nil
			}
		}
	case EntityUnitAttempt:
		// Unit attempts carry no natural key of their own.
	}
	return false, nil
}
