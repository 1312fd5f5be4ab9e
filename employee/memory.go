package employee

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// MemoryStore keeps employees in process memory. It is meant for local development.
type MemoryStore struct {
	mu        sync.RWMutex
	employees map[string]Employee
	matcher   NameMatcher
	logger    *zap.Logger
}

var _ Store = (*MemoryStore)(nil)

// SeedEmployees returns the records the dev server starts with.
func SeedEmployees() []Employee {
	return []Employee{
		{ID: "1", Name: "Jane Doe", Age: 22, Department: "エンジニアリング", Position: "ソフトウェアエンジニア"},
		{ID: "2", Name: "John Smith", Age: 28, Department: "マーケティング", Position: "マーケティングマネージャー"},
		{ID: "3", Name: "山田 太郎", Age: 27, Department: "デザイン", Position: "UI/UX デザイナー"},
	}
}

// NewMemoryStore creates a store holding seed, keyed by each record's ID.
func NewMemoryStore(seed []Employee, opts ...Option) *MemoryStore {
	o := newOptions(opts)
	s := &MemoryStore{
		employees: make(map[string]Employee, len(seed)),
		matcher:   o.matcher,
		logger:    o.logger,
	}
	for _, e := range seed {
		s.employees[e.ID] = e
	}
	return s
}

func (s *MemoryStore) Get(_ context.Context, id string) (Employee, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.employees[id]
	return e, ok, nil
}

// List returns matches ordered by id.
func (s *MemoryStore) List(_ context.Context, filterText string) ([]Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	employees := make([]Employee, 0, len(s.employees))
	for _, e := range s.employees {
		if s.matcher.Match(e.Name, filterText) {
			employees = append(employees, e)
		}
	}
	sort.Slice(employees, func(i, j int) bool { return employees[i].ID < employees[j].ID })
	return employees, nil
}

func (s *MemoryStore) Put(_ context.Context, id string, e Employee) error {
	e.ID = id

	s.mu.Lock()
	s.employees[id] = e
	size := len(s.employees)
	s.mu.Unlock()

	s.logger.Debug("Stored employee", zap.String("id", id), zap.Int("employees", size))
	return nil
}
