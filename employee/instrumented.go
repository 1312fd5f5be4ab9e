package employee

import (
	"context"
	"time"

	"employee-directory-backend/metrics"
)

// InstrumentedStore records prometheus metrics around another Store.
type InstrumentedStore struct {
	next    Store
	metrics *metrics.Metrics
}

var _ Store = (*InstrumentedStore)(nil)

// Instrument wraps next. With nil metrics next is returned unchanged.
func Instrument(next Store, m *metrics.Metrics) Store {
	if m == nil {
		return next
	}
	return &InstrumentedStore{next: next, metrics: m}
}

func (s *InstrumentedStore) Get(ctx context.Context, id string) (Employee, bool, error) {
	start := time.Now()
	e, found, err := s.next.Get(ctx, id)
	s.metrics.ObserveStore("get", start, err)
	return e, found, err
}

func (s *InstrumentedStore) List(ctx context.Context, filterText string) ([]Employee, error) {
	start := time.Now()
	employees, err := s.next.List(ctx, filterText)
	s.metrics.ObserveStore("list", start, err)
	return employees, err
}

func (s *InstrumentedStore) Put(ctx context.Context, id string, e Employee) error {
	start := time.Now()
	err := s.next.Put(ctx, id, e)
	s.metrics.ObserveStore("put", start, err)
	return err
}
