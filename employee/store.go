package employee

import (
	"context"
	"strings"

	"employee-directory-backend/metrics"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// Store is the capability interface for reading and writing employees.
type Store interface {
	// Get looks an employee up by id. found is false, with a nil error,
	// when no record has that id.
	Get(ctx context.Context, id string) (e Employee, found bool, err error)
	// List returns every valid record whose name contains filterText.
	// An empty filterText matches everything.
	List(ctx context.Context, filterText string) ([]Employee, error)
	// Put inserts or overwrites the record stored under id.
	Put(ctx context.Context, id string, e Employee) error
}

// NameMatcher selects how List compares filterText against names.
type NameMatcher int

const (
	// FoldCase matches substrings ignoring case. It is the default for every store.
	FoldCase NameMatcher = iota
	// ExactCase matches substrings byte for byte.
	ExactCase
)

// Match reports whether name contains filterText under m.
func (m NameMatcher) Match(name, filterText string) bool {
	if filterText == "" {
		return true
	}
	if m == ExactCase {
		return strings.Contains(name, filterText)
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(filterText))
}

func (m NameMatcher) String() string {
	if m == ExactCase {
		return "exact-case"
	}
	return "fold-case"
}

// InvalidRecordPolicy decides what happens to stored records that fail to decode.
type InvalidRecordPolicy int

const (
	// FailOnInvalid surfaces the decode error. Point lookups use it.
	FailOnInvalid InvalidRecordPolicy = iota
	// SkipInvalid drops the record and reports it to the skip callback. Scans use it.
	SkipInvalid
)

// DecodeItems decodes items under policy. With SkipInvalid the returned error
// is always nil and onSkip, when set, sees every dropped record's error.
func DecodeItems(items []map[string]types.AttributeValue, policy InvalidRecordPolicy, onSkip func(error)) ([]Employee, error) {
	employees := make([]Employee, 0, len(items))
	for _, item := range items {
		e, err := FromItem(item)
		if err != nil {
			if policy == FailOnInvalid {
				return nil, err
			}
			if onSkip != nil {
				onSkip(err)
			}
			continue
		}
		employees = append(employees, e)
	}
	return employees, nil
}

// Option configures a store.
type Option func(*options)

type options struct {
	logger  *zap.Logger
	matcher NameMatcher
	metrics *metrics.Metrics
}

func newOptions(opts []Option) options {
	o := options{logger: zap.NewNop(), matcher: FoldCase}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger used for skipped records and store activity.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMatcher overrides the FoldCase default.
func WithMatcher(m NameMatcher) Option {
	return func(o *options) { o.matcher = m }
}

// WithMetrics counts records skipped by scans.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}
