package metrics_test

import (
	"errors"
	"testing"
	"time"

	"employee-directory-backend/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewMetrics(_ *testing.T) {
	reg := prometheus.NewRegistry()

	_ = metrics.NewMetrics(reg)
}

func TestObserveStore(t *testing.T) {
	m := metrics.NewMetrics(prometheus.NewRegistry())

	m.ObserveStore("get", time.Now(), nil)
	m.ObserveStore("get", time.Now(), errors.New("boom"))
	m.ObserveStore("list", time.Now(), nil)

	assert.InDelta(t, 1, testutil.ToFloat64(m.StoreOperations.WithLabelValues("get", "success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.StoreOperations.WithLabelValues("get", "failure")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.StoreOperations.WithLabelValues("list", "success")), 0)
}

func TestObserveRequestAndSkipped(t *testing.T) {
	m := metrics.NewMetrics(prometheus.NewRegistry())

	m.ObserveRequest("GET", "/api/employees", 200, time.Now())
	m.RecordSkipped()
	m.RecordSkipped()

	assert.InDelta(t, 1, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/api/employees", "200")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.SkippedRecords), 0)
}

func TestNilMetricsAreNoOps(_ *testing.T) {
	var m *metrics.Metrics

	m.ObserveRequest("GET", "/", 200, time.Now())
	m.ObserveStore("put", time.Now(), nil)
	m.RecordSkipped()
}
