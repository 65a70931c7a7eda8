package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"employeedir/internal/directory/metrics"
)

func TestMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.ObserveMutation("add", 3)
	m.ObserveMutation("add", 4)
	m.ObserveValidationFailure([]string{"emailInvalid", "phoneInvalid", "emailInvalid"})
	m.ObserveSnapshotWrite(metrics.ResultSaved, time.Now())
	m.ObserveSnapshotLoad(metrics.ResultMissing)
	m.SetCircuitState(1)
	m.ObserveHTTP("GET", "/api/v1/employees", 404, time.Now())

	assert.InDelta(t, 2, testutil.ToFloat64(m.Mutations.WithLabelValues("add")), 0)
	assert.InDelta(t, 4, testutil.ToFloat64(m.Employees), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.ValidationFailures.WithLabelValues("emailInvalid")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.SnapshotWrites.WithLabelValues(metrics.ResultSaved)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.SnapshotLoads.WithLabelValues(metrics.ResultMissing)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.CircuitState), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/api/v1/employees", "4xx")), 0)
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *metrics.Metrics

	assert.NotPanics(t, func() {
		m.ObserveMutation("add", 1)
		m.ObserveValidationFailure([]string{"x"})
		m.ObserveSnapshotWrite(metrics.ResultDropped, time.Now())
		m.ObserveSnapshotLoad(metrics.ResultError)
		m.SetCircuitState(0)
		m.ObserveHTTP("GET", "/", 200, time.Now())
	})
}

func TestMetrics_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		metrics.New(prometheus.NewRegistry())
		metrics.New(prometheus.NewRegistry())
	})
}
