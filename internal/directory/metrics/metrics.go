// Package metrics содержит метрики Prometheus справочника сотрудников.
// Методы безопасны для nil-получателя, чтобы компоненты работали без метрик.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "employeedir"

// Результаты операций со снимком.
const (
	ResultSaved     = "saved"
	ResultDropped   = "dropped"
	ResultLoaded    = "loaded"
	ResultMissing   = "missing"
	ResultMalformed = "malformed"
	ResultError     = "error"
)

var durationBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}

// Metrics набор метрик сервиса.
type Metrics struct {
	Mutations             *prometheus.CounterVec
	Employees             prometheus.Gauge
	ValidationFailures    *prometheus.CounterVec
	SnapshotWrites        *prometheus.CounterVec
	SnapshotWriteDuration prometheus.Histogram
	SnapshotLoads         *prometheus.CounterVec
	CircuitState          prometheus.Gauge
	HTTPRequests          *prometheus.CounterVec
	HTTPDuration          *prometheus.HistogramVec
}

// New регистрирует метрики в reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_mutations_total",
			Help:      "Number of successful store mutations by operation",
		}, []string{"operation"}),
		Employees: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "employees",
			Help:      "Number of employees in the store",
		}),
		ValidationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Number of rejected form submissions by violation code",
		}, []string{"code"}),
		SnapshotWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_writes_total",
			Help:      "Snapshot write attempts by result",
		}, []string{"result"}),
		SnapshotWriteDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "snapshot_write_duration_seconds",
			Help:      "Duration of snapshot writes including retries",
			Buckets:   durationBuckets,
		}),
		SnapshotLoads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_loads_total",
			Help:      "Snapshot loads by result",
		}, []string{"result"}),
		CircuitState: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "snapshot_circuit_state",
			Help:      "Snapshot circuit breaker state (0 closed, 1 open, 2 half-open)",
		}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route",
			Buckets:   durationBuckets,
		}, []string{"method", "route"}),
	}
}

// ObserveMutation учитывает успешную мутацию и новый размер коллекции.
func (m *Metrics) ObserveMutation(operation string, size int) {
	if m == nil {
		return
	}
	m.Mutations.WithLabelValues(operation).Inc()
	m.Employees.Set(float64(size))
}

// ObserveValidationFailure учитывает коды отклоненной формы.
func (m *Metrics) ObserveValidationFailure(codes []string) {
	if m == nil {
		return
	}
	for _, code := range codes {
		m.ValidationFailures.WithLabelValues(code).Inc()
	}
}

// ObserveSnapshotWrite учитывает запись снимка. start - момент начала записи.
func (m *Metrics) ObserveSnapshotWrite(result string, start time.Time) {
	if m == nil {
		return
	}
	m.SnapshotWrites.WithLabelValues(result).Inc()
	m.SnapshotWriteDuration.Observe(time.Since(start).Seconds())
}

// ObserveSnapshotLoad учитывает загрузку снимка.
func (m *Metrics) ObserveSnapshotLoad(result string) {
	if m == nil {
		return
	}
	m.SnapshotLoads.WithLabelValues(result).Inc()
}

// SetCircuitState публикует состояние Circuit Breaker.
func (m *Metrics) SetCircuitState(state int) {
	if m == nil {
		return
	}
	m.CircuitState.Set(float64(state))
}

// ObserveHTTP учитывает обработанный HTTP-запрос.
func (m *Metrics) ObserveHTTP(method, route string, status int, start time.Time) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, statusClass(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	}
	return "1xx"
}
