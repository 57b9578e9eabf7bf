// Package metrics exposes Prometheus collectors for backend calls and the
// web front end.
package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/seekr/internal/core/domain"
)

const namespace = "seekr"

// Outcome labels for backend calls.
const (
	StatusOK          = "ok"
	StatusTransport   = "transport_error"
	StatusApplication = "application_error"
	StatusError       = "error"
)

// Metrics holds the collectors registered for one process.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	backendCalls    *prometheus.CounterVec
	backendDuration *prometheus.HistogramVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	gatherer        prometheus.Gatherer
}

// New registers the collectors on reg. Collectors already registered by an
// earlier call are reused. gatherer may be nil when /metrics is not served.
func New(reg prometheus.Registerer, gatherer prometheus.Gatherer) (*Metrics, error) {
	m := &Metrics{
		backendCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "backend",
			Name:      "requests_total",
			Help:      "Backend requests by operation and outcome.",
		}, []string{"operation", "status"}),
		backendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "backend",
			Name:      "request_duration_seconds",
			Help:      "Backend request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests served.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"method", "path", "status"}),
		gatherer: gatherer,
	}

	if err := registerOrReuse(reg, &m.backendCalls); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.backendDuration); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.httpRequests); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.httpDuration); err != nil {
		return nil, err
	}
	return m, nil
}

// NewRegistry creates a fresh registry with Go and process collectors and
// registers Metrics on it.
func NewRegistry() (*Metrics, *prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m, err := New(reg, reg)
	if err != nil {
		return nil, nil, err
	}
	return m, reg, nil
}

// registerOrReuse registers a collector or reuses an existing one.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("metric already registered with incompatible type: %T", are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("register metric: %w", err)
	}
	return nil
}

// ObserveBackend records one backend call started at start.
func (m *Metrics) ObserveBackend(op string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.backendCalls.WithLabelValues(op, Classify(err)).Inc()
	m.backendDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// Classify maps an error to a backend outcome label.
func Classify(err error) string {
	var te *domain.TransportError
	var ae *domain.ApplicationError
	switch {
	case err == nil:
		return StatusOK
	case errors.As(err, &te):
		return StatusTransport
	case errors.As(err, &ae):
		return StatusApplication
	default:
		return StatusError
	}
}

// Handler serves the gathered metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
