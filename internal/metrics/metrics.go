// Package metrics registers and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
// Each instance carries its own registry so tests can build as many as
// they need without duplicate-registration panics.
type Metrics struct {
	registry *prometheus.Registry

	BucketListOps   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New creates a registry and registers all application metrics on it.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		BucketListOps: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "placepin_bucketlist_operations_total",
			Help: "Bucket-list operations by type and outcome.",
		}, []string{"op", "outcome"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "placepin_http_request_duration_seconds",
			Help:    "HTTP request latency by method and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "status"}),
	}
}

// ObserveOp records one bucket-list operation outcome
// ("ok", "not_found", "forbidden", "conflict" or "error").
func (m *Metrics) ObserveOp(op, outcome string) {
	m.BucketListOps.WithLabelValues(op, outcome).Inc()
}

// Middleware records request duration for every handled request.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		m.RequestDuration.
			WithLabelValues(r.Method, strconv.Itoa(rec.status)).
			Observe(time.Since(start).Seconds())
	})
}

// Handler exposes this instance's registry for scraping.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
