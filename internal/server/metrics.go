package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics tracks HTTP traffic of the output server.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration prometheus.Histogram
	activeRequests  prometheus.Gauge
	handler         http.Handler
}

// NewMetrics registers the HTTP metrics in reg and serves reg. A nil reg
// gets a private registry with the Go runtime collector.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
	}
	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "headergen",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests served, by status code.",
		}, []string{"code"}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "headergen",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "headergen",
			Subsystem: "http",
			Name:      "active_requests",
			Help:      "HTTP requests in flight.",
		}),
	}
	reg.MustRegister(m.requestsTotal, m.requestDuration, m.activeRequests)
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	return m
}

// IncrementActiveRequests marks a request as in flight.
func (m *Metrics) IncrementActiveRequests() { m.activeRequests.Inc() }

// DecrementActiveRequests marks a request as finished.
func (m *Metrics) DecrementActiveRequests() { m.activeRequests.Dec() }

// ObserveRequest records a finished request.
func (m *Metrics) ObserveRequest(code int, d time.Duration) {
	m.requestsTotal.WithLabelValues(strconv.Itoa(code)).Inc()
	m.requestDuration.Observe(d.Seconds())
}

// WritePrometheus serves the exposition.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}
