package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "headergen"

// Job status label values.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Collector holds the run metrics and the registry they live in.
type Collector struct {
	registry       *prometheus.Registry
	artifacts      *prometheus.CounterVec
	jobs           *prometheus.CounterVec
	jobDuration    *prometheus.HistogramVec
	activeJobs     prometheus.Gauge
	lastRunSeconds prometheus.Gauge
}

// NewCollector creates a collector backed by a fresh registry that also
// carries the Go runtime and process collectors.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	c := &Collector{
		registry: reg,
		artifacts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifacts_written_total",
			Help:      "Artifacts written, by group.",
		}, []string{"group"}),
		jobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_total",
			Help:      "Finished worker units, by group and status.",
		}, []string{"group", "status"}),
		jobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "job_duration_seconds",
			Help:      "Wall time of worker units.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 10),
		}, []string{"group"}),
		activeJobs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_jobs",
			Help:      "Worker units currently running.",
		}),
		lastRunSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_duration_seconds",
			Help:      "Wall time of the most recent run.",
		}),
	}
	reg.MustRegister(
		c.artifacts, c.jobs, c.jobDuration, c.activeJobs, c.lastRunSeconds,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	NewMemoryCollector().Register(reg)
	return c
}

// Registry returns the underlying registry, for components adding their own
// metrics.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// JobStarted marks a unit as running.
func (c *Collector) JobStarted(string) {
	c.activeJobs.Inc()
}

// JobFinished records a unit's outcome and duration.
func (c *Collector) JobFinished(group string, d time.Duration, err error) {
	c.activeJobs.Dec()
	status := StatusSuccess
	if err != nil {
		status = StatusFailure
	}
	c.jobs.WithLabelValues(group, status).Inc()
	c.jobDuration.WithLabelValues(group).Observe(d.Seconds())
}

// ArtifactsWritten adds n artifacts to a group's counter.
func (c *Collector) ArtifactsWritten(group string, n int) {
	if n > 0 {
		c.artifacts.WithLabelValues(group).Add(float64(n))
	}
}

// RunFinished records the wall time of a whole run.
func (c *Collector) RunFinished(d time.Duration) {
	c.lastRunSeconds.Set(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// WriteTextfile writes the registry to path in the text exposition format,
// atomically, for the node_exporter textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
