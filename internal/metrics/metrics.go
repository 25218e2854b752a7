// Package metrics exposes the service's Prometheus instruments on a private
// registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "binpacker"

// Metrics groups the HTTP and solver instruments.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	SolvesTotal      *prometheus.CounterVec
	SolveDuration    prometheus.Histogram
	SolutionBins     prometheus.Histogram
	BinsAboveBound   prometheus.Histogram
	BatchFilesActive prometheus.Gauge
}

// New builds a registry with Go runtime and process collectors plus the
// service instruments.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{registry: reg}

	m.HTTPRequestsTotal = m.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	m.HTTPRequestDuration = m.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	m.SolvesTotal = m.NewCounterVec(prometheus.CounterOpts{
		Name: "solves_total",
		Help: "Solver runs by outcome.",
	}, []string{"outcome"})

	m.SolveDuration = m.newHistogram(prometheus.HistogramOpts{
		Name:    "solve_duration_seconds",
		Help:    "Wall time of a solver run.",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 14),
	})

	m.SolutionBins = m.newHistogram(prometheus.HistogramOpts{
		Name:    "solution_bins",
		Help:    "Number of bins in returned solutions.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	})

	m.BinsAboveBound = m.newHistogram(prometheus.HistogramOpts{
		Name:    "solution_bins_above_lower_bound",
		Help:    "Bins used beyond the ceil(total/capacity) lower bound.",
		Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
	})

	m.BatchFilesActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "batch_files_active",
		Help:      "Instance files currently being solved by the batch runner.",
	})
	reg.MustRegister(m.BatchFilesActive)

	return m
}

// NewCounterVec creates and registers a counter under the service namespace.
func (m *Metrics) NewCounterVec(opts prometheus.CounterOpts, labelNames []string) *prometheus.CounterVec {
	opts.Namespace = namespace
	cv := prometheus.NewCounterVec(opts, labelNames)
	m.registry.MustRegister(cv)
	return cv
}

// NewHistogramVec creates and registers a histogram under the service namespace.
func (m *Metrics) NewHistogramVec(opts prometheus.HistogramOpts, labelNames []string) *prometheus.HistogramVec {
	opts.Namespace = namespace
	hv := prometheus.NewHistogramVec(opts, labelNames)
	m.registry.MustRegister(hv)
	return hv
}

func (m *Metrics) newHistogram(opts prometheus.HistogramOpts) prometheus.Histogram {
	opts.Namespace = namespace
	h := prometheus.NewHistogram(opts)
	m.registry.MustRegister(h)
	return h
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveSolve records a finished solve. A nil receiver is a no-op so
// callers can run without metrics.
func (m *Metrics) ObserveSolve(bins, lowerBound int, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.SolvesTotal.WithLabelValues("error").Inc()
		return
	}
	m.SolvesTotal.WithLabelValues("ok").Inc()
	m.SolveDuration.Observe(elapsed.Seconds())
	m.SolutionBins.Observe(float64(bins))
	m.BinsAboveBound.Observe(float64(bins - lowerBound))
}

// ObserveRequest records one HTTP exchange.
func (m *Metrics) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// BatchStarted and BatchFinished bracket one file of a batch run.
func (m *Metrics) BatchStarted() {
	if m != nil {
		m.BatchFilesActive.Inc()
	}
}

func (m *Metrics) BatchFinished() {
	if m != nil {
		m.BatchFilesActive.Dec()
	}
}
