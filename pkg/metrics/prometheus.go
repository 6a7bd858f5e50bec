package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the global metrics container for the solver and its CLI runner.
type Metrics struct {
	// Solve metrics
	SolveOperationsTotal *prometheus.CounterVec
	SolveDuration        *prometheus.HistogramVec
	TotalFlowPushed      *prometheus.GaugeVec
	UnsatisfiedDemand    *prometheus.GaugeVec
	JobStationsTotal     *prometheus.HistogramVec
	JobEdgesTotal        *prometheus.HistogramVec
	Pass1Iterations      *prometheus.HistogramVec
	Pass2Iterations      *prometheus.HistogramVec
	CyclesEliminated     *prometheus.HistogramVec

	// Cache metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// System metrics
	MemoryUsage *prometheus.GaugeVec
	Goroutines  prometheus.Gauge

	// Service information
	ServiceInfo *prometheus.GaugeVec
}

var defaultMetrics *Metrics

// InitMetrics registers and returns the metrics container under namespace/subsystem.
func InitMetrics(namespace, subsystem string) *Metrics {
	m := &Metrics{
		SolveOperationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "solve_operations_total",
				Help:      "Total number of job solve operations",
			},
			[]string{"status"},
		),

		SolveDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "solve_duration_seconds",
				Help:      "Duration of job solve operations",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"status"},
		),

		TotalFlowPushed: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "total_flow_pushed",
				Help:      "Total flow pushed by the last solved job",
			},
			[]string{"job"},
		),

		UnsatisfiedDemand: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "unsatisfied_demand",
				Help:      "Unsatisfied demand remaining after the last solved job",
			},
			[]string{"job"},
		),

		JobStationsTotal: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "job_stations_total",
				Help:      "Number of stations in solved jobs",
				Buckets:   []float64{10, 50, 100, 500, 1000, 5000, 10000},
			},
			[]string{"operation"},
		),

		JobEdgesTotal: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "job_edges_total",
				Help:      "Number of edges in solved jobs",
				Buckets:   []float64{20, 100, 500, 1000, 5000, 10000, 50000},
			},
			[]string{"operation"},
		),

		Pass1Iterations: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "pass1_iterations",
				Help:      "Number of saturating-pass iterations per solve",
				Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250},
			},
			[]string{"job"},
		),

		Pass2Iterations: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "pass2_iterations",
				Help:      "Number of forced-assignment pass iterations per solve",
				Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250},
			},
			[]string{"job"},
		),

		CyclesEliminated: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cycles_eliminated",
				Help:      "Number of flow cycles eliminated per solve",
				Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
			},
			[]string{"job"},
		),

		CacheHitsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cache_hits_total",
				Help:      "Total number of solve-result cache hits",
			},
			[]string{"cache"},
		),

		CacheMissesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cache_misses_total",
				Help:      "Total number of solve-result cache misses",
			},
			[]string{"cache"},
		),

		MemoryUsage: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "memory_usage_bytes",
				Help:      "Current memory usage",
			},
			[]string{"type"},
		),

		Goroutines: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "goroutines",
				Help:      "Current number of goroutines",
			},
		),

		ServiceInfo: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "service_info",
				Help:      "Service information",
			},
			[]string{"version", "environment"},
		),
	}

	prometheus.MustRegister(NewRuntimeCollector(namespace, subsystem))

	defaultMetrics = m
	return m
}

// Get returns the global metrics container, initializing a default one on first use.
func Get() *Metrics {
	if defaultMetrics == nil {
		return InitMetrics("mcfsolve", "solver")
	}
	return defaultMetrics
}

// RecordSolve records the outcome of a single job solve.
func (m *Metrics) RecordSolve(jobID string, success bool, duration time.Duration, pass1Iter, pass2Iter, cyclesEliminated int, totalFlowPushed, unsatisfiedDemand uint64) {
	status := "success"
	if !success {
		status = "error"
	}

	m.SolveOperationsTotal.WithLabelValues(status).Inc()
	m.SolveDuration.WithLabelValues(status).Observe(duration.Seconds())
	m.TotalFlowPushed.WithLabelValues(jobID).Set(float64(totalFlowPushed))
	m.UnsatisfiedDemand.WithLabelValues(jobID).Set(float64(unsatisfiedDemand))
	m.Pass1Iterations.WithLabelValues(jobID).Observe(float64(pass1Iter))
	m.Pass2Iterations.WithLabelValues(jobID).Observe(float64(pass2Iter))
	m.CyclesEliminated.WithLabelValues(jobID).Observe(float64(cyclesEliminated))
}

// RecordJobSize records the station/edge counts of a job passed through operation.
func (m *Metrics) RecordJobSize(operation string, stations, edges int) {
	m.JobStationsTotal.WithLabelValues(operation).Observe(float64(stations))
	m.JobEdgesTotal.WithLabelValues(operation).Observe(float64(edges))
}

// RecordCacheHit records a solve-result cache hit for the named cache backend.
func (m *Metrics) RecordCacheHit(cache string) {
	m.CacheHitsTotal.WithLabelValues(cache).Inc()
}

// RecordCacheMiss records a solve-result cache miss for the named cache backend.
func (m *Metrics) RecordCacheMiss(cache string) {
	m.CacheMissesTotal.WithLabelValues(cache).Inc()
}

// SetServiceInfo sets the informational service gauge.
func (m *Metrics) SetServiceInfo(version, environment string) {
	m.ServiceInfo.WithLabelValues(version, environment).Set(1)
}

// Handler returns the HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// StartMetricsServer starts an HTTP server exposing /metrics and /health.
func StartMetricsServer(port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK")) //nolint:errcheck // health endpoint, write failure is not actionable
	})

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return server.ListenAndServe()
}
