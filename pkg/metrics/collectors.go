package metrics

import (
	"runtime"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// runtimeGauge is one runtime.MemStats-derived metric: how to read its
// current value and what Prometheus value type to report it as.
type runtimeGauge struct {
	desc      *prometheus.Desc
	valueType prometheus.ValueType
	sample    func(*runtime.MemStats) float64
}

// RuntimeCollector exposes Go runtime stats (goroutines, heap, GC) as a
// prometheus.Collector, driven by a table of samplers rather than one
// struct field per metric.
type RuntimeCollector struct {
	goroutines *prometheus.Desc
	gauges     []runtimeGauge
}

// NewRuntimeCollector builds a RuntimeCollector reporting under
// namespace/subsystem.
func NewRuntimeCollector(namespace, subsystem string) *RuntimeCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystem, name), help, nil, nil)
	}

	return &RuntimeCollector{
		goroutines: desc("runtime_goroutines", "Number of goroutines"),
		gauges: []runtimeGauge{
			{
				desc:      desc("runtime_memory_alloc_bytes", "Bytes allocated and still in use"),
				valueType: prometheus.GaugeValue,
				sample:    func(s *runtime.MemStats) float64 { return float64(s.Alloc) },
			},
			{
				desc:      desc("runtime_memory_total_alloc_bytes", "Total bytes allocated (even if freed)"),
				valueType: prometheus.CounterValue,
				sample:    func(s *runtime.MemStats) float64 { return float64(s.TotalAlloc) },
			},
			{
				desc:      desc("runtime_memory_sys_bytes", "Bytes obtained from system"),
				valueType: prometheus.GaugeValue,
				sample:    func(s *runtime.MemStats) float64 { return float64(s.Sys) },
			},
			{
				desc:      desc("runtime_gc_runs_total", "Total number of completed GC cycles"),
				valueType: prometheus.CounterValue,
				sample:    func(s *runtime.MemStats) float64 { return float64(s.NumGC) },
			},
			{
				desc:      desc("runtime_gc_pause_seconds", "Most recent GC pause duration"),
				valueType: prometheus.GaugeValue,
				sample: func(s *runtime.MemStats) float64 {
					if s.NumGC == 0 {
						return 0
					}
					return float64(s.PauseNs[(s.NumGC-1)%uint32(len(s.PauseNs))]) / 1e9
				},
			},
		},
	}
}

// Describe implements prometheus.Collector.
func (c *RuntimeCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.goroutines
	for _, g := range c.gauges {
		ch <- g.desc
	}
}

// Collect implements prometheus.Collector.
func (c *RuntimeCollector) Collect(ch chan<- prometheus.Metric) {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	ch <- prometheus.MustNewConstMetric(c.goroutines, prometheus.GaugeValue, float64(runtime.NumGoroutine()))
	for _, g := range c.gauges {
		ch <- prometheus.MustNewConstMetric(g.desc, g.valueType, g.sample(&stats))
	}
}

// RequestTracker counts in-flight operations by name, mirroring the count
// into a single Prometheus gauge.
type RequestTracker struct {
	mu       sync.Mutex
	active   map[string]int
	inFlight prometheus.Gauge
}

// NewRequestTracker builds a RequestTracker reporting into inFlight.
func NewRequestTracker(inFlight prometheus.Gauge) *RequestTracker {
	return &RequestTracker{active: make(map[string]int), inFlight: inFlight}
}

// Start marks the beginning of an operation named method.
func (t *RequestTracker) Start(method string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active[method]++
	t.inFlight.Inc()
}

// End marks the completion of an operation named method. It is a no-op if
// method has no in-flight operations recorded.
func (t *RequestTracker) End(method string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active[method] <= 0 {
		return
	}
	t.active[method]--
	t.inFlight.Dec()
}

// Timer measures and reports elapsed wall time against a histogram.
type Timer struct {
	start    time.Time
	observer prometheus.Observer
}

// NewTimer starts a Timer reporting into histogram under labels.
func NewTimer(histogram *prometheus.HistogramVec, labels ...string) *Timer {
	return &Timer{start: time.Now(), observer: histogram.WithLabelValues(labels...)}
}

// ObserveDuration records and returns the elapsed time since NewTimer.
func (t *Timer) ObserveDuration() time.Duration {
	elapsed := time.Since(t.start)
	t.observer.Observe(elapsed.Seconds())
	return elapsed
}
