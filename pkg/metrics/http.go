// Package metrics holds the Prometheus collectors recorded for every HTTP request.
//
// Collectors are registered on a caller-supplied prometheus.Registerer instead
// of the global default registry, so tests can create isolated instances.
package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	requestsTotalName    = "http_requests_total"
	requestLatencyName   = "http_request_latency_seconds"
	requestsInFlightName = "http_requests_in_flight"
)

// HTTPMetrics bundles the request counter, latency histogram and in-flight gauge.
// All collectors are safe for concurrent use.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

// NewHTTPMetrics creates the collectors and registers them on reg.
func NewHTTPMetrics(reg prometheus.Registerer) (*HTTPMetrics, error) {
	m := &HTTPMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: requestsTotalName,
			Help: "Total HTTP requests",
		}, []string{"method", "path", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    requestLatencyName,
			Help:    "Request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: requestsInFlightName,
			Help: "In-flight HTTP requests",
		}),
	}

	for _, c := range []prometheus.Collector{m.requests, m.latency, m.inFlight} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register http metrics: %w", err)
		}
	}
	return m, nil
}

// NewRegistry returns a registry pre-loaded with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// RequestStarted increments the in-flight gauge. Every call must be paired
// with RequestFinished.
func (m *HTTPMetrics) RequestStarted() {
	m.inFlight.Inc()
}

// RequestFinished decrements the in-flight gauge.
func (m *HTTPMetrics) RequestFinished() {
	m.inFlight.Dec()
}

// Observe records one completed request.
func (m *HTTPMetrics) Observe(method, path string, status int, elapsed time.Duration) {
	m.latency.WithLabelValues(method, path).Observe(elapsed.Seconds())
	m.requests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}
