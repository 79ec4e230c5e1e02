package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// APIMetricsCollector records outbound calls to the backend and the data
// providers. It satisfies api.RequestRecorder.
type APIMetricsCollector struct {
	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	retries      *prometheus.CounterVec
	throttleWait *prometheus.HistogramVec
	breaker      *prometheus.CounterVec
}

// NewAPIMetricsCollector creates a new API metrics collector
func NewAPIMetricsCollector() *APIMetricsCollector {
	opts := func(name, help string) prometheus.Opts {
		return prometheus.Opts{Namespace: namespace, Subsystem: subsystem, Name: name, Help: help}
	}
	return &APIMetricsCollector{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts(opts("api_requests_total",
				"Outbound requests by method, endpoint template and status class")),
			[]string{"method", "endpoint", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "api_request_duration_seconds",
				Help:      "Outbound request latency",
				Buckets:   prometheus.ExponentialBuckets(0.02, 2.5, 8),
			},
			[]string{"method", "endpoint"},
		),
		retries: prometheus.NewCounterVec(
			prometheus.CounterOpts(opts("api_retries_total", "Retried reads by reason")),
			[]string{"method", "endpoint", "reason"},
		),
		throttleWait: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "api_rate_limit_wait_seconds",
				Help:      "Time spent in the client-side rate limiter",
				Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5},
			},
			[]string{"method", "endpoint"},
		),
		breaker: prometheus.NewCounterVec(
			prometheus.CounterOpts(opts("api_breaker_transitions_total", "Circuit breaker state changes")),
			[]string{"from", "to"},
		),
	}
}

// Register registers all API metrics with the Prometheus registry
func (c *APIMetricsCollector) Register() error {
	return registerAll(c.requests, c.duration, c.retries, c.throttleWait, c.breaker)
}

// statusClass folds status codes into 2xx/4xx/5xx; 0 is a transport failure.
func statusClass(code int) string {
	if code <= 0 {
		return "network"
	}
	return strconv.Itoa(code/100) + "xx"
}

// RecordAPIRequest records a finished request
func (c *APIMetricsCollector) RecordAPIRequest(method, endpoint string, statusCode int, duration float64) {
	c.requests.WithLabelValues(method, endpoint, statusClass(statusCode)).Inc()
	c.duration.WithLabelValues(method, endpoint).Observe(duration)
}

// RecordAPIRetry records a retried read
func (c *APIMetricsCollector) RecordAPIRetry(method, endpoint, reason string) {
	c.retries.WithLabelValues(method, endpoint, reason).Inc()
}

// RecordRateLimitWait records time spent waiting for a token
func (c *APIMetricsCollector) RecordRateLimitWait(method, endpoint string, duration float64) {
	c.throttleWait.WithLabelValues(method, endpoint).Observe(duration)
}

// RecordBreakerState records a circuit breaker transition
func (c *APIMetricsCollector) RecordBreakerState(from, to string) {
	c.breaker.WithLabelValues(from, to).Inc()
}
