package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// LiveMetricsCollector handles poller and websocket metrics
type LiveMetricsCollector struct {
	pollersRunning   prometheus.Gauge
	pollerStopsTotal *prometheus.CounterVec
	pollerTicksTotal *prometheus.CounterVec
	liveSubscribers  prometheus.Gauge
}

// NewLiveMetricsCollector creates a new live update metrics collector
func NewLiveMetricsCollector() *LiveMetricsCollector {
	return &LiveMetricsCollector{
		// Running pollers gauge
		pollersRunning: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "pollers_running",
				Help:      "Number of currently running project pollers",
			},
		),

		// Poller stop reasons
		pollerStopsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "poller_stops_total",
				Help:      "Total number of poller stops by reason",
			},
			[]string{"reason"},
		),

		// Poll results
		pollerTicksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "poller_ticks_total",
				Help:      "Total number of project polls by result",
			},
			[]string{"result"},
		),

		// Websocket subscribers
		liveSubscribers: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "live_subscribers",
				Help:      "Number of connected live update subscribers",
			},
		),
	}
}

// Register registers all live metrics with the Prometheus registry
func (c *LiveMetricsCollector) Register() error {
	return registerAll(
		c.pollersRunning,
		c.pollerStopsTotal,
		c.pollerTicksTotal,
		c.liveSubscribers,
	)
}

func (c *LiveMetricsCollector) RecordPollerStarted() {
	c.pollersRunning.Inc()
}

func (c *LiveMetricsCollector) RecordPollerStopped(reason string) {
	c.pollersRunning.Dec()
	c.pollerStopsTotal.WithLabelValues(reason).Inc()
}

func (c *LiveMetricsCollector) RecordPollerTick(changed bool, err error) {
	result := "unchanged"
	switch {
	case err != nil:
		result = "error"
	case changed:
		result = "changed"
	}
	c.pollerTicksTotal.WithLabelValues(result).Inc()
}

func (c *LiveMetricsCollector) RecordSubscribers(delta int) {
	c.liveSubscribers.Add(float64(delta))
}
