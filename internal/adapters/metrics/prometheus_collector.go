package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	// Namespace for all metrics
	namespace = "colonial"
	// Subsystem for dashboard metrics
	subsystem = "dashboard"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalMarketCollector is the singleton market search metrics collector
	// Set by SetGlobalMarketCollector() when metrics are enabled
	globalMarketCollector MarketMetricsRecorder

	// globalLiveCollector is the singleton live update metrics collector
	// Set by SetGlobalLiveCollector() when metrics are enabled
	globalLiveCollector LiveMetricsRecorder
)

// MarketMetricsRecorder defines the interface for recording market search
// and ranking events
type MarketMetricsRecorder interface {
	RecordMarketSearch(source string, markets int, duration float64, err error)
	RecordRanking(column string, ranked int, missed int)
	RecordSearchCache(hit bool)
}

// LiveMetricsRecorder defines the interface for recording poller and
// websocket events
type LiveMetricsRecorder interface {
	RecordPollerStarted()
	RecordPollerStopped(reason string)
	RecordPollerTick(changed bool, err error)
	RecordSubscribers(delta int)
}

// InitRegistry initializes the Prometheus registry with the Go runtime and
// process collectors. Should be called once at startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// Reset drops the registry and global collectors. Used by tests.
func Reset() {
	Registry = nil
	globalMarketCollector = nil
	globalLiveCollector = nil
}

// SetGlobalMarketCollector sets the global market metrics collector
func SetGlobalMarketCollector(collector MarketMetricsRecorder) {
	globalMarketCollector = collector
}

// RecordMarketSearch records a market search globally
func RecordMarketSearch(source string, markets int, duration float64, err error) {
	if globalMarketCollector != nil {
		globalMarketCollector.RecordMarketSearch(source, markets, duration, err)
	}
}

// RecordRanking records a ranking pass globally
func RecordRanking(column string, ranked int, missed int) {
	if globalMarketCollector != nil {
		globalMarketCollector.RecordRanking(column, ranked, missed)
	}
}

// RecordSearchCache records a memo or redis lookup globally
func RecordSearchCache(hit bool) {
	if globalMarketCollector != nil {
		globalMarketCollector.RecordSearchCache(hit)
	}
}

// SetGlobalLiveCollector sets the global live update metrics collector
func SetGlobalLiveCollector(collector LiveMetricsRecorder) {
	globalLiveCollector = collector
}

// RecordPollerStarted records a poller start globally
func RecordPollerStarted() {
	if globalLiveCollector != nil {
		globalLiveCollector.RecordPollerStarted()
	}
}

// RecordPollerStopped records why a poller stopped globally
func RecordPollerStopped(reason string) {
	if globalLiveCollector != nil {
		globalLiveCollector.RecordPollerStopped(reason)
	}
}

// RecordPollerTick records a poll result globally
func RecordPollerTick(changed bool, err error) {
	if globalLiveCollector != nil {
		globalLiveCollector.RecordPollerTick(changed, err)
	}
}

// RecordSubscribers adjusts the websocket subscriber gauge globally
func RecordSubscribers(delta int) {
	if globalLiveCollector != nil {
		globalLiveCollector.RecordSubscribers(delta)
	}
}

// registerAll registers collectors, tolerating a nil registry
func registerAll(cs ...prometheus.Collector) error {
	if Registry == nil {
		return nil // Metrics not enabled
	}
	for _, c := range cs {
		if err := Registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}
