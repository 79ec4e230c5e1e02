package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// MarketMetricsCollector handles market search, cache and ranking metrics
type MarketMetricsCollector struct {
	// Search metrics
	marketSearchesTotal   *prometheus.CounterVec
	marketSearchDuration  *prometheus.HistogramVec
	marketSearchResults   *prometheus.HistogramVec
	marketSearchCacheHits *prometheus.CounterVec

	// Ranking metrics
	marketRankingsTotal *prometheus.CounterVec
	missedCommodities   prometheus.Histogram
}

// NewMarketMetricsCollector creates a new market metrics collector
func NewMarketMetricsCollector() *MarketMetricsCollector {
	return &MarketMetricsCollector{
		marketSearchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "market_searches_total",
				Help:      "Total number of market searches by source and status",
			},
			[]string{"source", "status"},
		),

		marketSearchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "market_search_duration_seconds",
				Help:      "Market search duration distribution",
				Buckets:   []float64{0.05, 0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
			},
			[]string{"source"},
		),

		marketSearchResults: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "market_search_results",
				Help:      "Number of markets returned per search",
				Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
			},
			[]string{"source"},
		),

		marketSearchCacheHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "market_search_cache_total",
				Help:      "Market search cache lookups by result",
			},
			[]string{"result"},
		),

		marketRankingsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "market_rankings_total",
				Help:      "Total number of ranking passes by sort column",
			},
			[]string{"column"},
		),

		missedCommodities: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "market_missed_commodities",
				Help:      "Needed commodities no searched market lists",
				Buckets:   []float64{0, 1, 2, 5, 10, 20},
			},
		),
	}
}

// Register registers all market metrics with the Prometheus registry
func (c *MarketMetricsCollector) Register() error {
	return registerAll(
		c.marketSearchesTotal,
		c.marketSearchDuration,
		c.marketSearchResults,
		c.marketSearchCacheHits,
		c.marketRankingsTotal,
		c.missedCommodities,
	)
}

// RecordMarketSearch records a completed search
func (c *MarketMetricsCollector) RecordMarketSearch(source string, markets int, duration float64, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.marketSearchesTotal.WithLabelValues(source, status).Inc()
	c.marketSearchDuration.WithLabelValues(source).Observe(duration)
	if err == nil {
		c.marketSearchResults.WithLabelValues(source).Observe(float64(markets))
	}
}

// RecordRanking records one ranking pass
func (c *MarketMetricsCollector) RecordRanking(column string, ranked int, missed int) {
	c.marketRankingsTotal.WithLabelValues(column).Inc()
	c.missedCommodities.Observe(float64(missed))
}

// RecordSearchCache records a cache lookup
func (c *MarketMetricsCollector) RecordSearchCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	c.marketSearchCacheHits.WithLabelValues(result).Inc()
}
