package observe

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "kite_forecast"

// Metrics holds the Prometheus collectors of the forecast service.
type Metrics struct {
	FeedRequests *prometheus.CounterVec   // labels: feed, outcome={success,error}
	FeedDuration *prometheus.HistogramVec // labels: feed
	FeedCache    *prometheus.CounterVec   // labels: feed, result={hit,miss,stale}

	RenderDuration prometheus.Histogram
	Columns        prometheus.Gauge
	TideEvents     *prometheus.GaugeVec // labels: kind={observed,predicted}
	CurrentIndex   prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
// Pass prometheus.NewRegistry() in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		FeedRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_requests_total",
			Help:      "Upstream feed fetches by feed and outcome.",
		}, []string{"feed", "outcome"}),
		FeedDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "feed_duration_seconds",
			Help:      "Upstream feed fetch duration, cache included.",
			Buckets:   []float64{0.005, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"feed"}),
		FeedCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_cache_total",
			Help:      "Payload cache outcomes by feed.",
		}, []string{"feed", "result"}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Duration of one render pass.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		Columns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dashboard_columns",
			Help:      "Forecast columns in the latest dashboard.",
		}),
		TideEvents: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tide_events",
			Help:      "Tide events in the latest extended series.",
		}, []string{"kind"}),
		CurrentIndex: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "current_kiteability_index",
			Help:      "Kiteability Index of the column scoring now.",
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.FeedRequests,
			m.FeedDuration,
			m.FeedCache,
			m.RenderDuration,
			m.Columns,
			m.TideEvents,
			m.CurrentIndex,
		)
	}

	return m
}

// ObserveFeed records one fetch of feed.
func (m *Metrics) ObserveFeed(feed string, took time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.FeedRequests.WithLabelValues(feed, outcome).Inc()
	m.FeedDuration.WithLabelValues(feed).Observe(took.Seconds())
}

// ObserveCache records a cache outcome such as "hit" or "stale".
func (m *Metrics) ObserveCache(feed, result string) {
	if m == nil || result == "" {
		return
	}
	m.FeedCache.WithLabelValues(feed, result).Inc()
}

// ObserveRender records the shape of a finished render pass.
func (m *Metrics) ObserveRender(took time.Duration, columns, observed, predicted int, currentIndex *float64) {
	if m == nil {
		return
	}
	m.RenderDuration.Observe(took.Seconds())
	m.Columns.Set(float64(columns))
	m.TideEvents.WithLabelValues("observed").Set(float64(observed))
	m.TideEvents.WithLabelValues("predicted").Set(float64(predicted))
	if currentIndex != nil {
		m.CurrentIndex.Set(*currentIndex)
	}
}
