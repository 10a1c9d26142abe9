package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "conditions_dashboard"

// Metrics holds the Prometheus collectors for the dashboard build and server.
type Metrics struct {
	RowsLoaded     prometheus.Gauge
	DashboardReady prometheus.Gauge
	BuildDuration  prometheus.Histogram

	AggregateGroups *prometheus.GaugeVec   // labels: table
	PageRequests    *prometheus.CounterVec // labels: route

	AggregatesPublished prometheus.Counter
	PublishErrors       prometheus.Counter
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rows_loaded",
			Help:      "Observation rows read from the dataset at startup.",
		}),
		DashboardReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ready",
			Help:      "1 once the dashboard page has been built, 0 before.",
		}),
		BuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Duration of the load-aggregate-render build.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		AggregateGroups: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "aggregate_groups",
			Help:      "Distinct key tuples per aggregate table.",
		}, []string{"table"}),
		PageRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "page_requests_total",
			Help:      "Dashboard page requests served.",
		}, []string{"route"}),
		AggregatesPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "aggregates_published_total",
			Help:      "Aggregate records written to the Kafka topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_errors_total",
			Help:      "Failed attempts to publish aggregates to Kafka.",
		}),
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RowsLoaded,
		m.DashboardReady,
		m.BuildDuration,
		m.AggregateGroups,
		m.PageRequests,
		m.AggregatesPublished,
		m.PublishErrors,
	)
	return m
}

// NewMetricsForTesting creates Metrics that are not registered anywhere, so
// tests can build as many as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
