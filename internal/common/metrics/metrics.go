// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insight_cache_lookups_total",
			Help: "Cache and store lookups by layer and outcome",
		},
		[]string{"layer", "outcome"},
	)

	ConnectorFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insight_connector_fetches_total",
			Help: "Connector fetch attempts by platform and outcome",
		},
		[]string{"platform", "outcome"},
	)

	ConnectorSignals = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insight_connector_signals_total",
			Help: "Signals returned by each connector",
		},
		[]string{"platform"},
	)

	PipelineDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "insight_pipeline_duration_seconds",
			Help: "Duration of a full insight build in seconds",
		},
		[]string{"trigger"},
	)

	InsightsComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insights_computed_total",
			Help: "Insights computed by risk tier",
		},
		[]string{"risk_tier"},
	)

	PersistenceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insight_persistence_failures_total",
			Help: "Cache/store operations that failed and were absorbed",
		},
		[]string{"layer", "operation"},
	)
)
