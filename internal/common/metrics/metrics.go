// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueriesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_queries_processed_total",
			Help: "Total number of queries that executed successfully",
		},
		[]string{"intent"},
	)

	QueriesRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_queries_rejected_total",
			Help: "Total number of queries rejected before execution",
		},
		[]string{"intent", "error_code"},
	)

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "agent_query_duration_seconds",
			Help: "Duration of query processing in seconds",
		},
		[]string{"intent"},
	)

	MemoryBackfills = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_memory_backfills_total",
			Help: "Number of parameters filled from session memory",
		},
		[]string{"field"},
	)
)
