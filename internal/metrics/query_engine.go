package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	queryEngineRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nearinsight",
		Subsystem: "query_engine",
		Name:      "queries_total",
		Help:      "Count of windowed list queries.",
	}, []string{"query", "status"})
	queryEngineRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "nearinsight",
		Subsystem: "query_engine",
		Name:      "query_duration_seconds",
		Help:      "Duration of windowed list queries.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"query", "status"})
	queryEngineWidenings = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "nearinsight",
		Subsystem: "query_engine",
		Name:      "widenings",
		Help:      "Window widenings needed per query.",
		Buckets:   prometheus.LinearBuckets(0, 1, 16),
	}, []string{"query"})
)

// QueryEngine tracks metrics for the windowed cursor query engine.
type QueryEngine struct {
	query string
}

func NewQueryEngine(query string) *QueryEngine {
	if query == "" {
		query = "unknown"
	}
	return &QueryEngine{query: query}
}

func (m QueryEngine) ObserveQuery(err error, widenings int, started time.Time) {
	status := statusOf(err)
	queryEngineRequestsTotal.WithLabelValues(m.query, status).Inc()
	queryEngineRequestDuration.WithLabelValues(m.query, status).Observe(time.Since(started).Seconds())
	queryEngineWidenings.WithLabelValues(m.query).Observe(float64(widenings))
}
