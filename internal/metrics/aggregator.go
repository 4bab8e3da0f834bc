package metrics

import (
	"time"

	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	aggregatorSyncTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nearinsight",
		Subsystem: "aggregator",
		Name:      "sync_total",
		Help:      "Count of daily rollup sync runs.",
	}, []string{"network", "status"})
	aggregatorSyncDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "nearinsight",
		Subsystem: "aggregator",
		Name:      "sync_duration_seconds",
		Help:      "Duration of daily rollup sync runs.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})
	aggregatorBlocksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nearinsight",
		Subsystem: "aggregator",
		Name:      "blocks_total",
		Help:      "Blocks folded into daily rollups.",
	}, []string{"network"})
)

// Aggregator tracks metrics for the daily rollup job.
type Aggregator struct {
	network model.Network
}

func NewAggregator(network model.Network) *Aggregator {
	if network == "" {
		network = "unknown"
	}
	return &Aggregator{network: network}
}

func (m Aggregator) ObserveSync(err error, blocks uint64, started time.Time) {
	status := statusOf(err)
	aggregatorSyncTotal.WithLabelValues(string(m.network), status).Inc()
	aggregatorSyncDuration.WithLabelValues(string(m.network), status).Observe(time.Since(started).Seconds())
	aggregatorBlocksTotal.WithLabelValues(string(m.network)).Add(float64(blocks))
}
