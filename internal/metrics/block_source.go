package metrics

import (
	"time"

	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	blockSourceRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nearinsight",
		Subsystem: "block_source",
		Name:      "operations_total",
		Help:      "Count of block feed requests.",
	}, []string{"operation", "network", "status"})
	blockSourceRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "nearinsight",
		Subsystem: "block_source",
		Name:      "operation_duration_seconds",
		Help:      "Duration of block feed requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "network", "status"})
	blockSourceRetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nearinsight",
		Subsystem: "block_source",
		Name:      "retries_total",
		Help:      "Count of block fetch retries by reason.",
	}, []string{"network", "reason"})
)

// BlockSource tracks metrics for the block feed client.
type BlockSource struct {
	network model.Network
}

func NewBlockSource(network model.Network) *BlockSource {
	if network == "" {
		network = "unknown"
	}
	return &BlockSource{network: network}
}

// Observe records a single feed request outcome and duration.
func (m BlockSource) Observe(operation string, err error, started time.Time) {
	status := statusOf(err)
	blockSourceRequestsTotal.WithLabelValues(operation, string(m.network), status).Inc()
	blockSourceRequestDuration.WithLabelValues(operation, string(m.network), status).Observe(time.Since(started).Seconds())
}

// ObserveRetry counts a retried fetch. reason is not_found or transient.
func (m BlockSource) ObserveRetry(reason string) {
	blockSourceRetriesTotal.WithLabelValues(string(m.network), reason).Inc()
}
