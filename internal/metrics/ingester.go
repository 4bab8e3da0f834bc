package metrics

import (
	"time"

	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ingesterFlushTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nearinsight",
		Subsystem: "ingester",
		Name:      "flush_total",
		Help:      "Count of batch flushes.",
	}, []string{"network", "status"})

	ingesterFlushDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "nearinsight",
		Subsystem: "ingester",
		Name:      "flush_duration_seconds",
		Help:      "Duration of flushing a batch of blocks.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	ingesterFlushSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "nearinsight",
		Subsystem: "ingester",
		Name:      "flush_size_blocks",
		Help:      "Number of blocks per flush.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"network"})

	ingesterLastHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "nearinsight",
		Subsystem: "ingester",
		Name:      "last_indexed_height",
		Help:      "Highest block height committed with its watermark.",
	}, []string{"network"})

	ingesterStreamDepth = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "nearinsight",
		Subsystem: "ingester",
		Name:      "stream_buffer_depth",
		Help:      "Blocks prefetched and waiting for the consumer.",
	}, []string{"network"})

	ingesterSideEffectTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nearinsight",
		Subsystem: "ingester",
		Name:      "side_effect_total",
		Help:      "Count of best-effort side effects by sink.",
	}, []string{"network", "sink", "status"})
)

// Ingester tracks metrics for the block ingestion pipeline.
type Ingester struct {
	network model.Network
}

func NewIngester(network model.Network) *Ingester {
	if network == "" {
		network = "unknown"
	}
	return &Ingester{network: network}
}

// ObserveFlush records a flush outcome, its duration and size.
func (m Ingester) ObserveFlush(err error, blocks int, started time.Time) {
	status := statusOf(err)
	ingesterFlushTotal.WithLabelValues(string(m.network), status).Inc()
	ingesterFlushDuration.WithLabelValues(string(m.network), status).
		Observe(time.Since(started).Seconds())
	ingesterFlushSize.WithLabelValues(string(m.network)).
		Observe(float64(blocks))
}

func (m Ingester) ObserveLastHeight(height uint64) {
	ingesterLastHeight.WithLabelValues(string(m.network)).Set(float64(height))
}

func (m Ingester) ObserveStreamDepth(depth int) {
	ingesterStreamDepth.WithLabelValues(string(m.network)).Set(float64(depth))
}

// ObserveSideEffect records archive, mirror and notify outcomes that never fail a flush.
func (m Ingester) ObserveSideEffect(sink string, err error) {
	ingesterSideEffectTotal.WithLabelValues(string(m.network), sink, statusOf(err)).Inc()
}
