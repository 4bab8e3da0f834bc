package metrics

import (
	"time"

	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	uploadQueueUploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nearinsight",
		Subsystem: "upload_queue",
		Name:      "uploads_total",
		Help:      "Count of block archive upload attempts.",
	}, []string{"network", "status"})
	uploadQueueUploadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "nearinsight",
		Subsystem: "upload_queue",
		Name:      "upload_duration_seconds",
		Help:      "Duration of block archive uploads.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})
	uploadQueueDroppedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nearinsight",
		Subsystem: "upload_queue",
		Name:      "dropped_total",
		Help:      "Count of tasks dropped by reason.",
	}, []string{"network", "reason"})
	uploadQueueSize = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "nearinsight",
		Subsystem: "upload_queue",
		Name:      "pending_tasks",
		Help:      "Tasks waiting for upload or retry.",
	}, []string{"network"})
)

// UploadQueue tracks metrics for the archive upload queue.
type UploadQueue struct {
	network model.Network
}

func NewUploadQueue(network model.Network) *UploadQueue {
	if network == "" {
		network = "unknown"
	}
	return &UploadQueue{network: network}
}

func (m UploadQueue) ObserveUpload(err error, started time.Time) {
	status := statusOf(err)
	uploadQueueUploadsTotal.WithLabelValues(string(m.network), status).Inc()
	uploadQueueUploadDuration.WithLabelValues(string(m.network), status).Observe(time.Since(started).Seconds())
}

// ObserveDropped counts a task given up on. reason is overflow or max_attempts.
func (m UploadQueue) ObserveDropped(reason string) {
	uploadQueueDroppedTotal.WithLabelValues(string(m.network), reason).Inc()
}

func (m UploadQueue) ObserveQueueSize(size int) {
	uploadQueueSize.WithLabelValues(string(m.network)).Set(float64(size))
}
