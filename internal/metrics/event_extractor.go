package metrics

import (
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventExtractorSkippedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nearinsight",
		Subsystem: "event_extractor",
		Name:      "skipped_total",
		Help:      "Logs or calls that could not be turned into events.",
	}, []string{"network", "strategy", "reason"})
	eventExtractorExtractedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nearinsight",
		Subsystem: "event_extractor",
		Name:      "extracted_total",
		Help:      "Events extracted by type.",
	}, []string{"network", "event_type"})
)

// EventExtractor tracks metrics for log and call extraction.
type EventExtractor struct {
	network model.Network
}

func NewEventExtractor(network model.Network) *EventExtractor {
	if network == "" {
		network = "unknown"
	}
	return &EventExtractor{network: network}
}

func (m EventExtractor) ObserveSkip(strategy, reason string) {
	eventExtractorSkippedTotal.WithLabelValues(string(m.network), strategy, reason).Inc()
}

func (m EventExtractor) ObserveExtracted(eventType model.EventType, count int) {
	eventExtractorExtractedTotal.WithLabelValues(string(m.network), string(eventType)).Add(float64(count))
}
