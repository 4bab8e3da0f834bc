package events

import (
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		ObserveSkip(strategy, reason string)
		ObserveExtracted(eventType model.EventType, count int)
	}
)

const (
	strategyStructured = "structured"
	strategyLegacy     = "legacy"
	strategyChainSig   = "chain_signatures"

	reasonUnregistered = "unregistered"
	reasonInvalid      = "invalid"
	reasonUnmatched    = "unmatched"
)

// Result is everything extracted from one receipt or one shard.
type Result struct {
	TokenEvents        []model.TokenEvent
	SignatureRequests  []model.SignatureRequest
	SignatureResponses []model.SignatureResponse
}

func (r *Result) append(other Result) {
	r.TokenEvents = append(r.TokenEvents, other.TokenEvents...)
	r.SignatureRequests = append(r.SignatureRequests, other.SignatureRequests...)
	r.SignatureResponses = append(r.SignatureResponses, other.SignatureResponses...)
}

type noopMetrics struct{}

func (noopMetrics) ObserveSkip(string, string)            {}
func (noopMetrics) ObserveExtracted(model.EventType, int) {}
