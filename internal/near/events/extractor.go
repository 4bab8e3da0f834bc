package events

import (
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
)

// Extractor turns receipt logs and calls into token events and chain-signature records.
type Extractor struct {
	registry       *Registry
	signerContract string
	metrics        Metrics
}

func NewExtractor(registry *Registry, signerContract string, metrics Metrics) *Extractor {
	if registry == nil {
		registry = DefaultRegistry()
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Extractor{
		registry:       registry,
		signerContract: signerContract,
		metrics:        metrics,
	}
}

// Extract handles one receipt. Failed receipts produce nothing.
// Structured logs are handled through the registry. The legacy plain-text FT patterns
// are only tried when the receipt has no structured nep141 log.
func (e *Extractor) Extract(logs []string, meta model.ReceiptMeta) Result {
	var res Result
	if !meta.Status.Successful() {
		return res
	}

	useLegacy := true
	for _, log := range logs {
		if env, _, ok := parseEnvelope(log); ok && env.Standard == standardNEP141 {
			useLegacy = false
			break
		}
	}

	for _, log := range logs {
		env, structured, ok := parseEnvelope(log)
		switch {
		case ok:
			res.TokenEvents = append(res.TokenEvents, e.handleEnvelope(env, meta)...)
		case structured:
			e.metrics.ObserveSkip(strategyStructured, reasonInvalid)
		case useLegacy:
			evs, matched, miss := matchLegacy(log, meta)
			if miss {
				e.metrics.ObserveSkip(strategyLegacy, reasonUnmatched)
			}
			if matched {
				res.TokenEvents = append(res.TokenEvents, evs...)
			}
		}
	}

	res.append(e.extractChainSignatures(meta))
	return res
}

func (e *Extractor) handleEnvelope(env Envelope, meta model.ReceiptMeta) []model.TokenEvent {
	h, ok := e.registry.lookup(env.Standard, env.Event)
	if !ok {
		e.metrics.ObserveSkip(strategyStructured, reasonUnregistered)
		return nil
	}
	evs, err := h(env.Data, meta)
	if err != nil {
		e.metrics.ObserveSkip(strategyStructured, reasonInvalid)
		return nil
	}
	return evs
}

// ExtractShard extracts every outcome of a shard in chunk order and assigns per-type indices.
func (e *Extractor) ExtractShard(outcomes []model.ReceiptOutcome, shardID, blockTimestamp uint64) Result {
	var res Result
	for _, o := range outcomes {
		res.append(e.Extract(o.Logs, o.Meta))
	}

	for _, t := range []model.EventType{model.EventTypeFT, model.EventTypeNFT, model.EventTypeMT} {
		res.TokenEvents = AssignIndex(shardID, blockTimestamp, t, res.TokenEvents)
	}
	res.SignatureRequests = AssignIndex(shardID, blockTimestamp, model.EventTypeSignatureRequest, res.SignatureRequests)
	res.SignatureResponses = AssignIndex(shardID, blockTimestamp, model.EventTypeSignatureResponse, res.SignatureResponses)

	e.observe(res)
	return res
}

func (e *Extractor) observe(res Result) {
	counts := make(map[model.EventType]int)
	for _, ev := range res.TokenEvents {
		counts[ev.EventType]++
	}
	counts[model.EventTypeSignatureRequest] = len(res.SignatureRequests)
	counts[model.EventTypeSignatureResponse] = len(res.SignatureResponses)
	for t, n := range counts {
		if n > 0 {
			e.metrics.ObserveExtracted(t, n)
		}
	}
}
