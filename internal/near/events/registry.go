package events

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
)

const eventJSONPrefix = "EVENT_JSON:"

var errSkip = errors.New("skip event")

// Envelope is a NEP-297 structured log.
type Envelope struct {
	Standard string          `json:"standard"`
	Version  string          `json:"version"`
	Event    string          `json:"event"`
	Data     json.RawMessage `json:"data"`
}

// Handler turns the data of one envelope into events. Returning an error skips the whole log.
type Handler func(data json.RawMessage, meta model.ReceiptMeta) ([]model.TokenEvent, error)

type registryKey struct {
	standard string
	event    string
}

// Registry routes envelopes to handlers by (standard, event).
type Registry struct {
	handlers map[registryKey]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[registryKey]Handler)}
}

// DefaultRegistry knows the NEP-141, NEP-171 and NEP-245 token events.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	registerNEP141(r)
	registerNEP171(r)
	registerNEP245(r)
	return r
}

func (r *Registry) Register(standard, event string, h Handler) {
	r.handlers[registryKey{standard: standard, event: event}] = h
}

func (r *Registry) lookup(standard, event string) (Handler, bool) {
	h, ok := r.handlers[registryKey{standard: standard, event: event}]
	return h, ok
}

// parseEnvelope reports ok only for logs that carry the EVENT_JSON prefix and a complete envelope.
// isStructured is true whenever the prefix is present, even if the body is broken.
func parseEnvelope(log string) (env Envelope, isStructured, ok bool) {
	if !strings.HasPrefix(log, eventJSONPrefix) {
		return Envelope{}, false, false
	}
	body := strings.TrimSpace(log[len(eventJSONPrefix):])
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		return Envelope{}, true, false
	}
	if env.Standard == "" || env.Event == "" || len(env.Data) == 0 {
		return Envelope{}, true, false
	}
	return env, true, true
}
