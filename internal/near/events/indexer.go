package events

import "github.com/goodnatureofminers/nearinsight-backend/internal/near/model"

// Indexed is an event that gets a per-shard position within its event type.
type Indexed interface {
	EventKind() model.EventType
	SetPosition(shardID, blockTimestamp uint64, index int)
}

// AssignIndex numbers events of eventType 0..n-1 in slice order and stamps the shard position on them.
// Events of other types are returned untouched. The input slice is not modified.
func AssignIndex[E any, P interface {
	*E
	Indexed
}](shardID, blockTimestamp uint64, eventType model.EventType, events []E) []E {
	out := make([]E, len(events))
	copy(out, events)

	idx := 0
	for i := range out {
		p := P(&out[i])
		if p.EventKind() != eventType {
			continue
		}
		p.SetPosition(shardID, blockTimestamp, idx)
		idx++
	}
	return out
}
