package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
	"github.com/goodnatureofminers/nearinsight-backend/pkg/pagination"
	"github.com/shopspring/decimal"
)

// TokenEventFilter narrows a token event listing. EventType is required because
// event_index is only unique within one event type.
type TokenEventFilter struct {
	EventType  model.EventType
	AccountID  string
	ContractID string
	TokenID    string
}

func TokenEventKey(e model.TokenEvent) pagination.Key {
	return pagination.Key{Timestamp: e.BlockTimestamp, ShardID: int64(e.ShardID), Index: int64(e.EventIndex)}
}

// TokenEvents returns a windowed scan over token events matching filter.
func (r *Repository) TokenEvents(filter TokenEventFilter) pagination.QueryFunc[model.TokenEvent] {
	return func(ctx context.Context, scan pagination.Scan) (events []model.TokenEvent, err error) {
		start := time.Now()
		defer func() {
			r.metrics.Observe("scan_token_events", err, start)
		}()

		const base = `
SELECT emitted_for_receipt_id, block_timestamp, shard_id, event_type, event_index, block_height,
       contract_account_id, affected_account_id, involved_account_id, token_id,
       delta_amount::text, cause, memo
FROM token_events`

		q := &keysetQuery{}
		q.filter("event_type = %s", string(filter.EventType))
		if filter.AccountID != "" {
			q.filter("affected_account_id = %s", filter.AccountID)
		}
		if filter.ContractID != "" {
			q.filter("contract_account_id = %s", filter.ContractID)
		}
		if filter.TokenID != "" {
			q.filter("token_id = %s", filter.TokenID)
		}
		sql, args := q.render(base, scan, [3]string{"block_timestamp", "shard_id", "event_index"})

		rows, err := r.readPool.Query(ctx, sql, args...)
		if err != nil {
			return nil, fmt.Errorf("query token events: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var (
				e                               model.TokenEvent
				eventType, cause, delta         string
				ts, shardID, eventIndex, height int64
			)
			if err = rows.Scan(&e.EmittedForReceiptID, &ts, &shardID, &eventType, &eventIndex, &height,
				&e.ContractAccountID, &e.AffectedAccountID, &e.InvolvedAccountID, &e.TokenID,
				&delta, &cause, &e.Memo); err != nil {
				return nil, fmt.Errorf("scan token event: %w", err)
			}
			if e.DeltaAmount, err = decimal.NewFromString(delta); err != nil {
				return nil, fmt.Errorf("parse delta amount: %w", err)
			}
			e.EventType, e.Cause = model.EventType(eventType), model.EventCause(cause)
			e.BlockTimestamp, e.ShardID, e.EventIndex, e.BlockHeight = uint64(ts), uint64(shardID), int(eventIndex), uint64(height)
			events = append(events, e)
		}
		if err = rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate token events: %w", err)
		}
		return events, nil
	}
}
