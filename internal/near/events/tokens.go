package events

import (
	"encoding/json"
	"fmt"

	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
	"github.com/shopspring/decimal"
)

// parseAmount accepts non-negative integer strings only.
func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount: %w", errSkip)
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", s, errSkip)
	}
	if v.IsNegative() || !v.Equal(v.Truncate(0)) {
		return decimal.Zero, fmt.Errorf("amount %q is not a non-negative integer: %w", s, errSkip)
	}
	return v, nil
}

func decodeItems[T any](data json.RawMessage) ([]T, error) {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode event data: %w", errSkip)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("empty event data: %w", errSkip)
	}
	return items, nil
}

func newEvent(meta model.ReceiptMeta, eventType model.EventType, cause model.EventCause, affected, involved, tokenID string, delta decimal.Decimal, memo string) model.TokenEvent {
	return model.TokenEvent{
		EventType:           eventType,
		EmittedForReceiptID: meta.ReceiptID,
		BlockHeight:         meta.BlockHeight,
		BlockTimestamp:      meta.BlockTimestamp,
		ShardID:             meta.ShardID,
		ContractAccountID:   meta.ReceiverID,
		AffectedAccountID:   affected,
		InvolvedAccountID:   involved,
		TokenID:             tokenID,
		DeltaAmount:         delta,
		Cause:               cause,
		Memo:                memo,
	}
}

// transferPair emits the sender row (negative delta) followed by the receiver row.
func transferPair(meta model.ReceiptMeta, eventType model.EventType, from, to, tokenID string, amount decimal.Decimal, memo string) []model.TokenEvent {
	return []model.TokenEvent{
		newEvent(meta, eventType, model.CauseTransfer, from, to, tokenID, amount.Neg(), memo),
		newEvent(meta, eventType, model.CauseTransfer, to, from, tokenID, amount, memo),
	}
}

func requireAccounts(ids ...string) error {
	for _, id := range ids {
		if id == "" {
			return fmt.Errorf("missing account id: %w", errSkip)
		}
	}
	return nil
}

func requireTokenIDs(ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("missing token ids: %w", errSkip)
	}
	for _, id := range ids {
		if id == "" {
			return fmt.Errorf("empty token id: %w", errSkip)
		}
	}
	return nil
}
