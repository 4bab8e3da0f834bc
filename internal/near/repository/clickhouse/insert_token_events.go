package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
)

// InsertTokenEvents appends token events to the mirror. The table is a ReplacingMergeTree
// over the natural key, so replays collapse on merge.
func (r *Repository) InsertTokenEvents(ctx context.Context, events []model.TokenEvent) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_token_events", r.network, err, start)
	}()

	if len(events) == 0 {
		return nil
	}

	const query = `
INSERT INTO near_token_events (
	network,
	emitted_for_receipt_id,
	block_timestamp,
	shard_id,
	event_type,
	event_index,
	block_height,
	contract_account_id,
	affected_account_id,
	involved_account_id,
	token_id,
	delta_amount,
	cause,
	memo
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare token events batch: %w", err)
	}

	for _, e := range events {
		if err = batch.Append(
			string(r.network),
			e.EmittedForReceiptID,
			time.Unix(0, int64(e.BlockTimestamp)).UTC(),
			e.ShardID,
			string(e.EventType),
			uint32(e.EventIndex),
			e.BlockHeight,
			e.ContractAccountID,
			e.AffectedAccountID,
			e.InvolvedAccountID,
			e.TokenID,
			e.DeltaAmount,
			string(e.Cause),
			e.Memo,
		); err != nil {
			return fmt.Errorf("append token event: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert token events: %w", err)
	}
	return nil
}
