package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
	"github.com/goodnatureofminers/nearinsight-backend/pkg/pagination"
	"github.com/shopspring/decimal"
)

func ReceiptKey(r model.Receipt) pagination.Key {
	return pagination.Key{Timestamp: r.BlockTimestamp, ShardID: int64(r.ShardID), Index: int64(r.IndexInChunk)}
}

// Receipts returns a windowed scan over receipts sent or received by accountID, or all receipts when empty.
func (r *Repository) Receipts(accountID string) pagination.QueryFunc[model.Receipt] {
	return func(ctx context.Context, scan pagination.Scan) (receipts []model.Receipt, err error) {
		start := time.Now()
		defer func() {
			r.metrics.Observe("scan_receipts", err, start)
		}()

		const base = `
SELECT receipt_id, block_timestamp, block_height, shard_id, index_in_chunk, kind,
       predecessor_id, receiver_id, signer_id, originated_from_tx_hash, status,
       gas_burnt, tokens_burnt::text, logs_count
FROM receipts`

		q := &keysetQuery{}
		if accountID != "" {
			q.where = append(q.where, fmt.Sprintf("(predecessor_id = %[1]s OR receiver_id = %[1]s)", q.arg(accountID)))
		}
		sql, args := q.render(base, scan, [3]string{"block_timestamp", "shard_id", "index_in_chunk"})

		rows, err := r.readPool.Query(ctx, sql, args...)
		if err != nil {
			return nil, fmt.Errorf("query receipts: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var (
				rec                             model.Receipt
				kind, status, burnt             string
				ts, height, shardID, index, gas int64
				logs                            int64
			)
			if err = rows.Scan(&rec.ReceiptID, &ts, &height, &shardID, &index, &kind,
				&rec.PredecessorID, &rec.ReceiverID, &rec.SignerID, &rec.OriginatedFromTxHash, &status,
				&gas, &burnt, &logs); err != nil {
				return nil, fmt.Errorf("scan receipt: %w", err)
			}
			if rec.TokensBurnt, err = decimal.NewFromString(burnt); err != nil {
				return nil, fmt.Errorf("parse tokens burnt: %w", err)
			}
			rec.Kind, rec.Status = model.ReceiptKind(kind), model.ExecutionStatus(status)
			rec.BlockTimestamp, rec.BlockHeight, rec.ShardID = uint64(ts), uint64(height), uint64(shardID)
			rec.IndexInChunk, rec.GasBurnt, rec.LogsCount = int(index), uint64(gas), int(logs)
			receipts = append(receipts, rec)
		}
		if err = rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate receipts: %w", err)
		}
		return receipts, nil
	}
}
