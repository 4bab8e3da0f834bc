package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
	"github.com/goodnatureofminers/nearinsight-backend/pkg/pagination"
	"github.com/shopspring/decimal"
)

// SignatureRequestView is a request joined with the response that fulfilled it, if any.
type SignatureRequestView struct {
	model.SignatureRequest
	Response *model.SignatureResponse
}

func SignatureRequestKey(v SignatureRequestView) pagination.Key {
	return pagination.Key{Timestamp: v.BlockTimestamp, ShardID: int64(v.ShardID), Index: int64(v.EventIndex)}
}

// SignatureRequests returns a windowed scan over chain signature requests, optionally by requester.
func (r *Repository) SignatureRequests(requesterID string) pagination.QueryFunc[SignatureRequestView] {
	return func(ctx context.Context, scan pagination.Scan) (views []SignatureRequestView, err error) {
		start := time.Now()
		defer func() {
			r.metrics.Observe("scan_signature_requests", err, start)
		}()

		const base = `
SELECT q.receipt_id, q.block_timestamp, q.shard_id, q.event_index, q.block_height, q.contract_id,
       q.requester_id, q.payload, q.path, q.key_version, q.deposit::text, q.request_key,
       p.receipt_id, p.block_timestamp, p.block_height, p.responder_id, p.big_r, p.s, p.recovery_id
FROM signature_requests q
LEFT JOIN LATERAL (
	SELECT receipt_id, block_timestamp, block_height, responder_id, big_r, s, recovery_id
	FROM signature_responses
	WHERE request_key = q.request_key
	ORDER BY block_timestamp
	LIMIT 1
) p ON true`

		q := &keysetQuery{}
		if requesterID != "" {
			q.filter("q.requester_id = %s", requesterID)
		}
		sql, args := q.render(base, scan, [3]string{"q.block_timestamp", "q.shard_id", "q.event_index"})

		rows, err := r.readPool.Query(ctx, sql, args...)
		if err != nil {
			return nil, fmt.Errorf("query signature requests: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var (
				v                                     SignatureRequestView
				ts, shardID, eventIndex, height, keyV int64
				deposit                               string
				respReceipt, respBy, bigR, s          *string
				respTS, respHeight, recoveryID        *int64
			)
			if err = rows.Scan(&v.ReceiptID, &ts, &shardID, &eventIndex, &height, &v.ContractID,
				&v.RequesterID, &v.Payload, &v.Path, &keyV, &deposit, &v.RequestKey,
				&respReceipt, &respTS, &respHeight, &respBy, &bigR, &s, &recoveryID); err != nil {
				return nil, fmt.Errorf("scan signature request: %w", err)
			}
			if v.Deposit, err = decimal.NewFromString(deposit); err != nil {
				return nil, fmt.Errorf("parse deposit: %w", err)
			}
			v.BlockTimestamp, v.ShardID, v.EventIndex = uint64(ts), uint64(shardID), int(eventIndex)
			v.BlockHeight, v.KeyVersion = uint64(height), uint32(keyV)

			if respReceipt != nil {
				v.Response = &model.SignatureResponse{
					ReceiptID:      *respReceipt,
					BlockTimestamp: uint64(*respTS),
					BlockHeight:    uint64(*respHeight),
					ContractID:     v.ContractID,
					ResponderID:    *respBy,
					RequestKey:     v.RequestKey,
					BigR:           *bigR,
					S:              *s,
					RecoveryID:     int(*recoveryID),
				}
			}
			views = append(views, v)
		}
		if err = rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate signature requests: %w", err)
		}
		return views, nil
	}
}
