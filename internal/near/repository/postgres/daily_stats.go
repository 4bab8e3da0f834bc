package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/writer"
	"github.com/goodnatureofminers/nearinsight-backend/pkg/retry"
	"github.com/goodnatureofminers/nearinsight-backend/pkg/safe"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// DailyStatsBetween aggregates per-account activity for heights in (fromHeight, toHeight].
func (r *Repository) DailyStatsBetween(ctx context.Context, fromHeight, toHeight uint64) (stats []model.AccountDailyStat, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("daily_stats_between", err, start)
	}()

	const query = `
WITH activity AS (
	SELECT block_timestamp, predecessor_id AS account_id, 1 AS outgoing, 0 AS incoming, 0 AS events, 0::numeric AS deposit
	FROM receipts
	WHERE block_height > $1 AND block_height <= $2
	UNION ALL
	SELECT block_timestamp, receiver_id, 0, 1, 0, 0
	FROM receipts
	WHERE block_height > $1 AND block_height <= $2
	UNION ALL
	SELECT block_timestamp, affected_account_id, 0, 0, 1, 0
	FROM token_events
	WHERE block_height > $1 AND block_height <= $2
	UNION ALL
	SELECT block_timestamp, receiver_id, 0, 0, 0, coalesce((args->>'deposit')::numeric, 0)
	FROM actions
	WHERE block_height > $1 AND block_height <= $2 AND kind IN ('TRANSFER', 'FUNCTION_CALL')
)
SELECT
	to_char((to_timestamp(block_timestamp / 1000000000.0) AT TIME ZONE 'UTC')::date, 'YYYY-MM-DD') AS day,
	account_id,
	sum(outgoing)::bigint,
	sum(incoming)::bigint,
	sum(events)::bigint,
	sum(deposit)::text
FROM activity
GROUP BY day, account_id
ORDER BY day, account_id`

	rows, err := r.writePool.Query(ctx, query, safe.MustInt64(fromHeight), safe.MustInt64(toHeight))
	if err != nil {
		return nil, fmt.Errorf("query daily stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			stat    model.AccountDailyStat
			deposit string
		)
		if err = rows.Scan(&stat.Day, &stat.AccountID, &stat.OutgoingReceipts, &stat.IncomingReceipts, &stat.TokenEvents, &deposit); err != nil {
			return nil, fmt.Errorf("scan daily stat: %w", err)
		}
		if stat.DepositAmountTotal, err = decimal.NewFromString(deposit); err != nil {
			return nil, fmt.Errorf("parse deposit total: %w", err)
		}
		stats = append(stats, stat)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily stats: %w", err)
	}
	return stats, nil
}

// ApplyDailyStats adds stats to the rollup and moves the watermark in one transaction.
// The watermark guard makes a replay of an already applied range a no-op.
func (r *Repository) ApplyDailyStats(ctx context.Context, stats []model.AccountDailyStat, watermarkKey string, fromHeight, toHeight uint64) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("apply_daily_stats", err, start)
	}()

	err = r.writer.Retry(ctx, "apply daily stats", func(ctx context.Context) error {
		return pgx.BeginFunc(ctx, r.writePool, func(tx pgx.Tx) error {
			current, err := getHeightForUpdate(ctx, tx, watermarkKey)
			if err != nil {
				return err
			}
			if current != fromHeight {
				return retry.Permanent(fmt.Errorf("%w: %s is at %d, expected %d", ErrStaleWatermark, watermarkKey, current, fromHeight))
			}

			inserted, err := writer.WriteOnce(ctx, tx, accountDailyStatsTable, stats, r.writer.ChunkSize())
			if err != nil {
				return err
			}
			if err := setHeight(ctx, tx, watermarkKey, toHeight); err != nil {
				return err
			}
			r.metrics.ObserveRows(accountDailyStatsTable.Name, int64(len(stats)), inserted)
			return nil
		})
	})
	return err
}

func getHeightForUpdate(ctx context.Context, tx pgx.Tx, key string) (uint64, error) {
	if _, err := tx.Exec(ctx, `INSERT INTO settings (key, value) VALUES ($1, to_jsonb(0::bigint)) ON CONFLICT (key) DO NOTHING`, key); err != nil {
		return 0, fmt.Errorf("init setting %s: %w", key, err)
	}

	var height int64
	if err := tx.QueryRow(ctx, `SELECT (value #>> '{}')::bigint FROM settings WHERE key = $1 FOR UPDATE`, key).Scan(&height); err != nil {
		return 0, fmt.Errorf("lock setting %s: %w", key, err)
	}
	return safe.Uint64(height)
}
