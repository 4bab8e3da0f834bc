package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/nearinsight-backend/pkg/pagination"
)

type ActivityMetric string

const (
	ActivityReceipts    ActivityMetric = "receipts"
	ActivityTokenEvents ActivityMetric = "token_events"
)

// ActivityBuckets returns daily row counts for an account since the given day, used to size
// the first window of an account listing.
func (r *Repository) ActivityBuckets(ctx context.Context, accountID string, metric ActivityMetric, since time.Time) (buckets []pagination.Bucket, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("activity_buckets", err, start)
	}()

	var column string
	switch metric {
	case ActivityReceipts:
		column = "outgoing_receipts + incoming_receipts"
	case ActivityTokenEvents:
		column = "token_events"
	default:
		return nil, fmt.Errorf("unknown activity metric %q", metric)
	}

	query := fmt.Sprintf(`
SELECT day, %s
FROM account_daily_stats
WHERE account_id = $1 AND day >= $2::date
ORDER BY day`, column)

	rows, err := r.readPool.Query(ctx, query, accountID, since.UTC().Format(time.DateOnly))
	if err != nil {
		return nil, fmt.Errorf("query activity buckets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			day   time.Time
			count int64
		)
		if err = rows.Scan(&day, &count); err != nil {
			return nil, fmt.Errorf("scan activity bucket: %w", err)
		}
		from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
		buckets = append(buckets, pagination.Bucket{
			Range: pagination.Range{Start: uint64(from.UnixNano()), End: uint64(from.AddDate(0, 0, 1).UnixNano())},
			Count: count,
		})
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity buckets: %w", err)
	}
	return buckets, nil
}
