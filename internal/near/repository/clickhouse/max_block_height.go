package clickhouse

import (
	"context"
	"fmt"
	"time"
)

// MaxBlockHeight returns the highest mirrored block height of the repository's network, 0 when empty.
func (r *Repository) MaxBlockHeight(ctx context.Context) (height uint64, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("max_block_height", r.network, err, start)
	}()

	const query = `SELECT max(block_height) FROM near_token_events WHERE network = ?`

	if err = r.conn.QueryRow(ctx, query, string(r.network)).Scan(&height); err != nil {
		return 0, fmt.Errorf("query mirrored height: %w", err)
	}
	return height, nil
}
