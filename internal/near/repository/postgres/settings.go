package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/nearinsight-backend/pkg/safe"
	"github.com/jackc/pgx/v5"
)

// Height reads a height watermark from settings. ok is false when the key was never written.
func (r *Repository) Height(ctx context.Context, key string) (height uint64, ok bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("get_setting", err, start)
	}()

	height, ok, err = getHeight(ctx, r.writePool, key)
	return height, ok, err
}

// SetHeight stores a height watermark outside any batch.
func (r *Repository) SetHeight(ctx context.Context, key string, height uint64) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("set_setting", err, start)
	}()

	err = r.writer.Retry(ctx, "set "+key, func(ctx context.Context) error {
		return setHeight(ctx, r.writePool, key, height)
	})
	return err
}

func getHeight(ctx context.Context, exec Executor, key string) (uint64, bool, error) {
	const query = `SELECT (value #>> '{}')::bigint FROM settings WHERE key = $1`

	var height int64
	if err := exec.QueryRow(ctx, query, key).Scan(&height); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("query setting %s: %w", key, err)
	}
	value, err := safe.Uint64(height)
	if err != nil {
		return 0, false, fmt.Errorf("setting %s: %w", key, err)
	}
	return value, true, nil
}

// setHeight never moves a watermark backwards, so a replayed batch cannot undo a later commit.
func setHeight(ctx context.Context, exec Executor, key string, height uint64) error {
	const query = `
INSERT INTO settings (key, value)
VALUES ($1, to_jsonb($2::bigint))
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
WHERE (settings.value #>> '{}')::bigint < (EXCLUDED.value #>> '{}')::bigint`

	if _, err := exec.Exec(ctx, query, key, safe.MustInt64(height)); err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}
