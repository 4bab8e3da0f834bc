// Package writer performs idempotent set-based inserts into PostgreSQL.
package writer

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/nearinsight-backend/pkg/retry"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const defaultChunkSize = 1000

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Executor is satisfied by *pgxpool.Pool and pgx.Tx.
	Executor interface {
		Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	}

	Metrics interface {
		ObserveRows(table string, submitted, inserted int64)
	}
)

type Config struct {
	ChunkSize int
	Retry     retry.Config
}

type Writer struct {
	cfg     Config
	metrics Metrics
	logger  *zap.Logger
}

func New(cfg Config, metrics Metrics, logger *zap.Logger) *Writer {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = defaultChunkSize
	}
	if cfg.Retry.MaxRetries <= 0 {
		cfg.Retry = retry.DefaultConfig()
	}
	return &Writer{cfg: cfg, metrics: metrics, logger: logger.Named("writer")}
}

func (w *Writer) ChunkSize() int {
	return w.cfg.ChunkSize
}

// Retry runs fn with backoff while it fails with retryable faults and converts the final
// failure into a StorageError.
func (w *Writer) Retry(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	err := retry.WithBackoff(ctx, w.cfg.Retry, w.logger, op, func(ctx context.Context) error {
		if err := fn(ctx); err != nil {
			if !Retryable(err) {
				return retry.Permanent(err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return &StorageError{Op: op, Err: err}
	}
	return nil
}

// Write inserts rows in chunks through exec, retrying each chunk on its own.
func Write[T any](ctx context.Context, w *Writer, exec Executor, table Table[T], rows []T) error {
	for _, chunk := range chunks(rows, w.cfg.ChunkSize) {
		chunk := chunk
		err := w.Retry(ctx, "insert "+table.Name, func(ctx context.Context) error {
			inserted, err := insert(ctx, exec, table, chunk)
			if err != nil {
				return err
			}
			w.metrics.ObserveRows(table.Name, int64(len(chunk)), inserted)
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteOnce inserts all chunks without retrying; the caller retries the enclosing transaction.
func WriteOnce[T any](ctx context.Context, exec Executor, table Table[T], rows []T, chunkSize int) (int64, error) {
	var total int64
	for _, chunk := range chunks(rows, chunkSize) {
		inserted, err := insert(ctx, exec, table, chunk)
		if err != nil {
			return total, err
		}
		total += inserted
	}
	return total, nil
}

func insert[T any](ctx context.Context, exec Executor, table Table[T], rows []T) (int64, error) {
	sql, args := table.Statement(rows)
	tag, err := exec.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("insert into %s: %w", table.Name, err)
	}
	return tag.RowsAffected(), nil
}

func chunks[T any](rows []T, size int) [][]T {
	if size <= 0 {
		size = defaultChunkSize
	}
	var out [][]T
	for start := 0; start < len(rows); start += size {
		end := start + size
		if end > len(rows) {
			end = len(rows)
		}
		out = append(out, rows[start:end])
	}
	return out
}
