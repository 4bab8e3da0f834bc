// Package postgres is the relational store: fact inserts, settings watermarks, rollups and windowed reads.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/nearinsight-backend/internal/near/writer"
	"github.com/goodnatureofminers/nearinsight-backend/pkg/retry"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const defaultWriteConcurrency = 4

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		Observe(operation string, err error, started time.Time)
		ObserveRows(table string, submitted, inserted int64)
	}

	// Executor is satisfied by *pgxpool.Pool and pgx.Tx.
	Executor interface {
		Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
		Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
		QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	}
)

// PoolConfig sizes one connection pool.
type PoolConfig struct {
	MinConns        int32
	MaxConns        int32
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	Component       string
}

type Config struct {
	WriterDSN string
	// ReaderDSN defaults to WriterDSN; point it at a replica to keep API reads off the primary.
	ReaderDSN        string
	WriterPool       PoolConfig
	ReaderPool       PoolConfig
	ChunkSize        int
	WriteConcurrency int
	Retry            retry.Config
}

type Repository struct {
	writePool        *pgxpool.Pool
	readPool         *pgxpool.Pool
	writer           *writer.Writer
	writeConcurrency int
	metrics          Metrics
	logger           *zap.Logger
}

func NewRepository(ctx context.Context, cfg Config, metrics Metrics, logger *zap.Logger) (*Repository, error) {
	if cfg.WriterDSN == "" {
		return nil, errors.New("postgres dsn is required")
	}
	if cfg.ReaderDSN == "" {
		cfg.ReaderDSN = cfg.WriterDSN
	}
	if cfg.Retry.MaxRetries <= 0 {
		cfg.Retry = retry.DefaultConfig()
	}
	logger = logger.Named("postgres")

	writePool, err := openPool(ctx, cfg.WriterDSN, withDefaults(cfg.WriterPool, "writer"), cfg.Retry, logger)
	if err != nil {
		return nil, err
	}
	readPool, err := openPool(ctx, cfg.ReaderDSN, withDefaults(cfg.ReaderPool, "reader"), cfg.Retry, logger)
	if err != nil {
		writePool.Close()
		return nil, err
	}

	return newRepository(writePool, readPool, cfg, metrics, logger), nil
}

func newRepository(writePool, readPool *pgxpool.Pool, cfg Config, metrics Metrics, logger *zap.Logger) *Repository {
	if cfg.WriteConcurrency <= 0 {
		cfg.WriteConcurrency = defaultWriteConcurrency
	}
	return &Repository{
		writePool:        writePool,
		readPool:         readPool,
		writer:           writer.New(writer.Config{ChunkSize: cfg.ChunkSize, Retry: cfg.Retry}, metrics, logger),
		writeConcurrency: cfg.WriteConcurrency,
		metrics:          metrics,
		logger:           logger,
	}
}

func (r *Repository) Close() {
	r.writePool.Close()
	if r.readPool != r.writePool {
		r.readPool.Close()
	}
}

func withDefaults(p PoolConfig, component string) PoolConfig {
	if p.MinConns <= 0 {
		p.MinConns = 2
	}
	if p.MaxConns <= 0 {
		p.MaxConns = 20
	}
	if p.ConnMaxLifetime <= 0 {
		p.ConnMaxLifetime = time.Hour
	}
	if p.ConnMaxIdleTime <= 0 {
		p.ConnMaxIdleTime = 30 * time.Minute
	}
	if p.Component == "" {
		p.Component = component
	}
	return p
}

func openPool(ctx context.Context, dsn string, p PoolConfig, rc retry.Config, logger *zap.Logger) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	config.MinConns = p.MinConns
	config.MaxConns = p.MaxConns
	config.MaxConnLifetime = p.ConnMaxLifetime
	config.MaxConnIdleTime = p.ConnMaxIdleTime

	var pool *pgxpool.Pool
	err = retry.WithBackoff(ctx, rc, logger, "postgres_connect_"+p.Component, func(ctx context.Context) error {
		candidate, openErr := pgxpool.NewWithConfig(ctx, config)
		if openErr != nil {
			return fmt.Errorf("create postgres pool: %w", openErr)
		}
		if pingErr := candidate.Ping(ctx); pingErr != nil {
			candidate.Close()
			return fmt.Errorf("ping postgres: %w", pingErr)
		}
		pool = candidate
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("postgres pool configured",
		zap.String("component", p.Component),
		zap.Int32("min_conns", p.MinConns),
		zap.Int32("max_conns", p.MaxConns),
		zap.Duration("conn_max_lifetime", p.ConnMaxLifetime),
		zap.Duration("conn_max_idle_time", p.ConnMaxIdleTime))
	return pool, nil
}
