package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/nearinsight-backend/internal/metrics"
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/archive"
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/decoder"
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/events"
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/neardata"
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/notify"
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/repository/clickhouse"
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/repository/postgres"
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/service/ingester"
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/stream"
	"github.com/goodnatureofminers/nearinsight-backend/pkg/batcher"
	"github.com/goodnatureofminers/nearinsight-backend/pkg/retry"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type config struct {
	Network     model.Network `long:"network" env:"NEAR_INGESTER_NETWORK" description:"network name" default:"mainnet"`
	FeedURL     string        `long:"feed-url" env:"NEAR_INGESTER_FEED_URL" description:"neardata feed base url" default:"https://mainnet.neardata.xyz"`
	FeedRPS     int           `long:"feed-rps" env:"NEAR_INGESTER_FEED_RPS" description:"max feed requests per second, 0 for unlimited" default:"0"`
	FeedTimeout time.Duration `long:"feed-timeout" env:"NEAR_INGESTER_FEED_TIMEOUT" description:"feed request timeout" default:"30s"`

	PostgresDSN      string `long:"postgres-dsn" env:"NEAR_INGESTER_POSTGRES_DSN" description:"PostgreSQL DSN" required:"true"`
	PostgresMaxConns int32  `long:"postgres-max-conns" env:"NEAR_INGESTER_POSTGRES_MAX_CONNS" description:"writer pool size" default:"20"`
	ChunkSize        int    `long:"chunk-size" env:"NEAR_INGESTER_CHUNK_SIZE" description:"rows per insert statement" default:"1000"`
	WriteConcurrency int    `long:"write-concurrency" env:"NEAR_INGESTER_WRITE_CONCURRENCY" description:"tables written in parallel" default:"4"`

	StartHeight      uint64        `long:"start-height" env:"NEAR_INGESTER_START_HEIGHT" description:"height to start from when no watermark is stored"`
	EndHeight        uint64        `long:"end-height" env:"NEAR_INGESTER_END_HEIGHT" description:"inclusive height to stop at, 0 follows the head"`
	Concurrency      int           `long:"concurrency" env:"NEAR_INGESTER_CONCURRENCY" description:"blocks fetched in parallel" default:"8"`
	HighWaterMark    int           `long:"high-water-mark" env:"NEAR_INGESTER_HIGH_WATER_MARK" description:"prefetched blocks buffered ahead of the consumer" default:"64"`
	FlushBlocks      int           `long:"flush-blocks" env:"NEAR_INGESTER_FLUSH_BLOCKS" description:"blocks per committed batch" default:"100"`
	FlushInterval    time.Duration `long:"flush-interval" env:"NEAR_INGESTER_FLUSH_INTERVAL" description:"max time a block waits for its batch" default:"2s"`
	ShardConcurrency int           `long:"shard-concurrency" env:"NEAR_INGESTER_SHARD_CONCURRENCY" description:"shards decoded in parallel" default:"8"`
	SignerContract   string        `long:"signer-contract" env:"NEAR_INGESTER_SIGNER_CONTRACT" description:"chain signatures contract account" default:"v1.signer"`
	RelayMethods     []string      `long:"relay-method" env:"NEAR_INGESTER_RELAY_METHODS" env-delim:"," description:"function call methods carrying relayed ethereum transactions"`

	ArchiveBucket   string `long:"archive-bucket" env:"NEAR_INGESTER_ARCHIVE_BUCKET" description:"S3 bucket for raw blocks, empty disables archiving"`
	ArchivePrefix   string `long:"archive-prefix" env:"NEAR_INGESTER_ARCHIVE_PREFIX" description:"key prefix inside the archive bucket" default:"blocks"`
	ArchiveRegion   string `long:"archive-region" env:"NEAR_INGESTER_ARCHIVE_REGION" description:"S3 region"`
	ArchiveEndpoint string `long:"archive-endpoint" env:"NEAR_INGESTER_ARCHIVE_ENDPOINT" description:"S3-compatible endpoint"`
	ArchiveSource   bool   `long:"archive-source" env:"NEAR_INGESTER_ARCHIVE_SOURCE" description:"read blocks from the archive before the feed"`

	ClickhouseDSN string `long:"clickhouse-dsn" env:"NEAR_INGESTER_CLICKHOUSE_DSN" description:"ClickHouse DSN for the token event mirror, empty disables it"`
	RedisURL      string `long:"redis-url" env:"NEAR_INGESTER_REDIS_URL" description:"Redis URL for block notifications, empty disables them"`

	MetricsAddr string `long:"metrics-addr" env:"NEAR_INGESTER_METRICS_ADDR" description:"address for metrics server" default:":2112"`
	LogJSON     bool   `long:"log-json" env:"NEAR_INGESTER_LOG_JSON" description:"production JSON logging"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}

	logger, err := newLogger(cfg.LogJSON)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("near ingester failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	repo, err := postgres.NewRepository(ctx, postgres.Config{
		WriterDSN:        cfg.PostgresDSN,
		WriterPool:       postgres.PoolConfig{MaxConns: cfg.PostgresMaxConns, Component: "ingester"},
		ChunkSize:        cfg.ChunkSize,
		WriteConcurrency: cfg.WriteConcurrency,
		Retry:            retry.DefaultConfig(),
	}, metrics.NewPostgresRepository(cfg.Network), logger)
	if err != nil {
		return fmt.Errorf("init postgres repository: %w", err)
	}
	defer repo.Close()

	feed, err := neardata.NewClient(neardata.Config{
		BaseURL:        cfg.FeedURL,
		RequestTimeout: cfg.FeedTimeout,
		RPS:            cfg.FeedRPS,
		Retry:          retry.DefaultConfig(),
	}, nil, metrics.NewBlockSource(cfg.Network), logger)
	if err != nil {
		return fmt.Errorf("init feed client: %w", err)
	}

	ingesterMetrics := metrics.NewIngester(cfg.Network)
	var (
		source stream.Source = feed
		sinks  ingester.Sinks
	)

	// Sinks outlive the ingester run so they can drain after the last flush.
	sinkCtx, stopSinks := context.WithCancel(context.WithoutCancel(ctx))
	defer stopSinks()

	if cfg.ArchiveBucket != "" {
		store, err := archive.NewStore(ctx, archive.StoreConfig{
			Bucket:   cfg.ArchiveBucket,
			Prefix:   cfg.ArchivePrefix,
			Region:   cfg.ArchiveRegion,
			Endpoint: cfg.ArchiveEndpoint,
		})
		if err != nil {
			return fmt.Errorf("init archive store: %w", err)
		}
		if cfg.ArchiveSource {
			source = archive.NewMirrorSource(store, feed, logger)
		}

		queue := archive.NewQueue(store, archive.DefaultQueueConfig(), metrics.NewUploadQueue(cfg.Network), logger)
		queue.Start(sinkCtx)
		defer func() {
			stopSinks()
			<-queue.Done()
			logger.Info("upload queue stopped", zap.Int64("uploaded", queue.UploadedCount()))
		}()
		sinks.Archive = queue
	}

	if cfg.ClickhouseDSN != "" {
		chRepo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, cfg.Network, metrics.NewClickhouseRepository())
		if err != nil {
			return fmt.Errorf("init clickhouse repository: %w", err)
		}
		defer func() {
			_ = chRepo.Close()
		}()

		mirrored, err := chRepo.MaxBlockHeight(ctx)
		if err != nil {
			return fmt.Errorf("read clickhouse mirror height: %w", err)
		}
		logger.Info("clickhouse mirror enabled", zap.Uint64("mirrored_height", mirrored))

		mirror := batcher.New[model.TokenEvent](logger.Named("mirror"), chRepo.InsertTokenEvents, batcher.Config{
			FlushSize:     5000,
			FlushInterval: 5 * time.Second,
		})
		mirror.Start(sinkCtx)
		defer func() {
			mirror.Stop()
			logger.Info("clickhouse mirror stopped",
				zap.Int64("flushed", mirror.Flushed()),
				zap.Int64("failed", mirror.Failed()))
		}()
		sinks.Mirror = mirror
	}

	if cfg.RedisURL != "" {
		notifier, err := notify.NewNotifier(ctx, notify.Config{URL: cfg.RedisURL}, cfg.Network, logger)
		if err != nil {
			return fmt.Errorf("init notifier: %w", err)
		}
		defer func() {
			_ = notifier.Close()
		}()
		sinks.Notifier = notifier
	}

	newStream := func(start uint64) ingester.BlockStream {
		return stream.New(source, stream.Config{
			StartHeight:   start,
			EndHeight:     cfg.EndHeight,
			Concurrency:   cfg.Concurrency,
			HighWaterMark: cfg.HighWaterMark,
		}, ingesterMetrics, logger)
	}

	svc, err := ingester.NewService(
		ingester.Config{
			StartHeight:      cfg.StartHeight,
			EndHeight:        cfg.EndHeight,
			FlushBlocks:      cfg.FlushBlocks,
			FlushInterval:    cfg.FlushInterval,
			ShardConcurrency: cfg.ShardConcurrency,
		},
		repo,
		newStream,
		decoder.New(cfg.RelayMethods...),
		events.NewExtractor(events.DefaultRegistry(), cfg.SignerContract, metrics.NewEventExtractor(cfg.Network)),
		sinks,
		ingesterMetrics,
		cfg.Network,
		logger,
	)
	if err != nil {
		return err
	}
	return svc.Run(ctx)
}

func newLogger(json bool) (*zap.Logger, error) {
	if json {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}
