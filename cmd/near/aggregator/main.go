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
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/repository/postgres"
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/service/aggregator"
	"github.com/goodnatureofminers/nearinsight-backend/pkg/retry"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type config struct {
	Network     model.Network `long:"network" env:"NEAR_AGGREGATOR_NETWORK" description:"network name" default:"mainnet"`
	PostgresDSN string        `long:"postgres-dsn" env:"NEAR_AGGREGATOR_POSTGRES_DSN" description:"PostgreSQL DSN" required:"true"`
	Schedule    string        `long:"schedule" env:"NEAR_AGGREGATOR_SCHEDULE" description:"cron schedule with seconds field" default:"0 */5 * * * *"`
	StartHeight uint64        `long:"start-height" env:"NEAR_AGGREGATOR_START_HEIGHT" description:"rollup watermark seed when none is stored"`
	MaxBlocks   uint64        `long:"max-blocks" env:"NEAR_AGGREGATOR_MAX_BLOCKS" description:"heights folded per sync" default:"10000"`
	RunTimeout  time.Duration `long:"run-timeout" env:"NEAR_AGGREGATOR_RUN_TIMEOUT" description:"time budget of one scheduled run" default:"4m"`
	Once        bool          `long:"once" env:"NEAR_AGGREGATOR_ONCE" description:"catch up once and exit instead of scheduling"`
	MetricsAddr string        `long:"metrics-addr" env:"NEAR_AGGREGATOR_METRICS_ADDR" description:"address for metrics server" default:":2113"`
	LogJSON     bool          `long:"log-json" env:"NEAR_AGGREGATOR_LOG_JSON" description:"production JSON logging"`
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
		logger.Fatal("near aggregator failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	repo, err := postgres.NewRepository(ctx, postgres.Config{
		WriterDSN:  cfg.PostgresDSN,
		WriterPool: postgres.PoolConfig{MaxConns: 4, Component: "aggregator"},
		Retry:      retry.DefaultConfig(),
	}, metrics.NewPostgresRepository(cfg.Network), logger)
	if err != nil {
		return fmt.Errorf("init postgres repository: %w", err)
	}
	defer repo.Close()

	svc, err := aggregator.NewService(aggregator.Config{
		Schedule:    cfg.Schedule,
		StartHeight: cfg.StartHeight,
		MaxBlocks:   cfg.MaxBlocks,
		RunTimeout:  cfg.RunTimeout,
	}, repo, metrics.NewAggregator(cfg.Network), cfg.Network, logger)
	if err != nil {
		return err
	}

	if cfg.Once {
		return svc.CatchUp(ctx)
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
