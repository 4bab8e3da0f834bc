package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/nearinsight-backend/internal/metrics"
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/repository/postgres"
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/transport"
	"github.com/goodnatureofminers/nearinsight-backend/pkg/pagination"
	"github.com/goodnatureofminers/nearinsight-backend/pkg/retry"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

var config struct {
	Network      model.Network `long:"network" env:"NEAR_API_NETWORK" description:"network name" default:"mainnet"`
	Addr         string        `long:"addr" env:"NEAR_API_ADDR" description:"http listen address" default:":8001"`
	PostgresDSN  string        `long:"postgres-dsn" env:"NEAR_API_POSTGRES_DSN" description:"PostgreSQL DSN, usually a read replica" required:"true"`
	MaxConns     int32         `long:"postgres-max-conns" env:"NEAR_API_POSTGRES_MAX_CONNS" description:"reader pool size" default:"20"`
	Genesis      uint64        `long:"genesis" env:"NEAR_API_GENESIS" description:"oldest block timestamp in nanoseconds a scan may reach"`
	Initial      time.Duration `long:"initial-window" env:"NEAR_API_INITIAL_WINDOW" description:"first scanned window" default:"1h"`
	Factor       float64       `long:"window-factor" env:"NEAR_API_WINDOW_FACTOR" description:"window growth factor" default:"2"`
	MaxWidenings int           `long:"max-widenings" env:"NEAR_API_MAX_WIDENINGS" description:"widenings before returning an edge cursor" default:"24"`
	QueryTimeout time.Duration `long:"query-timeout" env:"NEAR_API_QUERY_TIMEOUT" description:"time budget of one listing" default:"5s"`
	LogJSON      bool          `long:"log-json" env:"NEAR_API_LOG_JSON" description:"production JSON logging"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := flags.ParseArgs(&config, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}

	newLogger := zap.NewDevelopment
	if config.LogJSON {
		newLogger = zap.NewProduction
	}
	logger, err := newLogger()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	repo, err := postgres.NewRepository(ctx, postgres.Config{
		WriterDSN:  config.PostgresDSN,
		WriterPool: postgres.PoolConfig{MaxConns: 2, Component: "api"},
		ReaderPool: postgres.PoolConfig{MaxConns: config.MaxConns, Component: "api-reader"},
		Retry:      retry.DefaultConfig(),
	}, metrics.NewPostgresRepository(config.Network), logger)
	if err != nil {
		logger.Fatal("init postgres repository", zap.Error(err))
	}
	defer repo.Close()

	handler := transport.NewHandler(repo, pagination.Config{
		Schedule: pagination.Schedule{
			Initial:      config.Initial,
			Factor:       config.Factor,
			MaxWidenings: config.MaxWidenings,
		},
		Genesis: config.Genesis,
		Timeout: config.QueryTimeout,
	}, func(query string) pagination.Metrics {
		return metrics.NewQueryEngine(query)
	}, logger)

	router := handler.NewRouter()
	router.Handle("/metrics", promhttp.Handler())

	s := &http.Server{
		Addr:              config.Addr,
		Handler:           cors.Default().Handler(router),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server", zap.String("addr", config.Addr))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Failed to listen and serve", zap.Error(err))
	}
}
