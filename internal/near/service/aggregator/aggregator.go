// Package aggregator folds committed blocks into per-account daily rollups on a schedule.
package aggregator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/repository/postgres"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Config struct {
	// Schedule is a cron expression with a seconds field.
	Schedule string
	// StartHeight seeds the rollup watermark when none is stored.
	StartHeight uint64
	// MaxBlocks bounds the height range folded by one sync.
	MaxBlocks  uint64
	RunTimeout time.Duration
}

type Service struct {
	logger  *zap.Logger
	cfg     Config
	repo    Repository
	metrics Metrics
}

func NewService(cfg Config, repo Repository, metrics Metrics, network model.Network, logger *zap.Logger) (*Service, error) {
	if repo == nil {
		return nil, errors.New("aggregator repository is required")
	}
	if metrics == nil {
		return nil, errors.New("aggregator metrics is required")
	}
	if cfg.Schedule == "" {
		cfg.Schedule = defaultSchedule
	}
	if cfg.MaxBlocks == 0 {
		cfg.MaxBlocks = defaultMaxBlocks
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = defaultRunTimeout
	}
	return &Service{
		logger:  logger.With(zap.String("network", string(network))).Named("aggregator"),
		cfg:     cfg,
		repo:    repo,
		metrics: metrics,
	}, nil
}

// Run schedules CatchUp until the context is canceled. Overlapping runs are skipped.
func (s *Service) Run(ctx context.Context) error {
	cl := cronLogger{s.logger.Sugar()}
	c := cron.New(cron.WithSeconds(), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)))

	_, err := c.AddFunc(s.cfg.Schedule, func() {
		rctx, cancel := context.WithTimeout(ctx, s.cfg.RunTimeout)
		defer cancel()
		if err := s.CatchUp(rctx); err != nil {
			s.logger.Error("daily rollup failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule daily rollup %q: %w", s.cfg.Schedule, err)
	}

	c.Start()
	s.logger.Info("scheduler started", zap.String("schedule", s.cfg.Schedule))

	<-ctx.Done()
	<-c.Stop().Done()
	return ctx.Err()
}

// CatchUp syncs repeatedly until the rollup reaches the indexer watermark.
func (s *Service) CatchUp(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		done, err := s.Sync(ctx)
		if err != nil || done {
			return err
		}
	}
}

// Sync folds at most MaxBlocks heights past the rollup watermark. It reports true once
// nothing is left to fold. Losing the watermark race to another run is not an error.
func (s *Service) Sync(ctx context.Context) (done bool, err error) {
	started := time.Now()
	var blocks uint64
	defer func() {
		s.metrics.ObserveSync(err, blocks, started)
	}()

	from, err := s.rollupHeight(ctx)
	if err != nil {
		return false, err
	}
	indexed, ok, err := s.repo.Height(ctx, model.SettingIndexerLastHeight)
	if err != nil {
		return false, fmt.Errorf("read indexer watermark: %w", err)
	}
	if !ok || indexed <= from {
		return true, nil
	}

	to := indexed
	if to-from > s.cfg.MaxBlocks {
		to = from + s.cfg.MaxBlocks
	}

	stats, err := s.repo.DailyStatsBetween(ctx, from, to)
	if err != nil {
		return false, fmt.Errorf("aggregate heights (%d, %d]: %w", from, to, err)
	}
	err = s.repo.ApplyDailyStats(ctx, stats, model.SettingDailyStatsSync, from, to)
	if errors.Is(err, postgres.ErrStaleWatermark) {
		s.logger.Warn("rollup range already applied", zap.Uint64("from_height", from), zap.Uint64("to_height", to))
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("apply heights (%d, %d]: %w", from, to, err)
	}

	blocks = to - from
	s.logger.Info("rollup synced",
		zap.Uint64("from_height", from),
		zap.Uint64("to_height", to),
		zap.Int("rows", len(stats)))
	return to == indexed, nil
}

func (s *Service) rollupHeight(ctx context.Context) (uint64, error) {
	height, ok, err := s.repo.Height(ctx, model.SettingDailyStatsSync)
	if err != nil {
		return 0, fmt.Errorf("read rollup watermark: %w", err)
	}
	if ok || s.cfg.StartHeight == 0 {
		return height, nil
	}
	if err := s.repo.SetHeight(ctx, model.SettingDailyStatsSync, s.cfg.StartHeight); err != nil {
		return 0, fmt.Errorf("seed rollup watermark: %w", err)
	}
	return s.cfg.StartHeight, nil
}

// cronLogger adapts zap to the cron.Logger interface.
type cronLogger struct {
	l *zap.SugaredLogger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debugw(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Errorw(msg, append(keysAndValues, "error", err)...)
}
