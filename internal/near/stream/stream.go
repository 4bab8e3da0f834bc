// Package stream prefetches blocks ahead of the consumer in height order.
package stream

import (
	"context"
	"fmt"
	"sync"

	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
	"github.com/goodnatureofminers/nearinsight-backend/pkg/workerpool"
	"go.uber.org/zap"
)

const (
	defaultConcurrency   = 8
	defaultHighWaterMark = 64
)

type Config struct {
	StartHeight uint64
	// EndHeight is inclusive; zero follows the chain head.
	EndHeight     uint64
	Concurrency   int
	HighWaterMark int
}

// Stream is a single-use producer. Blocks are delivered strictly by height;
// a full buffer blocks the producer until the consumer catches up.
type Stream struct {
	source  Source
	cfg     Config
	metrics Metrics
	logger  *zap.Logger

	once sync.Once
	out  chan *model.BlockPayload
	err  error
}

func New(source Source, cfg Config, metrics Metrics, logger *zap.Logger) *Stream {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	if cfg.HighWaterMark <= 0 {
		cfg.HighWaterMark = defaultHighWaterMark
	}
	return &Stream{
		source:  source,
		cfg:     cfg,
		metrics: metrics,
		logger:  logger.Named("stream"),
		out:     make(chan *model.BlockPayload, cfg.HighWaterMark),
	}
}

// Start launches the producer and returns the block channel. The channel is closed when
// the producer stops; Err reports why.
func (s *Stream) Start(ctx context.Context) <-chan *model.BlockPayload {
	s.once.Do(func() {
		go func() {
			defer close(s.out)
			s.err = s.run(ctx)
		}()
	})
	return s.out
}

// Err is valid after the channel returned by Start is closed. It is nil when EndHeight was reached.
func (s *Stream) Err() error {
	return s.err
}

func (s *Stream) run(ctx context.Context) error {
	var final uint64
	h := s.cfg.StartHeight
	width := uint64(s.cfg.Concurrency)

	for {
		if s.cfg.EndHeight > 0 && h > s.cfg.EndHeight {
			s.logger.Info("end height reached", zap.Uint64("height", s.cfg.EndHeight))
			return nil
		}

		aligned := h%width == 0
		if aligned && final < h+width {
			var err error
			if final, err = s.source.FetchFinalHeight(ctx); err != nil {
				return fmt.Errorf("fetch final height: %w", err)
			}
		}

		upper := h + width
		if aligned && width > 1 && final >= upper && (s.cfg.EndHeight == 0 || upper-1 <= s.cfg.EndHeight) {
			if err := s.fetchBatch(ctx, h, upper); err != nil {
				return err
			}
			h = upper
			continue
		}

		block, err := s.source.FetchBlock(ctx, h)
		if err != nil {
			return fmt.Errorf("fetch block %d: %w", h, err)
		}
		if err := s.emit(ctx, block); err != nil {
			return err
		}
		h++
	}
}

func (s *Stream) fetchBatch(ctx context.Context, from, to uint64) error {
	heights := make([]uint64, 0, to-from)
	for h := from; h < to; h++ {
		heights = append(heights, h)
	}

	blocks, err := workerpool.Map(ctx, len(heights), heights, s.source.FetchBlock)
	if err != nil {
		return fmt.Errorf("fetch blocks [%d, %d): %w", from, to, err)
	}
	for _, b := range blocks {
		if err := s.emit(ctx, b); err != nil {
			return err
		}
	}
	return nil
}

func (s *Stream) emit(ctx context.Context, block *model.BlockPayload) error {
	if block == nil {
		return nil
	}
	select {
	case s.out <- block:
		s.metrics.ObserveStreamDepth(len(s.out))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
