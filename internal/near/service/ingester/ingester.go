// Package ingester drives the block pipeline: stream, decode, extract, write, then fan out.
package ingester

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/decoder"
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/events"
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/notify"
	"go.uber.org/zap"
)

var errArchiveFull = errors.New("upload queue full")

type Config struct {
	// StartHeight is used when no watermark is stored, or when it is ahead of the watermark.
	StartHeight uint64
	// EndHeight is inclusive; zero follows the chain head.
	EndHeight        uint64
	FlushBlocks      int
	FlushInterval    time.Duration
	ShardConcurrency int
}

// Service consumes blocks strictly in height order and commits them in batches
// together with the indexer watermark.
type Service struct {
	logger    *zap.Logger
	network   model.Network
	cfg       Config
	repo      Repository
	newStream StreamFactory
	processor *blockProcessor
	sinks     Sinks
	metrics   Metrics
}

// batch is the uncommitted tail of the stream.
type batch struct {
	records []model.BlockRecords
	raw     [][]byte
}

func (b *batch) add(records model.BlockRecords, raw []byte) {
	b.records = append(b.records, records)
	b.raw = append(b.raw, raw)
}

func (b *batch) reset() {
	b.records = b.records[:0]
	b.raw = b.raw[:0]
}

func NewService(
	cfg Config,
	repo Repository,
	newStream StreamFactory,
	dec *decoder.Decoder,
	extractor *events.Extractor,
	sinks Sinks,
	metrics Metrics,
	network model.Network,
	logger *zap.Logger,
) (*Service, error) {
	if repo == nil {
		return nil, errors.New("ingester repository is required")
	}
	if newStream == nil {
		return nil, errors.New("ingester stream factory is required")
	}
	if metrics == nil {
		return nil, errors.New("ingester metrics is required")
	}
	if dec == nil {
		dec = decoder.New()
	}
	if extractor == nil {
		extractor = events.NewExtractor(nil, "", nil)
	}
	if cfg.FlushBlocks <= 0 {
		cfg.FlushBlocks = defaultFlushBlocks
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = defaultFlushInterval
	}
	if cfg.ShardConcurrency <= 0 {
		cfg.ShardConcurrency = defaultShardConcurrency
	}

	return &Service{
		logger:    logger.With(zap.String("network", string(network))).Named("ingester"),
		network:   network,
		cfg:       cfg,
		repo:      repo,
		newStream: newStream,
		processor: &blockProcessor{decoder: dec, extractor: extractor},
		sinks:     sinks,
		metrics:   metrics,
	}, nil
}

// Run ingests until the end height is reached, the stream fails or the context is canceled.
// Blocks buffered at shutdown are flushed before returning.
func (s *Service) Run(ctx context.Context) error {
	start, err := s.resumeHeight(ctx)
	if err != nil {
		return err
	}
	if s.cfg.EndHeight > 0 && start > s.cfg.EndHeight {
		s.logger.Info("nothing to ingest", zap.Uint64("start_height", start), zap.Uint64("end_height", s.cfg.EndHeight))
		return nil
	}
	s.logger.Info("starting ingestion", zap.Uint64("start_height", start), zap.Uint64("end_height", s.cfg.EndHeight))

	pool := pond.NewPool(s.cfg.ShardConcurrency)
	defer pool.StopAndWait()

	stream := s.newStream(start)
	blocks := stream.Start(ctx)

	ticker := time.NewTicker(s.cfg.FlushInterval)
	defer ticker.Stop()

	var buf batch
	for {
		select {
		case payload, ok := <-blocks:
			if !ok {
				if err := s.flush(ctx, &buf); err != nil {
					return err
				}
				if err := stream.Err(); err != nil {
					return fmt.Errorf("stream blocks: %w", err)
				}
				s.logger.Info("ingestion finished")
				return nil
			}

			records, err := s.processor.Process(pool, payload)
			if err != nil {
				return err
			}
			buf.add(records, payload.Raw)
			if len(buf.records) >= s.cfg.FlushBlocks {
				if err := s.flush(ctx, &buf); err != nil {
					return err
				}
			}

		case <-ticker.C:
			if err := s.flush(ctx, &buf); err != nil {
				return err
			}
		}
	}
}

func (s *Service) resumeHeight(ctx context.Context) (uint64, error) {
	last, ok, err := s.repo.Height(ctx, model.SettingIndexerLastHeight)
	if err != nil {
		return 0, fmt.Errorf("read indexer watermark: %w", err)
	}
	if !ok || last+1 < s.cfg.StartHeight {
		return s.cfg.StartHeight, nil
	}
	return last + 1, nil
}

func (s *Service) flush(ctx context.Context, b *batch) (err error) {
	blocks := len(b.records)
	if blocks == 0 {
		return nil
	}
	started := time.Now()
	defer func() {
		s.metrics.ObserveFlush(err, blocks, started)
	}()

	// Blocks already decoded are committed even when shutdown has begun.
	if ctx.Err() != nil {
		ctx = context.WithoutCancel(ctx)
	}

	first := b.records[0].Block.Height
	last := b.records[blocks-1].Block.Height
	if err = s.repo.InsertBlockRecords(ctx, b.records, model.SettingIndexerLastHeight, last); err != nil {
		return fmt.Errorf("flush blocks [%d, %d]: %w", first, last, err)
	}
	s.metrics.ObserveLastHeight(last)
	s.logger.Debug("flushed blocks", zap.Uint64("from_height", first), zap.Uint64("to_height", last))

	s.fanOut(ctx, b)
	b.reset()
	return nil
}

// fanOut hands committed blocks to the best-effort sinks. Failures are logged and counted only.
func (s *Service) fanOut(ctx context.Context, b *batch) {
	if s.sinks.Archive != nil {
		var err error
		for i, rec := range b.records {
			if len(b.raw[i]) == 0 {
				continue
			}
			if !s.sinks.Archive.Enqueue(rec.Block.Height, b.raw[i]) {
				err = errArchiveFull
			}
		}
		s.observeSink(sinkArchive, err)
	}

	tokenEvents := 0
	for _, rec := range b.records {
		tokenEvents += len(rec.TokenEvents)
	}

	if s.sinks.Mirror != nil {
		var err error
	mirror:
		for _, rec := range b.records {
			for _, ev := range rec.TokenEvents {
				if err = s.sinks.Mirror.Add(ctx, ev); err != nil {
					break mirror
				}
			}
		}
		s.observeSink(sinkMirror, err)
	}

	if s.sinks.Notifier != nil {
		err := s.sinks.Notifier.NotifyIndexed(ctx, notify.BlocksIndexed{
			FromHeight:  b.records[0].Block.Height,
			ToHeight:    b.records[len(b.records)-1].Block.Height,
			Blocks:      len(b.records),
			TokenEvents: tokenEvents,
			IndexedAt:   time.Now().UTC(),
		})
		s.observeSink(sinkNotify, err)
	}
}

func (s *Service) observeSink(sink string, err error) {
	s.metrics.ObserveSideEffect(sink, err)
	if err != nil {
		s.logger.Warn("side effect failed", zap.String("sink", sink), zap.Error(err))
	}
}
