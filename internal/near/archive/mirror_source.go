package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
	"go.uber.org/zap"
)

// MirrorSource reads blocks from the archive first and falls back to the feed.
type MirrorSource struct {
	archive  Archive
	fallback Fallback
	logger   *zap.Logger
}

func NewMirrorSource(archive Archive, fallback Fallback, logger *zap.Logger) *MirrorSource {
	return &MirrorSource{archive: archive, fallback: fallback, logger: logger.Named("mirror_source")}
}

func (m *MirrorSource) FetchBlock(ctx context.Context, height uint64) (*model.BlockPayload, error) {
	raw, err := m.archive.Fetch(ctx, height)
	switch {
	case errors.Is(err, ErrNotArchived):
		return m.fallback.FetchBlock(ctx, height)
	case err != nil:
		if ctx.Err() != nil {
			return nil, err
		}
		m.logger.Warn("archive read failed, using feed", zap.Uint64("height", height), zap.Error(err))
		return m.fallback.FetchBlock(ctx, height)
	}

	var msg model.StreamerMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, fmt.Errorf("decode archived block %d: %w", height, err)
	}
	return &model.BlockPayload{Height: height, Raw: raw, Message: &msg}, nil
}

func (m *MirrorSource) FetchFinalHeight(ctx context.Context) (uint64, error) {
	return m.fallback.FetchFinalHeight(ctx)
}
