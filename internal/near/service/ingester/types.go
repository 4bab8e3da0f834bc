package ingester

import (
	"context"
	"time"

	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/notify"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Repository interface {
		Height(ctx context.Context, key string) (uint64, bool, error)
		InsertBlockRecords(ctx context.Context, records []model.BlockRecords, watermarkKey string, lastHeight uint64) error
	}
	BlockStream interface {
		Start(ctx context.Context) <-chan *model.BlockPayload
		Err() error
	}
	Archiver interface {
		Enqueue(height uint64, payload []byte) bool
	}
	Mirror interface {
		Add(ctx context.Context, event model.TokenEvent) error
	}
	Notifier interface {
		NotifyIndexed(ctx context.Context, event notify.BlocksIndexed) error
	}
	Metrics interface {
		ObserveFlush(err error, blocks int, started time.Time)
		ObserveLastHeight(height uint64)
		ObserveSideEffect(sink string, err error)
	}
)

// StreamFactory opens a block stream starting at the given height.
type StreamFactory func(start uint64) BlockStream

// Sinks are best-effort consumers of committed blocks. Any of them may be nil.
type Sinks struct {
	Archive  Archiver
	Mirror   Mirror
	Notifier Notifier
}
