package stream

import (
	"context"

	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Source returns nil for heights the chain skipped.
	Source interface {
		FetchBlock(ctx context.Context, height uint64) (*model.BlockPayload, error)
		FetchFinalHeight(ctx context.Context) (uint64, error)
	}

	Metrics interface {
		ObserveStreamDepth(depth int)
	}
)
