package aggregator

import (
	"context"
	"time"

	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Repository interface {
		Height(ctx context.Context, key string) (uint64, bool, error)
		SetHeight(ctx context.Context, key string, height uint64) error
		DailyStatsBetween(ctx context.Context, fromHeight, toHeight uint64) ([]model.AccountDailyStat, error)
		ApplyDailyStats(ctx context.Context, stats []model.AccountDailyStat, watermarkKey string, fromHeight, toHeight uint64) error
	}
	Metrics interface {
		ObserveSync(err error, blocks uint64, started time.Time)
	}
)
