package transport

import (
	"context"
	"time"

	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/repository/postgres"
	"github.com/goodnatureofminers/nearinsight-backend/pkg/pagination"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Repository interface {
		TokenEvents(filter postgres.TokenEventFilter) pagination.QueryFunc[model.TokenEvent]
		Receipts(accountID string) pagination.QueryFunc[model.Receipt]
		SignatureRequests(requesterID string) pagination.QueryFunc[postgres.SignatureRequestView]
		ActivityBuckets(ctx context.Context, accountID string, metric postgres.ActivityMetric, since time.Time) ([]pagination.Bucket, error)
	}
)

// MetricsFactory returns the query engine collector for a named listing.
type MetricsFactory func(query string) pagination.Metrics
