// Package archive keeps a copy of raw blocks in an object store: a retrying upload
// queue fed by the ingester and a source that reads blocks back.
package archive

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Uploader interface {
		Upload(ctx context.Context, height uint64, payload []byte) error
	}

	Metrics interface {
		ObserveUpload(err error, started time.Time)
		ObserveDropped(reason string)
		ObserveQueueSize(size int)
	}

	// ObjectAPI is the subset of *s3.Client the store uses.
	ObjectAPI interface {
		PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
		GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	}

	Archive interface {
		Fetch(ctx context.Context, height uint64) ([]byte, error)
	}

	// Fallback serves blocks the archive does not have, usually the live feed client.
	Fallback interface {
		FetchBlock(ctx context.Context, height uint64) (*model.BlockPayload, error)
		FetchFinalHeight(ctx context.Context) (uint64, error)
	}
)
