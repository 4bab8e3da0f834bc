package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ErrNotArchived is returned by Fetch for heights that were never uploaded.
var ErrNotArchived = errors.New("block not archived")

type StoreConfig struct {
	Bucket string
	Prefix string
	Region string
	// Endpoint targets S3-compatible services such as MinIO; it enables path-style addressing.
	Endpoint string
}

// Store keeps one object per block height.
type Store struct {
	client ObjectAPI
	bucket string
	prefix string
}

func NewStore(ctx context.Context, cfg StoreConfig) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("archive bucket is required")
	}

	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewStoreWithClient(client, cfg.Bucket, cfg.Prefix), nil
}

func NewStoreWithClient(client ObjectAPI, bucket, prefix string) *Store {
	return &Store{client: client, bucket: bucket, prefix: prefix}
}

// Key zero-pads heights so keys list in height order.
func (s *Store) Key(height uint64) string {
	return path.Join(s.prefix, fmt.Sprintf("%012d.json", height))
}

func (s *Store) Upload(ctx context.Context, height uint64, payload []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.Key(height)),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put block %d: %w", height, err)
	}
	return nil
}

func (s *Store) Fetch(ctx context.Context, height uint64) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.Key(height)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, ErrNotArchived
		}
		return nil, fmt.Errorf("get block %d: %w", height, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read block %d: %w", height, err)
	}
	return body, nil
}
