// Package notify announces committed block ranges over Redis pub/sub and streams.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultStreamMaxLen = 10000

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Client is the subset of *redis.Client the notifier uses.
	Client interface {
		Publish(ctx context.Context, channel string, message any) *redis.IntCmd
		XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
		Close() error
	}
)

// BlocksIndexed is published after a flush commits.
type BlocksIndexed struct {
	Network     model.Network `json:"network"`
	FromHeight  uint64        `json:"from_height"`
	ToHeight    uint64        `json:"to_height"`
	Blocks      int           `json:"blocks"`
	TokenEvents int           `json:"token_events"`
	IndexedAt   time.Time     `json:"indexed_at"`
}

type Config struct {
	URL          string
	StreamMaxLen int64
}

type Notifier struct {
	client       Client
	network      model.Network
	streamMaxLen int64
	logger       *zap.Logger
}

func NewNotifier(ctx context.Context, cfg Config, network model.Network, logger *zap.Logger) (*Notifier, error) {
	if cfg.URL == "" {
		return nil, errors.New("redis url is required")
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", opts.Addr, err)
	}

	logger.Info("connected to redis", zap.String("addr", opts.Addr), zap.Int("db", opts.DB))
	return New(rdb, network, cfg.StreamMaxLen, logger), nil
}

func New(client Client, network model.Network, streamMaxLen int64, logger *zap.Logger) *Notifier {
	if streamMaxLen <= 0 {
		streamMaxLen = defaultStreamMaxLen
	}
	return &Notifier{client: client, network: network, streamMaxLen: streamMaxLen, logger: logger.Named("notify")}
}

func (n *Notifier) Channel() string {
	return fmt.Sprintf("nearinsight:%s:block.indexed", n.network)
}

func (n *Notifier) Stream() string {
	return fmt.Sprintf("nearinsight:%s:blocks", n.network)
}

// NotifyIndexed publishes the event to the channel and appends it to the capped stream.
func (n *Notifier) NotifyIndexed(ctx context.Context, event BlocksIndexed) error {
	event.Network = n.network
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal block indexed event: %w", err)
	}

	if err := n.client.Publish(ctx, n.Channel(), payload).Err(); err != nil {
		return fmt.Errorf("publish block indexed event: %w", err)
	}

	err = n.client.XAdd(ctx, &redis.XAddArgs{
		Stream: n.Stream(),
		MaxLen: n.streamMaxLen,
		Approx: true,
		Values: map[string]any{
			"to_height": event.ToHeight,
			"payload":   payload,
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("append block indexed event: %w", err)
	}

	n.logger.Debug("published block indexed event",
		zap.Uint64("from_height", event.FromHeight),
		zap.Uint64("to_height", event.ToHeight))
	return nil
}

func (n *Notifier) Close() error {
	return n.client.Close()
}
