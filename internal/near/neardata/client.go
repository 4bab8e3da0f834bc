package neardata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
	"github.com/goodnatureofminers/nearinsight-backend/pkg/retry"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

const (
	defaultRequestTimeout = 30 * time.Second
	defaultNotFoundDelay  = 2 * time.Second
	maxBodySize           = 256 << 20
)

// Config controls the feed client.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	NotFoundDelay  time.Duration
	RPS            int
	Retry          retry.Config
}

// Client fetches blocks from {BaseURL}/v0/block/{height}.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    ratelimit.Limiter
	cfg        Config
	metrics    Metrics
	logger     *zap.Logger
	sleep      func(ctx context.Context, d time.Duration) error
}

func NewClient(cfg Config, httpClient *http.Client, metrics Metrics, logger *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("neardata base url is required")
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if cfg.NotFoundDelay <= 0 {
		cfg.NotFoundDelay = defaultNotFoundDelay
	}
	if cfg.Retry.MaxRetries <= 0 {
		cfg.Retry = retry.DefaultConfig()
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	limiter := ratelimit.NewUnlimited()
	if cfg.RPS > 0 {
		limiter = ratelimit.New(cfg.RPS)
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		limiter:    limiter,
		cfg:        cfg,
		metrics:    metrics,
		logger:     logger.Named("neardata"),
		sleep:      retry.Sleep,
	}, nil
}

// FetchBlock returns the block at height, or nil when the chain skipped that height.
// A missing block is polled until it appears. Transient failures are retried with
// backoff and surface as FatalFetchError once the budget is spent.
func (c *Client) FetchBlock(ctx context.Context, height uint64) (*model.BlockPayload, error) {
	raw, err := c.fetchWithRetry(ctx, height, fmt.Sprintf("%s/v0/block/%d", c.baseURL, height), "fetch_block")
	if err != nil {
		return nil, err
	}
	if isNull(raw) {
		return nil, nil
	}

	var msg model.StreamerMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, &FatalFetchError{Height: height, Attempts: 1, Err: fmt.Errorf("decode block: %w", err)}
	}
	return &model.BlockPayload{Height: height, Raw: raw, Message: &msg}, nil
}

// FetchFinalHeight returns the height of the latest final block.
func (c *Client) FetchFinalHeight(ctx context.Context) (uint64, error) {
	raw, err := c.fetchWithRetry(ctx, 0, c.baseURL+"/v0/last_block/final", "last_final_height")
	if err != nil {
		return 0, err
	}

	var msg struct {
		Block struct {
			Header struct {
				Height uint64 `json:"height"`
			} `json:"header"`
		} `json:"block"`
	}
	if err := json.Unmarshal(raw, &msg); err != nil {
		return 0, fmt.Errorf("decode final block: %w", err)
	}
	return msg.Block.Header.Height, nil
}

func (c *Client) fetchWithRetry(ctx context.Context, height uint64, url, operation string) ([]byte, error) {
	attempts := 0
	for {
		raw, err := c.get(ctx, url, operation)
		if err == nil {
			return raw, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		switch {
		case errors.Is(err, ErrNotFound):
			c.metrics.ObserveRetry("not_found")
			if err := c.sleep(ctx, c.cfg.NotFoundDelay); err != nil {
				return nil, err
			}
			continue
		case isTransient(err):
			attempts++
			if attempts > c.cfg.Retry.MaxRetries {
				return nil, &FatalFetchError{Height: height, Attempts: attempts, Err: err}
			}
			c.metrics.ObserveRetry("transient")
			delay := retry.Delay(c.cfg.Retry, attempts)
			c.logger.Warn("block feed request failed, retrying",
				zap.String("url", url),
				zap.Int("attempt", attempts),
				zap.Duration("delay", delay),
				zap.Error(err),
			)
			if err := c.sleep(ctx, delay); err != nil {
				return nil, err
			}
		default:
			return nil, &FatalFetchError{Height: height, Attempts: attempts + 1, Err: err}
		}
	}
}

func (c *Client) get(ctx context.Context, url, operation string) (raw []byte, err error) {
	c.limiter.Take()

	started := time.Now()
	defer func() {
		c.metrics.Observe(operation, err, started)
	}()

	reqCtx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransientError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &TransientError{StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, &TransientError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s: %s", resp.Status, truncate(body, 256)),
		}
	}
}

func isTransient(err error) bool {
	var transient *TransientError
	return errors.As(err, &transient)
}

func isNull(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n])
	}
	return string(b)
}
