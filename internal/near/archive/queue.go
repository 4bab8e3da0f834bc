package archive

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/goodnatureofminers/nearinsight-backend/pkg/retry"
	"go.uber.org/zap"
)

const (
	DropOverflow  = "overflow"
	DropExhausted = "exhausted"
)

type QueueConfig struct {
	// Capacity bounds the enqueue buffer; enqueues beyond it are dropped.
	Capacity    int
	BatchSize   int
	Concurrency int
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	// RecentSize caps the set of uploaded heights used to skip duplicates.
	RecentSize   int
	PollInterval time.Duration
}

func DefaultQueueConfig() QueueConfig {
	return QueueConfig{
		Capacity:     10000,
		BatchSize:    16,
		Concurrency:  4,
		MaxAttempts:  5,
		BaseDelay:    time.Second,
		MaxDelay:     time.Minute,
		RecentSize:   4096,
		PollInterval: time.Second,
	}
}

type task struct {
	height      uint64
	payload     []byte
	attempts    int
	nextRetryAt time.Time
}

// Queue uploads payloads in the background. All task state is owned by the run goroutine;
// callers only touch the enqueue channel and the counters.
type Queue struct {
	uploader Uploader
	cfg      QueueConfig
	metrics  Metrics
	logger   *zap.Logger
	now      func() time.Time

	incoming chan task
	size     atomic.Int64
	uploaded atomic.Int64

	startOnce sync.Once
	done      chan struct{}

	tasks   []task
	pending map[uint64]struct{}
	recent  *recentSet
}

func NewQueue(uploader Uploader, cfg QueueConfig, metrics Metrics, logger *zap.Logger) *Queue {
	def := DefaultQueueConfig()
	if cfg.Capacity <= 0 {
		cfg.Capacity = def.Capacity
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = def.BatchSize
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = def.Concurrency
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = def.BaseDelay
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = def.MaxDelay
	}
	if cfg.RecentSize <= 0 {
		cfg.RecentSize = def.RecentSize
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = def.PollInterval
	}
	return &Queue{
		uploader: uploader,
		cfg:      cfg,
		metrics:  metrics,
		logger:   logger.Named("upload_queue"),
		now:      time.Now,
		incoming: make(chan task, cfg.Capacity),
		done:     make(chan struct{}),
		pending:  make(map[uint64]struct{}),
		recent:   newRecentSet(cfg.RecentSize),
	}
}

// Start launches the run goroutine once; later calls are no-ops. The queue stops with ctx.
func (q *Queue) Start(ctx context.Context) {
	q.startOnce.Do(func() {
		go q.run(ctx)
	})
}

// Done is closed after the run goroutine exits.
func (q *Queue) Done() <-chan struct{} {
	return q.done
}

// Enqueue hands a payload to the queue without blocking. It reports false when the
// buffer is full and the payload was dropped.
func (q *Queue) Enqueue(height uint64, payload []byte) bool {
	select {
	case q.incoming <- task{height: height, payload: payload}:
		q.metrics.ObserveQueueSize(int(q.size.Add(1)))
		return true
	default:
		q.metrics.ObserveDropped(DropOverflow)
		q.logger.Warn("upload queue full, dropping block", zap.Uint64("height", height))
		return false
	}
}

// QueueSize counts tasks accepted but not yet uploaded or dropped.
func (q *Queue) QueueSize() int {
	return int(q.size.Load())
}

func (q *Queue) UploadedCount() int64 {
	return q.uploaded.Load()
}

func (q *Queue) run(ctx context.Context) {
	defer close(q.done)

	pool := pond.NewPool(q.cfg.Concurrency)
	defer pool.StopAndWait()

	timer := time.NewTimer(q.cfg.PollInterval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			if n := len(q.tasks) + len(q.incoming); n > 0 {
				q.logger.Warn("upload queue stopped with pending tasks", zap.Int("pending", n))
			}
			return
		case t := <-q.incoming:
			q.add(t)
			q.drain()
		case <-timer.C:
		}

		q.uploadReady(ctx, pool)

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(q.nextWait())
	}
}

func (q *Queue) drain() {
	for {
		select {
		case t := <-q.incoming:
			q.add(t)
		default:
			return
		}
	}
}

func (q *Queue) add(t task) {
	if _, ok := q.pending[t.height]; ok || q.recent.contains(t.height) {
		q.release()
		return
	}
	t.nextRetryAt = q.now()
	q.pending[t.height] = struct{}{}
	q.tasks = append(q.tasks, t)
	q.sortTasks()
}

func (q *Queue) sortTasks() {
	sort.SliceStable(q.tasks, func(i, j int) bool {
		if !q.tasks[i].nextRetryAt.Equal(q.tasks[j].nextRetryAt) {
			return q.tasks[i].nextRetryAt.Before(q.tasks[j].nextRetryAt)
		}
		return q.tasks[i].height < q.tasks[j].height
	})
}

func (q *Queue) nextWait() time.Duration {
	if len(q.tasks) == 0 {
		return q.cfg.PollInterval
	}
	wait := q.tasks[0].nextRetryAt.Sub(q.now())
	if wait < 0 {
		return 0
	}
	if wait > q.cfg.PollInterval {
		return q.cfg.PollInterval
	}
	return wait
}

func (q *Queue) uploadReady(ctx context.Context, pool pond.Pool) {
	now := q.now()
	n := 0
	for n < len(q.tasks) && n < q.cfg.BatchSize && !q.tasks[n].nextRetryAt.After(now) {
		n++
	}
	if n == 0 {
		return
	}

	batch := make([]task, n)
	copy(batch, q.tasks[:n])
	q.tasks = q.tasks[n:]

	errs := make([]error, n)
	group := pool.NewGroup()
	for i := range batch {
		i := i
		group.Submit(func() {
			started := time.Now()
			errs[i] = q.uploader.Upload(ctx, batch[i].height, batch[i].payload)
			q.metrics.ObserveUpload(errs[i], started)
		})
	}
	_ = group.Wait()

	for i, t := range batch {
		if errs[i] == nil {
			delete(q.pending, t.height)
			q.recent.add(t.height)
			q.uploaded.Add(1)
			q.release()
			continue
		}

		t.attempts++
		if t.attempts >= q.cfg.MaxAttempts {
			delete(q.pending, t.height)
			q.metrics.ObserveDropped(DropExhausted)
			q.logger.Warn("dropping block upload after retries",
				zap.Uint64("height", t.height),
				zap.Int("attempts", t.attempts),
				zap.Error(errs[i]))
			q.release()
			continue
		}
		t.nextRetryAt = q.now().Add(q.backoff(t.attempts))
		q.tasks = append(q.tasks, t)
	}
	q.sortTasks()
}

// backoff is min(BaseDelay * 2^(attempts-1), MaxDelay).
func (q *Queue) backoff(attempts int) time.Duration {
	return retry.Delay(retry.Config{
		InitialDelay: q.cfg.BaseDelay,
		MaxDelay:     q.cfg.MaxDelay,
		Multiplier:   2,
	}, attempts)
}

func (q *Queue) release() {
	q.metrics.ObserveQueueSize(int(q.size.Add(-1)))
}

// recentSet remembers uploaded heights; past its cap it forgets the oldest half.
type recentSet struct {
	limit int
	order []uint64
	seen  map[uint64]struct{}
}

func newRecentSet(limit int) *recentSet {
	return &recentSet{limit: limit, seen: make(map[uint64]struct{})}
}

func (r *recentSet) contains(height uint64) bool {
	_, ok := r.seen[height]
	return ok
}

func (r *recentSet) add(height uint64) {
	if r.contains(height) {
		return
	}
	r.seen[height] = struct{}{}
	r.order = append(r.order, height)
	if len(r.order) <= r.limit {
		return
	}
	cut := len(r.order) / 2
	for _, h := range r.order[:cut] {
		delete(r.seen, h)
	}
	r.order = append([]uint64(nil), r.order[cut:]...)
}
