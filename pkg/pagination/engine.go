package pagination

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	defaultLimit   = 25
	maxLimit       = 500
	defaultInitial = time.Hour
	defaultMaxWide = 24
)

// ErrReadTimeout is returned when the store timed out before a single row was found.
// Callers should treat it as retryable.
var ErrReadTimeout = errors.New("read timed out")

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		ObserveQuery(err error, widenings int, started time.Time)
	}
)

// Scan is one store query: rows in Range, strictly after After in Order, at most Limit of them.
type Scan struct {
	Range Range
	After *Key
	Order Order
	Limit int
}

type QueryFunc[T any] func(ctx context.Context, scan Scan) ([]T, error)

type Config struct {
	Schedule Schedule
	// Genesis is the oldest timestamp a scan may reach.
	Genesis uint64
	// Timeout bounds a whole request; zero relies on the store's statement timeout.
	Timeout time.Duration
	Now     func() time.Time
}

type Request struct {
	Limit int
	// Order applies when Cursor is nil; a cursor carries its own direction.
	Order  Order
	Cursor *Cursor
	// InitialWindow overrides the schedule's first window, e.g. from InitialWindowFromSummaries.
	InitialWindow time.Duration
}

type Page[T any] struct {
	Rows []T
	// Next is nil when there is nothing further in this direction.
	Next      *Cursor
	Window    Range
	Widenings int
}

// Engine runs windowed scans for one row type.
type Engine[T any] struct {
	cfg     Config
	keyOf   func(T) Key
	metrics Metrics
}

func New[T any](cfg Config, keyOf func(T) Key, metrics Metrics) *Engine[T] {
	if cfg.Schedule.Initial <= 0 {
		cfg.Schedule.Initial = defaultInitial
	}
	if cfg.Schedule.MaxWidenings <= 0 {
		cfg.Schedule.MaxWidenings = defaultMaxWide
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Engine[T]{cfg: cfg, keyOf: keyOf, metrics: metrics}
}

// List fills a page by widening the window and scanning only the newly covered slice
// each time, until limit+1 rows are found or the bound is reached. The extra row
// decides whether a next cursor is returned.
func (e *Engine[T]) List(ctx context.Context, req Request, query QueryFunc[T]) (page Page[T], err error) {
	started := time.Now()
	defer func() {
		e.metrics.ObserveQuery(err, page.Widenings, started)
	}()

	parent := ctx
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	limit, order, after := e.resolve(req)
	need := limit + 1
	win := e.newWindow(req, order)
	initial := e.initial(req)

	var acc []T
	slice := win.scanned
	for {
		if !slice.Empty() {
			rows, err := query(ctx, Scan{Range: slice, After: after, Order: order, Limit: need - len(acc)})
			if err != nil {
				if timedOut(parent, err) {
					return e.partial(acc, win, page.Widenings, order)
				}
				return page, fmt.Errorf("scan %d..%d: %w", slice.Start, slice.End, err)
			}
			acc = append(acc, rows...)
		}

		if len(acc) >= need || win.boundReached() {
			break
		}
		if page.Widenings >= e.cfg.Schedule.MaxWidenings {
			page.Rows, page.Window = acc, win.scanned
			page.Next = win.edge()
			return page, nil
		}
		page.Widenings++
		slice = win.widen(e.cfg.Schedule.width(initial, page.Widenings))
	}

	page.Window = win.scanned
	page.Rows, page.Next = e.cut(acc, limit, order)
	return page, nil
}

// Probe re-runs the query over the whole window, widening only while it comes back empty.
// Unlike List it stops at the first non-empty window, so a short page does not prove
// there is nothing further; it suits "most recent rows" lookups.
func (e *Engine[T]) Probe(ctx context.Context, req Request, query QueryFunc[T]) (page Page[T], err error) {
	started := time.Now()
	defer func() {
		e.metrics.ObserveQuery(err, page.Widenings, started)
	}()

	parent := ctx
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	limit, order, after := e.resolve(req)
	win := e.newWindow(req, order)
	initial := e.initial(req)

	for {
		var rows []T
		if !win.scanned.Empty() {
			rows, err = query(ctx, Scan{Range: win.scanned, After: after, Order: order, Limit: limit + 1})
			if err != nil {
				if timedOut(parent, err) {
					return page, ErrReadTimeout
				}
				return page, fmt.Errorf("scan %d..%d: %w", win.scanned.Start, win.scanned.End, err)
			}
		}

		if len(rows) > 0 || win.boundReached() {
			page.Window = win.scanned
			page.Rows, page.Next = e.cut(rows, limit, order)
			return page, nil
		}
		if page.Widenings >= e.cfg.Schedule.MaxWidenings {
			page.Window = win.scanned
			page.Next = win.edge()
			return page, nil
		}
		page.Widenings++
		win.widen(e.cfg.Schedule.width(initial, page.Widenings))
	}
}

func (e *Engine[T]) resolve(req Request) (limit int, order Order, after *Key) {
	limit = req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	order = req.Order
	if !order.Valid() {
		order = Desc
	}
	if req.Cursor != nil {
		order = req.Cursor.Direction
		key := req.Cursor.Key
		after = &key
	}
	return limit, order, after
}

func (e *Engine[T]) initial(req Request) time.Duration {
	if req.InitialWindow > 0 {
		return req.InitialWindow
	}
	return e.cfg.Schedule.Initial
}

func (e *Engine[T]) newWindow(req Request, order Order) window {
	tip := uint64(e.cfg.Now().UnixNano()) + 1
	width := e.cfg.Schedule.width(e.initial(req), 0)

	if order == Desc {
		anchor := tip
		if req.Cursor != nil {
			anchor = req.Cursor.Key.Timestamp + 1
		}
		return newWindow(Desc, anchor, e.cfg.Genesis, width)
	}

	anchor := e.cfg.Genesis
	if req.Cursor != nil && req.Cursor.Key.Timestamp > anchor {
		anchor = req.Cursor.Key.Timestamp
	}
	return newWindow(Asc, anchor, tip, width)
}

func (e *Engine[T]) cut(rows []T, limit int, order Order) ([]T, *Cursor) {
	if len(rows) <= limit {
		return rows, nil
	}
	rows = rows[:limit]
	return rows, &Cursor{Direction: order, Key: e.keyOf(rows[limit-1])}
}

// partial returns what was found before the deadline, resuming after the last row.
func (e *Engine[T]) partial(acc []T, win window, widenings int, order Order) (Page[T], error) {
	if len(acc) == 0 {
		return Page[T]{Window: win.scanned, Widenings: widenings}, ErrReadTimeout
	}
	return Page[T]{
		Rows:      acc,
		Next:      &Cursor{Direction: order, Key: e.keyOf(acc[len(acc)-1])},
		Window:    win.scanned,
		Widenings: widenings,
	}, nil
}

func (e *Engine[T]) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.cfg.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.cfg.Timeout)
}

type noopMetrics struct{}

func (noopMetrics) ObserveQuery(error, int, time.Time) {}

// timedOut reports a deadline hit by the engine's own timeout, not by the caller.
func timedOut(parent context.Context, err error) bool {
	return errors.Is(err, context.DeadlineExceeded) && parent.Err() == nil
}
