package pagination

import (
	"math"
	"time"
)

const defaultFactor = 2

// Range is a half-open [Start, End) interval of block timestamps in nanoseconds.
type Range struct {
	Start uint64
	End   uint64
}

func (r Range) Empty() bool {
	return r.Start >= r.End
}

// Schedule describes how the scanned window grows. With Factor > 1 the window grows
// geometrically, otherwise by Step. Neither set means doubling.
type Schedule struct {
	Initial      time.Duration
	Factor       float64
	Step         time.Duration
	MaxWidenings int
}

// width returns the total window size after k widenings.
func (s Schedule) width(initial time.Duration, k int) uint64 {
	var w float64
	switch {
	case s.Factor > 1:
		w = float64(initial) * math.Pow(s.Factor, float64(k))
	case s.Step > 0:
		w = float64(initial) + float64(k)*float64(s.Step)
	default:
		w = float64(initial) * math.Pow(defaultFactor, float64(k))
	}
	if w >= math.MaxUint64 {
		return math.MaxUint64
	}
	return uint64(w)
}

// window is the scanned range for one direction, anchored at the cursor or the dataset edge
// and growing toward an absolute bound.
type window struct {
	order   Order
	anchor  uint64
	bound   uint64
	scanned Range
}

func newWindow(order Order, anchor, bound uint64, width uint64) window {
	w := window{order: order, anchor: anchor, bound: bound}
	w.scanned = w.rangeFor(width)
	return w
}

func (w window) rangeFor(width uint64) Range {
	if w.order == Desc {
		start := w.bound
		if w.anchor > w.bound && w.anchor-w.bound > width {
			start = w.anchor - width
		}
		if start > w.anchor {
			start = w.anchor
		}
		return Range{Start: start, End: w.anchor}
	}

	end := w.bound
	if w.bound > w.anchor && w.bound-w.anchor > width {
		end = w.anchor + width
	}
	if end < w.anchor {
		end = w.anchor
	}
	return Range{Start: w.anchor, End: end}
}

func (w window) boundReached() bool {
	if w.order == Desc {
		return w.scanned.Start <= w.bound
	}
	return w.scanned.End >= w.bound
}

// widen grows the window to width and returns only the newly covered slice.
func (w *window) widen(width uint64) Range {
	next := w.rangeFor(width)
	var slice Range
	if w.order == Desc {
		slice = Range{Start: next.Start, End: w.scanned.Start}
	} else {
		slice = Range{Start: w.scanned.End, End: next.End}
	}
	w.scanned = next
	return slice
}

// edge is the cursor that resumes scanning just beyond the scanned range.
func (w window) edge() *Cursor {
	if w.order == Desc {
		return &Cursor{Direction: Desc, Key: Key{Timestamp: w.scanned.Start, ShardID: -1, Index: -1}}
	}
	return &Cursor{Direction: Asc, Key: Key{Timestamp: w.scanned.End, ShardID: -1, Index: -1}}
}
