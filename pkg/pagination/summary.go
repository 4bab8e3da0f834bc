package pagination

import (
	"sort"
	"time"
)

// Bucket is a precomputed row count for a time range, such as a daily rollup.
type Bucket struct {
	Range Range
	Count int64
}

// InitialWindowFromSummaries sizes the first window so that, according to the buckets,
// it holds at least need rows when scanning from anchor in order. It returns zero when
// the buckets do not cover enough rows, leaving the schedule's own initial window in place.
func InitialWindowFromSummaries(buckets []Bucket, anchor uint64, order Order, need int) time.Duration {
	sorted := make([]Bucket, 0, len(buckets))
	for _, b := range buckets {
		if b.Range.Empty() || b.Count <= 0 {
			continue
		}
		if order == Desc && b.Range.Start >= anchor {
			continue
		}
		if order == Asc && b.Range.End <= anchor {
			continue
		}
		sorted = append(sorted, b)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if order == Desc {
			return sorted[i].Range.Start > sorted[j].Range.Start
		}
		return sorted[i].Range.Start < sorted[j].Range.Start
	})

	var total int64
	for _, b := range sorted {
		total += b.Count
		if total < int64(need) {
			continue
		}
		if order == Desc {
			return time.Duration(anchor - b.Range.Start)
		}
		return time.Duration(b.Range.End - anchor)
	}
	return 0
}
