package postgres

import "errors"

// ErrStaleWatermark means the watermark is not where the caller computed its range from,
// typically because another run already applied it.
var ErrStaleWatermark = errors.New("stale watermark")
