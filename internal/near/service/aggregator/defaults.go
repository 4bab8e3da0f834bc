package aggregator

import "time"

const (
	defaultSchedule   = "0 */5 * * * *"
	defaultMaxBlocks  = 10_000
	defaultRunTimeout = 4 * time.Minute
)
