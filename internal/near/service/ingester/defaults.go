package ingester

import "time"

const (
	defaultFlushBlocks      = 100
	defaultFlushInterval    = 2 * time.Second
	defaultShardConcurrency = 8

	sinkArchive = "archive"
	sinkMirror  = "mirror"
	sinkNotify  = "notify"
)
