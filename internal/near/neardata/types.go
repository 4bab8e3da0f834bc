// Package neardata fetches blocks from a neardata-compatible HTTP feed.
package neardata

import (
	"time"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		Observe(operation string, err error, started time.Time)
		ObserveRetry(reason string)
	}
)
