package neardata

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by a single attempt when the feed does not have the block yet.
var ErrNotFound = errors.New("block not found")

// TransientError is a failed attempt that may succeed when retried: transport errors, 5xx and 429.
type TransientError struct {
	StatusCode int
	Err        error
}

func (e *TransientError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transient fetch error (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("transient fetch error: %v", e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// FatalFetchError stops ingestion: the retry budget for a height is spent or the feed rejected the request.
type FatalFetchError struct {
	Height   uint64
	Attempts int
	Err      error
}

func (e *FatalFetchError) Error() string {
	return fmt.Sprintf("fetch block %d failed after %d attempts: %v", e.Height, e.Attempts, e.Err)
}

func (e *FatalFetchError) Unwrap() error { return e.Err }

// IsFatal reports whether err carries a FatalFetchError.
func IsFatal(err error) bool {
	var fatal *FatalFetchError
	return errors.As(err, &fatal)
}
