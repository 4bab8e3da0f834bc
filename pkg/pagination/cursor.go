// Package pagination pages through time-ordered rows with opaque keyset cursors,
// widening the scanned time range until a page is filled or the data runs out.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"math"
)

// ErrInvalidCursor is returned for cursors that were not produced by Encode.
var ErrInvalidCursor = errors.New("invalid cursor")

type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

func (o Order) Valid() bool {
	return o == Asc || o == Desc
}

// Key totally orders rows: timestamp, then shard, then position within the shard.
type Key struct {
	Timestamp uint64
	ShardID   int64
	Index     int64
}

// Less reports whether k sorts before other in ascending order.
func (k Key) Less(other Key) bool {
	if k.Timestamp != other.Timestamp {
		return k.Timestamp < other.Timestamp
	}
	if k.ShardID != other.ShardID {
		return k.ShardID < other.ShardID
	}
	return k.Index < other.Index
}

// Cursor resumes a scan strictly after Key in Direction.
type Cursor struct {
	Direction Order
	Key       Key
}

type cursorWire struct {
	D Order  `json:"d"`
	T uint64 `json:"t"`
	S int64  `json:"s"`
	I int64  `json:"i"`
}

func (c Cursor) Encode() string {
	b, _ := json.Marshal(cursorWire{D: c.Direction, T: c.Key.Timestamp, S: c.Key.ShardID, I: c.Key.Index})
	return base64.RawURLEncoding.EncodeToString(b)
}

func DecodeCursor(s string) (*Cursor, error) {
	if s == "" {
		return nil, ErrInvalidCursor
	}
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, ErrInvalidCursor
	}
	var w cursorWire
	if err := json.Unmarshal(b, &w); err != nil {
		return nil, ErrInvalidCursor
	}
	if !w.D.Valid() {
		return nil, ErrInvalidCursor
	}
	return &Cursor{Direction: w.D, Key: Key{Timestamp: w.T, ShardID: w.S, Index: w.I}}, nil
}

// Before positions a descending scan on rows older than ts.
func Before(ts uint64) *Cursor {
	return &Cursor{Direction: Desc, Key: Key{Timestamp: ts, ShardID: -1, Index: -1}}
}

// After positions an ascending scan on rows newer than ts.
func After(ts uint64) *Cursor {
	return &Cursor{Direction: Asc, Key: Key{Timestamp: ts, ShardID: math.MaxInt64, Index: math.MaxInt64}}
}
