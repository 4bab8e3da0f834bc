package transport

import (
	"net/http"
	"strconv"

	"github.com/goodnatureofminers/nearinsight-backend/pkg/pagination"
)

type parseError struct{ msg string }

func (e *parseError) Error() string { return e.msg }

var (
	errInvalidLimit  = &parseError{msg: "invalid limit"}
	errInvalidBefore = &parseError{msg: "invalid before, must be a unix timestamp in nanoseconds"}
	errInvalidAfter  = &parseError{msg: "invalid after, must be a unix timestamp in nanoseconds"}
	errInvalidOrder  = &parseError{msg: "invalid order, must be 'asc' or 'desc'"}
)

// parsePageRequest reads limit, cursor, before, after and order. A cursor wins over
// before/after, and a cursor that does not decode is ignored.
func parsePageRequest(r *http.Request) (pagination.Request, error) {
	qs := r.URL.Query()
	req := pagination.Request{Order: pagination.Desc}

	if v := qs.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return pagination.Request{}, errInvalidLimit
		}
		req.Limit = n
	}

	if v := qs.Get("order"); v != "" {
		req.Order = pagination.Order(v)
		if !req.Order.Valid() {
			return pagination.Request{}, errInvalidOrder
		}
	}

	if v := qs.Get("cursor"); v != "" {
		if c, err := pagination.DecodeCursor(v); err == nil {
			req.Cursor = c
			return req, nil
		}
	}

	switch {
	case qs.Get("before") != "":
		ts, err := strconv.ParseUint(qs.Get("before"), 10, 64)
		if err != nil {
			return pagination.Request{}, errInvalidBefore
		}
		req.Cursor = pagination.Before(ts)
	case qs.Get("after") != "":
		ts, err := strconv.ParseUint(qs.Get("after"), 10, 64)
		if err != nil {
			return pagination.Request{}, errInvalidAfter
		}
		req.Cursor = pagination.After(ts)
	}
	return req, nil
}
