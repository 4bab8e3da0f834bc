// Package transport serves the read API: JSON listings paged by opaque cursors.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/repository/postgres"
	"github.com/goodnatureofminers/nearinsight-backend/pkg/pagination"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const (
	defaultPageLimit       = 25
	defaultSummaryLookback = 30 * 24 * time.Hour
)

type Handler struct {
	repo            Repository
	tokenEvents     *pagination.Engine[model.TokenEvent]
	receipts        *pagination.Engine[model.Receipt]
	signatures      *pagination.Engine[postgres.SignatureRequestView]
	summaryLookback time.Duration
	now             func() time.Time
	logger          *zap.Logger
}

func NewHandler(repo Repository, cfg pagination.Config, newMetrics MetricsFactory, logger *zap.Logger) *Handler {
	if newMetrics == nil {
		newMetrics = func(string) pagination.Metrics { return nil }
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Handler{
		repo:            repo,
		tokenEvents:     pagination.New(cfg, postgres.TokenEventKey, newMetrics("token_events")),
		receipts:        pagination.New(cfg, postgres.ReceiptKey, newMetrics("receipts")),
		signatures:      pagination.New(cfg, postgres.SignatureRequestKey, newMetrics("signature_requests")),
		summaryLookback: defaultSummaryLookback,
		now:             cfg.Now,
		logger:          logger.Named("transport"),
	}
}

func (h *Handler) NewRouter() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.HandleHealth).Methods(http.MethodGet)
	r.HandleFunc("/v1/token-events/{type}", h.HandleTokenEvents).Methods(http.MethodGet)
	r.HandleFunc("/v1/token-events/{type}/recent", h.HandleRecentTokenEvents).Methods(http.MethodGet)
	r.HandleFunc("/v1/accounts/{account}/token-events/{type}", h.HandleAccountTokenEvents).Methods(http.MethodGet)
	r.HandleFunc("/v1/accounts/{account}/receipts", h.HandleAccountReceipts).Methods(http.MethodGet)
	r.HandleFunc("/v1/signature-requests", h.HandleSignatureRequests).Methods(http.MethodGet)

	return r
}

func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleTokenEvents lists token events of one type, optionally filtered by contract, token or account.
func (h *Handler) HandleTokenEvents(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.tokenEventFilter(w, r)
	if !ok {
		return
	}
	req, err := parsePageRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if filter.AccountID != "" {
		req.InitialWindow = h.initialWindow(r.Context(), filter.AccountID, postgres.ActivityTokenEvents, req)
	}
	list(h, w, r, h.tokenEvents, req, h.repo.TokenEvents(filter), newTokenEventView)
}

// HandleRecentTokenEvents returns the newest events of one type from the first non-empty window.
func (h *Handler) HandleRecentTokenEvents(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.tokenEventFilter(w, r)
	if !ok {
		return
	}
	req, err := parsePageRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Cursor, req.Order = nil, pagination.Desc

	page, err := h.tokenEvents.Probe(r.Context(), req, h.repo.TokenEvents(filter))
	if err != nil {
		h.writeQueryError(w, err)
		return
	}
	writePage(w, page, newTokenEventView)
}

func (h *Handler) HandleAccountTokenEvents(w http.ResponseWriter, r *http.Request) {
	h.HandleTokenEvents(w, r)
}

func (h *Handler) HandleAccountReceipts(w http.ResponseWriter, r *http.Request) {
	account := mux.Vars(r)["account"]
	if account == "" {
		writeError(w, http.StatusBadRequest, "missing account")
		return
	}
	req, err := parsePageRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.InitialWindow = h.initialWindow(r.Context(), account, postgres.ActivityReceipts, req)
	list(h, w, r, h.receipts, req, h.repo.Receipts(account), newReceiptView)
}

// HandleSignatureRequests lists chain signature requests with their responses; ?requester= narrows it.
func (h *Handler) HandleSignatureRequests(w http.ResponseWriter, r *http.Request) {
	req, err := parsePageRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	requester := r.URL.Query().Get("requester")
	list(h, w, r, h.signatures, req, h.repo.SignatureRequests(requester), newSignatureRequestView)
}

func (h *Handler) tokenEventFilter(w http.ResponseWriter, r *http.Request) (postgres.TokenEventFilter, bool) {
	vars := mux.Vars(r)
	eventType, ok := parseEventType(vars["type"])
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid token event type, must be one of ft, nft, mt")
		return postgres.TokenEventFilter{}, false
	}

	qs := r.URL.Query()
	filter := postgres.TokenEventFilter{
		EventType:  eventType,
		AccountID:  qs.Get("account"),
		ContractID: qs.Get("contract"),
		TokenID:    qs.Get("token"),
	}
	if account := vars["account"]; account != "" {
		filter.AccountID = account
	}
	return filter, true
}

// initialWindow sizes the first descending window from the account's daily rollups.
// Any failure falls back to the engine's schedule.
func (h *Handler) initialWindow(ctx context.Context, accountID string, metric postgres.ActivityMetric, req pagination.Request) time.Duration {
	order, anchor := req.Order, uint64(h.now().UnixNano())
	if req.Cursor != nil {
		order, anchor = req.Cursor.Direction, req.Cursor.Key.Timestamp
	}
	if order != pagination.Desc {
		return 0
	}

	since := time.Unix(0, int64(anchor)).UTC().Add(-h.summaryLookback)
	buckets, err := h.repo.ActivityBuckets(ctx, accountID, metric, since)
	if err != nil {
		h.logger.Warn("activity buckets unavailable", zap.String("account", accountID), zap.Error(err))
		return 0
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	return pagination.InitialWindowFromSummaries(buckets, anchor, pagination.Desc, limit+1)
}

func list[T, V any](h *Handler, w http.ResponseWriter, r *http.Request, engine *pagination.Engine[T], req pagination.Request, query pagination.QueryFunc[T], view func(T) V) {
	page, err := engine.List(r.Context(), req, query)
	if err != nil {
		h.writeQueryError(w, err)
		return
	}
	writePage(w, page, view)
}

func writePage[T, V any](w http.ResponseWriter, page pagination.Page[T], view func(T) V) {
	resp := pageResponse[V]{Data: make([]V, 0, len(page.Rows))}
	for _, row := range page.Rows {
		resp.Data = append(resp.Data, view(row))
	}
	if page.Next != nil {
		resp.Meta.Cursor = page.Next.Encode()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) writeQueryError(w http.ResponseWriter, err error) {
	if errors.Is(err, pagination.ErrReadTimeout) {
		w.Header().Set("Retry-After", "1")
		writeError(w, http.StatusServiceUnavailable, "query timed out, retry")
		return
	}
	h.logger.Error("query failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "query failed")
}

func parseEventType(s string) (model.EventType, bool) {
	switch strings.ToLower(s) {
	case "ft":
		return model.EventTypeFT, true
	case "nft":
		return model.EventTypeNFT, true
	case "mt":
		return model.EventTypeMT, true
	}
	return "", false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
