package transport

import (
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/repository/postgres"
	"github.com/shopspring/decimal"
)

type pageMeta struct {
	Cursor string `json:"cursor,omitempty"`
}

type pageResponse[T any] struct {
	Data []T      `json:"data"`
	Meta pageMeta `json:"meta"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type tokenEventView struct {
	EventType         model.EventType  `json:"event_type"`
	ReceiptID         string           `json:"receipt_id"`
	BlockHeight       uint64           `json:"block_height"`
	BlockTimestamp    uint64           `json:"block_timestamp"`
	ShardID           uint64           `json:"shard_id"`
	EventIndex        int              `json:"event_index"`
	ContractAccountID string           `json:"contract_account_id"`
	AffectedAccountID string           `json:"affected_account_id"`
	InvolvedAccountID string           `json:"involved_account_id,omitempty"`
	TokenID           string           `json:"token_id,omitempty"`
	DeltaAmount       decimal.Decimal  `json:"delta_amount"`
	Cause             model.EventCause `json:"cause"`
	Memo              string           `json:"memo,omitempty"`
}

func newTokenEventView(e model.TokenEvent) tokenEventView {
	return tokenEventView{
		EventType:         e.EventType,
		ReceiptID:         e.EmittedForReceiptID,
		BlockHeight:       e.BlockHeight,
		BlockTimestamp:    e.BlockTimestamp,
		ShardID:           e.ShardID,
		EventIndex:        e.EventIndex,
		ContractAccountID: e.ContractAccountID,
		AffectedAccountID: e.AffectedAccountID,
		InvolvedAccountID: e.InvolvedAccountID,
		TokenID:           e.TokenID,
		DeltaAmount:       e.DeltaAmount,
		Cause:             e.Cause,
		Memo:              e.Memo,
	}
}

type receiptView struct {
	ReceiptID            string            `json:"receipt_id"`
	BlockHeight          uint64            `json:"block_height"`
	BlockTimestamp       uint64            `json:"block_timestamp"`
	ShardID              uint64            `json:"shard_id"`
	IndexInChunk         int               `json:"index_in_chunk"`
	Kind                 model.ReceiptKind `json:"kind"`
	PredecessorID        string            `json:"predecessor_id"`
	ReceiverID           string            `json:"receiver_id"`
	SignerID             string            `json:"signer_id,omitempty"`
	OriginatedFromTxHash string            `json:"originated_from_tx_hash,omitempty"`
	Status               string            `json:"status"`
	GasBurnt             uint64            `json:"gas_burnt"`
	TokensBurnt          decimal.Decimal   `json:"tokens_burnt"`
}

func newReceiptView(r model.Receipt) receiptView {
	return receiptView{
		ReceiptID:            r.ReceiptID,
		BlockHeight:          r.BlockHeight,
		BlockTimestamp:       r.BlockTimestamp,
		ShardID:              r.ShardID,
		IndexInChunk:         r.IndexInChunk,
		Kind:                 r.Kind,
		PredecessorID:        r.PredecessorID,
		ReceiverID:           r.ReceiverID,
		SignerID:             r.SignerID,
		OriginatedFromTxHash: r.OriginatedFromTxHash,
		Status:               string(r.Status),
		GasBurnt:             r.GasBurnt,
		TokensBurnt:          r.TokensBurnt,
	}
}

type signatureResponseView struct {
	ReceiptID      string `json:"receipt_id"`
	BlockHeight    uint64 `json:"block_height"`
	BlockTimestamp uint64 `json:"block_timestamp"`
	ResponderID    string `json:"responder_id"`
	BigR           string `json:"big_r"`
	S              string `json:"s"`
	RecoveryID     int    `json:"recovery_id"`
}

type signatureRequestView struct {
	ReceiptID      string                 `json:"receipt_id"`
	BlockHeight    uint64                 `json:"block_height"`
	BlockTimestamp uint64                 `json:"block_timestamp"`
	ShardID        uint64                 `json:"shard_id"`
	EventIndex     int                    `json:"event_index"`
	ContractID     string                 `json:"contract_id"`
	RequesterID    string                 `json:"requester_id"`
	Payload        string                 `json:"payload"`
	Path           string                 `json:"path"`
	KeyVersion     uint32                 `json:"key_version"`
	Deposit        decimal.Decimal        `json:"deposit"`
	Response       *signatureResponseView `json:"response,omitempty"`
}

func newSignatureRequestView(v postgres.SignatureRequestView) signatureRequestView {
	out := signatureRequestView{
		ReceiptID:      v.ReceiptID,
		BlockHeight:    v.BlockHeight,
		BlockTimestamp: v.BlockTimestamp,
		ShardID:        v.ShardID,
		EventIndex:     v.EventIndex,
		ContractID:     v.ContractID,
		RequesterID:    v.RequesterID,
		Payload:        v.Payload,
		Path:           v.Path,
		KeyVersion:     v.KeyVersion,
		Deposit:        v.Deposit,
	}
	if r := v.Response; r != nil {
		out.Response = &signatureResponseView{
			ReceiptID:      r.ReceiptID,
			BlockHeight:    r.BlockHeight,
			BlockTimestamp: r.BlockTimestamp,
			ResponderID:    r.ResponderID,
			BigR:           r.BigR,
			S:              r.S,
			RecoveryID:     r.RecoveryID,
		}
	}
	return out
}
