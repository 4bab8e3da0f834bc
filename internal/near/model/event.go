package model

import "github.com/shopspring/decimal"

// EventType is the event family used in the natural key and for per-shard indexing.
type EventType string

const (
	EventTypeFT                EventType = "FT"
	EventTypeNFT               EventType = "NFT"
	EventTypeMT                EventType = "MT"
	EventTypeSignatureRequest  EventType = "SIGNATURE_REQUEST"
	EventTypeSignatureResponse EventType = "SIGNATURE_RESPONSE"
)

type EventCause string

const (
	CauseMint     EventCause = "MINT"
	CauseBurn     EventCause = "BURN"
	CauseTransfer EventCause = "TRANSFER"
)

type TokenEvent struct {
	EventType           EventType
	EmittedForReceiptID string
	BlockHeight         uint64
	BlockTimestamp      uint64
	ShardID             uint64
	EventIndex          int
	ContractAccountID   string
	AffectedAccountID   string
	InvolvedAccountID   string
	TokenID             string
	DeltaAmount         decimal.Decimal
	Cause               EventCause
	Memo                string
}

// SignatureRequest is a sign call accepted by the chain-signatures contract.
type SignatureRequest struct {
	ReceiptID      string
	BlockHeight    uint64
	BlockTimestamp uint64
	ShardID        uint64
	EventIndex     int
	ContractID     string
	RequesterID    string
	Payload        string
	Path           string
	KeyVersion     uint32
	Deposit        decimal.Decimal
	RequestKey     string
}

// SignatureResponse is a respond call delivering a signature for an earlier request.
type SignatureResponse struct {
	ReceiptID      string
	BlockHeight    uint64
	BlockTimestamp uint64
	ShardID        uint64
	EventIndex     int
	ContractID     string
	ResponderID    string
	RequestKey     string
	BigR           string
	S              string
	RecoveryID     int
}

func (e TokenEvent) EventKind() EventType      { return e.EventType }
func (SignatureRequest) EventKind() EventType  { return EventTypeSignatureRequest }
func (SignatureResponse) EventKind() EventType { return EventTypeSignatureResponse }

func (e *TokenEvent) SetPosition(shardID, blockTimestamp uint64, index int) {
	e.ShardID, e.BlockTimestamp, e.EventIndex = shardID, blockTimestamp, index
}

func (e *SignatureRequest) SetPosition(shardID, blockTimestamp uint64, index int) {
	e.ShardID, e.BlockTimestamp, e.EventIndex = shardID, blockTimestamp, index
}

func (e *SignatureResponse) SetPosition(shardID, blockTimestamp uint64, index int) {
	e.ShardID, e.BlockTimestamp, e.EventIndex = shardID, blockTimestamp, index
}
