package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type Block struct {
	Height      uint64
	Hash        string
	PrevHash    string
	Timestamp   uint64
	EpochID     string
	Author      string
	GasPrice    decimal.Decimal
	TotalSupply decimal.Decimal
	ShardCount  int
}

type Transaction struct {
	Hash                   string
	BlockHeight            uint64
	BlockTimestamp         uint64
	ShardID                uint64
	IndexInChunk           int
	SignerID               string
	PublicKey              string
	Nonce                  uint64
	ReceiverID             string
	ActionsCount           int
	ConvertedIntoReceiptID string
	Status                 ExecutionStatus
	GasBurnt               uint64
	TokensBurnt            decimal.Decimal
}

type ReceiptKind string

const (
	ReceiptKindAction ReceiptKind = "ACTION"
	ReceiptKindData   ReceiptKind = "DATA"
)

type Receipt struct {
	ReceiptID            string
	BlockHeight          uint64
	BlockTimestamp       uint64
	ShardID              uint64
	IndexInChunk         int
	Kind                 ReceiptKind
	PredecessorID        string
	ReceiverID           string
	SignerID             string
	OriginatedFromTxHash string
	Status               ExecutionStatus
	GasBurnt             uint64
	TokensBurnt          decimal.Decimal
	LogsCount            int
}

type ActionRow struct {
	ReceiptID      string
	IndexInReceipt int
	BlockHeight    uint64
	BlockTimestamp uint64
	ShardID        uint64
	PredecessorID  string
	ReceiverID     string
	SignerID       string
	Kind           ActionKind
	Args           json.RawMessage
	DerivedHash    *string
}

// ReceiptMeta is what event extraction needs to know about the receipt that produced a set of logs.
type ReceiptMeta struct {
	ReceiptID      string
	PredecessorID  string
	ReceiverID     string
	SignerID       string
	BlockHeight    uint64
	BlockTimestamp uint64
	ShardID        uint64
	Status         ExecutionStatus
	Actions        []DecodedAction
}

// ReceiptOutcome pairs an executed receipt with the logs it emitted, in chunk order.
type ReceiptOutcome struct {
	Meta ReceiptMeta
	Logs []string
}

// ShardRecords is everything decoded from one shard of one block.
type ShardRecords struct {
	ShardID      uint64
	Transactions []Transaction
	Receipts     []Receipt
	Actions      []ActionRow
	Outcomes     []ReceiptOutcome
}

// BlockRecords is the merged write unit for one block.
type BlockRecords struct {
	Block              Block
	Transactions       []Transaction
	Receipts           []Receipt
	Actions            []ActionRow
	TokenEvents        []TokenEvent
	SignatureRequests  []SignatureRequest
	SignatureResponses []SignatureResponse
}

// AccountDailyStat is a rollup row; counters are additive.
type AccountDailyStat struct {
	Day                string
	AccountID          string
	OutgoingReceipts   int64
	IncomingReceipts   int64
	TokenEvents        int64
	DepositAmountTotal decimal.Decimal
}
