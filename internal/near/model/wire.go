package model

import "encoding/json"

// StreamerMessage is the neardata block envelope: one block with its per-shard execution data.
type StreamerMessage struct {
	Block  BlockView      `json:"block"`
	Shards []IndexerShard `json:"shards"`
}

type BlockView struct {
	Author string          `json:"author"`
	Header BlockHeaderView `json:"header"`
}

type BlockHeaderView struct {
	Height      uint64 `json:"height"`
	PrevHeight  uint64 `json:"prev_height"`
	EpochID     string `json:"epoch_id"`
	Hash        string `json:"hash"`
	PrevHash    string `json:"prev_hash"`
	Timestamp   uint64 `json:"timestamp"`
	GasPrice    string `json:"gas_price"`
	TotalSupply string `json:"total_supply"`
}

type IndexerShard struct {
	ShardID                  uint64                        `json:"shard_id"`
	Chunk                    *IndexerChunk                 `json:"chunk"`
	ReceiptExecutionOutcomes []ExecutionOutcomeWithReceipt `json:"receipt_execution_outcomes"`
}

type IndexerChunk struct {
	Author       string                   `json:"author"`
	Header       ChunkHeaderView          `json:"header"`
	Transactions []TransactionWithOutcome `json:"transactions"`
}

type ChunkHeaderView struct {
	ChunkHash string `json:"chunk_hash"`
	ShardID   uint64 `json:"shard_id"`
	GasUsed   uint64 `json:"gas_used"`
	GasLimit  uint64 `json:"gas_limit"`
}

type TransactionWithOutcome struct {
	Transaction SignedTransactionView `json:"transaction"`
	Outcome     TransactionOutcome    `json:"outcome"`
}

type SignedTransactionView struct {
	SignerID   string            `json:"signer_id"`
	PublicKey  string            `json:"public_key"`
	Nonce      uint64            `json:"nonce"`
	ReceiverID string            `json:"receiver_id"`
	Actions    []json.RawMessage `json:"actions"`
	Signature  string            `json:"signature"`
	Hash       string            `json:"hash"`
}

type TransactionOutcome struct {
	ExecutionOutcome ExecutionOutcomeWithID `json:"execution_outcome"`
}

type ExecutionOutcomeWithReceipt struct {
	ExecutionOutcome ExecutionOutcomeWithID `json:"execution_outcome"`
	Receipt          ReceiptView            `json:"receipt"`
	TxHash           string                 `json:"tx_hash"`
}

type ExecutionOutcomeWithID struct {
	ID        string           `json:"id"`
	BlockHash string           `json:"block_hash"`
	Outcome   ExecutionOutcome `json:"outcome"`
}

type ExecutionOutcome struct {
	Logs        []string        `json:"logs"`
	ReceiptIDs  []string        `json:"receipt_ids"`
	GasBurnt    uint64          `json:"gas_burnt"`
	TokensBurnt string          `json:"tokens_burnt"`
	ExecutorID  string          `json:"executor_id"`
	Status      json.RawMessage `json:"status"`
}

type ReceiptView struct {
	PredecessorID string      `json:"predecessor_id"`
	ReceiverID    string      `json:"receiver_id"`
	ReceiptID     string      `json:"receipt_id"`
	Receipt       ReceiptBody `json:"receipt"`
}

// ReceiptBody is the externally tagged receipt union; exactly one field is set on well-formed input.
type ReceiptBody struct {
	Action *ActionReceipt `json:"Action,omitempty"`
	Data   *DataReceipt   `json:"Data,omitempty"`
}

type ActionReceipt struct {
	SignerID        string            `json:"signer_id"`
	SignerPublicKey string            `json:"signer_public_key"`
	GasPrice        string            `json:"gas_price"`
	Actions         []json.RawMessage `json:"actions"`
}

type DataReceipt struct {
	DataID string  `json:"data_id"`
	Data   *string `json:"data"`
}

// BlockPayload is a fetched block: the decoded message plus the exact bytes served by the feed.
type BlockPayload struct {
	Height  uint64
	Raw     []byte
	Message *StreamerMessage
}
