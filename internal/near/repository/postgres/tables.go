package postgres

import (
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/writer"
	"github.com/goodnatureofminers/nearinsight-backend/pkg/safe"
	"github.com/shopspring/decimal"
)

var blocksTable = writer.Table[model.Block]{
	Name: "blocks",
	Columns: []writer.Column[model.Block]{
		writer.BigInt("height", func(b model.Block) int64 { return safe.MustInt64(b.Height) }),
		writer.Text("hash", func(b model.Block) string { return b.Hash }),
		writer.Text("prev_hash", func(b model.Block) string { return b.PrevHash }),
		writer.BigInt("block_timestamp", func(b model.Block) int64 { return safe.MustInt64(b.Timestamp) }),
		writer.Text("epoch_id", func(b model.Block) string { return b.EpochID }),
		writer.Text("author", func(b model.Block) string { return b.Author }),
		writer.Numeric("gas_price", func(b model.Block) decimal.Decimal { return b.GasPrice }),
		writer.Numeric("total_supply", func(b model.Block) decimal.Decimal { return b.TotalSupply }),
		writer.BigInt("shard_count", func(b model.Block) int64 { return int64(b.ShardCount) }),
	},
	Key: []string{"height"},
}

var transactionsTable = writer.Table[model.Transaction]{
	Name: "transactions",
	Columns: []writer.Column[model.Transaction]{
		writer.Text("hash", func(t model.Transaction) string { return t.Hash }),
		writer.BigInt("block_timestamp", func(t model.Transaction) int64 { return safe.MustInt64(t.BlockTimestamp) }),
		writer.BigInt("block_height", func(t model.Transaction) int64 { return safe.MustInt64(t.BlockHeight) }),
		writer.BigInt("shard_id", func(t model.Transaction) int64 { return safe.MustInt64(t.ShardID) }),
		writer.BigInt("index_in_chunk", func(t model.Transaction) int64 { return int64(t.IndexInChunk) }),
		writer.Text("signer_id", func(t model.Transaction) string { return t.SignerID }),
		writer.Text("public_key", func(t model.Transaction) string { return t.PublicKey }),
		writer.BigInt("nonce", func(t model.Transaction) int64 { return safe.MustInt64(t.Nonce) }),
		writer.Text("receiver_id", func(t model.Transaction) string { return t.ReceiverID }),
		writer.BigInt("actions_count", func(t model.Transaction) int64 { return int64(t.ActionsCount) }),
		writer.Text("converted_into_receipt_id", func(t model.Transaction) string { return t.ConvertedIntoReceiptID }),
		writer.Text("status", func(t model.Transaction) string { return string(t.Status) }),
		writer.BigInt("gas_burnt", func(t model.Transaction) int64 { return safe.MustInt64(t.GasBurnt) }),
		writer.Numeric("tokens_burnt", func(t model.Transaction) decimal.Decimal { return t.TokensBurnt }),
	},
	Key: []string{"hash", "block_timestamp"},
}

var receiptsTable = writer.Table[model.Receipt]{
	Name: "receipts",
	Columns: []writer.Column[model.Receipt]{
		writer.Text("receipt_id", func(r model.Receipt) string { return r.ReceiptID }),
		writer.BigInt("block_timestamp", func(r model.Receipt) int64 { return safe.MustInt64(r.BlockTimestamp) }),
		writer.BigInt("block_height", func(r model.Receipt) int64 { return safe.MustInt64(r.BlockHeight) }),
		writer.BigInt("shard_id", func(r model.Receipt) int64 { return safe.MustInt64(r.ShardID) }),
		writer.BigInt("index_in_chunk", func(r model.Receipt) int64 { return int64(r.IndexInChunk) }),
		writer.Text("kind", func(r model.Receipt) string { return string(r.Kind) }),
		writer.Text("predecessor_id", func(r model.Receipt) string { return r.PredecessorID }),
		writer.Text("receiver_id", func(r model.Receipt) string { return r.ReceiverID }),
		writer.Text("signer_id", func(r model.Receipt) string { return r.SignerID }),
		writer.Text("originated_from_tx_hash", func(r model.Receipt) string { return r.OriginatedFromTxHash }),
		writer.Text("status", func(r model.Receipt) string { return string(r.Status) }),
		writer.BigInt("gas_burnt", func(r model.Receipt) int64 { return safe.MustInt64(r.GasBurnt) }),
		writer.Numeric("tokens_burnt", func(r model.Receipt) decimal.Decimal { return r.TokensBurnt }),
		writer.BigInt("logs_count", func(r model.Receipt) int64 { return int64(r.LogsCount) }),
	},
	Key: []string{"receipt_id", "block_timestamp"},
}

var actionsTable = writer.Table[model.ActionRow]{
	Name: "actions",
	Columns: []writer.Column[model.ActionRow]{
		writer.Text("receipt_id", func(a model.ActionRow) string { return a.ReceiptID }),
		writer.BigInt("index_in_receipt", func(a model.ActionRow) int64 { return int64(a.IndexInReceipt) }),
		writer.BigInt("block_timestamp", func(a model.ActionRow) int64 { return safe.MustInt64(a.BlockTimestamp) }),
		writer.BigInt("block_height", func(a model.ActionRow) int64 { return safe.MustInt64(a.BlockHeight) }),
		writer.BigInt("shard_id", func(a model.ActionRow) int64 { return safe.MustInt64(a.ShardID) }),
		writer.Text("predecessor_id", func(a model.ActionRow) string { return a.PredecessorID }),
		writer.Text("receiver_id", func(a model.ActionRow) string { return a.ReceiverID }),
		writer.Text("signer_id", func(a model.ActionRow) string { return a.SignerID }),
		writer.Text("kind", func(a model.ActionRow) string { return string(a.Kind) }),
		writer.JSONB("args", func(a model.ActionRow) []byte { return a.Args }),
		writer.NullText("derived_hash", func(a model.ActionRow) *string { return a.DerivedHash }),
	},
	Key: []string{"receipt_id", "index_in_receipt", "block_timestamp"},
}

var tokenEventsTable = writer.Table[model.TokenEvent]{
	Name: "token_events",
	Columns: []writer.Column[model.TokenEvent]{
		writer.Text("emitted_for_receipt_id", func(e model.TokenEvent) string { return e.EmittedForReceiptID }),
		writer.BigInt("block_timestamp", func(e model.TokenEvent) int64 { return safe.MustInt64(e.BlockTimestamp) }),
		writer.BigInt("shard_id", func(e model.TokenEvent) int64 { return safe.MustInt64(e.ShardID) }),
		writer.Text("event_type", func(e model.TokenEvent) string { return string(e.EventType) }),
		writer.BigInt("event_index", func(e model.TokenEvent) int64 { return int64(e.EventIndex) }),
		writer.BigInt("block_height", func(e model.TokenEvent) int64 { return safe.MustInt64(e.BlockHeight) }),
		writer.Text("contract_account_id", func(e model.TokenEvent) string { return e.ContractAccountID }),
		writer.Text("affected_account_id", func(e model.TokenEvent) string { return e.AffectedAccountID }),
		writer.Text("involved_account_id", func(e model.TokenEvent) string { return e.InvolvedAccountID }),
		writer.Text("token_id", func(e model.TokenEvent) string { return e.TokenID }),
		writer.Numeric("delta_amount", func(e model.TokenEvent) decimal.Decimal { return e.DeltaAmount }),
		writer.Text("cause", func(e model.TokenEvent) string { return string(e.Cause) }),
		writer.Text("memo", func(e model.TokenEvent) string { return e.Memo }),
	},
	Key: []string{"emitted_for_receipt_id", "block_timestamp", "shard_id", "event_type", "event_index"},
}

var signatureRequestsTable = writer.Table[model.SignatureRequest]{
	Name: "signature_requests",
	Columns: []writer.Column[model.SignatureRequest]{
		writer.Text("receipt_id", func(s model.SignatureRequest) string { return s.ReceiptID }),
		writer.BigInt("block_timestamp", func(s model.SignatureRequest) int64 { return safe.MustInt64(s.BlockTimestamp) }),
		writer.BigInt("shard_id", func(s model.SignatureRequest) int64 { return safe.MustInt64(s.ShardID) }),
		writer.BigInt("event_index", func(s model.SignatureRequest) int64 { return int64(s.EventIndex) }),
		writer.BigInt("block_height", func(s model.SignatureRequest) int64 { return safe.MustInt64(s.BlockHeight) }),
		writer.Text("contract_id", func(s model.SignatureRequest) string { return s.ContractID }),
		writer.Text("requester_id", func(s model.SignatureRequest) string { return s.RequesterID }),
		writer.Text("payload", func(s model.SignatureRequest) string { return s.Payload }),
		writer.Text("path", func(s model.SignatureRequest) string { return s.Path }),
		writer.BigInt("key_version", func(s model.SignatureRequest) int64 { return int64(s.KeyVersion) }),
		writer.Numeric("deposit", func(s model.SignatureRequest) decimal.Decimal { return s.Deposit }),
		writer.Text("request_key", func(s model.SignatureRequest) string { return s.RequestKey }),
	},
	Key: []string{"receipt_id", "block_timestamp", "shard_id", "event_index"},
}

var signatureResponsesTable = writer.Table[model.SignatureResponse]{
	Name: "signature_responses",
	Columns: []writer.Column[model.SignatureResponse]{
		writer.Text("receipt_id", func(s model.SignatureResponse) string { return s.ReceiptID }),
		writer.BigInt("block_timestamp", func(s model.SignatureResponse) int64 { return safe.MustInt64(s.BlockTimestamp) }),
		writer.BigInt("shard_id", func(s model.SignatureResponse) int64 { return safe.MustInt64(s.ShardID) }),
		writer.BigInt("event_index", func(s model.SignatureResponse) int64 { return int64(s.EventIndex) }),
		writer.BigInt("block_height", func(s model.SignatureResponse) int64 { return safe.MustInt64(s.BlockHeight) }),
		writer.Text("contract_id", func(s model.SignatureResponse) string { return s.ContractID }),
		writer.Text("responder_id", func(s model.SignatureResponse) string { return s.ResponderID }),
		writer.Text("request_key", func(s model.SignatureResponse) string { return s.RequestKey }),
		writer.Text("big_r", func(s model.SignatureResponse) string { return s.BigR }),
		writer.Text("s", func(s model.SignatureResponse) string { return s.S }),
		writer.BigInt("recovery_id", func(s model.SignatureResponse) int64 { return int64(s.RecoveryID) }),
	},
	Key: []string{"receipt_id", "block_timestamp", "shard_id", "event_index"},
}

var accountDailyStatsTable = writer.Table[model.AccountDailyStat]{
	Name: "account_daily_stats",
	Columns: []writer.Column[model.AccountDailyStat]{
		writer.Date("day", func(s model.AccountDailyStat) string { return s.Day }),
		writer.Text("account_id", func(s model.AccountDailyStat) string { return s.AccountID }),
		writer.BigInt("outgoing_receipts", func(s model.AccountDailyStat) int64 { return s.OutgoingReceipts }),
		writer.BigInt("incoming_receipts", func(s model.AccountDailyStat) int64 { return s.IncomingReceipts }),
		writer.BigInt("token_events", func(s model.AccountDailyStat) int64 { return s.TokenEvents }),
		writer.Numeric("deposit_amount_total", func(s model.AccountDailyStat) decimal.Decimal { return s.DepositAmountTotal }),
	},
	Key:        []string{"day", "account_id"},
	Accumulate: []string{"outgoing_receipts", "incoming_receipts", "token_events", "deposit_amount_total"},
}
