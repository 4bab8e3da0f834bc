// Package decoder turns neardata wire blocks into typed rows. Every function here is total:
// malformed input degrades to partial fields or an UNKNOWN kind, never to an error.
package decoder

import (
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
	"github.com/shopspring/decimal"
)

// DefaultRelayMethod is the function name whose arguments carry a raw Ethereum transaction.
const DefaultRelayMethod = "submit"

const maxDelegateDepth = 1

type Decoder struct {
	relayMethods map[string]struct{}
}

// New returns a Decoder that derives relay transaction hashes for the given method names.
// With no names it uses DefaultRelayMethod.
func New(relayMethods ...string) *Decoder {
	if len(relayMethods) == 0 {
		relayMethods = []string{DefaultRelayMethod}
	}
	methods := make(map[string]struct{}, len(relayMethods))
	for _, m := range relayMethods {
		if m != "" {
			methods[m] = struct{}{}
		}
	}
	return &Decoder{relayMethods: methods}
}

func (d *Decoder) isRelay(method string) bool {
	_, ok := d.relayMethods[method]
	return ok
}

// DecodeBlock converts the header of a streamer message into a block row.
func (d *Decoder) DecodeBlock(msg *model.StreamerMessage) model.Block {
	h := msg.Block.Header
	return model.Block{
		Height:      h.Height,
		Hash:        h.Hash,
		PrevHash:    h.PrevHash,
		Timestamp:   h.Timestamp,
		EpochID:     h.EpochID,
		Author:      msg.Block.Author,
		GasPrice:    parseAmount(h.GasPrice),
		TotalSupply: parseAmount(h.TotalSupply),
		ShardCount:  len(msg.Shards),
	}
}

// DecodeShard converts one shard into transaction, receipt and action rows plus the
// receipt outcomes that event extraction consumes. Order follows the chunk.
func (d *Decoder) DecodeShard(block model.Block, shard model.IndexerShard) model.ShardRecords {
	out := model.ShardRecords{ShardID: shard.ShardID}

	if shard.Chunk != nil {
		out.Transactions = make([]model.Transaction, 0, len(shard.Chunk.Transactions))
		for i, tx := range shard.Chunk.Transactions {
			out.Transactions = append(out.Transactions, d.transaction(block, shard.ShardID, i, tx))
		}
	}

	out.Receipts = make([]model.Receipt, 0, len(shard.ReceiptExecutionOutcomes))
	out.Outcomes = make([]model.ReceiptOutcome, 0, len(shard.ReceiptExecutionOutcomes))
	for i, ro := range shard.ReceiptExecutionOutcomes {
		receipt := d.receipt(block, shard.ShardID, i, ro)
		out.Receipts = append(out.Receipts, receipt)

		var actions []model.DecodedAction
		if ar := ro.Receipt.Receipt.Action; ar != nil {
			actions = make([]model.DecodedAction, 0, len(ar.Actions))
			for j, raw := range ar.Actions {
				decoded := d.DecodeAction(raw)
				actions = append(actions, decoded)
				out.Actions = append(out.Actions, model.ActionRow{
					ReceiptID:      receipt.ReceiptID,
					IndexInReceipt: j,
					BlockHeight:    block.Height,
					BlockTimestamp: block.Timestamp,
					ShardID:        shard.ShardID,
					PredecessorID:  receipt.PredecessorID,
					ReceiverID:     receipt.ReceiverID,
					SignerID:       receipt.SignerID,
					Kind:           decoded.Kind,
					Args:           decoded.Args,
					DerivedHash:    decoded.DerivedHash,
				})
			}
		}

		out.Outcomes = append(out.Outcomes, model.ReceiptOutcome{
			Meta: model.ReceiptMeta{
				ReceiptID:      receipt.ReceiptID,
				PredecessorID:  receipt.PredecessorID,
				ReceiverID:     receipt.ReceiverID,
				SignerID:       receipt.SignerID,
				BlockHeight:    block.Height,
				BlockTimestamp: block.Timestamp,
				ShardID:        shard.ShardID,
				Status:         receipt.Status,
				Actions:        actions,
			},
			Logs: ro.ExecutionOutcome.Outcome.Logs,
		})
	}

	return out
}

func (d *Decoder) transaction(block model.Block, shardID uint64, index int, tx model.TransactionWithOutcome) model.Transaction {
	outcome := tx.Outcome.ExecutionOutcome.Outcome
	converted := ""
	if len(outcome.ReceiptIDs) > 0 {
		converted = outcome.ReceiptIDs[0]
	}
	return model.Transaction{
		Hash:                   tx.Transaction.Hash,
		BlockHeight:            block.Height,
		BlockTimestamp:         block.Timestamp,
		ShardID:                shardID,
		IndexInChunk:           index,
		SignerID:               tx.Transaction.SignerID,
		PublicKey:              tx.Transaction.PublicKey,
		Nonce:                  tx.Transaction.Nonce,
		ReceiverID:             tx.Transaction.ReceiverID,
		ActionsCount:           len(tx.Transaction.Actions),
		ConvertedIntoReceiptID: converted,
		Status:                 DecodeExecutionStatus(outcome.Status),
		GasBurnt:               outcome.GasBurnt,
		TokensBurnt:            parseAmount(outcome.TokensBurnt),
	}
}

func (d *Decoder) receipt(block model.Block, shardID uint64, index int, ro model.ExecutionOutcomeWithReceipt) model.Receipt {
	outcome := ro.ExecutionOutcome.Outcome
	r := model.Receipt{
		ReceiptID:            ro.Receipt.ReceiptID,
		BlockHeight:          block.Height,
		BlockTimestamp:       block.Timestamp,
		ShardID:              shardID,
		IndexInChunk:         index,
		Kind:                 model.ReceiptKindData,
		PredecessorID:        ro.Receipt.PredecessorID,
		ReceiverID:           ro.Receipt.ReceiverID,
		OriginatedFromTxHash: ro.TxHash,
		Status:               DecodeExecutionStatus(outcome.Status),
		GasBurnt:             outcome.GasBurnt,
		TokensBurnt:          parseAmount(outcome.TokensBurnt),
		LogsCount:            len(outcome.Logs),
	}
	if r.ReceiptID == "" {
		r.ReceiptID = ro.ExecutionOutcome.ID
	}
	if ar := ro.Receipt.Receipt.Action; ar != nil {
		r.Kind = model.ReceiptKindAction
		r.SignerID = ar.SignerID
	}
	return r
}

// parseAmount reads a yoctoNEAR decimal string; anything unparsable is zero.
func parseAmount(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return v
}
