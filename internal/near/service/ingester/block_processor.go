package ingester

import (
	"errors"
	"fmt"

	"github.com/alitto/pond/v2"
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/decoder"
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/events"
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
)

var errEmptyPayload = errors.New("block payload has no message")

// blockProcessor turns one fetched block into its write unit. Shards are decoded
// concurrently and merged back in the order the feed lists them.
type blockProcessor struct {
	decoder   *decoder.Decoder
	extractor *events.Extractor
}

type shardOutput struct {
	records model.ShardRecords
	events  events.Result
}

func (p *blockProcessor) Process(pool pond.Pool, payload *model.BlockPayload) (model.BlockRecords, error) {
	if payload == nil || payload.Message == nil {
		return model.BlockRecords{}, errEmptyPayload
	}
	msg := payload.Message
	block := p.decoder.DecodeBlock(msg)

	outputs := make([]shardOutput, len(msg.Shards))
	group := pool.NewGroup()
	for i := range msg.Shards {
		i := i
		group.Submit(func() {
			records := p.decoder.DecodeShard(block, msg.Shards[i])
			outputs[i] = shardOutput{
				records: records,
				events:  p.extractor.ExtractShard(records.Outcomes, records.ShardID, block.Timestamp),
			}
		})
	}
	if err := group.Wait(); err != nil {
		return model.BlockRecords{}, fmt.Errorf("process block %d: %w", block.Height, err)
	}

	out := model.BlockRecords{Block: block}
	for _, o := range outputs {
		out.Transactions = append(out.Transactions, o.records.Transactions...)
		out.Receipts = append(out.Receipts, o.records.Receipts...)
		out.Actions = append(out.Actions, o.records.Actions...)
		out.TokenEvents = append(out.TokenEvents, o.events.TokenEvents...)
		out.SignatureRequests = append(out.SignatureRequests, o.events.SignatureRequests...)
		out.SignatureResponses = append(out.SignatureResponses, o.events.SignatureResponses...)
	}
	return out, nil
}
