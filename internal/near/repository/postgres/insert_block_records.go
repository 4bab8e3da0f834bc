package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/writer"
)

// InsertBlockRecords writes every fact table for a contiguous run of blocks, then advances
// the watermark key to lastHeight. Fact tables are written concurrently; the watermark
// only moves after all of them succeeded, so a crash replays the run idempotently.
func (r *Repository) InsertBlockRecords(ctx context.Context, records []model.BlockRecords, watermarkKey string, lastHeight uint64) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_block_records", err, start)
	}()

	var (
		blocks       = make([]model.Block, 0, len(records))
		transactions []model.Transaction
		receipts     []model.Receipt
		actions      []model.ActionRow
		tokenEvents  []model.TokenEvent
		requests     []model.SignatureRequest
		responses    []model.SignatureResponse
	)
	for _, rec := range records {
		blocks = append(blocks, rec.Block)
		transactions = append(transactions, rec.Transactions...)
		receipts = append(receipts, rec.Receipts...)
		actions = append(actions, rec.Actions...)
		tokenEvents = append(tokenEvents, rec.TokenEvents...)
		requests = append(requests, rec.SignatureRequests...)
		responses = append(responses, rec.SignatureResponses...)
	}

	pool := pond.NewPool(r.writeConcurrency)
	defer pool.StopAndWait()

	group := pool.NewGroupContext(ctx)
	groupCtx := group.Context()
	group.SubmitErr(
		func() error { return writer.Write(groupCtx, r.writer, r.writePool, blocksTable, blocks) },
		func() error { return writer.Write(groupCtx, r.writer, r.writePool, transactionsTable, transactions) },
		func() error { return writer.Write(groupCtx, r.writer, r.writePool, receiptsTable, receipts) },
		func() error { return writer.Write(groupCtx, r.writer, r.writePool, actionsTable, actions) },
		func() error { return writer.Write(groupCtx, r.writer, r.writePool, tokenEventsTable, tokenEvents) },
		func() error { return writer.Write(groupCtx, r.writer, r.writePool, signatureRequestsTable, requests) },
		func() error { return writer.Write(groupCtx, r.writer, r.writePool, signatureResponsesTable, responses) },
	)
	if err = group.Wait(); err != nil {
		return fmt.Errorf("insert block records: %w", err)
	}

	err = r.writer.Retry(ctx, "set "+watermarkKey, func(ctx context.Context) error {
		return setHeight(ctx, r.writePool, watermarkKey, lastHeight)
	})
	return err
}
