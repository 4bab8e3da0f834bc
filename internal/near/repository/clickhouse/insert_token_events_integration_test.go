//go:build integration

package clickhouse

import (
	"github.com/golang/mock/gomock"
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
	"github.com/shopspring/decimal"
)

func (s *MirrorSuite) TestInsertTokenEvents_ReplaysCollapse() {
	events := []model.TokenEvent{
		{
			EventType:           model.EventTypeFT,
			EmittedForReceiptID: "r1",
			BlockHeight:         100,
			BlockTimestamp:      1_700_000_000_000_000_000,
			EventIndex:          0,
			ContractAccountID:   "token.near",
			AffectedAccountID:   "alice.near",
			InvolvedAccountID:   "bob.near",
			DeltaAmount:         decimal.NewFromInt(-50),
			Cause:               model.CauseTransfer,
		},
		{
			EventType:           model.EventTypeFT,
			EmittedForReceiptID: "r1",
			BlockHeight:         101,
			BlockTimestamp:      1_700_000_000_000_000_000,
			EventIndex:          1,
			ContractAccountID:   "token.near",
			AffectedAccountID:   "bob.near",
			InvolvedAccountID:   "alice.near",
			DeltaAmount:         decimal.NewFromInt(50),
			Cause:               model.CauseTransfer,
		},
	}

	s.metrics.EXPECT().Observe("insert_token_events", model.Mainnet, gomock.Nil(), gomock.Any()).Times(2)
	s.metrics.EXPECT().Observe("max_block_height", model.Mainnet, gomock.Nil(), gomock.Any())

	s.Require().NoError(s.repo.InsertTokenEvents(s.ctx, events))
	s.Require().NoError(s.repo.InsertTokenEvents(s.ctx, events))

	s.Equal(uint64(2), s.scalar("SELECT count() FROM near_token_events FINAL"))

	height, err := s.repo.MaxBlockHeight(s.ctx)
	s.Require().NoError(err)
	s.Equal(uint64(101), height)
}

func (s *MirrorSuite) TestMaxBlockHeight_Empty() {
	s.metrics.EXPECT().Observe("max_block_height", model.Mainnet, gomock.Nil(), gomock.Any())

	height, err := s.repo.MaxBlockHeight(s.ctx)
	s.Require().NoError(err)
	s.Zero(height)
}
